package entity

import "github.com/vriksha-lab/backend/pkg/enum"

type Severity string

var (
	SeverityInfo    = enum.New(Severity("info"), "info")
	SeverityWarning = enum.New(Severity("warning"), "warning")
	SeveritySuccess = enum.New(Severity("success"), "success")
)

type Notification struct {
	ID        string   `json:"id"`
	UserID    string   `json:"userId"`
	SaplingID string   `json:"saplingId,omitempty"`
	Message   string   `json:"message"`
	Severity  Severity `json:"type"`
}
