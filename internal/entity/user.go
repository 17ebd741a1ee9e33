package entity

import "github.com/vriksha-lab/backend/pkg/enum"

type Role string

var (
	RoleVolunteer = enum.New(Role("VOLUNTEER"), "VOLUNTEER")
	RoleAdmin     = enum.New(Role("ADMIN"), "ADMIN")
)

// User is a volunteer or an administrator. Level, rank and badges are derived
// from Points by the ranking package and are never stored here.
type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Role   Role   `json:"role"`
	Points int    `json:"points"`
}

func (u User) IsVolunteer() bool {
	return u.Role == RoleVolunteer
}
