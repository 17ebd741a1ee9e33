package entity

import (
	"time"

	"github.com/vriksha-lab/backend/pkg/enum"
)

type HealthStatus string

var (
	Healthy    = enum.New(HealthStatus("Healthy"), "Healthy")
	NeedsWater = enum.New(HealthStatus("Needs Water"), "Needs Water")
	Damaged    = enum.New(HealthStatus("Damaged"), "Damaged")
	Lost       = enum.New(HealthStatus("Lost"), "Lost")
)

// HealthStatuses lists every observable status in display order.
var HealthStatuses = []HealthStatus{Healthy, NeedsWater, Damaged, Lost}

type Location struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
}

func (l Location) Valid() bool {
	return l.Latitude >= -90 && l.Latitude <= 90 &&
		l.Longitude >= -180 && l.Longitude <= 180
}

type Weather struct {
	Temperature float64 `json:"temp"`
	Humidity    float64 `json:"humidity"`
	Rainfall    float64 `json:"rainfall"`
}

// SaplingUpdate is one field observation. It is never edited after it has
// been appended to a sapling.
type SaplingUpdate struct {
	ID             string       `json:"id"`
	Date           time.Time    `json:"date"`
	Status         HealthStatus `json:"status"`
	ImageURL       string       `json:"imageUrl"`
	SubmittedBy    string       `json:"submittedBy"`
	Recommendation string       `json:"recommendation,omitempty"`
	Confidence     *float64     `json:"confidence,omitempty"`
	Weather        *Weather     `json:"weather,omitempty"`
	SoilCondition  string       `json:"soilCondition,omitempty"`

	// SubmissionKey is the client supplied retry key. Two submissions with
	// the same key on the same sapling are the same observation.
	SubmissionKey string `json:"submissionKey,omitempty"`
}

type Sapling struct {
	ID             string    `json:"id"`
	Species        string    `json:"species"`
	Location       Location  `json:"location"`
	GuardianID     string    `json:"guardianId"`
	PlantationDate time.Time `json:"plantationDate"`

	// Updates are ordered by Date ascending, oldest first.
	Updates []SaplingUpdate `json:"updates"`
}

// LastUpdate returns the most recent update, if any.
func (s Sapling) LastUpdate() (SaplingUpdate, bool) {
	if len(s.Updates) == 0 {
		return SaplingUpdate{}, false
	}

	return s.Updates[len(s.Updates)-1], true
}

func (s Sapling) Clone() Sapling {
	c := s
	c.Updates = make([]SaplingUpdate, len(s.Updates))
	for i, u := range s.Updates {
		c.Updates[i] = u.Clone()
	}
	return c
}

func (u SaplingUpdate) Clone() SaplingUpdate {
	c := u
	if u.Confidence != nil {
		v := *u.Confidence
		c.Confidence = &v
	}
	if u.Weather != nil {
		w := *u.Weather
		c.Weather = &w
	}
	return c
}
