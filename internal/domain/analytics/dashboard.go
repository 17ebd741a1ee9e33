package analytics

import (
	"strings"

	"github.com/vriksha-lab/backend/internal/entity"
)

type Summary struct {
	TotalSaplings    int     `json:"totalSaplings"`
	SurvivalRate     float64 `json:"survivalRate"`
	FollowUpRate     float64 `json:"followUpRate"`
	ActiveVolunteers int     `json:"activeVolunteers"`
}

// DashboardSummary computes the admin dashboard headline numbers. Survival is
// the share of saplings not currently Lost, follow-up is the share with more
// than one update. Both are percentages and 0 when there are no saplings.
func DashboardSummary(saplings []entity.Sapling, users []entity.User) Summary {
	summary := Summary{TotalSaplings: len(saplings)}

	lost, followedUp := 0, 0
	for _, s := range saplings {
		if CurrentStatus(s) == entity.Lost {
			lost++
		}
		if len(s.Updates) > 1 {
			followedUp++
		}
	}

	if len(saplings) > 0 {
		total := float64(len(saplings))
		summary.SurvivalRate = float64(len(saplings)-lost) / total * 100
		summary.FollowUpRate = float64(followedUp) / total * 100
	}

	for _, u := range users {
		if u.IsVolunteer() {
			summary.ActiveVolunteers++
		}
	}
	return summary
}

type VolunteerStats struct {
	SaplingCount    int `json:"saplingCount"`
	NeedsWaterCount int `json:"needsWaterCount"`
	Points          int `json:"points"`
}

func VolunteerStatsOf(user entity.User, saplings []entity.Sapling) VolunteerStats {
	stats := VolunteerStats{Points: user.Points}
	for _, s := range saplings {
		if s.GuardianID != user.ID {
			continue
		}

		stats.SaplingCount++
		if CurrentStatus(s) == entity.NeedsWater {
			stats.NeedsWaterCount++
		}
	}
	return stats
}

type SaplingFilter struct {
	// Query is matched case-insensitively as a substring of the sapling id,
	// its species or its guardian's name.
	Query string

	LostOnly bool

	// Status, when set, keeps only saplings with that current status.
	Status entity.HealthStatus
}

func FilterSaplings(saplings []entity.Sapling, users []entity.User, filter SaplingFilter) []entity.Sapling {
	names := make(map[string]string, len(users))
	for _, u := range users {
		names[u.ID] = strings.ToLower(u.Name)
	}

	query := strings.ToLower(strings.TrimSpace(filter.Query))
	result := []entity.Sapling{}
	for _, s := range saplings {
		status := CurrentStatus(s)
		if filter.LostOnly && status != entity.Lost {
			continue
		}
		if filter.Status != "" && status != filter.Status {
			continue
		}

		if query != "" &&
			!strings.Contains(strings.ToLower(s.ID), query) &&
			!strings.Contains(strings.ToLower(s.Species), query) &&
			!strings.Contains(names[s.GuardianID], query) {
			continue
		}

		result = append(result, s)
	}
	return result
}
