package analytics

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vriksha-lab/backend/internal/entity"
)

var day0 = time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

func update(status entity.HealthStatus, at time.Time, rainfall ...float64) entity.SaplingUpdate {
	u := entity.SaplingUpdate{ID: fmt.Sprintf("u-%d", at.UnixNano()), Date: at, Status: status}
	if len(rainfall) > 0 {
		u.Weather = &entity.Weather{Temperature: 30, Humidity: 50, Rainfall: rainfall[0]}
	}
	return u
}

func sapling(id string, updates ...entity.SaplingUpdate) entity.Sapling {
	return entity.Sapling{ID: id, Species: "Neem", GuardianID: "user-1", Updates: updates}
}

func TestCurrentStatus(t *testing.T) {
	s := sapling("s1")
	require.Equal(t, NoData, CurrentStatus(s))

	statuses := []entity.HealthStatus{entity.Healthy, entity.Damaged, entity.NeedsWater, entity.Lost, entity.Healthy}
	for i, status := range statuses {
		s.Updates = append(s.Updates, update(status, day0.Add(time.Duration(i)*time.Hour)))
		require.Equal(t, status, CurrentStatus(s))
	}
}

func TestHealthScore(t *testing.T) {
	require.Equal(t, 4, HealthScore(entity.Healthy))
	require.Equal(t, 3, HealthScore(entity.NeedsWater))
	require.Equal(t, 2, HealthScore(entity.Damaged))
	require.Equal(t, 1, HealthScore(entity.Lost))
	require.Equal(t, 0, HealthScore(NoData))
}

func TestHealthDistribution(t *testing.T) {
	saplings := []entity.Sapling{
		sapling("s1", update(entity.Healthy, day0)),
		sapling("s2", update(entity.Healthy, day0), update(entity.NeedsWater, day0.Add(time.Hour))),
		sapling("s3", update(entity.Lost, day0)),
		sapling("s4"),
		sapling("s5", update(entity.NeedsWater, day0), update(entity.Healthy, day0.Add(time.Hour))),
	}

	d := HealthDistribution(saplings)
	require.Equal(t, len(saplings), d.Total())
	require.Equal(t, 2, d.Count(entity.Healthy))
	require.Equal(t, 1, d.Count(entity.NeedsWater))
	require.Equal(t, 0, d.Count(entity.Damaged))
	require.Equal(t, 1, d.Count(entity.Lost))
	require.Equal(t, 1, d.Count(NoData))
	require.Equal(t, NoData, d[len(d)-1].Status)

	require.Equal(t, 0, HealthDistribution(nil).Total())
}

func TestHealthTrend(t *testing.T) {
	t.Run("averages per day ascending", func(t *testing.T) {
		saplings := []entity.Sapling{
			sapling("s1", update(entity.Healthy, day0.AddDate(0, 0, 2)), update(entity.Lost, day0.AddDate(0, 0, 2).Add(time.Hour))),
			sapling("s2", update(entity.NeedsWater, day0)),
		}

		trend := HealthTrend(saplings, time.UTC)
		require.Len(t, trend, 2)
		require.Equal(t, "2024-06-01", trend[0].Label)
		require.Equal(t, 3.0, trend[0].AverageScore)
		require.Equal(t, "2024-06-03", trend[1].Label)
		require.Equal(t, 2.5, trend[1].AverageScore)
		require.Equal(t, 2, trend[1].Count)
	})

	t.Run("uses the viewer's calendar day", func(t *testing.T) {
		// 22:00 UTC on June 1st is already June 2nd in Kolkata.
		late := time.Date(2024, 6, 1, 22, 0, 0, 0, time.UTC)
		saplings := []entity.Sapling{sapling("s1", update(entity.Healthy, late))}

		kolkata := time.FixedZone("IST", 5*3600+1800)
		require.Equal(t, "2024-06-01", HealthTrend(saplings, time.UTC)[0].Label)
		require.Equal(t, "2024-06-02", HealthTrend(saplings, kolkata)[0].Label)
	})

	t.Run("keeps the last 30 days without zero filling", func(t *testing.T) {
		var updates []entity.SaplingUpdate
		for i := 0; i < 40; i++ {
			// Every other day only.
			updates = append(updates, update(entity.Healthy, day0.AddDate(0, 0, 2*i)))
		}

		trend := HealthTrend([]entity.Sapling{sapling("s1", updates...)}, time.UTC)
		require.Len(t, trend, MaxTrendPoints)
		require.Equal(t, day0.AddDate(0, 0, 2*10).Format("2006-01-02"), trend[0].Label)
		require.Equal(t, day0.AddDate(0, 0, 2*39).Format("2006-01-02"), trend[MaxTrendPoints-1].Label)
		for i := 1; i < len(trend); i++ {
			require.True(t, trend[i-1].Date.Before(trend[i].Date))
		}
	})

	t.Run("empty", func(t *testing.T) {
		require.Empty(t, HealthTrend(nil, nil))
	})
}

func TestRainfallSurvival(t *testing.T) {
	saplings := []entity.Sapling{
		sapling("dry", update(entity.Healthy, day0, 0), update(entity.Healthy, day0.Add(time.Hour), 0)),
		sapling("low", update(entity.Healthy, day0, 3), update(entity.NeedsWater, day0.Add(time.Hour), 7)),
		sapling("lost", update(entity.Healthy, day0, 20), update(entity.Lost, day0.Add(time.Hour), 30)),
		sapling("no-weather", update(entity.Lost, day0)),
		sapling("partial", update(entity.Healthy, day0, 10), update(entity.Healthy, day0.Add(time.Hour))),
	}

	bins := RainfallSurvival(saplings)
	require.Len(t, bins, 4)

	require.Equal(t, RainfallBin{Name: BinDry, Total: 1, Survived: 1, SurvivalRate: 100}, bins[0])
	require.Equal(t, RainfallBin{Name: BinLow, Total: 1, Survived: 1, SurvivalRate: 100}, bins[1])
	require.Equal(t, RainfallBin{Name: BinMedium, Total: 1, Survived: 1, SurvivalRate: 100}, bins[2])
	require.Equal(t, RainfallBin{Name: BinHigh, Total: 1, Survived: 0, SurvivalRate: 0}, bins[3])

	empty := RainfallSurvival(nil)
	for _, b := range empty {
		require.Zero(t, b.Total)
		require.Zero(t, b.SurvivalRate)
	}
}

func TestRainfallBinOf(t *testing.T) {
	require.Equal(t, BinDry, RainfallBinOf(0))
	require.Equal(t, BinLow, RainfallBinOf(0.1))
	require.Equal(t, BinLow, RainfallBinOf(5))
	require.Equal(t, BinMedium, RainfallBinOf(5.01))
	require.Equal(t, BinMedium, RainfallBinOf(15))
	require.Equal(t, BinHigh, RainfallBinOf(15.5))

	_, ok := MeanRainfall(sapling("s", update(entity.Healthy, day0)))
	require.False(t, ok)
}

func TestDashboardSummary(t *testing.T) {
	saplings := []entity.Sapling{
		sapling("s1", update(entity.Healthy, day0), update(entity.Healthy, day0.Add(time.Hour))),
		sapling("s2", update(entity.Lost, day0)),
		sapling("s3", update(entity.Healthy, day0)),
		sapling("s4"),
	}
	users := []entity.User{
		{ID: "u1", Role: entity.RoleVolunteer},
		{ID: "u2", Role: entity.RoleVolunteer},
		{ID: "admin", Role: entity.RoleAdmin},
	}

	summary := DashboardSummary(saplings, users)
	require.Equal(t, 4, summary.TotalSaplings)
	require.Equal(t, 75.0, summary.SurvivalRate)
	require.Equal(t, 25.0, summary.FollowUpRate)
	require.Equal(t, 2, summary.ActiveVolunteers)

	require.Equal(t, Summary{}, DashboardSummary(nil, nil))
}

func TestVolunteerStatsOf(t *testing.T) {
	user := entity.User{ID: "user-1", Points: 120}
	saplings := []entity.Sapling{
		sapling("s1", update(entity.NeedsWater, day0)),
		sapling("s2", update(entity.Healthy, day0)),
		{ID: "s3", GuardianID: "user-2", Updates: []entity.SaplingUpdate{update(entity.NeedsWater, day0)}},
	}

	require.Equal(t, VolunteerStats{SaplingCount: 2, NeedsWaterCount: 1, Points: 120}, VolunteerStatsOf(user, saplings))
}

func TestFilterSaplings(t *testing.T) {
	users := []entity.User{{ID: "user-1", Name: "Priya Sharma"}, {ID: "user-2", Name: "Ravi Kumar"}}
	saplings := []entity.Sapling{
		{ID: "sap-001", Species: "Neem", GuardianID: "user-1", Updates: []entity.SaplingUpdate{update(entity.Healthy, day0)}},
		{ID: "sap-002", Species: "Peepal", GuardianID: "user-2", Updates: []entity.SaplingUpdate{update(entity.Lost, day0)}},
		{ID: "sap-003", Species: "Banyan", GuardianID: "user-2"},
	}

	ids := func(saplings []entity.Sapling) []string {
		result := []string{}
		for _, s := range saplings {
			result = append(result, s.ID)
		}
		return result
	}

	require.Equal(t, []string{"sap-001", "sap-002", "sap-003"}, ids(FilterSaplings(saplings, users, SaplingFilter{})))
	require.Equal(t, []string{"sap-001"}, ids(FilterSaplings(saplings, users, SaplingFilter{Query: "NEEM"})))
	require.Equal(t, []string{"sap-002", "sap-003"}, ids(FilterSaplings(saplings, users, SaplingFilter{Query: "ravi"})))
	require.Equal(t, []string{"sap-003"}, ids(FilterSaplings(saplings, users, SaplingFilter{Query: "003"})))
	require.Equal(t, []string{"sap-002"}, ids(FilterSaplings(saplings, users, SaplingFilter{LostOnly: true})))
	require.Equal(t, []string{"sap-003"}, ids(FilterSaplings(saplings, users, SaplingFilter{Status: NoData})))
	require.Empty(t, FilterSaplings(saplings, users, SaplingFilter{Query: "oak"}))
}
