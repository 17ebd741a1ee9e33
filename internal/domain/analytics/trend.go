package analytics

import (
	"time"

	"github.com/vriksha-lab/backend/internal/entity"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// MaxTrendPoints is the number of most recent days kept in the health trend.
const MaxTrendPoints = 30

type TrendPoint struct {
	Date         time.Time `json:"date"`
	Label        string    `json:"label"`
	AverageScore float64   `json:"averageScore"`
	Count        int       `json:"count"`
}

type trendBucket struct {
	date  time.Time
	total int
	count int
}

// HealthTrend averages the health score of all updates per calendar day in
// loc. Days are sorted ascending and only the last MaxTrendPoints days with
// at least one update are returned.
func HealthTrend(saplings []entity.Sapling, loc *time.Location) []TrendPoint {
	if loc == nil {
		loc = time.Local
	}

	buckets := map[string]*trendBucket{}
	for _, s := range saplings {
		for _, u := range s.Updates {
			score := HealthScore(u.Status)
			if score == 0 {
				continue
			}

			local := u.Date.In(loc)
			key := local.Format("2006-01-02")
			b, ok := buckets[key]
			if !ok {
				b = &trendBucket{date: time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)}
				buckets[key] = b
			}
			b.total += score
			b.count++
		}
	}

	keys := maps.Keys(buckets)
	slices.Sort(keys)
	if len(keys) > MaxTrendPoints {
		keys = keys[len(keys)-MaxTrendPoints:]
	}

	result := make([]TrendPoint, 0, len(keys))
	for _, key := range keys {
		b := buckets[key]
		result = append(result, TrendPoint{
			Date:         b.date,
			Label:        key,
			AverageScore: float64(b.total) / float64(b.count),
			Count:        b.count,
		})
	}
	return result
}
