// Package analytics computes read-only views over a snapshot of saplings.
// Every function here is pure.
package analytics

import "github.com/vriksha-lab/backend/internal/entity"

// NoData is the current status of a sapling that has no updates yet.
const NoData entity.HealthStatus = "No Data"

// CurrentStatus returns the status of the most recent update of s, or NoData.
// Every view that needs "current health" must go through this function.
func CurrentStatus(s entity.Sapling) entity.HealthStatus {
	last, ok := s.LastUpdate()
	if !ok {
		return NoData
	}

	return last.Status
}

// HealthScore maps a status to the numeric score used by the health trend.
// Unknown statuses score 0.
func HealthScore(status entity.HealthStatus) int {
	switch status {
	case entity.Healthy:
		return 4
	case entity.NeedsWater:
		return 3
	case entity.Damaged:
		return 2
	case entity.Lost:
		return 1
	}
	return 0
}

type StatusCount struct {
	Status entity.HealthStatus `json:"status"`
	Count  int                 `json:"count"`
}

// Distribution lists the sapling count per current status, in the order of
// entity.HealthStatuses followed by NoData.
type Distribution []StatusCount

func (d Distribution) Total() int {
	total := 0
	for _, c := range d {
		total += c.Count
	}
	return total
}

func (d Distribution) Count(status entity.HealthStatus) int {
	for _, c := range d {
		if c.Status == status {
			return c.Count
		}
	}
	return 0
}

func HealthDistribution(saplings []entity.Sapling) Distribution {
	counts := map[entity.HealthStatus]int{}
	for _, s := range saplings {
		counts[CurrentStatus(s)]++
	}

	result := make(Distribution, 0, len(entity.HealthStatuses)+1)
	for _, status := range append(append([]entity.HealthStatus{}, entity.HealthStatuses...), NoData) {
		result = append(result, StatusCount{Status: status, Count: counts[status]})
	}
	return result
}
