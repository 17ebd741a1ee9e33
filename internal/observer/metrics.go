package observer

import (
	"github.com/vriksha-lab/backend/internal/common"
	"github.com/vriksha-lab/backend/internal/domain/analytics"
)

// Metrics refreshes the store gauges. It only reads memory, so it runs
// directly inside the broadcast.
type Metrics struct {
	source Source
}

func NewMetrics(source Source) *Metrics {
	return &Metrics{source: source}
}

func (m *Metrics) Notify() {
	common.PromCounters[common.StoreMutationTotal].WithLabelValues().Inc()
	m.refresh()
}

func (m *Metrics) refresh() {
	for _, c := range analytics.HealthDistribution(m.source.GetAllSaplings()) {
		common.PromGauges[common.SaplingsByStatus].WithLabelValues(string(c.Status)).Set(float64(c.Count))
	}

	points := 0
	for _, u := range m.source.GetAllUsers() {
		if u.IsVolunteer() {
			points += u.Points
		}
	}
	common.PromGauges[common.VolunteerPoints].WithLabelValues().Set(float64(points))
}
