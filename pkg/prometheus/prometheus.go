// Package prometheus exposes the application metrics declared in
// internal/common together with the Go runtime and process collectors.
package prometheus

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vriksha-lab/backend/internal/common"
)

var (
	registry     *prometheus.Registry
	registryOnce sync.Once
)

// Registry returns the process wide registry, created on first use.
func Registry() *prometheus.Registry {
	registryOnce.Do(func() {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)

		for _, gauge := range common.PromGauges {
			registry.MustRegister(gauge)
		}
		for _, counter := range common.PromCounters {
			registry.MustRegister(counter)
		}
		for _, histogram := range common.PromHistograms {
			registry.MustRegister(histogram)
		}
	})
	return registry
}

func NewHandler() http.Handler {
	return promhttp.HandlerFor(Registry(), promhttp.HandlerOpts{
		Registry:          Registry(),
		EnableOpenMetrics: true,
	})
}
