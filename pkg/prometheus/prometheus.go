package prometheus

import (
	"net/http"

	"github.com/scavhunt/backend/internal/common"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewHandler exposes the process collectors and every metric declared in
// common. Each call builds its own registry, so it is safe to call once per
// server in the same process.
func NewHandler() http.Handler {
	registry := prometheus.NewRegistry()

	// default collectors
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	for _, gauge := range common.PromGauges {
		registry.MustRegister(gauge)
	}

	for _, counter := range common.PromCounters {
		registry.MustRegister(counter)
	}

	for _, histogram := range common.PromHistograms {
		registry.MustRegister(histogram)
	}

	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
