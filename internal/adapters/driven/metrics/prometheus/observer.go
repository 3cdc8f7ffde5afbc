// Package prometheus exports evaluation pass metrics in the Prometheus
// text format.
package prometheus

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/custodia-labs/fleetwatch/internal/core/ports/driven"
)

// Ensure Observer implements the interface.
var _ driven.EvaluationObserver = (*Observer)(nil)

const namespace = "fleetwatch"

// Observer records evaluation passes into its own registry.
type Observer struct {
	registry   *prometheus.Registry
	passes     *prometheus.CounterVec
	candidates prometheus.Counter
	emitted    prometheus.Counter
	evicted    prometheus.Counter
	duration   prometheus.Histogram
	lastPass   prometheus.Gauge
}

// NewObserver creates an observer with a private registry that also
// carries the Go runtime and process collectors.
func NewObserver() *Observer {
	o := &Observer{
		registry: prometheus.NewRegistry(),
		passes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "evaluation_passes_total",
			Help:      "Evaluation passes by outcome.",
		}, []string{"outcome"}),
		candidates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alert_candidates_total",
			Help:      "Alert candidates produced across all passes.",
		}),
		emitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_emitted_total",
			Help:      "Notifications created after deduplication.",
		}),
		evicted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_evicted_total",
			Help:      "Notifications dropped by the retention bound.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "evaluation_duration_seconds",
			Help:      "Evaluation pass latency in seconds.",
			Buckets:   prometheus.DefBuckets,
		}),
		lastPass: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_successful_pass_timestamp_seconds",
			Help:      "Unix time of the last successful pass.",
		}),
	}

	o.registry.MustRegister(
		o.passes, o.candidates, o.emitted, o.evicted, o.duration, o.lastPass,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return o
}

// ObservePass records one pass. Failed passes only count toward the
// outcome counter and the latency histogram.
func (o *Observer) ObservePass(stats driven.PassStats) {
	o.duration.Observe(stats.Duration.Seconds())

	if stats.Failed {
		o.passes.WithLabelValues("failure").Inc()
		return
	}

	o.passes.WithLabelValues("success").Inc()
	o.candidates.Add(float64(stats.Candidates))
	o.emitted.Add(float64(stats.Emitted))
	o.evicted.Add(float64(stats.Evicted))
	o.lastPass.SetToCurrentTime()
}

// Registry exposes the underlying registry.
func (o *Observer) Registry() *prometheus.Registry {
	return o.registry
}

// Handler serves the registry's metrics.
func (o *Observer) Handler() http.Handler {
	return promhttp.HandlerFor(o.registry, promhttp.HandlerOpts{})
}
