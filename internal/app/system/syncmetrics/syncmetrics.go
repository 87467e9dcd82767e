// Package syncmetrics collects Prometheus metrics for member synchronization.
package syncmetrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is what membersync reports to. Nop satisfies it for callers that
// do not export metrics.
type Recorder interface {
	RecordScan(op string, groups int)
	RecordRewrite(op string)
	RecordFailure(op string)
	RecordDuration(op string, d time.Duration)
}

// Collector is the Prometheus-backed Recorder.
type Collector struct {
	scanned   *prometheus.CounterVec
	rewritten *prometheus.CounterVec
	failures  *prometheus.CounterVec
	duration  *prometheus.HistogramVec
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		scanned: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "huddle_membersync_groups_scanned_total",
			Help: "Groups examined by member synchronization.",
		}, []string{"op"}),
		rewritten: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "huddle_membersync_groups_rewritten_total",
			Help: "Groups whose members array was rewritten.",
		}, []string{"op"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "huddle_membersync_failures_total",
			Help: "Synchronization runs that returned an error.",
		}, []string{"op"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "huddle_membersync_duration_seconds",
			Help:    "Wall time of a synchronization run.",
			Buckets: prometheus.DefBuckets,
		}, []string{"op"}),
	}

	reg.MustRegister(c.scanned, c.rewritten, c.failures, c.duration)
	return c
}

func (c *Collector) RecordScan(op string, groups int) {
	c.scanned.WithLabelValues(op).Add(float64(groups))
}

func (c *Collector) RecordRewrite(op string) {
	c.rewritten.WithLabelValues(op).Inc()
}

func (c *Collector) RecordFailure(op string) {
	c.failures.WithLabelValues(op).Inc()
}

func (c *Collector) RecordDuration(op string, d time.Duration) {
	c.duration.WithLabelValues(op).Observe(d.Seconds())
}

// Nop discards everything.
type Nop struct{}

func (Nop) RecordScan(string, int)               {}
func (Nop) RecordRewrite(string)                 {}
func (Nop) RecordFailure(string)                 {}
func (Nop) RecordDuration(string, time.Duration) {}

// Handler serves the registry in the Prometheus exposition format.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
