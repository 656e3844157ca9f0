// Package metrics provides Prometheus metrics for osinfodb
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus collectors for osinfodb
type Metrics struct {
	// Identification metrics
	IdentifyTotal    *prometheus.CounterVec
	IdentifyDuration *prometheus.HistogramVec

	// Probe metrics
	ProbeTotal    *prometheus.CounterVec
	ProbeDuration *prometheus.HistogramVec

	// Catalog metrics
	CatalogEntities *prometheus.GaugeVec
	RegexCacheTotal *prometheus.CounterVec
}

// NewMetrics creates all collectors and registers them with reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	m := &Metrics{}

	m.IdentifyTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "osinfodb_identify_total",
			Help: "Total number of identification attempts",
		},
		[]string{"kind", "result"},
	)

	m.IdentifyDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "osinfodb_identify_duration_seconds",
			Help:    "Duration of identification scans in seconds",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
		},
		[]string{"kind"},
	)

	m.ProbeTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "osinfodb_probe_total",
			Help: "Total number of media/tree probes",
		},
		[]string{"kind", "status"},
	)

	m.ProbeDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "osinfodb_probe_duration_seconds",
			Help:    "Duration of media/tree probes in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"kind"},
	)

	m.CatalogEntities = factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "osinfodb_catalog_entities",
			Help: "Number of entities per catalog collection",
		},
		[]string{"collection"},
	)

	m.RegexCacheTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "osinfodb_regex_cache_total",
			Help: "Compiled pattern cache lookups",
		},
		[]string{"result"},
	)

	return m
}

// RecordIdentify records an identification attempt
func (m *Metrics) RecordIdentify(kind string, matched bool, duration time.Duration) {
	if m == nil {
		return
	}
	result := "miss"
	if matched {
		result = "match"
	}
	m.IdentifyTotal.WithLabelValues(kind, result).Inc()
	m.IdentifyDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

// RecordProbe records a probe with its status
func (m *Metrics) RecordProbe(kind string, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.ProbeTotal.WithLabelValues(kind, status).Inc()
	m.ProbeDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

// SetCatalogSize updates the entity gauge for one collection
func (m *Metrics) SetCatalogSize(collection string, n int) {
	if m == nil {
		return
	}
	m.CatalogEntities.WithLabelValues(collection).Set(float64(n))
}

// RecordRegexCache counts a compiled-pattern cache hit or miss
func (m *Metrics) RecordRegexCache(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.RegexCacheTotal.WithLabelValues(result).Inc()
}
