package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	MessagesParsed   *prometheus.CounterVec
	FieldsMissing    *prometheus.CounterVec
	RequestsRejected prometheus.Counter
	ResolutionTime   *prometheus.HistogramVec
	ResolutionErrors *prometheus.CounterVec
	CacheHits        *prometheus.CounterVec
}

// NewMetrics creates new prometheus metrics registered on reg. A nil reg
// means the default registerer.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		MessagesParsed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_parsed_total",
			Help:      "The total number of parsed booking messages",
		}, []string{"source"}),
		FieldsMissing: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fields_missing_total",
			Help:      "Fields the extraction pipeline could not find",
		}, []string{"field"}),
		RequestsRejected: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_rejected_total",
			Help:      "Requests blocked by the strict missing-field policy",
		}),
		ResolutionTime: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "resolution_time_seconds",
			Help:      "Time taken by external resolution calls",
			Buckets:   prometheus.DefBuckets,
		}, []string{"collaborator"}),
		ResolutionErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resolution_errors_total",
			Help:      "External resolution calls that failed or timed out",
		}, []string{"collaborator"}),
		CacheHits: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_hits_total",
			Help:      "Lookups answered from the cache",
		}, []string{"cache"}),
	}
}
