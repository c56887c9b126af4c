package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Storefront records the observable failures the state codec swallows and
// the latency of catalog listing queries.
type Storefront struct {
	stateSaveFailures *prometheus.CounterVec
	stateCorruptLoads *prometheus.CounterVec
	catalogQuery      prometheus.Histogram
}

// NewStorefront registers the storefront metrics on the provided registerer.
func NewStorefront(reg prometheus.Registerer) *Storefront {
	if reg == nil {
		return &Storefront{}
	}
	saveFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "state_save_failures",
		Help: "Persisted-state writes that failed and were swallowed.",
	}, []string{"record"})
	corruptLoads := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "state_corrupt_loads",
		Help: "Persisted-state reads discarded as corrupt or invalid.",
	}, []string{"record"})
	catalogQuery := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "catalog_query_duration_seconds",
		Help:    "Duration of catalog listing resolution in seconds.",
		Buckets: prometheus.DefBuckets,
	})
	reg.MustRegister(saveFailures, corruptLoads, catalogQuery)
	return &Storefront{
		stateSaveFailures: saveFailures,
		stateCorruptLoads: corruptLoads,
		catalogQuery:      catalogQuery,
	}
}

// IncStateSaveFailure counts a swallowed write for the named record kind.
func (s *Storefront) IncStateSaveFailure(record string) {
	if s == nil || s.stateSaveFailures == nil {
		return
	}
	s.stateSaveFailures.WithLabelValues(normalizeLabel(record)).Inc()
}

// IncStateCorruptLoad counts a discarded read for the named record kind.
func (s *Storefront) IncStateCorruptLoad(record string) {
	if s == nil || s.stateCorruptLoads == nil {
		return
	}
	s.stateCorruptLoads.WithLabelValues(normalizeLabel(record)).Inc()
}

// ObserveCatalogQuery records one listing resolution duration.
func (s *Storefront) ObserveCatalogQuery(duration time.Duration) {
	if s == nil || s.catalogQuery == nil {
		return
	}
	s.catalogQuery.Observe(duration.Seconds())
}

func normalizeLabel(record string) string {
	if record == "" {
		return "unknown"
	}
	return record
}
