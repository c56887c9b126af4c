package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestStorefrontExportsCountersAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewStorefront(reg)
	metrics.IncStateSaveFailure("cart")
	metrics.IncStateCorruptLoad("checkout_draft")
	metrics.ObserveCatalogQuery(250 * time.Millisecond)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "state_save_failures", "record", "cart"); err != nil {
		t.Fatalf("fetch save failures: %v", err)
	} else if got != 1 {
		t.Fatalf("expected save failures=1, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "state_corrupt_loads", "record", "checkout_draft"); err != nil {
		t.Fatalf("fetch corrupt loads: %v", err)
	} else if got != 1 {
		t.Fatalf("expected corrupt loads=1, got %f", got)
	}

	if got := fetchHistogramSum(mfs, "catalog_query_duration_seconds"); got <= 0 {
		t.Fatalf("expected catalog duration sum > 0, got %f", got)
	}
}

func TestStorefrontNilSafe(t *testing.T) {
	var metrics *Storefront
	metrics.IncStateSaveFailure("cart")
	metrics.IncStateCorruptLoad("cart")
	metrics.ObserveCatalogQuery(time.Millisecond)

	unregistered := NewStorefront(nil)
	unregistered.IncStateSaveFailure("cart")
	unregistered.ObserveCatalogQuery(time.Millisecond)
}

func fetchCounterValue(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing label %s=%s", name, label, value)
}

func fetchHistogramSum(mfs []*dto.MetricFamily, name string) float64 {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0
	}
	for _, metric := range mf.GetMetric() {
		return metric.GetHistogram().GetSampleSum()
	}
	return 0
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func matchesLabel(labels []*dto.LabelPair, name, value string) bool {
	for _, label := range labels {
		if label.GetName() == name && label.GetValue() == value {
			return true
		}
	}
	return false
}
