package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestEngineMetricsExportsCountersAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewEngineMetrics(reg)

	metrics.IncCommit("checkout")
	metrics.IncRefresh()
	metrics.ObserveRefresh(25 * time.Millisecond)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "engine_commits_total", "op", "checkout"); err != nil {
		t.Fatalf("fetch commits: %v", err)
	} else if got != 1 {
		t.Fatalf("expected commits=1, got %f", got)
	}

	mf := findMetricFamily(mfs, "engine_view_refreshes_total")
	if mf == nil || len(mf.GetMetric()) == 0 {
		t.Fatal("expected refresh counter to be exported")
	}
	if got := mf.GetMetric()[0].GetCounter().GetValue(); got != 1 {
		t.Fatalf("expected refreshes=1, got %f", got)
	}

	hist := findMetricFamily(mfs, "engine_view_refresh_seconds")
	if hist == nil || len(hist.GetMetric()) == 0 {
		t.Fatal("expected refresh histogram to be exported")
	}
	if got := hist.GetMetric()[0].GetHistogram().GetSampleSum(); got <= 0 {
		t.Fatalf("expected refresh sum > 0, got %f", got)
	}
}

func TestEngineMetricsNilRegistererIsSafe(t *testing.T) {
	metrics := NewEngineMetrics(nil)
	metrics.IncCommit("noop")
	metrics.IncRefresh()
	metrics.ObserveRefresh(time.Millisecond)
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
