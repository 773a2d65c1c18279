package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// gatherCounter は指定名のカウンタ値を収集して返すテストヘルパー。
func gatherCounter(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()
	metrics, err := reg.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}
	for _, mf := range metrics {
		if mf.GetName() == name {
			return mf.GetMetric()[0].GetCounter().GetValue()
		}
	}
	t.Fatalf("%s metric not found", name)
	return 0
}

// TestNewCollector_ReturnsNonNil はCollectorが正常に生成されることを検証する。
func TestNewCollector_ReturnsNonNil(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	if c == nil {
		t.Fatal("expected non-nil Collector")
	}
}

// TestRecordMatchRefresh_IncrementsCounters は再計算カウンタと候補者数カウンタが増加することを検証する。
func TestRecordMatchRefresh_IncrementsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordMatchRefresh(12)
	c.RecordMatchRefresh(8)

	if got := gatherCounter(t, reg, "foundermatch_refresh_total"); got != 2 {
		t.Errorf("refresh_total = %v, want 2", got)
	}
	if got := gatherCounter(t, reg, "foundermatch_candidates_scored_total"); got != 20 {
		t.Errorf("candidates_scored_total = %v, want 20", got)
	}
}

// TestRecordScoringLatency_ObservesHistogram はレイテンシヒストグラムに記録されることを検証する。
func TestRecordScoringLatency_ObservesHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordScoringLatency(150 * time.Millisecond)
	c.RecordScoringLatency(300 * time.Millisecond)

	metrics, err := reg.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	found := false
	for _, mf := range metrics {
		if mf.GetName() == "foundermatch_scoring_latency_seconds" {
			found = true
			h := mf.GetMetric()[0].GetHistogram()
			if h.GetSampleCount() != 2 {
				t.Errorf("sample count = %d, want 2", h.GetSampleCount())
			}
		}
	}
	if !found {
		t.Error("foundermatch_scoring_latency_seconds metric not found")
	}
}

// TestRecordMatchUpsertFailure_IncrementsCounter はUPSERT失敗カウンタが増加することを検証する。
func TestRecordMatchUpsertFailure_IncrementsCounter(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordMatchUpsertFailure()

	if got := gatherCounter(t, reg, "foundermatch_match_upsert_fail_total"); got != 1 {
		t.Errorf("match_upsert_fail_total = %v, want 1", got)
	}
}

// TestRecordStatusChange_LabelsByStatus はステータス別にカウントされることを検証する。
func TestRecordStatusChange_LabelsByStatus(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordStatusChange("passed")
	c.RecordStatusChange("passed")
	c.RecordStatusChange("pending")

	metrics, err := reg.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	counts := map[string]float64{}
	for _, mf := range metrics {
		if mf.GetName() != "foundermatch_status_change_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, label := range m.GetLabel() {
				if label.GetName() == "status" {
					counts[label.GetValue()] = m.GetCounter().GetValue()
				}
			}
		}
	}

	if counts["passed"] != 2 {
		t.Errorf("status_change_total{status=passed} = %v, want 2", counts["passed"])
	}
	if counts["pending"] != 1 {
		t.Errorf("status_change_total{status=pending} = %v, want 1", counts["pending"])
	}
}
