// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector はメトリクス収集のインターフェース。
// マッチングサービス層から利用する。
type MetricsCollector interface {
	RecordMatchRefresh(candidateCount int)
	RecordScoringLatency(duration time.Duration)
	RecordMatchUpsertFailure()
	RecordStatusChange(status string)
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	refreshTotal     prometheus.Counter
	candidatesScored prometheus.Counter
	scoringLatency   prometheus.Histogram
	upsertFail       prometheus.Counter
	statusChange     *prometheus.CounterVec
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		refreshTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "foundermatch_refresh_total",
			Help: "マッチ再計算リクエストの合計数",
		}),
		candidatesScored: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "foundermatch_candidates_scored_total",
			Help: "スコア計算された候補者の合計数",
		}),
		scoringLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "foundermatch_scoring_latency_seconds",
			Help:    "マッチ再計算1回あたりのレイテンシ（秒）",
			Buckets: prometheus.DefBuckets,
		}),
		upsertFail: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "foundermatch_match_upsert_fail_total",
			Help: "マッチレコードUPSERT失敗の合計数",
		}),
		statusChange: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "foundermatch_status_change_total",
			Help: "マッチステータス変更の合計数（遷移先ステータス別）",
		}, []string{"status"}),
	}

	reg.MustRegister(
		c.refreshTotal,
		c.candidatesScored,
		c.scoringLatency,
		c.upsertFail,
		c.statusChange,
	)

	return c
}

// RecordMatchRefresh はマッチ再計算の実行とスコア計算した候補者数を記録する。
func (c *Collector) RecordMatchRefresh(candidateCount int) {
	c.refreshTotal.Inc()
	c.candidatesScored.Add(float64(candidateCount))
}

// RecordScoringLatency はマッチ再計算のレイテンシを記録する。
func (c *Collector) RecordScoringLatency(duration time.Duration) {
	c.scoringLatency.Observe(duration.Seconds())
}

// RecordMatchUpsertFailure はマッチレコードUPSERTの失敗を記録する。
func (c *Collector) RecordMatchUpsertFailure() {
	c.upsertFail.Inc()
}

// RecordStatusChange はマッチステータスの変更を遷移先ステータス別に記録する。
func (c *Collector) RecordStatusChange(status string) {
	c.statusChange.WithLabelValues(status).Inc()
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// compile-time interface check
var _ MetricsCollector = (*Collector)(nil)
