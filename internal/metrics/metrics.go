// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector はメトリクス収集のインターフェース。
// ハンドラーやサービス層から利用する。
type MetricsCollector interface {
	RecordHTTPStatus(statusCode int)
	RecordRequestLatency(duration time.Duration)
	RecordApplicationCreated()
	RecordStageTransition(stage string)
	RecordStatusTransition(status string)
	RecordAuthFailure(reason string)
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	httpStatus       *prometheus.CounterVec
	requestLatency   prometheus.Histogram
	appsCreated      prometheus.Counter
	stageTransition  *prometheus.CounterVec
	statusTransition *prometheus.CounterVec
	authFailures     *prometheus.CounterVec
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "jobtrack_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
		requestLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "jobtrack_request_latency_seconds",
			Help:    "HTTPリクエスト処理のレイテンシ（秒）",
			Buckets: prometheus.DefBuckets,
		}),
		appsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "jobtrack_applications_created_total",
			Help: "作成された応募記録の合計数",
		}),
		stageTransition: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "jobtrack_stage_transitions_total",
			Help: "選考段階の遷移数（遷移先の段階別）",
		}, []string{"stage"}),
		statusTransition: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "jobtrack_status_transitions_total",
			Help: "応募状態の遷移数（遷移先の状態別）",
		}, []string{"status"}),
		authFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "jobtrack_auth_failures_total",
			Help: "認証失敗の合計数（理由別）",
		}, []string{"reason"}),
	}

	reg.MustRegister(
		c.httpStatus,
		c.requestLatency,
		c.appsCreated,
		c.stageTransition,
		c.statusTransition,
		c.authFailures,
	)

	return c
}

// RecordHTTPStatus はHTTPステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// RecordRequestLatency はリクエスト処理のレイテンシを記録する。
func (c *Collector) RecordRequestLatency(duration time.Duration) {
	c.requestLatency.Observe(duration.Seconds())
}

// RecordApplicationCreated は応募記録の作成を記録する。
func (c *Collector) RecordApplicationCreated() {
	c.appsCreated.Inc()
}

// RecordStageTransition は選考段階の遷移を記録する。
func (c *Collector) RecordStageTransition(stage string) {
	c.stageTransition.WithLabelValues(stage).Inc()
}

// RecordStatusTransition は応募状態の遷移を記録する。
func (c *Collector) RecordStatusTransition(status string) {
	c.statusTransition.WithLabelValues(status).Inc()
}

// RecordAuthFailure は認証失敗を記録する。
func (c *Collector) RecordAuthFailure(reason string) {
	c.authFailures.WithLabelValues(reason).Inc()
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// compile-time interface check
var _ MetricsCollector = (*Collector)(nil)
