package oracle

import (
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CallEvent records metadata about a single oracle invocation.
type CallEvent struct {
	Task      TaskType
	Model     string
	LatencyMs int64
	Success   bool
	ErrorCode string
}

// Observer receives events about oracle calls for logging and metrics.
type Observer interface {
	OnCallComplete(event CallEvent)
}

// LogObserver writes oracle call events to an io.Writer.
type LogObserver struct {
	w io.Writer
}

// NewLogObserver creates an Observer that logs events to w.
func NewLogObserver(w io.Writer) *LogObserver {
	return &LogObserver{w: w}
}

func (o *LogObserver) OnCallComplete(event CallEvent) {
	ts := time.Now().UTC().Format(time.RFC3339)
	status := "ok"
	if !event.Success {
		status = "err:" + event.ErrorCode
	}
	fmt.Fprintf(o.w, "[%s] oracle_call task=%s model=%s latency_ms=%d status=%s\n",
		ts, event.Task, event.Model, event.LatencyMs, status)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(CallEvent) {}

// MetricsObserver exports oracle call counts and latencies as Prometheus
// metrics.
type MetricsObserver struct {
	calls   *prometheus.CounterVec
	latency *prometheus.HistogramVec
}

// NewMetricsObserver creates an Observer registered against reg.
func NewMetricsObserver(reg prometheus.Registerer) *MetricsObserver {
	o := &MetricsObserver{
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "goalgrid_oracle_calls_total",
			Help: "Oracle generation calls by task and outcome.",
		}, []string{"task", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "goalgrid_oracle_call_seconds",
			Help:    "Oracle generation call latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"task"}),
	}
	reg.MustRegister(o.calls, o.latency)
	return o
}

func (o *MetricsObserver) OnCallComplete(event CallEvent) {
	status := "ok"
	if !event.Success {
		status = event.ErrorCode
		if status == "" {
			status = "UNKNOWN"
		}
	}
	o.calls.WithLabelValues(string(event.Task), status).Inc()
	o.latency.WithLabelValues(string(event.Task)).Observe(float64(event.LatencyMs) / 1000)
}

// MultiObserver fans events out to several observers.
type MultiObserver []Observer

func (m MultiObserver) OnCallComplete(event CallEvent) {
	for _, o := range m {
		o.OnCallComplete(event)
	}
}
