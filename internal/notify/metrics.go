package notify

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus metrics for the reminder loop.
type Metrics struct {
	SentTotal    *prometheus.CounterVec
	QueueSize    prometheus.Gauge
	SendDuration prometheus.Histogram
	Retries      prometheus.Counter
}

// NewMetrics creates and registers reminder metrics.
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		SentTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "reminders_sent_total",
				Help:      "Total number of reminders processed",
			},
			[]string{"status"},
		),
		QueueSize: promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "reminders_queue_size",
				Help:      "Reminders pending in the current window",
			},
		),
		SendDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "reminder_send_duration_seconds",
				Help:      "Time to deliver one reminder",
				Buckets:   []float64{.01, .05, .1, .5, 1, 2, 5},
			},
		),
		Retries: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "reminder_retries_total",
				Help:      "Total number of send retries",
			},
		),
	}
}

// IncSent increments the processed counter for a status.
func (m *Metrics) IncSent(status string) {
	if m == nil {
		return
	}
	m.SentTotal.WithLabelValues(status).Inc()
}

// SetQueueSize records the pending window size.
func (m *Metrics) SetQueueSize(n int) {
	if m == nil {
		return
	}
	m.QueueSize.Set(float64(n))
}

// ObserveSendDuration records one delivery time.
func (m *Metrics) ObserveSendDuration(seconds float64) {
	if m == nil {
		return
	}
	m.SendDuration.Observe(seconds)
}

// IncRetries counts one retry attempt.
func (m *Metrics) IncRetries() {
	if m == nil {
		return
	}
	m.Retries.Inc()
}
