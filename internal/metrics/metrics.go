package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "navalha",
			Name:      "http_requests_total",
			Help:      "Count of HTTP requests by endpoint.",
		},
		[]string{"endpoint"},
	)

	appointmentCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "navalha",
			Name:      "appointment_created_total",
			Help:      "Count of appointments created.",
		},
	)

	appointmentCanceled = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "navalha",
			Name:      "appointment_canceled_total",
			Help:      "Count of appointments canceled.",
		},
	)

	availabilityCache = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "navalha",
			Name:      "availability_cache_total",
			Help:      "Availability cache lookups by outcome.",
		},
		[]string{"outcome"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, appointmentCreated, appointmentCanceled, availabilityCache)
	})
}

func IncHTTP(endpoint string) {
	httpRequests.WithLabelValues(endpoint).Inc()
}

func IncAppointmentCreated() {
	appointmentCreated.Inc()
}

func IncAppointmentCanceled() {
	appointmentCanceled.Inc()
}

func IncCacheHit() {
	availabilityCache.WithLabelValues("hit").Inc()
}

func IncCacheMiss() {
	availabilityCache.WithLabelValues("miss").Inc()
}
