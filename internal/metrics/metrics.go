package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gym_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gym_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	ReservationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gym_reservations_total",
			Help: "Total number of reservation attempts by outcome",
		},
		[]string{"outcome"},
	)

	CancellationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gym_cancellations_total",
			Help: "Total number of booking cancellations",
		},
	)

	SchedulesCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gym_schedules_created_total",
			Help: "Total number of schedules created",
		},
	)

	WorkoutsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gym_workouts_created_total",
			Help: "Total number of workouts created",
		},
	)

	RegistrationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gym_registrations_total",
			Help: "Total number of client registrations",
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordReservation(outcome string) {
	ReservationsTotal.WithLabelValues(outcome).Inc()
}

func RecordCancellation() {
	CancellationsTotal.Inc()
}

func RecordScheduleCreated() {
	SchedulesCreatedTotal.Inc()
}

func RecordWorkoutCreated() {
	WorkoutsCreatedTotal.Inc()
}

func RecordRegistration() {
	RegistrationsTotal.Inc()
}
