package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordHTTPRequest(t *testing.T) {
	HTTPRequestsTotal.Reset()
	HTTPRequestDuration.Reset()

	RecordHTTPRequest("GET", "/schedules", "200", 0.5)

	count := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/schedules", "200"))
	assert.Equal(t, float64(1), count)
}

func TestRecordHTTPRequestMultiple(t *testing.T) {
	HTTPRequestsTotal.Reset()

	RecordHTTPRequest("POST", "/auth/login", "200", 0.1)
	RecordHTTPRequest("POST", "/auth/login", "200", 0.2)
	RecordHTTPRequest("POST", "/auth/login", "401", 0.05)

	successCount := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("POST", "/auth/login", "200"))
	failCount := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("POST", "/auth/login", "401"))

	assert.Equal(t, float64(2), successCount)
	assert.Equal(t, float64(1), failCount)
}

func TestRecordReservation(t *testing.T) {
	ReservationsTotal.Reset()

	RecordReservation("confirmed")
	RecordReservation("confirmed")
	RecordReservation("full")

	confirmed := testutil.ToFloat64(ReservationsTotal.WithLabelValues("confirmed"))
	full := testutil.ToFloat64(ReservationsTotal.WithLabelValues("full"))

	assert.Equal(t, float64(2), confirmed)
	assert.Equal(t, float64(1), full)
}

func TestRecordCancellation(t *testing.T) {
	testCounter := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "gym_cancellations_total_test",
			Help: "Total number of booking cancellations",
		},
	)

	oldCounter := CancellationsTotal
	CancellationsTotal = testCounter
	defer func() { CancellationsTotal = oldCounter }()

	RecordCancellation()
	RecordCancellation()

	assert.Equal(t, float64(2), testutil.ToFloat64(testCounter))
}

func TestRecordScheduleCreated(t *testing.T) {
	testCounter := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "gym_schedules_created_total_test",
			Help: "Total number of schedules created",
		},
	)

	oldCounter := SchedulesCreatedTotal
	SchedulesCreatedTotal = testCounter
	defer func() { SchedulesCreatedTotal = oldCounter }()

	RecordScheduleCreated()

	assert.Equal(t, float64(1), testutil.ToFloat64(testCounter))
}

func TestRecordRegistration(t *testing.T) {
	testCounter := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "gym_registrations_total_test",
			Help: "Total number of client registrations",
		},
	)

	oldCounter := RegistrationsTotal
	RegistrationsTotal = testCounter
	defer func() { RegistrationsTotal = oldCounter }()

	RecordRegistration()
	RecordRegistration()
	RecordRegistration()

	assert.Equal(t, float64(3), testutil.ToFloat64(testCounter))
}
