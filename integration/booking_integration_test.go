package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmytro-malyk-dm/gym-manager/internal/auth"
	"github.com/dmytro-malyk-dm/gym-manager/internal/booking"
	"github.com/dmytro-malyk-dm/gym-manager/internal/user"
)

func TestConcurrentLastSeat(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	conn := setupTestDB(t)
	defer conn.Close()
	cleanDatabase(t, conn)

	_, trainerID := createTestTrainer(t, conn, "trainer@example.com", "Coach")
	workoutID := createTestWorkout(t, conn, trainerID, "Yoga")
	scheduleID := createTestSchedule(t, conn, workoutID, time.Now().Add(24*time.Hour), 1)

	svc := booking.NewService(booking.NewRepository(conn))

	clientA := createTestUser(t, conn, "a@example.com", "Client A", user.RoleClient)
	clientB := createTestUser(t, conn, "b@example.com", "Client B", user.RoleClient)

	var wg sync.WaitGroup
	outcomes := make(chan booking.Outcome, 2)

	for _, clientID := range []int{clientA, clientB} {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			outcome, _, err := svc.Reserve(context.Background(), booking.Actor{ID: id, Role: user.RoleClient}, scheduleID)
			require.NoError(t, err)
			outcomes <- outcome
		}(clientID)
	}

	wg.Wait()
	close(outcomes)

	counts := map[booking.Outcome]int{}
	for outcome := range outcomes {
		counts[outcome]++
	}

	// exactly one winner for the last seat
	assert.Equal(t, 1, counts[booking.OutcomeConfirmed])
	assert.Equal(t, 1, counts[booking.OutcomeFull])

	var total int
	require.NoError(t, conn.Get(&total, "SELECT COUNT(*) FROM bookings WHERE schedule_id = $1", scheduleID))
	assert.Equal(t, 1, total)
}

func TestReserveOutcomesEndToEnd(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	conn := setupTestDB(t)
	defer conn.Close()
	cleanDatabase(t, conn)

	trainerUserID, trainerID := createTestTrainer(t, conn, "trainer@example.com", "Coach")
	workoutID := createTestWorkout(t, conn, trainerID, "Yoga")

	start := time.Now().Add(24 * time.Hour).Truncate(time.Second)
	scheduleID := createTestSchedule(t, conn, workoutID, start, 5)

	svc := booking.NewService(booking.NewRepository(conn))
	clientID := createTestUser(t, conn, "client@example.com", "Client", user.RoleClient)
	actor := booking.Actor{ID: clientID, Role: user.RoleClient}

	outcome, booked, err := svc.Reserve(context.Background(), actor, scheduleID)
	require.NoError(t, err)
	require.Equal(t, booking.OutcomeConfirmed, outcome)
	require.NotNil(t, booked)

	// booking again is reported, not duplicated
	outcome, _, err = svc.Reserve(context.Background(), actor, scheduleID)
	require.NoError(t, err)
	assert.Equal(t, booking.OutcomeAlreadyBooked, outcome)

	var total int
	require.NoError(t, conn.Get(&total, "SELECT COUNT(*) FROM bookings WHERE client_id = $1", clientID))
	assert.Equal(t, 1, total)

	// another workout at the same start time is a conflict
	otherWorkoutID := createTestWorkout(t, conn, trainerID, "Boxing")
	otherScheduleID := createTestSchedule(t, conn, otherWorkoutID, start, 5)

	outcome, _, err = svc.Reserve(context.Background(), actor, otherScheduleID)
	require.NoError(t, err)
	assert.Equal(t, booking.OutcomeTimeConflict, outcome)

	// a schedule whose start time has passed cannot be booked
	pastScheduleID := createTestSchedule(t, conn, workoutID, time.Now().Add(-time.Hour), 5)

	outcome, _, err = svc.Reserve(context.Background(), actor, pastScheduleID)
	require.NoError(t, err)
	assert.Equal(t, booking.OutcomeAlreadyStarted, outcome)

	// unknown schedule
	outcome, _, err = svc.Reserve(context.Background(), actor, 999999)
	require.NoError(t, err)
	assert.Equal(t, booking.OutcomeNotFound, outcome)

	// trainers cannot book
	trainerActor := booking.Actor{ID: trainerUserID, Role: user.RoleTrainer}
	outcome, _, err = svc.Reserve(context.Background(), trainerActor, scheduleID)
	require.NoError(t, err)
	assert.Equal(t, booking.OutcomeRoleNotAllowed, outcome)
}

func TestReleaseIsIdempotent(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	conn := setupTestDB(t)
	defer conn.Close()
	cleanDatabase(t, conn)

	_, trainerID := createTestTrainer(t, conn, "trainer@example.com", "Coach")
	workoutID := createTestWorkout(t, conn, trainerID, "Yoga")
	scheduleID := createTestSchedule(t, conn, workoutID, time.Now().Add(24*time.Hour), 5)

	svc := booking.NewService(booking.NewRepository(conn))
	clientID := createTestUser(t, conn, "client@example.com", "Client", user.RoleClient)
	actor := booking.Actor{ID: clientID, Role: user.RoleClient}

	outcome, _, err := svc.Reserve(context.Background(), actor, scheduleID)
	require.NoError(t, err)
	require.Equal(t, booking.OutcomeConfirmed, outcome)

	released, err := svc.Release(context.Background(), actor, scheduleID)
	require.NoError(t, err)
	assert.Equal(t, booking.OutcomeCancelled, released)

	// second cancel reports the same outcome with nothing to delete
	released, err = svc.Release(context.Background(), actor, scheduleID)
	require.NoError(t, err)
	assert.Equal(t, booking.OutcomeCancelled, released)

	// the seat is free again
	outcome, _, err = svc.Reserve(context.Background(), actor, scheduleID)
	require.NoError(t, err)
	assert.Equal(t, booking.OutcomeConfirmed, outcome)
}

func TestScheduleDeleteCascadesBookings(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	conn := setupTestDB(t)
	defer conn.Close()
	cleanDatabase(t, conn)

	_, trainerID := createTestTrainer(t, conn, "trainer@example.com", "Coach")
	workoutID := createTestWorkout(t, conn, trainerID, "Yoga")
	scheduleID := createTestSchedule(t, conn, workoutID, time.Now().Add(24*time.Hour), 5)

	svc := booking.NewService(booking.NewRepository(conn))
	clientID := createTestUser(t, conn, "client@example.com", "Client", user.RoleClient)

	outcome, _, err := svc.Reserve(context.Background(), booking.Actor{ID: clientID, Role: user.RoleClient}, scheduleID)
	require.NoError(t, err)
	require.Equal(t, booking.OutcomeConfirmed, outcome)

	_, err = conn.Exec("DELETE FROM schedules WHERE id = $1", scheduleID)
	require.NoError(t, err)

	var total int
	require.NoError(t, conn.Get(&total, "SELECT COUNT(*) FROM bookings WHERE schedule_id = $1", scheduleID))
	assert.Equal(t, 0, total)
}

func TestBookingHTTPFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	conn := setupTestDB(t)
	defer conn.Close()
	cleanDatabase(t, conn)

	_, trainerID := createTestTrainer(t, conn, "trainer@example.com", "Coach")
	workoutID := createTestWorkout(t, conn, trainerID, "Yoga")
	scheduleID := createTestSchedule(t, conn, workoutID, time.Now().Add(24*time.Hour), 1)

	handler := booking.NewHandler(booking.NewService(booking.NewRepository(conn)))

	gin.SetMode(gin.TestMode)
	router := gin.New()
	protected := router.Group("/", auth.AuthMiddleware(testJWTSecret))
	protected.POST("/schedules/:scheduleID/book", handler.Reserve)
	protected.POST("/schedules/:scheduleID/cancel", handler.Release)
	protected.GET("/schedules/:scheduleID/availability", handler.Availability)

	clientID := createTestUser(t, conn, "client@example.com", "Client", user.RoleClient)
	token := generateTestToken(t, clientID, "client@example.com", user.RoleClient)

	do := func(method, path string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(method, path, nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)
		return w
	}

	bookPath := fmt.Sprintf("/schedules/%d/book", scheduleID)

	w := do(http.MethodPost, bookPath)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp booking.ReserveResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, booking.OutcomeConfirmed, resp.Outcome)
	require.NotNil(t, resp.Booking)

	// the schedule is now full for everyone else
	otherID := createTestUser(t, conn, "other@example.com", "Other", user.RoleClient)
	otherToken := generateTestToken(t, otherID, "other@example.com", user.RoleClient)

	w = httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, bookPath, nil)
	req.Header.Set("Authorization", "Bearer "+otherToken)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusConflict, w.Code)

	// availability reflects the taken seat
	w = do(http.MethodGet, fmt.Sprintf("/schedules/%d/availability", scheduleID))
	require.Equal(t, http.StatusOK, w.Code)

	var availability booking.Availability
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &availability))
	assert.Equal(t, 0, availability.AvailableSeats)
	assert.True(t, availability.IsFull)
	assert.True(t, availability.IsBooked)

	// cancel frees the seat
	w = do(http.MethodPost, fmt.Sprintf("/schedules/%d/cancel", scheduleID))
	require.Equal(t, http.StatusOK, w.Code)

	w = do(http.MethodGet, fmt.Sprintf("/schedules/%d/availability", scheduleID))
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &availability))
	assert.Equal(t, 1, availability.AvailableSeats)
	assert.False(t, availability.IsBooked)

	// no token, no booking
	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodPost, bookPath, nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
