package integration

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmytro-malyk-dm/gym-manager/internal/booking"
	"github.com/dmytro-malyk-dm/gym-manager/internal/user"
)

func TestUserDeleteCascadesBookings(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	conn := setupTestDB(t)
	defer conn.Close()
	cleanDatabase(t, conn)

	_, trainerID := createTestTrainer(t, conn, "trainer@example.com", "Coach")
	workoutID := createTestWorkout(t, conn, trainerID, "Yoga")

	scheduleA := createTestSchedule(t, conn, workoutID, time.Now().Add(24*time.Hour), 5)
	scheduleB := createTestSchedule(t, conn, workoutID, time.Now().Add(48*time.Hour), 5)

	bookingSvc := booking.NewService(booking.NewRepository(conn))

	clientA := createTestUser(t, conn, "a@example.com", "Client A", user.RoleClient)
	clientB := createTestUser(t, conn, "b@example.com", "Client B", user.RoleClient)

	for _, scheduleID := range []int{scheduleA, scheduleB} {
		outcome, _, err := bookingSvc.Reserve(context.Background(), booking.Actor{ID: clientA, Role: user.RoleClient}, scheduleID)
		require.NoError(t, err)
		require.Equal(t, booking.OutcomeConfirmed, outcome)
	}

	outcome, _, err := bookingSvc.Reserve(context.Background(), booking.Actor{ID: clientB, Role: user.RoleClient}, scheduleA)
	require.NoError(t, err)
	require.Equal(t, booking.OutcomeConfirmed, outcome)

	userSvc := user.NewService(user.NewRepository(conn), testJWTSecret)
	require.NoError(t, userSvc.DeleteUser(context.Background(), clientA))

	// the deleted client's bookings and profile are gone
	var count int
	require.NoError(t, conn.Get(&count, "SELECT COUNT(*) FROM bookings WHERE client_id = $1", clientA))
	assert.Equal(t, 0, count)

	require.NoError(t, conn.Get(&count, "SELECT COUNT(*) FROM client_profiles WHERE user_id = $1", clientA))
	assert.Equal(t, 0, count)

	// the other client's booking and both schedules survive
	require.NoError(t, conn.Get(&count, "SELECT COUNT(*) FROM bookings WHERE client_id = $1", clientB))
	assert.Equal(t, 1, count)

	require.NoError(t, conn.Get(&count, "SELECT COUNT(*) FROM schedules"))
	assert.Equal(t, 2, count)

	// the freed seat can be rebooked
	outcome, _, err = bookingSvc.Reserve(context.Background(), booking.Actor{ID: clientB, Role: user.RoleClient}, scheduleB)
	require.NoError(t, err)
	assert.Equal(t, booking.OutcomeConfirmed, outcome)

	// deleting the same account again reports not found
	err = userSvc.DeleteUser(context.Background(), clientA)
	require.ErrorIs(t, err, user.ErrUserNotFound)
}
