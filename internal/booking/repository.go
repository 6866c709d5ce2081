package booking

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/dmytro-malyk-dm/gym-manager/internal/db"
)

const pqUniqueViolation = "23505"

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

type lockedSchedule struct {
	ID        int       `db:"id"`
	StartTime time.Time `db:"start_time"`
	Capacity  int       `db:"capacity"`
}

// Reserve runs the whole check-and-insert sequence in one transaction.
// The schedule row is locked with FOR UPDATE, so concurrent attempts
// against the same schedule serialize and the committed booking count
// can never exceed capacity. Attempts against different schedules do
// not contend.
func (r *repository) Reserve(ctx context.Context, clientID, scheduleID int, now time.Time) (Outcome, *Booking, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return "", nil, err
	}
	defer tx.Rollback()

	var sched lockedSchedule
	err = tx.GetContext(ctx, &sched, `
		SELECT id, start_time, capacity
		FROM schedules
		WHERE id = $1
		FOR UPDATE
	`, scheduleID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return OutcomeNotFound, nil, nil
		}
		return "", nil, err
	}

	if !sched.StartTime.After(now) {
		return OutcomeAlreadyStarted, nil, nil
	}

	var count int
	err = tx.GetContext(ctx, &count, `
		SELECT COUNT(*)
		FROM bookings
		WHERE schedule_id = $1
	`, scheduleID)
	if err != nil {
		return "", nil, err
	}

	if count >= sched.Capacity {
		return OutcomeFull, nil, nil
	}

	var alreadyBooked bool
	err = tx.GetContext(ctx, &alreadyBooked, `
		SELECT EXISTS(
			SELECT 1 FROM bookings
			WHERE client_id = $1 AND schedule_id = $2
		)
	`, clientID, scheduleID)
	if err != nil {
		return "", nil, err
	}

	if alreadyBooked {
		return OutcomeAlreadyBooked, nil, nil
	}

	var conflict bool
	err = tx.GetContext(ctx, &conflict, `
		SELECT EXISTS(
			SELECT 1
			FROM bookings b
			JOIN schedules s ON b.schedule_id = s.id
			WHERE b.client_id = $1
			  AND s.start_time = $2
			  AND b.schedule_id <> $3
		)
	`, clientID, sched.StartTime, scheduleID)
	if err != nil {
		return "", nil, err
	}

	if conflict {
		return OutcomeTimeConflict, nil, nil
	}

	var booking Booking
	err = tx.GetContext(ctx, &booking, `
		INSERT INTO bookings (schedule_id, client_id)
		VALUES ($1, $2)
		RETURNING id, schedule_id, client_id, created_at
	`, scheduleID, clientID)
	if err != nil {
		// Unique (schedule_id, client_id) racing past the exists
		// check still surfaces as a declined outcome.
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return OutcomeAlreadyBooked, nil, nil
		}
		return "", nil, err
	}

	if err := tx.Commit(); err != nil {
		return "", nil, err
	}

	return OutcomeConfirmed, &booking, nil
}

// Release deletes the (client, schedule) booking if one exists and
// reports whether a row was removed.
func (r *repository) Release(ctx context.Context, clientID, scheduleID int) (bool, error) {
	result, err := r.db.ExecContext(ctx, `
		DELETE FROM bookings
		WHERE client_id = $1 AND schedule_id = $2
	`, clientID, scheduleID)
	if err != nil {
		return false, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rowsAffected > 0, nil
}

func (r *repository) CountForSchedule(ctx context.Context, scheduleID int) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `
		SELECT COUNT(*)
		FROM bookings
		WHERE schedule_id = $1
	`, scheduleID)
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *repository) HasBooking(ctx context.Context, clientID, scheduleID int) (bool, error) {
	return db.Exists(ctx, r.db, `
		SELECT EXISTS(
			SELECT 1 FROM bookings
			WHERE client_id = $1 AND schedule_id = $2
		)
	`, clientID, scheduleID)
}

func (r *repository) GetAvailability(ctx context.Context, scheduleID int) (*Availability, error) {
	var availability Availability
	err := r.db.GetContext(ctx, &availability, `
		SELECT
			s.id AS schedule_id,
			s.capacity,
			COUNT(b.id) AS booked_count
		FROM schedules s
		LEFT JOIN bookings b ON b.schedule_id = s.id
		WHERE s.id = $1
		GROUP BY s.id, s.capacity
	`, scheduleID)
	if err != nil {
		return nil, err
	}

	availability.AvailableSeats = availability.Capacity - availability.BookedCount
	if availability.AvailableSeats < 0 {
		availability.AvailableSeats = 0
	}
	availability.IsFull = availability.Capacity-availability.BookedCount <= 0

	return &availability, nil
}

func (r *repository) ListByClient(ctx context.Context, clientID int) ([]BookingWithDetails, error) {
	query := `
		SELECT
			b.id,
			b.schedule_id,
			b.client_id,
			b.created_at,
			s.start_time,
			w.name AS workout_name,
			t.name AS trainer_name,
			u.name AS client_name,
			u.email AS client_email
		FROM bookings b
		JOIN schedules s ON b.schedule_id = s.id
		JOIN workouts w ON s.workout_id = w.id
		JOIN trainer_profiles tp ON w.trainer_id = tp.id
		JOIN users t ON tp.user_id = t.id
		JOIN users u ON b.client_id = u.id
		WHERE b.client_id = $1
		ORDER BY s.start_time ASC
	`

	var bookings []BookingWithDetails
	err := r.db.SelectContext(ctx, &bookings, query, clientID)
	if err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *repository) ListBySchedule(ctx context.Context, scheduleID int) ([]BookingWithDetails, error) {
	query := `
		SELECT
			b.id,
			b.schedule_id,
			b.client_id,
			b.created_at,
			s.start_time,
			w.name AS workout_name,
			t.name AS trainer_name,
			u.name AS client_name,
			u.email AS client_email
		FROM bookings b
		JOIN schedules s ON b.schedule_id = s.id
		JOIN workouts w ON s.workout_id = w.id
		JOIN trainer_profiles tp ON w.trainer_id = tp.id
		JOIN users t ON tp.user_id = t.id
		JOIN users u ON b.client_id = u.id
		WHERE b.schedule_id = $1
		ORDER BY b.created_at ASC
	`

	var bookings []BookingWithDetails
	err := r.db.SelectContext(ctx, &bookings, query, scheduleID)
	if err != nil {
		return nil, err
	}

	return bookings, nil
}
