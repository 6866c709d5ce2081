package schedule

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, workoutID int, startTime time.Time, capacity int) (*Schedule, error) {
	query := `
		INSERT INTO schedules (workout_id, start_time, capacity)
		VALUES ($1, $2, $3)
		RETURNING id, workout_id, start_time, capacity, created_at
	`

	var schedule Schedule
	err := r.db.GetContext(ctx, &schedule, query, workoutID, startTime, capacity)
	if err != nil {
		return nil, err
	}

	return &schedule, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Schedule, error) {
	query := `
		SELECT id, workout_id, start_time, capacity, created_at
		FROM schedules
		WHERE id = $1
	`

	var schedule Schedule
	err := r.db.GetContext(ctx, &schedule, query, id)
	if err != nil {
		return nil, err
	}

	return &schedule, nil
}

func (r *repository) Update(ctx context.Context, id int, startTime time.Time, capacity int) (*Schedule, error) {
	query := `
		UPDATE schedules
		SET start_time = $2, capacity = $3
		WHERE id = $1
		RETURNING id, workout_id, start_time, capacity, created_at
	`

	var schedule Schedule
	err := r.db.GetContext(ctx, &schedule, query, id, startTime, capacity)
	if err != nil {
		return nil, err
	}

	return &schedule, nil
}

// Delete removes the schedule; its bookings go with it via
// ON DELETE CASCADE.
func (r *repository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM schedules WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrScheduleNotFound
	}

	return nil
}

func (r *repository) ListAll(ctx context.Context, onlyFuture bool) ([]ScheduleWithDetails, error) {
	query := `
		SELECT
			s.id,
			s.workout_id,
			s.start_time,
			s.capacity,
			s.created_at,
			w.name AS workout_name,
			u.name AS trainer_name,
			COUNT(b.id) AS booked_count
		FROM schedules s
		JOIN workouts w ON s.workout_id = w.id
		JOIN trainer_profiles tp ON w.trainer_id = tp.id
		JOIN users u ON tp.user_id = u.id
		LEFT JOIN bookings b ON b.schedule_id = s.id
	`

	if onlyFuture {
		query += " WHERE s.start_time > NOW()"
	}

	query += `
		GROUP BY s.id, s.workout_id, s.start_time, s.capacity, s.created_at, w.name, u.name
		ORDER BY s.start_time ASC
	`

	var schedules []ScheduleWithDetails
	err := r.db.SelectContext(ctx, &schedules, query)
	if err != nil {
		return nil, err
	}

	for i := range schedules {
		available := schedules[i].Capacity - schedules[i].BookedCount
		if available < 0 {
			available = 0
		}
		schedules[i].AvailableSeats = available
		schedules[i].IsFull = schedules[i].Capacity-schedules[i].BookedCount <= 0
	}

	return schedules, nil
}

func (r *repository) ListByWorkout(ctx context.Context, workoutID int) ([]Schedule, error) {
	query := `
		SELECT id, workout_id, start_time, capacity, created_at
		FROM schedules
		WHERE workout_id = $1
		ORDER BY start_time ASC
	`

	var schedules []Schedule
	err := r.db.SelectContext(ctx, &schedules, query, workoutID)
	if err != nil {
		return nil, err
	}

	return schedules, nil
}

// GetWorkoutOwner returns the user ID of the trainer owning a workout.
func (r *repository) GetWorkoutOwner(ctx context.Context, workoutID int) (int, error) {
	query := `
		SELECT tp.user_id
		FROM workouts w
		JOIN trainer_profiles tp ON w.trainer_id = tp.id
		WHERE w.id = $1
	`

	var userID int
	err := r.db.GetContext(ctx, &userID, query, workoutID)
	if err != nil {
		return 0, err
	}

	return userID, nil
}

// GetScheduleOwner returns the user ID of the trainer owning the
// schedule's workout.
func (r *repository) GetScheduleOwner(ctx context.Context, scheduleID int) (int, error) {
	query := `
		SELECT tp.user_id
		FROM schedules s
		JOIN workouts w ON s.workout_id = w.id
		JOIN trainer_profiles tp ON w.trainer_id = tp.id
		WHERE s.id = $1
	`

	var userID int
	err := r.db.GetContext(ctx, &userID, query, scheduleID)
	if err != nil {
		return 0, err
	}

	return userID, nil
}
