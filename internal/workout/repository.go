package workout

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, name, description string, durationMinutes, trainerID int) (*Workout, error) {
	query := `
		INSERT INTO workouts (name, description, duration_minutes, trainer_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, description, duration_minutes, trainer_id
	`

	var workout Workout
	err := r.db.GetContext(ctx, &workout, query, name, description, durationMinutes, trainerID)
	if err != nil {
		return nil, err
	}

	return &workout, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*WorkoutWithTrainer, error) {
	query := `
		SELECT
			w.id,
			w.name,
			w.description,
			w.duration_minutes,
			w.trainer_id,
			u.name AS trainer_name,
			sp.name AS specialization
		FROM workouts w
		JOIN trainer_profiles tp ON w.trainer_id = tp.id
		JOIN users u ON tp.user_id = u.id
		LEFT JOIN specializations sp ON tp.specialization_id = sp.id
		WHERE w.id = $1
	`

	var workout WorkoutWithTrainer
	err := r.db.GetContext(ctx, &workout, query, id)
	if err != nil {
		return nil, err
	}

	return &workout, nil
}

func (r *repository) Update(ctx context.Context, id int, name, description string, durationMinutes int) (*Workout, error) {
	query := `
		UPDATE workouts
		SET name = $2, description = $3, duration_minutes = $4
		WHERE id = $1
		RETURNING id, name, description, duration_minutes, trainer_id
	`

	var workout Workout
	err := r.db.GetContext(ctx, &workout, query, id, name, description, durationMinutes)
	if err != nil {
		return nil, err
	}

	return &workout, nil
}

// Delete removes the workout; schedules and their bookings cascade.
func (r *repository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM workouts WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrWorkoutNotFound
	}

	return nil
}

func (r *repository) ListAll(ctx context.Context) ([]WorkoutWithTrainer, error) {
	query := `
		SELECT
			w.id,
			w.name,
			w.description,
			w.duration_minutes,
			w.trainer_id,
			u.name AS trainer_name,
			sp.name AS specialization
		FROM workouts w
		JOIN trainer_profiles tp ON w.trainer_id = tp.id
		JOIN users u ON tp.user_id = u.id
		LEFT JOIN specializations sp ON tp.specialization_id = sp.id
		ORDER BY w.name ASC
	`

	var workouts []WorkoutWithTrainer
	err := r.db.SelectContext(ctx, &workouts, query)
	if err != nil {
		return nil, err
	}

	return workouts, nil
}

func (r *repository) ListByTrainer(ctx context.Context, trainerID int) ([]Workout, error) {
	query := `
		SELECT id, name, description, duration_minutes, trainer_id
		FROM workouts
		WHERE trainer_id = $1
		ORDER BY name ASC
	`

	var workouts []Workout
	err := r.db.SelectContext(ctx, &workouts, query, trainerID)
	if err != nil {
		return nil, err
	}

	return workouts, nil
}

func (r *repository) GetTrainerIDByUserID(ctx context.Context, userID int) (int, error) {
	query := `SELECT id FROM trainer_profiles WHERE user_id = $1`

	var trainerID int
	err := r.db.GetContext(ctx, &trainerID, query, userID)
	if err != nil {
		return 0, err
	}

	return trainerID, nil
}

func (r *repository) GetOwnerUserID(ctx context.Context, workoutID int) (int, error) {
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
