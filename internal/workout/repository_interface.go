package workout

import "context"

type Repository interface {
	Create(ctx context.Context, name, description string, durationMinutes, trainerID int) (*Workout, error)
	GetByID(ctx context.Context, id int) (*WorkoutWithTrainer, error)
	Update(ctx context.Context, id int, name, description string, durationMinutes int) (*Workout, error)
	Delete(ctx context.Context, id int) error
	ListAll(ctx context.Context) ([]WorkoutWithTrainer, error)
	ListByTrainer(ctx context.Context, trainerID int) ([]Workout, error)
	GetTrainerIDByUserID(ctx context.Context, userID int) (int, error)
	GetOwnerUserID(ctx context.Context, workoutID int) (int, error)
}
