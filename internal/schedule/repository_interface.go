package schedule

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, workoutID int, startTime time.Time, capacity int) (*Schedule, error)
	GetByID(ctx context.Context, id int) (*Schedule, error)
	Update(ctx context.Context, id int, startTime time.Time, capacity int) (*Schedule, error)
	Delete(ctx context.Context, id int) error
	ListAll(ctx context.Context, onlyFuture bool) ([]ScheduleWithDetails, error)
	ListByWorkout(ctx context.Context, workoutID int) ([]Schedule, error)
	GetWorkoutOwner(ctx context.Context, workoutID int) (int, error)
	GetScheduleOwner(ctx context.Context, scheduleID int) (int, error)
}
