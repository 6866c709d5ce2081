package workout

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmytro-malyk-dm/gym-manager/internal/metrics"
	"github.com/dmytro-malyk-dm/gym-manager/internal/user"
)

var (
	ErrWorkoutNotFound = errors.New("workout not found")
	ErrTrainerNotFound = errors.New("trainer profile not found")
	ErrNotAllowed      = errors.New("not allowed to manage this workout")
)

type Actor struct {
	ID   int
	Role string
}

type Service interface {
	Create(ctx context.Context, actor Actor, req CreateWorkoutRequest) (*Workout, error)
	Update(ctx context.Context, actor Actor, workoutID int, req UpdateWorkoutRequest) (*Workout, error)
	Delete(ctx context.Context, actor Actor, workoutID int) error
	GetByID(ctx context.Context, workoutID int) (*WorkoutWithTrainer, error)
	List(ctx context.Context) ([]WorkoutWithTrainer, error)
	ListByTrainer(ctx context.Context, trainerID int) ([]Workout, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{
		repo: repo,
	}
}

// Create adds a workout. A trainer always creates under their own
// profile; an admin names the target trainer in the request.
func (s *service) Create(ctx context.Context, actor Actor, req CreateWorkoutRequest) (*Workout, error) {
	var trainerID int

	switch actor.Role {
	case user.RoleTrainer:
		id, err := s.repo.GetTrainerIDByUserID(ctx, actor.ID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, ErrTrainerNotFound
			}
			return nil, err
		}
		trainerID = id
	case user.RoleAdmin:
		if req.TrainerID == 0 {
			return nil, ErrTrainerNotFound
		}
		trainerID = req.TrainerID
	default:
		return nil, ErrNotAllowed
	}

	workout, err := s.repo.Create(ctx, req.Name, req.Description, req.DurationMinutes, trainerID)
	if err != nil {
		return nil, err
	}

	metrics.RecordWorkoutCreated()
	return workout, nil
}

func (s *service) Update(ctx context.Context, actor Actor, workoutID int, req UpdateWorkoutRequest) (*Workout, error) {
	if err := s.authorize(ctx, actor, workoutID); err != nil {
		return nil, err
	}

	return s.repo.Update(ctx, workoutID, req.Name, req.Description, req.DurationMinutes)
}

// Delete cascades to the workout's schedules and their bookings.
func (s *service) Delete(ctx context.Context, actor Actor, workoutID int) error {
	if err := s.authorize(ctx, actor, workoutID); err != nil {
		return err
	}

	return s.repo.Delete(ctx, workoutID)
}

func (s *service) GetByID(ctx context.Context, workoutID int) (*WorkoutWithTrainer, error) {
	workout, err := s.repo.GetByID(ctx, workoutID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	return workout, nil
}

func (s *service) List(ctx context.Context) ([]WorkoutWithTrainer, error) {
	return s.repo.ListAll(ctx)
}

func (s *service) ListByTrainer(ctx context.Context, trainerID int) ([]Workout, error) {
	return s.repo.ListByTrainer(ctx, trainerID)
}

func (s *service) authorize(ctx context.Context, actor Actor, workoutID int) error {
	ownerID, err := s.repo.GetOwnerUserID(ctx, workoutID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrWorkoutNotFound
		}
		return err
	}

	switch actor.Role {
	case user.RoleAdmin:
		return nil
	case user.RoleTrainer:
		if actor.ID == ownerID {
			return nil
		}
		return ErrNotAllowed
	default:
		return ErrNotAllowed
	}
}
