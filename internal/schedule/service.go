package schedule

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/dmytro-malyk-dm/gym-manager/internal/metrics"
	"github.com/dmytro-malyk-dm/gym-manager/internal/user"
)

var (
	ErrScheduleNotFound = errors.New("schedule not found")
	ErrWorkoutNotFound  = errors.New("workout not found")
	ErrNotAllowed       = errors.New("not allowed to manage this schedule")
	ErrInvalidStartTime = errors.New("invalid start time")
	ErrStartTimeInPast  = errors.New("start time must be in the future")
	ErrAlreadyStarted   = errors.New("schedule has already started")
)

// Actor is the authenticated caller a mutation runs under.
type Actor struct {
	ID   int
	Role string
}

type Service interface {
	Create(ctx context.Context, actor Actor, req CreateScheduleRequest) (*Schedule, error)
	Update(ctx context.Context, actor Actor, scheduleID int, req UpdateScheduleRequest) (*Schedule, error)
	Delete(ctx context.Context, actor Actor, scheduleID int) error
	GetByID(ctx context.Context, scheduleID int) (*Schedule, error)
	List(ctx context.Context, onlyFuture bool) ([]ScheduleWithDetails, error)
	ListByWorkout(ctx context.Context, workoutID int) ([]Schedule, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &service{
		repo: repo,
		now:  time.Now,
	}
}

func NewServiceWithClock(repo Repository, now func() time.Time) Service {
	return &service{
		repo: repo,
		now:  now,
	}
}

// Create makes a new bookable slot. Trainers may schedule only their
// own workouts; admins may schedule any. The start time must be
// strictly in the future.
func (s *service) Create(ctx context.Context, actor Actor, req CreateScheduleRequest) (*Schedule, error) {
	ownerID, err := s.repo.GetWorkoutOwner(ctx, req.WorkoutID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}

	if err := s.authorize(actor, ownerID); err != nil {
		return nil, err
	}

	startTime, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return nil, ErrInvalidStartTime
	}

	if !startTime.After(s.now()) {
		return nil, ErrStartTimeInPast
	}

	schedule, err := s.repo.Create(ctx, req.WorkoutID, startTime, req.Capacity)
	if err != nil {
		return nil, err
	}

	metrics.RecordScheduleCreated()
	return schedule, nil
}

// Update mutates a schedule that has not started yet. The guard is on
// the current start time: once a schedule's slot has begun it is frozen
// against edits regardless of the proposed new time.
func (s *service) Update(ctx context.Context, actor Actor, scheduleID int, req UpdateScheduleRequest) (*Schedule, error) {
	current, err := s.repo.GetByID(ctx, scheduleID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrScheduleNotFound
		}
		return nil, err
	}

	ownerID, err := s.repo.GetScheduleOwner(ctx, scheduleID)
	if err != nil {
		return nil, err
	}

	if err := s.authorize(actor, ownerID); err != nil {
		return nil, err
	}

	if !current.StartTime.After(s.now()) {
		return nil, ErrAlreadyStarted
	}

	startTime, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return nil, ErrInvalidStartTime
	}

	return s.repo.Update(ctx, scheduleID, startTime, req.Capacity)
}

// Delete has no time restriction; bookings cascade away with the row.
func (s *service) Delete(ctx context.Context, actor Actor, scheduleID int) error {
	ownerID, err := s.repo.GetScheduleOwner(ctx, scheduleID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrScheduleNotFound
		}
		return err
	}

	if err := s.authorize(actor, ownerID); err != nil {
		return err
	}

	return s.repo.Delete(ctx, scheduleID)
}

func (s *service) GetByID(ctx context.Context, scheduleID int) (*Schedule, error) {
	schedule, err := s.repo.GetByID(ctx, scheduleID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrScheduleNotFound
		}
		return nil, err
	}
	return schedule, nil
}

func (s *service) List(ctx context.Context, onlyFuture bool) ([]ScheduleWithDetails, error) {
	return s.repo.ListAll(ctx, onlyFuture)
}

func (s *service) ListByWorkout(ctx context.Context, workoutID int) ([]Schedule, error) {
	return s.repo.ListByWorkout(ctx, workoutID)
}

func (s *service) authorize(actor Actor, ownerID int) error {
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
