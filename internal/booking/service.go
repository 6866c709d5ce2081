package booking

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/dmytro-malyk-dm/gym-manager/internal/metrics"
	"github.com/dmytro-malyk-dm/gym-manager/internal/user"
)

var ErrScheduleNotFound = errors.New("schedule not found")

// Actor is the resolved identity a reservation or release request runs
// under. Role comes from the authenticated token, never from the body.
type Actor struct {
	ID   int
	Role string
}

type Service interface {
	Reserve(ctx context.Context, actor Actor, scheduleID int) (Outcome, *Booking, error)
	Release(ctx context.Context, actor Actor, scheduleID int) (Outcome, error)
	Availability(ctx context.Context, scheduleID int) (*Availability, error)
	IsBooked(ctx context.Context, clientID, scheduleID int) (bool, error)
	ListMyBookings(ctx context.Context, clientID int) ([]BookingWithDetails, error)
	ListBySchedule(ctx context.Context, scheduleID int) ([]BookingWithDetails, error)
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

// NewServiceWithClock injects the evaluation clock for the temporal
// guards.
func NewServiceWithClock(repo Repository, now func() time.Time) Service {
	return &service{
		repo: repo,
		now:  now,
	}
}

// Reserve decides whether the actor gets a seat. The role gate runs
// first; everything else happens inside one serialized repository
// transaction so two racers for the last seat cannot both win.
func (s *service) Reserve(ctx context.Context, actor Actor, scheduleID int) (Outcome, *Booking, error) {
	if actor.Role != user.RoleClient {
		metrics.RecordReservation(string(OutcomeRoleNotAllowed))
		return OutcomeRoleNotAllowed, nil, nil
	}

	outcome, booking, err := s.repo.Reserve(ctx, actor.ID, scheduleID, s.now())
	if err != nil {
		return "", nil, err
	}

	metrics.RecordReservation(string(outcome))
	return outcome, booking, nil
}

// Release is idempotent: it reports cancelled whether or not a booking
// existed. The (actor, schedule) pair is the authorization, so only the
// owning client's booking can ever be removed.
func (s *service) Release(ctx context.Context, actor Actor, scheduleID int) (Outcome, error) {
	deleted, err := s.repo.Release(ctx, actor.ID, scheduleID)
	if err != nil {
		return "", err
	}

	if deleted {
		metrics.RecordCancellation()
	}

	return OutcomeCancelled, nil
}

func (s *service) Availability(ctx context.Context, scheduleID int) (*Availability, error) {
	availability, err := s.repo.GetAvailability(ctx, scheduleID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrScheduleNotFound
		}
		return nil, err
	}

	return availability, nil
}

func (s *service) IsBooked(ctx context.Context, clientID, scheduleID int) (bool, error) {
	return s.repo.HasBooking(ctx, clientID, scheduleID)
}

func (s *service) ListMyBookings(ctx context.Context, clientID int) ([]BookingWithDetails, error) {
	return s.repo.ListByClient(ctx, clientID)
}

func (s *service) ListBySchedule(ctx context.Context, scheduleID int) ([]BookingWithDetails, error) {
	return s.repo.ListBySchedule(ctx, scheduleID)
}
