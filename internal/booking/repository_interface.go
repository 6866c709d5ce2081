package booking

import (
	"context"
	"time"
)

type Repository interface {
	Reserve(ctx context.Context, clientID, scheduleID int, now time.Time) (Outcome, *Booking, error)
	Release(ctx context.Context, clientID, scheduleID int) (bool, error)
	CountForSchedule(ctx context.Context, scheduleID int) (int, error)
	HasBooking(ctx context.Context, clientID, scheduleID int) (bool, error)
	GetAvailability(ctx context.Context, scheduleID int) (*Availability, error)
	ListByClient(ctx context.Context, clientID int) ([]BookingWithDetails, error)
	ListBySchedule(ctx context.Context, scheduleID int) ([]BookingWithDetails, error)
}
