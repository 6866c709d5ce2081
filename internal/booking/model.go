package booking

import "time"

// Outcome is the admission decision for a reservation or release
// attempt. Declined outcomes are ordinary return values, not errors.
type Outcome string

const (
	OutcomeConfirmed      Outcome = "confirmed"
	OutcomeRoleNotAllowed Outcome = "role_not_allowed"
	OutcomeNotFound       Outcome = "not_found"
	OutcomeAlreadyStarted Outcome = "already_started"
	OutcomeFull           Outcome = "full"
	OutcomeAlreadyBooked  Outcome = "already_booked"
	OutcomeTimeConflict   Outcome = "time_conflict"
	OutcomeCancelled      Outcome = "cancelled"
)

type Booking struct {
	ID         int       `db:"id" json:"id"`
	ScheduleID int       `db:"schedule_id" json:"schedule_id"`
	ClientID   int       `db:"client_id" json:"client_id"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

type BookingWithDetails struct {
	Booking
	StartTime   time.Time `db:"start_time" json:"start_time"`
	WorkoutName string    `db:"workout_name" json:"workout_name"`
	TrainerName string    `db:"trainer_name" json:"trainer_name"`
	ClientName  string    `db:"client_name" json:"client_name"`
	ClientEmail string    `db:"client_email" json:"client_email"`
}

type Availability struct {
	ScheduleID     int  `db:"schedule_id" json:"schedule_id"`
	Capacity       int  `db:"capacity" json:"capacity"`
	BookedCount    int  `db:"booked_count" json:"booked_count"`
	AvailableSeats int  `json:"available_seats"`
	IsFull         bool `json:"is_full"`
	// IsBooked reports whether the calling client already holds a seat.
	// Always false for trainer and admin callers.
	IsBooked bool `json:"is_booked"`
}

type ReserveResponse struct {
	Outcome Outcome  `json:"outcome" example:"confirmed"`
	Booking *Booking `json:"booking,omitempty"`
	Message string   `json:"message,omitempty" example:"Successfully booked"`
}

type ReleaseResponse struct {
	Outcome Outcome `json:"outcome" example:"cancelled"`
	Message string  `json:"message" example:"Booking cancelled"`
}
