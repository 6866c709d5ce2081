package schedule

import "time"

type Schedule struct {
	ID        int       `db:"id" json:"id"`
	WorkoutID int       `db:"workout_id" json:"workout_id"`
	StartTime time.Time `db:"start_time" json:"start_time"`
	Capacity  int       `db:"capacity" json:"capacity"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type ScheduleWithDetails struct {
	Schedule
	WorkoutName    string `db:"workout_name" json:"workout_name"`
	TrainerName    string `db:"trainer_name" json:"trainer_name"`
	BookedCount    int    `db:"booked_count" json:"booked_count"`
	AvailableSeats int    `json:"available_seats"`
	IsFull         bool   `json:"is_full"`
}

type CreateScheduleRequest struct {
	WorkoutID int    `json:"workout_id" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	Capacity  int    `json:"capacity" binding:"min=0"`
}

type UpdateScheduleRequest struct {
	StartTime string `json:"start_time" binding:"required"`
	Capacity  int    `json:"capacity" binding:"min=0"`
}
