package workout

type Workout struct {
	ID              int    `db:"id" json:"id"`
	Name            string `db:"name" json:"name"`
	Description     string `db:"description" json:"description"`
	DurationMinutes int    `db:"duration_minutes" json:"duration_minutes"`
	TrainerID       int    `db:"trainer_id" json:"trainer_id"`
}

type WorkoutWithTrainer struct {
	Workout
	TrainerName    string  `db:"trainer_name" json:"trainer_name"`
	Specialization *string `db:"specialization" json:"specialization,omitempty"`
}

type CreateWorkoutRequest struct {
	Name            string `json:"name" binding:"required,max=63"`
	Description     string `json:"description" binding:"required"`
	DurationMinutes int    `json:"duration_minutes" binding:"required,min=1"`
	// TrainerID is honored for admins only; trainers always create
	// workouts under their own profile.
	TrainerID int `json:"trainer_id,omitempty"`
}

type UpdateWorkoutRequest struct {
	Name            string `json:"name" binding:"required,max=63"`
	Description     string `json:"description" binding:"required"`
	DurationMinutes int    `json:"duration_minutes" binding:"required,min=1"`
}
