package trainer

type Specialization struct {
	ID   int    `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

type TrainerProfile struct {
	ID               int    `db:"id" json:"id"`
	UserID           int    `db:"user_id" json:"user_id"`
	Bio              string `db:"bio" json:"bio"`
	SpecializationID *int   `db:"specialization_id" json:"specialization_id,omitempty"`
}

type TrainerWithUser struct {
	TrainerProfile
	Name           string  `db:"name" json:"name"`
	Email          string  `db:"email" json:"email"`
	Specialization *string `db:"specialization" json:"specialization,omitempty"`
}

type CreateTrainerRequest struct {
	UserID           int    `json:"user_id" binding:"required"`
	Bio              string `json:"bio"`
	SpecializationID *int   `json:"specialization_id"`
}

type UpdateTrainerRequest struct {
	Bio              string `json:"bio"`
	SpecializationID *int   `json:"specialization_id"`
}

type CreateSpecializationRequest struct {
	Name string `json:"name" binding:"required,max=63"`
}
