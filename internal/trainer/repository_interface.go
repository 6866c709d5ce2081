package trainer

import "context"

type Repository interface {
	CreateProfile(ctx context.Context, userID int, bio string, specializationID *int) (*TrainerProfile, error)
	GetByID(ctx context.Context, id int) (*TrainerWithUser, error)
	GetByUserID(ctx context.Context, userID int) (*TrainerProfile, error)
	UpdateProfile(ctx context.Context, id int, bio string, specializationID *int) (*TrainerProfile, error)
	ListAll(ctx context.Context) ([]TrainerWithUser, error)
	CreateSpecialization(ctx context.Context, name string) (*Specialization, error)
	ListSpecializations(ctx context.Context) ([]Specialization, error)
}
