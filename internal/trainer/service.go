package trainer

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmytro-malyk-dm/gym-manager/internal/user"
	"github.com/lib/pq"
)

const pqUniqueViolation = "23505"

var (
	ErrTrainerNotFound      = errors.New("trainer not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrAlreadyTrainer       = errors.New("user already has a trainer profile")
	ErrNotAllowed           = errors.New("not allowed to manage this trainer profile")
	ErrSpecializationExists = errors.New("specialization already exists")
)

type Actor struct {
	ID   int
	Role string
}

type Service interface {
	CreateTrainer(ctx context.Context, req CreateTrainerRequest) (*TrainerProfile, error)
	UpdateTrainer(ctx context.Context, actor Actor, trainerID int, req UpdateTrainerRequest) (*TrainerProfile, error)
	GetByID(ctx context.Context, trainerID int) (*TrainerWithUser, error)
	List(ctx context.Context) ([]TrainerWithUser, error)
	CreateSpecialization(ctx context.Context, req CreateSpecializationRequest) (*Specialization, error)
	ListSpecializations(ctx context.Context) ([]Specialization, error)
}

type service struct {
	repo     Repository
	userRepo user.Repository
}

func NewService(repo Repository, userRepo user.Repository) Service {
	return &service{
		repo:     repo,
		userRepo: userRepo,
	}
}

// CreateTrainer promotes an existing account to the trainer role and
// creates its profile. Admin only (enforced at the router).
func (s *service) CreateTrainer(ctx context.Context, req CreateTrainerRequest) (*TrainerProfile, error) {
	if _, err := s.userRepo.FindByID(ctx, req.UserID); err != nil {
		return nil, ErrUserNotFound
	}

	if _, err := s.repo.GetByUserID(ctx, req.UserID); err == nil {
		return nil, ErrAlreadyTrainer
	}

	if err := s.userRepo.UpdateRole(ctx, req.UserID, user.RoleTrainer); err != nil {
		return nil, err
	}

	profile, err := s.repo.CreateProfile(ctx, req.UserID, req.Bio, req.SpecializationID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return nil, ErrAlreadyTrainer
		}
		return nil, err
	}

	return profile, nil
}

// UpdateTrainer lets an admin edit any profile and a trainer edit only
// their own.
func (s *service) UpdateTrainer(ctx context.Context, actor Actor, trainerID int, req UpdateTrainerRequest) (*TrainerProfile, error) {
	current, err := s.repo.GetByID(ctx, trainerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTrainerNotFound
		}
		return nil, err
	}

	if actor.Role != user.RoleAdmin && current.UserID != actor.ID {
		return nil, ErrNotAllowed
	}

	return s.repo.UpdateProfile(ctx, trainerID, req.Bio, req.SpecializationID)
}

func (s *service) GetByID(ctx context.Context, trainerID int) (*TrainerWithUser, error) {
	trainer, err := s.repo.GetByID(ctx, trainerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTrainerNotFound
		}
		return nil, err
	}
	return trainer, nil
}

func (s *service) List(ctx context.Context) ([]TrainerWithUser, error) {
	return s.repo.ListAll(ctx)
}

func (s *service) CreateSpecialization(ctx context.Context, req CreateSpecializationRequest) (*Specialization, error) {
	specialization, err := s.repo.CreateSpecialization(ctx, req.Name)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return nil, ErrSpecializationExists
		}
		return nil, err
	}

	return specialization, nil
}

func (s *service) ListSpecializations(ctx context.Context) ([]Specialization, error) {
	return s.repo.ListSpecializations(ctx)
}
