package trainer

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateProfile(ctx context.Context, userID int, bio string, specializationID *int) (*TrainerProfile, error) {
	query := `
		INSERT INTO trainer_profiles (user_id, bio, specialization_id)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, bio, specialization_id
	`

	var profile TrainerProfile
	err := r.db.GetContext(ctx, &profile, query, userID, bio, specializationID)
	if err != nil {
		return nil, err
	}

	return &profile, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*TrainerWithUser, error) {
	query := `
		SELECT
			tp.id,
			tp.user_id,
			tp.bio,
			tp.specialization_id,
			u.name,
			u.email,
			sp.name AS specialization
		FROM trainer_profiles tp
		JOIN users u ON tp.user_id = u.id
		LEFT JOIN specializations sp ON tp.specialization_id = sp.id
		WHERE tp.id = $1
	`

	var trainer TrainerWithUser
	err := r.db.GetContext(ctx, &trainer, query, id)
	if err != nil {
		return nil, err
	}

	return &trainer, nil
}

func (r *repository) GetByUserID(ctx context.Context, userID int) (*TrainerProfile, error) {
	query := `
		SELECT id, user_id, bio, specialization_id
		FROM trainer_profiles
		WHERE user_id = $1
	`

	var profile TrainerProfile
	err := r.db.GetContext(ctx, &profile, query, userID)
	if err != nil {
		return nil, err
	}

	return &profile, nil
}

func (r *repository) UpdateProfile(ctx context.Context, id int, bio string, specializationID *int) (*TrainerProfile, error) {
	query := `
		UPDATE trainer_profiles
		SET bio = $2, specialization_id = $3
		WHERE id = $1
		RETURNING id, user_id, bio, specialization_id
	`

	var profile TrainerProfile
	err := r.db.GetContext(ctx, &profile, query, id, bio, specializationID)
	if err != nil {
		return nil, err
	}

	return &profile, nil
}

func (r *repository) ListAll(ctx context.Context) ([]TrainerWithUser, error) {
	query := `
		SELECT
			tp.id,
			tp.user_id,
			tp.bio,
			tp.specialization_id,
			u.name,
			u.email,
			sp.name AS specialization
		FROM trainer_profiles tp
		JOIN users u ON tp.user_id = u.id
		LEFT JOIN specializations sp ON tp.specialization_id = sp.id
		ORDER BY u.name ASC
	`

	var trainers []TrainerWithUser
	err := r.db.SelectContext(ctx, &trainers, query)
	if err != nil {
		return nil, err
	}

	return trainers, nil
}

func (r *repository) CreateSpecialization(ctx context.Context, name string) (*Specialization, error) {
	query := `
		INSERT INTO specializations (name)
		VALUES ($1)
		RETURNING id, name
	`

	var specialization Specialization
	err := r.db.GetContext(ctx, &specialization, query, name)
	if err != nil {
		return nil, err
	}

	return &specialization, nil
}

func (r *repository) ListSpecializations(ctx context.Context) ([]Specialization, error) {
	query := `
		SELECT id, name
		FROM specializations
		ORDER BY name ASC
	`

	var specializations []Specialization
	err := r.db.SelectContext(ctx, &specializations, query)
	if err != nil {
		return nil, err
	}

	return specializations, nil
}
