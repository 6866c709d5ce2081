package stats

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/dmytro-malyk-dm/gym-manager/internal/logger"
)

const visitsKey = "gym:stats:visits"

type Overview struct {
	Trainers        int   `json:"trainers"`
	Specializations int   `json:"specializations"`
	Clients         int   `json:"clients"`
	Visits          int64 `json:"visits"`
}

type Repository interface {
	CountTrainers(ctx context.Context) (int, error)
	CountSpecializations(ctx context.Context) (int, error)
	CountClients(ctx context.Context) (int, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CountTrainers(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM trainer_profiles`)
	return count, err
}

func (r *repository) CountSpecializations(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM specializations`)
	return count, err
}

func (r *repository) CountClients(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM users WHERE role = 'client'`)
	return count, err
}

type Service interface {
	Overview(ctx context.Context) (*Overview, error)
}

type service struct {
	repo  Repository
	redis *redis.Client
}

func NewService(repo Repository, rdb *redis.Client) Service {
	return &service{
		repo:  repo,
		redis: rdb,
	}
}

// Overview returns the landing-page counters. Each call bumps the
// visit counter; a redis outage degrades the counter to zero rather
// than failing the page.
func (s *service) Overview(ctx context.Context) (*Overview, error) {
	trainers, err := s.repo.CountTrainers(ctx)
	if err != nil {
		return nil, err
	}

	specializations, err := s.repo.CountSpecializations(ctx)
	if err != nil {
		return nil, err
	}

	clients, err := s.repo.CountClients(ctx)
	if err != nil {
		return nil, err
	}

	visits, err := s.redis.Incr(ctx, visitsKey).Result()
	if err != nil {
		logger.Warn("Failed to increment visit counter", "error", err)
		visits = 0
	}

	return &Overview{
		Trainers:        trainers,
		Specializations: specializations,
		Clients:         clients,
		Visits:          visits,
	}, nil
}
