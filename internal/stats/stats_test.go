package stats

import (
	"context"
	"errors"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) CountTrainers(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *mockRepository) CountSpecializations(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *mockRepository) CountClients(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func newCountingRepo(trainers, specializations, clients int) *mockRepository {
	repo := new(mockRepository)
	repo.On("CountTrainers", mock.Anything).Return(trainers, nil)
	repo.On("CountSpecializations", mock.Anything).Return(specializations, nil)
	repo.On("CountClients", mock.Anything).Return(clients, nil)
	return repo
}

func TestOverviewBumpsVisitCounter(t *testing.T) {
	rdb, rmock := redismock.NewClientMock()
	rmock.ExpectIncr(visitsKey).SetVal(42)

	svc := NewService(newCountingRepo(3, 5, 120), rdb)

	overview, err := svc.Overview(context.Background())
	require.NoError(t, err)
	require.Equal(t, 3, overview.Trainers)
	require.Equal(t, 5, overview.Specializations)
	require.Equal(t, 120, overview.Clients)
	require.Equal(t, int64(42), overview.Visits)
	require.NoError(t, rmock.ExpectationsWereMet())
}

func TestOverviewRedisOutageDegrades(t *testing.T) {
	rdb, rmock := redismock.NewClientMock()
	rmock.ExpectIncr(visitsKey).SetErr(errors.New("connection refused"))

	svc := NewService(newCountingRepo(3, 5, 120), rdb)

	overview, err := svc.Overview(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(0), overview.Visits)
	require.Equal(t, 120, overview.Clients)
}

func TestOverviewDatabaseError(t *testing.T) {
	rdb, _ := redismock.NewClientMock()

	repo := new(mockRepository)
	repo.On("CountTrainers", mock.Anything).Return(0, errors.New("db down"))

	svc := NewService(repo, rdb)

	_, err := svc.Overview(context.Background())
	require.Error(t, err)
}
