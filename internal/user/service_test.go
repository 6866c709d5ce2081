package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmytro-malyk-dm/gym-manager/internal/auth"
)

const testSecret = "test-secret"

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) Create(ctx context.Context, name, email, passwordHash, role string) (*User, error) {
	args := m.Called(ctx, name, email, passwordHash, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *mockRepository) CreateClientProfile(ctx context.Context, userID int, phoneNumber string) (*ClientProfile, error) {
	args := m.Called(ctx, userID, phoneNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ClientProfile), args.Error(1)
}

func (m *mockRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *mockRepository) FindByID(ctx context.Context, id int) (*User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *mockRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepository) UpdateRole(ctx context.Context, userID int, role string) error {
	args := m.Called(ctx, userID, role)
	return args.Error(0)
}

func (m *mockRepository) Delete(ctx context.Context, userID int) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func TestRegisterCreatesClientWithProfile(t *testing.T) {
	repo := new(mockRepository)
	svc := NewService(repo, testSecret)

	created := &User{ID: 1, Name: "Ivan", Email: "ivan@example.com", Role: RoleClient}

	repo.On("EmailExists", mock.Anything, "ivan@example.com").Return(false, nil)
	repo.On("Create", mock.Anything, "Ivan", "ivan@example.com", mock.AnythingOfType("string"), RoleClient).
		Return(created, nil)
	repo.On("CreateClientProfile", mock.Anything, 1, "+380501112233").
		Return(&ClientProfile{ID: 1, UserID: 1, PhoneNumber: "+380501112233"}, nil)

	resp, err := svc.Register(context.Background(), RegisterRequest{
		Name:        "Ivan",
		Email:       "ivan@example.com",
		Password:    "password123",
		PhoneNumber: "+380501112233",
	})
	require.NoError(t, err)
	require.Equal(t, RoleClient, resp.User.Role)
	require.NotEmpty(t, resp.AccessToken)
	require.NotEmpty(t, resp.RefreshToken)
	repo.AssertExpectations(t)

	// the stored hash is a bcrypt hash of the plain password
	call := repo.Calls[1]
	hash := call.Arguments.String(3)
	require.True(t, auth.CheckPassword(hash, "password123"))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := new(mockRepository)
	svc := NewService(repo, testSecret)
	repo.On("EmailExists", mock.Anything, "taken@example.com").Return(true, nil)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Name:        "Ivan",
		Email:       "taken@example.com",
		Password:    "password123",
		PhoneNumber: "+380501112233",
	})
	require.ErrorIs(t, err, ErrEmailExists)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestLogin(t *testing.T) {
	hash, err := auth.HashPassword("password123")
	require.NoError(t, err)

	stored := &User{ID: 1, Email: "ivan@example.com", PasswordHash: hash, Role: RoleClient}

	repo := new(mockRepository)
	svc := NewService(repo, testSecret)
	repo.On("FindByEmail", mock.Anything, "ivan@example.com").Return(stored, nil)

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "ivan@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.AccessToken)

	_, err = svc.Login(context.Background(), LoginRequest{
		Email:    "ivan@example.com",
		Password: "wrong",
	})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	repo := new(mockRepository)
	svc := NewService(repo, testSecret)
	repo.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, ErrUserNotFound)

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "ghost@example.com",
		Password: "password123",
	})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshToken(t *testing.T) {
	stored := &User{ID: 2, Email: "t@example.com", Role: RoleTrainer}

	_, refreshToken, err := auth.GenerateTokens(2, "t@example.com", RoleTrainer, testSecret)
	require.NoError(t, err)

	repo := new(mockRepository)
	svc := NewService(repo, testSecret)
	repo.On("FindByID", mock.Anything, 2).Return(stored, nil)

	newAccess, u, err := svc.RefreshToken(context.Background(), refreshToken)
	require.NoError(t, err)
	require.NotEmpty(t, newAccess)
	require.Equal(t, 2, u.ID)

	claims, err := auth.ValidateToken(newAccess, testSecret)
	require.NoError(t, err)
	require.Equal(t, "access", claims.TokenType)
	require.Equal(t, 2, claims.UserID)
	require.Equal(t, RoleTrainer, claims.Role)
}

func TestDeleteUser(t *testing.T) {
	repo := new(mockRepository)
	svc := NewService(repo, testSecret)
	repo.On("Delete", mock.Anything, 3).Return(nil)

	require.NoError(t, svc.DeleteUser(context.Background(), 3))
	repo.AssertExpectations(t)
}

func TestDeleteUserNotFound(t *testing.T) {
	repo := new(mockRepository)
	svc := NewService(repo, testSecret)
	repo.On("Delete", mock.Anything, 99).Return(ErrUserNotFound)

	err := svc.DeleteUser(context.Background(), 99)
	require.ErrorIs(t, err, ErrUserNotFound)
}
