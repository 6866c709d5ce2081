package user

import "context"

type Repository interface {
	Create(ctx context.Context, name, email, passwordHash, role string) (*User, error)
	CreateClientProfile(ctx context.Context, userID int, phoneNumber string) (*ClientProfile, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id int) (*User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UpdateRole(ctx context.Context, userID int, role string) error
	Delete(ctx context.Context, userID int) error
}
