package user

import (
	"context"
)

type UserRepository interface {
	Create(ctx context.Context, newUser User) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	List(ctx context.Context, filter UserFilter) ([]User, int64, error)
	Update(ctx context.Context, u User) error
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
	SetActive(ctx context.Context, userID string, active bool) error
	SetStaff(ctx context.Context, userID string, staff bool) error
	TouchLastLogin(ctx context.Context, userID string) error
}
