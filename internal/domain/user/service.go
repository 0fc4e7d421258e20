package user

import (
	"context"
	"io"
)

type UserService interface {
	// Self management for the authenticated user
	GetMe(ctx context.Context) (UserResponse, error)
	UpdateMe(ctx context.Context, req UpdateMeRequest) (UserResponse, error)
	ChangePassword(ctx context.Context, req ChangePasswordRequest) error
	UploadPhoto(ctx context.Context, file io.Reader) (UserResponse, error)

	// Administration
	ListUsers(ctx context.Context, filter UserFilter) (ListUserResponse, error)
	ToggleActive(ctx context.Context, userID string) (UserResponse, error)
	ToggleStaff(ctx context.Context, userID string) (UserResponse, error)
}
