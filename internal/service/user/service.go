package user

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/terceiro-labs/provision-backend/internal/domain/auth"
	"github.com/terceiro-labs/provision-backend/internal/domain/user"
	"github.com/terceiro-labs/provision-backend/internal/pkg/jwt"
	"github.com/terceiro-labs/provision-backend/internal/pkg/pagination"
	"github.com/terceiro-labs/provision-backend/internal/service/file"
)

type UserServiceImpl struct {
	user.UserRepository
	refreshTokens auth.RefreshTokenRepository
	fileService   file.FileService
}

func NewUserService(userRepo user.UserRepository, refreshTokens auth.RefreshTokenRepository, fileService file.FileService) user.UserService {
	return &UserServiceImpl{
		UserRepository: userRepo,
		refreshTokens:  refreshTokens,
		fileService:    fileService,
	}
}

// GetMe implements user.UserService.
func (s *UserServiceImpl) GetMe(ctx context.Context) (user.UserResponse, error) {
	claims, err := jwt.FromContext(ctx)
	if err != nil {
		return user.UserResponse{}, err
	}
	return s.get(ctx, claims.UserID)
}

// UpdateMe implements user.UserService.
func (s *UserServiceImpl) UpdateMe(ctx context.Context, req user.UpdateMeRequest) (user.UserResponse, error) {
	claims, err := jwt.FromContext(ctx)
	if err != nil {
		return user.UserResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	u, err := s.UserRepository.GetByID(ctx, claims.UserID)
	if err != nil {
		return user.UserResponse{}, err
	}

	if req.FirstName != nil {
		u.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		u.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.Email != nil {
		u.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.CPF != nil {
		u.CPF = req.CPF
	}
	if req.Phone != nil {
		u.Phone = req.Phone
	}

	if err := s.UserRepository.Update(ctx, u); err != nil {
		return user.UserResponse{}, err
	}
	return s.get(ctx, u.ID)
}

// ChangePassword implements user.UserService. Every session of the user is
// revoked afterwards.
func (s *UserServiceImpl) ChangePassword(ctx context.Context, req user.ChangePasswordRequest) error {
	claims, err := jwt.FromContext(ctx)
	if err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return err
	}

	u, err := s.UserRepository.GetByID(ctx, claims.UserID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return user.ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.UserRepository.UpdatePassword(ctx, u.ID, string(hash)); err != nil {
		return err
	}

	return s.refreshTokens.RevokeAllForUser(ctx, u.ID)
}

// UploadPhoto implements user.UserService.
func (s *UserServiceImpl) UploadPhoto(ctx context.Context, photo io.Reader) (user.UserResponse, error) {
	claims, err := jwt.FromContext(ctx)
	if err != nil {
		return user.UserResponse{}, err
	}

	u, err := s.UserRepository.GetByID(ctx, claims.UserID)
	if err != nil {
		return user.UserResponse{}, err
	}

	key, err := s.fileService.UploadUserPhoto(ctx, u.ID, photo)
	if err != nil {
		return user.UserResponse{}, err
	}

	previous := u.PhotoURL
	u.PhotoURL = &key
	if err := s.UserRepository.Update(ctx, u); err != nil {
		_ = s.fileService.DeleteFile(ctx, key)
		return user.UserResponse{}, err
	}

	if previous != nil && *previous != "" {
		if err := s.fileService.DeleteFile(ctx, *previous); err != nil {
			slog.Warn("Failed to delete previous profile photo", "key", *previous, "error", err)
		}
	}
	return s.get(ctx, u.ID)
}

// ListUsers implements user.UserService.
func (s *UserServiceImpl) ListUsers(ctx context.Context, filter user.UserFilter) (user.ListUserResponse, error) {
	if err := s.requireAdmin(ctx, ""); err != nil {
		return user.ListUserResponse{}, err
	}
	if err := filter.Validate(); err != nil {
		return user.ListUserResponse{}, err
	}

	users, total, err := s.UserRepository.List(ctx, filter)
	if err != nil {
		return user.ListUserResponse{}, fmt.Errorf("failed to list users: %w", err)
	}

	responses := make([]user.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, s.render(u))
	}
	return user.ListUserResponse{
		Page:  pagination.New(total, filter.Page, filter.Limit),
		Users: responses,
	}, nil
}

// ToggleActive implements user.UserService. Deactivated users lose their sessions.
func (s *UserServiceImpl) ToggleActive(ctx context.Context, userID string) (user.UserResponse, error) {
	if err := s.requireAdmin(ctx, userID); err != nil {
		return user.UserResponse{}, err
	}

	u, err := s.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return user.UserResponse{}, err
	}
	if err := s.UserRepository.SetActive(ctx, userID, !u.IsActive); err != nil {
		return user.UserResponse{}, err
	}
	if u.IsActive {
		if err := s.refreshTokens.RevokeAllForUser(ctx, userID); err != nil {
			return user.UserResponse{}, err
		}
	}

	slog.Info("User active flag changed", "user_id", userID, "active", !u.IsActive)
	return s.get(ctx, userID)
}

// ToggleStaff implements user.UserService.
func (s *UserServiceImpl) ToggleStaff(ctx context.Context, userID string) (user.UserResponse, error) {
	if err := s.requireAdmin(ctx, userID); err != nil {
		return user.UserResponse{}, err
	}

	u, err := s.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return user.UserResponse{}, err
	}
	if err := s.UserRepository.SetStaff(ctx, userID, !u.IsStaff); err != nil {
		return user.UserResponse{}, err
	}

	slog.Info("User staff flag changed", "user_id", userID, "staff", !u.IsStaff)
	return s.get(ctx, userID)
}

// requireAdmin rejects non-admins, and admins acting on themselves when target is set.
func (s *UserServiceImpl) requireAdmin(ctx context.Context, target string) error {
	claims, err := jwt.FromContext(ctx)
	if err != nil {
		return err
	}
	if !claims.IsAdmin() {
		return user.ErrAdminPrivilegeRequired
	}
	if target != "" && target == claims.UserID {
		return user.ErrCannotToggleSelf
	}
	return nil
}

func (s *UserServiceImpl) get(ctx context.Context, id string) (user.UserResponse, error) {
	u, err := s.UserRepository.GetByID(ctx, id)
	if err != nil {
		return user.UserResponse{}, err
	}
	return s.render(u), nil
}

func (s *UserServiceImpl) render(u user.User) user.UserResponse {
	resp := user.ToResponse(u)
	resp.PhotoURL = file.ResolveURL(s.fileService, u.PhotoURL)
	return resp
}
