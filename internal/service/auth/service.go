package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-chi/jwtauth/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/terceiro-labs/provision-backend/internal/domain/auth"
	"github.com/terceiro-labs/provision-backend/internal/domain/user"
	"github.com/terceiro-labs/provision-backend/internal/pkg/database"
	"github.com/terceiro-labs/provision-backend/internal/pkg/jwt"
)

type AuthServiceImpl struct {
	transactor database.Transactor
	user.UserRepository
	jwt.Service
	auth.RefreshTokenRepository
}

func NewAuthService(transactor database.Transactor, userRepository user.UserRepository, jwtService jwt.Service, refreshTokenRepository auth.RefreshTokenRepository) auth.AuthService {
	return &AuthServiceImpl{
		transactor:             transactor,
		UserRepository:         userRepository,
		Service:                jwtService,
		RefreshTokenRepository: refreshTokenRepository,
	}
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Register implements auth.AuthService.
func (a *AuthServiceImpl) Register(ctx context.Context, registerReq auth.RegisterRequest, sessionTrackReq auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	if err := registerReq.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	hashedPassword, err := hashPassword(registerReq.Password)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	newUser := user.User{
		Username:     registerReq.Username,
		Email:        registerReq.Email,
		FirstName:    strings.TrimSpace(registerReq.FirstName),
		LastName:     strings.TrimSpace(registerReq.LastName),
		CPF:          registerReq.CPF,
		Phone:        registerReq.Phone,
		PasswordHash: hashedPassword,
		IsActive:     true,
	}

	var tokenResponse auth.TokenResponse
	err = a.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		created, err := a.UserRepository.Create(txCtx, newUser)
		if err != nil {
			return err
		}
		tokenResponse, err = a.issueTokens(txCtx, created, sessionTrackReq)
		return err
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}

	slog.Info("User registered", "user_id", tokenResponse.User.ID, "username", tokenResponse.User.Username)
	return tokenResponse, nil
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, loginReq auth.LoginRequest, sessionTrackReq auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	if err := loginReq.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	userData, err := a.UserRepository.GetByUsername(ctx, strings.TrimSpace(loginReq.Username))
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by username: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(userData.PasswordHash), []byte(loginReq.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	if !userData.IsActive {
		return auth.TokenResponse{}, user.ErrUserInactive
	}

	var tokenResponse auth.TokenResponse
	err = a.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := a.UserRepository.TouchLastLogin(txCtx, userData.ID); err != nil {
			return fmt.Errorf("failed to update last login: %w", err)
		}
		tokenResponse, err = a.issueTokens(txCtx, userData, sessionTrackReq)
		return err
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}

	return tokenResponse, nil
}

// RefreshToken implements auth.AuthService.
func (a *AuthServiceImpl) RefreshToken(ctx context.Context, req auth.RefreshTokenRequest) (auth.AccessTokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.AccessTokenResponse{}, err
	}

	// 1. Verify JWT signature and expiry
	token, err := jwtauth.VerifyToken(a.JWTAuth(), req.RefreshToken)
	if err != nil {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}

	// 2. Check token type is "refresh"
	claims, err := token.AsMap(ctx)
	if err != nil {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}
	tokenType, ok := claims["type"].(string)
	if !ok || tokenType != "refresh" {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}

	// 3. Check DB for revocation/expiry
	userID, isRevoked, err := a.RefreshTokenRepository.IsRefreshTokenRevoked(ctx, req.RefreshToken)
	if err != nil {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}
	if isRevoked {
		return auth.AccessTokenResponse{}, auth.ErrRefreshTokenRevoked
	}

	// 4. Reload the user so role changes apply to the new token
	userData, err := a.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}
	if !userData.IsActive {
		return auth.AccessTokenResponse{}, user.ErrUserInactive
	}

	var resp auth.AccessTokenResponse
	resp.AccessToken, resp.AccessTokenExpiresIn, err = a.Service.GenerateAccessToken(jwt.SubjectOf(userData))
	if err != nil {
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}
	return resp, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, token string) error {
	return a.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		_, isRevoked, err := a.RefreshTokenRepository.IsRefreshTokenRevoked(txCtx, token)
		if err != nil {
			return fmt.Errorf("failed to check if refresh token is revoked: %w", err)
		}
		if !isRevoked {
			if err := a.RefreshTokenRepository.RevokeRefreshToken(txCtx, token); err != nil {
				return fmt.Errorf("failed to revoke refresh token: %w", err)
			}
		}
		return nil
	})
}

func (a *AuthServiceImpl) issueTokens(ctx context.Context, u user.User, session auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	var resp auth.TokenResponse
	var err error

	resp.AccessToken, resp.AccessTokenExpiresIn, err = a.Service.GenerateAccessToken(jwt.SubjectOf(u))
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}
	resp.RefreshToken, resp.RefreshTokenExpiresIn, err = a.Service.GenerateRefreshToken(u.ID)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create refresh token: %w", err)
	}

	if err := a.RefreshTokenRepository.CreateRefreshToken(ctx, u.ID, resp.RefreshToken, resp.RefreshTokenExpiresIn, session); err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to save refresh token to database: %w", err)
	}

	resp.User = user.ToResponse(u)
	return resp, nil
}
