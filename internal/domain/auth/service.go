package auth

import "context"

type AuthService interface {
	Register(ctx context.Context, req RegisterRequest, session SessionTrackingRequest) (TokenResponse, error)
	Login(ctx context.Context, req LoginRequest, session SessionTrackingRequest) (TokenResponse, error)
	RefreshToken(ctx context.Context, req RefreshTokenRequest) (AccessTokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
}
