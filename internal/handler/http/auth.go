package http

import (
	"log/slog"
	"net/http"

	"github.com/terceiro-labs/provision-backend/internal/domain/auth"
	"github.com/terceiro-labs/provision-backend/internal/handler/http/response"
	"github.com/terceiro-labs/provision-backend/internal/pkg/jwt"
)

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
	RefreshToken(w http.ResponseWriter, r *http.Request)
}

type AuthHandlerImpl struct {
	jwtService  jwt.Service
	authService auth.AuthService
}

func NewAuthHandler(jwtService jwt.Service, authService auth.AuthService) AuthHandler {
	return &AuthHandlerImpl{
		jwtService:  jwtService,
		authService: authService,
	}
}

func sessionOf(r *http.Request) auth.SessionTrackingRequest {
	return auth.SessionTrackingRequest{
		IPAddress: clientIP(r),
		UserAgent: r.UserAgent(),
	}
}

// refreshTokenOf prefers the HttpOnly cookie and falls back to the JSON body.
func refreshTokenOf(r *http.Request) (string, bool) {
	if cookie, err := r.Cookie("refresh_token"); err == nil && cookie.Value != "" {
		return cookie.Value, true
	}

	var req auth.RefreshTokenRequest
	if r.Body == nil || r.ContentLength == 0 {
		return "", true
	}
	if !decodeJSONQuiet(r, &req) {
		return "", false
	}
	return req.RefreshToken, true
}

// Register implements AuthHandler.
func (a *AuthHandlerImpl) Register(w http.ResponseWriter, r *http.Request) {
	var registerReq auth.RegisterRequest
	if !decodeJSON(w, r, &registerReq) {
		return
	}

	tokenResponse, err := a.authService.Register(r.Context(), registerReq, sessionOf(r))
	if err != nil {
		slog.Error("Register service error", "error", err)
		response.HandleError(w, err)
		return
	}

	http.SetCookie(w, a.jwtService.RefreshTokenCookie(tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn))
	slog.Info("User registered successfully", "user_id", tokenResponse.User.ID)
	response.Created(w, "User created successfully", tokenResponse)
}

// Login implements AuthHandler.
func (a *AuthHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var loginReq auth.LoginRequest
	if !decodeJSON(w, r, &loginReq) {
		return
	}

	tokenResponse, err := a.authService.Login(r.Context(), loginReq, sessionOf(r))
	if err != nil {
		slog.Error("Login service error", "error", err)
		response.HandleError(w, err)
		return
	}

	http.SetCookie(w, a.jwtService.RefreshTokenCookie(tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn))
	slog.Info("User logged in successfully", "user_id", tokenResponse.User.ID)
	response.Created(w, "User logged in successfully", tokenResponse)
}

// Logout implements AuthHandler.
func (a *AuthHandlerImpl) Logout(w http.ResponseWriter, r *http.Request) {
	refreshToken, ok := refreshTokenOf(r)
	if !ok {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if refreshToken == "" {
		response.BadRequest(w, "Refresh token is required", nil)
		return
	}

	if err := a.authService.Logout(r.Context(), refreshToken); err != nil {
		response.HandleError(w, err)
		return
	}

	http.SetCookie(w, a.jwtService.ExpiredRefreshTokenCookie())
	response.SuccessWithMessage(w, "User logged out successfully", nil)
}

// RefreshToken implements AuthHandler.
func (a *AuthHandlerImpl) RefreshToken(w http.ResponseWriter, r *http.Request) {
	refreshToken, ok := refreshTokenOf(r)
	if !ok {
		slog.Error("Refresh Token decode error")
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	tokenResponse, err := a.authService.RefreshToken(r.Context(), auth.RefreshTokenRequest{RefreshToken: refreshToken})
	if err != nil {
		slog.Error("Refresh Token service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Token refreshed successfully")
	response.Created(w, "Token refreshed successfully", tokenResponse)
}
