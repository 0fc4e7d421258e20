package auth

import (
	"errors"
	"strings"

	"github.com/terceiro-labs/provision-backend/internal/domain/user"
	"github.com/terceiro-labs/provision-backend/internal/pkg/validator"
)

type RegisterRequest struct {
	Username        string  `json:"username" validate:"required,username"`
	Email           string  `json:"email" validate:"required,email,max=254"`
	FirstName       string  `json:"first_name" validate:"required,max=150"`
	LastName        string  `json:"last_name" validate:"max=150"`
	CPF             *string `json:"cpf" validate:"omitempty,cpf"`
	Phone           *string `json:"phone" validate:"omitempty,max=20"`
	Password        string  `json:"password" validate:"required,min=8,max=72"`
	ConfirmPassword string  `json:"confirm_password" validate:"required"`
}

func (r *RegisterRequest) Validate() error {
	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))

	var errs validator.ValidationErrors
	if err := validator.Struct(r); err != nil && !errors.As(err, &errs) {
		return err
	}
	if r.ConfirmPassword != "" && r.Password != r.ConfirmPassword {
		errs.Add("confirm_password", ErrPasswordMismatch.Error())
	}
	return errs.OrNil()
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Username) {
		errs.Add("username", "username is required")
	}
	if validator.IsEmpty(r.Password) {
		errs.Add("password", "password is required")
	}

	return errs.OrNil()
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (r *RefreshTokenRequest) Validate() error {
	if validator.IsEmpty(r.RefreshToken) {
		return validator.ValidationErrors{{Field: "refresh_token", Message: "refresh_token is required"}}
	}
	return nil
}

// SessionTrackingRequest is captured from the HTTP request on login.
type SessionTrackingRequest struct {
	UserAgent string
	IPAddress string
}

type TokenResponse struct {
	AccessToken           string            `json:"access_token"`
	AccessTokenExpiresIn  int64             `json:"access_token_expires_in"`
	RefreshToken          string            `json:"refresh_token"`
	RefreshTokenExpiresIn int64             `json:"refresh_token_expires_in"`
	User                  user.UserResponse `json:"user"`
}

type AccessTokenResponse struct {
	AccessToken          string `json:"access_token"`
	AccessTokenExpiresIn int64  `json:"access_token_expires_in"`
}
