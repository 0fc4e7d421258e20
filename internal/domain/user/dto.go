package user

import (
	"time"

	"github.com/terceiro-labs/provision-backend/internal/pkg/pagination"
	"github.com/terceiro-labs/provision-backend/internal/pkg/validator"
)

// UserResponse represents user data in API responses
type UserResponse struct {
	ID         string  `json:"id"`
	Username   string  `json:"username"`
	Email      string  `json:"email"`
	FirstName  string  `json:"first_name"`
	LastName   string  `json:"last_name"`
	FullName   string  `json:"full_name"`
	CPF        *string `json:"cpf,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	PhotoURL   *string `json:"photo_url,omitempty"`
	Role       string  `json:"role"`
	IsActive   bool    `json:"is_active"`
	IsStaff    bool    `json:"is_staff"`
	EmployeeID *string `json:"employee_id,omitempty"`
	ManagerID  *string `json:"manager_id,omitempty"`
	CompanyID  *string `json:"company_id,omitempty"`
	LastLogin  *string `json:"last_login,omitempty"`
	CreatedAt  string  `json:"created_at"`
	UpdatedAt  string  `json:"updated_at"`
}

func ToResponse(u User) UserResponse {
	resp := UserResponse{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		FullName:   u.FullName(),
		CPF:        u.CPF,
		Phone:      u.Phone,
		PhotoURL:   u.PhotoURL,
		Role:       string(u.Role()),
		IsActive:   u.IsActive,
		IsStaff:    u.IsStaff,
		EmployeeID: u.EmployeeID,
		ManagerID:  u.ManagerID,
		CompanyID:  u.CompanyID,
		CreatedAt:  u.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  u.UpdatedAt.Format(time.RFC3339),
	}
	if u.LastLogin != nil {
		s := u.LastLogin.Format(time.RFC3339)
		resp.LastLogin = &s
	}
	return resp
}

// UpdateMeRequest updates the authenticated user's own profile
type UpdateMeRequest struct {
	FirstName *string `json:"first_name" validate:"omitempty,max=150"`
	LastName  *string `json:"last_name" validate:"omitempty,max=150"`
	Email     *string `json:"email" validate:"omitempty,email,max=254"`
	CPF       *string `json:"cpf" validate:"omitempty,cpf"`
	Phone     *string `json:"phone" validate:"omitempty,max=20"`
}

func (r *UpdateMeRequest) Validate() error {
	return validator.Struct(r)
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (r *ChangePasswordRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.CurrentPassword) {
		errs.Add("current_password", "current_password is required")
	}

	if validator.IsEmpty(r.NewPassword) {
		errs.Add("new_password", "new_password is required")
	} else if len(r.NewPassword) < 8 {
		errs.Add("new_password", "new_password must be at least 8 characters long")
	} else if len(r.NewPassword) > 255 {
		errs.Add("new_password", "new_password must not exceed 255 characters")
	} else if r.NewPassword == r.CurrentPassword {
		errs.Add("new_password", "new_password must differ from current_password")
	}

	if r.ConfirmPassword != r.NewPassword {
		errs.Add("confirm_password", "new_password and confirm_password do not match")
	}

	return errs.OrNil()
}

type UserFilter struct {
	Search   *string `json:"search,omitempty"` // username, name or email
	IsActive *bool   `json:"is_active,omitempty"`
	IsStaff  *bool   `json:"is_staff,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *UserFilter) Validate() error {
	var errs validator.ValidationErrors
	f.Page, f.Limit = pagination.Normalize(f.Page, f.Limit, &errs)
	return errs.OrNil()
}

type ListUserResponse struct {
	pagination.Page
	Users []UserResponse `json:"users"`
}
