package user

import (
	"strings"
	"time"
)

type Role string

const (
	RoleAdmin    Role = "admin"    // Staff user - full access
	RoleManager  Role = "manager"  // Validates service provisions
	RoleEmployee Role = "employee" // Records provisions and punches
	RoleUser     Role = "user"     // Account not linked to a manager or employee yet
)

type User struct {
	ID           string
	Username     string
	Email        string
	FirstName    string
	LastName     string
	CPF          *string
	Phone        *string
	PhotoURL     *string
	PasswordHash string
	IsActive     bool
	IsStaff      bool
	LastLogin    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Join
	EmployeeID *string
	ManagerID  *string
	CompanyID  *string
}

// Role derives the access role from the staff flag and linked profiles.
func (u *User) Role() Role {
	switch {
	case u.IsStaff:
		return RoleAdmin
	case u.ManagerID != nil:
		return RoleManager
	case u.EmployeeID != nil:
		return RoleEmployee
	default:
		return RoleUser
	}
}

// FullName falls back to the username when no name is set.
func (u *User) FullName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Username
	}
	return name
}

// CanValidate checks if user can move provisions through the approval workflow
func (u *User) CanValidate() bool {
	role := u.Role()
	return role == RoleAdmin || role == RoleManager
}
