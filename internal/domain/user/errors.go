package user

import "errors"

var (
	ErrUserNotFound            = errors.New("user not found")
	ErrUsernameExists          = errors.New("username already registered")
	ErrCPFExists               = errors.New("cpf already registered")
	ErrUserInactive            = errors.New("user account is inactive")
	ErrUserInUse               = errors.New("user is referenced by other records")
	ErrAdminPrivilegeRequired  = errors.New("admin privilege required")
	ErrManagerAccessRequired   = errors.New("manager access required")
	ErrEmployeeAccessRequired  = errors.New("employee profile required")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
	ErrCannotToggleSelf        = errors.New("cannot change your own active or staff flag")
	ErrWrongPassword           = errors.New("current password is incorrect")
)
