package employee

import "errors"

var (
	ErrEmployeeNotFound      = errors.New("employee not found")
	ErrRegistrationExists    = errors.New("employee with this registration already exists")
	ErrUserAlreadyEmployee   = errors.New("user is already an employee")
	ErrEmployeeInUse         = errors.New("employee is referenced by service provisions or punches")
	ErrInvalidReference      = errors.New("referenced user, company or position does not exist")
	ErrTerminationBeforeHire = errors.New("termination date must not be before hire date")
)
