package provision

import "errors"

var (
	ErrProvisionNotFound = errors.New("service provision not found")
	ErrInvalidTimeOrder  = errors.New("invalid time order")
	ErrDuplicateRecord   = errors.New("a service provision already exists for this employee, date and location")
	ErrInvalidReference  = errors.New("referenced employee, location or manager does not exist")
	ErrInvalidStatus     = errors.New("status must be one of: pending, approved, rejected, in_review")
	ErrStatusUnchanged   = errors.New("service provision already has this status")
	ErrNotOwnRecord      = errors.New("employees may only record their own service provisions")
	ErrPhotoNotFound     = errors.New("service provision has no proof photo")
	ErrLunchIncomplete   = errors.New("lunch_out_time and lunch_in_time must be provided together")
)
