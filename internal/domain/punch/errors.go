package punch

import "errors"

var (
	ErrPunchNotFound   = errors.New("punch not found")
	ErrPhotoRequired   = errors.New("photo is required")
	ErrNotEmployee     = errors.New("only employees can register punches")
	ErrInvalidEmployee = errors.New("referenced employee does not exist")
)
