package location

import "errors"

var (
	ErrStateNotFound    = errors.New("state not found")
	ErrStateCodeExists  = errors.New("state with this code already exists")
	ErrStateInUse       = errors.New("state is referenced by cities")
	ErrCityNotFound     = errors.New("city not found")
	ErrCityExists       = errors.New("city with this name or IBGE code already exists in the state")
	ErrCityInUse        = errors.New("city is referenced by locations or companies")
	ErrLocationNotFound = errors.New("service location not found")
	ErrLocationInUse    = errors.New("service location is referenced by service provisions")
	ErrInvalidState     = errors.New("referenced state does not exist")
	ErrInvalidCity      = errors.New("referenced city does not exist")
)
