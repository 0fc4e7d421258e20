package location

import "time"

type State struct {
	ID        string
	Name      string
	Code      string // UF
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

type City struct {
	ID        string
	Name      string
	StateID   string
	IBGECode  *string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time

	// Join
	StateName string
	StateCode string
}

// Location is a physical place where services are rendered.
type Location struct {
	ID        string
	Name      string
	CityID    string
	Address   string
	CEP       *string
	Latitude  *float64
	Longitude *float64
	Notes     string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time

	// Join
	CityName  string
	StateCode string
}

// HasCoordinates reports whether the location can anchor an on-site check.
func (l Location) HasCoordinates() bool {
	return l.Latitude != nil && l.Longitude != nil
}
