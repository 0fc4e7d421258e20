package punch

import "time"

// Punch is one time-clock registration with photo and GPS evidence.
type Punch struct {
	ID         string
	EmployeeID string
	PhotoURL   string
	IPAddress  *string
	Latitude   *float64
	Longitude  *float64
	CreatedAt  time.Time

	// Join
	EmployeeName string
	CompanyName  string
}

type Summary struct {
	Total         int64
	Today         int64
	LastSevenDays int64
	TopEmployees  []EmployeeCount
}

type EmployeeCount struct {
	EmployeeID   string
	EmployeeName string
	Count        int64
}
