package employee

import "time"

// Employee is a worker of an outsourced company, linked 1:1 to a user account.
type Employee struct {
	ID              string
	UserID          string
	CompanyID       string
	PositionID      string
	Registration    string
	PixKey          *string
	Bank            *string
	BankBranch      *string
	BankAccount     *string
	HireDate        time.Time
	TerminationDate *time.Time
	Active          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Join
	FullName     string
	Username     string
	Email        string
	CPF          *string
	Phone        *string
	PhotoURL     *string
	CompanyName  string
	PositionName string
}

// Employed reports whether the employee has no termination date on or before day.
func (e Employee) Employed(day time.Time) bool {
	return e.TerminationDate == nil || e.TerminationDate.After(day)
}

// Summary aggregates the employee roster.
type Summary struct {
	Total      int64
	Active     int64
	Inactive   int64
	ByCompany  []GroupCount
	ByPosition []GroupCount
}

type GroupCount struct {
	ID    string
	Name  string
	Count int64
}
