package provision

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/terceiro-labs/provision-backend/internal/pkg/timeofday"
)

// Status is the manager-approval state of a record.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
	StatusInReview Status = "in_review"
)

var Statuses = []Status{StatusPending, StatusApproved, StatusRejected, StatusInReview}

func (s Status) IsValid() bool {
	for _, st := range Statuses {
		if s == st {
			return true
		}
	}
	return false
}

// ParseStatus returns ErrInvalidStatus for anything outside Statuses.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.IsValid() {
		return "", ErrInvalidStatus
	}
	return st, nil
}

// Payable reports whether the record counts toward payable totals.
func (s Status) Payable() bool {
	return s == StatusApproved
}

// Record is one employee's documented work visit at one location on one date.
type Record struct {
	ID         string
	EmployeeID string
	LocationID string
	ManagerID  string

	Date      time.Time
	Arrival   timeofday.TimeOfDay
	LunchOut  *timeofday.TimeOfDay
	LunchIn   *timeofday.TimeOfDay
	Departure timeofday.TimeOfDay

	OnSiteValidated bool
	Status          Status
	Value           decimal.Decimal
	Notes           string
	ProofPhotoURL   *string

	ArrivalLatitude    *float64
	ArrivalLongitude   *float64
	DepartureLatitude  *float64
	DepartureLongitude *float64

	CreatedBy *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Shift returns the clock stamps of the record for the calculator.
func (r Record) Shift() Shift {
	arrival, departure := r.Arrival, r.Departure
	return Shift{
		Date:      r.Date,
		Arrival:   &arrival,
		LunchOut:  r.LunchOut,
		LunchIn:   r.LunchIn,
		Departure: &departure,
	}
}

func (r Record) WorkedDuration() time.Duration {
	return WorkedDuration(r.Shift())
}

func (r Record) HourlyRate() decimal.Decimal {
	return HourlyRate(r.Value, r.WorkedDuration())
}

// HistoryEntry documents one status transition. Entries are never updated.
type HistoryEntry struct {
	ID             string
	ProvisionID    string
	PreviousStatus Status
	NewStatus      Status
	ValidatedBy    string
	Notes          string
	CreatedAt      time.Time

	// Join
	ValidatorName *string
}

// Detail is the read projection of a record joined with the people and
// places it references.
type Detail struct {
	Record

	EmployeeName         string
	EmployeeCPF          *string
	EmployeePhone        *string
	EmployeePhotoURL     *string
	EmployeeRegistration string
	CompanyID            string
	CompanyName          string
	LocationName         string
	CityName             string
	ManagerName          string
}

// TimeSheet carries only what the calculator needs, for aggregate reads.
type TimeSheet struct {
	EmployeeID string
	CompanyID  string
	Date       time.Time
	Arrival    timeofday.TimeOfDay
	LunchOut   *timeofday.TimeOfDay
	LunchIn    *timeofday.TimeOfDay
	Departure  timeofday.TimeOfDay
}

func (t TimeSheet) WorkedDuration() time.Duration {
	arrival, departure := t.Arrival, t.Departure
	return WorkedDuration(Shift{Date: t.Date, Arrival: &arrival, LunchOut: t.LunchOut, LunchIn: t.LunchIn, Departure: &departure})
}

// Summary holds per-status counts and value aggregates of a filtered set.
type Summary struct {
	Total        int64
	Approved     int64
	Pending      int64
	Rejected     int64
	InReview     int64
	TotalValue   decimal.Decimal
	AverageValue decimal.Decimal
	TopCompanies []CompanyCount
}

type CompanyCount struct {
	CompanyID   string
	CompanyName string
	Count       int64
}
