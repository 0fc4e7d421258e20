package dashboard

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/terceiro-labs/provision-backend/internal/domain/provision"
)

// Scope narrows every dashboard query. Dates bound the provision date inclusive.
type Scope struct {
	CompanyID *string
	StartDate *time.Time
	EndDate   *time.Time
}

type EmployeeCounts struct {
	Active   int64
	Inactive int64
}

type StatusCount struct {
	Status provision.Status
	Count  int64
}

type DailyVolume struct {
	Date  time.Time
	Count int64
	Value decimal.Decimal
}

// ValueTotals aggregates record values of approved provisions.
type ValueTotals struct {
	Count   int64
	Total   decimal.Decimal
	Average decimal.Decimal
}

type CompanyCount struct {
	CompanyID   string
	CompanyName string
	Count       int64
}

type CompanyTotals struct {
	CompanyID   string
	CompanyName string
	ValueTotals
}

type EmployeeTotals struct {
	EmployeeID   string
	EmployeeName string
	CompanyName  string
	ValueTotals
}
