package dashboard

import (
	"time"

	"github.com/terceiro-labs/provision-backend/internal/domain/provision"
	"github.com/terceiro-labs/provision-backend/internal/pkg/validator"
)

const (
	DefaultPeriodDays = 30
	MaxPeriodDays     = 366
)

type DashboardFilter struct {
	CompanyID *string `json:"company_id,omitempty"`
	StartDate *string `json:"start_date,omitempty"`
	EndDate   *string `json:"end_date,omitempty"`
}

func (f *DashboardFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.CompanyID != nil && !validator.IsValidUUID(*f.CompanyID) {
		errs.Add("company_id", "company_id must be a valid UUID")
	}

	start, end := f.dates(&errs)
	if start != nil && end != nil && end.Before(*start) {
		errs.Add("end_date", "end_date must not be before start_date")
	}

	return errs.OrNil()
}

func (f *DashboardFilter) dates(errs *validator.ValidationErrors) (*time.Time, *time.Time) {
	var start, end *time.Time
	if f.StartDate != nil {
		if d, ok := validator.IsValidDate(*f.StartDate); ok {
			start = &d
		} else {
			errs.Add("start_date", "start_date must be in YYYY-MM-DD format")
		}
	}
	if f.EndDate != nil {
		if d, ok := validator.IsValidDate(*f.EndDate); ok {
			end = &d
		} else {
			errs.Add("end_date", "end_date must be in YYYY-MM-DD format")
		}
	}
	return start, end
}

// Scope converts a validated filter.
func (f *DashboardFilter) Scope() Scope {
	var discard validator.ValidationErrors
	start, end := f.dates(&discard)
	return Scope{CompanyID: f.CompanyID, StartDate: start, EndDate: end}
}

// ApprovedProvisions selects the approved provisions in scope, for hour sums.
func (f *DashboardFilter) ApprovedProvisions() provision.ProvisionFilter {
	status := string(provision.StatusApproved)
	return provision.ProvisionFilter{
		CompanyID: f.CompanyID,
		Status:    &status,
		StartDate: f.StartDate,
		EndDate:   f.EndDate,
	}
}

type ChartsFilter struct {
	CompanyID *string `json:"company_id,omitempty"`
	Period    int     `json:"period"` // days, default 30
}

func (f *ChartsFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.CompanyID != nil && !validator.IsValidUUID(*f.CompanyID) {
		errs.Add("company_id", "company_id must be a valid UUID")
	}
	if f.Period == 0 {
		f.Period = DefaultPeriodDays
	}
	if f.Period < 0 || f.Period > MaxPeriodDays {
		errs.Add("period", "period must be between 1 and 366 days")
	}

	return errs.OrNil()
}

// Scope covers the last Period days up to now.
func (f *ChartsFilter) Scope(now time.Time) Scope {
	since := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -f.Period)
	return Scope{CompanyID: f.CompanyID, StartDate: &since}
}

// ========================================
// RESPONSES
// ========================================

type GeneralResponse struct {
	Employees  EmployeeStats  `json:"employees"`
	Provisions ProvisionStats `json:"provisions"`
	Financial  FinancialStats `json:"financial"`
}

type EmployeeStats struct {
	Active   int64 `json:"active"`
	Inactive int64 `json:"inactive"`
	Total    int64 `json:"total"`
}

type ProvisionStats struct {
	Approved int64 `json:"approved"`
	Pending  int64 `json:"pending"`
	Total    int64 `json:"total"`
}

type FinancialStats struct {
	ApprovedValue string `json:"approved_value"`
	WorkedHours   string `json:"worked_hours"`
}

type ChartsResponse struct {
	StatusDistribution  []StatusCountResponse  `json:"status_distribution"`
	ProvisionsPerDay    []DailyVolumeResponse  `json:"provisions_per_day"`
	EmployeesPerCompany []CompanyCountResponse `json:"employees_per_company"`
	ValuesPerCompany    []CompanyTotalResponse `json:"values_per_company"`
}

type StatusCountResponse struct {
	Status provision.Status `json:"status"`
	Count  int64            `json:"count"`
}

type DailyVolumeResponse struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
	Value string `json:"value"`
}

type CompanyCountResponse struct {
	CompanyID   string `json:"company_id"`
	CompanyName string `json:"company_name"`
	Count       int64  `json:"count"`
}

type CompanyTotalResponse struct {
	CompanyID    string `json:"company_id"`
	CompanyName  string `json:"company_name"`
	Provisions   int64  `json:"provisions"`
	TotalValue   string `json:"total_value"`
	AverageValue string `json:"average_value"`
	WorkedHours  string `json:"worked_hours,omitempty"`
}

type EmployeeTotalResponse struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	CompanyName  string `json:"company_name"`
	Provisions   int64  `json:"provisions"`
	TotalValue   string `json:"total_value"`
	AverageValue string `json:"average_value"`
	WorkedHours  string `json:"worked_hours"`
}

type FinancialResponse struct {
	Summary    FinancialSummary        `json:"summary"`
	ByCompany  []CompanyTotalResponse  `json:"by_company"`
	ByEmployee []EmployeeTotalResponse `json:"by_employee"`
}

type FinancialSummary struct {
	Provisions   int64  `json:"provisions"`
	TotalValue   string `json:"total_value"`
	AverageValue string `json:"average_value"`
	WorkedHours  string `json:"worked_hours"`
}
