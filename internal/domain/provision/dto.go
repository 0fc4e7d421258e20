package provision

import (
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/terceiro-labs/provision-backend/internal/pkg/pagination"
	"github.com/terceiro-labs/provision-backend/internal/pkg/timeofday"
	"github.com/terceiro-labs/provision-backend/internal/pkg/validator"
)

const maxPhotoSize = 10 << 20 // 10MB

// ========================================
// REQUESTS
// ========================================

type CreateProvisionRequest struct {
	EmployeeID         string          `json:"employee_id"`
	LocationID         string          `json:"location_id"`
	ManagerID          string          `json:"manager_id"`
	Date               string          `json:"date"`           // YYYY-MM-DD
	ArrivalTime        string          `json:"arrival_time"`   // HH:MM[:SS]
	LunchOutTime       *string         `json:"lunch_out_time"` // optional
	LunchInTime        *string         `json:"lunch_in_time"`  // optional
	DepartureTime      string          `json:"departure_time"`
	Value              decimal.Decimal `json:"value"`
	Notes              string          `json:"notes"`
	ArrivalLatitude    *float64        `json:"arrival_latitude"`
	ArrivalLongitude   *float64        `json:"arrival_longitude"`
	DepartureLatitude  *float64        `json:"departure_latitude"`
	DepartureLongitude *float64        `json:"departure_longitude"`

	File       multipart.File        `json:"-"`
	FileHeader *multipart.FileHeader `json:"-"`
}

func (r *CreateProvisionRequest) Validate() error {
	var errs validator.ValidationErrors

	requireUUID(&errs, "employee_id", r.EmployeeID)
	requireUUID(&errs, "location_id", r.LocationID)
	requireUUID(&errs, "manager_id", r.ManagerID)

	if validator.IsEmpty(r.Date) {
		errs.Add("date", "date is required")
	} else if _, ok := validator.IsValidDate(r.Date); !ok {
		errs.Add("date", "date must be in YYYY-MM-DD format")
	}

	requireTime(&errs, "arrival_time", &r.ArrivalTime)
	requireTime(&errs, "departure_time", &r.DepartureTime)
	optionalTime(&errs, "lunch_out_time", r.LunchOutTime)
	optionalTime(&errs, "lunch_in_time", r.LunchInTime)
	if (r.LunchOutTime == nil) != (r.LunchInTime == nil) {
		errs.Add("lunch_in_time", ErrLunchIncomplete.Error())
	}

	if !validator.IsMoney(r.Value) {
		errs.Add("value", "value must be between 0.01 and 99999999.99 with at most two decimal places")
	}

	validateCoordinates(&errs, "arrival", r.ArrivalLatitude, r.ArrivalLongitude)
	validateCoordinates(&errs, "departure", r.DepartureLatitude, r.DepartureLongitude)
	validatePhoto(&errs, r.FileHeader)

	return errs.OrNil()
}

// Record builds the record to persist. Call only after Validate succeeded.
func (r *CreateProvisionRequest) Record() Record {
	date, _ := validator.IsValidDate(r.Date)
	rec := Record{
		EmployeeID:         r.EmployeeID,
		LocationID:         r.LocationID,
		ManagerID:          r.ManagerID,
		Date:               date,
		Arrival:            timeofday.MustParse(r.ArrivalTime),
		Departure:          timeofday.MustParse(r.DepartureTime),
		LunchOut:           parseOptionalTime(r.LunchOutTime),
		LunchIn:            parseOptionalTime(r.LunchInTime),
		Status:             StatusPending,
		Value:              r.Value,
		Notes:              strings.TrimSpace(r.Notes),
		ArrivalLatitude:    r.ArrivalLatitude,
		ArrivalLongitude:   r.ArrivalLongitude,
		DepartureLatitude:  r.DepartureLatitude,
		DepartureLongitude: r.DepartureLongitude,
	}
	return rec
}

// UpdateProvisionRequest is an administrative correction. Status changes go
// through TransitionRequest only.
type UpdateProvisionRequest struct {
	ID              string           `json:"-"`
	LocationID      *string          `json:"location_id"`
	ManagerID       *string          `json:"manager_id"`
	Date            *string          `json:"date"`
	ArrivalTime     *string          `json:"arrival_time"`
	LunchOutTime    *string          `json:"lunch_out_time"`
	LunchInTime     *string          `json:"lunch_in_time"`
	DepartureTime   *string          `json:"departure_time"`
	ClearLunch      bool             `json:"clear_lunch"`
	Value           *decimal.Decimal `json:"value"`
	Notes           *string          `json:"notes"`
	OnSiteValidated *bool            `json:"on_site_validated"`
}

func (r *UpdateProvisionRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs.Add("id", "id must be a valid UUID")
	}
	if r.LocationID != nil {
		requireUUID(&errs, "location_id", *r.LocationID)
	}
	if r.ManagerID != nil {
		requireUUID(&errs, "manager_id", *r.ManagerID)
	}
	if r.Date != nil {
		if _, ok := validator.IsValidDate(*r.Date); !ok {
			errs.Add("date", "date must be in YYYY-MM-DD format")
		}
	}
	optionalTime(&errs, "arrival_time", r.ArrivalTime)
	optionalTime(&errs, "departure_time", r.DepartureTime)
	optionalTime(&errs, "lunch_out_time", r.LunchOutTime)
	optionalTime(&errs, "lunch_in_time", r.LunchInTime)
	if r.ClearLunch && (r.LunchOutTime != nil || r.LunchInTime != nil) {
		errs.Add("clear_lunch", "clear_lunch cannot be combined with lunch times")
	}
	if r.Value != nil && !validator.IsMoney(*r.Value) {
		errs.Add("value", "value must be between 0.01 and 99999999.99 with at most two decimal places")
	}

	return errs.OrNil()
}

// TouchesTimes reports whether the correction changes any clock stamp.
func (r *UpdateProvisionRequest) TouchesTimes() bool {
	return r.Date != nil || r.ArrivalTime != nil || r.DepartureTime != nil ||
		r.LunchOutTime != nil || r.LunchInTime != nil || r.ClearLunch
}

// Apply copies the requested changes onto rec. Call only after Validate succeeded.
func (r *UpdateProvisionRequest) Apply(rec *Record) {
	if r.LocationID != nil {
		rec.LocationID = *r.LocationID
	}
	if r.ManagerID != nil {
		rec.ManagerID = *r.ManagerID
	}
	if r.Date != nil {
		rec.Date, _ = validator.IsValidDate(*r.Date)
	}
	if r.ArrivalTime != nil {
		rec.Arrival = timeofday.MustParse(*r.ArrivalTime)
	}
	if r.DepartureTime != nil {
		rec.Departure = timeofday.MustParse(*r.DepartureTime)
	}
	if r.ClearLunch {
		rec.LunchOut, rec.LunchIn = nil, nil
	}
	if r.LunchOutTime != nil {
		rec.LunchOut = parseOptionalTime(r.LunchOutTime)
	}
	if r.LunchInTime != nil {
		rec.LunchIn = parseOptionalTime(r.LunchInTime)
	}
	if r.Value != nil {
		rec.Value = *r.Value
	}
	if r.Notes != nil {
		rec.Notes = strings.TrimSpace(*r.Notes)
	}
	if r.OnSiteValidated != nil {
		rec.OnSiteValidated = *r.OnSiteValidated
	}
}

type TransitionRequest struct {
	ID     string `json:"-"`
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

func (r *TransitionRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs.Add("id", "id must be a valid UUID")
	}
	if validator.IsEmpty(r.Status) {
		errs.Add("status", "status is required")
	} else if !Status(r.Status).IsValid() {
		errs.Add("status", ErrInvalidStatus.Error())
	}
	if len(r.Notes) > 2000 {
		errs.Add("notes", "notes must not exceed 2000 characters")
	}

	return errs.OrNil()
}

type ProvisionFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	CompanyID  *string `json:"company_id,omitempty"`
	LocationID *string `json:"location_id,omitempty"`
	ManagerID  *string `json:"manager_id,omitempty"`
	Status     *string `json:"status,omitempty"`
	StartDate  *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate    *string `json:"end_date,omitempty"`   // YYYY-MM-DD

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`

	// Sorting
	SortBy    string `json:"sort_by"`    // date, arrival_time, value, status, created_at
	SortOrder string `json:"sort_order"` // asc, desc
}

func (f *ProvisionFilter) Validate() error {
	var errs validator.ValidationErrors

	f.Page, f.Limit = pagination.Normalize(f.Page, f.Limit, &errs)

	for field, id := range map[string]*string{
		"employee_id": f.EmployeeID,
		"company_id":  f.CompanyID,
		"location_id": f.LocationID,
		"manager_id":  f.ManagerID,
	} {
		if id != nil && !validator.IsValidUUID(*id) {
			errs.Add(field, field+" must be a valid UUID")
		}
	}

	if f.Status != nil && !Status(*f.Status).IsValid() {
		errs.Add("status", ErrInvalidStatus.Error())
	}

	var start, end time.Time
	var hasStart, hasEnd bool
	if f.StartDate != nil {
		if start, hasStart = validator.IsValidDate(*f.StartDate); !hasStart {
			errs.Add("start_date", "start_date must be in YYYY-MM-DD format")
		}
	}
	if f.EndDate != nil {
		if end, hasEnd = validator.IsValidDate(*f.EndDate); !hasEnd {
			errs.Add("end_date", "end_date must be in YYYY-MM-DD format")
		}
	}
	if hasStart && hasEnd && end.Before(start) {
		errs.Add("end_date", "end_date must not be before start_date")
	}

	if f.SortBy != "" && !validator.IsInSlice(f.SortBy, []string{"date", "arrival_time", "value", "status", "created_at"}) {
		errs.Add("sort_by", "sort_by must be one of: date, arrival_time, value, status, created_at")
	}
	if f.SortOrder != "" && !validator.IsInSlice(strings.ToLower(f.SortOrder), []string{"asc", "desc"}) {
		errs.Add("sort_order", "sort_order must be one of: asc, desc")
	}

	return errs.OrNil()
}

// ========================================
// RESPONSES
// ========================================

type ProvisionResponse struct {
	ID                   string   `json:"id"`
	EmployeeID           string   `json:"employee_id"`
	EmployeeName         string   `json:"employee_name"`
	EmployeeCPF          *string  `json:"employee_cpf,omitempty"`
	EmployeePhone        *string  `json:"employee_phone,omitempty"`
	EmployeePhotoURL     *string  `json:"employee_photo_url,omitempty"`
	EmployeeRegistration string   `json:"employee_registration"`
	CompanyID            string   `json:"company_id"`
	CompanyName          string   `json:"company_name"`
	LocationID           string   `json:"location_id"`
	LocationName         string   `json:"location_name"`
	CityName             string   `json:"city_name"`
	ManagerID            string   `json:"manager_id"`
	ManagerName          string   `json:"manager_name"`
	Date                 string   `json:"date"`
	ArrivalTime          string   `json:"arrival_time"`
	LunchOutTime         *string  `json:"lunch_out_time"`
	LunchInTime          *string  `json:"lunch_in_time"`
	DepartureTime        string   `json:"departure_time"`
	WorkedHours          string   `json:"worked_hours"`
	HourlyRate           string   `json:"hourly_rate"`
	Value                string   `json:"value"`
	OnSiteValidated      bool     `json:"on_site_validated"`
	Status               Status   `json:"status"`
	Notes                string   `json:"notes"`
	ProofPhotoURL        *string  `json:"proof_photo_url,omitempty"`
	ArrivalLatitude      *float64 `json:"arrival_latitude,omitempty"`
	ArrivalLongitude     *float64 `json:"arrival_longitude,omitempty"`
	DepartureLatitude    *float64 `json:"departure_latitude,omitempty"`
	DepartureLongitude   *float64 `json:"departure_longitude,omitempty"`
	CreatedBy            *string  `json:"created_by,omitempty"`
	CreatedAt            string   `json:"created_at"`
	UpdatedAt            string   `json:"updated_at"`
}

// ToResponse renders d with its derived hours and rate, both computed here.
func ToResponse(d Detail) ProvisionResponse {
	worked := d.WorkedDuration()
	return ProvisionResponse{
		ID:                   d.ID,
		EmployeeID:           d.EmployeeID,
		EmployeeName:         d.EmployeeName,
		EmployeeCPF:          d.EmployeeCPF,
		EmployeePhone:        d.EmployeePhone,
		EmployeePhotoURL:     d.EmployeePhotoURL,
		EmployeeRegistration: d.EmployeeRegistration,
		CompanyID:            d.CompanyID,
		CompanyName:          d.CompanyName,
		LocationID:           d.LocationID,
		LocationName:         d.LocationName,
		CityName:             d.CityName,
		ManagerID:            d.ManagerID,
		ManagerName:          d.ManagerName,
		Date:                 d.Date.Format("2006-01-02"),
		ArrivalTime:          d.Arrival.String(),
		LunchOutTime:         timeString(d.LunchOut),
		LunchInTime:          timeString(d.LunchIn),
		DepartureTime:        d.Departure.String(),
		WorkedHours:          Hours(worked).StringFixed(2),
		HourlyRate:           HourlyRate(d.Value, worked).StringFixed(2),
		Value:                d.Value.StringFixed(2),
		OnSiteValidated:      d.OnSiteValidated,
		Status:               d.Status,
		Notes:                d.Notes,
		ProofPhotoURL:        d.ProofPhotoURL,
		ArrivalLatitude:      d.ArrivalLatitude,
		ArrivalLongitude:     d.ArrivalLongitude,
		DepartureLatitude:    d.DepartureLatitude,
		DepartureLongitude:   d.DepartureLongitude,
		CreatedBy:            d.CreatedBy,
		CreatedAt:            d.CreatedAt.Format(time.RFC3339),
		UpdatedAt:            d.UpdatedAt.Format(time.RFC3339),
	}
}

type ListProvisionResponse struct {
	pagination.Page
	Provisions []ProvisionResponse `json:"provisions"`
}

type HistoryResponse struct {
	ID             string  `json:"id"`
	ProvisionID    string  `json:"provision_id"`
	PreviousStatus Status  `json:"previous_status"`
	NewStatus      Status  `json:"new_status"`
	ValidatedBy    string  `json:"validated_by"`
	ValidatorName  *string `json:"validator_name,omitempty"`
	Notes          string  `json:"notes"`
	CreatedAt      string  `json:"created_at"`
}

func ToHistoryResponse(h HistoryEntry) HistoryResponse {
	return HistoryResponse{
		ID:             h.ID,
		ProvisionID:    h.ProvisionID,
		PreviousStatus: h.PreviousStatus,
		NewStatus:      h.NewStatus,
		ValidatedBy:    h.ValidatedBy,
		ValidatorName:  h.ValidatorName,
		Notes:          h.Notes,
		CreatedAt:      h.CreatedAt.Format(time.RFC3339),
	}
}

type TransitionResponse struct {
	Provision ProvisionResponse `json:"provision"`
	History   HistoryResponse   `json:"history"`
}

type SummaryResponse struct {
	Total        int64                  `json:"total"`
	Approved     int64                  `json:"approved"`
	Pending      int64                  `json:"pending"`
	Rejected     int64                  `json:"rejected"`
	InReview     int64                  `json:"in_review"`
	TotalValue   string                 `json:"total_value"`
	AverageValue string                 `json:"average_value"`
	TopCompanies []CompanyCountResponse `json:"top_companies"`
}

type CompanyCountResponse struct {
	CompanyID   string `json:"company_id"`
	CompanyName string `json:"company_name"`
	Count       int64  `json:"count"`
}

func ToSummaryResponse(s Summary) SummaryResponse {
	top := make([]CompanyCountResponse, 0, len(s.TopCompanies))
	for _, c := range s.TopCompanies {
		top = append(top, CompanyCountResponse{CompanyID: c.CompanyID, CompanyName: c.CompanyName, Count: c.Count})
	}
	return SummaryResponse{
		Total:        s.Total,
		Approved:     s.Approved,
		Pending:      s.Pending,
		Rejected:     s.Rejected,
		InReview:     s.InReview,
		TotalValue:   s.TotalValue.StringFixed(2),
		AverageValue: s.AverageValue.StringFixed(2),
		TopCompanies: top,
	}
}

// ========================================
// HELPERS
// ========================================

func requireUUID(errs *validator.ValidationErrors, field, value string) {
	if validator.IsEmpty(value) {
		errs.Add(field, field+" is required")
	} else if !validator.IsValidUUID(value) {
		errs.Add(field, field+" must be a valid UUID")
	}
}

func requireTime(errs *validator.ValidationErrors, field string, value *string) {
	if validator.IsEmpty(*value) {
		errs.Add(field, field+" is required")
		return
	}
	optionalTime(errs, field, value)
}

func optionalTime(errs *validator.ValidationErrors, field string, value *string) {
	if value == nil {
		return
	}
	if _, err := timeofday.Parse(*value); err != nil {
		errs.Add(field, field+" must be in HH:MM or HH:MM:SS format")
	}
}

func parseOptionalTime(value *string) *timeofday.TimeOfDay {
	if value == nil {
		return nil
	}
	t := timeofday.MustParse(*value)
	return &t
}

func timeString(t *timeofday.TimeOfDay) *string {
	if t == nil {
		return nil
	}
	s := t.String()
	return &s
}

func validateCoordinates(errs *validator.ValidationErrors, prefix string, lat, lon *float64) {
	if (lat == nil) != (lon == nil) {
		errs.Add(prefix+"_latitude", prefix+"_latitude and "+prefix+"_longitude must be provided together")
		return
	}
	if lat != nil && (*lat < -90 || *lat > 90) {
		errs.Add(prefix+"_latitude", prefix+"_latitude must be between -90 and 90")
	}
	if lon != nil && (*lon < -180 || *lon > 180) {
		errs.Add(prefix+"_longitude", prefix+"_longitude must be between -180 and 180")
	}
}

func validatePhoto(errs *validator.ValidationErrors, header *multipart.FileHeader) {
	if header == nil {
		return
	}
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
		errs.Add("photo", "invalid file type: only jpg, jpeg, png allowed")
	} else if header.Size > maxPhotoSize {
		errs.Add("photo", "proof photo size must not exceed 10MB")
	}
}
