package punch

import (
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/terceiro-labs/provision-backend/internal/pkg/pagination"
	"github.com/terceiro-labs/provision-backend/internal/pkg/validator"
)

type CreatePunchRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	IPAddress string   `json:"-"` // From request

	File       multipart.File        `json:"-"`
	FileHeader *multipart.FileHeader `json:"-"`
}

func (r *CreatePunchRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.File == nil || r.FileHeader == nil {
		errs.Add("photo", ErrPhotoRequired.Error())
	} else {
		ext := strings.ToLower(filepath.Ext(r.FileHeader.Filename))
		if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
			errs.Add("photo", "invalid file type: only jpg, jpeg, png allowed")
		} else if r.FileHeader.Size > 10<<20 {
			errs.Add("photo", "photo size must not exceed 10MB")
		}
	}

	if (r.Latitude == nil) != (r.Longitude == nil) {
		errs.Add("latitude", "latitude and longitude must be provided together")
	}
	if r.Latitude != nil && (*r.Latitude < -90 || *r.Latitude > 90) {
		errs.Add("latitude", "latitude must be between -90 and 90")
	}
	if r.Longitude != nil && (*r.Longitude < -180 || *r.Longitude > 180) {
		errs.Add("longitude", "longitude must be between -180 and 180")
	}

	return errs.OrNil()
}

type PunchFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	CompanyID  *string `json:"company_id,omitempty"`
	StartDate  *string `json:"start_date,omitempty"`
	EndDate    *string `json:"end_date,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *PunchFilter) Validate() error {
	var errs validator.ValidationErrors

	f.Page, f.Limit = pagination.Normalize(f.Page, f.Limit, &errs)

	if f.EmployeeID != nil && !validator.IsValidUUID(*f.EmployeeID) {
		errs.Add("employee_id", "employee_id must be a valid UUID")
	}
	if f.CompanyID != nil && !validator.IsValidUUID(*f.CompanyID) {
		errs.Add("company_id", "company_id must be a valid UUID")
	}
	if f.StartDate != nil {
		if _, ok := validator.IsValidDate(*f.StartDate); !ok {
			errs.Add("start_date", "start_date must be in YYYY-MM-DD format")
		}
	}
	if f.EndDate != nil {
		if _, ok := validator.IsValidDate(*f.EndDate); !ok {
			errs.Add("end_date", "end_date must be in YYYY-MM-DD format")
		}
	}

	return errs.OrNil()
}

type PunchResponse struct {
	ID           string   `json:"id"`
	EmployeeID   string   `json:"employee_id"`
	EmployeeName string   `json:"employee_name"`
	CompanyName  string   `json:"company_name"`
	PhotoURL     string   `json:"photo_url"`
	IPAddress    *string  `json:"ip_address,omitempty"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	CreatedAt    string   `json:"created_at"`
}

func ToResponse(p Punch) PunchResponse {
	return PunchResponse{
		ID:           p.ID,
		EmployeeID:   p.EmployeeID,
		EmployeeName: p.EmployeeName,
		CompanyName:  p.CompanyName,
		PhotoURL:     p.PhotoURL,
		IPAddress:    p.IPAddress,
		Latitude:     p.Latitude,
		Longitude:    p.Longitude,
		CreatedAt:    p.CreatedAt.Format(time.RFC3339),
	}
}

type ListPunchResponse struct {
	pagination.Page
	Punches []PunchResponse `json:"punches"`
}

type SummaryResponse struct {
	Total         int64                   `json:"total"`
	Today         int64                   `json:"today"`
	LastSevenDays int64                   `json:"last_seven_days"`
	TopEmployees  []EmployeeCountResponse `json:"top_employees"`
}

type EmployeeCountResponse struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	Count        int64  `json:"count"`
}

func ToSummaryResponse(s Summary) SummaryResponse {
	top := make([]EmployeeCountResponse, 0, len(s.TopEmployees))
	for _, e := range s.TopEmployees {
		top = append(top, EmployeeCountResponse{EmployeeID: e.EmployeeID, EmployeeName: e.EmployeeName, Count: e.Count})
	}
	return SummaryResponse{Total: s.Total, Today: s.Today, LastSevenDays: s.LastSevenDays, TopEmployees: top}
}
