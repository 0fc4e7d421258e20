package report

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/terceiro-labs/provision-backend/internal/pkg/pagination"
	"github.com/terceiro-labs/provision-backend/internal/pkg/validator"
)

type ReportRequest struct {
	ID          string          `json:"-"`
	Name        string          `json:"name" validate:"required,max=200"`
	Filters     json.RawMessage `json:"filters"`
	Fields      json.RawMessage `json:"fields"`
	Description string          `json:"description"`
	Public      bool            `json:"public"`
}

func (r *ReportRequest) Validate() error {
	var errs validator.ValidationErrors
	if err := validator.Struct(r); err != nil && !errors.As(err, &errs) {
		return err
	}

	if len(r.Filters) == 0 {
		r.Filters = json.RawMessage("{}")
	}
	var filters map[string]any
	if err := json.Unmarshal(r.Filters, &filters); err != nil {
		errs.Add("filters", "filters must be a JSON object")
	}

	if len(r.Fields) == 0 {
		errs.Add("fields", "fields is required")
	} else {
		var fields []string
		if err := json.Unmarshal(r.Fields, &fields); err != nil {
			errs.Add("fields", "fields must be a JSON array of field names")
		} else if len(fields) == 0 {
			errs.Add("fields", "fields must contain at least one field")
		}
	}

	return errs.OrNil()
}

func (r *ReportRequest) Report(userID string) SavedReport {
	return SavedReport{
		ID:          r.ID,
		Name:        strings.TrimSpace(r.Name),
		UserID:      userID,
		Filters:     r.Filters,
		Fields:      r.Fields,
		Description: r.Description,
		Public:      r.Public,
	}
}

type ReportFilter struct {
	UserID string  `json:"-"`
	All    bool    `json:"-"`
	Search *string `json:"search,omitempty"`
	Page   int     `json:"page"`
	Limit  int     `json:"limit"`
}

func (f *ReportFilter) Validate() error {
	var errs validator.ValidationErrors
	f.Page, f.Limit = pagination.Normalize(f.Page, f.Limit, &errs)
	return errs.OrNil()
}

type ReportResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	UserID      string          `json:"user_id"`
	OwnerName   string          `json:"owner_name"`
	Filters     json.RawMessage `json:"filters"`
	Fields      json.RawMessage `json:"fields"`
	Description string          `json:"description"`
	Public      bool            `json:"public"`
	CreatedAt   string          `json:"created_at"`
	UpdatedAt   string          `json:"updated_at"`
}

func ToResponse(r SavedReport) ReportResponse {
	return ReportResponse{
		ID:          r.ID,
		Name:        r.Name,
		UserID:      r.UserID,
		OwnerName:   r.OwnerName,
		Filters:     r.Filters,
		Fields:      r.Fields,
		Description: r.Description,
		Public:      r.Public,
		CreatedAt:   r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   r.UpdatedAt.Format(time.RFC3339),
	}
}

type ListReportResponse struct {
	pagination.Page
	Reports []ReportResponse `json:"reports"`
}
