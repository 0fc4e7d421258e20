package employee

import (
	"strings"
	"time"

	"github.com/terceiro-labs/provision-backend/internal/pkg/pagination"
	"github.com/terceiro-labs/provision-backend/internal/pkg/validator"
)

type EmployeeRequest struct {
	ID              string  `json:"-"`
	UserID          string  `json:"user_id" validate:"required,uuid"`
	CompanyID       string  `json:"company_id" validate:"required,uuid"`
	PositionID      string  `json:"position_id" validate:"required,uuid"`
	Registration    string  `json:"registration" validate:"required,max=20"`
	PixKey          *string `json:"pix_key" validate:"omitempty,max=100"`
	Bank            *string `json:"bank" validate:"omitempty,max=100"`
	BankBranch      *string `json:"bank_branch" validate:"omitempty,max=10"`
	BankAccount     *string `json:"bank_account" validate:"omitempty,max=20"`
	HireDate        string  `json:"hire_date" validate:"required,date"`
	TerminationDate *string `json:"termination_date" validate:"omitempty,date"`
	Active          *bool   `json:"active"`
}

func (r *EmployeeRequest) Validate() error {
	if err := validator.Struct(r); err != nil {
		return err
	}

	if r.TerminationDate != nil {
		hire, _ := validator.IsValidDate(r.HireDate)
		term, _ := validator.IsValidDate(*r.TerminationDate)
		if term.Before(hire) {
			return validator.ValidationErrors{{Field: "termination_date", Message: ErrTerminationBeforeHire.Error()}}
		}
	}
	return nil
}

// Employee builds the entity. Call only after Validate succeeded.
func (r *EmployeeRequest) Employee() Employee {
	hire, _ := validator.IsValidDate(r.HireDate)
	e := Employee{
		ID:           r.ID,
		UserID:       r.UserID,
		CompanyID:    r.CompanyID,
		PositionID:   r.PositionID,
		Registration: strings.TrimSpace(r.Registration),
		PixKey:       r.PixKey,
		Bank:         r.Bank,
		BankBranch:   r.BankBranch,
		BankAccount:  r.BankAccount,
		HireDate:     hire,
		Active:       true,
	}
	if r.TerminationDate != nil {
		term, _ := validator.IsValidDate(*r.TerminationDate)
		e.TerminationDate = &term
	}
	if r.Active != nil {
		e.Active = *r.Active
	}
	return e
}

type EmployeeFilter struct {
	CompanyID  *string `json:"company_id,omitempty"`
	PositionID *string `json:"position_id,omitempty"`
	Active     *bool   `json:"active,omitempty"`
	Search     *string `json:"search,omitempty"` // name, registration or CPF

	Page  int `json:"page"`
	Limit int `json:"limit"`

	SortBy    string `json:"sort_by"` // name, registration, hire_date
	SortOrder string `json:"sort_order"`
}

func (f *EmployeeFilter) Validate() error {
	var errs validator.ValidationErrors

	f.Page, f.Limit = pagination.Normalize(f.Page, f.Limit, &errs)

	if f.CompanyID != nil && !validator.IsValidUUID(*f.CompanyID) {
		errs.Add("company_id", "company_id must be a valid UUID")
	}
	if f.PositionID != nil && !validator.IsValidUUID(*f.PositionID) {
		errs.Add("position_id", "position_id must be a valid UUID")
	}
	if f.SortBy != "" && !validator.IsInSlice(f.SortBy, []string{"name", "registration", "hire_date"}) {
		errs.Add("sort_by", "sort_by must be one of: name, registration, hire_date")
	}
	if f.SortOrder != "" && !validator.IsInSlice(strings.ToLower(f.SortOrder), []string{"asc", "desc"}) {
		errs.Add("sort_order", "sort_order must be one of: asc, desc")
	}

	return errs.OrNil()
}

type EmployeeResponse struct {
	ID              string  `json:"id"`
	UserID          string  `json:"user_id"`
	Username        string  `json:"username"`
	FullName        string  `json:"full_name"`
	Email           string  `json:"email"`
	CPF             *string `json:"cpf,omitempty"`
	Phone           *string `json:"phone,omitempty"`
	PhotoURL        *string `json:"photo_url,omitempty"`
	CompanyID       string  `json:"company_id"`
	CompanyName     string  `json:"company_name"`
	PositionID      string  `json:"position_id"`
	PositionName    string  `json:"position_name"`
	Registration    string  `json:"registration"`
	PixKey          *string `json:"pix_key,omitempty"`
	Bank            *string `json:"bank,omitempty"`
	BankBranch      *string `json:"bank_branch,omitempty"`
	BankAccount     *string `json:"bank_account,omitempty"`
	HireDate        string  `json:"hire_date"`
	TerminationDate *string `json:"termination_date,omitempty"`
	Active          bool    `json:"active"`
	CreatedAt       string  `json:"created_at"`
}

func ToResponse(e Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:           e.ID,
		UserID:       e.UserID,
		Username:     e.Username,
		FullName:     e.FullName,
		Email:        e.Email,
		CPF:          e.CPF,
		Phone:        e.Phone,
		PhotoURL:     e.PhotoURL,
		CompanyID:    e.CompanyID,
		CompanyName:  e.CompanyName,
		PositionID:   e.PositionID,
		PositionName: e.PositionName,
		Registration: e.Registration,
		PixKey:       e.PixKey,
		Bank:         e.Bank,
		BankBranch:   e.BankBranch,
		BankAccount:  e.BankAccount,
		HireDate:     e.HireDate.Format("2006-01-02"),
		Active:       e.Active,
		CreatedAt:    e.CreatedAt.Format(time.RFC3339),
	}
	if e.TerminationDate != nil {
		s := e.TerminationDate.Format("2006-01-02")
		resp.TerminationDate = &s
	}
	return resp
}

type ListEmployeeResponse struct {
	pagination.Page
	Employees []EmployeeResponse `json:"employees"`
}

type SummaryResponse struct {
	Total      int64                `json:"total"`
	Active     int64                `json:"active"`
	Inactive   int64                `json:"inactive"`
	ByCompany  []GroupCountResponse `json:"by_company"`
	ByPosition []GroupCountResponse `json:"by_position"`
}

type GroupCountResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

func ToSummaryResponse(s Summary) SummaryResponse {
	return SummaryResponse{
		Total:      s.Total,
		Active:     s.Active,
		Inactive:   s.Inactive,
		ByCompany:  groupCounts(s.ByCompany),
		ByPosition: groupCounts(s.ByPosition),
	}
}

func groupCounts(in []GroupCount) []GroupCountResponse {
	out := make([]GroupCountResponse, 0, len(in))
	for _, g := range in {
		out = append(out, GroupCountResponse{ID: g.ID, Name: g.Name, Count: g.Count})
	}
	return out
}
