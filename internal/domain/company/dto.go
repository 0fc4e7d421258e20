package company

import (
	"strings"
	"time"

	"github.com/terceiro-labs/provision-backend/internal/pkg/pagination"
	"github.com/terceiro-labs/provision-backend/internal/pkg/validator"
)

// ========================================
// COMPANY
// ========================================

type CompanyRequest struct {
	ID                    string  `json:"-"`
	LegalName             string  `json:"legal_name" validate:"required,max=200"`
	TradeName             string  `json:"trade_name" validate:"max=200"`
	CNPJ                  string  `json:"cnpj" validate:"required,cnpj"`
	StateRegistration     *string `json:"state_registration" validate:"omitempty,max=20"`
	MunicipalRegistration *string `json:"municipal_registration" validate:"omitempty,max=20"`
	Phone                 string  `json:"phone" validate:"required,max=20"`
	Email                 string  `json:"email" validate:"required,email"`
	Website               *string `json:"website" validate:"omitempty,url"`
	Address               string  `json:"address" validate:"required"`
	CityID                string  `json:"city_id" validate:"required,uuid"`
	Active                *bool   `json:"active"`
}

func (r *CompanyRequest) Validate() error {
	return validator.Struct(r)
}

func (r *CompanyRequest) Company() Company {
	c := Company{
		ID:                    r.ID,
		LegalName:             strings.TrimSpace(r.LegalName),
		TradeName:             strings.TrimSpace(r.TradeName),
		CNPJ:                  r.CNPJ,
		StateRegistration:     r.StateRegistration,
		MunicipalRegistration: r.MunicipalRegistration,
		Phone:                 r.Phone,
		Email:                 strings.ToLower(r.Email),
		Website:               r.Website,
		Address:               r.Address,
		CityID:                r.CityID,
		Active:                true,
	}
	if r.Active != nil {
		c.Active = *r.Active
	}
	return c
}

type CompanyFilter struct {
	Search *string `json:"search,omitempty"` // legal name, trade name or CNPJ
	CityID *string `json:"city_id,omitempty"`
	Active *bool   `json:"active,omitempty"`
	Page   int     `json:"page"`
	Limit  int     `json:"limit"`
}

func (f *CompanyFilter) Validate() error {
	var errs validator.ValidationErrors
	f.Page, f.Limit = pagination.Normalize(f.Page, f.Limit, &errs)
	if f.CityID != nil && !validator.IsValidUUID(*f.CityID) {
		errs.Add("city_id", "city_id must be a valid UUID")
	}
	return errs.OrNil()
}

type CompanyResponse struct {
	ID                    string  `json:"id"`
	LegalName             string  `json:"legal_name"`
	TradeName             string  `json:"trade_name"`
	CNPJ                  string  `json:"cnpj"`
	StateRegistration     *string `json:"state_registration,omitempty"`
	MunicipalRegistration *string `json:"municipal_registration,omitempty"`
	Phone                 string  `json:"phone"`
	Email                 string  `json:"email"`
	Website               *string `json:"website,omitempty"`
	Address               string  `json:"address"`
	CityID                string  `json:"city_id"`
	CityName              string  `json:"city_name"`
	StateCode             string  `json:"state_code"`
	Active                bool    `json:"active"`
	CreatedAt             string  `json:"created_at"`
	UpdatedAt             string  `json:"updated_at"`
}

func ToCompanyResponse(c Company) CompanyResponse {
	return CompanyResponse{
		ID:                    c.ID,
		LegalName:             c.LegalName,
		TradeName:             c.DisplayName(),
		CNPJ:                  c.CNPJ,
		StateRegistration:     c.StateRegistration,
		MunicipalRegistration: c.MunicipalRegistration,
		Phone:                 c.Phone,
		Email:                 c.Email,
		Website:               c.Website,
		Address:               c.Address,
		CityID:                c.CityID,
		CityName:              c.CityName,
		StateCode:             c.StateCode,
		Active:                c.Active,
		CreatedAt:             c.CreatedAt.Format(time.RFC3339),
		UpdatedAt:             c.UpdatedAt.Format(time.RFC3339),
	}
}

type ListCompanyResponse struct {
	pagination.Page
	Companies []CompanyResponse `json:"companies"`
}

// ========================================
// MANAGER
// ========================================

type ManagerRequest struct {
	ID             string  `json:"-"`
	UserID         string  `json:"user_id" validate:"required,uuid"`
	CompanyID      string  `json:"company_id" validate:"required,uuid"`
	JobTitle       string  `json:"job_title" validate:"required,max=100"`
	Department     *string `json:"department" validate:"omitempty,max=100"`
	CorporateEmail *string `json:"corporate_email" validate:"omitempty,email"`
	CorporatePhone *string `json:"corporate_phone" validate:"omitempty,max=20"`
	Active         *bool   `json:"active"`
}

func (r *ManagerRequest) Validate() error {
	return validator.Struct(r)
}

func (r *ManagerRequest) Manager() Manager {
	m := Manager{
		ID:             r.ID,
		UserID:         r.UserID,
		CompanyID:      r.CompanyID,
		JobTitle:       strings.TrimSpace(r.JobTitle),
		Department:     r.Department,
		CorporateEmail: r.CorporateEmail,
		CorporatePhone: r.CorporatePhone,
		Active:         true,
	}
	if r.Active != nil {
		m.Active = *r.Active
	}
	return m
}

type ManagerFilter struct {
	CompanyID *string `json:"company_id,omitempty"`
	Search    *string `json:"search,omitempty"`
	Active    *bool   `json:"active,omitempty"`
	Page      int     `json:"page"`
	Limit     int     `json:"limit"`
}

func (f *ManagerFilter) Validate() error {
	var errs validator.ValidationErrors
	f.Page, f.Limit = pagination.Normalize(f.Page, f.Limit, &errs)
	if f.CompanyID != nil && !validator.IsValidUUID(*f.CompanyID) {
		errs.Add("company_id", "company_id must be a valid UUID")
	}
	return errs.OrNil()
}

type ManagerResponse struct {
	ID             string  `json:"id"`
	UserID         string  `json:"user_id"`
	Username       string  `json:"username"`
	FullName       string  `json:"full_name"`
	CompanyID      string  `json:"company_id"`
	CompanyName    string  `json:"company_name"`
	JobTitle       string  `json:"job_title"`
	Department     *string `json:"department,omitempty"`
	CorporateEmail *string `json:"corporate_email,omitempty"`
	CorporatePhone *string `json:"corporate_phone,omitempty"`
	Active         bool    `json:"active"`
	CreatedAt      string  `json:"created_at"`
}

func ToManagerResponse(m Manager) ManagerResponse {
	return ManagerResponse{
		ID:             m.ID,
		UserID:         m.UserID,
		Username:       m.Username,
		FullName:       m.FullName,
		CompanyID:      m.CompanyID,
		CompanyName:    m.CompanyName,
		JobTitle:       m.JobTitle,
		Department:     m.Department,
		CorporateEmail: m.CorporateEmail,
		CorporatePhone: m.CorporatePhone,
		Active:         m.Active,
		CreatedAt:      m.CreatedAt.Format(time.RFC3339),
	}
}

type ListManagerResponse struct {
	pagination.Page
	Managers []ManagerResponse `json:"managers"`
}
