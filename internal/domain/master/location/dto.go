package location

import (
	"strings"
	"time"

	"github.com/terceiro-labs/provision-backend/internal/pkg/pagination"
	"github.com/terceiro-labs/provision-backend/internal/pkg/validator"
)

// ========================================
// STATE
// ========================================

type StateRequest struct {
	ID     string `json:"-"`
	Name   string `json:"name" validate:"required,max=100"`
	Code   string `json:"code" validate:"required,uf"`
	Active *bool  `json:"active"`
}

func (r *StateRequest) Validate() error {
	r.Code = strings.ToUpper(strings.TrimSpace(r.Code))
	return validator.Struct(r)
}

func (r *StateRequest) State() State {
	s := State{ID: r.ID, Name: strings.TrimSpace(r.Name), Code: r.Code, Active: true}
	if r.Active != nil {
		s.Active = *r.Active
	}
	return s
}

type StateFilter struct {
	Search *string
	Active *bool
}

type StateResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Code   string `json:"code"`
	Active bool   `json:"active"`
}

func ToStateResponse(s State) StateResponse {
	return StateResponse{ID: s.ID, Name: s.Name, Code: s.Code, Active: s.Active}
}

// ========================================
// CITY
// ========================================

type CityRequest struct {
	ID       string  `json:"-"`
	Name     string  `json:"name" validate:"required,max=100"`
	StateID  string  `json:"state_id" validate:"required,uuid"`
	IBGECode *string `json:"ibge_code" validate:"omitempty,numeric,len=7"`
	Active   *bool   `json:"active"`
}

func (r *CityRequest) Validate() error {
	return validator.Struct(r)
}

func (r *CityRequest) City() City {
	c := City{ID: r.ID, Name: strings.TrimSpace(r.Name), StateID: r.StateID, IBGECode: r.IBGECode, Active: true}
	if r.Active != nil {
		c.Active = *r.Active
	}
	return c
}

type CityFilter struct {
	StateID *string `json:"state_id,omitempty"`
	Search  *string `json:"search,omitempty"`
	Active  *bool   `json:"active,omitempty"`
	Page    int     `json:"page"`
	Limit   int     `json:"limit"`
}

func (f *CityFilter) Validate() error {
	var errs validator.ValidationErrors
	f.Page, f.Limit = pagination.Normalize(f.Page, f.Limit, &errs)
	if f.StateID != nil && !validator.IsValidUUID(*f.StateID) {
		errs.Add("state_id", "state_id must be a valid UUID")
	}
	return errs.OrNil()
}

type CityResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	StateID   string  `json:"state_id"`
	StateName string  `json:"state_name"`
	StateCode string  `json:"state_code"`
	IBGECode  *string `json:"ibge_code,omitempty"`
	Active    bool    `json:"active"`
}

func ToCityResponse(c City) CityResponse {
	return CityResponse{
		ID:        c.ID,
		Name:      c.Name,
		StateID:   c.StateID,
		StateName: c.StateName,
		StateCode: c.StateCode,
		IBGECode:  c.IBGECode,
		Active:    c.Active,
	}
}

type ListCityResponse struct {
	pagination.Page
	Cities []CityResponse `json:"cities"`
}

// ========================================
// SERVICE LOCATION
// ========================================

type LocationRequest struct {
	ID        string   `json:"-"`
	Name      string   `json:"name" validate:"required,max=200"`
	CityID    string   `json:"city_id" validate:"required,uuid"`
	Address   string   `json:"address" validate:"required"`
	CEP       *string  `json:"cep" validate:"omitempty,cep"`
	Latitude  *float64 `json:"latitude" validate:"required_with=Longitude,omitempty,latitude"`
	Longitude *float64 `json:"longitude" validate:"required_with=Latitude,omitempty,longitude"`
	Notes     string   `json:"notes"`
	Active    *bool    `json:"active"`
}

func (r *LocationRequest) Validate() error {
	return validator.Struct(r)
}

func (r *LocationRequest) Location() Location {
	l := Location{
		ID:        r.ID,
		Name:      strings.TrimSpace(r.Name),
		CityID:    r.CityID,
		Address:   strings.TrimSpace(r.Address),
		CEP:       r.CEP,
		Latitude:  r.Latitude,
		Longitude: r.Longitude,
		Notes:     r.Notes,
		Active:    true,
	}
	if r.Active != nil {
		l.Active = *r.Active
	}
	return l
}

type LocationFilter struct {
	CityID *string `json:"city_id,omitempty"`
	Search *string `json:"search,omitempty"`
	Active *bool   `json:"active,omitempty"`
	Page   int     `json:"page"`
	Limit  int     `json:"limit"`
}

func (f *LocationFilter) Validate() error {
	var errs validator.ValidationErrors
	f.Page, f.Limit = pagination.Normalize(f.Page, f.Limit, &errs)
	if f.CityID != nil && !validator.IsValidUUID(*f.CityID) {
		errs.Add("city_id", "city_id must be a valid UUID")
	}
	return errs.OrNil()
}

type LocationResponse struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	CityID    string   `json:"city_id"`
	CityName  string   `json:"city_name"`
	StateCode string   `json:"state_code"`
	Address   string   `json:"address"`
	CEP       *string  `json:"cep,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Notes     string   `json:"notes"`
	Active    bool     `json:"active"`
	CreatedAt string   `json:"created_at"`
}

func ToLocationResponse(l Location) LocationResponse {
	return LocationResponse{
		ID:        l.ID,
		Name:      l.Name,
		CityID:    l.CityID,
		CityName:  l.CityName,
		StateCode: l.StateCode,
		Address:   l.Address,
		CEP:       l.CEP,
		Latitude:  l.Latitude,
		Longitude: l.Longitude,
		Notes:     l.Notes,
		Active:    l.Active,
		CreatedAt: l.CreatedAt.Format(time.RFC3339),
	}
}

type ListLocationResponse struct {
	pagination.Page
	Locations []LocationResponse `json:"locations"`
}
