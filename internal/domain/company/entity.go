package company

import "time"

// Company is an outsourced workforce provider.
type Company struct {
	ID                    string
	LegalName             string
	TradeName             string
	CNPJ                  string
	StateRegistration     *string
	MunicipalRegistration *string
	Phone                 string
	Email                 string
	Website               *string
	Address               string
	CityID                string
	Active                bool
	CreatedAt             time.Time
	UpdatedAt             time.Time

	// Join
	CityName  string
	StateCode string
}

func (c Company) DisplayName() string {
	if c.TradeName != "" {
		return c.TradeName
	}
	return c.LegalName
}

// Manager supervises employees of a company and validates their provisions.
type Manager struct {
	ID             string
	UserID         string
	CompanyID      string
	JobTitle       string
	Department     *string
	CorporateEmail *string
	CorporatePhone *string
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Join
	FullName    string
	Username    string
	CompanyName string
}
