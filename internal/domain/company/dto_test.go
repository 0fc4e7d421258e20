package company

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terceiro-labs/provision-backend/internal/pkg/validator"
)

func TestCompanyRequestValidate(t *testing.T) {
	req := CompanyRequest{
		LegalName: "Limpeza Brasil LTDA",
		CNPJ:      "12.345.678/0001-90",
		Phone:     "(11) 3333-4444",
		Email:     "Contato@LimpezaBrasil.com.br",
		Address:   "Rua A, 100",
		CityID:    "7f1c2a8e-4444-4c3b-9a5e-0d2f6b1e1a04",
	}
	require.NoError(t, req.Validate())

	c := req.Company()
	assert.Equal(t, "contato@limpezabrasil.com.br", c.Email)
	assert.Equal(t, "Limpeza Brasil LTDA", c.DisplayName())
	assert.True(t, c.Active)

	req.CNPJ = "12345678000190"
	req.Email = "not-an-email"
	var errs validator.ValidationErrors
	require.ErrorAs(t, req.Validate(), &errs)
	assert.Equal(t, "cnpj must be in XX.XXX.XXX/XXXX-XX format", errs.ToMap()["cnpj"])
	assert.Equal(t, "email must be a valid email address", errs.ToMap()["email"])
}

func TestManagerRequestValidate(t *testing.T) {
	req := ManagerRequest{UserID: "bad", CompanyID: "7f1c2a8e-4444-4c3b-9a5e-0d2f6b1e1a04"}
	var errs validator.ValidationErrors
	require.ErrorAs(t, req.Validate(), &errs)
	assert.Equal(t, "user_id must be a valid UUID", errs.ToMap()["user_id"])
	assert.Equal(t, "job_title is required", errs.ToMap()["job_title"])
}
