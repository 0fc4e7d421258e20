package employee

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terceiro-labs/provision-backend/internal/pkg/validator"
)

func validRequest() EmployeeRequest {
	return EmployeeRequest{
		UserID:       "7f1c2a8e-1111-4c3b-9a5e-0d2f6b1e1a01",
		CompanyID:    "7f1c2a8e-2222-4c3b-9a5e-0d2f6b1e1a02",
		PositionID:   "7f1c2a8e-3333-4c3b-9a5e-0d2f6b1e1a03",
		Registration: " 000123 ",
		HireDate:     "2023-05-02",
	}
}

func TestEmployeeRequestValidate(t *testing.T) {
	req := validRequest()
	require.NoError(t, req.Validate())

	e := req.Employee()
	assert.Equal(t, "000123", e.Registration)
	assert.Equal(t, time.Date(2023, 5, 2, 0, 0, 0, 0, time.UTC), e.HireDate)
	assert.True(t, e.Employed(time.Now()))
}

func TestEmployeeRequestTerminationBeforeHire(t *testing.T) {
	req := validRequest()
	term := "2023-01-01"
	req.TerminationDate = &term

	var errs validator.ValidationErrors
	require.ErrorAs(t, req.Validate(), &errs)
	assert.Equal(t, ErrTerminationBeforeHire.Error(), errs.ToMap()["termination_date"])
}

func TestEmployeeRequestBadDate(t *testing.T) {
	req := validRequest()
	req.HireDate = "02/05/2023"

	var errs validator.ValidationErrors
	require.ErrorAs(t, req.Validate(), &errs)
	assert.Equal(t, "hire_date must be in YYYY-MM-DD format", errs.ToMap()["hire_date"])
}

func TestEmployed(t *testing.T) {
	term := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	e := Employee{TerminationDate: &term}
	assert.True(t, e.Employed(term.AddDate(0, 0, -1)))
	assert.False(t, e.Employed(term))
}
