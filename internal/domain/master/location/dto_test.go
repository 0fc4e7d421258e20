package location

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terceiro-labs/provision-backend/internal/pkg/validator"
)

func TestStateRequestValidate(t *testing.T) {
	req := StateRequest{Name: "São Paulo", Code: " sp "}
	require.NoError(t, req.Validate())
	assert.Equal(t, "SP", req.State().Code)
	assert.True(t, req.State().Active)

	bad := StateRequest{Name: "", Code: "SPX"}
	var errs validator.ValidationErrors
	require.ErrorAs(t, bad.Validate(), &errs)
	assert.Equal(t, "name is required", errs.ToMap()["name"])
	assert.Contains(t, errs.ToMap(), "code")
}

func TestLocationRequestValidate(t *testing.T) {
	lat, lon := -23.55052, -46.633308
	cep := "01001-000"
	req := LocationRequest{
		Name:      "Sede Centro",
		CityID:    "7f1c2a8e-4444-4c3b-9a5e-0d2f6b1e1a04",
		Address:   "Praça da Sé, 1",
		CEP:       &cep,
		Latitude:  &lat,
		Longitude: &lon,
	}
	require.NoError(t, req.Validate())
	assert.True(t, req.Location().HasCoordinates())

	badCEP := "01001000"
	req.CEP = &badCEP
	req.Longitude = nil
	var errs validator.ValidationErrors
	require.ErrorAs(t, req.Validate(), &errs)
	assert.Equal(t, "cep must be in XXXXX-XXX format", errs.ToMap()["cep"])
	assert.Contains(t, errs.ToMap(), "longitude")
}

func TestCityFilterValidate(t *testing.T) {
	bad := "nope"
	f := CityFilter{StateID: &bad}
	var errs validator.ValidationErrors
	require.ErrorAs(t, f.Validate(), &errs)
	assert.Contains(t, errs.ToMap(), "state_id")

	ok := CityFilter{}
	require.NoError(t, ok.Validate())
	assert.Equal(t, 1, ok.Page)
}
