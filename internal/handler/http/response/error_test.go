package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terceiro-labs/provision-backend/internal/domain/auth"
	"github.com/terceiro-labs/provision-backend/internal/domain/master/location"
	"github.com/terceiro-labs/provision-backend/internal/domain/provision"
	"github.com/terceiro-labs/provision-backend/internal/domain/user"
	"github.com/terceiro-labs/provision-backend/internal/pkg/validator"
)

func decode(t *testing.T, w *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp
}

func TestHandleError_StatusCodes(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", provision.ErrProvisionNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"wrapped not found", fmt.Errorf("failed to get: %w", location.ErrLocationNotFound), http.StatusNotFound, "NOT_FOUND"},
		{"duplicate record", provision.ErrDuplicateRecord, http.StatusConflict, "CONFLICT"},
		{"location in use", location.ErrLocationInUse, http.StatusConflict, "CONFLICT"},
		{"dangling reference", provision.ErrInvalidReference, http.StatusUnprocessableEntity, "UNPROCESSABLE_ENTITY"},
		{"bad credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"not own record", provision.ErrNotOwnRecord, http.StatusForbidden, "FORBIDDEN"},
		{"admin required", user.ErrAdminPrivilegeRequired, http.StatusForbidden, "FORBIDDEN"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			HandleError(w, tt.err)

			assert.Equal(t, tt.status, w.Code)
			resp := decode(t, w)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
		})
	}
}

func TestHandleError_TimeOrderCarriesReason(t *testing.T) {
	w := httptest.NewRecorder()
	err := fmt.Errorf("create: %w", &provision.TimeOrderError{Reason: provision.ReasonLunchReturnBeforeLeave})

	HandleError(w, err)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	resp := decode(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_TIME_ORDER", resp.Error.Code)
	assert.Equal(t, provision.ReasonLunchReturnBeforeLeave, resp.Error.Message)
}

func TestHandleError_ValidationDetails(t *testing.T) {
	var errs validator.ValidationErrors
	errs.Add("date", "date is required")
	errs.Add("date", "ignored second message")
	errs.Add("value", "value must be at least 0.01")

	w := httptest.NewRecorder()
	HandleError(w, errs)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	resp := decode(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	assert.Equal(t, map[string]string{
		"date":  "date is required",
		"value": "value must be at least 0.01",
	}, resp.Error.Details)
}

func TestSuccessWithMeta(t *testing.T) {
	w := httptest.NewRecorder()
	SuccessWithMeta(w, []string{"a", "b"}, &Meta{TotalItems: 2})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	resp := decode(t, w)
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Meta)
	assert.EqualValues(t, 2, resp.Meta.TotalItems)
}
