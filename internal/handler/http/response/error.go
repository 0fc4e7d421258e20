package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/terceiro-labs/provision-backend/internal/domain/auth"
	"github.com/terceiro-labs/provision-backend/internal/domain/company"
	"github.com/terceiro-labs/provision-backend/internal/domain/employee"
	"github.com/terceiro-labs/provision-backend/internal/domain/master/location"
	"github.com/terceiro-labs/provision-backend/internal/domain/master/position"
	"github.com/terceiro-labs/provision-backend/internal/domain/provision"
	"github.com/terceiro-labs/provision-backend/internal/domain/punch"
	"github.com/terceiro-labs/provision-backend/internal/domain/report"
	"github.com/terceiro-labs/provision-backend/internal/domain/user"
	"github.com/terceiro-labs/provision-backend/internal/pkg/jwt"
	"github.com/terceiro-labs/provision-backend/internal/pkg/storage"
	"github.com/terceiro-labs/provision-backend/internal/pkg/validator"
	"github.com/terceiro-labs/provision-backend/internal/service/file"
)

var notFound = []error{
	user.ErrUserNotFound,
	company.ErrCompanyNotFound,
	company.ErrManagerNotFound,
	employee.ErrEmployeeNotFound,
	location.ErrStateNotFound,
	location.ErrCityNotFound,
	location.ErrLocationNotFound,
	position.ErrPositionNotFound,
	provision.ErrProvisionNotFound,
	provision.ErrPhotoNotFound,
	punch.ErrPunchNotFound,
	report.ErrReportNotFound,
	storage.ErrFileNotFound,
}

var conflicts = []error{
	user.ErrUsernameExists,
	user.ErrCPFExists,
	user.ErrUserInUse,
	company.ErrCNPJExists,
	company.ErrCompanyInUse,
	company.ErrManagerExists,
	company.ErrManagerInUse,
	employee.ErrRegistrationExists,
	employee.ErrUserAlreadyEmployee,
	employee.ErrEmployeeInUse,
	location.ErrStateCodeExists,
	location.ErrStateInUse,
	location.ErrCityExists,
	location.ErrCityInUse,
	location.ErrLocationInUse,
	position.ErrPositionNameExists,
	position.ErrPositionInUse,
	provision.ErrDuplicateRecord,
	provision.ErrStatusUnchanged,
	report.ErrReportNameTaken,
}

// Dangling references and cross-field rules checked by the database.
var unprocessable = []error{
	company.ErrInvalidCity,
	company.ErrInvalidManagerRef,
	employee.ErrInvalidReference,
	employee.ErrTerminationBeforeHire,
	location.ErrInvalidState,
	location.ErrInvalidCity,
	provision.ErrInvalidReference,
	provision.ErrInvalidStatus,
	punch.ErrInvalidEmployee,
}

var forbidden = []error{
	user.ErrAdminPrivilegeRequired,
	user.ErrManagerAccessRequired,
	user.ErrEmployeeAccessRequired,
	user.ErrInsufficientPermissions,
	user.ErrCannotToggleSelf,
	user.ErrUserInactive,
	provision.ErrNotOwnRecord,
	punch.ErrNotEmployee,
	report.ErrReportForbidden,
}

func matchAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	var timeOrder *provision.TimeOrderError
	if errors.As(err, &timeOrder) {
		Unprocessable(w, "INVALID_TIME_ORDER", timeOrder.Reason)
		return
	}

	switch {
	// Authentication
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, jwt.ErrMissingClaims):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, user.ErrWrongPassword):
		BadRequest(w, err.Error(), nil)

	// Uploads
	case errors.Is(err, file.ErrUnsupportedImage):
		BadRequest(w, err.Error(), map[string]string{"photo": err.Error()})
	case errors.Is(err, storage.ErrInvalidPath):
		BadRequest(w, "Invalid file path", nil)

	case matchAny(err, notFound):
		NotFound(w, err.Error())
	case matchAny(err, conflicts):
		Conflict(w, err.Error())
	case matchAny(err, unprocessable):
		Unprocessable(w, "UNPROCESSABLE_ENTITY", err.Error())
	case matchAny(err, forbidden):
		Forbidden(w, err.Error())

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
