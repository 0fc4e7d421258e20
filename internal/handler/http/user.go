package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/terceiro-labs/provision-backend/internal/domain/user"
	"github.com/terceiro-labs/provision-backend/internal/handler/http/response"
)

const maxPhotoUpload = 10 << 20 // 10MB

type UserHandler interface {
	GetMe(w http.ResponseWriter, r *http.Request)
	UpdateMe(w http.ResponseWriter, r *http.Request)
	ChangePassword(w http.ResponseWriter, r *http.Request)
	UploadPhoto(w http.ResponseWriter, r *http.Request)

	ListUsers(w http.ResponseWriter, r *http.Request)
	ToggleActive(w http.ResponseWriter, r *http.Request)
	ToggleStaff(w http.ResponseWriter, r *http.Request)
}

type userHandlerImpl struct {
	userService user.UserService
}

func NewUserHandler(userService user.UserService) UserHandler {
	return &userHandlerImpl{userService: userService}
}

// GetMe handles GET /auth/me
func (h *userHandlerImpl) GetMe(w http.ResponseWriter, r *http.Request) {
	result, err := h.userService.GetMe(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpdateMe handles PUT /auth/me
func (h *userHandlerImpl) UpdateMe(w http.ResponseWriter, r *http.Request) {
	var req user.UpdateMeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.userService.UpdateMe(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Profile updated successfully", result)
}

// ChangePassword handles POST /auth/change-password
func (h *userHandlerImpl) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req user.ChangePasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.userService.ChangePassword(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Password changed successfully", nil)
}

// UploadPhoto handles POST /auth/me/photo
func (h *userHandlerImpl) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxPhotoUpload); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}

	file, _, err := r.FormFile("photo")
	if err != nil {
		if err == http.ErrMissingFile {
			response.BadRequest(w, "Photo file is required", nil)
			return
		}
		response.BadRequest(w, "Invalid file upload", nil)
		return
	}
	defer file.Close()

	result, err := h.userService.UploadPhoto(r.Context(), file)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Photo uploaded successfully", result)
}

// ListUsers handles GET /users
func (h *userHandlerImpl) ListUsers(w http.ResponseWriter, r *http.Request) {
	filter := user.UserFilter{
		Search:   queryString(r, "search"),
		IsActive: queryBool(r, "is_active"),
		IsStaff:  queryBool(r, "is_staff"),
	}
	filter.Page, filter.Limit = pageParams(r)

	results, err := h.userService.ListUsers(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// ToggleActive handles POST /users/{id}/toggle-active
func (h *userHandlerImpl) ToggleActive(w http.ResponseWriter, r *http.Request) {
	result, err := h.userService.ToggleActive(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "User active flag updated", result)
}

// ToggleStaff handles POST /users/{id}/toggle-staff
func (h *userHandlerImpl) ToggleStaff(w http.ResponseWriter, r *http.Request) {
	result, err := h.userService.ToggleStaff(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "User staff flag updated", result)
}
