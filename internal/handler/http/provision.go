package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/terceiro-labs/provision-backend/internal/domain/provision"
	"github.com/terceiro-labs/provision-backend/internal/handler/http/response"
)

type ProvisionHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Transition(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)
	Summary(w http.ResponseWriter, r *http.Request)
	Photo(w http.ResponseWriter, r *http.Request)
}

type provisionHandlerImpl struct {
	provisionService provision.ProvisionService
}

func NewProvisionHandler(provisionService provision.ProvisionService) ProvisionHandler {
	return &provisionHandlerImpl{provisionService: provisionService}
}

func provisionFilterOf(r *http.Request) provision.ProvisionFilter {
	filter := provision.ProvisionFilter{
		EmployeeID: queryString(r, "employee_id"),
		CompanyID:  queryString(r, "company_id"),
		LocationID: queryString(r, "location_id"),
		ManagerID:  queryString(r, "manager_id"),
		Status:     queryString(r, "status"),
		StartDate:  queryString(r, "start_date"),
		EndDate:    queryString(r, "end_date"),
		SortBy:     r.URL.Query().Get("sort_by"),
		SortOrder:  r.URL.Query().Get("sort_order"),
	}
	filter.Page, filter.Limit = pageParams(r)
	return filter
}

// Create handles POST /provisions. Multipart requests carry the record as JSON
// in the "data" field and an optional "photo" file.
func (h *provisionHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req provision.CreateProvisionRequest

	if isMultipart(r) {
		if err := r.ParseMultipartForm(maxPhotoUpload); err != nil {
			slog.Error("Failed to parse multipart form", "error", err)
			response.BadRequest(w, "Failed to parse form data", nil)
			return
		}

		dataJSON := r.FormValue("data")
		if dataJSON == "" {
			response.BadRequest(w, "Field 'data' is required", nil)
			return
		}
		if err := json.Unmarshal([]byte(dataJSON), &req); err != nil {
			slog.Error("Failed to unmarshal JSON data", "error", err)
			response.BadRequest(w, "Invalid request format", nil)
			return
		}

		file, fileHeader, err := r.FormFile("photo")
		if err == nil {
			defer file.Close()
			req.File = file
			req.FileHeader = fileHeader
		}
	} else if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.provisionService.CreateProvision(r.Context(), req)
	if err != nil {
		slog.Error("CreateProvision service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Service provision recorded successfully", result)
}

// Get handles GET /provisions/{id}
func (h *provisionHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.provisionService.GetProvision(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List handles GET /provisions
func (h *provisionHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	results, err := h.provisionService.ListProvisions(r.Context(), provisionFilterOf(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// Update handles PUT /provisions/{id}
func (h *provisionHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req provision.UpdateProvisionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.provisionService.UpdateProvision(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Service provision updated successfully", result)
}

// Transition handles POST /provisions/{id}/transition
func (h *provisionHandlerImpl) Transition(w http.ResponseWriter, r *http.Request) {
	var req provision.TransitionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.provisionService.Transition(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Status changed to "+string(result.History.NewStatus), result)
}

// History handles GET /provisions/{id}/history
func (h *provisionHandlerImpl) History(w http.ResponseWriter, r *http.Request) {
	results, err := h.provisionService.GetHistory(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, results, &response.Meta{TotalItems: int64(len(results))})
}

// Summary handles GET /provisions/summary
func (h *provisionHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	result, err := h.provisionService.GetSummary(r.Context(), provisionFilterOf(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Photo handles GET /provisions/{id}/photo
func (h *provisionHandlerImpl) Photo(w http.ResponseWriter, r *http.Request) {
	rc, contentType, err := h.provisionService.OpenProofPhoto(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "private, max-age=3600")
	if _, err := io.Copy(w, rc); err != nil {
		slog.Error("Failed to stream proof photo", "error", err)
	}
}
