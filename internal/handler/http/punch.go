package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/terceiro-labs/provision-backend/internal/domain/punch"
	"github.com/terceiro-labs/provision-backend/internal/handler/http/response"
)

type PunchHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Summary(w http.ResponseWriter, r *http.Request)
}

type punchHandlerImpl struct {
	punchService punch.PunchService
}

func NewPunchHandler(punchService punch.PunchService) PunchHandler {
	return &punchHandlerImpl{punchService: punchService}
}

func punchFilterOf(r *http.Request) punch.PunchFilter {
	filter := punch.PunchFilter{
		EmployeeID: queryString(r, "employee_id"),
		CompanyID:  queryString(r, "company_id"),
		StartDate:  queryString(r, "start_date"),
		EndDate:    queryString(r, "end_date"),
	}
	filter.Page, filter.Limit = pageParams(r)
	return filter
}

// formFloat parses an optional multipart coordinate.
func formFloat(r *http.Request, key string) (*float64, bool) {
	raw := r.FormValue(key)
	if raw == "" {
		return nil, true
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, false
	}
	return &value, true
}

// Create handles POST /punches (multipart: photo, latitude, longitude)
func (h *punchHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxPhotoUpload); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}

	req := punch.CreatePunchRequest{IPAddress: clientIP(r)}

	var ok bool
	if req.Latitude, ok = formFloat(r, "latitude"); !ok {
		response.BadRequest(w, "latitude must be a number", map[string]string{"latitude": "must be a number"})
		return
	}
	if req.Longitude, ok = formFloat(r, "longitude"); !ok {
		response.BadRequest(w, "longitude must be a number", map[string]string{"longitude": "must be a number"})
		return
	}

	file, fileHeader, err := r.FormFile("photo")
	if err == nil {
		defer file.Close()
		req.File = file
		req.FileHeader = fileHeader
	}

	result, err := h.punchService.CreatePunch(r.Context(), req)
	if err != nil {
		slog.Error("CreatePunch service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Punch registered successfully", result)
}

// Get handles GET /punches/{id}
func (h *punchHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.punchService.GetPunch(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List handles GET /punches
func (h *punchHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	results, err := h.punchService.ListPunches(r.Context(), punchFilterOf(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// Summary handles GET /punches/summary
func (h *punchHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	result, err := h.punchService.GetSummary(r.Context(), punchFilterOf(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
