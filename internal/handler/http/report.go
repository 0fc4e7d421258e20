package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/terceiro-labs/provision-backend/internal/domain/report"
	"github.com/terceiro-labs/provision-backend/internal/handler/http/response"
)

type ReportHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{reportService: reportService}
}

// Create handles POST /reports
func (h *reportHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req report.ReportRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.reportService.CreateReport(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Report saved successfully", result)
}

// Get handles GET /reports/{id}
func (h *reportHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.GetReport(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List handles GET /reports; owners see their own and public reports.
func (h *reportHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := report.ReportFilter{Search: queryString(r, "search")}
	filter.Page, filter.Limit = pageParams(r)

	results, err := h.reportService.ListReports(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// Update handles PUT /reports/{id}
func (h *reportHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req report.ReportRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.reportService.UpdateReport(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Report updated successfully", result)
}

// Delete handles DELETE /reports/{id}
func (h *reportHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.reportService.DeleteReport(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Report deleted successfully", nil)
}
