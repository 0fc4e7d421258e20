package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/terceiro-labs/provision-backend/internal/domain/employee"
	"github.com/terceiro-labs/provision-backend/internal/handler/http/response"
)

type EmployeeHandler interface {
	GetEmployee(w http.ResponseWriter, r *http.Request)
	CreateEmployee(w http.ResponseWriter, r *http.Request)
	UpdateEmployee(w http.ResponseWriter, r *http.Request)
	DeleteEmployee(w http.ResponseWriter, r *http.Request)
	ListEmployees(w http.ResponseWriter, r *http.Request)
	GetSummary(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	employeeService employee.EmployeeService
}

func NewEmployeeHandler(employeeService employee.EmployeeService) EmployeeHandler {
	return &employeeHandlerImpl{
		employeeService: employeeService,
	}
}

func employeeFilterOf(r *http.Request) employee.EmployeeFilter {
	filter := employee.EmployeeFilter{
		CompanyID:  queryString(r, "company_id"),
		PositionID: queryString(r, "position_id"),
		Active:     queryBool(r, "active"),
		Search:     queryString(r, "search"),
		SortBy:     r.URL.Query().Get("sort_by"),
		SortOrder:  r.URL.Query().Get("sort_order"),
	}
	filter.Page, filter.Limit = pageParams(r)
	return filter
}

// GetEmployee implements EmployeeHandler
func (h *employeeHandlerImpl) GetEmployee(w http.ResponseWriter, r *http.Request) {
	result, err := h.employeeService.GetEmployee(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// CreateEmployee implements EmployeeHandler
func (h *employeeHandlerImpl) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req employee.EmployeeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.employeeService.CreateEmployee(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Employee created successfully", result)
}

// UpdateEmployee implements EmployeeHandler
func (h *employeeHandlerImpl) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	var req employee.EmployeeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.employeeService.UpdateEmployee(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee updated successfully", result)
}

// DeleteEmployee implements EmployeeHandler
func (h *employeeHandlerImpl) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	if err := h.employeeService.DeleteEmployee(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee deleted successfully", nil)
}

// ListEmployees implements EmployeeHandler
func (h *employeeHandlerImpl) ListEmployees(w http.ResponseWriter, r *http.Request) {
	results, err := h.employeeService.ListEmployees(r.Context(), employeeFilterOf(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// GetSummary handles GET /reports/employees/summary
func (h *employeeHandlerImpl) GetSummary(w http.ResponseWriter, r *http.Request) {
	result, err := h.employeeService.GetSummary(r.Context(), employeeFilterOf(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
