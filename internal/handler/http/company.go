package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/terceiro-labs/provision-backend/internal/domain/company"
	"github.com/terceiro-labs/provision-backend/internal/domain/employee"
	"github.com/terceiro-labs/provision-backend/internal/handler/http/response"
)

type CompanyHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	ListEmployees(w http.ResponseWriter, r *http.Request)

	CreateManager(w http.ResponseWriter, r *http.Request)
	GetManager(w http.ResponseWriter, r *http.Request)
	ListManagers(w http.ResponseWriter, r *http.Request)
	UpdateManager(w http.ResponseWriter, r *http.Request)
	DeleteManager(w http.ResponseWriter, r *http.Request)
}

type companyHandlerImpl struct {
	companyService  company.CompanyService
	employeeService employee.EmployeeService
}

func NewCompanyHandler(companyService company.CompanyService, employeeService employee.EmployeeService) CompanyHandler {
	return &companyHandlerImpl{
		companyService:  companyService,
		employeeService: employeeService,
	}
}

// Create handles POST /companies
func (h *companyHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req company.CompanyRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.companyService.CreateCompany(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Company created successfully", result)
}

// GetByID handles GET /companies/{id}
func (h *companyHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	result, err := h.companyService.GetCompany(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List handles GET /companies
func (h *companyHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := company.CompanyFilter{
		Search: queryString(r, "search"),
		CityID: queryString(r, "city_id"),
		Active: queryBool(r, "active"),
	}
	filter.Page, filter.Limit = pageParams(r)

	results, err := h.companyService.ListCompanies(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// Update handles PUT /companies/{id}
func (h *companyHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req company.CompanyRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.companyService.UpdateCompany(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Company updated successfully", result)
}

// Delete handles DELETE /companies/{id}
func (h *companyHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.companyService.DeleteCompany(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Company deleted successfully", nil)
}

// ListEmployees handles GET /companies/{id}/employees
func (h *companyHandlerImpl) ListEmployees(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, "id")
	if _, err := h.companyService.GetCompany(r.Context(), companyID); err != nil {
		response.HandleError(w, err)
		return
	}

	filter := employee.EmployeeFilter{
		CompanyID: &companyID,
		Active:    queryBool(r, "active"),
		Search:    queryString(r, "search"),
	}
	filter.Page, filter.Limit = pageParams(r)

	results, err := h.employeeService.ListEmployees(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// CreateManager handles POST /managers
func (h *companyHandlerImpl) CreateManager(w http.ResponseWriter, r *http.Request) {
	var req company.ManagerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.companyService.CreateManager(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Manager created successfully", result)
}

// GetManager handles GET /managers/{id}
func (h *companyHandlerImpl) GetManager(w http.ResponseWriter, r *http.Request) {
	result, err := h.companyService.GetManager(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListManagers handles GET /managers
func (h *companyHandlerImpl) ListManagers(w http.ResponseWriter, r *http.Request) {
	filter := company.ManagerFilter{
		CompanyID: queryString(r, "company_id"),
		Search:    queryString(r, "search"),
		Active:    queryBool(r, "active"),
	}
	filter.Page, filter.Limit = pageParams(r)

	results, err := h.companyService.ListManagers(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// UpdateManager handles PUT /managers/{id}
func (h *companyHandlerImpl) UpdateManager(w http.ResponseWriter, r *http.Request) {
	var req company.ManagerRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.companyService.UpdateManager(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Manager updated successfully", result)
}

// DeleteManager handles DELETE /managers/{id}
func (h *companyHandlerImpl) DeleteManager(w http.ResponseWriter, r *http.Request) {
	if err := h.companyService.DeleteManager(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Manager deleted successfully", nil)
}
