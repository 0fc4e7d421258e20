package http

import (
	"net/http"

	"github.com/terceiro-labs/provision-backend/internal/domain/dashboard"
	"github.com/terceiro-labs/provision-backend/internal/handler/http/response"
)

type DashboardHandler interface {
	// GetGeneral returns headline employee, provision and financial numbers
	GetGeneral(w http.ResponseWriter, r *http.Request)
	// GetCharts returns chart series for the last ?period days
	GetCharts(w http.ResponseWriter, r *http.Request)
	// GetFinancial returns approved-only totals
	GetFinancial(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &dashboardHandlerImpl{dashboardService: dashboardService}
}

func dashboardFilterOf(r *http.Request) dashboard.DashboardFilter {
	return dashboard.DashboardFilter{
		CompanyID: queryString(r, "company_id"),
		StartDate: queryString(r, "start_date"),
		EndDate:   queryString(r, "end_date"),
	}
}

// GetGeneral handles GET /dashboard
func (h *dashboardHandlerImpl) GetGeneral(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboardService.GetGeneral(r.Context(), dashboardFilterOf(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetCharts handles GET /dashboard/charts
func (h *dashboardHandlerImpl) GetCharts(w http.ResponseWriter, r *http.Request) {
	filter := dashboard.ChartsFilter{
		CompanyID: queryString(r, "company_id"),
		Period:    queryInt(r, "period", 30),
	}

	result, err := h.dashboardService.GetCharts(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetFinancial handles GET /dashboard/financial
func (h *dashboardHandlerImpl) GetFinancial(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboardService.GetFinancial(r.Context(), dashboardFilterOf(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
