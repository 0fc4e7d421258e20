package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/terceiro-labs/provision-backend/internal/domain/master/location"
	"github.com/terceiro-labs/provision-backend/internal/domain/master/position"
	"github.com/terceiro-labs/provision-backend/internal/handler/http/response"
	"github.com/terceiro-labs/provision-backend/internal/service/master"
)

type MasterHandler interface {
	// State handlers
	CreateState(w http.ResponseWriter, r *http.Request)
	GetState(w http.ResponseWriter, r *http.Request)
	ListStates(w http.ResponseWriter, r *http.Request)
	UpdateState(w http.ResponseWriter, r *http.Request)
	DeleteState(w http.ResponseWriter, r *http.Request)

	// City handlers
	CreateCity(w http.ResponseWriter, r *http.Request)
	GetCity(w http.ResponseWriter, r *http.Request)
	ListCities(w http.ResponseWriter, r *http.Request)
	UpdateCity(w http.ResponseWriter, r *http.Request)
	DeleteCity(w http.ResponseWriter, r *http.Request)

	// Service location handlers
	CreateLocation(w http.ResponseWriter, r *http.Request)
	GetLocation(w http.ResponseWriter, r *http.Request)
	ListLocations(w http.ResponseWriter, r *http.Request)
	UpdateLocation(w http.ResponseWriter, r *http.Request)
	DeleteLocation(w http.ResponseWriter, r *http.Request)

	// Position handlers
	CreatePosition(w http.ResponseWriter, r *http.Request)
	GetPosition(w http.ResponseWriter, r *http.Request)
	ListPositions(w http.ResponseWriter, r *http.Request)
	UpdatePosition(w http.ResponseWriter, r *http.Request)
	DeletePosition(w http.ResponseWriter, r *http.Request)
}

type masterHandlerImpl struct {
	masterService master.MasterService
}

func NewMasterHandler(masterService master.MasterService) MasterHandler {
	return &masterHandlerImpl{
		masterService: masterService,
	}
}

// ==================== STATE HANDLERS ====================

func (h *masterHandlerImpl) CreateState(w http.ResponseWriter, r *http.Request) {
	var req location.StateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.masterService.CreateState(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "State created successfully", result)
}

func (h *masterHandlerImpl) GetState(w http.ResponseWriter, r *http.Request) {
	result, err := h.masterService.GetState(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *masterHandlerImpl) ListStates(w http.ResponseWriter, r *http.Request) {
	filter := location.StateFilter{
		Search: queryString(r, "search"),
		Active: queryBool(r, "active"),
	}

	results, err := h.masterService.ListStates(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, results, &response.Meta{TotalItems: int64(len(results))})
}

func (h *masterHandlerImpl) UpdateState(w http.ResponseWriter, r *http.Request) {
	var req location.StateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.masterService.UpdateState(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "State updated successfully", result)
}

func (h *masterHandlerImpl) DeleteState(w http.ResponseWriter, r *http.Request) {
	if err := h.masterService.DeleteState(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "State deleted successfully", nil)
}

// ==================== CITY HANDLERS ====================

func (h *masterHandlerImpl) CreateCity(w http.ResponseWriter, r *http.Request) {
	var req location.CityRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.masterService.CreateCity(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "City created successfully", result)
}

func (h *masterHandlerImpl) GetCity(w http.ResponseWriter, r *http.Request) {
	result, err := h.masterService.GetCity(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *masterHandlerImpl) ListCities(w http.ResponseWriter, r *http.Request) {
	filter := location.CityFilter{
		StateID: queryString(r, "state_id"),
		Search:  queryString(r, "search"),
		Active:  queryBool(r, "active"),
	}
	filter.Page, filter.Limit = pageParams(r)

	results, err := h.masterService.ListCities(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

func (h *masterHandlerImpl) UpdateCity(w http.ResponseWriter, r *http.Request) {
	var req location.CityRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.masterService.UpdateCity(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "City updated successfully", result)
}

func (h *masterHandlerImpl) DeleteCity(w http.ResponseWriter, r *http.Request) {
	if err := h.masterService.DeleteCity(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "City deleted successfully", nil)
}

// ==================== SERVICE LOCATION HANDLERS ====================

func (h *masterHandlerImpl) CreateLocation(w http.ResponseWriter, r *http.Request) {
	var req location.LocationRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.masterService.CreateLocation(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Service location created successfully", result)
}

func (h *masterHandlerImpl) GetLocation(w http.ResponseWriter, r *http.Request) {
	result, err := h.masterService.GetLocation(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *masterHandlerImpl) ListLocations(w http.ResponseWriter, r *http.Request) {
	filter := location.LocationFilter{
		CityID: queryString(r, "city_id"),
		Search: queryString(r, "search"),
		Active: queryBool(r, "active"),
	}
	filter.Page, filter.Limit = pageParams(r)

	results, err := h.masterService.ListLocations(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

func (h *masterHandlerImpl) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	var req location.LocationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.masterService.UpdateLocation(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Service location updated successfully", result)
}

func (h *masterHandlerImpl) DeleteLocation(w http.ResponseWriter, r *http.Request) {
	if err := h.masterService.DeleteLocation(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Service location deleted successfully", nil)
}

// ==================== POSITION HANDLERS ====================

func (h *masterHandlerImpl) CreatePosition(w http.ResponseWriter, r *http.Request) {
	var req position.PositionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.masterService.CreatePosition(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Position created successfully", result)
}

func (h *masterHandlerImpl) GetPosition(w http.ResponseWriter, r *http.Request) {
	result, err := h.masterService.GetPosition(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *masterHandlerImpl) ListPositions(w http.ResponseWriter, r *http.Request) {
	filter := position.PositionFilter{
		Level:  queryString(r, "level"),
		Active: queryBool(r, "active"),
		Search: queryString(r, "search"),
	}

	results, err := h.masterService.ListPositions(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, results, &response.Meta{TotalItems: int64(len(results))})
}

func (h *masterHandlerImpl) UpdatePosition(w http.ResponseWriter, r *http.Request) {
	var req position.PositionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.masterService.UpdatePosition(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Position updated successfully", result)
}

func (h *masterHandlerImpl) DeletePosition(w http.ResponseWriter, r *http.Request) {
	if err := h.masterService.DeletePosition(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Position deleted successfully", nil)
}
