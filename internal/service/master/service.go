package master

import (
	"context"
	"fmt"

	"github.com/terceiro-labs/provision-backend/internal/domain/master/location"
	"github.com/terceiro-labs/provision-backend/internal/domain/master/position"
	"github.com/terceiro-labs/provision-backend/internal/pkg/pagination"
)

type MasterService interface {
	// State operations
	CreateState(ctx context.Context, req location.StateRequest) (location.StateResponse, error)
	GetState(ctx context.Context, id string) (location.StateResponse, error)
	ListStates(ctx context.Context, filter location.StateFilter) ([]location.StateResponse, error)
	UpdateState(ctx context.Context, req location.StateRequest) (location.StateResponse, error)
	DeleteState(ctx context.Context, id string) error

	// City operations
	CreateCity(ctx context.Context, req location.CityRequest) (location.CityResponse, error)
	GetCity(ctx context.Context, id string) (location.CityResponse, error)
	ListCities(ctx context.Context, filter location.CityFilter) (location.ListCityResponse, error)
	UpdateCity(ctx context.Context, req location.CityRequest) (location.CityResponse, error)
	DeleteCity(ctx context.Context, id string) error

	// Service location operations
	CreateLocation(ctx context.Context, req location.LocationRequest) (location.LocationResponse, error)
	GetLocation(ctx context.Context, id string) (location.LocationResponse, error)
	ListLocations(ctx context.Context, filter location.LocationFilter) (location.ListLocationResponse, error)
	UpdateLocation(ctx context.Context, req location.LocationRequest) (location.LocationResponse, error)
	DeleteLocation(ctx context.Context, id string) error

	// Position operations
	CreatePosition(ctx context.Context, req position.PositionRequest) (position.PositionResponse, error)
	GetPosition(ctx context.Context, id string) (position.PositionResponse, error)
	ListPositions(ctx context.Context, filter position.PositionFilter) ([]position.PositionResponse, error)
	UpdatePosition(ctx context.Context, req position.PositionRequest) (position.PositionResponse, error)
	DeletePosition(ctx context.Context, id string) error
}

type masterServiceImpl struct {
	stateRepo    location.StateRepository
	cityRepo     location.CityRepository
	locationRepo location.LocationRepository
	positionRepo position.PositionRepository
}

func NewMasterService(
	stateRepo location.StateRepository,
	cityRepo location.CityRepository,
	locationRepo location.LocationRepository,
	positionRepo position.PositionRepository,
) MasterService {
	return &masterServiceImpl{
		stateRepo:    stateRepo,
		cityRepo:     cityRepo,
		locationRepo: locationRepo,
		positionRepo: positionRepo,
	}
}

// ==================== STATE OPERATIONS ====================

func (s *masterServiceImpl) CreateState(ctx context.Context, req location.StateRequest) (location.StateResponse, error) {
	if err := req.Validate(); err != nil {
		return location.StateResponse{}, err
	}

	created, err := s.stateRepo.Create(ctx, req.State())
	if err != nil {
		return location.StateResponse{}, err
	}
	return location.ToStateResponse(created), nil
}

func (s *masterServiceImpl) GetState(ctx context.Context, id string) (location.StateResponse, error) {
	state, err := s.stateRepo.GetByID(ctx, id)
	if err != nil {
		return location.StateResponse{}, err
	}
	return location.ToStateResponse(state), nil
}

func (s *masterServiceImpl) ListStates(ctx context.Context, filter location.StateFilter) ([]location.StateResponse, error) {
	states, err := s.stateRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list states: %w", err)
	}

	responses := make([]location.StateResponse, 0, len(states))
	for _, st := range states {
		responses = append(responses, location.ToStateResponse(st))
	}
	return responses, nil
}

func (s *masterServiceImpl) UpdateState(ctx context.Context, req location.StateRequest) (location.StateResponse, error) {
	if err := req.Validate(); err != nil {
		return location.StateResponse{}, err
	}

	if err := s.stateRepo.Update(ctx, req.State()); err != nil {
		return location.StateResponse{}, err
	}
	return s.GetState(ctx, req.ID)
}

func (s *masterServiceImpl) DeleteState(ctx context.Context, id string) error {
	return s.stateRepo.Delete(ctx, id)
}

// ==================== CITY OPERATIONS ====================

func (s *masterServiceImpl) CreateCity(ctx context.Context, req location.CityRequest) (location.CityResponse, error) {
	if err := req.Validate(); err != nil {
		return location.CityResponse{}, err
	}

	created, err := s.cityRepo.Create(ctx, req.City())
	if err != nil {
		return location.CityResponse{}, err
	}
	// Reload for the state join
	return s.GetCity(ctx, created.ID)
}

func (s *masterServiceImpl) GetCity(ctx context.Context, id string) (location.CityResponse, error) {
	city, err := s.cityRepo.GetByID(ctx, id)
	if err != nil {
		return location.CityResponse{}, err
	}
	return location.ToCityResponse(city), nil
}

func (s *masterServiceImpl) ListCities(ctx context.Context, filter location.CityFilter) (location.ListCityResponse, error) {
	if err := filter.Validate(); err != nil {
		return location.ListCityResponse{}, err
	}

	cities, total, err := s.cityRepo.List(ctx, filter)
	if err != nil {
		return location.ListCityResponse{}, fmt.Errorf("failed to list cities: %w", err)
	}

	responses := make([]location.CityResponse, 0, len(cities))
	for _, c := range cities {
		responses = append(responses, location.ToCityResponse(c))
	}
	return location.ListCityResponse{
		Page:   pagination.New(total, filter.Page, filter.Limit),
		Cities: responses,
	}, nil
}

func (s *masterServiceImpl) UpdateCity(ctx context.Context, req location.CityRequest) (location.CityResponse, error) {
	if err := req.Validate(); err != nil {
		return location.CityResponse{}, err
	}

	if err := s.cityRepo.Update(ctx, req.City()); err != nil {
		return location.CityResponse{}, err
	}
	return s.GetCity(ctx, req.ID)
}

func (s *masterServiceImpl) DeleteCity(ctx context.Context, id string) error {
	return s.cityRepo.Delete(ctx, id)
}

// ==================== LOCATION OPERATIONS ====================

func (s *masterServiceImpl) CreateLocation(ctx context.Context, req location.LocationRequest) (location.LocationResponse, error) {
	if err := req.Validate(); err != nil {
		return location.LocationResponse{}, err
	}

	created, err := s.locationRepo.Create(ctx, req.Location())
	if err != nil {
		return location.LocationResponse{}, err
	}
	return s.GetLocation(ctx, created.ID)
}

func (s *masterServiceImpl) GetLocation(ctx context.Context, id string) (location.LocationResponse, error) {
	loc, err := s.locationRepo.GetByID(ctx, id)
	if err != nil {
		return location.LocationResponse{}, err
	}
	return location.ToLocationResponse(loc), nil
}

func (s *masterServiceImpl) ListLocations(ctx context.Context, filter location.LocationFilter) (location.ListLocationResponse, error) {
	if err := filter.Validate(); err != nil {
		return location.ListLocationResponse{}, err
	}

	locations, total, err := s.locationRepo.List(ctx, filter)
	if err != nil {
		return location.ListLocationResponse{}, fmt.Errorf("failed to list locations: %w", err)
	}

	responses := make([]location.LocationResponse, 0, len(locations))
	for _, l := range locations {
		responses = append(responses, location.ToLocationResponse(l))
	}
	return location.ListLocationResponse{
		Page:      pagination.New(total, filter.Page, filter.Limit),
		Locations: responses,
	}, nil
}

func (s *masterServiceImpl) UpdateLocation(ctx context.Context, req location.LocationRequest) (location.LocationResponse, error) {
	if err := req.Validate(); err != nil {
		return location.LocationResponse{}, err
	}

	if err := s.locationRepo.Update(ctx, req.Location()); err != nil {
		return location.LocationResponse{}, err
	}
	return s.GetLocation(ctx, req.ID)
}

func (s *masterServiceImpl) DeleteLocation(ctx context.Context, id string) error {
	return s.locationRepo.Delete(ctx, id)
}

// ==================== POSITION OPERATIONS ====================

func (s *masterServiceImpl) CreatePosition(ctx context.Context, req position.PositionRequest) (position.PositionResponse, error) {
	if err := req.Validate(); err != nil {
		return position.PositionResponse{}, err
	}

	created, err := s.positionRepo.Create(ctx, req.Position())
	if err != nil {
		return position.PositionResponse{}, err
	}
	return position.ToResponse(created), nil
}

func (s *masterServiceImpl) GetPosition(ctx context.Context, id string) (position.PositionResponse, error) {
	pos, err := s.positionRepo.GetByID(ctx, id)
	if err != nil {
		return position.PositionResponse{}, err
	}
	return position.ToResponse(pos), nil
}

func (s *masterServiceImpl) ListPositions(ctx context.Context, filter position.PositionFilter) ([]position.PositionResponse, error) {
	positions, err := s.positionRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list positions: %w", err)
	}

	responses := make([]position.PositionResponse, 0, len(positions))
	for _, p := range positions {
		responses = append(responses, position.ToResponse(p))
	}
	return responses, nil
}

func (s *masterServiceImpl) UpdatePosition(ctx context.Context, req position.PositionRequest) (position.PositionResponse, error) {
	if err := req.Validate(); err != nil {
		return position.PositionResponse{}, err
	}

	if err := s.positionRepo.Update(ctx, req.Position()); err != nil {
		return position.PositionResponse{}, err
	}
	return s.GetPosition(ctx, req.ID)
}

func (s *masterServiceImpl) DeletePosition(ctx context.Context, id string) error {
	return s.positionRepo.Delete(ctx, id)
}
