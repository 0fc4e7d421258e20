package employee

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/terceiro-labs/provision-backend/internal/domain/employee"
	"github.com/terceiro-labs/provision-backend/internal/pkg/pagination"
	"github.com/terceiro-labs/provision-backend/internal/service/file"
)

type EmployeeServiceImpl struct {
	employee.EmployeeRepository
	fileService file.FileService
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository, fileService file.FileService) employee.EmployeeService {
	return &EmployeeServiceImpl{
		EmployeeRepository: employeeRepo,
		fileService:        fileService,
	}
}

// CreateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.EmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	created, err := s.EmployeeRepository.Create(ctx, req.Employee())
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	slog.Info("Employee registered", "employee_id", created.ID, "user_id", created.UserID, "company_id", created.CompanyID)
	return s.GetEmployee(ctx, created.ID)
}

// GetEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	e, err := s.EmployeeRepository.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return s.render(e), nil
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, filter employee.EmployeeFilter) (employee.ListEmployeeResponse, error) {
	if err := filter.Validate(); err != nil {
		return employee.ListEmployeeResponse{}, err
	}

	employees, total, err := s.EmployeeRepository.List(ctx, filter)
	if err != nil {
		return employee.ListEmployeeResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		responses = append(responses, s.render(e))
	}
	return employee.ListEmployeeResponse{
		Page:      pagination.New(total, filter.Page, filter.Limit),
		Employees: responses,
	}, nil
}

// UpdateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, req employee.EmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	if err := s.EmployeeRepository.Update(ctx, req.Employee()); err != nil {
		return employee.EmployeeResponse{}, err
	}
	return s.GetEmployee(ctx, req.ID)
}

// DeleteEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) DeleteEmployee(ctx context.Context, id string) error {
	return s.EmployeeRepository.Delete(ctx, id)
}

// GetSummary implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetSummary(ctx context.Context, filter employee.EmployeeFilter) (employee.SummaryResponse, error) {
	if err := filter.Validate(); err != nil {
		return employee.SummaryResponse{}, err
	}

	summary, err := s.EmployeeRepository.Summary(ctx, filter)
	if err != nil {
		return employee.SummaryResponse{}, fmt.Errorf("failed to summarize employees: %w", err)
	}
	return employee.ToSummaryResponse(summary), nil
}

func (s *EmployeeServiceImpl) render(e employee.Employee) employee.EmployeeResponse {
	resp := employee.ToResponse(e)
	resp.PhotoURL = file.ResolveURL(s.fileService, e.PhotoURL)
	return resp
}
