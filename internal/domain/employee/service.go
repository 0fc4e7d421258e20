package employee

import "context"

type EmployeeService interface {
	CreateEmployee(ctx context.Context, req EmployeeRequest) (EmployeeResponse, error)
	GetEmployee(ctx context.Context, id string) (EmployeeResponse, error)
	ListEmployees(ctx context.Context, filter EmployeeFilter) (ListEmployeeResponse, error)
	UpdateEmployee(ctx context.Context, req EmployeeRequest) (EmployeeResponse, error)
	DeleteEmployee(ctx context.Context, id string) error
	GetSummary(ctx context.Context, filter EmployeeFilter) (SummaryResponse, error)
}
