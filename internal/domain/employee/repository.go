package employee

import "context"

type EmployeeRepository interface {
	Create(ctx context.Context, employee Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByUserID(ctx context.Context, userID string) (Employee, error)
	List(ctx context.Context, filter EmployeeFilter) ([]Employee, int64, error)
	Update(ctx context.Context, employee Employee) error
	Delete(ctx context.Context, id string) error

	// Summary counts employees matching filter, ignoring pagination.
	Summary(ctx context.Context, filter EmployeeFilter) (Summary, error)
}
