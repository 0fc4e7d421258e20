package company

import "context"

type CompanyRepository interface {
	Create(ctx context.Context, company Company) (Company, error)
	GetByID(ctx context.Context, id string) (Company, error)
	List(ctx context.Context, filter CompanyFilter) ([]Company, int64, error)
	Update(ctx context.Context, company Company) error
	Delete(ctx context.Context, id string) error
}

type ManagerRepository interface {
	Create(ctx context.Context, manager Manager) (Manager, error)
	GetByID(ctx context.Context, id string) (Manager, error)
	List(ctx context.Context, filter ManagerFilter) ([]Manager, int64, error)
	Update(ctx context.Context, manager Manager) error
	Delete(ctx context.Context, id string) error
}
