package company

import "context"

type CompanyService interface {
	CreateCompany(ctx context.Context, req CompanyRequest) (CompanyResponse, error)
	GetCompany(ctx context.Context, id string) (CompanyResponse, error)
	ListCompanies(ctx context.Context, filter CompanyFilter) (ListCompanyResponse, error)
	UpdateCompany(ctx context.Context, req CompanyRequest) (CompanyResponse, error)
	DeleteCompany(ctx context.Context, id string) error

	CreateManager(ctx context.Context, req ManagerRequest) (ManagerResponse, error)
	GetManager(ctx context.Context, id string) (ManagerResponse, error)
	ListManagers(ctx context.Context, filter ManagerFilter) (ListManagerResponse, error)
	UpdateManager(ctx context.Context, req ManagerRequest) (ManagerResponse, error)
	DeleteManager(ctx context.Context, id string) error
}
