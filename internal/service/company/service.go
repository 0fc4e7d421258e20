package company

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/terceiro-labs/provision-backend/internal/domain/company"
	"github.com/terceiro-labs/provision-backend/internal/pkg/pagination"
)

type CompanyServiceImpl struct {
	company.CompanyRepository
	managerRepo company.ManagerRepository
}

func NewCompanyService(companyRepo company.CompanyRepository, managerRepo company.ManagerRepository) company.CompanyService {
	return &CompanyServiceImpl{
		CompanyRepository: companyRepo,
		managerRepo:       managerRepo,
	}
}

// ==================== COMPANY OPERATIONS ====================

// CreateCompany implements company.CompanyService.
func (s *CompanyServiceImpl) CreateCompany(ctx context.Context, req company.CompanyRequest) (company.CompanyResponse, error) {
	if err := req.Validate(); err != nil {
		return company.CompanyResponse{}, err
	}

	created, err := s.CompanyRepository.Create(ctx, req.Company())
	if err != nil {
		return company.CompanyResponse{}, err
	}

	slog.Info("Company registered", "company_id", created.ID, "cnpj", created.CNPJ)
	return s.GetCompany(ctx, created.ID)
}

// GetCompany implements company.CompanyService.
func (s *CompanyServiceImpl) GetCompany(ctx context.Context, id string) (company.CompanyResponse, error) {
	c, err := s.CompanyRepository.GetByID(ctx, id)
	if err != nil {
		return company.CompanyResponse{}, err
	}
	return company.ToCompanyResponse(c), nil
}

// ListCompanies implements company.CompanyService.
func (s *CompanyServiceImpl) ListCompanies(ctx context.Context, filter company.CompanyFilter) (company.ListCompanyResponse, error) {
	if err := filter.Validate(); err != nil {
		return company.ListCompanyResponse{}, err
	}

	companies, total, err := s.CompanyRepository.List(ctx, filter)
	if err != nil {
		return company.ListCompanyResponse{}, fmt.Errorf("failed to list companies: %w", err)
	}

	responses := make([]company.CompanyResponse, 0, len(companies))
	for _, c := range companies {
		responses = append(responses, company.ToCompanyResponse(c))
	}
	return company.ListCompanyResponse{
		Page:      pagination.New(total, filter.Page, filter.Limit),
		Companies: responses,
	}, nil
}

// UpdateCompany implements company.CompanyService.
func (s *CompanyServiceImpl) UpdateCompany(ctx context.Context, req company.CompanyRequest) (company.CompanyResponse, error) {
	if err := req.Validate(); err != nil {
		return company.CompanyResponse{}, err
	}

	if err := s.CompanyRepository.Update(ctx, req.Company()); err != nil {
		return company.CompanyResponse{}, err
	}
	return s.GetCompany(ctx, req.ID)
}

// DeleteCompany implements company.CompanyService.
func (s *CompanyServiceImpl) DeleteCompany(ctx context.Context, id string) error {
	return s.CompanyRepository.Delete(ctx, id)
}

// ==================== MANAGER OPERATIONS ====================

func (s *CompanyServiceImpl) CreateManager(ctx context.Context, req company.ManagerRequest) (company.ManagerResponse, error) {
	if err := req.Validate(); err != nil {
		return company.ManagerResponse{}, err
	}

	created, err := s.managerRepo.Create(ctx, req.Manager())
	if err != nil {
		return company.ManagerResponse{}, err
	}

	slog.Info("Manager profile created", "manager_id", created.ID, "user_id", created.UserID, "company_id", created.CompanyID)
	return s.GetManager(ctx, created.ID)
}

func (s *CompanyServiceImpl) GetManager(ctx context.Context, id string) (company.ManagerResponse, error) {
	m, err := s.managerRepo.GetByID(ctx, id)
	if err != nil {
		return company.ManagerResponse{}, err
	}
	return company.ToManagerResponse(m), nil
}

func (s *CompanyServiceImpl) ListManagers(ctx context.Context, filter company.ManagerFilter) (company.ListManagerResponse, error) {
	if err := filter.Validate(); err != nil {
		return company.ListManagerResponse{}, err
	}

	managers, total, err := s.managerRepo.List(ctx, filter)
	if err != nil {
		return company.ListManagerResponse{}, fmt.Errorf("failed to list managers: %w", err)
	}

	responses := make([]company.ManagerResponse, 0, len(managers))
	for _, m := range managers {
		responses = append(responses, company.ToManagerResponse(m))
	}
	return company.ListManagerResponse{
		Page:     pagination.New(total, filter.Page, filter.Limit),
		Managers: responses,
	}, nil
}

func (s *CompanyServiceImpl) UpdateManager(ctx context.Context, req company.ManagerRequest) (company.ManagerResponse, error) {
	if err := req.Validate(); err != nil {
		return company.ManagerResponse{}, err
	}

	if err := s.managerRepo.Update(ctx, req.Manager()); err != nil {
		return company.ManagerResponse{}, err
	}
	return s.GetManager(ctx, req.ID)
}

func (s *CompanyServiceImpl) DeleteManager(ctx context.Context, id string) error {
	return s.managerRepo.Delete(ctx, id)
}
