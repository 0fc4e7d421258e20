package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/terceiro-labs/provision-backend/internal/domain/company"
	"github.com/terceiro-labs/provision-backend/internal/pkg/database"
)

type companyRepositoryImpl struct {
	db *database.DB
}

func NewCompanyRepository(db *database.DB) company.CompanyRepository {
	return &companyRepositoryImpl{db: db}
}

const companySelect = `
	SELECT co.id, co.legal_name, COALESCE(co.trade_name, ''), co.cnpj, co.state_registration,
		co.municipal_registration, COALESCE(co.phone, ''), COALESCE(co.email, ''), co.website,
		co.address, COALESCE(co.city_id::text, ''), co.active, co.created_at, co.updated_at,
		COALESCE(ci.name, ''), COALESCE(s.code, '')
	FROM companies co
	LEFT JOIN cities ci ON ci.id = co.city_id
	LEFT JOIN states s ON s.id = ci.state_id
`

func scanCompany(row pgx.Row, c *company.Company) error {
	return row.Scan(
		&c.ID, &c.LegalName, &c.TradeName, &c.CNPJ, &c.StateRegistration,
		&c.MunicipalRegistration, &c.Phone, &c.Email, &c.Website,
		&c.Address, &c.CityID, &c.Active, &c.CreatedAt, &c.UpdatedAt,
		&c.CityName, &c.StateCode,
	)
}

func mapCompanyError(err error, msg string) error {
	switch {
	case isUniqueViolation(err):
		return company.ErrCNPJExists
	case isForeignKeyViolation(err):
		return company.ErrInvalidCity
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Create implements company.CompanyRepository.
func (r *companyRepositoryImpl) Create(ctx context.Context, c company.Company) (company.Company, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO companies (
			legal_name, trade_name, cnpj, state_registration, municipal_registration,
			phone, email, website, address, city_id, active, created_at, updated_at
		) VALUES (
			$1, NULLIF($2, ''), $3, $4, $5,
			NULLIF($6, ''), NULLIF($7, ''), $8, $9, NULLIF($10, '')::uuid, $11, NOW(), NOW()
		)
		RETURNING id
	`

	var id string
	err := q.QueryRow(ctx, query,
		c.LegalName, c.TradeName, c.CNPJ, c.StateRegistration, c.MunicipalRegistration,
		c.Phone, c.Email, c.Website, c.Address, c.CityID, c.Active,
	).Scan(&id)
	if err != nil {
		return company.Company{}, mapCompanyError(err, "failed to create company")
	}

	return r.GetByID(ctx, id)
}

// GetByID implements company.CompanyRepository.
func (r *companyRepositoryImpl) GetByID(ctx context.Context, id string) (company.Company, error) {
	q := GetQuerier(ctx, r.db)

	var found company.Company
	if err := scanCompany(q.QueryRow(ctx, companySelect+` WHERE co.id = $1`, id), &found); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.Company{}, company.ErrCompanyNotFound
		}
		return company.Company{}, fmt.Errorf("failed to get company: %w", err)
	}

	return found, nil
}

// List implements company.CompanyRepository.
func (r *companyRepositoryImpl) List(ctx context.Context, filter company.CompanyFilter) ([]company.Company, int64, error) {
	q := GetQuerier(ctx, r.db)

	var conditions []string
	var args []interface{}
	argIdx := 1

	if filter.Search != nil && *filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(co.legal_name ILIKE $%d OR co.trade_name ILIKE $%d OR co.cnpj ILIKE $%d)", argIdx, argIdx, argIdx))
		args = append(args, "%"+*filter.Search+"%")
		argIdx++
	}
	if filter.CityID != nil {
		conditions = append(conditions, fmt.Sprintf("co.city_id = $%d", argIdx))
		args = append(args, *filter.CityID)
		argIdx++
	}
	if filter.Active != nil {
		conditions = append(conditions, fmt.Sprintf("co.active = $%d", argIdx))
		args = append(args, *filter.Active)
		argIdx++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM companies co %s`, whereClause)
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count companies: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf(`%s %s ORDER BY co.legal_name ASC LIMIT $%d OFFSET $%d`, companySelect, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list companies: %w", err)
	}
	defer rows.Close()

	companies := make([]company.Company, 0)
	for rows.Next() {
		var c company.Company
		if err := scanCompany(rows, &c); err != nil {
			return nil, 0, fmt.Errorf("failed to scan company: %w", err)
		}
		companies = append(companies, c)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}

	return companies, total, nil
}

// Update implements company.CompanyRepository.
func (r *companyRepositoryImpl) Update(ctx context.Context, c company.Company) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE companies
		SET legal_name = $1, trade_name = NULLIF($2, ''), cnpj = $3, state_registration = $4,
			municipal_registration = $5, phone = NULLIF($6, ''), email = NULLIF($7, ''), website = $8,
			address = $9, city_id = NULLIF($10, '')::uuid, active = $11, updated_at = NOW()
		WHERE id = $12
	`

	commandTag, err := q.Exec(ctx, query,
		c.LegalName, c.TradeName, c.CNPJ, c.StateRegistration, c.MunicipalRegistration,
		c.Phone, c.Email, c.Website, c.Address, c.CityID, c.Active, c.ID,
	)
	if err != nil {
		return mapCompanyError(err, "failed to update company")
	}

	if commandTag.RowsAffected() == 0 {
		return company.ErrCompanyNotFound
	}

	return nil
}

// Delete implements company.CompanyRepository.
func (r *companyRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return company.ErrCompanyInUse
		}
		return fmt.Errorf("failed to delete company: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return company.ErrCompanyNotFound
	}

	return nil
}

// ========================================
// MANAGERS
// ========================================

type managerRepositoryImpl struct {
	db *database.DB
}

func NewManagerRepository(db *database.DB) company.ManagerRepository {
	return &managerRepositoryImpl{db: db}
}

const managerSelect = `
	SELECT m.id, m.user_id, m.company_id, m.job_title, m.department, m.corporate_email,
		m.corporate_phone, m.active, m.created_at, m.updated_at,
		TRIM(u.first_name || ' ' || u.last_name), u.username, co.legal_name
	FROM managers m
	JOIN users u ON u.id = m.user_id
	JOIN companies co ON co.id = m.company_id
`

func scanManager(row pgx.Row, m *company.Manager) error {
	return row.Scan(
		&m.ID, &m.UserID, &m.CompanyID, &m.JobTitle, &m.Department, &m.CorporateEmail,
		&m.CorporatePhone, &m.Active, &m.CreatedAt, &m.UpdatedAt,
		&m.FullName, &m.Username, &m.CompanyName,
	)
}

func mapManagerError(err error, msg string) error {
	switch {
	case isUniqueViolation(err):
		return company.ErrManagerExists
	case isForeignKeyViolation(err):
		return company.ErrInvalidManagerRef
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Create implements company.ManagerRepository.
func (r *managerRepositoryImpl) Create(ctx context.Context, m company.Manager) (company.Manager, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO managers (
			user_id, company_id, job_title, department, corporate_email, corporate_phone,
			active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id
	`

	var id string
	err := q.QueryRow(ctx, query,
		m.UserID, m.CompanyID, m.JobTitle, m.Department, m.CorporateEmail, m.CorporatePhone, m.Active,
	).Scan(&id)
	if err != nil {
		return company.Manager{}, mapManagerError(err, "failed to create manager")
	}

	return r.GetByID(ctx, id)
}

// GetByID implements company.ManagerRepository.
func (r *managerRepositoryImpl) GetByID(ctx context.Context, id string) (company.Manager, error) {
	q := GetQuerier(ctx, r.db)

	var found company.Manager
	if err := scanManager(q.QueryRow(ctx, managerSelect+` WHERE m.id = $1`, id), &found); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.Manager{}, company.ErrManagerNotFound
		}
		return company.Manager{}, fmt.Errorf("failed to get manager: %w", err)
	}

	return found, nil
}

// List implements company.ManagerRepository.
func (r *managerRepositoryImpl) List(ctx context.Context, filter company.ManagerFilter) ([]company.Manager, int64, error) {
	q := GetQuerier(ctx, r.db)

	var conditions []string
	var args []interface{}
	argIdx := 1

	if filter.CompanyID != nil {
		conditions = append(conditions, fmt.Sprintf("m.company_id = $%d", argIdx))
		args = append(args, *filter.CompanyID)
		argIdx++
	}
	if filter.Search != nil && *filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(u.first_name ILIKE $%d OR u.last_name ILIKE $%d OR u.username ILIKE $%d)", argIdx, argIdx, argIdx))
		args = append(args, "%"+*filter.Search+"%")
		argIdx++
	}
	if filter.Active != nil {
		conditions = append(conditions, fmt.Sprintf("m.active = $%d", argIdx))
		args = append(args, *filter.Active)
		argIdx++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM managers m JOIN users u ON u.id = m.user_id %s`, whereClause)
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count managers: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf(`%s %s ORDER BY u.first_name ASC, u.last_name ASC LIMIT $%d OFFSET $%d`,
		managerSelect, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list managers: %w", err)
	}
	defer rows.Close()

	managers := make([]company.Manager, 0)
	for rows.Next() {
		var m company.Manager
		if err := scanManager(rows, &m); err != nil {
			return nil, 0, fmt.Errorf("failed to scan manager: %w", err)
		}
		managers = append(managers, m)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}

	return managers, total, nil
}

// Update implements company.ManagerRepository.
func (r *managerRepositoryImpl) Update(ctx context.Context, m company.Manager) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE managers
		SET company_id = $1, job_title = $2, department = $3, corporate_email = $4,
			corporate_phone = $5, active = $6, updated_at = NOW()
		WHERE id = $7
	`

	commandTag, err := q.Exec(ctx, query,
		m.CompanyID, m.JobTitle, m.Department, m.CorporateEmail, m.CorporatePhone, m.Active, m.ID,
	)
	if err != nil {
		return mapManagerError(err, "failed to update manager")
	}

	if commandTag.RowsAffected() == 0 {
		return company.ErrManagerNotFound
	}

	return nil
}

// Delete implements company.ManagerRepository.
func (r *managerRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM managers WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return company.ErrManagerInUse
		}
		return fmt.Errorf("failed to delete manager: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return company.ErrManagerNotFound
	}

	return nil
}
