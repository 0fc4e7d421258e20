package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/terceiro-labs/provision-backend/internal/domain/employee"
	"github.com/terceiro-labs/provision-backend/internal/pkg/database"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeSelect = `
	SELECT
		e.id, e.user_id, e.company_id, e.position_id, e.registration, e.pix_key, e.bank,
		e.bank_branch, e.bank_account, e.hire_date, e.termination_date, e.active,
		e.created_at, e.updated_at,
		TRIM(u.first_name || ' ' || u.last_name) AS full_name, u.username, u.email, u.cpf, u.phone, u.photo_url,
		co.legal_name AS company_name,
		p.name AS position_name
	FROM employees e
	JOIN users u ON u.id = e.user_id
	JOIN companies co ON co.id = e.company_id
	JOIN positions p ON p.id = e.position_id
`

func scanEmployee(row pgx.Row, emp *employee.Employee) error {
	return row.Scan(
		&emp.ID, &emp.UserID, &emp.CompanyID, &emp.PositionID, &emp.Registration, &emp.PixKey, &emp.Bank,
		&emp.BankBranch, &emp.BankAccount, &emp.HireDate, &emp.TerminationDate, &emp.Active,
		&emp.CreatedAt, &emp.UpdatedAt,
		&emp.FullName, &emp.Username, &emp.Email, &emp.CPF, &emp.Phone, &emp.PhotoURL,
		&emp.CompanyName,
		&emp.PositionName,
	)
}

func mapEmployeeError(err error, msg string) error {
	switch {
	case isUniqueViolation(err):
		if constraintOf(err) == "employees_user_id_key" {
			return employee.ErrUserAlreadyEmployee
		}
		return employee.ErrRegistrationExists
	case isForeignKeyViolation(err):
		return employee.ErrInvalidReference
	case constraintOf(err) == "employees_termination_check":
		return employee.ErrTerminationBeforeHire
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (
			user_id, company_id, position_id, registration, pix_key, bank, bank_branch,
			bank_account, hire_date, termination_date, active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
		RETURNING id
	`

	var id string
	err := q.QueryRow(ctx, query,
		emp.UserID, emp.CompanyID, emp.PositionID, emp.Registration, emp.PixKey, emp.Bank, emp.BankBranch,
		emp.BankAccount, emp.HireDate, emp.TerminationDate, emp.Active,
	).Scan(&id)
	if err != nil {
		return employee.Employee{}, mapEmployeeError(err, "failed to create employee")
	}

	return r.GetByID(ctx, id)
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	return r.getOne(ctx, "e.id", id)
}

// GetByUserID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByUserID(ctx context.Context, userID string) (employee.Employee, error) {
	return r.getOne(ctx, "e.user_id", userID)
}

func (r *employeeRepositoryImpl) getOne(ctx context.Context, column, value string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	var emp employee.Employee
	err := scanEmployee(q.QueryRow(ctx, employeeSelect+fmt.Sprintf(" WHERE %s = $1", column), value), &emp)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return emp, nil
}

// employeeConditions builds the WHERE clause shared by List and Summary.
func employeeConditions(filter employee.EmployeeFilter) (string, []interface{}, int) {
	var conditions []string
	var args []interface{}
	argIdx := 1

	if filter.CompanyID != nil {
		conditions = append(conditions, fmt.Sprintf("e.company_id = $%d", argIdx))
		args = append(args, *filter.CompanyID)
		argIdx++
	}
	if filter.PositionID != nil {
		conditions = append(conditions, fmt.Sprintf("e.position_id = $%d", argIdx))
		args = append(args, *filter.PositionID)
		argIdx++
	}
	if filter.Active != nil {
		conditions = append(conditions, fmt.Sprintf("e.active = $%d", argIdx))
		args = append(args, *filter.Active)
		argIdx++
	}
	if filter.Search != nil && *filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(u.first_name ILIKE $%d OR u.last_name ILIKE $%d OR e.registration ILIKE $%d OR u.cpf ILIKE $%d)",
			argIdx, argIdx, argIdx, argIdx))
		args = append(args, "%"+*filter.Search+"%")
		argIdx++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}
	return whereClause, args, argIdx
}

// List implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClause, args, argIdx := employeeConditions(filter)

	// Count query
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM employees e JOIN users u ON u.id = e.user_id %s", whereClause)
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	// Validate sort column
	validSortColumns := map[string]string{
		"name":         "full_name",
		"registration": "e.registration",
		"hire_date":    "e.hire_date",
	}
	sortColumn, ok := validSortColumns[filter.SortBy]
	if !ok {
		sortColumn = "full_name"
	}

	sortOrder := "ASC"
	if strings.ToUpper(filter.SortOrder) == "DESC" {
		sortOrder = "DESC"
	}

	// Main query with pagination
	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf(`%s %s ORDER BY %s %s LIMIT $%d OFFSET $%d`,
		employeeSelect, whereClause, sortColumn, sortOrder, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	employees := make([]employee.Employee, 0)
	for rows.Next() {
		var emp employee.Employee
		if err := scanEmployee(rows, &emp); err != nil {
			return nil, 0, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, err
	}

	return employees, total, nil
}

// Update implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Update(ctx context.Context, emp employee.Employee) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET company_id = $1, position_id = $2, registration = $3, pix_key = $4, bank = $5,
			bank_branch = $6, bank_account = $7, hire_date = $8, termination_date = $9,
			active = $10, updated_at = NOW()
		WHERE id = $11
	`

	commandTag, err := q.Exec(ctx, query,
		emp.CompanyID, emp.PositionID, emp.Registration, emp.PixKey, emp.Bank,
		emp.BankBranch, emp.BankAccount, emp.HireDate, emp.TerminationDate,
		emp.Active, emp.ID,
	)
	if err != nil {
		return mapEmployeeError(err, "failed to update employee")
	}

	if commandTag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

// Delete implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return employee.ErrEmployeeInUse
		}
		return fmt.Errorf("failed to delete employee: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

// Summary implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Summary(ctx context.Context, filter employee.EmployeeFilter) (employee.Summary, error) {
	q := GetQuerier(ctx, r.db)

	whereClause, args, _ := employeeConditions(filter)

	var summary employee.Summary
	countQuery := fmt.Sprintf(`
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE e.active),
			COUNT(*) FILTER (WHERE NOT e.active)
		FROM employees e
		JOIN users u ON u.id = e.user_id
		%s
	`, whereClause)
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&summary.Total, &summary.Active, &summary.Inactive); err != nil {
		return employee.Summary{}, fmt.Errorf("failed to count employees: %w", err)
	}

	var err error
	summary.ByCompany, err = r.groupCount(ctx, q, "co.id", "co.legal_name", "JOIN companies co ON co.id = e.company_id", whereClause, args)
	if err != nil {
		return employee.Summary{}, err
	}
	summary.ByPosition, err = r.groupCount(ctx, q, "p.id", "p.name", "JOIN positions p ON p.id = e.position_id", whereClause, args)
	if err != nil {
		return employee.Summary{}, err
	}

	return summary, nil
}

func (r *employeeRepositoryImpl) groupCount(ctx context.Context, q database.Querier, idCol, nameCol, join, whereClause string, args []interface{}) ([]employee.GroupCount, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, COUNT(*) AS total
		FROM employees e
		JOIN users u ON u.id = e.user_id
		%s
		%s
		GROUP BY %s, %s
		ORDER BY total DESC, %s ASC
	`, idCol, nameCol, join, whereClause, idCol, nameCol, nameCol)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to group employees: %w", err)
	}
	defer rows.Close()

	groups := make([]employee.GroupCount, 0)
	for rows.Next() {
		var g employee.GroupCount
		if err := rows.Scan(&g.ID, &g.Name, &g.Count); err != nil {
			return nil, fmt.Errorf("failed to scan employee group: %w", err)
		}
		groups = append(groups, g)
	}

	return groups, rows.Err()
}
