package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/terceiro-labs/provision-backend/internal/domain/dashboard"
	"github.com/terceiro-labs/provision-backend/internal/pkg/database"
)

type dashboardRepositoryImpl struct {
	db *database.DB
}

func NewDashboardRepository(db *database.DB) dashboard.DashboardRepository {
	return &dashboardRepositoryImpl{db: db}
}

// scopeConditions filters provisions p joined with employees e. extra
// conditions are ANDed in front of the scope.
func scopeConditions(scope dashboard.Scope, extra ...string) (string, []interface{}, int) {
	conditions := append([]string{}, extra...)
	var args []interface{}
	argIdx := 1

	if scope.CompanyID != nil && *scope.CompanyID != "" {
		conditions = append(conditions, fmt.Sprintf("e.company_id = $%d", argIdx))
		args = append(args, *scope.CompanyID)
		argIdx++
	}
	if scope.StartDate != nil {
		conditions = append(conditions, fmt.Sprintf("p.date >= $%d", argIdx))
		args = append(args, *scope.StartDate)
		argIdx++
	}
	if scope.EndDate != nil {
		conditions = append(conditions, fmt.Sprintf("p.date <= $%d", argIdx))
		args = append(args, *scope.EndDate)
		argIdx++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}
	return whereClause, args, argIdx
}

// EmployeeCounts returns active and inactive employees in a single query
func (r *dashboardRepositoryImpl) EmployeeCounts(ctx context.Context, companyID *string) (dashboard.EmployeeCounts, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COALESCE(SUM(CASE WHEN active THEN 1 ELSE 0 END), 0) AS active_count,
			COALESCE(SUM(CASE WHEN NOT active THEN 1 ELSE 0 END), 0) AS inactive_count
		FROM employees
		WHERE ($1::uuid IS NULL OR company_id = $1::uuid)
	`

	var counts dashboard.EmployeeCounts
	if err := q.QueryRow(ctx, query, companyID).Scan(&counts.Active, &counts.Inactive); err != nil {
		return dashboard.EmployeeCounts{}, fmt.Errorf("failed to count employees: %w", err)
	}
	return counts, nil
}

// StatusCounts implements dashboard.DashboardRepository.
func (r *dashboardRepositoryImpl) StatusCounts(ctx context.Context, scope dashboard.Scope) ([]dashboard.StatusCount, error) {
	q := GetQuerier(ctx, r.db)

	whereClause, args, _ := scopeConditions(scope)
	query := fmt.Sprintf(`
		SELECT p.status, COUNT(*)
		FROM provisions p
		JOIN employees e ON e.id = p.employee_id
		%s
		GROUP BY p.status
		ORDER BY p.status
	`, whereClause)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to count provisions by status: %w", err)
	}
	defer rows.Close()

	counts := make([]dashboard.StatusCount, 0)
	for rows.Next() {
		var c dashboard.StatusCount
		if err := rows.Scan(&c.Status, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan status count: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// ApprovedTotals implements dashboard.DashboardRepository.
func (r *dashboardRepositoryImpl) ApprovedTotals(ctx context.Context, scope dashboard.Scope) (dashboard.ValueTotals, error) {
	q := GetQuerier(ctx, r.db)

	whereClause, args, _ := scopeConditions(scope, "p.status = 'approved'")
	query := fmt.Sprintf(`
		SELECT COUNT(*), COALESCE(SUM(p.value), 0), COALESCE(ROUND(AVG(p.value), 2), 0)
		FROM provisions p
		JOIN employees e ON e.id = p.employee_id
		%s
	`, whereClause)

	var totals dashboard.ValueTotals
	if err := q.QueryRow(ctx, query, args...).Scan(&totals.Count, &totals.Total, &totals.Average); err != nil {
		return dashboard.ValueTotals{}, fmt.Errorf("failed to sum approved provisions: %w", err)
	}
	return totals, nil
}

// DailyVolume implements dashboard.DashboardRepository.
func (r *dashboardRepositoryImpl) DailyVolume(ctx context.Context, scope dashboard.Scope) ([]dashboard.DailyVolume, error) {
	q := GetQuerier(ctx, r.db)

	whereClause, args, _ := scopeConditions(scope)
	query := fmt.Sprintf(`
		SELECT p.date, COUNT(*), COALESCE(SUM(p.value), 0)
		FROM provisions p
		JOIN employees e ON e.id = p.employee_id
		%s
		GROUP BY p.date
		ORDER BY p.date ASC
	`, whereClause)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get daily volume: %w", err)
	}
	defer rows.Close()

	days := make([]dashboard.DailyVolume, 0)
	for rows.Next() {
		var d dashboard.DailyVolume
		if err := rows.Scan(&d.Date, &d.Count, &d.Value); err != nil {
			return nil, fmt.Errorf("failed to scan daily volume: %w", err)
		}
		days = append(days, d)
	}
	return days, rows.Err()
}

// EmployeesPerCompany implements dashboard.DashboardRepository.
func (r *dashboardRepositoryImpl) EmployeesPerCompany(ctx context.Context, limit int) ([]dashboard.CompanyCount, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT co.id, co.legal_name, COUNT(e.id) AS total
		FROM companies co
		JOIN employees e ON e.company_id = co.id AND e.active
		GROUP BY co.id, co.legal_name
		ORDER BY total DESC, co.legal_name ASC
		LIMIT $1
	`

	rows, err := q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to count employees per company: %w", err)
	}
	defer rows.Close()

	counts := make([]dashboard.CompanyCount, 0)
	for rows.Next() {
		var c dashboard.CompanyCount
		if err := rows.Scan(&c.CompanyID, &c.CompanyName, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan company count: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// ApprovedByCompany implements dashboard.DashboardRepository.
func (r *dashboardRepositoryImpl) ApprovedByCompany(ctx context.Context, scope dashboard.Scope, limit int) ([]dashboard.CompanyTotals, error) {
	q := GetQuerier(ctx, r.db)

	whereClause, args, argIdx := scopeConditions(scope, "p.status = 'approved'")
	limitClause := ""
	if limit > 0 {
		limitClause = fmt.Sprintf("LIMIT $%d", argIdx)
		args = append(args, limit)
	}

	query := fmt.Sprintf(`
		SELECT co.id, co.legal_name, COUNT(*), SUM(p.value) AS total, ROUND(AVG(p.value), 2)
		FROM provisions p
		JOIN employees e ON e.id = p.employee_id
		JOIN companies co ON co.id = e.company_id
		%s
		GROUP BY co.id, co.legal_name
		ORDER BY total DESC, co.legal_name ASC
		%s
	`, whereClause, limitClause)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to group approved provisions by company: %w", err)
	}
	defer rows.Close()

	totals := make([]dashboard.CompanyTotals, 0)
	for rows.Next() {
		var c dashboard.CompanyTotals
		if err := rows.Scan(&c.CompanyID, &c.CompanyName, &c.Count, &c.Total, &c.Average); err != nil {
			return nil, fmt.Errorf("failed to scan company totals: %w", err)
		}
		totals = append(totals, c)
	}
	return totals, rows.Err()
}

// ApprovedByEmployee implements dashboard.DashboardRepository.
func (r *dashboardRepositoryImpl) ApprovedByEmployee(ctx context.Context, scope dashboard.Scope, limit int) ([]dashboard.EmployeeTotals, error) {
	q := GetQuerier(ctx, r.db)

	whereClause, args, argIdx := scopeConditions(scope, "p.status = 'approved'")
	limitClause := ""
	if limit > 0 {
		limitClause = fmt.Sprintf("LIMIT $%d", argIdx)
		args = append(args, limit)
	}

	query := fmt.Sprintf(`
		SELECT e.id, TRIM(u.first_name || ' ' || u.last_name) AS name, co.legal_name,
			COUNT(*), SUM(p.value) AS total, ROUND(AVG(p.value), 2)
		FROM provisions p
		JOIN employees e ON e.id = p.employee_id
		JOIN users u ON u.id = e.user_id
		JOIN companies co ON co.id = e.company_id
		%s
		GROUP BY e.id, u.first_name, u.last_name, co.legal_name
		ORDER BY total DESC, name ASC
		%s
	`, whereClause, limitClause)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to group approved provisions by employee: %w", err)
	}
	defer rows.Close()

	totals := make([]dashboard.EmployeeTotals, 0)
	for rows.Next() {
		var t dashboard.EmployeeTotals
		if err := rows.Scan(&t.EmployeeID, &t.EmployeeName, &t.CompanyName, &t.Count, &t.Total, &t.Average); err != nil {
			return nil, fmt.Errorf("failed to scan employee totals: %w", err)
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}
