package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/terceiro-labs/provision-backend/internal/domain/punch"
	"github.com/terceiro-labs/provision-backend/internal/pkg/database"
)

const topPunchEmployeesLimit = 10

type punchRepositoryImpl struct {
	db *database.DB
}

func NewPunchRepository(db *database.DB) punch.PunchRepository {
	return &punchRepositoryImpl{db: db}
}

const punchSelect = `
	SELECT pu.id, pu.employee_id, pu.photo_url, pu.ip_address, pu.latitude, pu.longitude, pu.created_at,
		TRIM(u.first_name || ' ' || u.last_name), co.legal_name
	FROM punches pu
	JOIN employees e ON e.id = pu.employee_id
	JOIN users u ON u.id = e.user_id
	JOIN companies co ON co.id = e.company_id
`

func scanPunch(row pgx.Row, p *punch.Punch) error {
	return row.Scan(
		&p.ID, &p.EmployeeID, &p.PhotoURL, &p.IPAddress, &p.Latitude, &p.Longitude, &p.CreatedAt,
		&p.EmployeeName, &p.CompanyName,
	)
}

// Create implements punch.PunchRepository.
func (r *punchRepositoryImpl) Create(ctx context.Context, p punch.Punch) (punch.Punch, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO punches (employee_id, photo_url, ip_address, latitude, longitude, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id
	`

	var id string
	err := q.QueryRow(ctx, query, p.EmployeeID, p.PhotoURL, p.IPAddress, p.Latitude, p.Longitude).Scan(&id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return punch.Punch{}, punch.ErrInvalidEmployee
		}
		return punch.Punch{}, fmt.Errorf("failed to create punch: %w", err)
	}

	return r.GetByID(ctx, id)
}

// GetByID implements punch.PunchRepository.
func (r *punchRepositoryImpl) GetByID(ctx context.Context, id string) (punch.Punch, error) {
	q := GetQuerier(ctx, r.db)

	var p punch.Punch
	if err := scanPunch(q.QueryRow(ctx, punchSelect+` WHERE pu.id = $1`, id), &p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return punch.Punch{}, punch.ErrPunchNotFound
		}
		return punch.Punch{}, fmt.Errorf("failed to get punch: %w", err)
	}

	return p, nil
}

func punchConditions(filter punch.PunchFilter) (string, []interface{}, int) {
	var conditions []string
	var args []interface{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		conditions = append(conditions, fmt.Sprintf("pu.employee_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.CompanyID != nil && *filter.CompanyID != "" {
		conditions = append(conditions, fmt.Sprintf("e.company_id = $%d", argIdx))
		args = append(args, *filter.CompanyID)
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		conditions = append(conditions, fmt.Sprintf("pu.created_at::date >= $%d::date", argIdx))
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		conditions = append(conditions, fmt.Sprintf("pu.created_at::date <= $%d::date", argIdx))
		args = append(args, *filter.EndDate)
		argIdx++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}
	return whereClause, args, argIdx
}

// List implements punch.PunchRepository. Newest punches come first.
func (r *punchRepositoryImpl) List(ctx context.Context, filter punch.PunchFilter) ([]punch.Punch, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClause, args, argIdx := punchConditions(filter)

	var total int64
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM punches pu JOIN employees e ON e.id = pu.employee_id %s`, whereClause)
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count punches: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf(`%s %s ORDER BY pu.created_at DESC LIMIT $%d OFFSET $%d`, punchSelect, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list punches: %w", err)
	}
	defer rows.Close()

	punches := make([]punch.Punch, 0)
	for rows.Next() {
		var p punch.Punch
		if err := scanPunch(rows, &p); err != nil {
			return nil, 0, fmt.Errorf("failed to scan punch: %w", err)
		}
		punches = append(punches, p)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}

	return punches, total, nil
}

// Summary implements punch.PunchRepository.
func (r *punchRepositoryImpl) Summary(ctx context.Context, filter punch.PunchFilter) (punch.Summary, error) {
	q := GetQuerier(ctx, r.db)

	whereClause, args, argIdx := punchConditions(filter)

	query := fmt.Sprintf(`
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE pu.created_at::date = CURRENT_DATE),
			COUNT(*) FILTER (WHERE pu.created_at >= NOW() - INTERVAL '7 days')
		FROM punches pu
		JOIN employees e ON e.id = pu.employee_id
		%s
	`, whereClause)

	var s punch.Summary
	if err := q.QueryRow(ctx, query, args...).Scan(&s.Total, &s.Today, &s.LastSevenDays); err != nil {
		return punch.Summary{}, fmt.Errorf("failed to summarize punches: %w", err)
	}

	topQuery := fmt.Sprintf(`
		SELECT pu.employee_id, TRIM(u.first_name || ' ' || u.last_name) AS name, COUNT(*) AS total
		FROM punches pu
		JOIN employees e ON e.id = pu.employee_id
		JOIN users u ON u.id = e.user_id
		%s
		GROUP BY pu.employee_id, u.first_name, u.last_name
		ORDER BY total DESC, name ASC
		LIMIT $%d
	`, whereClause, argIdx)

	rows, err := q.Query(ctx, topQuery, append(args, topPunchEmployeesLimit)...)
	if err != nil {
		return punch.Summary{}, fmt.Errorf("failed to rank employees by punches: %w", err)
	}
	defer rows.Close()

	s.TopEmployees = make([]punch.EmployeeCount, 0)
	for rows.Next() {
		var c punch.EmployeeCount
		if err := rows.Scan(&c.EmployeeID, &c.EmployeeName, &c.Count); err != nil {
			return punch.Summary{}, fmt.Errorf("failed to scan employee punch count: %w", err)
		}
		s.TopEmployees = append(s.TopEmployees, c)
	}

	return s, rows.Err()
}
