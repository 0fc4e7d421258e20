package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/terceiro-labs/provision-backend/internal/domain/report"
	"github.com/terceiro-labs/provision-backend/internal/pkg/database"
)

type reportRepositoryImpl struct {
	db *database.DB
}

func NewReportRepository(db *database.DB) report.ReportRepository {
	return &reportRepositoryImpl{db: db}
}

const reportSelect = `
	SELECT r.id, r.name, r.user_id, r.filters, r.fields, r.description, r.public, r.created_at, r.updated_at,
		COALESCE(NULLIF(TRIM(u.first_name || ' ' || u.last_name), ''), u.username)
	FROM saved_reports r
	JOIN users u ON u.id = r.user_id
`

func scanReport(row pgx.Row, rep *report.SavedReport) error {
	return row.Scan(
		&rep.ID, &rep.Name, &rep.UserID, &rep.Filters, &rep.Fields, &rep.Description, &rep.Public,
		&rep.CreatedAt, &rep.UpdatedAt, &rep.OwnerName,
	)
}

// Create implements report.ReportRepository.
func (r *reportRepositoryImpl) Create(ctx context.Context, rep report.SavedReport) (report.SavedReport, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO saved_reports (name, user_id, filters, fields, description, public, created_at, updated_at)
		VALUES ($1, $2, COALESCE($3, '{}'::jsonb), COALESCE($4, '[]'::jsonb), $5, $6, NOW(), NOW())
		RETURNING id
	`

	var id string
	err := q.QueryRow(ctx, query, rep.Name, rep.UserID, rep.Filters, rep.Fields, rep.Description, rep.Public).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return report.SavedReport{}, report.ErrReportNameTaken
		}
		return report.SavedReport{}, fmt.Errorf("failed to create report: %w", err)
	}

	return r.GetByID(ctx, id)
}

// GetByID implements report.ReportRepository.
func (r *reportRepositoryImpl) GetByID(ctx context.Context, id string) (report.SavedReport, error) {
	q := GetQuerier(ctx, r.db)

	var rep report.SavedReport
	if err := scanReport(q.QueryRow(ctx, reportSelect+` WHERE r.id = $1`, id), &rep); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return report.SavedReport{}, report.ErrReportNotFound
		}
		return report.SavedReport{}, fmt.Errorf("failed to get report: %w", err)
	}

	return rep, nil
}

// List implements report.ReportRepository.
func (r *reportRepositoryImpl) List(ctx context.Context, filter report.ReportFilter) ([]report.SavedReport, int64, error) {
	q := GetQuerier(ctx, r.db)

	var conditions []string
	var args []interface{}
	argIdx := 1

	if !filter.All {
		conditions = append(conditions, fmt.Sprintf("(r.user_id = $%d OR r.public)", argIdx))
		args = append(args, filter.UserID)
		argIdx++
	}
	if filter.Search != nil && *filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(r.name ILIKE $%d OR r.description ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+*filter.Search+"%")
		argIdx++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM saved_reports r %s`, whereClause)
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count reports: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf(`%s %s ORDER BY r.updated_at DESC LIMIT $%d OFFSET $%d`, reportSelect, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	reports := make([]report.SavedReport, 0)
	for rows.Next() {
		var rep report.SavedReport
		if err := scanReport(rows, &rep); err != nil {
			return nil, 0, fmt.Errorf("failed to scan report: %w", err)
		}
		reports = append(reports, rep)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}

	return reports, total, nil
}

// Update implements report.ReportRepository.
func (r *reportRepositoryImpl) Update(ctx context.Context, rep report.SavedReport) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE saved_reports
		SET name = $1, filters = COALESCE($2, filters), fields = COALESCE($3, fields),
			description = $4, public = $5, updated_at = NOW()
		WHERE id = $6
	`

	commandTag, err := q.Exec(ctx, query, rep.Name, rep.Filters, rep.Fields, rep.Description, rep.Public, rep.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return report.ErrReportNameTaken
		}
		return fmt.Errorf("failed to update report: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return report.ErrReportNotFound
	}

	return nil
}

// Delete implements report.ReportRepository.
func (r *reportRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM saved_reports WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete report: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return report.ErrReportNotFound
	}

	return nil
}
