package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/terceiro-labs/provision-backend/internal/domain/provision"
	"github.com/terceiro-labs/provision-backend/internal/pkg/database"
)

// topCompaniesLimit bounds Summary.TopCompanies.
const topCompaniesLimit = 10

type provisionRepositoryImpl struct {
	db *database.DB
}

func NewProvisionRepository(db *database.DB) provision.ProvisionRepository {
	return &provisionRepositoryImpl{db: db}
}

// NewProvisionHistoryRepository shares the provisions implementation; history
// rows are only ever inserted and read.
func NewProvisionHistoryRepository(db *database.DB) provision.HistoryRepository {
	return &provisionRepositoryImpl{db: db}
}

const recordColumns = `
	p.id, p.employee_id, p.location_id, p.manager_id, p.date, p.arrival_time, p.lunch_out_time,
	p.lunch_in_time, p.departure_time, p.on_site_validated, p.status, p.value, p.notes,
	p.proof_photo_url, p.arrival_latitude, p.arrival_longitude, p.departure_latitude,
	p.departure_longitude, p.created_by, p.created_at, p.updated_at
`

// companyDisplayName is the trade name, or the legal name when none is registered.
const companyDisplayName = `COALESCE(NULLIF(co.trade_name, ''), co.legal_name)`

const detailSelect = `
	SELECT ` + recordColumns + `,
		TRIM(eu.first_name || ' ' || eu.last_name), eu.cpf, eu.phone, eu.photo_url, e.registration,
		co.id, ` + companyDisplayName + `,
		l.name, ci.name,
		TRIM(mu.first_name || ' ' || mu.last_name)
	FROM provisions p
	JOIN employees e ON e.id = p.employee_id
	JOIN users eu ON eu.id = e.user_id
	JOIN companies co ON co.id = e.company_id
	JOIN service_locations l ON l.id = p.location_id
	JOIN cities ci ON ci.id = l.city_id
	JOIN managers m ON m.id = p.manager_id
	JOIN users mu ON mu.id = m.user_id
`

func recordDest(rec *provision.Record) []interface{} {
	return []interface{}{
		&rec.ID, &rec.EmployeeID, &rec.LocationID, &rec.ManagerID, &rec.Date, &rec.Arrival, &rec.LunchOut,
		&rec.LunchIn, &rec.Departure, &rec.OnSiteValidated, &rec.Status, &rec.Value, &rec.Notes,
		&rec.ProofPhotoURL, &rec.ArrivalLatitude, &rec.ArrivalLongitude, &rec.DepartureLatitude,
		&rec.DepartureLongitude, &rec.CreatedBy, &rec.CreatedAt, &rec.UpdatedAt,
	}
}

func scanDetail(row pgx.Row, d *provision.Detail) error {
	dest := append(recordDest(&d.Record),
		&d.EmployeeName, &d.EmployeeCPF, &d.EmployeePhone, &d.EmployeePhotoURL, &d.EmployeeRegistration,
		&d.CompanyID, &d.CompanyName,
		&d.LocationName, &d.CityName,
		&d.ManagerName,
	)
	return row.Scan(dest...)
}

func mapProvisionError(err error, msg string) error {
	switch {
	case isUniqueViolation(err):
		return provision.ErrDuplicateRecord
	case isForeignKeyViolation(err):
		return provision.ErrInvalidReference
	case constraintOf(err) == "provisions_status_check":
		return provision.ErrInvalidStatus
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Create implements provision.ProvisionRepository.
func (r *provisionRepositoryImpl) Create(ctx context.Context, rec provision.Record) (provision.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO provisions (
			employee_id, location_id, manager_id, date, arrival_time, lunch_out_time, lunch_in_time,
			departure_time, on_site_validated, status, value, notes, proof_photo_url,
			arrival_latitude, arrival_longitude, departure_latitude, departure_longitude,
			created_by, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	if rec.Status == "" {
		rec.Status = provision.StatusPending
	}

	err := q.QueryRow(ctx, query,
		rec.EmployeeID, rec.LocationID, rec.ManagerID, rec.Date, rec.Arrival, rec.LunchOut, rec.LunchIn,
		rec.Departure, rec.OnSiteValidated, string(rec.Status), rec.Value, rec.Notes, rec.ProofPhotoURL,
		rec.ArrivalLatitude, rec.ArrivalLongitude, rec.DepartureLatitude, rec.DepartureLongitude,
		rec.CreatedBy,
	).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return provision.Record{}, mapProvisionError(err, "failed to create service provision")
	}

	return rec, nil
}

// GetByID implements provision.ProvisionRepository.
func (r *provisionRepositoryImpl) GetByID(ctx context.Context, id string) (provision.Detail, error) {
	q := GetQuerier(ctx, r.db)

	var d provision.Detail
	if err := scanDetail(q.QueryRow(ctx, detailSelect+` WHERE p.id = $1`, id), &d); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return provision.Detail{}, provision.ErrProvisionNotFound
		}
		return provision.Detail{}, fmt.Errorf("failed to get service provision: %w", err)
	}

	return d, nil
}

// GetForUpdate implements provision.ProvisionRepository.
func (r *provisionRepositoryImpl) GetForUpdate(ctx context.Context, id string) (provision.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + recordColumns + ` FROM provisions p WHERE p.id = $1 FOR UPDATE`

	var rec provision.Record
	if err := q.QueryRow(ctx, query, id).Scan(recordDest(&rec)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return provision.Record{}, provision.ErrProvisionNotFound
		}
		return provision.Record{}, fmt.Errorf("failed to lock service provision: %w", err)
	}

	return rec, nil
}

// Update implements provision.ProvisionRepository.
func (r *provisionRepositoryImpl) Update(ctx context.Context, rec provision.Record) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE provisions
		SET location_id = $1, manager_id = $2, date = $3, arrival_time = $4, lunch_out_time = $5,
			lunch_in_time = $6, departure_time = $7, on_site_validated = $8, value = $9, notes = $10,
			arrival_latitude = $11, arrival_longitude = $12, departure_latitude = $13,
			departure_longitude = $14, updated_at = NOW()
		WHERE id = $15
	`

	commandTag, err := q.Exec(ctx, query,
		rec.LocationID, rec.ManagerID, rec.Date, rec.Arrival, rec.LunchOut,
		rec.LunchIn, rec.Departure, rec.OnSiteValidated, rec.Value, rec.Notes,
		rec.ArrivalLatitude, rec.ArrivalLongitude, rec.DepartureLatitude,
		rec.DepartureLongitude, rec.ID,
	)
	if err != nil {
		return mapProvisionError(err, "failed to update service provision")
	}

	if commandTag.RowsAffected() == 0 {
		return provision.ErrProvisionNotFound
	}

	return nil
}

// UpdateStatus implements provision.ProvisionRepository.
func (r *provisionRepositoryImpl) UpdateStatus(ctx context.Context, id string, status provision.Status) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx,
		`UPDATE provisions SET status = $1, updated_at = NOW() WHERE id = $2`,
		string(status), id,
	)
	if err != nil {
		return mapProvisionError(err, "failed to update service provision status")
	}

	if commandTag.RowsAffected() == 0 {
		return provision.ErrProvisionNotFound
	}

	return nil
}

// SetProofPhoto implements provision.ProvisionRepository.
func (r *provisionRepositoryImpl) SetProofPhoto(ctx context.Context, id string, url string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx,
		`UPDATE provisions SET proof_photo_url = $1, updated_at = NOW() WHERE id = $2`,
		url, id,
	)
	if err != nil {
		return fmt.Errorf("failed to set proof photo: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return provision.ErrProvisionNotFound
	}

	return nil
}

// provisionConditions builds the WHERE clause shared by List, Summary and
// ListTimeSheets. Every query using it must join employees as e.
func provisionConditions(filter provision.ProvisionFilter) (string, []interface{}, int) {
	var conditions []string
	var args []interface{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		conditions = append(conditions, fmt.Sprintf("p.employee_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.CompanyID != nil && *filter.CompanyID != "" {
		conditions = append(conditions, fmt.Sprintf("e.company_id = $%d", argIdx))
		args = append(args, *filter.CompanyID)
		argIdx++
	}
	if filter.LocationID != nil && *filter.LocationID != "" {
		conditions = append(conditions, fmt.Sprintf("p.location_id = $%d", argIdx))
		args = append(args, *filter.LocationID)
		argIdx++
	}
	if filter.ManagerID != nil && *filter.ManagerID != "" {
		conditions = append(conditions, fmt.Sprintf("p.manager_id = $%d", argIdx))
		args = append(args, *filter.ManagerID)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("p.status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		conditions = append(conditions, fmt.Sprintf("p.date >= $%d::date", argIdx))
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		conditions = append(conditions, fmt.Sprintf("p.date <= $%d::date", argIdx))
		args = append(args, *filter.EndDate)
		argIdx++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}
	return whereClause, args, argIdx
}

// List implements provision.ProvisionRepository.
func (r *provisionRepositoryImpl) List(ctx context.Context, filter provision.ProvisionFilter) ([]provision.Detail, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClause, args, argIdx := provisionConditions(filter)

	// Count query
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM provisions p JOIN employees e ON e.id = p.employee_id %s`, whereClause)
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count service provisions: %w", err)
	}

	// Validate sort column
	validSortColumns := map[string]string{
		"date":         "p.date",
		"arrival_time": "p.arrival_time",
		"value":        "p.value",
		"status":       "p.status",
		"created_at":   "p.created_at",
	}
	orderBy := "p.date DESC, p.arrival_time DESC"
	if sortColumn, ok := validSortColumns[filter.SortBy]; ok {
		sortOrder := "DESC"
		if strings.ToUpper(filter.SortOrder) == "ASC" {
			sortOrder = "ASC"
		}
		orderBy = fmt.Sprintf("%s %s, p.id ASC", sortColumn, sortOrder)
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf(`%s %s ORDER BY %s LIMIT $%d OFFSET $%d`, detailSelect, whereClause, orderBy, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list service provisions: %w", err)
	}
	defer rows.Close()

	details := make([]provision.Detail, 0)
	for rows.Next() {
		var d provision.Detail
		if err := scanDetail(rows, &d); err != nil {
			return nil, 0, fmt.Errorf("failed to scan service provision: %w", err)
		}
		details = append(details, d)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}

	return details, total, nil
}

// Summary implements provision.ProvisionRepository.
func (r *provisionRepositoryImpl) Summary(ctx context.Context, filter provision.ProvisionFilter) (provision.Summary, error) {
	q := GetQuerier(ctx, r.db)

	whereClause, args, argIdx := provisionConditions(filter)

	query := fmt.Sprintf(`
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE p.status = 'approved'),
			COUNT(*) FILTER (WHERE p.status = 'pending'),
			COUNT(*) FILTER (WHERE p.status = 'rejected'),
			COUNT(*) FILTER (WHERE p.status = 'in_review'),
			COALESCE(SUM(p.value), 0),
			COALESCE(ROUND(AVG(p.value), 2), 0)
		FROM provisions p
		JOIN employees e ON e.id = p.employee_id
		%s
	`, whereClause)

	var s provision.Summary
	err := q.QueryRow(ctx, query, args...).Scan(
		&s.Total, &s.Approved, &s.Pending, &s.Rejected, &s.InReview, &s.TotalValue, &s.AverageValue,
	)
	if err != nil {
		return provision.Summary{}, fmt.Errorf("failed to summarize service provisions: %w", err)
	}

	topQuery := fmt.Sprintf(`
		SELECT co.id, ` + companyDisplayName + ` AS name, COUNT(*) AS total
		FROM provisions p
		JOIN employees e ON e.id = p.employee_id
		JOIN companies co ON co.id = e.company_id
		%s
		GROUP BY co.id, co.trade_name, co.legal_name
		ORDER BY total DESC, name ASC
		LIMIT $%d
	`, whereClause, argIdx)

	rows, err := q.Query(ctx, topQuery, append(args, topCompaniesLimit)...)
	if err != nil {
		return provision.Summary{}, fmt.Errorf("failed to rank companies: %w", err)
	}
	defer rows.Close()

	s.TopCompanies = make([]provision.CompanyCount, 0)
	for rows.Next() {
		var c provision.CompanyCount
		if err := rows.Scan(&c.CompanyID, &c.CompanyName, &c.Count); err != nil {
			return provision.Summary{}, fmt.Errorf("failed to scan company count: %w", err)
		}
		s.TopCompanies = append(s.TopCompanies, c)
	}

	if err = rows.Err(); err != nil {
		return provision.Summary{}, fmt.Errorf("rows iteration error: %w", err)
	}

	return s, nil
}

// ListTimeSheets implements provision.ProvisionRepository.
func (r *provisionRepositoryImpl) ListTimeSheets(ctx context.Context, filter provision.ProvisionFilter) ([]provision.TimeSheet, error) {
	q := GetQuerier(ctx, r.db)

	whereClause, args, _ := provisionConditions(filter)

	query := fmt.Sprintf(`
		SELECT p.employee_id, e.company_id, p.date, p.arrival_time, p.lunch_out_time, p.lunch_in_time, p.departure_time
		FROM provisions p
		JOIN employees e ON e.id = p.employee_id
		%s
	`, whereClause)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list time sheets: %w", err)
	}
	defer rows.Close()

	sheets := make([]provision.TimeSheet, 0)
	for rows.Next() {
		var t provision.TimeSheet
		if err := rows.Scan(&t.EmployeeID, &t.CompanyID, &t.Date, &t.Arrival, &t.LunchOut, &t.LunchIn, &t.Departure); err != nil {
			return nil, fmt.Errorf("failed to scan time sheet: %w", err)
		}
		sheets = append(sheets, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return sheets, nil
}

// ========================================
// HISTORY
// ========================================

// AppendHistory implements provision.HistoryRepository.
func (r *provisionRepositoryImpl) AppendHistory(ctx context.Context, entry provision.HistoryEntry) (provision.HistoryEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH inserted AS (
			INSERT INTO provision_history (provision_id, previous_status, new_status, validated_by, notes)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, created_at, validated_by
		)
		SELECT i.id, i.created_at, NULLIF(TRIM(u.first_name || ' ' || u.last_name), '')
		FROM inserted i
		LEFT JOIN users u ON u.id = i.validated_by
	`

	err := q.QueryRow(ctx, query,
		entry.ProvisionID, string(entry.PreviousStatus), string(entry.NewStatus), entry.ValidatedBy, entry.Notes,
	).Scan(&entry.ID, &entry.CreatedAt, &entry.ValidatorName)
	if err != nil {
		if isForeignKeyViolation(err) {
			return provision.HistoryEntry{}, provision.ErrInvalidReference
		}
		return provision.HistoryEntry{}, fmt.Errorf("failed to append status history: %w", err)
	}

	return entry, nil
}

// ListHistory implements provision.HistoryRepository.
func (r *provisionRepositoryImpl) ListHistory(ctx context.Context, provisionID string) ([]provision.HistoryEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT h.id, h.provision_id, h.previous_status, h.new_status, h.validated_by, h.notes, h.created_at,
			NULLIF(TRIM(u.first_name || ' ' || u.last_name), '')
		FROM provision_history h
		LEFT JOIN users u ON u.id = h.validated_by
		WHERE h.provision_id = $1
		ORDER BY h.created_at ASC, h.id ASC
	`

	rows, err := q.Query(ctx, query, provisionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list status history: %w", err)
	}
	defer rows.Close()

	entries := make([]provision.HistoryEntry, 0)
	for rows.Next() {
		var h provision.HistoryEntry
		err := rows.Scan(
			&h.ID, &h.ProvisionID, &h.PreviousStatus, &h.NewStatus, &h.ValidatedBy, &h.Notes, &h.CreatedAt,
			&h.ValidatorName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan status history: %w", err)
		}
		entries = append(entries, h)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return entries, nil
}
