package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/terceiro-labs/provision-backend/internal/domain/master/location"
	"github.com/terceiro-labs/provision-backend/internal/pkg/database"
)

// ========================================
// STATES
// ========================================

type stateRepositoryImpl struct {
	db *database.DB
}

func NewStateRepository(db *database.DB) location.StateRepository {
	return &stateRepositoryImpl{db: db}
}

// Create implements location.StateRepository.
func (r *stateRepositoryImpl) Create(ctx context.Context, s location.State) (location.State, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO states (name, code, active, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING id, name, code, active, created_at, updated_at
	`

	var result location.State
	err := q.QueryRow(ctx, query, s.Name, s.Code, s.Active).Scan(
		&result.ID, &result.Name, &result.Code, &result.Active, &result.CreatedAt, &result.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return location.State{}, location.ErrStateCodeExists
		}
		return location.State{}, fmt.Errorf("failed to create state: %w", err)
	}

	return result, nil
}

// GetByID implements location.StateRepository.
func (r *stateRepositoryImpl) GetByID(ctx context.Context, id string) (location.State, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, code, active, created_at, updated_at
		FROM states
		WHERE id = $1
	`

	var result location.State
	err := q.QueryRow(ctx, query, id).Scan(
		&result.ID, &result.Name, &result.Code, &result.Active, &result.CreatedAt, &result.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return location.State{}, location.ErrStateNotFound
		}
		return location.State{}, fmt.Errorf("failed to get state: %w", err)
	}

	return result, nil
}

// List implements location.StateRepository.
func (r *stateRepositoryImpl) List(ctx context.Context, filter location.StateFilter) ([]location.State, error) {
	q := GetQuerier(ctx, r.db)

	var conditions []string
	var args []interface{}
	argIdx := 1

	if filter.Search != nil && *filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(name ILIKE $%d OR code ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+*filter.Search+"%")
		argIdx++
	}
	if filter.Active != nil {
		conditions = append(conditions, fmt.Sprintf("active = $%d", argIdx))
		args = append(args, *filter.Active)
		argIdx++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf(`
		SELECT id, name, code, active, created_at, updated_at
		FROM states
		%s
		ORDER BY name ASC
	`, whereClause)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list states: %w", err)
	}
	defer rows.Close()

	states := make([]location.State, 0)
	for rows.Next() {
		var s location.State
		if err := rows.Scan(&s.ID, &s.Name, &s.Code, &s.Active, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan state: %w", err)
		}
		states = append(states, s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return states, nil
}

// Update implements location.StateRepository.
func (r *stateRepositoryImpl) Update(ctx context.Context, s location.State) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE states
		SET name = $1, code = $2, active = $3, updated_at = NOW()
		WHERE id = $4
	`

	commandTag, err := q.Exec(ctx, query, s.Name, s.Code, s.Active, s.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return location.ErrStateCodeExists
		}
		return fmt.Errorf("failed to update state: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return location.ErrStateNotFound
	}

	return nil
}

// Delete implements location.StateRepository.
func (r *stateRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM states WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return location.ErrStateInUse
		}
		return fmt.Errorf("failed to delete state: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return location.ErrStateNotFound
	}

	return nil
}

// ========================================
// CITIES
// ========================================

type cityRepositoryImpl struct {
	db *database.DB
}

func NewCityRepository(db *database.DB) location.CityRepository {
	return &cityRepositoryImpl{db: db}
}

// Create implements location.CityRepository.
func (r *cityRepositoryImpl) Create(ctx context.Context, c location.City) (location.City, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO cities (name, state_id, ibge_code, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, name, state_id, ibge_code, active, created_at, updated_at
	`

	var result location.City
	err := q.QueryRow(ctx, query, c.Name, c.StateID, c.IBGECode, c.Active).Scan(
		&result.ID, &result.Name, &result.StateID, &result.IBGECode, &result.Active, &result.CreatedAt, &result.UpdatedAt,
	)
	if err != nil {
		return location.City{}, mapCityError(err, "failed to create city")
	}

	return result, nil
}

// GetByID implements location.CityRepository.
func (r *cityRepositoryImpl) GetByID(ctx context.Context, id string) (location.City, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT c.id, c.name, c.state_id, c.ibge_code, c.active, c.created_at, c.updated_at,
			s.name, s.code
		FROM cities c
		JOIN states s ON s.id = c.state_id
		WHERE c.id = $1
	`

	var result location.City
	err := q.QueryRow(ctx, query, id).Scan(
		&result.ID, &result.Name, &result.StateID, &result.IBGECode, &result.Active, &result.CreatedAt, &result.UpdatedAt,
		&result.StateName, &result.StateCode,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return location.City{}, location.ErrCityNotFound
		}
		return location.City{}, fmt.Errorf("failed to get city: %w", err)
	}

	return result, nil
}

// List implements location.CityRepository.
func (r *cityRepositoryImpl) List(ctx context.Context, filter location.CityFilter) ([]location.City, int64, error) {
	q := GetQuerier(ctx, r.db)

	var conditions []string
	var args []interface{}
	argIdx := 1

	if filter.StateID != nil {
		conditions = append(conditions, fmt.Sprintf("c.state_id = $%d", argIdx))
		args = append(args, *filter.StateID)
		argIdx++
	}
	if filter.Search != nil && *filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("c.name ILIKE $%d", argIdx))
		args = append(args, "%"+*filter.Search+"%")
		argIdx++
	}
	if filter.Active != nil {
		conditions = append(conditions, fmt.Sprintf("c.active = $%d", argIdx))
		args = append(args, *filter.Active)
		argIdx++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM cities c %s`, whereClause)
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count cities: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf(`
		SELECT c.id, c.name, c.state_id, c.ibge_code, c.active, c.created_at, c.updated_at,
			s.name, s.code
		FROM cities c
		JOIN states s ON s.id = c.state_id
		%s
		ORDER BY s.code ASC, c.name ASC
		LIMIT $%d OFFSET $%d
	`, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list cities: %w", err)
	}
	defer rows.Close()

	cities := make([]location.City, 0)
	for rows.Next() {
		var c location.City
		err := rows.Scan(
			&c.ID, &c.Name, &c.StateID, &c.IBGECode, &c.Active, &c.CreatedAt, &c.UpdatedAt,
			&c.StateName, &c.StateCode,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan city: %w", err)
		}
		cities = append(cities, c)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}

	return cities, total, nil
}

// Update implements location.CityRepository.
func (r *cityRepositoryImpl) Update(ctx context.Context, c location.City) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE cities
		SET name = $1, state_id = $2, ibge_code = $3, active = $4, updated_at = NOW()
		WHERE id = $5
	`

	commandTag, err := q.Exec(ctx, query, c.Name, c.StateID, c.IBGECode, c.Active, c.ID)
	if err != nil {
		return mapCityError(err, "failed to update city")
	}

	if commandTag.RowsAffected() == 0 {
		return location.ErrCityNotFound
	}

	return nil
}

// Delete implements location.CityRepository.
func (r *cityRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM cities WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return location.ErrCityInUse
		}
		return fmt.Errorf("failed to delete city: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return location.ErrCityNotFound
	}

	return nil
}

func mapCityError(err error, msg string) error {
	switch {
	case isUniqueViolation(err):
		return location.ErrCityExists
	case isForeignKeyViolation(err):
		return location.ErrInvalidState
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// ========================================
// SERVICE LOCATIONS
// ========================================

type locationRepositoryImpl struct {
	db *database.DB
}

func NewLocationRepository(db *database.DB) location.LocationRepository {
	return &locationRepositoryImpl{db: db}
}

const locationSelect = `
	SELECT l.id, l.name, l.city_id, l.address, l.cep, l.latitude, l.longitude, l.notes, l.active,
		l.created_at, l.updated_at, c.name, s.code
	FROM service_locations l
	JOIN cities c ON c.id = l.city_id
	JOIN states s ON s.id = c.state_id
`

func scanLocation(row pgx.Row, l *location.Location) error {
	return row.Scan(
		&l.ID, &l.Name, &l.CityID, &l.Address, &l.CEP, &l.Latitude, &l.Longitude, &l.Notes, &l.Active,
		&l.CreatedAt, &l.UpdatedAt, &l.CityName, &l.StateCode,
	)
}

// Create implements location.LocationRepository.
func (r *locationRepositoryImpl) Create(ctx context.Context, l location.Location) (location.Location, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO service_locations (name, city_id, address, cep, latitude, longitude, notes, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	result := l
	err := q.QueryRow(ctx, query,
		l.Name, l.CityID, l.Address, l.CEP, l.Latitude, l.Longitude, l.Notes, l.Active,
	).Scan(&result.ID, &result.CreatedAt, &result.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return location.Location{}, location.ErrInvalidCity
		}
		return location.Location{}, fmt.Errorf("failed to create service location: %w", err)
	}

	return result, nil
}

// GetByID implements location.LocationRepository.
func (r *locationRepositoryImpl) GetByID(ctx context.Context, id string) (location.Location, error) {
	q := GetQuerier(ctx, r.db)

	var result location.Location
	err := scanLocation(q.QueryRow(ctx, locationSelect+` WHERE l.id = $1`, id), &result)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return location.Location{}, location.ErrLocationNotFound
		}
		return location.Location{}, fmt.Errorf("failed to get service location: %w", err)
	}

	return result, nil
}

// List implements location.LocationRepository.
func (r *locationRepositoryImpl) List(ctx context.Context, filter location.LocationFilter) ([]location.Location, int64, error) {
	q := GetQuerier(ctx, r.db)

	var conditions []string
	var args []interface{}
	argIdx := 1

	if filter.CityID != nil {
		conditions = append(conditions, fmt.Sprintf("l.city_id = $%d", argIdx))
		args = append(args, *filter.CityID)
		argIdx++
	}
	if filter.Search != nil && *filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(l.name ILIKE $%d OR l.address ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+*filter.Search+"%")
		argIdx++
	}
	if filter.Active != nil {
		conditions = append(conditions, fmt.Sprintf("l.active = $%d", argIdx))
		args = append(args, *filter.Active)
		argIdx++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM service_locations l %s`, whereClause)
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count service locations: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf(`%s %s ORDER BY l.name ASC LIMIT $%d OFFSET $%d`, locationSelect, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list service locations: %w", err)
	}
	defer rows.Close()

	locations := make([]location.Location, 0)
	for rows.Next() {
		var l location.Location
		if err := scanLocation(rows, &l); err != nil {
			return nil, 0, fmt.Errorf("failed to scan service location: %w", err)
		}
		locations = append(locations, l)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}

	return locations, total, nil
}

// Update implements location.LocationRepository.
func (r *locationRepositoryImpl) Update(ctx context.Context, l location.Location) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE service_locations
		SET name = $1, city_id = $2, address = $3, cep = $4, latitude = $5, longitude = $6,
			notes = $7, active = $8, updated_at = NOW()
		WHERE id = $9
	`

	commandTag, err := q.Exec(ctx, query,
		l.Name, l.CityID, l.Address, l.CEP, l.Latitude, l.Longitude, l.Notes, l.Active, l.ID,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return location.ErrInvalidCity
		}
		return fmt.Errorf("failed to update service location: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return location.ErrLocationNotFound
	}

	return nil
}

// Delete implements location.LocationRepository.
func (r *locationRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM service_locations WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return location.ErrLocationInUse
		}
		return fmt.Errorf("failed to delete service location: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return location.ErrLocationNotFound
	}

	return nil
}
