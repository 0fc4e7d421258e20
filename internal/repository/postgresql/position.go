package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/terceiro-labs/provision-backend/internal/domain/master/position"
	"github.com/terceiro-labs/provision-backend/internal/pkg/database"
)

type positionRepositoryImpl struct {
	db *database.DB
}

func NewPositionRepository(db *database.DB) position.PositionRepository {
	return &positionRepositoryImpl{db: db}
}

// Create implements position.PositionRepository.
func (r *positionRepositoryImpl) Create(ctx context.Context, p position.Position) (position.Position, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO positions (name, description, level, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, name, description, level, active, created_at, updated_at
	`

	var result position.Position
	err := q.QueryRow(ctx, query, p.Name, p.Description, string(p.Level), p.Active).Scan(
		&result.ID,
		&result.Name,
		&result.Description,
		&result.Level,
		&result.Active,
		&result.CreatedAt,
		&result.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return position.Position{}, position.ErrPositionNameExists
		}
		return position.Position{}, fmt.Errorf("failed to create position: %w", err)
	}

	return result, nil
}

// GetByID implements position.PositionRepository.
func (r *positionRepositoryImpl) GetByID(ctx context.Context, id string) (position.Position, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, description, level, active, created_at, updated_at
		FROM positions
		WHERE id = $1
	`

	var result position.Position
	err := q.QueryRow(ctx, query, id).Scan(
		&result.ID,
		&result.Name,
		&result.Description,
		&result.Level,
		&result.Active,
		&result.CreatedAt,
		&result.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return position.Position{}, position.ErrPositionNotFound
		}
		return position.Position{}, fmt.Errorf("failed to get position: %w", err)
	}

	return result, nil
}

// List implements position.PositionRepository.
func (r *positionRepositoryImpl) List(ctx context.Context, filter position.PositionFilter) ([]position.Position, error) {
	q := GetQuerier(ctx, r.db)

	var conditions []string
	var args []interface{}
	argIdx := 1

	if filter.Level != nil {
		conditions = append(conditions, fmt.Sprintf("level = $%d", argIdx))
		args = append(args, *filter.Level)
		argIdx++
	}
	if filter.Active != nil {
		conditions = append(conditions, fmt.Sprintf("active = $%d", argIdx))
		args = append(args, *filter.Active)
		argIdx++
	}
	if filter.Search != nil && *filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("name ILIKE $%d", argIdx))
		args = append(args, "%"+*filter.Search+"%")
		argIdx++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf(`
		SELECT id, name, description, level, active, created_at, updated_at
		FROM positions
		%s
		ORDER BY name ASC
	`, whereClause)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list positions: %w", err)
	}
	defer rows.Close()

	positions := make([]position.Position, 0)
	for rows.Next() {
		var p position.Position
		err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Description,
			&p.Level,
			&p.Active,
			&p.CreatedAt,
			&p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan position: %w", err)
		}
		positions = append(positions, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return positions, nil
}

// Update implements position.PositionRepository.
func (r *positionRepositoryImpl) Update(ctx context.Context, p position.Position) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE positions
		SET name = $1, description = $2, level = $3, active = $4, updated_at = NOW()
		WHERE id = $5
	`

	commandTag, err := q.Exec(ctx, query, p.Name, p.Description, string(p.Level), p.Active, p.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return position.ErrPositionNameExists
		}
		return fmt.Errorf("failed to update position: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return position.ErrPositionNotFound
	}

	return nil
}

// Delete implements position.PositionRepository.
func (r *positionRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `DELETE FROM positions WHERE id = $1`

	commandTag, err := q.Exec(ctx, query, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return position.ErrPositionInUse
		}
		return fmt.Errorf("failed to delete position: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return position.ErrPositionNotFound
	}

	return nil
}
