package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/terceiro-labs/provision-backend/internal/domain/user"
	"github.com/terceiro-labs/provision-backend/internal/pkg/database"
)

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepositoryImpl{db: db}
}

// userSelect joins the profiles that decide the role carried in tokens.
const userSelect = `
	SELECT u.id, u.username, u.email, u.first_name, u.last_name, u.cpf, u.phone, u.photo_url,
		u.password_hash, u.is_active, u.is_staff, u.last_login, u.created_at, u.updated_at,
		e.id, m.id, COALESCE(e.company_id, m.company_id)
	FROM users u
	LEFT JOIN employees e ON e.user_id = u.id
	LEFT JOIN managers m ON m.user_id = u.id
`

func scanUser(row pgx.Row, u *user.User) error {
	return row.Scan(
		&u.ID, &u.Username, &u.Email, &u.FirstName, &u.LastName, &u.CPF, &u.Phone, &u.PhotoURL,
		&u.PasswordHash, &u.IsActive, &u.IsStaff, &u.LastLogin, &u.CreatedAt, &u.UpdatedAt,
		&u.EmployeeID, &u.ManagerID, &u.CompanyID,
	)
}

func mapUserError(err error, msg string) error {
	if isUniqueViolation(err) {
		if constraintOf(err) == "users_cpf_key" {
			return user.ErrCPFExists
		}
		return user.ErrUsernameExists
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Create implements user.UserRepository.
func (r *userRepositoryImpl) Create(ctx context.Context, newUser user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO users (
			username, email, first_name, last_name, cpf, phone, photo_url,
			password_hash, is_active, is_staff, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	created := newUser
	err := q.QueryRow(ctx, query,
		newUser.Username,
		newUser.Email,
		newUser.FirstName,
		newUser.LastName,
		newUser.CPF,
		newUser.Phone,
		newUser.PhotoURL,
		newUser.PasswordHash,
		newUser.IsActive,
		newUser.IsStaff,
	).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return user.User{}, mapUserError(err, "failed to create user")
	}

	return created, nil
}

// GetByID implements user.UserRepository.
func (r *userRepositoryImpl) GetByID(ctx context.Context, id string) (user.User, error) {
	return r.getOne(ctx, "u.id = $1", id)
}

// GetByUsername implements user.UserRepository. The lookup ignores case.
func (r *userRepositoryImpl) GetByUsername(ctx context.Context, username string) (user.User, error) {
	return r.getOne(ctx, "LOWER(u.username) = LOWER($1)", username)
}

func (r *userRepositoryImpl) getOne(ctx context.Context, condition, arg string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	var found user.User
	if err := scanUser(q.QueryRow(ctx, userSelect+" WHERE "+condition, arg), &found); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user: %w", err)
	}

	return found, nil
}

// List implements user.UserRepository.
func (r *userRepositoryImpl) List(ctx context.Context, filter user.UserFilter) ([]user.User, int64, error) {
	q := GetQuerier(ctx, r.db)

	var conditions []string
	var args []interface{}
	argIdx := 1

	if filter.Search != nil && *filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(u.username ILIKE $%d OR u.first_name ILIKE $%d OR u.last_name ILIKE $%d OR u.email ILIKE $%d)",
			argIdx, argIdx, argIdx, argIdx))
		args = append(args, "%"+*filter.Search+"%")
		argIdx++
	}
	if filter.IsActive != nil {
		conditions = append(conditions, fmt.Sprintf("u.is_active = $%d", argIdx))
		args = append(args, *filter.IsActive)
		argIdx++
	}
	if filter.IsStaff != nil {
		conditions = append(conditions, fmt.Sprintf("u.is_staff = $%d", argIdx))
		args = append(args, *filter.IsStaff)
		argIdx++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM users u %s`, whereClause)
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf(`%s %s ORDER BY u.username ASC LIMIT $%d OFFSET $%d`, userSelect, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := make([]user.User, 0)
	for rows.Next() {
		var u user.User
		if err := scanUser(rows, &u); err != nil {
			return nil, 0, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}

	return users, total, nil
}

// Update implements user.UserRepository. Only profile fields change here;
// credentials and flags have their own methods.
func (r *userRepositoryImpl) Update(ctx context.Context, u user.User) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users
		SET email = $1, first_name = $2, last_name = $3, cpf = $4, phone = $5, photo_url = $6, updated_at = NOW()
		WHERE id = $7
	`

	commandTag, err := q.Exec(ctx, query, u.Email, u.FirstName, u.LastName, u.CPF, u.Phone, u.PhotoURL, u.ID)
	if err != nil {
		return mapUserError(err, "failed to update user")
	}

	if commandTag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	return nil
}

// UpdatePassword implements user.UserRepository.
func (r *userRepositoryImpl) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	return r.exec(ctx, `UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2`, passwordHash, userID)
}

// SetActive implements user.UserRepository.
func (r *userRepositoryImpl) SetActive(ctx context.Context, userID string, active bool) error {
	return r.exec(ctx, `UPDATE users SET is_active = $1, updated_at = NOW() WHERE id = $2`, active, userID)
}

// SetStaff implements user.UserRepository.
func (r *userRepositoryImpl) SetStaff(ctx context.Context, userID string, staff bool) error {
	return r.exec(ctx, `UPDATE users SET is_staff = $1, updated_at = NOW() WHERE id = $2`, staff, userID)
}

// TouchLastLogin implements user.UserRepository.
func (r *userRepositoryImpl) TouchLastLogin(ctx context.Context, userID string) error {
	return r.exec(ctx, `UPDATE users SET last_login = NOW() WHERE id = $1`, userID)
}

func (r *userRepositoryImpl) exec(ctx context.Context, query string, args ...interface{}) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	return nil
}
