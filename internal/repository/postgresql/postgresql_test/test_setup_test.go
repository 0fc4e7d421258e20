package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/terceiro-labs/provision-backend/internal/pkg/database"
)

var (
	setupOnce sync.Once
	testDB    *database.DB
	setupErr  error
)

// openTestDB connects to TEST_DATABASE_URL and applies the schema once per
// test binary. Tests are skipped when the variable is unset.
func openTestDB(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping database integration test")
	}

	setupOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		testDB, setupErr = database.NewPostgreSQLDB(ctx, dsn, database.PoolOptions{MaxConns: 5, MinConns: 1})
		if setupErr != nil {
			return
		}
		setupErr = applyMigrations(ctx, testDB)
	})
	require.NoError(t, setupErr)

	truncateAllTables(t, testDB)
	return testDB
}

func applyMigrations(ctx context.Context, db *database.DB) error {
	_, file, _, _ := runtime.Caller(0)
	dir := filepath.Join(filepath.Dir(file), "..", "..", "..", "..", "migrations")

	paths, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		return err
	}
	for _, path := range paths {
		sql, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if _, err := db.Exec(ctx, string(sql)); err != nil {
			return fmt.Errorf("failed to apply %s: %w", filepath.Base(path), err)
		}
	}
	return nil
}

// truncateAllTables removes every row so each test starts empty.
func truncateAllTables(t *testing.T, db *database.DB) {
	t.Helper()

	tables := []string{
		"provision_history",
		"provisions",
		"punches",
		"saved_reports",
		"employees",
		"managers",
		"positions",
		"companies",
		"service_locations",
		"cities",
		"states",
		"refresh_tokens",
		"users",
	}

	ctx := context.Background()
	tx, err := db.BeginTx(ctx)
	require.NoError(t, err)
	defer tx.Rollback(ctx)

	for _, table := range tables {
		_, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		require.NoError(t, err, "failed to truncate table %s", table)
	}

	require.NoError(t, tx.Commit(ctx))
}

// fixture holds one of everything a service provision references.
type fixture struct {
	EmployeeUserID string
	ManagerUserID  string
	EmployeeID     string
	ManagerID      string
	CompanyID      string
	LocationID     string
	PositionID     string
}

func seedFixture(t *testing.T, db *database.DB) fixture {
	t.Helper()
	ctx := context.Background()

	var f fixture
	var stateID, cityID string

	mustScan(t, db.QueryRow(ctx, `INSERT INTO states (name, code) VALUES ('São Paulo', 'SP') RETURNING id`), &stateID)
	mustScan(t, db.QueryRow(ctx,
		`INSERT INTO cities (name, state_id, ibge_code) VALUES ('São Paulo', $1, '3550308') RETURNING id`, stateID), &cityID)
	mustScan(t, db.QueryRow(ctx, `
		INSERT INTO service_locations (name, city_id, address, latitude, longitude)
		VALUES ('Paulista Office', $1, 'Av. Paulista, 1000', -23.5505, -46.6333)
		RETURNING id`, cityID), &f.LocationID)
	mustScan(t, db.QueryRow(ctx, `
		INSERT INTO companies (legal_name, trade_name, cnpj, address, city_id)
		VALUES ('Acme Serviços Ltda', 'Acme', '11.222.333/0001-81', 'Rua A, 1', $1)
		RETURNING id`, cityID), &f.CompanyID)
	mustScan(t, db.QueryRow(ctx,
		`INSERT INTO positions (name, level) VALUES ('Technician', 'pleno') RETURNING id`), &f.PositionID)

	f.ManagerUserID = insertUser(t, db, "maria", "Maria", "Souza")
	f.EmployeeUserID = insertUser(t, db, "joao", "João", "Silva")

	mustScan(t, db.QueryRow(ctx, `
		INSERT INTO managers (user_id, company_id, job_title)
		VALUES ($1, $2, 'Supervisor') RETURNING id`, f.ManagerUserID, f.CompanyID), &f.ManagerID)
	mustScan(t, db.QueryRow(ctx, `
		INSERT INTO employees (user_id, company_id, position_id, registration, hire_date)
		VALUES ($1, $2, $3, 'EMP-001', '2023-01-10') RETURNING id`,
		f.EmployeeUserID, f.CompanyID, f.PositionID), &f.EmployeeID)

	return f
}

func insertUser(t *testing.T, db *database.DB, username, first, last string) string {
	t.Helper()

	var id string
	mustScan(t, db.QueryRow(context.Background(), `
		INSERT INTO users (username, email, first_name, last_name, password_hash)
		VALUES ($1, $1 || '@example.com', $2, $3, 'x') RETURNING id`, username, first, last), &id)
	return id
}

func mustScan(t *testing.T, row interface{ Scan(dest ...any) error }, dest ...any) {
	t.Helper()
	require.NoError(t, row.Scan(dest...))
}
