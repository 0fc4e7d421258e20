package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terceiro-labs/provision-backend/internal/domain/provision"
	"github.com/terceiro-labs/provision-backend/internal/pkg/timeofday"
	"github.com/terceiro-labs/provision-backend/internal/repository/postgresql"
)

func newRecord(f fixture, date string) provision.Record {
	d, _ := time.Parse("2006-01-02", date)
	lunchOut, lunchIn := timeofday.New(12, 0, 0), timeofday.New(13, 0, 0)
	return provision.Record{
		EmployeeID: f.EmployeeID,
		LocationID: f.LocationID,
		ManagerID:  f.ManagerID,
		Date:       d,
		Arrival:    timeofday.New(8, 0, 0),
		LunchOut:   &lunchOut,
		LunchIn:    &lunchIn,
		Departure:  timeofday.New(17, 0, 0),
		Status:     provision.StatusPending,
		Value:      decimal.RequireFromString("200.00"),
		Notes:      "quarterly maintenance",
		CreatedBy:  &f.EmployeeUserID,
	}
}

func TestProvisionRepository_CreateAndGet(t *testing.T) {
	db := openTestDB(t)
	f := seedFixture(t, db)
	repo := postgresql.NewProvisionRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, newRecord(f, "2024-03-05"))
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	detail, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)

	assert.Equal(t, "João Silva", detail.EmployeeName)
	assert.Equal(t, "EMP-001", detail.EmployeeRegistration)
	assert.Equal(t, f.CompanyID, detail.CompanyID)
	assert.Equal(t, "Acme", detail.CompanyName)
	assert.Equal(t, "Paulista Office", detail.LocationName)
	assert.Equal(t, "São Paulo", detail.CityName)
	assert.Equal(t, "Maria Souza", detail.ManagerName)
	assert.Equal(t, "08:00:00", detail.Arrival.String())
	require.NotNil(t, detail.LunchOut)
	assert.Equal(t, "12:00:00", detail.LunchOut.String())
	assert.True(t, decimal.RequireFromString("200").Equal(detail.Value))
	assert.Equal(t, provision.StatusPending, detail.Status)

	// Without a trade name the legal name is shown
	_, err = db.Exec(ctx, `UPDATE companies SET trade_name = NULL WHERE id = $1`, f.CompanyID)
	require.NoError(t, err)
	detail, err = repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme Serviços Ltda", detail.CompanyName)
	assert.Equal(t, 8*time.Hour, detail.WorkedDuration())
}

func TestProvisionRepository_DuplicateRecord(t *testing.T) {
	db := openTestDB(t)
	f := seedFixture(t, db)
	repo := postgresql.NewProvisionRepository(db)
	ctx := context.Background()

	_, err := repo.Create(ctx, newRecord(f, "2024-03-05"))
	require.NoError(t, err)

	_, err = repo.Create(ctx, newRecord(f, "2024-03-05"))
	assert.ErrorIs(t, err, provision.ErrDuplicateRecord)

	// Another date is a different visit
	_, err = repo.Create(ctx, newRecord(f, "2024-03-06"))
	assert.NoError(t, err)
}

func TestProvisionRepository_InvalidReference(t *testing.T) {
	db := openTestDB(t)
	f := seedFixture(t, db)
	repo := postgresql.NewProvisionRepository(db)

	rec := newRecord(f, "2024-03-05")
	rec.LocationID = "00000000-0000-0000-0000-000000000001"

	_, err := repo.Create(context.Background(), rec)
	assert.ErrorIs(t, err, provision.ErrInvalidReference)
}

func TestProvisionRepository_NotFound(t *testing.T) {
	db := openTestDB(t)
	repo := postgresql.NewProvisionRepository(db)
	ctx := context.Background()
	missing := "00000000-0000-0000-0000-000000000002"

	_, err := repo.GetByID(ctx, missing)
	assert.ErrorIs(t, err, provision.ErrProvisionNotFound)

	err = repo.UpdateStatus(ctx, missing, provision.StatusApproved)
	assert.ErrorIs(t, err, provision.ErrProvisionNotFound)
}

func TestProvisionRepository_TransitionHistory(t *testing.T) {
	db := openTestDB(t)
	f := seedFixture(t, db)
	repo := postgresql.NewProvisionRepository(db)
	history := postgresql.NewProvisionHistoryRepository(db)
	transactor := postgresql.NewTransactor(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, newRecord(f, "2024-03-05"))
	require.NoError(t, err)

	steps := []provision.Status{
		provision.StatusInReview,
		provision.StatusApproved,
		provision.StatusRejected,
		provision.StatusPending,
	}
	for _, target := range steps {
		err := transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
			rec, err := repo.GetForUpdate(txCtx, created.ID)
			if err != nil {
				return err
			}
			if err := repo.UpdateStatus(txCtx, rec.ID, target); err != nil {
				return err
			}
			_, err = history.AppendHistory(txCtx, provision.HistoryEntry{
				ProvisionID:    rec.ID,
				PreviousStatus: rec.Status,
				NewStatus:      target,
				ValidatedBy:    f.ManagerUserID,
			})
			return err
		})
		require.NoError(t, err)
	}

	entries, err := history.ListHistory(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, entries, len(steps))

	previous := provision.StatusPending
	for i, e := range entries {
		assert.Equal(t, previous, e.PreviousStatus, "entry %d", i)
		assert.Equal(t, steps[i], e.NewStatus, "entry %d", i)
		require.NotNil(t, e.ValidatorName)
		assert.Equal(t, "Maria Souza", *e.ValidatorName)
		previous = e.NewStatus
	}

	current, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, provision.StatusPending, current.Status)
}

func TestProvisionRepository_TransactionRollsBack(t *testing.T) {
	db := openTestDB(t)
	f := seedFixture(t, db)
	repo := postgresql.NewProvisionRepository(db)
	history := postgresql.NewProvisionHistoryRepository(db)
	transactor := postgresql.NewTransactor(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, newRecord(f, "2024-03-05"))
	require.NoError(t, err)

	err = transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := repo.UpdateStatus(txCtx, created.ID, provision.StatusApproved); err != nil {
			return err
		}
		// Unknown validator violates the foreign key
		_, err := history.AppendHistory(txCtx, provision.HistoryEntry{
			ProvisionID:    created.ID,
			PreviousStatus: provision.StatusPending,
			NewStatus:      provision.StatusApproved,
			ValidatedBy:    "00000000-0000-0000-0000-000000000003",
		})
		return err
	})
	require.ErrorIs(t, err, provision.ErrInvalidReference)

	current, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, provision.StatusPending, current.Status)

	entries, err := history.ListHistory(ctx, created.ID)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestProvisionRepository_ListAndSummary(t *testing.T) {
	db := openTestDB(t)
	f := seedFixture(t, db)
	repo := postgresql.NewProvisionRepository(db)
	ctx := context.Background()

	for i, date := range []string{"2024-03-01", "2024-03-02", "2024-03-03"} {
		rec := newRecord(f, date)
		rec.Value = decimal.NewFromInt(int64(100 * (i + 1)))
		created, err := repo.Create(ctx, rec)
		require.NoError(t, err)
		if i == 0 {
			require.NoError(t, repo.UpdateStatus(ctx, created.ID, provision.StatusApproved))
		}
	}

	filter := provision.ProvisionFilter{Page: 1, Limit: 2}
	details, total, err := repo.List(ctx, filter)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, details, 2)
	// Newest date first by default
	assert.Equal(t, "2024-03-03", details[0].Date.Format("2006-01-02"))

	start := "2024-03-02"
	details, total, err = repo.List(ctx, provision.ProvisionFilter{StartDate: &start, Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, details, 2)

	summary, err := repo.Summary(ctx, provision.ProvisionFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 3, summary.Total)
	assert.EqualValues(t, 1, summary.Approved)
	assert.EqualValues(t, 2, summary.Pending)
	assert.True(t, decimal.NewFromInt(600).Equal(summary.TotalValue))
	assert.True(t, decimal.NewFromInt(200).Equal(summary.AverageValue))
	require.Len(t, summary.TopCompanies, 1)
	assert.EqualValues(t, 3, summary.TopCompanies[0].Count)
}

func TestProvisionRepository_ListTimeSheetsOvernight(t *testing.T) {
	db := openTestDB(t)
	f := seedFixture(t, db)
	repo := postgresql.NewProvisionRepository(db)
	ctx := context.Background()

	rec := newRecord(f, "2024-03-05")
	rec.Arrival = timeofday.New(22, 0, 0)
	rec.Departure = timeofday.New(6, 0, 0)
	rec.LunchOut, rec.LunchIn = nil, nil
	_, err := repo.Create(ctx, rec)
	require.NoError(t, err)

	sheets, err := repo.ListTimeSheets(ctx, provision.ProvisionFilter{})
	require.NoError(t, err)
	require.Len(t, sheets, 1)
	assert.Nil(t, sheets[0].LunchOut)
	assert.Equal(t, f.CompanyID, sheets[0].CompanyID)
	assert.Equal(t, 8*time.Hour, sheets[0].WorkedDuration())
}
