package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terceiro-labs/provision-backend/internal/domain/provision"
)

func TestDashboardFilterScope(t *testing.T) {
	start, end := "2024-01-01", "2024-01-31"
	f := DashboardFilter{StartDate: &start, EndDate: &end}
	require.NoError(t, f.Validate())

	scope := f.Scope()
	require.NotNil(t, scope.StartDate)
	require.NotNil(t, scope.EndDate)
	assert.Equal(t, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), *scope.EndDate)

	approved := f.ApprovedProvisions()
	require.NotNil(t, approved.Status)
	assert.Equal(t, string(provision.StatusApproved), *approved.Status)
	assert.Equal(t, &start, approved.StartDate)
}

func TestDashboardFilterRejectsInvertedRange(t *testing.T) {
	start, end := "2024-02-01", "2024-01-01"
	f := DashboardFilter{StartDate: &start, EndDate: &end}
	assert.Error(t, f.Validate())
}

func TestChartsFilterDefaults(t *testing.T) {
	f := ChartsFilter{}
	require.NoError(t, f.Validate())
	assert.Equal(t, DefaultPeriodDays, f.Period)

	now := time.Date(2024, 3, 31, 15, 4, 5, 0, time.UTC)
	scope := f.Scope(now)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), *scope.StartDate)
	assert.Nil(t, scope.EndDate)

	bad := ChartsFilter{Period: 1000}
	assert.Error(t, bad.Validate())
}
