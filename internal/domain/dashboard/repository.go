package dashboard

import "context"

// DashboardRepository runs read-only aggregate queries.
type DashboardRepository interface {
	// EmployeeCounts counts active and inactive employees, optionally of one company.
	EmployeeCounts(ctx context.Context, companyID *string) (EmployeeCounts, error)

	// StatusCounts counts provisions in scope per status.
	StatusCounts(ctx context.Context, scope Scope) ([]StatusCount, error)

	// ApprovedTotals sums values of approved provisions in scope.
	ApprovedTotals(ctx context.Context, scope Scope) (ValueTotals, error)

	// DailyVolume counts provisions in scope and sums their values per day, oldest first.
	DailyVolume(ctx context.Context, scope Scope) ([]DailyVolume, error)

	// EmployeesPerCompany counts active employees per company, largest first.
	EmployeesPerCompany(ctx context.Context, limit int) ([]CompanyCount, error)

	// ApprovedByCompany groups approved values per company, largest total first. limit <= 0 means no limit.
	ApprovedByCompany(ctx context.Context, scope Scope, limit int) ([]CompanyTotals, error)

	// ApprovedByEmployee groups approved values per employee, largest total first.
	ApprovedByEmployee(ctx context.Context, scope Scope, limit int) ([]EmployeeTotals, error)
}
