package dashboard

import "context"

// DashboardService combines aggregate queries, run concurrently.
type DashboardService interface {
	// GetGeneral returns employee, provision and financial headline numbers.
	GetGeneral(ctx context.Context, filter DashboardFilter) (GeneralResponse, error)

	// GetCharts returns chart series for the last filter.Period days.
	GetCharts(ctx context.Context, filter ChartsFilter) (ChartsResponse, error)

	// GetFinancial returns approved-only totals, per company and per employee (top 20).
	GetFinancial(ctx context.Context, filter DashboardFilter) (FinancialResponse, error)
}
