package report

import "context"

type ReportRepository interface {
	Create(ctx context.Context, report SavedReport) (SavedReport, error)
	GetByID(ctx context.Context, id string) (SavedReport, error)

	// List returns reports owned by filter.UserID plus every public report.
	// Admins (filter.All) see every report.
	List(ctx context.Context, filter ReportFilter) ([]SavedReport, int64, error)
	Update(ctx context.Context, report SavedReport) error
	Delete(ctx context.Context, id string) error
}
