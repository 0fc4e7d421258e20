package report

import "context"

type ReportService interface {
	CreateReport(ctx context.Context, req ReportRequest) (ReportResponse, error)
	GetReport(ctx context.Context, id string) (ReportResponse, error)
	ListReports(ctx context.Context, filter ReportFilter) (ListReportResponse, error)
	UpdateReport(ctx context.Context, req ReportRequest) (ReportResponse, error)
	DeleteReport(ctx context.Context, id string) error
}
