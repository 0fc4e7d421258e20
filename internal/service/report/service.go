package report

import (
	"context"
	"fmt"

	"github.com/terceiro-labs/provision-backend/internal/domain/report"
	"github.com/terceiro-labs/provision-backend/internal/pkg/jwt"
	"github.com/terceiro-labs/provision-backend/internal/pkg/pagination"
)

type ReportServiceImpl struct {
	report.ReportRepository
}

func NewReportService(reportRepo report.ReportRepository) report.ReportService {
	return &ReportServiceImpl{
		ReportRepository: reportRepo,
	}
}

// CreateReport implements report.ReportService.
func (s *ReportServiceImpl) CreateReport(ctx context.Context, req report.ReportRequest) (report.ReportResponse, error) {
	claims, err := jwt.FromContext(ctx)
	if err != nil {
		return report.ReportResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return report.ReportResponse{}, err
	}

	created, err := s.ReportRepository.Create(ctx, req.Report(claims.UserID))
	if err != nil {
		return report.ReportResponse{}, err
	}
	return s.GetReport(ctx, created.ID)
}

// GetReport implements report.ReportService.
func (s *ReportServiceImpl) GetReport(ctx context.Context, id string) (report.ReportResponse, error) {
	claims, err := jwt.FromContext(ctx)
	if err != nil {
		return report.ReportResponse{}, err
	}

	saved, err := s.ReportRepository.GetByID(ctx, id)
	if err != nil {
		return report.ReportResponse{}, err
	}
	if !saved.VisibleTo(claims.UserID, claims.IsAdmin()) {
		return report.ReportResponse{}, report.ErrReportNotFound
	}
	return report.ToResponse(saved), nil
}

// ListReports implements report.ReportService.
func (s *ReportServiceImpl) ListReports(ctx context.Context, filter report.ReportFilter) (report.ListReportResponse, error) {
	claims, err := jwt.FromContext(ctx)
	if err != nil {
		return report.ListReportResponse{}, err
	}
	filter.UserID = claims.UserID
	filter.All = claims.IsAdmin()

	if err := filter.Validate(); err != nil {
		return report.ListReportResponse{}, err
	}

	reports, total, err := s.ReportRepository.List(ctx, filter)
	if err != nil {
		return report.ListReportResponse{}, fmt.Errorf("failed to list reports: %w", err)
	}

	responses := make([]report.ReportResponse, 0, len(reports))
	for _, r := range reports {
		responses = append(responses, report.ToResponse(r))
	}
	return report.ListReportResponse{
		Page:    pagination.New(total, filter.Page, filter.Limit),
		Reports: responses,
	}, nil
}

// UpdateReport implements report.ReportService. Ownership never changes.
func (s *ReportServiceImpl) UpdateReport(ctx context.Context, req report.ReportRequest) (report.ReportResponse, error) {
	claims, err := jwt.FromContext(ctx)
	if err != nil {
		return report.ReportResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return report.ReportResponse{}, err
	}

	existing, err := s.editable(ctx, claims, req.ID)
	if err != nil {
		return report.ReportResponse{}, err
	}

	if err := s.ReportRepository.Update(ctx, req.Report(existing.UserID)); err != nil {
		return report.ReportResponse{}, err
	}
	return s.GetReport(ctx, req.ID)
}

// DeleteReport implements report.ReportService.
func (s *ReportServiceImpl) DeleteReport(ctx context.Context, id string) error {
	claims, err := jwt.FromContext(ctx)
	if err != nil {
		return err
	}

	if _, err := s.editable(ctx, claims, id); err != nil {
		return err
	}
	return s.ReportRepository.Delete(ctx, id)
}

func (s *ReportServiceImpl) editable(ctx context.Context, claims jwt.Claims, id string) (report.SavedReport, error) {
	existing, err := s.ReportRepository.GetByID(ctx, id)
	if err != nil {
		return report.SavedReport{}, err
	}
	if !existing.VisibleTo(claims.UserID, claims.IsAdmin()) {
		return report.SavedReport{}, report.ErrReportNotFound
	}
	if !existing.EditableBy(claims.UserID, claims.IsAdmin()) {
		return report.SavedReport{}, report.ErrReportForbidden
	}
	return existing, nil
}
