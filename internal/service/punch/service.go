package punch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/terceiro-labs/provision-backend/internal/domain/punch"
	"github.com/terceiro-labs/provision-backend/internal/pkg/jwt"
	"github.com/terceiro-labs/provision-backend/internal/pkg/pagination"
	"github.com/terceiro-labs/provision-backend/internal/service/file"
)

type PunchServiceImpl struct {
	punch.PunchRepository
	fileService file.FileService
	now         func() time.Time
}

func NewPunchService(punchRepo punch.PunchRepository, fileService file.FileService) punch.PunchService {
	return &PunchServiceImpl{
		PunchRepository: punchRepo,
		fileService:     fileService,
		now:             time.Now,
	}
}

// CreatePunch implements punch.PunchService.
func (s *PunchServiceImpl) CreatePunch(ctx context.Context, req punch.CreatePunchRequest) (punch.PunchResponse, error) {
	claims, err := jwt.FromContext(ctx)
	if err != nil {
		return punch.PunchResponse{}, err
	}
	if claims.EmployeeID == "" {
		return punch.PunchResponse{}, punch.ErrNotEmployee
	}

	if err := req.Validate(); err != nil {
		return punch.PunchResponse{}, err
	}

	at := s.now()
	photoKey, err := s.fileService.UploadPunchPhoto(ctx, claims.EmployeeID, at, req.File)
	if err != nil {
		return punch.PunchResponse{}, err
	}

	p := punch.Punch{
		EmployeeID: claims.EmployeeID,
		PhotoURL:   photoKey,
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
		CreatedAt:  at,
	}
	if req.IPAddress != "" {
		p.IPAddress = &req.IPAddress
	}

	created, err := s.PunchRepository.Create(ctx, p)
	if err != nil {
		if delErr := s.fileService.DeleteFile(ctx, photoKey); delErr != nil {
			slog.Warn("Failed to delete orphaned punch photo", "key", photoKey, "error", delErr)
		}
		return punch.PunchResponse{}, err
	}

	slog.Info("Time clock punch registered", "punch_id", created.ID, "employee_id", created.EmployeeID)
	return s.GetPunch(ctx, created.ID)
}

// GetPunch implements punch.PunchService.
func (s *PunchServiceImpl) GetPunch(ctx context.Context, id string) (punch.PunchResponse, error) {
	claims, err := jwt.FromContext(ctx)
	if err != nil {
		return punch.PunchResponse{}, err
	}

	p, err := s.PunchRepository.GetByID(ctx, id)
	if err != nil {
		return punch.PunchResponse{}, err
	}
	if !claims.IsManager() && p.EmployeeID != claims.EmployeeID {
		return punch.PunchResponse{}, punch.ErrPunchNotFound
	}
	return s.render(p), nil
}

// ListPunches implements punch.PunchService.
func (s *PunchServiceImpl) ListPunches(ctx context.Context, filter punch.PunchFilter) (punch.ListPunchResponse, error) {
	if err := s.scopeFilter(ctx, &filter); err != nil {
		return punch.ListPunchResponse{}, err
	}
	if err := filter.Validate(); err != nil {
		return punch.ListPunchResponse{}, err
	}

	punches, total, err := s.PunchRepository.List(ctx, filter)
	if err != nil {
		return punch.ListPunchResponse{}, fmt.Errorf("failed to list punches: %w", err)
	}

	responses := make([]punch.PunchResponse, 0, len(punches))
	for _, p := range punches {
		responses = append(responses, s.render(p))
	}
	return punch.ListPunchResponse{
		Page:    pagination.New(total, filter.Page, filter.Limit),
		Punches: responses,
	}, nil
}

// GetSummary implements punch.PunchService.
func (s *PunchServiceImpl) GetSummary(ctx context.Context, filter punch.PunchFilter) (punch.SummaryResponse, error) {
	if err := s.scopeFilter(ctx, &filter); err != nil {
		return punch.SummaryResponse{}, err
	}
	if err := filter.Validate(); err != nil {
		return punch.SummaryResponse{}, err
	}

	summary, err := s.PunchRepository.Summary(ctx, filter)
	if err != nil {
		return punch.SummaryResponse{}, fmt.Errorf("failed to summarize punches: %w", err)
	}
	return punch.ToSummaryResponse(summary), nil
}

// scopeFilter pins employees to their own punches.
func (s *PunchServiceImpl) scopeFilter(ctx context.Context, filter *punch.PunchFilter) error {
	claims, err := jwt.FromContext(ctx)
	if err != nil {
		return err
	}
	if claims.IsManager() {
		return nil
	}
	if claims.EmployeeID == "" {
		return punch.ErrNotEmployee
	}
	employeeID := claims.EmployeeID
	filter.EmployeeID = &employeeID
	return nil
}

func (s *PunchServiceImpl) render(p punch.Punch) punch.PunchResponse {
	resp := punch.ToResponse(p)
	resp.PhotoURL = s.fileService.URL(p.PhotoURL)
	return resp
}
