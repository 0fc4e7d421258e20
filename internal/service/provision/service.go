package provision

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/terceiro-labs/provision-backend/internal/domain/master/location"
	"github.com/terceiro-labs/provision-backend/internal/domain/provision"
	"github.com/terceiro-labs/provision-backend/internal/domain/user"
	"github.com/terceiro-labs/provision-backend/internal/pkg/database"
	"github.com/terceiro-labs/provision-backend/internal/pkg/geo"
	"github.com/terceiro-labs/provision-backend/internal/pkg/jwt"
	"github.com/terceiro-labs/provision-backend/internal/pkg/pagination"
	"github.com/terceiro-labs/provision-backend/internal/pkg/validator"
	"github.com/terceiro-labs/provision-backend/internal/service/file"
)

// DefaultOnSiteRadius is the distance in meters within which an arrival counts as on site.
const DefaultOnSiteRadius = 300.0

type ProvisionServiceImpl struct {
	provision.ProvisionRepository
	provision.HistoryRepository
	locationRepo location.LocationRepository
	transactor   database.Transactor
	fileService  file.FileService
	onSiteRadius float64
}

func NewProvisionService(
	provisionRepo provision.ProvisionRepository,
	historyRepo provision.HistoryRepository,
	locationRepo location.LocationRepository,
	transactor database.Transactor,
	fileService file.FileService,
	onSiteRadius float64,
) provision.ProvisionService {
	if onSiteRadius <= 0 {
		onSiteRadius = DefaultOnSiteRadius
	}
	return &ProvisionServiceImpl{
		ProvisionRepository: provisionRepo,
		HistoryRepository:   historyRepo,
		locationRepo:        locationRepo,
		transactor:          transactor,
		fileService:         fileService,
		onSiteRadius:        onSiteRadius,
	}
}

// CreateProvision implements provision.ProvisionService.
func (s *ProvisionServiceImpl) CreateProvision(ctx context.Context, req provision.CreateProvisionRequest) (provision.ProvisionResponse, error) {
	claims, err := jwt.FromContext(ctx)
	if err != nil {
		return provision.ProvisionResponse{}, err
	}

	// Employees record for themselves only
	if !claims.IsManager() {
		if claims.EmployeeID == "" {
			return provision.ProvisionResponse{}, user.ErrEmployeeAccessRequired
		}
		if req.EmployeeID == "" {
			req.EmployeeID = claims.EmployeeID
		}
		if req.EmployeeID != claims.EmployeeID {
			return provision.ProvisionResponse{}, provision.ErrNotOwnRecord
		}
	}

	if err := req.Validate(); err != nil {
		return provision.ProvisionResponse{}, err
	}

	record := req.Record()
	if err := record.ValidateTimes(); err != nil {
		return provision.ProvisionResponse{}, err
	}

	loc, err := s.locationRepo.GetByID(ctx, record.LocationID)
	if err != nil {
		if errors.Is(err, location.ErrLocationNotFound) {
			return provision.ProvisionResponse{}, provision.ErrInvalidReference
		}
		return provision.ProvisionResponse{}, fmt.Errorf("failed to get location: %w", err)
	}
	record.OnSiteValidated = geo.Within(record.ArrivalLatitude, record.ArrivalLongitude, loc.Latitude, loc.Longitude, s.onSiteRadius)
	record.CreatedBy = &claims.UserID

	var photoKey string
	err = s.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		created, err := s.ProvisionRepository.Create(txCtx, record)
		if err != nil {
			return err
		}
		record.ID = created.ID

		if req.File == nil {
			return nil
		}
		photoKey, err = s.fileService.UploadProvisionProof(txCtx, record.EmployeeID, record.Date, req.File)
		if err != nil {
			return err
		}
		return s.ProvisionRepository.SetProofPhoto(txCtx, record.ID, photoKey)
	})
	if err != nil {
		if photoKey != "" {
			if delErr := s.fileService.DeleteFile(ctx, photoKey); delErr != nil {
				slog.Warn("Failed to delete orphaned proof photo", "key", photoKey, "error", delErr)
			}
		}
		return provision.ProvisionResponse{}, err
	}

	slog.Info("Service provision recorded", "provision_id", record.ID, "employee_id", record.EmployeeID, "on_site", record.OnSiteValidated)
	return s.getDetail(ctx, record.ID)
}

// GetProvision implements provision.ProvisionService.
func (s *ProvisionServiceImpl) GetProvision(ctx context.Context, id string) (provision.ProvisionResponse, error) {
	detail, err := s.visibleDetail(ctx, id)
	if err != nil {
		return provision.ProvisionResponse{}, err
	}
	return s.render(detail), nil
}

// ListProvisions implements provision.ProvisionService.
func (s *ProvisionServiceImpl) ListProvisions(ctx context.Context, filter provision.ProvisionFilter) (provision.ListProvisionResponse, error) {
	if err := s.scopeFilter(ctx, &filter); err != nil {
		return provision.ListProvisionResponse{}, err
	}
	if err := filter.Validate(); err != nil {
		return provision.ListProvisionResponse{}, err
	}

	details, total, err := s.ProvisionRepository.List(ctx, filter)
	if err != nil {
		return provision.ListProvisionResponse{}, fmt.Errorf("failed to list provisions: %w", err)
	}

	responses := make([]provision.ProvisionResponse, 0, len(details))
	for _, d := range details {
		responses = append(responses, s.render(d))
	}

	return provision.ListProvisionResponse{
		Page:       pagination.New(total, filter.Page, filter.Limit),
		Provisions: responses,
	}, nil
}

// UpdateProvision implements provision.ProvisionService.
func (s *ProvisionServiceImpl) UpdateProvision(ctx context.Context, req provision.UpdateProvisionRequest) (provision.ProvisionResponse, error) {
	claims, err := jwt.FromContext(ctx)
	if err != nil {
		return provision.ProvisionResponse{}, err
	}
	if !claims.IsManager() {
		return provision.ProvisionResponse{}, user.ErrManagerAccessRequired
	}

	if err := req.Validate(); err != nil {
		return provision.ProvisionResponse{}, err
	}

	err = s.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		record, err := s.ProvisionRepository.GetForUpdate(txCtx, req.ID)
		if err != nil {
			return err
		}

		req.Apply(&record)
		if record.HasPartialLunch() {
			return validator.ValidationErrors{{Field: "lunch_in_time", Message: provision.ErrLunchIncomplete.Error()}}
		}
		if req.TouchesTimes() {
			if err := record.ValidateTimes(); err != nil {
				return err
			}
		}

		return s.ProvisionRepository.Update(txCtx, record)
	})
	if err != nil {
		return provision.ProvisionResponse{}, err
	}

	return s.getDetail(ctx, req.ID)
}

// Transition implements provision.ProvisionService. Any status may move to any
// other status; moving to the current one is rejected.
func (s *ProvisionServiceImpl) Transition(ctx context.Context, req provision.TransitionRequest) (provision.TransitionResponse, error) {
	claims, err := jwt.FromContext(ctx)
	if err != nil {
		return provision.TransitionResponse{}, err
	}
	if !claims.IsManager() {
		return provision.TransitionResponse{}, user.ErrManagerAccessRequired
	}

	if err := req.Validate(); err != nil {
		return provision.TransitionResponse{}, err
	}
	target := provision.Status(req.Status)

	var entry provision.HistoryEntry
	err = s.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		record, err := s.ProvisionRepository.GetForUpdate(txCtx, req.ID)
		if err != nil {
			return err
		}
		if record.Status == target {
			return provision.ErrStatusUnchanged
		}

		if err := s.ProvisionRepository.UpdateStatus(txCtx, record.ID, target); err != nil {
			return err
		}

		entry, err = s.HistoryRepository.AppendHistory(txCtx, provision.HistoryEntry{
			ProvisionID:    record.ID,
			PreviousStatus: record.Status,
			NewStatus:      target,
			ValidatedBy:    claims.UserID,
			Notes:          req.Notes,
		})
		return err
	})
	if err != nil {
		return provision.TransitionResponse{}, err
	}

	slog.Info("Service provision status changed", "provision_id", req.ID, "from", entry.PreviousStatus, "to", entry.NewStatus, "by", claims.UserID)

	resp, err := s.getDetail(ctx, req.ID)
	if err != nil {
		return provision.TransitionResponse{}, err
	}
	return provision.TransitionResponse{
		Provision: resp,
		History:   provision.ToHistoryResponse(entry),
	}, nil
}

// GetHistory implements provision.ProvisionService.
func (s *ProvisionServiceImpl) GetHistory(ctx context.Context, id string) ([]provision.HistoryResponse, error) {
	if _, err := s.visibleDetail(ctx, id); err != nil {
		return nil, err
	}

	entries, err := s.HistoryRepository.ListHistory(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}

	responses := make([]provision.HistoryResponse, 0, len(entries))
	for _, e := range entries {
		responses = append(responses, provision.ToHistoryResponse(e))
	}
	return responses, nil
}

// GetSummary implements provision.ProvisionService.
func (s *ProvisionServiceImpl) GetSummary(ctx context.Context, filter provision.ProvisionFilter) (provision.SummaryResponse, error) {
	if err := s.scopeFilter(ctx, &filter); err != nil {
		return provision.SummaryResponse{}, err
	}
	if err := filter.Validate(); err != nil {
		return provision.SummaryResponse{}, err
	}

	summary, err := s.ProvisionRepository.Summary(ctx, filter)
	if err != nil {
		return provision.SummaryResponse{}, fmt.Errorf("failed to summarize provisions: %w", err)
	}
	return provision.ToSummaryResponse(summary), nil
}

// OpenProofPhoto implements provision.ProvisionService.
func (s *ProvisionServiceImpl) OpenProofPhoto(ctx context.Context, id string) (io.ReadCloser, string, error) {
	detail, err := s.visibleDetail(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if detail.ProofPhotoURL == nil || *detail.ProofPhotoURL == "" {
		return nil, "", provision.ErrPhotoNotFound
	}

	rc, err := s.fileService.Open(ctx, *detail.ProofPhotoURL)
	if err != nil {
		return nil, "", err
	}
	return rc, "image/jpeg", nil
}

// ==================== HELPER FUNCTIONS ====================

// visibleDetail loads a record, hiding records of other employees from employees.
func (s *ProvisionServiceImpl) visibleDetail(ctx context.Context, id string) (provision.Detail, error) {
	claims, err := jwt.FromContext(ctx)
	if err != nil {
		return provision.Detail{}, err
	}

	detail, err := s.ProvisionRepository.GetByID(ctx, id)
	if err != nil {
		return provision.Detail{}, err
	}

	if !claims.IsManager() && detail.EmployeeID != claims.EmployeeID {
		return provision.Detail{}, provision.ErrProvisionNotFound
	}
	return detail, nil
}

// scopeFilter pins employees to their own records.
func (s *ProvisionServiceImpl) scopeFilter(ctx context.Context, filter *provision.ProvisionFilter) error {
	claims, err := jwt.FromContext(ctx)
	if err != nil {
		return err
	}
	if claims.IsManager() {
		return nil
	}
	if claims.EmployeeID == "" {
		return user.ErrEmployeeAccessRequired
	}
	employeeID := claims.EmployeeID
	filter.EmployeeID = &employeeID
	return nil
}

func (s *ProvisionServiceImpl) getDetail(ctx context.Context, id string) (provision.ProvisionResponse, error) {
	detail, err := s.ProvisionRepository.GetByID(ctx, id)
	if err != nil {
		return provision.ProvisionResponse{}, err
	}
	return s.render(detail), nil
}

func (s *ProvisionServiceImpl) render(d provision.Detail) provision.ProvisionResponse {
	resp := provision.ToResponse(d)
	resp.ProofPhotoURL = file.ResolveURL(s.fileService, d.ProofPhotoURL)
	resp.EmployeePhotoURL = file.ResolveURL(s.fileService, d.EmployeePhotoURL)
	return resp
}
