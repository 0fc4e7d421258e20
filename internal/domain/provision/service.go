package provision

import (
	"context"
	"io"
)

type ProvisionService interface {
	// CreateProvision validates and stores a new pending record for the caller.
	CreateProvision(ctx context.Context, req CreateProvisionRequest) (ProvisionResponse, error)

	GetProvision(ctx context.Context, id string) (ProvisionResponse, error)

	ListProvisions(ctx context.Context, filter ProvisionFilter) (ListProvisionResponse, error)

	// UpdateProvision applies an administrative correction and re-runs ValidateTimes
	// when clock stamps change.
	UpdateProvision(ctx context.Context, req UpdateProvisionRequest) (ProvisionResponse, error)

	// Transition moves a record to any other status and appends one history entry
	// in the same transaction. Moving to the current status fails with
	// ErrStatusUnchanged and writes nothing.
	Transition(ctx context.Context, req TransitionRequest) (TransitionResponse, error)

	GetHistory(ctx context.Context, id string) ([]HistoryResponse, error)

	GetSummary(ctx context.Context, filter ProvisionFilter) (SummaryResponse, error)

	// OpenProofPhoto streams the stored proof photo of a record.
	OpenProofPhoto(ctx context.Context, id string) (io.ReadCloser, string, error)
}
