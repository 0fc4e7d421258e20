package provision

import (
	"context"
)

// ProvisionRepository defines data access for service provision records.
type ProvisionRepository interface {
	// Create inserts a record. A second record for the same employee, date and
	// location fails with ErrDuplicateRecord.
	Create(ctx context.Context, record Record) (Record, error)

	// GetByID returns the read projection joined with employee, company, location and manager.
	GetByID(ctx context.Context, id string) (Detail, error)

	// GetForUpdate locks the row until the surrounding transaction ends.
	GetForUpdate(ctx context.Context, id string) (Record, error)

	// Update persists an administrative correction of every mutable field except status.
	Update(ctx context.Context, record Record) error

	// UpdateStatus sets the current status only.
	UpdateStatus(ctx context.Context, id string, status Status) error

	SetProofPhoto(ctx context.Context, id string, url string) error

	List(ctx context.Context, filter ProvisionFilter) ([]Detail, int64, error)

	Summary(ctx context.Context, filter ProvisionFilter) (Summary, error)

	// ListTimeSheets returns the clock stamps of every record matching filter,
	// without pagination, for hour aggregates.
	ListTimeSheets(ctx context.Context, filter ProvisionFilter) ([]TimeSheet, error)
}

// HistoryRepository is append-only: entries are inserted and read, never updated or deleted.
type HistoryRepository interface {
	AppendHistory(ctx context.Context, entry HistoryEntry) (HistoryEntry, error)

	// ListHistory returns entries of a record oldest first.
	ListHistory(ctx context.Context, provisionID string) ([]HistoryEntry, error)
}
