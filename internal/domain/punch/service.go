package punch

import "context"

type PunchService interface {
	// CreatePunch registers a punch for the authenticated employee.
	CreatePunch(ctx context.Context, req CreatePunchRequest) (PunchResponse, error)
	GetPunch(ctx context.Context, id string) (PunchResponse, error)
	ListPunches(ctx context.Context, filter PunchFilter) (ListPunchResponse, error)
	GetSummary(ctx context.Context, filter PunchFilter) (SummaryResponse, error)
}
