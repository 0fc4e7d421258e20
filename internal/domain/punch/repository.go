package punch

import "context"

type PunchRepository interface {
	Create(ctx context.Context, punch Punch) (Punch, error)
	GetByID(ctx context.Context, id string) (Punch, error)
	List(ctx context.Context, filter PunchFilter) ([]Punch, int64, error)
	Summary(ctx context.Context, filter PunchFilter) (Summary, error)
}
