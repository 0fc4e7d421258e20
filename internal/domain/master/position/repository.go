package position

import "context"

type PositionRepository interface {
	Create(ctx context.Context, position Position) (Position, error)
	GetByID(ctx context.Context, id string) (Position, error)
	List(ctx context.Context, filter PositionFilter) ([]Position, error)
	Update(ctx context.Context, position Position) error
	Delete(ctx context.Context, id string) error
}
