package location

import "context"

type StateRepository interface {
	Create(ctx context.Context, state State) (State, error)
	GetByID(ctx context.Context, id string) (State, error)
	List(ctx context.Context, filter StateFilter) ([]State, error)
	Update(ctx context.Context, state State) error
	Delete(ctx context.Context, id string) error
}

type CityRepository interface {
	Create(ctx context.Context, city City) (City, error)
	GetByID(ctx context.Context, id string) (City, error)
	List(ctx context.Context, filter CityFilter) ([]City, int64, error)
	Update(ctx context.Context, city City) error
	Delete(ctx context.Context, id string) error
}

type LocationRepository interface {
	Create(ctx context.Context, location Location) (Location, error)
	GetByID(ctx context.Context, id string) (Location, error)
	List(ctx context.Context, filter LocationFilter) ([]Location, int64, error)
	Update(ctx context.Context, location Location) error
	Delete(ctx context.Context, id string) error
}
