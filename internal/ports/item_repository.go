package ports

import (
	"context"
	"poi-map-service/internal/domain"
)

// Port: a boundary for reading and rating Item entities in a data source.
type ItemRepository interface {
	// Return items matching the query, ordered by id.
	ListItems(ctx context.Context, q domain.Query) ([]domain.Item, error)
	// Return one item chosen at random.
	RandomItem(ctx context.Context) (domain.Item, error)
	// Persist a rating and return the updated aggregate.
	RecordRating(ctx context.Context, r domain.Rating) (domain.RatingResult, error)
}

// Items seeded without a location, and the write-back of a resolved one.
type LocationStore interface {
	MissingCoordinates(ctx context.Context) ([]domain.Item, error)
	UpdateCoordinates(ctx context.Context, id domain.ItemID, c domain.Coordinates) error
}
