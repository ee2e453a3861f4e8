package ports

import (
	"context"
	"poi-map-service/internal/domain"
)

// Contract for resolving a street address into coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (domain.Coordinates, error)
}

// Persistent address -> coordinates lookups shared between geocoding runs.
type GeocodeCache interface {
	// Return cached coordinates for the given addresses; misses are absent from the map.
	GetMany(ctx context.Context, addresses []string) (map[string]domain.Coordinates, error)
	// Store address -> coordinate mappings.
	PutMany(ctx context.Context, results map[string]domain.Coordinates) error
}
