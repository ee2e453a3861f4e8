package ports

import "poi-map-service/internal/domain"

// Handle is an opaque reference to a visual resource placed on a MapSurface.
type Handle string

// MapSurface is the map provider the selection controller draws on.
// Each call completes before it returns; no other ordering is assumed.
type MapSurface interface {
	PanTo(c domain.Coordinates)
	CreateMarker(c domain.Coordinates) Handle
	CreateLabel(c domain.Coordinates, text string) Handle
	Release(h Handle)
}
