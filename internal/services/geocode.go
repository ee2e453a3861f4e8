package services

import (
	"context"
	"fmt"
	"log"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"poi-map-service/internal/ports"
)

// GeocodeReport summarizes one GeocodeMissing run.
type GeocodeReport struct {
	Missing  int
	Resolved int
	Failed   int
}

// GeocodeMissing resolves coordinates for items seeded without them, running
// at most limit lookups at a time. An address that cannot be resolved is
// logged and skipped; a failed write-back aborts the run.
func GeocodeMissing(ctx context.Context, store ports.LocationStore, geocoder ports.Geocoder, limit int) (GeocodeReport, error) {
	items, err := store.MissingCoordinates(ctx)
	if err != nil {
		return GeocodeReport{}, fmt.Errorf("geocode missing: %w", err)
	}

	if limit < 1 {
		limit = 1
	}

	var resolved, failed atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for _, it := range items {
		g.Go(func() error {
			c, err := geocoder.Geocode(gctx, it.Address)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				log.Printf("geocode skipped id=%d address=%q err=%v", it.ID, it.Address, err)
				failed.Add(1)
				return nil
			}
			if err := store.UpdateCoordinates(gctx, it.ID, c); err != nil {
				return fmt.Errorf("geocode missing: %w", err)
			}
			resolved.Add(1)
			return nil
		})
	}

	err = g.Wait()
	report := GeocodeReport{
		Missing:  len(items),
		Resolved: int(resolved.Load()),
		Failed:   int(failed.Load()),
	}
	return report, err
}
