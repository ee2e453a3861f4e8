package sheet

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

// SnapPoint is a resting size expressed as a fraction of the container extent.
type SnapPoint float64

// Size converts the fraction to an absolute size.
func (p SnapPoint) Size(extent float64) float64 { return float64(p) * extent }

// SnapPoints is an ascending set of snap fractions.
type SnapPoints []SnapPoint

// DefaultSnapPoints are the collapsed, half and expanded resting sizes.
var DefaultSnapPoints = SnapPoints{0.15, 0.45, 0.95}

// Smallest and Largest require a non-empty set; they panic otherwise.
// Validate guarantees this.
func (s SnapPoints) Smallest() SnapPoint { return s[0] }
func (s SnapPoints) Largest() SnapPoint  { return s[len(s)-1] }

// Validate requires a non-empty, strictly ascending set within (0, 1].
func (s SnapPoints) Validate() error {
	if len(s) == 0 {
		return errors.New("snap points: at least one snap point is required")
	}
	for i, p := range s {
		if p <= 0 || p > 1 || math.IsNaN(float64(p)) {
			return fmt.Errorf("snap points: value #%d (%v) must be in (0, 1]", i+1, p)
		}
		if i > 0 && p <= s[i-1] {
			return fmt.Errorf("snap points: value #%d (%v) must be greater than %v", i+1, p, s[i-1])
		}
	}
	return nil
}

// Contains reports whether p is one of the configured snap points.
func (s SnapPoints) Contains(p SnapPoint) bool { return slices.Contains(s, p) }

// Resolver picks the resting snap point for a released panel.
type Resolver interface {
	Resolve(finished, extent float64, snaps SnapPoints) SnapPoint
}

// Nearest resolves to the snap point whose absolute size is closest to the
// released size. Ties go to the larger snap point.
type Nearest struct{}

func (Nearest) Resolve(finished, extent float64, snaps SnapPoints) SnapPoint {
	best := snaps[0]
	bestDist := math.Inf(1)
	for _, p := range snaps {
		d := math.Abs(p.Size(extent) - finished)
		// Ascending iteration: <= lets the larger point win a tie.
		if d <= bestDist {
			best, bestDist = p, d
		}
	}
	return best
}

// Threshold buckets the released size by fixed fractions of the extent:
// above Upper goes to the largest snap, below Lower to the smallest, anything
// else to the middle one. It expects exactly three snap points; callers
// validate that before choosing it.
type Threshold struct {
	Upper float64
	Lower float64
}

// DefaultThreshold matches the 60%/30% buckets of the web sheet.
var DefaultThreshold = Threshold{Upper: 0.6, Lower: 0.3}

func (t Threshold) Resolve(finished, extent float64, snaps SnapPoints) SnapPoint {
	switch {
	case finished > extent*t.Upper:
		return snaps.Largest()
	case finished < extent*t.Lower:
		return snaps.Smallest()
	default:
		return snaps[len(snaps)/2]
	}
}

// ResolverFor maps a configured policy name to a Resolver.
func ResolverFor(policy string) (Resolver, error) {
	switch policy {
	case "", "nearest":
		return Nearest{}, nil
	case "threshold":
		return DefaultThreshold, nil
	default:
		return nil, fmt.Errorf("snap policy %q: want nearest or threshold", policy)
	}
}
