package sheet

// Bounds is the legal size range of the panel for the current container extent.
type Bounds struct {
	Min float64
	Max float64
}

// BoundsFor derives bounds from the smallest and largest snap points.
func BoundsFor(extent float64, snaps SnapPoints) Bounds {
	if len(snaps) == 0 || extent <= 0 {
		return Bounds{}
	}
	return Bounds{
		Min: snaps.Smallest().Size(extent),
		Max: snaps.Largest().Size(extent),
	}
}

// Clamp constrains a proposed size to b. Sizes already in range are returned unchanged.
func Clamp(proposed float64, b Bounds) float64 {
	if proposed < b.Min {
		return b.Min
	}
	if proposed > b.Max {
		return b.Max
	}
	return proposed
}
