package ports

// Viewport answers read-only environment queries.
type Viewport interface {
	// Width of the whole view, compared against the narrow-viewport threshold.
	Width() float64
	// ContainerExtent is the size of the area the sheet is resized within.
	ContainerExtent() float64
}

// Panel is the resizable sheet surface.
type Panel interface {
	Size() float64
	SetSize(size float64)
	// SetAnimated toggles size-transition animation. Drags turn it off so the
	// panel tracks the pointer without lag.
	SetAnimated(on bool)
}
