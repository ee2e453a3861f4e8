package sheet

import "poi-map-service/internal/ports"

// GestureState is the anchor of an in-progress drag. The zero value is idle.
type GestureState struct {
	Active      bool
	AnchorCoord float64
	AnchorSize  float64
}

// GestureController converts pointer drags on the sheet handle into panel
// sizes. It has two states, Idle and Dragging; moves and ends received while
// idle are ignored.
//
// Coordinates grow away from the resting edge of the panel, so moving the
// pointer toward smaller coordinates grows the panel (a bottom sheet dragged up).
type GestureController struct {
	panel    ports.Panel
	viewport ports.Viewport
	snaps    SnapPoints
	resolver Resolver
	initial  SnapPoint

	gesture GestureState
	resting SnapPoint
}

type Option func(*GestureController)

// WithResolver replaces the default Nearest resolver.
func WithResolver(r Resolver) Option {
	return func(g *GestureController) {
		if r != nil {
			g.resolver = r
		}
	}
}

// WithInitialSnap sets the snap point Init places the panel at.
// Values that are not one of the snap points are ignored.
func WithInitialSnap(p SnapPoint) Option {
	return func(g *GestureController) {
		if g.snaps.Contains(p) {
			g.initial = p
		}
	}
}

// NewGestureController expects validated snap points.
func NewGestureController(panel ports.Panel, viewport ports.Viewport, snaps SnapPoints, opts ...Option) *GestureController {
	g := &GestureController{
		panel:    panel,
		viewport: viewport,
		snaps:    snaps,
		resolver: Nearest{},
		initial:  snaps[len(snaps)/2],
	}
	for _, opt := range opts {
		opt(g)
	}
	g.resting = g.initial
	return g
}

// Init places the panel at its initial snap point without animating.
func (g *GestureController) Init() {
	g.resting = g.initial
	g.panel.SetAnimated(false)
	g.panel.SetSize(g.initial.Size(g.viewport.ContainerExtent()))
	g.panel.SetAnimated(true)
}

// Bounds are derived from the container extent at call time, never cached,
// so a container resize during a drag is picked up on the next move.
func (g *GestureController) Bounds() Bounds {
	return BoundsFor(g.viewport.ContainerExtent(), g.snaps)
}

// DragStart anchors a new drag at coord. It returns false, keeping the
// current anchor, when a drag is already active.
func (g *GestureController) DragStart(coord float64) bool {
	if g.gesture.Active {
		return false
	}
	g.gesture = GestureState{
		Active:      true,
		AnchorCoord: coord,
		AnchorSize:  g.panel.Size(),
	}
	g.panel.SetAnimated(false)
	return true
}

// DragMove applies the clamped size for the pointer at coord immediately.
func (g *GestureController) DragMove(coord float64) {
	if !g.gesture.Active {
		return
	}
	delta := g.gesture.AnchorCoord - coord
	proposed := g.gesture.AnchorSize + delta
	g.panel.SetSize(Clamp(proposed, g.Bounds()))
}

// DragEnd snaps the panel to its resting size with animation and returns the
// chosen snap point. The bool is false when no drag was active.
func (g *GestureController) DragEnd() (SnapPoint, bool) {
	if !g.gesture.Active {
		return 0, false
	}
	g.gesture = GestureState{}
	g.panel.SetAnimated(true)

	extent := g.viewport.ContainerExtent()
	p := g.resolver.Resolve(g.panel.Size(), extent, g.snaps)
	g.resting = p
	g.panel.SetSize(p.Size(extent))
	return p, true
}

// Collapse animates the panel to its smallest snap point, abandoning any drag.
func (g *GestureController) Collapse() {
	g.gesture = GestureState{}
	g.resting = g.snaps.Smallest()
	g.panel.SetAnimated(true)
	g.panel.SetSize(g.resting.Size(g.viewport.ContainerExtent()))
}

// Relayout re-applies the resting snap fraction after the container changed
// size. During a drag it does nothing; the next move re-clamps.
func (g *GestureController) Relayout() {
	if g.gesture.Active {
		return
	}
	g.panel.SetAnimated(false)
	g.panel.SetSize(g.resting.Size(g.viewport.ContainerExtent()))
	g.panel.SetAnimated(true)
}

func (g *GestureController) Dragging() bool      { return g.gesture.Active }
func (g *GestureController) State() GestureState { return g.gesture }
func (g *GestureController) Resting() SnapPoint  { return g.resting }
func (g *GestureController) Snaps() SnapPoints   { return g.snaps }
