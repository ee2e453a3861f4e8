// Package selection owns the focused item and the single marker and label
// that show it on the map.
package selection

import (
	"poi-map-service/internal/domain"
	"poi-map-service/internal/ports"
)

// Collapser shrinks the sheet so the map is visible.
type Collapser interface {
	Collapse()
}

// FocusState is the focused item and its visual resources. Marker and Label
// are either both nil or both set.
type FocusState struct {
	ItemID domain.ItemID
	Marker *ports.Handle
	Label  *ports.Handle
}

func (s FocusState) Focused() bool { return s.Marker != nil }

// Controller is the only component allowed to create or release the focus
// marker and label, so at most one of each exists on the surface.
type Controller struct {
	surface     ports.MapSurface
	viewport    ports.Viewport
	panel       Collapser
	narrowWidth float64

	state FocusState
}

// NewController builds a controller. Focusing on a viewport whose width is at
// or below narrowWidth also collapses panel; a nil panel disables that policy.
func NewController(surface ports.MapSurface, viewport ports.Viewport, panel Collapser, narrowWidth float64) *Controller {
	return &Controller{
		surface:     surface,
		viewport:    viewport,
		panel:       panel,
		narrowWidth: narrowWidth,
	}
}

// Focus moves the marker and label to item, releasing the previous pair first,
// and pans the map to it.
func (c *Controller) Focus(item domain.Item) {
	c.release()

	marker := c.surface.CreateMarker(item.Coordinates)
	label := c.surface.CreateLabel(item.Coordinates, item.Title)
	c.state = FocusState{ItemID: item.ID, Marker: &marker, Label: &label}

	c.surface.PanTo(item.Coordinates)

	if c.panel != nil && c.viewport != nil && c.viewport.Width() <= c.narrowWidth {
		c.panel.Collapse()
	}
}

// Clear releases the marker and label. Calling it with nothing focused is a no-op.
func (c *Controller) Clear() {
	c.release()
}

// HighlightedID is the id the list should mark active, if any.
func (c *Controller) HighlightedID() (domain.ItemID, bool) {
	if !c.state.Focused() {
		return 0, false
	}
	return c.state.ItemID, true
}

func (c *Controller) State() FocusState { return c.state }

func (c *Controller) release() {
	if c.state.Marker != nil {
		c.surface.Release(*c.state.Marker)
	}
	if c.state.Label != nil {
		c.surface.Release(*c.state.Label)
	}
	c.state = FocusState{}
}
