package tui

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
)

const fps = 60

// Panel is the sheet's size in terminal rows. Size reports the target the
// gesture controller set; the rendered height follows it on a spring when
// animation is on.
type Panel struct {
	target   float64
	pos      float64
	vel      float64
	animated bool
	static   bool
	spring   harmonica.Spring
}

// NewPanel returns a panel. With static set, size changes always apply
// immediately.
func NewPanel(static bool) *Panel {
	return &Panel{
		animated: true,
		static:   static,
		spring:   harmonica.NewSpring(harmonica.FPS(fps), 8.0, 0.85),
	}
}

func (p *Panel) Size() float64 { return p.target }

func (p *Panel) SetSize(size float64) {
	p.target = size
	if !p.animated || p.static {
		p.pos, p.vel = size, 0
	}
}

func (p *Panel) SetAnimated(on bool) { p.animated = on }

// Moving reports whether the rendered height has not settled on the target.
func (p *Panel) Moving() bool {
	return math.Abs(p.pos-p.target) > 0.05 || math.Abs(p.vel) > 0.05
}

// Step advances the spring one frame and reports whether it is still moving.
func (p *Panel) Step() bool {
	if !p.Moving() {
		p.pos, p.vel = p.target, 0
		return false
	}
	p.pos, p.vel = p.spring.Update(p.pos, p.vel, p.target)
	if !p.Moving() {
		p.pos, p.vel = p.target, 0
		return false
	}
	return true
}

// Rows is the rendered height, at least one row for the handle.
func (p *Panel) Rows(limit int) int {
	rows := int(math.Round(p.pos))
	return max(1, min(rows, limit))
}

func frameInterval() time.Duration { return time.Second / fps }

// Viewport reports the terminal geometry in cells.
type Viewport struct {
	cols, rows int
}

// chromeRows are the header and footer lines outside the sheet container.
const chromeRows = 2

func (v *Viewport) Width() float64 { return float64(v.cols) }

func (v *Viewport) ContainerExtent() float64 {
	return float64(max(0, v.rows-chromeRows))
}

func (v *Viewport) extent() int { return max(0, v.rows-chromeRows) }
