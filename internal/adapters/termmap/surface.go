// Package termmap is a character-cell map surface for the terminal browser.
package termmap

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"poi-map-service/internal/domain"
	"poi-map-service/internal/ports"
)

// DefaultSpan is the longitude range shown across the map width, roughly a
// neighbourhood at the latitudes of the seed data.
const DefaultSpan = 0.02

type label struct {
	at   domain.Coordinates
	text string
}

// Surface keeps placed markers and labels and renders them around a center.
// It is not safe for concurrent use.
type Surface struct {
	center  domain.Coordinates
	span    float64
	points  []domain.Coordinates
	markers map[ports.Handle]domain.Coordinates
	labels  map[ports.Handle]label

	pointStyle  lipgloss.Style
	markerStyle lipgloss.Style
	labelStyle  lipgloss.Style
}

func New(center domain.Coordinates) *Surface {
	return &Surface{
		center:      center,
		span:        DefaultSpan,
		markers:     map[ports.Handle]domain.Coordinates{},
		labels:      map[ports.Handle]label{},
		pointStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")),
		markerStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("#F43F5E")).Bold(true),
		labelStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("#111827")).Background(lipgloss.Color("#FDE68A")),
	}
}

func (s *Surface) Center() domain.Coordinates { return s.center }

func (s *Surface) PanTo(c domain.Coordinates) { s.center = c }

func (s *Surface) CreateMarker(c domain.Coordinates) ports.Handle {
	h := ports.Handle("marker-" + uuid.NewString())
	s.markers[h] = c
	return h
}

func (s *Surface) CreateLabel(c domain.Coordinates, text string) ports.Handle {
	h := ports.Handle("label-" + uuid.NewString())
	s.labels[h] = label{at: c, text: text}
	return h
}

// Release removes a marker or label. Unknown handles are ignored.
func (s *Surface) Release(h ports.Handle) {
	delete(s.markers, h)
	delete(s.labels, h)
}

// Live counts placed markers and labels.
func (s *Surface) Live() (markers, labels int) { return len(s.markers), len(s.labels) }

// SetPoints replaces the unselected item dots drawn beneath markers.
func (s *Surface) SetPoints(items []domain.Item) {
	s.points = s.points[:0]
	for _, it := range items {
		if !it.Coordinates.IsZero() {
			s.points = append(s.points, it.Coordinates)
		}
	}
}

// Zoom scales the visible span; factors above 1 zoom in.
func (s *Surface) Zoom(factor float64) {
	if factor <= 0 {
		return
	}
	span := s.span / factor
	if span < 0.0005 || span > 2 {
		return
	}
	s.span = span
}

// cell maps c to a cell in a w x h grid. Cells are about twice as tall as
// they are wide, so the latitude span is half the longitude span per cell.
func (s *Surface) cell(c domain.Coordinates, w, h int) (int, int, bool) {
	if w < 1 || h < 1 {
		return 0, 0, false
	}
	lonPerCell := s.span / float64(w)
	latPerCell := lonPerCell * 2

	x := w/2 + int((c.Lon-s.center.Lon)/lonPerCell)
	y := h/2 - int((c.Lat-s.center.Lat)/latPerCell)
	if x < 0 || x >= w || y < 0 || y >= h {
		return 0, 0, false
	}
	return x, y, true
}

// Render draws the map into a w x h block of lines.
func (s *Surface) Render(w, h int) string {
	if w < 1 || h < 1 {
		return ""
	}

	grid := make([][]string, h)
	for y := range grid {
		grid[y] = make([]string, w)
		for x := range grid[y] {
			grid[y][x] = " "
		}
	}

	for _, p := range s.points {
		if x, y, ok := s.cell(p, w, h); ok {
			grid[y][x] = s.pointStyle.Render("·")
		}
	}
	for _, m := range s.markers {
		if x, y, ok := s.cell(m, w, h); ok {
			grid[y][x] = s.markerStyle.Render("◆")
		}
	}
	for _, l := range s.labels {
		x, y, ok := s.cell(l.at, w, h)
		if !ok || y == 0 {
			continue
		}
		// Labels sit on the row above their point, clipped at the right edge.
		runes := []rune(" " + l.text + " ")
		start := max(0, min(x-len(runes)/2, w-len(runes)))
		for i, r := range runes {
			if start+i >= w {
				break
			}
			grid[y-1][start+i] = s.labelStyle.Render(string(r))
		}
	}

	lines := make([]string, h)
	for y, row := range grid {
		lines[y] = strings.Join(row, "")
	}
	return strings.Join(lines, "\n")
}
