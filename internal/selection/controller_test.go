package selection

import (
	"fmt"
	"testing"

	"poi-map-service/internal/domain"
	"poi-map-service/internal/ports"
)

type fakeSurface struct {
	next    int
	markers map[ports.Handle]domain.Coordinates
	labels  map[ports.Handle]string
	pans    []domain.Coordinates
	// releasedUnknown counts Release calls for handles not on the surface.
	releasedUnknown int
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{
		markers: map[ports.Handle]domain.Coordinates{},
		labels:  map[ports.Handle]string{},
	}
}

func (s *fakeSurface) handle() ports.Handle {
	s.next++
	return ports.Handle(fmt.Sprintf("h%d", s.next))
}

func (s *fakeSurface) PanTo(c domain.Coordinates) { s.pans = append(s.pans, c) }

func (s *fakeSurface) CreateMarker(c domain.Coordinates) ports.Handle {
	h := s.handle()
	s.markers[h] = c
	return h
}

func (s *fakeSurface) CreateLabel(c domain.Coordinates, text string) ports.Handle {
	h := s.handle()
	s.labels[h] = text
	return h
}

func (s *fakeSurface) Release(h ports.Handle) {
	_, m := s.markers[h]
	_, l := s.labels[h]
	if !m && !l {
		s.releasedUnknown++
	}
	delete(s.markers, h)
	delete(s.labels, h)
}

type fakeViewport struct{ width float64 }

func (v fakeViewport) Width() float64           { return v.width }
func (v fakeViewport) ContainerExtent() float64 { return 40 }

type countingPanel struct{ collapses int }

func (p *countingPanel) Collapse() { p.collapses++ }

var (
	itemA = domain.Item{ID: 1, Title: "남촌김밥 본점", Coordinates: domain.Coordinates{Lat: 37.3848, Lon: 126.9338}}
	itemB = domain.Item{ID: 2, Title: "아리산", Coordinates: domain.Coordinates{Lat: 37.3867, Lon: 126.9338}}
)

func TestFocusKeepsExactlyOneMarkerAndLabel(t *testing.T) {
	surface := newFakeSurface()
	c := NewController(surface, fakeViewport{width: 1200}, nil, 768)

	c.Focus(itemA)
	c.Focus(itemB)

	if len(surface.markers) != 1 || len(surface.labels) != 1 {
		t.Fatalf("markers=%d labels=%d, want 1 each", len(surface.markers), len(surface.labels))
	}
	for _, text := range surface.labels {
		if text != itemB.Title {
			t.Fatalf("label text = %q, want %q", text, itemB.Title)
		}
	}
	if id, ok := c.HighlightedID(); !ok || id != itemB.ID {
		t.Fatalf("HighlightedID = %v, %v; want %v", id, ok, itemB.ID)
	}
	if len(surface.pans) != 2 || surface.pans[1] != itemB.Coordinates {
		t.Fatalf("pans = %v", surface.pans)
	}
}

func TestRefocusSameItem(t *testing.T) {
	surface := newFakeSurface()
	c := NewController(surface, fakeViewport{width: 1200}, nil, 768)

	c.Focus(itemA)
	c.Focus(itemA)

	if len(surface.markers) != 1 || len(surface.labels) != 1 {
		t.Fatalf("markers=%d labels=%d after refocus", len(surface.markers), len(surface.labels))
	}
}

func TestClearIsIdempotent(t *testing.T) {
	surface := newFakeSurface()
	c := NewController(surface, fakeViewport{width: 1200}, nil, 768)

	c.Clear()
	c.Focus(itemA)
	c.Clear()
	c.Clear()

	if len(surface.markers) != 0 || len(surface.labels) != 0 {
		t.Fatalf("resources left after clear: markers=%d labels=%d", len(surface.markers), len(surface.labels))
	}
	if surface.releasedUnknown != 0 {
		t.Fatalf("released %d unknown handles", surface.releasedUnknown)
	}
	if _, ok := c.HighlightedID(); ok {
		t.Fatalf("HighlightedID reported focus after clear")
	}
	if st := c.State(); st.Marker != nil || st.Label != nil {
		t.Fatalf("state not reset: %+v", st)
	}
}

func TestNarrowViewportCollapsesPanel(t *testing.T) {
	cases := []struct {
		width float64
		want  int
	}{
		{width: 500, want: 1},
		{width: 768, want: 1},
		{width: 769, want: 0},
	}

	for _, tc := range cases {
		panel := &countingPanel{}
		c := NewController(newFakeSurface(), fakeViewport{width: tc.width}, panel, 768)
		c.Focus(itemA)
		if panel.collapses != tc.want {
			t.Errorf("width=%v: collapses=%d, want %d", tc.width, panel.collapses, tc.want)
		}
	}
}
