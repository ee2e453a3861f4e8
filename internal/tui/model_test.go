package tui

import (
	"context"
	"math"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"poi-map-service/internal/domain"
	"poi-map-service/internal/session"
	"poi-map-service/internal/sheet"
)

var (
	gimbap  = domain.Item{ID: 20, Title: "남촌김밥 본점", Category: "분식", Coordinates: domain.Coordinates{Lon: 126.92, Lat: 37.39}}
	coffee  = domain.Item{ID: 60, Title: "컴포즈커피 안양성결대점", Category: "카페", Coordinates: domain.Coordinates{Lon: 126.93, Lat: 37.38}}
	noodles = domain.Item{ID: 1, Title: "부산가야밀면 안양본점", Category: "국수", Coordinates: domain.Coordinates{Lon: 126.93, Lat: 37.38}}
)

type fakeSource struct {
	queries []domain.Query
}

func (s *fakeSource) Fetch(ctx context.Context, q domain.Query) ([]domain.Item, error) {
	s.queries = append(s.queries, q)
	var out []domain.Item
	for _, it := range []domain.Item{noodles, gimbap, coffee} {
		if q.FiltersCategory() && it.Category != q.Category {
			continue
		}
		if q.Search != "" && !strings.Contains(it.Title, q.Search) {
			continue
		}
		out = append(out, it)
	}
	return out, nil
}

func (s *fakeSource) FetchRandom(ctx context.Context) (domain.Item, error) { return coffee, nil }

type fakeSink struct{ calls int }

func (s *fakeSink) Submit(ctx context.Context, id domain.ItemID, score int) (domain.RatingResult, error) {
	s.calls++
	return domain.RatingResult{ItemID: id, AvgRating: float64(score), RatingCount: 1}, nil
}

type gate bool

func (g gate) IsAuthenticated() bool { return bool(g) }

func newTestModel(t *testing.T, authed bool) (*Model, *fakeSource, *fakeSink) {
	t.Helper()
	src, sink := &fakeSource{}, &fakeSink{}
	m := New(context.Background(), Options{
		Source:     src,
		Sink:       sink,
		Auth:       gate(authed),
		Session:    session.Options{NarrowWidth: 100},
		Categories: []string{"분식", "카페"},
		Center:     coffee.Coordinates,
		Static:     true,
	})
	send(t, m, tea.WindowSizeMsg{Width: 80, Height: 32})
	return m, src, sink
}

// send delivers msg and runs every command it produces until none remain.
func send(t *testing.T, m *Model, msg tea.Msg) {
	t.Helper()
	_, cmd := m.Update(msg)
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 100 {
			t.Fatalf("command queue did not drain")
		}
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch out := c().(type) {
		case nil:
		case tea.BatchMsg:
			queue = append(queue, out...)
		case tea.QuitMsg:
		default:
			_, next := m.Update(out)
			queue = append(queue, next)
		}
	}
}

func key(k tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: k} }

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestStartLoadsListAndSizesSheet(t *testing.T) {
	m, src, _ := newTestModel(t, false)

	if got := m.Session().List.Current().Len(); got != 3 {
		t.Fatalf("list len = %d, want 3", got)
	}
	if len(src.queries) != 1 || src.queries[0].Category != domain.CategoryAll {
		t.Fatalf("queries = %+v", src.queries)
	}
	if !near(m.panel.Size(), 13.5) || m.panel.Rows(30) != 14 {
		t.Fatalf("sheet = %v (%d rows), want 13.5 (14 rows)", m.panel.Size(), m.panel.Rows(30))
	}
	if view := m.View(); !strings.Contains(view, "3 places nearby") {
		t.Fatalf("view is missing the count header:\n%s", view)
	}
}

func TestEnterFocusesAndCollapsesOnNarrowTerminal(t *testing.T) {
	m, _, _ := newTestModel(t, false)

	send(t, m, key(tea.KeyDown))
	send(t, m, key(tea.KeyEnter))

	if id, ok := m.Session().Selection.HighlightedID(); !ok || id != gimbap.ID {
		t.Fatalf("focus = %v %v, want %d", id, ok, gimbap.ID)
	}
	if markers, labels := m.surface.Live(); markers != 1 || labels != 1 {
		t.Fatalf("live = %d/%d, want 1/1", markers, labels)
	}
	if m.surface.Center() != gimbap.Coordinates {
		t.Fatalf("map center = %+v", m.surface.Center())
	}
	if !near(m.panel.Size(), 4.5) {
		t.Fatalf("sheet = %v, want collapsed 4.5", m.panel.Size())
	}

	send(t, m, key(tea.KeyEsc))
	if _, ok := m.Session().Selection.HighlightedID(); ok {
		t.Fatalf("esc did not clear focus")
	}
	if markers, labels := m.surface.Live(); markers != 0 || labels != 0 {
		t.Fatalf("live after clear = %d/%d", markers, labels)
	}
}

func TestCategoryTabRefetchesAndDropsFocus(t *testing.T) {
	m, src, _ := newTestModel(t, false)

	send(t, m, key(tea.KeyDown))
	send(t, m, key(tea.KeyEnter))
	send(t, m, key(tea.KeyTab))
	send(t, m, key(tea.KeyTab))

	last := src.queries[len(src.queries)-1]
	if last.Category != "카페" {
		t.Fatalf("last query = %+v, want 카페", last)
	}
	if _, ok := m.Session().Selection.HighlightedID(); ok {
		t.Fatalf("focus survived a list without the item")
	}
	if got := m.Session().List.Current().Len(); got != 1 {
		t.Fatalf("list len = %d, want 1", got)
	}
}

func TestMouseDragSnapsSheet(t *testing.T) {
	m, _, _ := newTestModel(t, false)

	top := m.sheetTop()
	if top != 17 {
		t.Fatalf("sheet top = %d, want 17", top)
	}

	send(t, m, tea.MouseMsg{X: 2, Y: top, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if !m.Session().Sheet.Dragging() {
		t.Fatalf("press on the handle did not start a drag")
	}
	send(t, m, tea.MouseMsg{X: 2, Y: 5, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	if !near(m.panel.Size(), 25.5) {
		t.Fatalf("size mid-drag = %v, want 25.5", m.panel.Size())
	}
	send(t, m, tea.MouseMsg{X: 2, Y: 5, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	if m.Session().Sheet.Dragging() || !near(m.panel.Size(), 28.5) {
		t.Fatalf("after release size = %v dragging=%v, want 28.5", m.panel.Size(), m.Session().Sheet.Dragging())
	}
}

func TestPageKeysStepThroughSnapPoints(t *testing.T) {
	for _, policy := range []sheet.Resolver{sheet.Nearest{}, sheet.DefaultThreshold} {
		m := New(context.Background(), Options{
			Source:  &fakeSource{},
			Sink:    &fakeSink{},
			Auth:    gate(false),
			Session: session.Options{NarrowWidth: 100, Resolver: policy},
			Center:  coffee.Coordinates,
			Static:  true,
		})
		send(t, m, tea.WindowSizeMsg{Width: 80, Height: 32})

		steps := []struct {
			key  tea.KeyType
			want float64
		}{
			{tea.KeyPgUp, 28.5},
			{tea.KeyPgUp, 28.5},
			{tea.KeyPgDown, 13.5},
			{tea.KeyPgDown, 4.5},
			{tea.KeyPgDown, 4.5},
		}
		for i, st := range steps {
			send(t, m, key(st.key))
			if !near(m.panel.Size(), st.want) {
				t.Fatalf("%T step %d: size = %v, want %v", policy, i, m.panel.Size(), st.want)
			}
		}
	}
}

func TestSearchBoxSubmitsTerm(t *testing.T) {
	m, src, _ := newTestModel(t, false)

	send(t, m, runes("/"))
	if !m.searching {
		t.Fatalf("/ did not open the search box")
	}
	send(t, m, runes("김밥"))
	send(t, m, key(tea.KeyEnter))

	if m.searching {
		t.Fatalf("enter did not close the search box")
	}
	if q := m.Session().Query(); q.Search != "김밥" {
		t.Fatalf("query = %+v", q)
	}
	if last := src.queries[len(src.queries)-1]; last.Search != "김밥" {
		t.Fatalf("source saw %+v", last)
	}
	if got := m.Session().List.Current().Len(); got != 1 {
		t.Fatalf("list len = %d, want 1", got)
	}
}

func TestRateRequiresLogin(t *testing.T) {
	m, _, sink := newTestModel(t, false)

	send(t, m, runes("4"))

	if sink.calls != 0 {
		t.Fatalf("sink called while logged out")
	}
	n, ok := m.flash.Current()
	if !ok || n.Kind != domain.NoticeAuthRequired {
		t.Fatalf("flash = %+v %v", n, ok)
	}
}

func TestRateRefreshesList(t *testing.T) {
	m, src, sink := newTestModel(t, true)
	before := len(src.queries)

	send(t, m, runes("5"))

	if sink.calls != 1 {
		t.Fatalf("sink calls = %d, want 1", sink.calls)
	}
	if len(src.queries) != before+1 {
		t.Fatalf("rating did not refresh the list")
	}
	if n, ok := m.flash.Current(); !ok || n.Kind != domain.NoticeInfo {
		t.Fatalf("flash = %+v %v", n, ok)
	}
}

func TestRandomPickFocusesItem(t *testing.T) {
	m, _, _ := newTestModel(t, false)

	send(t, m, runes("r"))

	if id, ok := m.Session().Selection.HighlightedID(); !ok || id != coffee.ID {
		t.Fatalf("focus = %v %v, want %d", id, ok, coffee.ID)
	}
	if m.cursor != 2 {
		t.Fatalf("cursor = %d, want 2", m.cursor)
	}
}

func TestPanelSpringSettles(t *testing.T) {
	p := NewPanel(false)
	p.SetAnimated(false)
	p.SetSize(4)
	p.SetAnimated(true)
	p.SetSize(20)

	if p.Size() != 20 || p.Rows(100) != 4 {
		t.Fatalf("target %v rows %d, want 20 and 4 before stepping", p.Size(), p.Rows(100))
	}
	for i := 0; i < 10*fps && p.Step(); i++ {
	}
	if p.Moving() || p.Rows(100) != 20 {
		t.Fatalf("spring did not settle: rows %d", p.Rows(100))
	}
}
