// Package tui is the terminal front end of the POI browser. It adapts
// bubbletea messages into session events and renders the map, the sheet and
// the status line.
package tui

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"poi-map-service/internal/adapters/notify"
	"poi-map-service/internal/adapters/termmap"
	"poi-map-service/internal/domain"
	"poi-map-service/internal/ports"
	"poi-map-service/internal/session"
	"poi-map-service/internal/sheet"
)

// Options configure a Model.
type Options struct {
	Source     ports.ItemSource
	Sink       ports.RatingSink
	Auth       ports.AuthGate
	Notifier   ports.Notifier
	Session    session.Options
	Categories []string
	Center     domain.Coordinates
	User       string
	// Static disables the sheet's spring animation.
	Static bool
}

type eventMsg struct{ ev session.Event }

type frameMsg struct{}

// Model is the bubbletea model. Update is the only caller of Dispatch.
type Model struct {
	ctx     context.Context
	s       *session.Session
	surface *termmap.Surface
	panel   *Panel
	vp      *Viewport
	flash   *Flash

	categories []string
	catIdx     int
	search     textinput.Model
	searching  bool

	cursor    int
	offset    int
	started   bool
	animating bool
	user      string
}

func New(ctx context.Context, opts Options) *Model {
	surface := termmap.New(opts.Center)
	panel := NewPanel(opts.Static)
	vp := &Viewport{}
	flash := NewFlash()

	s := session.New(session.Deps{
		Surface:  surface,
		Panel:    panel,
		Viewport: vp,
		Source:   opts.Source,
		Sink:     opts.Sink,
		Auth:     opts.Auth,
		Notifier: notify.Multi{flash, opts.Notifier},
	}, opts.Session)

	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "search title or address"
	ti.CharLimit = 64
	ti.Cursor.SetMode(cursor.CursorStatic)

	return &Model{
		ctx:        ctx,
		s:          s,
		surface:    surface,
		panel:      panel,
		vp:         vp,
		flash:      flash,
		categories: append([]string{domain.CategoryAll}, opts.Categories...),
		search:     ti,
		user:       opts.User,
	}
}

// Session exposes the controllers for inspection.
func (m *Model) Session() *session.Session { return m.s }

func (m *Model) Init() tea.Cmd { return nil }

// dispatch feeds ev to the session and turns the returned task into a command.
func (m *Model) dispatch(ev session.Event) tea.Cmd {
	task := m.s.Dispatch(ev)
	m.afterDispatch()

	cmds := []tea.Cmd{m.animate()}
	if task != nil {
		ctx := m.ctx
		cmds = append(cmds, func() tea.Msg { return eventMsg{ev: task(ctx)} })
	}
	return tea.Batch(cmds...)
}

func (m *Model) afterDispatch() {
	items := m.s.List.Current().Items
	m.surface.SetPoints(items)

	if id, ok := m.s.Selection.HighlightedID(); ok {
		if i := m.s.List.Current().IndexOf(id); i >= 0 {
			m.cursor = i
		}
	}
	m.cursor = max(0, min(m.cursor, len(items)-1))
}

func (m *Model) animate() tea.Cmd {
	if m.animating || !m.panel.Moving() {
		return nil
	}
	m.animating = true
	return tea.Tick(frameInterval(), func(time.Time) tea.Msg { return frameMsg{} })
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.vp.cols, m.vp.rows = msg.Width, msg.Height
		if !m.started {
			m.started = true
			return m, m.dispatch(session.Started{})
		}
		return m, m.dispatch(session.Resized{})

	case eventMsg:
		return m, m.dispatch(msg.ev)

	case frameMsg:
		m.animating = false
		m.panel.Step()
		return m, m.animate()

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	case tea.KeyMsg:
		if m.searching {
			return m, m.handleSearchKey(msg)
		}
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) selectedItem() (domain.Item, bool) {
	items := m.s.List.Current().Items
	if m.cursor < 0 || m.cursor >= len(items) {
		return domain.Item{}, false
	}
	return items[m.cursor], true
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch key := msg.String(); key {
	case "ctrl+c", "q":
		return tea.Quit
	case "up", "k":
		m.cursor = max(0, m.cursor-1)
	case "down", "j":
		m.cursor = max(0, min(len(m.s.List.Current().Items)-1, m.cursor+1))
	case "enter":
		if it, ok := m.selectedItem(); ok {
			return m.dispatch(session.ItemTapped{ID: it.ID})
		}
	case "1", "2", "3", "4", "5":
		target, ok := m.s.Selection.HighlightedID()
		if !ok {
			it, found := m.selectedItem()
			if !found {
				return nil
			}
			target = it.ID
		}
		return m.dispatch(session.RateRequested{ID: target, Score: int(key[0] - '0')})
	case "tab", "shift+tab":
		step := 1
		if key == "shift+tab" {
			step = len(m.categories) - 1
		}
		m.catIdx = (m.catIdx + step) % len(m.categories)
		return m.dispatch(session.FilterChanged{Category: m.categories[m.catIdx]})
	case "/":
		m.searching = true
		m.search.SetValue(m.s.Query().Search)
		return m.search.Focus()
	case "r":
		return m.dispatch(session.RandomRequested{})
	case "esc":
		return m.dispatch(session.ClearRequested{})
	case "+", "=":
		m.surface.Zoom(1.5)
	case "-":
		m.surface.Zoom(1 / 1.5)
	case "pgup", "pgdown":
		// Keyboard resize goes through the same gesture as a mouse drag.
		if m.s.Sheet.Dragging() {
			return nil
		}
		dir := 1
		if key == "pgdown" {
			dir = -1
		}
		g := m.s.Sheet
		extent := m.vp.ContainerExtent()
		from, to := g.Resting(), adjacentSnap(g.Snaps(), g.Resting(), dir)
		if to == from {
			return nil
		}
		// Release exactly on the neighbouring snap point so any resolver keeps it.
		delta := to.Size(extent) - from.Size(extent)
		return tea.Batch(
			m.dispatch(session.DragStart{Coord: 0}),
			m.dispatch(session.DragMove{Coord: -delta}),
			m.dispatch(session.DragEnd{}),
		)
	}
	return nil
}

// adjacentSnap returns the snap point next to cur in direction dir, or cur at
// either end.
func adjacentSnap(snaps sheet.SnapPoints, cur sheet.SnapPoint, dir int) sheet.SnapPoint {
	i := slices.Index(snaps, cur)
	if i < 0 {
		return cur
	}
	j := i + dir
	if j < 0 || j >= len(snaps) {
		return cur
	}
	return snaps[j]
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		m.searching = false
		m.search.Blur()
		return m.dispatch(session.SearchChanged{Term: m.search.Value()})
	case "esc":
		m.searching = false
		m.search.Blur()
		return nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return cmd
}

// sheetTop is the screen row of the sheet handle.
func (m *Model) sheetTop() int {
	extent := m.vp.extent()
	return 1 + extent - m.panel.Rows(extent)
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	y := float64(msg.Y)
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return nil
		}
		top := m.sheetTop()
		if msg.Y == top {
			return m.dispatch(session.DragStart{Coord: y})
		}
		if row := msg.Y - top - 1 - m.searchRows(); row >= 0 && msg.Y < 1+m.vp.extent() {
			items := m.s.List.Current().Items
			if i := m.offset + row; i < len(items) {
				m.cursor = i
				return m.dispatch(session.ItemTapped{ID: items[i].ID})
			}
		}
	case tea.MouseActionMotion:
		if m.s.Sheet.Dragging() {
			return m.dispatch(session.DragMove{Coord: y})
		}
	case tea.MouseActionRelease:
		if m.s.Sheet.Dragging() {
			return m.dispatch(session.DragEnd{})
		}
	}
	return nil
}

func (m *Model) searchRows() int {
	if m.searching {
		return 1
	}
	return 0
}

func (m *Model) View() string {
	if m.vp.cols == 0 || m.vp.rows == 0 {
		return ""
	}
	extent := m.vp.extent()
	sheetRows := m.panel.Rows(extent)
	mapRows := extent - sheetRows

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	if mapRows > 0 {
		b.WriteString(m.surface.Render(m.vp.cols, mapRows))
		b.WriteString("\n")
	}
	b.WriteString(m.renderSheet(sheetRows))
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	return b.String()
}

func (m *Model) renderHeader() string {
	parts := []string{titleStyle.Render("POI Map")}
	for i, c := range m.categories {
		if i == m.catIdx {
			parts = append(parts, activeCatStyle.Render(c))
		} else {
			parts = append(parts, categoryStyle.Render(c))
		}
	}
	return lipgloss.NewStyle().MaxWidth(m.vp.cols).Render(strings.Join(parts, " "))
}

func (m *Model) renderSheet(rows int) string {
	list := m.s.List.Current()
	lines := make([]string, 0, rows)

	handle := handleStyle.Render("━━━━") + " " + countStyle.Render(fmt.Sprintf("%d places nearby", list.Len()))
	lines = append(lines, handle)
	if m.searching && len(lines) < rows {
		lines = append(lines, m.search.View())
	}

	visible := rows - len(lines)
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if visible > 0 && m.cursor >= m.offset+visible {
		m.offset = m.cursor - visible + 1
	}

	focused, hasFocus := m.s.Selection.HighlightedID()
	for i := m.offset; i < len(list.Items) && len(lines) < rows; i++ {
		it := list.Items[i]
		text := fmt.Sprintf("%s  %s  ★ %.1f (%d)", it.Title, dimStyle.Render(it.Category), it.AvgRating, it.RatingCount)
		style := rowStyle
		switch {
		case hasFocus && it.ID == focused:
			style = focusedRowStyle
		case i == m.cursor:
			style = cursorRowStyle
		}
		lines = append(lines, style.MaxWidth(m.vp.cols).Render(text))
	}
	for len(lines) < rows {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderStatus() string {
	if n, ok := m.flash.Current(); ok {
		if n.Kind.IsError() {
			return errorStyle.Render(n.Message)
		}
		return infoStyle.Render(n.Message)
	}
	who := "not logged in"
	if m.user != "" {
		who = m.user
	}
	return dimStyle.MaxWidth(m.vp.cols).Render(
		"↑↓ move · enter focus · 1-5 rate · tab category · / search · r random · esc clear · q quit · " + who)
}
