// Package session wires the sheet, selection and list controllers for one
// view session and dispatches typed events to them.
//
// Dispatch must be called from a single goroutine. Work that can block is
// never run inside Dispatch; it is returned as a Task whose completion event
// is fed back through Dispatch.
package session

import (
	"context"
	"log"

	"poi-map-service/internal/domain"
	"poi-map-service/internal/listsync"
	"poi-map-service/internal/ports"
	"poi-map-service/internal/selection"
	"poi-map-service/internal/sheet"
)

// Task is a suspended operation. It runs off the event loop and returns the
// event that completes it.
type Task func(ctx context.Context) Event

// Deps are the collaborators of a view session.
type Deps struct {
	Surface  ports.MapSurface
	Panel    ports.Panel
	Viewport ports.Viewport
	Source   ports.ItemSource
	Sink     ports.RatingSink
	Auth     ports.AuthGate
	Notifier ports.Notifier
}

// Options tune the view policies.
type Options struct {
	Snaps       sheet.SnapPoints
	InitialSnap sheet.SnapPoint
	Resolver    sheet.Resolver
	NarrowWidth float64
}

type Session struct {
	Sheet     *sheet.GestureController
	Selection *selection.Controller
	List      *listsync.Controller

	query domain.Query
}

func New(deps Deps, opts Options) *Session {
	snaps := opts.Snaps
	if len(snaps) == 0 {
		snaps = sheet.DefaultSnapPoints
	}

	g := sheet.NewGestureController(deps.Panel, deps.Viewport, snaps,
		sheet.WithResolver(opts.Resolver),
		sheet.WithInitialSnap(opts.InitialSnap),
	)
	sel := selection.NewController(deps.Surface, deps.Viewport, g, opts.NarrowWidth)
	list := listsync.NewController(deps.Source, deps.Sink, deps.Auth, deps.Notifier, sel)

	return &Session{
		Sheet:     g,
		Selection: sel,
		List:      list,
		query:     domain.Query{}.Normalize(),
	}
}

// Query is the filter state the next refresh will use.
func (s *Session) Query() domain.Query { return s.query }

// Dispatch applies ev and returns the task to run, or nil.
func (s *Session) Dispatch(ev Event) Task {
	switch ev := ev.(type) {
	case Started:
		s.Sheet.Init()
		return s.refresh()

	case DragStart:
		if !s.Sheet.DragStart(ev.Coord) {
			log.Printf("session: drag-start at %.1f ignored, gesture already active", ev.Coord)
		}
	case DragMove:
		s.Sheet.DragMove(ev.Coord)
	case DragEnd:
		s.Sheet.DragEnd()
	case Resized:
		s.Sheet.Relayout()

	case FilterChanged:
		s.query.Category = ev.Category
		return s.refresh()
	case SearchChanged:
		s.query.Search = ev.Term
		return s.refresh()

	case ItemTapped:
		s.List.Select(ev.ID)
	case ClearRequested:
		s.Selection.Clear()

	case RateRequested:
		req, err := s.List.BeginRate(ev.ID, ev.Score)
		if err != nil {
			return nil
		}
		return func(ctx context.Context) Event {
			return RateCompleted{Result: s.List.SubmitRate(ctx, req)}
		}
	case RandomRequested:
		return func(ctx context.Context) Event {
			return RandomCompleted{Result: s.List.FetchRandom(ctx)}
		}

	case RefreshCompleted:
		s.List.Complete(ev.Result)
	case RateCompleted:
		if p, ok := s.List.CompleteRate(ev.Result); ok {
			return s.fetch(p)
		}
	case RandomCompleted:
		s.List.CompleteRandom(ev.Result)

	default:
		log.Printf("session: unhandled event %T", ev)
	}
	return nil
}

func (s *Session) refresh() Task {
	return s.fetch(s.List.Begin(s.query))
}

func (s *Session) fetch(p listsync.Pending) Task {
	return func(ctx context.Context) Event {
		return RefreshCompleted{Result: s.List.Fetch(ctx, p)}
	}
}
