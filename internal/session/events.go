package session

import (
	"poi-map-service/internal/domain"
	"poi-map-service/internal/listsync"
)

// Event is a typed input to the session. User input and the completions of
// suspended tasks are both events.
type Event interface{ event() }

type (
	// Started requests the initial list.
	Started struct{}

	DragStart struct{ Coord float64 }
	DragMove  struct{ Coord float64 }
	DragEnd   struct{}

	// Resized reports a change of the container extent.
	Resized struct{}

	FilterChanged struct{ Category string }
	SearchChanged struct{ Term string }

	ItemTapped    struct{ ID domain.ItemID }
	RateRequested struct {
		ID    domain.ItemID
		Score int
	}
	RandomRequested struct{}

	// ClearRequested drops the current focus.
	ClearRequested struct{}

	RefreshCompleted struct{ Result listsync.Result }
	RateCompleted    struct{ Result listsync.RateResult }
	RandomCompleted  struct{ Result listsync.RandomResult }
)

func (Started) event()          {}
func (DragStart) event()        {}
func (DragMove) event()         {}
func (DragEnd) event()          {}
func (Resized) event()          {}
func (FilterChanged) event()    {}
func (SearchChanged) event()    {}
func (ItemTapped) event()       {}
func (RateRequested) event()    {}
func (RandomRequested) event()  {}
func (ClearRequested) event()   {}
func (RefreshCompleted) event() {}
func (RateCompleted) event()    {}
func (RandomCompleted) event()  {}
