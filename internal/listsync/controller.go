// Package listsync keeps the rendered item list in step with the latest
// request and reconciles focus when the list changes under the user.
//
// Refreshes are split at their suspension point: Begin and Complete run on
// the event loop, Fetch may run anywhere. A result is applied only if its
// sequence number is still the latest one issued, so overlapping refreshes
// can complete in any order.
package listsync

import (
	"context"
	"fmt"
	"log"

	"poi-map-service/internal/domain"
	"poi-map-service/internal/ports"
)

// Focus is the part of the selection controller the list reconciles against.
type Focus interface {
	HighlightedID() (domain.ItemID, bool)
	Focus(item domain.Item)
	Clear()
}

// Sequence is a monotonically increasing request counter. It starts at 0 and
// is never reset.
type Sequence struct{ n uint64 }

func (s *Sequence) Next() uint64    { s.n++; return s.n }
func (s *Sequence) Current() uint64 { return s.n }

// Pending identifies an issued refresh.
type Pending struct {
	Seq   uint64
	Query domain.Query
}

// Result is the completion of a Fetch.
type Result struct {
	Pending
	Items []domain.Item
	Err   error
}

// Outcome reports what Complete did with a result.
type Outcome int

const (
	Applied Outcome = iota
	Discarded
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Applied:
		return "applied"
	case Discarded:
		return "discarded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

type Controller struct {
	source   ports.ItemSource
	sink     ports.RatingSink
	auth     ports.AuthGate
	notifier ports.Notifier
	focus    Focus

	seq     Sequence
	last    domain.Query
	current domain.ItemList
	stale   int
}

func NewController(
	source ports.ItemSource,
	sink ports.RatingSink,
	auth ports.AuthGate,
	notifier ports.Notifier,
	focus Focus,
) *Controller {
	return &Controller{
		source:   source,
		sink:     sink,
		auth:     auth,
		notifier: notifier,
		focus:    focus,
		last:     domain.Query{}.Normalize(),
	}
}

// Begin issues a refresh for q and makes it the latest request.
func (c *Controller) Begin(q domain.Query) Pending {
	q = q.Normalize()
	c.last = q
	return Pending{Seq: c.seq.Next(), Query: q}
}

// Fetch performs the blocking fetch for p. It does not touch controller state.
func (c *Controller) Fetch(ctx context.Context, p Pending) Result {
	items, err := c.source.Fetch(ctx, p.Query)
	if err != nil {
		err = fmt.Errorf("refresh seq=%d category=%q search=%q: %w: %w",
			p.Seq, p.Query.Category, p.Query.Search, domain.ErrFetchFailed, err)
	}
	return Result{Pending: p, Items: items, Err: err}
}

// Complete applies r if it answers the latest request. Stale results are
// dropped without notice; failures keep the current list and focus.
func (c *Controller) Complete(r Result) Outcome {
	if r.Seq != c.seq.Current() {
		c.stale++
		log.Printf("listsync: %v seq=%d latest=%d", domain.ErrStaleResult, r.Seq, c.seq.Current())
		return Discarded
	}

	if r.Err != nil {
		log.Printf("listsync: %v", r.Err)
		c.notify(domain.NoticeFetchFailed, "Could not load places. Showing the previous list.")
		return Failed
	}

	c.current = domain.ItemList{Query: r.Query, Seq: r.Seq, Items: r.Items}

	if id, ok := c.focus.HighlightedID(); ok && !c.current.Contains(id) {
		c.focus.Clear()
	}
	return Applied
}

// Refresh runs a whole refresh cycle synchronously.
func (c *Controller) Refresh(ctx context.Context, category, search string) Outcome {
	p := c.Begin(domain.Query{Category: category, Search: search})
	return c.Complete(c.Fetch(ctx, p))
}

// Select focuses the listed item with the given id. Ids not in the rendered
// list are ignored.
func (c *Controller) Select(id domain.ItemID) bool {
	item, ok := c.current.Find(id)
	if !ok {
		return false
	}
	c.focus.Focus(item)
	return true
}

// Current is the rendered list.
func (c *Controller) Current() domain.ItemList { return c.current }

// LastQuery is the query of the most recently issued refresh.
func (c *Controller) LastQuery() domain.Query { return c.last }

// StaleCount is the number of results discarded as stale.
func (c *Controller) StaleCount() int { return c.stale }

// Latest is the sequence number of the most recently issued refresh.
func (c *Controller) Latest() uint64 { return c.seq.Current() }

func (c *Controller) notify(kind domain.NoticeKind, msg string) {
	if c.notifier == nil {
		return
	}
	c.notifier.Notify(domain.Notice{Kind: kind, Message: msg})
}
