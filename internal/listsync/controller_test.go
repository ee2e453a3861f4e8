package listsync

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"poi-map-service/internal/domain"
	"poi-map-service/internal/ports"
	"poi-map-service/internal/selection"
)

type fakeSource struct {
	lists  map[domain.Query][]domain.Item
	err    error
	random domain.Item
	calls  []domain.Query
}

func (s *fakeSource) Fetch(ctx context.Context, q domain.Query) ([]domain.Item, error) {
	s.calls = append(s.calls, q)
	if s.err != nil {
		return nil, s.err
	}
	return s.lists[q], nil
}

func (s *fakeSource) FetchRandom(ctx context.Context) (domain.Item, error) {
	if s.err != nil {
		return domain.Item{}, s.err
	}
	return s.random, nil
}

type fakeSink struct {
	calls  int
	result domain.RatingResult
	err    error
}

func (s *fakeSink) Submit(ctx context.Context, id domain.ItemID, score int) (domain.RatingResult, error) {
	s.calls++
	if s.err != nil {
		return domain.RatingResult{}, s.err
	}
	return s.result, nil
}

type fakeAuth bool

func (a fakeAuth) IsAuthenticated() bool { return bool(a) }

type recordingNotifier struct{ notices []domain.Notice }

func (n *recordingNotifier) Notify(notice domain.Notice) { n.notices = append(n.notices, notice) }

func (n *recordingNotifier) kinds() []domain.NoticeKind {
	out := make([]domain.NoticeKind, 0, len(n.notices))
	for _, x := range n.notices {
		out = append(out, x.Kind)
	}
	return out
}

type fakeSurface struct {
	next int
	pans int
	live map[ports.Handle]bool
}

func (s *fakeSurface) PanTo(domain.Coordinates) { s.pans++ }

func (s *fakeSurface) create() ports.Handle {
	s.next++
	h := ports.Handle(fmt.Sprintf("h%d", s.next))
	s.live[h] = true
	return h
}

func (s *fakeSurface) CreateMarker(domain.Coordinates) ports.Handle        { return s.create() }
func (s *fakeSurface) CreateLabel(domain.Coordinates, string) ports.Handle { return s.create() }
func (s *fakeSurface) Release(h ports.Handle)                              { delete(s.live, h) }

type wideViewport struct{}

func (wideViewport) Width() float64           { return 2000 }
func (wideViewport) ContainerExtent() float64 { return 1000 }

var (
	kimbap = domain.Item{ID: 17, Title: "소문난김밥처럼", Category: "분식"}
	tteok  = domain.Item{ID: 18, Title: "신전떡볶이 안양성결대점", Category: "떡볶이"}
	cafe   = domain.Item{ID: 59, Title: "메가MGC커피 안양성결대점", Category: "카페"}

	qAll   = domain.Query{Category: domain.CategoryAll}
	qSnack = domain.Query{Category: "분식"}
	qCafe  = domain.Query{Category: "카페"}
)

type fixture struct {
	source   *fakeSource
	sink     *fakeSink
	notifier *recordingNotifier
	surface  *fakeSurface
	sel      *selection.Controller
	c        *Controller
}

func newFixture(authed bool) *fixture {
	f := &fixture{
		source: &fakeSource{lists: map[domain.Query][]domain.Item{
			qAll:   {kimbap, tteok, cafe},
			qSnack: {kimbap},
			qCafe:  {cafe},
		}},
		sink:     &fakeSink{result: domain.RatingResult{ItemID: kimbap.ID, AvgRating: 4.5, RatingCount: 2}},
		notifier: &recordingNotifier{},
		surface:  &fakeSurface{live: map[ports.Handle]bool{}},
	}
	f.sel = selection.NewController(f.surface, wideViewport{}, nil, 768)
	f.c = NewController(f.source, f.sink, fakeAuth(authed), f.notifier, f.sel)
	return f
}

func TestRefreshAppliesLatestResult(t *testing.T) {
	f := newFixture(true)
	ctx := context.Background()

	if got := f.c.Refresh(ctx, "", ""); got != Applied {
		t.Fatalf("Refresh outcome = %v, want applied", got)
	}
	cur := f.c.Current()
	if cur.Len() != 3 || cur.Seq != 1 || cur.Query != qAll {
		t.Fatalf("current = %+v", cur)
	}
}

func TestOutOfOrderCompletionKeepsNewestList(t *testing.T) {
	f := newFixture(true)
	ctx := context.Background()

	pX := f.c.Begin(qCafe)
	pY := f.c.Begin(qSnack)

	// Y resolves first, X straggles in afterwards.
	rY := f.c.Fetch(ctx, pY)
	rX := f.c.Fetch(ctx, pX)

	if got := f.c.Complete(rY); got != Applied {
		t.Fatalf("Complete(Y) = %v, want applied", got)
	}
	if got := f.c.Complete(rX); got != Discarded {
		t.Fatalf("Complete(X) = %v, want discarded", got)
	}

	cur := f.c.Current()
	if cur.Query != qSnack || cur.Len() != 1 || cur.Items[0].ID != kimbap.ID {
		t.Fatalf("rendered list = %+v, want Y's result", cur)
	}
	if len(f.notifier.notices) != 0 {
		t.Fatalf("stale discard should be silent, got %v", f.notifier.notices)
	}
}

func TestStaleCompletionDiscardedEvenWhenNewerPending(t *testing.T) {
	f := newFixture(true)
	ctx := context.Background()

	pX := f.c.Begin(qCafe)
	f.c.Begin(qSnack)

	if got := f.c.Complete(f.c.Fetch(ctx, pX)); got != Discarded {
		t.Fatalf("Complete(X) = %v, want discarded", got)
	}
	if f.c.Current().Len() != 0 {
		t.Fatalf("stale result rendered: %+v", f.c.Current())
	}
}

func TestRefreshReconcilesFocus(t *testing.T) {
	f := newFixture(true)
	ctx := context.Background()

	f.c.Refresh(ctx, "all", "")
	if !f.c.Select(tteok.ID) {
		t.Fatalf("Select(%d) failed", tteok.ID)
	}
	if len(f.surface.live) != 2 {
		t.Fatalf("live handles = %d, want marker+label", len(f.surface.live))
	}
	before := f.sel.State()
	pans := f.surface.pans

	// Still listed: focus is untouched, no re-pan and no new handles.
	f.source.lists[qAll] = []domain.Item{tteok, cafe}
	f.c.Refresh(ctx, "all", "")
	if id, ok := f.sel.HighlightedID(); !ok || id != tteok.ID {
		t.Fatalf("focus lost although item still listed: %v %v", id, ok)
	}
	if f.surface.pans != pans {
		t.Fatalf("pans = %d after refresh, want %d", f.surface.pans, pans)
	}
	after := f.sel.State()
	if *after.Marker != *before.Marker || *after.Label != *before.Label {
		t.Fatalf("handles recreated: before %s/%s, after %s/%s",
			*before.Marker, *before.Label, *after.Marker, *after.Label)
	}
	if len(f.surface.live) != 2 {
		t.Fatalf("live handles = %d after refresh, want 2", len(f.surface.live))
	}

	// Gone from the list: focus is cleared and the handles released.
	f.c.Refresh(ctx, "카페", "")
	if _, ok := f.sel.HighlightedID(); ok {
		t.Fatalf("focus kept for an item that left the list")
	}
	if len(f.surface.live) != 0 {
		t.Fatalf("handles leaked: %v", f.surface.live)
	}
}

func TestFetchFailureKeepsListAndFocus(t *testing.T) {
	f := newFixture(true)
	ctx := context.Background()

	f.c.Refresh(ctx, "", "")
	f.c.Select(kimbap.ID)

	f.source.err = errors.New("connection refused")
	if got := f.c.Refresh(ctx, "카페", ""); got != Failed {
		t.Fatalf("Refresh outcome = %v, want failed", got)
	}

	if f.c.Current().Len() != 3 {
		t.Fatalf("list replaced on failure: %+v", f.c.Current())
	}
	if id, ok := f.sel.HighlightedID(); !ok || id != kimbap.ID {
		t.Fatalf("focus changed on failure")
	}
	kinds := f.notifier.kinds()
	if len(kinds) != 1 || kinds[0] != domain.NoticeFetchFailed {
		t.Fatalf("notices = %v, want one fetch failure", kinds)
	}
}

func TestFetchWrapsFetchFailed(t *testing.T) {
	f := newFixture(true)
	f.source.err = errors.New("boom")

	r := f.c.Fetch(context.Background(), f.c.Begin(qAll))
	if !errors.Is(r.Err, domain.ErrFetchFailed) {
		t.Fatalf("Fetch err = %v, want ErrFetchFailed", r.Err)
	}
}

func TestRateRequiresAuthentication(t *testing.T) {
	f := newFixture(false)

	err := f.c.Rate(context.Background(), kimbap.ID, 5)
	if !errors.Is(err, domain.ErrAuthRequired) {
		t.Fatalf("Rate err = %v, want ErrAuthRequired", err)
	}
	if f.sink.calls != 0 {
		t.Fatalf("sink called %d times without auth", f.sink.calls)
	}
	kinds := f.notifier.kinds()
	if len(kinds) != 1 || kinds[0] != domain.NoticeAuthRequired {
		t.Fatalf("notices = %v, want one auth-required notice", kinds)
	}
	if f.c.Latest() != 0 {
		t.Fatalf("refresh issued after rejected rating")
	}
}

func TestRateRejectsInvalidScore(t *testing.T) {
	f := newFixture(true)

	if err := f.c.Rate(context.Background(), kimbap.ID, 9); !errors.Is(err, domain.ErrInvalidScore) {
		t.Fatalf("Rate err = %v, want ErrInvalidScore", err)
	}
	if f.sink.calls != 0 {
		t.Fatalf("sink called for invalid score")
	}
}

func TestRateSuccessRefreshesLastQuery(t *testing.T) {
	f := newFixture(true)
	ctx := context.Background()

	f.c.Refresh(ctx, "분식", "")
	before := f.c.Latest()

	if err := f.c.Rate(ctx, kimbap.ID, 5); err != nil {
		t.Fatalf("Rate unexpected error: %v", err)
	}
	if f.sink.calls != 1 {
		t.Fatalf("sink calls = %d, want 1", f.sink.calls)
	}
	if f.c.Latest() != before+1 {
		t.Fatalf("latest seq = %d, want %d", f.c.Latest(), before+1)
	}
	last := f.source.calls[len(f.source.calls)-1]
	if last != qSnack {
		t.Fatalf("refresh after rating used %+v, want %+v", last, qSnack)
	}
	if f.notifier.notices[0].Kind != domain.NoticeInfo {
		t.Fatalf("first notice = %+v, want info", f.notifier.notices[0])
	}
}

func TestRateFailureChangesNothing(t *testing.T) {
	f := newFixture(true)
	ctx := context.Background()
	f.c.Refresh(ctx, "", "")
	before := f.c.Latest()

	f.sink.err = fmt.Errorf("post rating: %w", domain.ErrSubmitFailed)
	if err := f.c.Rate(ctx, kimbap.ID, 3); !errors.Is(err, domain.ErrSubmitFailed) {
		t.Fatalf("Rate err = %v, want ErrSubmitFailed", err)
	}
	if f.c.Latest() != before || f.c.Current().Len() != 3 {
		t.Fatalf("state changed after failed submit")
	}
	kinds := f.notifier.kinds()
	if len(kinds) != 1 || kinds[0] != domain.NoticeSubmitFailed {
		t.Fatalf("notices = %v, want one submit failure", kinds)
	}

	f.sink.err = fmt.Errorf("post rating: %w", domain.ErrAuthRequired)
	f.c.Rate(ctx, kimbap.ID, 3)
	if got := f.notifier.kinds()[1]; got != domain.NoticeAuthRequired {
		t.Fatalf("server 401 notice = %v, want auth required", got)
	}
}

func TestRandomPickFocusesListedItem(t *testing.T) {
	f := newFixture(true)
	ctx := context.Background()
	f.c.Refresh(ctx, "분식", "")

	f.source.random = kimbap
	if !f.c.CompleteRandom(f.c.FetchRandom(ctx)) {
		t.Fatalf("listed random pick was not focused")
	}
	if id, _ := f.sel.HighlightedID(); id != kimbap.ID {
		t.Fatalf("focused %d, want %d", id, kimbap.ID)
	}

	f.source.random = cafe
	if f.c.CompleteRandom(f.c.FetchRandom(ctx)) {
		t.Fatalf("unlisted random pick was focused")
	}
	if id, _ := f.sel.HighlightedID(); id != kimbap.ID {
		t.Fatalf("focus moved to unlisted pick")
	}
}

func TestSequenceIsMonotonic(t *testing.T) {
	var s Sequence
	prev := s.Current()
	if prev != 0 {
		t.Fatalf("initial sequence = %d, want 0", prev)
	}
	for i := 0; i < 10; i++ {
		n := s.Next()
		if n <= prev {
			t.Fatalf("Next() = %d after %d", n, prev)
		}
		prev = n
	}
}
