package ports

import (
	"context"
	"poi-map-service/internal/domain"
)

// ItemSource fetches list snapshots for the browser. Implementations make a
// single attempt per call; timeouts are theirs to enforce.
type ItemSource interface {
	Fetch(ctx context.Context, q domain.Query) ([]domain.Item, error)
	FetchRandom(ctx context.Context) (domain.Item, error)
}

// RatingSink submits a score and returns the server's new aggregate.
// Fails with domain.ErrAuthRequired or domain.ErrSubmitFailed.
type RatingSink interface {
	Submit(ctx context.Context, id domain.ItemID, score int) (domain.RatingResult, error)
}

// AuthGate is consulted synchronously before any rating request.
type AuthGate interface {
	IsAuthenticated() bool
}

// Notifier surfaces user-visible messages. Fire-and-forget.
type Notifier interface {
	Notify(n domain.Notice)
}
