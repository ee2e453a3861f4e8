package listsync

import (
	"context"
	"errors"
	"fmt"
	"log"

	"poi-map-service/internal/domain"
)

// RateRequest is a rating that passed the local checks.
type RateRequest struct {
	ItemID domain.ItemID
	Score  int
}

type RateResult struct {
	RateRequest
	Result domain.RatingResult
	Err    error
}

// BeginRate checks authorization and the score before anything is sent.
// Failures are surfaced through the notifier and change no state.
func (c *Controller) BeginRate(id domain.ItemID, score int) (RateRequest, error) {
	if c.auth == nil || !c.auth.IsAuthenticated() {
		c.notify(domain.NoticeAuthRequired, "Log in to rate places.")
		return RateRequest{}, fmt.Errorf("rate item %d: %w", id, domain.ErrAuthRequired)
	}
	if err := domain.ValidateScore(score); err != nil {
		c.notify(domain.NoticeInvalidInput, "Scores go from 1 to 5.")
		return RateRequest{}, fmt.Errorf("rate item %d: %w", id, err)
	}
	return RateRequest{ItemID: id, Score: score}, nil
}

// SubmitRate sends the rating. It does not touch controller state.
func (c *Controller) SubmitRate(ctx context.Context, req RateRequest) RateResult {
	res, err := c.sink.Submit(ctx, req.ItemID, req.Score)
	if err != nil {
		err = fmt.Errorf("submit rating item=%d score=%d: %w", req.ItemID, req.Score, err)
	}
	return RateResult{RateRequest: req, Result: res, Err: err}
}

// CompleteRate reports the outcome and, on success, begins a refresh of the
// last query so the list shows the server's aggregate. The average is never
// recomputed locally.
func (c *Controller) CompleteRate(r RateResult) (Pending, bool) {
	if r.Err != nil {
		log.Printf("listsync: %v", r.Err)
		if errors.Is(r.Err, domain.ErrAuthRequired) {
			c.notify(domain.NoticeAuthRequired, "Log in to rate places.")
		} else {
			c.notify(domain.NoticeSubmitFailed, "Could not send your rating. Try again.")
		}
		return Pending{}, false
	}

	c.notify(domain.NoticeInfo, fmt.Sprintf("Rating saved. Average is now %.1f (%d).", r.Result.AvgRating, r.Result.RatingCount))
	return c.Begin(c.last), true
}

// Rate runs a whole rating cycle synchronously, including the follow-up refresh.
func (c *Controller) Rate(ctx context.Context, id domain.ItemID, score int) error {
	req, err := c.BeginRate(id, score)
	if err != nil {
		return err
	}

	res := c.SubmitRate(ctx, req)
	p, ok := c.CompleteRate(res)
	if !ok {
		return res.Err
	}

	c.Complete(c.Fetch(ctx, p))
	return nil
}
