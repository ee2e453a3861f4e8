package listsync

import (
	"context"
	"fmt"
	"log"

	"poi-map-service/internal/domain"
)

type RandomResult struct {
	Item domain.Item
	Err  error
}

// FetchRandom asks the source for a random pick. It does not touch controller state.
func (c *Controller) FetchRandom(ctx context.Context) RandomResult {
	item, err := c.source.FetchRandom(ctx)
	if err != nil {
		err = fmt.Errorf("random pick: %w: %w", domain.ErrFetchFailed, err)
	}
	return RandomResult{Item: item, Err: err}
}

// CompleteRandom focuses the pick when it is in the rendered list.
func (c *Controller) CompleteRandom(r RandomResult) bool {
	if r.Err != nil {
		log.Printf("listsync: %v", r.Err)
		c.notify(domain.NoticeFetchFailed, "Could not pick a place.")
		return false
	}
	if !c.Select(r.Item.ID) {
		log.Printf("listsync: random pick id=%d not in rendered list", r.Item.ID)
		return false
	}
	return true
}
