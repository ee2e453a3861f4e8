package services

import (
	"context"
	"errors"
	"fmt"

	"poi-map-service/internal/domain"
	"poi-map-service/internal/ports"
)

// ListItems filters through the repository and ranks the result for display.
func ListItems(ctx context.Context, repo ports.ItemRepository, q domain.Query) ([]domain.Item, error) {
	q = q.Normalize()

	items, err := repo.ListItems(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list items category=%q search=%q: %w", q.Category, q.Search, err)
	}

	return RankItems(items, q.Search), nil
}

// RateItem validates the score and records it for user.
func RateItem(ctx context.Context, repo ports.ItemRepository, user string, id domain.ItemID, score int) (domain.RatingResult, error) {
	if user == "" {
		return domain.RatingResult{}, domain.ErrAuthRequired
	}
	if err := domain.ValidateScore(score); err != nil {
		return domain.RatingResult{}, err
	}
	if id <= 0 {
		return domain.RatingResult{}, fmt.Errorf("rate item id=%d: %w", id, domain.ErrItemNotFound)
	}

	res, err := repo.RecordRating(ctx, domain.Rating{ItemID: id, UserID: user, Score: score})
	if err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			return domain.RatingResult{}, err
		}
		return domain.RatingResult{}, fmt.Errorf("rate item id=%d: %w", id, err)
	}
	return res, nil
}
