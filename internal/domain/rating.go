package domain

import "fmt"

const (
	MinScore = 1
	MaxScore = 5
)

// A single user's score for an item, as persisted by the server.
type Rating struct {
	ItemID ItemID
	UserID string
	Score  int
}

// RatingResult is the server-authoritative aggregate after a rating was recorded.
type RatingResult struct {
	ItemID      ItemID
	AvgRating   float64
	RatingCount int
}

// ValidateScore rejects scores outside MinScore..MaxScore.
func ValidateScore(score int) error {
	if score < MinScore || score > MaxScore {
		return fmt.Errorf("validate score %d: %w", score, ErrInvalidScore)
	}
	return nil
}

// RunningAverage folds one more score into an aggregate of count scores.
func RunningAverage(avg float64, count int, score int) (float64, int) {
	n := count + 1
	return (avg*float64(count) + float64(score)) / float64(n), n
}
