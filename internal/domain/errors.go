package domain

import "errors"

var (
	// ErrStaleResult marks a fetch completion superseded by a newer request.
	// It is never shown to the user.
	ErrStaleResult = errors.New("stale result")

	// ErrFetchFailed wraps network or decode failures while refreshing the list.
	ErrFetchFailed = errors.New("fetch failed")

	// ErrAuthRequired is returned when rating without being signed in.
	ErrAuthRequired = errors.New("login required")

	// ErrSubmitFailed wraps network failures while submitting a rating.
	ErrSubmitFailed = errors.New("rating submit failed")

	ErrItemNotFound = errors.New("item not found")
	ErrInvalidScore = errors.New("score must be between 1 and 5")
)
