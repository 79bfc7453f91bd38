/*
errors.go - Centralized error types for the indexation engine

PURPOSE:
  All core error types in one place. Callers (the API layer, the fine
  calculator) classify failures with errors.Is and the helpers below; the
  engine itself never logs.

ERROR CATEGORIES:
  1. Feed errors - the external index provider is unreachable or unparseable
  2. Configuration errors - the static concession registry disagrees with the
     feed (missing anchor, zero base index); these indicate a stale registry
  3. Input errors - caller-supplied dates are out of order

USAGE:
  if errors.Is(err, indexation.ErrFeedUnavailable) {
      // render a neutral "data unavailable" state
  }
*/
package indexation

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrFeedUnavailable is returned when the external index provider cannot
	// be reached, answers non-200, or returns an unparseable body. There is
	// no retry; the caller decides whether to abort or surface a message.
	ErrFeedUnavailable = errors.New("index feed unavailable")

	// ErrAnchorNotFound is returned when a concession's base date is absent
	// from the fetched series. Nearest-date fallback is deliberately not
	// attempted.
	ErrAnchorNotFound = errors.New("base date not found in index series")

	// ErrZeroBaseIndex is returned when the index value at the base date (or
	// at a trajectory step) is zero. Scaling by it is economically undefined
	// and must not silently produce an infinite price.
	ErrZeroBaseIndex = errors.New("index value at base date is zero")

	// ErrPaymentBeforeDue is returned when a fine calculation is requested
	// with a payment date earlier than the due date.
	ErrPaymentBeforeDue = errors.New("payment date precedes due date")
)

// AnchorError carries the anchor date that was missing from the series.
type AnchorError struct {
	Anchor time.Time
}

func (e *AnchorError) Error() string {
	return fmt.Sprintf("base date %s not found in index series", e.Anchor.Format("2006-01-02"))
}

func (e *AnchorError) Unwrap() error { return ErrAnchorNotFound }

// ZeroIndexError carries the date whose index value was zero.
type ZeroIndexError struct {
	Date time.Time
}

func (e *ZeroIndexError) Error() string {
	return fmt.Sprintf("index value at %s is zero", e.Date.Format("2006-01-02"))
}

func (e *ZeroIndexError) Unwrap() error { return ErrZeroBaseIndex }

// IsConfigError reports whether the error indicates the static concession
// registry is stale relative to the feed, as opposed to a transient feed
// failure or bad input.
func IsConfigError(err error) bool {
	return errors.Is(err, ErrAnchorNotFound) || errors.Is(err, ErrZeroBaseIndex)
}
