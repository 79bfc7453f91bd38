/*
Package indexation provides the core price-indexation engine.

PURPOSE:
  This package contains the domain-agnostic types and algorithms for scaling a
  contractual base price by the variation of a monthly economic index series,
  and for reconstructing the historical trajectory of that price for charting.

KEY CONCEPTS IN THIS FILE (series.go):
  - Observation: A single (date, value) reading of an index series
  - Series: The ordered history of one named index
  - Anchor lookups: exact-date base index and latest-reading-for-month queries

DESIGN PRINCIPLES:
  1. Precision: index levels and prices use decimal.Decimal, never floats
  2. Day granularity: observation dates are timezone-naive calendar days (UTC)
  3. Purity: lookups and computations never touch the network or mutate state

SEE ALSO:
  - engine.go: price scaling and trajectory reconstruction
  - calendar.go: working-day calendar used by the fine calculator
  - errors.go: error taxonomy
*/
package indexation

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Observation is one reading of an index series: the reference date (floored
// to a timezone-naive calendar day) and the index level on that date.
type Observation struct {
	Date  time.Time
	Value decimal.Decimal
}

// Series is the ordered history of a single named index, as returned by the
// feed. Dates are monotonically non-decreasing.
type Series []Observation

// Day builds a day-granularity timestamp, the canonical form for all
// observation and anchor dates in this package.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether two timestamps fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// At returns the index value recorded exactly on the given day.
func (s Series) At(date time.Time) (decimal.Decimal, bool) {
	for _, obs := range s {
		if SameDay(obs.Date, date) {
			return obs.Value, true
		}
	}
	return decimal.Zero, false
}

// BaseIndex returns the index value at the concession's anchor date. The
// anchor must be present in the series exactly; a missing anchor is a
// configuration error, never approximated by a nearest date.
func (s Series) BaseIndex(anchor time.Time) (decimal.Decimal, error) {
	v, ok := s.At(anchor)
	if !ok {
		return decimal.Zero, &AnchorError{Anchor: anchor}
	}
	return v, nil
}

// LatestForMonth returns the most recently dated observation whose reference
// month equals m, across all years in the series. This is "the most recent
// reported reading for the anchor's month": indexation clauses reference the
// same calendar month each year.
func (s Series) LatestForMonth(m time.Month) (Observation, bool) {
	var latest Observation
	found := false
	for _, obs := range s {
		if obs.Date.Month() != m {
			continue
		}
		if !found || obs.Date.After(latest.Date) {
			latest = obs
			found = true
		}
	}
	return latest, found
}

// MonthRows returns the observations whose month equals m and whose date is
// not before from, sorted ascending. This is the input to the trajectory
// reconstruction.
func (s Series) MonthRows(m time.Month, from time.Time) Series {
	var rows Series
	for _, obs := range s {
		if obs.Date.Month() == m && !obs.Date.Before(from) {
			rows = append(rows, obs)
		}
	}
	// The feed already returns dates in order; a stable sort keeps the
	// invariant even if it ever does not.
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Date.Before(rows[j].Date) })
	return rows
}

// Latest returns the last observation of the series. For the base-rate series
// this is the only relevant datum.
func (s Series) Latest() (Observation, bool) {
	if len(s) == 0 {
		return Observation{}, false
	}
	return s[len(s)-1], true
}
