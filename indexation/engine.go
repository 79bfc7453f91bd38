/*
engine.go - Price scaling and trajectory reconstruction

THE ALGORITHM:
  A concession's authorized price is its contractual base price scaled by the
  growth of its index since the base date:

      current = round(P0 * latestForAnchorMonth / indexAt(baseDate))

  The historical trajectory re-derives every intermediate authorized price by
  chaining year-over-year ratios of the anchor month's readings, then shifts
  each reference date forward by the concession's effectiveness lag to get the
  date the derived price took legal effect.

ROUNDING:
  CurrentPrice rounds to whole currency units, half away from zero
  (decimal.Round). Trajectory prices keep two decimals for charting.
*/
package indexation

import (
	"time"

	"github.com/shopspring/decimal"
)

// PricePoint is one row of a reconstructed price trajectory: the date a
// derived price took legal effect, and the price itself.
type PricePoint struct {
	EffectiveDate time.Time
	Price         decimal.Decimal
}

// CurrentPrice derives the currently authorized price from a base price fixed
// at anchor, using the most recent reading for the anchor's calendar month.
//
// Errors: ErrAnchorNotFound if anchor is absent from the series,
// ErrZeroBaseIndex if the index value at anchor is zero.
func CurrentPrice(s Series, anchor time.Time, basePrice decimal.Decimal) (decimal.Decimal, error) {
	base, err := s.BaseIndex(anchor)
	if err != nil {
		return decimal.Zero, err
	}
	if base.IsZero() {
		return decimal.Zero, &ZeroIndexError{Date: anchor}
	}
	latest, ok := s.LatestForMonth(anchor.Month())
	if !ok {
		// Unreachable when the anchor itself was found, kept for safety.
		return decimal.Zero, &AnchorError{Anchor: anchor}
	}
	return basePrice.Mul(latest.Value.Div(base)).Round(0), nil
}

// Trajectory reconstructs the authorized-price history since anchor.
//
// Only readings for the anchor's calendar month participate: the contractual
// clause compares the same month year over year, so in-between months carry
// no ratio of their own. Each row's price is the base price times the running
// product of consecutive same-month ratios; the first row has ratio 1 since
// it has no predecessor within the filtered set. Each row's date is shifted
// forward by lagMonths to the date the price took legal effect.
//
// An empty filtered set yields an empty trajectory, not an error.
func Trajectory(s Series, anchor time.Time, basePrice decimal.Decimal, lagMonths int) ([]PricePoint, error) {
	rows := s.MonthRows(anchor.Month(), anchor)
	if len(rows) == 0 {
		return nil, nil
	}

	points := make([]PricePoint, 0, len(rows))
	running := decimal.NewFromInt(1)
	for i, obs := range rows {
		if i > 0 {
			prev := rows[i-1].Value
			if prev.IsZero() {
				return nil, &ZeroIndexError{Date: rows[i-1].Date}
			}
			running = running.Mul(obs.Value.Div(prev))
		}
		points = append(points, PricePoint{
			EffectiveDate: obs.Date.AddDate(0, lagMonths, 0),
			Price:         basePrice.Mul(running).Round(2),
		})
	}
	return points, nil
}
