/*
Package park models national-park concessions: the static registry of
contract anchors and the derivation of each park's authorized fee table from
its index series.

A Park is constructed fresh per request from a catalog row, fetching its
index series once at construction (no caching between requests). All price
math lives in the indexation package; this package only selects inputs and
shapes the per-concession fee breakdown.

SEE ALSO:
  - catalog.go: the static registry and constructor
  - breakdown.go: the closed set of fee-table rules
*/
package park

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dafi-icmbio/price-updater/indexation"
	"github.com/dafi-icmbio/price-updater/ipea"
)

// PriceBand is one step of a date-banded base-price schedule: Price applies
// from From (inclusive) until the next band begins.
type PriceBand struct {
	From  time.Time
	Price decimal.Decimal
}

// Config is one row of the concession registry.
type Config struct {
	Name             string
	BaseDate         time.Time
	BaseEntryPrice   decimal.Decimal
	BaseServicePrice decimal.Decimal // zero when the concession has no service fee
	Index            ipea.Index
	LagMonths        int
	Kind             Kind
	ServiceSchedule  []PriceBand // KindTimeBanded only
}

// Fee is one labelled line of a park's authorized fee table.
type Fee struct {
	Label string
	Price decimal.Decimal
}

// Snapshot is a park's full fee table, in display order. Never mutated after
// construction.
type Snapshot []Fee

// Park is a concession with its index series fetched and ready for
// derivation. Request-scoped: construct, read, discard.
type Park struct {
	Config
	series indexation.Series
}

// New fetches the concession's index series and returns a ready Park.
func New(ctx context.Context, cfg Config, feed ipea.Fetcher) (*Park, error) {
	series, err := feed.Fetch(ctx, cfg.Index)
	if err != nil {
		return nil, err
	}
	return &Park{Config: cfg, series: series}, nil
}

// CurrentPrices derives the authorized fee table as of now. The wall-clock
// argument only matters for time-banded concessions, whose base service
// price is selected by date before scaling.
func (p *Park) CurrentPrices(now time.Time) (Snapshot, error) {
	entry, err := indexation.CurrentPrice(p.series, p.BaseDate, p.BaseEntryPrice)
	if err != nil {
		return nil, err
	}

	service := decimal.Zero
	switch {
	case p.Kind == KindTimeBanded:
		base := selectBand(p.ServiceSchedule, now)
		service, err = indexation.CurrentPrice(p.series, p.BaseDate, base)
		if err != nil {
			return nil, err
		}
	case !p.BaseServicePrice.IsZero():
		service, err = indexation.CurrentPrice(p.series, p.BaseDate, p.BaseServicePrice)
		if err != nil {
			return nil, err
		}
	}

	return p.Kind.breakdown(entry, service), nil
}

// Trajectory reconstructs the authorized entry price history since the base
// date, each row shifted by the concession's effectiveness lag.
func (p *Park) Trajectory() ([]indexation.PricePoint, error) {
	return indexation.Trajectory(p.series, p.BaseDate, p.BaseEntryPrice, p.LagMonths)
}

// selectBand picks the last band whose From is not after now; before the
// first band, the first band's price applies.
func selectBand(schedule []PriceBand, now time.Time) decimal.Decimal {
	if len(schedule) == 0 {
		return decimal.Zero
	}
	selected := schedule[0].Price
	for _, band := range schedule {
		if band.From.After(now) {
			break
		}
		selected = band.Price
	}
	return selected
}
