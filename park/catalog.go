/*
catalog.go - The static concession registry

Each entry pins a concession's contract anchor: the date its base prices were
fixed, the prices themselves, the index its contract references, and how many
months after the index reference month a derived price takes legal effect.

Adding a concession is adding a row here (and, if its fee table has a new
shape, a Kind in breakdown.go). Registry values must track the published
legal instruments; a base date the feed does not know is surfaced as
ErrAnchorNotFound, never papered over.
*/
package park

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dafi-icmbio/price-updater/indexation"
	"github.com/dafi-icmbio/price-updater/ipea"
)

func day(y int, m time.Month, d int) time.Time { return indexation.Day(y, m, d) }

func price(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// registry lists every managed concession, in sidebar display order.
var registry = []Config{
	{
		Name:             "Chapada dos Veadeiros",
		BaseDate:         day(2021, time.September, 1),
		BaseEntryPrice:   price("40"),
		BaseServicePrice: price("22"),
		Index:            ipea.IPCA,
		LagMonths:        12,
		Kind:             KindStandard,
	},
	{
		Name:           "Itatiaia",
		BaseDate:       day(2022, time.January, 1),
		BaseEntryPrice: price("35"),
		Index:          ipea.IPCA,
		LagMonths:      2,
		Kind:           KindReduced,
	},
	{
		Name:           "Tijuca - Trem Corcovado",
		BaseDate:       day(2021, time.March, 1),
		BaseEntryPrice: price("26"),
		Index:          ipea.IGPM,
		LagMonths:      3,
		Kind:           KindTimeBanded,
		ServiceSchedule: []PriceBand{
			{From: day(2023, time.January, 1), Price: price("97")},
			{From: day(2023, time.July, 1), Price: price("114.90")},
			{From: day(2024, time.January, 1), Price: price("108")},
			{From: day(2024, time.July, 1), Price: price("122.90")},
		},
	},
	{
		Name:           "Tijuca - Paineiras",
		BaseDate:       day(2021, time.March, 1),
		BaseEntryPrice: price("62"),
		Index:          ipea.IGPM,
		LagMonths:      3,
		Kind:           KindSingleFee,
	},
	{
		Name:           "Fernando de Noronha",
		BaseDate:       day(2023, time.June, 1),
		BaseEntryPrice: price("186.50"),
		Index:          ipea.IPCA,
		LagMonths:      1,
		Kind:           KindTwoTier,
	},
	{
		Name:             "Aparados da Serra e Serra Geral",
		BaseDate:         day(2022, time.March, 1),
		BaseEntryPrice:   price("85"),
		BaseServicePrice: price("35"),
		Index:            ipea.IPCA,
		LagMonths:        2,
		Kind:             KindSeasonal,
	},
	{
		Name:           "Iguaçu - Cataratas",
		BaseDate:       day(2022, time.October, 1),
		BaseEntryPrice: price("100"),
		Index:          ipea.IGPM,
		LagMonths:      4,
		Kind:           KindSeasonOnly,
	},
	{
		Name:           "Iguaçu - Ilha do Sol",
		BaseDate:       day(2022, time.October, 1),
		BaseEntryPrice: price("45"),
		Index:          ipea.IGPM,
		LagMonths:      4,
		Kind:           KindMinimal,
	},
}

// Catalog creates Parks from the static registry, fetching each one's index
// series through the injected feed.
type Catalog struct {
	feed ipea.Fetcher
}

func NewCatalog(feed ipea.Fetcher) *Catalog {
	return &Catalog{feed: feed}
}

// Names returns the registered concession names in display order.
func (c *Catalog) Names() []string {
	names := make([]string, len(registry))
	for i, cfg := range registry {
		names[i] = cfg.Name
	}
	return names
}

// Lookup returns the registry row for a name, if present.
func (c *Catalog) Lookup(name string) (Config, bool) {
	for _, cfg := range registry {
		if cfg.Name == name {
			return cfg, true
		}
	}
	return Config{}, false
}

// Create builds a Park for the named concession, fetching its series. An
// unrecognized name yields (nil, nil): absence, not an error, so the caller
// can render its empty-selection state.
func (c *Catalog) Create(ctx context.Context, name string) (*Park, error) {
	cfg, ok := c.Lookup(name)
	if !ok {
		return nil, nil
	}
	return New(ctx, cfg, c.feed)
}
