/*
breakdown.go - Per-concession fee-table rules

Each concession kind maps the scaled entry price (and scaled service price,
where the contract has one) into its own named fee breakdown. The set is
closed: adding a concession means declaring a Config row and picking one of
these kinds, or adding a new kind here.

ROUNDING RULES (contractual, deliberately not unified):
  - half price is exactly entry/2, never rounded
  - the surrounding-area fee rounds to whole units, except the reduced kind
    which keeps one decimal
  - Mercosul and the time-banded surrounding-area fee round to whole units
*/
package park

import "github.com/shopspring/decimal"

// Kind tags one of the closed set of fee-table rules.
type Kind string

const (
	// KindStandard: entry, half, surrounding-area (10%), camping.
	KindStandard Kind = "standard"
	// KindReduced: entry, half, surrounding-area kept at one decimal.
	KindReduced Kind = "reduced"
	// KindSeasonal: high/low season entry plus a transport fee.
	KindSeasonal Kind = "seasonal"
	// KindSeasonOnly: high/low season entry, no service fee.
	KindSeasonOnly Kind = "season_only"
	// KindTwoTier: entry and half only.
	KindTwoTier Kind = "two_tier"
	// KindMinimal: a single entry price.
	KindMinimal Kind = "minimal"
	// KindTimeBanded: the base service price is a step function of today's
	// date; the scaled service price yields full fare, Mercosul (90%) and
	// surrounding-area (20%) tiers.
	KindTimeBanded Kind = "time_banded"
	// KindSingleFee: one named traditional-tour fee.
	KindSingleFee Kind = "single_fee"
)

var (
	two    = decimal.NewFromInt(2)
	tenth  = decimal.RequireFromString("0.1")
	fifth  = decimal.RequireFromString("0.2")
	ninety = decimal.RequireFromString("0.9")
)

func (k Kind) breakdown(entry, service decimal.Decimal) Snapshot {
	switch k {
	case KindStandard:
		return Snapshot{
			{"Entrada", entry},
			{"Meia Entrada", entry.Div(two)},
			{"Entorno", entry.Mul(tenth).Round(0)},
			{"Acampamento", service},
		}
	case KindReduced:
		return Snapshot{
			{"Entrada", entry},
			{"Meia Entrada", entry.Div(two)},
			{"Entorno", entry.Mul(tenth).Round(1)},
		}
	case KindSeasonal:
		return Snapshot{
			{"Alta Temporada", entry},
			{"Baixa Temporada", entry.Div(two)},
			{"Transporte", service},
		}
	case KindSeasonOnly:
		return Snapshot{
			{"Alta Temporada", entry},
			{"Baixa Temporada", entry.Div(two)},
		}
	case KindTwoTier:
		return Snapshot{
			{"Entrada", entry},
			{"Meia Entrada", entry.Div(two)},
		}
	case KindMinimal:
		return Snapshot{
			{"Entrada", entry},
		}
	case KindTimeBanded:
		return Snapshot{
			{"Entrada", service},
			{"Mercosul", service.Mul(ninety).Round(0)},
			{"Entorno", service.Mul(fifth).Round(0)},
		}
	case KindSingleFee:
		return Snapshot{
			{"Passeio Tradicional", entry},
		}
	}
	return nil
}
