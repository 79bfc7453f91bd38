/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple the
  internal domain model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

MONEY:
  Prices and fine amounts are serialized as fixed two-decimal strings; clients
  render them verbatim and never do arithmetic on them.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"time"

	"github.com/dafi-icmbio/price-updater/fine"
	"github.com/dafi-icmbio/price-updater/indexation"
	"github.com/dafi-icmbio/price-updater/park"
)

// ConcessionDTO is one row of the concession listing.
type ConcessionDTO struct {
	Name      string `json:"name"`
	Index     string `json:"index"`
	BaseDate  string `json:"base_date"`
	LagMonths int    `json:"lag_months"`
}

// FeeDTO is one labelled line of a fee table.
type FeeDTO struct {
	Label string `json:"label"`
	Price string `json:"price"`
}

// PriceTableDTO is the authorized fee table of one concession, with the
// reference month spelled out for the dashboard header ("Setembro de 2025").
type PriceTableDTO struct {
	Concession     string   `json:"concession"`
	ReferenceMonth string   `json:"reference_month"`
	Fees           []FeeDTO `json:"fees"`
}

// TrajectoryPointDTO is one charted row of a price trajectory.
type TrajectoryPointDTO struct {
	EffectiveDate string `json:"effective_date"`
	Price         string `json:"price"`
}

// FineRequest is the fine-calculator form submission. Dates use YYYY-MM-DD.
type FineRequest struct {
	Amount      string `json:"amount"`
	DueDate     string `json:"due_date"`
	PaymentDate string `json:"payment_date"`
}

// FineDTO is the fine-calculation outcome.
type FineDTO struct {
	Penalty         string `json:"penalty"`
	Interest        string `json:"interest"`
	Fine            string `json:"fine"`
	AmountDue       string `json:"amount_due"`
	LateDays        int    `json:"late_days"`
	WorkingDaysLate int    `json:"working_days_late"`
}

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// monthsPT spells month names the way the dashboard displays them.
var monthsPT = map[time.Month]string{
	time.January:   "Janeiro",
	time.February:  "Fevereiro",
	time.March:     "Março",
	time.April:     "Abril",
	time.May:       "Maio",
	time.June:      "Junho",
	time.July:      "Julho",
	time.August:    "Agosto",
	time.September: "Setembro",
	time.October:   "Outubro",
	time.November:  "Novembro",
	time.December:  "Dezembro",
}

func referenceMonth(now time.Time) string {
	return monthsPT[now.Month()] + " de " + now.Format("2006")
}

func toFeeDTOs(snapshot park.Snapshot) []FeeDTO {
	fees := make([]FeeDTO, len(snapshot))
	for i, fee := range snapshot {
		fees[i] = FeeDTO{Label: fee.Label, Price: fee.Price.StringFixed(2)}
	}
	return fees
}

func toTrajectoryDTOs(points []indexation.PricePoint) []TrajectoryPointDTO {
	dtos := make([]TrajectoryPointDTO, len(points))
	for i, pt := range points {
		dtos[i] = TrajectoryPointDTO{
			EffectiveDate: pt.EffectiveDate.Format("2006-01-02"),
			Price:         pt.Price.StringFixed(2),
		}
	}
	return dtos
}

func toFineDTO(r *fine.Result) FineDTO {
	return FineDTO{
		Penalty:         r.Penalty.StringFixed(2),
		Interest:        r.Interest.StringFixed(2),
		Fine:            r.Fine.StringFixed(2),
		AmountDue:       r.AmountDue.StringFixed(2),
		LateDays:        r.LateDays,
		WorkingDaysLate: r.WorkingDaysLate,
	}
}
