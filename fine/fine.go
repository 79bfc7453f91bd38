/*
Package fine computes the penalty and interest owed on a late administrative
fee payment, per the rules applied to concession grants without a contractual
late-payment clause.

THE RULES:
  - Grace: lateness starts on the first working day strictly after the due
    date (weekends and national holidays roll forward).
  - Penalty: a flat 1% of the amount; when the payment lands in a later
    calendar month, plus the monthly reference rate times the number of
    months elapsed.
  - Interest: 0.33% per late day, capped at 20% of the amount.
  - Reference rate: the most recent reading of the base interest-rate series,
    divided to a monthly-equivalent approximation (annual/12, in percent).

Every calculation fetches the rate series fresh; there is no caching.
*/
package fine

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dafi-icmbio/price-updater/indexation"
	"github.com/dafi-icmbio/price-updater/ipea"
)

var (
	flatPenaltyRate   = decimal.RequireFromString("0.01")   // 1% of the amount, always
	dailyInterestRate = decimal.RequireFromString("0.0033") // 0.33% per late day
	interestCap       = decimal.RequireFromString("0.2")    // interest never exceeds 20%
	twelve            = decimal.NewFromInt(12)
	hundred           = decimal.NewFromInt(100)
)

// Result is the outcome of one fine calculation. Ephemeral, computed per
// request.
type Result struct {
	Penalty         decimal.Decimal
	Interest        decimal.Decimal
	Fine            decimal.Decimal // Penalty + Interest
	AmountDue       decimal.Decimal // principal + Fine
	LateDays        int             // calendar days past the grace day, inclusive
	WorkingDaysLate int
}

// Calculator derives fines from the base-rate series and the national
// working-day calendar.
type Calculator struct {
	Feed     ipea.Fetcher
	Calendar indexation.Calendar
}

func NewCalculator(feed ipea.Fetcher) *Calculator {
	return &Calculator{Feed: feed, Calendar: indexation.NationalCalendar{}}
}

// Calculate computes the fine owed on amount due at due and paid at payment.
// Payment before due is rejected with ErrPaymentBeforeDue: a negative
// lateness has no economic meaning, and clamping would hide caller bugs.
func (c *Calculator) Calculate(ctx context.Context, amount decimal.Decimal, due, payment time.Time) (*Result, error) {
	if payment.Before(due) && !indexation.SameDay(payment, due) {
		return nil, fmt.Errorf("payment %s, due %s: %w",
			payment.Format("2006-01-02"), due.Format("2006-01-02"), indexation.ErrPaymentBeforeDue)
	}

	series, err := c.Feed.Fetch(ctx, ipea.SELIC)
	if err != nil {
		return nil, err
	}
	latest, ok := series.Latest()
	if !ok {
		return nil, fmt.Errorf("%w: empty rate series", indexation.ErrFeedUnavailable)
	}
	// Annualized rate in percent, scaled to a monthly-equivalent
	// approximation.
	referenceRate := latest.Value.Div(twelve).Div(hundred)

	nextWorking := indexation.NextWorkingDay(due, c.Calendar)
	lateDays := indexation.DaysBetween(nextWorking, payment) + 1
	if lateDays < 0 {
		// Paid within the grace window.
		lateDays = 0
	}

	penalty := amount.Mul(flatPenaltyRate)
	if monthsLate := monthsBetween(due, payment); monthsLate > 0 {
		penalty = penalty.Add(amount.Mul(referenceRate).Mul(decimal.NewFromInt(int64(monthsLate))))
	}

	interest := amount.Mul(dailyInterestRate.Mul(decimal.NewFromInt(int64(lateDays))))
	if capped := amount.Mul(interestCap); interest.GreaterThan(capped) {
		interest = capped
	}

	fineTotal := penalty.Add(interest)
	result := &Result{
		Penalty:   penalty.Round(2),
		Interest:  interest.Round(2),
		Fine:      fineTotal.Round(2),
		AmountDue: amount.Add(fineTotal).Round(2),
		LateDays:  lateDays,
	}
	if payment.After(nextWorking) {
		result.WorkingDaysLate = indexation.CountWorkingDays(nextWorking, payment, c.Calendar)
	}
	return result, nil
}

// monthsBetween is the whole calendar-month difference from due to payment.
// Year-aware: January of the next year is one month after December, not
// eleven months before it.
func monthsBetween(due, payment time.Time) int {
	return (payment.Year()-due.Year())*12 + int(payment.Month()) - int(due.Month())
}
