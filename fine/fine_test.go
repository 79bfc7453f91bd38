package fine_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dafi-icmbio/price-updater/fine"
	"github.com/dafi-icmbio/price-updater/indexation"
	"github.com/dafi-icmbio/price-updater/ipea"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func date(year int, month time.Month, day int) time.Time {
	return indexation.Day(year, month, day)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// stubFeed serves a fixed base-rate series. The latest value of 12.0 yields
// a monthly-equivalent reference rate of exactly 1% (12 / 12 / 100).
type stubFeed struct {
	series indexation.Series
	err    error
}

func (s *stubFeed) Fetch(ctx context.Context, index ipea.Index) (indexation.Series, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.series, nil
}

func newCalculator(latestRate string) *fine.Calculator {
	feed := &stubFeed{series: indexation.Series{
		{Date: date(2024, time.January, 2), Value: dec("11.5")},
		{Date: date(2024, time.January, 3), Value: dec(latestRate)},
	}}
	return fine.NewCalculator(feed)
}

// =============================================================================
// INTEREST
// =============================================================================

func TestCalculate_PaymentOnDueDateAccruesNoInterest(t *testing.T) {
	// GIVEN: payment on the due date itself (2024-01-10, a Wednesday)
	// THEN:  the grace day (Thursday the 11th) was not crossed, so interest
	//        is zero and only the flat 1% penalty applies

	calc := newCalculator("12.0")
	result, err := calc.Calculate(context.Background(), dec("1000"), date(2024, time.January, 10), date(2024, time.January, 10))
	require.NoError(t, err)

	assert.Equal(t, 0, result.LateDays)
	assert.Equal(t, "0.00", result.Interest.StringFixed(2))
	assert.Equal(t, "10.00", result.Penalty.StringFixed(2))
	assert.Equal(t, "10.00", result.Fine.StringFixed(2))
	assert.Equal(t, "1010.00", result.AmountDue.StringFixed(2))
	assert.Equal(t, 0, result.WorkingDaysLate)
}

func TestCalculate_UncappedInterestWithinSameMonth(t *testing.T) {
	// due Wednesday 2024-01-10, paid Saturday 2024-01-20:
	// lateDays = days(01-11 .. 01-20 inclusive) = 10
	// interest = 1000 * 0.0033 * 10 = 33.00, well under the 20% cap

	calc := newCalculator("12.0")
	result, err := calc.Calculate(context.Background(), dec("1000"), date(2024, time.January, 10), date(2024, time.January, 20))
	require.NoError(t, err)

	assert.Equal(t, 10, result.LateDays)
	assert.Equal(t, "33.00", result.Interest.StringFixed(2))
	assert.Equal(t, "10.00", result.Penalty.StringFixed(2), "same calendar month keeps the flat penalty")
	assert.Equal(t, 7, result.WorkingDaysLate)
}

func TestCalculate_InterestCapsAtTwentyPercent(t *testing.T) {
	// due 2024-01-10, paid 2024-08-01: 204 late days would accrue 67.3%,
	// capped at 20% of the principal

	calc := newCalculator("12.0")
	result, err := calc.Calculate(context.Background(), dec("1000"), date(2024, time.January, 10), date(2024, time.August, 1))
	require.NoError(t, err)

	assert.Equal(t, 204, result.LateDays)
	assert.Equal(t, "200.00", result.Interest.StringFixed(2))
	// penalty = 1% flat + 1000 * 1% monthly rate * 7 months = 80
	assert.Equal(t, "80.00", result.Penalty.StringFixed(2))
	assert.Equal(t, "280.00", result.Fine.StringFixed(2))
	assert.Equal(t, "1280.00", result.AmountDue.StringFixed(2))
}

func TestCalculate_WeekendGraceWindowAccruesNothing(t *testing.T) {
	// due Friday 2024-01-12, paid Saturday 2024-01-13: the next working day
	// (Monday the 15th) was never reached

	calc := newCalculator("12.0")
	result, err := calc.Calculate(context.Background(), dec("1000"), date(2024, time.January, 12), date(2024, time.January, 13))
	require.NoError(t, err)

	assert.Equal(t, 0, result.LateDays)
	assert.Equal(t, "0.00", result.Interest.StringFixed(2))
	assert.Equal(t, "10.00", result.Fine.StringFixed(2))
}

// =============================================================================
// PENALTY
// =============================================================================

func TestCalculate_LaterMonthAddsReferenceRateTerm(t *testing.T) {
	// due 2024-01-10, paid 2024-02-05: one calendar month late
	// penalty = 1000 * 1% + 1000 * 0.01 * 1 = 20
	// lateDays = days(01-11 .. 02-05) = 26 -> interest 85.80

	calc := newCalculator("12.0")
	result, err := calc.Calculate(context.Background(), dec("1000"), date(2024, time.January, 10), date(2024, time.February, 5))
	require.NoError(t, err)

	assert.Equal(t, 26, result.LateDays)
	assert.Equal(t, "20.00", result.Penalty.StringFixed(2))
	assert.Equal(t, "85.80", result.Interest.StringFixed(2))
	assert.Equal(t, "105.80", result.Fine.StringFixed(2))
}

func TestCalculate_MonthDifferenceCrossesYearBoundary(t *testing.T) {
	// due Sunday 2023-12-10, paid 2024-01-05: January is one month after
	// December, not eleven months before it

	calc := newCalculator("12.0")
	result, err := calc.Calculate(context.Background(), dec("1000"), date(2023, time.December, 10), date(2024, time.January, 5))
	require.NoError(t, err)

	assert.Equal(t, "20.00", result.Penalty.StringFixed(2))
	// grace day Monday 2023-12-11; 26 calendar days late
	assert.Equal(t, 26, result.LateDays)
	// 18 working days: Christmas and New Year's Day excluded
	assert.Equal(t, 18, result.WorkingDaysLate)
}

func TestCalculate_ReferenceRateScalesFromLatestReading(t *testing.T) {
	// latest annualized reading 24.0 -> monthly-equivalent 2%
	// due 2024-01-10, paid 2024-03-05: two months late
	// penalty = 10 + 1000 * 0.02 * 2 = 50

	calc := newCalculator("24.0")
	result, err := calc.Calculate(context.Background(), dec("1000"), date(2024, time.January, 10), date(2024, time.March, 5))
	require.NoError(t, err)

	assert.Equal(t, "50.00", result.Penalty.StringFixed(2))
}

// =============================================================================
// FAILURE MODES
// =============================================================================

func TestCalculate_PaymentBeforeDueIsRejected(t *testing.T) {
	calc := newCalculator("12.0")
	_, err := calc.Calculate(context.Background(), dec("1000"), date(2024, time.January, 10), date(2024, time.January, 9))
	assert.ErrorIs(t, err, indexation.ErrPaymentBeforeDue)
}

func TestCalculate_FeedErrorPropagates(t *testing.T) {
	calc := fine.NewCalculator(&stubFeed{err: indexation.ErrFeedUnavailable})
	_, err := calc.Calculate(context.Background(), dec("1000"), date(2024, time.January, 10), date(2024, time.January, 20))
	assert.ErrorIs(t, err, indexation.ErrFeedUnavailable)
}

func TestCalculate_EmptyRateSeriesIsFeedUnavailable(t *testing.T) {
	calc := fine.NewCalculator(&stubFeed{series: indexation.Series{}})
	_, err := calc.Calculate(context.Background(), dec("1000"), date(2024, time.January, 10), date(2024, time.January, 20))
	assert.ErrorIs(t, err, indexation.ErrFeedUnavailable)
}
