package billing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPlan() PlanTerms {
	return PlanTerms{
		PrincipalPerInstallment: decimal.RequireFromString("1230737.25"),
		InterestPerInstallment:  decimal.RequireFromString("73844.24"),
		LateFeePerDay:           decimal.RequireFromString("643.36"),
		IdealInstallments:       4,
		InstallmentsPaid:        0,
		FirstDueDate:            date(2024, time.December, 31),
	}
}

func TestNextInstallmentDueDateProgression(t *testing.T) {
	plan := testPlan()
	wantDue := []time.Time{
		date(2024, time.December, 31),
		date(2025, time.March, 31),
		date(2025, time.July, 1), // Mar 31 + 3 months rolls over past Jun 30
		date(2025, time.October, 1),
	}

	for paid := 0; paid < plan.IdealInstallments; paid++ {
		plan.InstallmentsPaid = paid
		quote, err := NextInstallment(plan, date(2024, time.January, 1))
		require.NoError(t, err)
		assert.False(t, quote.Settled)
		assert.Equal(t, paid+1, quote.InstallmentNumber)
		assert.True(t, quote.DueDate.Equal(wantDue[paid]),
			"installment %d: due %s, want %s", paid+1, quote.DueDate, wantDue[paid])
	}
}

func TestNextInstallmentSettled(t *testing.T) {
	plan := testPlan()
	plan.InstallmentsPaid = plan.IdealInstallments

	quote, err := NextInstallment(plan, date(2026, time.January, 1))
	require.NoError(t, err)
	assert.True(t, quote.Settled)
	assert.True(t, quote.Total.IsZero())
}

func TestNextInstallmentLateFee(t *testing.T) {
	plan := testPlan()

	// On or before the due date no late fee accrues.
	quote, err := NextInstallment(plan, date(2024, time.December, 31))
	require.NoError(t, err)
	assert.Equal(t, 0, quote.DaysDelayed)
	assert.True(t, quote.LateFee.IsZero())
	assert.True(t, quote.Total.Equal(decimal.RequireFromString("1304581.49")))

	// Ten days late.
	quote, err = NextInstallment(plan, date(2025, time.January, 10))
	require.NoError(t, err)
	assert.Equal(t, 10, quote.DaysDelayed)
	assert.True(t, quote.LateFee.Equal(decimal.RequireFromString("6433.60")))
	assert.True(t, quote.Total.Equal(decimal.RequireFromString("1311015.09")))
}

func TestNextInstallmentLateFeeMonotonic(t *testing.T) {
	plan := testPlan()
	prev := decimal.NewFromInt(-1)
	for days := 0; days <= 30; days++ {
		quote, err := NextInstallment(plan, plan.FirstDueDate.AddDate(0, 0, days))
		require.NoError(t, err)
		assert.True(t, quote.LateFee.GreaterThanOrEqual(prev),
			"late fee decreased at day %d", days)
		prev = quote.LateFee
	}
}

func TestNextInstallmentIncompletePlan(t *testing.T) {
	plan := testPlan()
	plan.FirstDueDate = time.Time{}
	_, err := NextInstallment(plan, date(2025, time.January, 1))
	assert.ErrorIs(t, err, ErrPlanIncomplete)

	plan = testPlan()
	plan.IdealInstallments = 0
	_, err = NextInstallment(plan, date(2025, time.January, 1))
	assert.ErrorIs(t, err, ErrPlanIncomplete)

	plan = testPlan()
	plan.PrincipalPerInstallment = decimal.Zero
	_, err = NextInstallment(plan, date(2025, time.January, 1))
	assert.ErrorIs(t, err, ErrPlanIncomplete)
}

func TestDaysDelayed(t *testing.T) {
	due := date(2025, time.March, 31)
	assert.Equal(t, 0, DaysDelayed(due, date(2025, time.March, 30)))
	assert.Equal(t, 0, DaysDelayed(due, due))
	assert.Equal(t, 1, DaysDelayed(due, date(2025, time.April, 1)))
	assert.Equal(t, 365, DaysDelayed(due, date(2026, time.March, 31)))
}
