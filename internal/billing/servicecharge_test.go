package billing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseCharge(t *testing.T) {
	assert.True(t, BaseCharge("LGF").Equal(decimal.NewFromInt(10610)))
	assert.True(t, BaseCharge("UGF").Equal(decimal.NewFromInt(11005)))
	assert.True(t, BaseCharge("").Equal(decimal.NewFromInt(11005)))
}

func TestLateFeePercent(t *testing.T) {
	charge := FinancialYear{2022} // 2022-2023
	tests := []struct {
		payment FinancialYear
		want    int64
	}{
		{FinancialYear{2021}, 0},
		{FinancialYear{2022}, 0},
		{FinancialYear{2023}, 5},
		{FinancialYear{2024}, 10},
		{FinancialYear{2025}, 15},
		{FinancialYear{2026}, 15},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LateFeePercent(charge, tt.payment),
			"charge %s paid in %s", charge, tt.payment)
	}
}

func TestQuoteServiceCharges(t *testing.T) {
	base := BaseCharge("UGF")
	years := []FinancialYear{{2022}, {2023}, {2024}}

	// Paying during 2024-2025: the years are 2, 1 and 0 years late.
	charges, totals := QuoteServiceCharges(years, date(2024, time.July, 1), base)
	require.Len(t, charges, 3)

	assert.Equal(t, int64(10), charges[0].Percent)
	assert.True(t, charges[0].LateFee.Equal(decimal.RequireFromString("1100.5")))
	assert.True(t, charges[0].Total.Equal(decimal.RequireFromString("12105.5")))

	assert.Equal(t, int64(5), charges[1].Percent)
	assert.True(t, charges[1].LateFee.Equal(decimal.RequireFromString("550.25")))

	assert.Equal(t, int64(0), charges[2].Percent)
	assert.True(t, charges[2].LateFee.IsZero())
	assert.True(t, charges[2].Total.Equal(base))

	assert.True(t, totals.Base.Equal(decimal.NewFromInt(33015)))
	assert.True(t, totals.LateFees.Equal(decimal.RequireFromString("1650.75")))
	assert.True(t, totals.GrandTotal.Equal(decimal.RequireFromString("34665.75")))
}

func TestQuoteServiceChargesEmpty(t *testing.T) {
	charges, totals := QuoteServiceCharges(nil, date(2024, time.July, 1), BaseCharge("LGF"))
	assert.Empty(t, charges)
	assert.True(t, totals.GrandTotal.IsZero())
}
