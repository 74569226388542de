package billing

import (
	"time"

	"github.com/shopspring/decimal"
)

// Annual service-charge tariff by floor type.
var (
	tariffLowerGroundFloor = decimal.NewFromInt(10610)
	tariffUpperGroundFloor = decimal.NewFromInt(11005)
)

// BaseCharge returns the annual service-charge base amount for a unit's
// floor type. Lower-ground-floor units are on the reduced tariff; everything
// else pays the standard one.
func BaseCharge(floorType string) decimal.Decimal {
	if floorType == "LGF" {
		return tariffLowerGroundFloor
	}
	return tariffUpperGroundFloor
}

// LateFeePercent returns the tiered late-fee percentage for a service charge
// of year chargeFY paid during paymentFY.
func LateFeePercent(chargeFY, paymentFY FinancialYear) int64 {
	yearsLate := paymentFY.End() - chargeFY.End()
	switch {
	case yearsLate <= 0:
		return 0
	case yearsLate == 1:
		return 5
	case yearsLate == 2:
		return 10
	default:
		return 15
	}
}

// YearCharge is the billed amount for one financial year.
type YearCharge struct {
	Year       FinancialYear
	BaseAmount decimal.Decimal
	Percent    int64
	LateFee    decimal.Decimal
	Total      decimal.Decimal
}

// ChargeTotals aggregates a multi-year service-charge payment. Base and late
// fees are reported separately and combined.
type ChargeTotals struct {
	Base       decimal.Decimal
	LateFees   decimal.Decimal
	GrandTotal decimal.Decimal
}

// QuoteServiceCharges prices each selected financial year at the given base
// amount with the late-fee tier implied by the payment date, ascending year
// order preserved.
func QuoteServiceCharges(years []FinancialYear, paymentDate time.Time, base decimal.Decimal) ([]YearCharge, ChargeTotals) {
	paymentFY := FinancialYearOf(paymentDate)

	charges := make([]YearCharge, 0, len(years))
	totals := ChargeTotals{
		Base:       decimal.Zero,
		LateFees:   decimal.Zero,
		GrandTotal: decimal.Zero,
	}
	for _, fy := range years {
		percent := LateFeePercent(fy, paymentFY)
		lateFee := base.Mul(decimal.NewFromInt(percent)).Div(decimal.NewFromInt(100))
		charge := YearCharge{
			Year:       fy,
			BaseAmount: base,
			Percent:    percent,
			LateFee:    lateFee,
			Total:      base.Add(lateFee),
		}
		charges = append(charges, charge)
		totals.Base = totals.Base.Add(base)
		totals.LateFees = totals.LateFees.Add(lateFee)
		totals.GrandTotal = totals.GrandTotal.Add(charge.Total)
	}
	return charges, totals
}
