package billing

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ErrPlanIncomplete is returned when an installment plan is missing the
// fields a quote needs. Callers must treat it as "cannot compute", not as a
// zero amount due.
var ErrPlanIncomplete = errors.New("installment plan is missing required fields")

// InstallmentCadenceMonths is the fixed gap between installments.
const InstallmentCadenceMonths = 3

// PlanTerms is the slice of an installment plan the EMI calculator needs.
type PlanTerms struct {
	PrincipalPerInstallment decimal.Decimal
	InterestPerInstallment  decimal.Decimal
	LateFeePerDay           decimal.Decimal
	IdealInstallments       int
	InstallmentsPaid        int
	FirstDueDate            time.Time
}

// EMIQuote is the amount due for the next installment of a plan. When
// Settled is true the plan has no further installments and the remaining
// fields are zero.
type EMIQuote struct {
	InstallmentNumber int
	DueDate           time.Time
	DaysDelayed       int
	Principal         decimal.Decimal
	Interest          decimal.Decimal
	LateFee           decimal.Decimal
	Total             decimal.Decimal
	Settled           bool
}

// NextInstallment computes the quote for the next unpaid installment as of
// the given date. The due date is the first installment's due date advanced
// by three calendar months per installment already paid; dates near month
// end follow time.AddDate rollover.
func NextInstallment(terms PlanTerms, today time.Time) (EMIQuote, error) {
	if terms.IdealInstallments <= 0 || terms.InstallmentsPaid < 0 {
		return EMIQuote{}, ErrPlanIncomplete
	}

	if terms.InstallmentsPaid >= terms.IdealInstallments {
		return EMIQuote{Settled: true}, nil
	}

	if terms.FirstDueDate.IsZero() || terms.PrincipalPerInstallment.IsZero() {
		return EMIQuote{}, ErrPlanIncomplete
	}

	dueDate := terms.FirstDueDate.AddDate(0, InstallmentCadenceMonths*terms.InstallmentsPaid, 0)
	daysDelayed := DaysDelayed(dueDate, today)

	lateFee := terms.LateFeePerDay.Mul(decimal.NewFromInt(int64(daysDelayed)))
	total := terms.PrincipalPerInstallment.Add(terms.InterestPerInstallment).Add(lateFee)

	return EMIQuote{
		InstallmentNumber: terms.InstallmentsPaid + 1,
		DueDate:           dueDate,
		DaysDelayed:       daysDelayed,
		Principal:         terms.PrincipalPerInstallment,
		Interest:          terms.InterestPerInstallment,
		LateFee:           lateFee,
		Total:             total,
	}, nil
}

// DaysDelayed counts whole days elapsed since the due date, never negative.
func DaysDelayed(dueDate, today time.Time) int {
	if !today.After(dueDate) {
		return 0
	}
	return int(today.Sub(dueDate).Hours() / 24)
}
