package billing

import (
	"fmt"
	"time"
)

// FinancialYear is an April-March fiscal year. Start is the calendar year
// in which the financial year begins, so Start=2024 means 2024-2025.
type FinancialYear struct {
	Start int
}

// FinancialYearOf classifies a date into its financial year. Dates in
// January-March belong to the year that started the previous April.
func FinancialYearOf(date time.Time) FinancialYear {
	year := date.Year()
	if date.Month() < time.April {
		return FinancialYear{Start: year - 1}
	}
	return FinancialYear{Start: year}
}

// ParseFinancialYear parses the "YYYY-YYYY+1" notation.
func ParseFinancialYear(s string) (FinancialYear, error) {
	var start, end int
	if _, err := fmt.Sscanf(s, "%d-%d", &start, &end); err != nil {
		return FinancialYear{}, fmt.Errorf("invalid financial year %q: %w", s, err)
	}
	if end != start+1 {
		return FinancialYear{}, fmt.Errorf("invalid financial year %q: end year must be start+1", s)
	}
	return FinancialYear{Start: start}, nil
}

// End returns the calendar year in which the financial year ends.
func (fy FinancialYear) End() int {
	return fy.Start + 1
}

// Next returns the following financial year.
func (fy FinancialYear) Next() FinancialYear {
	return FinancialYear{Start: fy.Start + 1}
}

func (fy FinancialYear) String() string {
	return fmt.Sprintf("%d-%d", fy.Start, fy.Start+1)
}

// BillableYears enumerates the financial years for which service charges are
// owed: every year after the allotment's financial year through the current
// financial year, inclusive, ascending. An allotment in the current financial
// year has nothing billable yet.
func BillableYears(allotmentDate, today time.Time) []FinancialYear {
	first := FinancialYearOf(allotmentDate).Next()
	last := FinancialYearOf(today)

	var years []FinancialYear
	for fy := first; fy.Start <= last.Start; fy = fy.Next() {
		years = append(years, fy)
	}
	return years
}

// UnpaidYears filters billable years down to those not present in the paid
// history, preserving ascending order.
func UnpaidYears(billable []FinancialYear, paid []FinancialYear) []FinancialYear {
	paidSet := make(map[int]struct{}, len(paid))
	for _, fy := range paid {
		paidSet[fy.Start] = struct{}{}
	}

	var unpaid []FinancialYear
	for _, fy := range billable {
		if _, ok := paidSet[fy.Start]; !ok {
			unpaid = append(unpaid, fy)
		}
	}
	return unpaid
}
