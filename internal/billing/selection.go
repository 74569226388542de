package billing

import "errors"

// Selection errors.
var (
	ErrYearNotSelectable  = errors.New("year is not in the unpaid set")
	ErrSelectionGap       = errors.New("earlier unpaid years must be selected first")
	ErrAlreadySelected    = errors.New("year is already selected")
	ErrNotSelected        = errors.New("year is not selected")
	ErrNotLastSelected    = errors.New("only the most recently selected year can be deselected")
	ErrSelectionNotPrefix = errors.New("selected years must be a contiguous prefix of the unpaid years")
)

// Selection enforces sequential payment of unpaid service-charge years: the
// selected set is always a contiguous prefix of the unpaid list, so year k
// can only be selected once every earlier unpaid year is, and only the last
// selected year can be removed.
type Selection struct {
	unpaid []FinancialYear
	picked int
}

// NewSelection starts an empty selection over the unpaid years, which must
// be in ascending order.
func NewSelection(unpaid []FinancialYear) *Selection {
	return &Selection{unpaid: unpaid}
}

// Select adds a year to the selection. The year must be the earliest unpaid
// year not yet selected.
func (s *Selection) Select(year FinancialYear) error {
	idx := s.indexOf(year)
	if idx < 0 {
		return ErrYearNotSelectable
	}
	if idx < s.picked {
		return ErrAlreadySelected
	}
	if idx > s.picked {
		return ErrSelectionGap
	}
	s.picked++
	return nil
}

// Deselect removes a year from the selection. Only the most recently
// selected year may be removed.
func (s *Selection) Deselect(year FinancialYear) error {
	idx := s.indexOf(year)
	if idx < 0 || idx >= s.picked {
		return ErrNotSelected
	}
	if idx != s.picked-1 {
		return ErrNotLastSelected
	}
	s.picked--
	return nil
}

// Selected returns the selected years in ascending order.
func (s *Selection) Selected() []FinancialYear {
	return append([]FinancialYear(nil), s.unpaid[:s.picked]...)
}

func (s *Selection) indexOf(year FinancialYear) int {
	for i, fy := range s.unpaid {
		if fy.Start == year.Start {
			return i
		}
	}
	return -1
}

// ValidateSelection checks that the years submitted for payment form a
// contiguous prefix of the unpaid years, in order. Used on the server side
// where the selection arrives as a whole rather than click by click: the
// submitted years are replayed through a Selection, so a batch is accepted
// exactly when the same sequence of clicks would have been.
func ValidateSelection(unpaid, selected []FinancialYear) error {
	if len(selected) == 0 || len(selected) > len(unpaid) {
		return ErrSelectionNotPrefix
	}
	sel := NewSelection(unpaid)
	for _, fy := range selected {
		if err := sel.Select(fy); err != nil {
			return ErrSelectionNotPrefix
		}
	}
	return nil
}
