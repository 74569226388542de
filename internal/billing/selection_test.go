package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unpaidABC() []FinancialYear {
	return []FinancialYear{{2022}, {2023}, {2024}}
}

func TestSelectionRequiresContiguousPrefix(t *testing.T) {
	s := NewSelection(unpaidABC())

	// Selecting the middle year before the earliest is rejected.
	assert.ErrorIs(t, s.Select(FinancialYear{2023}), ErrSelectionGap)
	assert.Empty(t, s.Selected())

	require.NoError(t, s.Select(FinancialYear{2022}))
	assert.ErrorIs(t, s.Select(FinancialYear{2024}), ErrSelectionGap)
	require.NoError(t, s.Select(FinancialYear{2023}))
	require.NoError(t, s.Select(FinancialYear{2024}))
	assert.Len(t, s.Selected(), 3)
}

func TestSelectionDeselectLastOnly(t *testing.T) {
	s := NewSelection(unpaidABC())
	require.NoError(t, s.Select(FinancialYear{2022}))
	require.NoError(t, s.Select(FinancialYear{2023}))

	// Removing the earlier year would leave a gap.
	assert.ErrorIs(t, s.Deselect(FinancialYear{2022}), ErrNotLastSelected)

	require.NoError(t, s.Deselect(FinancialYear{2023}))
	selected := s.Selected()
	require.Len(t, selected, 1)
	assert.Equal(t, 2022, selected[0].Start)
}

func TestSelectionRejectsUnknownAndDuplicate(t *testing.T) {
	s := NewSelection(unpaidABC())
	assert.ErrorIs(t, s.Select(FinancialYear{2030}), ErrYearNotSelectable)

	require.NoError(t, s.Select(FinancialYear{2022}))
	assert.ErrorIs(t, s.Select(FinancialYear{2022}), ErrAlreadySelected)
	assert.ErrorIs(t, s.Deselect(FinancialYear{2024}), ErrNotSelected)
}

func TestValidateSelection(t *testing.T) {
	unpaid := unpaidABC()

	assert.NoError(t, ValidateSelection(unpaid, []FinancialYear{{2022}}))
	assert.NoError(t, ValidateSelection(unpaid, unpaid))

	assert.ErrorIs(t, ValidateSelection(unpaid, nil), ErrSelectionNotPrefix)
	assert.ErrorIs(t, ValidateSelection(unpaid, []FinancialYear{{2023}}), ErrSelectionNotPrefix)
	assert.ErrorIs(t, ValidateSelection(unpaid, []FinancialYear{{2022}, {2024}}), ErrSelectionNotPrefix)
	assert.ErrorIs(t, ValidateSelection(unpaid, []FinancialYear{{2022}, {2022}}), ErrSelectionNotPrefix)
	assert.ErrorIs(t, ValidateSelection(unpaid, []FinancialYear{{2030}}), ErrSelectionNotPrefix)
	assert.ErrorIs(t, ValidateSelection(unpaid, []FinancialYear{{2022}, {2023}, {2024}, {2025}}), ErrSelectionNotPrefix)
}
