package sheets

import (
	"fmt"
	"strconv"
	"strings"

	"expensetracker/internal/core"
)

// RowNumber maps a zero-based record index to its table row.
func RowNumber(index int) int {
	return index + HeaderRows + 1
}

func ValidColumn(col int) bool {
	return col >= ColAmount && col <= ColDate
}

// ColumnName returns the header label of col.
func ColumnName(col int) string {
	if !ValidColumn(col) {
		return ""
	}
	return Header[col-1]
}

// FormatRow renders a record as [amount, category, date].
func FormatRow(e core.Expense) []string {
	return []string{
		strconv.FormatInt(e.Amount, 10),
		string(e.Category),
		e.Date.String(),
	}
}

// ParseRow reads the cells of table row. Amounts must be positive; categories
// outside the known set are kept as stored.
func ParseRow(row int, cells []string) (core.Expense, error) {
	if len(cells) < ColDate {
		return core.Expense{}, fmt.Errorf("row %d: expected %d cells, got %d", row, ColDate, len(cells))
	}
	amount, err := core.ParseStoredAmount(cells[ColAmount-1])
	if err != nil {
		return core.Expense{}, fmt.Errorf("row %d: amount %q: %w", row, cells[ColAmount-1], err)
	}
	if amount <= 0 {
		return core.Expense{}, fmt.Errorf("row %d: amount %d: %w", row, amount, core.ErrInvalidAmount)
	}
	date, err := core.ParseDate(strings.TrimSpace(cells[ColDate-1]))
	if err != nil {
		return core.Expense{}, fmt.Errorf("row %d: date %q: %w", row, cells[ColDate-1], err)
	}
	return core.Expense{
		Amount:   amount,
		Category: core.Category(strings.TrimSpace(cells[ColCategory-1])),
		Date:     date,
		Row:      row,
	}, nil
}

// IsHeader reports whether cells look like the header row.
func IsHeader(cells []string) bool {
	if len(cells) < len(Header) {
		return false
	}
	for i, h := range Header {
		if !strings.EqualFold(strings.TrimSpace(cells[i]), h) {
			return false
		}
	}
	return true
}
