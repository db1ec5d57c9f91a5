package sheets

import (
	"context"
	"errors"

	"expensetracker/internal/core"
)

// Column layout of the expenses table, 1-based.
const (
	ColAmount   = 1
	ColCategory = 2
	ColDate     = 3

	// HeaderRows is the number of rows above the first record.
	HeaderRows = 1
)

var ErrNotFound = errors.New("value not found in table")

// Header is the first row of every expenses table.
var Header = []string{"Amount", "Category", "Date"}

// Table is the row-oriented store holding expense records.
type Table interface {
	// FetchAll returns every parsable record, header excluded, each carrying its row.
	FetchAll(ctx context.Context) ([]core.Expense, error)
	// AppendRow writes a record after the last one and returns its row.
	AppendRow(ctx context.Context, e core.Expense) (row int, err error)
	// UpdateCell overwrites a single cell. Rows include the header.
	UpdateCell(ctx context.Context, row, col int, value string) error
	// FindRowByValue returns the first row, in row-major order, holding a cell
	// equal to value, or ErrNotFound.
	FindRowByValue(ctx context.Context, value string) (row int, err error)
}
