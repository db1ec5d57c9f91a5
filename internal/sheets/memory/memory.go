package memory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gocarina/gocsv"

	"expensetracker/internal/core"
	ports "expensetracker/internal/sheets"
)

// SeedFile is the CSV file NewFromFiles reads from its base directory.
const SeedFile = "expenses.csv"

var _ ports.Table = (*Store)(nil)

// Store keeps the expenses table in memory, header included.
type Store struct {
	mu   sync.Mutex
	rows [][]string
}

type seedRow struct {
	Amount   string `csv:"Amount"`
	Category string `csv:"Category"`
	Date     string `csv:"Date"`
}

func New(records ...core.Expense) *Store {
	s := &Store{rows: [][]string{append([]string(nil), ports.Header...)}}
	for _, e := range records {
		s.rows = append(s.rows, ports.FormatRow(e))
	}
	return s
}

// NewFromFiles seeds the store from base/expenses.csv. A missing file yields
// an empty table.
func NewFromFiles(base string) (*Store, error) {
	s := New()
	path := filepath.Join(base, SeedFile)
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("open seed %s: %w", path, err)
	}
	defer f.Close()

	var seed []seedRow
	if err := gocsv.UnmarshalFile(f, &seed); err != nil {
		return nil, fmt.Errorf("parse seed %s: %w", path, err)
	}
	for _, r := range seed {
		s.rows = append(s.rows, []string{
			strings.TrimSpace(r.Amount),
			strings.TrimSpace(r.Category),
			strings.TrimSpace(r.Date),
		})
	}
	return s, nil
}

func (s *Store) FetchAll(ctx context.Context) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Expense, 0, len(s.rows))
	for i := ports.HeaderRows; i < len(s.rows); i++ {
		e, err := ports.ParseRow(i+1, s.rows[i])
		if err != nil {
			slog.WarnContext(ctx, "Skipping unparsable row", "row", i+1, "error", err)
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (s *Store) AppendRow(_ context.Context, e core.Expense) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, ports.FormatRow(e))
	return len(s.rows), nil
}

func (s *Store) UpdateCell(_ context.Context, row, col int, value string) error {
	if !ports.ValidColumn(col) {
		return fmt.Errorf("invalid column %d", col)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if row < 1 || row > len(s.rows) {
		return fmt.Errorf("row %d: %w", row, ports.ErrNotFound)
	}
	cells := s.rows[row-1]
	for len(cells) < col {
		cells = append(cells, "")
	}
	cells[col-1] = value
	s.rows[row-1] = cells
	return nil
}

func (s *Store) FindRowByValue(_ context.Context, value string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, cells := range s.rows {
		for _, c := range cells {
			if c == value {
				return i + 1, nil
			}
		}
	}
	return 0, ports.ErrNotFound
}

// Rows returns a copy of the raw table, header included.
func (s *Store) Rows() [][]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([][]string, len(s.rows))
	for i, r := range s.rows {
		out[i] = append([]string(nil), r...)
	}
	return out
}
