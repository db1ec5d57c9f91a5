package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"expensetracker/internal/core"
	ports "expensetracker/internal/sheets"

	_ "modernc.org/sqlite"
)

// columns maps table columns to SQL column names. Only these are ever
// interpolated into statements.
var columns = map[int]string{
	ports.ColAmount:   "amount",
	ports.ColCategory: "category",
	ports.ColDate:     "date",
}

// SQLiteRepository is a Table stored in a local SQLite file. Record ids start
// at 1 and are never reused, so row = id + HeaderRows.
type SQLiteRepository struct {
	db *sql.DB
}

var _ ports.Table = (*SQLiteRepository)(nil)

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *SQLiteRepository) FetchAll(ctx context.Context) ([]core.Expense, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, amount, category, date FROM expenses ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query expenses: %w", err)
	}
	defer rows.Close()

	var out []core.Expense
	for rows.Next() {
		var (
			id                     int64
			amount, category, date string
		)
		if err := rows.Scan(&id, &amount, &category, &date); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		row := rowFromID(id)
		e, err := ports.ParseRow(row, []string{amount, category, date})
		if err != nil {
			slog.WarnContext(ctx, "Skipping unparsable row", "row", row, "error", err)
			continue
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}
	return out, nil
}

func (r *SQLiteRepository) AppendRow(ctx context.Context, e core.Expense) (int, error) {
	cells := ports.FormatRow(e)
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO expenses (amount, category, date) VALUES (?, ?, ?)`,
		cells[ports.ColAmount-1], cells[ports.ColCategory-1], cells[ports.ColDate-1])
	if err != nil {
		return 0, fmt.Errorf("insert expense: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}

	slog.InfoContext(ctx, "Expense saved to SQLite",
		"id", id,
		"amount", e.Amount,
		"category", e.Category,
		"date", e.Date.String())

	return rowFromID(id), nil
}

func (r *SQLiteRepository) UpdateCell(ctx context.Context, row, col int, value string) error {
	column, ok := columns[col]
	if !ok {
		return fmt.Errorf("invalid column %d", col)
	}
	res, err := r.db.ExecContext(ctx,
		fmt.Sprintf(`UPDATE expenses SET %s = ? WHERE id = ?`, column),
		value, idFromRow(row))
	if err != nil {
		return fmt.Errorf("update %s of row %d: %w", column, row, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("row %d: %w", row, ports.ErrNotFound)
	}
	return nil
}

func (r *SQLiteRepository) FindRowByValue(ctx context.Context, value string) (int, error) {
	for _, h := range ports.Header {
		if h == value {
			return ports.HeaderRows, nil
		}
	}
	var id int64
	err := r.db.QueryRowContext(ctx,
		`SELECT id FROM expenses WHERE ? IN (amount, category, date) ORDER BY id LIMIT 1`,
		value).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ports.ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("find %q: %w", value, err)
	}
	return rowFromID(id), nil
}

func rowFromID(id int64) int {
	return int(id) + ports.HeaderRows
}

func idFromRow(row int) int64 {
	return int64(row - ports.HeaderRows)
}
