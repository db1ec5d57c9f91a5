package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"expensetracker/internal/amqp"
	"expensetracker/internal/core"
	applog "expensetracker/internal/log"
	"expensetracker/internal/sheets"
)

// Publisher receives a notification after every successful table mutation.
type Publisher interface {
	PublishExpenseChange(ctx context.Context, msg *amqp.ExpenseChangeMessage) error
}

// ExpenseService runs expense operations against a Table and announces
// changes through an optional Publisher.
type ExpenseService struct {
	table     sheets.Table
	publisher Publisher
	now       func() time.Time
}

func NewExpenseService(table sheets.Table, publisher Publisher) *ExpenseService {
	return &ExpenseService{
		table:     table,
		publisher: publisher,
		now:       time.Now,
	}
}

// SetClock replaces the clock used to decide what "today" is.
func (s *ExpenseService) SetClock(now func() time.Time) {
	s.now = now
}

func (s *ExpenseService) today() core.Date {
	return core.Today(s.now())
}

// AddExpense validates e, appends it and returns it with its row set.
func (s *ExpenseService) AddExpense(ctx context.Context, e core.Expense) (core.Expense, error) {
	if err := e.Validate(s.today()); err != nil {
		return core.Expense{}, fmt.Errorf("validate expense: %w", err)
	}
	row, err := s.table.AppendRow(ctx, e)
	if err != nil {
		return core.Expense{}, fmt.Errorf("append expense: %w", err)
	}
	e.Row = row

	slog.InfoContext(ctx, "Expense added",
		applog.NewFields().WithOperation(applog.OpAppend).WithExpense(e).ToSlice()...)

	s.publish(ctx, amqp.NewExpenseAdded(e))
	return e, nil
}

func (s *ExpenseService) Records(ctx context.Context) ([]core.Expense, error) {
	records, err := s.table.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch expenses: %w", err)
	}
	return records, nil
}

// RecordsForPeriod returns the records dated inside p, in table order.
func (s *ExpenseService) RecordsForPeriod(ctx context.Context, p core.Period) ([]core.Expense, error) {
	records, err := s.Records(ctx)
	if err != nil {
		return nil, err
	}
	var out []core.Expense
	for _, r := range records {
		if p.Contains(r.Date) {
			out = append(out, r)
		}
	}
	return out, nil
}

// LocateRow returns the row captured when e was read. Records without one are
// looked up by date, which yields the first row holding that date.
func (s *ExpenseService) LocateRow(ctx context.Context, e core.Expense) (int, error) {
	if e.Row > 0 {
		return e.Row, nil
	}
	row, err := s.table.FindRowByValue(ctx, e.Date.String())
	if err != nil {
		return 0, fmt.Errorf("locate expense dated %s: %w", e.Date, err)
	}
	return row, nil
}

// UpdateCategory rewrites the category cell of e. The caller picks c from the
// category set.
func (s *ExpenseService) UpdateCategory(ctx context.Context, e *core.Expense, c core.Category) error {
	if c == "" {
		return core.ErrUnknownCategory
	}
	return s.updateField(ctx, e, sheets.ColCategory, string(c), func(e *core.Expense) { e.Category = c })
}

func (s *ExpenseService) UpdateAmount(ctx context.Context, e *core.Expense, amount int64) error {
	if amount <= 0 {
		return core.ErrInvalidAmount
	}
	return s.updateField(ctx, e, sheets.ColAmount, strconv.FormatInt(amount, 10), func(e *core.Expense) { e.Amount = amount })
}

func (s *ExpenseService) UpdateDate(ctx context.Context, e *core.Expense, d core.Date) error {
	if d.IsZero() {
		return core.ErrZeroDate
	}
	if d.After(s.today()) {
		return core.ErrFutureDate
	}
	return s.updateField(ctx, e, sheets.ColDate, d.String(), func(e *core.Expense) { e.Date = d })
}

func (s *ExpenseService) updateField(ctx context.Context, e *core.Expense, col int, value string, apply func(*core.Expense)) error {
	row, err := s.LocateRow(ctx, *e)
	if err != nil {
		return err
	}
	field := sheets.ColumnName(col)
	if err := s.table.UpdateCell(ctx, row, col, value); err != nil {
		return fmt.Errorf("update %s: %w", field, err)
	}
	e.Row = row
	apply(e)

	fields := applog.NewFields().WithOperation(applog.OpUpdate).WithExpense(*e)
	fields[applog.FieldColumn] = field
	slog.InfoContext(ctx, "Expense updated", fields.ToSlice()...)

	s.publish(ctx, amqp.NewExpenseUpdated(*e, field))
	return nil
}

func (s *ExpenseService) YearStatement(ctx context.Context, year int) (core.Aggregate, error) {
	return s.statement(ctx, core.YearPeriod(year))
}

func (s *ExpenseService) MonthStatement(ctx context.Context, year, month int) (core.Aggregate, error) {
	return s.statement(ctx, core.MonthPeriod(year, month))
}

func (s *ExpenseService) statement(ctx context.Context, p core.Period) (core.Aggregate, error) {
	records, err := s.Records(ctx)
	if err != nil {
		return core.Aggregate{}, err
	}
	return core.AggregateBy(records, core.InPeriod(p)), nil
}

// CompareYears aggregates both years from a single fetch, first as baseline.
func (s *ExpenseService) CompareYears(ctx context.Context, first, second int) (core.PeriodComparison, error) {
	records, err := s.Records(ctx)
	if err != nil {
		return core.PeriodComparison{}, err
	}
	pc := core.PeriodComparison{
		First:  core.YearPeriod(first),
		Second: core.YearPeriod(second),
	}
	pc.FirstAgg = core.AggregateBy(records, core.InPeriod(pc.First))
	pc.SecondAgg = core.AggregateBy(records, core.InPeriod(pc.Second))
	pc.Comparison = core.Compare(pc.FirstAgg, pc.SecondAgg)
	return pc, nil
}

func (s *ExpenseService) CompareMonths(ctx context.Context, first, second core.Period) (core.MonthComparison, error) {
	records, err := s.Records(ctx)
	if err != nil {
		return core.MonthComparison{}, err
	}
	return core.CompareMonths(records, first, second), nil
}

func (s *ExpenseService) publish(ctx context.Context, msg *amqp.ExpenseChangeMessage) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishExpenseChange(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "Failed to publish expense change",
			applog.FieldAction, msg.Action,
			applog.FieldRow, msg.Row,
			applog.FieldError, err)
	}
}

// Close releases the table and the publisher when they hold resources.
func (s *ExpenseService) Close() error {
	var errs []error

	if c, ok := s.table.(io.Closer); ok {
		if err := c.Close(); err != nil {
			errs = append(errs, fmt.Errorf("table: %w", err))
		}
	}

	if c, ok := s.publisher.(io.Closer); ok {
		if err := c.Close(); err != nil {
			errs = append(errs, fmt.Errorf("publisher: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close expense service: %w", errors.Join(errs...))
	}
	return nil
}
