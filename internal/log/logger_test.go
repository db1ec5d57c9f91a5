package log

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"expensetracker/internal/core"
)

func newBufferLogger(buf *bytes.Buffer, level slog.Level) *Logger {
	return New(Config{
		Component: ComponentApp,
		Handler:   slog.NewTextHandler(buf, &slog.HandlerOptions{Level: level}),
	})
}

func TestLoggerAddsComponentOnce(t *testing.T) {
	var buf bytes.Buffer
	l := newBufferLogger(&buf, slog.LevelInfo).WithComponent(ComponentSheets)

	l.Info("table ready", FieldRow, 3)

	line := buf.String()
	assert.Equal(t, 1, strings.Count(line, "component="))
	assert.Contains(t, line, "component=sheets")
	assert.Contains(t, line, "row=3")
	assert.Equal(t, ComponentSheets, l.Component())
}

func TestLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := newBufferLogger(&buf, slog.LevelWarn)

	l.Info("hidden")
	l.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestSetDefault(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	SetDefault(newBufferLogger(&buf, slog.LevelInfo).WithComponent(ComponentExpense))
	slog.Info("from default")

	assert.Contains(t, buf.String(), "component=expense")
}

func TestLogFields(t *testing.T) {
	e := core.Expense{Amount: 12, Category: core.Food, Date: core.NewDate(2023, 1, 5), Row: 7}
	f := NewFields().
		WithComponent(ComponentExpense).
		WithOperation(OpAppend).
		WithExpense(e).
		WithError(errors.New("boom")).
		WithError(nil)

	assert.Equal(t, LogFields{
		FieldComponent: ComponentExpense,
		FieldOperation: OpAppend,
		FieldRow:       7,
		FieldAmount:    int64(12),
		FieldCategory:  "Food",
		FieldDate:      "2023-01-05",
		FieldError:     "boom",
	}, f)
	assert.Len(t, f.ToSlice(), 14)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, slog.LevelWarn, cfg.Level)
	assert.Nil(t, cfg.Handler)
	assert.NotNil(t, New(cfg))
}
