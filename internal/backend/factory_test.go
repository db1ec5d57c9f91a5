package backend

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expensetracker/internal/amqp"
	"expensetracker/internal/config"
	"expensetracker/internal/core"
	applog "expensetracker/internal/log"
	"expensetracker/internal/services"
	"expensetracker/internal/sheets/memory"
	"expensetracker/internal/storage"
)

type stubPublisher struct {
	msgs   int
	closed bool
}

func (p *stubPublisher) PublishExpenseChange(context.Context, *amqp.ExpenseChangeMessage) error {
	p.msgs++
	return nil
}

func (p *stubPublisher) Close() error {
	p.closed = true
	return nil
}

func testLogger(buf *bytes.Buffer) *applog.Logger {
	return applog.New(applog.Config{Handler: slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})})
}

func fixedNow() time.Time {
	return time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC)
}

func TestCreateMemoryBackend(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, memory.SeedFile), []byte("Amount,Category,Date\n10,Food,2023-01-05\n"), 0o644))

	f := NewFactory(nil)
	res, err := f.CreateBackend(context.Background(), Config{Type: MemoryBackend, DataDirectory: dir, Now: fixedNow})
	require.NoError(t, err)
	defer res.Cleanup()

	assert.IsType(t, &memory.Store{}, res.Table)
	agg, err := res.Service.YearStatement(context.Background(), 2023)
	require.NoError(t, err)
	assert.Equal(t, int64(10), agg.Total)
}

func TestCreateSQLiteBackend(t *testing.T) {
	f := NewFactory(nil)
	res, err := f.CreateBackend(context.Background(), Config{
		Type:         SQLiteBackend,
		SQLiteDBPath: filepath.Join(t.TempDir(), "expenses.db"),
		Now:          fixedNow,
	})
	require.NoError(t, err)
	assert.IsType(t, &storage.SQLiteRepository{}, res.Table)

	e, err := res.Service.AddExpense(context.Background(), core.Expense{Amount: 5, Category: core.Debt, Date: core.NewDate(2023, 6, 1)})
	require.NoError(t, err)
	assert.Equal(t, 2, e.Row)
	assert.NoError(t, res.Cleanup())
}

func TestCreateSheetsBackendRequiresCredentials(t *testing.T) {
	f := NewFactory(nil)
	_, err := f.CreateBackend(context.Background(), Config{
		Type:                SheetsBackend,
		GoogleSpreadsheetID: "id",
		GoogleSheetName:     "expenses",
		GoogleCredsFile:     "/nonexistent/creds.json",
	})
	assert.ErrorContains(t, err, "failed to initialize Google Sheets client")
}

func TestCreateBackendInvalidType(t *testing.T) {
	_, err := NewFactory(nil).CreateBackend(context.Background(), Config{Type: "postgres"})
	assert.ErrorContains(t, err, "invalid backend type")
}

func TestPublisherWiring(t *testing.T) {
	var buf bytes.Buffer
	pub := &stubPublisher{}
	f := NewFactory(testLogger(&buf)).(*DefaultFactory)
	f.newPublish = func(url, exchange, key string) (services.Publisher, error) {
		assert.Equal(t, "amqp://localhost", url)
		assert.Equal(t, "expenses", exchange)
		assert.Equal(t, "expense.changed", key)
		return pub, nil
	}

	res, err := f.CreateBackend(context.Background(), Config{
		Type:           MemoryBackend,
		DataDirectory:  t.TempDir(),
		AMQPURL:        "amqp://localhost",
		AMQPExchange:   "expenses",
		AMQPRoutingKey: "expense.changed",
		Now:            fixedNow,
	})
	require.NoError(t, err)

	_, err = res.Service.AddExpense(context.Background(), core.Expense{Amount: 5, Category: core.Food, Date: core.NewDate(2023, 6, 1)})
	require.NoError(t, err)
	assert.Equal(t, 1, pub.msgs)

	require.NoError(t, res.Cleanup())
	assert.True(t, pub.closed)
	assert.Contains(t, buf.String(), "component=backend")
}

func TestPublisherFailureIsNotFatal(t *testing.T) {
	var buf bytes.Buffer
	f := NewFactory(testLogger(&buf)).(*DefaultFactory)
	f.newPublish = func(string, string, string) (services.Publisher, error) {
		return nil, errors.New("connection refused")
	}

	res, err := f.CreateBackend(context.Background(), Config{Type: MemoryBackend, DataDirectory: t.TempDir(), AMQPURL: "amqp://localhost"})
	require.NoError(t, err)
	assert.NotNil(t, res.Service)
	assert.Contains(t, buf.String(), "continuing without notifications")
}

func TestFromAppConfig(t *testing.T) {
	cfg, err := FromAppConfig(&config.Config{
		DataBackend:            "sheets",
		GoogleSpreadsheetTitle: "personal-expense-tracker",
		GoogleSheetName:        "expenses",
		GoogleCredsFile:        "creds.json",
		DataDir:                "seed",
		AMQPRoutingKey:         "expense.changed",
	})
	require.NoError(t, err)
	assert.Equal(t, SheetsBackend, cfg.Type)
	assert.Equal(t, "personal-expense-tracker", cfg.GoogleSpreadsheetTitle)
	assert.Equal(t, "seed", cfg.DataDirectory)
	assert.Equal(t, "expense.changed", cfg.AMQPRoutingKey)
	assert.NoError(t, cfg.Validate())

	_, err = FromAppConfig(nil)
	assert.Error(t, err)
	_, err = FromAppConfig(&config.Config{DataBackend: "csv"})
	assert.ErrorContains(t, err, "invalid backend type in config")
}

func TestConfigValidate(t *testing.T) {
	assert.Error(t, Config{Type: SQLiteBackend}.Validate())
	assert.Error(t, Config{Type: SheetsBackend, GoogleSheetName: "x", GoogleCredsFile: "c"}.Validate())
	assert.Error(t, Config{Type: SheetsBackend, GoogleSpreadsheetID: "id", GoogleSheetName: "x"}.Validate())
	assert.NoError(t, Config{Type: MemoryBackend}.Validate())
	assert.Equal(t, []string{"sheets", "sqlite", "memory"}, GetBackendTypeStrings())
}
