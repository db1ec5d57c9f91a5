package backend

import (
	"context"
	"fmt"

	"expensetracker/internal/amqp"
	applog "expensetracker/internal/log"
	"expensetracker/internal/services"
	"expensetracker/internal/sheets"
	gsheet "expensetracker/internal/sheets/google"
	"expensetracker/internal/sheets/memory"
	"expensetracker/internal/storage"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger     *applog.Logger
	newPublish func(url, exchange, routingKey string) (services.Publisher, error)
}

// NewFactory creates a new backend factory
func NewFactory(logger *applog.Logger) Factory {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	return &DefaultFactory{
		logger: logger.WithComponent(applog.ComponentBackend),
		newPublish: func(url, exchange, routingKey string) (services.Publisher, error) {
			client, err := amqp.NewClient(url, exchange, routingKey)
			if err != nil {
				return nil, err
			}
			return client, nil
		},
	}
}

// CreateBackend implements Factory.CreateBackend
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	var (
		table sheets.Table
		err   error
	)
	switch config.Type {
	case SQLiteBackend:
		table, err = f.createSQLiteTable(config)
	case SheetsBackend:
		table, err = f.createSheetsTable(ctx, config)
	case MemoryBackend:
		table, err = f.createMemoryTable(config)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
	if err != nil {
		return nil, err
	}

	svc := services.NewExpenseService(table, f.createPublisher(config))
	if config.Now != nil {
		svc.SetClock(config.Now)
	}

	return &BackendResult{
		Table:   table,
		Service: svc,
		Cleanup: svc.Close,
	}, nil
}

func (f *DefaultFactory) createSQLiteTable(config Config) (sheets.Table, error) {
	repo, err := storage.NewSQLiteRepository(config.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
	}
	f.logger.Info("Initialized SQLite backend", "db_path", config.SQLiteDBPath)
	return repo, nil
}

func (f *DefaultFactory) createSheetsTable(ctx context.Context, config Config) (sheets.Table, error) {
	client, err := gsheet.New(ctx, gsheet.Config{
		SpreadsheetID:    config.GoogleSpreadsheetID,
		SpreadsheetTitle: config.GoogleSpreadsheetTitle,
		SheetName:        config.GoogleSheetName,
		CredentialsJSON:  config.GoogleCredsJSON,
		CredentialsFile:  config.GoogleCredsFile,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Google Sheets client: %w", err)
	}
	f.logger.Info("Initialized Google Sheets backend",
		"spreadsheet_id", client.SpreadsheetID(),
		"sheet", config.GoogleSheetName)
	return client, nil
}

func (f *DefaultFactory) createMemoryTable(config Config) (sheets.Table, error) {
	dataDir := config.DataDirectory
	if dataDir == "" {
		dataDir = "data"
	}
	store, err := memory.NewFromFiles(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to seed memory backend: %w", err)
	}
	f.logger.Info("Initialized memory backend", "data_directory", dataDir)
	return store, nil
}

// createPublisher connects to AMQP when configured. Failure only disables
// notifications.
func (f *DefaultFactory) createPublisher(config Config) services.Publisher {
	if config.AMQPURL == "" {
		return nil
	}
	pub, err := f.newPublish(config.AMQPURL, config.AMQPExchange, config.AMQPRoutingKey)
	if err != nil {
		f.logger.Warn("Failed to initialize AMQP client, continuing without notifications", applog.FieldError, err)
		return nil
	}
	f.logger.Info("Initialized AMQP client",
		"exchange", config.AMQPExchange,
		"routing_key", config.AMQPRoutingKey)
	return pub
}
