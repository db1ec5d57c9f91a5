package backend

import (
	"context"
	"time"

	"expensetracker/internal/services"
	"expensetracker/internal/sheets"
)

// CleanupFunc represents a cleanup function for resources
type CleanupFunc func() error

// BackendResult holds the expense service built over the selected table.
type BackendResult struct {
	Table   sheets.Table
	Service *services.ExpenseService
	Cleanup CleanupFunc
}

// Factory creates backends based on configuration
type Factory interface {
	// CreateBackend creates a backend instance based on the provided config
	CreateBackend(ctx context.Context, config Config) (*BackendResult, error)
}

// Config holds configuration for backend creation
type Config struct {
	// Backend type
	Type BackendType

	// SQLite specific
	SQLiteDBPath string

	// Google Sheets specific
	GoogleSpreadsheetID    string
	GoogleSpreadsheetTitle string
	GoogleSheetName        string
	GoogleCredsJSON        string
	GoogleCredsFile        string

	// Memory backend specific
	DataDirectory string

	// Change notifications, optional for every backend
	AMQPURL        string
	AMQPExchange   string
	AMQPRoutingKey string

	// Now overrides the service clock when set.
	Now func() time.Time
}

// BackendType represents the type of backend
type BackendType string

const (
	SQLiteBackend BackendType = "sqlite"
	SheetsBackend BackendType = "sheets"
	MemoryBackend BackendType = "memory"
)

// String implements fmt.Stringer
func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is valid
func (bt BackendType) IsValid() bool {
	switch bt {
	case SQLiteBackend, SheetsBackend, MemoryBackend:
		return true
	default:
		return false
	}
}
