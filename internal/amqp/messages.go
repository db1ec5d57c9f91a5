package amqp

import (
	"encoding/json"
	"time"

	"expensetracker/internal/core"
)

type Action string

const (
	ActionAdded   Action = "added"
	ActionUpdated Action = "updated"
)

// ExpenseChangeMessage announces that a row of the expenses table changed.
type ExpenseChangeMessage struct {
	Action    Action    `json:"action"`
	Row       int       `json:"row"`
	Amount    int64     `json:"amount"`
	Category  string    `json:"category"`
	Date      string    `json:"date"`
	Field     string    `json:"field,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func NewExpenseAdded(e core.Expense) *ExpenseChangeMessage {
	return newExpenseChange(ActionAdded, e, "")
}

// NewExpenseUpdated describes e after field was changed.
func NewExpenseUpdated(e core.Expense, field string) *ExpenseChangeMessage {
	return newExpenseChange(ActionUpdated, e, field)
}

func newExpenseChange(action Action, e core.Expense, field string) *ExpenseChangeMessage {
	return &ExpenseChangeMessage{
		Action:    action,
		Row:       e.Row,
		Amount:    e.Amount,
		Category:  string(e.Category),
		Date:      e.Date.String(),
		Field:     field,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *ExpenseChangeMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ExpenseChangeMessageFromJSON(data []byte) (*ExpenseChangeMessage, error) {
	var msg ExpenseChangeMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
