package amqp

import (
	"context"
	"errors"
	"testing"

	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expensetracker/internal/core"
)

type published struct {
	exchange, key string
	msg           amqp091.Publishing
}

type fakeChannel struct {
	declared   []string
	kinds      []string
	published  []published
	declareErr error
	publishErr error
	closed     bool
}

func (f *fakeChannel) ExchangeDeclare(name, kind string, _, _, _, _ bool, _ amqp091.Table) error {
	f.declared = append(f.declared, name)
	f.kinds = append(f.kinds, kind)
	return f.declareErr
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp091.Publishing) error {
	if f.publishErr != nil {
		return f.publishErr
	}
	f.published = append(f.published, published{exchange: exchange, key: key, msg: msg})
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func TestClientDeclaresTopicExchange(t *testing.T) {
	ch := &fakeChannel{}
	_, err := newClientWithChannel(ch, "expenses", "expense.changed")
	require.NoError(t, err)
	assert.Equal(t, []string{"expenses"}, ch.declared)
	assert.Equal(t, []string{"topic"}, ch.kinds)
}

func TestClientDeclareFailureClosesChannel(t *testing.T) {
	ch := &fakeChannel{declareErr: errors.New("access refused")}
	_, err := newClientWithChannel(ch, "expenses", "expense.changed")
	assert.ErrorContains(t, err, "declare exchange")
	assert.True(t, ch.closed)
}

func TestPublishExpenseChange(t *testing.T) {
	ch := &fakeChannel{}
	c, err := newClientWithChannel(ch, "expenses", "expense.changed")
	require.NoError(t, err)

	e := core.Expense{Amount: 150, Category: core.Food, Date: core.NewDate(2023, 1, 5), Row: 4}
	require.NoError(t, c.PublishExpenseChange(context.Background(), NewExpenseUpdated(e, "Amount")))

	require.Len(t, ch.published, 1)
	p := ch.published[0]
	assert.Equal(t, "expenses", p.exchange)
	assert.Equal(t, "expense.changed", p.key)
	assert.Equal(t, "application/json", p.msg.ContentType)
	assert.Equal(t, amqp091.Persistent, p.msg.DeliveryMode)

	msg, err := ExpenseChangeMessageFromJSON(p.msg.Body)
	require.NoError(t, err)
	assert.Equal(t, ActionUpdated, msg.Action)
	assert.Equal(t, 4, msg.Row)
	assert.Equal(t, int64(150), msg.Amount)
	assert.Equal(t, "2023-01-05", msg.Date)
	assert.Equal(t, "Amount", msg.Field)
}

func TestPublishExpenseChangeError(t *testing.T) {
	ch := &fakeChannel{publishErr: errors.New("channel closed")}
	c, err := newClientWithChannel(ch, "expenses", "expense.changed")
	require.NoError(t, err)

	err = c.PublishExpenseChange(context.Background(), NewExpenseAdded(core.Expense{Amount: 1, Category: core.Food}))
	assert.ErrorContains(t, err, "publish message")

	require.NoError(t, c.Close())
	assert.True(t, ch.closed)
}

func TestExpenseChangeMessageFromJSONInvalid(t *testing.T) {
	_, err := ExpenseChangeMessageFromJSON([]byte("{"))
	assert.Error(t, err)
}
