package publisher

import (
	"context"
	"errors"
	"testing"

	"github.com/PraveshYadav900/codenest-website/internal/domain"
	"github.com/PraveshYadav900/codenest-website/internal/repository"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockStore struct {
	events       []*repository.PaymentEvent
	eventsErr    error
	processedIDs []uuid.UUID
	markErr      error
}

func (m *MockStore) GetUnprocessedEvents(context.Context, int) ([]*repository.PaymentEvent, error) {
	if m.eventsErr != nil {
		return nil, m.eventsErr
	}
	return m.events, nil
}

func (m *MockStore) MarkEventAsProcessed(_ context.Context, id uuid.UUID) error {
	if m.markErr != nil {
		return m.markErr
	}
	m.processedIDs = append(m.processedIDs, id)
	return nil
}

func (m *MockStore) CreateOrder(context.Context, *domain.Order) error { return nil }
func (m *MockStore) GetOrderByID(context.Context, int64) (*domain.Order, error) {
	return nil, repository.ErrOrderNotFound
}
func (m *MockStore) RecordPaymentOutcome(context.Context, *repository.PaymentOutcome) (*repository.PaymentResult, error) {
	return nil, nil
}
func (m *MockStore) CreateContact(context.Context, *domain.ContactSubmission) error { return nil }
func (m *MockStore) CreateUser(context.Context, *domain.User) error                 { return nil }
func (m *MockStore) GetUserByEmail(context.Context, string) (*domain.User, error)   { return nil, nil }
func (m *MockStore) RunMigrations(*repository.Credentials) error                    { return nil }
func (m *MockStore) Close() error                                                   { return nil }

type MockWriter struct {
	messages []kafka.Message
	err      error
}

func (w *MockWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func testEvent() *repository.PaymentEvent {
	return &repository.PaymentEvent{
		ID:        uuid.New(),
		OrderID:   42,
		TxnID:     "TXN_abc123",
		EventType: "payment.completed",
		Payload:   []byte(`{"provider_status":"TXN_SUCCESS"}`),
	}
}

func TestProcessUnpublishedEvents_PublishesAndMarks(t *testing.T) {
	event := testEvent()
	store := &MockStore{events: []*repository.PaymentEvent{event}}
	writer := &MockWriter{}
	poller := &PaymentEventPoller{repo: store, writer: writer, batchSize: 100}

	poller.processUnpublishedEvents(context.Background())

	require.Len(t, writer.messages, 1)
	msg := writer.messages[0]
	assert.Equal(t, []byte("42"), msg.Key)
	assert.Equal(t, event.Payload, msg.Value)
	require.Len(t, msg.Headers, 2)
	assert.Equal(t, "event_type", msg.Headers[0].Key)
	assert.Equal(t, []byte("payment.completed"), msg.Headers[0].Value)

	require.Len(t, store.processedIDs, 1)
	assert.Equal(t, event.ID, store.processedIDs[0])
}

func TestProcessUnpublishedEvents_PublishFailureLeavesEvent(t *testing.T) {
	store := &MockStore{events: []*repository.PaymentEvent{testEvent()}}
	writer := &MockWriter{err: errors.New("broker unreachable")}
	poller := &PaymentEventPoller{repo: store, writer: writer, batchSize: 100}

	poller.processUnpublishedEvents(context.Background())

	assert.Empty(t, store.processedIDs, "unpublished event must stay unprocessed")
}

func TestProcessUnpublishedEvents_FetchFailure(t *testing.T) {
	store := &MockStore{eventsErr: errors.New("db down")}
	writer := &MockWriter{}
	poller := &PaymentEventPoller{repo: store, writer: writer, batchSize: 100}

	poller.processUnpublishedEvents(context.Background())

	assert.Empty(t, writer.messages)
}
