package service

import (
	"context"
	"time"

	"github.com/PraveshYadav900/codenest-website/internal/domain"
	"github.com/PraveshYadav900/codenest-website/internal/repository"
	"github.com/google/uuid"
)

// MockStore implements repository.Store for testing.
type MockStore struct {
	createOrderErr error
	createdOrders  []*domain.Order

	order  *domain.Order
	getErr error

	outcomeResult    *repository.PaymentResult
	outcomeErr       error
	recordedOutcomes []*repository.PaymentOutcome

	contactErr      error
	createdContacts []*domain.ContactSubmission

	createUserErr error
	createdUsers  []*domain.User
	userByEmail   *domain.User
	userErr       error

	events       []*repository.PaymentEvent
	eventsErr    error
	processedIDs []uuid.UUID
	markErr      error
}

func (m *MockStore) CreateOrder(_ context.Context, order *domain.Order) error {
	if m.createOrderErr != nil {
		return m.createOrderErr
	}
	order.ID = int64(len(m.createdOrders) + 1)
	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt
	m.createdOrders = append(m.createdOrders, order)
	return nil
}

func (m *MockStore) GetOrderByID(_ context.Context, id int64) (*domain.Order, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.order, nil
}

func (m *MockStore) RecordPaymentOutcome(_ context.Context, outcome *repository.PaymentOutcome) (*repository.PaymentResult, error) {
	m.recordedOutcomes = append(m.recordedOutcomes, outcome)
	if m.outcomeErr != nil {
		return nil, m.outcomeErr
	}
	return m.outcomeResult, nil
}

func (m *MockStore) CreateContact(_ context.Context, submission *domain.ContactSubmission) error {
	if m.contactErr != nil {
		return m.contactErr
	}
	submission.ID = int64(len(m.createdContacts) + 1)
	submission.SubmittedAt = time.Now()
	m.createdContacts = append(m.createdContacts, submission)
	return nil
}

func (m *MockStore) CreateUser(_ context.Context, user *domain.User) error {
	if m.createUserErr != nil {
		return m.createUserErr
	}
	user.ID = int64(len(m.createdUsers) + 1)
	user.CreatedAt = time.Now()
	m.createdUsers = append(m.createdUsers, user)
	return nil
}

func (m *MockStore) GetUserByEmail(_ context.Context, _ string) (*domain.User, error) {
	if m.userErr != nil {
		return nil, m.userErr
	}
	return m.userByEmail, nil
}

func (m *MockStore) GetUnprocessedEvents(_ context.Context, _ int) ([]*repository.PaymentEvent, error) {
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

func (m *MockStore) RunMigrations(*repository.Credentials) error { return nil }

func (m *MockStore) Close() error { return nil }
