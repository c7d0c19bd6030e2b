package repository

import (
	"context"
	"errors"

	"github.com/PraveshYadav900/codenest-website/internal/domain"
	"github.com/google/uuid"
)

var (
	ErrOrderNotFound  = errors.New("order not found")
	ErrDuplicateEmail = errors.New("user with this email already exists")
)

type Credentials struct {
	Host              string
	Port              int
	User              string
	Password          string
	DBName            string
	MigrationsDirPath string
}

// PaymentOutcome is the write half of a verified gateway callback: the
// target status plus the identifiers and raw payload to record for audit.
type PaymentOutcome struct {
	OrderID        int64
	TxnID          string
	GatewayOrderID string
	Status         domain.OrderStatus
	Payload        []byte
}

// PaymentResult reports what the outcome write actually did. Duplicate
// means the (order_id, txn_id) event was already recorded and nothing was
// re-applied; Transitioned means the row moved out of pending.
type PaymentResult struct {
	Duplicate    bool
	Transitioned bool
	Order        *domain.Order
}

// PaymentEvent is an audit/outbox row awaiting publication.
type PaymentEvent struct {
	ID        uuid.UUID
	OrderID   int64
	TxnID     string
	EventType string
	Payload   []byte
}

type Store interface {
	CreateOrder(ctx context.Context, order *domain.Order) error
	GetOrderByID(ctx context.Context, id int64) (*domain.Order, error)
	RecordPaymentOutcome(ctx context.Context, outcome *PaymentOutcome) (*PaymentResult, error)
	CreateContact(ctx context.Context, submission *domain.ContactSubmission) error
	CreateUser(ctx context.Context, user *domain.User) error
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUnprocessedEvents(ctx context.Context, limit int) ([]*PaymentEvent, error)
	MarkEventAsProcessed(ctx context.Context, id uuid.UUID) error
	RunMigrations(*Credentials) error
	Close() error
}
