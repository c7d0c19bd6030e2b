package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/PraveshYadav900/codenest-website/internal/domain"
	"github.com/PraveshYadav900/codenest-website/internal/gateway"
	"github.com/PraveshYadav900/codenest-website/internal/repository"
)

type CreateOrderRequest struct {
	PackageID     int64
	Amount        int64
	PaymentMethod string
	Customer      domain.CustomerInfo
}

// CallbackUpdate carries the verified fields of a gateway callback into
// the lifecycle manager. Verification already happened at the adapter;
// this layer only decides what the fields mean for the order row.
type CallbackUpdate struct {
	OrderID        int64
	TxnID          string
	GatewayOrderID string
	ProviderStatus string
	Message        string
}

type CallbackOutcome struct {
	Status    domain.OrderStatus
	Duplicate bool
}

type OrderService interface {
	Create(ctx context.Context, req *CreateOrderRequest) (*domain.Order, error)
	ApplyCallback(ctx context.Context, update *CallbackUpdate) (*CallbackOutcome, error)
	Get(ctx context.Context, id int64) (*domain.Order, error)
}

type OrderServiceImpl struct {
	repo repository.Store
}

func NewOrderService(repo repository.Store) *OrderServiceImpl {
	return &OrderServiceImpl{repo: repo}
}

func (s *OrderServiceImpl) Create(ctx context.Context, req *CreateOrderRequest) (*domain.Order, error) {
	if err := validateCreate(req); err != nil {
		return nil, err
	}

	order := &domain.Order{
		PackageID:     req.PackageID,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		Status:        domain.OrderStatusPending,
		Customer:      req.Customer,
	}

	if err := s.repo.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	return order, nil
}

func validateCreate(req *CreateOrderRequest) error {
	switch {
	case req.PackageID == 0:
		return fmt.Errorf("%w: packageId", ErrValidation)
	case req.Amount <= 0:
		return fmt.Errorf("%w: amount", ErrValidation)
	case req.PaymentMethod == "":
		return fmt.Errorf("%w: paymentMethod", ErrValidation)
	case req.Customer.Name == "":
		return fmt.Errorf("%w: customerInfo.name", ErrValidation)
	case req.Customer.Email == "":
		return fmt.Errorf("%w: customerInfo.email", ErrValidation)
	}
	if domain.PackageByID(req.PackageID) == nil {
		return fmt.Errorf("%w: %d", ErrUnknownPackage, req.PackageID)
	}
	return nil
}

// ApplyCallback maps the provider status and records the outcome. The
// repository write is the idempotency gate: a repeated (order, txn) pair
// comes back as Duplicate and is answered with the current state instead
// of a second transition.
func (s *OrderServiceImpl) ApplyCallback(ctx context.Context, update *CallbackUpdate) (*CallbackOutcome, error) {
	status := gateway.MapProviderStatus(update.ProviderStatus)

	payload, err := json.Marshal(map[string]string{
		"provider_status": update.ProviderStatus,
		"txn_id":          update.TxnID,
		"gateway_order":   update.GatewayOrderID,
		"message":         update.Message,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal callback payload: %w", err)
	}

	result, err := s.repo.RecordPaymentOutcome(ctx, &repository.PaymentOutcome{
		OrderID:        update.OrderID,
		TxnID:          update.TxnID,
		GatewayOrderID: update.GatewayOrderID,
		Status:         status,
		Payload:        payload,
	})
	if err != nil {
		return nil, err
	}

	if result.Duplicate {
		log.Printf("duplicate callback for order %d txn %s, keeping status %s",
			update.OrderID, update.TxnID, result.Order.Status)
	}

	return &CallbackOutcome{
		Status:    result.Order.Status,
		Duplicate: result.Duplicate,
	}, nil
}

func (s *OrderServiceImpl) Get(ctx context.Context, id int64) (*domain.Order, error) {
	return s.repo.GetOrderByID(ctx, id)
}
