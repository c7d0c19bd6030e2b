package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/PraveshYadav900/codenest-website/internal/domain"
	"github.com/PraveshYadav900/codenest-website/internal/repository"
	"github.com/PraveshYadav900/codenest-website/internal/service"
	"github.com/go-chi/chi/v5"
)

type OrderHandler struct {
	orders  service.OrderService
	timeout time.Duration
}

func NewOrderHandler(orders service.OrderService, timeout time.Duration) *OrderHandler {
	return &OrderHandler{
		orders:  orders,
		timeout: timeout,
	}
}

type CreateOrderRequestDTO struct {
	PackageID     int64               `json:"packageId"`
	Amount        int64               `json:"amount"`
	PaymentMethod string              `json:"paymentMethod"`
	CustomerInfo  domain.CustomerInfo `json:"customerInfo"`
}

type CreateOrderResponseDTO struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

type OrderResponseDTO struct {
	ID             int64     `json:"id"`
	PackageID      int64     `json:"package_id"`
	Amount         int64     `json:"amount"`
	PaymentMethod  string    `json:"payment_method"`
	Status         string    `json:"status"`
	PaymentID      string    `json:"payment_id,omitempty"`
	GatewayOrderID string    `json:"gateway_order_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// POST /api/v1/orders
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req CreateOrderRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	order, err := h.orders.Create(ctx, &service.CreateOrderRequest{
		PackageID:     req.PackageID,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		Customer:      req.CustomerInfo,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, CreateOrderResponseDTO{
		ID:        order.ID,
		CreatedAt: order.CreatedAt,
	})
}

// GET /api/v1/orders/{order_id}
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	orderIDStr := chi.URLParam(r, "order_id")
	orderID, err := strconv.ParseInt(orderIDStr, 10, 64)
	if err != nil || orderID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_order_id", "order_id must be a positive integer")
		return
	}

	order, err := h.orders.Get(ctx, orderID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, OrderResponseDTO{
		ID:             order.ID,
		PackageID:      order.PackageID,
		Amount:         order.Amount,
		PaymentMethod:  order.PaymentMethod,
		Status:         order.Status.String(),
		PaymentID:      order.PaymentID,
		GatewayOrderID: order.GatewayOrderID,
		CreatedAt:      order.CreatedAt,
		UpdatedAt:      order.UpdatedAt,
	})
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// handleServiceError maps service and repository errors to HTTP codes.
// Validation messages go out verbatim; storage failures are logged in
// full and surfaced as an opaque internal error.
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		respondError(w, http.StatusBadRequest, "validation_error", err.Error())
	case errors.Is(err, service.ErrUnknownPackage):
		respondError(w, http.StatusBadRequest, "unknown_package", err.Error())
	case errors.Is(err, repository.ErrOrderNotFound):
		respondError(w, http.StatusNotFound, "not_found", "order not found")
	case errors.Is(err, repository.ErrDuplicateEmail):
		respondError(w, http.StatusBadRequest, "duplicate_email", "user already exists with this email")
	case errors.Is(err, service.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password")
	default:
		log.Printf("internal error: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
