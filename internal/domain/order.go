package domain

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusFailed    OrderStatus = "failed"
)

func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusFailed
}

// String representation (for logging)
func (s OrderStatus) String() string {
	return string(s)
}

// CustomerInfo is the identity block captured at checkout. Name and Email
// are required; everything else is stored as NULL when absent.
type CustomerInfo struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Company string `json:"company,omitempty"`
	Address string `json:"address,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Pincode string `json:"pincode,omitempty"`
}

// Order amounts are integer minor currency units (paise).
type Order struct {
	ID             int64
	PackageID      int64
	Amount         int64
	PaymentMethod  string
	Status         OrderStatus
	Customer       CustomerInfo
	PaymentID      string
	GatewayOrderID string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
