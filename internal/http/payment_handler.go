package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/PraveshYadav900/codenest-website/internal/domain"
	"github.com/PraveshYadav900/codenest-website/internal/gateway"
	"github.com/PraveshYadav900/codenest-website/internal/repository"
	"github.com/PraveshYadav900/codenest-website/internal/service"
)

type PaymentHandler struct {
	orders  service.OrderService
	gateway *gateway.Client
	timeout time.Duration
}

func NewPaymentHandler(orders service.OrderService, gw *gateway.Client, timeout time.Duration) *PaymentHandler {
	return &PaymentHandler{
		orders:  orders,
		gateway: gw,
		timeout: timeout,
	}
}

type InitiatePaymentRequestDTO struct {
	OrderID      int64               `json:"orderId"`
	Amount       int64               `json:"amount"`
	CustomerInfo domain.CustomerInfo `json:"customerInfo"`
}

var redirectFormTmpl = template.Must(template.New("redirect").Parse(`<!DOCTYPE html>
<html>
<head><title>Processing Payment...</title></head>
<body onload="document.getElementById('gatewayForm').submit();">
<p>Redirecting to the payment gateway, please wait...</p>
<form id="gatewayForm" method="post" action="{{.ActionURL}}">
{{- range $name, $value := .Fields}}
<input type="hidden" name="{{$name}}" value="{{$value}}">
{{- end}}
</form>
</body>
</html>
`))

// POST /api/v1/payments/initiate
//
// The order row is the source of truth for amount and customer identity;
// the request body only names the order. A row that already left pending
// cannot be paid again.
func (h *PaymentHandler) InitiatePayment(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req InitiatePaymentRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.OrderID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_order_id", "orderId must be a positive integer")
		return
	}

	order, err := h.orders.Get(ctx, req.OrderID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if order.Status != domain.OrderStatusPending {
		respondError(w, http.StatusConflict, "order_not_pending",
			fmt.Sprintf("order is already %s", order.Status))
		return
	}

	form := h.gateway.BuildRedirect(order.ID, order.Amount, order.Customer)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if err := redirectFormTmpl.Execute(w, form); err != nil {
		log.Printf("failed to render redirect form: %v", err)
	}
}

// POST /api/v1/payments/callback
//
// The callback is adversarial input: the checksum gate runs before any
// state is touched, and every rejection lands on the generic failure page
// so nothing internal leaks into the redirect.
func (h *PaymentHandler) Callback(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := r.ParseForm(); err != nil {
		log.Printf("security: unparseable payment callback (request %s): %v", getRequestID(r.Context()), err)
		redirectFailure(w, r, "", "")
		return
	}

	result, err := h.gateway.ParseCallback(r.PostForm)
	if err != nil {
		log.Printf("security: rejected payment callback (request %s): %v", getRequestID(r.Context()), err)
		redirectFailure(w, r, "", "")
		return
	}

	outcome, err := h.orders.ApplyCallback(ctx, &service.CallbackUpdate{
		OrderID:        result.OrderID,
		TxnID:          result.TxnID,
		GatewayOrderID: result.GatewayOrderID,
		ProviderStatus: result.ProviderStatus,
		Message:        result.Message,
	})
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			log.Printf("security: callback for unknown order %d txn %s", result.OrderID, result.TxnID)
		} else {
			log.Printf("failed to apply payment callback for order %d: %v", result.OrderID, err)
		}
		redirectFailure(w, r, "", "")
		return
	}

	if outcome.Status == domain.OrderStatusCompleted {
		target := fmt.Sprintf("/payment/success?order=%d&txn=%s", result.OrderID, url.QueryEscape(result.TxnID))
		http.Redirect(w, r, target, http.StatusSeeOther)
		return
	}

	redirectFailure(w, r, fmt.Sprint(result.OrderID), result.Message)
}

func redirectFailure(w http.ResponseWriter, r *http.Request, orderID, reason string) {
	target := "/payment/failed"
	if orderID != "" {
		target = fmt.Sprintf("/payment/failed?order=%s&reason=%s", orderID, url.QueryEscape(reason))
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
