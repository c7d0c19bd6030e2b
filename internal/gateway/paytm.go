package gateway

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/PraveshYadav900/codenest-website/internal/domain"
)

var (
	ErrMissingCredentials = errors.New("paytm merchant credentials are not configured")
	ErrChecksumMismatch   = errors.New("callback checksum does not match")
	ErrMalformedCallback  = errors.New("callback payload is malformed")
)

const checksumField = "CHECKSUMHASH"

type Config struct {
	MerchantID   string
	MerchantKey  string
	Website      string
	IndustryType string
	ChannelID    string
	CallbackURL  string
	PaymentURL   string
}

// Client builds signed redirect forms for the hosted payment page and
// verifies the asynchronous callbacks the gateway posts back.
type Client struct {
	cfg Config
}

func New(cfg Config) (*Client, error) {
	if cfg.MerchantID == "" || cfg.MerchantKey == "" {
		return nil, ErrMissingCredentials
	}
	if cfg.Website == "" {
		cfg.Website = "WEBSTAGING"
	}
	if cfg.IndustryType == "" {
		cfg.IndustryType = "Retail"
	}
	if cfg.ChannelID == "" {
		cfg.ChannelID = "WEB"
	}
	if cfg.PaymentURL == "" {
		cfg.PaymentURL = "https://securegw-stage.paytm.in/order/process"
	}
	return &Client{cfg: cfg}, nil
}

// RedirectForm carries everything the HTTP layer needs to render the
// self-submitting form: the hidden fields (checksum included) and the
// hosted page URL to post them to.
type RedirectForm struct {
	ActionURL string
	Fields    map[string]string
}

// BuildRedirect assembles and signs the gateway parameter set for an order.
// Amount is paise and is rendered as a fixed two-decimal rupee string.
func (c *Client) BuildRedirect(orderID, amount int64, customer domain.CustomerInfo) *RedirectForm {
	params := map[string]string{
		"MID":              c.cfg.MerchantID,
		"WEBSITE":          c.cfg.Website,
		"INDUSTRY_TYPE_ID": c.cfg.IndustryType,
		"CHANNEL_ID":       c.cfg.ChannelID,
		"ORDER_ID":         strconv.FormatInt(orderID, 10),
		"TXN_AMOUNT":       FormatAmount(amount),
		"CUST_ID":          customer.Email,
		"EMAIL":            customer.Email,
		"MOBILE_NO":        customer.Phone,
		"CALLBACK_URL":     c.cfg.CallbackURL,
	}
	checksum := Checksum(params, c.cfg.MerchantKey)

	fields := make(map[string]string, len(params)+1)
	for k, v := range params {
		if v == "" {
			continue
		}
		fields[k] = v
	}
	fields[checksumField] = checksum

	return &RedirectForm{
		ActionURL: c.cfg.PaymentURL,
		Fields:    fields,
	}
}

// FormatAmount renders paise as a rupee string with two decimals.
func FormatAmount(paise int64) string {
	return fmt.Sprintf("%d.%02d", paise/100, paise%100)
}

// CallbackResult is the verified, typed view of a gateway callback.
type CallbackResult struct {
	OrderID        int64
	TxnID          string
	GatewayOrderID string
	ProviderStatus string
	RespCode       string
	Message        string
}

// ParseCallback verifies the checksum over the raw form fields and only
// then extracts the typed result. The checksum gate runs before anything
// else: an unverifiable payload must never reach order state.
func (c *Client) ParseCallback(values url.Values) (*CallbackResult, error) {
	params := make(map[string]string, len(values))
	for k := range values {
		if k == checksumField {
			continue
		}
		params[k] = values.Get(k)
	}

	received := values.Get(checksumField)
	if received == "" || !VerifyChecksum(params, c.cfg.MerchantKey, received) {
		return nil, ErrChecksumMismatch
	}

	rawOrderID := values.Get("ORDERID")
	orderID, err := strconv.ParseInt(rawOrderID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: ORDERID %q", ErrMalformedCallback, rawOrderID)
	}

	return &CallbackResult{
		OrderID:        orderID,
		TxnID:          values.Get("TXNID"),
		GatewayOrderID: rawOrderID,
		ProviderStatus: values.Get("STATUS"),
		RespCode:       values.Get("RESPCODE"),
		Message:        values.Get("RESPMSG"),
	}, nil
}

// MapProviderStatus translates the gateway's STATUS field to an order
// status. Anything outside the two known values counts as failed.
func MapProviderStatus(status string) domain.OrderStatus {
	switch status {
	case "TXN_SUCCESS":
		return domain.OrderStatusCompleted
	case "PENDING":
		return domain.OrderStatusPending
	default:
		return domain.OrderStatusFailed
	}
}
