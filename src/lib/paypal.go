package lib

import (
	"context"
	"errors"

	"evbook/src/config"

	"github.com/plutov/paypal/v4"
)

// Payments is the slice of the PayPal client the checkout flow needs. Tests
// swap in a stub.
type Payments interface {
	CreateOrder(ctx context.Context, intent string, purchaseUnits []paypal.PurchaseUnitRequest, paymentSource *paypal.PaymentSource, appContext *paypal.ApplicationContext) (*paypal.Order, error)
	CaptureOrder(ctx context.Context, orderID string, captureOrderRequest paypal.CaptureOrderRequest) (*paypal.CaptureOrderResponse, error)
}

var ErrPayPalNotConfigured = errors.New("PayPal is not configured. Please set PAYPAL_CLIENT_ID and PAYPAL_CLIENT_SECRET")

// NewPayPalClient builds an authenticated client for the configured
// environment. Returns ErrPayPalNotConfigured when credentials are absent.
func NewPayPalClient(cfg *config.Config) (Payments, error) {
	if cfg.PayPalClientID == "" || cfg.PayPalSecret == "" {
		return nil, ErrPayPalNotConfigured
	}
	base := paypal.APIBaseSandBox
	if cfg.PayPalEnvironment == "live" {
		base = paypal.APIBaseLive
	}
	c, err := paypal.NewClient(cfg.PayPalClientID, cfg.PayPalSecret, base)
	if err != nil {
		return nil, err
	}
	if _, err := c.GetAccessToken(context.Background()); err != nil {
		return nil, err
	}
	return c, nil
}

// ApprovalURL extracts the buyer approval link from a created order.
func ApprovalURL(order *paypal.Order) string {
	for _, link := range order.Links {
		if link.Rel == "approve" {
			return link.Href
		}
	}
	return ""
}
