package payment

import (
	"context"
	"fmt"
	"strings"

	"marketplace/internal/marketerrors"
	"marketplace/internal/models"
)

//go:generate mockgen -destination=mock_gateway.go -package=payment marketplace/internal/paymentService Gateway

// CheckoutRequest is a cart forwarded to the payment provider
type CheckoutRequest struct {
	Items    []models.LineItem
	UserID   string
	Currency string
}

// IntentRequest is a fixed amount, in minor units, to collect for a bid
type IntentRequest struct {
	Amount   int64
	Currency string
	BidID    string
}

// Gateway is the external payment platform
type Gateway interface {
	CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (string, error)
	CreatePaymentIntent(ctx context.Context, req IntentRequest) (string, error)
}

// PaymentService forwards carts and bid payments to the gateway as-is.
// It applies no retries and no idempotency keys.
type PaymentService struct {
	gateway         Gateway
	defaultCurrency string
}

func NewPaymentService(gateway Gateway, defaultCurrency string) *PaymentService {
	return &PaymentService{
		gateway:         gateway,
		defaultCurrency: strings.ToLower(defaultCurrency),
	}
}

// CreateCheckoutSession returns the provider's session id for the cart
func (s *PaymentService) CreateCheckoutSession(ctx context.Context, items []models.LineItem, userID string) (string, error) {
	if len(items) == 0 {
		return "", fmt.Errorf("service: %w - empty cart", marketerrors.ErrInvalidInput)
	}

	id, err := s.gateway.CreateCheckoutSession(ctx, CheckoutRequest{
		Items:    items,
		UserID:   userID,
		Currency: s.defaultCurrency,
	})
	if err != nil {
		return "", fmt.Errorf("service: %w: %w", marketerrors.ErrPaymentFailed, err)
	}
	return id, nil
}

// CreatePaymentIntent returns the provider's client secret for a bid payment
func (s *PaymentService) CreatePaymentIntent(ctx context.Context, amount int64, currency, bidID string) (string, error) {
	if currency == "" {
		currency = s.defaultCurrency
	}

	secret, err := s.gateway.CreatePaymentIntent(ctx, IntentRequest{
		Amount:   amount,
		Currency: strings.ToLower(currency),
		BidID:    bidID,
	})
	if err != nil {
		return "", fmt.Errorf("service: %w: %w", marketerrors.ErrPaymentFailed, err)
	}
	return secret, nil
}
