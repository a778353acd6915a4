package payment

import (
	"context"
	"errors"
	"testing"

	"marketplace/internal/marketerrors"
	"marketplace/internal/models"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

func TestPaymentService_CreateCheckoutSession(t *testing.T) {
	items := []models.LineItem{{Name: "Vintage Camera", Price: 120, Quantity: 1}}

	tests := []struct {
		name          string
		items         []models.LineItem
		mockSetup     func(gw *MockGateway)
		wantID        string
		expectedError error
	}{
		{
			name:  "forwards_cart_verbatim",
			items: items,
			mockSetup: func(gw *MockGateway) {
				gw.EXPECT().CreateCheckoutSession(gomock.Any(), CheckoutRequest{Items: items, UserID: "user1", Currency: "usd"}).
					Return("cs_test_123", nil)
			},
			wantID: "cs_test_123",
		},
		{
			name:          "empty_cart",
			items:         nil,
			mockSetup:     func(*MockGateway) {},
			expectedError: marketerrors.ErrInvalidInput,
		},
		{
			name:  "gateway_failure",
			items: items,
			mockSetup: func(gw *MockGateway) {
				gw.EXPECT().CreateCheckoutSession(gomock.Any(), gomock.Any()).Return("", errors.New("invalid api key"))
			},
			expectedError: marketerrors.ErrPaymentFailed,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			gw := NewMockGateway(ctrl)
			tc.mockSetup(gw)
			svc := NewPaymentService(gw, "USD")

			id, err := svc.CreateCheckoutSession(context.Background(), tc.items, "user1")
			if tc.expectedError != nil {
				require.True(t, errors.Is(err, tc.expectedError), "expected error: %v, got: %v", tc.expectedError, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.wantID, id)
		})
	}
}

func TestPaymentService_CreatePaymentIntent(t *testing.T) {
	tests := []struct {
		name         string
		currency     string
		wantCurrency string
		gatewayErr   error
	}{
		{name: "explicit_currency_lowercased", currency: "EUR", wantCurrency: "eur"},
		{name: "default_currency", currency: "", wantCurrency: "usd"},
		{name: "gateway_failure_keeps_raw_message", currency: "usd", wantCurrency: "usd", gatewayErr: errors.New("Your card was declined.")},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			gw := NewMockGateway(ctrl)
			secret := "pi_1_secret_2"
			if tc.gatewayErr != nil {
				secret = ""
			}
			gw.EXPECT().CreatePaymentIntent(gomock.Any(), IntentRequest{Amount: 15000, Currency: tc.wantCurrency, BidID: "bid-1"}).
				Return(secret, tc.gatewayErr)

			svc := NewPaymentService(gw, "usd")
			got, err := svc.CreatePaymentIntent(context.Background(), 15000, tc.currency, "bid-1")

			if tc.gatewayErr != nil {
				require.True(t, errors.Is(err, marketerrors.ErrPaymentFailed))
				require.True(t, errors.Is(err, tc.gatewayErr))
				require.Contains(t, err.Error(), "Your card was declined.")
				return
			}
			require.NoError(t, err)
			require.Equal(t, "pi_1_secret_2", got)
		})
	}
}
