package handler

import (
	"context"
	"net/http"

	"marketplace/internal/config"
	"marketplace/internal/models"
	"marketplace/services/market/helpers"
	"marketplace/utils"

	"github.com/gin-gonic/gin"
)

type PaymentServiceInterface interface {
	CreateCheckoutSession(ctx context.Context, items []models.LineItem, userID string) (string, error)
	CreatePaymentIntent(ctx context.Context, amount int64, currency, bidID string) (string, error)
}

type PaymentHandler struct {
	service PaymentServiceInterface
}

func NewPaymentHandler(service PaymentServiceInterface) *PaymentHandler {
	return &PaymentHandler{service: service}
}

// CreateCheckoutSessionHandler handles POST /checkout/sessions
func (h *PaymentHandler) CreateCheckoutSessionHandler(c *gin.Context) {
	var req helpers.CheckoutSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateCheckoutSessionHandler", err)
		return
	}

	id, err := h.service.CreateCheckoutSession(c.Request.Context(), req.LineItems(), req.UserID)
	if err != nil {
		helpers.RespondError(c, "CreateCheckoutSessionHandler", err, map[string]any{"user_id": req.UserID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.CheckoutSessionResponse{SessionID: id}, "checkout session created")
	helpers.LogSuccess("CreateCheckoutSessionHandler", "checkout session created", map[string]any{
		"user_id":    req.UserID,
		"items":      len(req.Items),
		"session_id": id,
	})
}

// CreatePaymentIntentHandler handles POST /payments/intents
func (h *PaymentHandler) CreatePaymentIntentHandler(c *gin.Context) {
	var req helpers.PaymentIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreatePaymentIntentHandler", err)
		return
	}

	secret, err := h.service.CreatePaymentIntent(c.Request.Context(), req.Amount, req.Currency, req.BidID)
	if err != nil {
		helpers.RespondError(c, "CreatePaymentIntentHandler", err, map[string]any{"bid_id": req.BidID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.PaymentIntentResponse{ClientSecret: secret}, "payment intent created")
	helpers.LogSuccess("CreatePaymentIntentHandler", "payment intent created", map[string]any{
		"bid_id": req.BidID,
		"amount": req.Amount,
	})
}

// ConfigHandler exposes the settings a client needs to talk to this API
type ConfigHandler struct {
	public helpers.PublicConfigResponse
}

func NewConfigHandler(cfg *config.Config) *ConfigHandler {
	return &ConfigHandler{public: helpers.PublicConfigResponse{
		APIBaseURL:           cfg.APIBaseURL,
		StripePublishableKey: cfg.Payment.PublishableKey,
		Currency:             cfg.Payment.Currency,
		CurrencyLocale:       cfg.Payment.CurrencyLocale,
	}}
}

// GetConfigHandler handles GET /config
func (h *ConfigHandler) GetConfigHandler(c *gin.Context) {
	utils.JSONResponse(c, http.StatusOK, h.public, "config retrieved successfully")
}
