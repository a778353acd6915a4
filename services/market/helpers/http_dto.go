package helpers

import (
	"time"

	"marketplace/internal/models"
	"marketplace/utils"
)

// Request DTOs. Product and auction creation carry no required fields.
type CreateProductRequest struct {
	Name   string  `json:"name"`
	Price  float64 `json:"price"`
	Stock  int     `json:"stock"`
	Status string  `json:"status"`
}

type CreateAuctionRequest struct {
	ProductName   string               `json:"product_name"`
	StartingPrice float64              `json:"starting_price"`
	Status        models.AuctionStatus `json:"status" binding:"omitempty,oneof=active closed pending"`
}

type PlaceBidRequest struct {
	BidderID string  `json:"bidder_id" binding:"required"`
	Amount   float64 `json:"amount" binding:"required,gt=0"`
}

type LineItemRequest struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int64   `json:"quantity"`
}

type CheckoutSessionRequest struct {
	Items  []LineItemRequest `json:"items" binding:"required,min=1"`
	UserID string            `json:"user_id"`
}

type PaymentIntentRequest struct {
	Amount   int64  `json:"amount" binding:"required,gt=0"`
	Currency string `json:"currency"`
	BidID    string `json:"bid_id"`
}

// Response DTOs
type AuctionResponse struct {
	ID                  string               `json:"id"`
	ProductName         string               `json:"product_name"`
	StartingPrice       float64              `json:"starting_price"`
	CurrentPrice        float64              `json:"current_price"`
	CurrentPriceDisplay string               `json:"current_price_display"`
	Status              models.AuctionStatus `json:"status"`
	CreatedAt           string               `json:"created_at"`
	CreatedAtDisplay    string               `json:"created_at_display"`
}

type BidResponse struct {
	ID               string  `json:"id"`
	AuctionID        string  `json:"auction_id"`
	BidderID         string  `json:"bidder_id"`
	Amount           float64 `json:"amount"`
	CreatedAt        string  `json:"created_at"`
	CreatedAtDisplay string  `json:"created_at_display"`
}

type CheckoutSessionResponse struct {
	SessionID string `json:"session_id"`
}

type PaymentIntentResponse struct {
	ClientSecret string `json:"client_secret"`
}

type PublicConfigResponse struct {
	APIBaseURL           string `json:"api_base_url"`
	StripePublishableKey string `json:"stripe_publishable_key"`
	Currency             string `json:"currency"`
	CurrencyLocale       string `json:"currency_locale"`
}

func (r CreateProductRequest) ToModel() models.Product {
	return models.Product{Name: r.Name, Price: r.Price, Stock: r.Stock, Status: r.Status}
}

func (r CreateAuctionRequest) ToModel() models.Auction {
	return models.Auction{ProductName: r.ProductName, StartingPrice: r.StartingPrice, Status: r.Status}
}

func (r CheckoutSessionRequest) LineItems() []models.LineItem {
	items := make([]models.LineItem, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, models.LineItem{Name: it.Name, Price: it.Price, Quantity: it.Quantity})
	}
	return items
}

func ToAuctionResponse(a models.Auction, currency string) AuctionResponse {
	return AuctionResponse{
		ID:                  a.ID,
		ProductName:         a.ProductName,
		StartingPrice:       a.StartingPrice,
		CurrentPrice:        a.CurrentPrice,
		CurrentPriceDisplay: utils.FormatPrice(a.CurrentPrice, currency),
		Status:              a.Status,
		CreatedAt:           formatRFC3339(a.CreatedAt),
		CreatedAtDisplay:    utils.FormatDate(a.CreatedAt, time.UTC),
	}
}

func ToBidResponse(b models.Bid) BidResponse {
	return BidResponse{
		ID:               b.ID,
		AuctionID:        b.AuctionID,
		BidderID:         b.BidderID,
		Amount:           b.Amount,
		CreatedAt:        formatRFC3339(b.CreatedAt),
		CreatedAtDisplay: utils.FormatDate(b.CreatedAt, time.UTC),
	}
}

func formatRFC3339(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
