package models

import "time"

// AuctionStatus is the lifecycle state of an auction
type AuctionStatus string

const (
	AuctionPending AuctionStatus = "pending"
	AuctionActive  AuctionStatus = "active"
	AuctionClosed  AuctionStatus = "closed"
)

// Product represents a catalog entry that can be bought directly
type Product struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Price  float64 `json:"price"`
	Stock  int     `json:"stock"`
	Status string  `json:"status"`
}

// Auction represents an item sold to the highest bidder.
// CurrentPrice is only written by the bid price trigger.
type Auction struct {
	ID            string        `json:"id"`
	ProductName   string        `json:"product_name"`
	StartingPrice float64       `json:"starting_price"`
	CurrentPrice  float64       `json:"current_price"`
	Status        AuctionStatus `json:"status"`
	LastBidAt     *time.Time    `json:"last_bid_at,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
}

// Bid represents an offer against an auction. Bids are never updated or deleted.
type Bid struct {
	ID        string    `json:"id"`
	AuctionID string    `json:"auction_id"`
	BidderID  string    `json:"bidder_id"`
	Amount    float64   `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

// LineItem is one cart row forwarded to the payment provider
type LineItem struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int64   `json:"quantity"`
}
