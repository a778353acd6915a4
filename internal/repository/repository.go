package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"marketplace/internal/marketerrors"
	model "marketplace/internal/models"
	"marketplace/utils"
)

//go:generate mockgen -destination=mock_repository.go -package=repository marketplace/internal/repository MarketDB

// ProductStore is the storage capability behind the product listing
type ProductStore interface {
	ListProducts(ctx context.Context) ([]model.Product, error)
	GetProduct(ctx context.Context, id string) (model.Product, error)
	CreateProduct(ctx context.Context, p model.Product) (model.Product, error)
}

// AuctionStore is the storage capability behind auctions.
// SetCurrentPrice is an unconditional write; ApplyBidPrice only writes when
// bidAt is newer than the auction's last applied bid and reports whether it did.
type AuctionStore interface {
	ListAuctions(ctx context.Context) ([]model.Auction, error)
	GetAuction(ctx context.Context, id string) (model.Auction, error)
	CreateAuction(ctx context.Context, a model.Auction) (model.Auction, error)
	SetCurrentPrice(ctx context.Context, auctionID string, amount float64) error
	ApplyBidPrice(ctx context.Context, auctionID string, amount float64, bidAt time.Time) (bool, error)
}

// BidStore holds bids nested under their auction
type BidStore interface {
	CreateBid(ctx context.Context, bid model.Bid) (model.Bid, error)
	GetBid(ctx context.Context, auctionID, bidID string) (model.Bid, error)
	ListBids(ctx context.Context, auctionID string) ([]model.Bid, error)
}

// MarketDB is the full storage surface used by the services
type MarketDB interface {
	ProductStore
	AuctionStore
	BidStore
}

// MemoryRepo is a concurrency-safe in-memory implementation of MarketDB
type MemoryRepo struct {
	mu       sync.RWMutex
	products []model.Product
	auctions []model.Auction
	bids     map[string][]model.Bid // key: auctionID -> bids in creation order
}

// NewMemoryRepo creates an empty in-memory repository
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		bids: make(map[string][]model.Bid),
	}
}

// ListProducts returns a copy of all products
func (r *MemoryRepo) ListProducts(_ context.Context) ([]model.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]model.Product{}, r.products...), nil
}

// GetProduct returns a product by id
func (r *MemoryRepo) GetProduct(_ context.Context, id string) (model.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.products {
		if p.ID == id {
			return p, nil
		}
	}
	return model.Product{}, fmt.Errorf("get product %s: %w", id, marketerrors.ErrProductNotFound)
}

// CreateProduct appends a product and assigns it the next sequential id
func (r *MemoryRepo) CreateProduct(_ context.Context, p model.Product) (model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.ID = utils.SequentialID(len(r.products))
	r.products = append(r.products, p)
	return p, nil
}

// ListAuctions returns a copy of all auctions
func (r *MemoryRepo) ListAuctions(_ context.Context) ([]model.Auction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]model.Auction{}, r.auctions...), nil
}

// GetAuction returns an auction by id
func (r *MemoryRepo) GetAuction(_ context.Context, id string) (model.Auction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i := r.auctionIndex(id); i >= 0 {
		return r.auctions[i], nil
	}
	return model.Auction{}, fmt.Errorf("get auction %s: %w", id, marketerrors.ErrAuctionNotFound)
}

// CreateAuction appends an auction and assigns it the next sequential id
func (r *MemoryRepo) CreateAuction(_ context.Context, a model.Auction) (model.Auction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a.ID = utils.SequentialID(len(r.auctions))
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	r.auctions = append(r.auctions, a)
	return a, nil
}

// SetCurrentPrice overwrites the auction's current price
func (r *MemoryRepo) SetCurrentPrice(_ context.Context, auctionID string, amount float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.auctionIndex(auctionID)
	if i < 0 {
		return fmt.Errorf("set current price for auction %s: %w", auctionID, marketerrors.ErrAuctionNotFound)
	}
	r.auctions[i].CurrentPrice = amount
	return nil
}

// ApplyBidPrice writes amount only if bidAt is after the last applied bid
func (r *MemoryRepo) ApplyBidPrice(_ context.Context, auctionID string, amount float64, bidAt time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.auctionIndex(auctionID)
	if i < 0 {
		return false, fmt.Errorf("apply bid price for auction %s: %w", auctionID, marketerrors.ErrAuctionNotFound)
	}
	a := &r.auctions[i]
	if a.LastBidAt != nil && !bidAt.After(*a.LastBidAt) {
		return false, nil
	}
	at := bidAt
	a.CurrentPrice = amount
	a.LastBidAt = &at
	return true, nil
}

// CreateBid stores a bid under its auction
func (r *MemoryRepo) CreateBid(_ context.Context, bid model.Bid) (model.Bid, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.auctionIndex(bid.AuctionID) < 0 {
		return model.Bid{}, fmt.Errorf("create bid for auction %s: %w", bid.AuctionID, marketerrors.ErrAuctionNotFound)
	}
	r.bids[bid.AuctionID] = append(r.bids[bid.AuctionID], bid)
	return bid, nil
}

// GetBid returns one bid of an auction
func (r *MemoryRepo) GetBid(_ context.Context, auctionID, bidID string) (model.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, b := range r.bids[auctionID] {
		if b.ID == bidID {
			return b, nil
		}
	}
	return model.Bid{}, fmt.Errorf("get bid %s for auction %s: %w", bidID, auctionID, marketerrors.ErrBidNotFound)
}

// ListBids returns the bids of an auction in creation order
func (r *MemoryRepo) ListBids(_ context.Context, auctionID string) ([]model.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.auctionIndex(auctionID) < 0 {
		return nil, fmt.Errorf("list bids for auction %s: %w", auctionID, marketerrors.ErrAuctionNotFound)
	}
	return append([]model.Bid{}, r.bids[auctionID]...), nil
}

// auctionIndex must be called with mu held
func (r *MemoryRepo) auctionIndex(id string) int {
	for i := range r.auctions {
		if r.auctions[i].ID == id {
			return i
		}
	}
	return -1
}
