package listing

import (
	"context"
	"fmt"
	"time"

	"marketplace/internal/events"
	"marketplace/internal/marketerrors"
	"marketplace/internal/models"
	"marketplace/internal/repository"
	"marketplace/utils"
)

// ListingService serves the product and auction catalogs and records bids
type ListingService struct {
	repo      repository.MarketDB
	publisher events.Publisher
}

// NewListingService creates a new ListingService instance
func NewListingService(repo repository.MarketDB, publisher events.Publisher) *ListingService {
	return &ListingService{
		repo:      repo,
		publisher: publisher,
	}
}

// ListProducts returns the full product collection
func (s *ListingService) ListProducts(ctx context.Context) ([]models.Product, error) {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list products: %w", err)
	}
	return products, nil
}

// GetProduct returns one product
func (s *ListingService) GetProduct(ctx context.Context, id string) (models.Product, error) {
	if id == "" {
		return models.Product{}, fmt.Errorf("service: %w - empty product ID", marketerrors.ErrInvalidInput)
	}
	p, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		return models.Product{}, fmt.Errorf("service: failed to get product %s: %w", id, err)
	}
	return p, nil
}

// CreateProduct stores the product as given. Fields are not validated: a
// product without a name is still stored.
func (s *ListingService) CreateProduct(ctx context.Context, p models.Product) (models.Product, error) {
	created, err := s.repo.CreateProduct(ctx, p)
	if err != nil {
		return models.Product{}, fmt.Errorf("service: failed to create product: %w", err)
	}
	return created, nil
}

// ListAuctions returns the full auction collection
func (s *ListingService) ListAuctions(ctx context.Context) ([]models.Auction, error) {
	auctions, err := s.repo.ListAuctions(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list auctions: %w", err)
	}
	return auctions, nil
}

// GetAuction returns one auction
func (s *ListingService) GetAuction(ctx context.Context, id string) (models.Auction, error) {
	if id == "" {
		return models.Auction{}, fmt.Errorf("service: %w - empty auction ID", marketerrors.ErrInvalidInput)
	}
	a, err := s.repo.GetAuction(ctx, id)
	if err != nil {
		return models.Auction{}, fmt.Errorf("service: failed to get auction %s: %w", id, err)
	}
	return a, nil
}

// CreateAuction stores a new auction. The current price starts at the
// starting price and the status defaults to pending.
func (s *ListingService) CreateAuction(ctx context.Context, a models.Auction) (models.Auction, error) {
	a.CurrentPrice = a.StartingPrice
	a.LastBidAt = nil
	if a.Status == "" {
		a.Status = models.AuctionPending
	}
	created, err := s.repo.CreateAuction(ctx, a)
	if err != nil {
		return models.Auction{}, fmt.Errorf("service: failed to create auction: %w", err)
	}
	return created, nil
}

// PlaceBid stores an immutable bid and announces it. The auction's price is
// not touched here; the price trigger reacts to the published event. A
// publish failure leaves the bid stored and is only logged.
func (s *ListingService) PlaceBid(ctx context.Context, auctionID, bidderID string, amount float64) (models.Bid, error) {
	if auctionID == "" || bidderID == "" {
		return models.Bid{}, fmt.Errorf("service: %w - missing auctionID or bidderID", marketerrors.ErrInvalidBid)
	}
	if amount <= 0 {
		return models.Bid{}, fmt.Errorf("service: %w - non-positive bid amount", marketerrors.ErrInvalidBid)
	}

	bid := models.Bid{
		ID:        utils.GenerateID(),
		AuctionID: auctionID,
		BidderID:  bidderID,
		Amount:    amount,
		CreatedAt: time.Now().UTC(),
	}

	stored, err := s.repo.CreateBid(ctx, bid)
	if err != nil {
		return models.Bid{}, fmt.Errorf("service: failed to record bid for auction %s by %s: %w", auctionID, bidderID, err)
	}

	if err := s.publisher.PublishBidCreated(ctx, events.NewBidCreated(stored)); err != nil {
		utils.Warn("PlaceBid: failed to publish bid created event", map[string]any{
			"auction_id": auctionID,
			"bid_id":     stored.ID,
			"error":      err.Error(),
		})
	}

	return stored, nil
}

// ListBids returns the bids of an auction in creation order
func (s *ListingService) ListBids(ctx context.Context, auctionID string) ([]models.Bid, error) {
	if auctionID == "" {
		return nil, fmt.Errorf("service: %w - empty auction ID", marketerrors.ErrInvalidInput)
	}
	bids, err := s.repo.ListBids(ctx, auctionID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list bids for auction %s: %w", auctionID, err)
	}
	return bids, nil
}
