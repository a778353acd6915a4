package handler

import (
	"context"
	"net/http"

	"marketplace/internal/models"
	"marketplace/services/market/helpers"
	"marketplace/utils"

	"github.com/gin-gonic/gin"
)

//go:generate mockgen -destination=mock_handler.go -package=handler marketplace/services/market/handler ListingServiceInterface,PaymentServiceInterface

type ListingServiceInterface interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, id string) (models.Product, error)
	CreateProduct(ctx context.Context, p models.Product) (models.Product, error)
	ListAuctions(ctx context.Context) ([]models.Auction, error)
	GetAuction(ctx context.Context, id string) (models.Auction, error)
	CreateAuction(ctx context.Context, a models.Auction) (models.Auction, error)
	PlaceBid(ctx context.Context, auctionID, bidderID string, amount float64) (models.Bid, error)
	ListBids(ctx context.Context, auctionID string) ([]models.Bid, error)
}

type ListingHandler struct {
	service  ListingServiceInterface
	currency string
}

func NewListingHandler(service ListingServiceInterface, currency string) *ListingHandler {
	return &ListingHandler{service: service, currency: currency}
}

// ListProductsHandler handles GET /products
func (h *ListingHandler) ListProductsHandler(c *gin.Context) {
	products, err := h.service.ListProducts(c.Request.Context())
	if err != nil {
		helpers.RespondError(c, "ListProductsHandler", err, nil)
		return
	}
	if products == nil {
		products = []models.Product{}
	}

	utils.JSONResponse(c, http.StatusOK, products, "products retrieved successfully")
	helpers.LogSuccess("ListProductsHandler", "products retrieved successfully", map[string]any{"count": len(products)})
}

// GetProductHandler handles GET /products/:product_id
func (h *ListingHandler) GetProductHandler(c *gin.Context) {
	id := c.Param("product_id")
	product, err := h.service.GetProduct(c.Request.Context(), id)
	if err != nil {
		helpers.RespondError(c, "GetProductHandler", err, map[string]any{"product_id": id})
		return
	}
	utils.JSONResponse(c, http.StatusOK, product, "product retrieved successfully")
}

// CreateProductHandler handles POST /products
func (h *ListingHandler) CreateProductHandler(c *gin.Context) {
	var req helpers.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateProductHandler", err)
		return
	}

	product, err := h.service.CreateProduct(c.Request.Context(), req.ToModel())
	if err != nil {
		helpers.RespondError(c, "CreateProductHandler", err, nil)
		return
	}

	utils.JSONResponse(c, http.StatusCreated, product, "product created successfully")
	helpers.LogSuccess("CreateProductHandler", "product created successfully", map[string]any{"product_id": product.ID})
}

// ListAuctionsHandler handles GET /auctions
func (h *ListingHandler) ListAuctionsHandler(c *gin.Context) {
	auctions, err := h.service.ListAuctions(c.Request.Context())
	if err != nil {
		helpers.RespondError(c, "ListAuctionsHandler", err, nil)
		return
	}

	resp := make([]helpers.AuctionResponse, 0, len(auctions))
	for _, a := range auctions {
		resp = append(resp, helpers.ToAuctionResponse(a, h.currency))
	}

	utils.JSONResponse(c, http.StatusOK, resp, "auctions retrieved successfully")
	helpers.LogSuccess("ListAuctionsHandler", "auctions retrieved successfully", map[string]any{"count": len(resp)})
}

// GetAuctionHandler handles GET /auctions/:auction_id
func (h *ListingHandler) GetAuctionHandler(c *gin.Context) {
	id := c.Param("auction_id")
	auction, err := h.service.GetAuction(c.Request.Context(), id)
	if err != nil {
		helpers.RespondError(c, "GetAuctionHandler", err, map[string]any{"auction_id": id})
		return
	}
	utils.JSONResponse(c, http.StatusOK, helpers.ToAuctionResponse(auction, h.currency), "auction retrieved successfully")
}

// CreateAuctionHandler handles POST /auctions
func (h *ListingHandler) CreateAuctionHandler(c *gin.Context) {
	var req helpers.CreateAuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateAuctionHandler", err)
		return
	}

	auction, err := h.service.CreateAuction(c.Request.Context(), req.ToModel())
	if err != nil {
		helpers.RespondError(c, "CreateAuctionHandler", err, nil)
		return
	}

	utils.JSONResponse(c, http.StatusCreated, helpers.ToAuctionResponse(auction, h.currency), "auction created successfully")
	helpers.LogSuccess("CreateAuctionHandler", "auction created successfully", map[string]any{"auction_id": auction.ID})
}

// PlaceBidHandler handles POST /auctions/:auction_id/bids
func (h *ListingHandler) PlaceBidHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")
	var req helpers.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "PlaceBidHandler", err)
		return
	}

	bid, err := h.service.PlaceBid(c.Request.Context(), auctionID, req.BidderID, req.Amount)
	if err != nil {
		helpers.RespondError(c, "PlaceBidHandler", err, map[string]any{
			"auction_id": auctionID,
			"bidder_id":  req.BidderID,
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, helpers.ToBidResponse(bid), "bid recorded successfully")
	helpers.LogSuccess("PlaceBidHandler", "bid recorded successfully", map[string]any{
		"bid_id":     bid.ID,
		"auction_id": bid.AuctionID,
		"bidder_id":  bid.BidderID,
		"amount":     bid.Amount,
	})
}

// ListBidsHandler handles GET /auctions/:auction_id/bids
func (h *ListingHandler) ListBidsHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")
	bids, err := h.service.ListBids(c.Request.Context(), auctionID)
	if err != nil {
		helpers.RespondError(c, "ListBidsHandler", err, map[string]any{"auction_id": auctionID})
		return
	}

	resp := make([]helpers.BidResponse, 0, len(bids))
	for _, b := range bids {
		resp = append(resp, helpers.ToBidResponse(b))
	}
	utils.JSONResponse(c, http.StatusOK, resp, "bids retrieved successfully")
}
