package server

import (
	"net/http"

	"marketplace/internal/config"
	"marketplace/services/market/handler"
	"marketplace/utils"

	"github.com/gin-gonic/gin"
)

// SetupRouter configures all Gin routes for the application
func SetupRouter(listing handler.ListingServiceInterface, payment handler.PaymentServiceInterface, cfg *config.Config) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging

	listingHandler := handler.NewListingHandler(listing, cfg.Payment.Currency)
	paymentHandler := handler.NewPaymentHandler(payment)
	configHandler := handler.NewConfigHandler(cfg)

	router.GET("/health", func(c *gin.Context) {
		utils.JSONResponse(c, http.StatusOK, gin.H{"status": "ok"}, "service is healthy")
	})
	router.GET("/config", configHandler.GetConfigHandler)

	products := router.Group("/products")
	{
		products.GET("", listingHandler.ListProductsHandler)
		products.POST("", listingHandler.CreateProductHandler)
		products.GET("/:product_id", listingHandler.GetProductHandler)
	}

	auctions := router.Group("/auctions")
	{
		auctions.GET("", listingHandler.ListAuctionsHandler)
		auctions.POST("", listingHandler.CreateAuctionHandler)
		auctions.GET("/:auction_id", listingHandler.GetAuctionHandler)
		auctions.GET("/:auction_id/bids", listingHandler.ListBidsHandler)
		auctions.POST("/:auction_id/bids", listingHandler.PlaceBidHandler)
	}

	router.POST("/checkout/sessions", paymentHandler.CreateCheckoutSessionHandler)
	router.POST("/payments/intents", paymentHandler.CreatePaymentIntentHandler)

	return router
}
