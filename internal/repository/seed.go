package repository

import (
	"context"
	"fmt"

	model "marketplace/internal/models"
)

// SampleProducts is the fixed catalog loaded at startup
func SampleProducts() []model.Product {
	return []model.Product{
		{Name: "Vintage Camera", Price: 120, Stock: 3, Status: "available"},
		{Name: "Leather Jacket", Price: 85.5, Stock: 10, Status: "available"},
		{Name: "Record Player", Price: 240, Stock: 0, Status: "sold_out"},
	}
}

// SampleAuctions is the fixed set of auctions loaded at startup
func SampleAuctions() []model.Auction {
	return []model.Auction{
		{ProductName: "Antique Clock", StartingPrice: 50, CurrentPrice: 50, Status: model.AuctionActive},
		{ProductName: "Signed Guitar", StartingPrice: 300, CurrentPrice: 300, Status: model.AuctionPending},
	}
}

// Seed loads the sample catalog into any store. Stores that already hold
// products are left untouched.
func Seed(ctx context.Context, db MarketDB) error {
	existing, err := db.ListProducts(ctx)
	if err != nil {
		return fmt.Errorf("seed: list products: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}
	for _, p := range SampleProducts() {
		if _, err := db.CreateProduct(ctx, p); err != nil {
			return fmt.Errorf("seed: create product %q: %w", p.Name, err)
		}
	}
	for _, a := range SampleAuctions() {
		if _, err := db.CreateAuction(ctx, a); err != nil {
			return fmt.Errorf("seed: create auction %q: %w", a.ProductName, err)
		}
	}
	return nil
}
