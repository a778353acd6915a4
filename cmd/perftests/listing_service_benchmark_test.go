package perftests

import (
	"context"
	"fmt"
	"math/rand"
	"sync/atomic"
	"testing"
	"time"

	"marketplace/internal/events"
	listing "marketplace/internal/listingService"
	model "marketplace/internal/models"
	"marketplace/internal/repository"
	"marketplace/internal/trigger"
)

// setupMarket creates a memory repo with numAuctions auctions and a listing
// service whose bids flow through the bus into the price updater
func setupMarket(b *testing.B, numAuctions int, mode trigger.Mode) (*repository.MemoryRepo, *listing.ListingService, *events.Bus) {
	b.Helper()
	ctx := context.Background()
	repo := repository.NewMemoryRepo()
	for i := 0; i < numAuctions; i++ {
		if _, err := repo.CreateAuction(ctx, model.Auction{
			ProductName:   fmt.Sprintf("lot_%d", i),
			StartingPrice: 50,
			CurrentPrice:  50,
			Status:        model.AuctionActive,
		}); err != nil {
			b.Fatalf("failed to create auction: %v", err)
		}
	}

	bus := events.NewBus()
	bus.Subscribe(trigger.NewPriceUpdater(repo, mode).HandleBidCreated)
	b.Cleanup(func() { _ = bus.Close(context.Background()) })

	return repo, listing.NewListingService(repo, bus), bus
}

// Benchmark 1: PlaceBid - Isolated Auctions (Low Contention)
func Benchmark_PlaceBid_Isolated(b *testing.B) {
	_, svc, bus := setupMarket(b, b.N, trigger.LastWriteWins)
	ctx := context.Background()

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		auctionID := fmt.Sprintf("%d", i+1)
		bidAmount := float64(50 + rand.Intn(100))
		if _, err := svc.PlaceBid(ctx, auctionID, fmt.Sprintf("user_%d", i), bidAmount); err != nil {
			b.Fatalf("failed to place bid: %v", err)
		}
	}
	bus.Wait()
}

// Benchmark 2: PlaceBid - Shared Auction (High Contention)
func Benchmark_PlaceBid_ConcurrentSharedAuction(b *testing.B) {
	for _, mode := range []trigger.Mode{trigger.LastWriteWins, trigger.Ordered} {
		b.Run(string(mode), func(b *testing.B) {
			_, svc, bus := setupMarket(b, 1, mode)
			ctx := context.Background()

			b.ReportAllocs()
			b.ResetTimer()

			var lastBid int64 = 50
			b.RunParallel(func(pb *testing.PB) {
				rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
				for pb.Next() {
					nextBid := atomic.AddInt64(&lastBid, int64(rnd.Intn(5)+1))
					_, _ = svc.PlaceBid(ctx, "1", fmt.Sprintf("user_parallel_%d", rnd.Int()), float64(nextBid))
				}
			})
			bus.Wait()
		})
	}
}

// Benchmark 3: Trigger only, bypassing the bus
func Benchmark_PriceUpdater_HandleBidCreated(b *testing.B) {
	for _, mode := range []trigger.Mode{trigger.LastWriteWins, trigger.Ordered} {
		b.Run(string(mode), func(b *testing.B) {
			repo, _, _ := setupMarket(b, 1, mode)
			updater := trigger.NewPriceUpdater(repo, mode)
			ctx := context.Background()
			start := time.Now()

			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				bid := model.Bid{
					ID:        fmt.Sprintf("bid_%d", i),
					AuctionID: "1",
					BidderID:  "user",
					Amount:    float64(50 + i),
					CreatedAt: start.Add(time.Duration(i) * time.Microsecond),
				}
				updater.HandleBidCreated(ctx, events.NewBidCreated(bid))
			}
		})
	}
}

// Benchmark 4: Mixed workload, 70% auction reads and 30% bids
func Benchmark_MixedWorkload_SharedAuction(b *testing.B) {
	_, svc, bus := setupMarket(b, 1, trigger.LastWriteWins)
	ctx := context.Background()

	b.ReportAllocs()
	b.ResetTimer()

	var lastBid int64 = 150
	b.RunParallel(func(pb *testing.PB) {
		rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
		for pb.Next() {
			if rnd.Intn(10) < 3 {
				nextBid := atomic.AddInt64(&lastBid, int64(rnd.Intn(5)+1))
				_, _ = svc.PlaceBid(ctx, "1", fmt.Sprintf("user_writer_%d", rnd.Int()), float64(nextBid))
				continue
			}
			if _, err := svc.GetAuction(ctx, "1"); err != nil {
				b.Errorf("failed to read auction: %v", err)
			}
		}
	})
	bus.Wait()
}
