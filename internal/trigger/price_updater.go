package trigger

import (
	"context"
	"time"

	"marketplace/internal/events"
	"marketplace/utils"
)

//go:generate mockgen -destination=mock_trigger.go -package=trigger marketplace/internal/trigger PriceWriter

// PriceWriter is the slice of the auction store the trigger writes through
type PriceWriter interface {
	SetCurrentPrice(ctx context.Context, auctionID string, amount float64) error
	ApplyBidPrice(ctx context.Context, auctionID string, amount float64, bidAt time.Time) (bool, error)
}

// Mode selects how a bid's amount reaches the auction
type Mode string

const (
	// LastWriteWins assigns the amount unconditionally. Under concurrent
	// delivery the surviving price is whichever write committed last.
	LastWriteWins Mode = "last_write_wins"
	// Ordered only applies a bid newer than the last applied one.
	Ordered Mode = "ordered"
)

// PriceUpdater keeps an auction's current price in step with its newest bid.
// It performs at most one write per event and never returns an error: a
// missing payload is a no-op and a failed write is logged and dropped.
type PriceUpdater struct {
	store PriceWriter
	mode  Mode
}

func NewPriceUpdater(store PriceWriter, mode Mode) *PriceUpdater {
	if mode != Ordered {
		mode = LastWriteWins
	}
	return &PriceUpdater{store: store, mode: mode}
}

// HandleBidCreated matches events.Handler
func (u *PriceUpdater) HandleBidCreated(ctx context.Context, evt events.BidCreated) {
	fields := map[string]any{
		"event_id":   evt.EventID,
		"auction_id": evt.AuctionID,
		"bid_id":     evt.BidID,
		"mode":       string(u.mode),
	}

	if evt.Bid == nil {
		utils.Warn("PriceUpdater: no data associated with the event", fields)
		return
	}
	fields["amount"] = evt.Bid.Amount

	if u.mode == Ordered {
		applied, err := u.store.ApplyBidPrice(ctx, evt.AuctionID, evt.Bid.Amount, evt.Bid.CreatedAt)
		if err != nil {
			fields["error"] = err.Error()
			utils.Error("PriceUpdater: failed to update auction price", fields)
			return
		}
		if !applied {
			utils.Info("PriceUpdater: stale bid ignored", fields)
			return
		}
		utils.Info("PriceUpdater: auction price updated", fields)
		return
	}

	if err := u.store.SetCurrentPrice(ctx, evt.AuctionID, evt.Bid.Amount); err != nil {
		fields["error"] = err.Error()
		utils.Error("PriceUpdater: failed to update auction price", fields)
		return
	}
	utils.Info("PriceUpdater: auction price updated", fields)
}
