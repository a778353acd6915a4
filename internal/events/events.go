package events

import (
	"context"
	"errors"
	"sync"
	"time"

	model "marketplace/internal/models"
	"marketplace/utils"
)

//go:generate mockgen -destination=mock_events.go -package=events marketplace/internal/events Publisher

var ErrBusClosed = errors.New("event bus is closed")

// BidCreated is emitted once a bid has been stored under its auction.
// Bid is nil when the event carries no bid data.
type BidCreated struct {
	EventID    string     `json:"event_id"`
	AuctionID  string     `json:"auction_id"`
	BidID      string     `json:"bid_id"`
	Bid        *model.Bid `json:"bid,omitempty"`
	OccurredAt time.Time  `json:"occurred_at"`
}

// NewBidCreated builds the event for a stored bid
func NewBidCreated(bid model.Bid) BidCreated {
	b := bid
	return BidCreated{
		EventID:    utils.GenerateID(),
		AuctionID:  bid.AuctionID,
		BidID:      bid.ID,
		Bid:        &b,
		OccurredAt: time.Now().UTC(),
	}
}

// Handler reacts to a bid-created event. Handlers own their error handling.
type Handler func(ctx context.Context, evt BidCreated)

// Publisher delivers bid-created events to subscribed handlers
type Publisher interface {
	PublishBidCreated(ctx context.Context, evt BidCreated) error
}

// Bus is an in-process Publisher. Each publish runs every handler in its own
// goroutine, so two events for the same auction may be handled concurrently
// and complete in any order.
type Bus struct {
	mu       sync.RWMutex
	handlers []Handler
	closed   bool
	wg       sync.WaitGroup
}

func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers h for all future events
func (b *Bus) Subscribe(h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = append(b.handlers, h)
}

// PublishBidCreated dispatches evt and returns without waiting for handlers.
// Handlers run detached from ctx cancellation so a finished HTTP request does
// not abort the update.
func (b *Bus) PublishBidCreated(ctx context.Context, evt BidCreated) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return ErrBusClosed
	}

	hctx := context.WithoutCancel(ctx)
	for _, h := range b.handlers {
		b.wg.Add(1)
		go func(h Handler) {
			defer b.wg.Done()
			h(hctx, evt)
		}(h)
	}
	utils.Debug("bid created event dispatched", map[string]any{
		"event_id":   evt.EventID,
		"auction_id": evt.AuctionID,
		"bid_id":     evt.BidID,
		"handlers":   len(b.handlers),
	})
	return nil
}

// Wait blocks until every dispatched handler has returned
func (b *Bus) Wait() {
	b.wg.Wait()
}

// Close rejects new events and waits for in-flight handlers or ctx expiry
func (b *Bus) Close(ctx context.Context) error {
	b.mu.Lock()
	b.closed = true
	b.mu.Unlock()

	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
