package events

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	model "marketplace/internal/models"

	"github.com/stretchr/testify/require"
)

func TestNewBidCreated(t *testing.T) {
	t.Parallel()
	bid := model.Bid{ID: "b1", AuctionID: "1", BidderID: "u1", Amount: 100, CreatedAt: time.Now().UTC()}

	evt := NewBidCreated(bid)
	require.NotEmpty(t, evt.EventID)
	require.Equal(t, "1", evt.AuctionID)
	require.Equal(t, "b1", evt.BidID)
	require.NotNil(t, evt.Bid)
	require.Equal(t, bid, *evt.Bid)

	// the event holds its own copy
	bid.Amount = 1
	require.Equal(t, 100.0, evt.Bid.Amount)
}

func TestBus_DeliversToAllHandlers(t *testing.T) {
	t.Parallel()
	bus := NewBus()

	var mu sync.Mutex
	var got []string
	for _, name := range []string{"a", "b"} {
		name := name
		bus.Subscribe(func(_ context.Context, evt BidCreated) {
			mu.Lock()
			defer mu.Unlock()
			got = append(got, name+":"+evt.BidID)
		})
	}

	require.NoError(t, bus.PublishBidCreated(context.Background(), BidCreated{BidID: "b1"}))
	bus.Wait()

	require.ElementsMatch(t, []string{"a:b1", "b:b1"}, got)
}

func TestBus_HandlerContextSurvivesCancel(t *testing.T) {
	t.Parallel()
	bus := NewBus()
	release := make(chan struct{})
	var alive atomic.Bool

	bus.Subscribe(func(ctx context.Context, _ BidCreated) {
		<-release
		alive.Store(ctx.Err() == nil)
	})

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, bus.PublishBidCreated(ctx, BidCreated{BidID: "b1"}))
	cancel()
	close(release)
	bus.Wait()

	require.True(t, alive.Load())
}

func TestBus_Close(t *testing.T) {
	t.Parallel()
	bus := NewBus()
	var calls atomic.Int32
	bus.Subscribe(func(context.Context, BidCreated) { calls.Add(1) })

	require.NoError(t, bus.PublishBidCreated(context.Background(), BidCreated{}))
	require.NoError(t, bus.Close(context.Background()))
	require.Equal(t, int32(1), calls.Load())

	err := bus.PublishBidCreated(context.Background(), BidCreated{})
	require.True(t, errors.Is(err, ErrBusClosed))
}

func TestBus_CloseTimesOut(t *testing.T) {
	t.Parallel()
	bus := NewBus()
	release := make(chan struct{})
	bus.Subscribe(func(context.Context, BidCreated) { <-release })
	require.NoError(t, bus.PublishBidCreated(context.Background(), BidCreated{}))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := bus.Close(ctx)
	require.True(t, errors.Is(err, context.DeadlineExceeded))

	close(release)
	bus.Wait()
}
