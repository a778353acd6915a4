package listing

import (
	"context"
	"errors"
	"testing"
	"time"

	"marketplace/internal/events"
	"marketplace/internal/marketerrors"
	"marketplace/internal/models"
	"marketplace/internal/repository"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestListingService_PlaceBid(t *testing.T) {
	now := time.Now().UTC()

	tests := []struct {
		name          string
		auctionID     string
		bidderID      string
		amount        float64
		mockSetup     func(repo *repository.MockMarketDB, pub *events.MockPublisher)
		expectError   bool
		expectedError error
	}{
		{
			name:      "valid_bid_is_stored_and_published",
			auctionID: "1",
			bidderID:  "user1",
			amount:    100,
			mockSetup: func(repo *repository.MockMarketDB, pub *events.MockPublisher) {
				repo.EXPECT().CreateBid(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, b models.Bid) (models.Bid, error) { return b, nil })
				pub.EXPECT().PublishBidCreated(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, evt events.BidCreated) error {
						require.Equal(t, "1", evt.AuctionID)
						require.NotNil(t, evt.Bid)
						require.Equal(t, 100.0, evt.Bid.Amount)
						return nil
					})
			},
		},
		{
			name:      "lower_than_current_price_accepted",
			auctionID: "1",
			bidderID:  "user2",
			amount:    1,
			mockSetup: func(repo *repository.MockMarketDB, pub *events.MockPublisher) {
				repo.EXPECT().CreateBid(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, b models.Bid) (models.Bid, error) { return b, nil })
				pub.EXPECT().PublishBidCreated(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name:      "publish_failure_still_returns_bid",
			auctionID: "1",
			bidderID:  "user3",
			amount:    120,
			mockSetup: func(repo *repository.MockMarketDB, pub *events.MockPublisher) {
				repo.EXPECT().CreateBid(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, b models.Bid) (models.Bid, error) { return b, nil })
				pub.EXPECT().PublishBidCreated(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))
			},
		},
		{
			name:          "empty_auctionID",
			auctionID:     "",
			bidderID:      "user1",
			amount:        50,
			mockSetup:     func(*repository.MockMarketDB, *events.MockPublisher) {},
			expectError:   true,
			expectedError: marketerrors.ErrInvalidBid,
		},
		{
			name:          "empty_bidderID",
			auctionID:     "1",
			bidderID:      "",
			amount:        50,
			mockSetup:     func(*repository.MockMarketDB, *events.MockPublisher) {},
			expectError:   true,
			expectedError: marketerrors.ErrInvalidBid,
		},
		{
			name:          "zero_amount",
			auctionID:     "1",
			bidderID:      "user1",
			amount:        0,
			mockSetup:     func(*repository.MockMarketDB, *events.MockPublisher) {},
			expectError:   true,
			expectedError: marketerrors.ErrInvalidBid,
		},
		{
			name:      "unknown_auction_not_published",
			auctionID: "9",
			bidderID:  "user1",
			amount:    50,
			mockSetup: func(repo *repository.MockMarketDB, _ *events.MockPublisher) {
				repo.EXPECT().CreateBid(gomock.Any(), gomock.Any()).Return(models.Bid{}, marketerrors.ErrAuctionNotFound)
			},
			expectError:   true,
			expectedError: marketerrors.ErrAuctionNotFound,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := repository.NewMockMarketDB(ctrl)
			pub := events.NewMockPublisher(ctrl)
			tc.mockSetup(repo, pub)
			service := NewListingService(repo, pub)

			bid, err := service.PlaceBid(context.Background(), tc.auctionID, tc.bidderID, tc.amount)

			if tc.expectError {
				require.Error(t, err)
				if tc.expectedError != nil {
					require.True(t, errors.Is(err, tc.expectedError), "expected error: %v, got: %v", tc.expectedError, err)
				}
				return
			}
			require.NoError(t, err)
			_, parseErr := uuid.Parse(bid.ID)
			require.NoError(t, parseErr, "bid ID should be a valid UUID")
			require.Equal(t, tc.auctionID, bid.AuctionID)
			require.Equal(t, tc.bidderID, bid.BidderID)
			require.Equal(t, tc.amount, bid.Amount)
			require.WithinDuration(t, now, bid.CreatedAt, 2*time.Second)
		})
	}
}

func TestListingService_CreateProduct_NoValidation(t *testing.T) {
	t.Parallel()
	service := NewListingService(repository.NewMemoryRepo(), events.NewBus())

	p, err := service.CreateProduct(context.Background(), models.Product{Price: 12})
	require.NoError(t, err)
	require.Equal(t, "1", p.ID)
	require.Empty(t, p.Name)
}

func TestListingService_CreateAuction_Defaults(t *testing.T) {
	t.Parallel()
	service := NewListingService(repository.NewMemoryRepo(), events.NewBus())

	a, err := service.CreateAuction(context.Background(), models.Auction{ProductName: "Lamp", StartingPrice: 40, CurrentPrice: 999})
	require.NoError(t, err)
	require.Equal(t, "1", a.ID)
	require.Equal(t, 40.0, a.CurrentPrice)
	require.Equal(t, models.AuctionPending, a.Status)
}

func TestListingService_Getters(t *testing.T) {
	t.Parallel()
	repo := repository.NewMemoryRepo()
	require.NoError(t, repository.Seed(context.Background(), repo))
	service := NewListingService(repo, events.NewBus())
	ctx := context.Background()

	products, err := service.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 3)

	_, err = service.GetProduct(ctx, "")
	require.True(t, errors.Is(err, marketerrors.ErrInvalidInput))

	_, err = service.GetProduct(ctx, "99")
	require.True(t, errors.Is(err, marketerrors.ErrProductNotFound))

	a, err := service.GetAuction(ctx, "1")
	require.NoError(t, err)
	require.Equal(t, models.AuctionActive, a.Status)

	_, err = service.ListBids(ctx, "")
	require.True(t, errors.Is(err, marketerrors.ErrInvalidInput))

	bids, err := service.ListBids(ctx, "1")
	require.NoError(t, err)
	require.Empty(t, bids)
}

func TestListingService_RepoErrorsAreWrapped(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := repository.NewMockMarketDB(ctrl)
	boom := errors.New("connection reset")
	repo.EXPECT().ListProducts(gomock.Any()).Return(nil, boom)
	repo.EXPECT().ListAuctions(gomock.Any()).Return(nil, boom)
	repo.EXPECT().CreateProduct(gomock.Any(), gomock.Any()).Return(models.Product{}, boom)

	service := NewListingService(repo, events.NewMockPublisher(ctrl))
	ctx := context.Background()

	_, err := service.ListProducts(ctx)
	require.ErrorIs(t, err, boom)
	_, err = service.ListAuctions(ctx)
	require.ErrorIs(t, err, boom)
	_, err = service.CreateProduct(ctx, models.Product{})
	require.ErrorIs(t, err, boom)
}
