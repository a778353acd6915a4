package marketerrors

import "errors"

// Repository-level errors
var (
	ErrProductNotFound = errors.New("product not found")
	ErrAuctionNotFound = errors.New("auction not found")
	ErrBidNotFound     = errors.New("bid not found")
)

// business logic errors
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrInvalidBid   = errors.New("invalid bid")
)

// payment errors
var (
	ErrPaymentFailed = errors.New("payment provider request failed")
)
