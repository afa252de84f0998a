package domain

import "errors"

var (
	// ErrInvalidHand indicates a hand without exactly 13 unique cards.
	ErrInvalidHand = errors.New("invalid hand")
	// ErrMalformedAuction indicates a call sequence that violates turn order.
	ErrMalformedAuction = errors.New("malformed auction")
	// ErrRouting indicates no bidding module matched the auction context.
	// This is an internal defect, never expected for a well-formed auction.
	ErrRouting = errors.New("no bidding module matched")
	// ErrIllegalCall indicates a Double or Redouble produced out of context.
	// This is an internal defect in the producing module.
	ErrIllegalCall = errors.New("illegal call for auction state")
)
