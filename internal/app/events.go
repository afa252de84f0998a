package app

import "bridgetutor/internal/engine"

// EventKind identifies emitted domain events for Nakama dispatch.
type EventKind string

const (
	EventPlayerJoined EventKind = "player_joined"
	EventPlayerLeft   EventKind = "player_left"
	EventDealStarted  EventKind = "deal_started"
	EventHandDealt    EventKind = "hand_dealt"
	EventBidPlaced    EventKind = "bid_placed"
	EventBidFeedback  EventKind = "bid_feedback"
	EventAuctionEnded EventKind = "auction_ended"
)

// Event is a domain/app event with optional targeted recipients.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []string // user IDs; empty means broadcast
}

type PlayerJoinedPayload struct {
	UserID string `json:"user_id"`
	Seat   string `json:"seat"`
	Owner  bool   `json:"owner"`
}

type PlayerLeftPayload struct {
	UserID string `json:"user_id"`
	Seat   string `json:"seat"`
}

type DealStartedPayload struct {
	DealNumber    int    `json:"deal_number"`
	Dealer        string `json:"dealer"`
	Vulnerability string `json:"vulnerability"`
	TurnSeat      string `json:"turn_seat"`
}

type HandDealtPayload struct {
	Seat   string   `json:"seat"`
	UserID string   `json:"user_id"`
	Cards  []string `json:"cards"`
}

type BidPlacedPayload struct {
	Seat        string `json:"seat"`
	UserID      string `json:"user_id"`
	Bid         string `json:"bid"`
	Explanation string `json:"explanation,omitempty"`
	NextSeat    string `json:"next_seat,omitempty"`
}

type BidFeedbackPayload struct {
	Seat   string                    `json:"seat"`
	Result engine.DifferentialResult `json:"result"`
}

type AuctionEndedPayload struct {
	Contract  string `json:"contract,omitempty"`
	Declarer  string `json:"declarer,omitempty"`
	Doubled   bool   `json:"doubled,omitempty"`
	Redoubled bool   `json:"redoubled,omitempty"`
	PassedOut bool   `json:"passed_out,omitempty"`
}
