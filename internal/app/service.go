package app

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"bridgetutor/internal/domain"
	"bridgetutor/internal/engine"
)

// Service contains the bidding-practice use-cases operating on domain state.
type Service struct {
	rng   *rand.Rand
	coach *engine.Engine
}

// NewService constructs a Service with the provided rng and engine, or
// time-seeded / textbook defaults.
func NewService(rng *rand.Rand, coach *engine.Engine) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if coach == nil {
		coach = engine.New(engine.DefaultTuning)
	}
	return &Service{rng: rng, coach: coach}
}

var (
	ErrNoSession       = errors.New("no deal in progress")
	ErrAuctionComplete = errors.New("auction already complete")
	ErrNotYourTurn     = errors.New("not your turn to call")
	ErrIllegalBid      = errors.New("illegal call")
)

// Session is one deal being bid at the table.
type Session struct {
	Deal    *domain.Deal
	Auction *domain.Auction
	Players [4]string // user IDs in seat order North, East, South, West
}

// StartDeal shuffles and deals a new board. Dealer and vulnerability follow
// the standard rotation for the deal number. Each occupied seat receives a
// private hand event; the deal announcement is broadcast.
func (s *Service) StartDeal(number int, players [4]string) (*Session, []Event, error) {
	deck := domain.NewDeck()
	s.rng.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })

	deal := &domain.Deal{
		Number:        number,
		Dealer:        domain.DealerForDeal(number),
		Vulnerability: domain.VulnerabilityForDeal(number),
	}

	events := make([]Event, 0, SeatsPerTable+1)
	for seat := domain.SeatNorth; seat <= domain.SeatWest; seat++ {
		h := domain.Hand(append([]domain.Card{}, deck[int(seat)*13:int(seat+1)*13]...))
		domain.SortHand(h)
		deal.Hands[seat] = h

		if players[seat] == "" {
			continue
		}
		events = append(events, Event{
			Kind: EventHandDealt,
			Payload: HandDealtPayload{
				Seat:   seat.String(),
				UserID: players[seat],
				Cards:  cardStrings(h),
			},
			Recipients: []string{players[seat]},
		})
	}

	sess := &Session{
		Deal:    deal,
		Auction: domain.NewAuction(deal.Dealer, deal.Vulnerability),
		Players: players,
	}

	events = append(events, Event{
		Kind: EventDealStarted,
		Payload: DealStartedPayload{
			DealNumber:    deal.Number,
			Dealer:        deal.Dealer.String(),
			Vulnerability: deal.Vulnerability.String(),
			TurnSeat:      deal.Dealer.String(),
		},
	})

	return sess, events, nil
}

// PlaceBid records a call for the seat and emits resulting events. The
// auction ends on a passed-out deal or three passes after any call, in
// which case an auction-ended event follows the call event.
func (s *Service) PlaceBid(sess *Session, seat domain.Seat, bid domain.Bid, explanation string) ([]Event, error) {
	if sess == nil || sess.Auction == nil {
		return nil, ErrNoSession
	}
	if sess.Auction.IsComplete() {
		return nil, ErrAuctionComplete
	}
	if due := sess.Auction.CurrentTurn(); due != seat {
		return nil, fmt.Errorf("%w: %v is due, not %v", ErrNotYourTurn, due, seat)
	}
	if !sess.Auction.LegalCall(bid) {
		return nil, fmt.Errorf("%w: %v", ErrIllegalBid, bid)
	}

	sess.Auction.Append(domain.AuctionEntry{Seat: seat, Bid: bid, Explanation: explanation})

	placed := BidPlacedPayload{
		Seat:        seat.String(),
		UserID:      sess.Players[seat],
		Bid:         bid.String(),
		Explanation: explanation,
	}
	if !sess.Auction.IsComplete() {
		placed.NextSeat = sess.Auction.CurrentTurn().String()
	}
	events := []Event{{Kind: EventBidPlaced, Payload: placed}}

	if contract, done := sess.Auction.FinalContract(); done {
		payload := AuctionEndedPayload{PassedOut: contract.PassedOut}
		if !contract.PassedOut {
			payload.Contract = contract.Bid.String()
			payload.Declarer = contract.Declarer.String()
			payload.Doubled = contract.Doubled
			payload.Redoubled = contract.Redoubled
		}
		events = append(events, Event{Kind: EventAuctionEnded, Payload: payload})
	}

	return events, nil
}

// Recommend returns the engine's call for the seat currently due to act.
func (s *Service) Recommend(sess *Session, seat domain.Seat) (engine.FinalCall, error) {
	if sess == nil || sess.Auction == nil {
		return engine.FinalCall{}, ErrNoSession
	}
	if sess.Auction.IsComplete() {
		return engine.FinalCall{}, ErrAuctionComplete
	}
	if due := sess.Auction.CurrentTurn(); due != seat {
		return engine.FinalCall{}, fmt.Errorf("%w: %v is due, not %v", ErrNotYourTurn, due, seat)
	}
	return s.coach.NextBid(sess.Deal.HandFor(seat), sess.Auction, seat)
}

// Grade scores a prospective bid for the seat against the engine's own
// choice without recording it.
func (s *Service) Grade(sess *Session, seat domain.Seat, bid domain.Bid) (engine.DifferentialResult, error) {
	if sess == nil || sess.Auction == nil {
		return engine.DifferentialResult{}, ErrNoSession
	}
	return s.coach.EvaluateBid(sess.Deal.HandFor(seat), sess.Auction, seat, bid)
}

func cardStrings(h domain.Hand) []string {
	out := make([]string, len(h))
	for i, c := range h {
		out[i] = c.String()
	}
	return out
}
