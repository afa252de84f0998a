package app

import (
	"errors"
	"math/rand"
	"reflect"
	"testing"

	"bridgetutor/internal/domain"
	"bridgetutor/internal/engine"
)

var tablePlayers = [4]string{"u-north", "u-east", "u-south", "u-west"}

func startDeal(t *testing.T, seed int64, number int) (*Service, *Session, []Event) {
	t.Helper()
	svc := NewService(rand.New(rand.NewSource(seed)), nil)
	sess, events, err := svc.StartDeal(number, tablePlayers)
	if err != nil {
		t.Fatalf("StartDeal: %v", err)
	}
	return svc, sess, events
}

func TestStartDeal_DealsTheFullDeck(t *testing.T) {
	_, sess, _ := startDeal(t, 7, 1)

	seen := make(map[domain.Card]bool)
	for seat := domain.SeatNorth; seat <= domain.SeatWest; seat++ {
		h := sess.Deal.HandFor(seat)
		if len(h) != 13 {
			t.Fatalf("seat %v holds %d cards, want 13", seat, len(h))
		}
		for _, c := range h {
			if seen[c] {
				t.Fatalf("card %v dealt twice", c)
			}
			seen[c] = true
		}
	}
	if len(seen) != 52 {
		t.Fatalf("dealt %d distinct cards, want 52", len(seen))
	}
}

func TestStartDeal_DeterministicUnderSeed(t *testing.T) {
	_, first, _ := startDeal(t, 42, 3)
	_, second, _ := startDeal(t, 42, 3)
	if !reflect.DeepEqual(first.Deal, second.Deal) {
		t.Fatalf("same seed produced different deals")
	}
}

func TestStartDeal_RotationAndEvents(t *testing.T) {
	_, sess, events := startDeal(t, 7, 2)

	if sess.Deal.Dealer != domain.SeatEast {
		t.Fatalf("dealer for deal 2 = %v, want East", sess.Deal.Dealer)
	}
	if sess.Deal.Vulnerability != domain.VulnNS {
		t.Fatalf("vulnerability for deal 2 = %v, want NS", sess.Deal.Vulnerability)
	}

	if len(events) != SeatsPerTable+1 {
		t.Fatalf("got %d events, want %d hands plus the announcement", len(events), SeatsPerTable+1)
	}
	for i := 0; i < SeatsPerTable; i++ {
		ev := events[i]
		if ev.Kind != EventHandDealt {
			t.Fatalf("event %d kind = %v, want hand_dealt", i, ev.Kind)
		}
		if len(ev.Recipients) != 1 || ev.Recipients[0] != tablePlayers[i] {
			t.Fatalf("hand event recipients = %v, want only %s", ev.Recipients, tablePlayers[i])
		}
		payload := ev.Payload.(HandDealtPayload)
		if len(payload.Cards) != 13 {
			t.Fatalf("hand payload holds %d cards", len(payload.Cards))
		}
	}

	last := events[len(events)-1]
	if last.Kind != EventDealStarted || len(last.Recipients) != 0 {
		t.Fatalf("final event = %v recipients %v, want a broadcast deal_started", last.Kind, last.Recipients)
	}
	if payload := last.Payload.(DealStartedPayload); payload.TurnSeat != "East" {
		t.Fatalf("turn seat = %s, want East", payload.TurnSeat)
	}
}

func TestStartDeal_EmptySeatGetsNoHandEvent(t *testing.T) {
	svc := NewService(rand.New(rand.NewSource(1)), nil)
	sess, events, err := svc.StartDeal(1, [4]string{"u-north", "", "u-south", ""})
	if err != nil {
		t.Fatalf("StartDeal: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("got %d events, want 2 hands plus the announcement", len(events))
	}
	// All 52 cards are still dealt; the empty seats simply see nothing.
	if got := len(sess.Deal.HandFor(domain.SeatEast)); got != 13 {
		t.Fatalf("unoccupied seat holds %d cards, want 13", got)
	}
}

func TestPlaceBid_TurnAndLegality(t *testing.T) {
	svc, sess, _ := startDeal(t, 7, 1)

	if _, err := svc.PlaceBid(sess, domain.SeatEast, domain.Pass(), ""); !errors.Is(err, ErrNotYourTurn) {
		t.Fatalf("out-of-turn call: err = %v, want ErrNotYourTurn", err)
	}
	if _, err := svc.PlaceBid(sess, domain.SeatNorth, domain.Double(), ""); !errors.Is(err, ErrIllegalBid) {
		t.Fatalf("opening double: err = %v, want ErrIllegalBid", err)
	}

	events, err := svc.PlaceBid(sess, domain.SeatNorth, domain.NewBid(1, domain.StrainSpades), "five spades, opening values")
	if err != nil {
		t.Fatalf("PlaceBid: %v", err)
	}
	if len(events) != 1 || events[0].Kind != EventBidPlaced {
		t.Fatalf("events = %+v, want a single bid_placed", events)
	}
	payload := events[0].Payload.(BidPlacedPayload)
	if payload.Bid != "1S" || payload.NextSeat != "East" {
		t.Fatalf("payload = %+v, want 1S with East to act", payload)
	}
}

func TestPlaceBid_CompletionEndsTheAuction(t *testing.T) {
	svc, sess, _ := startDeal(t, 7, 1)

	calls := []struct {
		seat domain.Seat
		bid  domain.Bid
	}{
		{domain.SeatNorth, domain.NewBid(1, domain.StrainSpades)},
		{domain.SeatEast, domain.Pass()},
		{domain.SeatSouth, domain.Pass()},
	}
	for _, c := range calls {
		if _, err := svc.PlaceBid(sess, c.seat, c.bid, ""); err != nil {
			t.Fatalf("PlaceBid(%v %v): %v", c.seat, c.bid, err)
		}
	}

	events, err := svc.PlaceBid(sess, domain.SeatWest, domain.Pass(), "")
	if err != nil {
		t.Fatalf("final pass: %v", err)
	}
	if len(events) != 2 || events[1].Kind != EventAuctionEnded {
		t.Fatalf("events = %+v, want bid_placed then auction_ended", events)
	}
	ended := events[1].Payload.(AuctionEndedPayload)
	if ended.Contract != "1S" || ended.Declarer != "North" || ended.PassedOut {
		t.Fatalf("ended = %+v, want 1S by North", ended)
	}

	if _, err := svc.PlaceBid(sess, domain.SeatNorth, domain.Pass(), ""); !errors.Is(err, ErrAuctionComplete) {
		t.Fatalf("call after completion: err = %v, want ErrAuctionComplete", err)
	}
}

func TestPlaceBid_PassedOut(t *testing.T) {
	svc, sess, _ := startDeal(t, 7, 1)

	seat := domain.SeatNorth
	var events []Event
	for i := 0; i < 4; i++ {
		var err error
		events, err = svc.PlaceBid(sess, seat, domain.Pass(), "")
		if err != nil {
			t.Fatalf("pass %d: %v", i+1, err)
		}
		seat = seat.Next()
	}
	if len(events) != 2 {
		t.Fatalf("fourth pass emitted %d events, want 2", len(events))
	}
	if ended := events[1].Payload.(AuctionEndedPayload); !ended.PassedOut {
		t.Fatalf("ended = %+v, want passed out", ended)
	}
}

func TestRecommend_MatchesTheEngine(t *testing.T) {
	svc, sess, _ := startDeal(t, 7, 1)

	if _, err := svc.Recommend(sess, domain.SeatEast); !errors.Is(err, ErrNotYourTurn) {
		t.Fatalf("recommend off turn: err = %v, want ErrNotYourTurn", err)
	}

	got, err := svc.Recommend(sess, domain.SeatNorth)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	want, err := engine.New(engine.DefaultTuning).NextBid(sess.Deal.HandFor(domain.SeatNorth), sess.Auction, domain.SeatNorth)
	if err != nil {
		t.Fatalf("NextBid: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Recommend = %+v, engine says %+v", got, want)
	}
}

func TestGrade_OptimalBidScoresTop(t *testing.T) {
	svc, sess, _ := startDeal(t, 7, 1)

	rec, err := svc.Recommend(sess, domain.SeatNorth)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	res, err := svc.Grade(sess, domain.SeatNorth, rec.Bid)
	if err != nil {
		t.Fatalf("Grade: %v", err)
	}
	if res.Rating != engine.RatingOptimal {
		t.Fatalf("rating = %v, want optimal", res.Rating)
	}
}
