package engine

import (
	"reflect"
	"testing"

	"bridgetutor/internal/domain"
)

var rankOf = map[byte]int{
	'2': 2, '3': 3, '4': 4, '5': 5, '6': 6, '7': 7, '8': 8, '9': 9,
	'T': 10, 'J': 11, 'Q': 12, 'K': 13, 'A': 14,
}

// hand builds a 13-card hand from per-suit rank strings, spades first.
func hand(tb testing.TB, spades, hearts, diamonds, clubs string) domain.Hand {
	tb.Helper()
	var h domain.Hand
	add := func(s domain.Suit, ranks string) {
		for i := 0; i < len(ranks); i++ {
			r, ok := rankOf[ranks[i]]
			if !ok {
				tb.Fatalf("bad rank char %q", ranks[i])
			}
			h = append(h, domain.Card{Suit: s, Rank: r})
		}
	}
	add(domain.SuitSpades, spades)
	add(domain.SuitHearts, hearts)
	add(domain.SuitDiamonds, diamonds)
	add(domain.SuitClubs, clubs)
	if len(h) != 13 {
		tb.Fatalf("test hand has %d cards, want 13", len(h))
	}
	return h
}

// auctionOf builds an auction from call strings rotating from the dealer.
func auctionOf(tb testing.TB, dealer domain.Seat, calls ...string) *domain.Auction {
	tb.Helper()
	a := domain.NewAuction(dealer, domain.VulnNone)
	seat := dealer
	for _, c := range calls {
		b, err := domain.ParseBid(c)
		if err != nil {
			tb.Fatalf("ParseBid(%q): %v", c, err)
		}
		a.Append(domain.AuctionEntry{Seat: seat, Bid: b})
		seat = seat.Next()
	}
	return a
}

func TestNextBid_Deterministic(t *testing.T) {
	e := New(DefaultTuning)
	h := hand(t, "432", "KQ32", "Q32", "J32")
	a := auctionOf(t, domain.SeatNorth, "1NT", "Pass", "2C", "Pass", "2D", "Pass")

	first, err := e.NextBid(h, a, domain.SeatSouth)
	if err != nil {
		t.Fatalf("NextBid: %v", err)
	}
	second, err := e.NextBid(h, a, domain.SeatSouth)
	if err != nil {
		t.Fatalf("NextBid (second call): %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("NextBid not deterministic: %+v vs %+v", first, second)
	}
}

// Every bid the engine returns must be Pass or strictly above the
// standing contract.
func TestNextBid_LegalityInvariant(t *testing.T) {
	e := New(DefaultTuning)
	cases := []struct {
		name    string
		hand    domain.Hand
		auction *domain.Auction
		seat    domain.Seat
	}{
		{
			name:    "crowded auction, strong hand",
			hand:    hand(t, "AQ32", "KJ4", "Q4", "AJ32"),
			auction: auctionOf(t, domain.SeatNorth, "1C", "3H", "Pass", "Pass"),
			seat:    domain.SeatNorth,
		},
		{
			name:    "weak hand facing a preempt",
			hand:    hand(t, "432", "432", "5432", "432"),
			auction: auctionOf(t, domain.SeatNorth, "3S", "Pass"),
			seat:    domain.SeatSouth,
		},
		{
			name:    "defender over a game bid",
			hand:    hand(t, "AKQJ2", "432", "432", "32"),
			auction: auctionOf(t, domain.SeatNorth, "4H"),
			seat:    domain.SeatEast,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := e.NextBid(tc.hand, tc.auction, tc.seat)
			if err != nil {
				t.Fatalf("NextBid: %v", err)
			}
			if got.Bid.IsContract() {
				last, _, ok := tc.auction.LastContract()
				if ok && !got.Bid.Beats(last) {
					t.Fatalf("returned %v, which does not beat the standing %v", got.Bid, last)
				}
			}
		})
	}
}

// Historical escalation defect: a 17-count balanced rebid after
// interference must land on a legal three-level call, never chain upward.
func TestNextBid_RebidOverInterference(t *testing.T) {
	e := New(DefaultTuning)
	h := hand(t, "AQ32", "KJ4", "Q4", "AJ32") // 17 balanced, hearts stopped
	a := auctionOf(t, domain.SeatNorth, "1C", "3H", "Pass", "Pass")

	got, err := e.NextBid(h, a, domain.SeatNorth)
	if err != nil {
		t.Fatalf("NextBid: %v", err)
	}
	want := domain.NewBid(3, domain.StrainNoTrump)
	if got.Bid != want {
		t.Fatalf("bid = %v, want %v", got.Bid, want)
	}
	if !got.Adjusted {
		t.Fatalf("expected the notrump rebid to be marked as adjusted")
	}
}

func TestNextBid_CompleteAuctionRejected(t *testing.T) {
	e := New(DefaultTuning)
	h := hand(t, "AQ32", "KJ4", "Q4", "AJ32")
	a := auctionOf(t, domain.SeatNorth, "Pass", "Pass", "Pass", "Pass")

	if _, err := e.NextBid(h, a, domain.SeatNorth); err == nil {
		t.Fatalf("expected an error for a completed auction")
	}
}
