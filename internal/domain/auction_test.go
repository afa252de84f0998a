package domain

import "testing"

func mustBid(tb testing.TB, s string) Bid {
	tb.Helper()
	b, err := ParseBid(s)
	if err != nil {
		tb.Fatalf("ParseBid(%q): %v", s, err)
	}
	return b
}

func play(tb testing.TB, dealer Seat, calls ...string) *Auction {
	tb.Helper()
	a := NewAuction(dealer, VulnNone)
	seat := dealer
	for _, c := range calls {
		a.Append(AuctionEntry{Seat: seat, Bid: mustBid(tb, c)})
		seat = seat.Next()
	}
	return a
}

func TestLegalCall(t *testing.T) {
	cases := []struct {
		name    string
		auction *Auction
		call    string
		want    bool
	}{
		{"any contract opens", play(t, SeatNorth), "1C", true},
		{"double with no contract", play(t, SeatNorth), "X", false},
		{"pass always", play(t, SeatNorth, "1S"), "Pass", true},
		{"insufficient bid", play(t, SeatNorth, "1S"), "1H", false},
		{"sufficient bid", play(t, SeatNorth, "1S"), "2H", true},
		{"same bid is insufficient", play(t, SeatNorth, "1S"), "1S", false},
		{"double of their contract", play(t, SeatNorth, "1S"), "X", true},
		{"double of partner's contract", play(t, SeatNorth, "1S", "Pass"), "X", false},
		{"double of a doubled contract", play(t, SeatNorth, "1S", "X", "Pass"), "X", false},
		{"redouble without a double", play(t, SeatNorth, "1S", "Pass"), "XX", false},
		{"redouble after their double", play(t, SeatNorth, "1S", "X"), "XX", true},
		{"redouble of a redouble", play(t, SeatNorth, "1S", "X", "XX", "Pass"), "XX", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.auction.LegalCall(mustBid(t, tc.call)); got != tc.want {
				t.Fatalf("LegalCall(%s) = %v, want %v", tc.call, got, tc.want)
			}
		})
	}
}

func TestFinalContract(t *testing.T) {
	t.Run("open auction has no contract", func(t *testing.T) {
		a := play(t, SeatNorth, "1S", "Pass")
		if _, ok := a.FinalContract(); ok {
			t.Fatalf("FinalContract reported a result for an open auction")
		}
	})

	t.Run("declarer is the first to name the strain", func(t *testing.T) {
		a := play(t, SeatNorth, "1S", "Pass", "2S", "Pass", "4S", "Pass", "Pass", "Pass")
		c, ok := a.FinalContract()
		if !ok {
			t.Fatalf("auction not recognised as complete")
		}
		if c.Bid != NewBid(4, StrainSpades) || c.Declarer != SeatNorth {
			t.Fatalf("contract = %v by %v, want 4S by North", c.Bid, c.Declarer)
		}
	})

	t.Run("declarer comes from the winning side only", func(t *testing.T) {
		a := play(t, SeatNorth, "1C", "1S", "Pass", "2S", "Pass", "Pass", "Pass")
		c, ok := a.FinalContract()
		if !ok {
			t.Fatalf("auction not recognised as complete")
		}
		if c.Bid != NewBid(2, StrainSpades) || c.Declarer != SeatEast {
			t.Fatalf("contract = %v by %v, want 2S by East", c.Bid, c.Declarer)
		}
	})

	t.Run("doubled contract", func(t *testing.T) {
		a := play(t, SeatNorth, "1S", "X", "Pass", "Pass", "Pass")
		c, _ := a.FinalContract()
		if !c.Doubled || c.Redoubled {
			t.Fatalf("got doubled=%v redoubled=%v, want a plain double", c.Doubled, c.Redoubled)
		}
	})

	t.Run("redouble supersedes the double", func(t *testing.T) {
		a := play(t, SeatNorth, "1S", "X", "XX", "Pass", "Pass", "Pass")
		c, _ := a.FinalContract()
		if c.Doubled || !c.Redoubled {
			t.Fatalf("got doubled=%v redoubled=%v, want redoubled only", c.Doubled, c.Redoubled)
		}
	})

	t.Run("passed out", func(t *testing.T) {
		a := play(t, SeatNorth, "Pass", "Pass", "Pass", "Pass")
		c, ok := a.FinalContract()
		if !ok || !c.PassedOut {
			t.Fatalf("got %+v ok=%v, want a passed-out result", c, ok)
		}
	})
}
