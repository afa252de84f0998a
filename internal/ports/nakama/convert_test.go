package nakama

import (
	"testing"

	"bridgetutor/internal/domain"
)

func TestParseCard(t *testing.T) {
	cases := []struct {
		in   string
		want domain.Card
	}{
		{"AS", domain.Card{Suit: domain.SuitSpades, Rank: domain.RankAce}},
		{"TD", domain.Card{Suit: domain.SuitDiamonds, Rank: domain.RankTen}},
		{"9c", domain.Card{Suit: domain.SuitClubs, Rank: 9}},
		{"qh", domain.Card{Suit: domain.SuitHearts, Rank: domain.RankQueen}},
	}
	for _, tc := range cases {
		got, err := parseCard(tc.in)
		if err != nil {
			t.Fatalf("parseCard(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("parseCard(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}

	for _, bad := range []string{"", "A", "1S", "AX", "10D"} {
		if _, err := parseCard(bad); err == nil {
			t.Fatalf("parseCard(%q) accepted", bad)
		}
	}
}

func TestParseSeatAndVulnerability(t *testing.T) {
	if got, err := parseSeat("south"); err != nil || got != domain.SeatSouth {
		t.Fatalf("parseSeat(south) = %v, %v", got, err)
	}
	if got, err := parseSeat("W"); err != nil || got != domain.SeatWest {
		t.Fatalf("parseSeat(W) = %v, %v", got, err)
	}
	if _, err := parseSeat("middle"); err == nil {
		t.Fatalf("parseSeat(middle) accepted")
	}

	if got, err := parseVulnerability(""); err != nil || got != domain.VulnNone {
		t.Fatalf("parseVulnerability(\"\") = %v, %v", got, err)
	}
	if got, err := parseVulnerability("Both"); err != nil || got != domain.VulnBoth {
		t.Fatalf("parseVulnerability(Both) = %v, %v", got, err)
	}
	if _, err := parseVulnerability("half"); err == nil {
		t.Fatalf("parseVulnerability(half) accepted")
	}
}

func TestParseBidRequest(t *testing.T) {
	req := BidRequest{
		Hand: []string{
			"AS", "KS", "QS", "JS", "2S",
			"AH", "KH", "3H",
			"4D", "5D", "6D",
			"7C", "8C",
		},
		Dealer:        "N",
		Vulnerability: "NS",
		Auction:       []string{"1S", "Pass", "2S", "Pass"},
		Seat:          "North",
	}

	hand, auction, seat, err := parseBidRequest(req)
	if err != nil {
		t.Fatalf("parseBidRequest: %v", err)
	}
	if len(hand) != 13 {
		t.Fatalf("hand length = %d, want 13", len(hand))
	}
	if seat != domain.SeatNorth {
		t.Fatalf("seat = %v, want North", seat)
	}
	if len(auction.Entries) != 4 || auction.CurrentTurn() != domain.SeatNorth {
		t.Fatalf("auction has %d entries with %v to act", len(auction.Entries), auction.CurrentTurn())
	}
	if auction.Vulnerability != domain.VulnNS {
		t.Fatalf("vulnerability = %v, want NS", auction.Vulnerability)
	}

	req.Hand[0] = "ZZ"
	if _, _, _, err := parseBidRequest(req); err == nil {
		t.Fatalf("bad card accepted")
	}
}

func TestParseUserBid(t *testing.T) {
	if _, err := parseUserBid(""); err == nil {
		t.Fatalf("empty bid accepted")
	}
	got, err := parseUserBid("3NT")
	if err != nil || got != domain.NewBid(3, domain.StrainNoTrump) {
		t.Fatalf("parseUserBid(3NT) = %v, %v", got, err)
	}
}
