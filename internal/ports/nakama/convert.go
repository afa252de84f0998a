package nakama

import (
	"fmt"
	"strings"

	"bridgetutor/internal/domain"
)

// BidRequest is the JSON payload shared by the stateless engine RPCs. Cards
// use rank-then-suit codes ("AS", "TD", "9C"); the auction lists calls in
// order starting from the dealer.
type BidRequest struct {
	Hand          []string `json:"hand"`
	Dealer        string   `json:"dealer"`
	Vulnerability string   `json:"vulnerability"`
	Auction       []string `json:"auction"`
	Seat          string   `json:"seat"`
	Bid           string   `json:"bid,omitempty"`
	Profile       string   `json:"profile,omitempty"`
}

func parseSeat(s string) (domain.Seat, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "N", "NORTH":
		return domain.SeatNorth, nil
	case "E", "EAST":
		return domain.SeatEast, nil
	case "S", "SOUTH":
		return domain.SeatSouth, nil
	case "W", "WEST":
		return domain.SeatWest, nil
	}
	return 0, fmt.Errorf("unknown seat %q", s)
}

func parseVulnerability(s string) (domain.Vulnerability, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "NONE":
		return domain.VulnNone, nil
	case "NS":
		return domain.VulnNS, nil
	case "EW":
		return domain.VulnEW, nil
	case "BOTH", "ALL":
		return domain.VulnBoth, nil
	}
	return 0, fmt.Errorf("unknown vulnerability %q", s)
}

var cardRanks = map[byte]int{
	'2': 2, '3': 3, '4': 4, '5': 5, '6': 6, '7': 7, '8': 8, '9': 9,
	'T': 10, 'J': domain.RankJack, 'Q': domain.RankQueen, 'K': domain.RankKing, 'A': domain.RankAce,
}

var cardSuits = map[byte]domain.Suit{
	'C': domain.SuitClubs, 'D': domain.SuitDiamonds, 'H': domain.SuitHearts, 'S': domain.SuitSpades,
}

func parseCard(s string) (domain.Card, error) {
	t := strings.ToUpper(strings.TrimSpace(s))
	if len(t) != 2 {
		return domain.Card{}, fmt.Errorf("unparseable card %q", s)
	}
	rank, ok := cardRanks[t[0]]
	if !ok {
		return domain.Card{}, fmt.Errorf("unknown rank in card %q", s)
	}
	suit, ok := cardSuits[t[1]]
	if !ok {
		return domain.Card{}, fmt.Errorf("unknown suit in card %q", s)
	}
	return domain.Card{Suit: suit, Rank: rank}, nil
}

func parseHand(cards []string) (domain.Hand, error) {
	h := make(domain.Hand, 0, len(cards))
	for _, s := range cards {
		c, err := parseCard(s)
		if err != nil {
			return nil, err
		}
		h = append(h, c)
	}
	return h, nil
}

// buildAuction replays the textual call list from the dealer. Seat rotation
// is implied by position; malformed sequences surface later from the
// context parser.
func buildAuction(dealer domain.Seat, vuln domain.Vulnerability, calls []string) (*domain.Auction, error) {
	a := domain.NewAuction(dealer, vuln)
	seat := dealer
	for _, s := range calls {
		b, err := domain.ParseBid(s)
		if err != nil {
			return nil, err
		}
		a.Append(domain.AuctionEntry{Seat: seat, Bid: b})
		seat = seat.Next()
	}
	return a, nil
}

func parseUserBid(s string) (domain.Bid, error) {
	if strings.TrimSpace(s) == "" {
		return domain.Bid{}, fmt.Errorf("bid is required")
	}
	return domain.ParseBid(s)
}

func parseBidRequest(req BidRequest) (domain.Hand, *domain.Auction, domain.Seat, error) {
	hand, err := parseHand(req.Hand)
	if err != nil {
		return nil, nil, 0, err
	}
	dealer, err := parseSeat(req.Dealer)
	if err != nil {
		return nil, nil, 0, err
	}
	vuln, err := parseVulnerability(req.Vulnerability)
	if err != nil {
		return nil, nil, 0, err
	}
	seat, err := parseSeat(req.Seat)
	if err != nil {
		return nil, nil, 0, err
	}
	auction, err := buildAuction(dealer, vuln, req.Auction)
	if err != nil {
		return nil, nil, 0, err
	}
	return hand, auction, seat, nil
}
