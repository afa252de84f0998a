package engine

import (
	"fmt"

	"bridgetutor/internal/domain"
)

// RangeChange is one reasoning-trail entry: which range a call narrowed,
// from what to what, and why.
type RangeChange struct {
	Bid       string `json:"bid"`
	Field     string `json:"field"`
	BeforeMin int    `json:"before_min"`
	BeforeMax int    `json:"before_max"`
	AfterMin  int    `json:"after_min"`
	AfterMax  int    `json:"after_max"`
	Reason    string `json:"reason"`
}

// SeatBelief tracks what the auction has revealed about one seat's hand.
type SeatBelief struct {
	Seat    domain.Seat     `json:"seat"`
	HCPMin  int             `json:"hcp_min"`
	HCPMax  int             `json:"hcp_max"`
	SuitMin [4]int          `json:"suit_min"`
	SuitMax [4]int          `json:"suit_max"`
	Tags    map[string]bool `json:"tags"`
	Trail   []RangeChange   `json:"trail"`
}

// NewSeatBelief returns the fully open belief for a seat.
func NewSeatBelief(seat domain.Seat) *SeatBelief {
	b := &SeatBelief{
		Seat:   seat,
		HCPMin: 0,
		HCPMax: 37, // one hand can hold at most 37 of the deck's 40 HCP
		Tags:   map[string]bool{},
	}
	for s := range b.SuitMax {
		b.SuitMax[s] = 13
	}
	return b
}

// narrowHCP intersects the HCP range with [min,max]. Narrowing never
// widens: an intersection that would widen a bound is ignored.
func (b *SeatBelief) narrowHCP(min, max int, bid, reason string) {
	newMin, newMax := b.HCPMin, b.HCPMax
	if min > newMin {
		newMin = min
	}
	if max < newMax {
		newMax = max
	}
	if newMin == b.HCPMin && newMax == b.HCPMax {
		return
	}
	b.Trail = append(b.Trail, RangeChange{
		Bid: bid, Field: "hcp",
		BeforeMin: b.HCPMin, BeforeMax: b.HCPMax,
		AfterMin: newMin, AfterMax: newMax,
		Reason: reason,
	})
	b.HCPMin, b.HCPMax = newMin, newMax
}

func (b *SeatBelief) narrowSuit(s domain.Suit, min, max int, bid, reason string) {
	newMin, newMax := b.SuitMin[s], b.SuitMax[s]
	if min > newMin {
		newMin = min
	}
	if max < newMax {
		newMax = max
	}
	if newMin == b.SuitMin[s] && newMax == b.SuitMax[s] {
		return
	}
	b.Trail = append(b.Trail, RangeChange{
		Bid: bid, Field: "suit_" + s.String(),
		BeforeMin: b.SuitMin[s], BeforeMax: b.SuitMax[s],
		AfterMin: newMin, AfterMax: newMax,
		Reason: reason,
	})
	b.SuitMin[s], b.SuitMax[s] = newMin, newMax
}

// UpdateBeliefs replays the auction from scratch and returns the belief
// state for all four seats. Beliefs are derived data: nothing is cached
// between calls, so two calls with the same auction always agree.
//
// Unmodeled calls leave beliefs unchanged; this function never fails.
func UpdateBeliefs(auction *domain.Auction) map[domain.Seat]*SeatBelief {
	beliefs := make(map[domain.Seat]*SeatBelief, 4)
	for s := domain.SeatNorth; s <= domain.SeatWest; s++ {
		beliefs[s] = NewSeatBelief(s)
	}

	prefix := domain.NewAuction(auction.Dealer, auction.Vulnerability)
	for _, e := range auction.Entries {
		ctx, err := ParseContext(prefix, e.Seat)
		prefix.Append(e)
		if err != nil {
			continue
		}
		meaning, ok := InterpretBid(e.Bid, ctx)
		if !ok {
			continue
		}

		b := beliefs[e.Seat]
		if meaning.HasHCP {
			b.narrowHCP(meaning.HCPMin, meaning.HCPMax, e.Bid.String(), meaning.Desc)
		}
		for _, sr := range meaning.Suits {
			b.narrowSuit(sr.Suit, sr.Min, sr.Max, e.Bid.String(), meaning.Desc)
		}
		for _, tag := range meaning.Tags {
			b.Tags[tag] = true
		}

		enforceDeckClosure(beliefs, e.Bid.String())
	}
	return beliefs
}

// enforceDeckClosure caps every seat's maximum HCP at 40 minus the sum of
// the other three seats' minimums. The deck holds exactly 40 HCP, so a
// higher maximum would be claiming points that are known to sit elsewhere.
func enforceDeckClosure(beliefs map[domain.Seat]*SeatBelief, bid string) {
	total := 0
	for _, b := range beliefs {
		total += b.HCPMin
	}
	for _, b := range beliefs {
		limit := 40 - (total - b.HCPMin)
		if limit < b.HCPMin {
			limit = b.HCPMin
		}
		if b.HCPMax > limit {
			b.narrowHCP(b.HCPMin, limit, bid, fmt.Sprintf("deck closure: other seats hold at least %d HCP", total-b.HCPMin))
		}
	}
}
