package engine

import (
	"fmt"

	"bridgetutor/internal/domain"
)

// SuitRange bounds the length of one suit.
type SuitRange struct {
	Suit domain.Suit
	Min  int
	Max  int
}

// BidMeaning is the textbook interpretation of a call in context: the
// strength and shape it promises. The belief tracker applies meanings as
// narrowing operations; the differential analyzer uses them to explain
// what a learner's bid said about their hand.
type BidMeaning struct {
	HasHCP bool
	HCPMin int
	HCPMax int
	Suits  []SuitRange
	Tags   []string
	Desc   string
}

func hcpMeaning(min, max int, desc string, tags ...string) BidMeaning {
	return BidMeaning{HasHCP: true, HCPMin: min, HCPMax: max, Desc: desc, Tags: tags}
}

func (m BidMeaning) withSuit(s domain.Suit, min, max int) BidMeaning {
	m.Suits = append(m.Suits, SuitRange{Suit: s, Min: min, Max: max})
	return m
}

// InterpretBid returns the textbook meaning of a call made from the given
// context (the context is computed for the bidding seat before the call).
// Unmodeled calls return ok=false and are not an error.
func InterpretBid(b domain.Bid, ctx AuctionContext) (BidMeaning, bool) {
	switch b.Call {
	case domain.CallPass:
		return interpretPass(ctx)
	case domain.CallDouble:
		return interpretDouble(ctx)
	case domain.CallRedouble:
		return BidMeaning{}, false
	}

	if !ctx.Opened {
		return interpretOpening(b)
	}

	// Notrump-convention relays and replies for the bidding side.
	if m, ok := interpretConvention(b, ctx); ok {
		return m, true
	}

	switch ctx.Role {
	case RoleResponder:
		return interpretResponse(b, ctx)
	case RoleOvercaller:
		if ctx.MyRealBids == 0 {
			return interpretOvercall(b, ctx)
		}
	case RoleAdvancer:
		return interpretAdvance(b, ctx)
	}
	return BidMeaning{}, false
}

func interpretPass(ctx AuctionContext) (BidMeaning, bool) {
	if !ctx.Opened && ctx.MyActions == 0 {
		return hcpMeaning(0, 11, "pass in opening seat: fewer than 12 points"), true
	}
	if ctx.PartnerOpened && ctx.MyActions == 0 {
		return hcpMeaning(0, 5, "pass of partner's opening: fewer than 6 points"), true
	}
	return BidMeaning{}, false
}

func interpretDouble(ctx AuctionContext) (BidMeaning, bool) {
	if ctx.OppOpened && ctx.Role == RoleOvercaller && ctx.MyRealBids == 0 &&
		ctx.OpeningBid.IsContract() {
		if suit, ok := ctx.OpeningBid.Strain.Suit(); ok {
			m := hcpMeaning(12, 37, "takeout double: opening strength, short in their suit", "takeout_double")
			return m.withSuit(suit, 0, 2), true
		}
	}
	return BidMeaning{}, false
}

func interpretOpening(b domain.Bid) (BidMeaning, bool) {
	if b.Strain == domain.StrainNoTrump {
		switch b.Level {
		case 1:
			m := hcpMeaning(15, 17, "1NT opening: 15-17 balanced")
			for s := domain.SuitClubs; s <= domain.SuitSpades; s++ {
				m = m.withSuit(s, 2, 5)
			}
			return m, true
		case 2:
			m := hcpMeaning(20, 21, "2NT opening: 20-21 balanced")
			for s := domain.SuitClubs; s <= domain.SuitSpades; s++ {
				m = m.withSuit(s, 2, 5)
			}
			return m, true
		}
		return BidMeaning{}, false
	}

	suit, _ := b.Strain.Suit()
	switch {
	case b.Level == 1 && b.Strain.IsMajor():
		return hcpMeaning(12, 21, fmt.Sprintf("1%s opening: 12+ points, 5+ %s", b.Strain, suitName(suit))).
			withSuit(suit, 5, 13), true
	case b.Level == 1:
		return hcpMeaning(12, 21, fmt.Sprintf("1%s opening: 12+ points, 3+ %s", b.Strain, suitName(suit))).
			withSuit(suit, 3, 13), true
	case b.Level == 2 && b.Strain == domain.StrainClubs:
		return hcpMeaning(22, 37, "2C opening: 22+ points, artificial and forcing", "strong_two"), true
	case b.Level == 2:
		return hcpMeaning(5, 10, fmt.Sprintf("weak two: 5-10 points, 6-card %s", suitName(suit)), "weak_two").
			withSuit(suit, 6, 7), true
	case b.Level == 3:
		return hcpMeaning(5, 9, fmt.Sprintf("preempt: weak hand, 7-card %s", suitName(suit)), "preempt").
			withSuit(suit, 7, 13), true
	case b.Level == 4 && b.Strain.IsMajor():
		return hcpMeaning(5, 10, fmt.Sprintf("preempt: weak hand, 8-card %s", suitName(suit)), "preempt").
			withSuit(suit, 8, 13), true
	}
	return BidMeaning{}, false
}

func interpretConvention(b domain.Bid, ctx AuctionContext) (BidMeaning, bool) {
	if ctx.HasNotrumpOpening && ctx.Seat == ctx.NotrumpOpenerSeat.Partner() &&
		!ctx.StaymanAsked && !ctx.TransferInProgress && !ctx.TransferCompleted {
		relay := ctx.NotrumpOpening.Level + 1
		switch {
		case b.Level == relay && b.Strain == domain.StrainClubs:
			return hcpMeaning(8, 37, "Stayman: asks for a 4-card major, invitational values", "stayman_asked"), true
		case b.Level == relay && b.Strain == domain.StrainDiamonds:
			m := BidMeaning{Desc: "Jacoby transfer: 5+ hearts, any strength", Tags: []string{"transfer"}}
			return m.withSuit(domain.SuitHearts, 5, 13), true
		case b.Level == relay && b.Strain == domain.StrainHearts:
			m := BidMeaning{Desc: "Jacoby transfer: 5+ spades, any strength", Tags: []string{"transfer"}}
			return m.withSuit(domain.SuitSpades, 5, 13), true
		}
	}

	if ctx.StaymanAnswerDue && b.Level == ctx.NotrumpOpening.Level+1 {
		switch b.Strain {
		case domain.StrainDiamonds:
			m := BidMeaning{Desc: "Stayman reply: no 4-card major", Tags: []string{"stayman_denied"}}
			return m.withSuit(domain.SuitHearts, 2, 3).withSuit(domain.SuitSpades, 2, 3), true
		case domain.StrainHearts:
			m := BidMeaning{Desc: "Stayman reply: 4 hearts"}
			return m.withSuit(domain.SuitHearts, 4, 5), true
		case domain.StrainSpades:
			m := BidMeaning{Desc: "Stayman reply: 4 spades, not 4 hearts"}
			return m.withSuit(domain.SuitSpades, 4, 5).withSuit(domain.SuitHearts, 2, 3), true
		}
	}

	if ctx.BlackwoodAnswerDue && b.Level == 5 && b.Strain != domain.StrainNoTrump {
		aces := map[domain.Strain]string{
			domain.StrainClubs:    "0 or 4 aces",
			domain.StrainDiamonds: "1 ace",
			domain.StrainHearts:   "2 aces",
			domain.StrainSpades:   "3 aces",
		}
		return BidMeaning{Desc: "Blackwood reply: " + aces[b.Strain], Tags: []string{"blackwood_reply"}}, true
	}

	if ctx.HasAgreedSuit && b.Level == 4 && b.Strain == domain.StrainNoTrump {
		return BidMeaning{Desc: "Blackwood: asks for aces", Tags: []string{"blackwood_asked"}}, true
	}

	return BidMeaning{}, false
}

func interpretResponse(b domain.Bid, ctx AuctionContext) (BidMeaning, bool) {
	if ctx.MyRealBids != 0 || !ctx.OpeningBid.IsContract() {
		return BidMeaning{}, false
	}
	opening := ctx.OpeningBid

	// Raise of partner's suit.
	if b.Strain == opening.Strain && b.Strain != domain.StrainNoTrump {
		suit, _ := b.Strain.Suit()
		support := 3
		if !b.Strain.IsMajor() {
			support = 4
		}
		switch b.Level - opening.Level {
		case 1:
			return hcpMeaning(6, 9, fmt.Sprintf("single raise: 6-9 points, %d+ %s", support, suitName(suit))).
				withSuit(suit, support, 13), true
		case 2:
			return hcpMeaning(10, 12, fmt.Sprintf("limit raise: 10-12 points, %d+ %s", support+1, suitName(suit))).
				withSuit(suit, support+1, 13), true
		}
		return BidMeaning{}, false
	}

	if b.Strain == domain.StrainNoTrump && b.Level == 1 {
		return hcpMeaning(6, 9, "1NT response: 6-9 points, no fit, no biddable suit at the one level"), true
	}

	if suit, ok := b.Strain.Suit(); ok {
		if b.Level == 1 {
			return hcpMeaning(6, 37, fmt.Sprintf("new suit at the one level: 6+ points, 4+ %s", suitName(suit))).
				withSuit(suit, 4, 13), true
		}
		if b.Level == 2 && b.Index() < domain.NewBid(2, opening.Strain).Index() {
			return hcpMeaning(10, 37, fmt.Sprintf("two-over-one: 10+ points, 4+ %s", suitName(suit))).
				withSuit(suit, 4, 13), true
		}
	}
	return BidMeaning{}, false
}

func interpretOvercall(b domain.Bid, ctx AuctionContext) (BidMeaning, bool) {
	if ctx.PartnerMichaelsMeaning(b) {
		// Cue-bid of the opened suit: Michaels, both majors (or the
		// unbid major plus an unspecified minor over a major opening).
		m := hcpMeaning(8, 37, "Michaels cue-bid: 5-5 in the majors (or the other major and a minor)", "michaels")
		if opened, ok := ctx.OpeningBid.Strain.Suit(); ok && opened.IsMajor() {
			other := domain.SuitSpades
			if opened == domain.SuitSpades {
				other = domain.SuitHearts
			}
			return m.withSuit(other, 5, 13), true
		}
		return m.withSuit(domain.SuitHearts, 5, 13).withSuit(domain.SuitSpades, 5, 13), true
	}

	if b.Strain == domain.StrainNoTrump && b.Level == 1 {
		return hcpMeaning(15, 18, "1NT overcall: 15-18 balanced with their suit stopped"), true
	}

	if suit, ok := b.Strain.Suit(); ok {
		switch b.Level {
		case 1:
			return hcpMeaning(8, 16, fmt.Sprintf("one-level overcall: 8-16 points, 5+ %s", suitName(suit))).
				withSuit(suit, 5, 13), true
		case 2:
			return hcpMeaning(10, 17, fmt.Sprintf("two-level overcall: 10-16 points, 5+ %s", suitName(suit))).
				withSuit(suit, 5, 13), true
		}
	}
	return BidMeaning{}, false
}

func interpretAdvance(b domain.Bid, ctx AuctionContext) (BidMeaning, bool) {
	if ctx.MyRealBids != 0 || !ctx.PartnerHasReal {
		return BidMeaning{}, false
	}
	// Raise of partner's overcall.
	if b.Strain == ctx.PartnerLastReal.Strain && b.Strain != domain.StrainNoTrump {
		suit, _ := b.Strain.Suit()
		return hcpMeaning(6, 37, fmt.Sprintf("advance raise: 6+ points, 3+ %s", suitName(suit))).
			withSuit(suit, 3, 13), true
	}
	return BidMeaning{}, false
}

// PartnerMichaelsMeaning reports whether bidding b here would be a
// Michaels cue-bid: a direct overcall in the opened suit.
func (ctx AuctionContext) PartnerMichaelsMeaning(b domain.Bid) bool {
	return ctx.OppOpened && ctx.MyRealBids == 0 && ctx.OpeningBid.IsContract() &&
		b.Strain == ctx.OpeningBid.Strain && b.Strain != domain.StrainNoTrump &&
		b.Level == ctx.OpeningBid.Level+1
}

func suitName(s domain.Suit) string {
	switch s {
	case domain.SuitClubs:
		return "clubs"
	case domain.SuitDiamonds:
		return "diamonds"
	case domain.SuitHearts:
		return "hearts"
	default:
		return "spades"
	}
}
