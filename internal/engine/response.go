package engine

import (
	"fmt"

	"bridgetutor/internal/domain"
)

// responseModule decides responder's first call after partner opened.
type responseModule struct {
	t Tuning
}

func (m *responseModule) Name() string { return "response" }

func (m *responseModule) Evaluate(f HandFeatures, ctx AuctionContext) EvaluationResult {
	opening := ctx.OpeningBid

	switch {
	case opening.Strain == domain.StrainNoTrump && opening.Level <= 2:
		return m.respondToNotrump(f, ctx)
	case opening.Level == 2 && opening.Strain == domain.StrainClubs:
		return result(m.Name(),
			conventionCall(domain.NewBid(2, domain.StrainDiamonds), "waiting",
				"2D waiting: keeps the strong auction open"),
		)
	case opening.Level >= 2:
		return m.respondToPreempt(f, ctx)
	}

	// Interference in front of us: a negative double shows the unbid
	// majors without raising the level.
	if ctx.Competition && ctx.HasContract && !ctx.LastContractSeat.SameSide(ctx.Seat) {
		if c, ok := m.negativeDouble(f, ctx); ok {
			return resultLead(m.Name(), c, m.suitResponses(f, ctx))
		}
	}

	return result(m.Name(), m.suitResponses(f, ctx)...)
}

// suitResponses is the natural decision table over HCP bands and fit.
func (m *responseModule) suitResponses(f HandFeatures, ctx AuctionContext) []Candidate {
	opening := ctx.OpeningBid
	if f.HCP < m.t.RespondMin {
		return []Candidate{call(domain.Pass(),
			fmt.Sprintf("%d points: too weak to respond", f.HCP))}
	}

	var out []Candidate

	// Fit first: raises are the most descriptive responses.
	if suit, ok := opening.Strain.Suit(); ok {
		support := 3
		if !suit.IsMajor() {
			support = 4
		}
		if f.SuitLength[suit] >= support {
			switch {
			case f.HCP >= m.t.GameForceMin && suit.IsMajor():
				game := call(domain.NewBid(4, opening.Strain),
					fmt.Sprintf("%d points with %d-card support: bid game", f.DistPoints, f.SuitLength[suit]))
				game.Meta.Alternatives = []domain.Bid{newSuitBid(f, ctx)}
				out = append(out, game)
			case f.HCP >= m.t.InviteMin:
				out = append(out, call(domain.NewBid(opening.Level+2, opening.Strain),
					fmt.Sprintf("%d points with support: limit raise", f.HCP)))
			default:
				out = append(out, call(domain.NewBid(opening.Level+1, opening.Strain),
					fmt.Sprintf("%d points with support: single raise", f.HCP)))
			}
		}
	}

	// New suit, cheapest available level.
	ns := newSuitBid(f, ctx)
	if ns.IsContract() {
		if ns.Level == 1 {
			out = append(out, call(ns, fmt.Sprintf("%d points: show the %s suit at the one level",
				f.HCP, strainWord(ns.Strain))))
		} else if f.HCP >= m.t.InviteMin {
			out = append(out, call(ns, fmt.Sprintf("%d points: new suit at the two level",
				f.HCP)))
		}
	}

	out = append(out, call(domain.NewBid(1, domain.StrainNoTrump),
		fmt.Sprintf("%d points, no fit, nothing to bid at the one level: 1NT", f.HCP)))
	return out
}

// respondToNotrump initiates Stayman and Jacoby transfers over partner's
// 1NT or 2NT opening.
func (m *responseModule) respondToNotrump(f HandFeatures, ctx AuctionContext) EvaluationResult {
	opening := ctx.OpeningBid
	relay := opening.Level + 1

	if f.SuitLength[domain.SuitHearts] >= 5 {
		return result(m.Name(),
			conventionCall(domain.NewBid(relay, domain.StrainDiamonds), "jacoby_transfer",
				fmt.Sprintf("%d hearts: transfer to hearts", f.SuitLength[domain.SuitHearts])),
		)
	}
	if f.SuitLength[domain.SuitSpades] >= 5 {
		return result(m.Name(),
			conventionCall(domain.NewBid(relay, domain.StrainHearts), "jacoby_transfer",
				fmt.Sprintf("%d spades: transfer to spades", f.SuitLength[domain.SuitSpades])),
		)
	}

	staymanMin := 8
	if opening.Level == 2 {
		staymanMin = 4 // opposite 20-21 far less is enough
	}
	if (f.SuitLength[domain.SuitHearts] == 4 || f.SuitLength[domain.SuitSpades] == 4) &&
		f.HCP >= staymanMin {
		return result(m.Name(),
			conventionCall(domain.NewBid(relay, domain.StrainClubs), "stayman",
				"4-card major with invitational values: Stayman"),
		)
	}

	gameRaise := domain.NewBid(3, domain.StrainNoTrump)
	switch {
	case opening.Level == 2 && f.HCP >= 5:
		return result(m.Name(), call(gameRaise, "enough for game opposite 20-21"))
	case opening.Level == 1 && f.HCP >= m.t.InviteMin:
		return result(m.Name(), call(gameRaise,
			fmt.Sprintf("%d points opposite 15-17: bid game", f.HCP)))
	case opening.Level == 1 && f.HCP >= 8:
		return result(m.Name(), call(domain.NewBid(2, domain.StrainNoTrump),
			fmt.Sprintf("%d points: invite game", f.HCP)))
	default:
		return result(m.Name(), call(domain.Pass(),
			fmt.Sprintf("%d points: no game interest opposite a strong notrump", f.HCP)))
	}
}

// respondToPreempt keeps it simple: raise with a fit and strength, else pass.
func (m *responseModule) respondToPreempt(f HandFeatures, ctx AuctionContext) EvaluationResult {
	opening := ctx.OpeningBid
	suit, ok := opening.Strain.Suit()
	if ok && f.SuitLength[suit] >= 3 {
		if f.HCP >= m.t.GameForceMin+2 && opening.Strain.IsMajor() {
			return result(m.Name(), call(domain.NewBid(4, opening.Strain),
				"strong hand with a fit for partner's preempt: bid game"))
		}
		if f.HCP >= m.t.InviteMin {
			c := conventionCall(domain.NewBid(opening.Level+1, opening.Strain), "preempt_raise",
				"extend the preempt with a fit")
			return result(m.Name(), c, call(domain.Pass(), "defensive values only"))
		}
	}
	return result(m.Name(), call(domain.Pass(),
		"partner has shown a weak hand; no reason to act"))
}

func (m *responseModule) negativeDouble(f HandFeatures, ctx AuctionContext) (Candidate, bool) {
	if f.HCP < m.t.RespondMin {
		return Candidate{}, false
	}
	for _, s := range []domain.Suit{domain.SuitHearts, domain.SuitSpades} {
		if s.Strain() == ctx.OpeningBid.Strain || s.Strain() == ctx.LastContract.Strain {
			continue
		}
		if f.SuitLength[s] >= 4 {
			return conventionCall(domain.Double(), "negative_double",
				fmt.Sprintf("negative double: 4+ %s, too weak or wrong shape to bid the suit", suitName(s))), true
		}
	}
	return Candidate{}, false
}

// newSuitBid returns responder's cheapest legal-looking new suit, or Pass
// when the hand has no 4-card suit outside partner's.
func newSuitBid(f HandFeatures, ctx AuctionContext) domain.Bid {
	opening := ctx.OpeningBid
	best := domain.Pass()
	bestIdx := 999
	for s := domain.SuitClubs; s <= domain.SuitSpades; s++ {
		if s.Strain() == opening.Strain || f.SuitLength[s] < 4 {
			continue
		}
		level := 1
		b := domain.NewBid(level, s.Strain())
		if !b.Beats(opening) {
			level = 2
			b = domain.NewBid(level, s.Strain())
		}
		if b.Index() < bestIdx {
			best, bestIdx = b, b.Index()
		}
	}
	return best
}

func strainWord(st domain.Strain) string {
	if suit, ok := st.Suit(); ok {
		return suitName(suit)
	}
	return "notrump"
}
