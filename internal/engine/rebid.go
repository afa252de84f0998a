package engine

import (
	"fmt"

	"bridgetutor/internal/domain"
)

// rebidModule is the later-round fallback for the opening side once no
// convention is active. Defenders falling through to it simply pass.
type rebidModule struct {
	t Tuning
}

func (m *rebidModule) Name() string { return "rebid" }

func (m *rebidModule) Evaluate(f HandFeatures, ctx AuctionContext) EvaluationResult {
	if ctx.Role != RoleOpener && ctx.Role != RoleResponder {
		return result(m.Name(),
			call(domain.Pass(), "the auction is the opponents' now: pass and defend"),
		)
	}

	var cands []Candidate

	// Slam machinery first: with an agreed suit and slam values, 4NT is
	// Blackwood (without agreement 4NT stays quantitative, below).
	if ctx.HasAgreedSuit && f.HCP >= m.t.SlamTryMin {
		cands = append(cands,
			conventionCall(domain.NewBid(4, domain.StrainNoTrump), "blackwood",
				fmt.Sprintf("%d points with %s agreed: ask for aces", f.HCP, strainWord(ctx.AgreedSuit))))
	}

	// Game with an agreed suit.
	if ctx.HasAgreedSuit && f.HCP >= m.t.GameForceMin {
		if ctx.AgreedSuit.IsMajor() {
			cands = append(cands, call(domain.NewBid(4, ctx.AgreedSuit),
				fmt.Sprintf("%d points with a major fit: bid game", f.DistPoints)))
		} else {
			c := call(domain.NewBid(3, domain.StrainNoTrump),
				"minor fit with game values: 3NT usually outscores five of a minor")
			c.Meta.Alternatives = []domain.Bid{domain.NewBid(5, ctx.AgreedSuit)}
			cands = append(cands, c)
		}
	}

	// Balanced rebids. In competition a notrump rebid needs their suit
	// stopped; the validator will lift the level to stay legal, bounded.
	if f.Balanced && (!ctx.Competition || f.HasStopper(ctx.LastContract.Strain)) {
		switch {
		case f.HCP >= 15 && f.HCP <= 19:
			cands = append(cands, call(domain.NewBid(2, domain.StrainNoTrump),
				fmt.Sprintf("balanced %d: jump notrump rebid", f.HCP)))
		case f.HCP >= 12:
			cands = append(cands, call(domain.NewBid(1, domain.StrainNoTrump),
				fmt.Sprintf("balanced %d: minimum notrump rebid", f.HCP)))
		}
	}

	// A real 6-card suit is always worth a rebid.
	long := f.LongestSuit()
	if f.SuitLength[long] >= 6 && f.HCP >= m.t.OpenMinHCP {
		cands = append(cands, call(domain.NewBid(2, long.Strain()),
			fmt.Sprintf("%d-card %s: rebid the suit", f.SuitLength[long], suitName(long))))
	}

	// Delayed support for partner's suit.
	if suit, ok := ctx.PartnerLastReal.Strain.Suit(); ok && ctx.PartnerHasReal {
		if f.SuitLength[suit] >= 4 && f.HCP >= m.t.OpenMinHCP {
			cands = append(cands, call(domain.NewBid(ctx.PartnerLastReal.Level+1, ctx.PartnerLastReal.Strain),
				fmt.Sprintf("4-card support for partner's %s: raise", suitName(suit))))
		}
	}

	// Second suit, cheapest first.
	for s := domain.SuitSpades; s >= domain.SuitClubs; s-- {
		if f.SuitLength[s] == 4 && s != long && f.HCP >= m.t.OpenMinHCP {
			cands = append(cands, call(domain.NewBid(2, s.Strain()),
				fmt.Sprintf("show the second suit: %s", suitName(s))))
			break
		}
	}

	cands = append(cands, call(domain.Pass(), "nothing descriptive left to say"))
	return result(m.Name(), cands...)
}
