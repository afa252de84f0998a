package engine

import (
	"fmt"

	"bridgetutor/internal/domain"
)

// openingModule decides the first bid for a seat when nobody has opened.
type openingModule struct {
	t Tuning
}

func (m *openingModule) Name() string { return "opening" }

func (m *openingModule) Evaluate(f HandFeatures, ctx AuctionContext) EvaluationResult {
	// Strong and balanced ranges first: they take priority over suit
	// openings at the same strength.
	if f.HCP >= m.t.StrongTwoMin {
		return result(m.Name(),
			conventionCall(domain.NewBid(2, domain.StrainClubs), "strong_two",
				fmt.Sprintf("%d points: open the artificial, forcing 2C", f.HCP)),
			call(suitOpening(f), "natural opening as a fallback"),
		)
	}
	if f.Balanced && f.HCP >= m.t.TwoNTMin && f.HCP <= m.t.TwoNTMax {
		return result(m.Name(),
			call(domain.NewBid(2, domain.StrainNoTrump),
				fmt.Sprintf("balanced %d points: open 2NT", f.HCP)),
		)
	}
	if f.Balanced && f.HCP >= m.t.OneNTMin && f.HCP <= m.t.OneNTMax {
		alt := suitOpening(f)
		c := call(domain.NewBid(1, domain.StrainNoTrump),
			fmt.Sprintf("balanced %d points: open 1NT", f.HCP))
		c.Meta.Alternatives = []domain.Bid{alt}
		return result(m.Name(), c)
	}

	if f.HCP >= m.t.OpenMinHCP || ruleOfTwenty(f) {
		open := suitOpening(f)
		suit, _ := open.Strain.Suit()
		return result(m.Name(),
			call(open, fmt.Sprintf("%d points with %d %s: open %v",
				f.DistPoints, f.SuitLength[suit], suitName(suit), open)),
		)
	}

	// Too weak to open; look for a preempt before settling for Pass.
	if c, ok := m.preempt(f, ctx); ok {
		return result(m.Name(), c,
			call(domain.Pass(), "too weak to open constructively"),
		)
	}

	return result(m.Name(),
		call(domain.Pass(), fmt.Sprintf("%d points: not enough to open", f.DistPoints)),
	)
}

// preempt proposes a weak two or a higher preempt on a long suit. These
// bids carry BypassHCP: by raw point count they look like defects.
func (m *openingModule) preempt(f HandFeatures, ctx AuctionContext) (Candidate, bool) {
	if f.HCP < m.t.WeakTwoMin || f.HCP > m.t.PreemptMaxHCP {
		return Candidate{}, false
	}
	long := f.LongestSuit()
	length := f.SuitLength[long]

	// Vulnerable preempts need a decent suit.
	if ctx.Vulnerability.SeatVulnerable(ctx.Seat) && f.SuitHCP[long] < 5 {
		return Candidate{}, false
	}

	switch {
	case length >= 8 && long.IsMajor():
		c := conventionCall(domain.NewBid(4, long.Strain()), "preempt",
			fmt.Sprintf("weak hand, %d-card %s: preempt at the four level", length, suitName(long)))
		c.Meta.Alternatives = []domain.Bid{domain.NewBid(3, long.Strain())}
		return c, true
	case length >= 7:
		c := conventionCall(domain.NewBid(3, long.Strain()), "preempt",
			fmt.Sprintf("weak hand, %d-card %s: preempt at the three level", length, suitName(long)))
		if long.IsMajor() {
			c.Meta.Alternatives = []domain.Bid{domain.NewBid(4, long.Strain())}
		}
		return c, true
	case length == 6 && f.HCP <= m.t.WeakTwoMax && long.Strain() != domain.StrainClubs:
		return conventionCall(domain.NewBid(2, long.Strain()), "weak_two",
			fmt.Sprintf("%d points, 6-card %s: weak two", f.HCP, suitName(long))), true
	}
	return Candidate{}, false
}

// suitOpening picks the standard opening suit: a 5-card major, otherwise
// the better minor (longer; 1D on 4-4, 1C on 3-3).
func suitOpening(f HandFeatures) domain.Bid {
	if f.SuitLength[domain.SuitSpades] >= 5 || f.SuitLength[domain.SuitHearts] >= 5 {
		if f.SuitLength[domain.SuitSpades] >= f.SuitLength[domain.SuitHearts] {
			return domain.NewBid(1, domain.StrainSpades)
		}
		return domain.NewBid(1, domain.StrainHearts)
	}
	c, d := f.SuitLength[domain.SuitClubs], f.SuitLength[domain.SuitDiamonds]
	switch {
	case d > c:
		return domain.NewBid(1, domain.StrainDiamonds)
	case c > d:
		return domain.NewBid(1, domain.StrainClubs)
	case d == 4:
		return domain.NewBid(1, domain.StrainDiamonds)
	default:
		return domain.NewBid(1, domain.StrainClubs)
	}
}

// ruleOfTwenty allows light openings when HCP plus the two longest suit
// lengths reach twenty.
func ruleOfTwenty(f HandFeatures) bool {
	first, second := 0, 0
	for s := domain.SuitClubs; s <= domain.SuitSpades; s++ {
		l := f.SuitLength[s]
		if l > first {
			first, second = l, first
		} else if l > second {
			second = l
		}
	}
	return f.HCP >= 10 && f.HCP+first+second >= 20
}
