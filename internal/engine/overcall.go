package engine

import (
	"fmt"

	"bridgetutor/internal/domain"
)

// overcallModule decides the first action for a defender after the
// opponents opened.
type overcallModule struct {
	t Tuning
}

func (m *overcallModule) Name() string { return "overcall" }

func (m *overcallModule) Evaluate(f HandFeatures, ctx AuctionContext) EvaluationResult {
	opening := ctx.OpeningBid

	// Michaels cue-bid: 5-5 in the majors over a minor, 5-5 in the other
	// major and a minor over a major.
	if c, ok := m.michaels(f, ctx); ok {
		return resultLead(m.Name(), c, m.naturalOvercall(f, ctx))
	}

	// 1NT overcall needs strength and their suit stopped.
	if f.Balanced && f.HCP >= m.t.NTOvercallMin && f.HCP <= m.t.NTOvercallMax &&
		f.HasStopper(opening.Strain) {
		c := call(domain.NewBid(1, domain.StrainNoTrump),
			fmt.Sprintf("balanced %d with their suit stopped: 1NT overcall", f.HCP))
		return resultLead(m.Name(), c, m.naturalOvercall(f, ctx))
	}

	// Takeout double: opening strength, shortness in their suit, support
	// for the unbid suits.
	if c, ok := m.takeoutDouble(f, ctx); ok {
		return resultLead(m.Name(), c, m.naturalOvercall(f, ctx))
	}

	return result(m.Name(), m.naturalOvercall(f, ctx)...)
}

func (m *overcallModule) naturalOvercall(f HandFeatures, ctx AuctionContext) []Candidate {
	opening := ctx.OpeningBid
	long := f.LongestSuit()
	length := f.SuitLength[long]

	if length >= 5 && long.Strain() != opening.Strain {
		oneLevel := domain.NewBid(1, long.Strain())
		needsTwo := !oneLevel.Beats(opening)
		minHCP := m.t.OvercallOneMin
		level := 1
		if needsTwo {
			minHCP = m.t.OvercallTwoMin
			level = 2
		}
		// Suit quality matters more than raw count when outgunned.
		if f.HCP >= minHCP && f.HCP <= m.t.OvercallMax && f.SuitHCP[long] >= 4 {
			return []Candidate{
				call(domain.NewBid(level, long.Strain()),
					fmt.Sprintf("%d points, %d-card %s: overcall", f.HCP, length, suitName(long))),
				call(domain.Pass(), "defend if the overcall is not available"),
			}
		}
		// Weak jump overcall on a 6-card suit.
		if length >= 6 && f.HCP >= m.t.WeakTwoMin && f.HCP <= m.t.WeakTwoMax &&
			!ctx.Vulnerability.SeatVulnerable(ctx.Seat) {
			jump := conventionCall(domain.NewBid(level+1, long.Strain()), "weak_jump_overcall",
				fmt.Sprintf("weak hand, %d-card %s: jump overcall to take away space", length, suitName(long)))
			return []Candidate{jump, call(domain.Pass(), "defend otherwise")}
		}
	}

	return []Candidate{call(domain.Pass(),
		fmt.Sprintf("%d points with no suitable action: pass and defend", f.HCP))}
}

func (m *overcallModule) michaels(f HandFeatures, ctx AuctionContext) (Candidate, bool) {
	opened, ok := ctx.OpeningBid.Strain.Suit()
	if !ok || ctx.OpeningBid.Level != 1 {
		return Candidate{}, false
	}
	cue := domain.NewBid(ctx.OpeningBid.Level+1, ctx.OpeningBid.Strain)

	if opened.IsMajor() {
		other := domain.SuitSpades
		if opened == domain.SuitSpades {
			other = domain.SuitHearts
		}
		minors := f.SuitLength[domain.SuitClubs]
		if f.SuitLength[domain.SuitDiamonds] > minors {
			minors = f.SuitLength[domain.SuitDiamonds]
		}
		if f.SuitLength[other] >= 5 && minors >= 5 {
			return conventionCall(cue, "michaels",
				fmt.Sprintf("5-5 with %s and a minor: Michaels cue-bid", suitName(other))), true
		}
		return Candidate{}, false
	}

	if f.SuitLength[domain.SuitHearts] >= 5 && f.SuitLength[domain.SuitSpades] >= 5 {
		return conventionCall(cue, "michaels", "5-5 in the majors: Michaels cue-bid"), true
	}
	return Candidate{}, false
}

func (m *overcallModule) takeoutDouble(f HandFeatures, ctx AuctionContext) (Candidate, bool) {
	theirSuit, ok := ctx.OpeningBid.Strain.Suit()
	if !ok || f.HCP < m.t.TakeoutMin || f.SuitLength[theirSuit] > 2 {
		return Candidate{}, false
	}
	for s := domain.SuitClubs; s <= domain.SuitSpades; s++ {
		if s != theirSuit && f.SuitLength[s] < 3 {
			return Candidate{}, false
		}
	}
	return call(domain.Double(),
		fmt.Sprintf("%d points, short in %s, support everywhere else: takeout double",
			f.HCP, suitName(theirSuit))), true
}

// advanceModule decides the first action for the partner of an overcaller
// or doubler.
type advanceModule struct {
	t Tuning
}

func (m *advanceModule) Name() string { return "advance" }

func (m *advanceModule) Evaluate(f HandFeatures, ctx AuctionContext) EvaluationResult {
	switch {
	case ctx.PartnerMichaels:
		return m.advanceMichaels(f, ctx)
	case ctx.PartnerDoubled:
		return m.advanceDouble(f, ctx)
	case ctx.PartnerOvercalled:
		return m.advanceOvercall(f, ctx)
	}
	return result(m.Name(), call(domain.Pass(), "nothing to advance"))
}

// advanceMichaels must pick a suit: partner's cue-bid is artificial and
// passing it would play in the opponents' suit.
func (m *advanceModule) advanceMichaels(f HandFeatures, ctx AuctionContext) EvaluationResult {
	opened := ctx.MichaelsSuit
	var choices []domain.Suit
	if opened.IsMajor() {
		other := domain.SuitSpades
		if opened == domain.SuitSpades {
			other = domain.SuitHearts
		}
		choices = []domain.Suit{other, domain.SuitDiamonds, domain.SuitClubs}
	} else {
		choices = []domain.Suit{domain.SuitSpades, domain.SuitHearts}
	}

	best := choices[0]
	for _, s := range choices[1:] {
		if f.SuitLength[s] > f.SuitLength[best] {
			best = s
		}
	}
	level := 2
	target := domain.NewBid(level, best.Strain())
	if !target.Beats(ctx.LastContract) {
		level = 3
		target = domain.NewBid(level, best.Strain())
	}
	c := conventionCall(target, "michaels",
		fmt.Sprintf("pick %s from partner's two-suiter", suitName(best)))
	return result(m.Name(), c)
}

func (m *advanceModule) advanceDouble(f HandFeatures, ctx AuctionContext) EvaluationResult {
	// Partner's takeout double demands a bid with any weak hand; only
	// strength converts it to penalty by passing.
	theirSuit, _ := ctx.OpeningBid.Strain.Suit()
	best := domain.SuitClubs
	for s := domain.SuitDiamonds; s <= domain.SuitSpades; s++ {
		if s == theirSuit {
			continue
		}
		if f.SuitLength[s] >= f.SuitLength[best] || best == theirSuit {
			best = s
		}
	}
	level := 1
	target := domain.NewBid(level, best.Strain())
	if ctx.HasContract && !target.Beats(ctx.LastContract) {
		level = 2
		target = domain.NewBid(level, best.Strain())
	}
	if f.HCP >= m.t.InviteMin {
		jump := call(domain.NewBid(level+1, best.Strain()),
			fmt.Sprintf("%d points opposite a takeout double: jump in the best suit", f.HCP))
		jump.Meta.Alternatives = []domain.Bid{target}
		return result(m.Name(), jump)
	}
	c := conventionCall(target, "takeout_advance",
		fmt.Sprintf("obliged to bid over the takeout double: %s is the best suit", suitName(best)))
	return result(m.Name(), c)
}

func (m *advanceModule) advanceOvercall(f HandFeatures, ctx AuctionContext) EvaluationResult {
	partnerSuit, ok := ctx.PartnerLastReal.Strain.Suit()
	if ok && f.SuitLength[partnerSuit] >= 3 && f.HCP >= m.t.RespondMin {
		level := ctx.PartnerLastReal.Level + 1
		if f.HCP >= m.t.InviteMin {
			level++
		}
		return result(m.Name(),
			call(domain.NewBid(level, ctx.PartnerLastReal.Strain),
				fmt.Sprintf("%d points with %d-card support for the overcall: raise",
					f.HCP, f.SuitLength[partnerSuit])),
			call(domain.Pass(), "minimum defensive hand otherwise"),
		)
	}
	if f.HCP >= 8 && f.Balanced && f.HasStopper(ctx.OpeningBid.Strain) {
		return result(m.Name(),
			call(domain.NewBid(1, domain.StrainNoTrump),
				fmt.Sprintf("%d balanced with their suit stopped: 1NT advance", f.HCP)),
			call(domain.Pass(), "pass without the values to act"),
		)
	}
	return result(m.Name(), call(domain.Pass(),
		"no fit and no independent action: pass"))
}
