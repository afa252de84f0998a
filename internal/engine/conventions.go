package engine

import (
	"fmt"

	"bridgetutor/internal/domain"
)

// staymanModule handles both sides of the Stayman relay: opener's reply
// and responder's continuation after the reply.
type staymanModule struct {
	t Tuning
}

func (m *staymanModule) Name() string { return "stayman" }

func (m *staymanModule) Evaluate(f HandFeatures, ctx AuctionContext) EvaluationResult {
	if ctx.StaymanAnswerDue {
		return m.reply(f, ctx)
	}
	return m.continuation(f, ctx)
}

func (m *staymanModule) reply(f HandFeatures, ctx AuctionContext) EvaluationResult {
	level := ctx.NotrumpOpening.Level + 1
	switch {
	case f.SuitLength[domain.SuitHearts] >= 4:
		return result(m.Name(),
			conventionCall(domain.NewBid(level, domain.StrainHearts), "stayman",
				"Stayman reply: four hearts (hearts shown first with both majors)"),
		)
	case f.SuitLength[domain.SuitSpades] >= 4:
		return result(m.Name(),
			conventionCall(domain.NewBid(level, domain.StrainSpades), "stayman",
				"Stayman reply: four spades"),
		)
	default:
		return result(m.Name(),
			conventionCall(domain.NewBid(level, domain.StrainDiamonds), "stayman",
				"Stayman reply: no four-card major"),
		)
	}
}

// continuation is responder's rebid after opener's reply. A found fit is
// raised invitationally or to game; without a fit the major is still shown
// at the three level with invitational values, never a lazy notrump rebid.
func (m *staymanModule) continuation(f HandFeatures, ctx AuctionContext) EvaluationResult {
	reply := ctx.StaymanReply
	game := m.t.InviteMin // opposite a strong notrump, 10+ forces game

	if major, ok := reply.Strain.Suit(); ok && major.IsMajor() && f.SuitLength[major] >= 4 {
		if f.HCP >= game {
			return result(m.Name(),
				call(domain.NewBid(4, reply.Strain),
					fmt.Sprintf("fit found with %d points: bid game", f.HCP)),
			)
		}
		return result(m.Name(),
			call(domain.NewBid(3, reply.Strain),
				fmt.Sprintf("fit found with %d points: invite game", f.HCP)),
		)
	}

	// No fit. With a 4-card major of our own, show it at the three level
	// so the partnership can still land in the right strain.
	for _, major := range []domain.Suit{domain.SuitHearts, domain.SuitSpades} {
		if f.SuitLength[major] < 4 {
			continue
		}
		if f.HCP >= game {
			c := call(domain.NewBid(3, major.Strain()),
				fmt.Sprintf("game values with four %s: show the suit below 3NT", suitName(major)))
			c.Meta.Alternatives = []domain.Bid{domain.NewBid(3, domain.StrainNoTrump)}
			return result(m.Name(), c)
		}
		return result(m.Name(),
			call(domain.NewBid(3, major.Strain()),
				fmt.Sprintf("game-invitational with four %s: show the suit rather than a generic notrump rebid", suitName(major))),
		)
	}

	if f.HCP >= game {
		return result(m.Name(),
			call(domain.NewBid(3, domain.StrainNoTrump), "no major fit: settle in game"),
		)
	}
	return result(m.Name(),
		call(domain.NewBid(2, domain.StrainNoTrump), "no major fit: invite"),
	)
}

// transferModule handles Jacoby transfers: opener's acceptance (with the
// super-accept) and responder's continuation after the completion.
type transferModule struct {
	t Tuning
}

func (m *transferModule) Name() string { return "transfer" }

func (m *transferModule) Evaluate(f HandFeatures, ctx AuctionContext) EvaluationResult {
	if ctx.TransferAcceptDue {
		return m.accept(f, ctx)
	}
	return m.continuation(f, ctx)
}

func (m *transferModule) accept(f HandFeatures, ctx AuctionContext) EvaluationResult {
	target := ctx.TransferSuit
	level := ctx.NotrumpOpening.Level + 1

	// Super-accept: four trumps and a maximum. Jumping a level on what
	// may be zero points is correct by convention, hence BypassHCP.
	if f.SuitLength[target] >= 4 && f.HCP >= m.t.OneNTMax {
		c := conventionCall(domain.NewBid(level+1, target.Strain()), "super_accept",
			fmt.Sprintf("four %s and a maximum: super-accept", suitName(target)))
		c.Meta.Alternatives = []domain.Bid{domain.NewBid(level, target.Strain())}
		return result(m.Name(), c)
	}
	return result(m.Name(),
		conventionCall(domain.NewBid(level, target.Strain()), "jacoby_transfer",
			fmt.Sprintf("complete the transfer to %s", suitName(target))),
	)
}

func (m *transferModule) continuation(f HandFeatures, ctx AuctionContext) EvaluationResult {
	suit := ctx.TransferSuit
	length := f.SuitLength[suit]

	switch {
	case f.HCP >= m.t.InviteMin && length >= 6:
		return result(m.Name(),
			call(domain.NewBid(4, suit.Strain()), "game values and a sixth trump: bid game"),
		)
	case f.HCP >= m.t.InviteMin:
		c := call(domain.NewBid(3, domain.StrainNoTrump),
			"game values, five trumps: offer a choice of games")
		c.Meta.Alternatives = []domain.Bid{domain.NewBid(4, suit.Strain())}
		return result(m.Name(), c)
	case f.HCP >= 8 && length >= 6:
		return result(m.Name(),
			call(domain.NewBid(3, suit.Strain()), "invitational with a sixth trump"),
		)
	case f.HCP >= 8:
		return result(m.Name(),
			call(domain.NewBid(2, domain.StrainNoTrump), "invitational, five trumps only"),
		)
	default:
		return result(m.Name(),
			call(domain.Pass(), "weak hand: the transfer already found the right spot"),
		)
	}
}

// blackwoodModule answers the 4NT ace-ask and signs off or drives on once
// the answer is in.
type blackwoodModule struct {
	t Tuning
}

func (m *blackwoodModule) Name() string { return "blackwood" }

func (m *blackwoodModule) Evaluate(f HandFeatures, ctx AuctionContext) EvaluationResult {
	if ctx.BlackwoodAnswerDue {
		return m.answer(f)
	}
	return m.signoff(f, ctx)
}

// answer maps the ace count onto the step replies. The reply can land on
// tiny values, so every reply carries BypassHCP.
func (m *blackwoodModule) answer(f HandFeatures) EvaluationResult {
	steps := [...]domain.Strain{
		domain.StrainClubs,    // 0 (or 4)
		domain.StrainDiamonds, // 1
		domain.StrainHearts,   // 2
		domain.StrainSpades,   // 3
	}
	idx := f.Aces % 4
	texts := [...]string{
		"Blackwood reply: no aces (or all four)",
		"Blackwood reply: one ace",
		"Blackwood reply: two aces",
		"Blackwood reply: three aces",
	}
	return result(m.Name(),
		conventionCall(domain.NewBid(5, steps[idx]), "blackwood", texts[idx]),
	)
}

func (m *blackwoodModule) signoff(f HandFeatures, ctx AuctionContext) EvaluationResult {
	// Read partner's reply conservatively: 5C counts as zero aces unless
	// our own holding proves otherwise.
	partnerAces := 0
	switch ctx.BlackwoodReply.Strain {
	case domain.StrainDiamonds:
		partnerAces = 1
	case domain.StrainHearts:
		partnerAces = 2
	case domain.StrainSpades:
		partnerAces = 3
	case domain.StrainClubs:
		if f.Aces == 0 && f.HCP >= m.t.SlamTryMin {
			partnerAces = 4
		}
	}
	missing := 4 - f.Aces - partnerAces

	trump := ctx.AgreedSuit
	switch {
	case missing <= 0:
		c := conventionCall(domain.NewBid(6, trump), "blackwood",
			"all four aces held: bid the small slam")
		c.Meta.Alternatives = []domain.Bid{domain.NewBid(5, domain.StrainNoTrump)}
		return result(m.Name(), c)
	case missing == 1:
		return result(m.Name(),
			conventionCall(domain.NewBid(6, trump), "blackwood",
				"one ace missing: small slam is safe, grand is not"),
		)
	default:
		return result(m.Name(),
			conventionCall(domain.NewBid(5, trump), "blackwood",
				fmt.Sprintf("%d aces missing: sign off below slam", missing)),
		)
	}
}
