package engine

import (
	"fmt"
	"strings"

	"bridgetutor/internal/domain"
)

// Rating classifies a learner's bid against the engine's recommendation.
type Rating string

const (
	RatingOptimal    Rating = "optimal"
	RatingAcceptable Rating = "acceptable"
	RatingSuboptimal Rating = "suboptimal"
	RatingError      Rating = "error"
)

// Feedback is the fixed five-field teaching shape the UI renders. The
// field set is a presentation contract: do not add or remove fields per
// module.
type Feedback struct {
	Promised    string `json:"promised"`
	Actual      string `json:"actual"`
	Mismatch    string `json:"mismatch"`
	Consequence string `json:"consequence"`
	Principle   string `json:"principle"`
}

// DifferentialResult grades one submitted bid.
type DifferentialResult struct {
	UserBid      domain.Bid   `json:"user_bid"`
	OptimalBid   domain.Bid   `json:"optimal_bid"`
	Rating       Rating       `json:"rating"`
	Score        float64      `json:"score"`
	Feedback     Feedback     `json:"feedback"`
	Alternatives []domain.Bid `json:"alternatives,omitempty"`
}

// EvaluateBid grades userBid by running the engine's own pipeline for the
// optimal call and comparing.
func (e *Engine) EvaluateBid(hand domain.Hand, auction *domain.Auction, seat domain.Seat, userBid domain.Bid) (DifferentialResult, error) {
	f, err := ExtractFeatures(hand)
	if err != nil {
		return DifferentialResult{}, err
	}
	ctx, err := ParseContext(auction, seat)
	if err != nil {
		return DifferentialResult{}, err
	}
	kind, err := SelectModule(ctx)
	if err != nil {
		return DifferentialResult{}, err
	}
	res := e.modules[kind].Evaluate(f, ctx)
	optimal, err := Validate(res, f, auction, e.tuning)
	if err != nil {
		return DifferentialResult{}, err
	}

	alternatives := acceptableSet(res, optimal)
	out := DifferentialResult{
		UserBid:      userBid,
		OptimalBid:   optimal.Bid,
		Alternatives: alternatives,
	}

	actual := describeHand(f)
	principle := fmt.Sprintf("with this hand the textbook call is %v: %s", optimal.Bid, optimal.Explanation)

	// The caller should already have rejected illegal bids; defend anyway.
	if illegal, why := illegalUserBid(userBid, auction); illegal {
		out.Rating = RatingError
		out.Score = 0
		out.Feedback = Feedback{
			Promised:    "nothing: the bid is not legal at this point in the auction",
			Actual:      actual,
			Mismatch:    why,
			Consequence: "an illegal call would be rejected at the table and forfeits the auction",
			Principle:   principle,
		}
		return out, nil
	}

	if userBid == optimal.Bid {
		out.Rating = RatingOptimal
		out.Score = e.tuning.MaxScore
		out.Feedback = Feedback{
			Promised:    promiseText(userBid, ctx),
			Actual:      actual,
			Mismatch:    "none: the bid matches the hand",
			Consequence: "partner receives an accurate picture of your values",
			Principle:   principle,
		}
		return out, nil
	}

	for _, alt := range alternatives {
		if userBid == alt {
			out.Rating = RatingAcceptable
			out.Score = e.tuning.AcceptableScore
			out.Feedback = Feedback{
				Promised:    promiseText(userBid, ctx),
				Actual:      actual,
				Mismatch:    fmt.Sprintf("a sound alternative, though %v is more precise", optimal.Bid),
				Consequence: "the auction stays on a reasonable track",
				Principle:   principle,
			}
			return out, nil
		}
	}

	out.Rating = RatingSuboptimal
	score, mismatch := e.scoreDeviation(userBid, optimal.Bid, f, ctx)
	out.Score = score
	out.Feedback = Feedback{
		Promised:    promiseText(userBid, ctx),
		Actual:      actual,
		Mismatch:    mismatch,
		Consequence: consequenceText(userBid, optimal.Bid),
		Principle:   principle,
	}
	return out, nil
}

// scoreDeviation quantifies how far the user's bid sits from its own
// textbook requirement and from the recommended call.
func (e *Engine) scoreDeviation(userBid, optimal domain.Bid, f HandFeatures, ctx AuctionContext) (float64, string) {
	t := e.tuning
	penalty := 0.0
	var reasons []string

	if userBid.IsContract() && optimal.IsContract() {
		levels := userBid.Level - optimal.Level
		if levels < 0 {
			levels = -levels
		}
		penalty += float64(levels) * t.PenaltyPerLevel
		if userBid.Strain != optimal.Strain {
			penalty += t.PenaltyWrongSide
			reasons = append(reasons, fmt.Sprintf("the recommended strain is %s", strainWord(optimal.Strain)))
		}
	} else {
		penalty += t.PenaltyPerLevel
	}

	if meaning, ok := InterpretBid(userBid, ctx); ok {
		if meaning.HasHCP {
			switch {
			case f.HCP < meaning.HCPMin:
				diff := meaning.HCPMin - f.HCP
				penalty += float64(diff) * t.PenaltyPerHCP
				reasons = append(reasons, fmt.Sprintf("it promises %d-%d HCP but you hold %d",
					meaning.HCPMin, meaning.HCPMax, f.HCP))
			case f.HCP > meaning.HCPMax:
				diff := f.HCP - meaning.HCPMax
				penalty += float64(diff) * t.PenaltyPerHCP
				reasons = append(reasons, fmt.Sprintf("it promises at most %d HCP but you hold %d",
					meaning.HCPMax, f.HCP))
			}
		}
		for _, sr := range meaning.Suits {
			if f.SuitLength[sr.Suit] < sr.Min {
				diff := sr.Min - f.SuitLength[sr.Suit]
				penalty += float64(diff) * t.PenaltyPerHCP
				reasons = append(reasons, fmt.Sprintf("it promises %d+ %s but you hold %d",
					sr.Min, suitName(sr.Suit), f.SuitLength[sr.Suit]))
			}
		}
	}

	score := t.MaxScore - penalty
	if score < t.MinScore {
		score = t.MinScore
	}
	mismatch := "the bid does not match the recommended line"
	if len(reasons) > 0 {
		mismatch = strings.Join(reasons, "; ")
	}
	return score, mismatch
}

// acceptableSet collects the bids the module marked as also sound: the
// chosen candidate's declared alternatives plus the remaining candidates.
func acceptableSet(res EvaluationResult, optimal FinalCall) []domain.Bid {
	seen := map[domain.Bid]bool{optimal.Bid: true}
	var out []domain.Bid
	add := func(b domain.Bid) {
		if !seen[b] {
			seen[b] = true
			out = append(out, b)
		}
	}
	for _, alt := range optimal.Meta.Alternatives {
		add(alt)
	}
	for _, cand := range res.Candidates {
		if cand.Bid.IsPass() && !optimal.Bid.IsPass() {
			continue // a trailing Pass fallback is not a sound alternative
		}
		add(cand.Bid)
		for _, alt := range cand.Meta.Alternatives {
			add(alt)
		}
	}
	return out
}

func illegalUserBid(userBid domain.Bid, auction *domain.Auction) (bool, string) {
	last, lastSeat, hasLast := auction.LastContract()
	doubled, redoubled := auction.ContractDoubled()
	actor := auction.CurrentTurn()

	switch userBid.Call {
	case domain.CallPass:
		return false, ""
	case domain.CallDouble:
		if !hasLast || lastSeat.SameSide(actor) || doubled || redoubled {
			return true, "double is only available over an opponent's undoubled contract"
		}
		return false, ""
	case domain.CallRedouble:
		if !hasLast || !lastSeat.SameSide(actor) || !doubled || redoubled {
			return true, "redouble is only available after the opponents double your side's contract"
		}
		return false, ""
	}
	if hasLast && !userBid.Beats(last) {
		return true, fmt.Sprintf("%v does not outrank the standing %v", userBid, last)
	}
	return false, ""
}

func promiseText(b domain.Bid, ctx AuctionContext) string {
	if meaning, ok := InterpretBid(b, ctx); ok {
		return meaning.Desc
	}
	return fmt.Sprintf("%v carries no standard meaning in this auction", b)
}

func describeHand(f HandFeatures) string {
	shape := fmt.Sprintf("%d-%d-%d-%d",
		f.SuitLength[domain.SuitSpades], f.SuitLength[domain.SuitHearts],
		f.SuitLength[domain.SuitDiamonds], f.SuitLength[domain.SuitClubs])
	kind := "unbalanced"
	if f.Balanced {
		kind = "balanced"
	}
	return fmt.Sprintf("%d HCP, %s shape (%s)", f.HCP, shape, kind)
}

func consequenceText(userBid, optimal domain.Bid) string {
	switch {
	case userBid.IsContract() && optimal.IsContract() && userBid.Index() > optimal.Index():
		return "the partnership is driven past its safe level"
	case userBid.IsContract() && optimal.IsContract() && userBid.Strain != optimal.Strain:
		return "the partnership may land in an inferior strain"
	case userBid.IsPass() && optimal.IsContract():
		return "game or partscore values may be passed out"
	default:
		return "partner will draw the wrong picture of your hand"
	}
}
