package engine

import (
	"fmt"

	"bridgetutor/internal/domain"
)

// FinalCall is the validated call the engine actually makes.
type FinalCall struct {
	Bid         domain.Bid `json:"bid"`
	Explanation string     `json:"explanation"`
	Module      string     `json:"module"`
	Meta        CallMeta   `json:"meta"`
	// Adjusted is set when the candidate was raised to clear the auction.
	Adjusted bool `json:"adjusted,omitempty"`
	// EscalationBounded marks the expected fallback to Pass when no
	// candidate could be made legal within the level bound. This is
	// normal control flow, not a defect.
	EscalationBounded bool `json:"escalation_bounded,omitempty"`
}

// Validate walks a module's preference-ordered candidates and returns the
// first one that is legal, or can be made legal by raising the level in
// the same strain by at most the escalation bound. Candidates that fail
// are skipped in favour of the next; when all fail the result is Pass.
//
// Modules never run their own legality adjustments. The bound lives here
// precisely because per-module copies of this logic have historically
// escalated a 2NT rebid all the way to 7NT.
func Validate(res EvaluationResult, f HandFeatures, auction *domain.Auction, t Tuning) (FinalCall, error) {
	last, lastSeat, hasLast := auction.LastContract()
	doubled, redoubled := auction.ContractDoubled()
	actor := auction.CurrentTurn()

	for _, cand := range res.Candidates {
		switch cand.Bid.Call {
		case domain.CallPass:
			return accepted(res, cand, false), nil

		case domain.CallDouble:
			// Only an opponent's undoubled contract can be doubled. A
			// module producing anything else is broken, not unlucky.
			if !hasLast || lastSeat.SameSide(actor) || doubled || redoubled {
				return FinalCall{}, fmt.Errorf("%w: double by %v from module %s",
					domain.ErrIllegalCall, actor, res.Module)
			}
			return accepted(res, cand, false), nil

		case domain.CallRedouble:
			if !hasLast || !lastSeat.SameSide(actor) || !doubled || redoubled {
				return FinalCall{}, fmt.Errorf("%w: redouble by %v from module %s",
					domain.ErrIllegalCall, actor, res.Module)
			}
			return accepted(res, cand, false), nil
		}

		// Contract bid. Generic point-count sanity unless the module
		// flagged the call as correct-by-convention.
		if !cand.Meta.BypassHCP && cand.Bid.Level < len(t.SanityMinHCP) &&
			f.HCP < t.SanityMinHCP[cand.Bid.Level] {
			continue
		}

		if !hasLast || cand.Bid.Beats(last) {
			return accepted(res, cand, false), nil
		}

		// Nearest legal bid in the same strain. BypassHCP never relaxes
		// this bound; it is a cross-cutting invariant.
		adjusted := cand.Bid
		for !adjusted.Beats(last) && adjusted.Level < 7 {
			adjusted.Level++
		}
		if !adjusted.Beats(last) || adjusted.Level-cand.Bid.Level > t.EscalationBound {
			continue
		}
		raised := cand
		raised.Bid = adjusted
		raised.Explanation = fmt.Sprintf("%s (raised from %v to stay above %v)",
			cand.Explanation, cand.Bid, last)
		return accepted(res, raised, true), nil
	}

	return FinalCall{
		Bid:               domain.Pass(),
		Explanation:       "no reasonable legal continuation: pass",
		Module:            res.Module,
		EscalationBounded: true,
	}, nil
}

func accepted(res EvaluationResult, cand Candidate, adjusted bool) FinalCall {
	return FinalCall{
		Bid:         cand.Bid,
		Explanation: cand.Explanation,
		Module:      res.Module,
		Meta:        cand.Meta,
		Adjusted:    adjusted,
	}
}
