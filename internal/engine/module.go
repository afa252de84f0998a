package engine

import "bridgetutor/internal/domain"

// CallMeta carries module-level flags on a candidate call.
type CallMeta struct {
	// BypassHCP tells the validator not to apply generic point-count
	// sanity checks: the call is correct by convention even though it
	// looks anomalous by raw strength (preempts, transfer completions).
	// It never suppresses the level-escalation bound.
	BypassHCP bool `json:"bypass_hcp,omitempty"`
	// Convention names the convention the call belongs to, if any.
	Convention string `json:"convention,omitempty"`
	// Alternatives lists bids the module considers also sound here; the
	// differential analyzer rates them "acceptable".
	Alternatives []domain.Bid `json:"alternatives,omitempty"`
}

// Candidate is one call a module is willing to make, with its teaching
// explanation.
type Candidate struct {
	Bid         domain.Bid `json:"bid"`
	Explanation string     `json:"explanation"`
	Meta        CallMeta   `json:"meta"`
}

// EvaluationResult is a module's preference-ordered candidate list, best
// first. Modules never check auction legality; the validator walks the
// list and takes the first candidate it can make legal.
type EvaluationResult struct {
	Module     string      `json:"module"`
	Candidates []Candidate `json:"candidates"`
}

func result(module string, candidates ...Candidate) EvaluationResult {
	return EvaluationResult{Module: module, Candidates: candidates}
}

// resultLead puts one preferred candidate ahead of a fallback list.
func resultLead(module string, lead Candidate, rest []Candidate) EvaluationResult {
	return EvaluationResult{Module: module, Candidates: append([]Candidate{lead}, rest...)}
}

func call(b domain.Bid, explanation string) Candidate {
	return Candidate{Bid: b, Explanation: explanation}
}

func conventionCall(b domain.Bid, convention, explanation string) Candidate {
	return Candidate{Bid: b, Explanation: explanation, Meta: CallMeta{BypassHCP: true, Convention: convention}}
}

// BiddingModule evaluates one phase or convention of the auction.
type BiddingModule interface {
	Name() string
	Evaluate(f HandFeatures, ctx AuctionContext) EvaluationResult
}
