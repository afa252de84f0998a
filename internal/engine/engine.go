package engine

import (
	"fmt"

	"bridgetutor/internal/domain"
)

// Engine is the stateless bidding decision engine. Every public call is a
// pure function of (hand, auction, seat): all auction memory is rebuilt by
// re-parsing the call sequence, so concurrent use needs no locking. The
// only shared state is the read-only tuning and module tables built here.
type Engine struct {
	tuning  Tuning
	modules map[ModuleKind]BiddingModule
}

// New builds an engine with the given tuning profile.
func New(t Tuning) *Engine {
	return &Engine{
		tuning: t,
		modules: map[ModuleKind]BiddingModule{
			ModuleBlackwood: &blackwoodModule{t: t},
			ModuleTransfer:  &transferModule{t: t},
			ModuleStayman:   &staymanModule{t: t},
			ModuleOpening:   &openingModule{t: t},
			ModuleResponse:  &responseModule{t: t},
			ModuleOvercall:  &overcallModule{t: t},
			ModuleAdvance:   &advanceModule{t: t},
			ModuleRebid:     &rebidModule{t: t},
		},
	}
}

// NextBid runs the full pipeline: features, context, routing, module
// evaluation, validation. Deterministic for identical inputs.
func (e *Engine) NextBid(hand domain.Hand, auction *domain.Auction, seat domain.Seat) (FinalCall, error) {
	f, err := ExtractFeatures(hand)
	if err != nil {
		return FinalCall{}, err
	}
	ctx, err := ParseContext(auction, seat)
	if err != nil {
		return FinalCall{}, err
	}
	if ctx.Complete {
		return FinalCall{}, fmt.Errorf("%w: auction already complete", domain.ErrMalformedAuction)
	}

	kind, err := SelectModule(ctx)
	if err != nil {
		return FinalCall{}, err
	}
	res := e.modules[kind].Evaluate(f, ctx)
	return Validate(res, f, auction, e.tuning)
}

// Beliefs exposes the belief tracker as an informational side channel.
func (e *Engine) Beliefs(auction *domain.Auction) map[domain.Seat]*SeatBelief {
	return UpdateBeliefs(auction)
}
