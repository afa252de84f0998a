package engine

import (
	"fmt"

	"bridgetutor/internal/domain"
)

// ModuleKind identifies a bidding module for routing and testing.
type ModuleKind int

const (
	ModuleBlackwood ModuleKind = iota
	ModuleTransfer
	ModuleStayman
	ModuleOpening
	ModuleResponse
	ModuleOvercall
	ModuleAdvance
	ModuleRebid
)

var moduleKindNames = [...]string{
	"blackwood", "transfer", "stayman",
	"opening", "response", "overcall", "advance", "rebid",
}

func (k ModuleKind) String() string { return moduleKindNames[k] }

// routingRule pairs a predicate with the module it selects.
type routingRule struct {
	Name string
	Kind ModuleKind
	When func(ctx AuctionContext) bool
}

// routingTable is the fixed priority order, checked top to bottom with the
// first match winning. Convention continuations come before every generic
// phase module: the generic modules do not understand convention semantics
// and would misread an auction mid-relay.
var routingTable = []routingRule{
	{
		Name: "blackwood continuation",
		Kind: ModuleBlackwood,
		When: func(ctx AuctionContext) bool {
			return ctx.BlackwoodAnswerDue || ctx.BlackwoodSignoffDue
		},
	},
	{
		Name: "transfer continuation",
		Kind: ModuleTransfer,
		When: func(ctx AuctionContext) bool {
			return ctx.TransferAcceptDue || ctx.TransferContinueDue
		},
	},
	{
		Name: "stayman continuation",
		Kind: ModuleStayman,
		When: func(ctx AuctionContext) bool {
			return ctx.StaymanAnswerDue || ctx.StaymanContinueDue
		},
	},
	{
		Name: "opening seat",
		Kind: ModuleOpening,
		When: func(ctx AuctionContext) bool {
			return !ctx.Opened && ctx.MyRealBids == 0
		},
	},
	{
		Name: "first response",
		Kind: ModuleResponse,
		When: func(ctx AuctionContext) bool {
			return ctx.Role == RoleResponder && ctx.MyRealBids == 0 && ctx.MyActions <= 1
		},
	},
	{
		Name: "overcall seat",
		Kind: ModuleOvercall,
		When: func(ctx AuctionContext) bool {
			return ctx.Role == RoleOvercaller && ctx.MyRealBids == 0 && ctx.MyActions == 0
		},
	},
	{
		Name: "advance of partner's action",
		Kind: ModuleAdvance,
		When: func(ctx AuctionContext) bool {
			return ctx.Role == RoleAdvancer && ctx.MyRealBids == 0 && ctx.MyActions == 0
		},
	},
	{
		Name: "later-round rebid",
		Kind: ModuleRebid,
		When: func(ctx AuctionContext) bool {
			return ctx.Opened
		},
	},
}

// SelectModule picks exactly one module for the context. A miss is a gap
// in the priority table, surfaced loudly as ErrRouting.
func SelectModule(ctx AuctionContext) (ModuleKind, error) {
	for _, rule := range routingTable {
		if rule.When(ctx) {
			return rule.Kind, nil
		}
	}
	return 0, fmt.Errorf("%w: seat %v role %v", domain.ErrRouting, ctx.Seat, ctx.Role)
}
