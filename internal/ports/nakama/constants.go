package nakama

const (
	// RpcQuickMatch is the Nakama RPC id clients call to find or create a practice table.
	RpcQuickMatch = "quick_match"
	// RpcNextBid is the stateless engine RPC returning the recommended call.
	RpcNextBid = "next_bid"
	// RpcEvaluateBid is the stateless engine RPC grading a submitted call.
	RpcEvaluateBid = "evaluate_bid"
	// RpcReviewToken mints a signed token for a graded deal.
	RpcReviewToken = "review_token"

	// MatchNameBridge is the authoritative match handler name registered with Nakama.
	MatchNameBridge = "bridge_practice"
)

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpStartDeal      int64 = 1
	OpPlaceBid       int64 = 2
	OpRequestHint    int64 = 3
	OpRequestNewDeal int64 = 4

	// Server -> Client events
	OpPlayerJoined int64 = 101
	OpPlayerLeft   int64 = 102
	OpDealStarted  int64 = 103
	OpHandDealt    int64 = 104 // send privately
	OpBidPlaced    int64 = 105
	OpBidFeedback  int64 = 106 // send privately
	OpAuctionEnded int64 = 107
	OpHint         int64 = 108 // send privately

	OpTableError int64 = 111
)
