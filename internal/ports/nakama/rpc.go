package nakama

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/heroiclabs/nakama-common/runtime"

	"bridgetutor/internal/config"
	"bridgetutor/internal/engine"
)

// RegisterRPCs registers Nakama RPC endpoints.
func RegisterRPCs(initializer runtime.Initializer) error {
	if err := initializer.RegisterRpc(RpcQuickMatch, rpcQuickMatch); err != nil {
		return err
	}
	if err := initializer.RegisterRpc(RpcNextBid, rpcNextBid); err != nil {
		return err
	}
	if err := initializer.RegisterRpc(RpcEvaluateBid, rpcEvaluateBid); err != nil {
		return err
	}
	return initializer.RegisterRpc(RpcReviewToken, rpcReviewToken)
}

// engineForProfile maps a tuning profile name onto an engine instance.
func engineForProfile(name string) *engine.Engine {
	switch config.GetProfile(name) {
	case "cautious":
		return engine.New(engine.ConservativeTuning)
	default:
		return engine.New(engine.DefaultTuning)
	}
}

// rpcNextBid returns the engine's recommended call for an arbitrary
// position. Payload: BidRequest without the bid field.
func rpcNextBid(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	var req BidRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		return "", runtime.NewError("Invalid payload", 3) // INVALID_ARGUMENT
	}
	hand, auction, seat, err := parseBidRequest(req)
	if err != nil {
		return "", runtime.NewError(err.Error(), 3)
	}

	call, err := engineForProfile(req.Profile).NextBid(hand, auction, seat)
	if err != nil {
		logger.Warn("next_bid: %v", err)
		return "", runtime.NewError(err.Error(), 3)
	}

	b, err := json.Marshal(call)
	if err != nil {
		logger.Error("next_bid: failed to marshal response: %v", err)
		return "", runtime.NewError("Internal error", 13) // INTERNAL
	}
	return string(b), nil
}

// rpcEvaluateBid grades a submitted call. Payload: BidRequest with the bid
// field set.
func rpcEvaluateBid(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	var req BidRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		return "", runtime.NewError("Invalid payload", 3)
	}
	hand, auction, seat, err := parseBidRequest(req)
	if err != nil {
		return "", runtime.NewError(err.Error(), 3)
	}
	userBid, err := parseUserBid(req.Bid)
	if err != nil {
		return "", runtime.NewError(err.Error(), 3)
	}

	res, err := engineForProfile(req.Profile).EvaluateBid(hand, auction, seat, userBid)
	if err != nil {
		logger.Warn("evaluate_bid: %v", err)
		return "", runtime.NewError(err.Error(), 3)
	}

	b, err := json.Marshal(res)
	if err != nil {
		logger.Error("evaluate_bid: failed to marshal response: %v", err)
		return "", runtime.NewError("Internal error", 13)
	}
	return string(b), nil
}
