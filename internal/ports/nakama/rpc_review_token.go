package nakama

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/heroiclabs/nakama-common/runtime"

	"bridgetutor/internal/app"
	"bridgetutor/internal/engine"
)

// rpcReviewToken mints a signed token the review UI uses to verify a graded
// deal. Payload: {"deal_id": "...", "seat": "South", "rating": "optimal",
// "score": 100}.
func rpcReviewToken(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)
	if userID == "" {
		return "", runtime.NewError("User required", 16) // UNAUTHENTICATED
	}

	var req struct {
		DealID string  `json:"deal_id"`
		Seat   string  `json:"seat"`
		Rating string  `json:"rating"`
		Score  float64 `json:"score"`
	}
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		return "", runtime.NewError("Invalid payload", 3) // INVALID_ARGUMENT
	}

	seat, err := parseSeat(req.Seat)
	if err != nil {
		return "", runtime.NewError(err.Error(), 3)
	}

	// Environment variables for the signing credentials.
	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	secret := env["review_secret"]
	issuer := env["review_issuer"]
	if secret == "" || issuer == "" {
		secret = "test-secret"
		issuer = "test-issuer"
		logger.Warn("Review credentials missing from env, using test defaults.")
	}

	svc := app.NewReviewService(secret, issuer)
	token, err := svc.GenerateToken(userID, req.DealID, seat, engine.Rating(req.Rating), req.Score)
	if err != nil {
		return "", runtime.NewError(err.Error(), 3)
	}

	res := map[string]string{"token": token}
	b, _ := json.Marshal(res)
	return string(b), nil
}
