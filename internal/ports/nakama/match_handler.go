package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"math/rand"
	"strconv"

	"github.com/heroiclabs/nakama-common/runtime"

	"bridgetutor/internal/app"
	"bridgetutor/internal/bot"
	"bridgetutor/internal/config"
	"bridgetutor/internal/domain"
)

// Table phases exposed through the match label.
const (
	PhaseLobby   = "lobby"
	PhaseBidding = "bidding"
	PhaseEnded   = "ended"
)

// Label is the JSON match label used by quick-match queries.
type Label struct {
	Open  bool   `json:"open"`
	Game  string `json:"game"`
	Phase string `json:"phase"`
}

// MatchState holds the authoritative runtime state for one practice table.
type MatchState struct {
	Seats     [4]string `json:"seats"`      // user IDs in seat order North..West, "" means empty
	OwnerSeat int       `json:"owner_seat"` // seat index of the table owner
	DealCount int       `json:"deal_count"` // boards dealt so far; drives dealer/vulnerability rotation
	Tick      int64     `json:"tick"`

	Presences map[string]runtime.Presence `json:"-"`
	App       *app.Service                `json:"-"`
	Session   *app.Session                `json:"-"` // nil while in the lobby

	BotsEnabled      bool                  `json:"bots_enabled"`
	BotMinDelay      int                   `json:"bot_min_delay"`
	BotMaxDelay      int                   `json:"bot_max_delay"`
	BotAutoFillDelay int                   `json:"bot_auto_fill_delay"`
	BotWaitUntil     int64                 `json:"bot_wait_until"`
	LastSoloTick     int64                 `json:"last_solo_tick"` // tick when a solo human started waiting
	Bots             map[string]*bot.Agent `json:"-"`
}

func (ms *MatchState) GetOpenSeatsCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat == "" {
			count++
		}
	}
	return count
}

func (ms *MatchState) GetHumanPlayerCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat != "" && !isBotUserId(seat) {
			count++
		}
	}
	return count
}

// Phase derives the table phase from the session state.
func (ms *MatchState) Phase() string {
	switch {
	case ms.Session == nil:
		return PhaseLobby
	case ms.Session.Auction.IsComplete():
		return PhaseEnded
	default:
		return PhaseBidding
	}
}

// Joinable reports whether a human can still take a seat: an empty seat, or
// a bot seat to displace while no deal is in progress.
func (ms *MatchState) Joinable() bool {
	if ms.GetOpenSeatsCount() > 0 {
		return true
	}
	if ms.Phase() != PhaseLobby {
		return false
	}
	for _, seat := range ms.Seats {
		if isBotUserId(seat) {
			return true
		}
	}
	return false
}

// isBotUserId reports whether the given user id represents a bot seat.
func isBotUserId(userId string) bool {
	return bot.IsBot(userId)
}

// isHumanSeat reports whether the seat index belongs to a human player.
func isHumanSeat(seats []string, seatIndex int) bool {
	if seatIndex < 0 || seatIndex >= len(seats) {
		return false
	}
	userId := seats[seatIndex]
	return userId != "" && !isBotUserId(userId)
}

// findFirstHumanSeat returns the first seat index with a human occupant or -1 if none exist.
func findFirstHumanSeat(seats []string) int {
	for i, userId := range seats {
		if userId != "" && !isBotUserId(userId) {
			return i
		}
	}
	return -1
}

// shouldTerminateNoHumans returns true when there are no humans at the table.
func shouldTerminateNoHumans(seats []string) bool {
	return findFirstHumanSeat(seats) == -1
}

func seatOf(seats [4]string, userID string) int {
	for i, id := range seats {
		if id == userID {
			return i
		}
	}
	return -1
}

type matchHandler struct{}

func newMatchHandler() *matchHandler { return &matchHandler{} }

// MatchInit is called when the match is created.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	logger.Debug("MatchInit: initializing practice table.")

	if err := bot.LoadIdentities("data/bot_identities.json"); err != nil {
		logger.Warn("MatchInit: could not load bot identities: %v", err)
	}
	if err := config.LoadCoachConfig("data/coach_config.json"); err != nil {
		logger.Warn("MatchInit: could not load coach config: %v", err)
	}

	state := &MatchState{
		Presences: make(map[string]runtime.Presence),
		App:       app.NewService(nil, nil),
		OwnerSeat: -1,
		Bots:      make(map[string]*bot.Agent),
	}

	// Practicing against bots is the point of the table; env can still turn
	// them off for multi-human setups.
	state.BotsEnabled = true
	state.BotMinDelay, state.BotMaxDelay = config.GetBotDelaySeconds()
	state.BotAutoFillDelay = 5
	if cfg := config.GetCoachConfig(); cfg != nil && cfg.BotAutoFillDelaySeconds > 0 {
		state.BotAutoFillDelay = cfg.BotAutoFillDelaySeconds
	}

	if env, ok := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string); ok {
		if val, ok := env["bridge_bots_enabled"]; ok {
			state.BotsEnabled = val == "true"
		}
		if val, ok := env["bridge_bot_min_delay_sec"]; ok {
			if i, err := strconv.Atoi(val); err == nil {
				state.BotMinDelay = i
			}
		}
		if val, ok := env["bridge_bot_max_delay_sec"]; ok {
			if i, err := strconv.Atoi(val); err == nil {
				state.BotMaxDelay = i
			}
		}
		if val, ok := env["bridge_bot_auto_fill_delay_sec"]; ok {
			if i, err := strconv.Atoi(val); err == nil {
				state.BotAutoFillDelay = i
			}
		}
	}
	if state.BotMaxDelay < state.BotMinDelay {
		state.BotMaxDelay = state.BotMinDelay
	}

	labelBytes, err := json.Marshal(Label{Open: true, Game: "bridge", Phase: PhaseLobby})
	if err != nil {
		logger.Error("MatchInit: failed to marshal label: %v", err)
		return nil, 0, ""
	}

	tickRate := 1
	return state, tickRate, string(labelBytes)
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}
	if !matchState.Joinable() {
		return state, false, "Table full"
	}
	return state, true, ""
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		matchState.Presences[p.GetUserId()] = p

		assigned := -1
		for i, seatUserId := range matchState.Seats {
			if seatUserId == "" {
				matchState.Seats[i] = p.GetUserId()
				assigned = i
				break
			}
		}
		if assigned < 0 && matchState.Phase() == PhaseLobby {
			for i, seatUserId := range matchState.Seats {
				if isBotUserId(seatUserId) {
					logger.Info("MatchJoin: replacing bot %s with human %s in seat %d", seatUserId, p.GetUserId(), i)
					delete(matchState.Bots, seatUserId)
					matchState.Seats[i] = p.GetUserId()
					assigned = i
					break
				}
			}
		}
		if assigned < 0 {
			logger.Warn("MatchJoin: user %s joined but no seat was available.", p.GetUserId())
			continue
		}

		mh.broadcastEvent(matchState, dispatcher, logger, app.Event{
			Kind: app.EventPlayerJoined,
			Payload: app.PlayerJoinedPayload{
				UserID: p.GetUserId(),
				Seat:   domain.Seat(assigned).String(),
				Owner:  false, // owner assignment is announced through the label
			},
		})
	}

	// The owner seat must belong to a human.
	if !isHumanSeat(matchState.Seats[:], matchState.OwnerSeat) {
		matchState.OwnerSeat = findFirstHumanSeat(matchState.Seats[:])
		if matchState.OwnerSeat >= 0 {
			logger.Debug("MatchJoin: owner set to human seat %d.", matchState.OwnerSeat)
		}
	}

	mh.updateLabel(matchState, dispatcher, logger)
	return matchState
}

// MatchLeave is called when one or more players leave the match.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		delete(matchState.Presences, p.GetUserId())

		if i := seatOf(matchState.Seats, p.GetUserId()); i >= 0 {
			matchState.Seats[i] = ""
			logger.Debug("MatchLeave: user %s left, seat %d freed.", p.GetUserId(), i)
			mh.broadcastEvent(matchState, dispatcher, logger, app.Event{
				Kind:    app.EventPlayerLeft,
				Payload: app.PlayerLeftPayload{UserID: p.GetUserId(), Seat: domain.Seat(i).String()},
			})
		}
	}

	matchState.OwnerSeat = findFirstHumanSeat(matchState.Seats[:])

	if shouldTerminateNoHumans(matchState.Seats[:]) {
		logger.Info("MatchLeave: terminating table with no humans.")
		return nil
	}

	mh.updateLabel(matchState, dispatcher, logger)
	return matchState
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	matchState.Tick = tick

	for _, msg := range messages {
		switch msg.GetOpCode() {
		case OpStartDeal, OpRequestNewDeal:
			mh.handleStartDeal(matchState, dispatcher, logger, msg.GetUserId())
		case OpPlaceBid:
			mh.handlePlaceBid(matchState, dispatcher, logger, msg.GetUserId(), msg.GetData())
		case OpRequestHint:
			mh.handleHint(matchState, dispatcher, logger, msg.GetUserId())
		default:
			logger.Warn("MatchLoop: unknown opcode received: %d", msg.GetOpCode())
		}
	}

	if matchState.BotsEnabled {
		mh.processBots(matchState, dispatcher, logger)
	}

	return matchState
}

// handleStartDeal deals the next board. Only the owner may start; empty
// seats are filled with bots when they are enabled.
func (mh *matchHandler) handleStartDeal(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, senderID string) {
	senderSeat := seatOf(state.Seats, senderID)
	if senderSeat != state.OwnerSeat {
		logger.Warn("StartDeal: user %s tried to deal but is not owner (owner_seat=%d)", senderID, state.OwnerSeat)
		mh.sendError(state, dispatcher, logger, senderID, 403, "only the table owner can deal")
		return
	}
	if state.Phase() == PhaseBidding {
		logger.Warn("StartDeal: a deal is already being bid.")
		mh.sendError(state, dispatcher, logger, senderID, 400, "auction in progress")
		return
	}
	if state.GetHumanPlayerCount() < app.MinHumansToDeal {
		logger.Warn("StartDeal: cannot deal without a human at the table.")
		return
	}

	if state.GetOpenSeatsCount() > 0 {
		if !state.BotsEnabled {
			mh.sendError(state, dispatcher, logger, senderID, 400, "table is not full")
			return
		}
		mh.fillSeatsWithBots(state, dispatcher, logger)
	}

	state.DealCount++
	sess, events, err := state.App.StartDeal(state.DealCount, state.Seats)
	if err != nil {
		logger.Error("StartDeal: failed to deal: %v", err)
		state.DealCount--
		return
	}
	state.Session = sess
	state.BotWaitUntil = 0

	mh.updateLabel(state, dispatcher, logger)
	for _, ev := range events {
		mh.broadcastEvent(state, dispatcher, logger, ev)
	}
	logger.Info("StartDeal: board %d dealt, %v to speak.", state.DealCount, sess.Deal.Dealer)
}

func (mh *matchHandler) handlePlaceBid(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, senderID string, data []byte) {
	senderSeat := seatOf(state.Seats, senderID)
	if senderSeat < 0 {
		logger.Warn("handlePlaceBid: user %s has no seat.", senderID)
		return
	}
	if state.Phase() != PhaseBidding {
		mh.sendError(state, dispatcher, logger, senderID, 400, "no auction in progress")
		return
	}

	var req struct {
		Bid string `json:"bid"`
	}
	if err := json.Unmarshal(data, &req); err != nil {
		logger.Warn("handlePlaceBid: invalid payload from %s: %v", senderID, err)
		mh.sendError(state, dispatcher, logger, senderID, 400, "invalid payload")
		return
	}
	bid, err := domain.ParseBid(req.Bid)
	if err != nil {
		mh.sendError(state, dispatcher, logger, senderID, 400, err.Error())
		return
	}

	seat := domain.Seat(senderSeat)

	// Grade before recording so the learner sees feedback on the position
	// they actually faced.
	if config.SendFeedbackEveryBid() {
		if res, err := state.App.Grade(state.Session, seat, bid); err == nil {
			mh.broadcastEvent(state, dispatcher, logger, app.Event{
				Kind:       app.EventBidFeedback,
				Payload:    app.BidFeedbackPayload{Seat: seat.String(), Result: res},
				Recipients: []string{senderID},
			})
		} else {
			logger.Warn("handlePlaceBid: grading failed for %s: %v", senderID, err)
		}
	}

	events, err := state.App.PlaceBid(state.Session, seat, bid, "")
	if err != nil {
		logger.Warn("handlePlaceBid: user %s (seat %d) rejected: %v", senderID, senderSeat, err)
		mh.sendError(state, dispatcher, logger, senderID, 400, err.Error())
		return
	}

	for _, ev := range events {
		mh.broadcastEvent(state, dispatcher, logger, ev)
	}
	if state.Phase() == PhaseEnded {
		mh.updateLabel(state, dispatcher, logger)
	}
}

// handleHint sends the engine's recommended call privately to the
// requesting player.
func (mh *matchHandler) handleHint(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, senderID string) {
	senderSeat := seatOf(state.Seats, senderID)
	if senderSeat < 0 || state.Phase() != PhaseBidding {
		mh.sendError(state, dispatcher, logger, senderID, 400, "no auction in progress")
		return
	}

	call, err := state.App.Recommend(state.Session, domain.Seat(senderSeat))
	if err != nil {
		mh.sendError(state, dispatcher, logger, senderID, 400, err.Error())
		return
	}

	bytes, err := json.Marshal(call)
	if err != nil {
		logger.Error("handleHint: failed to marshal hint: %v", err)
		return
	}
	presence, ok := state.Presences[senderID]
	if !ok {
		return
	}
	dispatcher.BroadcastMessage(OpHint, bytes, []runtime.Presence{presence}, nil, true)
}

func (mh *matchHandler) fillSeatsWithBots(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	added := false
	for i, seat := range state.Seats {
		if seat != "" {
			continue
		}
		identity := bot.GetBotIdentity(i)
		agent, err := bot.NewAgent(identity)
		if err != nil {
			logger.Error("fillSeatsWithBots: failed to create agent for %s: %v", identity.UserID, err)
			continue
		}
		state.Seats[i] = identity.UserID
		state.Bots[identity.UserID] = agent
		logger.Info("fillSeatsWithBots: added bot %s (%s) to seat %d", identity.DisplayName, identity.UserID, i)
		added = true
	}
	if added {
		mh.updateLabel(state, dispatcher, logger)
	}
}

func (mh *matchHandler) processBots(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	// Auto-fill the lobby once a solo human has waited long enough.
	if state.Phase() == PhaseLobby {
		if state.GetHumanPlayerCount() == 1 && state.GetOpenSeatsCount() > 0 {
			if state.LastSoloTick == 0 {
				state.LastSoloTick = state.Tick
				logger.Debug("processBots: solo human detected, starting auto-fill timer.")
			}
			if state.Tick-state.LastSoloTick >= int64(state.BotAutoFillDelay) {
				mh.fillSeatsWithBots(state, dispatcher, logger)
				state.LastSoloTick = 0
			}
		} else {
			state.LastSoloTick = 0
		}
		return
	}

	if state.Phase() != PhaseBidding {
		return
	}

	turn := state.Session.Auction.CurrentTurn()
	currentUserID := state.Seats[turn]
	if !isBotUserId(currentUserID) {
		state.BotWaitUntil = 0
		return
	}

	if state.BotWaitUntil == 0 {
		delay := rand.Intn(state.BotMaxDelay-state.BotMinDelay+1) + state.BotMinDelay
		state.BotWaitUntil = state.Tick + int64(delay)
		logger.Debug("processBots: bot %s (seat %d) will act at tick %d", currentUserID, turn, state.BotWaitUntil)
		return
	}
	if state.Tick < state.BotWaitUntil {
		return
	}
	state.BotWaitUntil = 0

	agent, exists := state.Bots[currentUserID]
	if !exists {
		identity, ok := bot.GetBotConfig(currentUserID)
		if !ok {
			identity = bot.BotIdentity{UserID: currentUserID}
		}
		var err error
		agent, err = bot.NewAgent(identity)
		if err != nil {
			logger.Error("processBots: failed to create fallback agent: %v", err)
			return
		}
		state.Bots[currentUserID] = agent
	}

	call, err := agent.Call(state.Session.Deal, state.Session.Auction, turn)
	if err != nil {
		logger.Error("processBots: bot %s failed to choose a call: %v", currentUserID, err)
		// The agent already fell back to Pass; keep the table moving.
	}

	events, err := state.App.PlaceBid(state.Session, turn, call.Bid, call.Explanation)
	if err != nil {
		logger.Error("processBots: bot %s call %v rejected: %v", currentUserID, call.Bid, err)
		return
	}
	for _, ev := range events {
		mh.broadcastEvent(state, dispatcher, logger, ev)
	}
	if state.Phase() == PhaseEnded {
		mh.updateLabel(state, dispatcher, logger)
	}
}

// broadcastEvent converts an app event to its opcode and dispatches it.
func (mh *matchHandler) broadcastEvent(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, ev app.Event) {
	var opCode int64
	switch ev.Kind {
	case app.EventPlayerJoined:
		opCode = OpPlayerJoined
	case app.EventPlayerLeft:
		opCode = OpPlayerLeft
	case app.EventDealStarted:
		opCode = OpDealStarted
	case app.EventHandDealt:
		opCode = OpHandDealt
	case app.EventBidPlaced:
		opCode = OpBidPlaced
	case app.EventBidFeedback:
		opCode = OpBidFeedback
	case app.EventAuctionEnded:
		opCode = OpAuctionEnded
	default:
		logger.Warn("Unknown event kind: %v", ev.Kind)
		return
	}

	bytes, err := json.Marshal(ev.Payload)
	if err != nil {
		logger.Error("Failed to marshal event %v: %v", ev.Kind, err)
		return
	}

	// Determine recipients (default to broadcast).
	var recipients []runtime.Presence
	if len(ev.Recipients) > 0 {
		for _, uid := range ev.Recipients {
			if p, ok := state.Presences[uid]; ok {
				recipients = append(recipients, p)
			}
		}

		// If we had intended recipients but none are connected (e.g. they
		// are bots), we MUST NOT broadcast to everyone else.
		if len(recipients) == 0 {
			return
		}
	}

	dispatcher.BroadcastMessage(opCode, bytes, recipients, nil, true)
}

// sendError sends a table error to a specific user.
func (mh *matchHandler) sendError(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, code int, message string) {
	payload := struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}{Code: code, Message: message}
	bytes, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Failed to marshal table error: %v", err)
		return
	}

	presence, ok := state.Presences[userID]
	if !ok {
		logger.Warn("Cannot send error to %s: presence not found", userID)
		return
	}
	dispatcher.BroadcastMessage(OpTableError, bytes, []runtime.Presence{presence}, nil, true)
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	labelBytes, err := json.Marshal(Label{
		Open:  state.Joinable(),
		Game:  "bridge",
		Phase: state.Phase(),
	})
	if err != nil {
		logger.Error("UpdateLabel: failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(string(labelBytes)); err != nil {
		logger.Error("UpdateLabel: failed to update: %v", err)
	}
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, reason int) interface{} {
	logger.Debug("MatchTerminate: table closed for reason %d", reason)
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}
