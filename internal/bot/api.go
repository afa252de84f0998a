package bot

import (
	"bridgetutor/internal/domain"
	"bridgetutor/internal/engine"
)

// BotLevel selects a bidding temperament for a practice bot.
type BotLevel int

const (
	BotLevelCautious BotLevel = iota
	BotLevelTextbook
)

// Brain is the interface that all bot bidding strategies must implement.
type Brain interface {
	SuggestCall(hand domain.Hand, auction *domain.Auction, seat domain.Seat) (engine.FinalCall, error)
}
