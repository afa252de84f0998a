package bot

import (
	"fmt"

	"bridgetutor/internal/engine"
)

// LevelFromName maps an identity difficulty string onto a bot level.
// Unknown names get the textbook bot.
func LevelFromName(name string) BotLevel {
	switch name {
	case "cautious":
		return BotLevelCautious
	default:
		return BotLevelTextbook
	}
}

// NewBrain creates a new AI brain based on the specified level.
func NewBrain(level BotLevel) (Brain, error) {
	switch level {
	case BotLevelCautious:
		return &CautiousBot{eng: engine.New(engine.ConservativeTuning)}, nil
	case BotLevelTextbook:
		return &TextbookBot{eng: engine.New(engine.DefaultTuning)}, nil
	default:
		return nil, fmt.Errorf("unknown bot level: %d", level)
	}
}
