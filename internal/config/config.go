package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// CoachConfig is the practice-table coaching configuration.
type CoachConfig struct {
	// DefaultProfile names the bot tuning profile used when a seat has none.
	DefaultProfile      string `json:"default_profile"`
	TurnDurationSeconds int    `json:"turn_duration_seconds"`
	// BotAutoFillDelaySeconds configures how many seconds to wait before seating bots at a solo human table.
	BotAutoFillDelaySeconds int `json:"bot_auto_fill_delay_seconds"`
	BotMinDelaySeconds      int `json:"bot_min_delay_seconds"`
	BotMaxDelaySeconds      int `json:"bot_max_delay_seconds"`
	// FeedbackEveryBid sends differential feedback after each human call
	// instead of only on request.
	FeedbackEveryBid bool `json:"feedback_every_bid"`
}

var (
	cfg      *CoachConfig
	loadOnce sync.Once
	loadErr  error
)

// LoadCoachConfig loads the coaching configuration from the given path.
func LoadCoachConfig(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read coach config: %w", err)
			return
		}

		var c CoachConfig
		if err := json.Unmarshal(data, &c); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal coach config: %w", err)
			return
		}
		cfg = &c
	})
	return loadErr
}

// GetCoachConfig returns the global coaching configuration.
func GetCoachConfig() *CoachConfig {
	return cfg
}

// GetProfile returns the requested tuning profile name, falling back to the
// configured default and finally to "textbook".
func GetProfile(name string) string {
	if name != "" {
		return name
	}
	if cfg != nil && cfg.DefaultProfile != "" {
		return cfg.DefaultProfile
	}
	return "textbook" // Safe default
}

// SendFeedbackEveryBid reports whether graded feedback follows every human
// call. On when no config is loaded.
func SendFeedbackEveryBid() bool {
	if cfg == nil {
		return true
	}
	return cfg.FeedbackEveryBid
}

// GetBotDelaySeconds returns the configured bot think-time band, or a
// 1..3 second default when no config is loaded.
func GetBotDelaySeconds() (min, max int) {
	if cfg == nil || cfg.BotMaxDelaySeconds <= 0 {
		return 1, 3
	}
	min, max = cfg.BotMinDelaySeconds, cfg.BotMaxDelaySeconds
	if min < 0 {
		min = 0
	}
	if max < min {
		max = min
	}
	return min, max
}
