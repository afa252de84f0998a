package bot

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadIdentities(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bots.json")
	body := `[
		{"device_id": "dev-1", "user_id": "bot-a", "username": "bot_a", "display_name": "Ada", "difficulty": "textbook"},
		{"device_id": "dev-2", "user_id": "bot-b", "username": "bot_b", "display_name": "Bea", "difficulty": "cautious"}
	]`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write identities: %v", err)
	}

	if err := LoadIdentities(path); err != nil {
		t.Fatalf("LoadIdentities: %v", err)
	}

	if !IsBot("bot-a") || !IsBot("bot-b") {
		t.Fatalf("loaded bots not recognised")
	}
	if IsBot("human-1") {
		t.Fatalf("human recognised as bot")
	}

	cfg, ok := GetBotConfig("bot-b")
	if !ok || cfg.Difficulty != "cautious" || cfg.DisplayName != "Bea" {
		t.Fatalf("GetBotConfig(bot-b) = %+v, %v", cfg, ok)
	}

	if got := GetBotIdentity(2); got.UserID != "bot-a" {
		t.Fatalf("GetBotIdentity(2) = %+v, want the pool to wrap", got)
	}

	ids := GetAllBotIDs()
	if len(ids) != 2 {
		t.Fatalf("GetAllBotIDs returned %d ids, want 2", len(ids))
	}
}
