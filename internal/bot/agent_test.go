package bot

import (
	"testing"

	"bridgetutor/internal/domain"
)

func TestAgentCall(t *testing.T) {
	agent, err := NewAgent(BotIdentity{UserID: "bot-1", DisplayName: "Robot 1", Difficulty: "textbook"})
	if err != nil {
		t.Fatalf("NewAgent: %v", err)
	}

	deal := &domain.Deal{Dealer: domain.SeatNorth}
	deal.Hands[domain.SeatNorth] = testHand(t, "AKJ32", "K32", "Q32", "32")
	a := domain.NewAuction(domain.SeatNorth, domain.VulnNone)

	call, err := agent.Call(deal, a, domain.SeatNorth)
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if call.Bid != domain.NewBid(1, domain.StrainSpades) {
		t.Fatalf("call = %v, want 1S", call.Bid)
	}
}

func TestAgentCallWithoutDealPasses(t *testing.T) {
	agent, err := NewAgent(BotIdentity{UserID: "bot-1", Difficulty: "cautious"})
	if err != nil {
		t.Fatalf("NewAgent: %v", err)
	}
	call, err := agent.Call(nil, nil, domain.SeatNorth)
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if !call.Bid.IsPass() {
		t.Fatalf("call = %v, want Pass", call.Bid)
	}
}

func TestAgentNameFallsBackToUsername(t *testing.T) {
	agent, err := NewAgent(BotIdentity{UserID: "bot-2", Username: "robot_two"})
	if err != nil {
		t.Fatalf("NewAgent: %v", err)
	}
	if agent.Name != "robot_two" {
		t.Fatalf("name = %q, want the username fallback", agent.Name)
	}
}
