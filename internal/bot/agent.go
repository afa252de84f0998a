package bot

import (
	"bridgetutor/internal/domain"
	"bridgetutor/internal/engine"
)

// Agent represents an autonomous bot player occupying one seat.
type Agent struct {
	ID       string
	Name     string
	Strategy Brain
}

// NewAgent builds an agent from a provisioned identity.
func NewAgent(identity BotIdentity) (*Agent, error) {
	brain, err := NewBrain(LevelFromName(identity.Difficulty))
	if err != nil {
		return nil, err
	}
	name := identity.DisplayName
	if name == "" {
		name = identity.Username
	}
	return &Agent{ID: identity.UserID, Name: name, Strategy: brain}, nil
}

// Call asks the agent for its bid at the given seat. On any strategy error
// the agent passes so the table never stalls.
func (a *Agent) Call(deal *domain.Deal, auction *domain.Auction, seat domain.Seat) (engine.FinalCall, error) {
	if deal == nil || auction == nil {
		return passCall(), nil
	}
	call, err := a.Strategy.SuggestCall(deal.HandFor(seat), auction, seat)
	if err != nil {
		return passCall(), err
	}
	return call, nil
}

func passCall() engine.FinalCall {
	return engine.FinalCall{Bid: domain.Pass(), Explanation: "pass"}
}
