package bot

import (
	"math/rand"

	"hearts/internal/domain"
)

// Agent is an autonomous player bound to one bot identity.
type Agent struct {
	ID         string
	Name       string
	Difficulty domain.Difficulty
	Strategy   Brain
}

// NewAgent builds an agent for a provisioned bot user ID, using the
// identity's configured difficulty.
func NewAgent(userID string, rng *rand.Rand) (*Agent, error) {
	identity, ok := GetBotConfig(userID)
	if !ok {
		identity = BotIdentity{UserID: userID, Difficulty: string(domain.DifficultyMedium)}
	}
	brain, err := NewBrain(DifficultyOf(identity), rng)
	if err != nil {
		return nil, err
	}
	return &Agent{
		ID:         userID,
		Name:       identity.DisplayName,
		Difficulty: DifficultyOf(identity),
		Strategy:   brain,
	}, nil
}

// ChoosePass selects the agent's pass submission for the given seat.
func (a *Agent) ChoosePass(g *domain.Game, seat int) []domain.Card {
	return a.Strategy.ChoosePass(g.Players[seat].Hand)
}

// ChoosePlay selects the agent's card for its current turn at seat.
func (a *Agent) ChoosePlay(g *domain.Game, seat int) (domain.Card, error) {
	return a.Strategy.ChoosePlay(g, seat)
}
