package bot

import (
	"math/rand"
	"time"

	"hearts/internal/domain"
)

// Brain is the interface all AI difficulty tiers implement. Every tier
// chooses from the same legal-move set; difficulty only changes how the
// candidates are ranked.
type Brain interface {
	// ChoosePass selects exactly 3 cards to submit during the passing phase.
	ChoosePass(hand []domain.Card) []domain.Card
	// ChoosePlay selects one legal card for the seat's current turn.
	ChoosePlay(g *domain.Game, seat int) (domain.Card, error)
}

// ChooseCardsToPass picks a pass selection for an AI seat at the given
// difficulty.
func ChooseCardsToPass(hand []domain.Card, difficulty domain.Difficulty, rng *rand.Rand) ([]domain.Card, error) {
	brain, err := NewBrain(difficulty, rng)
	if err != nil {
		return nil, err
	}
	return brain.ChoosePass(hand), nil
}

// ChooseCard picks one legal card for an AI seat at the given difficulty.
func ChooseCard(g *domain.Game, seat int, difficulty domain.Difficulty, rng *rand.Rand) (domain.Card, error) {
	brain, err := NewBrain(difficulty, rng)
	if err != nil {
		return domain.Card{}, err
	}
	return brain.ChoosePlay(g, seat)
}

func defaultRNG(rng *rand.Rand) *rand.Rand {
	if rng != nil {
		return rng
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}
