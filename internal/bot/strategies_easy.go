package bot

import (
	"math/rand"

	botinternal "hearts/internal/bot/internal"
	"hearts/internal/domain"
)

// EasyBot plays the cheapest legal card and dumps its most dangerous card
// whenever it is free to choose.
type EasyBot struct {
	rng *rand.Rand
}

func (b *EasyBot) ChoosePass(hand []domain.Card) []domain.Card {
	// Highest ranks out first, no further thought.
	return passByScore(hand, func(c domain.Card) float64 { return float64(c.Rank) })
}

func (b *EasyBot) ChoosePlay(g *domain.Game, seat int) (domain.Card, error) {
	legal := botinternal.LegalPlays(g, seat)
	if len(legal) == 0 {
		return domain.Card{}, ErrNoLegalPlay
	}

	// Void in the led suit: free choice, shed the biggest liability.
	if !botinternal.Leading(g) && !botinternal.FollowingSuit(legal[0], g.CurrentTrick) {
		return pickBy(legal, b.rng, func(c domain.Card) float64 {
			return botinternal.Danger(c, defaultTuning)
		}), nil
	}

	return pickLowestRank(legal, b.rng), nil
}
