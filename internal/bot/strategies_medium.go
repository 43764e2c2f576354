package bot

import (
	"math/rand"

	botinternal "hearts/internal/bot/internal"
	"hearts/internal/domain"
)

// MediumBot adds penalty avoidance on top of the easy tier: it ducks
// tricks that carry points and opens voids with its pass selection.
type MediumBot struct {
	rng *rand.Rand
}

func (b *MediumBot) ChoosePass(hand []domain.Card) []domain.Card {
	return passByScore(hand, func(c domain.Card) float64 {
		return botinternal.PassScore(c, hand, defaultTuning)
	})
}

func (b *MediumBot) ChoosePlay(g *domain.Game, seat int) (domain.Card, error) {
	legal := botinternal.LegalPlays(g, seat)
	if len(legal) == 0 {
		return domain.Card{}, ErrNoLegalPlay
	}
	return b.choose(g, legal), nil
}

func (b *MediumBot) choose(g *domain.Game, legal []domain.Card) domain.Card {
	trick := g.CurrentTrick

	if botinternal.Leading(g) {
		// Lead low, preferring suits that cannot hurt us.
		return pickBy(legal, b.rng, func(c domain.Card) float64 {
			return -float64(c.Rank) - botinternal.Danger(c, defaultTuning)
		})
	}

	// Free choice when void: shed the queen and high hearts first.
	if !botinternal.FollowingSuit(legal[0], trick) {
		return pickBy(legal, b.rng, func(c domain.Card) float64 {
			return botinternal.Danger(c, defaultTuning)
		})
	}

	ducks := nonWinning(legal, trick)

	// Points on the table: stay under the current winner if possible,
	// burning the highest card that still ducks.
	if botinternal.TrickPointsSoFar(trick) > 0 && len(ducks) > 0 {
		return pickHighestRank(ducks, b.rng)
	}

	// Last to play on a clean trick: dump the biggest card for free.
	if len(trick) == domain.NumSeats-1 {
		if safe := cleanWinners(legal, trick); len(safe) > 0 {
			return pickHighestRank(safe, b.rng)
		}
		if len(ducks) > 0 {
			return pickHighestRank(ducks, b.rng)
		}
	}

	// Otherwise keep the trick cheap.
	if len(ducks) > 0 {
		return pickHighestRank(ducks, b.rng)
	}
	return pickLowestRank(legal, b.rng)
}

// cleanWinners are winning candidates on a trick with no points and no
// queen exposure for the winner.
func cleanWinners(legal []domain.Card, trick []domain.TrickPlay) []domain.Card {
	if botinternal.TrickPointsSoFar(trick) > 0 {
		return nil
	}
	var out []domain.Card
	for _, c := range winning(legal, trick) {
		if c != domain.QueenOfSpades {
			out = append(out, c)
		}
	}
	return out
}
