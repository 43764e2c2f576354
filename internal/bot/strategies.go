package bot

import (
	"errors"
	"math/rand"
	"sort"

	botinternal "hearts/internal/bot/internal"
	"hearts/internal/domain"
)

// ErrNoLegalPlay is returned when a seat has no playable card, which only
// happens if the brain is asked to act outside its turn.
var ErrNoLegalPlay = errors.New("no legal card to play")

// pickBy returns the candidate with the highest score, breaking ties with
// the rng so equally ranked plays vary between games.
func pickBy(cards []domain.Card, rng *rand.Rand, score func(domain.Card) float64) domain.Card {
	best := []domain.Card{cards[0]}
	bestScore := score(cards[0])
	for _, c := range cards[1:] {
		s := score(c)
		switch {
		case s > bestScore:
			best = best[:0]
			best = append(best, c)
			bestScore = s
		case s == bestScore:
			best = append(best, c)
		}
	}
	return best[rng.Intn(len(best))]
}

func pickLowestRank(cards []domain.Card, rng *rand.Rand) domain.Card {
	return pickBy(cards, rng, func(c domain.Card) float64 { return -float64(c.Rank) })
}

func pickHighestRank(cards []domain.Card, rng *rand.Rand) domain.Card {
	return pickBy(cards, rng, func(c domain.Card) float64 { return float64(c.Rank) })
}

// passByScore returns the three top-scoring cards of a hand.
func passByScore(hand []domain.Card, score func(domain.Card) float64) []domain.Card {
	ranked := append([]domain.Card(nil), hand...)
	sort.SliceStable(ranked, func(i, j int) bool { return score(ranked[i]) > score(ranked[j]) })
	return ranked[:domain.CardsPerPass]
}

// nonWinning filters the candidates that would not take the trick as it
// stands.
func nonWinning(cards []domain.Card, trick []domain.TrickPlay) []domain.Card {
	var out []domain.Card
	for _, c := range cards {
		if !botinternal.WouldWin(c, trick) {
			out = append(out, c)
		}
	}
	return out
}

func winning(cards []domain.Card, trick []domain.TrickPlay) []domain.Card {
	var out []domain.Card
	for _, c := range cards {
		if botinternal.WouldWin(c, trick) {
			out = append(out, c)
		}
	}
	return out
}
