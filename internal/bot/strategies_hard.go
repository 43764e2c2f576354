package bot

import (
	botinternal "hearts/internal/bot/internal"
	"hearts/internal/domain"
)

// HardBot layers card counting and moon-shot play over the medium tier:
// it tracks what has been played, protects a guarded queen, chases a moon
// when its hand can carry one and spends a trick to break up an
// opponent's attempt.
type HardBot struct {
	MediumBot
}

func (b *HardBot) ChoosePass(hand []domain.Card) []domain.Card {
	// A strong hand with long hearts keeps its high cards and ships the
	// low ones: moon attempt.
	if botinternal.HandStrength(hand) >= hardTuning.MoonHandStrength &&
		botinternal.SuitLength(hand, domain.SuitHearts) >= 4 {
		return passByScore(hand, func(c domain.Card) float64 { return -float64(c.Rank) })
	}

	return passByScore(hand, func(c domain.Card) float64 {
		score := botinternal.PassScore(c, hand, hardTuning)
		// A queen guarded by three or more spades is safer kept than
		// passed to a rival: strip its rank pressure too, so it falls
		// below every ordinary liability.
		if c == domain.QueenOfSpades && botinternal.SuitLength(hand, domain.SuitSpades) >= 4 {
			score -= hardTuning.QueenDanger + hardTuning.RankWeight*float64(c.Rank)
		}
		return score
	})
}

func (b *HardBot) ChoosePlay(g *domain.Game, seat int) (domain.Card, error) {
	legal := botinternal.LegalPlays(g, seat)
	if len(legal) == 0 {
		return domain.Card{}, ErrNoLegalPlay
	}

	stats := botinternal.Analyze(g, seat)

	// Moon defense: a sole taker nearing a full sweep must be handed at
	// least one point, so take a point trick while it is still small.
	if stats.SoleTaker >= 0 && stats.SoleTaker != seat &&
		g.RoundScores[stats.SoleTaker] >= hardTuning.MoonThreatPoints &&
		botinternal.TrickPointsSoFar(g.CurrentTrick) > 0 {
		if winners := winning(legal, g.CurrentTrick); len(winners) > 0 {
			return pickLowestRank(winners, b.rng), nil
		}
	}

	// Moon pursuit: if we hold every point so far and the hand still
	// dominates the unseen cards, keep taking tricks.
	if (stats.SoleTaker == seat || stats.PointsOut == 0) &&
		botinternal.HandStrength(g.Players[seat].Hand) >= hardTuning.MoonHandStrength {
		if botinternal.Leading(g) {
			return pickHighestRank(legal, b.rng), nil
		}
		if winners := winning(legal, g.CurrentTrick); len(winners) > 0 {
			return pickHighestRank(winners, b.rng), nil
		}
	}

	// Queen awareness: while the queen is live, never climb above it in
	// spades if a lower spade can be played instead.
	if !stats.QueenPlayed && !botinternal.Leading(g) &&
		g.CurrentTrick[0].Card.Suit == domain.SuitSpades &&
		botinternal.FollowingSuit(legal[0], g.CurrentTrick) {
		if lows := underQueenSpades(legal); len(lows) > 0 {
			return pickHighestRank(lows, b.rng), nil
		}
	}

	// Counting-aware lead: a card the table can still beat hands the
	// trick away, while the top card left in its suit is stuck winning.
	if botinternal.Leading(g) {
		if beatable := beatableLeads(legal, stats.HighestUnseen); len(beatable) > 0 {
			return b.choose(g, beatable), nil
		}
	}

	return b.choose(g, legal), nil
}

// beatableLeads keeps the candidates whose suit still has a higher card
// unseen.
func beatableLeads(cards []domain.Card, highestUnseen map[domain.Suit]int) []domain.Card {
	var out []domain.Card
	for _, c := range cards {
		if highestUnseen[c.Suit] > c.Rank {
			out = append(out, c)
		}
	}
	return out
}

func underQueenSpades(cards []domain.Card) []domain.Card {
	var out []domain.Card
	for _, c := range cards {
		if c.Suit == domain.SuitSpades && c.Rank < domain.RankQueen {
			out = append(out, c)
		}
	}
	return out
}
