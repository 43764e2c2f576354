package internal

import "hearts/internal/domain"

// LegalPlays enumerates every card the seat may legally play on its
// current turn. All strategy tiers choose from this set and never bypass
// it.
func LegalPlays(g *domain.Game, seat int) []domain.Card {
	hand := g.Players[seat].Hand
	firstTrick := g.TrickNumber == 0
	var legal []domain.Card
	for _, c := range hand {
		if domain.CanPlayCard(c, hand, g.CurrentTrick, g.HeartsBroken, firstTrick) == nil {
			legal = append(legal, c)
		}
	}
	return legal
}

// Leading reports whether the seat would open the trick.
func Leading(g *domain.Game) bool {
	return len(g.CurrentTrick) == 0
}

// FollowingSuit reports whether a card follows the trick's led suit.
func FollowingSuit(c domain.Card, trick []domain.TrickPlay) bool {
	return len(trick) > 0 && c.Suit == trick[0].Card.Suit
}

// CurrentWinner returns the trick entry currently winning.
func CurrentWinner(trick []domain.TrickPlay) domain.TrickPlay {
	return trick[domain.TrickWinner(trick)]
}

// WouldWin reports whether playing c now would take the trick as it
// stands. Off-suit cards never win; a lead always starts as the winner.
func WouldWin(c domain.Card, trick []domain.TrickPlay) bool {
	if len(trick) == 0 {
		return true
	}
	if !FollowingSuit(c, trick) {
		return false
	}
	return c.Rank > CurrentWinner(trick).Card.Rank
}

// TrickPointsSoFar is the penalty value sitting in the open trick.
func TrickPointsSoFar(trick []domain.TrickPlay) int {
	return domain.TrickPoints(trick)
}
