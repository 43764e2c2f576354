package internal

import "hearts/internal/domain"

// RoundStats is the card-counting view a seat can honestly derive from
// the state document: what is still hidden from it, plus where the
// round's points have gone.
type RoundStats struct {
	QueenPlayed   bool                // Q spades already surfaced
	HighestUnseen map[domain.Suit]int // top rank the seat has not seen, per suit (0 when none)
	SoleTaker     int                 // only seat holding round points so far, -1 if none or split
	PointsOut     int                 // penalty points already captured
}

// Analyze builds the counting view for a seat. A card is unseen only if
// it sits hidden in another hand; captured cards and cards lying in the
// open trick are visible.
func Analyze(g *domain.Game, seat int) RoundStats {
	stats := RoundStats{
		HighestUnseen: make(map[domain.Suit]int, 4),
		SoleTaker:     -1,
	}

	inHands := make(map[domain.Card]bool, 52)
	for i := range g.Players {
		for _, c := range g.Players[i].Hand {
			inHands[c] = true
		}
	}
	own := make(map[domain.Card]bool, len(g.Players[seat].Hand))
	for _, c := range g.Players[seat].Hand {
		own[c] = true
	}

	for _, c := range domain.NewDeck() {
		if !inHands[c] {
			// Captured in an earlier trick or lying in the open one.
			if c == domain.QueenOfSpades {
				stats.QueenPlayed = true
			}
			continue
		}
		if own[c] {
			continue
		}
		if c.Rank > stats.HighestUnseen[c.Suit] {
			stats.HighestUnseen[c.Suit] = c.Rank
		}
	}

	for i, score := range g.RoundScores {
		stats.PointsOut += score
		if score > 0 {
			if stats.SoleTaker == -1 {
				stats.SoleTaker = i
			} else {
				stats.SoleTaker = -2 // points are split, nobody can shoot
			}
		}
	}
	if stats.SoleTaker == -2 {
		stats.SoleTaker = -1
	}

	return stats
}

// SuitLength counts cards of a suit in a hand.
func SuitLength(hand []domain.Card, suit domain.Suit) int {
	n := 0
	for _, c := range hand {
		if c.Suit == suit {
			n++
		}
	}
	return n
}
