package internal

import "hearts/internal/domain"

// Weights tune the danger heuristics for a difficulty tier.
type Weights struct {
	QueenDanger      float64 // holding or discarding Q spades
	HighSpadeDanger  float64 // A/K of spades can be forced to catch the queen
	HeartBase        float64
	RankWeight       float64 // generic high-card pressure
	VoidBonus        float64 // passing from short suits to open voids
	MoonThreatPoints int     // points a sole taker needs before defense kicks in
	MoonHandStrength float64 // average rank needed to consider shooting
}

// Danger estimates how much trouble a card causes if kept. Used both for
// pass selection and for choosing a discard when void in the led suit.
func Danger(c domain.Card, w Weights) float64 {
	score := w.RankWeight * float64(c.Rank)
	switch {
	case c == domain.QueenOfSpades:
		score += w.QueenDanger
	case c.Suit == domain.SuitSpades && c.Rank > domain.RankQueen:
		score += w.HighSpadeDanger
	case c.Suit == domain.SuitHearts:
		score += w.HeartBase + float64(c.Rank)
	}
	return score
}

// PassScore ranks a card for passing: dangerous cards first, nudged by the
// chance of opening a void in a short suit.
func PassScore(c domain.Card, hand []domain.Card, w Weights) float64 {
	score := Danger(c, w)
	if length := SuitLength(hand, c.Suit); length > 0 && length <= 3 && c.Suit != domain.SuitHearts {
		score += w.VoidBonus / float64(length)
	}
	return score
}

// HandStrength is the average rank of a hand, a cheap proxy for control.
func HandStrength(hand []domain.Card) float64 {
	if len(hand) == 0 {
		return 0
	}
	sum := 0
	for _, c := range hand {
		sum += c.Rank
	}
	return float64(sum) / float64(len(hand))
}
