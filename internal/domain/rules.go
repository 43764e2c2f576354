package domain

import "errors"

// Legality reasons returned by CanPlayCard. The host surfaces these
// verbatim to the acting player.
var (
	ErrCardNotInHand       = errors.New("card not in hand")
	ErrMustFollowSuit      = errors.New("must follow the led suit")
	ErrHeartsNotBroken     = errors.New("hearts have not been broken")
	ErrNoPenaltyFirstTrick = errors.New("cannot play penalty cards on the first trick")
)

// CanPlayCard reports whether playing card from hand is legal given the
// trick in progress. A nil return means the play is legal.
func CanPlayCard(card Card, hand []Card, trick []TrickPlay, heartsBroken bool, firstTrick bool) error {
	if !ContainsCard(hand, card) {
		return ErrCardNotInHand
	}

	if firstTrick && IsPenaltyCard(card) && !onlyPenaltyCards(hand) {
		return ErrNoPenaltyFirstTrick
	}

	if len(trick) == 0 {
		// Leading: hearts stay closed until broken, unless that is all we hold.
		if card.Suit == SuitHearts && !heartsBroken && !onlySuit(hand, SuitHearts) {
			return ErrHeartsNotBroken
		}
		return nil
	}

	led := trick[0].Card.Suit
	if card.Suit != led && hasSuit(hand, led) {
		return ErrMustFollowSuit
	}
	return nil
}

// TrickWinner returns the index of the trick entry holding the highest
// rank of the led suit. Off-suit cards never win.
func TrickWinner(trick []TrickPlay) int {
	led := trick[0].Card.Suit
	winner := 0
	for i := 1; i < len(trick); i++ {
		c := trick[i].Card
		if c.Suit == led && c.Rank > trick[winner].Card.Rank {
			winner = i
		}
	}
	return winner
}

// IsPenaltyCard reports whether the card carries points.
func IsPenaltyCard(card Card) bool {
	return card.Suit == SuitHearts || card == QueenOfSpades
}

// CardPoints returns the penalty value of a card: 1 per heart, 13 for the
// Queen of Spades, 0 otherwise. Exactly 26 points exist per round.
func CardPoints(card Card) int {
	switch {
	case card == QueenOfSpades:
		return 13
	case card.Suit == SuitHearts:
		return 1
	default:
		return 0
	}
}

// TrickPoints sums the penalty value of all cards in a trick.
func TrickPoints(trick []TrickPlay) int {
	points := 0
	for _, play := range trick {
		points += CardPoints(play.Card)
	}
	return points
}

// ShouldBreakHearts reports the hearts-broken flag after a card is played.
// The flag is sticky for the remainder of the round.
func ShouldBreakHearts(card Card, heartsBroken bool) bool {
	return heartsBroken || card.Suit == SuitHearts
}

// CheckShootingTheMoon returns the seat that captured all 26 points this
// round, if exactly one seat did.
func CheckShootingTheMoon(roundScores [NumSeats]int) (int, bool) {
	for i, score := range roundScores {
		if score == TotalPenaltyPoints {
			return i, true
		}
	}
	return -1, false
}

// ApplyShootingTheMoon reassigns a moon shot: the shooter drops to 0 and
// every other seat takes 26.
func ApplyShootingTheMoon(roundScores [NumSeats]int, shooter int) [NumSeats]int {
	var out [NumSeats]int
	for i := range roundScores {
		if i == shooter {
			out[i] = 0
		} else {
			out[i] = roundScores[i] + TotalPenaltyPoints
		}
	}
	return out
}

// FindTwoOfClubsHolder returns the seat whose hand holds the 2 of clubs.
// Re-evaluated every round since passing may relocate the card.
func FindTwoOfClubsHolder(g *Game) int {
	for i := range g.Players {
		if ContainsCard(g.Players[i].Hand, TwoOfClubs) {
			return i
		}
	}
	return -1
}

// NextSeat returns the clockwise successor seat.
func NextSeat(seat int) int {
	return (seat + 1) % NumSeats
}

func hasSuit(hand []Card, suit Suit) bool {
	for _, c := range hand {
		if c.Suit == suit {
			return true
		}
	}
	return false
}

func onlySuit(hand []Card, suit Suit) bool {
	for _, c := range hand {
		if c.Suit != suit {
			return false
		}
	}
	return len(hand) > 0
}

func onlyPenaltyCards(hand []Card) bool {
	for _, c := range hand {
		if !IsPenaltyCard(c) {
			return false
		}
	}
	return len(hand) > 0
}
