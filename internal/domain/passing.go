package domain

import "errors"

// Pass validation and phase errors. Messages are surfaced to users as-is.
var (
	ErrPassCount          = errors.New("Must select exactly 3 cards to pass")
	ErrPassCardNotInHand  = errors.New("Selected card not in hand")
	ErrPassDuplicate      = errors.New("Cannot pass duplicate cards")
	ErrNotPassingPhase    = errors.New("not in passing phase")
	ErrNoPassingThisRound = errors.New("no passing this round")
	ErrAlreadySubmitted   = errors.New("already submitted pass selection")
	ErrPassesIncomplete   = errors.New("not all players have submitted passes")
	ErrBadPassDirection   = errors.New("invalid pass direction")
)

var passCycle = [NumSeats]PassDirection{PassLeft, PassRight, PassAcross, PassNone}

// DirectionForRound returns the pass direction for a 1-based round number:
// left, right, across, none, repeating.
func DirectionForRound(round int) PassDirection {
	return passCycle[(round-1)%NumSeats]
}

// receiveOffset maps a direction to the seat offset a player receives
// from. Passing left means receiving from the right-hand neighbour.
func receiveOffset(dir PassDirection) (int, error) {
	switch dir {
	case PassLeft:
		return 3, nil
	case PassRight:
		return 1, nil
	case PassAcross:
		return 2, nil
	default:
		return 0, ErrBadPassDirection
	}
}

// ValidatePassSelection checks a 3-card pass selection against a hand.
func ValidatePassSelection(selected []Card, hand []Card) error {
	if len(selected) != CardsPerPass {
		return ErrPassCount
	}
	seen := make(map[Card]bool, CardsPerPass)
	for _, c := range selected {
		if seen[c] {
			return ErrPassDuplicate
		}
		seen[c] = true
		if !ContainsCard(hand, c) {
			return ErrPassCardNotInHand
		}
	}
	return nil
}
