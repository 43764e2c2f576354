package domain

import (
	"errors"
	"testing"
)

func TestDirectionForRound(t *testing.T) {
	tests := []struct {
		round int
		want  PassDirection
	}{
		{1, PassLeft},
		{2, PassRight},
		{3, PassAcross},
		{4, PassNone},
		{5, PassLeft},
		{8, PassNone},
		{9, PassLeft},
	}
	for _, tt := range tests {
		if got := DirectionForRound(tt.round); got != tt.want {
			t.Fatalf("DirectionForRound(%d) = %s, want %s", tt.round, got, tt.want)
		}
	}
}

func TestValidatePassSelection(t *testing.T) {
	hand := []Card{
		{Suit: SuitClubs, Rank: 2},
		{Suit: SuitClubs, Rank: 9},
		{Suit: SuitDiamonds, Rank: 4},
		{Suit: SuitHearts, Rank: 7},
	}

	tests := []struct {
		name     string
		selected []Card
		wantErr  error
	}{
		{
			name:     "valid selection",
			selected: []Card{hand[0], hand[1], hand[3]},
		},
		{
			name:     "too few cards",
			selected: []Card{hand[0], hand[1]},
			wantErr:  ErrPassCount,
		},
		{
			name:     "too many cards",
			selected: []Card{hand[0], hand[1], hand[2], hand[3]},
			wantErr:  ErrPassCount,
		},
		{
			name:     "card not in hand",
			selected: []Card{hand[0], hand[1], {Suit: SuitSpades, Rank: RankAce}},
			wantErr:  ErrPassCardNotInHand,
		},
		{
			name:     "duplicate cards",
			selected: []Card{hand[0], hand[0], hand[1]},
			wantErr:  ErrPassDuplicate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassSelection(tt.selected, hand)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ValidatePassSelection() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidatePassSelectionErrorStrings(t *testing.T) {
	// Clients display these verbatim.
	tests := []struct {
		err  error
		want string
	}{
		{ErrPassCount, "Must select exactly 3 cards to pass"},
		{ErrPassCardNotInHand, "Selected card not in hand"},
		{ErrPassDuplicate, "Cannot pass duplicate cards"},
	}
	for _, tt := range tests {
		if tt.err.Error() != tt.want {
			t.Fatalf("error string = %q, want %q", tt.err.Error(), tt.want)
		}
	}
}
