package domain

import (
	"math/rand"
	"reflect"
	"testing"
)

func TestNewDeck(t *testing.T) {
	deck := NewDeck()
	if len(deck) != 52 {
		t.Fatalf("deck size = %d, want 52", len(deck))
	}

	seen := make(map[Card]bool)
	for _, c := range deck {
		if seen[c] {
			t.Fatalf("duplicate card: %+v", c)
		}
		seen[c] = true
		if c.Rank < 2 || c.Rank > RankAce {
			t.Fatalf("rank out of range: %d", c.Rank)
		}
		switch c.Suit {
		case SuitClubs, SuitDiamonds, SuitHearts, SuitSpades:
		default:
			t.Fatalf("unexpected suit: %s", c.Suit)
		}
	}
}

func TestShuffleAndDeal(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	hands := DealHands(ShuffleDeck(NewDeck(), rng))

	union := make(map[Card]bool)
	for i, hand := range hands {
		if len(hand) != HandSize {
			t.Fatalf("hand %d size = %d, want %d", i, len(hand), HandSize)
		}
		for _, c := range hand {
			if union[c] {
				t.Fatalf("card dealt twice: %+v", c)
			}
			union[c] = true
		}
	}
	if len(union) != 52 {
		t.Fatalf("union size = %d, want 52", len(union))
	}
}

func TestShuffleDeckDoesNotMutateInput(t *testing.T) {
	deck := NewDeck()
	before := append([]Card(nil), deck...)
	ShuffleDeck(deck, rand.New(rand.NewSource(1)))
	if !reflect.DeepEqual(deck, before) {
		t.Fatal("ShuffleDeck mutated its input")
	}
}

func TestSortHand(t *testing.T) {
	hand := []Card{
		{Suit: SuitHearts, Rank: 4},
		{Suit: SuitClubs, Rank: RankAce},
		{Suit: SuitSpades, Rank: 2},
		{Suit: SuitDiamonds, Rank: RankKing},
		{Suit: SuitClubs, Rank: 3},
		{Suit: SuitHearts, Rank: 2},
	}
	SortHand(hand)

	want := []Card{
		{Suit: SuitClubs, Rank: 3},
		{Suit: SuitClubs, Rank: RankAce},
		{Suit: SuitDiamonds, Rank: RankKing},
		{Suit: SuitSpades, Rank: 2},
		{Suit: SuitHearts, Rank: 2},
		{Suit: SuitHearts, Rank: 4},
	}
	if !reflect.DeepEqual(hand, want) {
		t.Fatalf("SortHand() = %v, want %v", hand, want)
	}
}

func TestRemoveCard(t *testing.T) {
	hand := []Card{
		{Suit: SuitClubs, Rank: 2},
		{Suit: SuitHearts, Rank: 5},
		{Suit: SuitSpades, Rank: RankQueen},
	}
	got := RemoveCard(hand, Card{Suit: SuitHearts, Rank: 5})
	want := []Card{
		{Suit: SuitClubs, Rank: 2},
		{Suit: SuitSpades, Rank: RankQueen},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("RemoveCard() = %v, want %v", got, want)
	}
	if len(hand) != 3 {
		t.Fatal("RemoveCard mutated its input")
	}
}
