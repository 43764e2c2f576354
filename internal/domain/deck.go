package domain

import (
	"math/rand"
	"sort"
)

var allSuits = []Suit{SuitClubs, SuitDiamonds, SuitHearts, SuitSpades}

// NewDeck returns an ordered 52-card deck with no duplicates.
func NewDeck() []Card {
	deck := make([]Card, 0, 52)
	for _, s := range allSuits {
		for r := 2; r <= RankAce; r++ {
			deck = append(deck, Card{Suit: s, Rank: r})
		}
	}
	return deck
}

// ShuffleDeck returns a uniformly shuffled copy of the given deck.
func ShuffleDeck(deck []Card, rng *rand.Rand) []Card {
	out := make([]Card, len(deck))
	copy(out, deck)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// DealHands splits a 52-card deck into four sorted 13-card hands,
// consuming the whole deck exactly once.
func DealHands(deck []Card) [NumSeats][]Card {
	var hands [NumSeats][]Card
	for i := 0; i < NumSeats; i++ {
		hands[i] = append([]Card(nil), deck[i*HandSize:(i+1)*HandSize]...)
		SortHand(hands[i])
	}
	return hands
}

// suitOrder is the display grouping: clubs, diamonds, spades, hearts.
var suitOrder = map[Suit]int{
	SuitClubs:    0,
	SuitDiamonds: 1,
	SuitSpades:   2,
	SuitHearts:   3,
}

// SortHand orders a hand canonically: suit group then ascending rank.
// Reapplied after every hand mutation surfaced to a player so independent
// observers of the same hand see identical ordering.
func SortHand(hand []Card) {
	sort.Slice(hand, func(i, j int) bool {
		if suitOrder[hand[i].Suit] != suitOrder[hand[j].Suit] {
			return suitOrder[hand[i].Suit] < suitOrder[hand[j].Suit]
		}
		return hand[i].Rank < hand[j].Rank
	})
}

// RemoveCard removes a single card from a hand, preserving order.
func RemoveCard(hand []Card, card Card) []Card {
	out := make([]Card, 0, len(hand))
	removed := false
	for _, c := range hand {
		if !removed && c == card {
			removed = true
			continue
		}
		out = append(out, c)
	}
	return out
}

// RemoveCards removes each of the given cards from a hand.
func RemoveCards(hand []Card, cards []Card) []Card {
	out := append([]Card(nil), hand...)
	for _, c := range cards {
		out = RemoveCard(out, c)
	}
	return out
}

// ContainsCard reports whether the hand holds the given card.
func ContainsCard(hand []Card, card Card) bool {
	for _, c := range hand {
		if c == card {
			return true
		}
	}
	return false
}
