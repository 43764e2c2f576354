package internal

import (
	"testing"

	"hearts/internal/domain"
)

func TestAnalyzeCountsSurfacedCards(t *testing.T) {
	deal := domain.DealHands(domain.NewDeck())
	var players [domain.NumSeats]domain.Player
	for i := range players {
		players[i].Hand = deal[i]
	}

	// Pull three cards out of the hands: two captured earlier and one
	// sitting in the open trick.
	gone := []domain.Card{domain.QueenOfSpades, card(domain.SuitHearts, 10)}
	tabled := card(domain.SuitDiamonds, 7)
	for i := range players {
		players[i].Hand = domain.RemoveCards(players[i].Hand, gone)
		players[i].Hand = domain.RemoveCard(players[i].Hand, tabled)
	}

	g := &domain.Game{
		Players:      players,
		Phase:        domain.PhasePlaying,
		TrickNumber:  4,
		CurrentTrick: []domain.TrickPlay{{Seat: 2, Card: tabled}},
		RoundScores:  [domain.NumSeats]int{0, 14, 0, 0},
	}

	stats := Analyze(g, 0)
	if !stats.QueenPlayed {
		t.Error("queen should be counted as surfaced")
	}
	if stats.PointsOut != 14 {
		t.Errorf("points out = %d, want 14", stats.PointsOut)
	}
	if stats.SoleTaker != 1 {
		t.Errorf("sole taker = %d, want 1", stats.SoleTaker)
	}
}

func TestAnalyzeSplitPointsHaveNoSoleTaker(t *testing.T) {
	deal := domain.DealHands(domain.NewDeck())
	var players [domain.NumSeats]domain.Player
	for i := range players {
		players[i].Hand = deal[i]
	}
	g := &domain.Game{
		Players:     players,
		Phase:       domain.PhasePlaying,
		RoundScores: [domain.NumSeats]int{3, 0, 2, 0},
	}

	if stats := Analyze(g, 0); stats.SoleTaker != -1 {
		t.Fatalf("sole taker = %d, want -1 on split points", stats.SoleTaker)
	}
}

func TestAnalyzeTabledCardsAreSeen(t *testing.T) {
	deal := domain.DealHands(domain.NewDeck())
	var players [domain.NumSeats]domain.Player
	for i := range players {
		players[i].Hand = deal[i]
	}

	// The queen and the ace of diamonds lie in the open trick; neither
	// may count as unseen for any seat.
	tabled := []domain.Card{domain.QueenOfSpades, card(domain.SuitDiamonds, domain.RankAce)}
	for i := range players {
		players[i].Hand = domain.RemoveCards(players[i].Hand, tabled)
	}

	g := &domain.Game{
		Players:     players,
		Phase:       domain.PhasePlaying,
		TrickNumber: 2,
		CurrentTrick: []domain.TrickPlay{
			{Seat: 1, Card: tabled[0]},
			{Seat: 2, Card: tabled[1]},
		},
	}

	stats := Analyze(g, 0)
	if !stats.QueenPlayed {
		t.Error("a queen in the open trick should count as surfaced")
	}
	if top := stats.HighestUnseen[domain.SuitDiamonds]; top >= domain.RankAce {
		t.Errorf("highest unseen diamond = %d, the tabled ace is visible", top)
	}
}

func TestAnalyzeHighestUnseenExcludesOwnHand(t *testing.T) {
	var players [domain.NumSeats]domain.Player
	players[0].Hand = []domain.Card{
		card(domain.SuitSpades, domain.RankAce),
		card(domain.SuitSpades, domain.RankKing),
		card(domain.SuitDiamonds, 5),
	}
	players[1].Hand = []domain.Card{
		card(domain.SuitSpades, domain.RankJack),
		card(domain.SuitDiamonds, domain.RankAce),
		card(domain.SuitClubs, 2),
	}
	players[2].Hand = []domain.Card{card(domain.SuitHearts, 9)}
	players[3].Hand = []domain.Card{card(domain.SuitClubs, 4)}

	g := &domain.Game{Players: players, Phase: domain.PhasePlaying}

	stats := Analyze(g, 0)
	want := map[domain.Suit]int{
		domain.SuitSpades:   domain.RankJack,
		domain.SuitDiamonds: domain.RankAce,
		domain.SuitClubs:    4,
		domain.SuitHearts:   9,
	}
	for suit, rank := range want {
		if got := stats.HighestUnseen[suit]; got != rank {
			t.Errorf("highest unseen %s = %d, want %d", suit, got, rank)
		}
	}
}

func TestDangerOrdersQueenFirst(t *testing.T) {
	w := Weights{QueenDanger: 50, HighSpadeDanger: 18, HeartBase: 6, RankWeight: 1}

	queen := Danger(domain.QueenOfSpades, w)
	aceSpades := Danger(card(domain.SuitSpades, domain.RankAce), w)
	aceHearts := Danger(card(domain.SuitHearts, domain.RankAce), w)
	lowClub := Danger(card(domain.SuitClubs, 2), w)

	if queen <= aceSpades || queen <= aceHearts {
		t.Fatalf("queen danger %.1f should dominate ace of spades %.1f and ace of hearts %.1f",
			queen, aceSpades, aceHearts)
	}
	if aceSpades <= lowClub || aceHearts <= lowClub {
		t.Fatal("high penalty cards must outrank a low club")
	}
}

func TestPassScoreFavorsShortSuits(t *testing.T) {
	w := Weights{RankWeight: 1, VoidBonus: 8}
	hand := []domain.Card{
		card(domain.SuitClubs, 9),
		card(domain.SuitDiamonds, 9),
		card(domain.SuitDiamonds, 4),
		card(domain.SuitDiamonds, 5),
		card(domain.SuitDiamonds, 6),
	}

	short := PassScore(hand[0], hand, w)
	long := PassScore(hand[1], hand, w)
	if short <= long {
		t.Fatalf("singleton club score %.1f should beat equal-rank diamond %.1f", short, long)
	}
}
