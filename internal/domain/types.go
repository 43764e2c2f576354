package domain

// Suit identifies one of the four card suits.
type Suit string

const (
	SuitClubs    Suit = "C"
	SuitDiamonds Suit = "D"
	SuitHearts   Suit = "H"
	SuitSpades   Suit = "S"
)

// Rank values for face cards. Number cards use their face value (2..10).
const (
	RankJack  = 11
	RankQueen = 12
	RankKing  = 13
	RankAce   = 14
)

// Card is a single playing card. Equality is by (suit, rank).
type Card struct {
	Suit Suit `json:"suit"`
	Rank int  `json:"rank"` // 2..14 (11=J, 12=Q, 13=K, 14=A)
}

// QueenOfSpades is the 13-point penalty card.
var QueenOfSpades = Card{Suit: SuitSpades, Rank: RankQueen}

// TwoOfClubs opens the first trick of every round.
var TwoOfClubs = Card{Suit: SuitClubs, Rank: 2}

// Phase is the lifecycle stage of a Hearts game. Exactly one phase is
// active at a time; every transition switches on it exhaustively.
type Phase string

const (
	// PhasePassing collects 3-card pass selections from each seat.
	PhasePassing Phase = "passing"
	// PhaseRevealing shows received cards until every human seat acknowledges.
	PhaseRevealing Phase = "revealing"
	// PhasePlaying is active trick-by-trick play.
	PhasePlaying Phase = "playing"
	// PhaseRoundComplete is the pause between rounds after scores are folded in.
	PhaseRoundComplete Phase = "round_complete"
	// PhaseGameOver is terminal; only ResetGameForNewGame leaves it.
	PhaseGameOver Phase = "game_over"
)

// PassDirection governs the pre-play 3-card exchange for a round.
type PassDirection string

const (
	PassLeft   PassDirection = "left"
	PassRight  PassDirection = "right"
	PassAcross PassDirection = "across"
	PassNone   PassDirection = "none"
)

// Difficulty selects the heuristic tier for an AI seat.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

const (
	// NumSeats is the fixed player count; seats are stable for the game.
	NumSeats = 4
	// HandSize is the cards dealt to each seat at round start.
	HandSize = 13
	// CardsPerPass is the size of a pass selection.
	CardsPerPass = 3
	// TotalPenaltyPoints is the points in play each round (13 hearts + Q spades).
	TotalPenaltyPoints = 26
	// GameEndScore ends the game once any cumulative score reaches it.
	GameEndScore = 100
	// TricksPerRound is the number of tricks in a complete round.
	TricksPerRound = 13
)

// Player holds the per-seat state for a participant.
type Player struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	IsAI       bool       `json:"is_ai"`
	Difficulty Difficulty `json:"difficulty,omitempty"`
	Hand       []Card     `json:"hand"`
}

// TrickPlay is one (seat, card) entry within a trick. The first entry's
// suit is the led suit for the trick.
type TrickPlay struct {
	Seat int  `json:"seat"`
	Card Card `json:"card"`
}

// RoundRecord is an append-only history entry for a completed round.
type RoundRecord struct {
	Round       int    `json:"round"`
	RoundScores [4]int `json:"round_scores"` // after any moon-shot adjustment
	Totals      [4]int `json:"totals"`       // cumulative scores after the round
	MoonShooter int    `json:"moon_shooter"` // -1 when nobody shot the moon
}

// Game is the authoritative state document for one Hearts game. It is
// mutated only through the transition functions in this package, each of
// which returns a replacement state and leaves its input untouched.
type Game struct {
	Players [NumSeats]Player `json:"players"`
	Phase   Phase            `json:"phase"`

	Round         int           `json:"round"`
	PassDirection PassDirection `json:"pass_direction"`
	EndScore      int           `json:"end_score"` // GameEndScore unless the host overrides it

	Scores      [NumSeats]int    `json:"scores"`
	RoundScores [NumSeats]int    `json:"round_scores"`
	PointsTaken [NumSeats][]Card `json:"points_taken"`

	HeartsBroken bool `json:"hearts_broken"`
	TrickNumber  int  `json:"trick_number"` // completed tricks this round

	CurrentTrick    []TrickPlay `json:"current_trick"`
	LastTrick       []TrickPlay `json:"last_trick,omitempty"`
	LastTrickWinner int         `json:"last_trick_winner"` // -1 when no trick completed yet
	TrickLeader     int         `json:"trick_leader"`
	CurrentTurn     int         `json:"current_turn"`

	PassSubmissions map[int][]Card `json:"pass_submissions,omitempty"`
	ReceivedCards   map[int][]Card `json:"received_cards,omitempty"`
	RevealReady     [NumSeats]bool `json:"reveal_ready"`

	History []RoundRecord `json:"history"`
	Winner  int           `json:"winner"` // -1 until game over

	// EndReason is written only by the host's lobby/presence layer when a
	// game is terminated externally (e.g. a seat leaving). The engine never
	// sets it.
	EndReason string `json:"end_reason,omitempty"`
}

// Clone returns a deep copy of the game document. Transitions operate on a
// clone so a rejected call can hand back the untouched input state.
func (g *Game) Clone() *Game {
	out := *g
	for i := range out.Players {
		out.Players[i].Hand = append([]Card(nil), g.Players[i].Hand...)
	}
	for i := range out.PointsTaken {
		out.PointsTaken[i] = append([]Card(nil), g.PointsTaken[i]...)
	}
	out.CurrentTrick = append([]TrickPlay(nil), g.CurrentTrick...)
	out.LastTrick = append([]TrickPlay(nil), g.LastTrick...)
	if g.PassSubmissions != nil {
		out.PassSubmissions = make(map[int][]Card, len(g.PassSubmissions))
		for seat, cards := range g.PassSubmissions {
			out.PassSubmissions[seat] = append([]Card(nil), cards...)
		}
	}
	if g.ReceivedCards != nil {
		out.ReceivedCards = make(map[int][]Card, len(g.ReceivedCards))
		for seat, cards := range g.ReceivedCards {
			out.ReceivedCards[seat] = append([]Card(nil), cards...)
		}
	}
	out.History = append([]RoundRecord(nil), g.History...)
	return &out
}

// SeatOf returns the seat index for a player ID, or -1 if unknown.
func (g *Game) SeatOf(playerID string) int {
	for i := range g.Players {
		if g.Players[i].ID == playerID {
			return i
		}
	}
	return -1
}
