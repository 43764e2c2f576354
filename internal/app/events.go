package app

import "hearts/internal/domain"

// EventKind identifies emitted domain events for Nakama dispatch.
type EventKind string

const (
	EventPlayerJoined  EventKind = "player_joined"
	EventPlayerLeft    EventKind = "player_left"
	EventGameStarted   EventKind = "game_started"
	EventHandDealt     EventKind = "hand_dealt"
	EventPassSubmitted EventKind = "pass_submitted"
	EventCardsReceived EventKind = "cards_received"
	EventRevealReady   EventKind = "reveal_ready"
	EventPlayStarted   EventKind = "play_started"
	EventCardPlayed    EventKind = "card_played"
	EventTrickWon      EventKind = "trick_won"
	EventRoundStarted  EventKind = "round_started"
	EventRoundEnded    EventKind = "round_ended"
	EventGameEnded     EventKind = "game_ended"
)

// Event is an app event with optional targeted recipients.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []string // user IDs; empty means broadcast
}

type PlayerJoinedPayload struct {
	UserID string `json:"user_id"`
	Seat   int    `json:"seat"`
	Owner  bool   `json:"owner"`
}

type PlayerLeftPayload struct {
	UserID string `json:"user_id"`
	Seat   int    `json:"seat"`
}

type GameStartedPayload struct {
	Round         int                  `json:"round"`
	PassDirection domain.PassDirection `json:"pass_direction"`
	Phase         domain.Phase         `json:"phase"`
}

// HandDealtPayload is sent only to its own seat.
type HandDealtPayload struct {
	UserID string        `json:"user_id"`
	Seat   int           `json:"seat"`
	Hand   []domain.Card `json:"hand"`
}

// PassSubmittedPayload announces that a seat locked in its selection; the
// cards themselves stay private.
type PassSubmittedPayload struct {
	Seat int `json:"seat"`
}

// CardsReceivedPayload is sent only to the receiving seat.
type CardsReceivedPayload struct {
	Seat      int                  `json:"seat"`
	Cards     []domain.Card        `json:"cards"`
	Direction domain.PassDirection `json:"direction"`
}

type RevealReadyPayload struct {
	Seat int `json:"seat"`
}

type PlayStartedPayload struct {
	Round      int `json:"round"`
	LeaderSeat int `json:"leader_seat"`
}

type CardPlayedPayload struct {
	Seat         int         `json:"seat"`
	Card         domain.Card `json:"card"`
	NextTurn     int         `json:"next_turn"`
	HeartsBroken bool        `json:"hearts_broken"`
}

type TrickWonPayload struct {
	Winner int                `json:"winner"`
	Points int                `json:"points"`
	Trick  []domain.TrickPlay `json:"trick"`
}

type RoundStartedPayload struct {
	Round         int                  `json:"round"`
	PassDirection domain.PassDirection `json:"pass_direction"`
}

type RoundEndedPayload struct {
	Round       int                  `json:"round"`
	RoundScores [domain.NumSeats]int `json:"round_scores"`
	Totals      [domain.NumSeats]int `json:"totals"`
	MoonShooter int                  `json:"moon_shooter"`
}

type GameEndedPayload struct {
	Winner int                  `json:"winner"`
	Totals [domain.NumSeats]int `json:"totals"`
	Reason string               `json:"reason,omitempty"`
}
