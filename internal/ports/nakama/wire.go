package nakama

import (
	"hearts/internal/app"
	"hearts/internal/domain"
)

// MatchLabel is the JSON label Nakama indexes for match listing queries.
type MatchLabel struct {
	Game  string `json:"game"`
	Open  int    `json:"open"`
	Phase string `json:"phase"` // "lobby" or "playing"
}

// PlayerState is one seat's public view in a match state snapshot.
type PlayerState struct {
	UserID         string `json:"user_id"`
	Seat           int    `json:"seat"`
	IsOwner        bool   `json:"is_owner"`
	IsBot          bool   `json:"is_bot"`
	DisplayName    string `json:"display_name"`
	AvatarIndex    int    `json:"avatar_index"`
	Score          int    `json:"score"`
	CardsRemaining int    `json:"cards_remaining"`
}

// MatchStateSnapshot is broadcast whenever the seating changes.
type MatchStateSnapshot struct {
	Seats     []string      `json:"seats"`
	OwnerSeat int           `json:"owner_seat"`
	Tick      int64         `json:"tick"`
	Phase     domain.Phase  `json:"phase,omitempty"`
	Players   []PlayerState `json:"players"`
}

// SubmitPassRequest is the client payload for OpSubmitPass.
type SubmitPassRequest struct {
	Cards []domain.Card `json:"cards"`
}

// PlayCardRequest is the client payload for OpPlayCard.
type PlayCardRequest struct {
	Card domain.Card `json:"card"`
}

// GameErrorEvent is sent privately to the sender of a rejected message.
type GameErrorEvent struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// eventOpCodes maps app event kinds onto wire op codes.
var eventOpCodes = map[app.EventKind]int64{
	app.EventPlayerJoined:  OpPlayerJoined,
	app.EventPlayerLeft:    OpPlayerLeft,
	app.EventGameStarted:   OpGameStarted,
	app.EventHandDealt:     OpHandDealt,
	app.EventPassSubmitted: OpPassSubmitted,
	app.EventCardsReceived: OpCardsReceived,
	app.EventRevealReady:   OpRevealAcked,
	app.EventPlayStarted:   OpPlayStarted,
	app.EventCardPlayed:    OpCardPlayed,
	app.EventTrickWon:      OpTrickWon,
	app.EventRoundStarted:  OpRoundStarted,
	app.EventRoundEnded:    OpRoundEnded,
	app.EventGameEnded:     OpGameEnded,
}
