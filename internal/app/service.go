package app

import (
	"math/rand"
	"time"

	"hearts/internal/domain"
)

// Service contains the Hearts use-cases the host invokes. Every method
// that changes state goes through the domain transitions and returns the
// replacement state together with the events to dispatch; on error the
// input state is still the current one.
type Service struct {
	rng *rand.Rand
}

// NewService constructs a Service with the provided rng or a time-seeded
// default.
func NewService(rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{rng: rng}
}

func (s *Service) deal() [domain.NumSeats][]domain.Card {
	return domain.DealHands(domain.ShuffleDeck(domain.NewDeck(), s.rng))
}

// StartGame deals the first round for a full table of four seats.
func (s *Service) StartGame(players [domain.NumSeats]domain.Player) (*domain.Game, []Event) {
	g := domain.NewGame(players, s.deal())

	events := handDealtEvents(g)
	events = append(events, Event{
		Kind: EventGameStarted,
		Payload: GameStartedPayload{
			Round:         g.Round,
			PassDirection: g.PassDirection,
			Phase:         g.Phase,
		},
	})
	return g, events
}

// SubmitPass records one seat's pass selection. When the fourth selection
// arrives the exchange executes immediately.
func (s *Service) SubmitPass(g *domain.Game, userID string, cards []domain.Card) (*domain.Game, []Event, error) {
	seat := g.SeatOf(userID)
	if seat < 0 {
		return g, nil, domain.ErrPlayerNotFound
	}

	next, err := domain.SubmitPassSelection(g, seat, cards)
	if err != nil {
		return g, nil, err
	}
	events := []Event{{
		Kind:    EventPassSubmitted,
		Payload: PassSubmittedPayload{Seat: seat},
	}}

	if len(next.PassSubmissions) == domain.NumSeats {
		next, err = domain.ExecutePassPhase(next)
		if err != nil {
			return g, nil, err
		}
		for i := range next.Players {
			events = append(events, Event{
				Kind: EventCardsReceived,
				Payload: CardsReceivedPayload{
					Seat:      i,
					Cards:     next.ReceivedCards[i],
					Direction: next.PassDirection,
				},
				Recipients: []string{next.Players[i].ID},
			})
		}
		events = append(events, playStartedIfPlaying(next)...)
	}
	return next, events, nil
}

// ReadyForReveal acknowledges a human seat's look at its received cards.
func (s *Service) ReadyForReveal(g *domain.Game, userID string) (*domain.Game, []Event, error) {
	seat := g.SeatOf(userID)
	if seat < 0 {
		return g, nil, domain.ErrPlayerNotFound
	}

	next, err := domain.MarkPlayerReadyForReveal(g, seat)
	if err != nil {
		return g, nil, err
	}
	events := []Event{{
		Kind:    EventRevealReady,
		Payload: RevealReadyPayload{Seat: seat},
	}}
	events = append(events, playStartedIfPlaying(next)...)
	return next, events, nil
}

// PlayCard plays one card for the seat whose turn it is.
func (s *Service) PlayCard(g *domain.Game, userID string, card domain.Card) (*domain.Game, []Event, error) {
	seat := g.SeatOf(userID)
	if seat < 0 {
		return g, nil, domain.ErrPlayerNotFound
	}

	next, err := domain.PlayCard(g, seat, card)
	if err != nil {
		return g, nil, err
	}

	events := []Event{{
		Kind: EventCardPlayed,
		Payload: CardPlayedPayload{
			Seat:         seat,
			Card:         card,
			NextTurn:     next.CurrentTurn,
			HeartsBroken: next.HeartsBroken,
		},
	}}

	if next.TrickNumber > g.TrickNumber {
		events = append(events, Event{
			Kind: EventTrickWon,
			Payload: TrickWonPayload{
				Winner: next.LastTrickWinner,
				Points: domain.TrickPoints(next.LastTrick),
				Trick:  next.LastTrick,
			},
		})
	}

	switch next.Phase {
	case domain.PhaseRoundComplete:
		events = append(events, roundEndedEvent(next))
	case domain.PhaseGameOver:
		events = append(events, roundEndedEvent(next), Event{
			Kind: EventGameEnded,
			Payload: GameEndedPayload{
				Winner: next.Winner,
				Totals: next.Scores,
				Reason: next.EndReason,
			},
		})
	}
	return next, events, nil
}

// NextRound deals the following round after a round completes.
func (s *Service) NextRound(g *domain.Game) (*domain.Game, []Event) {
	next := domain.PrepareNewRound(g, s.deal())

	events := handDealtEvents(next)
	events = append(events, Event{
		Kind: EventRoundStarted,
		Payload: RoundStartedPayload{
			Round:         next.Round,
			PassDirection: next.PassDirection,
		},
	})
	events = append(events, playStartedIfPlaying(next)...)
	return next, events
}

// Rematch resets scores and deals a fresh game for the same seats.
func (s *Service) Rematch(g *domain.Game) (*domain.Game, []Event) {
	next := domain.ResetGameForNewGame(g, s.deal())

	events := handDealtEvents(next)
	events = append(events, Event{
		Kind: EventGameStarted,
		Payload: GameStartedPayload{
			Round:         next.Round,
			PassDirection: next.PassDirection,
			Phase:         next.Phase,
		},
	})
	return next, events
}

func handDealtEvents(g *domain.Game) []Event {
	events := make([]Event, 0, domain.NumSeats+1)
	for i := range g.Players {
		events = append(events, Event{
			Kind: EventHandDealt,
			Payload: HandDealtPayload{
				UserID: g.Players[i].ID,
				Seat:   i,
				Hand:   g.Players[i].Hand,
			},
			Recipients: []string{g.Players[i].ID},
		})
	}
	return events
}

// playStartedIfPlaying announces the first leader once the reveal wait
// clears. A hold round enters play straight from the deal.
func playStartedIfPlaying(g *domain.Game) []Event {
	if g.Phase != domain.PhasePlaying || g.TrickNumber != 0 || len(g.CurrentTrick) != 0 {
		return nil
	}
	return []Event{{
		Kind: EventPlayStarted,
		Payload: PlayStartedPayload{
			Round:      g.Round,
			LeaderSeat: g.TrickLeader,
		},
	}}
}

func roundEndedEvent(g *domain.Game) Event {
	rec := g.History[len(g.History)-1]
	return Event{
		Kind: EventRoundEnded,
		Payload: RoundEndedPayload{
			Round:       rec.Round,
			RoundScores: rec.RoundScores,
			Totals:      rec.Totals,
			MoonShooter: rec.MoonShooter,
		},
	}
}
