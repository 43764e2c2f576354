package domain

import "errors"

// Identity and phase errors for game transitions.
var (
	ErrPlayerNotFound    = errors.New("player not found")
	ErrNotYourTurn       = errors.New("not your turn")
	ErrNotPlayingPhase   = errors.New("not in playing phase")
	ErrNotRevealingPhase = errors.New("not in revealing phase")
)

// NewGame creates the state document for a fresh game with the given seats
// and pre-dealt hands, entering round 1.
func NewGame(players [NumSeats]Player, hands [NumSeats][]Card) *Game {
	g := &Game{
		Players:         players,
		Round:           1,
		EndScore:        GameEndScore,
		Winner:          -1,
		LastTrickWinner: -1,
	}
	startRound(g, hands)
	return g
}

// StartRound begins the current round on a copy of the state: hands are
// installed and sorted, round-scoped fields reset, and the phase becomes
// passing (or playing directly on hold rounds).
func StartRound(g *Game, hands [NumSeats][]Card) *Game {
	next := g.Clone()
	startRound(next, hands)
	return next
}

// PrepareNewRound advances to the next round with freshly dealt hands.
func PrepareNewRound(g *Game, hands [NumSeats][]Card) *Game {
	next := g.Clone()
	next.Round++
	startRound(next, hands)
	return next
}

// ResetGameForNewGame fully resets scores, history and round number and
// starts round 1 with the given hands. This is the only way out of the
// game-over phase.
func ResetGameForNewGame(g *Game, hands [NumSeats][]Card) *Game {
	next := g.Clone()
	next.Scores = [NumSeats]int{}
	next.History = nil
	next.Round = 1
	next.Winner = -1
	next.EndReason = ""
	startRound(next, hands)
	return next
}

// startRound mutates g in place; callers pass a clone.
func startRound(g *Game, hands [NumSeats][]Card) {
	for i := range g.Players {
		g.Players[i].Hand = append([]Card(nil), hands[i]...)
		SortHand(g.Players[i].Hand)
	}
	g.RoundScores = [NumSeats]int{}
	for i := range g.PointsTaken {
		g.PointsTaken[i] = nil
	}
	g.HeartsBroken = false
	g.TrickNumber = 0
	g.CurrentTrick = nil
	g.LastTrick = nil
	g.LastTrickWinner = -1
	g.PassSubmissions = nil
	g.ReceivedCards = nil
	g.RevealReady = [NumSeats]bool{}
	g.PassDirection = DirectionForRound(g.Round)

	if g.PassDirection == PassNone {
		beginPlay(g)
		return
	}
	g.Phase = PhasePassing
}

// SubmitPassSelection records a seat's 3-card pass selection.
func SubmitPassSelection(g *Game, seat int, cards []Card) (*Game, error) {
	if g.Phase != PhasePassing {
		if g.PassDirection == PassNone {
			return g, ErrNoPassingThisRound
		}
		return g, ErrNotPassingPhase
	}
	if seat < 0 || seat >= NumSeats {
		return g, ErrPlayerNotFound
	}
	if _, ok := g.PassSubmissions[seat]; ok {
		return g, ErrAlreadySubmitted
	}
	if err := ValidatePassSelection(cards, g.Players[seat].Hand); err != nil {
		return g, err
	}

	next := g.Clone()
	if next.PassSubmissions == nil {
		next.PassSubmissions = make(map[int][]Card, NumSeats)
	}
	next.PassSubmissions[seat] = append([]Card(nil), cards...)
	return next, nil
}

// ExecutePassPhase exchanges the collected submissions once all four seats
// have submitted, then enters the reveal phase. Each seat receives the
// cards submitted by the seat at the direction's offset.
func ExecutePassPhase(g *Game) (*Game, error) {
	if g.Phase != PhasePassing {
		return g, ErrNotPassingPhase
	}
	if len(g.PassSubmissions) < NumSeats {
		return g, ErrPassesIncomplete
	}
	offset, err := receiveOffset(g.PassDirection)
	if err != nil {
		return g, err
	}

	next := g.Clone()
	next.ReceivedCards = make(map[int][]Card, NumSeats)
	for seat := 0; seat < NumSeats; seat++ {
		next.Players[seat].Hand = RemoveCards(next.Players[seat].Hand, next.PassSubmissions[seat])
	}
	for seat := 0; seat < NumSeats; seat++ {
		received := append([]Card(nil), next.PassSubmissions[(seat+offset)%NumSeats]...)
		SortHand(received)
		next.Players[seat].Hand = append(next.Players[seat].Hand, received...)
		SortHand(next.Players[seat].Hand)
		next.ReceivedCards[seat] = received
	}
	next.PassSubmissions = nil
	next.Phase = PhaseRevealing

	// AI seats never send an explicit acknowledgement.
	for i := range next.Players {
		if next.Players[i].IsAI {
			next.RevealReady[i] = true
		}
	}
	if allHumansReady(next) {
		beginPlay(next)
	}
	return next, nil
}

// MarkPlayerReadyForReveal records a human seat's reveal acknowledgement.
// Play begins once every human seat has acknowledged.
func MarkPlayerReadyForReveal(g *Game, seat int) (*Game, error) {
	if g.Phase != PhaseRevealing {
		return g, ErrNotRevealingPhase
	}
	if seat < 0 || seat >= NumSeats {
		return g, ErrPlayerNotFound
	}

	next := g.Clone()
	next.RevealReady[seat] = true
	if allHumansReady(next) {
		beginPlay(next)
	}
	return next, nil
}

func allHumansReady(g *Game) bool {
	for i := range g.Players {
		if !g.Players[i].IsAI && !g.RevealReady[i] {
			return false
		}
	}
	return true
}

// beginPlay enters the playing phase. The holder of the 2 of clubs leads,
// looked up after any exchange since passing can relocate the card.
func beginPlay(g *Game) {
	leader := FindTwoOfClubsHolder(g)
	g.TrickLeader = leader
	g.CurrentTurn = leader
	g.ReceivedCards = nil
	g.RevealReady = [NumSeats]bool{}
	g.Phase = PhasePlaying
}

// PlayCard applies one legal card play for the seat whose turn it is. A
// completed trick resolves immediately: penalty points route to the trick
// winner, who leads the next trick. The 13th trick completes the round.
func PlayCard(g *Game, seat int, card Card) (*Game, error) {
	if g.Phase != PhasePlaying {
		return g, ErrNotPlayingPhase
	}
	if seat < 0 || seat >= NumSeats {
		return g, ErrPlayerNotFound
	}
	if seat != g.CurrentTurn {
		return g, ErrNotYourTurn
	}
	firstTrick := g.TrickNumber == 0
	if err := CanPlayCard(card, g.Players[seat].Hand, g.CurrentTrick, g.HeartsBroken, firstTrick); err != nil {
		return g, err
	}

	next := g.Clone()
	next.Players[seat].Hand = RemoveCard(next.Players[seat].Hand, card)
	next.CurrentTrick = append(next.CurrentTrick, TrickPlay{Seat: seat, Card: card})
	next.HeartsBroken = ShouldBreakHearts(card, next.HeartsBroken)

	if len(next.CurrentTrick) < NumSeats {
		next.CurrentTurn = NextSeat(seat)
		return next, nil
	}

	resolveTrick(next)
	if next.TrickNumber == TricksPerRound {
		completeRound(next)
	}
	return next, nil
}

// resolveTrick closes a 4-card trick: the winner collects any penalty
// cards and leads the next trick.
func resolveTrick(g *Game) {
	winIdx := TrickWinner(g.CurrentTrick)
	winner := g.CurrentTrick[winIdx].Seat

	g.RoundScores[winner] += TrickPoints(g.CurrentTrick)
	for _, play := range g.CurrentTrick {
		if IsPenaltyCard(play.Card) {
			g.PointsTaken[winner] = append(g.PointsTaken[winner], play.Card)
		}
	}

	g.LastTrick = g.CurrentTrick
	g.LastTrickWinner = winner
	g.CurrentTrick = nil
	g.TrickNumber++
	g.TrickLeader = winner
	g.CurrentTurn = winner
}

// completeRound folds round scores into cumulative scores after applying
// any moon shot, appends the round to history, and either ends the game or
// parks in round-complete until the host deals the next round. Game over
// is only evaluated here, never mid-round.
func completeRound(g *Game) {
	shooter, shot := CheckShootingTheMoon(g.RoundScores)
	if shot {
		g.RoundScores = ApplyShootingTheMoon(g.RoundScores, shooter)
	} else {
		shooter = -1
	}
	for i := range g.Scores {
		g.Scores[i] += g.RoundScores[i]
	}
	g.History = append(g.History, RoundRecord{
		Round:       g.Round,
		RoundScores: g.RoundScores,
		Totals:      g.Scores,
		MoonShooter: shooter,
	})

	if !gameOver(g.Scores, g.EndScore) {
		g.Phase = PhaseRoundComplete
		return
	}
	g.Phase = PhaseGameOver
	g.Winner = winningSeat(g.Scores)
}

func gameOver(scores [NumSeats]int, endScore int) bool {
	if endScore <= 0 {
		endScore = GameEndScore
	}
	for _, s := range scores {
		if s >= endScore {
			return true
		}
	}
	return false
}

// winningSeat is the seat with the lowest cumulative score, first index on
// a tie.
func winningSeat(scores [NumSeats]int) int {
	winner := 0
	for i := 1; i < NumSeats; i++ {
		if scores[i] < scores[winner] {
			winner = i
		}
	}
	return winner
}
