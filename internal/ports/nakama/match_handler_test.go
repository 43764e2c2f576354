package nakama

import (
	"context"
	"encoding/json"
	"math/rand"
	"testing"

	"hearts/internal/app"
	"hearts/internal/bot"
	"hearts/internal/domain"
	"hearts/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// noopLogger implements runtime.Logger for tests that only need to satisfy the interface.
type noopLogger struct{}

func (noopLogger) Debug(string, ...interface{}) {}
func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}
func (noopLogger) WithField(string, interface{}) runtime.Logger {
	return noopLogger{}
}
func (noopLogger) WithFields(map[string]interface{}) runtime.Logger {
	return noopLogger{}
}
func (noopLogger) Fields() map[string]interface{} {
	return nil
}

// mockDispatcher records match dispatcher calls for assertions.
type mockDispatcher struct {
	broadcastCount int
	labelUpdates   int
	lastOpCode     int64
	lastData       []byte
	opCodes        []int64
}

func (md *mockDispatcher) BroadcastMessage(opCode int64, data []byte, presences []runtime.Presence, sender runtime.Presence, reliable bool) error {
	md.broadcastCount++
	md.lastOpCode = opCode
	md.lastData = append([]byte(nil), data...)
	md.opCodes = append(md.opCodes, opCode)
	return nil
}

func (md *mockDispatcher) BroadcastMessageDeferred(opCode int64, data []byte, presences []runtime.Presence, sender runtime.Presence, reliable bool) error {
	return nil
}

func (md *mockDispatcher) MatchKick(presences []runtime.Presence) error {
	return nil
}

func (md *mockDispatcher) MatchLabelUpdate(label string) error {
	md.labelUpdates++
	return nil
}

func (md *mockDispatcher) sawOpCode(opCode int64) bool {
	for _, op := range md.opCodes {
		if op == opCode {
			return true
		}
	}
	return false
}

// mockPresence is a minimal runtime.Presence for a connected user.
type mockPresence struct {
	userID   string
	username string
}

func (mp mockPresence) GetUserId() string                 { return mp.userID }
func (mp mockPresence) GetSessionId() string              { return "session-" + mp.userID }
func (mp mockPresence) GetNodeId() string                 { return "node" }
func (mp mockPresence) GetHidden() bool                   { return false }
func (mp mockPresence) GetPersistence() bool              { return true }
func (mp mockPresence) GetUsername() string               { return mp.username }
func (mp mockPresence) GetStatus() string                 { return "" }
func (mp mockPresence) GetReason() runtime.PresenceReason { return runtime.PresenceReasonUnknown }

// mockMatchData wraps a client message for the handler entry points.
type mockMatchData struct {
	mockPresence
	opCode int64
	data   []byte
}

func (mm mockMatchData) GetOpCode() int64      { return mm.opCode }
func (mm mockMatchData) GetData() []byte       { return mm.data }
func (mm mockMatchData) GetReliable() bool     { return true }
func (mm mockMatchData) GetReceiveTime() int64 { return 0 }

// mockLeaderboard records submitted score entries.
type mockLeaderboard struct {
	submissions map[string][]ports.ScoreEntry
}

func (ml *mockLeaderboard) EnsureLeaderboard(ctx context.Context, leaderboardID string) error {
	return nil
}

func (ml *mockLeaderboard) SubmitScores(ctx context.Context, leaderboardID string, entries []ports.ScoreEntry) error {
	if ml.submissions == nil {
		ml.submissions = make(map[string][]ports.ScoreEntry)
	}
	ml.submissions[leaderboardID] = append(ml.submissions[leaderboardID], entries...)
	return nil
}

func init() {
	if err := bot.LoadIdentities("testdata/bot_identities.json"); err != nil {
		panic("Failed to load bot identities for tests: " + err.Error())
	}
}

func newTestState(seed int64) *MatchState {
	return &MatchState{
		Seats:       [domain.NumSeats]string{},
		OwnerSeat:   -1,
		BotWaitSeat: -1,
		Presences:   make(map[string]runtime.Presence),
		App:         app.NewService(rand.New(rand.NewSource(seed))),
		BotsEnabled: true,
		BotMinDelay: 1,
		BotMaxDelay: 1,
		Bots:        make(map[string]*bot.Agent),
		rng:         rand.New(rand.NewSource(seed)),
	}
}

func seatHuman(state *MatchState, seat int, userID string) {
	state.Seats[seat] = userID
	state.Presences[userID] = mockPresence{userID: userID, username: userID}
	if state.OwnerSeat < 0 {
		state.OwnerSeat = seat
	}
}

func TestFindFirstHumanSeat(t *testing.T) {
	bot1 := bot.GetBotIdentity(0).UserID
	bot2 := bot.GetBotIdentity(1).UserID

	tests := []struct {
		name  string
		seats []string
		want  int
	}{
		{
			name:  "FirstHumanAfterBot",
			seats: []string{bot1, "user-1", "", ""},
			want:  1,
		},
		{
			name:  "AllBots",
			seats: []string{bot1, bot2, "", ""},
			want:  -1,
		},
		{
			name:  "AllEmpty",
			seats: []string{"", "", "", ""},
			want:  -1,
		},
		{
			name:  "FirstHumanIsSeatZero",
			seats: []string{"user-1", bot1, "user-2", ""},
			want:  0,
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			if got := findFirstHumanSeat(test.seats); got != test.want {
				t.Fatalf("findFirstHumanSeat() = %d, want %d", got, test.want)
			}
		})
	}
}

func TestShouldTerminateNoHumans(t *testing.T) {
	bot1 := bot.GetBotIdentity(0).UserID
	bot2 := bot.GetBotIdentity(1).UserID

	tests := []struct {
		name  string
		seats []string
		want  bool
	}{
		{
			name:  "BotsOnly",
			seats: []string{bot1, bot2, "", ""},
			want:  true,
		},
		{
			name:  "HumansPresent",
			seats: []string{bot1, "user-1", "", ""},
			want:  false,
		},
		{
			name:  "AllEmpty",
			seats: []string{"", "", "", ""},
			want:  true,
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			if got := shouldTerminateNoHumans(test.seats); got != test.want {
				t.Fatalf("shouldTerminateNoHumans() = %t, want %t", got, test.want)
			}
		})
	}
}

func TestMatchLabelMarshal(t *testing.T) {
	tests := []struct {
		name     string
		label    MatchLabel
		expected string
	}{
		{
			name:     "LobbyState",
			label:    MatchLabel{Game: "hearts", Open: 3, Phase: "lobby"},
			expected: `{"game":"hearts","open":3,"phase":"lobby"}`,
		},
		{
			name:     "PlayingState",
			label:    MatchLabel{Game: "hearts", Open: 0, Phase: "playing"},
			expected: `{"game":"hearts","open":0,"phase":"playing"}`,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			payload, err := json.Marshal(test.label)
			if err != nil {
				t.Fatalf("Failed to marshal label: %v", err)
			}
			if string(payload) != test.expected {
				t.Errorf("Got %s, want %s", payload, test.expected)
			}
		})
	}
}

func TestProcessBotsAutoFillsLobby(t *testing.T) {
	handler := &matchHandler{}
	dispatcher := &mockDispatcher{}
	state := newTestState(1)
	seatHuman(state, 0, "user-1")
	state.BotAutoFillDelay = 2
	state.WaitingSince = 8
	state.Tick = 10

	handler.processBots(context.Background(), state, dispatcher, noopLogger{})

	botCount := 0
	for _, seat := range state.Seats {
		if isBotUserId(seat) {
			botCount++
		}
	}
	if botCount != 3 {
		t.Fatalf("Expected 3 bots, got %d", botCount)
	}
	if state.GetOpenSeatsCount() != 0 {
		t.Fatalf("Expected 0 open seats after auto-fill, got %d", state.GetOpenSeatsCount())
	}
	if state.WaitingSince != 0 {
		t.Fatalf("Expected auto-fill timer reset, got %d", state.WaitingSince)
	}
	if dispatcher.broadcastCount == 0 || dispatcher.labelUpdates == 0 {
		t.Fatal("Expected match state broadcast and label update after auto-fill")
	}

	// Distinct identities per seat.
	seen := make(map[string]bool)
	for _, seat := range state.Seats {
		if seen[seat] {
			t.Fatalf("Seat user %s assigned twice", seat)
		}
		seen[seat] = true
	}
}

func TestHandleStartGameFillsSeatsAndDeals(t *testing.T) {
	handler := &matchHandler{}
	dispatcher := &mockDispatcher{}
	state := newTestState(2)
	seatHuman(state, 0, "user-1")

	msg := mockMatchData{
		mockPresence: mockPresence{userID: "user-1", username: "user-1"},
		opCode:       OpStartGame,
	}
	handler.handleStartGame(state, dispatcher, noopLogger{}, msg)

	if state.Game == nil {
		t.Fatal("Expected game to start")
	}
	if state.Game.Phase != domain.PhasePassing {
		t.Fatalf("phase = %s, want passing", state.Game.Phase)
	}
	aiSeats := 0
	for _, p := range state.Game.Players {
		if p.IsAI {
			aiSeats++
		}
		if len(p.Hand) != domain.HandSize {
			t.Fatalf("player %s hand size = %d, want %d", p.ID, len(p.Hand), domain.HandSize)
		}
	}
	if aiSeats != 3 {
		t.Fatalf("AI seats = %d, want 3", aiSeats)
	}
	if !dispatcher.sawOpCode(OpGameStarted) {
		t.Fatal("Expected game_started broadcast")
	}
	if !dispatcher.sawOpCode(OpHandDealt) {
		t.Fatal("Expected hand_dealt message for the human seat")
	}
}

func TestHandleStartGameRejectsNonOwner(t *testing.T) {
	handler := &matchHandler{}
	dispatcher := &mockDispatcher{}
	state := newTestState(3)
	seatHuman(state, 0, "user-1")
	seatHuman(state, 1, "user-2")

	msg := mockMatchData{
		mockPresence: mockPresence{userID: "user-2", username: "user-2"},
		opCode:       OpStartGame,
	}
	handler.handleStartGame(state, dispatcher, noopLogger{}, msg)

	if state.Game != nil {
		t.Fatal("Non-owner must not be able to start the game")
	}
}

func TestBotsDriveRoundWithOneHuman(t *testing.T) {
	handler := &matchHandler{}
	dispatcher := &mockDispatcher{}
	ctx := context.Background()
	state := newTestState(4)
	seatHuman(state, 0, "user-1")

	start := mockMatchData{
		mockPresence: mockPresence{userID: "user-1", username: "user-1"},
		opCode:       OpStartGame,
	}
	handler.handleStartGame(state, dispatcher, noopLogger{}, start)
	if state.Game == nil {
		t.Fatal("game did not start")
	}

	for tick := int64(1); tick < 2000; tick++ {
		state.Tick = tick
		g := state.Game

		if len(g.History) > 0 {
			break
		}

		switch g.Phase {
		case domain.PhasePassing:
			if _, submitted := g.PassSubmissions[0]; !submitted {
				payload, _ := json.Marshal(SubmitPassRequest{Cards: g.Players[0].Hand[:domain.CardsPerPass]})
				handler.handleSubmitPass(ctx, state, dispatcher, noopLogger{}, mockMatchData{
					mockPresence: mockPresence{userID: "user-1", username: "user-1"},
					opCode:       OpSubmitPass,
					data:         payload,
				})
			}
		case domain.PhaseRevealing:
			if !g.RevealReady[0] {
				handler.handleRevealReady(ctx, state, dispatcher, noopLogger{}, mockMatchData{
					mockPresence: mockPresence{userID: "user-1", username: "user-1"},
					opCode:       OpRevealReady,
				})
			}
		case domain.PhasePlaying:
			if g.CurrentTurn == 0 {
				payload, _ := json.Marshal(PlayCardRequest{Card: firstLegal(t, g, 0)})
				handler.handlePlayCard(ctx, state, dispatcher, noopLogger{}, mockMatchData{
					mockPresence: mockPresence{userID: "user-1", username: "user-1"},
					opCode:       OpPlayCard,
					data:         payload,
				})
			}
		}

		handler.processBots(ctx, state, dispatcher, noopLogger{})
	}

	if len(state.Game.History) == 0 {
		t.Fatalf("round never completed, phase = %s, trick = %d", state.Game.Phase, state.Game.TrickNumber)
	}
	record := state.Game.History[0]
	total := 0
	for _, score := range record.RoundScores {
		total += score
	}
	if total != domain.TotalPenaltyPoints && total != 3*domain.TotalPenaltyPoints {
		t.Fatalf("round scores %v sum to %d", record.RoundScores, total)
	}
	if !dispatcher.sawOpCode(OpTrickWon) {
		t.Fatal("expected trick_won broadcasts")
	}
	if !dispatcher.sawOpCode(OpRoundEnded) {
		t.Fatal("expected round_ended broadcast")
	}
}

func TestSubmitFinalScoresSkipsBots(t *testing.T) {
	handler := &matchHandler{}
	state := newTestState(5)
	leaderboard := &mockLeaderboard{}
	state.Leaderboard = leaderboard
	state.LeaderboardID = "hearts_standings"

	botID := bot.GetBotIdentity(0).UserID
	seatHuman(state, 0, "user-1")
	seatHuman(state, 1, "user-2")
	state.Seats[2] = botID
	state.Seats[3] = bot.GetBotIdentity(1).UserID

	state.Game = &domain.Game{
		Phase:  domain.PhaseGameOver,
		Scores: [domain.NumSeats]int{101, 55, 80, 70},
		Winner: 1,
	}

	handler.submitFinalScores(context.Background(), state, noopLogger{})

	entries := leaderboard.submissions["hearts_standings"]
	if len(entries) != 2 {
		t.Fatalf("submitted %d entries, want 2 humans", len(entries))
	}
	for _, entry := range entries {
		if isBotUserId(entry.UserID) {
			t.Fatalf("bot %s must not reach the leaderboard", entry.UserID)
		}
	}
	if !state.ScoresSubmitted {
		t.Fatal("scores_submitted flag not set")
	}

	// Second call must not double-submit.
	handler.submitFinalScores(context.Background(), state, noopLogger{})
	if got := len(leaderboard.submissions["hearts_standings"]); got != 2 {
		t.Fatalf("re-submission added entries, now %d", got)
	}
}

func TestMatchLeaveMidGameHandsSeatToBot(t *testing.T) {
	handler := &matchHandler{}
	dispatcher := &mockDispatcher{}
	state := newTestState(6)
	seatHuman(state, 0, "user-1")
	seatHuman(state, 1, "user-2")

	start := mockMatchData{
		mockPresence: mockPresence{userID: "user-1", username: "user-1"},
		opCode:       OpStartGame,
	}
	handler.handleStartGame(state, dispatcher, noopLogger{}, start)

	result := handler.MatchLeave(context.Background(), noopLogger{}, nil, nil, dispatcher, 1, state,
		[]runtime.Presence{mockPresence{userID: "user-2", username: "user-2"}})
	if result == nil {
		t.Fatal("match must continue while a human remains")
	}

	next := result.(*MatchState)
	if !isBotUserId(next.Seats[1]) {
		t.Fatalf("seat 1 = %q, want a bot takeover", next.Seats[1])
	}
	if !next.Game.Players[1].IsAI {
		t.Fatal("game seat 1 not marked AI after takeover")
	}
	if next.OwnerSeat != 0 {
		t.Fatalf("owner seat = %d, want 0", next.OwnerSeat)
	}
}

func TestMatchLeaveLastHumanTerminates(t *testing.T) {
	handler := &matchHandler{}
	dispatcher := &mockDispatcher{}
	state := newTestState(7)
	seatHuman(state, 0, "user-1")

	start := mockMatchData{
		mockPresence: mockPresence{userID: "user-1", username: "user-1"},
		opCode:       OpStartGame,
	}
	handler.handleStartGame(state, dispatcher, noopLogger{}, start)
	game := state.Game

	result := handler.MatchLeave(context.Background(), noopLogger{}, nil, nil, dispatcher, 1, state,
		[]runtime.Presence{mockPresence{userID: "user-1", username: "user-1"}})
	if result != nil {
		t.Fatal("match must terminate when the last human leaves")
	}
	if game.EndReason != "no_humans_remaining" {
		t.Fatalf("end reason = %q, want no_humans_remaining", game.EndReason)
	}
}

func firstLegal(t *testing.T, g *domain.Game, seat int) domain.Card {
	t.Helper()
	hand := g.Players[seat].Hand
	for _, c := range hand {
		if domain.CanPlayCard(c, hand, g.CurrentTrick, g.HeartsBroken, g.TrickNumber == 0) == nil {
			return c
		}
	}
	t.Fatalf("seat %d has no legal card", seat)
	return domain.Card{}
}
