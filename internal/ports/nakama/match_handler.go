package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"math/rand"
	"strconv"
	"time"

	"hearts/internal/app"
	"hearts/internal/bot"
	"hearts/internal/config"
	"hearts/internal/domain"
	"hearts/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// roundAdvanceDelayTicks is the pause between a round ending and the next
// deal going out.
const roundAdvanceDelayTicks = 4

// MatchState holds the authoritative runtime state for the Nakama match handler.
type MatchState struct {
	Seats     [domain.NumSeats]string `json:"seats"`      // user IDs, empty string means seat is empty
	OwnerSeat int                     `json:"owner_seat"` // seat index of the match owner
	Tick      int64                   `json:"tick"`

	Presences map[string]runtime.Presence `json:"-"` // userID -> presence for targeted messaging
	App       *app.Service                `json:"-"`
	Game      *domain.Game                `json:"-"` // nil while in lobby

	BotsEnabled      bool  `json:"bots_enabled"`
	BotMinDelay      int   `json:"bot_min_delay"`       // min ticks a bot waits before acting
	BotMaxDelay      int   `json:"bot_max_delay"`       // max ticks a bot waits before acting
	BotAutoFillDelay int   `json:"bot_auto_fill_delay"` // ticks to wait before auto-filling seats
	BotWaitUntil     int64 `json:"bot_wait_until"`      // tick when the scheduled bot action fires
	BotWaitSeat      int   `json:"bot_wait_seat"`       // seat the action was scheduled for
	WaitingSince     int64 `json:"waiting_since"`       // tick when a short-handed lobby started waiting

	ScoresSubmitted bool   `json:"scores_submitted"`
	LeaderboardID   string `json:"leaderboard_id"`

	Bots        map[string]*bot.Agent `json:"-"`
	Leaderboard ports.LeaderboardPort `json:"-"`

	rng *rand.Rand
}

func (ms *MatchState) GetOpenSeatsCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat == "" {
			count++
		}
	}
	return count
}

func (ms *MatchState) GetOccupiedSeatCount() int {
	return domain.NumSeats - ms.GetOpenSeatsCount()
}

func (ms *MatchState) GetHumanPlayerCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat != "" && !isBotUserId(seat) {
			count++
		}
	}
	return count
}

// isBotUserId reports whether the given user id represents a bot seat.
func isBotUserId(userId string) bool {
	return bot.IsBot(userId)
}

// isHumanSeat reports whether the seat index belongs to a human player.
func isHumanSeat(seats []string, seatIndex int) bool {
	if seatIndex < 0 || seatIndex >= len(seats) {
		return false
	}
	userId := seats[seatIndex]
	return userId != "" && !isBotUserId(userId)
}

// findFirstHumanSeat returns the first seat index with a human occupant or -1 if none exist.
func findFirstHumanSeat(seats []string) int {
	for i, userId := range seats {
		if userId != "" && !isBotUserId(userId) {
			return i
		}
	}
	return -1
}

// shouldTerminateNoHumans returns true when there are no humans in the match.
func shouldTerminateNoHumans(seats []string) bool {
	return findFirstHumanSeat(seats) == -1
}

// NewMatch is the factory function registered with Nakama.
func NewMatch(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule) (runtime.Match, error) {
	return &matchHandler{}, nil
}

type matchHandler struct{}

// MatchInit is called when the match is created.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	logger.Debug("MatchInit: Initializing match handler.")

	cfg := config.GetGameConfig()

	state := &MatchState{
		Tick:          time.Now().Unix(),
		Presences:     make(map[string]runtime.Presence),
		App:           app.NewService(nil),
		OwnerSeat:     -1,
		BotWaitSeat:   -1,
		BotsEnabled:   true,
		LeaderboardID: cfg.LeaderboardID,
		Bots:          make(map[string]*bot.Agent),
		Leaderboard:   NewNakamaLeaderboardAdapter(nk),
		rng:           rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	state.BotMinDelay = cfg.BotMinDelayMs / 1000
	state.BotMaxDelay = cfg.BotMaxDelayMs / 1000
	state.BotAutoFillDelay = cfg.BotAutoFillDelaySeconds

	// Env overrides win over file config.
	if env, ok := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string); ok {
		if val, ok := env["hearts_bots_enabled"]; ok {
			state.BotsEnabled = val == "true"
		}
		if val, ok := env["hearts_bot_min_delay_sec"]; ok {
			if i, err := strconv.Atoi(val); err == nil {
				state.BotMinDelay = i
			}
		}
		if val, ok := env["hearts_bot_max_delay_sec"]; ok {
			if i, err := strconv.Atoi(val); err == nil {
				state.BotMaxDelay = i
			}
		}
		if val, ok := env["hearts_bot_auto_fill_delay_sec"]; ok {
			if i, err := strconv.Atoi(val); err == nil {
				state.BotAutoFillDelay = i
			}
		}
	}

	if state.BotMinDelay <= 0 {
		state.BotMinDelay = 1
	}
	if state.BotMaxDelay < state.BotMinDelay {
		state.BotMaxDelay = state.BotMinDelay + 2
	}
	if state.BotAutoFillDelay <= 0 {
		state.BotAutoFillDelay = 5
	}

	labelBytes, err := json.Marshal(MatchLabel{
		Game:  "hearts",
		Open:  state.GetOpenSeatsCount(),
		Phase: "lobby",
	})
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}

	tickRate := 1
	return state, tickRate, string(labelBytes)
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	// Allow join if there is an empty seat OR a bot to replace before the
	// game starts.
	if matchState.GetOpenSeatsCount() <= 0 {
		hasBot := false
		if matchState.Game == nil {
			for _, seat := range matchState.Seats {
				if isBotUserId(seat) {
					hasBot = true
					break
				}
			}
		}
		if !hasBot {
			return state, false, "Match full"
		}
	}

	return state, true, ""
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		matchState.Presences[p.GetUserId()] = p

		// Assign seat: try empty seats first, then bots while in the lobby.
		assigned := false
		for i, seatUserId := range matchState.Seats {
			if seatUserId == "" {
				matchState.Seats[i] = p.GetUserId()
				assigned = true
				break
			}
		}

		if !assigned && matchState.Game == nil {
			for i, seatUserId := range matchState.Seats {
				if isBotUserId(seatUserId) {
					logger.Info("MatchJoin: Replacing bot %s with human %s in seat %d", seatUserId, p.GetUserId(), i)
					delete(matchState.Bots, seatUserId)
					matchState.Seats[i] = p.GetUserId()
					assigned = true
					break
				}
			}
		}

		if !assigned {
			logger.Warn("MatchJoin: User %s joined but no seat (empty or bot) was available.", p.GetUserId())
			continue
		}
	}

	// Owner must be a human player.
	if !isHumanSeat(matchState.Seats[:], matchState.OwnerSeat) {
		matchState.OwnerSeat = findFirstHumanSeat(matchState.Seats[:])
		if matchState.OwnerSeat >= 0 {
			logger.Debug("MatchJoin: Owner set to human seat %d.", matchState.OwnerSeat)
		}
	}

	for _, p := range presences {
		seat := matchState.seatOf(p.GetUserId())
		if seat < 0 {
			continue
		}
		mh.broadcastEvent(matchState, dispatcher, logger, app.Event{
			Kind:    app.EventPlayerJoined,
			Payload: app.PlayerJoinedPayload{UserID: p.GetUserId(), Seat: seat, Owner: seat == matchState.OwnerSeat},
		})
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastMatchState(matchState, dispatcher, logger)

	return matchState
}

// MatchLeave is called when one or more players leave the match.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		delete(matchState.Presences, p.GetUserId())

		for i, seatUserId := range matchState.Seats {
			if seatUserId != p.GetUserId() {
				continue
			}

			if matchState.Game != nil {
				// Mid-game the seat is handed to a bot so the table
				// keeps playing.
				mh.replaceSeatWithBot(matchState, i, logger)
			} else {
				matchState.Seats[i] = ""
			}
			logger.Debug("MatchLeave: User %s left seat %d.", p.GetUserId(), i)

			mh.broadcastEvent(matchState, dispatcher, logger, app.Event{
				Kind:    app.EventPlayerLeft,
				Payload: app.PlayerLeftPayload{UserID: p.GetUserId(), Seat: i},
			})
			break
		}
	}

	newOwnerSeat := findFirstHumanSeat(matchState.Seats[:])
	if newOwnerSeat != matchState.OwnerSeat {
		matchState.OwnerSeat = newOwnerSeat
		if newOwnerSeat >= 0 {
			logger.Debug("MatchLeave: Owner set to human seat %d.", newOwnerSeat)
		}
	}

	if shouldTerminateNoHumans(matchState.Seats[:]) {
		if matchState.Game != nil {
			matchState.Game.EndReason = "no_humans_remaining"
		}
		logger.Info("MatchLeave: Terminating match with no humans.")
		return nil
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastMatchState(matchState, dispatcher, logger)

	return matchState
}

// pickBotIdentity returns a pool identity not already seated at the table.
func pickBotIdentity(state *MatchState, seatHint int) bot.BotIdentity {
	for off := 0; off < 2*domain.NumSeats; off++ {
		identity := bot.GetBotIdentity(seatHint + off)
		if state.seatOf(identity.UserID) == -1 {
			return identity
		}
	}
	return bot.GetBotIdentity(seatHint)
}

// replaceSeatWithBot swaps a mid-game leaver for a bot agent bound to the
// same seat's hand.
func (mh *matchHandler) replaceSeatWithBot(state *MatchState, seat int, logger runtime.Logger) {
	identity := pickBotIdentity(state, seat)
	state.Seats[seat] = identity.UserID

	agent, err := bot.NewAgent(identity.UserID, state.rng)
	if err != nil {
		logger.Error("replaceSeatWithBot: Failed to create agent for %s: %v", identity.UserID, err)
		return
	}
	state.Bots[identity.UserID] = agent

	if state.Game != nil && seat >= 0 && seat < domain.NumSeats {
		state.Game.Players[seat].ID = identity.UserID
		state.Game.Players[seat].Name = identity.DisplayName
		state.Game.Players[seat].IsAI = true
		state.Game.Players[seat].Difficulty = bot.DifficultyOf(identity)
	}
	logger.Info("replaceSeatWithBot: Bot %s took over seat %d", identity.UserID, seat)
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	matchState.Tick = tick

	for _, msg := range messages {
		switch msg.GetOpCode() {
		case OpStartGame:
			mh.handleStartGame(matchState, dispatcher, logger, msg)
		case OpSubmitPass:
			mh.handleSubmitPass(ctx, matchState, dispatcher, logger, msg)
		case OpRevealReady:
			mh.handleRevealReady(ctx, matchState, dispatcher, logger, msg)
		case OpPlayCard:
			mh.handlePlayCard(ctx, matchState, dispatcher, logger, msg)
		case OpNewGame:
			mh.handleNewGame(matchState, dispatcher, logger, msg)
		default:
			logger.Warn("MatchLoop: Unknown opcode received: %d", msg.GetOpCode())
		}
	}

	if matchState.BotsEnabled {
		mh.processBots(ctx, matchState, dispatcher, logger)
	}

	return matchState
}

// Pending bot action kinds derived fresh each tick, so a stale schedule
// can never apply a move for a seat that lost its turn.
const (
	botActionNone = iota
	botActionPass
	botActionAck
	botActionPlay
	botActionAdvanceRound
)

// nextBotAction derives what, if anything, the bot layer should do next.
func nextBotAction(state *MatchState) (int, int) {
	g := state.Game
	if g == nil {
		return botActionNone, -1
	}

	switch g.Phase {
	case domain.PhasePassing:
		for seat, userID := range state.Seats {
			if !isBotUserId(userID) {
				continue
			}
			if _, submitted := g.PassSubmissions[seat]; !submitted {
				return botActionPass, seat
			}
		}
	case domain.PhaseRevealing:
		// A seat handed to a bot mid-reveal still needs its ack so the
		// table can enter play.
		for seat, userID := range state.Seats {
			if isBotUserId(userID) && !g.RevealReady[seat] {
				return botActionAck, seat
			}
		}
	case domain.PhasePlaying:
		if isBotUserId(state.Seats[g.CurrentTurn]) {
			return botActionPlay, g.CurrentTurn
		}
	case domain.PhaseRoundComplete:
		return botActionAdvanceRound, -1
	}
	return botActionNone, -1
}

func (mh *matchHandler) processBots(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	// Auto-fill the lobby with bots once humans have waited long enough.
	if state.Game == nil {
		humanCount := state.GetHumanPlayerCount()
		if humanCount >= 1 && state.GetOpenSeatsCount() > 0 {
			if state.WaitingSince == 0 {
				state.WaitingSince = state.Tick
				logger.Debug("processBots: Short-handed lobby, starting auto-fill timer.")
			}

			if state.Tick-state.WaitingSince >= int64(state.BotAutoFillDelay) {
				added := false
				for i, seat := range state.Seats {
					if seat != "" {
						continue
					}
					identity := pickBotIdentity(state, i)
					botID := identity.UserID
					state.Seats[i] = botID

					agent, err := bot.NewAgent(botID, state.rng)
					if err != nil {
						logger.Error("processBots: Failed to create bot agent for %s: %v", botID, err)
					} else {
						state.Bots[botID] = agent
					}

					logger.Info("processBots: Added bot %s (%s) to seat %d", identity.Username, botID, i)
					added = true
				}
				if added {
					mh.updateLabel(state, dispatcher, logger)
					mh.broadcastMatchState(state, dispatcher, logger)
				}
				state.WaitingSince = 0
			}
		} else {
			state.WaitingSince = 0
		}
		return
	}

	action, seat := nextBotAction(state)
	if action == botActionNone {
		state.BotWaitUntil = 0
		state.BotWaitSeat = -1
		return
	}

	if state.BotWaitUntil == 0 || state.BotWaitSeat != seat {
		delay := state.BotMinDelay
		if state.BotMaxDelay > state.BotMinDelay {
			delay += state.rng.Intn(state.BotMaxDelay - state.BotMinDelay + 1)
		}
		if action == botActionAdvanceRound {
			delay = roundAdvanceDelayTicks
		}
		state.BotWaitUntil = state.Tick + int64(delay)
		state.BotWaitSeat = seat
		return
	}

	if state.Tick < state.BotWaitUntil {
		return
	}
	state.BotWaitUntil = 0
	state.BotWaitSeat = -1

	switch action {
	case botActionPass:
		mh.botSubmitPass(ctx, state, dispatcher, logger, seat)
	case botActionAck:
		mh.botAckReveal(state, dispatcher, logger, seat)
	case botActionPlay:
		mh.botPlayCard(ctx, state, dispatcher, logger, seat)
	case botActionAdvanceRound:
		game, events := state.App.NextRound(state.Game)
		state.Game = game
		for _, ev := range events {
			mh.broadcastEvent(state, dispatcher, logger, ev)
		}
	}
}

func (mh *matchHandler) botSubmitPass(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, seat int) {
	botID := state.Seats[seat]
	agent := mh.agentFor(state, botID, logger)
	if agent == nil {
		return
	}

	selection := agent.ChoosePass(state.Game, seat)
	game, events, err := state.App.SubmitPass(state.Game, botID, selection)
	if err != nil {
		logger.Error("botSubmitPass: Bot %s (seat %d) pass rejected: %v", botID, seat, err)
		return
	}
	state.Game = game
	for _, ev := range events {
		mh.broadcastEvent(state, dispatcher, logger, ev)
	}
}

func (mh *matchHandler) botAckReveal(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, seat int) {
	botID := state.Seats[seat]
	game, events, err := state.App.ReadyForReveal(state.Game, botID)
	if err != nil {
		logger.Error("botAckReveal: Bot %s (seat %d) ack rejected: %v", botID, seat, err)
		return
	}
	state.Game = game
	for _, ev := range events {
		mh.broadcastEvent(state, dispatcher, logger, ev)
	}
}

func (mh *matchHandler) botPlayCard(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, seat int) {
	// Re-validate: the turn may have moved since the action was scheduled.
	if state.Game == nil || state.Game.Phase != domain.PhasePlaying || state.Game.CurrentTurn != seat {
		return
	}

	botID := state.Seats[seat]
	agent := mh.agentFor(state, botID, logger)
	if agent == nil {
		return
	}

	card, err := agent.ChoosePlay(state.Game, seat)
	if err != nil {
		logger.Error("botPlayCard: Bot %s (seat %d) failed to choose: %v", botID, seat, err)
		return
	}

	game, events, err := state.App.PlayCard(state.Game, botID, card)
	if err != nil {
		logger.Error("botPlayCard: Bot %s (seat %d) play rejected: %v", botID, seat, err)
		return
	}
	state.Game = game
	for _, ev := range events {
		mh.broadcastEvent(state, dispatcher, logger, ev)
	}
	mh.afterStateChange(ctx, state, dispatcher, logger)
}

func (mh *matchHandler) agentFor(state *MatchState, botID string, logger runtime.Logger) *bot.Agent {
	if agent, exists := state.Bots[botID]; exists {
		return agent
	}
	agent, err := bot.NewAgent(botID, state.rng)
	if err != nil {
		logger.Error("agentFor: Failed to create agent for %s: %v", botID, err)
		return nil
	}
	state.Bots[botID] = agent
	return agent
}

func (mh *matchHandler) broadcastMatchState(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	var playerStates []PlayerState
	for i, userId := range state.Seats {
		if userId == "" {
			continue
		}

		displayName := userId
		avatarIndex := 0
		isBot := isBotUserId(userId)
		if p, exists := state.Presences[userId]; exists {
			displayName = p.GetUsername()
		} else if isBot {
			if name := bot.GetBotDisplayName(userId); name != "" {
				displayName = name
			}
			if identity, ok := bot.GetBotConfig(userId); ok {
				avatarIndex = identity.AvatarIndex
			}
		}

		score := 0
		cardsRemaining := 0
		if state.Game != nil {
			score = state.Game.Scores[i]
			cardsRemaining = len(state.Game.Players[i].Hand)
		}

		playerStates = append(playerStates, PlayerState{
			UserID:         userId,
			Seat:           i,
			IsOwner:        i == state.OwnerSeat,
			IsBot:          isBot,
			DisplayName:    displayName,
			AvatarIndex:    avatarIndex,
			Score:          score,
			CardsRemaining: cardsRemaining,
		})
	}

	snapshot := MatchStateSnapshot{
		Seats:     state.Seats[:],
		OwnerSeat: state.OwnerSeat,
		Tick:      state.Tick,
		Players:   playerStates,
	}
	if state.Game != nil {
		snapshot.Phase = state.Game.Phase
	}

	bytes, err := json.Marshal(snapshot)
	if err != nil {
		logger.Error("broadcastMatchState: Failed to marshal snapshot: %v", err)
		return
	}
	dispatcher.BroadcastMessage(OpMatchState, bytes, nil, nil, true)
}

func (mh *matchHandler) handleStartGame(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	senderSeat := state.seatOf(senderID)

	logger.Info("StartGame: Request received from %s (seat=%d, owner_seat=%d, occupied=%d)", senderID, senderSeat, state.OwnerSeat, state.GetOccupiedSeatCount())

	if state.Game != nil {
		logger.Warn("StartGame: Game already in progress.")
		return
	}
	if senderSeat != state.OwnerSeat {
		logger.Warn("StartGame: User %s tried to start game but is not owner (owner_seat=%d)", senderID, state.OwnerSeat)
		return
	}
	if state.GetHumanPlayerCount() < app.MinHumansToStartGame {
		logger.Warn("StartGame: Cannot start with %d humans. Need at least %d.", state.GetHumanPlayerCount(), app.MinHumansToStartGame)
		return
	}

	// Fill any remaining seats with bots so the table is full.
	for i, seat := range state.Seats {
		if seat != "" {
			continue
		}
		identity := pickBotIdentity(state, i)
		state.Seats[i] = identity.UserID
		if agent, err := bot.NewAgent(identity.UserID, state.rng); err == nil {
			state.Bots[identity.UserID] = agent
		} else {
			logger.Error("StartGame: Failed to create bot agent for seat %d: %v", i, err)
		}
	}

	var players [domain.NumSeats]domain.Player
	for i, userID := range state.Seats {
		players[i] = domain.Player{ID: userID, Name: userID}
		if p, exists := state.Presences[userID]; exists {
			players[i].Name = p.GetUsername()
		} else if isBotUserId(userID) {
			identity, _ := bot.GetBotConfig(userID)
			players[i].Name = identity.DisplayName
			players[i].IsAI = true
			players[i].Difficulty = bot.DifficultyOf(identity)
		}
	}

	game, events := state.App.StartGame(players)
	if cfg := config.GetGameConfig(); cfg.GameEndScore > 0 {
		game.EndScore = cfg.GameEndScore
	}
	state.Game = game
	state.ScoresSubmitted = false

	mh.updateLabel(state, dispatcher, logger)
	mh.broadcastMatchState(state, dispatcher, logger)
	for _, ev := range events {
		mh.broadcastEvent(state, dispatcher, logger, ev)
	}

	logger.Info("StartGame: Game started, round %d passing %s.", game.Round, game.PassDirection)
}

func (mh *matchHandler) handleSubmitPass(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	if state.Game == nil {
		logger.Warn("handleSubmitPass: Game not started.")
		return
	}

	var request SubmitPassRequest
	if err := json.Unmarshal(msg.GetData(), &request); err != nil {
		logger.Error("handleSubmitPass: Failed to unmarshal request from %s: %v", senderID, err)
		mh.sendError(state, dispatcher, logger, senderID, 400, "invalid payload")
		return
	}

	game, events, err := state.App.SubmitPass(state.Game, senderID, request.Cards)
	if err != nil {
		logger.Warn("handleSubmitPass: User %s pass rejected: %v", senderID, err)
		mh.sendError(state, dispatcher, logger, senderID, 400, err.Error())
		return
	}
	state.Game = game

	for _, ev := range events {
		mh.broadcastEvent(state, dispatcher, logger, ev)
	}
}

func (mh *matchHandler) handleRevealReady(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	if state.Game == nil {
		logger.Warn("handleRevealReady: Game not started.")
		return
	}

	game, events, err := state.App.ReadyForReveal(state.Game, senderID)
	if err != nil {
		logger.Warn("handleRevealReady: User %s ack rejected: %v", senderID, err)
		mh.sendError(state, dispatcher, logger, senderID, 400, err.Error())
		return
	}
	state.Game = game

	for _, ev := range events {
		mh.broadcastEvent(state, dispatcher, logger, ev)
	}
}

func (mh *matchHandler) handlePlayCard(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	if state.Game == nil {
		logger.Warn("handlePlayCard: Game not started.")
		return
	}

	var request PlayCardRequest
	if err := json.Unmarshal(msg.GetData(), &request); err != nil {
		logger.Error("handlePlayCard: Failed to unmarshal request from %s: %v", senderID, err)
		mh.sendError(state, dispatcher, logger, senderID, 400, "invalid payload")
		return
	}

	game, events, err := state.App.PlayCard(state.Game, senderID, request.Card)
	if err != nil {
		logger.Warn("handlePlayCard: User %s failed to play %+v: %v", senderID, request.Card, err)
		mh.sendError(state, dispatcher, logger, senderID, 400, err.Error())
		return
	}
	state.Game = game

	for _, ev := range events {
		mh.broadcastEvent(state, dispatcher, logger, ev)
	}
	mh.afterStateChange(ctx, state, dispatcher, logger)
}

func (mh *matchHandler) handleNewGame(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	senderSeat := state.seatOf(senderID)

	if state.Game == nil || state.Game.Phase != domain.PhaseGameOver {
		logger.Warn("handleNewGame: No finished game to restart.")
		return
	}
	if senderSeat != state.OwnerSeat {
		logger.Warn("handleNewGame: User %s is not owner.", senderID)
		return
	}

	game, events := state.App.Rematch(state.Game)
	state.Game = game
	state.ScoresSubmitted = false

	mh.updateLabel(state, dispatcher, logger)
	for _, ev := range events {
		mh.broadcastEvent(state, dispatcher, logger, ev)
	}
}

// afterStateChange runs host-side consequences of a state transition that
// events alone do not cover.
func (mh *matchHandler) afterStateChange(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if state.Game == nil || state.Game.Phase != domain.PhaseGameOver {
		return
	}

	mh.updateLabel(state, dispatcher, logger)
	mh.submitFinalScores(ctx, state, logger)
}

// submitFinalScores records human standings once per finished game.
func (mh *matchHandler) submitFinalScores(ctx context.Context, state *MatchState, logger runtime.Logger) {
	if state.ScoresSubmitted || state.Leaderboard == nil || state.LeaderboardID == "" {
		return
	}
	state.ScoresSubmitted = true

	matchID, _ := ctx.Value(runtime.RUNTIME_CTX_MATCH_ID).(string)
	entries := make([]ports.ScoreEntry, 0, domain.NumSeats)
	for i, userID := range state.Seats {
		if userID == "" || isBotUserId(userID) {
			continue
		}
		username := userID
		if p, exists := state.Presences[userID]; exists {
			username = p.GetUsername()
		}
		entries = append(entries, ports.ScoreEntry{
			UserID:   userID,
			Username: username,
			Score:    int64(state.Game.Scores[i]),
			Metadata: map[string]interface{}{
				"match_id": matchID,
				"winner":   i == state.Game.Winner,
			},
		})
	}
	if len(entries) == 0 {
		return
	}
	if err := state.Leaderboard.SubmitScores(ctx, state.LeaderboardID, entries); err != nil {
		logger.Error("submitFinalScores: Failed to submit scores: %v", err)
	}
}

// broadcastEvent handles the conversion and dispatching of app events to Nakama.
func (mh *matchHandler) broadcastEvent(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, ev app.Event) {
	opCode, ok := eventOpCodes[ev.Kind]
	if !ok {
		logger.Warn("Unknown event kind: %v", ev.Kind)
		return
	}

	bytes, err := json.Marshal(ev.Payload)
	if err != nil {
		logger.Error("Failed to marshal event %v: %v", ev.Kind, err)
		return
	}

	// Determine recipients (default to broadcast).
	var recipients []runtime.Presence
	if len(ev.Recipients) > 0 {
		for _, uid := range ev.Recipients {
			if p, ok := state.Presences[uid]; ok {
				recipients = append(recipients, p)
			}
		}

		// A private event whose intended recipients are not connected
		// (e.g. bot seats) must not fall back to a broadcast.
		if len(recipients) == 0 {
			return
		}
	}

	dispatcher.BroadcastMessage(opCode, bytes, recipients, nil, true)
}

// sendError sends a GameErrorEvent to a specific user.
func (mh *matchHandler) sendError(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, code int, message string) {
	bytes, err := json.Marshal(GameErrorEvent{Code: code, Message: message})
	if err != nil {
		logger.Error("Failed to marshal GameErrorEvent: %v", err)
		return
	}

	presence, ok := state.Presences[userID]
	if !ok {
		logger.Warn("Cannot send error to %s: Presence not found", userID)
		return
	}

	dispatcher.BroadcastMessage(OpGameError, bytes, []runtime.Presence{presence}, nil, true)
}

func (ms *MatchState) seatOf(userID string) int {
	for i, seatUserId := range ms.Seats {
		if seatUserId == userID {
			return i
		}
	}
	return -1
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	phase := "lobby"
	if state.Game != nil && state.Game.Phase != domain.PhaseGameOver {
		phase = "playing"
	}

	labelBytes, err := json.Marshal(MatchLabel{
		Game:  "hearts",
		Open:  state.GetOpenSeatsCount(),
		Phase: phase,
	})
	if err != nil {
		logger.Error("UpdateLabel: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(string(labelBytes)); err != nil {
		logger.Error("UpdateLabel: Failed to update: %v", err)
	}
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, reason int) interface{} {
	logger.Debug("MatchTerminate: Match terminated for reason %d", reason)
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}
