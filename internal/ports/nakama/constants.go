package nakama

const (
	// RpcQuickMatch is the Nakama RPC id clients call to find or create a lobby-capable match.
	RpcQuickMatch = "quick_match"

	// RpcVoiceToken is the Nakama RPC id clients call for a table voice token.
	RpcVoiceToken = "voice_token"

	// MatchNameHearts is the authoritative match handler name registered with Nakama.
	MatchNameHearts = "hearts_match"
)

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpStartGame   int64 = 1
	OpSubmitPass  int64 = 2
	OpRevealReady int64 = 3
	OpPlayCard    int64 = 4
	OpNewGame     int64 = 5

	// Server -> Client events
	OpPlayerJoined  int64 = 101
	OpPlayerLeft    int64 = 102
	OpGameStarted   int64 = 103
	OpHandDealt     int64 = 104 // sent privately
	OpPassSubmitted int64 = 105
	OpCardsReceived int64 = 106 // sent privately
	OpRevealAcked   int64 = 107
	OpPlayStarted   int64 = 108
	OpCardPlayed    int64 = 109
	OpTrickWon      int64 = 110
	OpRoundStarted  int64 = 111
	OpRoundEnded    int64 = 112
	OpGameEnded     int64 = 113
	OpMatchState    int64 = 114
	OpGameError     int64 = 115
)
