package ports

import "context"

// ScoreEntry is one player's final standing for leaderboard submission.
type ScoreEntry struct {
	UserID   string
	Username string
	Score    int64
	Metadata map[string]interface{}
}

// LeaderboardPort records final game standings.
type LeaderboardPort interface {
	// EnsureLeaderboard creates the leaderboard if it does not exist.
	EnsureLeaderboard(ctx context.Context, leaderboardID string) error

	// SubmitScores writes the entries for one finished game.
	SubmitScores(ctx context.Context, leaderboardID string, entries []ScoreEntry) error
}
