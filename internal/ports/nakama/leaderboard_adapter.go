package nakama

import (
	"context"
	"fmt"

	"hearts/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// NakamaLeaderboardAdapter implements ports.LeaderboardPort on Nakama's
// leaderboard API. Lower scores rank higher, matching Hearts.
type NakamaLeaderboardAdapter struct {
	nk runtime.NakamaModule
}

// NewNakamaLeaderboardAdapter creates a new leaderboard adapter.
func NewNakamaLeaderboardAdapter(nk runtime.NakamaModule) *NakamaLeaderboardAdapter {
	return &NakamaLeaderboardAdapter{nk: nk}
}

// EnsureLeaderboard creates the leaderboard if it does not exist.
func (a *NakamaLeaderboardAdapter) EnsureLeaderboard(ctx context.Context, leaderboardID string) error {
	if leaderboardID == "" {
		return nil
	}
	authoritative := true
	if err := a.nk.LeaderboardCreate(ctx, leaderboardID, authoritative, "asc", "best", "", nil, false); err != nil {
		return fmt.Errorf("failed to create leaderboard %s: %w", leaderboardID, err)
	}
	return nil
}

// SubmitScores writes the entries for one finished game.
func (a *NakamaLeaderboardAdapter) SubmitScores(ctx context.Context, leaderboardID string, entries []ports.ScoreEntry) error {
	if leaderboardID == "" {
		return nil
	}
	for _, entry := range entries {
		if _, err := a.nk.LeaderboardRecordWrite(ctx, leaderboardID, entry.UserID, entry.Username, entry.Score, 0, entry.Metadata, nil); err != nil {
			return fmt.Errorf("failed to write record for user %s: %w", entry.UserID, err)
		}
	}
	return nil
}

var _ ports.LeaderboardPort = (*NakamaLeaderboardAdapter)(nil)
