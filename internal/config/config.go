package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

type GameConfig struct {
	// GameEndScore is the cumulative score that ends the game.
	GameEndScore int `json:"game_end_score"`
	// TurnDurationSeconds bounds how long a human may sit on a turn.
	TurnDurationSeconds int `json:"turn_duration_seconds"`
	// BotAutoFillDelaySeconds configures how many seconds to wait before
	// filling empty seats with bots in a lobby that has humans waiting.
	BotAutoFillDelaySeconds int `json:"bot_auto_fill_delay_seconds"`
	// BotMinDelayMs and BotMaxDelayMs bracket the thinking pause before a
	// bot acts, so AI seats do not respond instantly.
	BotMinDelayMs int `json:"bot_min_delay_ms"`
	BotMaxDelayMs int `json:"bot_max_delay_ms"`
	// LeaderboardID receives final standings at game over. Empty disables
	// leaderboard writes.
	LeaderboardID string `json:"leaderboard_id"`
	// BotIdentitiesPath points at the bot profile pool.
	BotIdentitiesPath string `json:"bot_identities_path"`
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// LoadGameConfig loads the game configuration from the given path.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read game config: %w", err)
			return
		}

		var c GameConfig
		if err := json.Unmarshal(data, &c); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal game config: %w", err)
			return
		}
		cfg = &c
	})
	return loadErr
}

// GetGameConfig returns the global game configuration, with safe defaults
// when no file was loaded.
func GetGameConfig() *GameConfig {
	if cfg == nil {
		return &GameConfig{
			GameEndScore:            100,
			TurnDurationSeconds:     30,
			BotAutoFillDelaySeconds: 10,
			BotMinDelayMs:           600,
			BotMaxDelayMs:           2200,
		}
	}
	return cfg
}
