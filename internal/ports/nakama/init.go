package nakama

import (
	"context"
	"database/sql"

	"hearts/internal/app"
	"hearts/internal/bot"
	"hearts/internal/config"

	"github.com/heroiclabs/nakama-common/runtime"
)

// voiceService is configured once at module load from the runtime env.
var voiceService *app.VoiceService

// InitModule wires RPCs and match handlers for the Nakama runtime.
func InitModule(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, initializer runtime.Initializer) error {
	if err := config.LoadGameConfig("data/game_config.json"); err != nil {
		logger.Warn("InitModule: Could not load game config: %v", err)
	}
	cfg := config.GetGameConfig()

	identitiesPath := cfg.BotIdentitiesPath
	if identitiesPath == "" {
		identitiesPath = "data/bot_identities.json"
	}
	if err := bot.LoadIdentities(identitiesPath); err != nil {
		logger.Warn("InitModule: Could not load bot identities: %v", err)
	} else if err := bot.ProvisionBots(ctx, nk, logger); err != nil {
		logger.Warn("InitModule: Could not provision bot accounts: %v", err)
	}

	if env, ok := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string); ok {
		voiceService = app.NewVoiceService(env["vivox_secret"], env["vivox_issuer"], env["vivox_domain"])
	}

	if cfg.LeaderboardID != "" {
		leaderboard := NewNakamaLeaderboardAdapter(nk)
		if err := leaderboard.EnsureLeaderboard(ctx, cfg.LeaderboardID); err != nil {
			logger.Warn("InitModule: Could not create leaderboard %s: %v", cfg.LeaderboardID, err)
		}
	}

	if err := RegisterRPCs(initializer); err != nil {
		return err
	}

	if err := initializer.RegisterMatch(MatchNameHearts, NewMatch); err != nil {
		return err
	}

	logger.Info("Hearts Go module loaded.")
	return nil
}
