package nakama

import (
	"context"
	"database/sql"
	"encoding/json"

	"hearts/internal/app"

	"github.com/heroiclabs/nakama-common/runtime"
)

type voiceTokenRequest struct {
	Action  string `json:"action"`   // "login" or "join"
	MatchID string `json:"match_id"` // required for join
}

type voiceTokenResponse struct {
	Token   string `json:"token"`
	Channel string `json:"channel,omitempty"`
}

// rpcVoiceToken mints a Vivox token so the caller can log in to voice or
// join its table's channel.
func rpcVoiceToken(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)
	if userID == "" {
		return "", runtime.NewError("user id missing", 16) // UNAUTHENTICATED
	}

	var req voiceTokenRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		return "", runtime.NewError("invalid payload", 3) // INVALID_ARGUMENT
	}

	channel := ""
	if req.Action == app.VoiceTokenActionJoin {
		if req.MatchID == "" {
			return "", runtime.NewError("match_id required for join", 3)
		}
		channel = app.TableChannel(req.MatchID)
	}

	token, err := voiceService.GenerateToken(userID, req.Action, channel)
	if err != nil {
		logger.Error("rpcVoiceToken: failed to generate token for %s: %v", userID, err)
		return "", runtime.NewError("internal error", 13) // INTERNAL
	}

	b, _ := json.Marshal(voiceTokenResponse{Token: token, Channel: channel})
	return string(b), nil
}
