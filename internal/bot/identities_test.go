package bot

import (
	"math/rand"
	"testing"

	"hearts/internal/domain"
)

func TestLoadIdentities(t *testing.T) {
	if err := LoadIdentities("testdata/bot_identities.json"); err != nil {
		t.Fatalf("LoadIdentities failed: %v", err)
	}

	if !IsBot("bot-user-0002") {
		t.Error("bot-user-0002 should be recognized as a bot")
	}
	if IsBot("human-user") {
		t.Error("human-user should not be recognized as a bot")
	}

	identity, ok := GetBotConfig("bot-user-0003")
	if !ok {
		t.Fatal("missing identity for bot-user-0003")
	}
	if got := DifficultyOf(identity); got != domain.DifficultyHard {
		t.Errorf("difficulty = %s, want hard", got)
	}
	if got := GetBotDisplayName("bot-user-0003"); got != "Carl" {
		t.Errorf("display name = %q, want Carl", got)
	}
}

func TestGetBotIdentityWrapsPool(t *testing.T) {
	if err := LoadIdentities("testdata/bot_identities.json"); err != nil {
		t.Fatalf("LoadIdentities failed: %v", err)
	}
	first := GetBotIdentity(0)
	wrapped := GetBotIdentity(len(identityPool))
	if first.UserID != wrapped.UserID {
		t.Fatalf("index wrap: got %q, want %q", wrapped.UserID, first.UserID)
	}
}

func TestDifficultyOfUnknownDefaultsMedium(t *testing.T) {
	identity := BotIdentity{Difficulty: "impossible"}
	if got := DifficultyOf(identity); got != domain.DifficultyMedium {
		t.Fatalf("difficulty = %s, want medium", got)
	}
}

func TestNewAgentUsesIdentityDifficulty(t *testing.T) {
	if err := LoadIdentities("testdata/bot_identities.json"); err != nil {
		t.Fatalf("LoadIdentities failed: %v", err)
	}

	agent, err := NewAgent("bot-user-0001", rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("NewAgent failed: %v", err)
	}
	if agent.Difficulty != domain.DifficultyEasy {
		t.Errorf("difficulty = %s, want easy", agent.Difficulty)
	}
	if _, ok := agent.Strategy.(*EasyBot); !ok {
		t.Errorf("strategy = %T, want *EasyBot", agent.Strategy)
	}

	// Unknown IDs still get a playable medium agent.
	fallback, err := NewAgent("not-in-pool", rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("NewAgent fallback failed: %v", err)
	}
	if fallback.Difficulty != domain.DifficultyMedium {
		t.Errorf("fallback difficulty = %s, want medium", fallback.Difficulty)
	}
}
