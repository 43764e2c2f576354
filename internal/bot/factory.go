package bot

import (
	"fmt"
	"math/rand"

	"hearts/internal/domain"
)

// NewBrain creates an AI brain for the given difficulty tier. The rng is
// used only to break ties among equally ranked candidates; pass nil for a
// time-seeded source.
func NewBrain(difficulty domain.Difficulty, rng *rand.Rand) (Brain, error) {
	rng = defaultRNG(rng)
	switch difficulty {
	case domain.DifficultyEasy:
		return &EasyBot{rng: rng}, nil
	case domain.DifficultyMedium:
		return &MediumBot{rng: rng}, nil
	case domain.DifficultyHard:
		return &HardBot{MediumBot{rng: rng}}, nil
	default:
		return nil, fmt.Errorf("unknown difficulty: %q", difficulty)
	}
}
