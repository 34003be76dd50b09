package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (use easy, normal, hard or fixed)", s)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// ApplyPreset modifies the engine config based on a difficulty preset.
// Normal keeps the configured lives and physics.
func ApplyPreset(cfg *EngineConfig, preset DifficultyPreset) {
	cfg.Difficulty = preset
	if preset == DifficultyFixed {
		cfg.Progression.Type = "none"
		return
	}
	cfg.Progression.InitialLevel = InitialLevelForPreset(preset)

	switch preset {
	case DifficultyEasy:
		cfg.Lives = 5
		cfg.OneHitLoss = false
		cfg.Physics.EnemySpeed = 1.5
	case DifficultyHard:
		cfg.Lives = 2
		cfg.OneHitLoss = true
		cfg.Physics.EnemySpeed = 3
	}
}
