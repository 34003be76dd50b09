package config

import (
	_ "embed"
	"time"

	"github.com/vovakirdan/forge-studio/internal/engine"
)

//go:embed defaults/studio.yaml
var defaultStudioYAML []byte

// Default returns the hardcoded studio configuration.
func Default() Config {
	return Config{
		Storage: StorageConfig{
			Path: "~/.forge/studio.db",
		},
		Generator: GeneratorConfig{
			Provider:  "template",
			Model:     "gemini-2.5-flash",
			Endpoint:  "http://localhost:3000/api/generate",
			Timeout:   60 * time.Second,
			APIKeyEnv: "FORGE_API_KEY",
			Format:    "scene",
		},
		Engine: EngineConfig{
			Mode:       "click",
			Difficulty: DifficultyNormal,
			TickRate:   60,
			Lives:      engine.DefaultLives,
			OneHitLoss: true,
			Physics:    engine.DefaultPhysics(),
			Progression: engine.Progression{
				Type:            "score",
				MaxAt:           200,
				SpeedMultiplier: 1.0,
			},
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		SSH: SSHConfig{
			Host:    "localhost",
			Port:    23234,
			HostKey: ".ssh/forge_ed25519",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultStudioYAML
}
