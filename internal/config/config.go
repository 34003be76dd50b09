// Package config provides YAML-based studio configuration loading and
// difficulty presets.
package config

import (
	"time"

	"github.com/vovakirdan/forge-studio/internal/engine"
	"github.com/vovakirdan/forge-studio/internal/generate"
)

// Config is the full studio configuration.
type Config struct {
	Storage   StorageConfig   `yaml:"storage"`
	Generator GeneratorConfig `yaml:"generator"`
	Engine    EngineConfig    `yaml:"engine"`
	Server    ServerConfig    `yaml:"server"`
	SSH       SSHConfig       `yaml:"ssh"`
	Log       LogConfig       `yaml:"log"`
}

// StorageConfig locates the game library database.
type StorageConfig struct {
	Path string `yaml:"path"`
}

// GeneratorConfig selects and configures the generation provider.
type GeneratorConfig struct {
	Provider  string        `yaml:"provider"`
	Model     string        `yaml:"model"`
	Endpoint  string        `yaml:"endpoint"`
	Timeout   time.Duration `yaml:"timeout"`
	APIKeyEnv string        `yaml:"api_key_env"`
	Format    string        `yaml:"format"` // "scene" or "document"
}

// EngineConfig tunes play sessions.
type EngineConfig struct {
	Mode        string             `yaml:"mode"` // "click" or "loop"
	Difficulty  DifficultyPreset   `yaml:"difficulty"`
	TickRate    int                `yaml:"tick_rate"`
	Lives       int                `yaml:"lives"`
	OneHitLoss  bool               `yaml:"one_hit_loss"`
	Physics     engine.Physics     `yaml:"physics"`
	Progression engine.Progression `yaml:"progression"`
}

// ServerConfig is the HTTP studio listener.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// SSHConfig is the remote terminal listener.
type SSHConfig struct {
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
	HostKey string `yaml:"host_key"`
}

// LogConfig sets the logger level ("debug", "info", "warn", "error").
type LogConfig struct {
	Level string `yaml:"level"`
}

// Options returns the engine session options for this config.
func (e EngineConfig) Options() engine.Options {
	lives := e.Lives
	if lives <= 0 {
		lives = engine.DefaultLives
	}
	return engine.Options{
		Lives:       lives,
		Physics:     e.Physics,
		Progression: e.Progression,
		OneHitLoss:  e.OneHitLoss,
	}
}

// PlayMode returns the configured interaction variant, defaulting to click.
func (e EngineConfig) PlayMode() engine.Mode {
	if engine.Mode(e.Mode) == engine.ModeLoop {
		return engine.ModeLoop
	}
	return engine.ModeClick
}

// Settings returns provider settings; the key is looked up separately.
func (g GeneratorConfig) Settings(apiKey string) generate.Settings {
	return generate.Settings{
		Model:    g.Model,
		Endpoint: g.Endpoint,
		APIKey:   apiKey,
		Timeout:  g.Timeout,
	}
}

// RequestFormat returns the configured result format.
func (g GeneratorConfig) RequestFormat() generate.Format {
	if generate.Format(g.Format) == generate.FormatDocument {
		return generate.FormatDocument
	}
	return generate.FormatScene
}
