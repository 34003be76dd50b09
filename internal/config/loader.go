package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load loads the studio configuration.
// Search order: customPath -> ~/.forge/studio.yaml -> ./configs/studio.yaml -> embedded default
// Files are decoded over the hardcoded defaults, so partial files are fine.
func Load(customPath string) (Config, error) {
	cfg := Default()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return finish(cfg), nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("studio.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return finish(cfg), nil
			}
			cfg = Default()
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/studio.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return finish(cfg), nil
		}
		cfg = Default()
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultStudioYAML, &cfg); err != nil {
		return finish(Default()), nil // Fallback to hardcoded if embed fails
	}
	return finish(cfg), nil
}

// Marshal renders a config as YAML.
func Marshal(cfg Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: marshal: %w", err)
	}
	return data, nil
}

func finish(cfg Config) Config {
	cfg.Storage.Path = ExpandHome(cfg.Storage.Path)
	ApplyPreset(&cfg.Engine, cfg.Engine.Difficulty)
	return cfg
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".forge", filename)
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
