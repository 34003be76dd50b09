package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
)

// KeyringService is the OS keyring service name for provider keys.
const KeyringService = "forge-studio"

// ErrNoAPIKey is returned when no key is configured for a provider.
var ErrNoAPIKey = errors.New("config: no api key configured")

// APIKey looks up the key for a provider: the configured env var first,
// then the OS keyring.
func (g GeneratorConfig) APIKey() (string, error) {
	if g.APIKeyEnv != "" {
		if v := strings.TrimSpace(os.Getenv(g.APIKeyEnv)); v != "" {
			return v, nil
		}
	}

	v, err := keyring.Get(KeyringService, g.Provider)
	if err == nil {
		return v, nil
	}
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrNoAPIKey
	}
	return "", fmt.Errorf("config: keyring get %s: %w", g.Provider, err)
}

// SetAPIKey stores a provider key in the OS keyring.
func SetAPIKey(provider, key string) error {
	provider = strings.TrimSpace(provider)
	if provider == "" {
		return fmt.Errorf("config: provider is required")
	}
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("config: key is empty")
	}
	if err := keyring.Set(KeyringService, provider, key); err != nil {
		return fmt.Errorf("config: keyring set %s: %w", provider, err)
	}
	return nil
}

// DeleteAPIKey removes a stored provider key. Missing keys are not an error.
func DeleteAPIKey(provider string) error {
	if err := keyring.Delete(KeyringService, provider); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("config: keyring delete %s: %w", provider, err)
	}
	return nil
}
