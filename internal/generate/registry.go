package generate

import (
	"fmt"
	"net/http"
	"sort"
	"sync"
	"time"
)

// Settings configure a provider instance.
type Settings struct {
	Model    string
	Endpoint string
	APIKey   string
	Timeout  time.Duration
	Client   *http.Client // optional, used by HTTP-based providers
}

// Factory builds a generator from settings.
type Factory func(Settings) (Generator, error)

var (
	factories = make(map[string]Factory)
	mu        sync.RWMutex
)

// Register adds a provider factory. Panics on duplicate names.
func Register(name string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[name]; exists {
		panic(fmt.Sprintf("generate: provider %q already registered", name))
	}
	factories[name] = f
}

// Providers returns the registered provider names, sorted.
func Providers() []string {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]string, 0, len(factories))
	for name := range factories {
		result = append(result, name)
	}
	sort.Strings(result)
	return result
}

// New builds the named provider.
func New(name string, s Settings) (Generator, error) {
	mu.RLock()
	f, ok := factories[name]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("generate: unknown provider %q", name)
	}
	return f(s)
}

// Exists checks if a provider is registered.
func Exists(name string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[name]
	return ok
}

func init() {
	Register("template", func(Settings) (Generator, error) { return NewTemplate(), nil })
	Register("http", func(s Settings) (Generator, error) {
		g, err := NewHTTP(s)
		if err != nil {
			return nil, err
		}
		return g, nil
	})
	Register("gemini", func(s Settings) (Generator, error) {
		g, err := NewGemini(s)
		if err != nil {
			return nil, err
		}
		return g, nil
	})
}
