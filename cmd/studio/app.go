package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/forge-studio/internal/config"
	"github.com/vovakirdan/forge-studio/internal/core"
	"github.com/vovakirdan/forge-studio/internal/generate"
	"github.com/vovakirdan/forge-studio/internal/storage"
	"github.com/vovakirdan/forge-studio/internal/studio"
)

// app holds what every command needs once flags are parsed.
type app struct {
	cfg    config.Config
	logger *log.Logger
	store  *storage.Store
	svc    *studio.Service
}

// exitf prints an error and exits.
func exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// loadConfig loads the config file and applies the global flag overrides.
func loadConfig() config.Config {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		exitf("%v", err)
	}
	if flagDBPath != "" {
		cfg.Storage.Path = config.ExpandHome(flagDBPath)
	}
	if flagDifficulty != "" {
		preset, err := config.ParsePreset(flagDifficulty)
		if err != nil {
			exitf("%v", err)
		}
		config.ApplyPreset(&cfg.Engine, preset)
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	return cfg
}

func newLogger(level string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	})
	if lvl, err := log.ParseLevel(level); err == nil {
		logger.SetLevel(lvl)
	} else {
		logger.Warn("unknown log level, using info", "level", level)
	}
	return logger
}

// newGenerator builds the configured provider. A missing key is only a
// warning here: providers that need one fail on their own.
func newGenerator(cfg config.GeneratorConfig, logger *log.Logger) generate.Generator {
	key := ""
	if cfg.Provider != "template" {
		k, err := cfg.APIKey()
		switch {
		case err == nil:
			key = k
		case errors.Is(err, config.ErrNoAPIKey):
			logger.Warn("no api key", "provider", cfg.Provider, "env", cfg.APIKeyEnv)
		default:
			logger.Warn("api key lookup failed", "provider", cfg.Provider, "err", err)
		}
	}

	gen, err := generate.New(cfg.Provider, cfg.Settings(key))
	if err != nil {
		exitf("%v (providers: %v)", err, generate.Providers())
	}
	return gen
}

// openApp loads config, opens the library and builds the service.
// The caller must close the store.
func openApp() *app {
	cfg := loadConfig()
	logger := newLogger(cfg.Log.Level)

	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		exitf("could not open game library: %v", err)
	}

	svc := studio.NewService(store, newGenerator(cfg.Generator, logger), logger, studio.Config{
		Format:   cfg.Generator.RequestFormat(),
		Mode:     cfg.Engine.PlayMode(),
		Options:  cfg.Engine.Options(),
		TickRate: cfg.Engine.TickRate,
	})
	return &app{cfg: cfg, logger: logger, store: store, svc: svc}
}

func (a *app) close() {
	if err := a.store.Close(); err != nil {
		a.logger.Warn("closing library", "err", err)
	}
}

// runtimeConfig sizes the host surface to the terminal.
func (a *app) runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	if a.cfg.Engine.TickRate > 0 {
		cfg.TickRate = a.cfg.Engine.TickRate
	}
	return cfg
}
