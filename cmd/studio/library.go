package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/forge-studio/internal/engine"
	"github.com/vovakirdan/forge-studio/internal/platform/tui"
)

var flagMode string

func init() {
	rootCmd.Flags().StringVar(&flagMode, "mode", "", "Interaction variant: click or loop (default from config)")
}

// parseMode validates a --mode value; empty keeps the configured default.
func parseMode(s string, def engine.Mode) engine.Mode {
	switch m := engine.Mode(s); m {
	case "":
		return def
	case engine.ModeClick, engine.ModeLoop:
		return m
	default:
		exitf("unknown mode %q (use click or loop)", s)
		return def
	}
}

func runLibrary(_ *cobra.Command, _ []string) {
	a := openApp()
	defer a.close()

	mode := parseMode(flagMode, a.cfg.Engine.PlayMode())
	if err := tui.Run(a.svc, a.runtimeConfig(), mode); err != nil {
		a.close()
		exitf("%v", err)
	}
}
