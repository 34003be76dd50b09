package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/forge-studio/internal/generate"
)

const generateTimeout = 2 * time.Minute

var (
	flagFormat    string
	flagGameType  string
	flagGenLevel  string
	flagTheme     string
	flagGenAndRun bool
)

var generateCmd = &cobra.Command{
	Use:   "generate <prompt>",
	Short: "Generate a game from a prompt and store it",
	Long: `Ask the configured provider for a game and add it to the library.

A scene is a declarative list of shapes played by the built-in engine. A
document is a self-contained HTML page that only ever runs inside a sandbox
(see 'studio serve').

Examples:
  studio generate "collect coins in a forest"
  studio generate "space shooter with asteroids" --type shooter --theme space
  studio generate "maze runner" --format document
  studio generate "jump over crabs underwater" --play`,
	Args: cobra.MinimumNArgs(1),
	Run:  runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&flagFormat, "format", "", "Result format: scene or document (default from config)")
	generateCmd.Flags().StringVar(&flagGameType, "type", "", "Game kind hint: platformer, shooter, puzzle, ...")
	generateCmd.Flags().StringVar(&flagGenLevel, "level", "", "Difficulty hint passed to the provider")
	generateCmd.Flags().StringVar(&flagTheme, "theme", "", "Theme hint: space, forest, underwater, ...")
	generateCmd.Flags().BoolVar(&flagGenAndRun, "play", false, "Play the game right away (scenes only)")
}

func runGenerate(_ *cobra.Command, args []string) {
	a := openApp()
	defer a.close()

	req := generate.Request{
		Prompt: strings.Join(args, " "),
		Options: generate.Options{
			GameType:   flagGameType,
			Difficulty: flagGenLevel,
			Theme:      flagTheme,
		},
		Format: generate.Format(flagFormat),
	}

	timeout := a.cfg.Generator.Timeout
	if timeout <= 0 {
		timeout = generateTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	fmt.Printf("Generating with %s...\n", a.svc.Generator().Name())
	g, err := a.svc.Generate(ctx, req)
	if err != nil {
		a.close()
		exitf("%s", generate.UserMessage(err))
	}

	fmt.Println()
	fmt.Printf("  ID      %s\n", g.ID)
	fmt.Printf("  Title   %s\n", g.Title)
	fmt.Printf("  Format  %s\n", g.Format)
	if g.Kind != "" {
		fmt.Printf("  Kind    %s\n", g.Kind)
	}
	fmt.Println()

	if flagGenAndRun && g.Scene != nil {
		playStored(a, g.ID, parseMode("", a.cfg.Engine.PlayMode()))
		return
	}
	if g.Scene != nil {
		fmt.Printf("Run 'studio play %s' to play it.\n", g.ID)
	} else {
		fmt.Printf("Run 'studio serve' and open /play/%s to play it.\n", g.ID)
	}
}
