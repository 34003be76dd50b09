// studio turns prompts into small games and plays them.
//
// Usage:
//
//	studio                       - Open the game library
//	studio generate <prompt>     - Generate and store a game
//	studio list                  - List stored games
//	studio play <id>             - Play a scene game in the terminal
//	studio render <id>           - Render the first frame of a scene to PNG
//	studio export <id>           - Export a game as a self-contained HTML file
//	studio delete <id>           - Delete a game and its scores
//	studio scores <id>           - Show the best scores of a game
//	studio serve                 - Start the HTTP studio
//	studio ssh                   - Start the SSH studio
//	studio schema                - Print the scene JSON schema
//	studio config                - Print the effective configuration
//	studio auth set-key <prov>   - Store a provider API key in the OS keyring
//
// Global flags:
//
//	--config <path>       - Config file (default: ~/.forge/studio.yaml, ./configs/studio.yaml)
//	--db <path>           - Game library database
//	--difficulty <preset> - easy, normal, hard or fixed
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig     string
	flagDBPath     string
	flagDifficulty string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "studio",
	Short: "Forge Studio - generate small games from a prompt and play them",
	Long: `Forge Studio asks a text-generation service for a game described in plain
words, keeps it in a local library and plays it in the terminal, over SSH or
in the browser.

Without a subcommand the interactive library opens.

Examples:
  studio generate "collect coins in a forest"
  studio list
  studio play 3f2c...
  studio serve --addr :8080
  studio ssh --port 2222`,
	Run: runLibrary,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to studio config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to game library database (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(sshCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(authCmd)
}
