package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/forge-studio/internal/config"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage provider API keys",
	Long: `Provider keys are read from the environment variable named by
generator.api_key_env first, then from the OS keyring.`,
}

var setKeyCmd = &cobra.Command{
	Use:   "set-key <provider> [key]",
	Short: "Store a provider API key in the OS keyring",
	Long: `Store an API key for a provider. Without a key argument it is read from
the terminal without echo, or from stdin when piped.

Examples:
  studio auth set-key gemini
  echo "$KEY" | studio auth set-key http`,
	Args: cobra.RangeArgs(1, 2),
	Run:  runSetKey,
}

var deleteKeyCmd = &cobra.Command{
	Use:   "delete-key <provider>",
	Short: "Remove a provider API key from the OS keyring",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		if err := config.DeleteAPIKey(args[0]); err != nil {
			exitf("%v", err)
		}
		fmt.Printf("Removed key for %s\n", args[0])
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether the configured provider has a key",
	Run: func(_ *cobra.Command, _ []string) {
		cfg := loadConfig().Generator
		if cfg.Provider == "template" {
			fmt.Println("Provider template needs no key.")
			return
		}
		_, err := cfg.APIKey()
		switch {
		case err == nil:
			fmt.Printf("Provider %s: key found\n", cfg.Provider)
		case errors.Is(err, config.ErrNoAPIKey):
			fmt.Printf("Provider %s: no key (set %s or run 'studio auth set-key %s')\n", cfg.Provider, cfg.APIKeyEnv, cfg.Provider)
		default:
			exitf("%v", err)
		}
	},
}

func init() {
	authCmd.AddCommand(setKeyCmd)
	authCmd.AddCommand(deleteKeyCmd)
	authCmd.AddCommand(statusCmd)
}

func runSetKey(_ *cobra.Command, args []string) {
	provider := args[0]
	var key string
	if len(args) == 2 {
		key = args[1]
	} else {
		var err error
		key, err = readKey(provider)
		if err != nil {
			exitf("reading key: %v", err)
		}
	}

	if err := config.SetAPIKey(provider, strings.TrimSpace(key)); err != nil {
		exitf("%v", err)
	}
	fmt.Printf("Stored key for %s\n", provider)
}

func readKey(provider string) (string, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		fmt.Fprintf(os.Stderr, "API key for %s: ", provider)
		data, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		return string(data), err
	}
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return line, nil
}
