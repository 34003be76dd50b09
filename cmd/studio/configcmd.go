package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/forge-studio/internal/config"
)

var flagConfigDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration after the search order and flags are applied.

Examples:
  studio config
  studio config --defaults > ~/.forge/studio.yaml`,
	Run: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigDefaults, "defaults", false, "Print the built-in defaults instead")
}

func runConfig(_ *cobra.Command, _ []string) {
	if flagConfigDefaults {
		_, _ = os.Stdout.Write(config.DefaultYAML())
		return
	}
	data, err := config.Marshal(loadConfig())
	if err != nil {
		exitf("%v", err)
	}
	_, _ = os.Stdout.Write(data)
}
