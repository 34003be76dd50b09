package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/forge-studio/internal/scene"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the scene JSON schema",
	Long:  `Print the JSON schema that generated scenes are asked to follow.`,
	Run: func(_ *cobra.Command, _ []string) {
		data, err := scene.SchemaJSON()
		if err != nil {
			exitf("%v", err)
		}
		_, _ = os.Stdout.Write(data)
	},
}
