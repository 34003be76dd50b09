package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete <id>...",
	Aliases: []string{"rm"},
	Short:   "Delete games and their scores",
	Long: `Remove games from the library. Unknown ids are ignored.

Examples:
  studio delete 3f2c...
  studio rm 3f2c... 91ab...`,
	Args: cobra.MinimumNArgs(1),
	Run:  runDelete,
}

func runDelete(_ *cobra.Command, args []string) {
	a := openApp()
	defer a.close()

	for _, id := range args {
		if err := a.svc.Delete(id); err != nil {
			a.close()
			exitf("deleting %s: %v", id, err)
		}
		fmt.Printf("Deleted %s\n", id)
	}
}
