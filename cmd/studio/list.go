package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored games",
	Long:  `Shows every game in the library, most recently played or created first.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	a := openApp()
	defer a.close()

	games, err := a.svc.List()
	if err != nil {
		a.close()
		exitf("listing games: %v", err)
	}

	if len(games) == 0 {
		fmt.Println("No games yet.")
		fmt.Println()
		fmt.Println("Run 'studio generate <prompt>' to make one.")
		return
	}

	// Calculate column widths
	maxIDLen, maxTitleLen := 2, 5
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
		maxTitleLen = max(maxTitleLen, len(g.Title))
	}

	fmt.Printf("  %-*s  %-*s  %-10s  %-8s  %5s  %s\n", maxIDLen, "ID", maxTitleLen, "Title", "Kind", "Format", "Plays", "Updated")
	fmt.Printf("  %-*s  %-*s  %-10s  %-8s  %5s  %s\n", maxIDLen, "--", maxTitleLen, "-----", "----", "------", "-----", "-------")

	for _, g := range games {
		fmt.Printf("  %-*s  %-*s  %-10s  %-8s  %5d  %s\n",
			maxIDLen, g.ID, maxTitleLen, g.Title, g.Kind, g.Format, g.Plays,
			g.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}

	fmt.Println()
	fmt.Println("Run 'studio play <id>' to play a scene game.")
}
