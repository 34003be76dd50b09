package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/forge-studio/internal/storage"
)

var flagScoresLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores <id>",
	Short: "Show the best scores of a game",
	Long: `Display the top final scores recorded for a game.

Examples:
  studio scores 3f2c...
  studio scores 3f2c... --limit 20`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
}

func runScores(_ *cobra.Command, args []string) {
	a := openApp()
	defer a.close()

	id := args[0]
	g, err := a.svc.Get(id)
	if err != nil {
		a.close()
		if errors.Is(err, storage.ErrNotFound) {
			exitf("unknown game %q", id)
		}
		exitf("%v", err)
	}

	scores, err := a.svc.Scores(id, flagScoresLimit)
	if err != nil {
		a.close()
		exitf("retrieving scores: %v", err)
	}

	fmt.Printf("High Scores - %s\n", g.Title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'studio play %s' to set the first high score!\n", id)
		return
	}

	fmt.Printf("  %-4s  %-10s  %-7s  %s\n", "Rank", "Score", "Result", "Date")
	fmt.Printf("  %-4s  %-10s  %-7s  %s\n", "----", "-----", "------", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10d  %-7s  %s\n", i+1, entry.Score, entry.Status, entry.CreatedAt.Local().Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if stats, err := a.store.Stats(id); err == nil {
		fmt.Printf("Rounds: %d  Wins: %d  Best: %d  Average: %.1f\n", stats.Sessions, stats.Wins, stats.HighScore, stats.AvgScore)
	}
}
