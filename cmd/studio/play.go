package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/forge-studio/internal/engine"
	"github.com/vovakirdan/forge-studio/internal/platform/tui"
	"github.com/vovakirdan/forge-studio/internal/storage"
	"github.com/vovakirdan/forge-studio/internal/studio"
)

var flagPlayMode string

var playCmd = &cobra.Command{
	Use:   "play <id>",
	Short: "Play a scene game in the terminal",
	Long: `Play a stored scene game.

Click mode resolves mouse clicks against the scene. Loop mode runs the
continuous variant: move and jump the player, collect every coin and avoid
the enemies.

Controls:
  Mouse      - Click objects
  A/D, <-/-> - Move (loop mode)
  Space/W/Up - Jump (loop mode)
  P          - Pause
  R          - Restart
  Q/Ctrl+C   - Quit

Difficulty options (global --difficulty):
  easy   - More lives, slower enemies, no one-hit loss
  normal - Configured lives and physics
  hard   - Fewer lives, faster enemies
  fixed  - No speed progression

Examples:
  studio play 3f2c...
  studio play 3f2c... --mode loop --difficulty hard`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagPlayMode, "mode", "", "Interaction variant: click or loop (default from config)")
}

func runPlay(_ *cobra.Command, args []string) {
	a := openApp()
	defer a.close()

	playStored(a, args[0], parseMode(flagPlayMode, a.cfg.Engine.PlayMode()))
}

// playStored plays a stored scene and records the final score.
func playStored(a *app, id string, mode engine.Mode) {
	g, err := a.svc.Get(id)
	if err != nil {
		a.close()
		if errors.Is(err, storage.ErrNotFound) {
			fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", id)
			fmt.Fprintln(os.Stderr, "Run 'studio list' to see stored games.")
			os.Exit(1)
		}
		exitf("%v", err)
	}
	sc, err := studio.SceneOf(g)
	if err != nil {
		a.close()
		exitf("%q is a document game; run 'studio serve' and open /play/%s", g.Title, g.ID)
	}

	// Counts the play.
	if _, err := a.svc.Open(id); err != nil {
		a.logger.Warn("play not counted", "id", id, "err", err)
	}

	game := a.svc.NewGame(sc, mode)
	st, err := tui.RunPlay(game, a.runtimeConfig(), func(st engine.State) error {
		return a.svc.Finish(g.ID, st)
	})
	if err != nil {
		a.close()
		exitf("running game: %v", err)
	}

	fmt.Printf("%s: %s, score %d\n", g.Title, st.Status, st.Score)
}
