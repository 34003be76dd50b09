package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/forge-studio/internal/render"
	"github.com/vovakirdan/forge-studio/internal/storage"
	"github.com/vovakirdan/forge-studio/internal/studio"
)

var (
	flagRenderOut   string
	flagRenderScale float64
	flagRenderMode  string
)

var renderCmd = &cobra.Command{
	Use:   "render <id>",
	Short: "Render the first frame of a scene game to PNG",
	Long: `Draw the opening frame of a scene game headlessly and write it as PNG.

Examples:
  studio render 3f2c...
  studio render 3f2c... -o preview.png --scale 0.5
  studio render 3f2c... --mode loop`,
	Args: cobra.ExactArgs(1),
	Run:  runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&flagRenderOut, "output", "o", "", "Output file (default: <id>.png)")
	renderCmd.Flags().Float64Var(&flagRenderScale, "scale", 1, "Scale of the 800x600 surface")
	renderCmd.Flags().StringVar(&flagRenderMode, "mode", "", "Interaction variant: click or loop")
}

func runRender(_ *cobra.Command, args []string) {
	a := openApp()
	defer a.close()

	g, err := a.svc.Get(args[0])
	if err != nil {
		a.close()
		if errors.Is(err, storage.ErrNotFound) {
			exitf("unknown game %q", args[0])
		}
		exitf("%v", err)
	}
	sc, err := studio.SceneOf(g)
	if err != nil {
		a.close()
		exitf("%q is a document game and has no scene to render", g.Title)
	}

	game := a.svc.NewGame(sc, parseMode(flagRenderMode, a.cfg.Engine.PlayMode()))
	raster := render.NewRaster(flagRenderScale)
	render.Frame(game.View(), game.State(), raster)

	out := flagRenderOut
	if out == "" {
		out = g.ID + ".png"
	}
	f, err := os.Create(out)
	if err != nil {
		a.close()
		exitf("%v", err)
	}
	if err := raster.EncodePNG(f); err != nil {
		f.Close()
		a.close()
		exitf("%v", err)
	}
	if err := f.Close(); err != nil {
		a.close()
		exitf("%v", err)
	}
	b := raster.Image().Bounds()
	fmt.Printf("Wrote %s (%dx%d)\n", out, b.Dx(), b.Dy())
}
