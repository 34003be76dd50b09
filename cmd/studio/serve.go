package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/forge-studio/internal/platform/web"
)

var (
	flagHTTPAddr  string
	flagServeMode string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP studio",
	Long: `Start an HTTP server with the studio API and browser players.

Routes:
  POST   /api/generate             Generate and store a game
  GET    /api/games                List games
  GET    /api/games/{id}           Game with its scene or document
  DELETE /api/games/{id}           Delete a game
  GET    /api/games/{id}/scores    Best scores and stats
  GET    /api/games/{id}/frame.png First frame of a scene
  GET    /api/schema               Scene JSON schema
  GET    /play/{id}                Play in the browser
  GET    /games/{id}/document      Raw document, served sandboxed only

Examples:
  studio serve
  studio serve --addr 127.0.0.1:9090 --mode loop`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagHTTPAddr, "addr", "", "Listen address (default from config)")
	serveCmd.Flags().StringVar(&flagServeMode, "mode", "", "Default interaction variant for browser play: click or loop")
}

func runServe(_ *cobra.Command, _ []string) {
	a := openApp()
	defer a.close()

	addr := a.cfg.Server.Addr
	if flagHTTPAddr != "" {
		addr = flagHTTPAddr
	}
	srv := web.New(web.Config{
		Addr:            addr,
		Mode:            parseMode(flagServeMode, a.cfg.Engine.PlayMode()),
		GenerateTimeout: a.cfg.Generator.Timeout,
	}, a.svc, a.logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Forge Studio on http://%s\n", displayAddr(addr))
	fmt.Println("Press Ctrl+C to stop")

	if err := srv.ListenAndServe(ctx); err != nil {
		a.close()
		exitf("server: %v", err)
	}
}

// displayAddr turns ":8080" into "localhost:8080".
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
