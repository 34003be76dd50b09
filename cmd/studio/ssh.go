package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/forge-studio/internal/platform/tui"
)

var (
	flagSSHHost     string
	flagSSHPort     int
	flagHostKey     string
	flagIdleTimeout int
	flagSSHMode     string
)

var sshCmd = &cobra.Command{
	Use:   "ssh",
	Short: "Start the SSH studio",
	Long: `Start an SSH server that opens the game library for every connection.

Each SSH connection gets its own session. The library and scores are shared
by all users of the server.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, uses ssh.host_key from the config (generated if missing)

Examples:
  studio ssh                      # Listen on localhost:23234
  studio ssh --port 2222          # Listen on port 2222
  studio ssh --host 0.0.0.0       # Accept remote connections

Users can connect with:
  ssh localhost -p 23234`,
	Run: runSSH,
}

func init() {
	sshCmd.Flags().StringVar(&flagSSHHost, "host", "", "Listen host (default from config)")
	sshCmd.Flags().IntVar(&flagSSHPort, "port", 0, "Listen port (default from config)")
	sshCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file")
	sshCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	sshCmd.Flags().StringVar(&flagSSHMode, "mode", "", "Interaction variant: click or loop")
}

func runSSH(_ *cobra.Command, _ []string) {
	a := openApp()
	defer a.close()

	cfg := tui.DefaultSSHServerConfig()
	cfg.Host = a.cfg.SSH.Host
	cfg.Port = a.cfg.SSH.Port
	cfg.HostKeyPath = a.cfg.SSH.HostKey
	if flagSSHHost != "" {
		cfg.Host = flagSSHHost
	}
	if flagSSHPort > 0 {
		cfg.Port = flagSSHPort
	}
	if flagHostKey != "" {
		cfg.HostKeyPath = flagHostKey
	}
	cfg.Mode = parseMode(flagSSHMode, a.cfg.Engine.PlayMode())
	cfg.TickRate = a.cfg.Engine.TickRate
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute

	server, err := tui.NewSSHServer(cfg, a.svc, a.logger)
	if err != nil {
		a.close()
		exitf("creating server: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Starting studio SSH server on %s\n", cfg.Address())
	fmt.Printf("Connect with: ssh %s -p %d\n", cfg.Host, cfg.Port)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(ctx); err != nil {
		a.close()
		exitf("server: %v", err)
	}
}
