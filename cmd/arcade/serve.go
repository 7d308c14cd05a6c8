package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/retro-arcade/internal/platform/tui"
)

var (
	flagSSHHost     string
	flagSSHPort     string
	flagHostKey     string
	flagIdleTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the arcade SSH server",
	Long: `Start an SSH server that allows users to connect and play games.

Each SSH connection gets their own session with a game picker menu.
Scores are stored per-server (all users share the same leaderboard).
The SSH user name is suggested as the player's initials.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.arcade/host_key

Examples:
  arcade serve                           # Listen on :23234 with auto-generated key
  arcade serve --port 2222               # Listen on port 2222
  arcade serve --host-key ./my_host_key  # Use specific host key
  arcade serve --db ./scores.db          # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHHost, "host", "", "Interface to listen on (default all)")
	serveCmd.Flags().StringVar(&flagSSHPort, "port", "", "Port to listen on (default from ARCADE_SSH_ADDR, :23234)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 0, "Idle time before disconnecting (default from ARCADE_SSH_IDLE_TIMEOUT, 30m)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger(appCfg, false)
	if err != nil {
		return err
	}
	defer closeLog()

	deps, closeDeps, err := openDeps(appCfg, logger)
	if err != nil {
		return err
	}
	defer closeDeps()

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = listenAddr(appCfg.SSHAddr, flagSSHHost, flagSSHPort)
	cfg.HostKeyPath = expandHome(appCfg.SSHHostKey)
	if flagHostKey != "" {
		cfg.HostKeyPath = flagHostKey
	}
	cfg.IdleTimeout = appCfg.SSHIdleTimeout
	if cmd.Flags().Changed("idle-timeout") {
		cfg.IdleTimeout = flagIdleTimeout
	}
	cfg.Shell.TickRate = appCfg.FPS
	cfg.Shell.Seed = flagSeed
	cfg.Shell.CountdownSeconds = appCfg.CountdownSecs
	cfg.Shell.InsertCoinDelay = appCfg.InsertCoinDelay
	cfg.Shell.Monochrome = flagMono

	server, err := tui.NewSSHServer(cfg, deps)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("connect with", "cmd", "ssh localhost -p "+port(cfg.Address))
	return server.ListenAndServe(ctx)
}

// listenAddr overrides the host and port of addr with the non-empty flag
// values.
func listenAddr(addr, host, portFlag string) string {
	h, p, err := net.SplitHostPort(addr)
	if err != nil {
		h, p = "", "23234"
	}
	if host != "" {
		h = host
	}
	if portFlag != "" {
		p = portFlag
	}
	return net.JoinHostPort(h, p)
}

func port(addr string) string {
	_, p, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	return p
}
