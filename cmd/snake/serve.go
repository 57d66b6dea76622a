package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridsnake/internal/games/snake"
	"github.com/vovakirdan/gridsnake/internal/platform/tui"
	"github.com/vovakirdan/gridsnake/internal/registry"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
	flagServeGame   string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the snake SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own independent single-player session with
its own seed (unless --seed is given). Sessions are recorded into the
replay database shared by the server.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.gridsnake/host_key

Examples:
  snake serve                           # Listen on :23234 with auto-generated key
  snake serve --ssh :2222               # Listen on port 2222
  snake serve --game snake_wrap         # Serve the wrapping variant
  snake serve --db ./replays.db         # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 30*time.Minute, "Idle timeout before disconnecting")
	serveCmd.Flags().StringVar(&flagServeGame, "game", "", "Variant to serve (default from rules.boundary)")
}

func runServe(_ *cobra.Command, _ []string) error {
	logger, err := newLogger(os.Stderr, "snake-ssh")
	if err != nil {
		return err
	}

	sess, err := loadSession()
	if err != nil {
		return err
	}
	// Every connection picks its own seed unless one was forced.
	sess.runtime.Seed = flagSeed

	gameID := flagServeGame
	if gameID == "" {
		gameID = snake.IDFor(sess.runtime.Boundary)
	}
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q (run 'snake list' to see available games)", gameID)
	}

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		IdleTimeout: flagIdleTimeout,
		GameID:      gameID,
		Config:      sess.runtime,
		ConfigYAML:  sess.yaml,
	}

	var saver tui.ReplaySaver
	store, err := openStore()
	if err != nil {
		logger.Warn("could not open replay database", "error", err)
		// Continue without storage
	} else {
		defer store.Close()
		saver = store
	}

	server, err := tui.NewSSHServer(cfg, saver, logger)
	if err != nil {
		return err
	}

	logger.Info("config loaded", "source", sess.source, "tick", sess.runtime.TickInterval)
	fmt.Printf("Starting snake SSH server on %s\n", cfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe()
}
