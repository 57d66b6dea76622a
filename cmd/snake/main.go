// snake is a grid snake game for the terminal.
//
// Usage:
//
//	snake play [game]        - Play a session (default variant from config)
//	snake list               - List available variants
//	snake config             - Print the effective configuration
//	snake replay list        - List recorded sessions
//	snake replay show <id>   - Re-run a recorded session headless and verify it
//	snake replay delete <id> - Delete a recorded session
//	snake serve              - Start SSH server for remote play
//
// Global flags:
//
//	--config <path>     - Config file (default search: ~/.gridsnake/config.yaml, ./configs/snake.yaml)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--tick <duration>   - Override the tick interval
//	--db <path>         - Set replay database path (default: ~/.gridsnake/replays.db)
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridsnake/internal/config"
	"github.com/vovakirdan/gridsnake/internal/core"
	"github.com/vovakirdan/gridsnake/internal/storage"

	// Import games to register them
	_ "github.com/vovakirdan/gridsnake/internal/games/snake"
)

var (
	// Global flags
	flagConfig   string
	flagSeed     int64
	flagTick     time.Duration
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snake",
	Short: "Grid snake - steer, eat, grow, don't bite yourself",
	Long: `A real-time snake game on a fixed grid, played in the terminal.

Available commands:
  play     - Play a session
  list     - Show all game variants
  config   - Print the effective configuration
  replay   - List, verify and delete recorded sessions
  serve    - Start SSH server for remote play

Examples:
  snake play
  snake play snake_wrap --seed 42
  snake play --tick 120ms
  snake replay list
  snake serve --ssh :2222`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().DurationVar(&flagTick, "tick", 0, "Tick interval override (e.g. 150ms)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to replay database (default ~/.gridsnake/replays.db)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(serveCmd)
}

// newLogger builds the process logger from --log-level.
func newLogger(w io.Writer, prefix string) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	}), nil
}

// session is the resolved configuration of one run.
type session struct {
	file    config.Config
	source  string
	runtime core.RuntimeConfig
	yaml    []byte
}

// loadSession loads the config file, applies flag overrides and picks a
// seed.
func loadSession() (session, error) {
	cfg, source, err := config.Load(flagConfig)
	if err != nil {
		return session{}, err
	}

	if flagTick != 0 {
		cfg.Loop.TickInterval = flagTick
		if err := config.Validate(cfg); err != nil {
			return session{}, fmt.Errorf("--tick: %w", err)
		}
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	rc, err := cfg.Runtime(seed)
	if err != nil {
		return session{}, err
	}
	data, err := cfg.Marshal()
	if err != nil {
		return session{}, err
	}

	return session{file: cfg, source: source, runtime: rc, yaml: data}, nil
}

// dbPath returns --db or the default replay database location.
func dbPath() string {
	if flagDBPath != "" {
		return flagDBPath
	}
	if dir := config.UserDir(); dir != "" {
		return filepath.Join(dir, "replays.db")
	}
	return "replays.db"
}

// openStore opens the replay database.
func openStore() (*storage.Store, error) {
	return storage.Open(dbPath())
}
