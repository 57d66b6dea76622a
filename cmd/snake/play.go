package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/gridsnake/internal/config"
	"github.com/vovakirdan/gridsnake/internal/core"
	"github.com/vovakirdan/gridsnake/internal/games/snake"
	"github.com/vovakirdan/gridsnake/internal/platform/tui"
	"github.com/vovakirdan/gridsnake/internal/registry"
)

var flagNoReplay bool

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a session",
	Long: `Start a snake session in the terminal.

Without a game argument the variant matching rules.boundary from the
config is played (snake, snake_wrap or snake_clamp).

Controls:
  Arrows/WASD/HJKL - Steer
  Q/Ctrl+C/Esc     - Quit
  ?                - Toggle help

The session is recorded and can be re-run with 'snake replay show'.
Logs are written to ~/.gridsnake/snake.log.

Examples:
  snake play
  snake play snake_wrap
  snake play --seed 42 --tick 150ms
  snake play --config ./my-snake.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagNoReplay, "no-replay", false, "Do not record the session")
}

func runPlay(cmd *cobra.Command, args []string) error {
	sess, err := loadSession()
	if err != nil {
		return err
	}

	gameID := snake.IDFor(sess.runtime.Boundary)
	if len(args) == 1 {
		gameID = args[0]
	}

	// Check if game exists
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q (run 'snake list' to see available games)", gameID)
	}

	if err := checkTerminal(sess.runtime); err != nil {
		return err
	}

	logger, closeLog, err := playLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	opts := tui.Options{
		Config:     sess.runtime,
		ConfigYAML: sess.yaml,
		Logger:     logger,
	}

	if !flagNoReplay {
		store, storeErr := openStore()
		if storeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not open replay database: %v\n", storeErr)
			// Continue without storage - game still works
		} else {
			defer store.Close()
			opts.Store = store
		}
	}

	res, err := tui.Run(game, opts)
	if err != nil {
		return err
	}

	printResult(cmd, res)
	return nil
}

// checkTerminal makes sure the board fits the current terminal.
func checkTerminal(rc core.RuntimeConfig) error {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return fmt.Errorf("play needs an interactive terminal")
	}

	cols, rows := core.GridSize(rc.Borders, rc.CellSize)
	needW, needH := cols*2, rows+2

	w, h, err := term.GetSize(fd)
	if err != nil {
		return fmt.Errorf("cannot read terminal size: %w", err)
	}
	if w < needW || h < needH {
		return fmt.Errorf("terminal is %dx%d, the %dx%d board needs at least %dx%d", w, h, cols, rows, needW, needH)
	}
	return nil
}

// playLogger writes to ~/.gridsnake/snake.log since the alt screen owns the
// terminal. Logging is dropped when the file cannot be opened.
func playLogger() (*log.Logger, func(), error) {
	if _, err := log.ParseLevel(flagLogLevel); err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	dir := config.UserDir()
	if dir == "" {
		return log.New(io.Discard), func() {}, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return log.New(io.Discard), func() {}, nil
	}

	f, err := os.OpenFile(filepath.Join(dir, "snake.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return log.New(io.Discard), func() {}, nil
	}

	logger, err := newLogger(f, "snake")
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return logger, func() { f.Close() }, nil
}

func printResult(cmd *cobra.Command, res tui.Result) {
	out := cmd.OutOrStdout()
	switch res.State.Reason {
	case core.EndSelfCollision:
		fmt.Fprintf(out, "Game over: the snake bit itself after %d ticks.\n", res.State.Tick)
	case core.EndQuit:
		fmt.Fprintf(out, "Quit after %d ticks.\n", res.State.Tick)
	}
	fmt.Fprintf(out, "Apples eaten: %d\n", res.State.Length)
	if res.ReplayID != "" {
		fmt.Fprintf(out, "Replay: %s (snake replay show %s)\n", res.ReplayID, shortID(res.ReplayID))
	}
}
