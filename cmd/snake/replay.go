package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridsnake/internal/config"
	"github.com/vovakirdan/gridsnake/internal/core"
	"github.com/vovakirdan/gridsnake/internal/loop"
	"github.com/vovakirdan/gridsnake/internal/platform/tui"
	"github.com/vovakirdan/gridsnake/internal/registry"
	"github.com/vovakirdan/gridsnake/internal/storage"
)

// ErrReplayMismatch is returned when a re-run does not reproduce the
// recorded outcome.
var ErrReplayMismatch = errors.New("replay does not reproduce the recorded session")

var (
	flagReplayLimit int
	flagReplayWatch bool
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Inspect recorded sessions",
	Long: `Every played session is recorded with its seed, configuration and input.

Examples:
  snake replay list
  snake replay show 3f2a9c1d
  snake replay show 3f2a9c1d --watch
  snake replay delete 3f2a9c1d`,
}

var replayListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded sessions, newest first",
	Args:  cobra.NoArgs,
	RunE:  runReplayList,
}

var replayShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Re-run a recorded session and verify its outcome",
	Long: `Re-runs the session headless with the recorded seed, configuration and
input, checks that it ends the same way and prints the final board.
Any unique ID prefix is accepted.`,
	Args: cobra.ExactArgs(1),
	RunE: runReplayShow,
}

var replayDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a recorded session",
	Args:  cobra.ExactArgs(1),
	RunE:  runReplayDelete,
}

func init() {
	replayListCmd.Flags().IntVar(&flagReplayLimit, "limit", 20, "Maximum number of replays to list")
	replayShowCmd.Flags().BoolVar(&flagReplayWatch, "watch", false, "Play the replay back at its recorded speed")

	replayCmd.AddCommand(replayListCmd)
	replayCmd.AddCommand(replayShowCmd)
	replayCmd.AddCommand(replayDeleteCmd)
}

func runReplayList(cmd *cobra.Command, _ []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	replays, err := store.ListReplays(flagReplayLimit)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), tui.ReplayTable(replays, time.Now()))
	return nil
}

func runReplayShow(cmd *cobra.Command, args []string) error {
	logger, err := newLogger(os.Stderr, "replay")
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	r, err := store.Replay(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	var watch io.Writer
	if flagReplayWatch {
		watch = out
	}

	res, err := rerun(cmd.Context(), r, watch, logger)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, res.board)
	fmt.Fprintf(out, "Replay %s: %s, %d ticks, length %d, end %s\n",
		shortID(r.ID), r.GameID, res.state.Tick, res.state.Length, res.state.Reason)
	if !res.verified {
		return fmt.Errorf("%w: recorded %d ticks/length %d/%s", ErrReplayMismatch, r.Ticks, r.Length, r.EndReason)
	}
	fmt.Fprintln(out, "Verified: outcome matches the recording.")
	return nil
}

func runReplayDelete(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	r, err := store.Replay(args[0])
	if err != nil {
		return err
	}
	if err := store.DeleteReplay(r.ID); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Deleted replay %s\n", r.ID)
	return nil
}

// rerunResult is the outcome of re-running a replay.
type rerunResult struct {
	state    core.GameState
	board    string
	verified bool
}

// rerun replays r headless through the loop runner. When watch is not nil
// every frame is printed there at the recorded tick interval.
func rerun(ctx context.Context, r *storage.Replay, watch io.Writer, logger *log.Logger) (rerunResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg := config.Default()
	if r.ConfigYAML != "" {
		parsed, err := config.Parse([]byte(r.ConfigYAML))
		if err != nil {
			return rerunResult{}, fmt.Errorf("replay %s: %w", shortID(r.ID), err)
		}
		cfg = parsed
	}
	rc, err := cfg.Runtime(r.Seed)
	if err != nil {
		return rerunResult{}, err
	}

	game, err := registry.Create(r.GameID)
	if err != nil {
		return rerunResult{}, err
	}
	game.Reset(rc)

	screen := core.NewScreenFor(rc.Borders, rc.CellSize)
	state := game.State()

	if r.Ticks > 0 {
		runner := &loop.Runner{
			Game:     game,
			Input:    loop.NewScript(r.Inputs()),
			Surface:  screen,
			Sleep:    func(time.Duration) {},
			Logger:   logger,
			MaxTicks: uint64(r.Ticks),
		}
		if watch != nil {
			runner.Surface = &terminalSurface{Screen: screen, w: watch, palette: rc.Palette}
			runner.Interval = rc.TickInterval
			runner.Sleep = nil
		}

		state, err = runner.Run(ctx)
		if err != nil {
			return rerunResult{}, err
		}
	}

	game.Render(screen)

	return rerunResult{
		state: state,
		board: screen.ASCII(rc.Palette),
		verified: int64(state.Tick) == r.Ticks &&
			state.Length == r.Length &&
			string(state.Reason) == r.EndReason,
	}, nil
}

// terminalSurface prints every presented frame as ASCII.
type terminalSurface struct {
	*core.Screen
	w       io.Writer
	palette core.Palette
}

// Present flips the buffer and redraws the terminal.
func (s *terminalSurface) Present() {
	s.Screen.Present()
	fmt.Fprint(s.w, "\x1b[H\x1b[2J", s.Screen.ASCII(s.palette), "\n")
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
