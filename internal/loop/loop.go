// Package loop runs a game at a fixed cadence on a single goroutine:
// poll input, step, render, sleep. It is the headless counterpart of the
// Bubble Tea program in platform/tui and drives replays.
package loop

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gridsnake/internal/core"
	"github.com/vovakirdan/gridsnake/internal/registry"
)

// InputSource yields the actions that arrived since the previous poll, in
// arrival order.
type InputSource interface {
	Poll() []core.Action
}

// TickObserver is notified after every simulated tick with the frame that
// was fed to the game and the resulting state. The frame is reused by the
// runner; observers that keep it must Clone it.
type TickObserver interface {
	ObserveTick(in core.InputFrame, state core.GameState)
}

// Runner drives one game until it terminates.
type Runner struct {
	Game     registry.Game
	Input    InputSource
	Surface  core.Surface
	Interval time.Duration

	// Sleep blocks for the given duration. Defaults to time.Sleep. The
	// sleep is never interrupted; cancellation is only noticed at the top of
	// the next iteration.
	Sleep func(time.Duration)

	// Observer is optional.
	Observer TickObserver

	// Logger is optional; a discarding logger is used when nil.
	Logger *log.Logger

	// MaxTicks stops the run after that many ticks when positive.
	MaxTicks uint64
}

// Run loops until the game reports Over, ctx is cancelled or MaxTicks is
// reached. It returns the final game state and ctx.Err() when cancelled.
func (r *Runner) Run(ctx context.Context) (core.GameState, error) {
	sleep := r.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	logger := r.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	frame := core.NewInputFrame()
	state := r.Game.State()
	logger.Debug("loop started", "game", r.Game.ID(), "interval", r.Interval)

	for {
		if err := ctx.Err(); err != nil {
			logger.Info("loop cancelled", "tick", state.Tick)
			return state, err
		}

		frame.Clear()
		if r.Input != nil {
			for _, a := range r.Input.Poll() {
				frame.Set(a)
			}
		}

		prevLen := state.Length
		state = r.Game.Step(frame).State
		if r.Observer != nil {
			r.Observer.ObserveTick(frame, state)
		}
		if state.Length > prevLen {
			logger.Debug("apple eaten", "tick", state.Tick, "length", state.Length)
		}

		if state.Over {
			logger.Info("session terminated", "reason", state.Reason, "tick", state.Tick, "length", state.Length)
			return state, nil
		}

		if r.Surface != nil {
			r.Game.Render(r.Surface)
		}

		if r.MaxTicks > 0 && state.Tick >= r.MaxTicks {
			logger.Debug("tick limit reached", "tick", state.Tick)
			return state, nil
		}

		sleep(r.Interval)
	}
}
