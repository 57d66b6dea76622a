package snake

import (
	"math/rand"

	"github.com/vovakirdan/gridsnake/internal/core"
)

// State is the session lifecycle state.
type State int

const (
	StateRunning State = iota
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Session holds everything one game owns: the snake, the apple, the RNG and
// the lifecycle state. It is mutated only through Tick.
type Session struct {
	cfg    core.RuntimeConfig
	rng    *rand.Rand
	snake  *Snake
	apple  *Apple
	state  State
	reason core.EndReason
	tick   uint64
}

// NewSession starts a session: the snake at cfg.Start and the apple on a
// random cell drawn from an RNG seeded with cfg.Seed.
func NewSession(cfg core.RuntimeConfig) *Session {
	rng := rand.New(rand.NewSource(cfg.Seed))
	s := &Session{
		cfg:   cfg,
		rng:   rng,
		snake: NewSnake(cfg.Start, cfg.Borders, cfg.CellSize, cfg.Boundary),
		state: StateRunning,
	}
	s.apple = &Apple{}
	s.relocateApple()
	return s
}

// Snake returns the session's snake.
func (s *Session) Snake() *Snake {
	return s.snake
}

// Apple returns the session's apple.
func (s *Session) Apple() *Apple {
	return s.apple
}

// State returns the lifecycle state.
func (s *Session) State() State {
	return s.state
}

// Reason returns why the session terminated, or EndNone while running.
func (s *Session) Reason() core.EndReason {
	return s.reason
}

// Ticks returns how many ticks have been simulated.
func (s *Session) Ticks() uint64 {
	return s.tick
}

// Config returns the parameters the session was started with.
func (s *Session) Config() core.RuntimeConfig {
	return s.cfg
}

// Tick advances the session by one step:
//  1. actions are applied in arrival order; Quit or Escape terminates the
//     session at once, direction actions go through ChangeDirection so the
//     last accepted one wins
//  2. the snake moves forward
//  3. an apple under the head is eaten (grow, relocate) and the self check
//     is skipped; otherwise the head hitting the body terminates the session
//
// Ticking a terminated session changes nothing.
func Tick(s *Session, in core.InputFrame) RenderSnapshot {
	if s.state == StateTerminated {
		return s.Snapshot()
	}
	s.tick++

	for _, a := range in.Actions {
		if a.Terminates() {
			s.terminate(core.EndQuit)
			return s.Snapshot()
		}
		if d, ok := DirectionFor(a); ok {
			s.snake.ChangeDirection(d)
		}
	}

	s.snake.MoveForward()

	ate := false
	if core.CheckCollision(s.snake.Head(), s.apple.Position()) {
		s.snake.Grow(s.apple.Position())
		s.relocateApple()
		ate = true
	} else if s.snake.HitsItself() {
		s.terminate(core.EndSelfCollision)
	}

	snap := s.Snapshot()
	snap.Ate = ate
	return snap
}

// GameState summarizes the session for the platform layer.
func (s *Session) GameState() core.GameState {
	return core.GameState{
		Tick:   s.tick,
		Length: s.snake.Length(),
		Over:   s.state == StateTerminated,
		Reason: s.reason,
	}
}

func (s *Session) terminate(reason core.EndReason) {
	s.state = StateTerminated
	s.reason = reason
}

func (s *Session) relocateApple() {
	if s.cfg.AppleAvoidsSnake {
		s.apple.RelocateAvoiding(s.rng, s.cfg.Borders, s.cfg.CellSize, s.snake.Occupies)
		return
	}
	s.apple.Relocate(s.rng, s.cfg.Borders, s.cfg.CellSize)
}
