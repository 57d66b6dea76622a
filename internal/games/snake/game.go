// Package snake implements the grid snake simulation: the snake controller,
// the apple, collision handling and the per-tick session update.
package snake

import (
	"github.com/vovakirdan/gridsnake/internal/core"
	"github.com/vovakirdan/gridsnake/internal/registry"
)

// Game IDs, one per boundary mode.
const (
	IDOpen  = "snake"
	IDWrap  = "snake_wrap"
	IDClamp = "snake_clamp"
)

// Game adapts a Session to the registry.Game interface. The boundary mode
// is fixed per variant and overrides the one in the runtime config.
type Game struct {
	id       string
	title    string
	boundary core.BoundaryMode
	session  *Session
	last     RenderSnapshot
}

// New creates the classic variant with the open right and bottom edges.
func New() *Game {
	return &Game{id: IDOpen, title: "Snake", boundary: core.BoundaryOpen}
}

// NewWrap creates the variant where the snake re-enters from the opposite
// edge.
func NewWrap() *Game {
	return &Game{id: IDWrap, title: "Snake (Wrap-around)", boundary: core.BoundaryWrap}
}

// NewClamp creates the variant where the snake stops at the edges.
func NewClamp() *Game {
	return &Game{id: IDClamp, title: "Snake (Clamped edges)", boundary: core.BoundaryClamp}
}

// IDFor returns the game ID of the variant for a boundary mode.
func IDFor(mode core.BoundaryMode) string {
	switch mode {
	case core.BoundaryWrap:
		return IDWrap
	case core.BoundaryClamp:
		return IDClamp
	default:
		return IDOpen
	}
}

func init() {
	registry.Register(IDOpen, func() registry.Game {
		return New()
	})
	registry.Register(IDWrap, func() registry.Game {
		return NewWrap()
	})
	registry.Register(IDClamp, func() registry.Game {
		return NewClamp()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.title
}

// Reset starts a new session.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	cfg.Boundary = g.boundary
	g.session = NewSession(cfg)
	g.last = g.session.Snapshot()
}

// Step advances the game by one tick.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	if g.session == nil {
		return core.StepResult{State: core.GameState{Over: true}}
	}
	g.last = Tick(g.session, input)
	return core.StepResult{State: g.State()}
}

// Render draws the last snapshot.
func (g *Game) Render(dst core.Surface) {
	if g.session == nil {
		return
	}
	g.last.Draw(dst)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{}
	}
	return g.session.GameState()
}

// Snapshot returns the snapshot produced by the last Reset or Step.
func (g *Game) Snapshot() RenderSnapshot {
	return g.last
}

// Session exposes the underlying session.
func (g *Game) Session() *Session {
	return g.session
}
