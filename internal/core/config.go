package core

import (
	"fmt"
	"time"
)

// BoundaryMode selects what happens when the head reaches the edge of the
// play area.
type BoundaryMode string

const (
	// BoundaryOpen keeps the historical weak bound check: moving left or up
	// saturates at zero while the right and bottom edges can be crossed.
	BoundaryOpen BoundaryMode = "open"
	// BoundaryWrap re-enters the board from the opposite edge.
	BoundaryWrap BoundaryMode = "wrap"
	// BoundaryClamp holds the head on the last cell before the edge.
	BoundaryClamp BoundaryMode = "clamp"
)

// ParseBoundaryMode validates a boundary mode name.
func ParseBoundaryMode(s string) (BoundaryMode, error) {
	switch m := BoundaryMode(s); m {
	case BoundaryOpen, BoundaryWrap, BoundaryClamp:
		return m, nil
	case "":
		return BoundaryOpen, nil
	default:
		return "", fmt.Errorf("core: unknown boundary mode %q", s)
	}
}

// RuntimeConfig contains the session parameters passed to games at
// initialization.
type RuntimeConfig struct {
	Borders          Borders       // Play area in pixels
	CellSize         uint16        // Edge length of one grid cell in pixels
	TickInterval     time.Duration // Fixed delay between simulation ticks
	Seed             int64         // RNG seed for deterministic gameplay
	Start            Position      // Initial snake position
	Palette          Palette
	Boundary         BoundaryMode
	AppleAvoidsSnake bool
}

// DefaultConfig returns a RuntimeConfig with the stock session parameters.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		Borders:      Borders{W: 800, H: 600},
		CellSize:     50,
		TickInterval: 200 * time.Millisecond,
		Seed:         0, // 0 means use current time in platform layer
		Palette:      DefaultPalette(),
		Boundary:     BoundaryOpen,
	}
}

// EndReason tells why a session terminated.
type EndReason string

const (
	EndNone          EndReason = ""
	EndQuit          EndReason = "quit"
	EndSelfCollision EndReason = "self_collision"
)

// GameState represents the current state of a game.
type GameState struct {
	Tick   uint64    // Ticks simulated so far
	Length int       // Number of apples eaten
	Over   bool      // Whether the session has terminated
	Reason EndReason // Set once Over is true
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}
