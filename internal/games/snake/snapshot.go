package snake

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/gridsnake/internal/core"
)

// RenderSnapshot captures everything needed to draw one frame. It is also
// used for determinism testing and replay verification.
type RenderSnapshot struct {
	Tick     uint64
	State    State
	Reason   core.EndReason
	Heading  Direction
	Length   int
	CellSize uint16
	Borders  core.Borders
	Palette  core.Palette
	Apple    core.Position
	Segments []core.Position // tail first, head last
	Head     core.Position
	Ate      bool // an apple was eaten on this tick
}

// Snapshot returns the current render snapshot.
func (s *Session) Snapshot() RenderSnapshot {
	return RenderSnapshot{
		Tick:     s.tick,
		State:    s.state,
		Reason:   s.reason,
		Heading:  s.snake.Heading(),
		Length:   s.snake.Length(),
		CellSize: s.cfg.CellSize,
		Borders:  s.cfg.Borders,
		Palette:  s.cfg.Palette,
		Apple:    s.apple.Position(),
		Segments: s.snake.body.Positions(),
		Head:     s.snake.Head(),
	}
}

// Draw renders the frame: background, apple, then every segment with the
// head segment in its own color.
func (r RenderSnapshot) Draw(dst core.Surface) {
	dst.Clear(r.Palette.Background)

	dst.FillRect(core.CellRect(r.Apple, r.CellSize), r.Palette.Apple)

	last := len(r.Segments) - 1
	for i, p := range r.Segments {
		color := r.Palette.Body
		if i == last {
			color = r.Palette.Head
		}
		dst.FillRect(core.CellRect(p, r.CellSize), color)
	}

	dst.Present()
}

// String returns a one-line debug description of the snapshot.
func (r RenderSnapshot) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "tick=%d state=%s", r.Tick, r.State)
	if r.Reason != core.EndNone {
		fmt.Fprintf(&b, " reason=%s", r.Reason)
	}
	fmt.Fprintf(&b, " heading=%s length=%d head=(%d,%d) apple=(%d,%d)",
		r.Heading, r.Length, r.Head.X, r.Head.Y, r.Apple.X, r.Apple.Y)
	return b.String()
}
