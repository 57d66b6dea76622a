package snake

import (
	"github.com/vovakirdan/gridsnake/internal/core"
)

// Snake owns the body, the heading and the movement rules.
// The body always holds Length()+1 segments.
type Snake struct {
	head     core.Position // cached copy of the head segment's position
	body     Body
	heading  Direction
	step     uint16
	borders  core.Borders
	length   int
	boundary core.BoundaryMode
}

// NewSnake creates a snake with a single segment at start and no heading.
func NewSnake(start core.Position, borders core.Borders, cell uint16, boundary core.BoundaryMode) *Snake {
	if boundary == "" {
		boundary = core.BoundaryOpen
	}
	return &Snake{
		head:     start,
		body:     newBody(start),
		heading:  DirUnset,
		step:     cell,
		borders:  borders,
		boundary: boundary,
	}
}

// Head returns the head position.
func (s *Snake) Head() core.Position {
	return s.head
}

// Heading returns the current heading.
func (s *Snake) Heading() Direction {
	return s.heading
}

// Length returns how many times the snake has grown.
func (s *Snake) Length() int {
	return s.length
}

// Body returns a copy of the segment chain.
func (s *Snake) Body() Body {
	return s.body.clone()
}

// Occupies reports whether any segment sits on p.
func (s *Snake) Occupies(p core.Position) bool {
	for _, seg := range s.body.segments {
		if seg.Position == p {
			return true
		}
	}
	return false
}

// ChangeDirection sets a new heading. Exact reversals and DirUnset are
// rejected and leave the heading untouched. Returns whether the heading was
// accepted.
func (s *Snake) ChangeDirection(d Direction) bool {
	if d == DirUnset {
		return false
	}
	if s.heading != DirUnset && d == s.heading.Opposite() {
		return false
	}
	s.heading = d
	return true
}

// MoveForward advances the head one step and shifts the body: the tail
// segment is dropped and a segment is added at the head position. The body
// shifts even when the heading is unset.
func (s *Snake) MoveForward() {
	switch s.boundary {
	case core.BoundaryWrap:
		s.head = s.wrapped()
	case core.BoundaryClamp:
		s.head = s.clamped()
	default:
		// Weak guard: near the origin this is always true, so the snake
		// can leave through the right and bottom edges.
		if s.head.X <= s.borders.W || s.head.Y <= s.borders.H {
			s.head = s.displaced()
		}
	}

	s.body.PopTail()
	s.body.PushHead(s.head)
}

// Grow records an eaten apple by adding a segment at the apple's position.
// The head does not move.
func (s *Snake) Grow(appleOld core.Position) {
	s.length++
	s.body.PushHead(appleOld)
}

// HitsItself reports whether the head overlaps any segment other than the
// head segment.
func (s *Snake) HitsItself() bool {
	n := len(s.body.segments)
	for i := 0; i < n-1; i++ {
		if core.CheckCollision(s.head, s.body.segments[i].Position) {
			return true
		}
	}
	return false
}

// displaced returns the head moved one step with saturating arithmetic.
func (s *Snake) displaced() core.Position {
	p := s.head
	switch s.heading {
	case DirUp:
		p.Y = core.SubSat(p.Y, s.step)
	case DirDown:
		p.Y = core.AddSat(p.Y, s.step)
	case DirLeft:
		p.X = core.SubSat(p.X, s.step)
	case DirRight:
		p.X = core.AddSat(p.X, s.step)
	}
	return p
}

// wrapped returns the head moved one cell, re-entering from the opposite
// edge when it leaves the board.
func (s *Snake) wrapped() core.Position {
	cols, rows := core.GridSize(s.borders, s.step)
	if cols == 0 || rows == 0 {
		return s.displaced()
	}
	col, row := core.CellOf(s.head, s.step)
	dx, dy := s.heading.delta()
	col = ((col+dx)%cols + cols) % cols
	row = ((row+dy)%rows + rows) % rows
	return core.PositionOf(col, row, s.step)
}

// clamped returns the head moved one step but kept on the last cell.
func (s *Snake) clamped() core.Position {
	p := s.displaced()
	if maxX := core.SubSat(s.borders.W, s.step); p.X > maxX {
		p.X = maxX
	}
	if maxY := core.SubSat(s.borders.H, s.step); p.Y > maxY {
		p.Y = maxY
	}
	return p
}
