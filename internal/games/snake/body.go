package snake

import "github.com/vovakirdan/gridsnake/internal/core"

// Segment is one body unit of the snake.
type Segment struct {
	Position core.Position
}

// Body is the ordered chain of segments. The tail is the oldest segment and
// the head the newest; segments enter at the head and leave at the tail.
type Body struct {
	segments []Segment
}

func newBody(start core.Position) Body {
	return Body{segments: []Segment{{Position: start}}}
}

// PushHead appends a new head segment at p.
func (b *Body) PushHead(p core.Position) {
	b.segments = append(b.segments, Segment{Position: p})
}

// PopTail removes and returns the oldest segment.
func (b *Body) PopTail() (Segment, bool) {
	if len(b.segments) == 0 {
		return Segment{}, false
	}
	tail := b.segments[0]
	b.segments = b.segments[1:]
	return tail, true
}

// Head returns the newest segment.
func (b Body) Head() Segment {
	if len(b.segments) == 0 {
		return Segment{}
	}
	return b.segments[len(b.segments)-1]
}

// Tail returns the oldest segment.
func (b Body) Tail() Segment {
	if len(b.segments) == 0 {
		return Segment{}
	}
	return b.segments[0]
}

// Len returns the number of segments.
func (b Body) Len() int {
	return len(b.segments)
}

// Positions returns the segment positions from tail to head.
func (b Body) Positions() []core.Position {
	out := make([]core.Position, len(b.segments))
	for i, seg := range b.segments {
		out[i] = seg.Position
	}
	return out
}

// Each calls fn for every segment from tail to head. isHead is true for the
// last call only.
func (b Body) Each(fn func(seg Segment, isHead bool)) {
	last := len(b.segments) - 1
	for i, seg := range b.segments {
		fn(seg, i == last)
	}
}

// clone returns a Body that does not share storage with b.
func (b Body) clone() Body {
	return Body{segments: append([]Segment(nil), b.segments...)}
}
