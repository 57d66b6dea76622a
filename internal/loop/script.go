package loop

import "github.com/vovakirdan/gridsnake/internal/core"

// Script is an InputSource that plays back pre-recorded actions keyed by
// tick number. Tick numbers start at 1, matching core.GameState.Tick after
// the step that consumed them.
type Script struct {
	frames map[uint64][]core.Action
	tick   uint64
}

// NewScript creates a script from recorded frames.
func NewScript(frames map[uint64][]core.Action) *Script {
	if frames == nil {
		frames = make(map[uint64][]core.Action)
	}
	return &Script{frames: frames}
}

// Poll returns the actions recorded for the next tick.
func (s *Script) Poll() []core.Action {
	s.tick++
	return s.frames[s.tick]
}

// Remaining reports whether any recorded frame lies beyond the current
// tick.
func (s *Script) Remaining() bool {
	for t := range s.frames {
		if t > s.tick {
			return true
		}
	}
	return false
}
