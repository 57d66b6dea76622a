package storage

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/gridsnake/internal/core"
)

// Frame is the non-empty input of one tick.
type Frame struct {
	Tick    uint64        `msgpack:"t"`
	Actions []core.Action `msgpack:"a"`
}

// EncodeFrames packs frames into the replay blob format.
func EncodeFrames(frames []Frame) ([]byte, error) {
	if frames == nil {
		frames = []Frame{}
	}
	data, err := msgpack.Marshal(frames)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot encode frames: %w", err)
	}
	return data, nil
}

// DecodeFrames unpacks a replay blob.
func DecodeFrames(data []byte) ([]Frame, error) {
	var frames []Frame
	if err := msgpack.Unmarshal(data, &frames); err != nil {
		return nil, fmt.Errorf("storage: cannot decode frames: %w", err)
	}
	return frames, nil
}

// Inputs returns the recorded actions keyed by tick, in the shape the
// headless runner's script expects.
func (r Replay) Inputs() map[uint64][]core.Action {
	out := make(map[uint64][]core.Action, len(r.Frames))
	for _, f := range r.Frames {
		out[f.Tick] = append([]core.Action(nil), f.Actions...)
	}
	return out
}

// Recorder collects the input of a running session. It satisfies the
// loop runner's tick observer and is fed directly by the TUI model.
type Recorder struct {
	frames []Frame
	last   core.GameState
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// ObserveTick records the frame consumed by the tick that produced state.
// Empty frames are skipped.
func (r *Recorder) ObserveTick(in core.InputFrame, state core.GameState) {
	r.last = state
	if in.Empty() {
		return
	}
	r.frames = append(r.frames, Frame{Tick: state.Tick, Actions: in.Clone().Actions})
}

// State returns the last observed game state.
func (r *Recorder) State() core.GameState {
	return r.last
}

// Replay builds a storable replay from what was recorded so far.
func (r *Recorder) Replay(gameID string, seed int64, configYAML []byte) Replay {
	return Replay{
		ReplaySummary: ReplaySummary{
			GameID:    gameID,
			Seed:      seed,
			Ticks:     int64(r.last.Tick),
			Length:    r.last.Length,
			EndReason: string(r.last.Reason),
		},
		ConfigYAML: string(configYAML),
		Frames:     append([]Frame(nil), r.frames...),
	}
}
