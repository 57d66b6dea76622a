package main

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/gridsnake/internal/config"
	"github.com/vovakirdan/gridsnake/internal/core"
	"github.com/vovakirdan/gridsnake/internal/loop"
	"github.com/vovakirdan/gridsnake/internal/registry"
	"github.com/vovakirdan/gridsnake/internal/storage"
)

// recordSession plays a scripted session and returns it as a replay.
func recordSession(t *testing.T, gameID string, script map[uint64][]core.Action) storage.Replay {
	t.Helper()

	cfg := config.Default()
	cfg.Loop.TickInterval = time.Millisecond
	cfg.Start = config.StartConfig{X: 200, Y: 200}
	data, err := cfg.Marshal()
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	rc, err := cfg.Runtime(21)
	if err != nil {
		t.Fatalf("Runtime() failed: %v", err)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		t.Fatalf("Create(%q) failed: %v", gameID, err)
	}
	game.Reset(rc)

	rec := storage.NewRecorder()
	runner := &loop.Runner{
		Game:     game,
		Input:    loop.NewScript(script),
		Sleep:    func(time.Duration) {},
		Observer: rec,
		MaxTicks: 100,
	}
	if _, err := runner.Run(context.Background()); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	return rec.Replay(gameID, 21, data)
}

var testScript = map[uint64][]core.Action{
	1:  {core.ActionRight},
	4:  {core.ActionDown},
	6:  {core.ActionUp, core.ActionLeft},
	12: {core.ActionEscape},
}

func TestRerunVerifiesRecording(t *testing.T) {
	for _, id := range []string{"snake", "snake_wrap", "snake_clamp"} {
		t.Run(id, func(t *testing.T) {
			r := recordSession(t, id, testScript)
			if r.Ticks != 12 || r.EndReason != string(core.EndQuit) {
				t.Fatalf("recorded %d ticks ending %q, expected 12/quit", r.Ticks, r.EndReason)
			}

			res, err := rerun(context.Background(), &r, nil, nil)
			if err != nil {
				t.Fatalf("rerun() failed: %v", err)
			}
			if !res.verified {
				t.Errorf("rerun() state %+v does not match recording %+v", res.state, r.ReplaySummary)
			}
			if strings.Count(res.board, "@") != 1 {
				t.Errorf("board should show exactly one head:\n%s", res.board)
			}
		})
	}
}

func TestRerunDetectsMismatch(t *testing.T) {
	r := recordSession(t, "snake", testScript)
	r.Length += 3

	res, err := rerun(context.Background(), &r, nil, nil)
	if err != nil {
		t.Fatalf("rerun() failed: %v", err)
	}
	if res.verified {
		t.Error("rerun() verified a tampered recording")
	}
}

func TestRerunWithoutTicks(t *testing.T) {
	r := storage.Replay{ReplaySummary: storage.ReplaySummary{ID: "empty", GameID: "snake", Seed: 3}}

	res, err := rerun(context.Background(), &r, nil, nil)
	if err != nil {
		t.Fatalf("rerun() failed: %v", err)
	}
	if !res.verified || res.state.Tick != 0 {
		t.Errorf("rerun() = %+v, expected a verified empty run", res.state)
	}
}

func TestRerunRejectsBadConfig(t *testing.T) {
	r := storage.Replay{
		ReplaySummary: storage.ReplaySummary{ID: "broken", GameID: "snake", Ticks: 1},
		ConfigYAML:    "grid:\n  cell_size: 0\n",
	}
	if _, err := rerun(context.Background(), &r, nil, nil); !errors.Is(err, config.ErrInvalid) {
		t.Errorf("rerun() error = %v, expected ErrInvalid", err)
	}
}

func TestRerunWatchPrintsFrames(t *testing.T) {
	r := recordSession(t, "snake", testScript)

	var buf bytes.Buffer
	if _, err := rerun(context.Background(), &r, &buf, nil); err != nil {
		t.Fatalf("rerun() failed: %v", err)
	}

	// The terminating tick is not rendered.
	if got := strings.Count(buf.String(), "\x1b[2J"); got != 11 {
		t.Errorf("printed %d frames, expected 11", got)
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestReplayCommands(t *testing.T) {
	db := filepath.Join(t.TempDir(), "replays.db")
	store, err := storage.Open(db)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	id, err := store.SaveReplay(recordSession(t, "snake", testScript))
	store.Close()
	if err != nil {
		t.Fatalf("SaveReplay() failed: %v", err)
	}

	out, err := execute(t, "replay", "list", "--db", db, "--log-level", "error")
	if err != nil {
		t.Fatalf("replay list failed: %v", err)
	}
	if !strings.Contains(out, shortID(id)) {
		t.Errorf("replay list output missing %s:\n%s", shortID(id), out)
	}

	out, err = execute(t, "replay", "show", shortID(id), "--db", db, "--log-level", "error")
	if err != nil {
		t.Fatalf("replay show failed: %v", err)
	}
	if !strings.Contains(out, "Verified") {
		t.Errorf("replay show output:\n%s", out)
	}

	if _, err := execute(t, "replay", "delete", shortID(id), "--db", db); err != nil {
		t.Fatalf("replay delete failed: %v", err)
	}
	_, err = execute(t, "replay", "show", id, "--db", db)
	if !errors.Is(err, storage.ErrReplayNotFound) {
		t.Errorf("replay show after delete error = %v, expected ErrReplayNotFound", err)
	}
}

func TestShortID(t *testing.T) {
	tests := []struct {
		in, expected string
	}{
		{"", ""},
		{"abc", "abc"},
		{"0123456789", "01234567"},
	}
	for _, tc := range tests {
		if got := shortID(tc.in); got != tc.expected {
			t.Errorf("shortID(%q) = %q, expected %q", tc.in, got, tc.expected)
		}
	}
}
