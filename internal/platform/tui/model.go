package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gridsnake/internal/core"
	"github.com/vovakirdan/gridsnake/internal/registry"
	"github.com/vovakirdan/gridsnake/internal/storage"
)

// ReplaySaver persists finished sessions. *storage.Store implements it.
type ReplaySaver interface {
	SaveReplay(r storage.Replay) (string, error)
}

// Options configures a Model.
type Options struct {
	Config     core.RuntimeConfig
	ConfigYAML []byte // Stored with the replay; may be nil

	Store    ReplaySaver        // Optional; replays are not saved when nil
	Logger   *log.Logger        // Optional; a discarding logger is used when nil
	Renderer *lipgloss.Renderer // Optional; the local terminal renderer when nil
	Keys     *KeyMap            // Optional; DefaultKeyMap when nil
}

// Model is the Bubble Tea model for running one snake session. Key
// presses are buffered into the input frame and applied on the next tick.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	renderer   *ScreenRenderer
	store      ReplaySaver
	recorder   *storage.Recorder
	logger     *log.Logger
	config     core.RuntimeConfig
	configYAML []byte
	keyMapper  *KeyMapper
	help       help.Model
	inputFrame core.InputFrame
	gameState  core.GameState
	replayID   string
	width      int
	height     int
	quitting   bool
}

// NewModel creates a new Bubble Tea model and resets the game.
func NewModel(game registry.Game, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	keys := DefaultKeyMap()
	if opts.Keys != nil {
		keys = *opts.Keys
	}

	game.Reset(opts.Config)
	logger.Info("session started", "game", game.ID(), "seed", opts.Config.Seed)

	return Model{
		game:       game,
		screen:     core.NewScreenFor(opts.Config.Borders, opts.Config.CellSize),
		renderer:   NewScreenRenderer(opts.Renderer),
		store:      opts.Store,
		recorder:   storage.NewRecorder(),
		logger:     logger,
		config:     opts.Config,
		configYAML: opts.ConfigYAML,
		keyMapper:  NewKeyMapper(keys),
		help:       help.New(),
		inputFrame: core.NewInputFrame(),
		gameState:  game.State(),
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickInterval)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey buffers the action; nothing reaches the game before the next
// tick.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.gameState.Over {
		return m, nil
	}
	if key.Matches(msg, m.keyMapper.Keys().Help) {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}
	m.keyMapper.MapKeyToFrame(msg, &m.inputFrame)
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.gameState.Over {
		return m, nil
	}

	prevLen := m.gameState.Length
	m.gameState = m.game.Step(m.inputFrame).State
	m.recorder.ObserveTick(m.inputFrame, m.gameState)
	m.inputFrame = core.NewInputFrame()

	if m.gameState.Length > prevLen {
		m.logger.Debug("apple eaten", "tick", m.gameState.Tick, "length", m.gameState.Length)
	}

	if m.gameState.Over {
		m.logger.Info("session terminated",
			"reason", m.gameState.Reason,
			"tick", m.gameState.Tick,
			"length", m.gameState.Length,
		)
		m.saveReplay()
		m.quitting = true
		return m, tea.Quit
	}

	// Continue ticking
	return m, tickCmd(m.config.TickInterval)
}

// saveReplay stores the recorded session once.
func (m *Model) saveReplay() {
	if m.store == nil || m.replayID != "" {
		return
	}
	r := m.recorder.Replay(m.game.ID(), m.config.Seed, m.configYAML)
	id, err := m.store.SaveReplay(r)
	if err != nil {
		m.logger.Warn("could not save replay", "error", err)
		return
	}
	m.replayID = id
	m.logger.Info("replay saved", "id", id, "frames", len(r.Frames))
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	needW := m.screen.Width() * cellWidth
	needH := m.screen.Height() + 2
	if m.width > 0 && (m.width < needW || m.height < needH) {
		return fmt.Sprintf("Terminal too small: need %dx%d, have %dx%d", needW, needH, m.width, m.height)
	}

	m.game.Render(m.screen)
	board := m.renderer.Render(m.screen)

	status := m.renderer.Style().Foreground(lipgloss.Color("245")).Render(
		fmt.Sprintf("%s  length %d  tick %d", m.game.Title(), m.gameState.Length, m.gameState.Tick),
	)
	helpView := m.renderer.Style().Foreground(lipgloss.Color("241")).Render(m.help.View(m.keyMapper.Keys()))

	view := lipgloss.JoinVertical(lipgloss.Left, board, status, helpView)
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, view)
	}
	return view
}

// State returns the last game state.
func (m Model) State() core.GameState {
	return m.gameState
}

// ReplayID returns the ID of the saved replay, if any.
func (m Model) ReplayID() string {
	return m.replayID
}

// Result is what a finished program reports back to the caller.
type Result struct {
	State    core.GameState
	ReplayID string
}

// Run starts the Bubble Tea program with the given game and blocks until
// the session ends.
func Run(game registry.Game, opts Options) (Result, error) {
	model := NewModel(game, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	if err != nil {
		return Result{}, fmt.Errorf("tui: %w", err)
	}

	fm, ok := final.(Model)
	if !ok {
		return Result{}, nil
	}
	return Result{State: fm.State(), ReplayID: fm.ReplayID()}, nil
}
