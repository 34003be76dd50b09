package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/forge-studio/internal/core"
	"github.com/vovakirdan/forge-studio/internal/engine"
	"github.com/vovakirdan/forge-studio/internal/render"
)

// holdTicks is how long a key press counts as held. Terminals report
// presses and auto-repeats but never releases.
const holdTicks = 8

// FinishFunc records the end of a round. A returned error is shown as a
// warning; play continues.
type FinishFunc func(engine.State) error

// PlayModel is the Bubble Tea model for playing one scene.
type PlayModel struct {
	game      engine.Game
	cells     *render.Cells
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	held      map[core.Action]int // remaining ticks per held action
	onFinish  FinishFunc

	ticking    bool
	finished   bool
	warning    string
	quitting   bool
	backToMenu bool
}

var (
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true)
	pausedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true)
)

// NewPlayModel creates a play model. The last terminal row is kept for
// the status line.
func NewPlayModel(game engine.Game, cfg core.RuntimeConfig, onFinish FinishFunc) PlayModel {
	return PlayModel{
		game:      game,
		cells:     render.NewCells(cfg.ScreenW, max(cfg.ScreenH-1, 1)),
		config:    cfg,
		keyMapper: NewKeyMapper(),
		held:      make(map[core.Action]int),
		onFinish:  onFinish,
	}
}

// Init starts the tick loop for the continuous variant. Click-driven
// sessions only react to events.
func (m PlayModel) Init() tea.Cmd {
	if m.game.Mode() != engine.ModeLoop {
		return nil
	}
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m PlayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.cells.Resize(msg.Width, max(msg.Height-1, 1))
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m PlayModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	switch {
	case IsHeld(action):
		m.held[action] = holdTicks
	case action == core.ActionPause:
		if m.game.Paused() {
			m.game.Resume()
		} else {
			m.game.Pause()
		}
	case action == core.ActionRestart:
		return m.restart()
	case action == core.ActionBack:
		m.backToMenu = true
	}
	return m, nil
}

// handleMouse maps a left click to a logical point on the scene.
func (m PlayModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	if msg.Y >= m.cells.Screen().Height() {
		return m, nil
	}
	st := m.game.Pointer(m.cells.ToLogical(msg.X, msg.Y))
	if !st.Playing() {
		m.finish(st)
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m PlayModel) handleTick() (tea.Model, tea.Cmd) {
	if !m.ticking && m.game.State().Playing() {
		m.ticking = true
	}
	if !m.ticking {
		return m, nil
	}

	frame := core.NewInputFrame()
	for a, n := range m.held {
		frame.Set(a)
		if n <= 1 {
			delete(m.held, a)
		} else {
			m.held[a] = n - 1
		}
	}

	st := m.game.Step(frame)
	if !st.Playing() {
		m.ticking = false
		m.finish(st)
		return m, nil
	}
	return m, tickCmd(m.config.TickRate)
}

func (m PlayModel) restart() (tea.Model, tea.Cmd) {
	m.game.Restart()
	m.game.Step(core.NewInputFrame())
	m.finished = false
	m.warning = ""
	clear(m.held)

	if m.game.Mode() == engine.ModeLoop && !m.ticking {
		m.ticking = true
		return m, tickCmd(m.config.TickRate)
	}
	return m, nil
}

// finish records the round once.
func (m *PlayModel) finish(st engine.State) {
	if m.finished {
		return
	}
	m.finished = true
	if m.onFinish == nil {
		return
	}
	if err := m.onFinish(st.Clone()); err != nil {
		m.warning = "score not saved: " + err.Error()
	}
}

// View renders the current state to a string for display.
func (m PlayModel) View() string {
	if m.quitting {
		return ""
	}

	render.Frame(m.game.View(), m.game.State(), m.cells)

	var b strings.Builder
	b.WriteString(RenderScreen(m.cells.Screen()))
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	return b.String()
}

func (m PlayModel) statusLine() string {
	switch {
	case m.warning != "":
		return warningStyle.Render(m.warning)
	case m.game.Paused():
		return pausedStyle.Render("PAUSED") + statusStyle.Render("  p resume · r restart · b back · q quit")
	case m.game.Mode() == engine.ModeLoop:
		return statusStyle.Render("←/→ move · space jump · click · p pause · r restart · b back · q quit")
	default:
		st := m.game.State()
		return statusStyle.Render(fmt.Sprintf("click objects · %d collected · p pause · r restart · b back · q quit", len(st.Collected)))
	}
}

// State returns the session's interaction state.
func (m PlayModel) State() engine.State {
	return m.game.State()
}

// Warning returns the last storage warning, if any.
func (m PlayModel) Warning() string {
	return m.warning
}

// IsQuitting returns true if user requested to quit entirely.
func (m PlayModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to the library.
func (m PlayModel) BackToMenu() bool {
	return m.backToMenu
}

// RunPlay plays a single game in the terminal until the user quits.
func RunPlay(game engine.Game, cfg core.RuntimeConfig, onFinish FinishFunc) (engine.State, error) {
	model := NewPlayModel(game, cfg, onFinish)

	p := tea.NewProgram(
		quitOnBack{model},
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return game.State(), err
}

// quitOnBack ends a standalone play program on "back".
type quitOnBack struct {
	PlayModel
}

func (q quitOnBack) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := q.PlayModel.Update(msg)
	q.PlayModel = next.(PlayModel)
	if q.BackToMenu() {
		return q, tea.Quit
	}
	return q, cmd
}
