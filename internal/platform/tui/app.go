package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/forge-studio/internal/core"
	"github.com/vovakirdan/forge-studio/internal/engine"
	"github.com/vovakirdan/forge-studio/internal/studio"
)

type screen int

const (
	screenLibrary screen = iota
	screenPlay
	screenScores
)

// AppModel manages the full studio flow: library -> play -> library.
// This is the top-level model for both local and SSH sessions.
type AppModel struct {
	svc    *studio.Service
	config core.RuntimeConfig
	mode   engine.Mode

	screen     screen
	library    LibraryModel
	play       PlayModel
	scoreboard ScoreboardModel
	quitting   bool
}

// NewAppModel creates the studio app. An empty mode uses the service default.
func NewAppModel(svc *studio.Service, cfg core.RuntimeConfig, mode engine.Mode) AppModel {
	return AppModel{
		svc:     svc,
		config:  cfg,
		mode:    mode,
		library: NewLibraryModel(svc, cfg.ScreenW, cfg.ScreenH),
	}
}

// Init initializes the session.
func (m AppModel) Init() tea.Cmd {
	return m.library.Init()
}

// Update handles messages for the session.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenPlay:
		return m.updatePlay(msg)
	case screenScores:
		return m.updateScores(msg)
	default:
		return m.updateLibrary(msg)
	}
}

func (m AppModel) updateLibrary(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.library.Update(msg)
	if lib, ok := next.(LibraryModel); ok {
		m.library = lib
	}

	if m.library.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.library.WantsScoreboard() {
		m.scoreboard = NewScoreboardModel(m.svc.Store(), m.library.Games(), m.library.Cursor(), m.config.ScreenW, m.config.ScreenH)
		m.screen = screenScores
		return m, m.scoreboard.Init()
	}

	if sel := m.library.Selected(); sel != nil {
		play, err := m.open(sel.ID)
		if err != nil {
			m.library = NewLibraryModel(m.svc, m.config.ScreenW, m.config.ScreenH)
			m.library.setStatus("cannot open game: "+err.Error(), true)
			return m, nil
		}
		m.play = play
		m.screen = screenPlay
		return m, m.play.Init()
	}

	return m, cmd
}

// open loads a stored scene, counting a play, and wires score recording.
func (m AppModel) open(id string) (PlayModel, error) {
	g, err := m.svc.Open(id)
	if err != nil {
		return PlayModel{}, err
	}
	sc, err := studio.SceneOf(g)
	if err != nil {
		return PlayModel{}, err
	}
	svc := m.svc
	return NewPlayModel(svc.NewGame(sc, m.mode), m.config, func(st engine.State) error {
		return svc.Finish(g.ID, st)
	}), nil
}

func (m AppModel) updatePlay(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.play.Update(msg)
	if pm, ok := next.(PlayModel); ok {
		m.play = pm
	}

	if m.play.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.play.BackToMenu() {
		m.backToLibrary()
		return m, m.library.Init()
	}

	return m, cmd
}

func (m AppModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scoreboard.Update(msg)
	if sb, ok := next.(ScoreboardModel); ok {
		m.scoreboard = sb
	}

	if m.scoreboard.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scoreboard.IsGoingBack() {
		m.backToLibrary()
		return m, m.library.Init()
	}
	return m, cmd
}

func (m *AppModel) backToLibrary() {
	m.screen = screenLibrary
	m.library = NewLibraryModel(m.svc, m.config.ScreenW, m.config.ScreenH)
}

// View renders the current view.
func (m AppModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenPlay:
		return m.play.View()
	case screenScores:
		return m.scoreboard.View()
	default:
		return m.library.View()
	}
}

// Run starts the studio app in the local terminal.
func Run(svc *studio.Service, cfg core.RuntimeConfig, mode engine.Mode) error {
	p := tea.NewProgram(
		NewAppModel(svc, cfg, mode),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}
