package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/forge-studio/internal/generate"
	"github.com/vovakirdan/forge-studio/internal/storage"
	"github.com/vovakirdan/forge-studio/internal/studio"
)

// generateTimeout bounds a prompt submitted from the library. Providers
// apply their own, usually shorter, timeout as well.
const generateTimeout = 3 * time.Minute

// LibraryKeyMap defines the key bindings for the library.
type LibraryKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Play   key.Binding
	New    key.Binding
	Delete key.Binding
	Scores key.Binding
	Format key.Binding
	Reload key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k LibraryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Play, k.New, k.Delete, k.Scores, k.Format, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k LibraryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Play},
		{k.New, k.Format, k.Delete},
		{k.Scores, k.Reload, k.Quit},
	}
}

// DefaultLibraryKeyMap returns default key bindings.
func DefaultLibraryKeyMap() LibraryKeyMap {
	return LibraryKeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("up/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("down/j", "down")),
		Play:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "play")),
		New:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new game")),
		Delete: key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "delete")),
		Scores: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "scores")),
		Format: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "scene/document")),
		Reload: key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "reload")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// generatedMsg carries the outcome of a generation request.
type generatedMsg struct {
	game storage.Game
	err  error
}

// LibraryModel lists stored games and takes prompts for new ones.
type LibraryModel struct {
	svc     *studio.Service
	games   []storage.Metadata
	table   table.Model
	input   textinput.Model
	spinner spinner.Model
	help    help.Model
	keys    LibraryKeyMap
	format  generate.Format

	width, height int
	prompting     bool
	generating    bool
	status        string
	statusIsError bool

	quitting       bool
	selected       *storage.Metadata
	openScoreboard bool
}

var (
	libraryTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	libraryBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	errorStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	okStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// NewLibraryModel creates a library model over the service.
func NewLibraryModel(svc *studio.Service, width, height int) LibraryModel {
	in := textinput.New()
	in.Placeholder = "a platformer where a fox collects stars in a forest"
	in.CharLimit = 500
	in.Prompt = "prompt> "

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	h := help.New()
	h.ShowAll = false

	m := LibraryModel{
		svc:     svc,
		input:   in,
		spinner: sp,
		help:    h,
		keys:    DefaultLibraryKeyMap(),
		format:  generate.FormatScene,
		width:   width,
		height:  height,
	}
	m.table = m.createTable()
	m.reload()
	return m
}

// createTable creates a new table with appropriate columns.
func (m *LibraryModel) createTable() table.Model {
	titleW := max(m.width-4-10-10-7-14-10, 16)
	columns := []table.Column{
		{Title: "Title", Width: titleW},
		{Title: "Kind", Width: 10},
		{Title: "Format", Width: 10},
		{Title: "Plays", Width: 7},
		{Title: "Updated", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// reload refreshes the game list from storage.
func (m *LibraryModel) reload() {
	games, err := m.svc.List()
	if err != nil {
		m.setStatus("could not load games: "+err.Error(), true)
		games = nil
	}
	m.games = games

	rows := make([]table.Row, len(games))
	for i, g := range games {
		title := g.Title
		if title == "" {
			title = "(untitled)"
		}
		rows[i] = table.Row{
			title,
			g.Kind,
			g.Format,
			fmt.Sprintf("%d", g.Plays),
			g.UpdatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

func (m *LibraryModel) setStatus(s string, isErr bool) {
	m.status = s
	m.statusIsError = isErr
}

func (m LibraryModel) current() (storage.Metadata, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.games) {
		return storage.Metadata{}, false
	}
	return m.games[i], true
}

// Init initializes the library model.
func (m LibraryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the library.
func (m LibraryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.reload()
		m.help.Width = msg.Width
		m.input.Width = max(msg.Width-12, 10)
		return m, nil

	case generatedMsg:
		m.generating = false
		if msg.err != nil {
			m.setStatus(generate.UserMessage(msg.err), true)
			return m, nil
		}
		m.setStatus(fmt.Sprintf("created %q", msg.game.Title), false)
		m.reload()
		m.table.GotoTop()
		return m, nil

	case spinner.TickMsg:
		if !m.generating {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.prompting {
			return m.handlePromptKey(msg)
		}
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m LibraryModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case m.generating:
		return m, nil

	case key.Matches(msg, m.keys.New):
		m.prompting = true
		m.input.Reset()
		cmd := m.input.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.Format):
		if m.format == generate.FormatScene {
			m.format = generate.FormatDocument
		} else {
			m.format = generate.FormatScene
		}
		m.setStatus("new games will be "+string(m.format)+"s", false)
		return m, nil

	case key.Matches(msg, m.keys.Reload):
		m.reload()
		return m, nil

	case key.Matches(msg, m.keys.Play):
		g, ok := m.current()
		if !ok {
			return m, nil
		}
		if g.Format == storage.FormatDocument {
			m.setStatus("document games play in the browser: run `studio serve` and open /play/"+g.ID, true)
			return m, nil
		}
		m.selected = &g
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		g, ok := m.current()
		if !ok {
			return m, nil
		}
		if err := m.svc.Delete(g.ID); err != nil {
			m.setStatus("delete failed: "+err.Error(), true)
			return m, nil
		}
		m.setStatus(fmt.Sprintf("deleted %q", g.Title), false)
		m.reload()
		return m, nil

	case key.Matches(msg, m.keys.Scores):
		if len(m.games) > 0 {
			m.openScoreboard = true
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m LibraryModel) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.prompting = false
		m.input.Blur()
		return m, nil
	case "enter":
		prompt := strings.TrimSpace(m.input.Value())
		if prompt == "" {
			return m, nil
		}
		m.prompting = false
		m.input.Blur()
		m.generating = true
		m.setStatus("", false)
		return m, tea.Batch(m.spinner.Tick, m.generateCmd(prompt))
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m LibraryModel) generateCmd(prompt string) tea.Cmd {
	svc, format := m.svc, m.format
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), generateTimeout)
		defer cancel()
		g, err := svc.Generate(ctx, generate.Request{Prompt: prompt, Format: format})
		return generatedMsg{game: g, err: err}
	}
}

// View renders the library.
func (m LibraryModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(libraryTitleStyle.Render("F O R G E   S T U D I O"), m.width))
	b.WriteString("\n\n")

	if len(m.games) == 0 {
		b.WriteString(libraryBoxStyle.Render(statusStyle.Italic(true).Render("No games yet.\nPress n and describe one!")))
	} else {
		b.WriteString(libraryBoxStyle.Render(m.table.View()))
	}
	b.WriteString("\n")

	switch {
	case m.prompting:
		b.WriteString(m.input.View())
	case m.generating:
		b.WriteString(m.spinner.View() + " generating with " + m.svc.Generator().Name() + "...")
	case m.status != "" && m.statusIsError:
		b.WriteString(errorStyle.Render(m.status))
	case m.status != "":
		b.WriteString(okStyle.Render(m.status))
	default:
		b.WriteString(statusStyle.Render(fmt.Sprintf("%d games · new games: %s", len(m.games), m.format)))
	}
	b.WriteString("\n\n")
	b.WriteString(statusStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// Selected returns the game chosen for play, or nil.
func (m LibraryModel) Selected() *storage.Metadata {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m LibraryModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested the scoreboard.
func (m LibraryModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Cursor returns the highlighted row.
func (m LibraryModel) Cursor() int {
	return m.table.Cursor()
}

// Games returns the listed games.
func (m LibraryModel) Games() []storage.Metadata {
	return m.games
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}
