package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/forge-studio/internal/storage"
)

const (
	maxScores      = 100
	pickerWidth    = 28 // game picker column, border included
	pickerMinWidth = 90 // narrower terminals get a one-line game switcher
)

var (
	pickerActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	switcherStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 1)
	emptyScoresStyle  = statusStyle.Italic(true).Padding(2, 4)
)

// ScoreboardKeyMap defines the scoreboard bindings.
type ScoreboardKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Next key.Binding
	Prev key.Binding
	Back key.Binding
	Quit key.Binding
}

func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Next, k.Prev, k.Back}
}

func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Next, k.Prev}, {k.Back, k.Quit}}
}

// DefaultScoreboardKeyMap returns the default scoreboard bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll")),
		Down: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll")),
		Next: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab/→", "next game")),
		Prev: key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab/←", "prev game")),
		Back: key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "library")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel shows finished rounds and aggregate stats for one stored
// game at a time.
type ScoreboardModel struct {
	store  *storage.Store
	games  []storage.Metadata
	cursor int
	scores []storage.ScoreEntry
	stats  *storage.GameStats
	err    error

	table table.Model
	help  help.Model
	keys  ScoreboardKeyMap

	width, height int
	quitting      bool
	goingBack     bool
}

// NewScoreboardModel opens the scoreboard on games[cursor].
func NewScoreboardModel(store *storage.Store, games []storage.Metadata, cursor, width, height int) ScoreboardModel {
	if cursor < 0 || cursor >= len(games) {
		cursor = 0
	}
	m := ScoreboardModel{
		store:  store,
		games:  games,
		cursor: cursor,
		help:   help.New(),
		keys:   DefaultScoreboardKeyMap(),
		width:  width,
		height: height,
	}
	m.table = m.newTable()
	m.load()
	return m
}

func (m ScoreboardModel) wide() bool {
	return m.width >= pickerMinWidth
}

// Current returns the game being shown, if any.
func (m ScoreboardModel) Current() (storage.Metadata, bool) {
	if len(m.games) == 0 {
		return storage.Metadata{}, false
	}
	return m.games[m.cursor], true
}

func (m ScoreboardModel) newTable() table.Model {
	avail := m.width - 6
	if m.wide() {
		avail -= pickerWidth + 2
	}
	when := min(max(avail-30, 12), 20)

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "#", Width: 5},
			{Title: "Score", Width: 10},
			{Title: "Result", Width: 9},
			{Title: "Played", Width: when},
		}),
		table.WithFocused(true),
		table.WithHeight(max(m.height-9, 3)),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.BorderStyle(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240")).BorderBottom(true).Bold(true)
	s.Selected = s.Selected.Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Bold(false)
	t.SetStyles(s)
	return t
}

// load reads the scores and stats of the current game. A failed read shows
// an error line instead of the table.
func (m *ScoreboardModel) load() {
	m.scores, m.stats, m.err = nil, nil, nil
	if g, ok := m.Current(); ok && m.store != nil {
		m.scores, m.err = m.store.TopScores(g.ID, maxScores)
		if m.err == nil {
			m.stats, m.err = m.store.Stats(g.ID)
		}
	}

	rows := make([]table.Row, len(m.scores))
	for i, s := range m.scores {
		rows[i] = table.Row{
			strconv.Itoa(i + 1),
			strconv.Itoa(s.Score),
			s.Status,
			s.CreatedAt.Local().Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m *ScoreboardModel) step(delta int) {
	if n := len(m.games); n > 0 {
		m.cursor = (m.cursor + delta + n) % n
		m.load()
	}
}

func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles scoreboard input. Back is reported through IsGoingBack and
// left for the parent to act on.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil
		case key.Matches(msg, m.keys.Next):
			m.step(1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.step(-1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		m.load()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	heading := "SCOREBOARD"
	if g, ok := m.Current(); ok {
		heading += " · " + g.Title
	}
	b.WriteString(centerText(libraryTitleStyle.Render(heading), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(statusStyle.Render(m.summary()), m.width))
	b.WriteString("\n\n")

	scores := libraryBoxStyle.Render(m.scoresView())
	if m.wide() {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.pickerView(), "  ", scores))
	} else {
		b.WriteString(centerText(m.switcherView(), m.width))
		b.WriteString("\n\n")
		b.WriteString(centerText(scores, m.width))
	}

	b.WriteString("\n")
	b.WriteString(statusStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// summary is the one-line stats header of the current game.
func (m ScoreboardModel) summary() string {
	g, ok := m.Current()
	if !ok {
		return "no games stored"
	}
	parts := []string{g.Kind, fmt.Sprintf("%d plays", g.Plays)}
	if st := m.stats; st != nil && st.Sessions > 0 {
		rate := 100 * float64(st.Wins) / float64(st.Sessions)
		parts = append(parts,
			fmt.Sprintf("%d rounds", st.Sessions),
			fmt.Sprintf("%.0f%% won", rate),
			fmt.Sprintf("best %d", st.HighScore),
			fmt.Sprintf("avg %.1f", st.AvgScore),
		)
	}
	return strings.Join(parts, " · ")
}

func (m ScoreboardModel) scoresView() string {
	switch {
	case m.err != nil:
		return errorStyle.Render("could not load scores: " + m.err.Error())
	case len(m.scores) == 0:
		return emptyScoresStyle.Render("No finished rounds yet.\nPlay it to set the first score.")
	default:
		return m.table.View()
	}
}

func (m ScoreboardModel) pickerView() string {
	lines := []string{"Games", strings.Repeat("─", pickerWidth-4)}
	for i, g := range m.games {
		if i == m.cursor {
			lines = append(lines, pickerActiveStyle.Render("▸ "+clip(g.Title, pickerWidth-6)))
			continue
		}
		lines = append(lines, "  "+clip(g.Title, pickerWidth-6))
	}
	return libraryBoxStyle.Width(pickerWidth - 2).Render(strings.Join(lines, "\n"))
}

// switcherView shows the current game between its neighbours' arrows.
func (m ScoreboardModel) switcherView() string {
	g, ok := m.Current()
	if !ok {
		return ""
	}
	label := fmt.Sprintf("%s  %d/%d", clip(g.Title, max(m.width-20, 8)), m.cursor+1, len(m.games))
	return statusStyle.Render("◂ ") + switcherStyle.Render(label) + statusStyle.Render(" ▸")
}

// clip shortens s to at most n runes, marking the cut with an ellipsis.
func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n || n < 2 {
		return s
	}
	return string(r[:n-1]) + "…"
}

// IsGoingBack reports whether the user asked to return to the library.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting reports whether the user asked to quit.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}
