package tui

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/forge-studio/internal/core"
	"github.com/vovakirdan/forge-studio/internal/engine"
	"github.com/vovakirdan/forge-studio/internal/generate"
	"github.com/vovakirdan/forge-studio/internal/scene"
	"github.com/vovakirdan/forge-studio/internal/storage"
	"github.com/vovakirdan/forge-studio/internal/studio"
)

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, false},
		{tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionJump, false},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}}, core.ActionPause, false},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}}, core.ActionRestart, false},
		{tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}, core.ActionQuit, true},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'z'}}, core.ActionNone, false},
	}

	for _, tc := range tests {
		t.Run(tc.msg.String(), func(t *testing.T) {
			action, quit := km.MapKey(tc.msg)
			if action != tc.action || quit != tc.quit {
				t.Errorf("MapKey(%q) = %v, %v; expected %v, %v", tc.msg.String(), action, quit, tc.action, tc.quit)
			}
		})
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(10, 2)
	s.Fill(' ', core.ColorSky)
	s.DrawTextColor(1, 0, "Hi", core.ColorBlack)
	s.DrawText(0, 1, "there")

	out := RenderScreen(s)
	if strings.Count(out, "\n") != 1 {
		t.Errorf("expected 2 lines, got %q", out)
	}
	if !strings.Contains(out, "Hi") || !strings.Contains(out, "there") {
		t.Errorf("text lost in %q", out)
	}
}

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 31, TickRate: 60}
}

func coinScene() scene.Scene {
	return scene.Scene{
		Title: "Coins",
		Kind:  scene.KindPlatformer,
		Objects: []scene.Object{
			{Shape: scene.ShapeRectangle, X: 0, Y: 0, Width: 800, Height: 600, Behavior: scene.BehaviorCollectible},
		},
	}
}

func click(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func TestPlayModelClickFinishesOnce(t *testing.T) {
	var finished []engine.State
	game := engine.New(coinScene(), engine.ModeClick, engine.DefaultOptions())
	m := NewPlayModel(game, testConfig(), func(st engine.State) error {
		finished = append(finished, st)
		return nil
	})

	if m.Init() != nil {
		t.Error("click mode should not start a tick loop")
	}

	next, _ := m.Update(click(40, 15))
	m = next.(PlayModel)
	if m.State().Status != engine.StatusWon || m.State().Score != 10 {
		t.Fatalf("state = %+v, expected a win", m.State())
	}

	next, _ = m.Update(click(40, 15))
	m = next.(PlayModel)
	if len(finished) != 1 {
		t.Errorf("finish recorded %d times, expected once", len(finished))
	}

	// The status row is not part of the scene.
	game2 := engine.New(coinScene(), engine.ModeClick, engine.DefaultOptions())
	m2 := NewPlayModel(game2, testConfig(), nil)
	next, _ = m2.Update(click(40, 30))
	if next.(PlayModel).State().Score != 0 {
		t.Error("click on the status line should be ignored")
	}
}

func TestPlayModelStorageWarning(t *testing.T) {
	game := engine.New(coinScene(), engine.ModeClick, engine.DefaultOptions())
	m := NewPlayModel(game, testConfig(), func(engine.State) error {
		return errors.New("disk full")
	})

	next, _ := m.Update(click(10, 10))
	m = next.(PlayModel)
	if !strings.Contains(m.Warning(), "disk full") {
		t.Errorf("Warning() = %q", m.Warning())
	}
	if !strings.Contains(m.View(), "score not saved") {
		t.Error("warning should be shown in the view")
	}
	if m.State().Status != engine.StatusWon {
		t.Error("a storage failure must not affect the session")
	}
}

func lossScene() scene.Scene {
	return scene.Scene{
		Objects: []scene.Object{
			{Shape: scene.ShapeRectangle, X: 100, Y: 400, Width: 32, Height: 32, Behavior: scene.BehaviorPlayer},
			{Shape: scene.ShapeRectangle, X: 100, Y: 400, Width: 24, Height: 24, Behavior: scene.BehaviorEnemy},
			{Shape: scene.ShapeCircle, X: 700, Y: 100, Radius: 10, Behavior: scene.BehaviorCollectible},
		},
	}
}

func TestPlayModelLoopStopsTicking(t *testing.T) {
	game := engine.New(lossScene(), engine.ModeLoop, engine.DefaultOptions())
	m := NewPlayModel(game, testConfig(), nil)
	if m.Init() == nil {
		t.Fatal("loop mode should start ticking")
	}

	next, cmd := m.Update(TickMsg{})
	m = next.(PlayModel)
	if m.State().Status != engine.StatusLost {
		t.Fatalf("Status = %v, expected lost", m.State().Status)
	}
	if cmd != nil {
		t.Error("tick loop should stop once the round is over")
	}

	next, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	m = next.(PlayModel)
	if m.State().Status != engine.StatusPlaying {
		t.Errorf("restart should reset the state, got %v", m.State().Status)
	}
	if cmd == nil {
		t.Error("restart should re-arm the tick loop")
	}
}

func TestPlayModelHeldKeysExpire(t *testing.T) {
	sc := scene.Scene{
		Objects: []scene.Object{
			{Shape: scene.ShapeRectangle, X: 100, Y: 568, Width: 32, Height: 32, Behavior: scene.BehaviorPlayer},
		},
	}
	r := engine.NewRunner(sc, engine.DefaultOptions())
	m := NewPlayModel(r, testConfig(), nil)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = next.(PlayModel)
	for i := 0; i < holdTicks+5; i++ {
		next, _ = m.Update(TickMsg{})
		m = next.(PlayModel)
	}
	moved := r.Body().X - 100
	if want := float64(holdTicks) * engine.DefaultPhysics().MoveSpeed; moved != want {
		t.Errorf("moved %v, expected %v for one key press", moved, want)
	}
}

func TestPlayModelPauseAndBack(t *testing.T) {
	game := engine.New(coinScene(), engine.ModeClick, engine.DefaultOptions())
	m := NewPlayModel(game, testConfig(), nil)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}})
	m = next.(PlayModel)
	if !game.Paused() || !strings.Contains(m.View(), "PAUSED") {
		t.Error("p should pause")
	}
	next, _ = m.Update(click(10, 10))
	m = next.(PlayModel)
	if m.State().Score != 0 {
		t.Error("clicks while paused should be ignored")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !next.(PlayModel).BackToMenu() {
		t.Error("esc should go back")
	}
}

func newTestService(t *testing.T) *studio.Service {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "tui.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return studio.NewService(store, generate.NewTemplate(), nil, studio.Config{})
}

func TestLibraryGenerateAndDelete(t *testing.T) {
	svc := newTestService(t)
	m := NewLibraryModel(svc, 100, 30)
	if !strings.Contains(m.View(), "No games yet") {
		t.Error("empty library should say so")
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	m = next.(LibraryModel)
	if !m.prompting {
		t.Fatal("n should open the prompt")
	}
	for _, r := range "space shooter" {
		next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(LibraryModel)
	}
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(LibraryModel)
	if !m.generating || cmd == nil {
		t.Fatal("enter should start generating")
	}

	// Run the generation command directly.
	next, _ = m.Update(m.generateCmd("space shooter")())
	m = next.(LibraryModel)
	if len(m.Games()) != 1 || m.Games()[0].Kind != string(scene.KindShooter) {
		t.Fatalf("games = %+v", m.Games())
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(LibraryModel)
	if m.Selected() == nil || m.Selected().ID != m.Games()[0].ID {
		t.Error("enter should select the game for play")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	m = next.(LibraryModel)
	if len(m.Games()) != 0 {
		t.Errorf("x should delete, %d games left", len(m.Games()))
	}
}

func TestLibraryGenerationFailure(t *testing.T) {
	svc := newTestService(t)
	m := NewLibraryModel(svc, 100, 30)
	m.generating = true

	next, _ := m.Update(generatedMsg{err: &generate.Failure{Message: "quota exceeded"}})
	m = next.(LibraryModel)
	if m.generating || !m.statusIsError || m.status != "quota exceeded" {
		t.Errorf("status = %q (error %v)", m.status, m.statusIsError)
	}
}

func TestAppOpensAndRecordsScore(t *testing.T) {
	svc := newTestService(t)
	g, err := svc.Store().Save(storage.Game{Metadata: storage.Metadata{Title: "Coins"}, Scene: ptr(coinScene())})
	if err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	app := NewAppModel(svc, testConfig(), engine.ModeClick)
	next, _ := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	app = next.(AppModel)
	if app.screen != screenPlay {
		t.Fatalf("enter should open the game, screen = %v", app.screen)
	}

	next, _ = app.Update(click(40, 15))
	app = next.(AppModel)
	if high, _ := svc.Store().HighScore(g); high != 10 {
		t.Errorf("HighScore = %d, expected 10", high)
	}
	stored, _ := svc.Get(g)
	if stored.Plays != 1 {
		t.Errorf("Plays = %d, expected 1", stored.Plays)
	}

	next, _ = app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'b'}})
	app = next.(AppModel)
	if app.screen != screenLibrary {
		t.Error("b should return to the library")
	}

	next, _ = app.Update(tea.KeyMsg{Type: tea.KeyTab})
	app = next.(AppModel)
	if app.screen != screenScores || !strings.Contains(app.View(), "Coins") {
		t.Error("tab should open the scoreboard for the game")
	}
}

func TestAppRefusesDocumentGames(t *testing.T) {
	svc := newTestService(t)
	svc.Store().Save(storage.Game{Metadata: storage.Metadata{Title: "Doc"}, Document: "<html></html>"})

	app := NewAppModel(svc, testConfig(), engine.ModeClick)
	next, _ := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	app = next.(AppModel)
	if app.screen != screenLibrary {
		t.Error("document games should not open in the terminal")
	}
	if !strings.Contains(app.View(), "browser") {
		t.Error("library should explain where document games play")
	}
}

func TestScoreboardSwitchesGames(t *testing.T) {
	svc := newTestService(t)
	store := svc.Store()
	first, _ := store.Save(storage.Game{Metadata: storage.Metadata{Title: "Star Fox Run", Kind: "platformer"}, Scene: ptr(coinScene())})
	second, _ := store.Save(storage.Game{Metadata: storage.Metadata{Title: "Blaster", Kind: "shooter"}, Scene: ptr(coinScene())})
	store.SaveScore(first, 30, "won")
	store.SaveScore(first, 10, "lost")

	games := []storage.Metadata{{ID: first, Title: "Star Fox Run", Kind: "platformer"}, {ID: second, Title: "Blaster", Kind: "shooter"}}

	for _, width := range []int{120, 60} {
		m := NewScoreboardModel(store, games, 0, width, 30)
		view := m.View()
		if !strings.Contains(view, "Star Fox Run") || !strings.Contains(view, "2 rounds") || !strings.Contains(view, "50% won") {
			t.Errorf("width %d: view does not show the first game's stats:\n%s", width, view)
		}

		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
		m = next.(ScoreboardModel)
		if g, _ := m.Current(); g.ID != second {
			t.Errorf("width %d: tab moved to %q, expected Blaster", width, g.Title)
		}
		if !strings.Contains(m.View(), "No finished rounds yet") {
			t.Errorf("width %d: game without rounds should show the empty message", width)
		}

		next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
		next, _ = next.(ScoreboardModel).Update(tea.KeyMsg{Type: tea.KeyShiftTab})
		if g, _ := next.(ScoreboardModel).Current(); g.ID != second {
			t.Errorf("width %d: shift+tab should wrap around, got %q", width, g.Title)
		}
	}
}

func TestScoreboardBack(t *testing.T) {
	m := NewScoreboardModel(nil, nil, 5, 80, 24)
	if _, ok := m.Current(); ok {
		t.Error("empty scoreboard should have no current game")
	}
	if !strings.Contains(m.View(), "no games stored") {
		t.Error("empty scoreboard should say so")
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd != nil {
		t.Error("back should not quit the program")
	}
	if !next.(ScoreboardModel).IsGoingBack() {
		t.Error("esc should go back")
	}
}

func TestClip(t *testing.T) {
	tests := []struct {
		in       string
		n        int
		expected string
	}{
		{"short", 10, "short"},
		{"exactly", 7, "exactly"},
		{"truncated title", 6, "trunc…"},
		{"звёздный путь", 5, "звёз…"},
	}
	for _, tc := range tests {
		if got := clip(tc.in, tc.n); got != tc.expected {
			t.Errorf("clip(%q, %d) = %q, expected %q", tc.in, tc.n, got, tc.expected)
		}
	}
}

func ptr[T any](v T) *T { return &v }
