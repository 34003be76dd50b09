package engine

import (
	"testing"

	"github.com/vovakirdan/forge-studio/internal/core"
	"github.com/vovakirdan/forge-studio/internal/scene"
)

func coinScene() scene.Scene {
	return scene.Scene{
		Kind: scene.KindPlatformer,
		Objects: []scene.Object{
			{Shape: scene.ShapeRectangle, X: 100, Y: 400, Width: 600, Height: 20, Behavior: scene.BehaviorStatic},
			{Shape: scene.ShapeCircle, X: 150, Y: 350, Radius: 15, Color: "#FFD700", Behavior: scene.BehaviorCollectible},
		},
	}
}

func TestInitialize(t *testing.T) {
	st := Initialize(scene.Scene{})

	if st.Score != 0 || st.Lives != 3 || st.Status != StatusPlaying {
		t.Errorf("Initialize() = %+v, expected score 0, lives 3, playing", st)
	}
	if st.Collected == nil || len(st.Collected) != 0 {
		t.Errorf("Initialize() collected = %v, expected empty set", st.Collected)
	}
}

func TestEmptySceneIsVacuousWin(t *testing.T) {
	sc := scene.Scene{Kind: scene.KindPlatformer}
	st := EvaluateTerminal(sc, Initialize(sc))
	if st.Status != StatusWon {
		t.Errorf("Status = %v, expected won", st.Status)
	}
}

func TestPlatformerCollectOnce(t *testing.T) {
	sc := coinScene()
	st := Initialize(sc)

	st = HandlePointer(sc, st, core.Pt(150, 350))
	if st.Score != 10 {
		t.Errorf("Score = %d, expected 10", st.Score)
	}
	if !st.IsCollected(1) || len(st.Collected) != 1 {
		t.Errorf("Collected = %v, expected {1}", st.Collected)
	}

	again := HandlePointer(sc, st, core.Pt(150, 350))
	if again.Score != 10 {
		t.Errorf("second click Score = %d, expected 10", again.Score)
	}

	if EvaluateTerminal(sc, st).Status != StatusWon {
		t.Error("collecting the only coin should win")
	}
}

func TestPlatformerIgnoresStatics(t *testing.T) {
	sc := coinScene()
	st := HandlePointer(sc, Initialize(sc), core.Pt(400, 410))
	if st.Score != 0 || len(st.Collected) != 0 {
		t.Errorf("clicking a platform changed state: %+v", st)
	}
}

func TestShooterDestroysEnemy(t *testing.T) {
	sc := scene.Template(scene.KindShooter)
	st := HandlePointer(sc, Initialize(sc), core.Pt(200, 100))

	if st.Score != 20 {
		t.Errorf("Score = %d, expected 20", st.Score)
	}
	if !st.IsCollected(1) {
		t.Errorf("enemy should be destroyed, collected = %v", st.Collected)
	}
}

func TestDefaultPolicyScoresWithoutRemoval(t *testing.T) {
	sc := scene.Template(scene.KindPuzzle)
	st := Initialize(sc)

	st = HandlePointer(sc, st, core.Pt(210, 160))
	st = HandlePointer(sc, st, core.Pt(210, 160))
	if st.Score != 10 {
		t.Errorf("Score = %d, expected 10 after two clicks", st.Score)
	}
	if len(st.Collected) != 0 {
		t.Errorf("default policy should not remove objects, got %v", st.Collected)
	}

	miss := HandlePointer(sc, st, core.Pt(790, 590))
	if miss.Score != st.Score {
		t.Error("a click on empty space should not score")
	}
}

func TestDeclarationOrderWins(t *testing.T) {
	sc := scene.Scene{
		Kind: scene.KindPlatformer,
		Objects: []scene.Object{
			{Shape: scene.ShapeRectangle, X: 0, Y: 0, Width: 100, Height: 100, Behavior: scene.BehaviorCollectible},
			{Shape: scene.ShapeCircle, X: 50, Y: 50, Radius: 10, Behavior: scene.BehaviorCollectible},
		},
	}
	st := HandlePointer(sc, Initialize(sc), core.Pt(50, 50))
	if !st.IsCollected(0) || st.IsCollected(1) {
		t.Errorf("first declared object should win, collected = %v", st.Collected)
	}

	st = HandlePointer(sc, st, core.Pt(50, 50))
	if !st.IsCollected(1) {
		t.Errorf("collected objects no longer block hits, collected = %v", st.Collected)
	}
}

func TestHandlePointerDoesNotMutateInput(t *testing.T) {
	sc := coinScene()
	st := Initialize(sc)
	_ = HandlePointer(sc, st, core.Pt(150, 350))

	if st.Score != 0 || len(st.Collected) != 0 {
		t.Errorf("input state was mutated: %+v", st)
	}
}

func TestNoChangesAfterTerminal(t *testing.T) {
	sc := coinScene()
	st := Initialize(sc)
	st.Status = StatusWon

	if got := HandlePointer(sc, st, core.Pt(150, 350)); got.Score != 0 {
		t.Errorf("finished session scored: %+v", got)
	}
}

func TestEvaluateTerminalLoss(t *testing.T) {
	st := Initialize(coinScene())
	st.Lives = 0
	if EvaluateTerminal(coinScene(), st).Status != StatusLost {
		t.Error("zero lives should lose")
	}
}

func TestClickerRestart(t *testing.T) {
	c := NewClicker(coinScene(), DefaultOptions())
	c.Pointer(core.Pt(150, 350))
	if c.State().Status != StatusWon {
		t.Fatalf("Status = %v, expected won", c.State().Status)
	}

	in := core.NewInputFrame()
	in.Set(core.ActionRestart)
	st := c.Step(in)
	if st.Status != StatusPlaying || st.Score != 0 {
		t.Errorf("after restart state = %+v", st)
	}
}

func TestClickerPaused(t *testing.T) {
	c := NewClicker(coinScene(), DefaultOptions())
	c.Pause()
	if st := c.Pointer(core.Pt(150, 350)); st.Score != 0 {
		t.Error("paused session should ignore clicks")
	}
	c.Resume()
	if st := c.Pointer(core.Pt(150, 350)); st.Score != 10 {
		t.Errorf("Score = %d after resume, expected 10", st.Score)
	}
}

func TestClickerWithoutTargetsKeepsPlaying(t *testing.T) {
	shooter := scene.Scene{
		Kind: scene.KindShooter,
		Objects: []scene.Object{
			{Shape: scene.ShapeCircle, X: 100, Y: 100, Radius: 20, Behavior: scene.BehaviorEnemy},
			{Shape: scene.ShapeCircle, X: 300, Y: 100, Radius: 20, Behavior: scene.BehaviorEnemy},
			{Shape: scene.ShapeCircle, X: 500, Y: 100, Radius: 20, Behavior: scene.BehaviorEnemy},
		},
	}
	puzzle := scene.Scene{
		Kind: scene.KindPuzzle,
		Objects: []scene.Object{
			{Shape: scene.ShapeRectangle, X: 100, Y: 100, Width: 50, Height: 50, Behavior: scene.BehaviorPuzzlePiece},
		},
	}

	tests := []struct {
		name  string
		sc    scene.Scene
		click core.Point
		score int
	}{
		{"shooter after one kill", shooter, core.Pt(100, 100), 20},
		{"puzzle after a miss", puzzle, core.Pt(700, 500), 0},
		{"puzzle after a hit", puzzle, core.Pt(120, 120), 5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := NewClicker(tc.sc, DefaultOptions())
			st := c.Pointer(tc.click)
			if st.Status != StatusPlaying {
				t.Errorf("Status = %v, expected playing", st.Status)
			}
			if st.Score != tc.score {
				t.Errorf("Score = %d, expected %d", st.Score, tc.score)
			}

			r := NewRunner(tc.sc, DefaultOptions())
			if got := r.Pointer(tc.click).Status; got != st.Status {
				t.Errorf("runner Status = %v, clicker Status = %v", got, st.Status)
			}
		})
	}
}

func TestClickerSkipsCollectedOverlap(t *testing.T) {
	sc := scene.Scene{
		Kind: scene.KindPlatformer,
		Objects: []scene.Object{
			{Shape: scene.ShapeRectangle, X: 100, Y: 100, Width: 80, Height: 80, Behavior: scene.BehaviorCollectible},
			{Shape: scene.ShapeRectangle, X: 120, Y: 120, Width: 40, Height: 40, Behavior: scene.BehaviorCollectible},
			{Shape: scene.ShapeRectangle, X: 600, Y: 400, Width: 40, Height: 40, Behavior: scene.BehaviorCollectible},
		},
	}
	c := NewClicker(sc, DefaultOptions())
	p := core.Pt(140, 140)

	st := c.Pointer(p)
	if !st.IsCollected(0) || st.IsCollected(1) || st.Score != 10 {
		t.Fatalf("first click = %+v, expected the outer coin", st)
	}

	// The outer coin is gone, so the same point now reaches the inner one.
	st = c.Pointer(p)
	if !st.IsCollected(1) || st.Score != 20 {
		t.Errorf("second click = %+v, expected the inner coin", st)
	}
	if st.Status != StatusPlaying {
		t.Errorf("Status = %v, one coin is still left", st.Status)
	}

	st = c.Pointer(p)
	if st.Score != 20 || len(st.Collected) != 2 {
		t.Errorf("third click on emptied point changed state: %+v", st)
	}
}
