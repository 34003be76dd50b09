package studio

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/forge-studio/internal/core"
	"github.com/vovakirdan/forge-studio/internal/engine"
	"github.com/vovakirdan/forge-studio/internal/generate"
	"github.com/vovakirdan/forge-studio/internal/scene"
)

func coinScene() scene.Scene {
	return scene.Scene{
		Kind: scene.KindPlatformer,
		Objects: []scene.Object{
			{Shape: scene.ShapeRectangle, X: 0, Y: 500, Width: 800, Height: 20, Behavior: scene.BehaviorStatic},
			{Shape: scene.ShapeCircle, X: 400, Y: 300, Radius: 15, Behavior: scene.BehaviorCollectible},
		},
	}
}

func lossScene() scene.Scene {
	return scene.Scene{
		Kind: scene.KindPlatformer,
		Objects: []scene.Object{
			{Shape: scene.ShapeRectangle, X: 100, Y: 400, Width: 32, Height: 32, Behavior: scene.BehaviorPlayer},
			{Shape: scene.ShapeRectangle, X: 100, Y: 400, Width: 24, Height: 24, Behavior: scene.BehaviorEnemy},
			{Shape: scene.ShapeCircle, X: 700, Y: 100, Radius: 10, Behavior: scene.BehaviorCollectible},
		},
	}
}

func startSession(t *testing.T, s *Session) (context.CancelFunc, <-chan error) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- s.Run(ctx) }()
	t.Cleanup(cancel)
	return cancel, errc
}

// waitFor reads snapshots until ok returns true.
func waitFor(t *testing.T, s *Session, ok func(Snapshot) bool) Snapshot {
	t.Helper()
	timeout := time.After(2 * time.Second)
	for {
		select {
		case snap := <-s.Snapshots():
			if ok(snap) {
				return snap
			}
		case <-timeout:
			t.Fatal("timed out waiting for snapshot")
			return Snapshot{}
		}
	}
}

func TestSessionClickWins(t *testing.T) {
	game := engine.New(coinScene(), engine.ModeClick, engine.DefaultOptions())
	s := NewSession("s1", "g1", game, 60)

	finished := make(chan engine.State, 1)
	s.OnFinish(func(st engine.State) { finished <- st })
	startSession(t, s)

	first := waitFor(t, s, func(Snapshot) bool { return true })
	if first.State.Status != engine.StatusPlaying {
		t.Fatalf("initial status = %v", first.State.Status)
	}

	if err := s.Send(context.Background(), Input{Kind: InputPointer, Point: core.Pt(400, 300)}); err != nil {
		t.Fatalf("Send() failed: %v", err)
	}
	snap := waitFor(t, s, func(sn Snapshot) bool { return sn.State.Status != engine.StatusPlaying })
	if snap.State.Status != engine.StatusWon || snap.State.Score != 10 {
		t.Errorf("final state = %+v", snap.State)
	}

	select {
	case st := <-finished:
		if st.Score != 10 {
			t.Errorf("OnFinish score = %d", st.Score)
		}
	case <-time.After(time.Second):
		t.Fatal("OnFinish not called")
	}
}

func TestSessionLoopStopsTickingWhenOver(t *testing.T) {
	game := engine.New(lossScene(), engine.ModeLoop, engine.DefaultOptions())
	s := NewSession("s2", "g2", game, 200)

	finishes := make(chan engine.State, 4)
	s.OnFinish(func(st engine.State) { finishes <- st })
	startSession(t, s)

	snap := waitFor(t, s, func(sn Snapshot) bool { return sn.State.Status == engine.StatusLost })
	if snap.Tick != 1 {
		t.Errorf("lost at tick %d, expected 1", snap.Tick)
	}

	// No further ticks once the round is over.
	select {
	case extra := <-s.Snapshots():
		t.Errorf("unexpected snapshot after loss: tick %d", extra.Tick)
	case <-time.After(50 * time.Millisecond):
	}

	// Restart re-arms the ticker and the enemy ends the round again.
	if err := s.Send(context.Background(), Input{Kind: InputRestart}); err != nil {
		t.Fatalf("Send() failed: %v", err)
	}
	waitFor(t, s, func(sn Snapshot) bool { return sn.State.Status == engine.StatusPlaying && sn.Tick == 0 })
	waitFor(t, s, func(sn Snapshot) bool { return sn.State.Status == engine.StatusLost })

	for i := 0; i < 2; i++ {
		select {
		case <-finishes:
		case <-time.After(time.Second):
			t.Fatalf("expected a finish per round, got %d", i)
		}
	}
}

func TestSessionPause(t *testing.T) {
	game := engine.New(scene.Template(scene.KindShooter), engine.ModeLoop, engine.DefaultOptions())
	s := NewSession("s3", "g3", game, 200)
	startSession(t, s)

	waitFor(t, s, func(sn Snapshot) bool { return sn.Tick >= 2 })
	s.Send(context.Background(), Input{Kind: InputPause})
	paused := waitFor(t, s, func(sn Snapshot) bool { return sn.Paused })

	time.Sleep(30 * time.Millisecond)
	var last Snapshot
	for drained := false; !drained; {
		select {
		case last = <-s.Snapshots():
		default:
			drained = true
		}
	}
	if last.Tick != 0 && last.Tick != paused.Tick {
		t.Errorf("tick advanced while paused: %d -> %d", paused.Tick, last.Tick)
	}

	s.Send(context.Background(), Input{Kind: InputResume})
	waitFor(t, s, func(sn Snapshot) bool { return !sn.Paused && sn.Tick > paused.Tick })
}

func TestSessionCancel(t *testing.T) {
	game := engine.New(coinScene(), engine.ModeClick, engine.DefaultOptions())
	s := NewSession("s4", "g4", game, 60)
	cancel, errc := startSession(t, s)

	cancel()
	select {
	case err := <-errc:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run() err = %v, expected context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run() did not return after cancel")
	}

	if err := s.Send(context.Background(), Input{Kind: InputPause}); !errors.Is(err, ErrSessionClosed) {
		t.Errorf("Send() after stop err = %v", err)
	}
}

func TestSnapshotDoesNotAlias(t *testing.T) {
	game := engine.New(scene.Template(scene.KindShooter), engine.ModeLoop, engine.DefaultOptions())
	s := NewSession("s5", "g5", game, 60)

	snap := s.snapshot()
	snap.Scene.Objects[0].X = -999
	if game.View().Objects[0].X == -999 {
		t.Error("snapshot shares objects with the running game")
	}
}

func TestServicePlayScoresRounds(t *testing.T) {
	svc := newTestService(t, generate.NewTemplate())
	g, _ := svc.Generate(context.Background(), generate.Request{Prompt: "collect coins"})

	s, err := svc.Play(g.ID, engine.ModeClick)
	if err != nil {
		t.Fatalf("Play() failed: %v", err)
	}
	startSession(t, s)

	// Click every collectible of the platformer template.
	sc := *g.Scene
	for _, o := range sc.Objects {
		if o.Behavior == scene.BehaviorCollectible {
			s.Send(context.Background(), Input{Kind: InputPointer, Point: core.Pt(o.X, o.Y)})
		}
	}
	waitFor(t, s, func(sn Snapshot) bool { return sn.State.Status == engine.StatusWon })

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if high, _ := svc.Store().HighScore(g.ID); high > 0 {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Error("finished round was not scored")
}

func TestSessionsRegistry(t *testing.T) {
	r := NewSessions()
	s := NewSession("a", "g", engine.New(coinScene(), engine.ModeClick, engine.DefaultOptions()), 60)

	r.Register(s)
	if got, ok := r.Get("a"); !ok || got != s {
		t.Fatal("Get() did not return the registered session")
	}
	if r.Count() != 1 {
		t.Errorf("Count() = %d", r.Count())
	}
	r.StopAll()
	select {
	case <-s.Done():
	default:
		t.Error("StopAll() did not stop the session")
	}
	r.Unregister("a")
	if r.Count() != 0 {
		t.Errorf("Count() = %d after unregister", r.Count())
	}
}
