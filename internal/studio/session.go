package studio

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/vovakirdan/forge-studio/internal/core"
	"github.com/vovakirdan/forge-studio/internal/engine"
	"github.com/vovakirdan/forge-studio/internal/scene"
)

// ErrSessionClosed is returned when sending to a stopped session.
var ErrSessionClosed = errors.New("studio: session closed")

// InputKind tags an input message.
type InputKind string

const (
	InputPointer InputKind = "pointer"
	InputKeys    InputKind = "keys" // replaces the held directional keys
	InputPause   InputKind = "pause"
	InputResume  InputKind = "resume"
	InputRestart InputKind = "restart"
)

// Input is a message into a running session.
type Input struct {
	Kind  InputKind
	Point core.Point      // InputPointer
	Keys  core.InputFrame // InputKeys
}

// Snapshot is a copy of the session taken after a change.
// It shares nothing with the session goroutine.
type Snapshot struct {
	Scene  scene.Scene  `json:"scene"`
	State  engine.State `json:"state"`
	Paused bool         `json:"paused"`
	Tick   uint64       `json:"tick"`
}

// Session runs one game in its own goroutine. Input arrives by channel and
// snapshots leave by channel; nothing else touches the engine.
type Session struct {
	id       string
	gameID   string
	game     engine.Game
	tickRate int

	inbox     chan Input
	snapshots chan Snapshot
	done      chan struct{}
	doneOnce  sync.Once

	held     core.InputFrame
	tick     uint64
	finished bool

	onFinish func(engine.State)
}

// NewSession creates a session around a game. tickRate only matters for
// the loop variant.
func NewSession(id, gameID string, game engine.Game, tickRate int) *Session {
	if tickRate <= 0 {
		tickRate = 60
	}
	return &Session{
		id:        id,
		gameID:    gameID,
		game:      game,
		tickRate:  tickRate,
		inbox:     make(chan Input, 64),
		snapshots: make(chan Snapshot, 8),
		done:      make(chan struct{}),
		held:      core.NewInputFrame(),
	}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// GameID returns the stored game being played.
func (s *Session) GameID() string { return s.gameID }

// OnFinish sets a callback run on the session goroutine each time a round
// ends (won or lost). Must be set before Run.
func (s *Session) OnFinish(fn func(engine.State)) {
	s.onFinish = fn
}

// Send queues an input. It blocks only while the inbox is full.
func (s *Session) Send(ctx context.Context, in Input) error {
	select {
	case <-s.done:
		return ErrSessionClosed
	default:
	}
	select {
	case s.inbox <- in:
		return nil
	case <-s.done:
		return ErrSessionClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Snapshots returns the channel snapshots are published on. Slow readers
// lose old snapshots, never the latest one.
func (s *Session) Snapshots() <-chan Snapshot {
	return s.snapshots
}

// Done returns a channel that closes when the session ends.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Stop ends the session. Safe to call multiple times.
func (s *Session) Stop() {
	s.doneOnce.Do(func() {
		close(s.done)
	})
}

// Run drives the session until ctx is cancelled or Stop is called.
// The loop variant ticks at the session rate while playing and stops
// ticking once the round is over; a restart re-arms the ticker.
func (s *Session) Run(ctx context.Context) error {
	defer s.Stop()

	s.publish()

	var ticker *time.Ticker
	var tickC <-chan time.Time
	arm := func() {
		if s.game.Mode() != engine.ModeLoop || ticker != nil {
			return
		}
		ticker = time.NewTicker(time.Second / time.Duration(s.tickRate))
		tickC = ticker.C
	}
	disarm := func() {
		if ticker == nil {
			return
		}
		ticker.Stop()
		ticker = nil
		tickC = nil
	}
	defer disarm()
	arm()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-s.done:
			return nil

		case <-tickC:
			paused := s.game.Paused()
			st := s.game.Step(s.held)
			if !paused {
				s.tick++
			}
			s.publish()
			if !st.Playing() {
				disarm()
				s.finish(st)
			}

		case in := <-s.inbox:
			if s.handle(in) {
				arm()
			}
		}
	}
}

// handle applies one input and reports whether the ticker should run.
func (s *Session) handle(in Input) bool {
	switch in.Kind {
	case InputPointer:
		st := s.game.Pointer(in.Point)
		s.publish()
		if !st.Playing() {
			s.finish(st)
		}
		return st.Playing()

	case InputKeys:
		s.held = in.Keys.Clone()
		s.held.Unset(core.ActionPause)
		s.held.Unset(core.ActionRestart)
		return s.game.State().Playing()

	case InputPause:
		s.game.Pause()
	case InputResume:
		s.game.Resume()
	case InputRestart:
		s.game.Restart()
		s.game.Step(core.NewInputFrame())
		s.held.Clear()
		s.tick = 0
		s.finished = false
	}
	s.publish()
	return s.game.State().Playing()
}

func (s *Session) finish(st engine.State) {
	if s.finished {
		return
	}
	s.finished = true
	if s.onFinish != nil {
		s.onFinish(st.Clone())
	}
}

func (s *Session) snapshot() Snapshot {
	view := s.game.View()
	view.Objects = append([]scene.Object(nil), view.Objects...)
	return Snapshot{
		Scene:  view,
		State:  s.game.State().Clone(),
		Paused: s.game.Paused(),
		Tick:   s.tick,
	}
}

// publish sends the current snapshot, dropping the oldest when full.
func (s *Session) publish() {
	snap := s.snapshot()
	select {
	case s.snapshots <- snap:
		return
	default:
	}
	select {
	case <-s.snapshots:
	default:
	}
	select {
	case s.snapshots <- snap:
	default:
	}
}
