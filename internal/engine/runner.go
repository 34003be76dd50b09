package engine

import (
	"github.com/vovakirdan/forge-studio/internal/core"
	"github.com/vovakirdan/forge-studio/internal/scene"
)

// Mode selects the interaction variant.
type Mode string

const (
	ModeClick Mode = "click"
	ModeLoop  Mode = "loop"
)

// CollectPoints is the score for touching a collectible in the loop variant.
const CollectPoints = 10

// Options configures a session.
type Options struct {
	Lives       int
	Physics     Physics
	Progression Progression
	OneHitLoss  bool // any enemy contact ends the session regardless of lives
}

// DefaultOptions returns the standard session options.
func DefaultOptions() Options {
	return Options{
		Lives:       DefaultLives,
		Physics:     DefaultPhysics(),
		Progression: NoProgression(),
		OneHitLoss:  true,
	}
}

// Game is a playable session over one scene. A Game is not safe for
// concurrent use; it belongs to the goroutine driving it.
type Game interface {
	// Step advances one tick with the held input.
	// Pause and restart actions are honoured before anything else.
	Step(in core.InputFrame) State
	// Pointer resolves a click in logical coordinates.
	Pointer(p core.Point) State
	// View returns the scene with current object positions.
	View() scene.Scene
	State() State
	Paused() bool
	Pause()
	Resume()
	Restart()
	Mode() Mode
}

// New creates a session in the given mode.
func New(sc scene.Scene, mode Mode, opts Options) Game {
	if mode == ModeLoop {
		return NewRunner(sc, opts)
	}
	return NewClicker(sc, opts)
}

// Clicker is the click-driven session. It never ticks on its own.
type Clicker struct {
	scene   scene.Scene
	opts    Options
	state   State
	paused  bool
	restart bool
}

// NewClicker creates a click-driven session.
func NewClicker(sc scene.Scene, opts Options) *Clicker {
	c := &Clicker{scene: sc.Normalize(), opts: opts}
	c.reset()
	return c
}

func (c *Clicker) reset() {
	c.state = NewState(c.opts.Lives)
	c.paused = false
	c.restart = false
}

// Step only honours the out-of-band flags.
func (c *Clicker) Step(in core.InputFrame) State {
	if in.Has(core.ActionRestart) {
		c.restart = true
	}
	if in.Has(core.ActionPause) {
		c.paused = !c.paused
	}
	if c.restart {
		c.reset()
	}
	return c.state
}

// Pointer applies the click policy and re-evaluates the terminal status.
// Scenes without collectibles or items are never won.
func (c *Clicker) Pointer(p core.Point) State {
	if c.paused || !c.state.Playing() {
		return c.state
	}
	st := HandlePointer(c.scene, c.state, p)
	if c.scene.Targets() > 0 {
		st = EvaluateTerminal(c.scene, st)
	}
	c.state = st
	return c.state
}

func (c *Clicker) View() scene.Scene { return c.scene }
func (c *Clicker) State() State      { return c.state }
func (c *Clicker) Paused() bool      { return c.paused }
func (c *Clicker) Pause()            { c.paused = true }
func (c *Clicker) Resume()           { c.paused = false }
func (c *Clicker) Restart()          { c.reset() }
func (c *Clicker) Mode() Mode        { return ModeClick }

type mover struct {
	index int
	dir   float64 // +1 or -1
}

// Runner is the continuous-loop session: held input, gravity, moving enemies.
type Runner struct {
	base    scene.Scene
	view    scene.Scene
	opts    Options
	state   State
	player  int
	spawn   Body
	body    Body
	enemies []mover
	solids  []core.Rect
	paused  bool
	restart bool
	ticks   int
}

// NewRunner creates a continuous session. Scenes without a player object get
// a default one appended (dropped from the top-left) so object indices of the
// declared objects are kept.
func NewRunner(sc scene.Scene, opts Options) *Runner {
	base := sc.Normalize()
	player := base.PlayerIndex()
	if player < 0 {
		base.Objects = append(base.Objects, scene.Object{
			Shape:    scene.ShapeRectangle,
			X:        100,
			Y:        0,
			Width:    32,
			Height:   32,
			Color:    "#00FFFF",
			Behavior: scene.BehaviorPlayer,
		})
		player = len(base.Objects) - 1
	}

	r := &Runner{base: base, opts: opts, player: player}
	b := base.Objects[player].Bounds()
	r.spawn = Body{X: b.X, Y: b.Y, W: b.W, H: b.H}
	for _, o := range base.Objects {
		if o.Behavior == scene.BehaviorStatic && o.Shape == scene.ShapeRectangle {
			r.solids = append(r.solids, o.Bounds())
		}
	}
	r.Reset()
	return r
}

// Reset reinitialises the state and every moving object.
func (r *Runner) Reset() {
	r.view = r.base
	r.view.Objects = append([]scene.Object(nil), r.base.Objects...)
	r.state = NewState(r.opts.Lives)
	r.body = r.spawn
	r.enemies = r.enemies[:0]
	for i, o := range r.base.Objects {
		if o.Behavior == scene.BehaviorEnemy {
			r.enemies = append(r.enemies, mover{index: i, dir: 1})
		}
	}
	r.paused = false
	r.restart = false
	r.ticks = 0
}

// Step runs one tick: player integration, platform landing, enemy motion,
// then enemy and collectible overlap tests and the win check.
func (r *Runner) Step(in core.InputFrame) State {
	if in.Has(core.ActionRestart) {
		r.restart = true
	}
	if in.Has(core.ActionPause) {
		r.paused = !r.paused
	}
	if r.restart {
		r.Reset()
		return r.state
	}
	if r.paused || !r.state.Playing() {
		return r.state
	}
	r.ticks++

	prevBottom := r.body.Y + r.body.H
	r.body = ApplyDirectional(r.body, in, r.opts.Physics)
	r.body = land(r.body, prevBottom, r.solids)
	r.placePlayer()
	r.moveEnemies()

	pr := r.body.Rect()
	for _, e := range r.enemies {
		if r.state.IsCollected(e.index) {
			continue
		}
		if pr.Intersects(r.view.Objects[e.index].Bounds()) {
			r.hurt()
			return r.state
		}
	}

	for i, o := range r.view.Objects {
		if !o.IsTarget() || r.state.IsCollected(i) {
			continue
		}
		if pr.Intersects(o.Bounds()) {
			r.state = r.state.collect(i, CollectPoints)
		}
	}

	if r.base.Targets() > 0 {
		r.state = EvaluateTerminal(r.view, r.state)
	}
	return r.state
}

func (r *Runner) hurt() {
	st := r.state.Clone()
	st.Lives = max(0, st.Lives-1)
	if r.opts.OneHitLoss || st.Lives == 0 {
		st.Status = StatusLost
		r.state = st
		return
	}
	r.state = st
	r.body = r.spawn
	r.placePlayer()
}

func (r *Runner) placePlayer() {
	o := &r.view.Objects[r.player]
	if o.Shape == scene.ShapeCircle {
		o.X = r.body.X + o.Radius
		o.Y = r.body.Y + o.Radius
		return
	}
	o.X = r.body.X
	o.Y = r.body.Y
}

func (r *Runner) moveEnemies() {
	speed := r.opts.Progression.Speed(r.opts.Physics.EnemySpeed, r.state.Score, r.ticks)
	for i := range r.enemies {
		e := &r.enemies[i]
		o := &r.view.Objects[e.index]
		o.X += e.dir * speed
		b := o.Bounds()
		if b.X < 0 {
			o.X -= b.X
			e.dir = -e.dir
		} else if b.Right() > core.SurfaceW {
			o.X -= b.Right() - core.SurfaceW
			e.dir = -e.dir
		}
	}
}

// Pointer applies the click policy to the current view, so shooter scenes can
// still be played with the mouse while the loop runs.
func (r *Runner) Pointer(p core.Point) State {
	if r.paused || !r.state.Playing() {
		return r.state
	}
	st := HandlePointer(r.view, r.state, p)
	if r.base.Targets() > 0 {
		st = EvaluateTerminal(r.view, st)
	}
	r.state = st
	return r.state
}

// Body returns the simulated player body.
func (r *Runner) Body() Body { return r.body }

// Ticks returns the number of simulated ticks since the last reset.
func (r *Runner) Ticks() int { return r.ticks }

func (r *Runner) View() scene.Scene { return r.view }
func (r *Runner) State() State      { return r.state }
func (r *Runner) Paused() bool      { return r.paused }
func (r *Runner) Pause()            { r.paused = true }
func (r *Runner) Resume()           { r.paused = false }
func (r *Runner) Restart()          { r.restart = true }
func (r *Runner) Mode() Mode        { return ModeLoop }
