package engine

import "github.com/vovakirdan/forge-studio/internal/core"

// GroundY is the ground plane of the continuous variant.
const GroundY = float64(core.SurfaceH)

// Physics holds the continuous-loop tuning. Units are logical pixels per tick.
type Physics struct {
	Gravity    float64 `yaml:"gravity"`
	MoveSpeed  float64 `yaml:"move_speed"`
	JumpSpeed  float64 `yaml:"jump_speed"` // initial upward speed, positive
	MaxFall    float64 `yaml:"max_fall"`
	EnemySpeed float64 `yaml:"enemy_speed"`
}

// DefaultPhysics returns the standard tuning.
func DefaultPhysics() Physics {
	return Physics{
		Gravity:    0.5,
		MoveSpeed:  4,
		JumpSpeed:  10,
		MaxFall:    12,
		EnemySpeed: 2,
	}
}

// Body is the simulated player.
type Body struct {
	X, Y     float64
	W, H     float64
	VX, VY   float64
	Grounded bool
}

// Rect returns the body's bounding box.
func (b Body) Rect() core.Rect {
	return core.NewRect(b.X, b.Y, b.W, b.H)
}

// ApplyDirectional integrates one tick of held directional input.
// Jumping is only possible from the ground. The body is clamped to the
// horizontal bounds and the ground plane.
func ApplyDirectional(b Body, in core.InputFrame, p Physics) Body {
	b.VX = 0
	if in.Has(core.ActionLeft) {
		b.VX -= p.MoveSpeed
	}
	if in.Has(core.ActionRight) {
		b.VX += p.MoveSpeed
	}

	if in.Has(core.ActionJump) && b.Grounded {
		b.VY = -p.JumpSpeed
	}
	b.Grounded = false

	b.VY += p.Gravity
	if p.MaxFall > 0 && b.VY > p.MaxFall {
		b.VY = p.MaxFall
	}

	b.X = core.ClampF(b.X+b.VX, 0, max(0, core.SurfaceW-b.W))
	b.Y += b.VY

	if b.Y < 0 {
		b.Y = 0
		b.VY = 0
	}
	if b.Y+b.H >= GroundY {
		b.Y = GroundY - b.H
		b.VY = 0
		b.Grounded = true
	}
	return b
}

// land stops a falling body on the first platform top it crossed this tick.
// Platforms are one-way: they only block from above.
func land(b Body, prevBottom float64, platforms []core.Rect) Body {
	if b.VY < 0 {
		return b
	}
	bottom := b.Y + b.H
	for _, p := range platforms {
		if prevBottom > p.Y || bottom < p.Y {
			continue
		}
		if b.X+b.W <= p.X || b.X >= p.Right() {
			continue
		}
		b.Y = p.Y - b.H
		b.VY = 0
		b.Grounded = true
		return b
	}
	return b
}
