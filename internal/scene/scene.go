// Package scene defines the declarative scene format produced by generators and
// consumed by the engine and renderers.
package scene

import (
	"math"
	"strings"

	"github.com/vovakirdan/forge-studio/internal/core"
)

// Shape selects an object's geometry.
type Shape string

const (
	ShapeRectangle Shape = "rectangle"
	ShapeCircle    Shape = "circle"
)

// Behavior tags how an object participates in interaction.
type Behavior string

const (
	BehaviorStatic      Behavior = "static"
	BehaviorPlayer      Behavior = "player"
	BehaviorCollectible Behavior = "collectible"
	BehaviorEnemy       Behavior = "enemy"
	BehaviorPuzzlePiece Behavior = "puzzle-piece"
	BehaviorItem        Behavior = "item"
)

// Kind is an open tag selecting the interaction policy.
type Kind string

const (
	KindPlatformer Kind = "platformer"
	KindShooter    Kind = "shooter"
	KindPuzzle     Kind = "puzzle"
	KindRacing     Kind = "racing"
	KindStrategy   Kind = "strategy"
	KindAdventure  Kind = "adventure"
)

// Defaults applied by Normalize.
const (
	DefaultWidth  = 50.0
	DefaultHeight = 50.0
	DefaultRadius = 20.0
	DefaultColor  = "#888888"
	DefaultTheme  = "default"
)

// Scene is one playable level.
// Objects are kept in declared order: it is both the draw order and the hit-test priority.
type Scene struct {
	Title   string   `json:"title,omitempty" jsonschema:"description=Display title"`
	Kind    Kind     `json:"type" jsonschema:"required,description=Game kind: platformer shooter puzzle racing strategy adventure"`
	Theme   string   `json:"theme,omitempty" jsonschema:"description=Background theme: default space forest underwater cyberpunk"`
	Objects []Object `json:"objects" jsonschema:"required"`
}

// Object is a single drawable entity.
// (X, Y) is the top-left corner of a rectangle and the centre of a circle.
type Object struct {
	Shape    Shape    `json:"type" jsonschema:"required,enum=rectangle,enum=circle"`
	X        float64  `json:"x" jsonschema:"required,minimum=0,maximum=800"`
	Y        float64  `json:"y" jsonschema:"required,minimum=0,maximum=600"`
	Width    float64  `json:"width,omitempty" jsonschema:"description=Rectangle width (default 50)"`
	Height   float64  `json:"height,omitempty" jsonschema:"description=Rectangle height (default 50)"`
	Radius   float64  `json:"radius,omitempty" jsonschema:"description=Circle radius (default 20)"`
	Color    string   `json:"color,omitempty" jsonschema:"description=CSS hex color such as #FFD700"`
	Behavior Behavior `json:"behavior,omitempty" jsonschema:"enum=static,enum=player,enum=collectible,enum=enemy,enum=puzzle-piece,enum=item"`
}

// Normalize returns a copy of the scene with every default filled in.
// The receiver is left untouched.
func (s Scene) Normalize() Scene {
	out := s
	out.Kind = Kind(strings.ToLower(strings.TrimSpace(string(s.Kind))))
	if out.Theme == "" {
		out.Theme = DefaultTheme
	}
	out.Objects = make([]Object, len(s.Objects))
	for i, o := range s.Objects {
		out.Objects[i] = o.Normalize()
	}
	return out
}

// Normalize fills in the documented defaults for missing or invalid fields.
func (o Object) Normalize() Object {
	switch Shape(strings.ToLower(strings.TrimSpace(string(o.Shape)))) {
	case ShapeCircle:
		o.Shape = ShapeCircle
	default:
		o.Shape = ShapeRectangle
	}
	if !finite(o.X) {
		o.X = 0
	}
	if !finite(o.Y) {
		o.Y = 0
	}
	if o.Width <= 0 || !finite(o.Width) {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 || !finite(o.Height) {
		o.Height = DefaultHeight
	}
	if o.Radius <= 0 || !finite(o.Radius) {
		o.Radius = DefaultRadius
	}
	if o.Color == "" {
		o.Color = DefaultColor
	}
	switch b := Behavior(strings.ToLower(strings.TrimSpace(string(o.Behavior)))); b {
	case BehaviorPlayer, BehaviorCollectible, BehaviorEnemy, BehaviorPuzzlePiece, BehaviorItem:
		o.Behavior = b
	default:
		o.Behavior = BehaviorStatic
	}
	return o
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Bounds returns the object's axis-aligned bounding box.
func (o Object) Bounds() core.Rect {
	if o.Shape == ShapeCircle {
		return core.Circle{X: o.X, Y: o.Y, R: o.Radius}.Bounds()
	}
	return core.NewRect(o.X, o.Y, o.Width, o.Height)
}

// Contains reports whether p hits the object's geometry.
func (o Object) Contains(p core.Point) bool {
	if o.Shape == ShapeCircle {
		return core.Circle{X: o.X, Y: o.Y, R: o.Radius}.Contains(p)
	}
	return core.NewRect(o.X, o.Y, o.Width, o.Height).Contains(p)
}

// IsTarget reports whether the object must be collected to win.
func (o Object) IsTarget() bool {
	return o.Behavior == BehaviorCollectible || o.Behavior == BehaviorItem
}

// PlayerIndex returns the index of the first player object, or -1.
func (s Scene) PlayerIndex() int {
	for i, o := range s.Objects {
		if o.Behavior == BehaviorPlayer {
			return i
		}
	}
	return -1
}

// Targets counts the objects that must be collected to win.
func (s Scene) Targets() int {
	n := 0
	for _, o := range s.Objects {
		if o.IsTarget() {
			n++
		}
	}
	return n
}
