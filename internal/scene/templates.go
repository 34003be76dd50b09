package scene

// templates are the built-in starter scenes used by the offline generator.
var templates = map[Kind]Scene{
	KindPlatformer: {
		Kind:  KindPlatformer,
		Theme: DefaultTheme,
		Objects: []Object{
			{Shape: ShapeRectangle, X: 100, Y: 400, Width: 600, Height: 20, Color: "#8B4513", Behavior: BehaviorStatic},
			{Shape: ShapeRectangle, X: 200, Y: 300, Width: 100, Height: 20, Color: "#8B4513", Behavior: BehaviorStatic},
			{Shape: ShapeCircle, X: 150, Y: 350, Radius: 15, Color: "#FFD700", Behavior: BehaviorCollectible},
		},
	},
	KindPuzzle: {
		Kind:  KindPuzzle,
		Theme: DefaultTheme,
		Objects: []Object{
			{Shape: ShapeRectangle, X: 200, Y: 150, Width: 50, Height: 50, Color: "#FF0000", Behavior: BehaviorPuzzlePiece},
			{Shape: ShapeRectangle, X: 300, Y: 150, Width: 50, Height: 50, Color: "#00FF00", Behavior: BehaviorPuzzlePiece},
		},
	},
	KindShooter: {
		Kind:  KindShooter,
		Theme: "space",
		Objects: []Object{
			{Shape: ShapeRectangle, X: 400, Y: 500, Width: 30, Height: 50, Color: "#0000FF", Behavior: BehaviorPlayer},
			{Shape: ShapeCircle, X: 200, Y: 100, Radius: 15, Color: "#FF0000", Behavior: BehaviorEnemy},
		},
	},
}

// Template returns a fresh copy of the built-in scene for kind.
// Unknown kinds get the platformer template.
func Template(kind Kind) Scene {
	t, ok := templates[kind]
	if !ok {
		t = templates[KindPlatformer]
	}
	out := t
	out.Objects = append([]Object(nil), t.Objects...)
	return out
}

// TemplateKinds lists the kinds with a built-in template.
func TemplateKinds() []Kind {
	return []Kind{KindPlatformer, KindPuzzle, KindShooter}
}
