package scene

import (
	"encoding/json"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/vovakirdan/forge-studio/internal/core"
)

func TestParseFlatAndEnvelope(t *testing.T) {
	flat := `{"title":"Coins","type":"platformer","theme":"forest","objects":[
		{"type":"circle","x":150,"y":350,"radius":15,"color":"#FFD700","behavior":"collectible"}]}`
	envelope := `{"title":"Coins","type":"platformer","config":{"theme":"forest","objects":[
		{"type":"circle","x":150,"y":350,"radius":15,"color":"#FFD700","behavior":"collectible"}]}}`

	a, err := Parse([]byte(flat))
	if err != nil {
		t.Fatalf("Parse(flat) error: %v", err)
	}
	b, err := Parse([]byte(envelope))
	if err != nil {
		t.Fatalf("Parse(envelope) error: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Errorf("flat and envelope differ:\n%+v\n%+v", a, b)
	}
	if a.Theme != "forest" || len(a.Objects) != 1 || a.Objects[0].Shape != ShapeCircle {
		t.Errorf("unexpected scene: %+v", a)
	}
}

func TestParseLenientObjects(t *testing.T) {
	data := `{"type":"puzzle","objects":[
		{"type":"rect","x":"10","y":"20.5","width":"wide","behavior":"Puzzle-Piece"},
		42,
		{"type":"hexagon","x":null,"y":5},
		{"x":1,"y":2,"radius":-3}
	]}`

	s, err := Parse([]byte(data))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if len(s.Objects) != 3 {
		t.Fatalf("expected 3 objects (non-object dropped), got %d", len(s.Objects))
	}

	n := s.Normalize()
	first := n.Objects[0]
	if first.Shape != ShapeRectangle || first.X != 10 || first.Y != 20.5 {
		t.Errorf("first object = %+v", first)
	}
	if first.Width != DefaultWidth || first.Height != DefaultHeight {
		t.Errorf("non-numeric width should default, got %vx%v", first.Width, first.Height)
	}
	if first.Behavior != BehaviorPuzzlePiece {
		t.Errorf("behavior = %q, expected puzzle-piece", first.Behavior)
	}

	unknown := n.Objects[1]
	if unknown.Shape != ShapeRectangle || unknown.X != 0 || unknown.Color != DefaultColor {
		t.Errorf("unknown shape should fall back to a default rectangle, got %+v", unknown)
	}
	if unknown.Behavior != BehaviorStatic {
		t.Errorf("missing behavior should be static, got %q", unknown.Behavior)
	}
	if n.Objects[2].Radius != DefaultRadius {
		t.Errorf("negative radius should default, got %v", n.Objects[2].Radius)
	}
}

func TestNonFiniteNumbersDefault(t *testing.T) {
	data := `{"type":"platformer","objects":[
		{"type":"rectangle","x":"NaN","y":"-Inf","width":"Inf","height":"nan","behavior":"collectible"},
		{"type":"circle","x":"+Infinity","y":40,"radius":"Inf"}
	]}`

	s, err := Parse([]byte(data))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	n := s.Normalize()

	rect := n.Objects[0]
	if rect.X != 0 || rect.Y != 0 {
		t.Errorf("non-finite position should be 0, got (%v, %v)", rect.X, rect.Y)
	}
	if rect.Width != DefaultWidth || rect.Height != DefaultHeight {
		t.Errorf("non-finite size should default, got %vx%v", rect.Width, rect.Height)
	}
	circle := n.Objects[1]
	if circle.X != 0 || circle.Y != 40 || circle.Radius != DefaultRadius {
		t.Errorf("circle = %+v", circle)
	}

	if _, err := json.Marshal(n); err != nil {
		t.Errorf("normalized scene must encode: %v", err)
	}
}

func TestNormalizeNonFiniteFields(t *testing.T) {
	o := Object{X: math.NaN(), Y: math.Inf(1), Width: math.Inf(1), Height: math.NaN(), Radius: math.Inf(-1)}.Normalize()

	if o.X != 0 || o.Y != 0 {
		t.Errorf("position = (%v, %v), expected (0, 0)", o.X, o.Y)
	}
	if o.Width != DefaultWidth || o.Height != DefaultHeight || o.Radius != DefaultRadius {
		t.Errorf("size = %vx%v r%v, expected defaults", o.Width, o.Height, o.Radius)
	}
}

func TestParseMissingObjects(t *testing.T) {
	tests := []string{
		`{"type":"platformer"}`,
		`{"type":"platformer","objects":null}`,
		`{"type":"platformer","objects":"none"}`,
	}
	for _, data := range tests {
		s, err := Parse([]byte(data))
		if err != nil {
			t.Errorf("Parse(%s) error: %v", data, err)
			continue
		}
		if len(s.Objects) != 0 {
			t.Errorf("Parse(%s) objects = %v, expected none", data, s.Objects)
		}
	}

	if _, err := Parse([]byte(`not json`)); err == nil {
		t.Error("Parse(garbage) should fail")
	}
}

func TestNormalizeDoesNotMutate(t *testing.T) {
	s := Scene{Kind: "Platformer", Objects: []Object{{X: 1, Y: 2}}}
	n := s.Normalize()

	if s.Objects[0].Width != 0 || s.Objects[0].Shape != "" {
		t.Errorf("Normalize mutated the receiver: %+v", s.Objects[0])
	}
	if n.Kind != KindPlatformer || n.Theme != DefaultTheme {
		t.Errorf("normalized scene = %+v", n)
	}
}

func TestObjectContains(t *testing.T) {
	coin := Object{Shape: ShapeCircle, X: 150, Y: 350, Radius: 15}
	block := Object{Shape: ShapeRectangle, X: 100, Y: 100, Width: 50, Height: 50}

	tests := []struct {
		name     string
		obj      Object
		p        core.Point
		expected bool
	}{
		{"circle centre", coin, core.Pt(150, 350), true},
		{"circle boundary", coin, core.Pt(150, 365), true},
		{"circle outside", coin, core.Pt(166, 350), false},
		{"rect corner", block, core.Pt(100, 100), true},
		{"rect far edge", block, core.Pt(150, 120), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.obj.Contains(tc.p); got != tc.expected {
				t.Errorf("Contains(%v) = %v, expected %v", tc.p, got, tc.expected)
			}
		})
	}
}

func TestEnvelopeRoundTrip(t *testing.T) {
	s := Template(KindShooter)
	s.Title = "Space Blaster"

	data, err := json.Marshal(s.Envelope())
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if !strings.Contains(string(data), `"config"`) {
		t.Errorf("envelope should nest config, got %s", data)
	}
	back, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if !reflect.DeepEqual(s, back) {
		t.Errorf("round trip mismatch:\n%+v\n%+v", s, back)
	}
}

func TestTemplateIsACopy(t *testing.T) {
	a := Template(KindPlatformer)
	a.Objects[0].X = 999

	b := Template(KindPlatformer)
	if b.Objects[0].X == 999 {
		t.Error("Template() should return an independent copy")
	}
	if Template("racing").Kind != KindPlatformer {
		t.Error("unknown kinds should fall back to the platformer template")
	}
}

func TestPlayerIndexAndTargets(t *testing.T) {
	s := Scene{Objects: []Object{
		{Behavior: BehaviorStatic},
		{Behavior: BehaviorCollectible},
		{Behavior: BehaviorPlayer},
		{Behavior: BehaviorItem},
	}}
	if s.PlayerIndex() != 2 {
		t.Errorf("PlayerIndex() = %d, expected 2", s.PlayerIndex())
	}
	if s.Targets() != 2 {
		t.Errorf("Targets() = %d, expected 2", s.Targets())
	}
	if (Scene{}).PlayerIndex() != -1 {
		t.Error("empty scene should have no player")
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		token   string
		hex     string
		wantErr bool
	}{
		{"#FFD700", "#ffd700", false},
		{"#f00", "#ff0000", false},
		{"gold", "#ffd700", false},
		{"Brown", "#8b4513", false},
		{"rgb(0, 128, 255)", "#0080ff", false},
		{"00ff00", "#00ff00", false},
		{"not-a-color", "", true},
	}
	for _, tc := range tests {
		c, err := ParseColor(tc.token)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseColor(%q) expected error", tc.token)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseColor(%q) error: %v", tc.token, err)
			continue
		}
		if c.Hex() != tc.hex {
			t.Errorf("ParseColor(%q) = %s, expected %s", tc.token, c.Hex(), tc.hex)
		}
	}
}

func TestResolveTheme(t *testing.T) {
	if got := ResolveTheme("").Background.Hex(); got != "#87ceeb" {
		t.Errorf("default background = %s, expected #87ceeb", got)
	}
	if got := ResolveTheme("SPACE").Name; got != "space" {
		t.Errorf("ResolveTheme(SPACE).Name = %q", got)
	}
	if got := ResolveTheme("volcano").Name; got != DefaultTheme {
		t.Errorf("unknown theme should resolve to default, got %q", got)
	}
}

func TestSchemaListsShapes(t *testing.T) {
	data, err := SchemaJSON()
	if err != nil {
		t.Fatalf("SchemaJSON() error: %v", err)
	}
	for _, want := range []string{`"objects"`, `"rectangle"`, `"collectible"`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("schema missing %s", want)
		}
	}
}
