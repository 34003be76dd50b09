package scene

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Config is the nested scene payload used by the generation wire format.
type Config struct {
	Theme   string   `json:"theme,omitempty"`
	Objects []Object `json:"objects"`
}

// Envelope is the generator wire shape: {title, type, config: {theme, objects}}.
type Envelope struct {
	Title  string `json:"title,omitempty"`
	Kind   Kind   `json:"type"`
	Config Config `json:"config"`
}

// Envelope converts the scene to the generator wire shape.
func (s Scene) Envelope() Envelope {
	return Envelope{
		Title:  s.Title,
		Kind:   s.Kind,
		Config: Config{Theme: s.Theme, Objects: s.Objects},
	}
}

// Parse decodes a scene in either the flat or the envelope form.
func Parse(data []byte) (Scene, error) {
	var s Scene
	if err := json.Unmarshal(data, &s); err != nil {
		return Scene{}, fmt.Errorf("scene: parse: %w", err)
	}
	return s, nil
}

type wireScene struct {
	Title   any             `json:"title"`
	Kind    any             `json:"type"`
	Theme   any             `json:"theme"`
	Objects json.RawMessage `json:"objects"`
	Config  *struct {
		Theme   any             `json:"theme"`
		Objects json.RawMessage `json:"objects"`
	} `json:"config"`
}

// UnmarshalJSON accepts both the flat and the envelope form. Objects that are
// not JSON objects are dropped, and an objects field that is not an array is
// treated as absent.
func (s *Scene) UnmarshalJSON(data []byte) error {
	var w wireScene
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	out := Scene{
		Title: asString(w.Title),
		Kind:  Kind(asString(w.Kind)),
		Theme: asString(w.Theme),
	}
	raw := w.Objects
	if w.Config != nil {
		if t := asString(w.Config.Theme); t != "" {
			out.Theme = t
		}
		if len(w.Config.Objects) > 0 {
			raw = w.Config.Objects
		}
	}
	out.Objects = decodeObjects(raw)

	*s = out
	return nil
}

func decodeObjects(raw json.RawMessage) []Object {
	if len(raw) == 0 {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil || items == nil {
		return nil
	}
	objects := make([]Object, 0, len(items))
	for _, item := range items {
		var o Object
		if err := json.Unmarshal(item, &o); err != nil {
			continue
		}
		objects = append(objects, o)
	}
	return objects
}

// UnmarshalJSON decodes an object leniently. Numeric fields may be numbers or
// numeric strings; anything else leaves the field zero so Normalize can apply
// its default. Strings are kept verbatim.
func (o *Object) UnmarshalJSON(data []byte) error {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	if m == nil {
		return fmt.Errorf("scene: object is null")
	}

	*o = Object{
		Shape:    Shape(asString(m["type"])),
		X:        asFloat(m["x"]),
		Y:        asFloat(m["y"]),
		Width:    asFloat(m["width"]),
		Height:   asFloat(m["height"]),
		Radius:   asFloat(m["radius"]),
		Color:    asString(m["color"]),
		Behavior: Behavior(asString(m["behavior"])),
	}
	if o.Shape == "" {
		o.Shape = Shape(asString(m["shape"]))
	}
	return nil
}

func asFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil || !finite(f) {
			return 0
		}
		return f
	default:
		return 0
	}
}

func asString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
