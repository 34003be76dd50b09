package engine

import "math"

// Progression ramps enemy speed in the loop variant as the session goes on.
type Progression struct {
	Type            string  `yaml:"type"`             // "score", "time", or "none"
	MaxAt           int     `yaml:"max_at"`           // score or ticks at which max difficulty is reached
	InitialLevel    float64 `yaml:"initial_level"`    // 0.0 = easy, 1.0 = hard
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // added to enemy speed at max difficulty
}

// NoProgression keeps enemies at their base speed.
func NoProgression() Progression {
	return Progression{Type: "none"}
}

// Enabled reports whether the ramp changes anything over time.
func (p Progression) Enabled() bool {
	return p.Type == "score" || p.Type == "time"
}

// Level returns the current difficulty level (0.0 to 1.0) based on score/ticks.
func (p Progression) Level(score, ticks int) float64 {
	initial := clampF(p.InitialLevel, 0, 1)
	if !p.Enabled() {
		return initial
	}

	maxAt := float64(p.MaxAt)
	if maxAt <= 0 {
		maxAt = 1
	}

	var progress float64
	switch p.Type {
	case "score":
		progress = float64(score) / maxAt
	case "time":
		progress = float64(ticks) / maxAt
	}
	progress = clampF(progress, 0, 1)

	return initial + progress*(1-initial)
}

// Speed scales a base speed by the current level.
func (p Progression) Speed(base float64, score, ticks int) float64 {
	return base * (1 + p.Level(score, ticks)*p.SpeedMultiplier)
}

func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
