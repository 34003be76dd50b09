package engine

import (
	"github.com/vovakirdan/forge-studio/internal/core"
	"github.com/vovakirdan/forge-studio/internal/scene"
)

// Rule is the click policy for one scene kind.
type Rule struct {
	Interactive func(scene.Behavior) bool
	Remove      bool // hit objects are marked collected
	Points      int
}

var (
	platformerRule = Rule{
		Interactive: func(b scene.Behavior) bool { return b == scene.BehaviorCollectible },
		Remove:      true,
		Points:      10,
	}
	shooterRule = Rule{
		Interactive: func(b scene.Behavior) bool { return b == scene.BehaviorEnemy },
		Remove:      true,
		Points:      20,
	}
	defaultRule = Rule{
		Interactive: func(scene.Behavior) bool { return true },
		Points:      5,
	}
)

// PolicyFor returns the click rule for a scene kind.
func PolicyFor(kind scene.Kind) Rule {
	switch kind {
	case scene.KindPlatformer:
		return platformerRule
	case scene.KindShooter:
		return shooterRule
	default:
		return defaultRule
	}
}

// Initialize returns the starting state for a scene. An empty scene is valid.
func Initialize(sc scene.Scene) State {
	return NewState(DefaultLives)
}

// HandlePointer resolves a click at p. The first object in declared order that
// contains p, is interactive for the scene's kind and has not been collected
// receives the effect. Anything else leaves the state unchanged.
func HandlePointer(sc scene.Scene, st State, p core.Point) State {
	if !st.Playing() {
		return st
	}
	sc = sc.Normalize()
	rule := PolicyFor(sc.Kind)

	i := hit(sc, st, p, rule)
	if i < 0 {
		return st
	}
	if !rule.Remove {
		out := st.Clone()
		out.Score += rule.Points
		return out
	}
	return st.collect(i, rule.Points)
}

func hit(sc scene.Scene, st State, p core.Point, rule Rule) int {
	for i, o := range sc.Objects {
		if st.IsCollected(i) || !rule.Interactive(o.Behavior) {
			continue
		}
		if o.Contains(p) {
			return i
		}
	}
	return -1
}

// EvaluateTerminal recomputes the status. A session is won once every
// collectible or item object has been collected (vacuously true for scenes
// without any) and lost once lives run out.
func EvaluateTerminal(sc scene.Scene, st State) State {
	if !st.Playing() {
		return st
	}
	if st.Lives <= 0 {
		out := st.Clone()
		out.Status = StatusLost
		return out
	}
	if allCollected(sc.Normalize(), st) {
		out := st.Clone()
		out.Status = StatusWon
		return out
	}
	return st
}

func allCollected(sc scene.Scene, st State) bool {
	for i, o := range sc.Objects {
		if o.IsTarget() && !st.IsCollected(i) {
			return false
		}
	}
	return true
}
