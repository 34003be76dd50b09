// Package engine turns a scene and player input into interaction state.
// It has no dependency on any platform: every operation is a pure function
// of (scene, state, input) or lives on a session value owned by one goroutine.
package engine

// Status is the terminal state of a session.
type Status string

const (
	StatusPlaying Status = "playing"
	StatusWon     Status = "won"
	StatusLost    Status = "lost"
)

// DefaultLives is the life count a fresh session starts with.
const DefaultLives = 3

// State is the per-session interaction state.
// Collected holds object indices (declared order) that have been consumed.
type State struct {
	Score     int          `json:"score"`
	Lives     int          `json:"lives"`
	Collected map[int]bool `json:"collected"`
	Status    Status       `json:"status"`
}

// NewState returns a fresh playing state.
func NewState(lives int) State {
	if lives <= 0 {
		lives = DefaultLives
	}
	return State{
		Lives:     lives,
		Collected: make(map[int]bool),
		Status:    StatusPlaying,
	}
}

// Playing reports whether the session still accepts input.
func (s State) Playing() bool {
	return s.Status == StatusPlaying
}

// IsCollected reports whether object i has been consumed.
func (s State) IsCollected(i int) bool {
	return s.Collected[i]
}

// Clone returns a deep copy of the state.
func (s State) Clone() State {
	out := s
	out.Collected = make(map[int]bool, len(s.Collected))
	for k, v := range s.Collected {
		out.Collected[k] = v
	}
	return out
}

func (s State) collect(i, points int) State {
	out := s.Clone()
	out.Collected[i] = true
	out.Score += points
	return out
}
