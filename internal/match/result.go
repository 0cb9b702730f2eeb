package match

import "github.com/lox/axelrod/internal/game"

// Outcome labels a match result from player A's perspective.
type Outcome string

const (
	OutcomeWin  Outcome = "win"
	OutcomeLoss Outcome = "loss"
	OutcomeDraw Outcome = "draw"
)

// PlayerResult summarises one side of a completed match.
type PlayerResult struct {
	Strategy        string      `json:"strategy"`
	Score           float64     `json:"score"`
	CooperationRate float64     `json:"cooperation_rate"`
	Moves           []game.Move `json:"moves"`
}

// Result is the immutable record of a completed match. It contains only
// nested primitives so collaborators can persist or flatten it without
// recomputation; the i-th entries of the two move slices form turn i's pair.
type Result struct {
	PlayerA PlayerResult `json:"player_a"`
	PlayerB PlayerResult `json:"player_b"`
	Turns   int          `json:"turns"`
	Noise   float64      `json:"noise"`
	Outcome Outcome      `json:"outcome"`
}

// Winner returns the winning strategy name, or "" for a draw.
func (r *Result) Winner() string {
	switch r.Outcome {
	case OutcomeWin:
		return r.PlayerA.Strategy
	case OutcomeLoss:
		return r.PlayerB.Strategy
	}
	return ""
}

// Involves reports whether the named strategy played in this match.
func (r *Result) Involves(name string) bool {
	return r.PlayerA.Strategy == name || r.PlayerB.Strategy == name
}
