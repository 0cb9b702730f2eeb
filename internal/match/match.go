// Package match runs a fixed number of iterated Prisoner's Dilemma turns
// between two players, optionally perturbing executed moves with noise, and
// compiles the outcome into an immutable result.
package match

import (
	"errors"
	"fmt"
	rand "math/rand/v2"

	"github.com/lox/axelrod/internal/game"
)

var (
	// ErrTurnCount is returned for a turn count below 1.
	ErrTurnCount = errors.New("turns must be at least 1")

	// ErrNoise is returned for a noise level outside [0, 1].
	ErrNoise = errors.New("noise must be within [0, 1]")

	// ErrCompleted is returned when Play is called on a finished match.
	ErrCompleted = errors.New("match already completed")
)

// InvariantError reports an internal-consistency failure detected after a
// match ran. It indicates a defect in the engine, not bad input, and is
// never recovered from.
type InvariantError struct {
	Detail string
}

func (e *InvariantError) Error() string {
	return "match invariant violated: " + e.Detail
}

// State tracks match progress.
type State int

const (
	NotStarted State = iota
	InProgress
	Completed
)

// Match plays two players against each other for a fixed number of turns.
//
// With noise > 0, each intended move is independently flipped with
// probability noise before it is executed. The flipped move is what gets
// recorded, scored, and observed by the opponent in later turns: noise
// models imperfect execution, so the acting player pays for its own
// accidental defections.
type Match struct {
	game  *game.Game
	a, b  *Player
	turns int
	noise float64
	rng   *rand.Rand
	state State
}

// New validates the configuration and returns a match ready to play. The
// random source is consumed by noise flips (and by any stochastic strategy
// the players hold, which should share it).
func New(g *game.Game, a, b *Player, turns int, noise float64, rng *rand.Rand) (*Match, error) {
	if turns < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrTurnCount, turns)
	}
	if noise < 0 || noise > 1 {
		return nil, fmt.Errorf("%w: got %v", ErrNoise, noise)
	}
	return &Match{game: g, a: a, b: b, turns: turns, noise: noise, rng: rng}, nil
}

// State returns the current match state.
func (m *Match) State() State {
	return m.state
}

// Play runs the match to completion and returns its result. A match can be
// played once; playing a completed match is an error.
func (m *Match) Play() (*Result, error) {
	if m.state == Completed {
		return nil, ErrCompleted
	}
	m.state = InProgress

	for turn := 0; turn < m.turns; turn++ {
		// Each side decides from the actual (possibly noise-flipped)
		// history of the other. Draw order is fixed so seeded runs are
		// reproducible: A intent, B intent, A flip, B flip.
		moveA := m.a.NextMove(m.b.Moves())
		moveB := m.b.NextMove(m.a.Moves())

		if m.noise > 0 {
			moveA = m.applyNoise(moveA)
			moveB = m.applyNoise(moveB)
		}

		payoffA, payoffB := m.game.Score(moveA, moveB)
		m.a.Observe(moveA, moveB, payoffA)
		m.b.Observe(moveB, moveA, payoffB)
	}

	m.state = Completed

	if err := m.checkInvariants(); err != nil {
		return nil, err
	}
	return m.compileResult(), nil
}

func (m *Match) applyNoise(intended game.Move) game.Move {
	if m.rng.Float64() < m.noise {
		return intended.Flip()
	}
	return intended
}

// checkInvariants verifies history lengths and that each cumulative score is
// exactly the sum of per-turn payoffs.
func (m *Match) checkInvariants() error {
	movesA, movesB := m.a.Moves(), m.b.Moves()
	if len(movesA) != m.turns || len(movesB) != m.turns {
		return &InvariantError{Detail: fmt.Sprintf(
			"history length %d/%d after %d turns", len(movesA), len(movesB), m.turns)}
	}
	var sumA, sumB float64
	for i := range movesA {
		pa, pb := m.game.Score(movesA[i], movesB[i])
		sumA += pa
		sumB += pb
	}
	if sumA != m.a.Score() || sumB != m.b.Score() {
		return &InvariantError{Detail: fmt.Sprintf(
			"scores %v/%v do not match payoff sums %v/%v",
			m.a.Score(), m.b.Score(), sumA, sumB)}
	}
	return nil
}

func (m *Match) compileResult() *Result {
	outcome := OutcomeDraw
	switch {
	case m.a.Score() > m.b.Score():
		outcome = OutcomeWin
	case m.a.Score() < m.b.Score():
		outcome = OutcomeLoss
	}

	return &Result{
		PlayerA: PlayerResult{
			Strategy:        m.a.Strategy(),
			Score:           m.a.Score(),
			CooperationRate: m.a.CooperationRate(),
			Moves:           append([]game.Move(nil), m.a.Moves()...),
		},
		PlayerB: PlayerResult{
			Strategy:        m.b.Strategy(),
			Score:           m.b.Score(),
			CooperationRate: m.b.CooperationRate(),
			Moves:           append([]game.Move(nil), m.b.Moves()...),
		},
		Turns:   m.turns,
		Noise:   m.noise,
		Outcome: outcome,
	}
}
