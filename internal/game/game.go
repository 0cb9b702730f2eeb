// Package game implements the single-turn Prisoner's Dilemma payoff model.
//
// Two players simultaneously choose to cooperate or defect and each receives
// a payoff from a 2x2 matrix derived from four parameters (R, T, P, S). The
// parameters must satisfy T > R > P > S and 2R > T+S, otherwise the game is
// not a dilemma.
package game

import (
	"errors"
	"fmt"
)

// Move is one player's choice for a single turn.
type Move int

const (
	Cooperate Move = iota
	Defect
)

// String returns the compact single-letter form used in histories and exports.
func (m Move) String() string {
	if m == Cooperate {
		return "C"
	}
	return "D"
}

// Flip returns the opposite move. Used by the noise model.
func (m Move) Flip() Move {
	if m == Cooperate {
		return Defect
	}
	return Cooperate
}

// MarshalJSON encodes the move as its single-letter form.
func (m Move) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

// UnmarshalJSON decodes the single-letter form.
func (m *Move) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid move %s", s)
	}
	parsed, err := ParseMove(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// ParseMove converts the single-letter form back into a Move.
func ParseMove(s string) (Move, error) {
	switch s {
	case "C":
		return Cooperate, nil
	case "D":
		return Defect, nil
	}
	return Cooperate, fmt.Errorf("invalid move %q", s)
}

// ErrInvalidPayoffs is returned when the payoff parameters do not describe a
// Prisoner's Dilemma.
var ErrInvalidPayoffs = errors.New("payoffs must satisfy T > R > P > S and 2R > T+S")

// Payoffs holds the four payoff parameters.
//
//	R: reward, both cooperate
//	T: temptation, defect against a cooperator
//	P: punishment, both defect
//	S: sucker, cooperate against a defector
type Payoffs struct {
	R float64 `json:"r" hcl:"r,optional"`
	T float64 `json:"t" hcl:"t,optional"`
	P float64 `json:"p" hcl:"p,optional"`
	S float64 `json:"s" hcl:"s,optional"`
}

// DefaultPayoffs returns the canonical Axelrod payoffs (3, 5, 1, 0).
func DefaultPayoffs() Payoffs {
	return Payoffs{R: 3, T: 5, P: 1, S: 0}
}

// Validate checks the dilemma ordering constraints.
func (p Payoffs) Validate() error {
	if !(p.T > p.R && p.R > p.P && p.P > p.S) {
		return fmt.Errorf("%w: got R=%v T=%v P=%v S=%v", ErrInvalidPayoffs, p.R, p.T, p.P, p.S)
	}
	if !(2*p.R > p.T+p.S) {
		return fmt.Errorf("%w: got R=%v T=%v P=%v S=%v", ErrInvalidPayoffs, p.R, p.T, p.P, p.S)
	}
	return nil
}

// Game scores a single turn. It is pure and safe for concurrent use.
type Game struct {
	payoffs Payoffs
	matrix  [2][2][2]float64
}

// New validates the payoffs and returns a Game with a precomputed matrix.
func New(p Payoffs) (*Game, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	g := &Game{payoffs: p}
	g.matrix[Cooperate][Cooperate] = [2]float64{p.R, p.R}
	g.matrix[Cooperate][Defect] = [2]float64{p.S, p.T}
	g.matrix[Defect][Cooperate] = [2]float64{p.T, p.S}
	g.matrix[Defect][Defect] = [2]float64{p.P, p.P}
	return g, nil
}

// Score returns the payoffs for a single turn given both moves.
func (g *Game) Score(a, b Move) (float64, float64) {
	out := g.matrix[a][b]
	return out[0], out[1]
}

// Payoffs returns the configured payoff parameters.
func (g *Game) Payoffs() Payoffs {
	return g.payoffs
}
