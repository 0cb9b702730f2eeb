package match

import (
	"github.com/lox/axelrod/internal/game"
	"github.com/lox/axelrod/internal/strategy"
)

// Player binds a strategy to a running match: its own move history, the
// opponent moves it has observed, and its cumulative score. Histories grow by
// exactly one entry per turn played.
type Player struct {
	strat    strategy.Strategy
	own      []game.Move
	observed []game.Move
	score    float64
}

// NewPlayer wraps a strategy for a single match.
func NewPlayer(s strategy.Strategy) *Player {
	return &Player{strat: s}
}

// Strategy returns the name of the wrapped strategy.
func (p *Player) Strategy() string {
	return p.strat.Name()
}

// NextMove asks the strategy for its next move given the opponent history
// supplied by the match. The history handed in is of actual moves, so under
// noise a player reacts to what the opponent did, not what it intended.
func (p *Player) NextMove(opp []game.Move) game.Move {
	return p.strat.Play(p.own, opp)
}

// Observe records the outcome of one turn: both actual moves and this
// player's payoff.
func (p *Player) Observe(own, opp game.Move, payoff float64) {
	p.own = append(p.own, own)
	p.observed = append(p.observed, opp)
	p.score += payoff
}

// Moves returns this player's actual move history so far.
func (p *Player) Moves() []game.Move {
	return p.own
}

// Score returns the cumulative score over all turns played.
func (p *Player) Score() float64 {
	return p.score
}

// CooperationRate returns the fraction of cooperative moves, or 0 before any
// turn has been played.
func (p *Player) CooperationRate() float64 {
	if len(p.own) == 0 {
		return 0
	}
	var n int
	for _, m := range p.own {
		if m == game.Cooperate {
			n++
		}
	}
	return float64(n) / float64(len(p.own))
}

// Reset clears history and score so the player can be reused in a new match.
func (p *Player) Reset() {
	p.own = p.own[:0]
	p.observed = p.observed[:0]
	p.score = 0
}
