// Package strategy defines the decision units that compete in iterated
// Prisoner's Dilemma tournaments.
//
// A Strategy decides its next move purely from the two move histories it is
// handed each turn. The built-in set covers the classic Axelrod entrants;
// additional strategies can be added through Register.
package strategy

import (
	rand "math/rand/v2"

	"github.com/lox/axelrod/internal/game"
)

// Strategy decides the next move from the full history of both sides.
//
// Implementations must be pure functions of the histories passed in: no
// state may be carried across matches. The Random strategy additionally
// consumes an injected random source so that seeded runs are reproducible.
type Strategy interface {
	// Name identifies the strategy in results, rankings and exports.
	Name() string

	// Play returns the next move given this player's own history and the
	// opponent's observed history. On turn 1 both slices are empty.
	Play(own, opp []game.Move) game.Move
}

// AlwaysCooperate cooperates unconditionally. Nice, and maximally exploitable.
type AlwaysCooperate struct{}

func (AlwaysCooperate) Name() string { return "AlwaysCooperate" }

func (AlwaysCooperate) Play(own, opp []game.Move) game.Move {
	return game.Cooperate
}

// AlwaysDefect defects unconditionally.
type AlwaysDefect struct{}

func (AlwaysDefect) Name() string { return "AlwaysDefect" }

func (AlwaysDefect) Play(own, opp []game.Move) game.Move {
	return game.Defect
}

// TitForTat cooperates on the first turn, then copies the opponent's last
// move. Winner of both of Axelrod's original tournaments.
type TitForTat struct{}

func (TitForTat) Name() string { return "TitForTat" }

func (TitForTat) Play(own, opp []game.Move) game.Move {
	if len(opp) == 0 {
		return game.Cooperate
	}
	return opp[len(opp)-1]
}

// Grudger cooperates until the opponent's first defection, then defects for
// the rest of the match. Also known as Grim Trigger.
type Grudger struct{}

func (Grudger) Name() string { return "Grudger" }

func (Grudger) Play(own, opp []game.Move) game.Move {
	for _, m := range opp {
		if m == game.Defect {
			return game.Defect
		}
	}
	return game.Cooperate
}

// Random picks uniformly between cooperation and defection, ignoring history.
type Random struct {
	rng *rand.Rand
}

// NewRandom returns a Random strategy drawing from the supplied source.
func NewRandom(rng *rand.Rand) *Random {
	return &Random{rng: rng}
}

func (*Random) Name() string { return "Random" }

func (r *Random) Play(own, opp []game.Move) game.Move {
	if r.rng.IntN(2) == 0 {
		return game.Cooperate
	}
	return game.Defect
}
