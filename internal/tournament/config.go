package tournament

import (
	"errors"
	"fmt"

	"github.com/coder/quartz"
	"github.com/rs/zerolog"

	"github.com/lox/axelrod/internal/game"
	"github.com/lox/axelrod/internal/match"
	"github.com/lox/axelrod/internal/strategy"
)

const (
	// DefaultTurns matches Axelrod's tournament length.
	DefaultTurns = 200
)

var (
	// ErrTooFewStrategies is returned when fewer than two distinct
	// strategies are configured; no pairing is possible.
	ErrTooFewStrategies = errors.New("tournament requires at least 2 distinct strategies")

	// ErrDuplicateStrategy is returned when the same strategy appears twice.
	ErrDuplicateStrategy = errors.New("duplicate strategy in tournament")
)

// Config holds everything needed to run a tournament.
type Config struct {
	// Strategies are the names of the entrants. Each pairing constructs
	// fresh instances from the registry, so instances are never shared
	// between matches.
	Strategies []string

	// Turns per match. Defaults to DefaultTurns when zero.
	Turns int

	// Noise is the probability that an executed move is flipped.
	Noise float64

	// Payoffs for a single turn. Defaults to game.DefaultPayoffs when zero.
	Payoffs game.Payoffs

	// Seed makes the whole tournament reproducible. Every match derives its
	// own random stream from (Seed, match index).
	Seed int64

	// Parallelism bounds how many matches run concurrently. Defaults to 1;
	// results are identical at any setting.
	Parallelism int

	// Logger receives per-match progress. Use zerolog.Nop() to silence.
	Logger zerolog.Logger

	// Clock is used for result metadata timing. Defaults to the real clock;
	// tests substitute a mock.
	Clock quartz.Clock
}

// applyDefaults fills zero-valued optional fields.
func (c *Config) applyDefaults() {
	if c.Turns == 0 {
		c.Turns = DefaultTurns
	}
	if c.Payoffs == (game.Payoffs{}) {
		c.Payoffs = game.DefaultPayoffs()
	}
	if c.Parallelism < 1 {
		c.Parallelism = 1
	}
	if c.Clock == nil {
		c.Clock = quartz.NewReal()
	}
}

// Validate fails fast on any configuration error, before simulation work
// begins.
func (c *Config) Validate() error {
	if len(c.Strategies) < 2 {
		return fmt.Errorf("%w: got %d", ErrTooFewStrategies, len(c.Strategies))
	}
	seen := make(map[string]bool, len(c.Strategies))
	for _, name := range c.Strategies {
		if seen[name] {
			return fmt.Errorf("%w: %q", ErrDuplicateStrategy, name)
		}
		seen[name] = true
		if _, err := strategy.New(name, nil); err != nil {
			return err
		}
	}
	if c.Turns < 1 {
		return fmt.Errorf("%w: got %d", match.ErrTurnCount, c.Turns)
	}
	if c.Noise < 0 || c.Noise > 1 {
		return fmt.Errorf("%w: got %v", match.ErrNoise, c.Noise)
	}
	return c.Payoffs.Validate()
}
