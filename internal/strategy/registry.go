package strategy

import (
	"errors"
	"fmt"
	rand "math/rand/v2"
	"sort"
)

// ErrUnknown is returned when a strategy name has no registered constructor.
var ErrUnknown = errors.New("unknown strategy")

// Constructor builds a fresh strategy instance. The supplied source is the
// one owned by the match the instance will play in; deterministic strategies
// ignore it.
type Constructor func(rng *rand.Rand) Strategy

var registry = map[string]Constructor{
	"AlwaysCooperate": func(*rand.Rand) Strategy { return AlwaysCooperate{} },
	"AlwaysDefect":    func(*rand.Rand) Strategy { return AlwaysDefect{} },
	"TitForTat":       func(*rand.Rand) Strategy { return TitForTat{} },
	"Grudger":         func(*rand.Rand) Strategy { return Grudger{} },
	"Random":          func(rng *rand.Rand) Strategy { return NewRandom(rng) },
}

// Register adds a strategy constructor under the given name. Registering an
// existing name is an error so built-ins cannot be silently replaced.
func Register(name string, c Constructor) error {
	if _, exists := registry[name]; exists {
		return fmt.Errorf("strategy %q already registered", name)
	}
	registry[name] = c
	return nil
}

// New constructs a fresh instance of the named strategy. A new instance is
// created per match so no state can leak between matches.
func New(name string, rng *rand.Rand) (Strategy, error) {
	c, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknown, name)
	}
	return c(rng), nil
}

// Names returns all registered strategy names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
