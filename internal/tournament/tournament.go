// Package tournament orchestrates a round-robin iterated Prisoner's Dilemma
// tournament: every unordered pair of strategies plays one match, and the
// match results are folded into rankings and aggregate statistics.
package tournament

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/lox/axelrod/internal/game"
	"github.com/lox/axelrod/internal/match"
	"github.com/lox/axelrod/internal/randutil"
	"github.com/lox/axelrod/internal/strategy"
)

// Runner executes a tournament for a validated configuration.
type Runner struct {
	config *Config
	game   *game.Game
}

// New validates the configuration and returns a runner. All configuration
// errors surface here, before any match is played.
func New(config *Config) (*Runner, error) {
	config.applyDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	g, err := game.New(config.Payoffs)
	if err != nil {
		return nil, err
	}
	return &Runner{config: config, game: g}, nil
}

// pairing is one scheduled match between two entrants.
type pairing struct {
	a, b string
}

// Run plays every unordered pair of strategies exactly once and aggregates
// the results. Matches may run concurrently up to Config.Parallelism; each
// match owns its players and derives its own random stream from the seed and
// match index, so the result is identical for any parallelism setting. The
// aggregation step only runs after every match has completed.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	cfg := r.config
	start := cfg.Clock.Now()

	var pairs []pairing
	for i := 0; i < len(cfg.Strategies); i++ {
		for j := i + 1; j < len(cfg.Strategies); j++ {
			pairs = append(pairs, pairing{a: cfg.Strategies[i], b: cfg.Strategies[j]})
		}
	}

	cfg.Logger.Info().
		Int("strategies", len(cfg.Strategies)).
		Int("matches", len(pairs)).
		Int("turns", cfg.Turns).
		Float64("noise", cfg.Noise).
		Int64("seed", cfg.Seed).
		Msg("starting tournament")

	results := make([]*match.Result, len(pairs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Parallelism)

	for idx, pair := range pairs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := r.playMatch(idx, pair)
			if err != nil {
				return fmt.Errorf("match %s vs %s: %w", pair.a, pair.b, err)
			}
			results[idx] = res

			cfg.Logger.Debug().
				Str("player_a", pair.a).
				Str("player_b", pair.b).
				Float64("score_a", res.PlayerA.Score).
				Float64("score_b", res.PlayerB.Score).
				Str("outcome", string(res.Outcome)).
				Msg("match complete")
			return nil
		})
	}

	// Full join before aggregation; a failed match fails the tournament
	// rather than producing a partial result.
	if err := g.Wait(); err != nil {
		return nil, err
	}

	matches := make([]match.Result, len(results))
	for i, res := range results {
		if res == nil {
			return nil, &match.InvariantError{Detail: fmt.Sprintf("match %d missing after join", i)}
		}
		matches[i] = *res
	}

	result := &Result{
		Metadata: Metadata{
			StartTime:       start,
			DurationSeconds: cfg.Clock.Since(start).Seconds(),
			Turns:           cfg.Turns,
			Noise:           cfg.Noise,
			Seed:            cfg.Seed,
			Payoffs:         cfg.Payoffs,
			NumStrategies:   len(cfg.Strategies),
			NumMatches:      len(matches),
		},
		Rankings: rank(cfg.Strategies, matches),
		Matches:  matches,
	}

	cfg.Logger.Info().
		Str("winner", result.Rankings[0].Strategy).
		Float64("avg_score", result.Rankings[0].AvgScore).
		Float64("duration_seconds", result.Metadata.DurationSeconds).
		Msg("tournament complete")

	return result, nil
}

// playMatch constructs fresh players for one pairing and plays it. The match
// random stream is shared by noise flips and any stochastic strategy.
func (r *Runner) playMatch(idx int, pair pairing) (*match.Result, error) {
	rng := randutil.Split(r.config.Seed, uint64(idx))

	sa, err := strategy.New(pair.a, rng)
	if err != nil {
		return nil, err
	}
	sb, err := strategy.New(pair.b, rng)
	if err != nil {
		return nil, err
	}

	m, err := match.New(r.game, match.NewPlayer(sa), match.NewPlayer(sb), r.config.Turns, r.config.Noise, rng)
	if err != nil {
		return nil, err
	}
	return m.Play()
}

// rank folds the match results into per-strategy summaries, ordered by
// descending average score with ties broken by descending cooperation rate
// and then by name, so identical inputs always produce identical rankings.
func rank(strategies []string, matches []match.Result) []StrategySummary {
	type tally struct {
		scores    []float64
		coopRates []float64
		wins      int
	}

	tallies := make(map[string]*tally, len(strategies))
	for _, name := range strategies {
		tallies[name] = &tally{}
	}

	for _, m := range matches {
		ta, tb := tallies[m.PlayerA.Strategy], tallies[m.PlayerB.Strategy]
		ta.scores = append(ta.scores, m.PlayerA.Score)
		ta.coopRates = append(ta.coopRates, m.PlayerA.CooperationRate)
		tb.scores = append(tb.scores, m.PlayerB.Score)
		tb.coopRates = append(tb.coopRates, m.PlayerB.CooperationRate)

		switch m.Outcome {
		case match.OutcomeWin:
			ta.wins++
		case match.OutcomeLoss:
			tb.wins++
		}
	}

	summaries := make([]StrategySummary, 0, len(strategies))
	for _, name := range strategies {
		t := tallies[name]
		var total float64
		for _, s := range t.scores {
			total += s
		}
		// Sample stddev needs at least two matches; with N=2 entrants each
		// strategy plays only one.
		var stddev float64
		if len(t.scores) > 1 {
			stddev = stat.StdDev(t.scores, nil)
		}
		summaries = append(summaries, StrategySummary{
			Strategy:           name,
			TotalScore:         total,
			AvgScore:           stat.Mean(t.scores, nil),
			AvgCooperationRate: stat.Mean(t.coopRates, nil),
			Wins:               t.wins,
			ScoreStdDev:        stddev,
			Matches:            len(t.scores),
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		a, b := summaries[i], summaries[j]
		if a.AvgScore != b.AvgScore {
			return a.AvgScore > b.AvgScore
		}
		if a.AvgCooperationRate != b.AvgCooperationRate {
			return a.AvgCooperationRate > b.AvgCooperationRate
		}
		return a.Strategy < b.Strategy
	})
	for i := range summaries {
		summaries[i].Rank = i + 1
	}
	return summaries
}
