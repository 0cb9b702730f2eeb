package tournament

import (
	"context"
	"testing"

	"github.com/coder/quartz"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/axelrod/internal/game"
	"github.com/lox/axelrod/internal/match"
	"github.com/lox/axelrod/internal/strategy"
)

func testConfig(t *testing.T, strategies ...string) *Config {
	t.Helper()
	return &Config{
		Strategies: strategies,
		Turns:      10,
		Seed:       42,
		Logger:     zerolog.Nop(),
		Clock:      quartz.NewMock(t),
	}
}

func run(t *testing.T, cfg *Config) *Result {
	t.Helper()
	runner, err := New(cfg)
	require.NoError(t, err)
	result, err := runner.Run(context.Background())
	require.NoError(t, err)
	return result
}

func TestNew_ConfigErrors(t *testing.T) {
	cases := []struct {
		name string
		cfg  *Config
		want error
	}{
		{"too few", testConfig(t, "TitForTat"), ErrTooFewStrategies},
		{"none", testConfig(t), ErrTooFewStrategies},
		{"duplicate", testConfig(t, "TitForTat", "TitForTat"), ErrDuplicateStrategy},
		{"unknown", testConfig(t, "TitForTat", "Nonexistent"), strategy.ErrUnknown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.cfg)
			require.ErrorIs(t, err, tc.want)
		})
	}

	cfg := testConfig(t, "TitForTat", "Grudger")
	cfg.Turns = -1
	_, err := New(cfg)
	require.ErrorIs(t, err, match.ErrTurnCount)

	cfg = testConfig(t, "TitForTat", "Grudger")
	cfg.Noise = 1.5
	_, err = New(cfg)
	require.ErrorIs(t, err, match.ErrNoise)

	cfg = testConfig(t, "TitForTat", "Grudger")
	cfg.Payoffs = game.Payoffs{R: 5, T: 3, P: 1, S: 0}
	_, err = New(cfg)
	require.ErrorIs(t, err, game.ErrInvalidPayoffs)
}

func TestRun_MatchCounts(t *testing.T) {
	// N strategies produce exactly N*(N-1)/2 matches: no self-play, no
	// duplicate pairs.
	result := run(t, testConfig(t, "TitForTat", "Grudger"))
	assert.Equal(t, 1, result.Metadata.NumMatches)
	assert.Len(t, result.Matches, 1)

	result = run(t, testConfig(t, "AlwaysCooperate", "AlwaysDefect", "TitForTat", "Grudger"))
	assert.Equal(t, 6, result.Metadata.NumMatches)
	assert.Len(t, result.Matches, 6)

	for _, m := range result.Matches {
		assert.NotEqual(t, m.PlayerA.Strategy, m.PlayerB.Strategy, "self-play is not allowed")
	}
}

func TestRun_DeterministicUnderSeed(t *testing.T) {
	cfg1 := testConfig(t, "AlwaysCooperate", "AlwaysDefect", "TitForTat", "Grudger", "Random")
	cfg1.Noise = 0.1
	cfg2 := testConfig(t, "AlwaysCooperate", "AlwaysDefect", "TitForTat", "Grudger", "Random")
	cfg2.Noise = 0.1

	require.Equal(t, run(t, cfg1), run(t, cfg2))
}

func TestRun_ParallelMatchesSerial(t *testing.T) {
	serial := testConfig(t, "AlwaysCooperate", "AlwaysDefect", "TitForTat", "Grudger", "Random")
	serial.Noise = 0.05

	parallel := testConfig(t, "AlwaysCooperate", "AlwaysDefect", "TitForTat", "Grudger", "Random")
	parallel.Noise = 0.05
	parallel.Parallelism = 8

	require.Equal(t, run(t, serial), run(t, parallel))
}

func TestRun_Rankings(t *testing.T) {
	cfg := testConfig(t, "AlwaysCooperate", "AlwaysDefect", "TitForTat", "Grudger")
	cfg.Turns = 5
	result := run(t, cfg)

	require.Len(t, result.Rankings, 4)
	for i, s := range result.Rankings {
		assert.Equal(t, i+1, s.Rank)
		assert.Equal(t, 3, s.Matches, "each entrant plays N-1 matches")
		assert.InDelta(t, s.TotalScore/3, s.AvgScore, 1e-9)
		assert.GreaterOrEqual(t, s.AvgCooperationRate, 0.0)
		assert.LessOrEqual(t, s.AvgCooperationRate, 1.0)
	}

	// Average scores are non-increasing down the table.
	for i := 1; i < len(result.Rankings); i++ {
		assert.GreaterOrEqual(t, result.Rankings[i-1].AvgScore, result.Rankings[i].AvgScore)
	}
}

func TestRun_TieBreakByName(t *testing.T) {
	// These three strategies cooperate with each other on every turn, so
	// all tie on average score and cooperation rate; ranking falls back to
	// name order.
	cfg := testConfig(t, "TitForTat", "Grudger", "AlwaysCooperate")
	result := run(t, cfg)

	names := []string{
		result.Rankings[0].Strategy,
		result.Rankings[1].Strategy,
		result.Rankings[2].Strategy,
	}
	assert.Equal(t, []string{"AlwaysCooperate", "Grudger", "TitForTat"}, names)

	for _, s := range result.Rankings {
		assert.Equal(t, 1.0, s.AvgCooperationRate)
		assert.Equal(t, float64(cfg.Turns)*3, s.AvgScore)
		assert.Zero(t, s.Wins)
	}
}

func TestRun_WinCounts(t *testing.T) {
	cfg := testConfig(t, "AlwaysCooperate", "AlwaysDefect")
	cfg.Turns = 5
	result := run(t, cfg)

	require.Equal(t, "AlwaysDefect", result.Rankings[0].Strategy)
	assert.Equal(t, 1, result.Rankings[0].Wins)
	assert.Equal(t, 25.0, result.Rankings[0].TotalScore)
	assert.Equal(t, 0.0, result.Rankings[1].TotalScore)
}

func TestResult_Accessors(t *testing.T) {
	result := run(t, testConfig(t, "AlwaysCooperate", "AlwaysDefect", "TitForTat"))

	assert.NotZero(t, result.Ranking("TitForTat"))
	assert.Zero(t, result.Ranking("Nonexistent"))

	assert.Len(t, result.MatchesInvolving("TitForTat"), 2)

	m, ok := result.HeadToHead("AlwaysCooperate", "AlwaysDefect")
	require.True(t, ok)
	assert.True(t, m.Involves("AlwaysCooperate"))
	assert.True(t, m.Involves("AlwaysDefect"))

	_, ok = result.HeadToHead("TitForTat", "TitForTat")
	assert.False(t, ok)
}

func TestRun_DefaultsApplied(t *testing.T) {
	cfg := &Config{
		Strategies: []string{"TitForTat", "Grudger"},
		Logger:     zerolog.Nop(),
		Clock:      quartz.NewMock(t),
	}
	result := run(t, cfg)

	assert.Equal(t, DefaultTurns, result.Metadata.Turns)
	assert.Equal(t, game.DefaultPayoffs(), result.Metadata.Payoffs)
}
