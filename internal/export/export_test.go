package export

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/coder/quartz"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/axelrod/internal/tournament"
)

func testResult(t *testing.T) *tournament.Result {
	t.Helper()
	runner, err := tournament.New(&tournament.Config{
		Strategies: []string{"AlwaysCooperate", "AlwaysDefect", "TitForTat", "Grudger"},
		Turns:      10,
		Seed:       1,
		Logger:     zerolog.Nop(),
		Clock:      quartz.NewMock(t),
	})
	require.NoError(t, err)
	result, err := runner.Run(context.Background())
	require.NoError(t, err)
	return result
}

func TestFlatten(t *testing.T) {
	result := testResult(t)
	tables := Flatten(result)

	assert.Len(t, tables.Strategies, 4)
	assert.Len(t, tables.Matches, 6)
	assert.Len(t, tables.HeadToHead, 6)
	// Two directed cells per match.
	assert.Len(t, tables.Matrix, 12)

	// Metadata rows carry the payoff parameters for downstream tools.
	params := map[string]string{}
	for _, row := range tables.Tournament {
		params[row.Parameter] = row.Value
	}
	assert.Equal(t, "10", params["turns"])
	assert.Equal(t, "6", params["num_matches"])
	assert.Equal(t, "3", params["payoff_r"])

	// Matrix cells mirror the match results without recomputation.
	for _, m := range tables.Matches {
		var found int
		for _, c := range tables.Matrix {
			if c.Strategy == m.StrategyA && c.Opponent == m.StrategyB {
				assert.Equal(t, m.ScoreA, c.Score)
				found++
			}
			if c.Strategy == m.StrategyB && c.Opponent == m.StrategyA {
				assert.Equal(t, m.ScoreB, c.Score)
				found++
			}
		}
		assert.Equal(t, 2, found)
	}

	// Move histories are compact strings with one letter per turn.
	for _, m := range tables.Matches {
		assert.Len(t, m.MovesA, 10)
		assert.Len(t, m.MovesB, 10)
	}
}

func TestWriteCSV(t *testing.T) {
	dir := t.TempDir()
	tables := Flatten(testResult(t))

	require.NoError(t, WriteCSV(dir, tables))

	cases := []struct {
		file string
		rows int
	}{
		{FileTournament, len(tables.Tournament)},
		{FileStrategies, 4},
		{FileMatches, 6},
		{FileMatrix, 12},
		{FileHeadToHead, 6},
	}
	for _, tc := range cases {
		f, err := os.Open(filepath.Join(dir, tc.file))
		require.NoError(t, err)
		records, err := csv.NewReader(f).ReadAll()
		f.Close()
		require.NoError(t, err, tc.file)
		// Header plus data rows.
		assert.Len(t, records, tc.rows+1, tc.file)
	}
}

func TestWriteResultJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "result.json")
	require.NoError(t, WriteResultJSON(path, testResult(t)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"rankings"`)
	assert.Contains(t, string(data), `"num_matches": 6`)
}
