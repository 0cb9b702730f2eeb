package store

import (
	"context"
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
		Strategies: []string{"AlwaysCooperate", "AlwaysDefect", "TitForTat"},
		Turns:      5,
		Seed:       7,
		Logger:     zerolog.Nop(),
		Clock:      quartz.NewMock(t),
	})
	require.NoError(t, err)
	result, err := runner.Run(context.Background())
	require.NoError(t, err)
	return result
}

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "results.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	s := openStore(t)
	original := testResult(t)

	id, err := s.Save(original)
	require.NoError(t, err)
	require.Equal(t, int64(1), id)

	loaded, err := s.Load(id)
	require.NoError(t, err)

	assert.Equal(t, original.Rankings, loaded.Rankings)
	assert.Equal(t, original.Matches, loaded.Matches)

	assert.Equal(t, original.Metadata.Turns, loaded.Metadata.Turns)
	assert.Equal(t, original.Metadata.Noise, loaded.Metadata.Noise)
	assert.Equal(t, original.Metadata.Seed, loaded.Metadata.Seed)
	assert.Equal(t, original.Metadata.Payoffs, loaded.Metadata.Payoffs)
	assert.Equal(t, original.Metadata.NumStrategies, loaded.Metadata.NumStrategies)
	assert.Equal(t, original.Metadata.NumMatches, loaded.Metadata.NumMatches)
	assert.True(t, loaded.Metadata.StartTime.Equal(original.Metadata.StartTime))
}

func TestStore_LoadMissing(t *testing.T) {
	s := openStore(t)

	_, err := s.Load(99)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestStore_List(t *testing.T) {
	s := openStore(t)

	infos, err := s.List()
	require.NoError(t, err)
	assert.Empty(t, infos)

	result := testResult(t)
	_, err = s.Save(result)
	require.NoError(t, err)
	_, err = s.Save(result)
	require.NoError(t, err)

	infos, err = s.List()
	require.NoError(t, err)
	require.Len(t, infos, 2)

	// Newest first.
	assert.Equal(t, int64(2), infos[0].ID)
	assert.Equal(t, int64(1), infos[1].ID)
	assert.Equal(t, 3, infos[0].NumStrategies)
	assert.Equal(t, 3, infos[0].NumMatches)
}
