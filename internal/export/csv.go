package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lox/axelrod/internal/tournament"
)

// CSV file names written by WriteCSV.
const (
	FileTournament = "tournament.csv"
	FileStrategies = "strategies.csv"
	FileMatches    = "matches.csv"
	FileMatrix     = "score_matrix.csv"
	FileHeadToHead = "head_to_head.csv"
)

// WriteCSV writes all flattened tables as CSV files under dir, creating the
// directory if needed. Each file is written atomically so concurrent readers
// never observe a partial export.
func WriteCSV(dir string, tables *Tables) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create export dir: %w", err)
	}

	files := []struct {
		name   string
		header []string
		rows   [][]string
	}{
		{FileTournament, []string{"parameter", "value"}, tournamentRows(tables.Tournament)},
		{FileStrategies, []string{"rank", "strategy", "total_score", "avg_score", "avg_cooperation_rate", "wins"}, strategyRows(tables.Strategies)},
		{FileMatches, []string{"match", "strategy_a", "strategy_b", "score_a", "score_b", "cooperation_rate_a", "cooperation_rate_b", "outcome", "winner", "turns", "moves_a", "moves_b"}, matchRows(tables.Matches)},
		{FileMatrix, []string{"strategy", "opponent", "score", "cooperation_rate"}, matrixRows(tables.Matrix)},
		{FileHeadToHead, []string{"strategy_a", "strategy_b", "score_a", "score_b", "winner"}, headToHeadRows(tables.HeadToHead)},
	}

	for _, f := range files {
		data, err := encodeCSV(f.header, f.rows)
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", f.name, err)
		}
		if err := writeFileAtomic(filepath.Join(dir, f.name), data, 0o644); err != nil {
			return err
		}
	}
	return nil
}

// WriteResultJSON writes the full tournament result as indented JSON,
// atomically.
func WriteResultJSON(path string, result *tournament.Result) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	return writeFileAtomic(path, append(data, '\n'), 0o644)
}

func encodeCSV(header []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, err
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func tournamentRows(rows []InfoRow) [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = []string{r.Parameter, r.Value}
	}
	return out
}

func strategyRows(rows []StrategyRow) [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = []string{
			fmt.Sprintf("%d", r.Rank),
			r.Strategy,
			formatFloat(r.TotalScore),
			formatFloat(r.AvgScore),
			formatFloat(r.AvgCooperationRate),
			fmt.Sprintf("%d", r.Wins),
		}
	}
	return out
}

func matchRows(rows []MatchRow) [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = []string{
			fmt.Sprintf("%d", r.Match),
			r.StrategyA,
			r.StrategyB,
			formatFloat(r.ScoreA),
			formatFloat(r.ScoreB),
			formatFloat(r.CooperationRateA),
			formatFloat(r.CooperationRateB),
			r.Outcome,
			r.Winner,
			fmt.Sprintf("%d", r.Turns),
			r.MovesA,
			r.MovesB,
		}
	}
	return out
}

func matrixRows(cells []MatrixCell) [][]string {
	out := make([][]string, len(cells))
	for i, c := range cells {
		out[i] = []string{c.Strategy, c.Opponent, formatFloat(c.Score), formatFloat(c.CooperationRate)}
	}
	return out
}

func headToHeadRows(rows []HeadToHeadRow) [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = []string{r.StrategyA, r.StrategyB, formatFloat(r.ScoreA), formatFloat(r.ScoreB), r.Winner}
	}
	return out
}

func formatFloat(f float64) string {
	return fmt.Sprintf("%g", f)
}
