package tournament

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
)

// Reporter renders tournament results for humans or machines.
type Reporter struct {
	writer io.Writer
}

// NewReporter creates a reporter. A nil writer defaults to stdout.
func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{writer: writer}
}

// PrintSummary writes a human-readable ranking table and match list.
func (r *Reporter) PrintSummary(result *Result) error {
	meta := result.Metadata
	fmt.Fprintln(r.writer, strings.Repeat("=", 72))
	fmt.Fprintf(r.writer, "Tournament: %d strategies, %d matches, %d turns, noise %.2f, seed %d\n",
		meta.NumStrategies, meta.NumMatches, meta.Turns, meta.Noise, meta.Seed)
	fmt.Fprintf(r.writer, "Payoffs: R=%.1f T=%.1f P=%.1f S=%.1f\n",
		meta.Payoffs.R, meta.Payoffs.T, meta.Payoffs.P, meta.Payoffs.S)
	fmt.Fprintln(r.writer, strings.Repeat("=", 72))

	tw := tabwriter.NewWriter(r.writer, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tSTRATEGY\tAVG SCORE\tTOTAL\tCOOP RATE\tWINS")
	for _, s := range result.Rankings {
		fmt.Fprintf(tw, "%d\t%s\t%.2f\t%.0f\t%.2f\t%d\n",
			s.Rank, s.Strategy, s.AvgScore, s.TotalScore, s.AvgCooperationRate, s.Wins)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(r.writer, strings.Repeat("-", 72))
	for _, m := range result.Matches {
		label := "draw"
		if w := m.Winner(); w != "" {
			label = w + " wins"
		}
		fmt.Fprintf(r.writer, "%-18s %6.0f  vs  %-18s %6.0f   %s\n",
			m.PlayerA.Strategy, m.PlayerA.Score, m.PlayerB.Strategy, m.PlayerB.Score, label)
	}
	return nil
}

// WriteJSON writes the full result as indented JSON.
func (r *Reporter) WriteJSON(result *Result) error {
	enc := json.NewEncoder(r.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
