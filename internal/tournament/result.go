package tournament

import (
	"time"

	"github.com/lox/axelrod/internal/game"
	"github.com/lox/axelrod/internal/match"
)

// Metadata describes how a tournament was configured and how long it took.
type Metadata struct {
	StartTime       time.Time    `json:"start_time"`
	DurationSeconds float64      `json:"duration_seconds"`
	Turns           int          `json:"turns"`
	Noise           float64      `json:"noise"`
	Seed            int64        `json:"seed"`
	Payoffs         game.Payoffs `json:"payoffs"`
	NumStrategies   int          `json:"num_strategies"`
	NumMatches      int          `json:"num_matches"`
}

// StrategySummary is one row of the final ranking.
type StrategySummary struct {
	Rank               int     `json:"rank"`
	Strategy           string  `json:"strategy"`
	TotalScore         float64 `json:"total_score"`
	AvgScore           float64 `json:"avg_score"`
	AvgCooperationRate float64 `json:"avg_cooperation_rate"`
	Wins               int     `json:"wins"`
	ScoreStdDev        float64 `json:"score_std_dev"`
	Matches            int     `json:"matches"`
}

// Result is the immutable output of a completed tournament: every match
// result plus the ranked per-strategy summaries. It contains only nested
// primitives, so persistence and export collaborators can serialize it
// directly.
type Result struct {
	Metadata Metadata          `json:"metadata"`
	Rankings []StrategySummary `json:"rankings"`
	Matches  []match.Result    `json:"matches"`
}

// Ranking returns the 1-indexed rank of the named strategy, or 0 when the
// strategy did not compete.
func (r *Result) Ranking(name string) int {
	for _, s := range r.Rankings {
		if s.Strategy == name {
			return s.Rank
		}
	}
	return 0
}

// MatchesInvolving returns every match the named strategy played in.
func (r *Result) MatchesInvolving(name string) []match.Result {
	var out []match.Result
	for _, m := range r.Matches {
		if m.Involves(name) {
			out = append(out, m)
		}
	}
	return out
}

// HeadToHead returns the match between the two named strategies, if any.
func (r *Result) HeadToHead(a, b string) (match.Result, bool) {
	for _, m := range r.Matches {
		if m.Involves(a) && m.Involves(b) && a != b {
			return m, true
		}
	}
	return match.Result{}, false
}
