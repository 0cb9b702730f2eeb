// Package export flattens tournament results into independent tabular views
// suitable for CSV files or BI tooling: one table for tournament metadata,
// one row per strategy, one row per match, directed strategy-vs-strategy
// matrix cells, and one row per unordered head-to-head pair.
//
// Everything here is derived from the result structure without recomputing
// any simulation output.
package export

import (
	"fmt"
	"strings"

	"github.com/lox/axelrod/internal/game"
	"github.com/lox/axelrod/internal/tournament"
)

// InfoRow is one parameter/value pair of tournament metadata.
type InfoRow struct {
	Parameter string `json:"parameter"`
	Value     string `json:"value"`
}

// StrategyRow is one ranked strategy.
type StrategyRow struct {
	Rank               int     `json:"rank"`
	Strategy           string  `json:"strategy"`
	TotalScore         float64 `json:"total_score"`
	AvgScore           float64 `json:"avg_score"`
	AvgCooperationRate float64 `json:"avg_cooperation_rate"`
	Wins               int     `json:"wins"`
}

// MatchRow is one completed match.
type MatchRow struct {
	Match             int     `json:"match"`
	StrategyA         string  `json:"strategy_a"`
	StrategyB         string  `json:"strategy_b"`
	ScoreA            float64 `json:"score_a"`
	ScoreB            float64 `json:"score_b"`
	CooperationRateA  float64 `json:"cooperation_rate_a"`
	CooperationRateB  float64 `json:"cooperation_rate_b"`
	Outcome           string  `json:"outcome"`
	Winner            string  `json:"winner,omitempty"`
	Turns             int     `json:"turns"`
	MovesA            string  `json:"moves_a"`
	MovesB            string  `json:"moves_b"`
}

// MatrixCell is one directed strategy-vs-opponent cell, suitable for heatmap
// views. Every match produces two cells, one per direction.
type MatrixCell struct {
	Strategy        string  `json:"strategy"`
	Opponent        string  `json:"opponent"`
	Score           float64 `json:"score"`
	CooperationRate float64 `json:"cooperation_rate"`
}

// HeadToHeadRow summarises one unordered pair of strategies.
type HeadToHeadRow struct {
	StrategyA string  `json:"strategy_a"`
	StrategyB string  `json:"strategy_b"`
	ScoreA    float64 `json:"score_a"`
	ScoreB    float64 `json:"score_b"`
	Winner    string  `json:"winner,omitempty"`
}

// Tables holds every flattened view of a tournament result.
type Tables struct {
	Tournament []InfoRow       `json:"tournament"`
	Strategies []StrategyRow   `json:"strategies"`
	Matches    []MatchRow      `json:"matches"`
	Matrix     []MatrixCell    `json:"score_matrix"`
	HeadToHead []HeadToHeadRow `json:"head_to_head"`
}

// Flatten derives all tabular views from a tournament result.
func Flatten(result *tournament.Result) *Tables {
	t := &Tables{}

	meta := result.Metadata
	t.Tournament = []InfoRow{
		{Parameter: "start_time", Value: meta.StartTime.Format("2006-01-02T15:04:05Z07:00")},
		{Parameter: "duration_seconds", Value: fmt.Sprintf("%.3f", meta.DurationSeconds)},
		{Parameter: "turns", Value: fmt.Sprintf("%d", meta.Turns)},
		{Parameter: "noise", Value: fmt.Sprintf("%g", meta.Noise)},
		{Parameter: "seed", Value: fmt.Sprintf("%d", meta.Seed)},
		{Parameter: "num_strategies", Value: fmt.Sprintf("%d", meta.NumStrategies)},
		{Parameter: "num_matches", Value: fmt.Sprintf("%d", meta.NumMatches)},
		{Parameter: "payoff_r", Value: fmt.Sprintf("%g", meta.Payoffs.R)},
		{Parameter: "payoff_t", Value: fmt.Sprintf("%g", meta.Payoffs.T)},
		{Parameter: "payoff_p", Value: fmt.Sprintf("%g", meta.Payoffs.P)},
		{Parameter: "payoff_s", Value: fmt.Sprintf("%g", meta.Payoffs.S)},
	}

	for _, s := range result.Rankings {
		t.Strategies = append(t.Strategies, StrategyRow{
			Rank:               s.Rank,
			Strategy:           s.Strategy,
			TotalScore:         s.TotalScore,
			AvgScore:           s.AvgScore,
			AvgCooperationRate: s.AvgCooperationRate,
			Wins:               s.Wins,
		})
	}

	for i, m := range result.Matches {
		t.Matches = append(t.Matches, MatchRow{
			Match:            i + 1,
			StrategyA:        m.PlayerA.Strategy,
			StrategyB:        m.PlayerB.Strategy,
			ScoreA:           m.PlayerA.Score,
			ScoreB:           m.PlayerB.Score,
			CooperationRateA: m.PlayerA.CooperationRate,
			CooperationRateB: m.PlayerB.CooperationRate,
			Outcome:          string(m.Outcome),
			Winner:           m.Winner(),
			Turns:            m.Turns,
			MovesA:           movesString(m.PlayerA.Moves),
			MovesB:           movesString(m.PlayerB.Moves),
		})

		t.Matrix = append(t.Matrix,
			MatrixCell{
				Strategy:        m.PlayerA.Strategy,
				Opponent:        m.PlayerB.Strategy,
				Score:           m.PlayerA.Score,
				CooperationRate: m.PlayerA.CooperationRate,
			},
			MatrixCell{
				Strategy:        m.PlayerB.Strategy,
				Opponent:        m.PlayerA.Strategy,
				Score:           m.PlayerB.Score,
				CooperationRate: m.PlayerB.CooperationRate,
			},
		)

		t.HeadToHead = append(t.HeadToHead, HeadToHeadRow{
			StrategyA: m.PlayerA.Strategy,
			StrategyB: m.PlayerB.Strategy,
			ScoreA:    m.PlayerA.Score,
			ScoreB:    m.PlayerB.Score,
			Winner:    m.Winner(),
		})
	}

	return t
}

func movesString(moves []game.Move) string {
	var b strings.Builder
	b.Grow(len(moves))
	for _, m := range moves {
		b.WriteString(m.String())
	}
	return b.String()
}
