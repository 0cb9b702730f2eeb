// Package store persists tournament results in SQLite so runs can be
// compared and re-exported later. It depends on the engine's result
// structures; the engine never depends on it.
package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/lox/axelrod/internal/game"
	"github.com/lox/axelrod/internal/match"
	"github.com/lox/axelrod/internal/tournament"
)

const schema = `
CREATE TABLE IF NOT EXISTS tournaments (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	start_time TEXT NOT NULL,
	duration_seconds REAL NOT NULL,
	turns INTEGER NOT NULL,
	noise REAL NOT NULL,
	seed INTEGER NOT NULL,
	num_strategies INTEGER NOT NULL,
	num_matches INTEGER NOT NULL,
	payoff_r REAL NOT NULL,
	payoff_t REAL NOT NULL,
	payoff_p REAL NOT NULL,
	payoff_s REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS players (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	tournament_id INTEGER NOT NULL REFERENCES tournaments(id) ON DELETE CASCADE,
	strategy TEXT NOT NULL,
	rank INTEGER NOT NULL,
	total_score REAL NOT NULL,
	avg_score REAL NOT NULL,
	avg_cooperation_rate REAL NOT NULL,
	wins INTEGER NOT NULL,
	score_std_dev REAL NOT NULL,
	matches INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS matches (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	tournament_id INTEGER NOT NULL REFERENCES tournaments(id) ON DELETE CASCADE,
	strategy_a TEXT NOT NULL,
	strategy_b TEXT NOT NULL,
	score_a REAL NOT NULL,
	score_b REAL NOT NULL,
	cooperation_rate_a REAL NOT NULL,
	cooperation_rate_b REAL NOT NULL,
	outcome TEXT NOT NULL,
	turns INTEGER NOT NULL,
	moves_a TEXT NOT NULL,
	moves_b TEXT NOT NULL
);
`

// Store wraps a SQLite database holding tournament results.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the database at path and ensures the
// schema exists. WAL journaling keeps writers from blocking readers.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?mode=rwc&_journal=wal&_fk=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save persists a complete tournament result in one transaction and returns
// the new tournament id.
func (s *Store) Save(result *tournament.Result) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	meta := result.Metadata
	res, err := tx.Exec(`INSERT INTO tournaments
		(start_time, duration_seconds, turns, noise, seed, num_strategies, num_matches,
		 payoff_r, payoff_t, payoff_p, payoff_s)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		meta.StartTime.Format(time.RFC3339Nano), meta.DurationSeconds, meta.Turns,
		meta.Noise, meta.Seed, meta.NumStrategies, meta.NumMatches,
		meta.Payoffs.R, meta.Payoffs.T, meta.Payoffs.P, meta.Payoffs.S)
	if err != nil {
		return 0, fmt.Errorf("failed to insert tournament: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	for _, p := range result.Rankings {
		_, err := tx.Exec(`INSERT INTO players
			(tournament_id, strategy, rank, total_score, avg_score,
			 avg_cooperation_rate, wins, score_std_dev, matches)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id, p.Strategy, p.Rank, p.TotalScore, p.AvgScore,
			p.AvgCooperationRate, p.Wins, p.ScoreStdDev, p.Matches)
		if err != nil {
			return 0, fmt.Errorf("failed to insert player %s: %w", p.Strategy, err)
		}
	}

	for _, m := range result.Matches {
		_, err := tx.Exec(`INSERT INTO matches
			(tournament_id, strategy_a, strategy_b, score_a, score_b,
			 cooperation_rate_a, cooperation_rate_b, outcome, turns, moves_a, moves_b)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id, m.PlayerA.Strategy, m.PlayerB.Strategy,
			m.PlayerA.Score, m.PlayerB.Score,
			m.PlayerA.CooperationRate, m.PlayerB.CooperationRate,
			string(m.Outcome), m.Turns,
			encodeMoves(m.PlayerA.Moves), encodeMoves(m.PlayerB.Moves))
		if err != nil {
			return 0, fmt.Errorf("failed to insert match: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit: %w", err)
	}
	return id, nil
}

// Load reconstructs a stored tournament result.
func (s *Store) Load(id int64) (*tournament.Result, error) {
	result := &tournament.Result{}

	var startTime string
	err := s.db.QueryRow(`SELECT start_time, duration_seconds, turns, noise, seed,
		num_strategies, num_matches, payoff_r, payoff_t, payoff_p, payoff_s
		FROM tournaments WHERE id = ?`, id).Scan(
		&startTime, &result.Metadata.DurationSeconds, &result.Metadata.Turns,
		&result.Metadata.Noise, &result.Metadata.Seed,
		&result.Metadata.NumStrategies, &result.Metadata.NumMatches,
		&result.Metadata.Payoffs.R, &result.Metadata.Payoffs.T,
		&result.Metadata.Payoffs.P, &result.Metadata.Payoffs.S)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("tournament %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load tournament %d: %w", id, err)
	}
	result.Metadata.StartTime, err = time.Parse(time.RFC3339Nano, startTime)
	if err != nil {
		return nil, fmt.Errorf("failed to parse start time: %w", err)
	}

	rows, err := s.db.Query(`SELECT strategy, rank, total_score, avg_score,
		avg_cooperation_rate, wins, score_std_dev, matches
		FROM players WHERE tournament_id = ? ORDER BY rank`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load players: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var p tournament.StrategySummary
		if err := rows.Scan(&p.Strategy, &p.Rank, &p.TotalScore, &p.AvgScore,
			&p.AvgCooperationRate, &p.Wins, &p.ScoreStdDev, &p.Matches); err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		result.Rankings = append(result.Rankings, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	mrows, err := s.db.Query(`SELECT strategy_a, strategy_b, score_a, score_b,
		cooperation_rate_a, cooperation_rate_b, outcome, turns, moves_a, moves_b
		FROM matches WHERE tournament_id = ? ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load matches: %w", err)
	}
	defer mrows.Close()
	for mrows.Next() {
		var m match.Result
		var outcome, movesA, movesB string
		if err := mrows.Scan(&m.PlayerA.Strategy, &m.PlayerB.Strategy,
			&m.PlayerA.Score, &m.PlayerB.Score,
			&m.PlayerA.CooperationRate, &m.PlayerB.CooperationRate,
			&outcome, &m.Turns, &movesA, &movesB); err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		m.Outcome = match.Outcome(outcome)
		m.Noise = result.Metadata.Noise
		if m.PlayerA.Moves, err = decodeMoves(movesA); err != nil {
			return nil, err
		}
		if m.PlayerB.Moves, err = decodeMoves(movesB); err != nil {
			return nil, err
		}
		result.Matches = append(result.Matches, m)
	}
	if err := mrows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

// TournamentInfo is one row of List output.
type TournamentInfo struct {
	ID            int64
	StartTime     time.Time
	Turns         int
	Noise         float64
	NumStrategies int
	NumMatches    int
}

// List returns stored tournaments, newest first.
func (s *Store) List() ([]TournamentInfo, error) {
	rows, err := s.db.Query(`SELECT id, start_time, turns, noise, num_strategies, num_matches
		FROM tournaments ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}
	defer rows.Close()

	var out []TournamentInfo
	for rows.Next() {
		var info TournamentInfo
		var startTime string
		if err := rows.Scan(&info.ID, &startTime, &info.Turns, &info.Noise,
			&info.NumStrategies, &info.NumMatches); err != nil {
			return nil, fmt.Errorf("failed to scan tournament: %w", err)
		}
		if info.StartTime, err = time.Parse(time.RFC3339Nano, startTime); err != nil {
			return nil, fmt.Errorf("failed to parse start time: %w", err)
		}
		out = append(out, info)
	}
	return out, rows.Err()
}

// encodeMoves packs a move history into its compact string form ("CCDC").
func encodeMoves(moves []game.Move) string {
	b := make([]byte, len(moves))
	for i, m := range moves {
		b[i] = m.String()[0]
	}
	return string(b)
}

func decodeMoves(s string) ([]game.Move, error) {
	moves := make([]game.Move, len(s))
	for i := 0; i < len(s); i++ {
		m, err := game.ParseMove(string(s[i]))
		if err != nil {
			return nil, fmt.Errorf("invalid move history %q: %w", s, err)
		}
		moves[i] = m
	}
	return moves, nil
}
