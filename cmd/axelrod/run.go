package main

import (
	"context"
	"os"

	"github.com/charmbracelet/log"

	"github.com/lox/axelrod/internal/config"
	"github.com/lox/axelrod/internal/export"
	"github.com/lox/axelrod/internal/game"
	"github.com/lox/axelrod/internal/store"
	"github.com/lox/axelrod/internal/tournament"
)

// RunCmd runs one tournament and optionally persists or exports the result.
type RunCmd struct {
	Config      string   `help:"HCL tournament config file (overrides the tournament flags below)" type:"existingfile"`
	Strategies  []string `help:"Strategies to enter (default: all registered)" sep:","`
	Turns       int      `help:"Turns per match" default:"200"`
	Noise       float64  `help:"Probability an executed move is flipped" default:"0"`
	Seed        int64    `help:"Random seed for reproducible runs"`
	Parallelism int      `help:"Concurrent matches" default:"1"`
	PayoffR     float64  `name:"payoff-r" help:"Reward payoff (both cooperate)" default:"3"`
	PayoffT     float64  `name:"payoff-t" help:"Temptation payoff (defect vs cooperator)" default:"5"`
	PayoffP     float64  `name:"payoff-p" help:"Punishment payoff (both defect)" default:"1"`
	PayoffS     float64  `name:"payoff-s" help:"Sucker payoff (cooperate vs defector)" default:"0"`

	JSON      bool   `help:"Print the full result as JSON instead of a summary"`
	Output    string `help:"Write the full result JSON to this file"`
	DB        string `help:"Persist the result to this SQLite database"`
	ExportDir string `help:"Write CSV export tables to this directory"`
}

func (c *RunCmd) Run(g *Globals) error {
	cfg, err := c.buildConfig()
	if err != nil {
		return err
	}
	cfg.Logger = setupLogger(g.Debug)

	runner, err := tournament.New(&cfg)
	if err != nil {
		return err
	}
	result, err := runner.Run(context.Background())
	if err != nil {
		return err
	}

	reporter := tournament.NewReporter(os.Stdout)
	if c.JSON {
		if err := reporter.WriteJSON(result); err != nil {
			return err
		}
	} else {
		if err := reporter.PrintSummary(result); err != nil {
			return err
		}
	}

	if c.Output != "" {
		if err := export.WriteResultJSON(c.Output, result); err != nil {
			return err
		}
		log.Info("wrote result", "file", c.Output)
	}

	if c.DB != "" {
		db, err := store.Open(c.DB)
		if err != nil {
			return err
		}
		defer db.Close()
		id, err := db.Save(result)
		if err != nil {
			return err
		}
		log.Info("saved tournament", "db", c.DB, "id", id)
	}

	if c.ExportDir != "" {
		if err := export.WriteCSV(c.ExportDir, export.Flatten(result)); err != nil {
			return err
		}
		log.Info("exported CSV tables", "dir", c.ExportDir)
	}

	return nil
}

// buildConfig assembles the tournament configuration from the config file
// when given, otherwise from flags.
func (c *RunCmd) buildConfig() (tournament.Config, error) {
	if c.Config != "" {
		return config.Load(c.Config)
	}

	cfg := config.Default()
	if len(c.Strategies) > 0 {
		cfg.Strategies = c.Strategies
	}
	cfg.Turns = c.Turns
	cfg.Noise = c.Noise
	cfg.Seed = c.Seed
	cfg.Parallelism = c.Parallelism
	cfg.Payoffs = game.Payoffs{R: c.PayoffR, T: c.PayoffT, P: c.PayoffP, S: c.PayoffS}
	return cfg, nil
}
