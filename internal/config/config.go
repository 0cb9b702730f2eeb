// Package config loads tournament configuration from HCL files.
//
// Example:
//
//	tournament {
//	  turns       = 200
//	  noise       = 0.05
//	  seed        = 42
//	  parallelism = 4
//	}
//
//	payoffs {
//	  r = 3
//	  t = 5
//	  p = 1
//	  s = 0
//	}
//
//	strategy "TitForTat" {}
//	strategy "Grudger" {}
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/axelrod/internal/game"
	"github.com/lox/axelrod/internal/strategy"
	"github.com/lox/axelrod/internal/tournament"
)

// File mirrors the HCL document structure.
type File struct {
	Tournament *TournamentBlock `hcl:"tournament,block"`
	Payoffs    *game.Payoffs    `hcl:"payoffs,block"`
	Strategies []StrategyBlock  `hcl:"strategy,block"`
}

// TournamentBlock holds run parameters.
type TournamentBlock struct {
	Turns       int     `hcl:"turns,optional"`
	Noise       float64 `hcl:"noise,optional"`
	Seed        int64   `hcl:"seed,optional"`
	Parallelism int     `hcl:"parallelism,optional"`
}

// StrategyBlock names one tournament entrant.
type StrategyBlock struct {
	Name string `hcl:"name,label"`
}

// Default returns the configuration used when no file or flags are given:
// every registered strategy, Axelrod-length matches, no noise.
func Default() tournament.Config {
	return tournament.Config{
		Strategies: strategy.Names(),
		Turns:      tournament.DefaultTurns,
		Payoffs:    game.DefaultPayoffs(),
	}
}

// Load parses an HCL file and merges it over the default configuration.
// Validation is left to the tournament runner so all configuration paths
// share one set of checks.
func Load(filename string) (tournament.Config, error) {
	cfg := Default()

	if _, err := os.Stat(filename); err != nil {
		return cfg, fmt.Errorf("config file %s: %w", filename, err)
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return cfg, fmt.Errorf("failed to parse %s: %s", filename, diags.Error())
	}

	var doc File
	if diags := gohcl.DecodeBody(file.Body, nil, &doc); diags.HasErrors() {
		return cfg, fmt.Errorf("failed to decode %s: %s", filename, diags.Error())
	}

	if doc.Tournament != nil {
		if doc.Tournament.Turns != 0 {
			cfg.Turns = doc.Tournament.Turns
		}
		cfg.Noise = doc.Tournament.Noise
		cfg.Seed = doc.Tournament.Seed
		cfg.Parallelism = doc.Tournament.Parallelism
	}
	if doc.Payoffs != nil {
		cfg.Payoffs = *doc.Payoffs
	}
	if len(doc.Strategies) > 0 {
		names := make([]string, len(doc.Strategies))
		for i, s := range doc.Strategies {
			names[i] = s.Name
		}
		cfg.Strategies = names
	}

	return cfg, nil
}
