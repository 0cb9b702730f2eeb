package main

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/lox/axelrod/internal/export"
	"github.com/lox/axelrod/internal/store"
	"github.com/lox/axelrod/internal/strategy"
)

// StrategiesCmd lists the registered strategies.
type StrategiesCmd struct{}

func (c *StrategiesCmd) Run(g *Globals) error {
	for _, name := range strategy.Names() {
		fmt.Println(name)
	}
	return nil
}

// ListCmd lists tournaments stored in a results database.
type ListCmd struct {
	DB string `arg:"" help:"SQLite results database" type:"existingfile"`
}

func (c *ListCmd) Run(g *Globals) error {
	db, err := store.Open(c.DB)
	if err != nil {
		return err
	}
	defer db.Close()

	tournaments, err := db.List()
	if err != nil {
		return err
	}
	if len(tournaments) == 0 {
		log.Info("no tournaments stored", "db", c.DB)
		return nil
	}
	for _, t := range tournaments {
		fmt.Printf("%4d  %s  %d strategies, %d matches, %d turns, noise %.2f\n",
			t.ID, t.StartTime.Format("2006-01-02 15:04:05"),
			t.NumStrategies, t.NumMatches, t.Turns, t.Noise)
	}
	return nil
}

// ExportCmd re-exports a stored tournament as CSV tables.
type ExportCmd struct {
	DB  string `arg:"" help:"SQLite results database" type:"existingfile"`
	ID  int64  `arg:"" help:"Tournament id (see the list command)"`
	Dir string `help:"Output directory" default:"."`
}

func (c *ExportCmd) Run(g *Globals) error {
	db, err := store.Open(c.DB)
	if err != nil {
		return err
	}
	defer db.Close()

	result, err := db.Load(c.ID)
	if err != nil {
		return err
	}
	if err := export.WriteCSV(c.Dir, export.Flatten(result)); err != nil {
		return err
	}
	log.Info("exported CSV tables", "tournament", c.ID, "dir", c.Dir)
	return nil
}
