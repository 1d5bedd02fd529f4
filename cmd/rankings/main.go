// Command rankings computes standings or next-round Swiss pairings for
// a tournament snapshot supplied as JSON. It is a thin shell over the
// pure engines: read, compute, print.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/vssouza/rankings-core/internal/config"
	"github.com/vssouza/rankings-core/internal/domain/outcome"
	"github.com/vssouza/rankings-core/internal/domain/standings"
	"github.com/vssouza/rankings-core/internal/domain/swiss"
	"github.com/vssouza/rankings-core/pkg/logger"
	"github.com/vssouza/rankings-core/pkg/metrics"
)

// snapshot is the JSON shape callers persist between rounds.
type snapshot struct {
	EventSeed  string                 `json:"event_seed,omitempty"`
	Outcomes   []outcome.MatchOutcome `json:"outcomes"`
	Retired    []string               `json:"retired,omitempty"`
	Downfloats map[string]int         `json:"downfloats,omitempty"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "rankings:", err)
		os.Exit(1)
	}
}

func run() error {
	// Optional .env for RANKINGS_* variables; absence is fine.
	_ = godotenv.Load()

	if err := logger.Init(); err != nil {
		return fmt.Errorf("initialize logging: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	ctx := context.Background()
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		logger.Get().Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel))
		_ = logger.SetLevelString("info")
	}

	fs := flag.NewFlagSet("rankings", flag.ContinueOnError)
	input := fs.String("f", "", "tournament snapshot JSON file (default stdin)")
	if len(os.Args) < 2 {
		return fmt.Errorf("usage: rankings <standings|pair> [-f snapshot.json]")
	}
	command := os.Args[1]
	if err := fs.Parse(os.Args[2:]); err != nil {
		return err
	}

	snap, err := readSnapshot(*input)
	if err != nil {
		return err
	}
	seed := cfg.EventSeed
	if snap.EventSeed != "" {
		seed = snap.EventSeed
	}
	retired := make(map[string]bool, len(snap.Retired))
	for _, id := range snap.Retired {
		retired[id] = true
	}

	ledger, err := outcome.Build(snap.Outcomes, outcome.WithSingleSided(cfg.SingleSided))
	if err != nil {
		metrics.RecordIngestionError()
		return err
	}
	rows := standings.Compute(ledger,
		standings.WithPoints(cfg.WinPoints, cfg.DrawPoints, cfg.LossPoints, cfg.ByePoints),
		standings.WithTieBreakFloor(cfg.TieBreakFloor),
		standings.WithVirtualBye(cfg.VirtualBye),
		standings.WithVirtualByeRate(cfg.VirtualByeRate),
		standings.WithHeadToHead(cfg.HeadToHead),
		standings.WithEventSeed(seed),
		standings.WithRetired(retired),
	)
	metrics.RecordStandingsComputed(len(rows))

	switch command {
	case "standings":
		return printJSON(rows)
	case "pair":
		res := swiss.Generate(rows, ledger,
			swiss.WithEventSeed(seed),
			swiss.WithStepBudget(cfg.PairingBudget),
			swiss.WithPriorDownfloats(snap.Downfloats),
		)
		pool := len(res.Pairings) * 2
		if res.Bye != "" {
			pool++
			metrics.RecordByeAssigned()
		}
		metrics.RecordPairingsGenerated(pool)
		metrics.RecordRematches(len(res.RematchesUsed))
		metrics.RecordSearchSteps(res.SearchSteps)
		return printJSON(res)
	default:
		return fmt.Errorf("unknown command %q (want standings or pair)", command)
	}
}

// readSnapshot loads the snapshot from path, or stdin when empty.
func readSnapshot(path string) (*snapshot, error) {
	var data []byte
	var err error
	if path == "" {
		data, err = os.ReadFile("/dev/stdin")
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parse snapshot: %w", err)
	}
	return &snap, nil
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
