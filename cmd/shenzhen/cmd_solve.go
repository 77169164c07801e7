package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/cardgrift/shenzhen/engine"
	"github.com/cardgrift/shenzhen/solver"
)

var (
	solveSeed     int64
	solveMaxNodes int
	solveTimeout  time.Duration
	solveJSON     bool
	solveProgress int
)

// solveReport is the JSON shape of a solve outcome.
type solveReport struct {
	Seed      int64    `json:"seed"`
	Solved    bool     `json:"solved"`
	Moves     []string `json:"moves,omitempty"`
	Expanded  int      `json:"expanded"`
	Generated int      `json:"generated"`
	Deduped   int      `json:"deduped"`
	Duration  string   `json:"duration"`
	Outcome   string   `json:"outcome"`
}

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Search one deal for a winning move sequence",
	RunE: func(cmd *cobra.Command, args []string) error {
		seed := solveSeed
		if seed == 0 {
			seed = engine.RandomSeed()
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		if solveTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, solveTimeout)
			defer cancel()
		}

		log.Info().Int64("seed", seed).Int("max_nodes", solveMaxNodes).Msg("solving")
		sol, stats, err := solver.Solve(ctx, engine.Deal(seed), solver.Options{
			MaxNodes:      solveMaxNodes,
			ProgressEvery: solveProgress,
			Logger:        log.Logger,
		})

		outcome := "solved"
		switch {
		case errors.Is(err, solver.ErrExhausted):
			outcome = "unsolvable"
		case errors.Is(err, solver.ErrNodeBudget):
			outcome = "over budget"
		case err != nil:
			return err
		}

		if solveJSON {
			return writeReport(seed, sol, stats, outcome)
		}

		if sol == nil {
			log.Warn().
				Str("outcome", outcome).
				Int("expanded", stats.Expanded).
				Dur("elapsed", stats.Duration).
				Msg("no solution")
			return err
		}

		log.Info().
			Int("moves", len(sol.Moves)).
			Int("expanded", stats.Expanded).
			Int("generated", stats.Generated).
			Int("deduped", stats.Deduped).
			Dur("elapsed", stats.Duration).
			Msg("solved")
		for i, mv := range sol.Moves {
			fmt.Printf("%3d. %s\n", i+1, mv)
		}
		return nil
	},
}

func writeReport(seed int64, sol *solver.Solution, stats solver.Stats, outcome string) error {
	report := solveReport{
		Seed:      seed,
		Solved:    sol != nil,
		Expanded:  stats.Expanded,
		Generated: stats.Generated,
		Deduped:   stats.Deduped,
		Duration:  stats.Duration.String(),
		Outcome:   outcome,
	}
	if sol != nil {
		report.Moves = make([]string, len(sol.Moves))
		for i, mv := range sol.Moves {
			report.Moves[i] = mv.String()
		}
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

func init() {
	solveCmd.Flags().Int64Var(&solveSeed, "seed", 0, "deal seed (0 = derive from clock)")
	solveCmd.Flags().IntVar(&solveMaxNodes, "max-nodes", 0, "expansion budget (0 = unbounded)")
	solveCmd.Flags().DurationVar(&solveTimeout, "timeout", 0, "wall clock limit (0 = none)")
	solveCmd.Flags().BoolVar(&solveJSON, "json", false, "write the outcome as JSON to stdout")
	solveCmd.Flags().IntVar(&solveProgress, "progress-every", 100000, "log progress every N expansions (0 = silent)")
	rootCmd.AddCommand(solveCmd)
}
