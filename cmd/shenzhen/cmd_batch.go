package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/cardgrift/shenzhen/engine"
	"github.com/cardgrift/shenzhen/simulation"
)

var (
	batchGames    int
	batchWorkers  int
	batchSeed     int64
	batchMaxNodes int
	batchJSON     bool
)

// batchReport is the JSON shape of a batch outcome.
type batchReport struct {
	simulation.Stats
	UnsolvedSeeds []int64 `json:"unsolved_seeds,omitempty"`
}

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Solve many random deals and report the solve rate",
	RunE: func(cmd *cobra.Command, args []string) error {
		seed := batchSeed
		if seed == 0 {
			seed = engine.RandomSeed()
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		log.Info().
			Int("games", batchGames).
			Int("workers", batchWorkers).
			Int64("seed", seed).
			Int("max_nodes", batchMaxNodes).
			Msg("starting batch")

		stats, results := simulation.Run(ctx, simulation.Config{
			Games:    batchGames,
			Workers:  batchWorkers,
			Seed:     seed,
			MaxNodes: batchMaxNodes,
		})

		var unsolved []int64
		for _, r := range results {
			if !r.Solved {
				unsolved = append(unsolved, r.Seed)
				log.Debug().Int64("seed", r.Seed).
					Bool("exhausted", r.Exhausted).
					Bool("over_budget", r.OverBudget).
					Msg("deal not solved")
			}
		}

		if batchJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(batchReport{Stats: stats, UnsolvedSeeds: unsolved})
		}

		log.Info().
			Int("games", stats.Games).
			Int("solved", stats.Solved).
			Int("exhausted", stats.Exhausted).
			Int("over_budget", stats.OverBudget).
			Float64("solve_rate", stats.SolveRate).
			Float64("mean_moves", stats.MeanMoves).
			Float64("mean_nodes", stats.MeanNodes).
			Dur("elapsed", stats.Duration).
			Msg("batch finished")
		return nil
	},
}

func init() {
	batchCmd.Flags().IntVar(&batchGames, "games", 100, "number of deals to solve")
	batchCmd.Flags().IntVar(&batchWorkers, "workers", 0, "worker goroutines (0 = all CPUs)")
	batchCmd.Flags().Int64Var(&batchSeed, "seed", 0, "master seed (0 = derive from clock)")
	batchCmd.Flags().IntVar(&batchMaxNodes, "max-nodes", 500000, "per-deal expansion budget (0 = unbounded)")
	batchCmd.Flags().BoolVar(&batchJSON, "json", false, "write the outcome as JSON to stdout")
	rootCmd.AddCommand(batchCmd)
}
