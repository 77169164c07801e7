// Package simulation runs the solver over batches of deals to measure
// solve rates and search effort. Each deal is independent, so batches
// fan out over a worker pool; the search itself stays single-threaded.
package simulation

import (
	"context"
	"math/rand"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/cardgrift/shenzhen/engine"
	"github.com/cardgrift/shenzhen/solver"
)

// Job is a single deal to solve.
type Job struct {
	ID   int
	Seed int64
}

// Result is the outcome of solving one deal.
type Result struct {
	ID         int
	Seed       int64
	Solved     bool
	Exhausted  bool
	OverBudget bool
	Moves      int
	Stats      solver.Stats
}

// Config sizes a batch run.
type Config struct {
	Games    int
	Workers  int   // 0 = use all CPUs
	Seed     int64 // master seed; per-deal seeds derive from it
	MaxNodes int   // per-deal expansion budget, 0 = unbounded
}

// Stats aggregates a finished batch.
type Stats struct {
	Games      int
	Solved     int
	Exhausted  int
	OverBudget int
	SolveRate  float64
	MeanMoves  float64 // over solved deals
	MeanNodes  float64 // expanded states per deal, all outcomes
	Duration   time.Duration
}

// Run solves cfg.Games deals across a worker pool and aggregates the
// outcomes. Deal seeds are drawn from a generator keyed by cfg.Seed, so
// a batch is reproducible regardless of worker count or scheduling.
// Results come back sorted by job ID.
func Run(ctx context.Context, cfg Config) (Stats, []Result) {
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	jobs := make(chan Job, cfg.Games)
	results := make(chan Result, cfg.Games)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go worker(ctx, &wg, jobs, results, cfg.MaxNodes)
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	for i := 0; i < cfg.Games; i++ {
		jobs <- Job{ID: i, Seed: rng.Int63()}
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	start := time.Now()
	all := make([]Result, 0, cfg.Games)
	for r := range results {
		all = append(all, r)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	stats := aggregate(all)
	stats.Duration = time.Since(start)
	return stats, all
}

func worker(ctx context.Context, wg *sync.WaitGroup, jobs <-chan Job, results chan<- Result, maxNodes int) {
	defer wg.Done()

	for job := range jobs {
		results <- solveOne(ctx, job, maxNodes)
	}
}

func solveOne(ctx context.Context, job Job, maxNodes int) Result {
	board := engine.Deal(job.Seed)
	sol, stats, err := solver.Solve(ctx, board, solver.Options{MaxNodes: maxNodes})

	r := Result{ID: job.ID, Seed: job.Seed, Stats: stats}
	switch {
	case err == nil:
		r.Solved = true
		r.Moves = len(sol.Moves)
	case err == solver.ErrExhausted:
		r.Exhausted = true
	case err == solver.ErrNodeBudget:
		r.OverBudget = true
	}
	return r
}

func aggregate(all []Result) Stats {
	stats := Stats{Games: len(all)}

	totalMoves, totalNodes := 0, 0
	for _, r := range all {
		totalNodes += r.Stats.Expanded
		switch {
		case r.Solved:
			stats.Solved++
			totalMoves += r.Moves
		case r.Exhausted:
			stats.Exhausted++
		case r.OverBudget:
			stats.OverBudget++
		}
	}

	if stats.Games > 0 {
		stats.SolveRate = float64(stats.Solved) / float64(stats.Games)
		stats.MeanNodes = float64(totalNodes) / float64(stats.Games)
	}
	if stats.Solved > 0 {
		stats.MeanMoves = float64(totalMoves) / float64(stats.Solved)
	}
	return stats
}
