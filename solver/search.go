// Package solver finds move sequences that win a dealt board, using
// best-first search over the board graph with an intentionally
// inadmissible heuristic: solutions arrive fast and are usually close
// to minimal, but minimality is not guaranteed.
package solver

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/cardgrift/shenzhen/engine"
)

// ErrExhausted reports that the reachable state space contains no
// solved board. Some deals are genuinely unsolvable, and a few more are
// unsolvable under the forced auto-promotion policy; both surface here.
var ErrExhausted = errors.New("search space exhausted without a solution")

// ErrNodeBudget reports that the caller-imposed expansion budget ran
// out before the search concluded either way.
var ErrNodeBudget = errors.New("node budget exceeded")

// Options tunes a single Solve call.
type Options struct {
	// MaxNodes caps the number of expanded states; 0 means unbounded.
	MaxNodes int
	// ProgressEvery emits a progress log line every N expansions via
	// Logger; 0 keeps the search silent.
	ProgressEvery int
	// Logger receives progress lines when ProgressEvery is set.
	Logger zerolog.Logger
}

// Stats describes the work a Solve call performed, whatever its outcome.
type Stats struct {
	Expanded    int
	Generated   int
	Deduped     int
	MaxFrontier int
	Duration    time.Duration
}

// Solution is a winning line: the closure-collapsed boards from the
// root to a solved state, and the generator move between each pair.
type Solution struct {
	Boards []engine.Board // len(Moves)+1, first is the root after automoves
	Moves  []engine.Move
}

// Solve searches for a winning move sequence from root. The root is
// closed under automoves before searching. Cancellation is cooperative:
// ctx is checked between frontier pops and its error returned as-is.
func Solve(ctx context.Context, root engine.Board, opts Options) (*Solution, Stats, error) {
	start := time.Now()
	root = root.Automoves()

	fr := &frontier{}
	ix := newIndex()
	var stats Stats

	ix.admit(root.Key(), 0)
	fr.push(&node{board: root}, estimate(root))

	for fr.Len() > 0 {
		if err := ctx.Err(); err != nil {
			stats.Duration = time.Since(start)
			return nil, stats, err
		}

		n := fr.pop()
		if !ix.close(n.board.Key()) {
			continue // stale entry for a state reached again more cheaply
		}
		if n.board.IsSolved() {
			stats.Duration = time.Since(start)
			return reconstruct(n), stats, nil
		}

		stats.Expanded++
		if opts.MaxNodes > 0 && stats.Expanded > opts.MaxNodes {
			stats.Duration = time.Since(start)
			return nil, stats, ErrNodeBudget
		}
		if opts.ProgressEvery > 0 && stats.Expanded%opts.ProgressEvery == 0 {
			opts.Logger.Debug().
				Int("expanded", stats.Expanded).
				Int("frontier", fr.Len()).
				Int("visited", ix.size()).
				Uint32("depth", n.g).
				Msg("search progress")
		}

		g := n.g + 1
		for _, succ := range n.board.Successors() {
			stats.Generated++
			if !ix.admit(succ.Board.Key(), g) {
				stats.Deduped++
				continue
			}
			child := &node{board: succ.Board, move: succ.Move, parent: n, g: g}
			fr.push(child, g+estimate(succ.Board))
		}
		if fr.Len() > stats.MaxFrontier {
			stats.MaxFrontier = fr.Len()
		}
	}

	stats.Duration = time.Since(start)
	return nil, stats, ErrExhausted
}

// reconstruct walks parent pointers back to the root. Node depth equals
// g, so boards slot directly into place.
func reconstruct(n *node) *Solution {
	sol := &Solution{
		Boards: make([]engine.Board, n.g+1),
		Moves:  make([]engine.Move, n.g),
	}
	for cur := n; cur != nil; cur = cur.parent {
		sol.Boards[cur.g] = cur.board
		if cur.parent != nil {
			sol.Moves[cur.g-1] = cur.move
		}
	}
	return sol
}
