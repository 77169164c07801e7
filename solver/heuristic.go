package solver

import "github.com/cardgrift/shenzhen/engine"

// estimate guesses how many moves remain to solve the board. Three
// parts: number cards not yet on a goal pile, dragon suits not yet
// grouped, and dragons trapped under dragons of their own suit (each
// needs a separating move before its suit can group).
//
// Automoves count as moves here, so the estimate is not an admissible
// lower bound; it still steers the search away from pointless moves.
func estimate(b engine.Board) uint32 {
	var h uint32
	for _, s := range engine.Suits {
		h += uint32(engine.MaxRank - b.GoalRank(s))
	}

	ungrouped := uint32(0)
	for _, s := range engine.Suits {
		if !b.Grouped[s] {
			ungrouped++
		}
	}
	h += ungrouped

	if ungrouped == 0 {
		return h
	}
	for _, col := range b.Columns {
		var dragons [engine.NumSuits]uint32
		for _, c := range col {
			if c.Kind == engine.KindDragon {
				dragons[c.Suit]++
			}
		}
		for _, n := range dragons {
			if n > 1 {
				h += n - 1
			}
		}
	}
	return h
}
