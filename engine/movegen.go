package engine

// Successor pairs a generated move with the board reached by applying
// it and then running the forced-move closure.
type Successor struct {
	Move  Move
	Board Board
}

// Successors enumerates the legal moves of a position in deterministic
// order and returns each with its closure-collapsed resulting board.
// The search treats one successor as one move regardless of how many
// forced promotions the closure triggered.
//
// Enumeration order: per source column left to right, column-to-column
// moves (longest run first, then shorter prefixes), then
// column-to-free-cell, then free-cell-to-column, then manual goal
// promotions, then dragon grouping per suit.
//
// As in classic free cell solvers, interchangeable destinations are
// collapsed: only the leftmost empty column, and only the leftmost
// empty free cell, are offered as targets. Goal moves for cards the
// closure would promote anyway are omitted; an ace always promotes
// automatically, so empty goal piles are never explicit targets here.
func (b Board) Successors() []Successor {
	moves := b.enumerate(true)
	out := make([]Successor, 0, len(moves))
	for _, m := range moves {
		next, err := b.Apply(m)
		if err != nil {
			continue
		}
		out = append(out, Successor{Move: m, Board: next.Automoves()})
	}
	return out
}

// LegalMoves enumerates every legal single move from the position, with
// no destination collapsing and no closure. Intended for interactive
// validation; the search uses Successors.
func (b Board) LegalMoves() []Move {
	return b.enumerate(false)
}

func (b Board) enumerate(prune bool) []Move {
	moves := make([]Move, 0, 32)

	firstEmptyCol := -1
	for j := range b.Columns {
		if len(b.Columns[j]) == 0 {
			firstEmptyCol = j
			break
		}
	}
	firstFree := -1
	for j := range b.Free {
		if !b.Free[j].Locked && b.Free[j].Card.IsNone() {
			firstFree = j
			break
		}
	}

	// Column to column, longest runs first.
	for i := range b.Columns {
		run := b.RunLength(i)
		if run == 0 {
			continue
		}
		src := b.Columns[i]
		for j := range b.Columns {
			if j == i {
				continue
			}
			if len(b.Columns[j]) == 0 {
				if prune && j != firstEmptyCol {
					continue
				}
				for count := run; count >= 1; count-- {
					moves = append(moves, Move{Kind: MoveColumnToColumn, From: i, To: j, Count: count})
				}
				continue
			}
			dstTop, _ := b.Top(j)
			for count := run; count >= 1; count-- {
				if canStack(dstTop, src[len(src)-count]) {
					moves = append(moves, Move{Kind: MoveColumnToColumn, From: i, To: j, Count: count})
					break // at most one run prefix fits a non-empty destination
				}
			}
		}
	}

	// Column to free cell.
	for i := range b.Columns {
		if len(b.Columns[i]) == 0 {
			continue
		}
		if prune {
			if firstFree >= 0 {
				moves = append(moves, Move{Kind: MoveColumnToFree, From: i, To: firstFree})
			}
			continue
		}
		for j := range b.Free {
			if !b.Free[j].Locked && b.Free[j].Card.IsNone() {
				moves = append(moves, Move{Kind: MoveColumnToFree, From: i, To: j})
			}
		}
	}

	// Free cell to column.
	for i := range b.Free {
		cell := b.Free[i]
		if cell.Locked || cell.Card.IsNone() {
			continue
		}
		for j := range b.Columns {
			if len(b.Columns[j]) == 0 && prune && j != firstEmptyCol {
				continue
			}
			if b.CanPlace(cell.Card, j) {
				moves = append(moves, Move{Kind: MoveFreeToColumn, From: i, To: j})
			}
		}
	}

	// Manual goal promotions, for cards above the auto-safe rank.
	for i := range b.Columns {
		top, ok := b.Top(i)
		if !ok || !b.goalAccepts(top) {
			continue
		}
		if prune && b.Goals[top.Suit] == 0 {
			continue
		}
		moves = append(moves, Move{Kind: MoveColumnToGoal, From: i, To: int(top.Suit)})
	}
	for i := range b.Free {
		cell := b.Free[i]
		if cell.Locked || !b.goalAccepts(cell.Card) {
			continue
		}
		if prune && b.Goals[cell.Card.Suit] == 0 {
			continue
		}
		moves = append(moves, Move{Kind: MoveFreeToGoal, From: i, To: int(cell.Card.Suit)})
	}

	// Dragon grouping.
	for _, s := range Suits {
		if m, ok := b.DragonGroupMove(s); ok {
			moves = append(moves, m)
		}
	}

	return moves
}
