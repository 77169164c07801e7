package engine

import "fmt"

// MoveKind discriminates the move variants.
type MoveKind uint8

const (
	// MoveColumnToColumn moves the top Count cards of column From onto
	// column To as a unit.
	MoveColumnToColumn MoveKind = iota
	// MoveColumnToFree moves the top card of column From into empty
	// free cell To.
	MoveColumnToFree
	// MoveFreeToColumn moves the card in free cell From onto column To.
	MoveFreeToColumn
	// MoveColumnToGoal promotes the top card of column From to the goal
	// pile of its suit.
	MoveColumnToGoal
	// MoveFreeToGoal promotes the card in free cell From to the goal
	// pile of its suit.
	MoveFreeToGoal
	// MoveGroupDragons collects the four exposed dragons of Suit into
	// free cell To, locking it for the rest of the game.
	MoveGroupDragons
)

// Move addresses a single action by position. Which fields are
// meaningful depends on Kind; unused fields are zero.
type Move struct {
	Kind  MoveKind
	From  int  // source column or free cell index
	To    int  // destination column, free cell, or goal index
	Count int  // run length for MoveColumnToColumn
	Suit  Suit // dragon suit for MoveGroupDragons
}

func (m Move) String() string {
	switch m.Kind {
	case MoveColumnToColumn:
		if m.Count > 1 {
			return fmt.Sprintf("col %d -> col %d (%d cards)", m.From, m.To, m.Count)
		}
		return fmt.Sprintf("col %d -> col %d", m.From, m.To)
	case MoveColumnToFree:
		return fmt.Sprintf("col %d -> free %d", m.From, m.To)
	case MoveFreeToColumn:
		return fmt.Sprintf("free %d -> col %d", m.From, m.To)
	case MoveColumnToGoal:
		return fmt.Sprintf("col %d -> goal", m.From)
	case MoveFreeToGoal:
		return fmt.Sprintf("free %d -> goal", m.From)
	case MoveGroupDragons:
		return fmt.Sprintf("group %s dragons -> free %d", m.Suit, m.To)
	}
	return fmt.Sprintf("move(kind=%d)", m.Kind)
}
