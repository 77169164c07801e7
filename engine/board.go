package engine

import (
	"errors"
	"fmt"
)

const (
	// NumColumns is the number of tableau columns.
	NumColumns = 8
	// NumFreeCells is the number of free cell slots.
	NumFreeCells = 3
)

// ErrIllegalMove is returned by Apply when a move violates a board
// legality rule. Wrapped errors carry the offending move.
var ErrIllegalMove = errors.New("illegal move")

// FreeCell is one of the three free cell slots: empty, holding a single
// card, or permanently locked after absorbing a dragon group.
type FreeCell struct {
	Card   Card
	Locked bool
}

// Board is an immutable snapshot of a game position. Apply and
// Automoves return new boards and never mutate the receiver; treat the
// exported fields as read-only.
type Board struct {
	Columns [NumColumns][]Card
	Free    [NumFreeCells]FreeCell
	Joker   bool               // joker cell filled, terminal once set
	Goals   [NumSuits]uint8    // highest rank placed per suit, 0 = empty
	Grouped [NumSuits]bool     // dragons grouped per suit, permanent
}

// Top returns the top card of a column, if any.
func (b Board) Top(col int) (Card, bool) {
	cards := b.Columns[col]
	if len(cards) == 0 {
		return Card{}, false
	}
	return cards[len(cards)-1], true
}

// GoalRank returns the highest rank placed on the goal pile of suit s.
func (b Board) GoalRank(s Suit) uint8 {
	return b.Goals[s]
}

// IsSolved reports whether the game is won: all goal piles at MaxRank
// and the joker placed. Free cell and dragon flag contents are
// irrelevant once the goals are complete.
func (b Board) IsSolved() bool {
	for _, s := range Suits {
		if b.Goals[s] < MaxRank {
			return false
		}
	}
	return b.Joker
}

// RunLength returns the length of the maximal movable run at the top of
// a column: the longest top suffix of number cards strictly descending
// with pairwise distinct suits. A non-number top card is a run of one.
func (b Board) RunLength(col int) int {
	cards := b.Columns[col]
	if len(cards) == 0 {
		return 0
	}
	n := 1
	for i := len(cards) - 1; i > 0 && canStack(cards[i-1], cards[i]); i-- {
		n++
	}
	return n
}

// CanPlace reports whether card may be placed on top of the given
// column: an empty column accepts any card, otherwise the column's top
// card must be a number one rank higher and of a different suit.
func (b Board) CanPlace(card Card, col int) bool {
	top, ok := b.Top(col)
	if !ok {
		return true
	}
	return canStack(top, card)
}

// autoSafeRank is the highest number card rank that may be promoted to
// a goal automatically. Promoting up to min(goal ranks)+2 can never
// strand a card of another suit that still needs a resting place.
func (b Board) autoSafeRank() uint8 {
	min := b.Goals[0]
	for _, r := range b.Goals[1:] {
		if r < min {
			min = r
		}
	}
	return min + 2
}

// CanAutoPromote reports whether card is eligible for automatic
// promotion to its goal pile from the current position.
func (b Board) CanAutoPromote(card Card) bool {
	return card.Kind == KindNumber &&
		b.Goals[card.Suit] == card.Rank-1 &&
		card.Rank <= b.autoSafeRank()
}

func (b *Board) autoEligible(card Card, safe uint8) bool {
	switch card.Kind {
	case KindJoker:
		return true
	case KindNumber:
		return b.Goals[card.Suit] == card.Rank-1 && card.Rank <= safe
	}
	return false
}

func (b *Board) autoConsume(card Card) {
	if card.Kind == KindJoker {
		b.Joker = true
		return
	}
	b.Goals[card.Suit] = card.Rank
}

// Automoves applies the forced-move closure: repeatedly promote the
// joker and any safely promotable number card from column tops and free
// cells until a fixed point is reached, and return the resulting board.
// The safe rank is recomputed after every sweep since each promotion
// can make further cards eligible.
func (b Board) Automoves() Board {
	next := b
	for changed := true; changed; {
		changed = false
		safe := next.autoSafeRank()
		for i := range next.Columns {
			col := next.Columns[i]
			if len(col) == 0 {
				continue
			}
			if top := col[len(col)-1]; next.autoEligible(top, safe) {
				next.autoConsume(top)
				next.Columns[i] = sliceWithout(col, 1)
				changed = true
			}
		}
		for i := range next.Free {
			cell := next.Free[i]
			if cell.Locked || cell.Card.IsNone() {
				continue
			}
			if next.autoEligible(cell.Card, safe) {
				next.autoConsume(cell.Card)
				next.Free[i] = FreeCell{}
				changed = true
			}
		}
	}
	return next
}

// Apply validates the move against the current position and returns the
// resulting board. The receiver is never modified; on failure the error
// wraps ErrIllegalMove.
func (b Board) Apply(m Move) (Board, error) {
	switch m.Kind {
	case MoveColumnToColumn:
		return b.applyColumnToColumn(m)
	case MoveColumnToFree:
		return b.applyColumnToFree(m)
	case MoveFreeToColumn:
		return b.applyFreeToColumn(m)
	case MoveColumnToGoal:
		return b.applyColumnToGoal(m)
	case MoveFreeToGoal:
		return b.applyFreeToGoal(m)
	case MoveGroupDragons:
		return b.applyGroupDragons(m)
	}
	return Board{}, fmt.Errorf("%w: unknown move kind %d", ErrIllegalMove, m.Kind)
}

func (b Board) applyColumnToColumn(m Move) (Board, error) {
	if !validColumn(m.From) || !validColumn(m.To) || m.From == m.To {
		return Board{}, fmt.Errorf("%w: %s", ErrIllegalMove, m)
	}
	if m.Count < 1 || m.Count > b.RunLength(m.From) {
		return Board{}, fmt.Errorf("%w: %s: not a movable run", ErrIllegalMove, m)
	}
	src := b.Columns[m.From]
	moved := src[len(src)-m.Count:]
	if dst := b.Columns[m.To]; len(dst) > 0 && !canStack(dst[len(dst)-1], moved[0]) {
		return Board{}, fmt.Errorf("%w: %s: destination does not accept %s", ErrIllegalMove, m, moved[0])
	}
	next := b
	next.Columns[m.From] = sliceWithout(src, m.Count)
	next.Columns[m.To] = sliceWith(b.Columns[m.To], moved...)
	return next, nil
}

func (b Board) applyColumnToFree(m Move) (Board, error) {
	if !validColumn(m.From) || !validFree(m.To) {
		return Board{}, fmt.Errorf("%w: %s", ErrIllegalMove, m)
	}
	top, ok := b.Top(m.From)
	if !ok {
		return Board{}, fmt.Errorf("%w: %s: source column empty", ErrIllegalMove, m)
	}
	if cell := b.Free[m.To]; cell.Locked || !cell.Card.IsNone() {
		return Board{}, fmt.Errorf("%w: %s: free cell unavailable", ErrIllegalMove, m)
	}
	next := b
	next.Columns[m.From] = sliceWithout(b.Columns[m.From], 1)
	next.Free[m.To] = FreeCell{Card: top}
	return next, nil
}

func (b Board) applyFreeToColumn(m Move) (Board, error) {
	if !validFree(m.From) || !validColumn(m.To) {
		return Board{}, fmt.Errorf("%w: %s", ErrIllegalMove, m)
	}
	cell := b.Free[m.From]
	if cell.Locked || cell.Card.IsNone() {
		return Board{}, fmt.Errorf("%w: %s: no movable card in free cell", ErrIllegalMove, m)
	}
	if !b.CanPlace(cell.Card, m.To) {
		return Board{}, fmt.Errorf("%w: %s: destination does not accept %s", ErrIllegalMove, m, cell.Card)
	}
	next := b
	next.Free[m.From] = FreeCell{}
	next.Columns[m.To] = sliceWith(b.Columns[m.To], cell.Card)
	return next, nil
}

func (b Board) applyColumnToGoal(m Move) (Board, error) {
	if !validColumn(m.From) {
		return Board{}, fmt.Errorf("%w: %s", ErrIllegalMove, m)
	}
	top, ok := b.Top(m.From)
	if !ok || !b.goalAccepts(top) {
		return Board{}, fmt.Errorf("%w: %s: goal does not accept top card", ErrIllegalMove, m)
	}
	next := b
	next.Columns[m.From] = sliceWithout(b.Columns[m.From], 1)
	next.Goals[top.Suit] = top.Rank
	return next, nil
}

func (b Board) applyFreeToGoal(m Move) (Board, error) {
	if !validFree(m.From) {
		return Board{}, fmt.Errorf("%w: %s", ErrIllegalMove, m)
	}
	cell := b.Free[m.From]
	if cell.Locked || !b.goalAccepts(cell.Card) {
		return Board{}, fmt.Errorf("%w: %s: goal does not accept free cell card", ErrIllegalMove, m)
	}
	next := b
	next.Free[m.From] = FreeCell{}
	next.Goals[cell.Card.Suit] = cell.Card.Rank
	return next, nil
}

func (b Board) applyGroupDragons(m Move) (Board, error) {
	if !validFree(m.To) || int(m.Suit) >= NumSuits {
		return Board{}, fmt.Errorf("%w: %s", ErrIllegalMove, m)
	}
	next := b
	removed := 0
	for i := range next.Columns {
		if top, ok := next.Top(i); ok && top == Dragon(m.Suit) {
			next.Columns[i] = sliceWithout(next.Columns[i], 1)
			removed++
		}
	}
	for i := range next.Free {
		if cell := next.Free[i]; !cell.Locked && cell.Card == Dragon(m.Suit) {
			next.Free[i] = FreeCell{}
			removed++
		}
	}
	if removed != DragonsPerSuit {
		return Board{}, fmt.Errorf("%w: %s: only %d dragons exposed", ErrIllegalMove, m, removed)
	}
	if cell := next.Free[m.To]; cell.Locked || !cell.Card.IsNone() {
		return Board{}, fmt.Errorf("%w: %s: free cell unavailable", ErrIllegalMove, m)
	}
	next.Free[m.To] = FreeCell{Locked: true}
	next.Grouped[m.Suit] = true
	return next, nil
}

// DragonGroupMove returns the concrete grouping move for suit s if all
// four dragons are exposed and a free cell can absorb them. Free cells
// currently holding one of the dragons are preferred as the target
// since they come free during the move.
func (b Board) DragonGroupMove(s Suit) (Move, bool) {
	exposed := 0
	for i := range b.Columns {
		if top, ok := b.Top(i); ok && top == Dragon(s) {
			exposed++
		}
	}
	dragonCell, emptyCell := -1, -1
	for i := range b.Free {
		cell := b.Free[i]
		if cell.Locked {
			continue
		}
		switch {
		case cell.Card == Dragon(s):
			exposed++
			if dragonCell < 0 {
				dragonCell = i
			}
		case cell.Card.IsNone():
			if emptyCell < 0 {
				emptyCell = i
			}
		}
	}
	if exposed != DragonsPerSuit {
		return Move{}, false
	}
	target := dragonCell
	if target < 0 {
		target = emptyCell
	}
	if target < 0 {
		return Move{}, false
	}
	return Move{Kind: MoveGroupDragons, Suit: s, To: target}, true
}

func (b Board) goalAccepts(card Card) bool {
	return card.Kind == KindNumber && b.Goals[card.Suit] == card.Rank-1
}

func validColumn(i int) bool { return i >= 0 && i < NumColumns }
func validFree(i int) bool   { return i >= 0 && i < NumFreeCells }

// sliceWithout returns a copy of cards with the top n removed. Copies
// keep boards value-independent: column slices are never shared for
// writing.
func sliceWithout(cards []Card, n int) []Card {
	out := make([]Card, len(cards)-n)
	copy(out, cards)
	return out
}

// sliceWith returns a copy of cards with add appended.
func sliceWith(cards []Card, add ...Card) []Card {
	out := make([]Card, 0, len(cards)+len(add))
	out = append(out, cards...)
	return append(out, add...)
}

// CheckDeck verifies the deck multiset invariant: every one of the 40
// cards is accounted for exactly once across columns, free cells, goal
// piles, the joker cell, and grouped dragons. Violations indicate a
// programming defect, never a legal game state.
func (b Board) CheckDeck() error {
	var want, have [32]int
	for _, c := range Deck() {
		want[c.packed()]++
	}
	for _, col := range b.Columns {
		for _, c := range col {
			have[c.packed()]++
		}
	}
	for _, cell := range b.Free {
		if !cell.Locked && !cell.Card.IsNone() {
			have[cell.Card.packed()]++
		}
	}
	if b.Joker {
		have[Joker().packed()]++
	}
	for _, s := range Suits {
		for rank := uint8(1); rank <= b.Goals[s]; rank++ {
			have[Number(s, rank).packed()]++
		}
		if b.Grouped[s] {
			have[Dragon(s).packed()] += DragonsPerSuit
		}
	}
	if want != have {
		for i := range want {
			if want[i] != have[i] {
				return fmt.Errorf("deck invariant violated: card %d present %d times, want %d", i, have[i], want[i])
			}
		}
	}
	return nil
}
