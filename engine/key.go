package engine

// Key returns a canonical byte-string over the exact board layout,
// suitable as a map key for visited-state deduplication. Columns and
// free cells are encoded in slot order with no reordering: moves are
// addressed by position, so positionally distinct boards are distinct
// states even when they are permutations of each other.
//
// Encoding: per column its packed cards then a 0xFE terminator, then
// one byte per free cell (0xFF locked, 0 empty, packed card otherwise),
// the joker flag, the three goal ranks, and a grouped-suit bitmask.
// Packed cards occupy 1..31, so the terminator is unambiguous.
func (b Board) Key() string {
	buf := make([]byte, 0, DeckSize+NumColumns+NumFreeCells+5)
	for _, col := range b.Columns {
		for _, c := range col {
			buf = append(buf, c.packed())
		}
		buf = append(buf, 0xFE)
	}
	for _, cell := range b.Free {
		switch {
		case cell.Locked:
			buf = append(buf, 0xFF)
		default:
			buf = append(buf, cell.Card.packed())
		}
	}
	if b.Joker {
		buf = append(buf, 1)
	} else {
		buf = append(buf, 0)
	}
	for _, s := range Suits {
		buf = append(buf, b.Goals[s])
	}
	var grouped byte
	for i, s := range Suits {
		if b.Grouped[s] {
			grouped |= 1 << i
		}
	}
	buf = append(buf, grouped)
	return string(buf)
}
