package engine

import (
	"math/rand"
	"time"
)

const columnDealSize = DeckSize / NumColumns

// Deal returns the initial board for the given seed: the full deck
// shuffled with a seed-keyed generator and dealt into eight columns of
// five. Pure function of the seed; the same seed always produces the
// same board. Callers normally run Automoves on the result before
// playing or searching.
// RandomSeed returns a deal seed derived from the clock, for casual
// play when reproducibility does not matter.
func RandomSeed() int64 {
	return time.Now().UnixNano()
}

func Deal(seed int64) Board {
	deck := Deck()
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})

	var b Board
	for i := range b.Columns {
		b.Columns[i] = sliceWith(nil, deck[i*columnDealSize:(i+1)*columnDealSize]...)
	}
	return b
}
