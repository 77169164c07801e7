package solver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardgrift/shenzhen/engine"
)

// endgameBoard is one move from a full cascade: freeing the green 2
// lets every remaining number card promote. Deck-complete fixture,
// black and red dragons already grouped.
func endgameBoard() engine.Board {
	var b engine.Board
	b.Joker = true
	b.Goals[engine.Red] = 9
	b.Goals[engine.Black] = 4
	b.Goals[engine.Green] = 1
	b.Grouped[engine.Black] = true
	b.Grouped[engine.Red] = true
	b.Free[0] = engine.FreeCell{Card: engine.Dragon(engine.Green)}
	b.Free[1] = engine.FreeCell{Locked: true}
	b.Free[2] = engine.FreeCell{Locked: true}

	cols := [engine.NumColumns][]engine.Card{
		1: {engine.Number(engine.Green, 4)},
		2: {engine.Number(engine.Black, 9), engine.Number(engine.Green, 8),
			engine.Number(engine.Black, 7), engine.Number(engine.Green, 6)},
		3: {engine.Number(engine.Black, 5), engine.Number(engine.Green, 3)},
		4: {engine.Dragon(engine.Green), engine.Number(engine.Green, 2), engine.Dragon(engine.Green)},
		5: {engine.Dragon(engine.Green)},
		7: {engine.Number(engine.Green, 9), engine.Number(engine.Black, 8),
			engine.Number(engine.Green, 7), engine.Number(engine.Black, 6),
			engine.Number(engine.Green, 5)},
	}
	b.Columns = cols
	return b
}

func TestSolveEndgameCascade(t *testing.T) {
	b := endgameBoard()
	require.NoError(t, b.CheckDeck())

	sol, stats, err := Solve(context.Background(), b, Options{})
	require.NoError(t, err)
	require.NotNil(t, sol)

	assert.Len(t, sol.Moves, 1, "uncovering the green 2 should cascade the rest")
	assert.Len(t, sol.Boards, 2)
	assert.True(t, sol.Boards[len(sol.Boards)-1].IsSolved())
	assert.NoError(t, sol.Boards[len(sol.Boards)-1].CheckDeck())
	assert.Greater(t, stats.Generated, 0)
}

func TestSolveRequiresDragonGrouping(t *testing.T) {
	var b engine.Board
	b.Joker = true
	b.Goals = [engine.NumSuits]uint8{engine.Black: 9, engine.Red: 9, engine.Green: 8}
	b.Grouped[engine.Black] = true
	b.Grouped[engine.Red] = true
	b.Free[0] = engine.FreeCell{Card: engine.Dragon(engine.Green)}
	b.Free[1] = engine.FreeCell{Locked: true}
	b.Free[2] = engine.FreeCell{Locked: true}
	b.Columns[0] = []engine.Card{
		engine.Number(engine.Green, 9), engine.Dragon(engine.Green), engine.Dragon(engine.Green),
	}
	b.Columns[1] = []engine.Card{engine.Dragon(engine.Green)}
	require.NoError(t, b.CheckDeck())

	sol, _, err := Solve(context.Background(), b, Options{})
	require.NoError(t, err)

	require.Len(t, sol.Moves, 2)
	assert.Equal(t, engine.MoveGroupDragons, sol.Moves[1].Kind)
	assert.True(t, sol.Boards[2].IsSolved())
}

// A board whose goals are already complete is solved before any search
// happens, whatever the free cells hold.
func TestSolveAlreadySolved(t *testing.T) {
	var b engine.Board
	b.Joker = true
	b.Goals = [engine.NumSuits]uint8{9, 9, 9}
	b.Free[0] = engine.FreeCell{Locked: true}
	b.Free[1] = engine.FreeCell{Locked: true}
	b.Free[2] = engine.FreeCell{Card: engine.Dragon(engine.Green)}

	sol, _, err := Solve(context.Background(), b, Options{})
	require.NoError(t, err)
	assert.Empty(t, sol.Moves)
	require.Len(t, sol.Boards, 1)
	assert.True(t, sol.Boards[0].IsSolved())
}

// With the joker absent from the fragment there is no solved state to
// reach; the frontier drains and the search reports exhaustion as a
// result, not a crash.
func TestSolveExhaustsUnsolvableFragment(t *testing.T) {
	var b engine.Board
	b.Goals = [engine.NumSuits]uint8{engine.Black: 9, engine.Red: 9, engine.Green: 7}
	b.Free[0] = engine.FreeCell{Locked: true}
	b.Free[1] = engine.FreeCell{Locked: true}
	b.Free[2] = engine.FreeCell{Locked: true}
	b.Columns[0] = []engine.Card{engine.Number(engine.Green, 8), engine.Number(engine.Green, 9)}

	sol, stats, err := Solve(context.Background(), b, Options{})
	assert.ErrorIs(t, err, ErrExhausted)
	assert.Nil(t, sol)
	assert.Greater(t, stats.Expanded, 0)
}

func TestSolveNodeBudget(t *testing.T) {
	b := engine.Deal(1)

	sol, _, err := Solve(context.Background(), b, Options{MaxNodes: 1})
	assert.ErrorIs(t, err, ErrNodeBudget)
	assert.Nil(t, sol)
}

func TestSolveCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sol, _, err := Solve(ctx, engine.Deal(1), Options{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, sol)
}

// Two runs over the same deal take identical paths: the frontier breaks
// ties by insertion order and nothing else in the search is random.
func TestSolveDeterministic(t *testing.T) {
	deal := engine.Deal(42)
	opts := Options{MaxNodes: 20000}

	first, _, err1 := Solve(context.Background(), deal, opts)
	second, _, err2 := Solve(context.Background(), deal, opts)

	require.Equal(t, err1, err2)
	if err1 != nil {
		return // budget ran out both times; that is still agreement
	}
	require.Equal(t, first.Moves, second.Moves)
	assert.Equal(t, len(first.Boards), len(second.Boards))
}

func TestEstimate(t *testing.T) {
	var solved engine.Board
	solved.Goals = [engine.NumSuits]uint8{9, 9, 9}
	solved.Grouped = [engine.NumSuits]bool{true, true, true}
	assert.Zero(t, estimate(solved))

	// 13 ungoaled cards, one ungrouped suit, one trapped dragon pair.
	b := endgameBoard()
	assert.Equal(t, uint32(13+1+1), estimate(b))
}
