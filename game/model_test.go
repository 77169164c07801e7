package game

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cardgrift/shenzhen/engine"
)

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "left":
			msg = tea.KeyMsg{Type: tea.KeyLeft}
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func modelWith(cols ...[]engine.Card) Model {
	m := NewModel(0)
	m.board = engine.Board{}
	for i, col := range cols {
		m.board.Columns[i] = col
	}
	return m
}

func TestCursorMovement(t *testing.T) {
	m := NewModel(1)
	if m.cursor != posColumn {
		t.Fatalf("Expected initial cursor at first column, got %d", m.cursor)
	}

	m = press(t, m, "right")
	if m.cursor != posColumn+1 {
		t.Errorf("Expected cursor %d, got %d", posColumn+1, m.cursor)
	}

	m = press(t, m, "left", "left")
	if m.cursor != posColumn-1 {
		t.Errorf("Expected cursor %d, got %d", posColumn-1, m.cursor)
	}
}

func TestCursorWrapsAround(t *testing.T) {
	m := NewModel(1)
	m.cursor = 0

	m = press(t, m, "left")
	if m.cursor != numPositions-1 {
		t.Errorf("Expected cursor to wrap to %d, got %d", numPositions-1, m.cursor)
	}

	m = press(t, m, "right")
	if m.cursor != 0 {
		t.Errorf("Expected cursor to wrap to 0, got %d", m.cursor)
	}
}

func TestDigitJumpsToColumn(t *testing.T) {
	m := press(t, NewModel(1), "5")
	if m.cursor != posColumn+4 {
		t.Errorf("Expected cursor at column 5, got position %d", m.cursor)
	}
}

func TestSelectAndMove(t *testing.T) {
	m := modelWith(
		[]engine.Card{engine.Number(engine.Black, 8)},
		[]engine.Card{engine.Number(engine.Green, 7)},
	)

	m = press(t, m, "2", "enter", "1", "enter")

	if len(m.board.Columns[0]) != 2 || len(m.board.Columns[1]) != 0 {
		t.Errorf("Expected the green 7 moved onto column 1, got %v / %v",
			m.board.Columns[0], m.board.Columns[1])
	}
	if m.moves != 1 {
		t.Errorf("Expected 1 move counted, got %d", m.moves)
	}
	if m.src != -1 {
		t.Errorf("Expected selection cleared, got src %d", m.src)
	}
}

func TestCancelSelection(t *testing.T) {
	m := modelWith([]engine.Card{engine.Number(engine.Black, 8)})

	m = press(t, m, "1", "enter")
	if m.src != posColumn {
		t.Fatalf("Expected column 1 selected, got src %d", m.src)
	}

	m = press(t, m, "esc")
	if m.src != -1 {
		t.Errorf("Expected selection cancelled, got src %d", m.src)
	}
}

func TestReselectingSourceCancels(t *testing.T) {
	m := modelWith([]engine.Card{engine.Number(engine.Black, 8)})

	m = press(t, m, "1", "enter", "enter")
	if m.src != -1 {
		t.Errorf("Expected selection cancelled, got src %d", m.src)
	}
}

func TestIllegalMoveKeepsBoard(t *testing.T) {
	m := modelWith(
		[]engine.Card{engine.Number(engine.Black, 8)},
		[]engine.Card{engine.Number(engine.Black, 7)},
	)
	before := m.board.Key()

	m = press(t, m, "2", "enter", "1", "enter")

	if m.board.Key() != before {
		t.Error("Expected board unchanged after illegal move")
	}
	if m.moves != 0 {
		t.Errorf("Expected 0 moves counted, got %d", m.moves)
	}
	if m.status == "" {
		t.Error("Expected a status message after illegal move")
	}
}

func TestGrabCountAdjustment(t *testing.T) {
	m := modelWith([]engine.Card{
		engine.Number(engine.Black, 8),
		engine.Number(engine.Green, 7),
		engine.Number(engine.Red, 6),
	})

	m = press(t, m, "1", "enter")
	if m.count != 3 {
		t.Fatalf("Expected full run of 3 grabbed, got %d", m.count)
	}

	m = press(t, m, "down", "3", "enter")
	if len(m.board.Columns[0]) != 1 || len(m.board.Columns[2]) != 2 {
		t.Errorf("Expected 2 cards moved to column 3, got %v / %v",
			m.board.Columns[0], m.board.Columns[2])
	}
}

func TestGrabCountClamped(t *testing.T) {
	m := modelWith([]engine.Card{
		engine.Number(engine.Black, 8),
		engine.Number(engine.Green, 7),
	})

	m = press(t, m, "1", "enter", "up", "up")
	if m.count != 2 {
		t.Errorf("Expected grab clamped to run length 2, got %d", m.count)
	}

	m = press(t, m, "down", "down", "down")
	if m.count != 1 {
		t.Errorf("Expected grab clamped to 1, got %d", m.count)
	}
}

func TestGroupDragonsKey(t *testing.T) {
	m := modelWith(
		[]engine.Card{engine.Dragon(engine.Green)},
		[]engine.Card{engine.Dragon(engine.Green)},
		[]engine.Card{engine.Dragon(engine.Green)},
		[]engine.Card{engine.Dragon(engine.Green)},
	)

	m = press(t, m, "g")

	if !m.board.Grouped[engine.Green] {
		t.Error("Expected green dragons grouped")
	}
	if !m.board.Free[0].Locked {
		t.Error("Expected a locked free cell after grouping")
	}
	if m.moves != 1 {
		t.Errorf("Expected 1 move counted, got %d", m.moves)
	}
}

func TestGroupDragonsKeyWithNothingReady(t *testing.T) {
	m := modelWith([]engine.Card{engine.Dragon(engine.Green)})

	m = press(t, m, "g")

	if m.board.Grouped[engine.Green] {
		t.Error("Expected no grouping with only one dragon exposed")
	}
	if m.status == "" {
		t.Error("Expected a status message")
	}
}

func TestMoveToGoalWins(t *testing.T) {
	m := modelWith([]engine.Card{engine.Number(engine.Red, 9)})
	m.board.Joker = true
	m.board.Goals = [engine.NumSuits]uint8{9, 9, 8}

	m = press(t, m, "1", "enter", "left", "enter")

	if !m.won {
		t.Error("Expected a won game after the final promotion")
	}
	if m.board.GoalRank(engine.Red) != 9 {
		t.Errorf("Expected red goal at 9, got %d", m.board.GoalRank(engine.Red))
	}
}

func TestFreeCellRoundTrip(t *testing.T) {
	m := modelWith([]engine.Card{
		engine.Number(engine.Black, 8),
		engine.Number(engine.Red, 3),
	})

	m = press(t, m, "1", "enter")
	m.cursor = posFree
	m = press(t, m, "enter")
	if m.board.Free[0].Card != engine.Number(engine.Red, 3) {
		t.Fatalf("Expected red 3 in free cell 0, got %s", m.board.Free[0].Card)
	}

	m.cursor = posFree
	m = press(t, m, "enter", "2", "enter")
	if len(m.board.Columns[1]) != 1 {
		t.Errorf("Expected red 3 placed in column 2, got %v", m.board.Columns[1])
	}
}

func TestHintMessageUpdatesStatus(t *testing.T) {
	m := NewModel(1)
	m.hint = true

	next, _ := m.Update(hintMsg{move: engine.Move{Kind: engine.MoveColumnToFree, From: 2}, ok: true})
	m = next.(Model)

	if m.hint {
		t.Error("Expected hint flag cleared")
	}
	if !strings.Contains(m.status, "hint:") {
		t.Errorf("Expected a hint status, got %q", m.status)
	}
}

func TestViewRendersBoard(t *testing.T) {
	m := NewModel(7)

	view := m.View()
	if !strings.Contains(view, "seed 7") {
		t.Error("Expected the seed in the header")
	}
	for i := 1; i <= engine.NumColumns; i++ {
		if !strings.Contains(view, string(rune('0'+i))) {
			t.Errorf("Expected column label %d in view", i)
		}
	}
}
