// Package game is the interactive terminal player. It wraps the engine
// in a bubbletea model: a cursor over cells and columns, two-step
// source/destination selection, and a hint key backed by the solver.
package game

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cardgrift/shenzhen/engine"
	"github.com/cardgrift/shenzhen/solver"
)

// Cursor positions index the free cells, then the goal piles, then the
// columns, left to right.
const (
	posFree      = 0
	posGoal      = posFree + engine.NumFreeCells
	posColumn    = posGoal + engine.NumSuits
	numPositions = posColumn + engine.NumColumns
)

const (
	hintBudget  = 200000
	hintTimeout = 10 * time.Second
)

type hintMsg struct {
	move engine.Move
	ok   bool
}

// Model is the bubbletea model for one interactive game.
type Model struct {
	board  engine.Board
	seed   int64
	moves  int
	cursor int
	src    int // selected source position, -1 when choosing a source
	count  int // cards grabbed when src is a column
	status string
	hint   bool
	won    bool
	keys   keyMap
	help   help.Model
}

// NewModel deals the seed and applies the opening forced moves.
func NewModel(seed int64) Model {
	return Model{
		board:  engine.Deal(seed).Automoves(),
		seed:   seed,
		cursor: posColumn,
		src:    -1,
		keys:   defaultKeyMap(),
		help:   help.New(),
	}
}

// Board returns the current position.
func (m Model) Board() engine.Board { return m.board }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case hintMsg:
		m.hint = false
		if msg.ok {
			m.status = "hint: " + msg.move.String()
		} else {
			m.status = "no winning line found from here"
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}
	if key.Matches(msg, m.keys.Redeal) {
		next := NewModel(m.seed)
		next.help = m.help
		return next, nil
	}
	if m.won {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Left):
		m.cursor = (m.cursor + numPositions - 1) % numPositions

	case key.Matches(msg, m.keys.Right):
		m.cursor = (m.cursor + 1) % numPositions

	case key.Matches(msg, m.keys.More):
		if max := m.grabLimit(); m.count < max {
			m.count++
		}

	case key.Matches(msg, m.keys.Fewer):
		if m.count > 1 {
			m.count--
		}

	case key.Matches(msg, m.keys.Cancel):
		m.src = -1
		m.status = ""

	case key.Matches(msg, m.keys.Select):
		return m.handleSelect(), nil

	case key.Matches(msg, m.keys.Group):
		m = m.groupDragons()

	case key.Matches(msg, m.keys.Hint):
		if !m.hint {
			m.hint = true
			m.status = "searching for a line..."
			return m, hintCmd(m.board)
		}

	default:
		if col := columnDigit(msg); col >= 0 {
			m.cursor = posColumn + col
		}
	}
	return m, nil
}

// columnDigit maps keys 1-8 to column indices, -1 otherwise.
func columnDigit(msg tea.KeyMsg) int {
	s := msg.String()
	if len(s) == 1 && s[0] >= '1' && s[0] <= '8' {
		return int(s[0] - '1')
	}
	return -1
}

func (m Model) handleSelect() Model {
	if m.src < 0 {
		return m.pickSource()
	}
	if m.cursor == m.src {
		m.src = -1
		m.status = ""
		return m
	}
	return m.placeAt(m.cursor)
}

func (m Model) pickSource() Model {
	switch {
	case m.cursor < posGoal:
		cell := m.board.Free[m.cursor]
		if cell.Locked || cell.Card.IsNone() {
			m.status = "nothing to pick up there"
			return m
		}
	case m.cursor < posColumn:
		m.status = "goal piles only receive cards"
		return m
	default:
		if len(m.board.Columns[m.cursor-posColumn]) == 0 {
			m.status = "nothing to pick up there"
			return m
		}
	}
	m.src = m.cursor
	m.count = m.grabLimit()
	m.status = ""
	return m
}

// grabLimit is the largest legal grab at the selected source: the
// movable run for a column, one card otherwise.
func (m Model) grabLimit() int {
	if m.src >= posColumn {
		return m.board.RunLength(m.src - posColumn)
	}
	return 1
}

func (m Model) placeAt(dst int) Model {
	mv, ok := m.moveFor(m.src, dst)
	if !ok {
		m.status = "cannot move there"
		return m
	}
	next, err := m.board.Apply(mv)
	if err != nil {
		m.status = "cannot move there"
		return m
	}
	m.board = next.Automoves()
	m.moves++
	m.src = -1
	m.status = ""
	m.won = m.board.IsSolved()
	return m
}

// moveFor translates a source/destination cursor pair into an engine
// move. Goal destinations ignore which pile the cursor sits on since
// the engine routes cards to their own suit.
func (m Model) moveFor(src, dst int) (engine.Move, bool) {
	switch {
	case src < posGoal: // free cell source
		switch {
		case dst < posGoal:
			return engine.Move{}, false
		case dst < posColumn:
			return engine.Move{Kind: engine.MoveFreeToGoal, From: src}, true
		default:
			return engine.Move{Kind: engine.MoveFreeToColumn, From: src, To: dst - posColumn}, true
		}
	case src >= posColumn: // column source
		from := src - posColumn
		switch {
		case dst < posGoal:
			return engine.Move{Kind: engine.MoveColumnToFree, From: from, To: dst}, true
		case dst < posColumn:
			return engine.Move{Kind: engine.MoveColumnToGoal, From: from}, true
		default:
			return engine.Move{Kind: engine.MoveColumnToColumn, From: from, To: dst - posColumn, Count: m.count}, true
		}
	}
	return engine.Move{}, false
}

// groupDragons applies the first available dragon grouping.
func (m Model) groupDragons() Model {
	for _, s := range engine.Suits {
		mv, ok := m.board.DragonGroupMove(s)
		if !ok {
			continue
		}
		next, err := m.board.Apply(mv)
		if err != nil {
			continue
		}
		m.board = next.Automoves()
		m.moves++
		m.src = -1
		m.status = ""
		m.won = m.board.IsSolved()
		return m
	}
	m.status = "no dragon set is ready"
	return m
}

func hintCmd(b engine.Board) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), hintTimeout)
		defer cancel()
		sol, _, err := solver.Solve(ctx, b, solver.Options{MaxNodes: hintBudget})
		if err != nil || len(sol.Moves) == 0 {
			return hintMsg{}
		}
		return hintMsg{move: sol.Moves[0], ok: true}
	}
}
