package game

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cardgrift/shenzhen/engine"
)

const cellWidth = 5

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	blackStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	greenStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	redStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	jokerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	emptyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	pickedStyle = lipgloss.NewStyle().Reverse(true)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	wonStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
)

func suitStyle(c engine.Card) lipgloss.Style {
	if c.Kind == engine.KindJoker {
		return jokerStyle
	}
	switch c.Suit {
	case engine.Green:
		return greenStyle
	case engine.Red:
		return redStyle
	}
	return blackStyle
}

func pad(s string) string {
	return fmt.Sprintf("%-*s", cellWidth, s)
}

func renderCard(c engine.Card, picked bool) string {
	text := pad(c.String())
	if picked {
		return pickedStyle.Render(text)
	}
	return suitStyle(c).Render(text)
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("shenzhen  seed %d  moves %d", m.seed, m.moves)))
	b.WriteString("\n\n")

	b.WriteString(m.topMarkers())
	b.WriteString("\n")
	b.WriteString(m.topRow())
	b.WriteString("\n\n")
	b.WriteString(m.columnMarkers())
	b.WriteString("\n")
	b.WriteString(m.columnGrid())
	b.WriteString("\n")

	switch {
	case m.won:
		b.WriteString(wonStyle.Render("you won!"))
	case m.status != "":
		b.WriteString(statusStyle.Render(m.status))
	}
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")

	return b.String()
}

func (m Model) marker(pos int) string {
	switch {
	case pos == m.cursor:
		return "v"
	case pos == m.src:
		return "*"
	}
	return " "
}

// topMarkers lays cursor marks over the free cells and goal piles. The
// joker cell between them is display-only and gets no mark.
func (m Model) topMarkers() string {
	var b strings.Builder
	for i := 0; i < engine.NumFreeCells; i++ {
		b.WriteString(pad(m.marker(posFree + i)))
	}
	b.WriteString(pad(" "))
	for i := 0; i < engine.NumSuits; i++ {
		b.WriteString(pad(m.marker(posGoal + i)))
	}
	return b.String()
}

func (m Model) topRow() string {
	var b strings.Builder
	for i, cell := range m.board.Free {
		switch {
		case cell.Locked:
			b.WriteString(emptyStyle.Render(pad("xxx")))
		case cell.Card.IsNone():
			b.WriteString(emptyStyle.Render(pad("__")))
		default:
			b.WriteString(renderCard(cell.Card, m.src == posFree+i))
		}
	}
	if m.board.Joker {
		b.WriteString(jokerStyle.Render(pad("J")))
	} else {
		b.WriteString(emptyStyle.Render(pad("_J")))
	}
	for _, s := range engine.Suits {
		if rank := m.board.GoalRank(s); rank > 0 {
			b.WriteString(renderCard(engine.Number(s, rank), false))
		} else {
			b.WriteString(emptyStyle.Render(pad("__")))
		}
	}
	return b.String()
}

func (m Model) columnMarkers() string {
	var b strings.Builder
	for i := 0; i < engine.NumColumns; i++ {
		b.WriteString(pad(m.marker(posColumn + i)))
	}
	return b.String()
}

func (m Model) columnGrid() string {
	rows := 0
	for _, col := range m.board.Columns {
		if len(col) > rows {
			rows = len(col)
		}
	}

	var b strings.Builder
	for i := 0; i < engine.NumColumns; i++ {
		b.WriteString(emptyStyle.Render(pad(fmt.Sprintf("%d", i+1))))
	}
	for row := 0; row < rows; row++ {
		b.WriteString("\n")
		for i, col := range m.board.Columns {
			if row >= len(col) {
				b.WriteString(pad(""))
				continue
			}
			picked := m.src == posColumn+i && row >= len(col)-m.count
			b.WriteString(renderCard(col[row], picked))
		}
	}
	return b.String()
}
