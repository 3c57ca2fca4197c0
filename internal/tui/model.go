// Package tui is a terminal front end for a local game.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
	"github.com/rocketscienceinc/tictactoe-history/internal/presenter"
	"github.com/rocketscienceinc/tictactoe-history/internal/tictactoe"
)

const (
	help         = "arrows/hjkl move • enter play • 1-9 play cell • [ ] step history • g/G start/end • s order • r restart • q quit"
	finishedHelp = "game over • [ ] step history • g/G start/end • s order • r restart • q quit"
)

var (
	cellStyle = lipgloss.NewStyle().
			Width(5).
			Align(lipgloss.Center).
			Border(lipgloss.NormalBorder())

	cursorStyle = cellStyle.Copy().
			BorderForeground(lipgloss.Color("205"))

	highlightStyle = cellStyle.Copy().
			Bold(true).
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("220"))

	statusStyle  = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	currentStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1)
	panelStyle   = lipgloss.NewStyle().MarginLeft(4)
)

type Model struct {
	game   *tictactoe.GameController
	cursor int
}

func New(game *tictactoe.GameController) Model {
	return Model{
		game:   game,
		cursor: entity.CellCount / 2,
	}
}

func (that Model) Init() tea.Cmd {
	return nil
}

func (that Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return that, nil
	}

	switch key := key.String(); key {
	case "ctrl+c", "q":
		return that, tea.Quit
	case "up", "k":
		that.moveCursor(-entity.BoardSize, 0)
	case "down", "j":
		that.moveCursor(entity.BoardSize, 0)
	case "left", "h":
		that.moveCursor(0, -1)
	case "right", "l":
		that.moveCursor(0, 1)
	case "enter", " ":
		that.play(that.cursor)
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		that.cursor = int(key[0] - '1')
		that.play(that.cursor)
	case "[":
		that.jump(that.game.CurrentMove() - 1)
	case "]":
		that.jump(that.game.CurrentMove() + 1)
	case "g":
		that.jump(0)
	case "G":
		that.jump(that.game.Moves() - 1)
	case "s":
		that.game.ToggleOrder()
	case "r":
		that.game.Restart()
	}

	return that, nil
}

// moveCursor shifts the cursor, staying inside the board.
func (that *Model) moveCursor(rowStep, colStep int) {
	next := that.cursor + rowStep
	if next < 0 || next >= entity.CellCount {
		return
	}

	col := next%entity.BoardSize + colStep
	if col < 0 || col >= entity.BoardSize {
		return
	}

	that.cursor = next + colStep
}

// Rejected moves are no-ops and cell is always on the board.
func (that *Model) play(cell int) {
	_, _ = that.game.Play(cell)
}

func (that *Model) jump(move int) {
	if move < 0 || move >= that.game.Moves() {
		return
	}
	_ = that.game.JumpTo(move)
}

func (that Model) View() string {
	view := presenter.Build(that.game)

	rows := make([]string, 0, entity.BoardSize)
	for _, row := range view.Rows {
		cells := make([]string, 0, entity.BoardSize)
		for _, cell := range row {
			cells = append(cells, that.renderCell(cell))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	board := lipgloss.JoinVertical(lipgloss.Left,
		statusStyle.Render(view.Status),
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)

	moves := make([]string, 0, len(view.Moves)+1)
	moves = append(moves, fmt.Sprintf("Order: %s", view.OrderLabel))
	for _, move := range view.Moves {
		line := fmt.Sprintf("%d. %s", move.Number+1, move.Description)
		if move.Current {
			line = currentStyle.Render(line)
		}
		moves = append(moves, line)
	}

	keys := help
	if view.Finished {
		keys = finishedHelp
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, board, panelStyle.Render(strings.Join(moves, "\n"))),
		helpStyle.Render(keys),
	) + "\n"
}

func (that Model) renderCell(cell presenter.Cell) string {
	symbol := cell.Symbol
	if symbol == "" {
		symbol = " "
	}

	switch {
	case cell.Highlight:
		return highlightStyle.Render(symbol)
	case cell.Index == that.cursor:
		return cursorStyle.Render(symbol)
	default:
		return cellStyle.Render(symbol)
	}
}
