// Package presenter turns a game into the values both the web page and the
// terminal UI render: cells, status line and the move list.
package presenter

import (
	"fmt"
	"sort"

	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
)

const (
	labelAscending  = "Ascending"
	labelDescending = "Descending"
)

type game interface {
	Board() entity.Board
	Status() string
	WinnerLine() ([3]int, bool)
	CurrentMove() int
	Moves() int
	PositionAt(move int) (int, bool)
	Ascending() bool
}

type Cell struct {
	Index     int
	Symbol    string
	Highlight bool
	Playable  bool
}

type Move struct {
	Number      int
	Description string
	Current     bool
}

type View struct {
	Rows       [entity.BoardSize][entity.BoardSize]Cell
	Status     string
	Moves      []Move
	Ascending  bool
	OrderLabel string
	// Finished is set when the viewed board is won or full.
	Finished bool
}

func Build(g game) View {
	board := g.Board()
	line, won := g.WinnerLine()

	view := View{
		Status:     g.Status(),
		Moves:      moveList(g),
		Ascending:  g.Ascending(),
		OrderLabel: orderLabel(g.Ascending()),
		Finished:   won || board.Filled() == entity.CellCount,
	}

	for index, mark := range board {
		view.Rows[index/entity.BoardSize][index%entity.BoardSize] = Cell{
			Index:     index,
			Symbol:    string(mark),
			Highlight: won && onLine(index, line),
			Playable:  !won && mark.IsEmpty(),
		}
	}

	return view
}

func moveList(g game) []Move {
	moves := make([]Move, 0, g.Moves())

	for number := 0; number < g.Moves(); number++ {
		moves = append(moves, Move{
			Number:      number,
			Description: describe(g, number),
			Current:     number == g.CurrentMove(),
		})
	}

	// descending means sorted by move number, newest first
	if !g.Ascending() {
		sort.Slice(moves, func(i, j int) bool {
			return moves[i].Number > moves[j].Number
		})
	}

	return moves
}

func describe(g game, number int) string {
	cell, ok := g.PositionAt(number)

	if number == g.CurrentMove() {
		if !ok {
			return fmt.Sprintf("You are at move #%d", number)
		}
		return fmt.Sprintf("You are at move #%d %s", number, position(cell))
	}

	if !ok {
		return "Go to game start"
	}

	return fmt.Sprintf("Go to move #%d %s", number, position(cell))
}

func position(cell int) string {
	row, col := entity.Position(cell)
	return fmt.Sprintf("(%d,%d)", row, col)
}

func orderLabel(ascending bool) string {
	if ascending {
		return labelAscending
	}
	return labelDescending
}

func onLine(index int, line [3]int) bool {
	for _, cell := range line {
		if cell == index {
			return true
		}
	}
	return false
}
