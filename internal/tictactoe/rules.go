package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
)

// WinCombos lists every winning line in the order they are checked:
// rows, then columns, then diagonals.
var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Result is the outcome of Evaluate. Winner is Empty when no line is complete.
type Result struct {
	Winner entity.Mark
	Line   [3]int
}

func (that Result) HasWinner() bool {
	return !that.Winner.IsEmpty()
}

// Evaluate returns the first complete line on the board.
func Evaluate(board entity.Board) Result {
	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if !a.IsEmpty() && a == b && b == c {
			return Result{Winner: a, Line: combo}
		}
	}

	return Result{}
}

// IsFull reports whether every cell holds a mark.
func IsFull(board entity.Board) bool {
	return board.Filled() == entity.CellCount
}

// IsDraw reports a full board without a winner.
func IsDraw(board entity.Board) bool {
	return IsFull(board) && !Evaluate(board).HasWinner()
}

// ApplyMove places mark at cell. The returned bool is false, and the board is
// returned unchanged, when the game is already won or the cell is taken.
func ApplyMove(board entity.Board, cell int, mark entity.Mark) (entity.Board, bool, error) {
	if err := validateCell(cell); err != nil {
		return board, false, err
	}

	if Evaluate(board).HasWinner() || !board[cell].IsEmpty() {
		return board, false, nil
	}

	next := board
	next[cell] = mark

	return next, true, nil
}

// Validate checks a game read back from storage: the history must replay
// alternating moves from an empty board, and no move may follow a win.
func Validate(game *entity.Game) error {
	if !game.Valid() {
		return apperror.ErrCorruptedGame
	}

	for move := 0; move < game.LastMove(); move++ {
		if Evaluate(game.History[move]).HasWinner() {
			return fmt.Errorf("%w: move %d follows a win", apperror.ErrCorruptedGame, move+1)
		}
	}

	return nil
}

func validateCell(cell int) error {
	if cell < 0 || cell >= entity.CellCount {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}
	return nil
}
