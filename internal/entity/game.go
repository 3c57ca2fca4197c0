package entity

const (
	PlayerX Mark = "X"
	PlayerO Mark = "O"

	Empty Mark = ""
)

const BoardSize = 3

const CellCount = BoardSize * BoardSize

// Mark is the content of a board cell: PlayerX, PlayerO or Empty.
type Mark string

func (that Mark) IsEmpty() bool {
	return that == Empty
}

// MarkFor returns the mark placed by the given move; X plays move 0.
func MarkFor(move int) Mark {
	if move%2 == 0 {
		return PlayerX
	}
	return PlayerO
}

// Board is a row-major 3x3 grid: index / 3 is the row, index % 3 the column.
type Board [CellCount]Mark

// Filled returns the number of non-empty cells.
func (that Board) Filled() int {
	count := 0
	for _, cell := range that {
		if !cell.IsEmpty() {
			count++
		}
	}
	return count
}

// Position converts a cell index into a 1-indexed (row, column) pair.
func Position(cell int) (int, int) {
	return cell/BoardSize + 1, cell%BoardSize + 1
}

// Game is the state holder of one tic-tac-toe session.
//
// History[0] is the empty board and History[k] is History[k-1] plus the mark
// placed at Positions[k-1]. CurrentMove selects the viewed snapshot and,
// through its parity, whose turn it is.
type Game struct {
	History     []Board `json:"history"`
	Positions   []int   `json:"positions"`
	CurrentMove int     `json:"current_move"`
	Ascending   bool    `json:"ascending"`
}

func NewGame() *Game {
	return &Game{
		History:     []Board{{}},
		Positions:   []int{},
		CurrentMove: 0,
		Ascending:   true,
	}
}

// CurrentBoard returns the snapshot selected by CurrentMove.
func (that *Game) CurrentBoard() Board {
	return that.History[that.CurrentMove]
}

// LastMove is the index of the latest snapshot.
func (that *Game) LastMove() int {
	return len(that.History) - 1
}

// Turn returns the mark that plays next from the viewed snapshot.
func (that *Game) Turn() Mark {
	return MarkFor(that.CurrentMove)
}

// Valid reports whether the history is a replay of alternating moves from an
// empty board. Win rules are not checked here, see tictactoe.Validate.
func (that *Game) Valid() bool {
	if len(that.History) == 0 || len(that.History) != len(that.Positions)+1 {
		return false
	}

	if that.CurrentMove < 0 || that.CurrentMove > that.LastMove() {
		return false
	}

	if that.History[0].Filled() != 0 {
		return false
	}

	for k := 1; k < len(that.History); k++ {
		prev, next := that.History[k-1], that.History[k]
		cell := that.Positions[k-1]
		if cell < 0 || cell >= CellCount || !prev[cell].IsEmpty() || next[cell] != MarkFor(k-1) {
			return false
		}

		prev[cell] = next[cell]
		if prev != next {
			return false
		}
	}

	return true
}
