package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
)

const (
	statusWinner = "Winner: "
	statusNext   = "Next player: "
	statusDraw   = "Draw"
)

// GameController is the only way to change a game. Anything shown to the
// player (turn, status, winning line) is derived from the viewed snapshot on
// every call and never stored.
type GameController struct {
	game *entity.Game
}

func NewGameController(game *entity.Game) *GameController {
	if game == nil {
		game = entity.NewGame()
	}

	return &GameController{game: game}
}

// Game returns the underlying state, e.g. for persisting it.
func (that *GameController) Game() *entity.Game {
	return that.game
}

// Play places the mark of the player to move at cell, on the viewed
// snapshot. Any snapshots after it are discarded first. It reports false
// without touching the state when the move is rejected.
func (that *GameController) Play(cell int) (bool, error) {
	game := that.game

	next, played, err := ApplyMove(game.CurrentBoard(), cell, game.Turn())
	if err != nil {
		return false, fmt.Errorf("invalid move: %w", err)
	}

	if !played {
		return false, nil
	}

	keep := game.CurrentMove + 1
	game.History = append(game.History[:keep:keep], next)
	game.Positions = append(game.Positions[:game.CurrentMove:game.CurrentMove], cell)
	game.CurrentMove = game.LastMove()

	return true, nil
}

// JumpTo views snapshot move. Later snapshots stay available.
func (that *GameController) JumpTo(move int) error {
	if move < 0 || move > that.game.LastMove() {
		return fmt.Errorf("%w: move %d of %d", apperror.ErrMoveOutOfRange, move, that.game.LastMove())
	}

	that.game.CurrentMove = move

	return nil
}

// ToggleOrder flips the move list between ascending and descending order.
func (that *GameController) ToggleOrder() {
	that.game.Ascending = !that.game.Ascending
}

// Restart replaces the game with an empty one, keeping the list order.
func (that *GameController) Restart() {
	ascending := that.game.Ascending
	*that.game = *entity.NewGame()
	that.game.Ascending = ascending
}

func (that *GameController) Board() entity.Board {
	return that.game.CurrentBoard()
}

func (that *GameController) Turn() entity.Mark {
	return that.game.Turn()
}

func (that *GameController) CurrentMove() int {
	return that.game.CurrentMove
}

func (that *GameController) Ascending() bool {
	return that.game.Ascending
}

// Moves returns the number of snapshots in the history.
func (that *GameController) Moves() int {
	return len(that.game.History)
}

// PositionAt returns the cell played to reach snapshot move. Snapshot 0 has
// no position and reports false.
func (that *GameController) PositionAt(move int) (int, bool) {
	if move <= 0 || move > len(that.game.Positions) {
		return 0, false
	}
	return that.game.Positions[move-1], true
}

// WinnerLine returns the winning line of the viewed snapshot, if any.
func (that *GameController) WinnerLine() ([3]int, bool) {
	result := Evaluate(that.Board())
	return result.Line, result.HasWinner()
}

func (that *GameController) Winner() entity.Mark {
	return Evaluate(that.Board()).Winner
}

func (that *GameController) Status() string {
	if winner := that.Winner(); !winner.IsEmpty() {
		return statusWinner + string(winner)
	}

	if IsDraw(that.Board()) {
		return statusDraw
	}

	return statusNext + string(that.Turn())
}
