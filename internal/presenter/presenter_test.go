package presenter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
	"github.com/rocketscienceinc/tictactoe-history/internal/tictactoe"
)

func newController(t *testing.T, plays ...int) *tictactoe.GameController {
	t.Helper()

	controller := tictactoe.NewGameController(entity.NewGame())
	for _, cell := range plays {
		played, err := controller.Play(cell)
		require.NoError(t, err)
		require.True(t, played)
	}

	return controller
}

func descriptions(moves []Move) []string {
	result := make([]string, 0, len(moves))
	for _, move := range moves {
		result = append(result, move.Description)
	}
	return result
}

func cells(view View) []Cell {
	result := make([]Cell, 0, entity.CellCount)
	for _, row := range view.Rows {
		result = append(result, row[:]...)
	}
	return result
}

func TestBuild(t *testing.T) {
	t.Run("Empty game", func(t *testing.T) {
		// Given: a new game
		controller := newController(t)

		// When: building the view
		view := Build(controller)

		// Then: every cell is playable and the list holds the start only
		assert.Equal(t, "Next player: X", view.Status)
		assert.Equal(t, []string{"You are at move #0"}, descriptions(view.Moves))
		assert.Equal(t, "Ascending", view.OrderLabel)
		assert.False(t, view.Finished)

		all := cells(view)
		require.Len(t, all, entity.CellCount)
		for index, cell := range all {
			assert.Equal(t, index, cell.Index)
			assert.Empty(t, cell.Symbol)
			assert.True(t, cell.Playable)
			assert.False(t, cell.Highlight)
		}
	})

	t.Run("Move list shows 1-indexed positions", func(t *testing.T) {
		// Given: X at (1,1), O at (2,2), X at (3,3)
		controller := newController(t, 0, 4, 8)

		// When: building the view
		view := Build(controller)

		// Then: the list describes each move and marks the current one
		assert.Equal(t, []string{
			"Go to game start",
			"Go to move #1 (1,1)",
			"Go to move #2 (2,2)",
			"You are at move #3 (3,3)",
		}, descriptions(view.Moves))
		assert.True(t, view.Moves[3].Current)
		assert.False(t, view.Moves[0].Current)
	})

	t.Run("Descending order sorts by move number", func(t *testing.T) {
		// Given: two moves, viewed at the start, in descending order
		controller := newController(t, 2, 6)
		require.NoError(t, controller.JumpTo(0))
		controller.ToggleOrder()

		// When: building the view
		view := Build(controller)

		// Then: the newest move comes first
		assert.Equal(t, []string{
			"Go to move #2 (3,1)",
			"Go to move #1 (1,3)",
			"You are at move #0",
		}, descriptions(view.Moves))
		assert.Equal(t, "Descending", view.OrderLabel)
		assert.False(t, view.Ascending)
	})

	t.Run("Winning line is highlighted and nothing is playable", func(t *testing.T) {
		// Given: X won on the main diagonal
		controller := newController(t, 0, 1, 4, 2, 8)

		// When: building the view
		view := Build(controller)

		// Then: the diagonal is highlighted
		assert.Equal(t, "Winner: X", view.Status)
		assert.True(t, view.Finished)
		for _, cell := range cells(view) {
			highlighted := cell.Index == 0 || cell.Index == 4 || cell.Index == 8
			assert.Equal(t, highlighted, cell.Highlight, "cell %d", cell.Index)
			assert.False(t, cell.Playable, "cell %d", cell.Index)
		}
	})

	t.Run("Highlight disappears after jumping back", func(t *testing.T) {
		// Given: X won, then the player jumped back one move
		controller := newController(t, 0, 1, 4, 2, 8)
		require.True(t, Build(controller).Finished)
		require.NoError(t, controller.JumpTo(4))

		// When: building the view
		view := Build(controller)

		// Then: no cell is highlighted and empty cells are playable again
		for _, cell := range cells(view) {
			assert.False(t, cell.Highlight, "cell %d", cell.Index)
		}
		assert.Equal(t, "Next player: X", view.Status)
		assert.False(t, view.Finished)
		assert.True(t, view.Rows[2][2].Playable)
		assert.Equal(t, "X", view.Rows[0][0].Symbol)
		assert.False(t, view.Rows[0][0].Playable)
	})

	t.Run("Draw", func(t *testing.T) {
		// Given: a full board without a line
		controller := newController(t, 0, 1, 2, 4, 3, 5, 7, 6, 8)

		// When: building the view
		view := Build(controller)

		// Then: the status is a draw
		assert.Equal(t, "Draw", view.Status)
		assert.True(t, view.Finished)
	})
}
