package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
)

const (
	e = Empty
	x = PlayerMark
	o = OpponentMark
)

func mustBoard(t *testing.T, cells [9]Cell) Board {
	t.Helper()

	board, err := BoardFromCells(cells)
	require.NoError(t, err)

	return board
}

func TestBoard_LegalMoves(t *testing.T) {
	t.Run("Empty board lists all cells in row-major order", func(t *testing.T) {
		// Given: an empty board
		board := NewBoard()

		// When: listing legal moves
		moves := board.LegalMoves()

		// Then: all nine cells are returned row by row
		require.Len(t, moves, 9)
		assert.Equal(t, Position{Col: 0, Row: 0}, moves[0])
		assert.Equal(t, Position{Col: 1, Row: 0}, moves[1])
		assert.Equal(t, Position{Col: 0, Row: 1}, moves[3])
		assert.Equal(t, Position{Col: 2, Row: 2}, moves[8])
	})

	t.Run("Center move leaves eight moves without the center", func(t *testing.T) {
		// Given: an empty board where the human takes the center
		board := NewBoard()
		center := Position{Col: 1, Row: 1}
		require.NoError(t, board.Apply(center, PlayerMark))

		// When: listing legal moves
		moves := board.LegalMoves()

		// Then: eight moves remain and the center is not among them
		assert.Len(t, moves, 8)
		assert.NotContains(t, moves, center)
		assert.False(t, board.IsLegal(center))
	})

	t.Run("Legal moves and occupied cells always add up to nine", func(t *testing.T) {
		// Given: a board filled one cell at a time in scan order with alternating marks
		board := NewBoard()
		mark := PlayerMark

		for !board.IsFull() {
			// Then: the counts cover the whole grid at every step
			assert.Equal(t, 9, len(board.LegalMoves())+board.Occupied())

			require.NoError(t, board.Apply(board.LegalMoves()[0], mark))
			mark = mark.Opponent()
		}

		assert.Empty(t, board.LegalMoves())
		assert.Equal(t, 9, board.Occupied())
	})
}

func TestBoard_Apply(t *testing.T) {
	t.Run("Apply on an empty cell adds exactly one mark", func(t *testing.T) {
		// Given: a board with one move played
		board := mustBoard(t, [9]Cell{x, e, e, e, e, e, e, e, e})
		before := board.Occupied()

		// When: applying a mark to an empty cell
		err := board.Apply(Position{Col: 2, Row: 1}, OpponentMark)

		// Then: no error and one more occupied cell
		require.NoError(t, err)
		assert.Equal(t, before+1, board.Occupied())
		assert.Equal(t, OpponentMark, board.CellAt(Position{Col: 2, Row: 1}))
	})

	t.Run("Apply on an occupied cell fails with ErrIllegalMove", func(t *testing.T) {
		// Given: a board where (0,0) is taken
		board := mustBoard(t, [9]Cell{x, e, e, e, e, e, e, e, e})

		// When: either mark is placed on the same cell
		errX := board.Apply(Position{Col: 0, Row: 0}, PlayerMark)
		errO := board.Apply(Position{Col: 0, Row: 0}, OpponentMark)

		// Then: both fail and the board keeps the original mark
		require.ErrorIs(t, errX, apperror.ErrIllegalMove)
		require.ErrorIs(t, errO, apperror.ErrIllegalMove)
		assert.Equal(t, PlayerMark, board.CellAt(Position{Col: 0, Row: 0}))
		assert.Equal(t, 1, board.Occupied())
	})

	t.Run("Apply rejects the empty mark and out of bounds positions", func(t *testing.T) {
		// Given: an empty board
		board := NewBoard()

		// When: placing nothing, or placing outside the grid
		errEmpty := board.Apply(Position{Col: 0, Row: 0}, Empty)
		errBounds := board.Apply(Position{Col: 3, Row: 0}, PlayerMark)

		// Then: both are illegal
		assert.ErrorIs(t, errEmpty, apperror.ErrIllegalMove)
		assert.ErrorIs(t, errBounds, apperror.ErrIllegalMove)
		assert.Zero(t, board.Occupied())
	})
}

func TestBoard_Winner(t *testing.T) {
	t.Run("Empty board has no winner", func(t *testing.T) {
		board := NewBoard()

		assert.Equal(t, Empty, board.Winner())
		assert.False(t, board.IsTerminal())
	})

	t.Run("Top row of X wins for the player", func(t *testing.T) {
		// Given: X at (0,0), (1,0), (2,0)
		board := mustBoard(t, [9]Cell{
			x, x, x,
			o, o, e,
			e, e, e,
		})

		// Then: the player is the winner and the board is terminal
		assert.Equal(t, PlayerMark, board.Winner())
		assert.True(t, board.IsTerminal())
	})

	t.Run("Every line is detected as soon as it is completed", func(t *testing.T) {
		for _, line := range WinLines {
			// Given: an empty board
			board := NewBoard()

			// When: the first two cells of the line are filled
			require.NoError(t, board.Apply(line[0], OpponentMark))
			require.NoError(t, board.Apply(line[1], OpponentMark))

			// Then: there is no winner yet
			assert.Equal(t, Empty, board.Winner(), "line %v", line)

			// When: the third cell is filled
			require.NoError(t, board.Apply(line[2], OpponentMark))

			// Then: the mark wins immediately
			assert.Equal(t, OpponentMark, board.Winner(), "line %v", line)
		}
	})

	t.Run("Mixed line does not win", func(t *testing.T) {
		board := mustBoard(t, [9]Cell{
			x, o, x,
			e, e, e,
			e, e, e,
		})

		assert.Equal(t, Empty, board.Winner())
	})

	t.Run("Full board without a line is a terminal tie", func(t *testing.T) {
		// Given: a full board with no three in a row
		board := mustBoard(t, [9]Cell{
			x, o, x,
			x, o, o,
			o, x, x,
		})

		// Then: the game is over with no winner
		assert.True(t, board.IsTerminal())
		assert.Equal(t, Empty, board.Winner())
		assert.Empty(t, board.LegalMoves())
	})
}

func TestBoard_CopySemantics(t *testing.T) {
	// Given: a board and a copy of it
	board := NewBoard()
	require.NoError(t, board.Apply(Position{Col: 1, Row: 1}, PlayerMark))
	scratch := board

	// When: the copy is changed
	require.NoError(t, scratch.Apply(Position{Col: 0, Row: 0}, OpponentMark))

	// Then: the original is untouched
	assert.Equal(t, Empty, board.CellAt(Position{Col: 0, Row: 0}))
	assert.Equal(t, 1, board.Occupied())
	assert.Equal(t, 2, scratch.Occupied())
}

func TestBoard_QueriesOnReturnedValues(t *testing.T) {
	// Given: boards straight from constructors and accessors, never stored in a variable
	game := NewGame("g1", HardDifficulty)

	// Then: every query works on the returned value
	assert.Len(t, NewBoard().LegalMoves(), 9)
	assert.Zero(t, NewBoard().Occupied())
	assert.False(t, NewBoard().IsFull())
	assert.False(t, NewBoard().IsTerminal())
	assert.Equal(t, Empty, NewBoard().Winner())
	assert.Equal(t, Empty, NewBoard().CellAt(Position{Col: 1, Row: 1}))
	assert.True(t, NewBoard().IsLegal(Position{Col: 1, Row: 1}))
	assert.Equal(t, [9]Cell{}, NewBoard().Cells())
	assert.NoError(t, NewBoard().Validate())
	assert.Equal(t, PlayerMark, NewBoard().MarkToMove())
	assert.Equal(t, 9, gameBoard(game).count(Empty))
}

func gameBoard(game *Game) Board {
	return game.Board
}

func TestBoard_Validate(t *testing.T) {
	t.Run("Alternating play is valid", func(t *testing.T) {
		board := mustBoard(t, [9]Cell{x, o, x, e, e, e, e, e, e})

		assert.NoError(t, board.Validate())
	})

	t.Run("Too many O marks is invalid", func(t *testing.T) {
		board := mustBoard(t, [9]Cell{o, o, x, e, e, e, e, e, e})

		assert.ErrorIs(t, board.Validate(), apperror.ErrInvalidBoard)
	})
}

func TestBoard_JSON(t *testing.T) {
	t.Run("Board encodes as a row-major symbol list", func(t *testing.T) {
		board := mustBoard(t, [9]Cell{x, e, e, e, o, e, e, e, e})

		data, err := json.Marshal(board)

		require.NoError(t, err)
		assert.JSONEq(t, `["X","","","","O","","","",""]`, string(data))
	})

	t.Run("Unknown symbols are rejected", func(t *testing.T) {
		var board Board

		err := json.Unmarshal([]byte(`["Z","","","","","","","",""]`), &board)

		assert.ErrorIs(t, err, ErrUnknownCell)
	})
}

func TestNewPosition(t *testing.T) {
	t.Run("In bounds", func(t *testing.T) {
		pos, err := NewPosition(2, 0)

		require.NoError(t, err)
		assert.Equal(t, Position{Col: 2, Row: 0}, pos)
	})

	t.Run("Out of bounds", func(t *testing.T) {
		pos, err := NewPosition(-1, 3)

		require.ErrorIs(t, err, apperror.ErrOutOfBounds)
		assert.Equal(t, NoMove, pos)
	})
}
