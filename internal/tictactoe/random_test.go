package tictactoe

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

func TestRandomMover_BestMove(t *testing.T) {
	t.Run("Picks a legal move", func(t *testing.T) {
		// Given: a board with a few cells taken
		board := mustBoard(t, [9]entity.Cell{x, o, x, e, x, e, e, e, o})
		mover := NewRandomMover()

		for range 50 {
			// When: the mover picks
			move := mover.BestMove(board, entity.OpponentMark)

			// Then: the cell is free
			assert.True(t, board.IsLegal(move), "move %s", move)
		}
	})

	t.Run("Index comes from the random source", func(t *testing.T) {
		board := mustBoard(t, [9]entity.Cell{x, e, e, e, e, e, e, e, e})
		mover := &RandomMover{intN: func(n int) int { return n - 1 }}

		assert.Equal(t, entity.Position{Col: 2, Row: 2}, mover.BestMove(board, entity.OpponentMark))
	})

	t.Run("Full board returns NoMove", func(t *testing.T) {
		board := mustBoard(t, [9]entity.Cell{x, o, x, x, o, o, o, x, x})

		assert.Equal(t, entity.NoMove, NewRandomMover().BestMove(board, entity.OpponentMark))
	})
}
