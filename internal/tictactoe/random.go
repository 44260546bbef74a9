package tictactoe

import (
	"math/rand/v2"

	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

// RandomMover plays a uniformly random legal move. It backs the easy difficulty.
type RandomMover struct {
	intN func(n int) int
}

func NewRandomMover() *RandomMover {
	return &RandomMover{intN: rand.IntN} //nolint: gosec // it's ok
}

// BestMove ignores mark and returns a random empty cell, or entity.NoMove.
func (that *RandomMover) BestMove(board entity.Board, _ entity.Cell) entity.Position {
	availableCells := board.LegalMoves()
	if len(availableCells) == 0 {
		return entity.NoMove
	}

	return availableCells[that.intN(len(availableCells))]
}
