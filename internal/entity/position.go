package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
)

const BoardSize = 3

// NoMove is returned by move pickers when the board has no empty cell.
var NoMove = Position{Col: -1, Row: -1}

// Position is a column/row coordinate on the board.
type Position struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

// NewPosition returns a position checked against the board bounds.
func NewPosition(col, row int) (Position, error) {
	pos := Position{Col: col, Row: row}
	if !pos.InBounds() {
		return NoMove, fmt.Errorf("%w: %s", apperror.ErrOutOfBounds, pos)
	}

	return pos, nil
}

func (that Position) InBounds() bool {
	return that.Col >= 0 && that.Col < BoardSize && that.Row >= 0 && that.Row < BoardSize
}

func (that Position) String() string {
	return fmt.Sprintf("(%d,%d)", that.Col, that.Row)
}
