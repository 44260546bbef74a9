package entity

import (
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
)

const cellCount = BoardSize * BoardSize

// WinLines holds the eight winning lines: columns, rows, then the two diagonals.
var WinLines = [8][BoardSize]Position{
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{0, 2}, {1, 1}, {2, 0}},
}

// Board is a 3x3 grid. It is a plain value: assigning or passing a Board copies it.
type Board struct {
	cells [BoardSize][BoardSize]Cell
}

func NewBoard() Board {
	return Board{}
}

// BoardFromCells builds a board from a row-major cell list.
func BoardFromCells(cells [cellCount]Cell) (Board, error) {
	var board Board

	for i, cell := range cells {
		if cell > OpponentMark {
			return Board{}, fmt.Errorf("%w: cell %d holds %d", apperror.ErrInvalidBoard, i, cell)
		}

		board.cells[i/BoardSize][i%BoardSize] = cell
	}

	return board, nil
}

// Cells returns the board contents in row-major order.
func (that Board) Cells() [cellCount]Cell {
	var cells [cellCount]Cell

	for row := range BoardSize {
		for col := range BoardSize {
			cells[row*BoardSize+col] = that.cells[row][col]
		}
	}

	return cells
}

func (that Board) CellAt(pos Position) Cell {
	if !pos.InBounds() {
		return Empty
	}

	return that.cells[pos.Row][pos.Col]
}

func (that Board) IsLegal(pos Position) bool {
	return pos.InBounds() && that.cells[pos.Row][pos.Col] == Empty
}

// LegalMoves lists the empty cells row by row, left to right within a row.
func (that Board) LegalMoves() []Position {
	moves := make([]Position, 0, cellCount)

	for row := range BoardSize {
		for col := range BoardSize {
			if that.cells[row][col] == Empty {
				moves = append(moves, Position{Col: col, Row: row})
			}
		}
	}

	return moves
}

// Apply writes mark into an empty cell. Any error here means the caller broke the
// contract of only playing positions reported legal.
func (that *Board) Apply(pos Position, mark Cell) error {
	if !mark.IsMark() {
		return fmt.Errorf("%w: cannot place %q at %s", apperror.ErrIllegalMove, mark, pos)
	}

	if !pos.InBounds() {
		return fmt.Errorf("%w: %s is outside the board", apperror.ErrIllegalMove, pos)
	}

	if that.cells[pos.Row][pos.Col] != Empty {
		return fmt.Errorf("%w: %s is occupied by %s", apperror.ErrIllegalMove, pos, that.cells[pos.Row][pos.Col])
	}

	that.cells[pos.Row][pos.Col] = mark

	return nil
}

// Winner returns the mark owning the first complete line, or Empty.
func (that Board) Winner() Cell {
	for _, line := range WinLines {
		a, b, c := that.CellAt(line[0]), that.CellAt(line[1]), that.CellAt(line[2])
		if a != Empty && a == b && b == c {
			return a
		}
	}

	return Empty
}

func (that Board) IsFull() bool {
	return that.Occupied() == cellCount
}

func (that Board) IsTerminal() bool {
	return that.IsFull() || that.Winner() != Empty
}

func (that Board) Occupied() int {
	occupied := 0

	for row := range BoardSize {
		for col := range BoardSize {
			if that.cells[row][col] != Empty {
				occupied++
			}
		}
	}

	return occupied
}

func (that Board) count(mark Cell) int {
	n := 0

	for _, cell := range that.Cells() {
		if cell == mark {
			n++
		}
	}

	return n
}

// Validate checks that the marks could come from alternating play started by the
// human: X count minus O count is 0 or 1.
func (that Board) Validate() error {
	diff := that.count(PlayerMark) - that.count(OpponentMark)
	if diff != 0 && diff != 1 {
		return fmt.Errorf("%w: %d X against %d O", apperror.ErrInvalidBoard, that.count(PlayerMark), that.count(OpponentMark))
	}

	return nil
}

// MarkToMove returns the mark that plays next under alternating play started by X.
func (that Board) MarkToMove() Cell {
	if that.count(PlayerMark) > that.count(OpponentMark) {
		return OpponentMark
	}

	return PlayerMark
}

func (that Board) MarshalJSON() ([]byte, error) {
	cells := that.Cells()

	return json.Marshal(cells)
}

func (that *Board) UnmarshalJSON(data []byte) error {
	var cells [cellCount]Cell
	if err := json.Unmarshal(data, &cells); err != nil {
		return fmt.Errorf("failed to unmarshal board: %w", err)
	}

	board, err := BoardFromCells(cells)
	if err != nil {
		return err
	}

	*that = board

	return nil
}
