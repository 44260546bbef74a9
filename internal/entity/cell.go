package entity

import (
	"errors"
	"fmt"
)

// Cell is the state of one board square.
type Cell uint8

const (
	Empty Cell = iota
	PlayerMark
	OpponentMark
)

const (
	EmptySymbol    = ""
	PlayerSymbol   = "X"
	OpponentSymbol = "O"
)

var ErrUnknownCell = errors.New("unknown cell symbol")

func (that Cell) String() string {
	switch that {
	case PlayerMark:
		return PlayerSymbol
	case OpponentMark:
		return OpponentSymbol
	default:
		return EmptySymbol
	}
}

// Opponent returns the other mark. Empty has no opponent and stays Empty.
func (that Cell) Opponent() Cell {
	switch that {
	case PlayerMark:
		return OpponentMark
	case OpponentMark:
		return PlayerMark
	default:
		return Empty
	}
}

// IsMark reports whether the cell holds a player's mark.
func (that Cell) IsMark() bool {
	return that == PlayerMark || that == OpponentMark
}

func (that Cell) MarshalText() ([]byte, error) {
	return []byte(that.String()), nil
}

func (that *Cell) UnmarshalText(text []byte) error {
	cell, err := ParseCell(string(text))
	if err != nil {
		return err
	}

	*that = cell

	return nil
}

func ParseCell(symbol string) (Cell, error) {
	switch symbol {
	case EmptySymbol:
		return Empty, nil
	case PlayerSymbol:
		return PlayerMark, nil
	case OpponentSymbol:
		return OpponentMark, nil
	default:
		return Empty, fmt.Errorf("%w: %q", ErrUnknownCell, symbol)
	}
}
