package apperror

import "errors"

var (
	ErrIllegalMove   = errors.New("illegal move")
	ErrMoveRejected  = errors.New("move rejected")
	ErrOutOfBounds   = errors.New("position is out of bounds")
	ErrInvalidBoard  = errors.New("invalid board")
	ErrGameNotFound  = errors.New("game not found")
	ErrUnknownStatus = errors.New("unknown game status")
)
