package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"

	ResultTie = "-"
)

const (
	EasyDifficulty = "easy"
	HardDifficulty = "hard"
)

// Turn tells whose move the live game is waiting for.
type Turn uint8

const (
	HumanTurn Turn = iota
	ComputerTurn
)

func (that Turn) String() string {
	if that == ComputerTurn {
		return "computer"
	}

	return "human"
}

func (that Turn) MarshalText() ([]byte, error) {
	return []byte(that.String()), nil
}

func (that *Turn) UnmarshalText(text []byte) error {
	switch string(text) {
	case "human":
		*that = HumanTurn
	case "computer":
		*that = ComputerTurn
	default:
		return fmt.Errorf("%w: turn %q", apperror.ErrInvalidBoard, text)
	}

	return nil
}

// Game is the stored snapshot of one human-versus-computer session.
type Game struct {
	ID         string `json:"id"`
	Board      Board  `json:"board"`
	Turn       Turn   `json:"turn"`
	Winner     string `json:"winner"`
	Status     string `json:"status"`
	Difficulty string `json:"difficulty"`
}

func NewGame(id, difficulty string) *Game {
	return &Game{
		ID:         id,
		Board:      NewBoard(),
		Turn:       HumanTurn,
		Status:     StatusOngoing,
		Difficulty: difficulty,
	}
}

// UpdateGameState derives winner and status from the board.
func (that *Game) UpdateGameState() {
	switch winner := that.Board.Winner(); {
	case winner != Empty:
		that.Winner = winner.String()
		that.Status = StatusFinished
	case that.Board.IsFull():
		that.Winner = ResultTie
		that.Status = StatusFinished
	default:
		that.Winner = ""
		that.Status = StatusOngoing
	}
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) ConfirmOngoingState() error {
	switch {
	case that.IsFinished():
		return apperror.ErrMoveRejected
	case that.IsOngoing():
		return nil
	default:
		return fmt.Errorf("%w: %s", apperror.ErrUnknownStatus, that.Status)
	}
}

func IsKnownDifficulty(difficulty string) bool {
	return difficulty == EasyDifficulty || difficulty == HardDifficulty
}
