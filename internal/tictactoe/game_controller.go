package tictactoe

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

type moveSearcher interface {
	BestMove(board entity.Board, mark entity.Cell) entity.Position
}

type statsSearcher interface {
	BestMoveWithStats(board entity.Board, mark entity.Cell) (entity.Position, SearchStats)
}

// GameController owns the live board of one human-versus-computer game and drives
// the turn order. All methods are safe for concurrent use.
type GameController struct {
	logger   *slog.Logger
	searcher moveSearcher

	mu    sync.Mutex
	board entity.Board
	turn  entity.Turn
}

func NewGameController(logger *slog.Logger, searcher moveSearcher) *GameController {
	return &GameController{
		logger:   logger.With("component", "game_controller"),
		searcher: searcher,
		board:    entity.NewBoard(),
		turn:     entity.HumanTurn,
	}
}

// ReportHumanMove plays the human's mark at pos and, unless that ends the game,
// answers with the computer's move before returning. It reports false and changes
// nothing when the move can't be played.
func (that *GameController) ReportHumanMove(pos entity.Position) bool {
	log := that.logger.With("method", "ReportHumanMove", "position", pos.String())

	that.mu.Lock()
	defer that.mu.Unlock()

	switch {
	case that.board.IsTerminal():
		log.Debug("move rejected", "reason", "game is over")
		return false
	case that.turn != entity.HumanTurn:
		log.Debug("move rejected", "reason", "not human turn")
		return false
	case !that.board.IsLegal(pos):
		log.Debug("move rejected", "reason", "cell is not free")
		return false
	}

	if err := that.board.Apply(pos, entity.PlayerMark); err != nil {
		log.Error("failed to apply checked move", "error", err)
		return false
	}

	that.switchTurn()

	if that.turn == entity.ComputerTurn {
		that.computerTurn()
	}

	return true
}

// computerTurn must be called with mu held.
func (that *GameController) computerTurn() {
	log := that.logger.With("method", "computerTurn")

	move := that.bestMove(log)
	if move == entity.NoMove {
		log.Error("searcher found no move on a live board")
		return
	}

	if err := that.board.Apply(move, entity.OpponentMark); err != nil {
		panic(fmt.Errorf("computer played an illegal move: %w", err))
	}

	log.Debug("computer moved", "position", move.String())

	that.switchTurn()
}

func (that *GameController) bestMove(log *slog.Logger) entity.Position {
	searcher, ok := that.searcher.(statsSearcher)
	if !ok {
		return that.searcher.BestMove(that.board, entity.OpponentMark)
	}

	move, stats := searcher.BestMoveWithStats(that.board, entity.OpponentMark)
	log.Debug("search done", "nodes", stats.Nodes, "cutoffs", stats.Cutoffs)

	return move
}

// switchTurn hands the move to the other side unless the board is terminal.
func (that *GameController) switchTurn() {
	if that.board.IsTerminal() {
		return
	}

	if that.turn == entity.HumanTurn {
		that.turn = entity.ComputerTurn
	} else {
		that.turn = entity.HumanTurn
	}
}

// StartNewGame clears the board and gives the first move to the human.
func (that *GameController) StartNewGame() {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.board = entity.NewBoard()
	that.turn = entity.HumanTurn
}

// Restore replaces the live state with a stored snapshot. When the snapshot waits
// on the computer, the computer moves before Restore returns.
func (that *GameController) Restore(board entity.Board, turn entity.Turn) error {
	if err := board.Validate(); err != nil {
		return fmt.Errorf("failed to restore game: %w", err)
	}

	if turn != entity.HumanTurn && turn != entity.ComputerTurn {
		return fmt.Errorf("%w: unknown turn %d", apperror.ErrInvalidBoard, turn)
	}

	if !board.IsTerminal() && (turn == entity.HumanTurn) != (board.MarkToMove() == entity.PlayerMark) {
		return fmt.Errorf("%w: %s to move but turn is %s", apperror.ErrInvalidBoard, board.MarkToMove(), turn)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	that.board = board
	that.turn = turn

	if that.turn == entity.ComputerTurn && !that.board.IsTerminal() {
		that.computerTurn()
	}

	return nil
}

func (that *GameController) IsGameOver() bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.board.IsTerminal()
}

// CurrentWinner returns Empty while the game runs and after a tie.
func (that *GameController) CurrentWinner() entity.Cell {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.board.Winner()
}

func (that *GameController) CellAt(pos entity.Position) entity.Cell {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.board.CellAt(pos)
}

func (that *GameController) IsHumanTurn() bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.turn == entity.HumanTurn && !that.board.IsTerminal()
}

// Board returns a copy of the live board.
func (that *GameController) Board() entity.Board {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.board
}

func (that *GameController) Turn() entity.Turn {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.turn
}
