package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai/internal/tictactoe"
)

var ErrUnknownDifficulty = errors.New("unknown difficulty")

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type moveSearcher interface {
	BestMove(board entity.Board, mark entity.Cell) entity.Position
}

// session pairs a live controller with the lock that orders its moves and saves.
type session struct {
	mu         sync.Mutex
	controller *tictactoe.GameController
	difficulty string
	deleted    bool
}

// GameManager maps session ids to live games and keeps the store in step with them.
type GameManager struct {
	logger   *slog.Logger
	gameRepo gameRepo

	searchers         map[string]moveSearcher
	defaultDifficulty string

	mu       sync.Mutex
	sessions map[string]*session
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepo, hard, easy moveSearcher, defaultDifficulty string) *GameManager {
	return &GameManager{
		logger:   logger.With("component", "game_manager"),
		gameRepo: gameRepo,

		searchers: map[string]moveSearcher{
			entity.HardDifficulty: hard,
			entity.EasyDifficulty: easy,
		},
		defaultDifficulty: defaultDifficulty,

		sessions: make(map[string]*session),
	}
}

// CreateGame starts a new session. An empty difficulty selects the configured default.
func (that *GameManager) CreateGame(ctx context.Context, difficulty string) (*entity.Game, error) {
	if difficulty == "" {
		difficulty = that.defaultDifficulty
	}

	searcher, ok := that.searchers[difficulty]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDifficulty, difficulty)
	}

	sess := &session{
		controller: tictactoe.NewGameController(that.logger, searcher),
		difficulty: difficulty,
	}

	gameID := uuid.NewString()

	sess.mu.Lock()
	defer sess.mu.Unlock()

	that.mu.Lock()
	that.sessions[gameID] = sess
	that.mu.Unlock()

	game, err := that.save(ctx, gameID, sess)
	if err != nil {
		that.forget(gameID)

		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	that.logger.Info("game created", "gameID", gameID, "difficulty", difficulty)

	return game, nil
}

func (that *GameManager) GetGame(ctx context.Context, gameID string) (*entity.Game, error) {
	sess, err := that.lockSession(ctx, gameID)
	if err != nil {
		return nil, err
	}
	defer sess.mu.Unlock()

	return snapshot(gameID, sess), nil
}

// MakeTurn plays the human move and the computer's reply. A move the controller
// refuses returns the unchanged game together with apperror.ErrMoveRejected.
func (that *GameManager) MakeTurn(ctx context.Context, gameID string, pos entity.Position) (*entity.Game, error) {
	log := that.logger.With("method", "MakeTurn", "gameID", gameID)

	sess, err := that.lockSession(ctx, gameID)
	if err != nil {
		return nil, err
	}
	defer sess.mu.Unlock()

	board, turn := sess.controller.Board(), sess.controller.Turn()

	if !sess.controller.ReportHumanMove(pos) {
		current := snapshot(gameID, sess)
		if err = current.ConfirmOngoingState(); err != nil {
			return current, fmt.Errorf("%w: game is over", err)
		}

		return current, fmt.Errorf("%w: %s", apperror.ErrMoveRejected, pos)
	}

	game, err := that.save(ctx, gameID, sess)
	if err != nil {
		that.rollback(gameID, sess, board, turn)

		return nil, fmt.Errorf("failed to make turn: %w", err)
	}

	if game.IsFinished() {
		log.Info("game finished", "winner", game.Winner)
	}

	return game, nil
}

// NewRound clears the board of an existing session.
func (that *GameManager) NewRound(ctx context.Context, gameID string) (*entity.Game, error) {
	sess, err := that.lockSession(ctx, gameID)
	if err != nil {
		return nil, err
	}
	defer sess.mu.Unlock()

	board, turn := sess.controller.Board(), sess.controller.Turn()

	sess.controller.StartNewGame()

	game, err := that.save(ctx, gameID, sess)
	if err != nil {
		that.rollback(gameID, sess, board, turn)

		return nil, fmt.Errorf("failed to start new round: %w", err)
	}

	return game, nil
}

func (that *GameManager) DeleteGame(ctx context.Context, gameID string) error {
	that.mu.Lock()
	sess, ok := that.sessions[gameID]
	that.mu.Unlock()

	// a move in flight saves before the key goes away, never after
	if ok {
		sess.mu.Lock()
		defer sess.mu.Unlock()

		sess.deleted = true
	}

	that.forget(gameID)

	if err := that.gameRepo.DeleteByID(ctx, gameID); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	that.logger.Info("game deleted", "gameID", gameID)

	return nil
}

// lockSession returns the live session with its lock held. A session deleted while
// the caller waited for the lock is reported as not found.
func (that *GameManager) lockSession(ctx context.Context, gameID string) (*session, error) {
	sess, err := that.session(ctx, gameID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	if sess.deleted {
		sess.mu.Unlock()

		return nil, fmt.Errorf("failed to get game: %w", apperror.ErrGameNotFound)
	}

	return sess, nil
}

// session returns the live session, loading it from the store on first use.
// The store read and restore run without the manager lock.
func (that *GameManager) session(ctx context.Context, gameID string) (*session, error) {
	that.mu.Lock()
	sess, ok := that.sessions[gameID]
	that.mu.Unlock()

	if ok {
		return sess, nil
	}

	loaded, err := that.load(ctx, gameID)
	if err != nil {
		return nil, err
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	if sess, ok = that.sessions[gameID]; ok {
		return sess, nil
	}

	that.sessions[gameID] = loaded

	return loaded, nil
}

func (that *GameManager) load(ctx context.Context, gameID string) (*session, error) {
	stored, err := that.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	searcher, ok := that.searchers[stored.Difficulty]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDifficulty, stored.Difficulty)
	}

	sess := &session{
		controller: tictactoe.NewGameController(that.logger, searcher),
		difficulty: stored.Difficulty,
	}

	if err = sess.controller.Restore(stored.Board, stored.Turn); err != nil {
		return nil, fmt.Errorf("failed to restore game %s: %w", gameID, err)
	}

	return sess, nil
}

// rollback puts the live game back to the last saved state after a failed save.
// Must be called with sess.mu held.
func (that *GameManager) rollback(gameID string, sess *session, board entity.Board, turn entity.Turn) {
	if err := sess.controller.Restore(board, turn); err != nil {
		that.logger.Error("failed to roll back game, dropping session", "gameID", gameID, "error", err)
		that.forget(gameID)
	}
}

func (that *GameManager) forget(gameID string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	delete(that.sessions, gameID)
}

// save must be called with sess.mu held.
func (that *GameManager) save(ctx context.Context, gameID string, sess *session) (*entity.Game, error) {
	game := snapshot(gameID, sess)

	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	return game, nil
}

func snapshot(gameID string, sess *session) *entity.Game {
	game := &entity.Game{
		ID:         gameID,
		Board:      sess.controller.Board(),
		Turn:       sess.controller.Turn(),
		Difficulty: sess.difficulty,
	}
	game.UpdateGameState()

	return game
}
