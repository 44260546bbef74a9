package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai/internal/usecase"
)

var ErrBadRequest = errors.New("bad request")

type gameUseCase interface {
	CreateGame(ctx context.Context, difficulty string) (*entity.Game, error)
	GetGame(ctx context.Context, gameID string) (*entity.Game, error)
	MakeTurn(ctx context.Context, gameID string, pos entity.Position) (*entity.Game, error)
	NewRound(ctx context.Context, gameID string) (*entity.Game, error)
	DeleteGame(ctx context.Context, gameID string) error
}

type createGameRequest struct {
	Difficulty string `json:"difficulty"`
}

type moveRequest struct {
	Col *int `json:"col"`
	Row *int `json:"row"`
}

type errorResponse struct {
	Error string       `json:"error"`
	Game  *entity.Game `json:"game,omitempty"`
}

type handlers struct {
	logger *slog.Logger
	games  gameUseCase
}

func newHandlers(logger *slog.Logger, games gameUseCase) *handlers {
	return &handlers{
		logger: logger.With("component", "rest"),
		games:  games,
	}
}

func (that *handlers) ping(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

func (that *handlers) createGame(w http.ResponseWriter, r *http.Request) {
	var req createGameRequest
	if err := decodeBody(r, &req); err != nil && !errors.Is(err, io.EOF) {
		that.writeError(w, fmt.Errorf("%w: %w", ErrBadRequest, err), nil)
		return
	}

	game, err := that.games.CreateGame(r.Context(), req.Difficulty)
	if err != nil {
		that.writeError(w, err, nil)
		return
	}

	that.writeJSON(w, http.StatusCreated, game)
}

func (that *handlers) getGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.games.GetGame(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, err, nil)
		return
	}

	that.writeJSON(w, http.StatusOK, game)
}

func (that *handlers) makeTurn(w http.ResponseWriter, r *http.Request) {
	pos, err := parseMove(r)
	if err != nil {
		that.writeError(w, err, nil)
		return
	}

	game, err := that.games.MakeTurn(r.Context(), chi.URLParam(r, "id"), pos)
	if err != nil {
		that.writeError(w, err, game)
		return
	}

	that.writeJSON(w, http.StatusOK, game)
}

func (that *handlers) newRound(w http.ResponseWriter, r *http.Request) {
	game, err := that.games.NewRound(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, err, nil)
		return
	}

	that.writeJSON(w, http.StatusOK, game)
}

func (that *handlers) deleteGame(w http.ResponseWriter, r *http.Request) {
	if err := that.games.DeleteGame(r.Context(), chi.URLParam(r, "id")); err != nil {
		that.writeError(w, err, nil)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parseMove(r *http.Request) (entity.Position, error) {
	var req moveRequest
	if err := decodeBody(r, &req); err != nil {
		return entity.NoMove, fmt.Errorf("%w: %w", ErrBadRequest, err)
	}

	if req.Col == nil || req.Row == nil {
		return entity.NoMove, fmt.Errorf("%w: col and row are required", ErrBadRequest)
	}

	return entity.NewPosition(*req.Col, *req.Row)
}

func decodeBody(r *http.Request, v any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	return decoder.Decode(v)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperror.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrMoveRejected):
		return http.StatusConflict
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, apperror.ErrOutOfBounds),
		errors.Is(err, usecase.ErrUnknownDifficulty):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeError answers with the mapped status. game, when set, is the unchanged
// session sent along with a rejected move.
func (that *handlers) writeError(w http.ResponseWriter, err error, game *entity.Game) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "error", err)
	} else {
		that.logger.Debug("request refused", "status", status, "error", err)
	}

	that.writeJSON(w, status, errorResponse{Error: err.Error(), Game: game})
}

func (that *handlers) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}
