package tictactoe

import (
	"fmt"
	"math"

	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

// DefaultDepth is the search depth below each candidate move, in plies.
const DefaultDepth = 7

// SearchStats describes the work done by one BestMove call.
type SearchStats struct {
	Nodes   int
	Cutoffs int
}

// SearchEngine picks moves with a depth-limited minimax search and alpha-beta pruning.
type SearchEngine struct {
	depth int
}

func NewSearchEngine(depth int) *SearchEngine {
	if depth < 1 {
		depth = DefaultDepth
	}

	return &SearchEngine{depth: depth}
}

func (that *SearchEngine) Depth() int {
	return that.depth
}

// BestMove returns the move maximizing mark's minimax value, or entity.NoMove when the
// board is full. Ties keep the first move in LegalMoves order.
func (that *SearchEngine) BestMove(board entity.Board, mark entity.Cell) entity.Position {
	move, _ := that.BestMoveWithStats(board, mark)

	return move
}

func (that *SearchEngine) BestMoveWithStats(board entity.Board, mark entity.Cell) (entity.Position, SearchStats) {
	s := &search{maximizer: mark}

	bestMove := entity.NoMove
	maxEval := math.MinInt

	for _, move := range board.LegalMoves() {
		child := board
		mustApply(&child, move, mark)

		eval := s.minimax(&child, that.depth, math.MinInt, math.MaxInt, false)
		if eval > maxEval {
			maxEval = eval
			bestMove = move
		}
	}

	return bestMove, s.stats
}

type search struct {
	maximizer entity.Cell
	stats     SearchStats
}

func (that *search) minimax(board *entity.Board, depth, alpha, beta int, maximizing bool) int {
	that.stats.Nodes++

	if depth == 0 || board.IsTerminal() {
		return evaluate(board, that.reference(maximizing), that.maximizer)
	}

	if maximizing {
		maxEval := math.MinInt

		for _, move := range board.LegalMoves() {
			child := *board
			mustApply(&child, move, that.maximizer)

			eval := that.minimax(&child, depth-1, alpha, beta, false)
			maxEval = max(maxEval, eval)
			alpha = max(alpha, eval)

			if beta <= alpha {
				that.stats.Cutoffs++
				break
			}
		}

		return maxEval
	}

	minEval := math.MaxInt

	for _, move := range board.LegalMoves() {
		child := *board
		mustApply(&child, move, that.maximizer.Opponent())

		eval := that.minimax(&child, depth-1, alpha, beta, true)
		minEval = min(minEval, eval)
		beta = min(beta, eval)

		if beta <= alpha {
			that.stats.Cutoffs++
			break
		}
	}

	return minEval
}

// reference is the mark the leaf is scored against: the minimizing mark when the
// maximizer would move next, the maximizer otherwise.
func (that *search) reference(maximizing bool) entity.Cell {
	if maximizing {
		return that.maximizer.Opponent()
	}

	return that.maximizer
}

// evaluate scores a leaf: 0 without a winner, otherwise -1 when the reference is the
// minimizing mark and +1 when it is the maximizer.
func evaluate(board *entity.Board, reference, maximizer entity.Cell) int {
	if board.Winner() == entity.Empty {
		return 0
	}

	if reference == maximizer {
		return 1
	}

	return -1
}

// mustApply places a move taken from LegalMoves. A failure is a bug in the search.
func mustApply(board *entity.Board, move entity.Position, mark entity.Cell) {
	if err := board.Apply(move, mark); err != nil {
		panic(fmt.Errorf("search applied an illegal move: %w", err))
	}
}
