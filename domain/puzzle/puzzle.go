// Package puzzle implements the 8-puzzle domain callbacks (spec.md §8's
// end-to-end scenarios), grounded in
// original_source/8puzzle_seq/src/logic.c: a 3x3 board of bytes '1'..'8'
// and '-' for the blank, row-major.
package puzzle

import (
	"bytes"

	"github.com/alexyz79/astarmp/astar"
)

const boardSize = 9

// goalBoard is the canonical solved board (logic.c's goal_puzzle).
var goalBoard = []byte("12345678-")

// heuristicTable maps a piece's numeric value (piece-'1') to its goal
// row/col, straight from logic.c's heuristic_table.
var heuristicTable = [8][2]int{
	{0, 0}, {0, 1}, {0, 2},
	{1, 0}, {1, 1}, {1, 2},
	{2, 0}, {2, 1},
}

// Callbacks returns the astar.Callbacks for the 8-puzzle domain.
func Callbacks() astar.Callbacks {
	return astar.Callbacks{
		Goal:      goal,
		Visit:     visit,
		Heuristic: heuristic,
		Distance:  distance,
	}
}

// GoalBytes returns a private copy of the canonical solved board, for
// callers that want to pass an explicit goal to Engine.Solve.
func GoalBytes() []byte {
	b := make([]byte, len(goalBoard))
	copy(b, goalBoard)
	return b
}

func goal(state, goalState *astar.State) bool {
	target := goalBoard
	if goalState != nil {
		target = goalState.Bytes()
	}
	return bytes.Equal(state.Bytes(), target)
}

func toInt(c byte) int { return int(c) - '1' }

// heuristic sums the Manhattan distance of each numbered tile to its goal
// position (logic.c's heuristic).
func heuristic(state, goalState *astar.State) int {
	board := state.Bytes()
	h := 0
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			piece := board[row*3+col]
			if piece == '-' {
				continue
			}
			n := toInt(piece)
			if n < 0 || n >= len(heuristicTable) {
				continue
			}
			goalRow, goalCol := heuristicTable[n][0], heuristicTable[n][1]
			h += abs(row-goalRow) + abs(col-goalCol)
		}
	}
	return h
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// distance is always 1: exactly one tile moves per step (logic.c's
// distance).
func distance(from, to *astar.State) int { return 1 }

// visit slides the blank up/down/left/right, appending each resulting
// board to sink (logic.c's visit).
func visit(state *astar.State, sink *astar.NeighborSink) {
	board := state.Bytes()
	emptyIdx := bytes.IndexByte(board, '-')
	row, col := emptyIdx/3, emptyIdx%3

	swapInto := func(r, c int) {
		next := make([]byte, boardSize)
		copy(next, board)
		idx := r*3 + c
		next[emptyIdx], next[idx] = next[idx], next[emptyIdx]
		sink.New(next)
	}

	if row > 0 {
		swapInto(row-1, col)
	}
	if row < 2 {
		swapInto(row+1, col)
	}
	if col > 0 {
		swapInto(row, col-1)
	}
	if col < 2 {
		swapInto(row, col+1)
	}
}
