// Package maze implements the maze domain: a single token moves on a fixed
// grid from a start cell to an exit cell, grounded in
// original_source/maze_bad/src/maze_logic.c, simplified to the
// fixed-board/moving-position encoding SPEC_FULL.md settled on instead of
// that file's per-state board-plus-trail encoding (see repo DESIGN.md for
// why: the trail-as-state approach blows the state space up to subsets of
// visited cells, and the source directory's own name flags it as the
// flawed prototype).
package maze

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"

	"github.com/alexyz79/astarmp/astar"
)

// StructSize is the fixed byte width of a maze state (two big-endian
// uint32s: row, col).
const StructSize = 8

// Board is the parsed, static maze: shared by every state, which encodes
// only the moving position.
type Board struct {
	Rows, Cols int
	Cells      []byte // '#' wall, '.' open (Start/Exit cells are opened and recorded separately)
	Start      [2]int
	Exit       [2]int
}

// ParseBoard reads a rectangular grid of characters, one row per line: '#'
// wall, '.' open, 'S' start (exactly one), 'E' exit (exactly one).
func ParseBoard(path string) (*Board, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	b := &Board{}
	var foundStart, foundExit bool
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		if b.Cols == 0 {
			b.Cols = len(line)
		} else if len(line) != b.Cols {
			return nil, fmt.Errorf("maze: ragged row %d", b.Rows)
		}

		for col := 0; col < len(line); col++ {
			ch := line[col]
			switch ch {
			case 'S':
				if foundStart {
					return nil, fmt.Errorf("maze: more than one start cell")
				}
				b.Start = [2]int{b.Rows, col}
				foundStart = true
				ch = '.'
			case 'E':
				if foundExit {
					return nil, fmt.Errorf("maze: more than one exit cell")
				}
				b.Exit = [2]int{b.Rows, col}
				foundExit = true
				ch = '.'
			}
			b.Cells = append(b.Cells, ch)
		}
		b.Rows++
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if !foundStart || !foundExit {
		return nil, fmt.Errorf("maze: missing start or exit cell")
	}
	return b, nil
}

func (b *Board) open(row, col int) bool {
	if row < 0 || row >= b.Rows || col < 0 || col >= b.Cols {
		return false
	}
	return b.Cells[row*b.Cols+col] != '#'
}

// StateBytes encodes a position as a fixed StructSize-byte state.
func StateBytes(row, col int) []byte {
	buf := make([]byte, StructSize)
	binary.BigEndian.PutUint32(buf[0:4], uint32(row))
	binary.BigEndian.PutUint32(buf[4:8], uint32(col))
	return buf
}

func decode(state *astar.State) (row, col int) {
	data := state.Bytes()
	return int(binary.BigEndian.Uint32(data[0:4])), int(binary.BigEndian.Uint32(data[4:8]))
}

// Callbacks returns the astar.Callbacks bound to this board.
func (b *Board) Callbacks() astar.Callbacks {
	return astar.Callbacks{
		Goal:      b.goal,
		Visit:     b.visit,
		Heuristic: b.heuristic,
		Distance:  distance,
	}
}

func (b *Board) goal(state, goalState *astar.State) bool {
	row, col := decode(state)
	return row == b.Exit[0] && col == b.Exit[1]
}

// heuristic is Manhattan distance to the exit, as in maze_logic.c's
// heuristic.
func (b *Board) heuristic(state, goalState *astar.State) int {
	row, col := decode(state)
	return abs(row-b.Exit[0]) + abs(col-b.Exit[1])
}

// distance is always 1: one grid step per move (maze_logic.c's distance).
func distance(from, to *astar.State) int { return 1 }

// visit moves up/down/left/right into any open neighbor (maze_logic.c's
// visit, minus the per-state trail it also marks).
func (b *Board) visit(state *astar.State, sink *astar.NeighborSink) {
	row, col := decode(state)
	moves := [4][2]int{
		{row - 1, col},
		{row + 1, col},
		{row, col - 1},
		{row, col + 1},
	}
	for _, m := range moves {
		if b.open(m[0], m[1]) {
			sink.New(StateBytes(m[0], m[1]))
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
