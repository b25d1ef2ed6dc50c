// Package numberlink implements a single-link shortest-path variant of the
// number-link puzzle: connect one pair of matching digit endpoints with the
// shortest path of adjacent cells. Grounded in
// original_source/maze_bad/src/maze_logic.c, whose own comments ("Verifica
// se um estado é um objetivo do problema number link") reveal it was
// actually written for this domain and only later repurposed for maze; the
// move model (board-fixed, state-is-position) is shared between the two
// domains here for the same reason. Scoped down from the original's
// multi-link board: this module solves one endpoint pair per instance (see
// repo SPEC_FULL.md Non-goals).
package numberlink

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"

	"github.com/alexyz79/astarmp/astar"
)

// StructSize is the fixed byte width of a numberlink state (two big-endian
// uint32s: row, col).
const StructSize = 8

// Board is the parsed, static grid with a single pair of link endpoints.
type Board struct {
	Rows, Cols int
	Cells      []byte // '#' blocked, '.' open (endpoint cells are opened and recorded separately)
	Link       byte   // the digit identifying the pair solved in this instance
	A, B       [2]int
}

// ParseBoard reads a rectangular grid, one row per line: '#' blocked, '.'
// open, and exactly two occurrences of a single digit naming the link's
// endpoints.
func ParseBoard(path string) (*Board, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	b := &Board{}
	var endpoints [][2]int
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		if b.Cols == 0 {
			b.Cols = len(line)
		} else if len(line) != b.Cols {
			return nil, fmt.Errorf("numberlink: ragged row %d", b.Rows)
		}

		for col := 0; col < len(line); col++ {
			ch := line[col]
			if ch >= '0' && ch <= '9' {
				if b.Link == 0 {
					b.Link = ch
				} else if ch != b.Link {
					return nil, fmt.Errorf("numberlink: more than one link digit present")
				}
				endpoints = append(endpoints, [2]int{b.Rows, col})
				ch = '.'
			}
			b.Cells = append(b.Cells, ch)
		}
		b.Rows++
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(endpoints) != 2 {
		return nil, fmt.Errorf("numberlink: expected exactly two endpoints, found %d", len(endpoints))
	}
	b.A, b.B = endpoints[0], endpoints[1]
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

// Callbacks returns the astar.Callbacks bound to this board, searching from
// endpoint A to endpoint B.
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
	return row == b.B[0] && col == b.B[1]
}

// heuristic is Manhattan distance to the B endpoint (maze_logic.c's
// heuristic, under its original number-link naming).
func (b *Board) heuristic(state, goalState *astar.State) int {
	row, col := decode(state)
	return abs(row-b.B[0]) + abs(col-b.B[1])
}

// distance is always 1: one grid step per move.
func distance(from, to *astar.State) int { return 1 }

// visit moves up/down/left/right into any open neighbor.
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
