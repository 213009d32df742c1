// Package engine implements the falling-block puzzle simulation: the
// occupancy grid, piece lifecycle, collision and rotation rules, line
// clearing, scoring, and the real-time gravity loop. It is pure logic with
// no rendering and no external dependencies; hosts consume it through
// Game, Snapshot and Loop.
package engine

import "fmt"

// Cell values. 0 is empty; 1..7 tag a locked piece's type and color.
const (
	CellEmpty    = 0
	MaxCellValue = 7
)

// Default playfield dimensions.
const (
	DefaultRows = 20
	DefaultCols = 10
)

// Board owns the fixed-size occupancy grid and the line-clear algorithm.
// Dimensions never change after construction.
type Board struct {
	rows int
	cols int
	grid [][]int
}

// NewBoard creates an empty rows×cols board.
// Non-positive dimensions are a programmer error and are rejected.
func NewBoard(rows, cols int) (*Board, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("engine: invalid board size %dx%d", rows, cols)
	}
	grid := make([][]int, rows)
	for r := range grid {
		grid[r] = make([]int, cols)
	}
	return &Board{rows: rows, cols: cols, grid: grid}, nil
}

// Rows returns the number of grid rows.
func (b *Board) Rows() int {
	return b.rows
}

// Cols returns the number of grid columns.
func (b *Board) Cols() int {
	return b.cols
}

// Cell returns the value at (row, col), or CellEmpty if out of range.
func (b *Board) Cell(row, col int) int {
	if row < 0 || row >= b.rows || col < 0 || col >= b.cols {
		return CellEmpty
	}
	return b.grid[row][col]
}

// Collides reports whether a prospective piece cell at (row, col) collides.
// A cell collides if its column is outside [0, cols), its row is below the
// floor, or the grid cell is occupied. Rows above the grid do not collide:
// pieces spawn in bounds and only ever move down or sideways, so the upward
// direction is never probed and stays unchecked on purpose.
func (b *Board) Collides(row, col int) bool {
	if col < 0 || col >= b.cols {
		return true
	}
	if row >= b.rows {
		return true
	}
	if row < 0 {
		return false
	}
	return b.grid[row][col] != CellEmpty
}

// Merge writes every nonzero cell of the piece's matrix into the grid.
// Cells that fall outside the grid are dropped.
func (b *Board) Merge(p *Piece) {
	for r, row := range p.Matrix {
		for c, v := range row {
			if v == CellEmpty {
				continue
			}
			gr, gc := p.Y+r, p.X+c
			if gr < 0 || gr >= b.rows || gc < 0 || gc >= b.cols {
				continue
			}
			b.grid[gr][gc] = v
		}
	}
}

// SweepLines removes every full row, inserting a fresh empty row at the top
// for each one, and returns the number of rows cleared. The scan runs from
// the bottom row upward and never considers row 0; after a removal the same
// index is re-examined because the rows above have shifted down into it.
func (b *Board) SweepLines() int {
	cleared := 0
	for r := b.rows - 1; r > 0; r-- {
		full := true
		for _, v := range b.grid[r] {
			if v == CellEmpty {
				full = false
				break
			}
		}
		if !full {
			continue
		}

		removed := b.grid[r]
		copy(b.grid[1:r+1], b.grid[:r])
		for c := range removed {
			removed[c] = CellEmpty
		}
		b.grid[0] = removed

		cleared++
		r++ // rows shifted down; look at this index again
	}
	return cleared
}

// DefaultPointsPerLine is the base value of one cleared line.
const DefaultPointsPerLine = 10

// ScoreForLines returns the score delta for clearing n lines in one lock:
// n*points*n, a quadratic bonus (10, 40, 90, 160 for 1..4 lines at the
// default base).
func ScoreForLines(n, pointsPerLine int) int {
	return n * pointsPerLine * n
}

// gridCopy returns a deep copy of the grid for snapshots.
func (b *Board) gridCopy() [][]int {
	out := make([][]int, b.rows)
	for r := range b.grid {
		out[r] = make([]int, b.cols)
		copy(out[r], b.grid[r])
	}
	return out
}
