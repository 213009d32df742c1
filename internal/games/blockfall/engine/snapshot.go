package engine

// Snapshot is the full observable game state handed to render callbacks.
// Grid and Piece are copies: a host may hold a Snapshot across frames
// without seeing later mutations.
type Snapshot struct {
	Rows  int
	Cols  int
	Grid  [][]int
	Piece *Piece // nil when no piece is active
	Score int
	Over  bool
}

// CompositeCell returns the cell value visible at (row, col): the active
// piece's cell if it covers the position, otherwise the board cell. This is
// the logical image a host paints, one cell per grid position.
func (s Snapshot) CompositeCell(row, col int) int {
	if p := s.Piece; p != nil {
		r, c := row-p.Y, col-p.X
		if r >= 0 && r < len(p.Matrix) && c >= 0 && c < len(p.Matrix[r]) && p.Matrix[r][c] != CellEmpty {
			return p.Matrix[r][c]
		}
	}
	if row < 0 || row >= s.Rows || col < 0 || col >= s.Cols {
		return CellEmpty
	}
	return s.Grid[row][col]
}

// Snapshot captures the current game state.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Rows:  g.board.Rows(),
		Cols:  g.board.Cols(),
		Grid:  g.board.gridCopy(),
		Piece: g.ActivePiece(),
		Score: g.score,
		Over:  g.over,
	}
}
