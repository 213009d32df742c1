package engine

import "math/rand"

// Game holds the full puzzle state: the board, the active falling piece,
// the score and the terminal flag. The piece controller operations (spawn,
// move, rotate, soft drop) live here; every one of them is a no-op once
// the game is over. A fresh Game must be constructed to play again.
type Game struct {
	board  *Board
	piece  *Piece
	score  int
	points int // base points per cleared line
	over   bool
	rng    *rand.Rand
}

// NewGame creates a game on an empty rows×cols board and spawns the first
// piece. Fails for non-positive dimensions.
func NewGame(rows, cols int, seed int64) (*Game, error) {
	board, err := NewBoard(rows, cols)
	if err != nil {
		return nil, err
	}
	g := &Game{
		board:  board,
		points: DefaultPointsPerLine,
		rng:    rand.New(rand.NewSource(seed)),
	}
	g.spawn()
	return g, nil
}

// SetPointsPerLine overrides the base value of one cleared line.
// Non-positive values are ignored.
func (g *Game) SetPointsPerLine(points int) {
	if points > 0 {
		g.points = points
	}
}

// PointsPerLine returns the base value of one cleared line.
func (g *Game) PointsPerLine() int {
	return g.points
}

// Board returns the game's board.
func (g *Game) Board() *Board {
	return g.board
}

// Score returns the current score. It only ever increases.
func (g *Game) Score() int {
	return g.score
}

// Over reports whether the game has reached its terminal state.
func (g *Game) Over() bool {
	return g.over
}

// ActivePiece returns a copy of the falling piece, or nil if none exists.
func (g *Game) ActivePiece() *Piece {
	if g.piece == nil {
		return nil
	}
	return g.piece.clone()
}

// spawn picks a uniformly random piece type, centers it horizontally at the
// top row, and makes it the active piece. If the spawn position already
// collides the board is full near the top: the game is over and the
// colliding piece stays where it is for the final render.
func (g *Game) spawn() {
	g.spawnType(g.rng.Intn(NumShapes) + 1)
}

// spawnType spawns a specific piece type; split out so tests can script
// exact piece sequences.
func (g *Game) spawnType(id int) {
	p := &Piece{
		Matrix: ShapeForType(id),
		Y:      0,
	}
	p.X = g.board.Cols()/2 - p.Width()/2
	g.piece = p

	if g.collides(p.Matrix, p.X, p.Y) {
		g.over = true
	}
}

// collides reports whether the matrix placed at (x, y) collides with the
// board's walls or occupied cells.
func (g *Game) collides(m Shape, x, y int) bool {
	for r, row := range m {
		for c, v := range row {
			if v != CellEmpty && g.board.Collides(y+r, x+c) {
				return true
			}
		}
	}
	return false
}

// Move shifts the active piece horizontally by dir (-1 or +1). If the
// shifted position collides the shift is reverted and nothing happens.
func (g *Game) Move(dir int) {
	if g.over || g.piece == nil {
		return
	}
	g.piece.X += dir
	if g.collides(g.piece.Matrix, g.piece.X, g.piece.Y) {
		g.piece.X -= dir
	}
}

// MoveLeft shifts the active piece one column left if it fits.
func (g *Game) MoveLeft() {
	g.Move(-1)
}

// MoveRight shifts the active piece one column right if it fits.
func (g *Game) MoveRight() {
	g.Move(1)
}

// Rotate turns the active piece 90° clockwise. If the rotated shape
// collides in place, a kick search tries horizontal offsets +1, -2, +3,
// -4, ... applied cumulatively to the origin, accepting the first that
// fits. Once the next offset's magnitude would exceed the rotated shape's
// width the rotation is abandoned: the original matrix and origin are
// restored and the call is a no-op.
func (g *Game) Rotate() {
	if g.over || g.piece == nil {
		return
	}

	rotated := rotateCW(g.piece.Matrix)
	width := 0
	if len(rotated) > 0 {
		width = len(rotated[0])
	}
	origX := g.piece.X

	offset := 1
	for g.collides(rotated, g.piece.X, g.piece.Y) {
		if abs(offset) > width {
			g.piece.X = origX
			return
		}
		g.piece.X += offset
		if offset > 0 {
			offset = -(offset + 1)
		} else {
			offset = -(offset - 1)
		}
	}
	g.piece.Matrix = rotated
}

// SoftDrop advances the active piece one row down. If the new position
// collides, the piece instead locks: the move is undone, the piece merges
// into the board, full lines are swept and scored, and the next piece
// spawns (which may end the game). Reports whether a lock happened and how
// many lines it cleared.
func (g *Game) SoftDrop() (locked bool, cleared int) {
	if g.over || g.piece == nil {
		return false, 0
	}

	g.piece.Y++
	if !g.collides(g.piece.Matrix, g.piece.X, g.piece.Y) {
		return false, 0
	}

	g.piece.Y--
	g.board.Merge(g.piece)
	cleared = g.board.SweepLines()
	g.score += ScoreForLines(cleared, g.points)
	g.spawn()
	return true, cleared
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
