package engine

// Shape is a rectangular matrix of cell values describing a tetromino.
// 0 is transparent; nonzero cells carry the piece's own type id.
type Shape [][]int

// The 7 tetromino templates. Each carries its cell value (1..7), which
// doubles as its color tag once locked into the board. Templates are never
// mutated; rotation always produces a new matrix.
var shapes = []Shape{
	{ // I = 1
		{1, 1, 1, 1},
	},
	{ // O = 2
		{2, 2},
		{2, 2},
	},
	{ // T = 3
		{0, 3, 0},
		{3, 3, 3},
	},
	{ // S = 4
		{0, 4, 4},
		{4, 4, 0},
	},
	{ // Z = 5
		{5, 5, 0},
		{0, 5, 5},
	},
	{ // L = 6
		{6, 0},
		{6, 0},
		{6, 6},
	},
	{ // J = 7
		{0, 7},
		{0, 7},
		{7, 7},
	},
}

// NumShapes is the number of distinct tetromino templates.
var NumShapes = len(shapes)

// ShapeForType returns a copy of the template for type id 1..7.
// Out-of-range ids return nil.
func ShapeForType(id int) Shape {
	if id < 1 || id > NumShapes {
		return nil
	}
	return cloneShape(shapes[id-1])
}

// Piece is the currently falling piece: its shape matrix and the board
// coordinates of the matrix's top-left corner. It is mutated in place by
// move, rotate and drop until it locks into the board.
type Piece struct {
	Matrix Shape
	X, Y   int
}

// Width returns the piece matrix width in cells.
func (p *Piece) Width() int {
	if len(p.Matrix) == 0 {
		return 0
	}
	return len(p.Matrix[0])
}

// Height returns the piece matrix height in cells.
func (p *Piece) Height() int {
	return len(p.Matrix)
}

// Type returns the piece's cell value, or CellEmpty for a degenerate piece.
func (p *Piece) Type() int {
	for _, row := range p.Matrix {
		for _, v := range row {
			if v != CellEmpty {
				return v
			}
		}
	}
	return CellEmpty
}

// clone returns a deep copy of the piece.
func (p *Piece) clone() *Piece {
	return &Piece{Matrix: cloneShape(p.Matrix), X: p.X, Y: p.Y}
}

// rotateCW returns the matrix rotated 90° clockwise: transpose, then
// reverse each row. Works for non-square matrices; the dimensions swap.
func rotateCW(m Shape) Shape {
	if len(m) == 0 {
		return Shape{}
	}
	rows, cols := len(m), len(m[0])
	out := make(Shape, cols)
	for r := range out {
		out[r] = make([]int, rows)
		for c := range out[r] {
			out[r][c] = m[rows-1-c][r]
		}
	}
	return out
}

func cloneShape(m Shape) Shape {
	out := make(Shape, len(m))
	for r := range m {
		out[r] = make([]int, len(m[r]))
		copy(out[r], m[r])
	}
	return out
}
