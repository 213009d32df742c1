package engine

import "testing"

func TestNewBoardValidation(t *testing.T) {
	tests := []struct {
		name       string
		rows, cols int
		wantErr    bool
	}{
		{"default size", 20, 10, false},
		{"tiny", 1, 1, false},
		{"zero rows", 0, 10, true},
		{"zero cols", 20, 0, true},
		{"negative rows", -1, 10, true},
		{"negative cols", 20, -5, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b, err := NewBoard(tc.rows, tc.cols)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("NewBoard(%d, %d) should fail", tc.rows, tc.cols)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewBoard(%d, %d) failed: %v", tc.rows, tc.cols, err)
			}
			if b.Rows() != tc.rows || b.Cols() != tc.cols {
				t.Errorf("dimensions = %dx%d, expected %dx%d", b.Rows(), b.Cols(), tc.rows, tc.cols)
			}
			for r := 0; r < b.Rows(); r++ {
				for c := 0; c < b.Cols(); c++ {
					if b.Cell(r, c) != CellEmpty {
						t.Fatalf("new board should be empty, got %d at (%d, %d)", b.Cell(r, c), r, c)
					}
				}
			}
		})
	}
}

func TestBoardCollides(t *testing.T) {
	b, err := NewBoard(20, 10)
	if err != nil {
		t.Fatal(err)
	}
	b.grid[5][3] = 4

	tests := []struct {
		name     string
		row, col int
		expected bool
	}{
		{"empty cell", 0, 0, false},
		{"occupied cell", 5, 3, true},
		{"left of wall", 5, -1, true},
		{"right of wall", 5, 10, true},
		{"below floor", 20, 3, true},
		{"above grid (unchecked direction)", -1, 3, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := b.Collides(tc.row, tc.col); got != tc.expected {
				t.Errorf("Collides(%d, %d) = %v, expected %v", tc.row, tc.col, got, tc.expected)
			}
		})
	}
}

func TestBoardMerge(t *testing.T) {
	b, err := NewBoard(20, 10)
	if err != nil {
		t.Fatal(err)
	}

	p := &Piece{Matrix: ShapeForType(3), X: 2, Y: 17} // T piece
	b.Merge(p)

	// T matrix is {{0,3,0},{3,3,3}} at (x=2, y=17)
	want := map[[2]int]int{
		{17, 3}: 3,
		{18, 2}: 3, {18, 3}: 3, {18, 4}: 3,
	}
	for r := 0; r < b.Rows(); r++ {
		for c := 0; c < b.Cols(); c++ {
			expected := want[[2]int{r, c}]
			if b.Cell(r, c) != expected {
				t.Errorf("cell (%d, %d) = %d, expected %d", r, c, b.Cell(r, c), expected)
			}
		}
	}
}

func TestSweepSingleRow(t *testing.T) {
	b, err := NewBoard(20, 10)
	if err != nil {
		t.Fatal(err)
	}

	// Fill row 15 completely and scatter a marker above it.
	for c := 0; c < 10; c++ {
		b.grid[15][c] = 1
	}
	b.grid[14][4] = 7

	before := countCells(b)
	cleared := b.SweepLines()

	if cleared != 1 {
		t.Fatalf("SweepLines() = %d, expected 1", cleared)
	}
	if got := countCells(b); got != before-10 {
		t.Errorf("cell count = %d, expected %d (one full row removed)", got, before-10)
	}
	// Marker shifted down into row 15.
	if b.Cell(15, 4) != 7 {
		t.Errorf("cell above cleared row should shift down, got %d at (15, 4)", b.Cell(15, 4))
	}
	// A fresh empty row appeared at the top.
	for c := 0; c < 10; c++ {
		if b.Cell(0, c) != CellEmpty {
			t.Errorf("row 0 should be empty after sweep, got %d at col %d", b.Cell(0, c), c)
		}
	}
}

func TestSweepRowZeroNeverClears(t *testing.T) {
	b, err := NewBoard(20, 10)
	if err != nil {
		t.Fatal(err)
	}

	for c := 0; c < 10; c++ {
		b.grid[0][c] = 2
	}

	if cleared := b.SweepLines(); cleared != 0 {
		t.Fatalf("SweepLines() = %d, row 0 must never clear", cleared)
	}
	for c := 0; c < 10; c++ {
		if b.Cell(0, c) != 2 {
			t.Fatalf("row 0 must be untouched, got %d at col %d", b.Cell(0, c), c)
		}
	}
}

func TestSweepAdjacentRows(t *testing.T) {
	b, err := NewBoard(20, 10)
	if err != nil {
		t.Fatal(err)
	}

	// Two adjacent full rows; the shifted row must be re-examined.
	for c := 0; c < 10; c++ {
		b.grid[18][c] = 5
		b.grid[19][c] = 6
	}
	b.grid[17][0] = 1

	if cleared := b.SweepLines(); cleared != 2 {
		t.Fatalf("SweepLines() = %d, expected 2", cleared)
	}
	if b.Cell(19, 0) != 1 {
		t.Errorf("survivor cell should land on row 19, got %d", b.Cell(19, 0))
	}
	if got := countCells(b); got != 1 {
		t.Errorf("cell count = %d, expected 1", got)
	}
}

func TestSweepFourRows(t *testing.T) {
	b, err := NewBoard(20, 10)
	if err != nil {
		t.Fatal(err)
	}

	for r := 16; r < 20; r++ {
		for c := 0; c < 10; c++ {
			b.grid[r][c] = 1
		}
	}

	if cleared := b.SweepLines(); cleared != 4 {
		t.Fatalf("SweepLines() = %d, expected 4", cleared)
	}
	if got := countCells(b); got != 0 {
		t.Errorf("board should be empty, %d cells remain", got)
	}
}

func TestScoreForLines(t *testing.T) {
	tests := []struct {
		lines  int
		points int
		want   int
	}{
		{0, DefaultPointsPerLine, 0},
		{1, DefaultPointsPerLine, 10},
		{2, DefaultPointsPerLine, 40},
		{3, DefaultPointsPerLine, 90},
		{4, DefaultPointsPerLine, 160},
		{2, 25, 100},
	}
	for _, tc := range tests {
		if got := ScoreForLines(tc.lines, tc.points); got != tc.want {
			t.Errorf("ScoreForLines(%d, %d) = %d, expected %d", tc.lines, tc.points, got, tc.want)
		}
	}
}

// countCells returns the number of occupied cells on the board.
func countCells(b *Board) int {
	n := 0
	for r := 0; r < b.Rows(); r++ {
		for c := 0; c < b.Cols(); c++ {
			if b.Cell(r, c) != CellEmpty {
				n++
			}
		}
	}
	return n
}
