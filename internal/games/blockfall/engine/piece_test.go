package engine

import (
	"reflect"
	"testing"
)

func TestShapeForType(t *testing.T) {
	for id := 1; id <= NumShapes; id++ {
		shape := ShapeForType(id)
		if shape == nil {
			t.Fatalf("ShapeForType(%d) returned nil", id)
		}
		cells := 0
		for _, row := range shape {
			for _, v := range row {
				if v == CellEmpty {
					continue
				}
				cells++
				if v != id {
					t.Errorf("type %d shape carries cell value %d", id, v)
				}
			}
		}
		if cells != 4 {
			t.Errorf("type %d has %d cells, every tetromino has 4", id, cells)
		}
	}

	if ShapeForType(0) != nil || ShapeForType(8) != nil {
		t.Error("out-of-range type ids should return nil")
	}
}

func TestShapeForTypeReturnsCopy(t *testing.T) {
	a := ShapeForType(2)
	a[0][0] = 99
	if b := ShapeForType(2); b[0][0] != 2 {
		t.Error("mutating a returned shape must not touch the template")
	}
}

func TestRotateCWQuarterTurn(t *testing.T) {
	in := Shape{
		{0, 3, 0},
		{3, 3, 3},
	}
	want := Shape{
		{3, 0},
		{3, 3},
		{3, 0},
	}
	if got := rotateCW(in); !reflect.DeepEqual(got, want) {
		t.Errorf("rotateCW(T) = %v, expected %v", got, want)
	}
}

func TestRotateCWDimensionsSwap(t *testing.T) {
	in := ShapeForType(1) // I piece, 1x4
	out := rotateCW(in)
	if len(out) != 4 || len(out[0]) != 1 {
		t.Errorf("rotated I should be 4x1, got %dx%d", len(out), len(out[0]))
	}
}

func TestRotateCWFourTimesIsIdentity(t *testing.T) {
	for id := 1; id <= NumShapes; id++ {
		orig := ShapeForType(id)
		m := ShapeForType(id)
		for i := 0; i < 4; i++ {
			m = rotateCW(m)
		}
		if !reflect.DeepEqual(m, orig) {
			t.Errorf("type %d: four rotations should restore the shape, got %v", id, m)
		}
	}
}

func TestPieceAccessors(t *testing.T) {
	p := &Piece{Matrix: ShapeForType(6), X: 3, Y: 7} // L piece, 3x2
	if p.Width() != 2 || p.Height() != 3 {
		t.Errorf("L piece dims = %dx%d, expected 3x2", p.Height(), p.Width())
	}
	if p.Type() != 6 {
		t.Errorf("Type() = %d, expected 6", p.Type())
	}

	clone := p.clone()
	clone.Matrix[0][0] = 99
	clone.X = 0
	if p.Matrix[0][0] == 99 || p.X != 3 {
		t.Error("clone must be independent of the original")
	}
}
