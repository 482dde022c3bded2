package keypad

import "testing"

func TestDefaultLayoutGeometry(t *testing.T) {
	l := Default()

	if l.Width != CanvasWidth || l.Height != CanvasHeight {
		t.Fatalf("canvas is %dx%d, want %dx%d", l.Width, l.Height, CanvasWidth, CanvasHeight)
	}

	for i, cell := range l.Cells {
		if cell.Width != CellWidth || cell.Height != CellHeight {
			t.Fatalf("cell %d is %dx%d, want %dx%d", i, cell.Width, cell.Height, CellWidth, CellHeight)
		}
		if cell.X < 0 || cell.Y < 0 || cell.X+cell.Width > l.Width || cell.Y+cell.Height > l.Height {
			t.Fatalf("cell %d %+v exceeds canvas", i, cell)
		}
	}

	// No two cells overlap.
	for i := 0; i < len(l.Cells); i++ {
		for j := i + 1; j < len(l.Cells); j++ {
			a, b := l.Cells[i], l.Cells[j]
			if a.X < b.X+b.Width && b.X < a.X+a.Width && a.Y < b.Y+b.Height && b.Y < a.Y+a.Height {
				t.Fatalf("cells %d and %d overlap", i, j)
			}
		}
	}
}

func TestLayoutScale(t *testing.T) {
	scaled, err := Default().Scale(8)
	if err != nil {
		t.Fatalf("scale: %v", err)
	}

	if scaled.Width != CanvasWidth*8 || scaled.Height != CanvasHeight*8 {
		t.Fatalf("scaled canvas is %dx%d", scaled.Width, scaled.Height)
	}
	base := Default()
	for i, cell := range scaled.Cells {
		want := Cell{X: base.Cells[i].X * 8, Y: base.Cells[i].Y * 8, Width: CellWidth * 8, Height: CellHeight * 8}
		if cell != want {
			t.Fatalf("scaled cell %d = %+v, want %+v", i, cell, want)
		}
	}
}

func TestLayoutScaleRejectsZero(t *testing.T) {
	if _, err := Default().Scale(0); err == nil {
		t.Fatalf("expected error for multiplier 0")
	}
}

func TestMultiplierFor(t *testing.T) {
	cases := []struct {
		height  int
		want    int
		wantErr bool
	}{
		{height: CanvasHeight, want: 1},
		{height: CanvasHeight * 8, want: 8},
		{height: CanvasHeight + 1, wantErr: true},
		{height: CanvasHeight / 2, wantErr: true},
	}
	for _, tc := range cases {
		got, err := MultiplierFor(tc.height)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("height %d: expected error", tc.height)
			}
			continue
		}
		if err != nil {
			t.Fatalf("height %d: %v", tc.height, err)
		}
		if got != tc.want {
			t.Fatalf("height %d: got %d, want %d", tc.height, got, tc.want)
		}
	}
}
