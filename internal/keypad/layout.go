package keypad

import "fmt"

// Canonical keypad geometry. The bank renders the keypad as a 5x2 grid of
// digit cells inside a 484x190 canvas; sensitive-operation keypads reuse the
// same grid at an integer multiple of this size.
const (
	CanvasWidth  = 484
	CanvasHeight = 190
	CellWidth    = 90
	CellHeight   = 88

	gridColumns = 5
	gridRows    = 2
	originX     = 2
	originY     = 2
	strideX     = 96
	strideY     = 94
)

// Cell is one digit cell rectangle inside the keypad canvas.
type Cell struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Layout describes the keypad canvas and its ten cell rectangles, ordered
// left to right, top to bottom.
type Layout struct {
	Width  int
	Height int
	Cells  [10]Cell
}

// Default returns the unscaled canonical layout.
func Default() Layout {
	l := Layout{Width: CanvasWidth, Height: CanvasHeight}
	for i := range l.Cells {
		col := i % gridColumns
		row := i / gridColumns
		l.Cells[i] = Cell{
			X:      originX + col*strideX,
			Y:      originY + row*strideY,
			Width:  CellWidth,
			Height: CellHeight,
		}
	}
	return l
}

// Scale returns a copy of the layout with every dimension multiplied by the
// given integer factor.
func (l Layout) Scale(multiplier int) (Layout, error) {
	if multiplier < 1 {
		return Layout{}, fmt.Errorf("keypad: multiplier must be >= 1, got %d", multiplier)
	}
	scaled := Layout{Width: l.Width * multiplier, Height: l.Height * multiplier}
	for i, c := range l.Cells {
		scaled.Cells[i] = Cell{
			X:      c.X * multiplier,
			Y:      c.Y * multiplier,
			Width:  c.Width * multiplier,
			Height: c.Height * multiplier,
		}
	}
	return scaled, nil
}

// MultiplierFor derives the integer scale factor of a fetched keypad image
// from its pixel height. The server advertises a 3800x1520 canvas for
// sensitive operations, which is the canonical canvas at multiplier 8; login
// keypads come back at multiplier 1.
func MultiplierFor(imageHeight int) (int, error) {
	if imageHeight < CanvasHeight || imageHeight%CanvasHeight != 0 {
		return 0, fmt.Errorf("keypad: image height %d is not an integer multiple of %d", imageHeight, CanvasHeight)
	}
	return imageHeight / CanvasHeight, nil
}
