package keypad

import (
	"fmt"
	"image"

	xdraw "golang.org/x/image/draw"
)

// Classified maps each cell index (0-9, grid order) to the digit recognized
// in that cell. A well-formed keypad yields a bijection: every digit appears
// in exactly one cell.
type Classified [10]int

// CellOf returns the index of the cell holding the given digit.
func (c Classified) CellOf(digit int) (int, bool) {
	for cell, d := range c {
		if d == digit {
			return cell, true
		}
	}
	return 0, false
}

// DuplicateDigitError reports a non-bijective classification: the same digit
// was recognized in two cells. It indicates a corrupt capture or a
// layout/multiplier mismatch, never something to guess around.
type DuplicateDigitError struct {
	Digit     int
	FirstCell int
	OtherCell int
}

func (e *DuplicateDigitError) Error() string {
	return fmt.Sprintf("keypad: digit %d classified in both cell %d and cell %d", e.Digit, e.FirstCell, e.OtherCell)
}

// Classify segments the keypad image along the layout's cells and labels each
// cell with its best-matching template digit. The layout must already be
// scaled to the image's resolution; scaled cells are downsampled to the
// template size before matching.
func Classify(img image.Image, layout Layout, lib *TemplateLibrary) (Classified, error) {
	b := img.Bounds()
	var classified Classified
	cellOf := map[int]int{}
	for i, cell := range layout.Cells {
		if cell.X+cell.Width > b.Dx() || cell.Y+cell.Height > b.Dy() {
			return Classified{}, fmt.Errorf("keypad: cell %d exceeds image bounds %dx%d, layout/multiplier mismatch", i, b.Dx(), b.Dy())
		}
		glyph := cropCell(img, cell)
		digit, _ := lib.Match(glyph)
		if first, seen := cellOf[digit]; seen {
			return Classified{}, &DuplicateDigitError{Digit: digit, FirstCell: first, OtherCell: i}
		}
		cellOf[digit] = i
		classified[i] = digit
	}
	return classified, nil
}

// cropCell extracts one cell as a grayscale glyph at template resolution.
func cropCell(img image.Image, cell Cell) *image.Gray {
	min := img.Bounds().Min
	src := image.Rect(min.X+cell.X, min.Y+cell.Y, min.X+cell.X+cell.Width, min.Y+cell.Y+cell.Height)
	glyph := image.NewGray(image.Rect(0, 0, CellWidth, CellHeight))
	if cell.Width == CellWidth && cell.Height == CellHeight {
		xdraw.Draw(glyph, glyph.Bounds(), img, src.Min, xdraw.Src)
		return glyph
	}
	xdraw.ApproxBiLinear.Scale(glyph, glyph.Bounds(), img, src, xdraw.Src, nil)
	return glyph
}
