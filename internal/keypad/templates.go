package keypad

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
)

// TemplateLibrary holds one reference glyph per digit 0-9, normalized to the
// unscaled cell size and grayscale.
type TemplateLibrary struct {
	glyphs [10]*image.Gray
}

// LoadDir reads templates named 0.png through 9.png from dir.
func LoadDir(dir string) (*TemplateLibrary, error) {
	glyphs := make(map[int]image.Image, 10)
	for digit := 0; digit <= 9; digit++ {
		path := filepath.Join(dir, fmt.Sprintf("%d.png", digit))
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("keypad: open template %d: %w", digit, err)
		}
		img, err := png.Decode(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("keypad: decode template %d: %w", digit, err)
		}
		glyphs[digit] = img
	}
	return FromImages(glyphs)
}

// FromImages builds a library from in-memory glyph images keyed by digit.
// Every digit 0-9 must be present and every glyph must match the unscaled
// cell size.
func FromImages(glyphs map[int]image.Image) (*TemplateLibrary, error) {
	lib := &TemplateLibrary{}
	for digit := 0; digit <= 9; digit++ {
		img, ok := glyphs[digit]
		if !ok {
			return nil, fmt.Errorf("keypad: missing template for digit %d", digit)
		}
		b := img.Bounds()
		if b.Dx() != CellWidth || b.Dy() != CellHeight {
			return nil, fmt.Errorf("keypad: template %d is %dx%d, want %dx%d", digit, b.Dx(), b.Dy(), CellWidth, CellHeight)
		}
		lib.glyphs[digit] = toGray(img)
	}
	return lib, nil
}

// Match scores the glyph against every template and returns the digit with
// the smallest pixel-difference percentage. Comparison is strict, so on an
// exact tie the lower digit wins.
func (t *TemplateLibrary) Match(glyph *image.Gray) (int, float64) {
	best := 0
	bestDiff := diffPercent(glyph, t.glyphs[0])
	for digit := 1; digit <= 9; digit++ {
		if d := diffPercent(glyph, t.glyphs[digit]); d < bestDiff {
			best = digit
			bestDiff = d
		}
	}
	return best, bestDiff
}

// diffPercent computes the mean absolute per-pixel luminance difference as a
// percentage of full scale. Both images are expected to share dimensions.
func diffPercent(a, b *image.Gray) float64 {
	ab, bb := a.Bounds(), b.Bounds()
	w, h := ab.Dx(), ab.Dy()
	var total int64
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			pa := a.GrayAt(ab.Min.X+x, ab.Min.Y+y).Y
			pb := b.GrayAt(bb.Min.X+x, bb.Min.Y+y).Y
			if pa > pb {
				total += int64(pa - pb)
			} else {
				total += int64(pb - pa)
			}
		}
	}
	return float64(total) / float64(w*h) / 255.0 * 100.0
}

func toGray(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok {
		return g
	}
	b := img.Bounds()
	g := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(g, g.Bounds(), img, b.Min, draw.Src)
	return g
}
