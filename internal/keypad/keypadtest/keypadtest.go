// Package keypadtest builds synthetic keypad fixtures for tests: ten
// visually distinct glyphs and rendered keypad images with any digit
// permutation at any scale multiplier.
package keypadtest

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/scabridge/scabridge/internal/keypad"
)

// glyphShade returns the flat luminance used for a digit's synthetic glyph.
// Flat shades survive downscaling exactly, which keeps fixtures at any
// multiplier classifiable.
func glyphShade(digit int) uint8 {
	return uint8(10 + digit*24)
}

// Glyphs returns one synthetic glyph image per digit at template size.
func Glyphs() map[int]image.Image {
	glyphs := make(map[int]image.Image, 10)
	for digit := 0; digit <= 9; digit++ {
		img := image.NewGray(image.Rect(0, 0, keypad.CellWidth, keypad.CellHeight))
		fill(img, img.Bounds(), glyphShade(digit))
		glyphs[digit] = img
	}
	return glyphs
}

// Library builds a template library from the synthetic glyphs.
func Library(t *testing.T) *keypad.TemplateLibrary {
	t.Helper()
	lib, err := keypad.FromImages(Glyphs())
	if err != nil {
		t.Fatalf("build template library: %v", err)
	}
	return lib
}

// Render draws a keypad image with perm[i] as the digit in cell i, scaled by
// the given multiplier.
func Render(t *testing.T, perm [10]int, multiplier int) image.Image {
	t.Helper()
	layout, err := keypad.Default().Scale(multiplier)
	if err != nil {
		t.Fatalf("scale layout: %v", err)
	}
	img := image.NewGray(image.Rect(0, 0, layout.Width, layout.Height))
	fill(img, img.Bounds(), 255)
	for i, cell := range layout.Cells {
		fill(img, image.Rect(cell.X, cell.Y, cell.X+cell.Width, cell.Y+cell.Height), glyphShade(perm[i]))
	}
	return img
}

// RenderPNG renders a keypad like Render and encodes it as PNG bytes.
func RenderPNG(t *testing.T, perm [10]int, multiplier int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, Render(t, perm, multiplier)); err != nil {
		t.Fatalf("encode keypad png: %v", err)
	}
	return buf.Bytes()
}

func fill(img *image.Gray, r image.Rectangle, shade uint8) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetGray(x, y, color.Gray{Y: shade})
		}
	}
}
