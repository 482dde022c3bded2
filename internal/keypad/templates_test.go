package keypad_test

import (
	"image"
	"image/color"
	"testing"

	"github.com/scabridge/scabridge/internal/keypad"
	"github.com/scabridge/scabridge/internal/keypad/keypadtest"
)

func flatGlyph(shade uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, keypad.CellWidth, keypad.CellHeight))
	for y := 0; y < keypad.CellHeight; y++ {
		for x := 0; x < keypad.CellWidth; x++ {
			img.SetGray(x, y, color.Gray{Y: shade})
		}
	}
	return img
}

func TestMatchRoundTripsEveryTemplate(t *testing.T) {
	lib := keypadtest.Library(t)
	for digit, glyph := range keypadtest.Glyphs() {
		got, diff := lib.Match(glyph.(*image.Gray))
		if got != digit {
			t.Fatalf("template %d matched as %d", digit, got)
		}
		if diff != 0 {
			t.Fatalf("template %d has nonzero self-difference %f", digit, diff)
		}
	}
}

func TestMatchTieBreaksOnLowerDigit(t *testing.T) {
	// Digits 2 and 6 share a glyph; a strict less-than comparison must keep
	// the first-encountered match.
	glyphs := keypadtest.Glyphs()
	glyphs[6] = flatGlyph(58)
	glyphs[2] = flatGlyph(58)
	lib, err := keypad.FromImages(glyphs)
	if err != nil {
		t.Fatalf("build library: %v", err)
	}

	got, _ := lib.Match(flatGlyph(58))
	if got != 2 {
		t.Fatalf("tie resolved to %d, want 2", got)
	}
}
