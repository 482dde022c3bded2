package sca

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
)

func decodePNG(raw []byte) (image.Image, error) {
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("sca: decode keypad image: %w", err)
	}
	return img, nil
}
