package pipeline

import (
	"bytes"
	"image"
	"image/png"
)

// encodePNG re-encodes a decoded image back to bytes so it can be handed to
// the OCR loop, which operates on raw image bytes rather than a decoded
// image.Image.
func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
