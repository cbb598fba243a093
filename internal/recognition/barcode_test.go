package recognition

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/oned"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeBarcode(t *testing.T) {
	// Render a real EAN-13 and read it back.
	writer := oned.NewEAN13Writer()
	matrix, err := writer.Encode("5012345678900", gozxing.BarcodeFormat_EAN_13, 300, 120, nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, matrix))

	barcode, err := DecodeBarcode(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "5012345678900", barcode)
}

func TestDecodeBarcodeNoBarcode(t *testing.T) {
	blank := image.NewRGBA(image.Rect(0, 0, 100, 100))
	for x := 0; x < 100; x++ {
		for y := 0; y < 100; y++ {
			blank.Set(x, y, color.White)
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, blank))

	_, err := DecodeBarcode(buf.Bytes())
	assert.ErrorIs(t, err, ErrNoBarcode)
}

func TestDecodeBarcodeGarbageInput(t *testing.T) {
	_, err := DecodeBarcode([]byte("not an image"))
	assert.Error(t, err)
}
