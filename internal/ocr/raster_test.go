package ocr_test

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loandocs/internal/ocr"
)

func encodePNGFixture(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestGrayscale_LuminosityFormula(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.SetRGBA(0, 0, color.RGBA{R: 200, G: 100, B: 50, A: 255})
	img.SetRGBA(1, 0, color.RGBA{R: 0, G: 0, B: 255, A: 128})

	ocr.Grayscale(img)

	// round(0.299*200 + 0.587*100 + 0.114*50) = round(124.2) = 124
	got := img.RGBAAt(0, 0)
	assert.Equal(t, uint8(124), got.R)
	assert.Equal(t, uint8(124), got.G)
	assert.Equal(t, uint8(124), got.B)
	assert.Equal(t, uint8(255), got.A)

	// round(0.114*255) = round(29.07) = 29; alpha passes through untouched.
	got = img.RGBAAt(1, 0)
	assert.Equal(t, uint8(29), got.R)
	assert.Equal(t, uint8(29), got.G)
	assert.Equal(t, uint8(29), got.B)
	assert.Equal(t, uint8(128), got.A)
}

func TestGrayscale_GrayPixelsAreFixedPoints(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.SetRGBA(0, 0, color.RGBA{R: 77, G: 77, B: 77, A: 255})

	ocr.Grayscale(img)

	got := img.RGBAAt(0, 0)
	assert.Equal(t, uint8(77), got.R)
	assert.Equal(t, uint8(77), got.G)
	assert.Equal(t, uint8(77), got.B)
}

func TestRasterize_PNGInput(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 3, 2))
	src.SetRGBA(1, 1, color.RGBA{R: 200, G: 100, B: 50, A: 255})
	fileBytes := encodePNGFixture(t, src)

	img, err := ocr.Rasterize(fileBytes, "image/png", 216)
	require.NoError(t, err)

	assert.Equal(t, 3, img.Bounds().Dx())
	assert.Equal(t, 2, img.Bounds().Dy())

	got := img.RGBAAt(1, 1)
	assert.Equal(t, uint8(124), got.R)
	assert.Equal(t, got.R, got.G)
	assert.Equal(t, got.R, got.B)
}

func TestRasterize_GarbageBytes(t *testing.T) {
	_, err := ocr.Rasterize([]byte("not an image at all"), "image/jpeg", 216)
	require.Error(t, err)

	var unreadable *ocr.UnreadableFileError
	assert.True(t, errors.As(err, &unreadable))
}

func TestRasterize_GarbagePDF(t *testing.T) {
	_, err := ocr.Rasterize([]byte("%PDF-garbage"), "application/pdf", 216)
	require.Error(t, err)

	var unreadable *ocr.UnreadableFileError
	assert.True(t, errors.As(err, &unreadable))
}

func TestEncodePNG_RoundTrip(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	data, err := ocr.EncodePNG(img)
	require.NoError(t, err)

	decoded, format, err := image.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, img.Bounds(), decoded.Bounds())
}
