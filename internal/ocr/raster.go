// Package ocr implements the document processing pipeline: rasterization,
// text recognition, classification and field extraction.
package ocr

import (
	"bytes"
	"image"
	"image/png"
	"math"

	"github.com/gen2brain/go-fitz"
	xdraw "golang.org/x/image/draw"

	_ "image/jpeg" // register decoders for uploaded raster formats
	_ "image/png"
)

// Rasterize converts an upload into a normalized RGBA raster buffer. PDFs have
// their first page rendered at pdfDPI (216 = 3x over the 72 DPI point grid, to
// recover OCR-usable resolution from low-DPI source PDFs); raster images are
// drawn at native resolution. Every buffer is grayscaled before return.
func Rasterize(fileBytes []byte, contentType string, pdfDPI int) (*image.RGBA, error) {
	var (
		img *image.RGBA
		err error
	)
	if contentType == "application/pdf" {
		img, err = rasterizePDF(fileBytes, pdfDPI)
	} else {
		img, err = rasterizeImage(fileBytes)
	}
	if err != nil {
		return nil, err
	}
	Grayscale(img)
	return img, nil
}

func rasterizePDF(fileBytes []byte, dpi int) (*image.RGBA, error) {
	doc, err := fitz.NewFromMemory(fileBytes)
	if err != nil {
		return nil, &UnreadableFileError{Reason: "opening PDF", Err: err}
	}
	defer doc.Close()

	if doc.NumPage() < 1 {
		return nil, &UnreadableFileError{Reason: "PDF has no pages"}
	}
	img, err := doc.ImageDPI(0, float64(dpi))
	if err != nil {
		return nil, &UnreadableFileError{Reason: "rendering PDF page", Err: err}
	}
	return img, nil
}

func rasterizeImage(fileBytes []byte) (*image.RGBA, error) {
	src, _, err := image.Decode(bytes.NewReader(fileBytes))
	if err != nil {
		return nil, &UnreadableFileError{Reason: "decoding image", Err: err}
	}
	bounds := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	xdraw.Copy(dst, image.Point{}, src, bounds, xdraw.Src, nil)
	return dst, nil
}

// Grayscale rewrites every pixel in place with the luminosity transform
// gray = round(0.299R + 0.587G + 0.114B), written back into all three color
// channels. Alpha is untouched.
func Grayscale(img *image.RGBA) {
	pix := img.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		r := float64(pix[i])
		g := float64(pix[i+1])
		b := float64(pix[i+2])
		gray := uint8(math.Round(0.299*r + 0.587*g + 0.114*b))
		pix[i] = gray
		pix[i+1] = gray
		pix[i+2] = gray
	}
}

// EncodePNG serializes a raster buffer for handoff to the recognition engine.
func EncodePNG(img *image.RGBA) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, &UnreadableFileError{Reason: "encoding raster buffer", Err: err}
	}
	return buf.Bytes(), nil
}
