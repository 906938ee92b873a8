// Package photo prepares uploaded profile photos for storage.
package photo

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	margin      = 10
	jpegQuality = 90
)

// ErrUnsupportedImage is returned for payloads that are not a decodable image.
var ErrUnsupportedImage = errors.New("unsupported image")

var watermarkColor = color.NRGBA{R: 255, G: 255, B: 255, A: 128}

// Watermarker stamps a text label into the bottom-right corner of images.
type Watermarker struct {
	text string
	face font.Face
}

func NewWatermarker(text string) *Watermarker {
	return &Watermarker{text: text, face: basicfont.Face7x13}
}

// Apply returns a copy of img with the label drawn 10px from the bottom-right edges.
// Labels wider than the image are clipped at the left edge.
func (w *Watermarker) Apply(img image.Image) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Draw(dst, dst.Bounds(), img, b.Min, xdraw.Src)

	if w.text == "" {
		return dst
	}

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(watermarkColor),
		Face: w.face,
	}
	metrics := w.face.Metrics()
	width := d.MeasureString(w.text).Ceil()

	x := max(dst.Bounds().Dx()-width-margin, 0)
	y := dst.Bounds().Dy() - margin - metrics.Descent.Ceil()
	d.Dot = fixed.P(x, y)
	d.DrawString(w.text)

	return dst
}

// Process decodes raw (JPEG, PNG or GIF), applies the watermark and encodes the result as JPEG.
func (w *Watermarker) Process(raw []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedImage, err)
	}

	var out bytes.Buffer
	if err := jpeg.Encode(&out, w.Apply(img), &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode jpeg: %w", err)
	}
	return out.Bytes(), nil
}
