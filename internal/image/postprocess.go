package image

import (
	"bytes"
	"fmt"
	stdimage "image"
	"image/color"
	"image/draw"
	"image/jpeg"
	_ "image/png" // provider may return PNG

	"github.com/nfnt/resize"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Canonical output geometry. Every stored illustration is normalized to
// this 16:9 canvas regardless of what the provider returned.
const (
	CanvasWidth  = 960
	CanvasHeight = 540
)

// MaxEncodedBytes is the ceiling for an encoded illustration.
const MaxEncodedBytes = 300 * 1024

// Watermark is the attribution stamped into the bottom-right corner.
const Watermark = "AI-generated · wortwerk"

// PostProcess normalizes raw provider output into the stored form:
// decode, redraw onto the canonical 960x540 canvas (cover + center crop),
// stamp the attribution watermark, and re-encode as JPEG under the size
// ceiling. The chain is deterministic for fixed input bytes.
func PostProcess(data []byte) ([]byte, error) {
	src, _, err := stdimage.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode generated image: %w", err)
	}

	canvas := redrawOnCanvas(src)
	stampWatermark(canvas)

	return encodeJPEG(canvas)
}

// redrawOnCanvas scales the source to cover the canonical canvas and
// center-crops the overflow.
func redrawOnCanvas(src stdimage.Image) *stdimage.RGBA {
	srcW := src.Bounds().Dx()
	srcH := src.Bounds().Dy()

	// Cover scaling: the shorter relative side dictates the factor.
	scaleW := float64(CanvasWidth) / float64(srcW)
	scaleH := float64(CanvasHeight) / float64(srcH)
	scale := scaleW
	if scaleH > scale {
		scale = scaleH
	}

	newW := int(float64(srcW)*scale + 0.5)
	newH := int(float64(srcH)*scale + 0.5)
	if newW < CanvasWidth {
		newW = CanvasWidth
	}
	if newH < CanvasHeight {
		newH = CanvasHeight
	}

	scaled := resize.Resize(uint(newW), uint(newH), src, resize.Lanczos3)

	canvas := stdimage.NewRGBA(stdimage.Rect(0, 0, CanvasWidth, CanvasHeight))
	offset := stdimage.Point{X: (newW - CanvasWidth) / 2, Y: (newH - CanvasHeight) / 2}
	draw.Draw(canvas, canvas.Bounds(), scaled, offset, draw.Src)

	return canvas
}

// stampWatermark draws the attribution text bottom-right with a dark
// stroke so it stays legible on arbitrary backgrounds.
func stampWatermark(canvas *stdimage.RGBA) {
	face := basicfont.Face7x13
	textWidth := font.MeasureString(face, Watermark).Ceil()

	x := CanvasWidth - textWidth - 12
	y := CanvasHeight - 12

	stroke := color.RGBA{0, 0, 0, 200}
	fill := color.RGBA{255, 255, 255, 230}

	for _, off := range []stdimage.Point{{-1, 0}, {1, 0}, {0, -1}, {0, 1}, {1, 1}} {
		drawText(canvas, face, Watermark, x+off.X, y+off.Y, stroke)
	}
	drawText(canvas, face, Watermark, x, y, fill)
}

func drawText(dst draw.Image, face font.Face, text string, x, y int, c color.Color) {
	d := font.Drawer{
		Dst:  dst,
		Src:  stdimage.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

// encodeJPEG re-encodes at descending quality until the result fits under
// the size ceiling. The floor quality always lands far below the ceiling
// for the canonical canvas size.
func encodeJPEG(img stdimage.Image) ([]byte, error) {
	for _, quality := range []int{85, 75, 65, 55, 45} {
		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, fmt.Errorf("failed to encode image: %w", err)
		}
		if buf.Len() <= MaxEncodedBytes {
			return buf.Bytes(), nil
		}
	}
	return nil, fmt.Errorf("image exceeds %d bytes even at minimum quality", MaxEncodedBytes)
}
