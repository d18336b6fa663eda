package source

import (
	"image"
	"image/draw"

	"github.com/ivlev/glyphcoords/internal/analyzer"
)

// Grid exposes a decoded image as an analyzer.PixelGrid of straight
// (non-premultiplied) 8-bit samples with the origin moved to (0,0).
type Grid struct {
	img      *image.NRGBA
	hasAlpha bool
}

// NewGrid converts img into buf and wraps it. buf may be nil or of the wrong
// size, in which case a new buffer is allocated; Buffer returns the one in use.
func NewGrid(img image.Image, buf *image.NRGBA) *Grid {
	b := img.Bounds()
	rect := image.Rect(0, 0, b.Dx(), b.Dy())

	nrgba, ok := img.(*image.NRGBA)
	if !ok || b.Min != (image.Point{}) {
		if buf == nil || buf.Rect != rect {
			buf = image.NewNRGBA(rect)
		}
		draw.Draw(buf, rect, img, b.Min, draw.Src)
		nrgba = buf
	}

	return &Grid{img: nrgba, hasAlpha: hasAlphaChannel(img)}
}

// Buffer returns the pixel buffer backing the grid
func (g *Grid) Buffer() *image.NRGBA {
	return g.img
}

func (g *Grid) Width() int {
	return g.img.Rect.Dx()
}

func (g *Grid) Height() int {
	return g.img.Rect.Dy()
}

func (g *Grid) Sample(x, y int) analyzer.Sample {
	i := g.img.PixOffset(x, y)
	p := g.img.Pix[i : i+4 : i+4]
	return analyzer.Sample{R: p[0], G: p[1], B: p[2], A: p[3], HasAlpha: g.hasAlpha}
}

// hasAlphaChannel reports false for color models that carry no alpha at all
func hasAlphaChannel(img image.Image) bool {
	switch img.(type) {
	case *image.Gray, *image.Gray16, *image.YCbCr, *image.CMYK:
		return false
	default:
		return true
	}
}
