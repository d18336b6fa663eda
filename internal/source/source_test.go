package source

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"

	"github.com/ivlev/glyphcoords/internal/analyzer"
)

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestGridFromNRGBA(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	img.SetNRGBA(1, 1, color.NRGBA{R: 10, G: 20, B: 30, A: 40})

	g := NewGrid(img, nil)

	assert.Same(t, img, g.Buffer())
	assert.Equal(t, 3, g.Width())
	assert.Equal(t, 2, g.Height())
	assert.Equal(t, analyzer.Sample{R: 10, G: 20, B: 30, A: 40, HasAlpha: true}, g.Sample(1, 1))
}

func TestGridUnpremultipliesRGBA(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	// Half transparent red, stored premultiplied
	img.SetRGBA(0, 0, color.RGBA{R: 128, G: 0, B: 0, A: 128})

	s := NewGrid(img, nil).Sample(0, 0)

	assert.Equal(t, uint8(128), s.A)
	assert.InDelta(t, 255, int(s.R), 1)
}

func TestGridGrayHasNoAlpha(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 2, 2))
	img.SetGray(0, 0, color.Gray{Y: 0})
	img.SetGray(1, 0, color.Gray{Y: 255})

	g := NewGrid(img, nil)
	c := analyzer.DefaultClassifier()

	assert.False(t, g.Sample(0, 0).HasAlpha)
	assert.True(t, c.IsInk(g.Sample(0, 0)))
	assert.False(t, c.IsInk(g.Sample(1, 0)))
}

func TestGridShiftsOrigin(t *testing.T) {
	img := image.NewNRGBA(image.Rect(5, 7, 9, 10))
	img.SetNRGBA(5, 7, color.NRGBA{A: 255})

	g := NewGrid(img, nil)

	assert.Equal(t, 4, g.Width())
	assert.Equal(t, 3, g.Height())
	assert.Equal(t, uint8(255), g.Sample(0, 0).A)
	assert.NotSame(t, img, g.Buffer())
}

func TestGridReusesBuffer(t *testing.T) {
	buf := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	img := image.NewGray(image.Rect(0, 0, 4, 4))

	assert.Same(t, buf, NewGrid(img, buf).Buffer())

	// Wrong size is replaced
	other := image.NewGray(image.Rect(0, 0, 5, 4))
	assert.NotSame(t, buf, NewGrid(other, buf).Buffer())
}

func TestListImages(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.png", "a.bmp", "notes.txt", "c.WEBP"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.png"), 0755))

	paths, err := ListImages(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(dir, "a.bmp"),
		filepath.Join(dir, "b.png"),
		filepath.Join(dir, "c.WEBP"),
	}, paths)

	single, err := ListImages(filepath.Join(dir, "b.png"))
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "b.png")}, single)
}

func TestImageSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "strip.png")
	img := image.NewNRGBA(image.Rect(0, 0, 12, 5))
	img.SetNRGBA(3, 2, color.NRGBA{A: 255})
	writePNG(t, path, img)

	src, err := Open(path)
	require.NoError(t, err)
	defer src.Close()

	assert.Equal(t, 1, src.PageCount())

	w, h, err := src.GetPageDimensions(0)
	require.NoError(t, err)
	assert.Equal(t, 12, w)
	assert.Equal(t, 5, h)

	page, err := src.RenderPage(0, 72)
	require.NoError(t, err)
	assert.Equal(t, uint8(255), NewGrid(page, nil).Sample(3, 2).A)

	_, err = src.RenderPage(1, 72)
	assert.ErrorIs(t, err, ErrPageRange)
}

func TestImageSourceDecodesBMP(t *testing.T) {
	path := filepath.Join(t.TempDir(), "font.bmp")
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	img.SetRGBA(2, 1, color.RGBA{A: 255})

	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, bmp.Encode(f, img))
	require.NoError(t, f.Close())

	src, err := Open(path)
	require.NoError(t, err)

	page, err := src.RenderPage(0, 0)
	require.NoError(t, err)

	c := analyzer.DefaultClassifier()
	g := NewGrid(page, nil)
	assert.True(t, c.IsInk(g.Sample(2, 1)))
}

func TestOpenUnsupported(t *testing.T) {
	_, err := Open("font.ttf")
	assert.ErrorIs(t, err, ErrUnsupported)
}
