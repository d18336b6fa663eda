package analyzer

// Sample is a single 8-bit pixel read from a PixelGrid.
// HasAlpha is false when the source has no alpha channel; such samples
// are treated as fully opaque regardless of A.
type Sample struct {
	R, G, B, A uint8
	HasAlpha   bool
}

// PixelGrid is a read-only, random-access view over a decoded image.
// Coordinates run from (0,0) to (Width()-1, Height()-1).
type PixelGrid interface {
	Width() int
	Height() int
	Sample(x, y int) Sample
}

// Classifier decides whether a pixel is ink (glyph material) or background.
type Classifier struct {
	AlphaThreshold int // Minimum alpha that still counts as ink
	WhiteThreshold int // Channels above this value on all of R, G, B read as background
}

// DefaultClassifier returns the classifier used when nothing is configured
func DefaultClassifier() Classifier {
	return Classifier{
		AlphaThreshold: 10,
		WhiteThreshold: 240,
	}
}

// IsInk reports whether s counts as a foreground pixel
func (c Classifier) IsInk(s Sample) bool {
	a := int(s.A)
	if !s.HasAlpha {
		a = 255
	}
	if a < c.AlphaThreshold {
		return false
	}

	w := c.WhiteThreshold
	return !(int(s.R) > w && int(s.G) > w && int(s.B) > w)
}

func (c Classifier) inkAt(g PixelGrid, x, y int) bool {
	return c.IsInk(g.Sample(x, y))
}
