package analyzer

// DenseStripScanner walks a fixed-height strip of tightly packed glyphs,
// one glyph per order entry, assuming a 1 pixel separator between glyphs.
//
// Ink columns of a glyph must be contiguous: a glyph with an empty column
// inside it is cut at that column.
type DenseStripScanner struct {
	Classifier    Classifier
	MaxGlyphWidth int // Width of the search window starting at the cursor
	GlyphHeight   int // Height given to every emitted rectangle
}

// NewDenseStripScanner creates a scanner with default settings
func NewDenseStripScanner() *DenseStripScanner {
	return &DenseStripScanner{
		Classifier:    DefaultClassifier(),
		MaxGlyphWidth: 10,
		GlyphHeight:   5,
	}
}

// Scan emits exactly n rectangles. A window without ink yields a blank
// glyph of width 1 at the cursor.
func (s *DenseStripScanner) Scan(g PixelGrid, n int) []GlyphRect {
	ink := s.inkColumns(g)
	w := len(ink)

	glyphs := make([]GlyphRect, 0, n)
	cursor := 0
	for i := 0; i < n; i++ {
		limit := min(cursor+s.MaxGlyphWidth, w)

		left := -1
		for x := cursor; x < limit; x++ {
			if ink[x] {
				left = x
				break
			}
		}

		if left < 0 {
			glyphs = append(glyphs, GlyphRect{SX: cursor, SY: 0, W: 1, H: s.GlyphHeight})
			cursor += 2
			continue
		}

		right := left
		for x := left; x < limit; x++ {
			if !ink[x] {
				break
			}
			right = x
		}

		glyphs = append(glyphs, GlyphRect{
			SX: left,
			SY: 0,
			W:  right - left + 1,
			H:  s.GlyphHeight,
		})
		cursor = right + 2
	}

	return glyphs
}

// Detect implements Detector
func (s *DenseStripScanner) Detect(g PixelGrid, order []rune) Result {
	return Result{Glyphs: s.Scan(g, len(order))}
}

// inkColumns reports for each column whether it holds any ink over the full height
func (s *DenseStripScanner) inkColumns(g PixelGrid) []bool {
	proj := BuildProjections(g, s.Classifier)
	ink := make([]bool, len(proj.Cols))
	for x, v := range proj.Cols {
		ink[x] = v > 0
	}
	return ink
}
