package analyzer

// SingleRowSplitter splits a one-row sprite on vertical whitespace.
// Glyphs always span the full image height with SY = 0, which keeps every
// glyph on the same baseline at the cost of a loose vertical box.
type SingleRowSplitter struct {
	Classifier    Classifier
	GapTolerance  int
	MinBlockWidth int
}

// NewSingleRowSplitter creates a splitter with default settings
func NewSingleRowSplitter() *SingleRowSplitter {
	return &SingleRowSplitter{
		Classifier:    DefaultClassifier(),
		GapTolerance:  1, // Joins dotted strokes such as i and j
		MinBlockWidth: 2, // Drops single-column noise
	}
}

// Split returns glyph rectangles in left-to-right order
func (s *SingleRowSplitter) Split(g PixelGrid) []GlyphRect {
	proj := BuildProjections(g, s.Classifier)
	blocks := DetectBlocksWith(proj.Cols, BlockOptions{
		GapTolerance:  s.GapTolerance,
		MinBlockWidth: s.MinBlockWidth,
	})

	glyphs := make([]GlyphRect, 0, len(blocks))
	for _, b := range blocks {
		glyphs = append(glyphs, GlyphRect{
			SX: b.Start,
			SY: 0,
			W:  b.Size,
			H:  g.Height(),
		})
	}

	return glyphs
}

// Detect implements Detector. The order is ignored: every detected glyph is
// returned and truncation is left to the order mapper.
func (s *SingleRowSplitter) Detect(g PixelGrid, order []rune) Result {
	return Result{Glyphs: s.Split(g)}
}
