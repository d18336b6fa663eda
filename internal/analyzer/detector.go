package analyzer

// Result is the output of a Detector
type Result struct {
	Glyphs   []GlyphRect
	Geometry *GridGeometry // Set by the grid detector only
}

// Detector is the interface for glyph detection strategies
type Detector interface {
	Detect(g PixelGrid, order []rune) Result
}

// GridDetector infers a cell grid and lays the order out over it
type GridDetector struct {
	Classifier Classifier
	CellW      int // Overrides the inferred cell width when > 0
	CellH      int // Overrides the inferred cell height when > 0
	Mapping    Mapping
}

// NewGridDetector creates a grid detector with default settings
func NewGridDetector() *GridDetector {
	return &GridDetector{
		Classifier: DefaultClassifier(),
		Mapping:    FixedCells,
	}
}

// Geometry infers the grid layout of g, applying any configured cell size
func (d *GridDetector) Geometry(g PixelGrid) *GridGeometry {
	geo := InferGrid(g, d.Classifier)
	if d.CellW > 0 && d.CellH > 0 {
		geo.OverrideCell(d.CellW, d.CellH)
	}
	return geo
}

// Detect implements Detector
func (d *GridDetector) Detect(g PixelGrid, order []rune) Result {
	geo := d.Geometry(g)

	var glyphs []GlyphRect
	switch d.Mapping {
	case VariableWidth:
		glyphs = MapVariableWidth(geo, len(order))
	default:
		glyphs = MapFixedCells(geo, len(order))
	}

	return Result{Glyphs: glyphs, Geometry: geo}
}
