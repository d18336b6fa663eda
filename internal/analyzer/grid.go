package analyzer

import (
	"math"
	"sort"
)

// peakRatio is the fraction of a projection's maximum a center must reach
const peakRatio = 0.15

// RowBand describes one detected text row: its left margin, top and height
type RowBand struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
	H int `yaml:"h"`
}

// GridGeometry is the inferred layout of a grid-style sprite sheet
type GridGeometry struct {
	ImageWidth     int       `yaml:"imageWidth"`
	ImageHeight    int       `yaml:"imageHeight"`
	CellW          int       `yaml:"cellW"`
	CellH          int       `yaml:"cellH"`
	ColsGuessCount int       `yaml:"colsGuessCount"`
	Rows           []Block   `yaml:"rows"`
	RowLefts       []RowBand `yaml:"rowLefts"`
	ColBlocks      []Block   `yaml:"colBlocks"`

	// Raw projections, kept for debugging a layout
	ColSums []int `yaml:"colSums,omitempty"`
	RowSums []int `yaml:"rowSums,omitempty"`
}

// InferGrid estimates cell size and text rows from the ink projections of g
func InferGrid(g PixelGrid, c Classifier) *GridGeometry {
	w, h := g.Width(), g.Height()

	// Step 1: Projections
	proj := BuildProjections(g, c)

	// Step 2: Local maxima along each axis
	colCenters := findCenters(proj.Cols, peakFloor(proj.Cols))
	rowCenters := findCenters(proj.Rows, peakFloor(proj.Rows))

	// Step 3-4: Median spacing, with block-median and uniform fallbacks
	colBlocks := DetectBlocks(proj.Cols)
	rowBlocks := DetectBlocks(proj.Rows)
	cellW := cellSize(medianSpacing(colCenters), colBlocks, w, len(proj.Cols))
	cellH := cellSize(medianSpacing(rowCenters), rowBlocks, h, len(proj.Rows))

	// Step 5: Left margin of every row band
	rowLefts := make([]RowBand, 0, len(rowBlocks))
	for _, rb := range rowBlocks {
		rowLefts = append(rowLefts, RowBand{
			X: rowLeftMargin(g, c, rb),
			Y: rb.Start,
			H: rb.Size,
		})
	}

	return &GridGeometry{
		ImageWidth:     w,
		ImageHeight:    h,
		CellW:          cellW,
		CellH:          cellH,
		ColsGuessCount: max(1, w/cellW),
		Rows:           rowBlocks,
		RowLefts:       rowLefts,
		ColBlocks:      colBlocks,
		ColSums:        proj.Cols,
		RowSums:        proj.Rows,
	}
}

// OverrideCell replaces the inferred cell size. Non-positive values are ignored.
func (geo *GridGeometry) OverrideCell(cellW, cellH int) {
	if cellW > 0 {
		geo.CellW = cellW
	}
	if cellH > 0 {
		geo.CellH = cellH
	}
	geo.ColsGuessCount = max(1, geo.ImageWidth/geo.CellW)
}

// peakFloor is the minimum height of a projection peak, never below 1
func peakFloor(counts []int) int {
	return max(1, int(float64(maxCount(counts))*peakRatio))
}

// findCenters returns interior local maxima that reach floor.
// When no index qualifies every non-zero index becomes a candidate.
func findCenters(counts []int, floor int) []int {
	centers := []int{}
	for i := 1; i < len(counts)-1; i++ {
		v := counts[i]
		if v > 0 && v >= counts[i-1] && v >= counts[i+1] && v >= floor {
			centers = append(centers, i)
		}
	}

	if len(centers) == 0 {
		for i, v := range counts {
			if v > 0 {
				centers = append(centers, i)
			}
		}
	}

	return centers
}

// medianSpacing returns the median positive distance between consecutive
// centers, or 0 when it cannot be computed
func medianSpacing(centers []int) int {
	if len(centers) < 2 {
		return 0
	}

	gaps := make([]int, 0, len(centers)-1)
	for i := 0; i+1 < len(centers); i++ {
		if d := centers[i+1] - centers[i]; d > 0 {
			gaps = append(gaps, d)
		}
	}
	if len(gaps) == 0 {
		return 0
	}

	return int(math.RoundToEven(median(gaps)))
}

// cellSize resolves one cell dimension through the fallback chain:
// center spacing, then median block size, then uniform division of extent.
func cellSize(spacing int, blocks []Block, extent, samples int) int {
	if spacing > 0 {
		return spacing
	}

	if len(blocks) > 0 {
		sizes := make([]int, len(blocks))
		for i, b := range blocks {
			sizes[i] = b.Size
		}
		if size := int(median(sizes)); size > 0 {
			return size
		}
	}

	return max(1, int(math.RoundToEven(float64(extent)/float64(max(1, samples)))))
}

// median of values; even-length input averages the two central values
func median(values []int) float64 {
	sorted := append([]int(nil), values...)
	sort.Ints(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return float64(sorted[mid])
	}
	return float64(sorted[mid-1]+sorted[mid]) / 2
}

// rowLeftMargin finds the first column holding ink within the row band, or 0
func rowLeftMargin(g PixelGrid, c Classifier, band Block) int {
	for x := 0; x < g.Width(); x++ {
		for y := band.Start; y <= band.End; y++ {
			if c.inkAt(g, x, y) {
				return x
			}
		}
	}
	return 0
}
