package analyzer

// GlyphRect is a glyph's bounding box in source image pixels
type GlyphRect struct {
	SX int `yaml:"sx"`
	SY int `yaml:"sy"`
	W  int `yaml:"w"`
	H  int `yaml:"h"`
}

// MapFixedCells lays up to n cells of CellW x CellH over the detected rows,
// left to right from each row's margin. Every cell gets SY = 0 so that uneven
// row heights cannot shift glyphs vertically within the atlas.
func MapFixedCells(geo *GridGeometry, n int) []GlyphRect {
	rects := []GlyphRect{}
	if geo.CellW <= 0 {
		return rects
	}

	for _, row := range geo.RowLefts {
		if len(rects) >= n {
			break
		}
		cols := max(0, (geo.ImageWidth-row.X)/geo.CellW)
		for c := 0; c < cols && len(rects) < n; c++ {
			rects = append(rects, GlyphRect{
				SX: row.X + c*geo.CellW,
				SY: 0,
				W:  geo.CellW,
				H:  geo.CellH,
			})
		}
	}

	return rects
}

// MapVariableWidth assigns column blocks to rows by their start column and
// emits one rectangle per block using its true width and the row's top.
// If fewer than n rectangles result, the fixed-cell layout supplies the rest,
// starting again from the first row.
func MapVariableWidth(geo *GridGeometry, n int) []GlyphRect {
	rects := []GlyphRect{}

	if len(geo.ColBlocks) > 0 {
		for i, row := range geo.RowLefts {
			if len(rects) >= n {
				break
			}
			for _, b := range blocksInRow(geo, i) {
				if len(rects) >= n {
					break
				}
				rects = append(rects, GlyphRect{
					SX: b.Start,
					SY: row.Y,
					W:  b.Size,
					H:  geo.CellH,
				})
			}
		}
	}

	if rest := n - len(rects); rest > 0 {
		rects = append(rects, MapFixedCells(geo, rest)...)
	}

	return rects
}

// blocksInRow returns the column blocks whose start falls in row i's span,
// from its left margin up to the next row's margin or the image edge
func blocksInRow(geo *GridGeometry, i int) []Block {
	from := geo.RowLefts[i].X
	to := geo.ImageWidth
	if i+1 < len(geo.RowLefts) {
		to = geo.RowLefts[i+1].X
	}

	var blocks []Block
	for _, b := range geo.ColBlocks {
		if b.Start >= from && b.Start < to {
			blocks = append(blocks, b)
		}
	}
	return blocks
}
