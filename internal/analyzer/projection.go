package analyzer

// Projection holds per-column and per-row ink counts of a grid
type Projection struct {
	Cols []int // len == grid width
	Rows []int // len == grid height
}

// BuildProjections counts ink pixels along every column and row in a single pass
func BuildProjections(g PixelGrid, c Classifier) Projection {
	w, h := g.Width(), g.Height()
	p := Projection{
		Cols: make([]int, w),
		Rows: make([]int, h),
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if c.inkAt(g, x, y) {
				p.Cols[x]++
				p.Rows[y]++
			}
		}
	}

	return p
}

// maxCount returns the largest value in counts, or 0 for an empty slice
func maxCount(counts []int) int {
	m := 0
	for _, v := range counts {
		if v > m {
			m = v
		}
	}
	return m
}
