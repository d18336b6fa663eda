package analyzer

var (
	inkSample   = Sample{R: 0, G: 0, B: 0, A: 255, HasAlpha: true}
	paperSample = Sample{R: 255, G: 255, B: 255, A: 255, HasAlpha: true}
)

// testGrid is an in-memory PixelGrid for tests
type testGrid struct {
	w, h int
	px   []Sample
}

func newTestGrid(w, h int) *testGrid {
	g := &testGrid{w: w, h: h, px: make([]Sample, w*h)}
	for i := range g.px {
		g.px[i] = paperSample
	}
	return g
}

// gridFromRows builds a grid where '#' is ink and any other byte is paper
func gridFromRows(rows ...string) *testGrid {
	g := newTestGrid(len(rows[0]), len(rows))
	for y, row := range rows {
		for x := 0; x < len(row); x++ {
			if row[x] == '#' {
				g.set(x, y, inkSample)
			}
		}
	}
	return g
}

func (g *testGrid) Width() int  { return g.w }
func (g *testGrid) Height() int { return g.h }

func (g *testGrid) Sample(x, y int) Sample {
	return g.px[y*g.w+x]
}

func (g *testGrid) set(x, y int, s Sample) {
	g.px[y*g.w+x] = s
}

// fill paints ink over the half-open rectangle [x0,x1) x [y0,y1)
func (g *testGrid) fill(x0, y0, x1, y1 int) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			g.set(x, y, inkSample)
		}
	}
}
