package atlas

import (
	"strings"
	"unicode"

	"github.com/ivlev/glyphcoords/internal/analyzer"
)

// ZipOrderWithGlyphs pairs order[i] with glyphs[i]. Whichever side is longer
// is truncated silently.
func ZipOrderWithGlyphs(order []rune, glyphs []analyzer.GlyphRect) []CoordRecord {
	n := min(len(order), len(glyphs))
	coords := make([]CoordRecord, 0, n)
	for i := 0; i < n; i++ {
		g := glyphs[i]
		coords = append(coords, CoordRecord{
			Char:  string(order[i]),
			Index: i,
			SX:    g.SX,
			SY:    g.SY,
			W:     g.W,
			H:     g.H,
		})
	}
	return coords
}

// DefaultOrder returns the alternating Latin alphabet "AaBbCc...Zz"
func DefaultOrder() string {
	var sb strings.Builder
	for ch := 'A'; ch <= 'Z'; ch++ {
		sb.WriteRune(ch)
		sb.WriteRune(unicode.ToLower(ch))
	}
	return sb.String()
}

// NormalizeOrder strips all whitespace from s. Only an empty s yields the
// default order; an order of nothing but whitespace maps no glyphs.
func NormalizeOrder(s string) []rune {
	if s == "" {
		return []rune(DefaultOrder())
	}
	return []rune(strings.Join(strings.Fields(s), ""))
}
