package atlas

// CoordRecord maps one character of the order to its glyph rectangle
type CoordRecord struct {
	Char  string `json:"char" yaml:"char"`
	Index int    `json:"index" yaml:"index"` // Position in the order, 0-based
	SX    int    `json:"sx" yaml:"sx"`
	SY    int    `json:"sy" yaml:"sy"`
	W     int    `json:"w" yaml:"w"`
	H     int    `json:"h" yaml:"h"`
}

// Meta describes the sprite sheet and the detection that produced the coords
type Meta struct {
	Image          string `json:"image" yaml:"image"`
	ImageWidth     int    `json:"imageWidth" yaml:"imageWidth"`
	ImageHeight    int    `json:"imageHeight" yaml:"imageHeight"`
	Mode           string `json:"mode" yaml:"mode"`
	Order          string `json:"order" yaml:"order"`
	DetectedGlyphs int    `json:"detectedGlyphs" yaml:"detectedGlyphs"`
	CharCount      int    `json:"charCount" yaml:"charCount"`
	CellW          int    `json:"cellW,omitempty" yaml:"cellW,omitempty"` // Grid mode only
	CellH          int    `json:"cellH,omitempty" yaml:"cellH,omitempty"` // Grid mode only
}

// Document is the exported coordinate table
type Document struct {
	Meta   Meta          `json:"meta" yaml:"meta"`
	Coords []CoordRecord `json:"coords" yaml:"coords"`
}
