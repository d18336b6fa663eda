package analyzer

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownMode    = errors.New("analyzer: unknown detection mode")
	ErrUnknownMapping = errors.New("analyzer: unknown grid mapping")
)

// Mode selects the detection strategy
type Mode int

const (
	Grid Mode = iota
	SingleRow
	DenseStrip
)

func (m Mode) String() string {
	switch m {
	case Grid:
		return "grid"
	case SingleRow:
		return "single-row"
	case DenseStrip:
		return "dense-strip"
	default:
		return "?"
	}
}

// ParseMode accepts the canonical mode names and a few aliases
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "grid", "":
		return Grid, nil
	case "single-row", "singlerow", "single":
		return SingleRow, nil
	case "dense-strip", "densestrip", "dense", "smallest":
		return DenseStrip, nil
	default:
		return Grid, fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// MarshalText implements encoding.TextMarshaler
func (m Mode) MarshalText() ([]byte, error) {
	if m < Grid || m > DenseStrip {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMode, int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (m *Mode) UnmarshalText(text []byte) error {
	v, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// Mapping selects how the grid detector distributes the order over cells
type Mapping int

const (
	FixedCells Mapping = iota
	VariableWidth
)

func (m Mapping) String() string {
	switch m {
	case FixedCells:
		return "fixed"
	case VariableWidth:
		return "variable"
	default:
		return "?"
	}
}

// ParseMapping parses "fixed" or "variable"
func ParseMapping(s string) (Mapping, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fixed", "":
		return FixedCells, nil
	case "variable", "blocks":
		return VariableWidth, nil
	default:
		return FixedCells, fmt.Errorf("%w: %q", ErrUnknownMapping, s)
	}
}

// MarshalText implements encoding.TextMarshaler
func (m Mapping) MarshalText() ([]byte, error) {
	if m < FixedCells || m > VariableWidth {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMapping, int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (m *Mapping) UnmarshalText(text []byte) error {
	v, err := ParseMapping(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// Options configures every detector variant; fields irrelevant to the
// selected mode are ignored.
type Options struct {
	Mode       Mode
	Classifier Classifier

	// Grid
	CellW   int
	CellH   int
	Mapping Mapping

	// Single row
	GapTolerance  int
	MinBlockWidth int

	// Dense strip
	MaxGlyphWidth int
	GlyphHeight   int
}

// DefaultOptions returns options matching the per-detector defaults
func DefaultOptions() Options {
	return Options{
		Mode:          Grid,
		Classifier:    DefaultClassifier(),
		Mapping:       FixedCells,
		GapTolerance:  1,
		MinBlockWidth: 2,
		MaxGlyphWidth: 10,
		GlyphHeight:   5,
	}
}

// NewDetector creates a detector based on the selected mode
func NewDetector(opts Options) (Detector, error) {
	switch opts.Mode {
	case Grid:
		return &GridDetector{
			Classifier: opts.Classifier,
			CellW:      opts.CellW,
			CellH:      opts.CellH,
			Mapping:    opts.Mapping,
		}, nil
	case SingleRow:
		return &SingleRowSplitter{
			Classifier:    opts.Classifier,
			GapTolerance:  opts.GapTolerance,
			MinBlockWidth: opts.MinBlockWidth,
		}, nil
	case DenseStrip:
		return &DenseStripScanner{
			Classifier:    opts.Classifier,
			MaxGlyphWidth: opts.MaxGlyphWidth,
			GlyphHeight:   opts.GlyphHeight,
		}, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownMode, int(opts.Mode))
	}
}
