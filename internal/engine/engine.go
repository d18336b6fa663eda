package engine

import (
	"context"
	"fmt"
	"image"
	"log/slog"

	"github.com/ivlev/glyphcoords/internal/analyzer"
	"github.com/ivlev/glyphcoords/internal/atlas"
	"github.com/ivlev/glyphcoords/internal/config"
	"github.com/ivlev/glyphcoords/internal/source"
	"github.com/ivlev/glyphcoords/internal/system"
)

// orderPreview is how many order characters are echoed in logs
const orderPreview = 60

// Project runs the sprite-to-coordinates pipeline for a configuration
type Project struct {
	Config *config.Config
	Logger *slog.Logger
	pool   *system.ImagePool
}

// NewProject creates a project; a nil logger discards all output
func NewProject(cfg *config.Config, logger *slog.Logger) *Project {
	if logger == nil {
		logger = newNopLogger()
	}
	return &Project{
		Config: cfg,
		Logger: logger,
		pool:   system.NewImagePool(),
	}
}

// Run processes the configured input and writes every requested output
func (p *Project) Run(ctx context.Context) (*atlas.Document, error) {
	if err := p.Config.Validate(); err != nil {
		return nil, err
	}

	input := p.Config.InputPath
	if input == "" {
		latest, err := system.FindLatestSprite(p.Config.InputDir)
		if err != nil {
			return nil, fmt.Errorf("no input given: %w", err)
		}
		input = latest
		p.Logger.Info("selected newest sprite", "path", input)
	}

	doc, _, err := p.Process(ctx, input)
	if err != nil {
		return nil, err
	}

	format, err := p.Config.OutputFormat()
	if err != nil {
		return nil, err
	}
	if err := atlas.WriteDocument(doc, p.Config.Output, format); err != nil {
		return nil, err
	}
	p.Logger.Info("saved coords", "count", len(doc.Coords), "path", p.Config.Output, "format", format)

	if p.Config.CSVOutput != "" {
		if err := atlas.WriteDocument(doc, p.Config.CSVOutput, atlas.CSV); err != nil {
			return nil, err
		}
		p.Logger.Info("saved csv", "path", p.Config.CSVOutput)
	}

	return doc, nil
}

// Process decodes one sprite sheet and returns its coordinate document.
// The geometry is non-nil in grid mode only.
func (p *Project) Process(ctx context.Context, path string) (*atlas.Document, *analyzer.GridGeometry, error) {
	img, err := p.decode(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	return p.Analyze(img, path)
}

// Analyze runs detection and order mapping over an already decoded image
func (p *Project) Analyze(img image.Image, name string) (*atlas.Document, *analyzer.GridGeometry, error) {
	detector, err := analyzer.NewDetector(p.Config.DetectorOptions())
	if err != nil {
		return nil, nil, err
	}

	b := img.Bounds()
	buf := p.pool.Get(image.Rect(0, 0, b.Dx(), b.Dy()))
	grid := source.NewGrid(img, buf)
	defer p.pool.Put(buf)

	order := atlas.NormalizeOrder(p.Config.Order)
	p.Logger.Info("using order", "image", name, "len", len(order), "order", preview(order))

	res := detector.Detect(grid, order)
	p.Logger.Info("detected glyphs", "image", name, "mode", p.Config.Mode, "count", len(res.Glyphs))
	if res.Geometry != nil {
		p.Logger.Debug("grid geometry", "image", name,
			"cellW", res.Geometry.CellW, "cellH", res.Geometry.CellH,
			"rows", len(res.Geometry.RowLefts), "colsGuess", res.Geometry.ColsGuessCount)
	}

	coords := atlas.ZipOrderWithGlyphs(order, res.Glyphs)
	p.Logger.Info("mapped chars", "image", name, "count", len(coords), "order", len(order))
	if p.Logger.Enabled(context.Background(), slog.LevelDebug) {
		for _, c := range coords {
			p.Logger.Debug("glyph", "index", c.Index, "char", c.Char, "sx", c.SX, "sy", c.SY, "w", c.W, "h", c.H)
		}
	}
	if len(coords) < len(order) {
		p.Logger.Warn("order longer than detected glyphs, trailing characters dropped",
			"image", name, "dropped", len(order)-len(coords))
	}

	doc := &atlas.Document{
		Meta: atlas.Meta{
			Image:          name,
			ImageWidth:     grid.Width(),
			ImageHeight:    grid.Height(),
			Mode:           p.Config.Mode.String(),
			Order:          string(order),
			DetectedGlyphs: len(res.Glyphs),
			CharCount:      len(coords),
		},
		Coords: coords,
	}
	if res.Geometry != nil {
		doc.Meta.CellW = res.Geometry.CellW
		doc.Meta.CellH = res.Geometry.CellH
	}

	return doc, res.Geometry, nil
}

// Inspect infers the grid geometry of a sprite sheet regardless of the configured mode
func (p *Project) Inspect(ctx context.Context, path string) (*analyzer.GridGeometry, error) {
	img, err := p.decode(ctx, path)
	if err != nil {
		return nil, err
	}

	opts := p.Config.DetectorOptions()
	d := &analyzer.GridDetector{Classifier: opts.Classifier, CellW: opts.CellW, CellH: opts.CellH}

	b := img.Bounds()
	buf := p.pool.Get(image.Rect(0, 0, b.Dx(), b.Dy()))
	defer p.pool.Put(buf)

	return d.Geometry(source.NewGrid(img, buf)), nil
}

func (p *Project) decode(ctx context.Context, path string) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	src, err := source.Open(path)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	if src.PageCount() == 0 {
		return nil, fmt.Errorf("%s: no pages", path)
	}

	w, h, err := src.GetPageDimensions(p.Config.Page)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	p.Logger.Debug("page size", "path", path, "page", p.Config.Page, "pages", src.PageCount(), "width", w, "height", h)

	img, err := src.RenderPage(p.Config.Page, p.Config.DPI)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	b := img.Bounds()
	p.Logger.Debug("decoded sprite", "path", path, "width", b.Dx(), "height", b.Dy())

	return img, nil
}

func preview(order []rune) string {
	if len(order) <= orderPreview {
		return string(order)
	}
	return string(order[:orderPreview]) + "..."
}
