package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/ivlev/glyphcoords/internal/analyzer"
	"github.com/ivlev/glyphcoords/internal/config"
	"github.com/ivlev/glyphcoords/internal/engine"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

// detectorFlags tune glyph detection and are shared by every command
func detectorFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "order", Usage: "characters in sprite order, whitespace ignored (default AaBb...Zz)"},
		&cli.StringFlag{Name: "mode", Usage: "detection mode: grid, single-row, dense-strip"},
		&cli.BoolFlag{Name: "singleRow", Usage: "same as --mode single-row"},
		&cli.StringFlag{Name: "mapping", Usage: "grid mapping: fixed, variable"},
		&cli.IntFlag{Name: "cellW", Usage: "cell width override for grid mode"},
		&cli.IntFlag{Name: "cellH", Usage: "cell height override for grid mode"},
		&cli.IntFlag{Name: "gap", Usage: "blank columns tolerated inside a glyph (single-row)"},
		&cli.IntFlag{Name: "minGlyphW", Usage: "narrowest glyph kept (single-row)"},
		&cli.IntFlag{Name: "maxGlyphW", Usage: "search window width (dense-strip)"},
		&cli.IntFlag{Name: "glyphH", Usage: "glyph height (dense-strip)"},
		&cli.IntFlag{Name: "alpha", Usage: "alpha below this is background"},
		&cli.IntFlag{Name: "white", Usage: "RGB channels all above this are background"},
		&cli.IntFlag{Name: "page", Usage: "PDF page index"},
		&cli.IntFlag{Name: "dpi", Usage: "PDF rasterization resolution"},
	}
}

func main() {
	app := cli.NewApp()

	app.Name = "glyphcoords"
	app.Usage = "Extract glyph coordinates from bitmap font sprite sheets"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			EnvVars: []string{"GLYPHCOORDS_CONFIG"},
			Usage:   "YAML configuration file",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:      "detect",
			Usage:     "Detect glyphs in one sprite sheet and save their coordinates",
			ArgsUsage: "[IMAGE]",
			Flags: append([]cli.Flag{
				&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "output file (default coords.json)"},
				&cli.StringFlag{Name: "csv", Usage: "also write CSV to this path"},
				&cli.StringFlag{Name: "format", Usage: "json, csv, yaml or sqlite (default: from --out extension)"},
				&cli.StringFlag{Name: "dir", Usage: "directory searched for the newest sprite when IMAGE is omitted (default sprites)"},
			}, detectorFlags()...),
			Action: func(c *cli.Context) error {
				cfg, err := loadConfig(c)
				if err != nil {
					return cli.Exit(err, 1)
				}
				if c.NArg() > 0 {
					cfg.InputPath = c.Args().First()
				}

				p := engine.NewProject(cfg, newLogger(cfg))
				if _, err := p.Run(c.Context); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:      "batch",
			Usage:     "Detect glyphs in many sprite sheets concurrently",
			ArgsUsage: "IMAGE|DIRECTORY...",
			Flags: append([]cli.Flag{
				&cli.StringFlag{Name: "out-dir", Usage: "directory for outputs (default: next to each input)"},
				&cli.StringFlag{Name: "format", Usage: "json, csv, yaml or sqlite"},
				&cli.IntFlag{Name: "workers", Usage: "parallel sprites (default: physical CPU count)"},
			}, detectorFlags()...),
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				cfg, err := loadConfig(c)
				if err != nil {
					return cli.Exit(err, 1)
				}

				p := engine.NewProject(cfg, newLogger(cfg))
				results, err := p.RunBatch(c.Context, c.Args().Slice())
				if err != nil {
					return cli.Exit(err, 1)
				}

				for _, r := range results {
					fmt.Printf("%s\t%d\t%s\n", r.Input, r.Count, r.Output)
				}

				return nil
			},
		},
		{
			Name:      "inspect",
			Usage:     "Print the inferred grid geometry of a sprite sheet",
			ArgsUsage: "IMAGE",
			Flags: append([]cli.Flag{
				&cli.BoolFlag{Name: "raw", Usage: "include column and row projections"},
			}, detectorFlags()...),
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				cfg, err := loadConfig(c)
				if err != nil {
					return cli.Exit(err, 1)
				}

				p := engine.NewProject(cfg, newLogger(cfg))
				geo, err := p.Inspect(c.Context, c.Args().First())
				if err != nil {
					return cli.Exit(err, 1)
				}
				if !c.Bool("raw") {
					geo.ColSums, geo.RowSums = nil, nil
				}

				enc := yaml.NewEncoder(os.Stdout)
				enc.SetIndent(2)
				defer enc.Close()
				if err := enc.Encode(geo); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
	}

	if err := app.RunContext(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

// loadConfig builds the configuration from --config, then applies every flag
// that was given explicitly
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg := config.Default()
	if path := c.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	texts := map[string]*string{
		"out":     &cfg.Output,
		"csv":     &cfg.CSVOutput,
		"format":  &cfg.Format,
		"order":   &cfg.Order,
		"dir":     &cfg.InputDir,
		"out-dir": &cfg.OutputDir,
	}
	for name, dst := range texts {
		if c.IsSet(name) {
			*dst = c.String(name)
		}
	}

	ints := map[string]*int{
		"cellW":     &cfg.CellW,
		"cellH":     &cfg.CellH,
		"gap":       &cfg.GapTolerance,
		"minGlyphW": &cfg.MinGlyphWidth,
		"maxGlyphW": &cfg.MaxGlyphWidth,
		"glyphH":    &cfg.GlyphHeight,
		"alpha":     &cfg.AlphaThreshold,
		"white":     &cfg.WhiteThreshold,
		"page":      &cfg.Page,
		"dpi":       &cfg.DPI,
		"workers":   &cfg.Workers,
	}
	for name, dst := range ints {
		if c.IsSet(name) {
			*dst = c.Int(name)
		}
	}

	if c.IsSet("mode") {
		mode, err := analyzer.ParseMode(c.String("mode"))
		if err != nil {
			return nil, err
		}
		cfg.Mode = mode
	}
	if c.Bool("singleRow") {
		cfg.Mode = analyzer.SingleRow
	}
	if c.IsSet("mapping") {
		mapping, err := analyzer.ParseMapping(c.String("mapping"))
		if err != nil {
			return nil, err
		}
		cfg.Mapping = mapping
	}
	if c.Bool("verbose") {
		cfg.Verbose = true
	}

	return cfg, cfg.Validate()
}

func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
