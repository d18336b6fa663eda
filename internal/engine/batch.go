package engine

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/ivlev/glyphcoords/internal/atlas"
	"github.com/ivlev/glyphcoords/internal/source"
	"github.com/ivlev/glyphcoords/internal/system"
)

// ErrOutputCollision is returned when two batch inputs would write the same output file
var ErrOutputCollision = errors.New("engine: batch outputs collide")

// BatchResult records where one sprite's coordinates were written
type BatchResult struct {
	Input  string
	Output string
	Count  int
}

// RunBatch processes every sprite named by inputs (files or directories of
// images) concurrently and writes one output per sprite. The first failure
// cancels the remaining work.
func (p *Project) RunBatch(ctx context.Context, inputs []string) ([]BatchResult, error) {
	if err := p.Config.Validate(); err != nil {
		return nil, err
	}
	format, err := p.Config.OutputFormat()
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, in := range inputs {
		found, err := source.ListImages(in)
		if err != nil {
			return nil, err
		}
		paths = append(paths, found...)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no sprite sheets found in %v", inputs)
	}

	outputs := make([]string, len(paths))
	owners := make(map[string]string, len(paths))
	for i, path := range paths {
		out := p.batchOutputPath(path, format)
		if prev, ok := owners[out]; ok {
			return nil, fmt.Errorf("%w: %s and %s both map to %s", ErrOutputCollision, prev, path, out)
		}
		owners[out] = path
		outputs[i] = out
	}

	if p.Config.OutputDir != "" {
		if err := os.MkdirAll(p.Config.OutputDir, 0755); err != nil {
			return nil, err
		}
	}

	workers := p.Config.Workers
	if workers <= 0 {
		workers = system.DefaultWorkers()
	}
	p.Logger.Info("starting batch", "sprites", len(paths), "workers", workers)

	results := make([]BatchResult, len(paths))
	var done int
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, path := range paths {
		g.Go(func() error {
			doc, _, err := p.Process(ctx, path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			out := outputs[i]
			if err := atlas.WriteDocument(doc, out, format); err != nil {
				return err
			}
			results[i] = BatchResult{Input: path, Output: out, Count: len(doc.Coords)}

			mu.Lock()
			done++
			p.Logger.Info("ready", "done", done, "total", len(paths), "output", out)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// batchOutputPath places <name>.coords<ext> next to the input or in OutputDir
func (p *Project) batchOutputPath(input string, format atlas.Format) string {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	dir := p.Config.OutputDir
	if dir == "" {
		dir = filepath.Dir(input)
	}
	return filepath.Join(dir, base+".coords"+format.Ext())
}
