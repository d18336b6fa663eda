package engine

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"

	"github.com/ivlev/glyphcoords/internal/analyzer"
	"github.com/ivlev/glyphcoords/internal/atlas"
	"github.com/ivlev/glyphcoords/internal/config"
)

func TestRunBatch(t *testing.T) {
	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "coords")

	savePNG(t, filepath.Join(in, "one.png"), blockStrip(20, 5, [4]int{2, 0, 5, 5}))
	savePNG(t, filepath.Join(in, "two.png"), blockStrip(20, 5, [4]int{2, 0, 5, 5}, [4]int{9, 0, 12, 5}))
	require.NoError(t, os.WriteFile(filepath.Join(in, "notes.txt"), []byte("skip"), 0644))

	cfg := config.Default()
	cfg.Mode = analyzer.SingleRow
	cfg.OutputDir = out
	cfg.Format = "yaml"
	cfg.Workers = 2

	results, err := NewProject(cfg, nil).RunBatch(context.Background(), []string{in})
	require.NoError(t, err)
	require.Len(t, results, 2)

	sort.Slice(results, func(i, j int) bool { return results[i].Input < results[j].Input })
	assert.Equal(t, filepath.Join(out, "one.coords.yaml"), results[0].Output)
	assert.Equal(t, 1, results[0].Count)
	assert.Equal(t, 2, results[1].Count)

	doc, err := atlas.ReadDocument(results[1].Output)
	require.NoError(t, err)
	assert.Equal(t, 9, doc.Coords[1].SX)
}

func TestRunBatchNextToInput(t *testing.T) {
	in := t.TempDir()
	input := filepath.Join(in, "font.png")
	savePNG(t, input, blockStrip(20, 5, [4]int{2, 0, 5, 5}))

	cfg := config.Default()
	cfg.Mode = analyzer.SingleRow

	results, err := NewProject(cfg, nil).RunBatch(context.Background(), []string{input})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(in, "font.coords.json"), results[0].Output)
}

func TestRunBatchFailsOnBadImage(t *testing.T) {
	in := t.TempDir()
	savePNG(t, filepath.Join(in, "good.png"), blockStrip(20, 5, [4]int{2, 0, 5, 5}))
	require.NoError(t, os.WriteFile(filepath.Join(in, "broken.png"), []byte("not a png"), 0644))

	_, err := NewProject(config.Default(), nil).RunBatch(context.Background(), []string{in})
	assert.Error(t, err)
}

func TestRunBatchRejectsSameStem(t *testing.T) {
	in := t.TempDir()
	savePNG(t, filepath.Join(in, "font.png"), blockStrip(20, 5, [4]int{2, 0, 5, 5}))

	f, err := os.Create(filepath.Join(in, "font.bmp"))
	require.NoError(t, err)
	require.NoError(t, bmp.Encode(f, blockStrip(20, 5, [4]int{2, 0, 5, 5}, [4]int{9, 0, 12, 5})))
	require.NoError(t, f.Close())

	cfg := config.Default()
	cfg.Mode = analyzer.SingleRow

	_, err = NewProject(cfg, nil).RunBatch(context.Background(), []string{in})
	assert.ErrorIs(t, err, ErrOutputCollision)

	_, err = os.Stat(filepath.Join(in, "font.coords.json"))
	assert.True(t, os.IsNotExist(err), "nothing is written when outputs collide")
}

func TestRunBatchRejectsSameNameAcrossDirs(t *testing.T) {
	root := t.TempDir()
	for _, sub := range []string{"a", "b"} {
		require.NoError(t, os.MkdirAll(filepath.Join(root, sub), 0755))
		savePNG(t, filepath.Join(root, sub, "font.png"), blockStrip(20, 5, [4]int{2, 0, 5, 5}))
	}

	cfg := config.Default()
	cfg.Mode = analyzer.SingleRow
	cfg.OutputDir = filepath.Join(root, "out")

	_, err := NewProject(cfg, nil).RunBatch(context.Background(),
		[]string{filepath.Join(root, "a"), filepath.Join(root, "b")})
	assert.ErrorIs(t, err, ErrOutputCollision)

	// Without a shared output dir each result lands next to its input
	cfg.OutputDir = ""
	results, err := NewProject(cfg, nil).RunBatch(context.Background(),
		[]string{filepath.Join(root, "a"), filepath.Join(root, "b")})
	require.NoError(t, err)
	assert.NotEqual(t, results[0].Output, results[1].Output)
}

func TestRunBatchEmpty(t *testing.T) {
	_, err := NewProject(config.Default(), nil).RunBatch(context.Background(), []string{t.TempDir()})
	assert.Error(t, err)
}
