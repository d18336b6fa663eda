package analyzer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectorRegistry(t *testing.T) {
	tests := []struct {
		mode    Mode
		want    Detector
		wantErr bool
	}{
		{Grid, &GridDetector{}, false},
		{SingleRow, &SingleRowSplitter{}, false},
		{DenseStrip, &DenseStripScanner{}, false},
		{Mode(42), nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			opts := DefaultOptions()
			opts.Mode = tt.mode

			detector, err := NewDetector(opts)

			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrUnknownMode))
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, detector)
		})
	}
}

func TestNewDetectorPassesOptions(t *testing.T) {
	opts := DefaultOptions()
	opts.Mode = DenseStrip
	opts.MaxGlyphWidth = 6
	opts.GlyphHeight = 7
	opts.Classifier.AlphaThreshold = 1

	d, err := NewDetector(opts)
	require.NoError(t, err)

	assert.Equal(t, &DenseStripScanner{
		Classifier:    Classifier{AlphaThreshold: 1, WhiteThreshold: 240},
		MaxGlyphWidth: 6,
		GlyphHeight:   7,
	}, d)
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"", Grid, false},
		{"grid", Grid, false},
		{"single-row", SingleRow, false},
		{"singleRow", SingleRow, false},
		{"Dense-Strip", DenseStrip, false},
		{"smallest", DenseStrip, false},
		{"ocr", Grid, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownMode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestModeText(t *testing.T) {
	for _, m := range []Mode{Grid, SingleRow, DenseStrip} {
		b, err := m.MarshalText()
		require.NoError(t, err)

		var back Mode
		require.NoError(t, back.UnmarshalText(b))
		assert.Equal(t, m, back)
	}

	_, err := Mode(9).MarshalText()
	assert.ErrorIs(t, err, ErrUnknownMode)
}

func TestParseMapping(t *testing.T) {
	m, err := ParseMapping("variable")
	require.NoError(t, err)
	assert.Equal(t, VariableWidth, m)

	m, err = ParseMapping("")
	require.NoError(t, err)
	assert.Equal(t, FixedCells, m)

	_, err = ParseMapping("diagonal")
	assert.ErrorIs(t, err, ErrUnknownMapping)
}

func TestDetectorsAreIdempotent(t *testing.T) {
	g := pyramidStrip(6, 7, 2, 5, 8)
	order := []rune("abcdef")

	for _, mode := range []Mode{Grid, SingleRow, DenseStrip} {
		opts := DefaultOptions()
		opts.Mode = mode
		d, err := NewDetector(opts)
		require.NoError(t, err)

		assert.Equal(t, d.Detect(g, order), d.Detect(g, order), mode.String())
	}
}
