package atlas

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrUnknownFormat = errors.New("atlas: unknown output format")

// Format is an output encoding for a Document
type Format int

const (
	JSON Format = iota
	CSV
	YAML
	SQLite
)

func (f Format) String() string {
	switch f {
	case JSON:
		return "json"
	case CSV:
		return "csv"
	case YAML:
		return "yaml"
	case SQLite:
		return "sqlite"
	default:
		return "?"
	}
}

// Ext returns the file extension conventionally used for f
func (f Format) Ext() string {
	switch f {
	case CSV:
		return ".csv"
	case YAML:
		return ".yaml"
	case SQLite:
		return ".db"
	default:
		return ".json"
	}
}

// ParseFormat parses a format name
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json", "":
		return JSON, nil
	case "csv":
		return CSV, nil
	case "yaml", "yml":
		return YAML, nil
	case "sqlite", "sqlite3", "db":
		return SQLite, nil
	default:
		return JSON, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// FormatFromPath guesses the format from the file extension, defaulting to JSON
func FormatFromPath(path string) Format {
	f, err := ParseFormat(strings.TrimPrefix(filepath.Ext(path), "."))
	if err != nil {
		return JSON
	}
	return f
}

// CSVHeader is the column order of the tabular form
var CSVHeader = []string{"index", "char", "sx", "sy", "w", "h"}

// WriteJSON encodes doc with two-space indentation, leaving non-ASCII characters unescaped
func WriteJSON(w io.Writer, doc *Document) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// WriteCSV writes one row per glyph under CSVHeader
func WriteCSV(w io.Writer, coords []CoordRecord) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for _, c := range coords {
		row := []string{
			strconv.Itoa(c.Index),
			c.Char,
			strconv.Itoa(c.SX),
			strconv.Itoa(c.SY),
			strconv.Itoa(c.W),
			strconv.Itoa(c.H),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteYAML encodes doc as YAML
func WriteYAML(w io.Writer, doc *Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}

// WriteDocument writes doc to path in the given format
func WriteDocument(doc *Document, path string, format Format) error {
	if format == SQLite {
		return WriteSQLite(doc, path)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	switch format {
	case JSON:
		err = WriteJSON(f, doc)
	case CSV:
		err = WriteCSV(f, doc.Coords)
	case YAML:
		err = WriteYAML(f, doc)
	default:
		err = fmt.Errorf("%w: %d", ErrUnknownFormat, int(format))
	}

	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// ReadDocument reads a JSON, YAML or SQLite document back, chosen by extension.
// For SQLite the sprite written last is returned.
func ReadDocument(path string) (*Document, error) {
	if FormatFromPath(path) == SQLite {
		return ReadSQLite(path, "")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc Document
	switch FormatFromPath(path) {
	case YAML:
		err = yaml.Unmarshal(data, &doc)
	case JSON:
		err = json.Unmarshal(data, &doc)
	default:
		return nil, fmt.Errorf("%w: cannot read %s", ErrUnknownFormat, path)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	return &doc, nil
}
