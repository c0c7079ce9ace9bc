// Package manifest reads job manifests: header-delimited CSV files with one
// job per row.
package manifest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"slices"
	"unicode/utf8"

	"github.com/giygas/af3-jobgen/logging"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Reader yields manifest rows in file order. It is not restartable.
type Reader struct {
	path   string
	header []string
	csv    *csv.Reader
	rows   int
}

// Open reads the manifest at path and checks its header for the required
// columns. Cells are returned untrimmed.
func Open(path string, required ...string) (*Reader, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open manifest: %w", err)
	}
	return NewReader(path, raw, required...)
}

// NewReader is Open over bytes already in memory. path is only used in
// error messages.
func NewReader(path string, raw []byte, required ...string) (*Reader, error) {
	cr := csv.NewReader(decode(path, raw))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, &FormatError{Path: path, Missing: slices.Clone(required)}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest header of %s: %w", path, err)
	}

	var missing []string
	for _, col := range required {
		if !slices.Contains(header, col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &FormatError{Path: path, Missing: missing}
	}

	return &Reader{path: path, header: header, csv: cr}, nil
}

// decode returns a reader producing UTF-8. Spreadsheet exports are either
// UTF-8, possibly with a BOM, or ISO-8859-1.
func decode(path string, raw []byte) io.Reader {
	if utf8.Valid(raw) {
		return transform.NewReader(bytes.NewReader(raw), unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	}
	logging.Debug("Manifest is not valid UTF-8, decoding as ISO-8859-1", "path", path)
	return charmap.ISO8859_1.NewDecoder().Reader(bytes.NewReader(raw))
}

// Header returns the header columns in file order
func (r *Reader) Header() []string {
	return slices.Clone(r.header)
}

// Path returns the manifest path given to Open
func (r *Reader) Path() string {
	return r.path
}

// Next returns the next row, or io.EOF once the manifest is exhausted.
// Blank lines are skipped.
func (r *Reader) Next() (Row, error) {
	record, err := r.csv.Read()
	if err == io.EOF {
		return Row{}, io.EOF
	}
	if err != nil {
		return Row{}, fmt.Errorf("failed to read row %d of %s: %w", r.rows+1, r.path, err)
	}
	r.rows++
	return NewRow(r.header, record), nil
}
