package dataset

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/kailas-cloud/careercompass/internal/domain"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVSource reads a CSV file whose first row names the fields.
type CSVSource struct {
	path string
}

// NewCSVSource creates a CSV source for path.
func NewCSVSource(path string) *CSVSource {
	return &CSVSource{path: path}
}

// Name returns the file path.
func (s *CSVSource) Name() string { return s.path }

// Read parses the whole file.
func (s *CSVSource) Read(_ context.Context) (Table, error) {
	f, err := os.Open(filepath.Clean(s.path))
	if err != nil {
		return Table{}, fmt.Errorf("%w: open: %w", domain.ErrDataAccess, err)
	}
	defer func() { _ = f.Close() }()

	return ReadCSV(f)
}

// ReadCSV parses CSV content with a header row. A leading UTF-8 BOM is skipped,
// header names are trimmed, and every row must have as many fields as the header.
func ReadCSV(r io.Reader) (Table, error) {
	cr := csv.NewReader(skipBOM(r))
	cr.ReuseRecord = false

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Table{}, fmt.Errorf("%w: empty file, header row required", domain.ErrDataAccess)
		}
		return Table{}, fmt.Errorf("%w: read header: %w", domain.ErrDataAccess, err)
	}

	columns := make([]string, len(header))
	for i, h := range header {
		columns[i] = strings.TrimSpace(h)
	}

	var rows []map[string]string
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Table{}, fmt.Errorf("%w: %w", domain.ErrDataAccess, err)
		}

		row := make(map[string]string, len(columns))
		for i, col := range columns {
			row[col] = rec[i]
		}
		rows = append(rows, row)
	}

	return Table{Columns: columns, Rows: rows}, nil
}

// skipBOM drops a UTF-8 byte order mark written by spreadsheet exports.
func skipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if prefix, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(prefix, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}
	return br
}
