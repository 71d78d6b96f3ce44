package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/parquet-go/parquet-go"

	"github.com/kailas-cloud/careercompass/internal/domain"
)

const parquetBatch = 256

// ParquetSource reads a parquet file with one row per career.
// Every top-level column becomes a field; repeated leaves are joined with commas.
type ParquetSource struct {
	path string
}

// NewParquetSource creates a parquet source for path.
func NewParquetSource(path string) *ParquetSource {
	return &ParquetSource{path: path}
}

// Name returns the file path.
func (s *ParquetSource) Name() string { return s.path }

// Read decodes every row group of the file.
func (s *ParquetSource) Read(ctx context.Context) (Table, error) {
	f, err := os.Open(filepath.Clean(s.path))
	if err != nil {
		return Table{}, fmt.Errorf("%w: open: %w", domain.ErrDataAccess, err)
	}
	defer func() { _ = f.Close() }()

	stat, err := f.Stat()
	if err != nil {
		return Table{}, fmt.Errorf("%w: stat: %w", domain.ErrDataAccess, err)
	}

	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		return Table{}, fmt.Errorf("%w: open parquet: %w", domain.ErrDataAccess, err)
	}

	columns, leafNames := resolveColumns(pf)
	var rows []map[string]string

	for _, rg := range pf.RowGroups() {
		if err := ctx.Err(); err != nil {
			return Table{}, err
		}
		groupRows, err := readRowGroup(rg, leafNames)
		if err != nil {
			return Table{}, fmt.Errorf("%w: %w", domain.ErrDataAccess, err)
		}
		rows = append(rows, groupRows...)
	}

	return Table{Columns: columns, Rows: rows}, nil
}

// resolveColumns maps leaf column indexes to their top-level field name.
func resolveColumns(pf *parquet.File) ([]string, []string) {
	paths := pf.Schema().Columns()
	leafNames := make([]string, len(paths))
	var columns []string
	seen := make(map[string]struct{}, len(paths))

	for i, path := range paths {
		if len(path) == 0 {
			continue
		}
		name := path[0]
		leafNames[i] = name
		if _, ok := seen[name]; !ok {
			seen[name] = struct{}{}
			columns = append(columns, name)
		}
	}
	return columns, leafNames
}

func readRowGroup(rg parquet.RowGroup, leafNames []string) ([]map[string]string, error) {
	reader := parquet.NewRowGroupReader(rg)
	buf := make([]parquet.Row, parquetBatch)
	var out []map[string]string

	for {
		n, readErr := reader.ReadRows(buf)
		for i := range n {
			out = append(out, rowToFields(buf[i], leafNames))
		}
		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read rows: %w", readErr)
		}
		if n == 0 {
			break
		}
	}
	return out, nil
}

// rowToFields flattens a generic row. Null leaves leave the field absent.
func rowToFields(row parquet.Row, leafNames []string) map[string]string {
	parts := make(map[string][]string, len(leafNames))
	for _, v := range row {
		col := v.Column()
		if col < 0 || col >= len(leafNames) || leafNames[col] == "" || v.IsNull() {
			continue
		}
		parts[leafNames[col]] = append(parts[leafNames[col]], v.String())
	}

	fields := make(map[string]string, len(parts))
	for name, values := range parts {
		fields[name] = strings.Join(values, ",")
	}
	return fields
}
