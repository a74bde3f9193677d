package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// Row represents a single CSV row with column name to value mapping.
type Row map[string]string

// Open opens a table file for reading, transparently decompressing input
// whose file name ends in .gz. Wide scoring tables from large screens are
// usually shipped compressed.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csv: open %s: %w", path, err)
	}

	if !strings.HasSuffix(path, ".gz") {
		return f, nil
	}

	zr, err := gzip.NewReader(f)
	if err != nil {
		f.Close() //nolint:errcheck
		return nil, fmt.Errorf("csv: gzip %s: %w", path, err)
	}
	return &gzipReadCloser{zr: zr, f: f}, nil
}

type gzipReadCloser struct {
	zr *gzip.Reader
	f  *os.File
}

func (g *gzipReadCloser) Read(p []byte) (int, error) { return g.zr.Read(p) }

func (g *gzipReadCloser) Close() error {
	err := g.zr.Close()
	if cerr := g.f.Close(); err == nil {
		err = cerr
	}
	return err
}

// LoadCSV reads a CSV file and returns rows as maps of column to value.
// The first row is treated as headers (column names). Gzipped files are
// decompressed on the fly.
func LoadCSV(path string) ([]Row, error) {
	f, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv: parse %s: %w", path, err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("csv: %s is empty (no header row)", path)
	}

	headers := records[0]
	rows := make([]Row, 0, len(records)-1)

	for i, record := range records[1:] {
		if len(record) != len(headers) {
			return nil, fmt.Errorf("csv: row %d has %d columns, expected %d", i+2, len(record), len(headers))
		}
		row := make(Row, len(headers))
		for j, h := range headers {
			row[h] = record[j]
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// NewReader opens a table file and positions a csv.Reader past the header
// row, returning the header. Callers stream rows one at a time, which keeps
// memory flat on multi-million-row screening tables. The returned closer
// must be closed when done.
func NewReader(path string) (*csv.Reader, []string, io.Closer, error) {
	f, err := Open(path)
	if err != nil {
		return nil, nil, nil, err
	}

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		f.Close() //nolint:errcheck
		if err == io.EOF {
			return nil, nil, nil, fmt.Errorf("csv: %s is empty (no header row)", path)
		}
		return nil, nil, nil, fmt.Errorf("csv: read header of %s: %w", path, err)
	}

	return reader, header, f, nil
}
