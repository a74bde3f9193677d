package enrichment

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// ResultFileName is the per-target result artifact written next to split.csv.
const ResultFileName = "enrichment.csv"

var resultHeader = []string{"metric", "target", "auc", "logauc", "n_ligands", "n_decoys"}

// WriteFile writes the result as a one-row CSV artifact into dir.
func (r *Result) WriteFile(dir string) error {
	path := filepath.Join(dir, ResultFileName)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("result file: %w", err)
	}
	defer f.Close() //nolint:errcheck

	w := csv.NewWriter(f)
	if err := w.Write(resultHeader); err != nil {
		return fmt.Errorf("result file %s: %w", path, err)
	}
	row := []string{
		r.Metric,
		r.Target,
		FormatFloat(r.AUC),
		FormatFloat(r.LogAUC),
		strconv.Itoa(r.NLigands),
		strconv.Itoa(r.NDecoys),
	}
	if err := w.Write(row); err != nil {
		return fmt.Errorf("result file %s: %w", path, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("result file %s: %w", path, err)
	}
	return f.Close()
}

// ReadResultFile parses a per-target result artifact.
func ReadResultFile(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("result file: %w", err)
	}
	defer f.Close() //nolint:errcheck

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("result file %s: %w", path, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("result file %s: no data row", path)
	}
	row := records[1]
	if len(row) != len(resultHeader) {
		return nil, fmt.Errorf("result file %s: %d fields, expected %d", path, len(row), len(resultHeader))
	}

	res := &Result{Metric: row[0], Target: row[1]}
	if res.AUC, err = strconv.ParseFloat(row[2], 64); err != nil {
		return nil, fmt.Errorf("result file %s: bad auc %q: %w", path, row[2], err)
	}
	if res.LogAUC, err = strconv.ParseFloat(row[3], 64); err != nil {
		return nil, fmt.Errorf("result file %s: bad logauc %q: %w", path, row[3], err)
	}
	if res.NLigands, err = strconv.Atoi(row[4]); err != nil {
		return nil, fmt.Errorf("result file %s: bad n_ligands %q: %w", path, row[4], err)
	}
	if res.NDecoys, err = strconv.Atoi(row[5]); err != nil {
		return nil, fmt.Errorf("result file %s: bad n_decoys %q: %w", path, row[5], err)
	}
	return res, nil
}

// FormatFloat renders a statistic with the %.6g convention used across all
// output tables.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}
