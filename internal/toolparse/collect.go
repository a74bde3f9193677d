package toolparse

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Per-complex file names produced by the upstream alignment steps.
const (
	APocFileName     = "apoc_output.txt"
	DockRMSDFileName = "dockrmsd_pocket_output.txt"
	MetricsFileName  = "metrics.dat"
)

// ComplexMetrics is one row of the collected accuracy table.
type ComplexMetrics struct {
	Complex     string
	PocketRMSD  string
	SeqIdentity string
	PSScore     string
	DockRMSD    string
}

var metricsHeader = []string{"complex_name", "apoc_pocket", "apoc_seq_identity", "apoc_ps_score", "dockrmsd_pocket"}

// ScanComplexes walks the per-complex subdirectories of base, parses
// whichever tool outputs are present, and writes each complex's metrics.dat
// line. Missing tool outputs leave blank fields; a complex is never fatal to
// the scan. Rows come back sorted by complex name.
func ScanComplexes(base string) ([]ComplexMetrics, error) {
	entries, err := os.ReadDir(base)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", base, err)
	}

	var rows []ComplexMetrics
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(base, entry.Name())

		row := ComplexMetrics{Complex: entry.Name()}
		if text, ok := readIfPresent(filepath.Join(dir, APocFileName)); ok {
			pa := ParseAPoc(text)
			row.PocketRMSD = pa.RMSD
			row.SeqIdentity = pa.SeqIdentity
			row.PSScore = pa.PSScore
		}
		if text, ok := readIfPresent(filepath.Join(dir, DockRMSDFileName)); ok {
			row.DockRMSD = ParseDockRMSD(text)
		}

		if err := writeMetricsFile(filepath.Join(dir, MetricsFileName), row); err != nil {
			slog.Warn("could not write metrics.dat", "complex", entry.Name(), "error", err)
			continue
		}
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].Complex < rows[j].Complex })
	return rows, nil
}

func readIfPresent(path string) (string, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	return string(data), true
}

func writeMetricsFile(path string, row ComplexMetrics) error {
	line := strings.Join([]string{row.Complex, row.PocketRMSD, row.SeqIdentity, row.PSScore, row.DockRMSD}, ",")
	return os.WriteFile(path, []byte(line), 0o644)
}

// WriteAll writes the combined accuracy table.
func WriteAll(rows []ComplexMetrics, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("metrics table: %w", err)
	}
	defer f.Close() //nolint:errcheck

	w := csv.NewWriter(f)
	if err := w.Write(metricsHeader); err != nil {
		return fmt.Errorf("metrics table %s: %w", path, err)
	}
	for _, row := range rows {
		record := []string{row.Complex, row.PocketRMSD, row.SeqIdentity, row.PSScore, row.DockRMSD}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("metrics table %s: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("metrics table %s: %w", path, err)
	}
	return f.Close()
}
