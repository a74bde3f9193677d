// Package split partitions a wide per-compound scoring table into one small
// table per (metric, target) pair, the unit of work for enrichment scoring.
package split

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/farnunglab/screenbench/internal/dataset"
)

// File names written into each <metric>/<target>/ directory.
const (
	SplitFileName   = "split.csv"
	LigandsFileName = "ligands.name"
	DecoysFileName  = "decoys.name"
)

// Column headers written to every split file.
const (
	IDHeader    = "candidate_id"
	ScoreHeader = "raw_score"
)

// MalformedInputError reports a wide table whose header lacks a column the
// partitioner was asked to use.
type MalformedInputError struct {
	Path   string
	Column string
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("malformed input %s: missing required column %q", e.Path, e.Column)
}

// Options configure one partition run over a single wide table.
type Options struct {
	Metric       string // name of the score column to extract; also names the output directory
	IDColumn     string // candidate identifier column (default "compound_id")
	TargetColumn string // target/receptor column (default "recp_name")
	ActiveColumn string // 0/1 activity column; membership files are written only when present
	DryRun       bool   // log planned writes without touching the filesystem
}

func (o *Options) applyDefaults() {
	if o.IDColumn == "" {
		o.IDColumn = "compound_id"
	}
	if o.TargetColumn == "" {
		o.TargetColumn = "recp_name"
	}
	if o.ActiveColumn == "" {
		o.ActiveColumn = "is_active"
	}
}

// Stats summarizes one partition run.
type Stats struct {
	Rows        int // data rows read from the wide table
	DroppedRows int // rows dropped for an empty target identifier
	Targets     int // distinct targets written
}

// targetGroup accumulates one target's slice of the wide table in input order.
type targetGroup struct {
	records    [][2]string // candidate_id, raw_score
	ligands    []string
	decoys     []string
	seenLigand map[string]struct{}
	seenDecoy  map[string]struct{}
}

// Partition splits the wide table at path into per-target split files under
// outDir/<metric>/<target>/split.csv, preserving input row order. When the
// activity column is present, ligands.name and decoys.name are written next
// to each split file. Existing files for the same key are overwritten, so
// rerunning on identical input yields byte-identical output.
func Partition(path, outDir string, opts Options) (*Stats, error) {
	opts.applyDefaults()
	if opts.Metric == "" {
		return nil, fmt.Errorf("split: no metric column specified for %s", path)
	}

	reader, header, closer, err := dataset.NewReader(path)
	if err != nil {
		return nil, err
	}
	defer closer.Close() //nolint:errcheck

	cols := map[string]int{}
	for i, h := range header {
		cols[strings.TrimSpace(h)] = i
	}

	for _, required := range []string{opts.IDColumn, opts.TargetColumn, opts.Metric} {
		if _, ok := cols[required]; !ok {
			return nil, &MalformedInputError{Path: path, Column: required}
		}
	}

	idIdx := cols[opts.IDColumn]
	targetIdx := cols[opts.TargetColumn]
	metricIdx := cols[opts.Metric]
	activeIdx, hasActive := cols[opts.ActiveColumn]

	stats := &Stats{}
	groups := map[string]*targetGroup{}
	var order []string

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("split: reading %s: %w", path, err)
		}
		stats.Rows++

		target := strings.TrimSpace(record[targetIdx])
		if target == "" {
			stats.DroppedRows++
			slog.Warn("dropping row with empty target identifier", "file", path, "row", stats.Rows+1)
			continue
		}

		g, ok := groups[target]
		if !ok {
			g = &targetGroup{
				seenLigand: map[string]struct{}{},
				seenDecoy:  map[string]struct{}{},
			}
			groups[target] = g
			order = append(order, target)
		}

		id := record[idIdx]
		g.records = append(g.records, [2]string{id, record[metricIdx]})

		if hasActive && id != "" {
			switch strings.TrimSpace(record[activeIdx]) {
			case "1":
				if _, dup := g.seenLigand[id]; !dup {
					g.seenLigand[id] = struct{}{}
					g.ligands = append(g.ligands, id)
				}
			case "0":
				if _, dup := g.seenDecoy[id]; !dup {
					g.seenDecoy[id] = struct{}{}
					g.decoys = append(g.decoys, id)
				}
			}
		}
	}

	stats.Targets = len(order)

	for _, target := range order {
		dir := filepath.Join(outDir, opts.Metric, target)
		g := groups[target]

		if opts.DryRun {
			slog.Info("dry-run: would write split",
				"dir", dir, "rows", len(g.records),
				"ligands", len(g.ligands), "decoys", len(g.decoys))
			continue
		}

		if err := writeTarget(dir, g, hasActive); err != nil {
			return nil, err
		}
	}

	return stats, nil
}

func writeTarget(dir string, g *targetGroup, withMembership bool) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("split: creating %s: %w", dir, err)
	}

	if err := writeSplitFile(filepath.Join(dir, SplitFileName), g.records); err != nil {
		return err
	}

	if !withMembership {
		return nil
	}
	if err := writeNameFile(filepath.Join(dir, LigandsFileName), g.ligands); err != nil {
		return err
	}
	return writeNameFile(filepath.Join(dir, DecoysFileName), g.decoys)
}

func writeSplitFile(path string, records [][2]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("split: creating %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	w := csv.NewWriter(f)
	if err := w.Write([]string{IDHeader, ScoreHeader}); err != nil {
		return fmt.Errorf("split: writing %s: %w", path, err)
	}
	for _, rec := range records {
		if err := w.Write(rec[:]); err != nil {
			return fmt.Errorf("split: writing %s: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("split: writing %s: %w", path, err)
	}
	return f.Close()
}

func writeNameFile(path string, ids []string) error {
	var b strings.Builder
	for _, id := range ids {
		b.WriteString(id)
		b.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("split: writing %s: %w", path, err)
	}
	return nil
}

// MetricFromFilename derives the metric name from a wide table file name.
// Tables are conventionally named <metric>_running_sum.csv; anything else
// falls back to the file stem.
func MetricFromFilename(path string) string {
	name := filepath.Base(path)
	name = strings.TrimSuffix(name, ".gz")
	name = strings.TrimSuffix(name, ".csv")
	return strings.TrimSuffix(name, "_running_sum")
}
