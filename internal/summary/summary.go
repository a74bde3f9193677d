// Package summary assembles per-target enrichment artifacts into the final
// comparison tables of a benchmark run.
package summary

import (
	"encoding/csv"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/farnunglab/screenbench/internal/enrichment"
	"github.com/farnunglab/screenbench/internal/statistics"
)

// SummaryFileName is the long-form output table.
const SummaryFileName = "auc_summary.csv"

// Collect walks root for per-target result artifacts and returns one row per
// (metric, target) pair, sorted by metric then target. The key is taken from
// the artifact's two trailing path components, which survive targets whose
// result row was written under a different label. Missing or malformed
// artifacts are skipped with a warning; one bad target never fails the
// aggregation.
func Collect(root string) ([]enrichment.Result, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving root path: %w", err)
	}
	if _, err := os.Stat(absRoot); err != nil {
		return nil, fmt.Errorf("root path: %w", err)
	}

	var results []enrichment.Result

	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip inaccessible entries
		}
		if d.IsDir() || d.Name() != enrichment.ResultFileName {
			return nil
		}

		res, err := enrichment.ReadResultFile(path)
		if err != nil {
			slog.Warn("skipping malformed result artifact", "path", path, "error", err)
			return nil
		}

		dir := filepath.Dir(path)
		res.Target = filepath.Base(dir)
		res.Metric = filepath.Base(filepath.Dir(dir))
		results = append(results, *res)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", absRoot, err)
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Metric != results[j].Metric {
			return results[i].Metric < results[j].Metric
		}
		return results[i].Target < results[j].Target
	})

	return results, nil
}

// WriteSummary writes the long-form comparison table.
func WriteSummary(results []enrichment.Result, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("summary: %w", err)
	}
	defer f.Close() //nolint:errcheck

	w := csv.NewWriter(f)
	if err := w.Write([]string{"metric", "target", "auc", "logauc", "n_ligands", "n_decoys"}); err != nil {
		return fmt.Errorf("summary %s: %w", path, err)
	}
	for _, r := range results {
		row := []string{
			r.Metric,
			r.Target,
			enrichment.FormatFloat(r.AUC),
			enrichment.FormatFloat(r.LogAUC),
			strconv.Itoa(r.NLigands),
			strconv.Itoa(r.NDecoys),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("summary %s: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("summary %s: %w", path, err)
	}
	return f.Close()
}

// pivotValue selects one cell of a pivot table from a result row.
type pivotValue func(r enrichment.Result) string

// WritePivots writes the four wide-form tables (rows=target, cols=metric)
// next to the long-form summary.
func WritePivots(results []enrichment.Result, dir string) error {
	pivots := map[string]pivotValue{
		"pivot_auc.csv":       func(r enrichment.Result) string { return enrichment.FormatFloat(r.AUC) },
		"pivot_logauc.csv":    func(r enrichment.Result) string { return enrichment.FormatFloat(r.LogAUC) },
		"pivot_n_ligands.csv": func(r enrichment.Result) string { return strconv.Itoa(r.NLigands) },
		"pivot_n_decoys.csv":  func(r enrichment.Result) string { return strconv.Itoa(r.NDecoys) },
	}

	names := make([]string, 0, len(pivots))
	for name := range pivots {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := writePivot(results, filepath.Join(dir, name), pivots[name]); err != nil {
			return err
		}
	}
	return nil
}

func writePivot(results []enrichment.Result, path string, value pivotValue) error {
	metricSet := map[string]struct{}{}
	targetSet := map[string]struct{}{}
	cells := map[[2]string]string{}
	for _, r := range results {
		metricSet[r.Metric] = struct{}{}
		targetSet[r.Target] = struct{}{}
		cells[[2]string{r.Target, r.Metric}] = value(r)
	}

	metrics := sortedKeys(metricSet)
	targets := sortedKeys(targetSet)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("pivot: %w", err)
	}
	defer f.Close() //nolint:errcheck

	w := csv.NewWriter(f)
	if err := w.Write(append([]string{"target"}, metrics...)); err != nil {
		return fmt.Errorf("pivot %s: %w", path, err)
	}
	for _, target := range targets {
		row := make([]string, 0, len(metrics)+1)
		row = append(row, target)
		for _, metric := range metrics {
			row = append(row, cells[[2]string{target, metric}])
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("pivot %s: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("pivot %s: %w", path, err)
	}
	return f.Close()
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// MetricSummary aggregates one metric's enrichment across all its targets.
// The bootstrap interval is over per-target logAUC values; BeatsRandom is set
// when the interval excludes the random-classifier baseline.
type MetricSummary struct {
	Metric      string
	Targets     int
	MeanAUC     float64
	MeanLogAUC  float64
	LogAUCCI    statistics.ConfidenceInterval
	BeatsRandom bool
}

// Summarize computes per-metric aggregates from the collected rows. The seed
// feeds the bootstrap resampler; pass a negative seed for a
// non-deterministic run.
func Summarize(results []enrichment.Result, floor float64, seed int64) []MetricSummary {
	byMetric := map[string][]enrichment.Result{}
	var order []string
	for _, r := range results {
		if _, seen := byMetric[r.Metric]; !seen {
			order = append(order, r.Metric)
		}
		byMetric[r.Metric] = append(byMetric[r.Metric], r)
	}
	sort.Strings(order)

	baseline := enrichment.RandomLogAUC(floor)

	summaries := make([]MetricSummary, 0, len(order))
	for _, metric := range order {
		rows := byMetric[metric]
		aucs := make([]float64, len(rows))
		logAUCs := make([]float64, len(rows))
		for i, r := range rows {
			aucs[i] = r.AUC
			logAUCs[i] = r.LogAUC
		}

		ci := statistics.BootstrapCIWithSeed(logAUCs, 0.95, seed)
		summaries = append(summaries, MetricSummary{
			Metric:      metric,
			Targets:     len(rows),
			MeanAUC:     statistics.Mean(aucs),
			MeanLogAUC:  statistics.Mean(logAUCs),
			LogAUCCI:    ci,
			BeatsRandom: statistics.ExcludesValue(ci, baseline) && ci.Lower > baseline,
		})
	}
	return summaries
}

// WriteMetricSummary writes the per-metric aggregate table.
func WriteMetricSummary(summaries []MetricSummary, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("metric summary: %w", err)
	}
	defer f.Close() //nolint:errcheck

	w := csv.NewWriter(f)
	header := []string{"metric", "n_targets", "mean_auc", "mean_logauc", "logauc_ci95_lo", "logauc_ci95_hi", "beats_random"}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("metric summary %s: %w", path, err)
	}
	for _, s := range summaries {
		row := []string{
			s.Metric,
			strconv.Itoa(s.Targets),
			enrichment.FormatFloat(s.MeanAUC),
			enrichment.FormatFloat(s.MeanLogAUC),
			enrichment.FormatFloat(s.LogAUCCI.Lower),
			enrichment.FormatFloat(s.LogAUCCI.Upper),
			strconv.FormatBool(s.BeatsRandom),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("metric summary %s: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("metric summary %s: %w", path, err)
	}
	return f.Close()
}
