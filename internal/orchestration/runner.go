// Package orchestration drives an enrichment batch: it fans the discovered
// (metric, target) directories out over a bounded worker pool and computes
// each one independently. Directories share no state, so a failed target
// never corrupts or aborts the rest of the batch.
package orchestration

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/farnunglab/screenbench/internal/discovery"
	"github.com/farnunglab/screenbench/internal/enrichment"
	"github.com/farnunglab/screenbench/internal/ranking"
	"github.com/farnunglab/screenbench/internal/reporting"
)

// Status classifies a per-target outcome.
type Status string

const (
	StatusOK         Status = "ok"         // result artifact written
	StatusPlanned    Status = "planned"    // dry run, nothing executed
	StatusSkipped    Status = "skipped"    // required input missing
	StatusDegenerate Status = "degenerate" // membership cannot anchor a ROC curve
	StatusFailed     Status = "failed"     // per-target processing error
)

// Outcome records what happened to one work directory.
type Outcome struct {
	Unit   discovery.Unit
	Status Status
	Reason string
	Result *enrichment.Result
}

// ROCPlotFileName is the optional per-target curve rendering.
const ROCPlotFileName = "roc.png"

// Runner executes an enrichment batch over a root directory.
type Runner struct {
	Registry   *ranking.Registry // metric-direction lookup; nil means defaults
	Jobs       int               // worker pool size; <= 0 means 4
	DryRun     bool              // print planned work without executing
	FPRFloor   float64           // semilog integration floor; <= 0 means the default
	WritePlots bool              // render roc.png next to each result
}

// Run discovers the work directories under root and processes them. The
// returned error covers setup failures only (invalid root, failed walk);
// per-target problems are recorded in the outcomes and logged.
func (r *Runner) Run(ctx context.Context, root string) ([]Outcome, error) {
	units, err := discovery.Discover(root)
	if err != nil {
		return nil, err
	}
	if len(units) == 0 {
		return nil, fmt.Errorf("no split files found under %s", root)
	}

	registry := r.Registry
	if registry == nil {
		registry = ranking.DefaultRegistry()
	}

	outcomes := make([]Outcome, len(units))

	if r.DryRun {
		for i, u := range units {
			dir := registry.DirectionFor(u.Metric)
			slog.Info("dry-run: would compute enrichment",
				"metric", u.Metric, "target", u.Target, "direction", dir.String(), "dir", u.Dir)
			outcomes[i] = Outcome{Unit: u, Status: StatusPlanned}
		}
		return outcomes, nil
	}

	jobs := r.Jobs
	if jobs <= 0 {
		jobs = 4
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for i, u := range units {
		i, u := i, u
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			outcomes[i] = r.processUnit(registry, u)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return outcomes, err
	}

	logBatchDigest(outcomes)
	return outcomes, nil
}

// processUnit runs rank + enrichment for one directory. It never fails the
// batch: every problem becomes a skipped, degenerate, or failed outcome.
func (r *Runner) processUnit(registry *ranking.Registry, u discovery.Unit) Outcome {
	for _, required := range []string{u.LigandsPath(), u.DecoysPath()} {
		if _, err := os.Stat(required); err != nil {
			reason := fmt.Sprintf("missing %s", filepath.Base(required))
			slog.Warn("skipping target", "metric", u.Metric, "target", u.Target, "reason", reason)
			return Outcome{Unit: u, Status: StatusSkipped, Reason: reason}
		}
	}

	records, err := ranking.LoadSplit(u.SplitPath)
	if err != nil {
		slog.Warn("target failed", "metric", u.Metric, "target", u.Target, "error", err)
		return Outcome{Unit: u, Status: StatusFailed, Reason: err.Error()}
	}

	ranked := ranking.Rank(records, registry.DirectionFor(u.Metric))

	membership, err := enrichment.LoadMembership(u.LigandsPath(), u.DecoysPath())
	if err != nil {
		slog.Warn("target failed", "metric", u.Metric, "target", u.Target, "error", err)
		return Outcome{Unit: u, Status: StatusFailed, Reason: err.Error()}
	}

	result, err := enrichment.Compute(u.Metric, u.Target, ranked, membership, r.FPRFloor)
	if err != nil {
		var degenerate *enrichment.EmptyMembershipError
		if errors.As(err, &degenerate) {
			slog.Warn("degenerate target", "metric", u.Metric, "target", u.Target, "error", err)
			return Outcome{Unit: u, Status: StatusDegenerate, Reason: err.Error()}
		}
		slog.Warn("target failed", "metric", u.Metric, "target", u.Target, "error", err)
		return Outcome{Unit: u, Status: StatusFailed, Reason: err.Error()}
	}

	if err := result.WriteFile(u.Dir); err != nil {
		slog.Warn("target failed", "metric", u.Metric, "target", u.Target, "error", err)
		return Outcome{Unit: u, Status: StatusFailed, Reason: err.Error()}
	}

	if r.WritePlots && len(ranked) > 0 {
		curve, err := enrichment.Trace(ranked, membership)
		if err == nil {
			plotPath := filepath.Join(u.Dir, ROCPlotFileName)
			if err := reporting.WriteROCPlot(curve, result, plotPath); err != nil {
				slog.Warn("could not render ROC plot", "metric", u.Metric, "target", u.Target, "error", err)
			}
		}
	}

	return Outcome{Unit: u, Status: StatusOK, Result: result}
}

// Count returns the number of outcomes with the given status.
func Count(outcomes []Outcome, status Status) int {
	n := 0
	for _, o := range outcomes {
		if o.Status == status {
			n++
		}
	}
	return n
}

func logBatchDigest(outcomes []Outcome) {
	slog.Info("batch complete",
		"targets", len(outcomes),
		"ok", Count(outcomes, StatusOK),
		"skipped", Count(outcomes, StatusSkipped),
		"degenerate", Count(outcomes, StatusDegenerate),
		"failed", Count(outcomes, StatusFailed))
}
