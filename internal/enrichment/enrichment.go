// Package enrichment computes ROC-style retrieval statistics for ranked
// virtual-screening candidate lists: standard AUC and the semilog AUC
// (logAUC) that weights early recall.
package enrichment

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/integrate"
)

// DefaultFPRFloor is the minimum false-positive rate of the semilog AUC
// integral. The logarithmic axis is singular at FPR=0, so the curve is
// integrated over [floor, 1]. 0.001 is the conventional floor from the
// virtual-screening literature (Mysinger & Shoichet, J Chem Inf Model 2010).
const DefaultFPRFloor = 0.001

// RandomLogAUC returns the semilog AUC of a random classifier (TPR == FPR)
// for the given floor. With the default floor this is ≈ 0.14462; a ranking
// method must clear this value to show any early enrichment.
func RandomLogAUC(floor float64) float64 {
	span := math.Log10(1 / floor)
	return (1 - floor) / (math.Ln10 * span)
}

// EmptyMembershipError reports a target whose membership lists cannot anchor
// a ROC curve: with no actives or no decoys one of the two rates is
// undefined. Reported explicitly rather than zeroed so degenerate targets
// never masquerade as poor performers in the summary table.
type EmptyMembershipError struct {
	NLigands int
	NDecoys  int
}

func (e *EmptyMembershipError) Error() string {
	return fmt.Sprintf("degenerate membership: %d ligands, %d decoys (need at least one of each)", e.NLigands, e.NDecoys)
}

// Result holds the enrichment statistics for one (metric, target) pair.
type Result struct {
	Metric   string
	Target   string
	AUC      float64
	LogAUC   float64
	NLigands int
	NDecoys  int
}

// Curve is an empirical ROC curve. Points are ordered by non-decreasing FPR,
// starting at (0,0) and ending at (1,1).
type Curve struct {
	FPR []float64
	TPR []float64
}

// Trace walks a ranked candidate list best-first and accumulates the ROC
// curve against the membership sets. Rates are normalized by the full
// membership counts, not just the ranked candidates: actives the model never
// returned are treated as ranked last, which the closing (1,1) segment
// captures. Candidates in neither set are skipped.
func Trace(ranked []string, m *Membership) (*Curve, error) {
	nActives := m.NumActives()
	nDecoys := m.NumDecoys()
	if nActives == 0 || nDecoys == 0 {
		return nil, &EmptyMembershipError{NLigands: nActives, NDecoys: nDecoys}
	}

	c := &Curve{
		FPR: make([]float64, 1, len(ranked)+2),
		TPR: make([]float64, 1, len(ranked)+2),
	}

	tp, fp := 0, 0
	for _, id := range ranked {
		switch m.Classify(id) {
		case Active:
			tp++
		case Decoy:
			fp++
		default:
			continue
		}
		c.FPR = append(c.FPR, float64(fp)/float64(nDecoys))
		c.TPR = append(c.TPR, float64(tp)/float64(nActives))
	}

	last := len(c.FPR) - 1
	if c.FPR[last] != 1 || c.TPR[last] != 1 {
		c.FPR = append(c.FPR, 1)
		c.TPR = append(c.TPR, 1)
	}

	return c, nil
}

// AUC integrates the curve over the full FPR range with the trapezoidal rule.
func (c *Curve) AUC() float64 {
	if len(c.FPR) < 2 {
		return 0
	}
	return integrate.Trapezoidal(c.FPR, c.TPR)
}

// LogAUC integrates TPR over log10(FPR) on [floor, 1] and normalizes by the
// log-range span log10(1/floor), so a perfect classifier scores 1 and a
// random one scores RandomLogAUC(floor). TPR at the floor is obtained by
// linear interpolation between the bracketing curve points.
func (c *Curve) LogAUC(floor float64) float64 {
	if floor <= 0 || floor >= 1 {
		floor = DefaultFPRFloor
	}

	xs := []float64{math.Log10(floor)}
	ys := []float64{c.interpTPR(floor)}
	for i, fpr := range c.FPR {
		if fpr < floor {
			continue
		}
		xs = append(xs, math.Log10(fpr))
		ys = append(ys, c.TPR[i])
	}
	if len(xs) < 2 {
		return 0
	}

	return integrate.Trapezoidal(xs, ys) / math.Log10(1/floor)
}

// interpTPR linearly interpolates the curve's TPR at the given FPR.
func (c *Curve) interpTPR(x float64) float64 {
	n := len(c.FPR)
	j := sort.Search(n, func(i int) bool { return c.FPR[i] >= x })
	if j == 0 {
		return c.TPR[0]
	}
	if j == n {
		return c.TPR[n-1]
	}
	x0, y0 := c.FPR[j-1], c.TPR[j-1]
	x1, y1 := c.FPR[j], c.TPR[j]
	if x1 == x0 {
		return y0
	}
	return y0 + (y1-y0)*(x-x0)/(x1-x0)
}

// Compute returns the enrichment statistics for one ranked target.
//
// An empty ranked list against non-empty membership yields a zeroed result
// (nothing was screened, nothing to score); empty membership is an
// EmptyMembershipError regardless of the list.
func Compute(metric, target string, ranked []string, m *Membership, floor float64) (*Result, error) {
	if m.NumActives() == 0 || m.NumDecoys() == 0 {
		return nil, &EmptyMembershipError{NLigands: m.NumActives(), NDecoys: m.NumDecoys()}
	}

	if len(ranked) == 0 {
		return &Result{Metric: metric, Target: target}, nil
	}

	curve, err := Trace(ranked, m)
	if err != nil {
		return nil, err
	}

	return &Result{
		Metric:   metric,
		Target:   target,
		AUC:      curve.AUC(),
		LogAUC:   curve.LogAUC(floor),
		NLigands: m.NumActives(),
		NDecoys:  m.NumDecoys(),
	}, nil
}
