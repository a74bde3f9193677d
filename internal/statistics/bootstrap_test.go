package statistics

import (
	"math"
	"testing"
)

func TestMean(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   float64
	}{
		{"empty", nil, 0},
		{"single", []float64{3.5}, 3.5},
		{"several", []float64{1, 2, 3, 4}, 2.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Mean(tt.values); got != tt.want {
				t.Errorf("Mean(%v) = %v, want %v", tt.values, got, tt.want)
			}
		})
	}
}

func TestBootstrapCI_Degenerate(t *testing.T) {
	ci := BootstrapCI([]float64{0.42}, 0.95)
	if ci.Lower != 0.42 || ci.Upper != 0.42 || ci.Mean != 0.42 {
		t.Errorf("single-value interval should collapse to the value, got %+v", ci)
	}
	if ci.NumBootstraps != 0 {
		t.Errorf("degenerate interval should report 0 bootstraps, got %d", ci.NumBootstraps)
	}
}

func TestBootstrapCI_ConstantValues(t *testing.T) {
	values := []float64{0.25, 0.25, 0.25, 0.25}
	ci := BootstrapCIWithSeed(values, 0.95, 1)
	if ci.Lower != 0.25 || ci.Upper != 0.25 {
		t.Errorf("constant input must yield a zero-width interval, got [%v, %v]", ci.Lower, ci.Upper)
	}
}

func TestBootstrapCI_Reproducible(t *testing.T) {
	values := []float64{0.1, 0.25, 0.3, 0.45, 0.5, 0.6}
	a := BootstrapCIWithSeed(values, 0.95, 7)
	b := BootstrapCIWithSeed(values, 0.95, 7)
	if a != b {
		t.Errorf("same seed must give the same interval: %+v vs %+v", a, b)
	}
}

func TestBootstrapCI_CoversMean(t *testing.T) {
	values := []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8}
	ci := BootstrapCIWithSeed(values, 0.95, 42)
	if ci.Mean != Mean(values) {
		t.Errorf("interval mean = %v, want sample mean %v", ci.Mean, Mean(values))
	}
	if ci.Lower > ci.Mean || ci.Upper < ci.Mean {
		t.Errorf("interval [%v, %v] should cover the sample mean %v", ci.Lower, ci.Upper, ci.Mean)
	}
	if ci.NumBootstraps != DefaultBootstrapIterations {
		t.Errorf("NumBootstraps = %d, want %d", ci.NumBootstraps, DefaultBootstrapIterations)
	}
}

func TestExcludesValue(t *testing.T) {
	ci := ConfidenceInterval{Lower: 0.2, Upper: 0.4}
	if !ExcludesValue(ci, 0.14) {
		t.Error("0.14 lies below the interval and should be excluded")
	}
	if !ExcludesValue(ci, 0.5) {
		t.Error("0.5 lies above the interval and should be excluded")
	}
	if ExcludesValue(ci, 0.3) {
		t.Error("0.3 lies inside the interval and should not be excluded")
	}
	if ExcludesValue(ci, 0.2) {
		t.Error("boundary values are covered, not excluded")
	}
}

func TestSpearman(t *testing.T) {
	tests := []struct {
		name string
		x, y []float64
		want float64
	}{
		{"perfect monotonic", []float64{1, 2, 3, 4, 5}, []float64{2, 4, 6, 8, 10}, 1},
		{"nonlinear monotonic", []float64{1, 2, 3, 4, 5}, []float64{1, 8, 27, 64, 125}, 1},
		{"inverted", []float64{1, 2, 3, 4}, []float64{9, 7, 5, 3}, -1},
		{"tied group", []float64{1, 2, 2, 3}, []float64{1, 2, 3, 4}, 0.9487},
		{"mismatched lengths", []float64{1, 2, 3}, []float64{1, 2}, 0},
		{"too short", []float64{1}, []float64{2}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Spearman(tt.x, tt.y)
			if math.Abs(got-tt.want) > 1e-3 {
				t.Errorf("Spearman = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLinearFit(t *testing.T) {
	x := []float64{0, 1, 2, 3}
	y := []float64{1, 3, 5, 7}
	alpha, beta := LinearFit(x, y)
	if math.Abs(alpha-1) > 1e-12 || math.Abs(beta-2) > 1e-12 {
		t.Errorf("LinearFit = (%v, %v), want (1, 2)", alpha, beta)
	}
}
