// Package ranking orders the candidates of a target split by a metric's
// preferred direction, producing the ranked list consumed by enrichment
// scoring.
package ranking

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Direction is the ranking direction of a metric.
type Direction int

const (
	// LowerIsBetter ranks ascending, for energy- and score-like metrics
	// (docking scores, predicted binding energies).
	LowerIsBetter Direction = iota
	// HigherIsBetter ranks descending, for confidence-like metrics
	// (pTM, ipTM, pLDDT, predicted affinity probability).
	HigherIsBetter
)

func (d Direction) String() string {
	if d == HigherIsBetter {
		return "higher"
	}
	return "lower"
}

// defaultHigherIsBetter lists the confidence-like metric names emitted by the
// structure-prediction pipeline. Every other metric defaults to lower-is-better.
var defaultHigherIsBetter = []string{
	"confidence",
	"confidence_score",
	"ptm",
	"iptm",
	"plddt",
	"complex_plddt",
	"affinity_probability_binary",
}

// Registry maps metric names to ranking directions. Unknown metrics default
// to LowerIsBetter.
type Registry struct {
	directions map[string]Direction
}

// DefaultRegistry returns a registry seeded with the known confidence-like
// metrics.
func DefaultRegistry() *Registry {
	r := &Registry{directions: make(map[string]Direction, len(defaultHigherIsBetter))}
	for _, m := range defaultHigherIsBetter {
		r.directions[m] = HigherIsBetter
	}
	return r
}

// Set overrides the direction for a metric.
func (r *Registry) Set(metric string, d Direction) {
	r.directions[metric] = d
}

// DirectionFor returns the ranking direction for a metric.
func (r *Registry) DirectionFor(metric string) Direction {
	return r.directions[metric]
}

// Metrics returns the metric names with an explicit direction, sorted.
func (r *Registry) Metrics() []string {
	names := make([]string, 0, len(r.directions))
	for m := range r.directions {
		names = append(names, m)
	}
	sort.Strings(names)
	return names
}

// registryFile is the YAML schema of a direction config file:
//
//	directions:
//	  docking_score: lower
//	  iptm: higher
type registryFile struct {
	Directions map[string]string `yaml:"directions"`
}

// LoadRegistry reads a direction config file and returns the default
// registry with the file's entries applied on top.
func LoadRegistry(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading direction config: %w", err)
	}

	var file registryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing direction config %s: %w", path, err)
	}

	r := DefaultRegistry()
	for metric, dir := range file.Directions {
		switch dir {
		case "higher":
			r.Set(metric, HigherIsBetter)
		case "lower":
			r.Set(metric, LowerIsBetter)
		default:
			return nil, fmt.Errorf("direction config %s: metric %q has invalid direction %q (want \"higher\" or \"lower\")", path, metric, dir)
		}
	}
	return r, nil
}
