// Package discovery locates the per-target work directories of an enrichment
// run under a root directory.
package discovery

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/farnunglab/screenbench/internal/split"
)

// Unit is one (metric, target) work directory found during traversal.
type Unit struct {
	Metric    string // name of the metric directory (grandparent of split.csv)
	Target    string // name of the target directory (parent of split.csv)
	Dir       string // absolute path to the target directory
	SplitPath string // absolute path to split.csv
}

// LigandsPath returns the expected path of the target's ligand list.
func (u Unit) LigandsPath() string { return filepath.Join(u.Dir, split.LigandsFileName) }

// DecoysPath returns the expected path of the target's decoy list.
func (u Unit) DecoysPath() string { return filepath.Join(u.Dir, split.DecoysFileName) }

// Discover walks root and returns every <metric>/<target> directory
// containing a split file, sorted by metric then target. A split file less
// than two levels below the root has no (metric, target) key and is skipped
// with a warning.
func Discover(root string) ([]Unit, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving root path: %w", err)
	}

	// Verify root exists before walking
	if _, err := os.Stat(absRoot); err != nil {
		return nil, fmt.Errorf("root path: %w", err)
	}

	var units []Unit

	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip inaccessible entries
		}

		// Skip hidden directories
		if d.IsDir() && strings.HasPrefix(d.Name(), ".") && path != absRoot {
			return fs.SkipDir
		}

		if d.IsDir() || d.Name() != split.SplitFileName {
			return nil
		}

		dir := filepath.Dir(path)
		metricDir := filepath.Dir(dir)
		rel, relErr := filepath.Rel(absRoot, path)
		if relErr != nil || strings.Count(rel, string(filepath.Separator)) < 2 {
			slog.Warn("split file too shallow for a <metric>/<target> key, skipping", "path", path)
			return nil
		}

		units = append(units, Unit{
			Metric:    filepath.Base(metricDir),
			Target:    filepath.Base(dir),
			Dir:       dir,
			SplitPath: path,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", absRoot, err)
	}

	sort.Slice(units, func(i, j int) bool {
		if units[i].Metric != units[j].Metric {
			return units[i].Metric < units[j].Metric
		}
		return units[i].Target < units[j].Target
	})

	return units, nil
}
