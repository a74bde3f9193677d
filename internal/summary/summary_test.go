package summary

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farnunglab/screenbench/internal/enrichment"
)

func writeResult(t *testing.T, root string, res enrichment.Result) {
	t.Helper()
	dir := filepath.Join(root, res.Metric, res.Target)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, res.WriteFile(dir))
}

func testResults() []enrichment.Result {
	return []enrichment.Result{
		{Metric: "iptm", Target: "2xyz", AUC: 0.7, LogAUC: 0.3, NLigands: 5, NDecoys: 100},
		{Metric: "iptm", Target: "1abc", AUC: 0.9, LogAUC: 0.5, NLigands: 10, NDecoys: 200},
		{Metric: "docking_score", Target: "1abc", AUC: 0.6, LogAUC: 0.2, NLigands: 10, NDecoys: 200},
	}
}

func TestCollect(t *testing.T) {
	root := t.TempDir()
	for _, res := range testResults() {
		writeResult(t, root, res)
	}

	results, err := Collect(root)
	require.NoError(t, err)
	require.Len(t, results, 3)

	// sorted by metric then target
	assert.Equal(t, "docking_score", results[0].Metric)
	assert.Equal(t, "1abc", results[1].Target)
	assert.Equal(t, "2xyz", results[2].Target)
}

func TestCollect_KeyComesFromPath(t *testing.T) {
	root := t.TempDir()
	// Artifact written under iptm/1abc but labeled with something else inside.
	dir := filepath.Join(root, "iptm", "1abc")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	mislabeled := enrichment.Result{Metric: "other", Target: "other", AUC: 0.5}
	require.NoError(t, mislabeled.WriteFile(dir))

	results, err := Collect(root)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "iptm", results[0].Metric)
	assert.Equal(t, "1abc", results[0].Target)
}

func TestCollect_SkipsMalformedArtifact(t *testing.T) {
	root := t.TempDir()
	for _, res := range testResults() {
		writeResult(t, root, res)
	}
	badDir := filepath.Join(root, "iptm", "3bad")
	require.NoError(t, os.MkdirAll(badDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(badDir, enrichment.ResultFileName), []byte("garbage"), 0o644))

	results, err := Collect(root)
	require.NoError(t, err, "one malformed artifact must not fail the aggregation")
	assert.Len(t, results, 3)
}

func TestCollect_InvalidRoot(t *testing.T) {
	_, err := Collect(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}

func TestWriteSummary(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, SummaryFileName)
	require.NoError(t, WriteSummary(testResults(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "metric,target,auc,logauc,n_ligands,n_decoys", lines[0])
	assert.Equal(t, "iptm,2xyz,0.7,0.3,5,100", lines[1])
}

func TestWritePivots(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WritePivots(testResults(), dir))

	data, err := os.ReadFile(filepath.Join(dir, "pivot_auc.csv"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "target,docking_score,iptm", lines[0])
	assert.Equal(t, "1abc,0.6,0.9", lines[1])
	// docking_score has no 2xyz row: cell stays empty
	assert.Equal(t, "2xyz,,0.7", lines[2])

	for _, name := range []string{"pivot_logauc.csv", "pivot_n_ligands.csv", "pivot_n_decoys.csv"} {
		assert.FileExists(t, filepath.Join(dir, name))
	}
}

func TestSummarize(t *testing.T) {
	summaries := Summarize(testResults(), enrichment.DefaultFPRFloor, 42)
	require.Len(t, summaries, 2)

	assert.Equal(t, "docking_score", summaries[0].Metric)
	assert.Equal(t, 1, summaries[0].Targets)
	assert.InDelta(t, 0.6, summaries[0].MeanAUC, 1e-12)

	assert.Equal(t, "iptm", summaries[1].Metric)
	assert.Equal(t, 2, summaries[1].Targets)
	assert.InDelta(t, 0.4, summaries[1].MeanLogAUC, 1e-12)
}

func TestWriteMetricSummary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metric_summary.csv")
	summaries := Summarize(testResults(), enrichment.DefaultFPRFloor, 42)
	require.NoError(t, WriteMetricSummary(summaries, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[1], "docking_score,1,"))
}
