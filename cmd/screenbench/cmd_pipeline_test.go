package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeWideTable writes a minimal scoring table with two targets and returns
// its path. iptm ranks higher-is-better, so the actives lead for 1abc and the
// decoys lead for 2xyz.
func writeWideTable(t *testing.T, dir string) string {
	t.Helper()
	table := `compound_id,recp_name,is_active,iptm
L1,1abc,1,0.9
L2,1abc,1,0.8
D1,1abc,0,0.4
D2,1abc,0,0.3
L1,2xyz,1,0.1
D1,2xyz,0,0.7
`
	path := filepath.Join(dir, "iptm_running_sum.csv")
	require.NoError(t, os.WriteFile(path, []byte(table), 0o644))
	return path
}

func TestSplitCommand_MetricOverrideNeedsSingleFile(t *testing.T) {
	cmd := newSplitCommand()
	cmd.SetArgs([]string{"--metric", "iptm", "a.csv", "b.csv"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--metric")
}

func TestSplitCommand_RequiresArgs(t *testing.T) {
	cmd := newSplitCommand()
	cmd.SetArgs(nil)
	assert.Error(t, cmd.Execute())
}

func TestRunCommand_RequiresRoot(t *testing.T) {
	cmd := newRunCommand()
	cmd.SetArgs(nil)
	assert.Error(t, cmd.Execute())
}

func TestRunCommand_InvalidRootIsSetupError(t *testing.T) {
	cmd := newRunCommand()
	cmd.SetArgs([]string{"--root", filepath.Join(t.TempDir(), "missing")})
	err := cmd.Execute()
	require.Error(t, err)

	var setupErr *SetupError
	assert.True(t, errors.As(err, &setupErr), "pre-run failures must map to the setup exit code")
}

func TestCollectCommand_EmptyRootIsSetupError(t *testing.T) {
	cmd := newCollectCommand()
	cmd.SetArgs([]string{"--root", t.TempDir()})
	err := cmd.Execute()
	require.Error(t, err)

	var setupErr *SetupError
	assert.True(t, errors.As(err, &setupErr))
}

func TestPipeline_SplitRunCollect(t *testing.T) {
	workDir := t.TempDir()
	tablePath := writeWideTable(t, workDir)
	outDir := filepath.Join(workDir, "results")

	splitCmd := newSplitCommand()
	splitCmd.SetArgs([]string{"-o", outDir, tablePath})
	require.NoError(t, splitCmd.Execute())

	for _, target := range []string{"1abc", "2xyz"} {
		assert.FileExists(t, filepath.Join(outDir, "iptm", target, "split.csv"))
		assert.FileExists(t, filepath.Join(outDir, "iptm", target, "ligands.name"))
		assert.FileExists(t, filepath.Join(outDir, "iptm", target, "decoys.name"))
	}

	runCmd := newRunCommand()
	runCmd.SetArgs([]string{"--root", outDir, "--jobs", "2"})
	require.NoError(t, runCmd.Execute())

	assert.FileExists(t, filepath.Join(outDir, "iptm", "1abc", "enrichment.csv"))
	assert.FileExists(t, filepath.Join(outDir, "iptm", "2xyz", "enrichment.csv"))

	collectCmd := newCollectCommand()
	collectCmd.SetArgs([]string{"--root", outDir, "--seed", "1"})
	require.NoError(t, collectCmd.Execute())

	data, err := os.ReadFile(filepath.Join(outDir, "auc_summary.csv"))
	require.NoError(t, err)
	summaryText := string(data)
	assert.Contains(t, summaryText, "metric,target,auc,logauc,n_ligands,n_decoys")
	assert.Contains(t, summaryText, "iptm,1abc,1,1,2,2", "actives rank first, so enrichment is perfect")
	assert.Contains(t, summaryText, "iptm,2xyz,0,0,1,1", "the lone active ranks last")

	assert.FileExists(t, filepath.Join(outDir, "pivot_auc.csv"))
	assert.FileExists(t, filepath.Join(outDir, "pivot_logauc.csv"))
	assert.FileExists(t, filepath.Join(outDir, "metric_summary.csv"))
}

func TestPipeline_DryRunWritesNothing(t *testing.T) {
	workDir := t.TempDir()
	tablePath := writeWideTable(t, workDir)
	outDir := filepath.Join(workDir, "results")

	splitCmd := newSplitCommand()
	splitCmd.SetArgs([]string{"-o", outDir, "--dry-run", tablePath})
	require.NoError(t, splitCmd.Execute())

	_, err := os.Stat(filepath.Join(outDir, "iptm"))
	assert.True(t, os.IsNotExist(err))
}

func TestRootCommand_HasSubcommands(t *testing.T) {
	root := newRootCommand()
	names := map[string]bool{}
	for _, sub := range root.Commands() {
		names[sub.Name()] = true
	}
	for _, want := range []string{"split", "run", "collect", "metrics", "correlate"} {
		assert.True(t, names[want], "missing subcommand %q", want)
	}
}
