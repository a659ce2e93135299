package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"fpcheck/internal/config"
	"fpcheck/internal/store"
)

func newTestCmd(t *testing.T) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	logger = zap.NewNop()
	cfg = config.DefaultConfig()

	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)
	return cmd, &buf
}

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
}

func TestRunValidate(t *testing.T) {
	cmd, out := newTestCmd(t)
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"DataSetA_norm_py.txt":  "1 2\n3\n",
		"DataSetA_norm_org.txt": "3\n2 1\n",
		"DataSetA_norm_pfp.txt": "3\n",
	})

	require.NoError(t, runValidate(cmd, []string{dir}))

	assert.Contains(t, out.String(), "Comparing DataSetA_norm_py.txt...")
	assert.Contains(t, out.String(), "ORG Score: 1/1 matched (100.0%)")
	assert.Contains(t, out.String(), "PFP Score: 0/1 matched (0.0%)")
}

func TestRunValidate_DefaultDirMissing(t *testing.T) {
	cmd, out := newTestCmd(t)
	cfg.ResultsDir = filepath.Join(t.TempDir(), "output")

	require.NoError(t, runValidate(cmd, nil))
	assert.Contains(t, out.String(), "not found")
}

func TestRunValidate_Report(t *testing.T) {
	cmd, _ := newTestCmd(t)
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a_py.txt": "1\n", "a_org.txt": "1\n"})
	cfg.ReportPath = filepath.Join(t.TempDir(), "run.jsonl")

	require.NoError(t, runValidate(cmd, []string{dir}))

	rep, err := store.ReadReport(cfg.ReportPath)
	require.NoError(t, err)
	require.Len(t, rep.Records, 2)
	assert.Equal(t, "match", rep.Records[0].Status)
	assert.Equal(t, "not_found", rep.Records[1].Status)
}

func TestRunCompare(t *testing.T) {
	cmd, out := newTestCmd(t)
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"x.txt": "1 2\n3 4\n", "y.txt": "2 1\n5\n"})

	err := runCompare(cmd, []string{filepath.Join(dir, "x.txt"), filepath.Join(dir, "y.txt")})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "OTHER: ✗ Mismatch")
	assert.Contains(t, out.String(), "Examples of Baseline-only itemsets:\n      {3, 4}\n")
	assert.Contains(t, out.String(), "Examples of Other-only itemsets:\n      {5}\n")
}

func TestRunCompare_MissingBaseline(t *testing.T) {
	cmd, _ := newTestCmd(t)
	dir := t.TempDir()

	err := runCompare(cmd, []string{filepath.Join(dir, "x.txt"), filepath.Join(dir, "y.txt")})
	assert.Error(t, err)
}

func TestRootCmd_Args(t *testing.T) {
	assert.Error(t, rootCmd.Args(rootCmd, []string{"a", "b"}))
	assert.NoError(t, compareCmd.Args(compareCmd, []string{"a", "b"}))
	assert.Error(t, compareCmd.Args(compareCmd, []string{"a"}))
}

func TestRunValidate_ReportFlushFailure(t *testing.T) {
	if _, err := os.Stat("/dev/full"); err != nil {
		t.Skip("/dev/full not available")
	}
	cmd, _ := newTestCmd(t)
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a_py.txt": "1\n", "a_org.txt": "1\n"})
	cfg.ReportPath = "/dev/full"

	err := runValidate(cmd, []string{dir})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/dev/full")
}
