package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/coulomb/internal/config"
	"github.com/san-kum/coulomb/internal/field"
	"github.com/san-kum/coulomb/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestRun_Text(t *testing.T) {
	out, _, err := execute(t, "-n", "3")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	assert.Len(t, lines, 4*3+1)
	assert.Equal(t, "Electron at (0.8402, 0.3944):", lines[1])
}

func TestRunSubcommandMatchesRoot(t *testing.T) {
	root, _, err := execute(t, "-n", "25", "-w", "2")
	require.NoError(t, err)
	sub, _, err := execute(t, "run", "-n", "25", "-w", "2")
	require.NoError(t, err)
	assert.Equal(t, root, sub)
}

func TestRun_DefaultCount(t *testing.T) {
	out, _, err := execute(t)
	require.NoError(t, err)
	assert.Equal(t, 1000, strings.Count(out, "Electron at ("))
}

func TestRun_InvalidCount(t *testing.T) {
	for _, n := range []string{"0", "-5", "2000000001"} {
		t.Run(n, func(t *testing.T) {
			out, _, err := execute(t, "-n", n)
			require.Error(t, err)
			assert.True(t, errors.Is(err, field.ErrInvalidConfiguration), "got %v", err)
			assert.Empty(t, out)
		})
	}
}

func TestRun_NonNumericCount(t *testing.T) {
	out, _, err := execute(t, "-n", "many")
	assert.Error(t, err)
	assert.Empty(t, out)
}

func TestRun_JSON(t *testing.T) {
	out, _, err := execute(t, "-n", "4", "--format", "json")
	require.NoError(t, err)

	var data report.ExportData
	require.NoError(t, json.Unmarshal([]byte(out), &data))
	assert.Equal(t, 4, data.Electrons)
	assert.Equal(t, int64(6), data.Pairs)
	assert.Contains(t, data.Metrics, "net_force_sum")
}

func TestRun_ParallelMatchesCount(t *testing.T) {
	out, _, err := execute(t, "-n", "200", "-w", "4", "--format", "csv")
	require.NoError(t, err)

	records, err := report.ReadCSV(strings.NewReader(out))
	require.NoError(t, err)
	assert.Len(t, records, 200)
}

func TestRun_Preset(t *testing.T) {
	out, _, err := execute(t, "--preset", "tiny")
	require.NoError(t, err)
	assert.Equal(t, 10, strings.Count(out, "Electron at ("))

	out, _, err = execute(t, "--preset", "tiny", "-n", "2")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, "Electron at ("), "flags override presets")

	_, _, err = execute(t, "--preset", "huge")
	assert.ErrorIs(t, err, field.ErrInvalidConfiguration)
}

func TestRun_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	cfg := config.DefaultConfig()
	cfg.Electrons = 6
	cfg.Format = "csv"
	require.NoError(t, config.Save(path, cfg))

	out, _, err := execute(t, "--config", path)
	require.NoError(t, err)
	records, err := report.ReadCSV(strings.NewReader(out))
	require.NoError(t, err)
	assert.Len(t, records, 6)
}

func TestRun_SummaryAndPlotGoToStderr(t *testing.T) {
	out, errOut, err := execute(t, "-n", "20", "--summary", "--plot", "-v")
	require.NoError(t, err)
	assert.Equal(t, 20, strings.Count(out, "Electron at ("))
	assert.Contains(t, errOut, "coulomb run")
	assert.Contains(t, errOut, "accumulate")
	assert.NotContains(t, out, "coulomb run")
}

func TestRun_SaveAndList(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "runs")

	_, errOut, err := execute(t, "-n", "5", "--save", "--data", dir)
	require.NoError(t, err)
	assert.Contains(t, errOut, "saved run n5_")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	runID := entries[0].Name()

	out, _, err := execute(t, "list", "--data", dir)
	require.NoError(t, err)
	assert.Contains(t, out, runID)

	out, _, err = execute(t, "export-csv", runID, "--data", dir)
	require.NoError(t, err)
	records, err := report.ReadCSV(strings.NewReader(out))
	require.NoError(t, err)
	assert.Len(t, records, 5)

	out, _, err = execute(t, "export-json", runID, "--data", dir)
	require.NoError(t, err)
	assert.Contains(t, out, `"electrons": 5`)
}

func TestList_Empty(t *testing.T) {
	out, _, err := execute(t, "list", "--data", filepath.Join(t.TempDir(), "none"))
	require.NoError(t, err)
	assert.Contains(t, out, "no runs found")
}

func TestBench(t *testing.T) {
	out, _, err := execute(t, "bench", "--sizes", "10,80", "--workers", "1,2", "--repeats", "1", "--plot")
	require.NoError(t, err)
	assert.Contains(t, out, "ELECTRONS")
	assert.Contains(t, out, "Mpairs/s")
	assert.Equal(t, 1, strings.Count(out, "benchmarking 4 cases"))
}

func TestBench_InvalidSize(t *testing.T) {
	_, _, err := execute(t, "bench", "--sizes", "0")
	assert.ErrorIs(t, err, field.ErrInvalidConfiguration)
}

func TestUnknownProfile(t *testing.T) {
	out, _, err := execute(t, "-n", "2", "--profile", "heap")
	assert.ErrorIs(t, err, field.ErrInvalidConfiguration)
	assert.Empty(t, out)
}

func TestPresets(t *testing.T) {
	out, _, err := execute(t, "presets")
	require.NoError(t, err)
	for _, name := range config.ListPresets() {
		assert.Contains(t, out, name)
	}
}
