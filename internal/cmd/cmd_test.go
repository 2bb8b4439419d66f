package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Raamakrishnan/ulog/internal/ingest"
	"github.com/Raamakrishnan/ulog/internal/model"
)

const simLog = `UVM_INFO @ 0: reporter [RNTST] Running test jb_test...
UVM_INFO tb/env.svh(12) @ 0: uvm_test_top.jb_env [CFG] building
UVM_WARNING tb/fc.svh(88) @ 15ns: uvm_test_top.jb_env.jb_fc [id2] slow flavor
UVM_FATAL /home/runner/env.svh(46) @ 25: uvm_test_top.jb_env.jb_fc [id1] GREEN BUBBLE_GUM 7
UVM_ERROR tb/sb.svh(7) @ 30ns: uvm_test_top.jb_env.sb [id1] mismatch
UVM_FATAL tb/sb.svh(9) @ 31ns: uvm_test_top.jb_env.sb [id3] giving up
`

func writeLog(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "sim.log")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// run executes ulog with args and an empty config file.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	cfg := filepath.Join(t.TempDir(), "ulog.yaml")
	require.NoError(t, os.WriteFile(cfg, nil, 0644))

	var stdout, stderr bytes.Buffer
	root := NewRootCmd(viper.New())
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append(args, "--config", cfg))

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func outputLines(s string) []string {
	return strings.Split(strings.TrimRight(s, "\n"), "\n")
}

func TestShowIDAndSeverity(t *testing.T) {
	path := writeLog(t, simLog)

	out, _, err := run(t, "show", path, "--id", "id1", "--severity", "fatal")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"UVM_FATAL /home/runner/env.svh(46) @ 25: uvm_test_top.jb_env.jb_fc [id1] GREEN BUBBLE_GUM 7",
	}, outputLines(out))
}

func TestShowWithoutFilterKeepsAll(t *testing.T) {
	path := writeLog(t, simLog)

	out, stderr, err := run(t, "show", path)
	require.NoError(t, err)
	assert.Len(t, outputLines(out), 5)
	assert.Contains(t, stderr, "skipping malformed line")
}

func TestShowNoFilterNone(t *testing.T) {
	path := writeLog(t, simLog)

	out, _, err := run(t, "show", path, "--no-filter", "none")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestShowComponentAndJSON(t *testing.T) {
	path := writeLog(t, simLog)

	out, _, err := run(t, "show", path, "--component", "**.sb", "-o", "json")
	require.NoError(t, err)

	lines := outputLines(out)
	require.Len(t, lines, 2)

	var got model.Line
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &got))
	assert.Equal(t, "id3", got.ID)
	assert.Equal(t, model.Nanosecond, got.Unit)
}

func TestShowRaw(t *testing.T) {
	path := writeLog(t, "UVM_ERROR  a.sv(1)  @  5:  top  [x]  spaced out\n")

	out, _, err := run(t, "show", path, "-o", "raw")
	require.NoError(t, err)
	assert.Equal(t, "UVM_ERROR  a.sv(1)  @  5:  top  [x]  spaced out\n", out)

	out, _, err = run(t, "show", path)
	require.NoError(t, err)
	assert.Equal(t, "UVM_ERROR a.sv(1) @ 5: top [x] spaced out\n", out)
}

func TestShowOnErrorFail(t *testing.T) {
	path := writeLog(t, simLog)

	out, _, err := run(t, "show", path, "--on-error", "fail")
	require.Error(t, err)
	assert.Empty(t, out)

	var lerr *ingest.LineError
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, 1, lerr.Number)
}

func TestShowOnErrorCollect(t *testing.T) {
	path := writeLog(t, simLog)

	out, stderr, err := run(t, "show", path, "--on-error", "collect", "-s", "UVM_ERROR")
	require.Error(t, err)
	assert.Equal(t, []string{"UVM_ERROR tb/sb.svh(7) @ 30ns: uvm_test_top.jb_env.sb [id1] mismatch"}, outputLines(out))
	assert.Contains(t, err.Error(), "1 malformed line(s)")
	assert.Contains(t, stderr, "sim.log:1:")
}

func TestSummaryOnErrorCollectListsEachFailure(t *testing.T) {
	path := writeLog(t, "garbage\n"+simLog+"more garbage\n")

	_, stderr, err := run(t, "summary", path, "--on-error", "collect")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "3 malformed line(s)")
	for _, loc := range []string{"sim.log:1:", "sim.log:2:", "sim.log:8:"} {
		assert.Contains(t, stderr, loc)
	}
}

func TestShowMissingFile(t *testing.T) {
	_, _, err := run(t, "show", filepath.Join(t.TempDir(), "missing.log"))

	var rerr *ingest.ReadError
	assert.ErrorAs(t, err, &rerr)
}

func TestShowAliasesInLog(t *testing.T) {
	path := writeLog(t, "fatal a.sv(1) @ 0: top [a] boom\n")

	out, _, err := run(t, "show", path)
	require.NoError(t, err)
	assert.Empty(t, out)

	out, _, err = run(t, "show", path, "--aliases")
	require.NoError(t, err)
	assert.Equal(t, "UVM_FATAL a.sv(1) @ 0: top [a] boom\n", out)
}

func TestShowInvalidSeverityFlag(t *testing.T) {
	path := writeLog(t, simLog)

	_, _, err := run(t, "show", path, "-s", "panic")
	assert.ErrorContains(t, err, "not a valid severity")
}

func TestSummary(t *testing.T) {
	path := writeLog(t, simLog)

	out, _, err := run(t, "summary", path, "-o", "json")
	require.NoError(t, err)

	var got struct {
		Total          int64            `json:"total"`
		SeverityCounts map[string]int64 `json:"severity_counts"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, int64(5), got.Total)
	assert.Equal(t, int64(2), got.SeverityCounts["UVM_FATAL"])
	assert.Equal(t, int64(1), got.SeverityCounts["UVM_WARNING"])
}

func TestViewFallsBackToShow(t *testing.T) {
	path := writeLog(t, simLog)

	// Test output is never a terminal.
	out, _, err := run(t, "view", path, "--id", "id2")
	require.NoError(t, err)
	assert.Equal(t, "UVM_WARNING tb/fc.svh(88) @ 15ns: uvm_test_top.jb_env.jb_fc [id2] slow flavor\n", out)
}

func TestConfigFile(t *testing.T) {
	path := writeLog(t, simLog)

	cfg := filepath.Join(t.TempDir(), "ulog.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("severity: [warning]\noutput: raw\n"), 0644))

	var stdout bytes.Buffer
	root := NewRootCmd(viper.New())
	root.SetOut(&stdout)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"show", path, "--config", cfg})
	require.NoError(t, root.Execute())

	assert.Equal(t, "UVM_WARNING tb/fc.svh(88) @ 15ns: uvm_test_top.jb_env.jb_fc [id2] slow flavor\n", stdout.String())
}

func TestMissingConfigFile(t *testing.T) {
	root := NewRootCmd(viper.New())
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"show", "sim.log", "--config", filepath.Join(t.TempDir(), "nope.yaml")})

	assert.ErrorContains(t, root.Execute(), "reading config")
}

func TestBuildFilter(t *testing.T) {
	f, err := buildFilter(nil, nil, nil, "all")
	require.NoError(t, err)
	assert.True(t, f.Keep(model.Line{Severity: model.Info}))

	f, err = buildFilter(nil, nil, nil, "none")
	require.NoError(t, err)
	assert.False(t, f.Keep(model.Line{Severity: model.Info}))

	f, err = buildFilter([]string{"id1"}, []string{"fatal", "UVM_ERROR"}, nil, "all")
	require.NoError(t, err)
	assert.True(t, f.Keep(model.Line{ID: "id1", Severity: model.Error}))
	assert.False(t, f.Keep(model.Line{ID: "id1", Severity: model.Info}))

	_, err = buildFilter(nil, nil, nil, "some")
	assert.Error(t, err)
}
