package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vertti/installcheck/pkg/check"
	"github.com/vertti/installcheck/pkg/config"
	"github.com/vertti/installcheck/pkg/host"
	"github.com/vertti/installcheck/pkg/verifier"
)

func executeCommand(args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	resetFlags(rootCmd)
	err := rootCmd.Execute()
	return buf.String(), err
}

func resetFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	})
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// fakeVerifier records what it was asked to verify and returns canned outcomes.
type fakeVerifier struct {
	cfg      config.Config
	host     host.Descriptor
	outcomes []verifier.Outcome
	err      error
}

func (f *fakeVerifier) Run(d host.Descriptor) ([]verifier.Outcome, error) {
	f.host = d
	return f.outcomes, f.err
}

func useFakeVerifier(t *testing.T, outcomes ...verifier.Outcome) *fakeVerifier {
	t.Helper()
	fake := &fakeVerifier{outcomes: outcomes}
	old := newVerifier
	newVerifier = func(cfg config.Config) (runner, error) {
		fake.cfg = cfg
		return fake, nil
	}
	t.Cleanup(func() { newVerifier = old })
	return fake
}

var (
	passed = verifier.Outcome{Phase: verifier.PhaseService, Result: check.Result{Name: "command: service mongod stop", Status: check.StatusOK}}
	failed = verifier.Outcome{Phase: verifier.PhaseFiles, Result: check.Result{Name: "file: /usr/bin/mongod", Status: check.StatusFail, Details: []string{"not found"}}}
)

var ubuntuFlags = []string{"--name", "ubuntu", "--release", "20.04", "--arch", "x86_64"}

func TestVersionFlag(t *testing.T) {
	output, err := executeCommand("--version")
	require.NoError(t, err)
	assert.Contains(t, output, "installcheck")
}

func TestHelpFlag(t *testing.T) {
	output, err := executeCommand("--help")
	require.NoError(t, err)
	assert.Contains(t, output, "verify")
	assert.Contains(t, output, "detect")
}

func TestDetectCommand(t *testing.T) {
	output, err := executeCommand(append([]string{"detect"}, ubuntuFlags...)...)
	require.NoError(t, err)
	assert.Contains(t, output, "ubuntu 20.04 (x86_64, family debian)")
	assert.Contains(t, output, "init:      systemd")
	assert.Contains(t, output, "packaging: deb")
	assert.Contains(t, output, "account:   mongodb")
	assert.Contains(t, output, "compass:   supported=true")
}

func TestDetectCommand_HostFile(t *testing.T) {
	path := writeTempFile(t, "host.json", `{"name":"amazon","release":"2.0","arch":"x86_64","families":["redhat","linux"]}`)

	output, err := executeCommand("detect", "--host-file", path)

	require.NoError(t, err)
	assert.Contains(t, output, "init:      upstart")
	assert.Contains(t, output, "packaging: rpm")
	assert.Contains(t, output, "probe:     systemd")
}

func TestDetectCommand_HostFileOverride(t *testing.T) {
	path := writeTempFile(t, "host.json", `{"name":"redhat","release":"7.9","arch":"x86_64","family":"redhat"}`)

	output, err := executeCommand("detect", "--host-file", path, "--arch", "i686")

	require.NoError(t, err)
	assert.Contains(t, output, "redhat 7.9 (i686")
	assert.Contains(t, output, "compass:   supported=false")
}

func TestVerifyCommand_Pass(t *testing.T) {
	fake := useFakeVerifier(t, passed)

	output, err := executeCommand(append([]string{"verify"}, ubuntuFlags...)...)

	require.NoError(t, err)
	assert.Contains(t, output, "== service ==")
	assert.Contains(t, output, "command: service mongod stop")
	assert.Contains(t, output, "1 checks, 1 passed, 0 failed")
	assert.Equal(t, "ubuntu", fake.host.Name)
	assert.Equal(t, "debian", fake.host.Family)
	assert.Equal(t, "mongod", fake.cfg.Service)
}

func TestVerifyCommand_Fail(t *testing.T) {
	useFakeVerifier(t, passed, failed)

	output, err := executeCommand(append([]string{"verify"}, ubuntuFlags...)...)

	assert.ErrorIs(t, err, ErrChecksFailed)
	assert.Contains(t, output, "[FAIL]")
	assert.Contains(t, output, "2 checks, 1 passed, 1 failed")
}

func TestVerifyCommand_JSON(t *testing.T) {
	useFakeVerifier(t, passed, failed)

	output, err := executeCommand(append([]string{"verify", "--format", "json"}, ubuntuFlags...)...)
	require.ErrorIs(t, err, ErrChecksFailed)

	var decoded struct {
		Host    host.Descriptor `json:"host"`
		Summary struct {
			Failed int `json:"failed"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &decoded))
	assert.Equal(t, "20.04", decoded.Host.Release)
	assert.Equal(t, 1, decoded.Summary.Failed)
}

func TestVerifyCommand_ReportAndMetricsFiles(t *testing.T) {
	useFakeVerifier(t, passed)
	dir := t.TempDir()
	reportPath := filepath.Join(dir, "report.yaml")
	metricsPath := filepath.Join(dir, "installcheck.prom")

	_, err := executeCommand(append([]string{"verify", "--report-file", reportPath, "--metrics-file", metricsPath}, ubuntuFlags...)...)
	require.NoError(t, err)

	rep, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	assert.Contains(t, string(rep), "packaging: deb")

	prom, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(prom), "installcheck_success 1")
}

func TestVerifyCommand_SkipPhase(t *testing.T) {
	fake := useFakeVerifier(t, passed)

	_, err := executeCommand(append([]string{"verify", "--skip-phase", "uninstall", "--skip-phase", "limits"}, ubuntuFlags...)...)

	require.NoError(t, err)
	assert.Equal(t, []string{"uninstall", "limits"}, fake.cfg.SkipPhases)
}

func TestVerifyCommand_ConfigFile(t *testing.T) {
	fake := useFakeVerifier(t, passed)
	path := writeTempFile(t, "installcheck.yaml", "service: mongod-test\nskipPhases: [uninstall]\n")

	_, err := executeCommand(append([]string{"verify", "--config", path}, ubuntuFlags...)...)

	require.NoError(t, err)
	assert.Equal(t, "mongod-test", fake.cfg.Service)
	assert.Equal(t, []string{"uninstall"}, fake.cfg.SkipPhases)
}

func TestVerifyCommand_InvalidFlags(t *testing.T) {
	useFakeVerifier(t, passed)

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"bad format", []string{"--format", "xml"}, `--format: unknown format "xml"`},
		{"bad phase", []string{"--skip-phase", "network"}, `--skip-phase: unknown phase "network"`},
		{"missing config", []string{"--config", "/nonexistent/installcheck.yaml"}, "failed to read config"},
		{"bad host file", []string{"--host-file", "/nonexistent/host.json"}, "failed to determine host"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := executeCommand(append(append([]string{"verify"}, ubuntuFlags...), tt.args...)...)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestVerifyCommand_VerifierError(t *testing.T) {
	old := newVerifier
	newVerifier = func(config.Config) (runner, error) { return nil, errors.New("invalid skipPhases") }
	t.Cleanup(func() { newVerifier = old })

	_, err := executeCommand(append([]string{"verify"}, ubuntuFlags...)...)
	assert.EqualError(t, err, "invalid skipPhases")
}

func TestLogLevelFlag(t *testing.T) {
	useFakeVerifier(t, passed)

	_, err := executeCommand(append([]string{"verify", "--log-level", "debug"}, ubuntuFlags...)...)
	assert.NoError(t, err)
}

func TestVerifyCommand_ReportFileErrorKeepsResults(t *testing.T) {
	useFakeVerifier(t, passed, failed)
	dir := t.TempDir()
	reportPath := filepath.Join(dir, "missing-dir", "report.json")
	metricsPath := filepath.Join(dir, "installcheck.prom")

	output, err := executeCommand(append([]string{"verify", "--report-file", reportPath, "--metrics-file", metricsPath}, ubuntuFlags...)...)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrChecksFailed)
	assert.ErrorContains(t, err, "failed to create report file")
	assert.Contains(t, output, "command: service mongod stop")
	assert.Contains(t, output, "file: /usr/bin/mongod")

	_, statErr := os.Stat(metricsPath)
	assert.NoError(t, statErr, "metrics file is still written")
}

func TestVerifyCommand_MetricsFileErrorOnPassingRun(t *testing.T) {
	useFakeVerifier(t, passed)
	metricsPath := filepath.Join(t.TempDir(), "missing-dir", "installcheck.prom")

	output, err := executeCommand(append([]string{"verify", "--format", "json", "--metrics-file", metricsPath}, ubuntuFlags...)...)

	assert.ErrorContains(t, err, "failed to write metrics")
	assert.NotErrorIs(t, err, ErrChecksFailed)
	assert.Contains(t, output, `"name": "command: service mongod stop"`)
}
