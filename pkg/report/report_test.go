package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/vertti/installcheck/pkg/check"
	"github.com/vertti/installcheck/pkg/host"
	"github.com/vertti/installcheck/pkg/platform"
	"github.com/vertti/installcheck/pkg/verifier"
)

func sample() *Report {
	p := platform.Resolve(host.Descriptor{Name: "redhat", Release: "8.6", Arch: "x86_64", Family: "redhat"})
	return New(p, []verifier.Outcome{
		{Phase: verifier.PhaseService, Result: check.Result{Name: "command: service mongod stop", Status: check.StatusOK, Details: []string{"exit code: 0"}}},
		{Phase: verifier.PhaseFiles, Result: check.Result{Name: "user: mongod", Status: check.StatusFail, Details: []string{"shell mismatch"}, Err: errors.New("shell mismatch")}},
		{Phase: verifier.PhaseLimits, Result: check.Result{Name: "limit: mongod Max processes = 64000", Status: check.StatusFail}},
	}, 1500*time.Millisecond)
}

func TestNew(t *testing.T) {
	r := sample()

	assert.Equal(t, Summary{Total: 3, Passed: 1, Failed: 2}, r.Summary)
	assert.Equal(t, PlatformInfo{Init: "systemd", Packaging: "rpm", Probe: "service"}, r.Platform)
	assert.Equal(t, "1.5s", r.Duration)
	assert.Equal(t, 1500*time.Millisecond, r.Elapsed())
	assert.True(t, r.Failed())
	assert.Equal(t, "files", r.Checks[1].Phase)
	assert.Equal(t, "shell mismatch", r.Checks[1].Error)
	assert.Empty(t, r.Checks[2].Error)
}

func TestErr(t *testing.T) {
	r := sample()

	errs := multierr.Errors(r.Err())
	require.Len(t, errs, 2)
	assert.EqualError(t, errs[0], "files: user: mongod: shell mismatch")
	assert.EqualError(t, errs[1], "limits: limit: mongod Max processes = 64000: check failed")
}

func TestErr_AllPassed(t *testing.T) {
	p := platform.Resolve(host.Descriptor{Name: "ubuntu", Release: "22.04", Arch: "x86_64"})
	r := New(p, []verifier.Outcome{
		{Phase: verifier.PhaseTools, Result: check.Result{Name: "command: install_compass", Status: check.StatusOK}},
	}, time.Second)

	assert.False(t, r.Failed())
	assert.NoError(t, r.Err())
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, sample().Write(&buf, FormatJSON))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "redhat", decoded["host"].(map[string]any)["name"])
	assert.Len(t, decoded["checks"], 3)
	assert.InDelta(t, 2, decoded["summary"].(map[string]any)["failed"], 0)
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, sample().Write(&buf, FormatYAML))

	var decoded struct {
		Platform PlatformInfo `yaml:"platform"`
		Summary  Summary      `yaml:"summary"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "rpm", decoded.Platform.Packaging)
	assert.Equal(t, 1, decoded.Summary.Passed)
	assert.Contains(t, buf.String(), "- phase: service")
}

func TestWrite_TextIsNotStructured(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, sample().Write(&buf, FormatText))
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"text", "json", "yaml"} {
		f, err := ParseFormat(s)
		require.NoError(t, err)
		assert.Equal(t, Format(s), f)
	}
	_, err := ParseFormat("xml")
	assert.EqualError(t, err, `unknown format "xml" (valid: text, json, yaml)`)
}
