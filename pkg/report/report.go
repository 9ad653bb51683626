// Package report builds machine-readable verification reports.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/vertti/installcheck/pkg/check"
	"github.com/vertti/installcheck/pkg/host"
	"github.com/vertti/installcheck/pkg/platform"
	"github.com/vertti/installcheck/pkg/verifier"
)

// Format selects the report encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q (valid: text, json, yaml)", s)
}

// PlatformInfo is the resolved platform in printable form.
type PlatformInfo struct {
	Init      string `json:"init" yaml:"init"`
	Packaging string `json:"packaging" yaml:"packaging"`
	Probe     string `json:"probe" yaml:"probe"`
}

// Entry is one check outcome. Error is empty for passing checks and for
// failures without an underlying error.
type Entry struct {
	Phase   string   `json:"phase" yaml:"phase"`
	Name    string   `json:"name" yaml:"name"`
	Status  string   `json:"status" yaml:"status"`
	Details []string `json:"details,omitempty" yaml:"details,omitempty"`
	Error   string   `json:"error,omitempty" yaml:"error,omitempty"`
}

// Summary counts the checks of a run.
type Summary struct {
	Total  int `json:"total" yaml:"total"`
	Passed int `json:"passed" yaml:"passed"`
	Failed int `json:"failed" yaml:"failed"`
}

// Report is the full record of one verification run.
type Report struct {
	Host     host.Descriptor `json:"host" yaml:"host"`
	Platform PlatformInfo    `json:"platform" yaml:"platform"`
	Checks   []Entry         `json:"checks" yaml:"checks"`
	Summary  Summary         `json:"summary" yaml:"summary"`
	Duration string          `json:"duration" yaml:"duration"`

	elapsed  time.Duration
	failures error
}

// New builds a report from the outcomes of a run on platform p.
func New(p platform.Platform, outcomes []verifier.Outcome, elapsed time.Duration) *Report {
	r := &Report{
		Host: p.Host,
		Platform: PlatformInfo{
			Init:      p.Init.String(),
			Packaging: p.Packaging.String(),
			Probe:     p.Probe.String(),
		},
		Checks:   make([]Entry, 0, len(outcomes)),
		Duration: elapsed.Round(time.Millisecond).String(),
		elapsed:  elapsed,
	}

	for _, o := range outcomes {
		e := Entry{
			Phase:   string(o.Phase),
			Name:    o.Result.Name,
			Status:  string(o.Result.Status),
			Details: o.Result.Details,
		}
		r.Summary.Total++
		if o.Result.Status == check.StatusOK {
			r.Summary.Passed++
		} else {
			r.Summary.Failed++
			cause := o.Result.Err
			if cause != nil {
				e.Error = cause.Error()
			} else {
				cause = fmt.Errorf("check failed")
			}
			r.failures = multierr.Append(r.failures, fmt.Errorf("%s: %s: %w", o.Phase, o.Result.Name, cause))
		}
		r.Checks = append(r.Checks, e)
	}
	return r
}

// Failed reports whether any check failed.
func (r *Report) Failed() bool {
	return r.Summary.Failed > 0
}

// Elapsed is the unrounded wall time of the run.
func (r *Report) Elapsed() time.Duration {
	return r.elapsed
}

// Err combines every failed check into one error, or returns nil.
func (r *Report) Err() error {
	return r.failures
}

// WriteJSON encodes the report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("failed to encode JSON report: %w", err)
	}
	return nil
}

// WriteYAML encodes the report as a YAML document.
func (r *Report) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("failed to encode YAML report: %w", err)
	}
	return enc.Close()
}

// Write encodes the report in a structured format.
func (r *Report) Write(w io.Writer, f Format) error {
	switch f {
	case FormatJSON:
		return r.WriteJSON(w)
	case FormatYAML:
		return r.WriteYAML(w)
	}
	return fmt.Errorf("format %q is not a structured report format", f)
}
