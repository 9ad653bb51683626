package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vertti/installcheck/pkg/report"
	"github.com/vertti/installcheck/pkg/verifier"
)

// validateVerifyFlags rejects bad flag values before any check runs, since
// some phases change the host.
func validateVerifyFlags(format string, skipPhases []string) (report.Format, error) {
	var errs []error

	f, err := report.ParseFormat(format)
	if err != nil {
		errs = append(errs, fmt.Errorf("--format: %w", err))
	}
	for _, s := range skipPhases {
		if _, err := verifier.ParsePhase(s); err != nil {
			errs = append(errs, fmt.Errorf("--skip-phase: %w", err))
		}
	}
	return f, errors.Join(errs...)
}

// reportFileFormat picks the encoding of --report-file from its extension.
func reportFileFormat(path string) report.Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return report.FormatYAML
	default:
		return report.FormatJSON
	}
}
