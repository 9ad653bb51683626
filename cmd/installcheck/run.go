package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/kubescape/go-logger"
	"github.com/kubescape/go-logger/helpers"
	"go.uber.org/multierr"

	"github.com/vertti/installcheck/pkg/config"
	"github.com/vertti/installcheck/pkg/host"
	"github.com/vertti/installcheck/pkg/metrics"
	"github.com/vertti/installcheck/pkg/platform"
	"github.com/vertti/installcheck/pkg/report"
	"github.com/vertti/installcheck/pkg/verifier"
)

// ErrChecksFailed is returned when at least one check fails.
// The returned error causes Cobra to exit with code 1.
var ErrChecksFailed = errors.New("installation checks failed")

// runner executes the verifier; replaced in tests.
type runner interface {
	Run(d host.Descriptor) ([]verifier.Outcome, error)
}

var newVerifier = func(cfg config.Config) (runner, error) {
	return verifier.New(cfg)
}

// verification is one run of the verify command.
type verification struct {
	cfg         config.Config
	host        host.Descriptor
	reportFile  string
	metricsFile string
}

func (v *verification) run() (*report.Report, []verifier.Outcome, error) {
	ver, err := newVerifier(v.cfg)
	if err != nil {
		return nil, nil, err
	}

	start := time.Now()
	outcomes, err := ver.Run(v.host)
	if err != nil {
		return nil, nil, err
	}
	elapsed := time.Since(start)

	rep := report.New(platform.Resolve(v.host), outcomes, elapsed)
	logger.L().Info("verification finished",
		helpers.Int("total", rep.Summary.Total),
		helpers.Int("failed", rep.Summary.Failed),
		helpers.String("duration", rep.Duration))
	return rep, outcomes, nil
}

// writeArtifacts writes the report and metrics files. Each file is attempted
// even if the other fails.
func (v *verification) writeArtifacts(rep *report.Report, outcomes []verifier.Outcome, elapsed time.Duration) error {
	var errs error
	if v.reportFile != "" {
		errs = multierr.Append(errs, writeReportFile(rep, v.reportFile))
	}
	if v.metricsFile != "" {
		rec := metrics.NewRecorder()
		rec.Record(v.host, outcomes, elapsed, time.Now())
		errs = multierr.Append(errs, rec.WriteTextfile(v.metricsFile))
	}
	return errs
}

func writeReportFile(rep *report.Report, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	if err := rep.Write(f, reportFileFormat(path)); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
