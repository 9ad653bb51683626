package main

import (
	"github.com/kubescape/go-logger"
	"github.com/kubescape/go-logger/helpers"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/vertti/installcheck/pkg/config"
	"github.com/vertti/installcheck/pkg/output"
	"github.com/vertti/installcheck/pkg/report"
)

var (
	verifyHost        hostFlags
	verifyConfigFile  string
	verifyFormat      string
	verifyReportFile  string
	verifyMetricsFile string
	verifySkipPhases  []string
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Run every installation check against the host",
	Long: `Run the service, tools, files, limits and uninstall phases in order.
Every check runs even after a failure. The uninstall phase removes the
package; skip it with --skip-phase uninstall to keep the host intact.`,
	Args: cobra.NoArgs,
	RunE: runVerify,
}

func init() {
	addHostFlags(verifyCmd, &verifyHost)
	verifyCmd.Flags().StringVar(&verifyConfigFile, "config", "", "config file (yaml, json or toml)")
	verifyCmd.Flags().StringVar(&verifyFormat, "format", "text", "stdout format: text, json or yaml")
	verifyCmd.Flags().StringVar(&verifyReportFile, "report-file", "", "also write the report to this file (.yaml/.yml for YAML, otherwise JSON)")
	verifyCmd.Flags().StringVar(&verifyMetricsFile, "metrics-file", "", "write Prometheus metrics to this textfile")
	verifyCmd.Flags().StringSliceVar(&verifySkipPhases, "skip-phase", nil, "phase to skip (repeatable): service, tools, files, limits, uninstall")
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	format, err := validateVerifyFlags(verifyFormat, verifySkipPhases)
	if err != nil {
		return err
	}

	cfg, err := config.LoadConfig(verifyConfigFile)
	if err != nil {
		return err
	}
	cfg.SkipPhases = append(cfg.SkipPhases, verifySkipPhases...)

	d, err := resolveHost(&verifyHost)
	if err != nil {
		return err
	}
	cmd.SilenceUsage = true

	v := &verification{cfg: cfg, host: d, reportFile: verifyReportFile, metricsFile: verifyMetricsFile}
	rep, outcomes, err := v.run()
	if err != nil {
		return err
	}

	// Results go out before any artifact is written: the uninstall phase
	// cannot be repeated, so a bad --report-file must not lose them.
	out := cmd.OutOrStdout()
	if format == report.FormatText {
		output.PrintOutcomes(out, outcomes)
	} else if err := rep.Write(out, format); err != nil {
		return err
	}

	var errs error
	if rep.Failed() {
		logger.L().Error("installation checks failed", helpers.Error(rep.Err()))
		errs = ErrChecksFailed
	}
	artifactErr := v.writeArtifacts(rep, outcomes, rep.Elapsed())
	cmd.SilenceErrors = errs != nil && artifactErr == nil
	return multierr.Append(errs, artifactErr)
}
