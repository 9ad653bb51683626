// Package metrics exports verification results as Prometheus metrics for the
// node-exporter textfile collector.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vertti/installcheck/pkg/check"
	"github.com/vertti/installcheck/pkg/host"
	"github.com/vertti/installcheck/pkg/verifier"
)

const namespace = "installcheck"

// Recorder holds the metrics of one run in a dedicated registry.
type Recorder struct {
	Registry *prometheus.Registry

	checks   *prometheus.GaugeVec
	duration prometheus.Gauge
	lastRun  prometheus.Gauge
	success  prometheus.Gauge
	hostInfo *prometheus.GaugeVec
}

// NewRecorder registers every metric in a fresh registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	return &Recorder{
		Registry: reg,
		checks: promauto.With(reg).NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "checks",
				Help:      "Number of checks in the last run by phase and status",
			},
			[]string{"phase", "status"},
		),
		duration: promauto.With(reg).NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "run_duration_seconds",
				Help:      "Wall time of the last verification run",
			},
		),
		lastRun: promauto.With(reg).NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "last_run_timestamp_seconds",
				Help:      "Unix time the last verification run finished",
			},
		),
		success: promauto.With(reg).NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "success",
				Help:      "1 if every check in the last run passed, 0 otherwise",
			},
		),
		hostInfo: promauto.With(reg).NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "host_info",
				Help:      "Host the last run verified",
			},
			[]string{"name", "release", "arch"},
		),
	}
}

// Record sets every metric from the outcomes of a run.
func (r *Recorder) Record(d host.Descriptor, outcomes []verifier.Outcome, elapsed time.Duration, finished time.Time) {
	for _, p := range verifier.Phases {
		r.checks.WithLabelValues(string(p), string(check.StatusOK)).Set(0)
		r.checks.WithLabelValues(string(p), string(check.StatusFail)).Set(0)
	}

	ok := 1.0
	for _, o := range outcomes {
		r.checks.WithLabelValues(string(o.Phase), string(o.Result.Status)).Inc()
		if !o.Result.OK() {
			ok = 0
		}
	}

	r.success.Set(ok)
	r.duration.Set(elapsed.Seconds())
	r.lastRun.Set(float64(finished.Unix()))
	r.hostInfo.Reset()
	r.hostInfo.WithLabelValues(d.Name, d.Release, d.Arch).Set(1)
}

// WriteTextfile atomically writes the registry in text exposition format.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.Registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
