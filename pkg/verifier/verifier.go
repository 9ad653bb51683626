// Package verifier runs the installation checks for a server package against
// one host and collects every result.
package verifier

import (
	"fmt"
	"time"

	"github.com/kubescape/go-logger"
	"github.com/kubescape/go-logger/helpers"
	"github.com/spf13/afero"

	"github.com/vertti/installcheck/pkg/check"
	"github.com/vertti/installcheck/pkg/cmdcheck"
	"github.com/vertti/installcheck/pkg/config"
	"github.com/vertti/installcheck/pkg/host"
	"github.com/vertti/installcheck/pkg/limitcheck"
	"github.com/vertti/installcheck/pkg/platform"
	"github.com/vertti/installcheck/pkg/usercheck"
)

// Outcome is a check result tagged with the phase that produced it.
type Outcome struct {
	Phase  Phase
	Result check.Result
}

// Verifier sequences the checks of every phase. A failing check never stops
// the run; later checks still execute and report.
type Verifier struct {
	Config config.Config
	Runner cmdcheck.Runner
	FS     afero.Fs
	Users  usercheck.UserLookup
	Limits limitcheck.Source

	skip map[Phase]bool
}

// New returns a Verifier wired to the local system.
func New(cfg config.Config) (*Verifier, error) {
	fs := afero.NewOsFs()
	return NewWith(cfg, &cmdcheck.RealRunner{}, fs,
		&usercheck.RealUserLookup{FS: fs},
		&limitcheck.ProcSource{ProcRoot: cfg.ProcRoot, FS: fs})
}

// NewWith returns a Verifier using the given collaborators.
func NewWith(cfg config.Config, runner cmdcheck.Runner, fs afero.Fs, users usercheck.UserLookup, limits limitcheck.Source) (*Verifier, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	skip := make(map[Phase]bool)
	for _, s := range cfg.SkipPhases {
		phase, err := ParsePhase(s)
		if err != nil {
			return nil, fmt.Errorf("invalid skipPhases: %w", err)
		}
		skip[phase] = true
	}

	return &Verifier{
		Config: cfg,
		Runner: runner,
		FS:     fs,
		Users:  users,
		Limits: limits,
		skip:   skip,
	}, nil
}

// Run resolves the host's platform and executes every planned check in order.
func (v *Verifier) Run(d host.Descriptor) ([]Outcome, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	p := platform.Resolve(d)
	logger.L().Info("verifying installation",
		helpers.String("host", d.String()),
		helpers.String("init", p.Init.String()),
		helpers.String("packaging", p.Packaging.String()),
		helpers.String("probe", p.Probe.String()))

	steps := v.Plan(p)
	outcomes := make([]Outcome, 0, len(steps))
	var current Phase
	for _, step := range steps {
		if step.Phase != current {
			current = step.Phase
			logger.L().Info("starting phase", helpers.String("phase", string(current)))
		}

		start := time.Now()
		result := step.Check.Run()
		outcomes = append(outcomes, Outcome{Phase: step.Phase, Result: result})

		logger.L().Debug("check finished",
			helpers.String("phase", string(step.Phase)),
			helpers.String("check", result.Name),
			helpers.String("status", string(result.Status)),
			helpers.String("duration", time.Since(start).String()))
		if result.Err != nil {
			logger.L().Debug("check failed", helpers.String("check", result.Name), helpers.Error(result.Err))
		}
	}

	return outcomes, nil
}
