package verifier

import (
	"fmt"

	"github.com/vertti/installcheck/pkg/check"
	"github.com/vertti/installcheck/pkg/cmdcheck"
	"github.com/vertti/installcheck/pkg/filecheck"
	"github.com/vertti/installcheck/pkg/limitcheck"
	"github.com/vertti/installcheck/pkg/platform"
	"github.com/vertti/installcheck/pkg/servicecheck"
	"github.com/vertti/installcheck/pkg/usercheck"
)

// Step is one planned check.
type Step struct {
	Phase Phase
	Check check.Checker
}

// Plan lists the checks for a resolved platform in execution order,
// leaving out skipped phases.
func (v *Verifier) Plan(p platform.Platform) []Step {
	builders := map[Phase]func(platform.Platform) []check.Checker{
		PhaseService:   v.serviceChecks,
		PhaseTools:     v.toolChecks,
		PhaseFiles:     v.fileChecks,
		PhaseLimits:    v.limitChecks,
		PhaseUninstall: v.uninstallChecks,
	}

	var steps []Step
	for _, phase := range Phases {
		if v.skip[phase] {
			continue
		}
		for _, c := range builders[phase](p) {
			steps = append(steps, Step{Phase: phase, Check: c})
		}
	}
	return steps
}

// serviceChecks cycles the service through stop, start, stop and restart,
// probing that it runs after each start.
func (v *Verifier) serviceChecks(p platform.Platform) []check.Checker {
	bin := p.ServiceCommand()
	control := func(action string) check.Checker {
		return v.command(servicecheck.ControlCommand(bin, v.Config.Service, action))
	}

	var probe servicecheck.Probe = &servicecheck.GenericProbe{Command: bin, Runner: v.Runner}
	if p.Probe == platform.ProbeSystemd {
		probe = &servicecheck.SystemdProbe{Runner: v.Runner}
	}
	running := &servicecheck.Check{Service: v.Config.Service, Timeout: v.Config.CommandTimeout, Probe: probe}

	return []check.Checker{
		control("stop"),
		control("start"),
		running,
		control("stop"),
		control("restart"),
		running,
	}
}

func (v *Verifier) toolChecks(p platform.Platform) []check.Checker {
	exp := p.CompassExpectation()
	c := v.command(v.Config.CompassCommand)
	c.ExitCode = exp.ExitCode
	c.EmptyStderr = exp.EmptyStderr
	c.StderrPattern = exp.StderrPattern
	return []check.Checker{c}
}

func (v *Verifier) fileChecks(p platform.Platform) []check.Checker {
	var checks []check.Checker
	for _, path := range v.Config.BaselineFiles {
		checks = append(checks, &filecheck.Check{Path: path, ExpectFile: true, FS: v.FS})
	}

	switch p.Init {
	case platform.SysVinit:
		checks = append(checks, &filecheck.Check{Path: platform.InitScript(v.Config.Service), ExpectFile: true, Executable: true, FS: v.FS})
	case platform.Systemd:
		checks = append(checks, &filecheck.Check{Path: p.UnitFile(v.Config.Service), ExpectFile: true, FS: v.FS})
	}

	for _, dir := range p.DataDirs() {
		checks = append(checks, &filecheck.Check{Path: dir, ExpectDir: true, FS: v.FS})
	}

	acct := p.Account()
	checks = append(checks, &usercheck.Check{
		Username: acct.Name,
		Group:    acct.Group,
		Home:     acct.Home,
		Shell:    acct.Shell,
		Lookup:   v.Users,
	})
	return checks
}

func (v *Verifier) limitChecks(platform.Platform) []check.Checker {
	source := &limitcheck.OnceSource{Source: v.Limits}
	checks := make([]check.Checker, 0, len(v.Config.Limits))
	for _, l := range v.Config.Limits {
		checks = append(checks, &limitcheck.Check{
			Process: v.Config.Process,
			Limit:   l.Name,
			Value:   l.Value,
			Source:  source,
		})
	}
	return checks
}

func (v *Verifier) uninstallChecks(p platform.Platform) []check.Checker {
	remove := v.command(p.RemoveCommand(v.Config.PackagePattern))
	remove.Label = fmt.Sprintf("%s remove %s", p.Packaging, v.Config.PackagePattern)

	checks := []check.Checker{remove}
	for _, path := range v.Config.RemovedFiles {
		checks = append(checks, &filecheck.Check{Path: path, Absent: true, FS: v.FS})
	}
	return checks
}

func (v *Verifier) command(command string) *cmdcheck.Check {
	return &cmdcheck.Check{
		Command: command,
		Timeout: v.Config.CommandTimeout,
		Runner:  v.Runner,
	}
}
