// Package servicecheck queries and asserts the running state of OS services.
package servicecheck

import (
	"context"
	"fmt"
	"strings"

	"github.com/vertti/installcheck/pkg/cmdcheck"
)

// Probe reports whether a named service is running.
type Probe interface {
	Running(ctx context.Context, service string) (running bool, detail string, err error)
}

// GenericProbe asks the init system through `service <name> status`; exit 0 means running.
type GenericProbe struct {
	Command string // service control binary (default: "service")
	Runner  cmdcheck.Runner
}

// Running implements Probe.
func (p *GenericProbe) Running(ctx context.Context, service string) (bool, string, error) {
	bin := p.Command
	if bin == "" {
		bin = "service"
	}
	out, err := p.Runner.RunCommand(ctx, fmt.Sprintf("%s %s status", bin, service))
	if err != nil {
		return false, "", err
	}
	return out.ExitCode == 0, fmt.Sprintf("status exit code: %d", out.ExitCode), nil
}

// SystemdProbe asks systemd directly with `systemctl is-active <name>`.
type SystemdProbe struct {
	Runner cmdcheck.Runner
}

// Running implements Probe.
func (p *SystemdProbe) Running(ctx context.Context, service string) (bool, string, error) {
	out, err := p.Runner.RunCommand(ctx, fmt.Sprintf("systemctl is-active %s", service))
	if err != nil {
		return false, "", err
	}
	state := strings.TrimSpace(out.Stdout)
	if state == "" {
		state = "unknown"
	}
	return state == "active", fmt.Sprintf("active state: %s", state), nil
}

// ControlCommand returns the command line that applies action (start, stop,
// restart) to a service through the given control binary.
func ControlCommand(bin, service, action string) string {
	return fmt.Sprintf("%s %s %s", bin, service, action)
}
