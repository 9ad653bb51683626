package cmdcheck

import (
	"bytes"
	"context"
	"os/exec"
	"time"
)

// DefaultWaitDelay bounds how long output is collected after the shell exits.
// Daemons started by init scripts can keep the inherited stdout open forever.
const DefaultWaitDelay = time.Second

// Output is what a finished command produced.
type Output struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Runner abstracts command execution for testability.
// A non-zero exit is reported through Output.ExitCode, not as an error;
// the error is reserved for commands that could not be run or were cut off.
type Runner interface {
	RunCommand(ctx context.Context, command string) (Output, error)
}

// RealRunner runs commands through /bin/sh so pipelines and $(...) work.
type RealRunner struct {
	Shell     string        // default: /bin/sh
	WaitDelay time.Duration // default: DefaultWaitDelay
}

// RunCommand executes a shell command line and captures its output.
func (r *RealRunner) RunCommand(ctx context.Context, command string) (Output, error) {
	shell := r.Shell
	if shell == "" {
		shell = "/bin/sh"
	}

	// #nosec G204 -- commands come from the verifier's fixed tables and local configuration.
	cmd := exec.CommandContext(ctx, shell, "-c", command)
	cmd.WaitDelay = r.WaitDelay
	if cmd.WaitDelay == 0 {
		cmd.WaitDelay = DefaultWaitDelay
	}
	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	err := cmd.Run()
	out := Output{Stdout: outBuf.String(), Stderr: errBuf.String()}

	// A shell that exited on its own finished the command, even when a
	// background child still held the pipes (exec.ErrWaitDelay) or the
	// deadline passed while output was drained.
	if ps := cmd.ProcessState; ps != nil && ps.Exited() {
		out.ExitCode = ps.ExitCode()
		return out, nil
	}
	if ctx.Err() != nil {
		return out, ctx.Err()
	}
	return out, err
}

// MockRunner is a test double for Runner.
type MockRunner struct {
	RunCommandFunc func(ctx context.Context, command string) (Output, error)
}

// RunCommand calls the mock function.
func (m *MockRunner) RunCommand(ctx context.Context, command string) (Output, error) {
	return m.RunCommandFunc(ctx, command)
}
