package cmdcheck

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/multierr"

	"github.com/vertti/installcheck/pkg/check"
)

// DefaultTimeout bounds a single command when Check.Timeout is zero.
const DefaultTimeout = 2 * time.Minute

// Check runs a command and asserts its exit code and output.
type Check struct {
	Command       string        // shell command line
	Label         string        // name shown in results (default: the command)
	ExitCode      int           // expected exit code
	EmptyStderr   bool          // stderr must be empty
	StderrPattern string        // regex stderr must match
	StdoutPattern string        // regex stdout must match
	Timeout       time.Duration // default: DefaultTimeout
	Runner        Runner        // injected for testing
}

// Run executes the command check. Every assertion is evaluated so a single
// result lists all mismatches.
func (c *Check) Run() check.Result {
	label := c.Label
	if label == "" {
		label = c.Command
	}
	result := check.Result{
		Name: fmt.Sprintf("command: %s", label),
	}

	timeout := c.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	out, err := c.Runner.RunCommand(ctx, c.Command)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return result.Failf("command timed out after %s", timeout)
		}
		return result.Failf("command failed to run: %v", err)
	}

	result.AddDetailf("exit code: %d", out.ExitCode)

	var errs error
	if out.ExitCode != c.ExitCode {
		errs = multierr.Append(errs, fmt.Errorf("exit code %d, want %d", out.ExitCode, c.ExitCode))
	}
	if c.EmptyStderr && out.Stderr != "" {
		errs = multierr.Append(errs, fmt.Errorf("stderr %q, want empty", strings.TrimSpace(out.Stderr)))
	}
	errs = multierr.Append(errs, matchOutput("stderr", c.StderrPattern, out.Stderr))
	errs = multierr.Append(errs, matchOutput("stdout", c.StdoutPattern, out.Stdout))

	if errs != nil {
		for _, e := range multierr.Errors(errs) {
			result.AddDetail(e.Error())
		}
		result.Status = check.StatusFail
		result.Err = errs
		return result
	}

	return result.Pass()
}

func matchOutput(stream, pattern, output string) error {
	re, err := check.CompileRegex(pattern)
	if err != nil {
		return fmt.Errorf("invalid %s pattern: %w", stream, err)
	}
	if re != nil && !re.MatchString(output) {
		return fmt.Errorf("%s %q does not match pattern %q", stream, strings.TrimSpace(output), pattern)
	}
	return nil
}
