// Package limitcheck asserts per-process resource limits (ulimits) of a running service.
package limitcheck

import (
	"bufio"
	"fmt"
	"regexp"
	"strings"

	"github.com/vertti/installcheck/pkg/check"
)

// Check verifies that a process's named limit has the expected value.
type Check struct {
	Process string // command name of the process, e.g. "mongod"
	Limit   string // limit name as printed by procfs, e.g. "Max open files"
	Value   string // expected soft limit, e.g. "64000" or "unlimited"
	Source  Source // injected for testing
}

// Run executes the limit check.
func (c *Check) Run() check.Result {
	result := check.Result{
		Name: fmt.Sprintf("limit: %s %s = %s", c.Process, c.Limit, c.Value),
	}

	text, err := c.Source.Limits(c.Process)
	if err != nil {
		return result.Failf("failed to read limits: %v", err)
	}

	line, ok := findLine(text, c.Limit)
	if !ok {
		return result.Failf("limit %q not present", c.Limit)
	}
	result.AddDetailf("limits: %s", line)

	if !Pattern(c.Limit, c.Value).MatchString(line) {
		return result.Failf("%s is not %s", c.Limit, c.Value)
	}
	return result.Pass()
}

// Pattern matches a limits line whose first value column equals value.
func Pattern(limit, value string) *regexp.Regexp {
	return regexp.MustCompile(regexp.QuoteMeta(limit) + `\s+` + regexp.QuoteMeta(value) + `(\s|$)`)
}

func findLine(text, limit string) (string, bool) {
	scanner := bufio.NewScanner(strings.NewReader(text))
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, limit) {
			return strings.Join(strings.Fields(line), " "), true
		}
	}
	return "", false
}
