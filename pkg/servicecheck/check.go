package servicecheck

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vertti/installcheck/pkg/check"
)

// DefaultTimeout bounds a probe when Check.Timeout is zero.
const DefaultTimeout = 30 * time.Second

// Check verifies that a service is running.
type Check struct {
	Service string
	Timeout time.Duration
	Probe   Probe // injected for testing
}

// Run executes the service check.
func (c *Check) Run() check.Result {
	result := check.Result{
		Name: fmt.Sprintf("service: %s running", c.Service),
	}

	timeout := c.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	running, detail, err := c.Probe.Running(ctx, c.Service)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return result.Failf("probe timed out after %s", timeout)
		}
		return result.Failf("probe failed: %v", err)
	}
	if detail != "" {
		result.AddDetail(detail)
	}

	if !running {
		return result.Fail("not running", fmt.Errorf("service %s is not running", c.Service))
	}
	return result.Pass()
}
