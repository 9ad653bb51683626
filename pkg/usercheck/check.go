package usercheck

import (
	"fmt"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"go.uber.org/multierr"

	"github.com/vertti/installcheck/pkg/check"
)

// Check verifies a user exists and optionally validates group/home/shell.
type Check struct {
	Username string     // username to check
	Group    string     // group the user must belong to (empty = don't check)
	Home     string     // expected home directory (empty = don't check)
	Shell    string     // expected login shell (empty = don't check)
	Lookup   UserLookup // injected for testing
}

// Run executes the user check. Every mismatch is reported, not just the first.
func (c *Check) Run() check.Result {
	result := check.Result{
		Name: fmt.Sprintf("user: %s", c.Username),
	}

	u, err := c.Lookup.Lookup(c.Username)
	if err != nil {
		return result.Fail(fmt.Sprintf("user not found: %v", err), err)
	}

	result.AddDetailf("uid: %s", u.UID).
		AddDetailf("groups: %s", strings.Join(u.Groups, ",")).
		AddDetailf("home: %s", u.Home).
		AddDetailf("shell: %s", u.Shell)

	var errs error
	if c.Group != "" && !mapset.NewSet(u.Groups...).Contains(c.Group) {
		errs = multierr.Append(errs, fmt.Errorf("not a member of group %s", c.Group))
	}

	checks := []struct {
		name     string
		expected string
		actual   string
	}{
		{"home", c.Home, u.Home},
		{"shell", c.Shell, u.Shell},
	}

	for _, chk := range checks {
		if chk.expected != "" && chk.actual != chk.expected {
			errs = multierr.Append(errs, fmt.Errorf("%s mismatch: expected %s, got %s", chk.name, chk.expected, chk.actual))
		}
	}

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
