// Package version parses distribution release strings for numeric comparison.
package version

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// releaseRegex matches the leading numeric part of a release like 20.04, 7.9.2009 or 15-SP4.
var releaseRegex = regexp.MustCompile(`^v?(\d+)(?:\.(\d+))?(?:\.(\d+))?`)

// Parse parses a release string into a semantic version.
// Trailing qualifiers ("LTS", "-SP4", a fourth component) are ignored.
func Parse(s string) (*semver.Version, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty release string")
	}

	m := releaseRegex.FindStringSubmatch(s)
	if m == nil {
		return nil, fmt.Errorf("invalid release format: %q", s)
	}

	var nums [3]uint64
	for i, p := range m[1:] {
		if p == "" {
			continue
		}
		n, err := strconv.ParseUint(p, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid release format: %q: %w", s, err)
		}
		nums[i] = n
	}

	return semver.New(nums[0], nums[1], nums[2], "", ""), nil
}

// Major returns the numeric major component of a release string.
func Major(s string) (int, error) {
	v, err := Parse(s)
	if err != nil {
		return 0, err
	}
	return int(v.Major()), nil
}

// AtLeast reports whether the release's major component is >= major.
// Unparseable releases never satisfy the constraint.
func AtLeast(release string, major int) bool {
	m, err := Major(release)
	return err == nil && m >= major
}

// MajorIs reports whether the release's major component equals major.
func MajorIs(release string, major int) bool {
	m, err := Major(release)
	return err == nil && m == major
}
