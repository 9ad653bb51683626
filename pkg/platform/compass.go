package platform

import "github.com/vertti/installcheck/pkg/version"

// Messages printed by install_compass on stderr.
const (
	CompassArchMessage         = `Sorry, MongoDB Compass is only supported on 64-bit Intel platforms`
	CompassPlatformMessage     = `You are using an unsupported platform`
	CompassDistributionMessage = `You are using an unsupported Linux distribution`
)

// ToolExpectation is the expected outcome of running a bundled helper.
type ToolExpectation struct {
	ExitCode      int
	EmptyStderr   bool   // stderr must be exactly ""
	StderrPattern string // regex stderr must match (empty = not checked)
}

// Supported reports whether the expectation describes a successful run.
func (e ToolExpectation) Supported() bool {
	return e.ExitCode == 0
}

// CompassExpectation returns how install_compass must behave on this host.
func (p Platform) CompassExpectation() ToolExpectation {
	d := p.Host
	if d.Arch != "x86_64" {
		return ToolExpectation{ExitCode: 1, StderrPattern: CompassArchMessage}
	}
	if compassSupported(p) {
		return ToolExpectation{ExitCode: 0, EmptyStderr: true}
	}
	if d.Name == "suse" {
		return ToolExpectation{ExitCode: 1, StderrPattern: CompassPlatformMessage}
	}
	return ToolExpectation{ExitCode: 1, StderrPattern: CompassDistributionMessage}
}

// compassSupported excludes Amazon Linux 1 from the redhat family match:
// its release strings would otherwise pass the major >= 7 test.
func compassSupported(p Platform) bool {
	d := p.Host
	switch {
	case d.Family == "redhat" && d.Name != "amazon" && version.AtLeast(d.Release, 7):
		return true
	case d.Name == "ubuntu" && version.AtLeast(d.Release, 16):
		return true
	case d.Name == "debian" && version.AtLeast(d.Release, 9):
		return true
	case d.Name == "amazon" && version.MajorIs(d.Release, 2):
		return true
	}
	return false
}
