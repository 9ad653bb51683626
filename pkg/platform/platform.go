// Package platform resolves a host descriptor into the init system, packaging
// system and distribution-specific expectations for an installed server package.
package platform

import (
	"fmt"

	"github.com/vertti/installcheck/pkg/host"
	"github.com/vertti/installcheck/pkg/version"
)

// InitSystem is the service manager a host boots with.
type InitSystem int

const (
	Systemd InitSystem = iota
	Upstart
	SysVinit
)

func (i InitSystem) String() string {
	switch i {
	case Upstart:
		return "upstart"
	case SysVinit:
		return "sysvinit"
	default:
		return "systemd"
	}
}

// Packaging is the package format a host installs.
type Packaging int

const (
	Deb Packaging = iota
	RPM
)

func (p Packaging) String() string {
	if p == RPM {
		return "rpm"
	}
	return "deb"
}

// Probe selects how a service's running state is queried.
type Probe int

const (
	ProbeGeneric Probe = iota
	ProbeSystemd
)

func (p Probe) String() string {
	if p == ProbeSystemd {
		return "systemd"
	}
	return "service"
}

// Platform is a Descriptor resolved once into the values every phase branches on.
type Platform struct {
	Host      host.Descriptor
	Init      InitSystem
	Packaging Packaging
	Probe     Probe
}

// Resolve classifies a host. Every descriptor maps to exactly one InitSystem
// and exactly one Packaging.
func Resolve(d host.Descriptor) Platform {
	return Platform{
		Host:      d,
		Init:      initSystemOf(d),
		Packaging: packagingOf(d),
		Probe:     probeOf(d),
	}
}

func (p Platform) String() string {
	return fmt.Sprintf("%s: init=%s packaging=%s probe=%s", p.Host, p.Init, p.Packaging, p.Probe)
}

func initSystemOf(d host.Descriptor) InitSystem {
	switch {
	case d.Name == "amazon", d.Name == "ubuntu" && version.MajorIs(d.Release, 14):
		return Upstart
	case d.Name == "debian" && version.MajorIs(d.Release, 7),
		d.Name == "redhat" && version.MajorIs(d.Release, 6),
		d.Name == "suse" && version.MajorIs(d.Release, 11),
		d.Name == "ubuntu" && version.MajorIs(d.Release, 12):
		return SysVinit
	default:
		return Systemd
	}
}

func packagingOf(d host.Descriptor) Packaging {
	switch d.Name {
	case "amazon", "redhat", "suse":
		return RPM
	}
	switch d.Family {
	case "redhat", "suse":
		return RPM
	}
	return Deb
}

// probeOf picks the systemd unit probe on Amazon Linux 2, whose generic
// service probe is treated as upstart and reports wrong state.
func probeOf(d host.Descriptor) Probe {
	if d.Name == "amazon" && version.MajorIs(d.Release, 2) {
		return ProbeSystemd
	}
	return ProbeGeneric
}
