package platform

import (
	"fmt"
	"path"

	"github.com/vertti/installcheck/pkg/version"
)

// Account is the service account a package is expected to create.
type Account struct {
	Name  string
	Group string
	Home  string // empty = not checked
	Shell string
}

const (
	shellFalse   = "/bin/false"
	shellNologin = "/usr/sbin/nologin"
)

// Account returns the expected service account for the host's packaging.
func (p Platform) Account() Account {
	if p.Packaging == RPM {
		return Account{Name: "mongod", Group: "mongod", Home: "/var/lib/mongo", Shell: shellFalse}
	}
	return Account{Name: "mongodb", Group: "mongodb", Shell: p.debShell()}
}

// debShell returns /usr/sbin/nologin on Debian 10+ and Ubuntu 18.04, 20.04 and 22.04.
func (p Platform) debShell() string {
	d := p.Host
	switch {
	case d.Name == "debian" && version.AtLeast(d.Release, 10):
		return shellNologin
	case d.Name == "ubuntu" && (d.Release == "18.04" || d.Release == "20.04" || d.Release == "22.04"):
		return shellNologin
	}
	return shellFalse
}

// DataDirs returns the directories the package must create.
func (p Platform) DataDirs() []string {
	if p.Packaging == RPM {
		return []string{"/var/lib/mongo", "/var/run/mongodb"}
	}
	return []string{"/var/lib/mongodb"}
}

// InitScript returns the sysvinit script path for a service.
func InitScript(service string) string {
	return path.Join("/etc/init.d", service)
}

// UnitFile returns the systemd unit path for a service. SUSE installs units under /usr.
func (p Platform) UnitFile(service string) string {
	prefix := ""
	if p.Host.Name == "suse" {
		prefix = "/usr"
	}
	return prefix + DefaultUnitFile(service)
}

// DefaultUnitFile returns the non-SUSE systemd unit path for a service.
func DefaultUnitFile(service string) string {
	return fmt.Sprintf("/lib/systemd/system/%s.service", service)
}

// ServiceCommand returns the service control binary. It is not in sudo's PATH on SUSE.
func (p Platform) ServiceCommand() string {
	if p.Host.Name == "suse" {
		return "/sbin/service"
	}
	return "service"
}

// RemoveCommand returns a shell pipeline that removes every installed package
// whose name matches pattern.
func (p Platform) RemoveCommand(pattern string) string {
	if p.Packaging == RPM {
		return fmt.Sprintf(`rpm -e $(rpm -qa | grep "%s" | awk '{print $1}')`, pattern)
	}
	return fmt.Sprintf(`dpkg -r $(dpkg -l | grep "%s" | awk '{print $2}')`, pattern)
}
