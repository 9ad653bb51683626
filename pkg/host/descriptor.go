// Package host describes the operating system a package is verified on.
package host

import (
	"fmt"
	"strings"
)

// Descriptor identifies the target host. It is built once before
// verification and treated as read-only afterwards.
type Descriptor struct {
	Name    string `json:"name" yaml:"name"`       // distribution id, e.g. "ubuntu", "redhat", "amazon"
	Release string `json:"release" yaml:"release"` // version string, e.g. "20.04", "7.9", "2.0"
	Arch    string `json:"arch" yaml:"arch"`       // CPU architecture as reported by uname, e.g. "x86_64"
	Family  string `json:"family" yaml:"family"`   // OS family, e.g. "debian", "redhat", "suse"
}

// String returns a short human-readable form.
func (d Descriptor) String() string {
	return fmt.Sprintf("%s %s (%s, family %s)", d.Name, d.Release, d.Arch, d.Family)
}

// Validate returns an error if a field needed for platform resolution is missing.
func (d Descriptor) Validate() error {
	var missing []string
	if d.Name == "" {
		missing = append(missing, "name")
	}
	if d.Release == "" {
		missing = append(missing, "release")
	}
	if d.Arch == "" {
		missing = append(missing, "arch")
	}
	if len(missing) > 0 {
		return fmt.Errorf("host descriptor missing %s", strings.Join(missing, ", "))
	}
	return nil
}

// Override returns a copy of d with every non-empty field of o applied on top.
func (d Descriptor) Override(o Descriptor) Descriptor {
	if o.Name != "" {
		d.Name = NormalizeName(o.Name)
	}
	if o.Release != "" {
		d.Release = o.Release
	}
	if o.Arch != "" {
		d.Arch = o.Arch
	}
	if o.Family != "" {
		d.Family = o.Family
	}
	if d.Family == "" {
		d.Family = FamilyOf(d.Name, nil)
	}
	return d
}

// nameAliases maps os-release IDs to the distribution names used in expectations.
var nameAliases = map[string]string{
	"rhel":          "redhat",
	"amzn":          "amazon",
	"sles":          "suse",
	"sles_sap":      "suse",
	"opensuse":      "suse",
	"opensuse-leap": "suse",
}

// NormalizeName lower-cases a distribution id and resolves known aliases.
func NormalizeName(id string) string {
	id = strings.ToLower(strings.TrimSpace(id))
	if alias, ok := nameAliases[id]; ok {
		return alias
	}
	return id
}

// familyOfName lists distributions whose family is fixed regardless of ID_LIKE.
var familyOfName = map[string]string{
	"debian":    "debian",
	"ubuntu":    "debian",
	"redhat":    "redhat",
	"centos":    "redhat",
	"rocky":     "redhat",
	"almalinux": "redhat",
	"ol":        "redhat",
	"fedora":    "redhat",
	"amazon":    "redhat",
	"suse":      "suse",
}

// FamilyOf derives the OS family from a normalized name, falling back to the
// first recognized ID_LIKE entry and finally to the name itself.
func FamilyOf(name string, like []string) string {
	if f, ok := familyOfName[name]; ok {
		return f
	}
	for _, l := range like {
		if f, ok := familyOfName[NormalizeName(l)]; ok {
			return f
		}
	}
	return name
}
