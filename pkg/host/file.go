package host

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/tidwall/gjson"
)

// LoadFile reads a Descriptor from a JSON file written by the test harness.
//
// Both a flat object ({"name", "release", "arch", "family"}) and the output of
// `inspec detect --format json` (family taken from "families") are accepted,
// optionally nested under an "os" or "platform" key.
func LoadFile(fs afero.Fs, path string) (Descriptor, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return Descriptor{}, fmt.Errorf("failed to read host file %q: %w", path, err)
	}
	if !gjson.ValidBytes(data) {
		return Descriptor{}, fmt.Errorf("host file %q is not valid JSON", path)
	}

	root := gjson.ParseBytes(data)
	for _, key := range []string{"os", "platform"} {
		if nested := root.Get(key); nested.IsObject() {
			root = nested
			break
		}
	}

	d := Descriptor{
		Name:    NormalizeName(root.Get("name").String()),
		Release: root.Get("release").String(),
		Arch:    root.Get("arch").String(),
		Family:  root.Get("family").String(),
	}
	if d.Family == "" {
		d.Family = root.Get("families.0").String()
	}
	if d.Family == "" {
		d.Family = FamilyOf(d.Name, nil)
	}

	if err := d.Validate(); err != nil {
		return Descriptor{}, fmt.Errorf("host file %q: %w", path, err)
	}
	return d, nil
}
