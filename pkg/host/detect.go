package host

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"

	"github.com/kubescape/go-logger"
	"github.com/kubescape/go-logger/helpers"
	"github.com/spf13/afero"
)

// osReleasePaths are tried in order, as described in os-release(5).
var osReleasePaths = []string{"/etc/os-release", "/usr/lib/os-release"}

// SysInfo abstracts kernel identity for testability.
type SysInfo interface {
	Machine() (string, error)
}

// Detect builds a Descriptor for the local host from os-release and uname.
func Detect(fs afero.Fs, info SysInfo) (Descriptor, error) {
	fields, err := readOsRelease(fs)
	if err != nil {
		return Descriptor{}, err
	}

	name := NormalizeName(fields["ID"])
	d := Descriptor{
		Name:    name,
		Release: fields["VERSION_ID"],
		Family:  FamilyOf(name, strings.Fields(fields["ID_LIKE"])),
	}

	arch, err := info.Machine()
	if err != nil {
		return Descriptor{}, fmt.Errorf("failed to read machine architecture: %w", err)
	}
	d.Arch = arch

	logger.L().Debug("detected host",
		helpers.String("name", d.Name),
		helpers.String("release", d.Release),
		helpers.String("arch", d.Arch),
		helpers.String("family", d.Family))

	return d, nil
}

func readOsRelease(fs afero.Fs) (map[string]string, error) {
	for _, p := range osReleasePaths {
		data, err := afero.ReadFile(fs, p)
		if err != nil {
			logger.L().Debug("os-release not readable", helpers.String("path", p), helpers.Error(err))
			continue
		}
		return parseOsRelease(data), nil
	}
	return nil, fmt.Errorf("failed to find os-release file in %s", strings.Join(osReleasePaths, ", "))
}

// parseOsRelease parses KEY=VALUE lines, unquoting values.
func parseOsRelease(data []byte) map[string]string {
	fields := make(map[string]string)
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		fields[key] = strings.Trim(value, `"'`)
	}
	return fields
}
