//go:build unix

package host

import (
	"bytes"

	"golang.org/x/sys/unix"
)

// RealSysInfo reads the machine hardware name from uname(2).
type RealSysInfo struct{}

// Machine returns the uname machine field, e.g. "x86_64" or "aarch64".
func (r *RealSysInfo) Machine() (string, error) {
	var uts unix.Utsname
	if err := unix.Uname(&uts); err != nil {
		return "", err
	}
	return string(bytes.TrimRight(uts.Machine[:], "\x00")), nil
}
