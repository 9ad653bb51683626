//go:build !unix

package host

import (
	"errors"
	"runtime"
)

// RealSysInfo is unavailable off unix; installed packages are only verified on Linux.
type RealSysInfo struct{}

// Machine always fails outside unix.
func (r *RealSysInfo) Machine() (string, error) {
	return "", errors.New("architecture detection not supported on " + runtime.GOOS)
}
