package main

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/vertti/installcheck/pkg/host"
)

// hostFlags are the descriptor sources a command accepts.
type hostFlags struct {
	file      string
	overrides host.Descriptor
}

func (f *hostFlags) complete() bool {
	o := f.overrides
	return o.Name != "" && o.Release != "" && o.Arch != ""
}

var (
	hostFS  afero.Fs     = afero.NewOsFs()
	sysInfo host.SysInfo = &host.RealSysInfo{}
)

// resolveHost builds the descriptor from a harness file, from the flags alone
// when they name the host completely, or by detecting the local system. Flag
// values override the other sources.
func resolveHost(f *hostFlags) (host.Descriptor, error) {
	var (
		d   host.Descriptor
		err error
	)
	switch {
	case f.file != "":
		d, err = host.LoadFile(hostFS, f.file)
	case f.complete():
	default:
		d, err = host.Detect(hostFS, sysInfo)
	}
	if err != nil {
		return host.Descriptor{}, fmt.Errorf("failed to determine host: %w", err)
	}

	d = d.Override(f.overrides)
	if err := d.Validate(); err != nil {
		return host.Descriptor{}, err
	}
	return d, nil
}

func addHostFlags(cmd *cobra.Command, f *hostFlags) {
	cmd.Flags().StringVar(&f.file, "host-file", "", "JSON host descriptor written by the test harness")
	cmd.Flags().StringVar(&f.overrides.Name, "name", "", "distribution name (e.g. ubuntu, redhat, amazon)")
	cmd.Flags().StringVar(&f.overrides.Release, "release", "", "distribution release (e.g. 20.04, 7.9)")
	cmd.Flags().StringVar(&f.overrides.Arch, "arch", "", "CPU architecture (e.g. x86_64)")
	cmd.Flags().StringVar(&f.overrides.Family, "family", "", "OS family (e.g. debian, redhat, suse)")
}
