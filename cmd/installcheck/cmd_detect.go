package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vertti/installcheck/pkg/platform"
)

var detectHost hostFlags

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Print the host descriptor and the platform it resolves to",
	Args:  cobra.NoArgs,
	RunE:  runDetect,
}

func init() {
	addHostFlags(detectCmd, &detectHost)
	rootCmd.AddCommand(detectCmd)
}

func runDetect(cmd *cobra.Command, args []string) error {
	d, err := resolveHost(&detectHost)
	if err != nil {
		return err
	}
	p := platform.Resolve(d)
	exp := p.CompassExpectation()

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "host:      %s\n", d)
	_, _ = fmt.Fprintf(out, "init:      %s\n", p.Init)
	_, _ = fmt.Fprintf(out, "packaging: %s\n", p.Packaging)
	_, _ = fmt.Fprintf(out, "probe:     %s\n", p.Probe)
	_, _ = fmt.Fprintf(out, "account:   %s\n", p.Account().Name)
	_, _ = fmt.Fprintf(out, "compass:   supported=%t\n", exp.Supported())
	return nil
}
