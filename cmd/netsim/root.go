package main

import (
	"io"

	"github.com/spf13/cobra"
)

func newRootCmd(out io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "netsim",
		Short: "netsim simulates message exchange between network nodes.",
		Long: `netsim simulates message exchange between network nodes ` +
			`in logical time, either with independently delayed messages ` +
			`or with ordered per-link channels.`,
		SilenceUsage: true,
	}

	rootCmd.SetOut(out)
	rootCmd.AddCommand(newRunCmd(out))

	return rootCmd
}
