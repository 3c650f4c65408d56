package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bamreyes/Project-Green/internal/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			v := version.Current()
			if c := version.Canonical(); c != "" {
				v = c
			}
			fmt.Fprintln(cmd.OutOrStdout(), v)
		},
	}
}
