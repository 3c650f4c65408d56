package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bamreyes/Project-Green/internal/client"
)

func newSubmitCmd(flags *rootFlags) *cobra.Command {
	var serverURL string
	var projects []string
	var toggle bool
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit a project selection to a running server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := flags.logger(true)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			c, err := client.New(serverURL, client.WithLogger(logger))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			res := c.SubmitSelection(cmd.Context(), projects)
			fmt.Fprintf(out, "submit: %s\n", res)
			if res.Kind != client.Success {
				return errors.New("submission failed")
			}
			if toggle {
				res = c.ToggleSidebar(cmd.Context())
				if res.Kind != client.Success {
					return fmt.Errorf("toggle sidebar: %s", res)
				}
				fmt.Fprintf(out, "sidebar collapsed: %t\n", res.Collapsed)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&serverURL, "server", "http://127.0.0.1:8080", "server base URL")
	cmd.Flags().StringArrayVarP(&projects, "project", "p", nil, "project name to include (repeatable)")
	cmd.Flags().BoolVar(&toggle, "toggle-sidebar", false, "also flip the session's sidebar flag")
	return cmd
}
