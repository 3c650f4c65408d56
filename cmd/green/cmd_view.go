package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/bamreyes/Project-Green/internal/solver"
	"github.com/bamreyes/Project-Green/internal/tui"
)

func newViewCmd(flags *rootFlags) *cobra.Command {
	sel := &selectionFlags{}
	var prefsPath, exportDir string
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Solve a selection and browse the iterations in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := flags.load()
			if err != nil {
				return err
			}
			res, err := solveLocal(cfg, sel)
			opts := tui.Options{Result: res, PrefsPath: prefsPath, ExportDir: exportDir}
			var infeasible *solver.InfeasibleError
			switch {
			case errors.As(err, &infeasible):
				opts.Message = infeasible.Error()
			case err != nil:
				return err
			}
			return tui.Run(cmd.Context(), opts)
		},
	}
	sel.register(cmd)
	cmd.Flags().StringVar(&prefsPath, "prefs", "", "preferences file (default ~/.config/green/prefs.toml)")
	cmd.Flags().StringVar(&exportDir, "export-dir", ".", "directory for exported CSV files")
	return cmd
}
