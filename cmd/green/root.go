package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bamreyes/Project-Green/internal/config"
	"github.com/bamreyes/Project-Green/internal/logging"
)

type rootFlags struct {
	configPath string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	cmd := &cobra.Command{
		Use:   "green",
		Short: "Find the cheapest mix of pollution reduction projects",
		Long: `green solves the minimum-cost pollution reduction problem with a tableau
simplex and shows every iteration, in the browser or in the terminal.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "YAML config file (defaults apply when empty)")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "debug logging")

	cmd.AddCommand(
		newServeCmd(flags),
		newSolveCmd(flags),
		newSubmitCmd(flags),
		newViewCmd(flags),
		newVersionCmd(),
	)
	return cmd
}

func (f *rootFlags) load() (config.File, error) {
	return config.Load(f.configPath)
}

func (f *rootFlags) logger(console bool) (*zap.Logger, error) {
	return logging.New(logging.Options{Verbose: f.verbose, Console: console})
}
