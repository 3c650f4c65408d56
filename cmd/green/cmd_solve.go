package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bamreyes/Project-Green/internal/catalog"
	"github.com/bamreyes/Project-Green/internal/config"
	"github.com/bamreyes/Project-Green/internal/export"
	"github.com/bamreyes/Project-Green/internal/server"
	"github.com/bamreyes/Project-Green/internal/solver"
)

type selectionFlags struct {
	projects []string
	all      bool
}

func (s *selectionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVarP(&s.projects, "project", "p", nil, "project name to include (repeatable)")
	cmd.Flags().BoolVar(&s.all, "all", false, "include every catalog project")
}

func (s *selectionFlags) names(cat *catalog.Catalog) ([]string, error) {
	if s.all {
		return cat.Names(), nil
	}
	for _, name := range s.projects {
		if _, ok := cat.Lookup(name); !ok {
			return nil, fmt.Errorf("unknown project %q", name)
		}
	}
	return s.projects, nil
}

// solveLocal runs the solver over the configured catalog. An infeasible
// selection returns the partial iterations with the error.
func solveLocal(cfg config.File, sel *selectionFlags) (solver.Result, error) {
	cat, err := server.LoadCatalog(cfg)
	if err != nil {
		return solver.Result{}, err
	}
	names, err := sel.names(cat)
	if err != nil {
		return solver.Result{}, err
	}
	res, err := solver.Solve(cat, names, server.SolverOptions(cfg))
	var infeasible *solver.InfeasibleError
	if errors.As(err, &infeasible) {
		return solver.Result{Iterations: infeasible.Iterations}, err
	}
	return res, err
}

func newSolveCmd(flags *rootFlags) *cobra.Command {
	sel := &selectionFlags{}
	var csvDir string
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Solve a project selection and print the optimal mix",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := flags.load()
			if err != nil {
				return err
			}
			res, solveErr := solveLocal(cfg, sel)
			out := cmd.OutOrStdout()
			if solveErr == nil {
				printResult(out, res)
			}
			if csvDir != "" && len(res.Iterations) > 0 {
				if err := writeIterations(out, csvDir, res.Iterations); err != nil {
					return err
				}
			}
			return solveErr
		},
	}
	sel.register(cmd)
	cmd.Flags().StringVar(&csvDir, "csv", "", "directory to write one CSV per iteration")
	return cmd
}

func printResult(out io.Writer, res solver.Result) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Project\tUnits\tCost\t")
	for _, p := range res.Projects {
		fmt.Fprintf(tw, "%s\t%s\t%s\t\n", p.Project.Name, solver.FormatCell(p.Units), p.Cost)
	}
	fmt.Fprintln(tw, "\t\t\t")
	fmt.Fprintln(tw, "Pollutant\tTotal\tTarget\t")
	for _, p := range res.Pollutants {
		fmt.Fprintf(tw, "%s\t%s\t%s\t\n", p.Pollutant, p.Total, solver.FormatCell(p.Target))
	}
	_ = tw.Flush()
	fmt.Fprintf(out, "\nOptimized cost: %s (%d iterations)\n", res.OptimizedCost, len(res.Iterations))
}

func writeIterations(out io.Writer, dir string, iterations []solver.Iteration) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create csv dir: %w", err)
	}
	for _, it := range iterations {
		sec := export.FromIteration(it)
		data, err := export.Bytes(sec)
		if err != nil {
			return err
		}
		path := filepath.Join(dir, sec.FileName())
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		fmt.Fprintf(out, "wrote %s\n", path)
	}
	return nil
}
