// Package solver finds the cheapest mix of pollution reduction projects that
// meets a minimum reduction for every pollutant. The problem is solved through
// its dual with a tableau simplex, recording every tableau on the way so the
// steps can be displayed.
package solver

import (
	"fmt"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/bamreyes/Project-Green/internal/catalog"
)

// DefaultMinimums are the required reductions per pollutant.
var DefaultMinimums = map[catalog.Pollutant]float64{
	catalog.CO2:  1000,
	catalog.NO:   35,
	catalog.SO2:  25,
	catalog.PM25: 20,
	catalog.CH4:  60,
	catalog.VOC:  45,
	catalog.CO:   80,
	catalog.NH3:  12,
	catalog.BC:   6,
	catalog.N2O:  10,
}

type Options struct {
	// ProjectMax caps the units of any single project.
	ProjectMax float64
	// Round is the number of decimals kept in recorded tableaux.
	Round int
	// Minimums overrides entries of DefaultMinimums.
	Minimums map[catalog.Pollutant]float64
}

func DefaultOptions() Options {
	return Options{ProjectMax: 20, Round: 2}
}

func (o Options) minimum(p catalog.Pollutant) float64 {
	if v, ok := o.Minimums[p]; ok {
		return v
	}
	return DefaultMinimums[p]
}

// Targets returns the minimum per pollutant in catalog.Pollutants order.
func (o Options) Targets() []float64 {
	out := make([]float64, len(catalog.Pollutants))
	for i, p := range catalog.Pollutants {
		out[i] = o.minimum(p)
	}
	return out
}

type ProjectResult struct {
	Project catalog.Project `json:"project"`
	Units   float64         `json:"units"`
	Cost    string          `json:"cost"`
}

type PollutantTotal struct {
	Pollutant catalog.Pollutant `json:"pollutant"`
	Total     string            `json:"total"`
	Target    float64           `json:"target"`
}

type Result struct {
	Projects      []ProjectResult  `json:"projects"`
	Pollutants    []PollutantTotal `json:"pollutants"`
	OptimizedCost string           `json:"optimized_cost"`
	Iterations    []Iteration      `json:"iterations"`
}

// Iteration returns the recorded iteration with the given number.
func (r Result) Iteration(n int) (Iteration, bool) {
	for _, it := range r.Iterations {
		if it.Number == n {
			return it, true
		}
	}
	return Iteration{}, false
}

// Solve selects the named projects from c and minimizes total cost.
// An empty selection, or one that cannot reach every minimum, returns an
// *InfeasibleError.
func Solve(c *catalog.Catalog, selected []string, opts Options) (Result, error) {
	if opts.ProjectMax <= 0 {
		opts.ProjectMax = DefaultOptions().ProjectMax
	}
	projects := c.Filter(selected)
	if len(projects) == 0 {
		return Result{}, &InfeasibleError{Message: "no projects selected"}
	}

	cells := dualTableau(primalMatrix(projects, opts))
	units, iterations, err := simplex(cells, len(projects), opts.Round)
	if err != nil {
		return Result{}, err
	}

	res := Result{Iterations: iterations}
	for i, p := range projects {
		res.Projects = append(res.Projects, ProjectResult{
			Project: p,
			Units:   roundTo(units[i], opts.Round),
			Cost:    formatAmount(p.Cost*units[i], opts.Round),
		})
	}
	for _, pol := range catalog.Pollutants {
		total := 0.0
		for i, p := range projects {
			if units[i] != 0 {
				total += p.Emission(pol) * units[i]
			}
		}
		res.Pollutants = append(res.Pollutants, PollutantTotal{
			Pollutant: pol,
			Total:     formatAmount(total, opts.Round),
			Target:    opts.minimum(pol),
		})
	}
	res.OptimizedCost = formatAmount(iterations[len(iterations)-1].Objective(), opts.Round)
	return res, nil
}

// primalMatrix lays out the minimization problem as rows of
// [coefficients..., rhs]: one row per pollutant, one upper-bound row per
// project (written as -x >= -max) and the cost row last.
func primalMatrix(projects []catalog.Project, opts Options) [][]float64 {
	n := len(projects)
	rows := make([][]float64, 0, len(catalog.Pollutants)+n+1)
	for _, pol := range catalog.Pollutants {
		r := make([]float64, n+1)
		for j, p := range projects {
			r[j] = p.Emission(pol)
		}
		r[n] = opts.minimum(pol)
		rows = append(rows, r)
	}
	for i := 0; i < n; i++ {
		r := make([]float64, n+1)
		r[i] = -1
		r[n] = -opts.ProjectMax
		rows = append(rows, r)
	}
	cost := make([]float64, n+1)
	for j, p := range projects {
		cost[j] = p.Cost
	}
	return append(rows, cost)
}

// dualTableau transposes the primal, negates the objective row and inserts
// an identity block for the slack variables and Z before the solution
// column.
func dualTableau(primal [][]float64) [][]float64 {
	m := len(primal)
	n := len(primal[0])
	out := make([][]float64, n)
	for i := 0; i < n; i++ {
		r := make([]float64, 0, (m-1)+n+1)
		for j := 0; j < m-1; j++ {
			r = append(r, primal[j][i])
		}
		for k := 0; k < n; k++ {
			if k == i {
				r = append(r, 1)
			} else {
				r = append(r, 0)
			}
		}
		r = append(r, primal[m-1][i])
		out[i] = r
	}
	last := out[n-1]
	for j := 0; j < m-1; j++ {
		last[j] = -last[j]
	}
	last[len(last)-1] = -last[len(last)-1]
	return out
}

var printer = message.NewPrinter(language.English)

// formatAmount renders v with thousands separators and fixed decimals.
func formatAmount(v float64, places int) string {
	v = roundTo(v, places)
	return printer.Sprintf("%."+strconv.Itoa(places)+"f", v)
}

func (r Result) String() string {
	return fmt.Sprintf("%d projects, %d iterations, cost %s", len(r.Projects), len(r.Iterations), r.OptimizedCost)
}
