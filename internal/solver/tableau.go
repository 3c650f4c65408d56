package solver

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// maxPivots bounds the simplex loop; degenerate problems may cycle under
// the most-negative entering rule.
const maxPivots = 10000

// epsilon absorbs rounding noise left by pivoting; entries within it of
// zero are treated as zero.
const epsilon = 1e-9

var ErrPivotLimit = errors.New("simplex pivot limit reached")

// InfeasibleError reports that the selected projects cannot meet every
// minimum. Iterations holds the tableaux recorded before the solver gave up.
type InfeasibleError struct {
	Message    string
	Iterations []Iteration
}

func (e *InfeasibleError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "the solution is infeasible"
}

// Iteration is one recorded simplex step.
type Iteration struct {
	Number        int         `json:"iteration"`
	Labels        []string    `json:"labels"`
	Tableau       [][]float64 `json:"tableau"`
	BasicLabels   []string    `json:"basic_labels"`
	BasicSolution []float64   `json:"basic_solution"`
}

// TableauRows returns the tableau as display rows, labels first.
func (it Iteration) TableauRows() [][]string {
	rows := make([][]string, 0, len(it.Tableau)+1)
	rows = append(rows, append([]string(nil), it.Labels...))
	for _, r := range it.Tableau {
		rows = append(rows, formatRow(r))
	}
	return rows
}

// BasicSolutionRows returns the basic solution as display rows, labels first.
func (it Iteration) BasicSolutionRows() [][]string {
	return [][]string{
		append([]string(nil), it.BasicLabels...),
		formatRow(it.BasicSolution),
	}
}

// Objective is the value in the solution column of the objective row.
func (it Iteration) Objective() float64 {
	if len(it.BasicSolution) == 0 {
		return 0
	}
	return it.BasicSolution[len(it.BasicSolution)-1]
}

func formatRow(values []float64) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = FormatCell(v)
	}
	return out
}

// FormatCell renders a rounded tableau value without trailing zeros.
func FormatCell(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	r := math.Round(v*p) / p
	if r == 0 {
		return 0
	}
	return r
}

func variableLabels(slackCount, projectCount int) []string {
	out := make([]string, 0, slackCount+projectCount+2)
	for i := 0; i < slackCount; i++ {
		out = append(out, "S"+strconv.Itoa(i+1))
	}
	for i := 0; i < projectCount; i++ {
		out = append(out, "X"+strconv.Itoa(i+1))
	}
	return append(out, "Z", "Solution")
}

type tableau struct {
	cells [][]float64
	rows  int
	cols  int
}

func newTableau(cells [][]float64) (*tableau, error) {
	if len(cells) == 0 || len(cells[0]) < 2 {
		return nil, fmt.Errorf("tableau must have at least one row and two columns")
	}
	cols := len(cells[0])
	for i, r := range cells {
		if len(r) != cols {
			return nil, fmt.Errorf("tableau row %d has %d columns, want %d", i, len(r), cols)
		}
	}
	return &tableau{cells: cells, rows: len(cells), cols: cols}, nil
}

func (t *tableau) objective() []float64 {
	return t.cells[t.rows-1]
}

func (t *tableau) record(number int, labels []string, round int) Iteration {
	it := Iteration{Number: number, Labels: labels}
	it.Tableau = make([][]float64, t.rows)
	for i, r := range t.cells {
		it.Tableau[i] = make([]float64, t.cols)
		for j, v := range r {
			it.Tableau[i][j] = roundTo(v, round)
		}
	}
	obj := t.objective()
	it.BasicLabels = make([]string, 0, t.cols-1)
	it.BasicLabels = append(it.BasicLabels, labels[:t.cols-2]...)
	it.BasicLabels = append(it.BasicLabels, labels[t.cols-1])
	it.BasicSolution = make([]float64, 0, t.cols-1)
	for _, v := range obj[:t.cols-2] {
		it.BasicSolution = append(it.BasicSolution, roundTo(v, round))
	}
	it.BasicSolution = append(it.BasicSolution, roundTo(obj[t.cols-1], round))
	return it
}

// pivotColumn picks the first most negative objective entry, ignoring the
// solution column. ok is false when the tableau is optimal.
func (t *tableau) pivotColumn() (int, bool) {
	obj := t.objective()
	best := -1
	for j := 0; j < t.cols-1; j++ {
		if obj[j] >= -epsilon {
			continue
		}
		if best < 0 || obj[j] < obj[best] {
			best = j
		}
	}
	return best, best >= 0
}

// pivotRow runs the ratio test over positive entries of column col.
func (t *tableau) pivotRow(col int) (int, bool) {
	best := -1
	bestRatio := 0.0
	for i := 0; i < t.rows-1; i++ {
		a := t.cells[i][col]
		if a <= epsilon {
			continue
		}
		ratio := t.cells[i][t.cols-1] / a
		if best < 0 || ratio < bestRatio {
			best = i
			bestRatio = ratio
		}
	}
	return best, best >= 0
}

func (t *tableau) pivot(row, col int) {
	p := t.cells[row][col]
	for j := range t.cells[row] {
		t.cells[row][j] /= p
	}
	for i := 0; i < t.rows; i++ {
		if i == row {
			continue
		}
		m := t.cells[i][col]
		if m == 0 {
			continue
		}
		for j := range t.cells[i] {
			t.cells[i][j] -= t.cells[row][j] * m
		}
	}
}

// simplex maximizes the tableau in place and records every iteration,
// starting with the initial tableau as iteration 0. The last row is the
// objective, the last column the solution, the column before it Z.
func simplex(cells [][]float64, projectCount, round int) ([]float64, []Iteration, error) {
	t, err := newTableau(cells)
	if err != nil {
		return nil, nil, err
	}
	slackCount := t.cols - projectCount - 2
	if slackCount < 0 {
		return nil, nil, fmt.Errorf("tableau has %d columns, too few for %d projects", t.cols, projectCount)
	}
	labels := variableLabels(slackCount, projectCount)

	iterations := []Iteration{t.record(0, labels, round)}
	for n := 1; ; n++ {
		col, ok := t.pivotColumn()
		if !ok {
			break
		}
		if n > maxPivots {
			return nil, iterations, ErrPivotLimit
		}
		row, ok := t.pivotRow(col)
		if !ok {
			return nil, nil, &InfeasibleError{Iterations: iterations}
		}
		t.pivot(row, col)
		iterations = append(iterations, t.record(n, labels, round))
	}

	obj := t.objective()
	solution := append([]float64(nil), obj[t.cols-projectCount-2:t.cols-2]...)
	return solution, iterations, nil
}
