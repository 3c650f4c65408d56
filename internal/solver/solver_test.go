package solver

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bamreyes/Project-Green/internal/catalog"
)

func co2OnlyOptions(target float64) Options {
	opts := DefaultOptions()
	opts.Minimums = map[catalog.Pollutant]float64{}
	for _, p := range catalog.Pollutants {
		opts.Minimums[p] = 0
	}
	opts.Minimums[catalog.CO2] = target
	return opts
}

func twoProjectCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New([]catalog.Project{
		{Name: "Cheap", Emissions: map[catalog.Pollutant]float64{catalog.CO2: 10}, Cost: 5},
		{Name: "Pricey", Emissions: map[catalog.Pollutant]float64{catalog.CO2: 20}, Cost: 30},
	})
	require.NoError(t, err)
	return c
}

func TestSolveFillsCheapestProjectFirst(t *testing.T) {
	c := twoProjectCatalog(t)

	res, err := Solve(c, []string{"Pricey", "Cheap"}, co2OnlyOptions(300))
	require.NoError(t, err)

	require.Len(t, res.Projects, 2)
	assert.Equal(t, "Cheap", res.Projects[0].Project.Name)
	assert.Equal(t, 20.0, res.Projects[0].Units)
	assert.Equal(t, "100.00", res.Projects[0].Cost)
	assert.Equal(t, 5.0, res.Projects[1].Units)
	assert.Equal(t, "150.00", res.Projects[1].Cost)
	assert.Equal(t, "250.00", res.OptimizedCost)

	require.Len(t, res.Pollutants, len(catalog.Pollutants))
	assert.Equal(t, catalog.CO2, res.Pollutants[0].Pollutant)
	assert.Equal(t, "300.00", res.Pollutants[0].Total)
	assert.Equal(t, 300.0, res.Pollutants[0].Target)
	assert.Equal(t, "0.00", res.Pollutants[1].Total)

	require.Len(t, res.Iterations, 3)
	for i, it := range res.Iterations {
		assert.Equal(t, i, it.Number)
	}
}

func TestSolveRecordsLabelledTableaux(t *testing.T) {
	c := twoProjectCatalog(t)
	res, err := Solve(c, []string{"Cheap", "Pricey"}, co2OnlyOptions(300))
	require.NoError(t, err)

	first := res.Iterations[0]
	wantLabels := []string{"S1", "S2", "S3", "S4", "S5", "S6", "S7", "S8", "S9", "S10", "S11", "S12", "X1", "X2", "Z", "Solution"}
	if diff := cmp.Diff(wantLabels, first.Labels); diff != "" {
		t.Fatalf("labels mismatch (-want +got):\n%s", diff)
	}
	require.Len(t, first.Tableau, 3)
	assert.Equal(t, -300.0, first.Tableau[2][0])
	assert.Equal(t, 20.0, first.Tableau[2][10])
	assert.Equal(t, 1.0, first.Tableau[2][14])

	wantBasic := append(append([]string(nil), wantLabels[:14]...), "Solution")
	if diff := cmp.Diff(wantBasic, first.BasicLabels); diff != "" {
		t.Fatalf("basic labels mismatch (-want +got):\n%s", diff)
	}

	last := res.Iterations[len(res.Iterations)-1]
	assert.Equal(t, 20.0, last.BasicSolution[12])
	assert.Equal(t, 5.0, last.BasicSolution[13])
	assert.Equal(t, 250.0, last.Objective())

	rows := last.TableauRows()
	require.Len(t, rows, 4)
	assert.Equal(t, "Solution", rows[0][15])
	assert.Equal(t, "1.5", rows[1][15])
	assert.Equal(t, "250", rows[3][15])

	basic := last.BasicSolutionRows()
	require.Len(t, basic, 2)
	assert.Equal(t, "20", basic[1][12])

	got, ok := res.Iteration(1)
	require.True(t, ok)
	assert.Equal(t, 1, got.Number)
	_, ok = res.Iteration(9)
	assert.False(t, ok)
}

func TestSolveReportsInfeasibleSelection(t *testing.T) {
	c := twoProjectCatalog(t)

	_, err := Solve(c, []string{"Cheap"}, DefaultOptions())
	var infeasible *InfeasibleError
	require.True(t, errors.As(err, &infeasible), "expected infeasible error, got %v", err)
	assert.NotEmpty(t, infeasible.Iterations)
	assert.Equal(t, 0, infeasible.Iterations[0].Number)
	assert.Equal(t, "the solution is infeasible", infeasible.Error())
}

func TestSolveEmptySelectionIsInfeasible(t *testing.T) {
	c := twoProjectCatalog(t)

	_, err := Solve(c, []string{"unknown"}, DefaultOptions())
	var infeasible *InfeasibleError
	require.True(t, errors.As(err, &infeasible))
	assert.Empty(t, infeasible.Iterations)
}

func TestSolveBundledCatalogIsFeasible(t *testing.T) {
	c, err := catalog.New([]catalog.Project{
		{Name: "Everything", Emissions: map[catalog.Pollutant]float64{
			catalog.CO2: 100, catalog.NO: 4, catalog.SO2: 2, catalog.PM25: 1, catalog.CH4: 3,
			catalog.VOC: 3, catalog.CO: 4, catalog.NH3: 1, catalog.BC: 0.5, catalog.N2O: 1,
		}, Cost: 10},
	})
	require.NoError(t, err)

	res, err := Solve(c, []string{"Everything"}, DefaultOptions())
	require.NoError(t, err)
	// CH4 needs 60/3 = 20 units, the binding constraint.
	assert.Equal(t, 20.0, res.Projects[0].Units)
	assert.Equal(t, "200.00", res.OptimizedCost)
}

func TestTargetsFollowPollutantOrder(t *testing.T) {
	opts := DefaultOptions()
	opts.Minimums = map[catalog.Pollutant]float64{catalog.NO: 1}
	targets := opts.Targets()
	require.Len(t, targets, len(catalog.Pollutants))
	assert.Equal(t, 1000.0, targets[0])
	assert.Equal(t, 1.0, targets[1])
}

func TestFormatAmountGroupsThousands(t *testing.T) {
	assert.Equal(t, "1,234,567.89", formatAmount(1234567.891, 2))
	assert.Equal(t, "0.00", formatAmount(-0.001, 2))
	assert.Equal(t, "12", formatAmount(12.4, 0))
}

func TestFormatCell(t *testing.T) {
	assert.Equal(t, "0", FormatCell(0))
	assert.Equal(t, "-0.05", FormatCell(-0.05))
	assert.Equal(t, "1000", FormatCell(1000))
}
