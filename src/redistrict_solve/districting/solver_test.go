package districting

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolve_Optimal(t *testing.T) {
	m := buildPath4(t)
	values := assignValues(m, []int{0, 0, 1, 1})
	solver := &fakeSolver{result: &Result{Status: StatusOptimal, Objective: 2, Values: values}}

	plan, err := Solve(m, solver)
	require.NoError(t, err)
	require.NotNil(t, solver.got)
	assert.True(t, solver.got.IsLinear())
	assert.Equal(t, [][]int64{{1, 2}, {3, 4}}, plan.Districts)
	assert.Equal(t, 2.0, plan.Objective)
	assert.Equal(t, "fake", plan.Solver)
}

func TestSolve_StatusMapping(t *testing.T) {
	m := buildPath4(t)

	_, err := Solve(m, &fakeSolver{result: &Result{Status: StatusInfeasible}})
	var infeasible *ModelInfeasibleError
	require.True(t, errors.As(err, &infeasible), "got %v", err)
	assert.Equal(t, 2, infeasible.Districts)
	assert.Equal(t, 0.5, infeasible.Tolerance)

	for _, status := range []Status{StatusUnbounded, StatusOther} {
		_, err := Solve(m, &fakeSolver{result: &Result{Status: status, Detail: "time limit"}})
		var nonOptimal *SolverNonOptimalError
		require.True(t, errors.As(err, &nonOptimal), "got %v", err)
		assert.Equal(t, status, nonOptimal.Status)
		assert.Contains(t, err.Error(), "time limit")
	}
}

func TestSolve_SolverError(t *testing.T) {
	_, err := Solve(buildPath4(t), &fakeSolver{err: errors.New("license expired")})
	assert.ErrorContains(t, err, "license expired")
}

func TestExtractPlan_Threshold(t *testing.T) {
	m := buildPath4(t)
	values := make([]float64, m.NumColumns())
	values[m.AssignCol(0, 0)] = 0.999999
	values[m.AssignCol(1, 0)] = 1
	values[m.AssignCol(2, 1)] = 1 - 1e-9
	values[m.AssignCol(3, 1)] = 1
	values[m.AssignCol(3, 0)] = 1e-7

	plan, err := ExtractPlan(m, values)
	require.NoError(t, err)
	assert.Equal(t, [][]int64{{1, 2}, {3, 4}}, plan.Districts)

	j, ok := plan.DistrictOf(3)
	assert.True(t, ok)
	assert.Equal(t, 1, j)
	_, ok = plan.DistrictOf(42)
	assert.False(t, ok)
}

func TestExtractPlan_ShortSolution(t *testing.T) {
	m := buildPath4(t)
	_, err := ExtractPlan(m, make([]float64, 3))
	assert.Error(t, err)
}

func TestPlanString(t *testing.T) {
	m := buildPath4(t)
	plan, err := ExtractPlan(m, assignValues(m, []int{0, 0, 1, 1}))
	require.NoError(t, err)
	plan.Objective = 2
	assert.Equal(t, "District 0: [1 2]\nDistrict 1: [3 4]\nObjective: 2", plan.String())
}
