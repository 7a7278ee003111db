package districting

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeInstance(t *testing.T, graph string) (string, string, string) {
	t.Helper()
	dir := t.TempDir()
	return writeFile(t, dir, "MS.dimacs", graph),
		writeFile(t, dir, "zip.csv", "County Number,Zip Code\n1,38601\n2,38602\n3,38603\n4,38604\n"),
		writeFile(t, dir, "pop.csv", "County Number,Population\n1,100\n2,100\n3,100\n4,100\n")
}

func TestLoadInstance(t *testing.T) {
	graphPath, zipPath, popPath := writeInstance(t, "p edge 4 3\ne 1 2\ne 2 3\ne 3 4\n")
	inst, err := LoadInstance(graphPath, zipPath, popPath, testConfig(2, 0.5))
	require.NoError(t, err)

	assert.Equal(t, 4, inst.Graph.NumCounties())
	assert.EqualValues(t, 400, inst.Attributes.TotalPopulation())
	assert.Contains(t, inst.String(), "Total population: 400")

	m, err := inst.BuildModel()
	require.NoError(t, err)
	assert.Equal(t, 16, m.NumRows())

	solver := &fakeSolver{result: &Result{Status: StatusOptimal, Objective: 2, Values: assignValues(m, []int{1, 1, 0, 0})}}
	plan, err := inst.Solve(solver)
	require.NoError(t, err)
	assert.Equal(t, [][]int64{{3, 4}, {1, 2}}, plan.Districts)

	summary, err := inst.Summary(plan)
	require.NoError(t, err)
	assert.Equal(t, "District 0: [3 4]\nDistrict 1: [1 2]\n"+
		"Population of district 0: 200\nPopulation of district 1: 200\nObjective: 2", summary)
}

func TestLoadInstance_Errors(t *testing.T) {
	graphPath, zipPath, popPath := writeInstance(t, "e 1 2\ne 2\n")
	_, err := LoadInstance(graphPath, zipPath, popPath, testConfig(2, 0.5))
	var malformed *MalformedInputError
	assert.True(t, errors.As(err, &malformed))

	graphPath, zipPath, popPath = writeInstance(t, "e 1 2\n")
	_, err = LoadInstance(graphPath, zipPath, popPath, testConfig(0, 0.5))
	assert.Error(t, err)

	_, err = LoadInstance(graphPath, zipPath, popPath+".missing", testConfig(2, 0.5))
	assert.Error(t, err)
}
