package highs

import (
	"testing"

	hgs "github.com/lanl/highs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"redistricting/src/redistrict_solve/districting"
	"redistricting/src/redistrict_solve/districting/solvertest"
)

func TestSolver(t *testing.T) {
	suite.Run(t, &solvertest.AdapterSuite{Solver: New()})
}

func TestStatus(t *testing.T) {
	assert.Equal(t, districting.StatusOptimal, status(hgs.Optimal))
	assert.Equal(t, districting.StatusInfeasible, status(hgs.Infeasible))
	assert.Equal(t, districting.StatusUnbounded, status(hgs.Unbounded))
}

func TestDefModel(t *testing.T) {
	m, err := districting.BuildModel(solvertest.Path(3), solvertest.Populations(1, 1, 1), districting.DefaultConfig())
	require.NoError(t, err)
	lin, err := m.Linearize()
	require.NoError(t, err)

	lp := defModel(lin)
	assert.True(t, lp.Maximize)
	assert.Len(t, lp.ColCosts, lin.NumColumns())
	assert.Len(t, lp.RowLower, lin.NumRows())
	assert.Equal(t, hgs.IntegerType, lp.VarTypes[0])
}
