package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"redistricting/src/redistrict_solve/districting/highs"
	"redistricting/src/redistrict_solve/districting/lpsolve"
)

func TestNewSolver(t *testing.T) {
	for _, name := range []string{highs.Name, lpsolve.Name} {
		s, err := newSolver(name)
		require.NoError(t, err)
		assert.Equal(t, name, s.Name())
	}

	_, err := newSolver("cplex")
	assert.Error(t, err)
}
