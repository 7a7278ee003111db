// Package solvertest runs the same small redistricting instances through any
// districting.Solver.
package solvertest

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/suite"

	"redistricting/src/redistrict_solve/districting"
)

// AdapterSuite checks a MILP adapter end to end. Set Solver before running.
type AdapterSuite struct {
	suite.Suite
	Solver districting.Solver
}

// Path returns the graph 1-2-...-n.
func Path(n int64) *districting.AdjacencyGraph {
	ag := districting.NewAdjacencyGraph()
	for i := int64(1); i < n; i++ {
		ag.AddAdjacency(i, i+1)
	}
	return ag
}

// Populations gives each county its population, in county order from 1.
func Populations(pops ...int64) *districting.Attributes {
	attrs := &districting.Attributes{ZipCodes: map[int64]string{}, Populations: map[int64]int64{}}
	for i, p := range pops {
		county := int64(i + 1)
		attrs.ZipCodes[county] = fmt.Sprintf("386%02d", county)
		attrs.Populations[county] = p
	}
	return attrs
}

func config(districts int, tolerance float64) districting.Config {
	cfg := districting.DefaultConfig()
	cfg.Districts = districts
	cfg.Tolerance = tolerance
	return cfg
}

func (s *AdapterSuite) solve(ag *districting.AdjacencyGraph, attrs *districting.Attributes, cfg districting.Config) (*districting.Plan, error) {
	m, err := districting.BuildModel(ag, attrs, cfg)
	s.Require().NoError(err)
	return districting.Solve(m, s.Solver)
}

func (s *AdapterSuite) TestPathOfFour() {
	ag, attrs, cfg := Path(4), Populations(100, 100, 100, 100), config(2, 0.5)

	plan, err := s.solve(ag, attrs, cfg)
	s.Require().NoError(err)
	s.InDelta(2.0, plan.Objective, 1e-6)
	s.ElementsMatch([][]int64{{1, 2}, {3, 4}}, plan.Districts)
	s.Equal(s.Solver.Name(), plan.Solver)

	r, err := districting.Verify(plan, ag, attrs, cfg)
	s.Require().NoError(err)
	s.True(r.Feasible())
	s.Equal(200.0, r.Districts[0].Population)
	s.Equal(200.0, r.Districts[1].Population)
}

func (s *AdapterSuite) TestSingleDistrict() {
	plan, err := s.solve(Path(3), Populations(100, 100, 100), config(1, 0))
	s.Require().NoError(err)
	s.Equal([][]int64{{1, 2, 3}}, plan.Districts)
	s.InDelta(2.0, plan.Objective, 1e-6)
}

func (s *AdapterSuite) TestUnbalancedIsInfeasible() {
	_, err := s.solve(Path(2), Populations(100, 300), config(2, 0.01))
	var infeasible *districting.ModelInfeasibleError
	s.Require().True(errors.As(err, &infeasible), "got %v", err)
	s.Equal(s.Solver.Name(), infeasible.Solver)
}

func (s *AdapterSuite) TestRejectsQuadratic() {
	m, err := districting.BuildModel(Path(4), Populations(100, 100, 100, 100), config(2, 0.5))
	s.Require().NoError(err)
	_, err = s.Solver.Solve(m)
	s.Error(err)
}
