// Package highs solves redistricting models with the HiGHS MIP solver.
package highs

import (
	hgs "github.com/lanl/highs"
	"github.com/pkg/errors"

	"redistricting/src/redistrict_solve/districting"
)

const Name = "highs"

type Solver struct{}

func New() *Solver { return new(Solver) }

func (*Solver) Name() string { return Name }

func defColumns(lp *hgs.Model, m *districting.Model) {
	numCols := m.NumColumns()
	lp.ColCosts = make([]float64, numCols)
	lp.ColLower = make([]float64, numCols)
	lp.ColUpper = make([]float64, numCols)
	lp.VarTypes = make([]hgs.VariableType, numCols)

	for j, c := range m.Columns {
		lp.ColCosts[j] = c.Cost
		lp.ColLower[j] = c.Lower
		lp.ColUpper[j] = c.Upper
		if c.Type == districting.Binary {
			lp.VarTypes[j] = hgs.IntegerType
		}
	}
}

func defRows(lp *hgs.Model, m *districting.Model) {
	lp.RowLower = make([]float64, 0, m.NumRows())
	lp.RowUpper = make([]float64, 0, m.NumRows())
	for i, r := range m.Rows {
		for _, t := range r.Terms {
			lp.ConstMatrix = append(lp.ConstMatrix, hgs.Nonzero{Row: i, Col: t.Col, Val: t.Coef})
		}
		lp.RowLower = append(lp.RowLower, r.Lower)
		lp.RowUpper = append(lp.RowUpper, r.Upper)
	}
}

func defModel(m *districting.Model) *hgs.Model {
	lp := new(hgs.Model)
	lp.Maximize = m.Maximize
	defColumns(lp, m)
	defRows(lp, m)
	return lp
}

func status(s hgs.ModelStatus) districting.Status {
	switch s {
	case hgs.Optimal:
		return districting.StatusOptimal
	case hgs.Infeasible:
		return districting.StatusInfeasible
	case hgs.Unbounded:
		return districting.StatusUnbounded
	default:
		return districting.StatusOther
	}
}

func (s *Solver) Solve(m *districting.Model) (*districting.Result, error) {
	if !m.IsLinear() {
		return nil, errors.New("highs adapter needs a linear model")
	}
	solution, err := defModel(m).Solve()
	if err != nil {
		return nil, err
	}

	res := &districting.Result{Status: status(solution.Status), Detail: solution.Status.String()}
	if res.Status == districting.StatusOptimal {
		res.Objective = solution.Objective
		res.Values = solution.ColumnPrimal
	}
	return res, nil
}
