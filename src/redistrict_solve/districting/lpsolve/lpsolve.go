// Package lpsolve solves redistricting models with lp_solve through golp.
package lpsolve

import (
	"fmt"
	"math"

	"github.com/draffensperger/golp"
	"github.com/pkg/errors"

	"redistricting/src/redistrict_solve/districting"
)

const Name = "lpsolve"

// lp_solve treats magnitudes from 1e30 up as infinite.
const infinity = 1e30

type Solver struct{}

func New() *Solver { return new(Solver) }

func (*Solver) Name() string { return Name }

func clamp(v float64) float64 {
	return math.Max(-infinity, math.Min(infinity, v))
}

func addBounds(lp *golp.LP, entries []golp.Entry, lower, upper float64) error {
	if lower == upper {
		return lp.AddConstraintSparse(entries, golp.EQ, lower)
	}
	if !math.IsInf(lower, -1) {
		if err := lp.AddConstraintSparse(entries, golp.GE, lower); err != nil {
			return err
		}
	}
	if !math.IsInf(upper, 1) {
		if err := lp.AddConstraintSparse(entries, golp.LE, upper); err != nil {
			return err
		}
	}
	return nil
}

// defColumns sets column bounds and integrality directly on the columns and
// returns the objective row.
func defColumns(lp *golp.LP, m *districting.Model) []float64 {
	obj := make([]float64, m.NumColumns())
	for j, c := range m.Columns {
		obj[j] = c.Cost
		if c.Type == districting.Binary && c.Lower == 0 && c.Upper == 1 {
			lp.SetBinary(j, true)
			continue
		}
		lp.SetBounds(j, clamp(c.Lower), clamp(c.Upper))
		if c.Type == districting.Binary {
			lp.SetInt(j, true)
		}
	}
	return obj
}

func defRows(lp *golp.LP, m *districting.Model) error {
	for _, r := range m.Rows {
		entries := make([]golp.Entry, len(r.Terms))
		for k, t := range r.Terms {
			entries[k] = golp.Entry{Col: t.Col, Val: t.Coef}
		}
		if err := addBounds(lp, entries, r.Lower, r.Upper); err != nil {
			return errors.Wrapf(err, "row %s", r.Name)
		}
	}
	return nil
}

func defModel(m *districting.Model) (*golp.LP, error) {
	lp := golp.NewLP(0, m.NumColumns())
	obj := defColumns(lp, m)
	if err := defRows(lp, m); err != nil {
		return nil, err
	}
	lp.SetObjFn(obj)
	if m.Maximize {
		lp.SetMaximize()
	}
	return lp, nil
}

func (s *Solver) Solve(m *districting.Model) (*districting.Result, error) {
	if !m.IsLinear() {
		return nil, errors.New("lpsolve adapter needs a linear model")
	}
	lp, err := defModel(m)
	if err != nil {
		return nil, err
	}

	code := lp.Solve()
	res := &districting.Result{Detail: fmt.Sprint(code)}
	switch code {
	case golp.OPTIMAL:
		res.Status = districting.StatusOptimal
		res.Objective = lp.Objective()
		res.Values = lp.Variables()
	case golp.INFEASIBLE:
		res.Status = districting.StatusInfeasible
	case golp.UNBOUNDED:
		res.Status = districting.StatusUnbounded
	default:
		res.Status = districting.StatusOther
	}
	return res, nil
}
