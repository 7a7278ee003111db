package districting

import (
	"time"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// Status is the terminal state reported by a solver.
type Status int

const (
	StatusOther Status = iota
	StatusOptimal
	StatusInfeasible
	StatusUnbounded
)

func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "optimal"
	case StatusInfeasible:
		return "infeasible"
	case StatusUnbounded:
		return "unbounded"
	default:
		return "other"
	}
}

// Result is what a solver returns for a linear model.
type Result struct {
	Status    Status
	Detail    string
	Objective float64
	Values    []float64
}

// Solver runs a single optimization of a linear model.
type Solver interface {
	Name() string
	Solve(m *Model) (*Result, error)
}

const assignThreshold = 0.5

// ExtractPlan projects the assignment columns of m onto per-district county
// lists. Values may be indexed past the assignment columns (auxiliary
// columns are ignored).
func ExtractPlan(m *Model, values []float64) (*Plan, error) {
	need := len(m.Counties) * m.Districts
	if len(values) < need {
		return nil, errors.Errorf("solution has %d values, model needs %d", len(values), need)
	}
	plan := NewPlan(m.Counties, m.Districts)
	for i := range m.Counties {
		for j := range m.Districts {
			if values[m.AssignCol(i, j)] > assignThreshold {
				plan.assign(i, j)
			}
		}
	}
	plan.collect()
	return plan, nil
}

// Solve linearizes m when needed, runs the solver once and extracts the plan.
// A non-optimal outcome is returned as ModelInfeasibleError or
// SolverNonOptimalError.
func Solve(m *Model, solver Solver) (*Plan, error) {
	lin, err := m.Linearize()
	if err != nil {
		return nil, err
	}

	t := time.Now()
	res, err := solver.Solve(lin)
	if err != nil {
		return nil, errors.Wrapf(err, "%s solver failed", solver.Name())
	}
	glog.Infof("%s finished in %v with status %v", solver.Name(), time.Since(t), res.Status)

	switch res.Status {
	case StatusOptimal:
	case StatusInfeasible:
		return nil, &ModelInfeasibleError{Solver: solver.Name(), Districts: m.Districts, Tolerance: m.Tolerance}
	default:
		return nil, &SolverNonOptimalError{Solver: solver.Name(), Status: res.Status, Detail: res.Detail}
	}

	plan, err := ExtractPlan(m, res.Values)
	if err != nil {
		return nil, err
	}
	plan.Objective = res.Objective
	plan.Solver = solver.Name()
	return plan, nil
}
