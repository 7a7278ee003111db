package districting

import (
	"fmt"
)

// MalformedInputError is returned when a DIMACS edge line cannot be parsed.
type MalformedInputError struct {
	Path string
	Line int
	Text string
	Err  error
}

func (e *MalformedInputError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("malformed edge at line %d %q: %v", e.Line, e.Text, e.Err)
	}
	return fmt.Sprintf("malformed edge in %s at line %d %q: %v", e.Path, e.Line, e.Text, e.Err)
}

func (e *MalformedInputError) Unwrap() error { return e.Err }

// DataIntegrityError is returned when the county tables cannot be joined or
// carry an invalid attribute.
type DataIntegrityError struct {
	Table  string
	Row    int
	Column string
	Err    error
}

func (e *DataIntegrityError) Error() string {
	switch {
	case e.Row > 0:
		return fmt.Sprintf("data integrity: table %s, row %d, column %q: %v", e.Table, e.Row, e.Column, e.Err)
	case e.Column != "":
		return fmt.Sprintf("data integrity: table %s, column %q: %v", e.Table, e.Column, e.Err)
	default:
		return fmt.Sprintf("data integrity: table %s: %v", e.Table, e.Err)
	}
}

func (e *DataIntegrityError) Unwrap() error { return e.Err }

// ModelInfeasibleError is returned when the solver proves that no assignment
// satisfies the model.
type ModelInfeasibleError struct {
	Solver    string
	Districts int
	Tolerance float64
}

func (e *ModelInfeasibleError) Error() string {
	return fmt.Sprintf("%s: model infeasible for %d districts with tolerance %g", e.Solver, e.Districts, e.Tolerance)
}

// SolverNonOptimalError is returned when the solver stops without an optimal
// solution for a reason other than infeasibility.
type SolverNonOptimalError struct {
	Solver string
	Status Status
	Detail string
}

func (e *SolverNonOptimalError) Error() string {
	return fmt.Sprintf("%s: no optimal solution, status %v (%s)", e.Solver, e.Status, e.Detail)
}
