package districting

import (
	"fmt"
	"strings"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// LoadInstance reads the edge list and both county tables.
func LoadInstance(graphPath, zipPath, popPath string, cfg Config) (*Instance, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	graph, err := LoadGraph(graphPath)
	if err != nil {
		return nil, err
	}
	attrs, err := LoadAttributes(zipPath, popPath)
	if err != nil {
		return nil, err
	}

	if cfg.Counties > 0 && cfg.Counties != graph.NumCounties() {
		glog.Warningf("expected %d counties, graph has %d", cfg.Counties, graph.NumCounties())
	}
	missing := 0
	for _, county := range graph.Counties() {
		if _, ok := attrs.Populations[county]; !ok {
			missing++
		}
	}
	if missing > 0 {
		glog.Warningf("%d graph counties have no population (policy %s)", missing, cfg.MissingPopulation)
	}

	return &Instance{Graph: graph, Attributes: attrs, Config: cfg}, nil
}

// BuildModel builds the program for the loaded instance.
func (inst *Instance) BuildModel() (*Model, error) {
	return BuildModel(inst.Graph, inst.Attributes, inst.Config)
}

// Solve builds the model and solves it with solver.
func (inst *Instance) Solve(solver Solver) (*Plan, error) {
	m, err := inst.BuildModel()
	if err != nil {
		return nil, err
	}
	return Solve(m, solver)
}

// Summary renders the plan with one line per district, the district
// populations and the objective value.
func (inst *Instance) Summary(plan *Plan) (string, error) {
	pop, err := populationVector(plan.Counties, inst.Attributes, inst.Config.MissingPopulation)
	if err != nil {
		return "", err
	}
	pops := plan.DistrictPopulations(pop)

	s := new(strings.Builder)
	for j, d := range plan.Districts {
		fmt.Fprintf(s, "District %d: %v\n", j, d)
	}
	for j := range plan.Districts {
		fmt.Fprintf(s, "Population of district %d: %.0f\n", j, pops.AtVec(j))
	}
	fmt.Fprintf(s, "Objective: %g", plan.Objective)
	return s.String(), nil
}
