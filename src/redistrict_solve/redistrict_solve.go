package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"redistricting/src/redistrict_solve/districting"
	"redistricting/src/redistrict_solve/districting/highs"
	"redistricting/src/redistrict_solve/districting/lpsolve"
)

func newSolver(name string) (districting.Solver, error) {
	switch name {
	case highs.Name:
		return highs.New(), nil
	case lpsolve.Name:
		return lpsolve.New(), nil
	default:
		return nil, errors.Errorf("unknown solver %q", name)
	}
}

func fail(format string, args ...any) {
	glog.Flush()
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func main() {
	var graphPath, zipPath, popPath, solverName, missingPop string
	var runGreedy, verify bool
	cfg := districting.DefaultConfig()

	flag.StringVar(&graphPath, "graph", "MS.dimacs", "The DIMACS county adjacency file")
	flag.StringVar(&zipPath, "zip", "Zip Code of each County.csv", "The county zip code table")
	flag.StringVar(&popPath, "pop", "Population of each County.csv", "The county population table")
	flag.IntVar(&cfg.Counties, "counties", cfg.Counties, "The expected number of counties (informational)")
	flag.IntVar(&cfg.Districts, "districts", cfg.Districts, "The number of districts")
	flag.Float64Var(&cfg.Tolerance, "tolerance", cfg.Tolerance, "The allowed relative deviation from the average district population")
	flag.StringVar(&solverName, "solver", highs.Name, "The MILP solver: highs or lpsolve")
	flag.StringVar(&missingPop, "missing-pop", string(cfg.MissingPopulation), "What to do with graph counties without population: zero or reject")
	flag.BoolVar(&runGreedy, "greedy", false, "Compute a greedy plan first and report its objective as a lower bound")
	flag.BoolVar(&verify, "verify", false, "Check the solution and report district populations and connectivity")

	flag.Parse()
	defer glog.Flush()

	cfg.MissingPopulation = districting.MissingPopulationPolicy(missingPop)
	solver, err := newSolver(solverName)
	if err != nil {
		fail("%v", err)
	}

	inst, err := districting.LoadInstance(graphPath, zipPath, popPath, cfg)
	if err != nil {
		fail("Error loading instance: %v", err)
	}
	glog.Infof("instance:\n%v", inst)

	if runGreedy {
		greedy, err := districting.GreedyPlan(inst.Graph, inst.Attributes, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Greedy heuristic failed: %v\n", err)
		} else {
			fmt.Println("Greedy lower bound:", greedy.Objective)
		}
	}

	fmt.Printf("Solving with %s...\n", solver.Name())
	plan, err := inst.Solve(solver)
	if err != nil {
		fail("Error while solving: %v", err)
	}
	summary, err := inst.Summary(plan)
	if err != nil {
		fail("%v", err)
	}
	fmt.Println(summary)

	if verify {
		report, err := districting.Verify(plan, inst.Graph, inst.Attributes, cfg)
		if err != nil {
			fail("Error while verifying: %v", err)
		}
		fmt.Println(report)
	}
}
