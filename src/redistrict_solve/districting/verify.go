package districting

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/graph/topo"
	"gonum.org/v1/gonum/mat"
)

type DistrictReport struct {
	Index      int
	Counties   []int64
	Population float64
	// Deviation is the relative distance from the average population.
	Deviation    float64
	WithinBounds bool
	// Components is the number of connected pieces of the district.
	Components int
}

// Report describes how a plan fares against the redistricting rules.
type Report struct {
	Average   float64
	Lower     float64
	Upper     float64
	Districts []DistrictReport
	// Unassigned and Duplicated list counties with zero or several districts.
	Unassigned []int64
	Duplicated []int64
	// ContiguityViolations lists non-isolated counties without a neighbor in
	// their own district.
	ContiguityViolations []int64
	SameDistrictEdges    int
}

// Feasible reports whether the plan satisfies assignment, balance and weak
// contiguity.
func (r *Report) Feasible() bool {
	if len(r.Unassigned) > 0 || len(r.Duplicated) > 0 || len(r.ContiguityViolations) > 0 {
		return false
	}
	for _, d := range r.Districts {
		if !d.WithinBounds {
			return false
		}
	}
	return true
}

// Connected reports whether every non-empty district is a single connected
// region.
func (r *Report) Connected() bool {
	for _, d := range r.Districts {
		if d.Components > 1 {
			return false
		}
	}
	return true
}

func sameDistrictEdges(ag *AdjacencyGraph, plan *Plan) int {
	row := make(map[int64]int, len(plan.Counties))
	for i, county := range plan.Counties {
		row[county] = i
	}
	count := 0
	for _, e := range ag.Edges() {
		u, okU := row[e[0]]
		v, okV := row[e[1]]
		if !okU || !okV {
			continue
		}
		count += int(math.Round(mat.Dot(plan.Assignment.RowView(u), plan.Assignment.RowView(v))))
	}
	return count
}

// Verify checks plan against the graph, the population lookup and cfg.
func Verify(plan *Plan, ag *AdjacencyGraph, attrs *Attributes, cfg Config) (*Report, error) {
	pop, err := populationVector(plan.Counties, attrs, cfg.MissingPopulation)
	if err != nil {
		return nil, err
	}
	avg := float64(attrs.TotalPopulation()) / float64(plan.NumDistricts())
	r := &Report{
		Average: avg,
		Lower:   avg * (1 - cfg.Tolerance),
		Upper:   avg * (1 + cfg.Tolerance),
	}

	rows, _ := plan.Assignment.Dims()
	for i := range rows {
		switch n := mat.Sum(plan.Assignment.RowView(i)); {
		case n < assignThreshold:
			r.Unassigned = append(r.Unassigned, plan.Counties[i])
		case n > 1+assignThreshold:
			r.Duplicated = append(r.Duplicated, plan.Counties[i])
		}
	}

	row := make(map[int64]int, len(plan.Counties))
	for i, county := range plan.Counties {
		row[county] = i
	}
	for i, county := range plan.Counties {
		neighbors := ag.Neighbors(county)
		if len(neighbors) == 0 {
			continue
		}
		for j := range plan.NumDistricts() {
			if plan.Assignment.At(i, j) < assignThreshold {
				continue
			}
			found := false
			for _, n := range neighbors {
				if k, ok := row[n]; ok && plan.Assignment.At(k, j) > assignThreshold {
					found = true
					break
				}
			}
			if !found {
				r.ContiguityViolations = append(r.ContiguityViolations, county)
			}
		}
	}

	pops := plan.DistrictPopulations(pop)
	for j, counties := range plan.Districts {
		p := pops.AtVec(j)
		d := DistrictReport{
			Index:        j,
			Counties:     counties,
			Population:   p,
			WithinBounds: p >= r.Lower-1e-6 && p <= r.Upper+1e-6,
		}
		if avg > 0 {
			d.Deviation = (p - avg) / avg
		}
		if len(counties) > 0 {
			d.Components = len(topo.ConnectedComponents(ag.Subgraph(counties).Undirected()))
		}
		r.Districts = append(r.Districts, d)
	}
	r.SameDistrictEdges = sameDistrictEdges(ag, plan)
	return r, nil
}

func (r *Report) String() string {
	s := new(strings.Builder)
	fmt.Fprintf(s, "Average population: %.1f (bounds %.1f - %.1f)\n", r.Average, r.Lower, r.Upper)
	for _, d := range r.Districts {
		fmt.Fprintf(s, "District %d: population %.0f, deviation %+.4f%%, components %d\n",
			d.Index, d.Population, 100*d.Deviation, d.Components)
	}
	if len(r.Unassigned) > 0 {
		fmt.Fprintf(s, "Unassigned: %v\n", r.Unassigned)
	}
	if len(r.Duplicated) > 0 {
		fmt.Fprintf(s, "Duplicated: %v\n", r.Duplicated)
	}
	if len(r.ContiguityViolations) > 0 {
		fmt.Fprintf(s, "No same-district neighbor: %v\n", r.ContiguityViolations)
	}
	fmt.Fprintf(s, "Same-district adjacencies: %d\n", r.SameDistrictEdges)
	fmt.Fprintf(s, "Feasible: %v, connected: %v", r.Feasible(), r.Connected())
	return s.String()
}
