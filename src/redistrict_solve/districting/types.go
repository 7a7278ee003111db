package districting

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Instance bundles everything loaded from disk for one run.
type Instance struct {
	Graph      *AdjacencyGraph
	Attributes *Attributes
	Config     Config
}

// Plan is an assignment of counties to districts.
type Plan struct {
	Counties []int64
	// Assignment[i][j] is 1 when Counties[i] belongs to district j.
	Assignment *mat.Dense
	Districts  [][]int64
	Objective  float64
	Solver     string
}

func NewPlan(counties []int64, districts int) *Plan {
	return &Plan{
		Counties:   counties,
		Assignment: mat.NewDense(len(counties), districts, nil),
		Districts:  make([][]int64, districts),
	}
}

func (p *Plan) assign(county, district int) {
	p.Assignment.Set(county, district, 1)
}

func (p *Plan) collect() {
	for j := range p.Districts {
		p.Districts[j] = make([]int64, 0)
		for i, county := range p.Counties {
			if p.Assignment.At(i, j) > assignThreshold {
				p.Districts[j] = append(p.Districts[j], county)
			}
		}
	}
}

func (p *Plan) NumDistricts() int {
	return len(p.Districts)
}

// DistrictOf returns the first district holding county.
func (p *Plan) DistrictOf(county int64) (int, bool) {
	for j, d := range p.Districts {
		for _, c := range d {
			if c == county {
				return j, true
			}
		}
	}
	return 0, false
}

// DistrictPopulations multiplies the assignment by the per-county population
// vector, ordered like p.Counties.
func (p *Plan) DistrictPopulations(pop *mat.VecDense) *mat.VecDense {
	out := mat.NewVecDense(p.NumDistricts(), nil)
	out.MulVec(p.Assignment.T(), pop)
	return out
}

func populationVector(counties []int64, attrs *Attributes, policy MissingPopulationPolicy) (*mat.VecDense, error) {
	pop := mat.NewVecDense(len(counties), nil)
	for i, county := range counties {
		v, err := attrs.Population(county, policy)
		if err != nil {
			return nil, err
		}
		pop.SetVec(i, float64(v))
	}
	return pop, nil
}

func (p *Plan) String() string {
	s := new(strings.Builder)
	for j, d := range p.Districts {
		fmt.Fprintf(s, "District %d: %v\n", j, d)
	}
	fmt.Fprintf(s, "Objective: %g", p.Objective)
	return s.String()
}

func (inst *Instance) String() string {
	s := new(strings.Builder)
	s.WriteString(fmt.Sprintf("N. counties: %d\n", inst.Graph.NumCounties()))
	s.WriteString(fmt.Sprintf("N. adjacencies: %d\n", inst.Graph.NumEdges()))
	s.WriteString(fmt.Sprintf("N. joined counties: %d\n", len(inst.Attributes.Populations)))
	s.WriteString(fmt.Sprintf("Total population: %d\n", inst.Attributes.TotalPopulation()))
	s.WriteString(fmt.Sprintf("Districts: %d, tolerance: %g", inst.Config.Districts, inst.Config.Tolerance))
	return s.String()
}
