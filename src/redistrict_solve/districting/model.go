package districting

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

type VarType int

const (
	Continuous VarType = iota
	Binary
)

func (t VarType) String() string {
	switch t {
	case Continuous:
		return "continuous"
	case Binary:
		return "binary"
	default:
		return fmt.Sprintf("VarType(%d)", int(t))
	}
}

// Column is a decision variable of the model.
type Column struct {
	Name  string
	Type  VarType
	Lower float64
	Upper float64
	Cost  float64
}

// Term is a coefficient of a column inside a row.
type Term struct {
	Col  int
	Coef float64
}

// QuadTerm is a product of two columns in the objective.
type QuadTerm struct {
	I, J int
	Coef float64
}

// Row is a named constraint Lower <= Σ terms <= Upper. An open side is
// ±Inf.
type Row struct {
	Name  string
	Terms []Term
	Lower float64
	Upper float64
}

// Model is a complete redistricting program. It is built once by BuildModel
// or Linearize and is never modified afterwards; adapters only read it.
type Model struct {
	Name      string
	Maximize  bool
	Columns   []Column
	Rows      []Row
	Quadratic []QuadTerm

	Counties  []int64
	Districts int
	Tolerance float64
	Average   float64
}

// AssignCol returns the column of x[county, district], where county is the
// position of the county in m.Counties.
func (m *Model) AssignCol(county, district int) int {
	return county*m.Districts + district
}

func (m *Model) NumColumns() int { return len(m.Columns) }

func (m *Model) NumRows() int { return len(m.Rows) }

func (m *Model) IsLinear() bool { return len(m.Quadratic) == 0 }

// RowsTagged counts the rows whose name starts with tag.
func (m *Model) RowsTagged(tag string) int {
	n := 0
	for _, r := range m.Rows {
		if strings.HasPrefix(r.Name, tag+"[") {
			n++
		}
	}
	return n
}

// Objective evaluates the objective at the given column values.
func (m *Model) Objective(values []float64) float64 {
	obj := 0.0
	for j, c := range m.Columns {
		obj += c.Cost * values[j]
	}
	for _, q := range m.Quadratic {
		obj += q.Coef * values[q.I] * values[q.J]
	}
	return obj
}

const (
	tagOneDistrict = "OneDistrict"
	tagPopUpper    = "PopulationUpperBound"
	tagPopLower    = "PopulationLowerBound"
	tagContiguity  = "Contiguity"
	tagLinkU       = "LinkU"
	tagLinkV       = "LinkV"
)

type modelBuilder struct {
	m       *Model
	graph   *AdjacencyGraph
	pop     []int64
	countyN map[int64]int
}

func (b *modelBuilder) addRow(name string, terms []Term, lower, upper float64) {
	b.m.Rows = append(b.m.Rows, Row{Name: name, Terms: terms, Lower: lower, Upper: upper})
}

func (b *modelBuilder) defAssignVars() {
	m := b.m
	m.Columns = make([]Column, len(m.Counties)*m.Districts)
	for i, county := range m.Counties {
		for j := range m.Districts {
			m.Columns[m.AssignCol(i, j)] = Column{
				Name:  fmt.Sprintf("x[%d,%d]", county, j),
				Type:  Binary,
				Lower: 0,
				Upper: 1,
			}
		}
	}
}

func (b *modelBuilder) defOneDistrict() {
	m := b.m
	for i, county := range m.Counties {
		terms := make([]Term, m.Districts)
		for j := range m.Districts {
			terms[j] = Term{Col: m.AssignCol(i, j), Coef: 1}
		}
		b.addRow(fmt.Sprintf("%s[%d]", tagOneDistrict, county), terms, 1, 1)
	}
}

func (b *modelBuilder) defPopulationBalance() {
	m := b.m
	upper := m.Average * (1 + m.Tolerance)
	lower := m.Average * (1 - m.Tolerance)
	for j := range m.Districts {
		terms := make([]Term, 0, len(m.Counties))
		for i := range m.Counties {
			if b.pop[i] != 0 {
				terms = append(terms, Term{Col: m.AssignCol(i, j), Coef: float64(b.pop[i])})
			}
		}
		b.addRow(fmt.Sprintf("%s[%d]", tagPopUpper, j), terms, math.Inf(-1), upper)
		b.addRow(fmt.Sprintf("%s[%d]", tagPopLower, j), slices.Clone(terms), lower, math.Inf(1))
	}
}

// defContiguity requires a same-district neighbor for every assigned county.
// Isolated counties get no row.
func (b *modelBuilder) defContiguity() {
	m := b.m
	for i, county := range m.Counties {
		neighbors := b.graph.Neighbors(county)
		if len(neighbors) == 0 {
			glog.V(1).Infof("county %d has no neighbors, contiguity not enforced", county)
			continue
		}
		for j := range m.Districts {
			terms := make([]Term, 0, len(neighbors)+1)
			for _, n := range neighbors {
				terms = append(terms, Term{Col: m.AssignCol(b.countyN[n], j), Coef: 1})
			}
			terms = append(terms, Term{Col: m.AssignCol(i, j), Coef: -1})
			b.addRow(fmt.Sprintf("%s[%d,%d]", tagContiguity, county, j), terms, 0, math.Inf(1))
		}
	}
}

func (b *modelBuilder) defObjective() {
	m := b.m
	m.Maximize = true
	for _, e := range b.graph.Edges() {
		u, v := b.countyN[e[0]], b.countyN[e[1]]
		for j := range m.Districts {
			m.Quadratic = append(m.Quadratic, QuadTerm{I: m.AssignCol(u, j), J: m.AssignCol(v, j), Coef: 1})
		}
	}
}

// BuildModel translates the graph and county attributes into the
// redistricting program. The same inputs always yield the same model.
func BuildModel(graph *AdjacencyGraph, attrs *Attributes, cfg Config) (*Model, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	counties := graph.Counties()
	if len(counties) == 0 {
		return nil, errors.New("adjacency graph has no counties")
	}

	b := &modelBuilder{
		m: &Model{
			Name:      "Redistricting",
			Counties:  counties,
			Districts: cfg.Districts,
			Tolerance: cfg.Tolerance,
			Average:   float64(attrs.TotalPopulation()) / float64(cfg.Districts),
		},
		graph:   graph,
		pop:     make([]int64, len(counties)),
		countyN: make(map[int64]int, len(counties)),
	}
	for i, county := range counties {
		pop, err := attrs.Population(county, cfg.MissingPopulation)
		if err != nil {
			return nil, err
		}
		b.pop[i] = pop
		b.countyN[county] = i
	}

	b.defAssignVars()
	b.defOneDistrict()
	b.defPopulationBalance()
	b.defContiguity()
	b.defObjective()

	glog.V(1).Infof("built model: %d columns, %d rows, %d objective products, average population %.1f",
		b.m.NumColumns(), b.m.NumRows(), len(b.m.Quadratic), b.m.Average)
	return b.m, nil
}

func (m *Model) clone() *Model {
	c := *m
	c.Columns = slices.Clone(m.Columns)
	c.Rows = slices.Clone(m.Rows)
	c.Quadratic = nil
	return &c
}

// Linearize replaces every objective product x·y of a maximization model with
// a continuous column z in [0,1] bounded by z <= x and z <= y. The result is
// exact on binary columns.
func (m *Model) Linearize() (*Model, error) {
	if m.IsLinear() {
		return m, nil
	}
	if !m.Maximize {
		return nil, errors.New("product linearization requires a maximization objective")
	}
	lin := m.clone()
	for _, q := range m.Quadratic {
		if m.Columns[q.I].Type != Binary || m.Columns[q.J].Type != Binary {
			return nil, errors.Errorf("cannot linearize product of %s and %s", m.Columns[q.I].Name, m.Columns[q.J].Name)
		}
		if q.Coef < 0 {
			return nil, errors.Errorf("cannot linearize negative product of %s and %s", m.Columns[q.I].Name, m.Columns[q.J].Name)
		}
		z := len(lin.Columns)
		name := fmt.Sprintf("y[%s*%s]", m.Columns[q.I].Name, m.Columns[q.J].Name)
		lin.Columns = append(lin.Columns, Column{Name: name, Type: Continuous, Lower: 0, Upper: 1, Cost: q.Coef})
		lin.Rows = append(lin.Rows,
			Row{Name: fmt.Sprintf("%s[%d]", tagLinkU, z), Terms: []Term{{Col: z, Coef: 1}, {Col: q.I, Coef: -1}}, Lower: math.Inf(-1), Upper: 0},
			Row{Name: fmt.Sprintf("%s[%d]", tagLinkV, z), Terms: []Term{{Col: z, Coef: 1}, {Col: q.J, Coef: -1}}, Lower: math.Inf(-1), Upper: 0},
		)
	}
	return lin, nil
}
