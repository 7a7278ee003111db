package districting

import (
	"bufio"
	"cmp"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
)

const edgeToken = "e"

// AdjacencyGraph is the undirected county adjacency graph. Node IDs are
// county numbers.
type AdjacencyGraph struct {
	g *simple.UndirectedGraph
}

func NewAdjacencyGraph() *AdjacencyGraph {
	return &AdjacencyGraph{g: simple.NewUndirectedGraph()}
}

// AddCounty registers a county without any adjacency.
func (ag *AdjacencyGraph) AddCounty(id int64) {
	if ag.g.Node(id) == nil {
		ag.g.AddNode(simple.Node(id))
	}
}

// AddAdjacency records that counties u and v share a border. A self-loop only
// registers the county.
func (ag *AdjacencyGraph) AddAdjacency(u, v int64) {
	if u == v {
		ag.AddCounty(u)
		return
	}
	ag.g.SetEdge(simple.Edge{F: simple.Node(u), T: simple.Node(v)})
}

func (ag *AdjacencyGraph) HasCounty(id int64) bool {
	return ag.g.Node(id) != nil
}

func (ag *AdjacencyGraph) Adjacent(u, v int64) bool {
	return ag.g.HasEdgeBetween(u, v)
}

// Counties returns the county numbers in ascending order.
func (ag *AdjacencyGraph) Counties() []int64 {
	ids := make([]int64, 0, ag.g.Nodes().Len())
	for it := ag.g.Nodes(); it.Next(); {
		ids = append(ids, it.Node().ID())
	}
	slices.Sort(ids)
	return ids
}

// Neighbors returns the counties adjacent to id in ascending order.
func (ag *AdjacencyGraph) Neighbors(id int64) []int64 {
	if !ag.HasCounty(id) {
		return nil
	}
	ids := make([]int64, 0)
	for it := ag.g.From(id); it.Next(); {
		ids = append(ids, it.Node().ID())
	}
	slices.Sort(ids)
	return ids
}

// Edges returns every adjacency once, as {low, high} pairs sorted
// lexicographically.
func (ag *AdjacencyGraph) Edges() [][2]int64 {
	edges := make([][2]int64, 0, ag.NumEdges())
	for it := ag.g.Edges(); it.Next(); {
		e := it.Edge()
		u, v := e.From().ID(), e.To().ID()
		if u > v {
			u, v = v, u
		}
		edges = append(edges, [2]int64{u, v})
	}
	slices.SortFunc(edges, func(a, b [2]int64) int {
		if c := cmp.Compare(a[0], b[0]); c != 0 {
			return c
		}
		return cmp.Compare(a[1], b[1])
	})
	return edges
}

func (ag *AdjacencyGraph) NumCounties() int {
	return ag.g.Nodes().Len()
}

func (ag *AdjacencyGraph) NumEdges() int {
	return ag.g.Edges().Len()
}

// Undirected exposes the underlying gonum graph for read-only algorithms.
func (ag *AdjacencyGraph) Undirected() graph.Undirected {
	return ag.g
}

// Subgraph returns the graph induced by the given counties.
func (ag *AdjacencyGraph) Subgraph(ids []int64) *AdjacencyGraph {
	sub := NewAdjacencyGraph()
	for _, id := range ids {
		if ag.HasCounty(id) {
			sub.AddCounty(id)
		}
	}
	for _, id := range ids {
		for _, n := range ag.Neighbors(id) {
			if sub.HasCounty(n) {
				sub.AddAdjacency(id, n)
			}
		}
	}
	return sub
}

func parseEdgeLine(fields []string) (int64, int64, error) {
	if len(fields) < 3 {
		return 0, 0, errors.Errorf("expected 2 endpoints, got %d", len(fields)-1)
	}
	u, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return 0, 0, errors.Wrap(err, "first endpoint")
	}
	v, err := strconv.ParseInt(fields[2], 10, 64)
	if err != nil {
		return 0, 0, errors.Wrap(err, "second endpoint")
	}
	return u, v, nil
}

// ParseGraph reads DIMACS edge lines "e <u> <v>" from r. Any line whose first
// token is not "e" is skipped.
func ParseGraph(r io.Reader) (*AdjacencyGraph, error) {
	ag := NewAdjacencyGraph()
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		fields := strings.Fields(line)
		if len(fields) == 0 || fields[0] != edgeToken {
			continue
		}
		u, v, err := parseEdgeLine(fields)
		if err != nil {
			return nil, &MalformedInputError{Line: lineNo, Text: line, Err: err}
		}
		ag.AddAdjacency(u, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "error while reading edge list")
	}
	return ag, nil
}

// LoadGraph reads the DIMACS edge list at path.
func LoadGraph(path string) (*AdjacencyGraph, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "cannot open graph")
	}
	defer file.Close()

	ag, err := ParseGraph(file)
	if err != nil {
		var malformed *MalformedInputError
		if errors.As(err, &malformed) {
			malformed.Path = path
		}
		return nil, err
	}
	glog.V(1).Infof("loaded %s: %d counties, %d adjacencies", path, ag.NumCounties(), ag.NumEdges())
	return ag, nil
}
