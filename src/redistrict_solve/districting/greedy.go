package districting

import (
	"time"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/traverse"
	"gonum.org/v1/gonum/mat"
	"gopkg.in/dnaeon/go-priorityqueue.v1"
)

const GreedyName = "greedy"

func hopDistances(ag *AdjacencyGraph, from int64) map[int64]int {
	dist := map[int64]int{from: 0}
	g := ag.Undirected()
	var bf traverse.BreadthFirst
	bf.Walk(g, g.Node(from), func(n graph.Node, d int) bool {
		dist[n.ID()] = d
		return false
	})
	return dist
}

// pickSeeds spreads one seed per district: the most populated county first,
// then repeatedly the county farthest (in hops) from every chosen seed.
func pickSeeds(ag *AdjacencyGraph, counties []int64, pop *mat.VecDense, districts int) []int {
	unreachable := len(counties) + 1
	nearest := make([]int, len(counties))
	for i := range nearest {
		nearest[i] = unreachable
	}
	isSeed := make([]bool, len(counties))
	seeds := make([]int, 0, districts)

	for range districts {
		best := -1
		for i := range counties {
			if isSeed[i] {
				continue
			}
			if best < 0 || nearest[i] > nearest[best] ||
				(nearest[i] == nearest[best] && pop.AtVec(i) > pop.AtVec(best)) {
				best = i
			}
		}
		isSeed[best] = true
		seeds = append(seeds, best)
		dist := hopDistances(ag, counties[best])
		for i, county := range counties {
			if d, ok := dist[county]; ok && d < nearest[i] {
				nearest[i] = d
			}
		}
	}
	return seeds
}

// bestFrontier returns the unassigned county with most adjacencies into
// district j, preferring the lighter county on ties. -1 when j cannot grow.
func bestFrontier(ag *AdjacencyGraph, counties []int64, index map[int64]int, owner []int, j int, pop *mat.VecDense) int {
	best, bestLinks := -1, 0
	for i, county := range counties {
		if owner[i] >= 0 {
			continue
		}
		links := 0
		for _, n := range ag.Neighbors(county) {
			if owner[index[n]] == j {
				links++
			}
		}
		if links == 0 {
			continue
		}
		if links > bestLinks || (links == bestLinks && pop.AtVec(i) < pop.AtVec(best)) {
			best, bestLinks = i, links
		}
	}
	return best
}

// GreedyPlan grows districts from spread-out seeds, always extending the
// lightest district. The plan may violate population balance; its objective
// is a lower bound for the exact model.
func GreedyPlan(ag *AdjacencyGraph, attrs *Attributes, cfg Config) (*Plan, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	counties := ag.Counties()
	if len(counties) < cfg.Districts {
		return nil, errors.Errorf("%d counties cannot fill %d districts", len(counties), cfg.Districts)
	}
	pop, err := populationVector(counties, attrs, cfg.MissingPopulation)
	if err != nil {
		return nil, err
	}
	t := time.Now()

	index := make(map[int64]int, len(counties))
	owner := make([]int, len(counties))
	for i, county := range counties {
		index[county] = i
		owner[i] = -1
	}

	load := make([]float64, cfg.Districts)
	pq := priorityqueue.New[int, float64](priorityqueue.MinHeap)
	for j, s := range pickSeeds(ag, counties, pop, cfg.Districts) {
		owner[s] = j
		load[j] = pop.AtVec(s)
		pq.Put(j, load[j])
	}

	for pq.Len() > 0 {
		item := pq.Get()
		j := item.Value
		next := bestFrontier(ag, counties, index, owner, j, pop)
		if next < 0 {
			continue
		}
		owner[next] = j
		load[j] += pop.AtVec(next)
		pq.Put(j, load[j])
	}

	// Counties cut off from every seed go to the lightest district.
	for i := range counties {
		if owner[i] >= 0 {
			continue
		}
		lightest := 0
		for j := range load {
			if load[j] < load[lightest] {
				lightest = j
			}
		}
		owner[i] = lightest
		load[lightest] += pop.AtVec(i)
	}

	plan := NewPlan(counties, cfg.Districts)
	for i, j := range owner {
		plan.assign(i, j)
	}
	plan.collect()
	plan.Objective = float64(sameDistrictEdges(ag, plan))
	plan.Solver = GreedyName
	glog.V(1).Infof("greedy plan built in %v, objective %g", time.Since(t), plan.Objective)
	return plan, nil
}
