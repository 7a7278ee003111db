package districting

import (
	"fmt"
	"io"
)

// WriteGraph writes ag as a DIMACS edge list that ParseGraph reads back:
// comment lines, a "p edge N M" problem line, then one "e u v" line per
// adjacency. Isolated counties are written as self-loops.
func WriteGraph(w io.Writer, ag *AdjacencyGraph, comments ...string) error {
	var isolated []int64
	for _, c := range ag.Counties() {
		if len(ag.Neighbors(c)) == 0 {
			isolated = append(isolated, c)
		}
	}
	for _, c := range comments {
		if _, err := fmt.Fprintf(w, "c %s\n", c); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "p edge %d %d\n", ag.NumCounties(), ag.NumEdges()+len(isolated)); err != nil {
		return err
	}
	for _, e := range ag.Edges() {
		if _, err := fmt.Fprintf(w, "e %d %d\n", e[0], e[1]); err != nil {
			return err
		}
	}
	for _, c := range isolated {
		if _, err := fmt.Fprintf(w, "e %d %d\n", c, c); err != nil {
			return err
		}
	}
	return nil
}
