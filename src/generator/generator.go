package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strconv"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"redistricting/src/redistrict_solve/districting"
)

// GenerateGrid builds a rows×cols county grid numbered row by row from 1.
// With king adjacency diagonal neighbors share a border too.
func GenerateGrid(rows, cols int, king bool) *districting.AdjacencyGraph {
	ag := districting.NewAdjacencyGraph()
	id := func(r, c int) int64 { return int64(r*cols + c + 1) }
	for r := range rows {
		for c := range cols {
			ag.AddCounty(id(r, c))
			if c+1 < cols {
				ag.AddAdjacency(id(r, c), id(r, c+1))
			}
			if r+1 < rows {
				ag.AddAdjacency(id(r, c), id(r+1, c))
			}
			if king && r+1 < rows && c+1 < cols {
				ag.AddAdjacency(id(r, c), id(r+1, c+1))
			}
			if king && r+1 < rows && c > 0 {
				ag.AddAdjacency(id(r, c), id(r+1, c-1))
			}
		}
	}
	return ag
}

func writeCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	return f.Close()
}

func writeInstance(out string, ag *districting.AdjacencyGraph, minPop, maxPop int, rng *rand.Rand) error {
	f, err := os.Create(out + ".dimacs")
	if err != nil {
		return err
	}
	defer f.Close()
	if err := districting.WriteGraph(f, ag, "generated county grid", fmt.Sprintf("counties %d", ag.NumCounties())); err != nil {
		return errors.Wrap(err, "cannot write graph")
	}

	zipRows := make([][]string, 0, ag.NumCounties())
	popRows := make([][]string, 0, ag.NumCounties())
	for _, county := range ag.Counties() {
		n := strconv.FormatInt(county, 10)
		zipRows = append(zipRows, []string{n, fmt.Sprintf("%05d", 38600+int(county))})
		popRows = append(popRows, []string{n, strconv.Itoa(minPop + rng.Intn(maxPop-minPop+1))})
	}
	if err := writeCSV(out+"_zip.csv", []string{districting.ColumnCountyNumber, districting.ColumnZipCode}, zipRows); err != nil {
		return errors.Wrap(err, "cannot write zip code table")
	}
	if err := writeCSV(out+"_pop.csv", []string{districting.ColumnCountyNumber, districting.ColumnPopulation}, popRows); err != nil {
		return errors.Wrap(err, "cannot write population table")
	}
	return f.Close()
}

func main() {
	var outPath string
	var rows, cols, minPop, maxPop int
	var king bool
	var seed int64

	flag.StringVar(&outPath, "out", "grid", "The output path prefix")
	flag.IntVar(&rows, "rows", 0, "The number of grid rows")
	flag.IntVar(&cols, "cols", 0, "The number of grid columns")
	flag.BoolVar(&king, "king", false, "Make diagonal counties adjacent")
	flag.IntVar(&minPop, "minpop", 1000, "The minimum county population")
	flag.IntVar(&maxPop, "maxpop", 50000, "The maximum county population")
	flag.Int64Var(&seed, "seed", 1, "The random seed")

	flag.Parse()
	defer glog.Flush()

	err := false
	if rows <= 0 {
		fmt.Fprintln(os.Stderr, "Must specify the number of rows")
		err = true
	}
	if cols <= 0 {
		fmt.Fprintln(os.Stderr, "Must specify the number of columns")
		err = true
	}
	if minPop < 0 || maxPop < minPop {
		fmt.Fprintln(os.Stderr, "Must specify 0 <= minpop <= maxpop")
		err = true
	}
	if err {
		os.Exit(1)
	}

	ag := GenerateGrid(rows, cols, king)
	if err := writeInstance(outPath, ag, minPop, maxPop, rand.New(rand.NewSource(seed))); err != nil {
		glog.Exitf("Cannot write instance: %v", err)
	}
	glog.Infof("wrote %s: %d counties, %d adjacencies", outPath, ag.NumCounties(), ag.NumEdges())
}
