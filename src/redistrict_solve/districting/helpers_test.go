package districting

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// pathGraph returns 1-2-...-n.
func pathGraph(n int64) *AdjacencyGraph {
	ag := NewAdjacencyGraph()
	for i := int64(1); i < n; i++ {
		ag.AddAdjacency(i, i+1)
	}
	return ag
}

func uniformAttributes(pop int64, counties ...int64) *Attributes {
	attrs := &Attributes{ZipCodes: map[int64]string{}, Populations: map[int64]int64{}}
	for _, c := range counties {
		attrs.ZipCodes[c] = fmt.Sprintf("386%02d", c)
		attrs.Populations[c] = pop
	}
	return attrs
}

func testConfig(districts int, tolerance float64) Config {
	cfg := DefaultConfig()
	cfg.Districts = districts
	cfg.Tolerance = tolerance
	return cfg
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// fakeSolver returns a canned result and remembers the model it was given.
type fakeSolver struct {
	result *Result
	err    error
	got    *Model
}

func (*fakeSolver) Name() string { return "fake" }

func (f *fakeSolver) Solve(m *Model) (*Result, error) {
	f.got = m
	return f.result, f.err
}
