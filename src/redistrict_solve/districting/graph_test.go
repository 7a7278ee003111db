package districting

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGraph_EdgeLines(t *testing.T) {
	in := `c Mississippi counties
p edge 4 3
e 1 2
e 2 3

e 3 4
`
	ag, err := ParseGraph(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3, 4}, ag.Counties())
	assert.Equal(t, [][2]int64{{1, 2}, {2, 3}, {3, 4}}, ag.Edges())
	assert.True(t, ag.Adjacent(2, 1))
	assert.False(t, ag.Adjacent(1, 3))
	assert.Equal(t, []int64{1, 3}, ag.Neighbors(2))
}

func TestParseGraph_DuplicateAndReversedEdges(t *testing.T) {
	ag, err := ParseGraph(strings.NewReader("e 1 2\ne 2 1\ne 1 2\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, ag.NumCounties())
	assert.Equal(t, 1, ag.NumEdges())
}

func TestParseGraph_SelfLoopRegistersCounty(t *testing.T) {
	ag, err := ParseGraph(strings.NewReader("e 1 2\ne 7 7\n"))
	require.NoError(t, err)
	assert.True(t, ag.HasCounty(7))
	assert.Empty(t, ag.Neighbors(7))
	assert.Equal(t, 1, ag.NumEdges())
}

func TestParseGraph_ExtraTokensIgnored(t *testing.T) {
	ag, err := ParseGraph(strings.NewReader("e 5 6 1\n"))
	require.NoError(t, err)
	assert.True(t, ag.Adjacent(5, 6))
}

func TestParseGraph_Malformed(t *testing.T) {
	cases := map[string]string{
		"missing endpoint": "e 1 2\ne 3\n",
		"not a number":     "e 1 2\ne a b\n",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseGraph(strings.NewReader(in))
			var malformed *MalformedInputError
			require.True(t, errors.As(err, &malformed), "got %v", err)
			assert.Equal(t, 2, malformed.Line)
		})
	}
}

func TestLoadGraph_ReportsPath(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.dimacs", "e x 1\n")
	_, err := LoadGraph(path)
	var malformed *MalformedInputError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, path, malformed.Path)
	assert.Contains(t, err.Error(), path)
}

func TestLoadGraph_MissingFile(t *testing.T) {
	_, err := LoadGraph("does-not-exist.dimacs")
	assert.Error(t, err)
}

func TestSubgraph(t *testing.T) {
	sub := pathGraph(5).Subgraph([]int64{1, 2, 4, 5, 9})
	assert.Equal(t, []int64{1, 2, 4, 5}, sub.Counties())
	assert.Equal(t, [][2]int64{{1, 2}, {4, 5}}, sub.Edges())
}

func TestWriteGraph_RoundTrip(t *testing.T) {
	ag := pathGraph(4)
	ag.AddCounty(9)

	var buf bytes.Buffer
	require.NoError(t, WriteGraph(&buf, ag, "test"))
	assert.True(t, strings.HasPrefix(buf.String(), "c test\np edge 5 4\n"))

	back, err := ParseGraph(&buf)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3, 4, 9}, back.Counties())
	assert.Equal(t, ag.Edges(), back.Edges())
}
