package libecho_test

import (
	"os"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ewy-man/graph-echolocation/echo"
	"github.com/ewy-man/graph-echolocation/libecho"
)

// Known counts of non-isomorphic simple graphs on n unlabeled vertices.
var gNumGraphs = []int{1, 2, 4, 11, 34, 156, 1044, 12346}

// Known counts of non-isomorphic regular graphs on n vertices, all degrees.
var gNumRegular = []int{1, 2, 2, 4, 3, 8, 6, 22, 26, 176, 546, 19002}

func reclaimAll(graphs []*libecho.Graph) {
	for _, X := range graphs {
		X.Reclaim()
	}
}

func TestGenerateAllCounts(t *testing.T) {
	maxN := 7
	if !testing.Short() {
		maxN = 8
	}

	for n := 1; n <= maxN; n++ {
		graphs, err := libecho.GenerateAll(n, nil)
		require.NoError(t, err)
		require.Equal(t, gNumGraphs[n-1], len(graphs), "graph count for n=%d", n)
		reclaimAll(graphs)
	}
}

func TestGenerateRegularCounts(t *testing.T) {
	maxN := 8
	if !testing.Short() {
		maxN = 10
	}
	if os.Getenv("ECHOLOC_LONG") != "" {
		maxN = 12
	}

	for n := 1; n <= maxN; n++ {
		total := 0
		for d := 0; d < n; d++ {
			graphs, err := libecho.GenerateRegular(n, d, nil)
			require.NoError(t, err)
			total += len(graphs)
			reclaimAll(graphs)
		}
		require.Equal(t, gNumRegular[n-1], total, "regular graph count for n=%d", n)
	}
}

func TestGenerateDegreeFidelity(t *testing.T) {
	seqs := [][]int{
		{1, 1, 2, 2},
		{2, 2, 2, 2, 2},
		{1, 1, 1, 1, 2, 2},
		{3, 3, 2, 2, 1, 1}, // unsorted on purpose
	}

	for _, seq := range seqs {
		graphs, err := libecho.Generate(seq, nil)
		require.NoError(t, err)
		require.NotEmpty(t, graphs, "seq %v has realizations", seq)

		want := append([]int{}, seq...)
		sort.Ints(want)
		for _, X := range graphs {
			require.Equal(t, want, X.DegreeSequence(), "degree sequence of a %v realization", seq)
		}
		reclaimAll(graphs)
	}
}

func TestGenerateNoDuplicates(t *testing.T) {
	for n := 4; n <= 6; n++ {
		graphs, err := libecho.GenerateAll(n, nil)
		require.NoError(t, err)

		for i := range graphs {
			for j := i + 1; j < len(graphs); j++ {
				require.False(t, libecho.IsIsomorphic(graphs[i], graphs[j], nil),
					"graphs %d and %d of n=%d are isomorphic", i, j, n)
			}
		}
		reclaimAll(graphs)
	}
}

func TestGenerateRejectsBadSequences(t *testing.T) {
	badSeqs := [][]int{
		{},        // no vertices
		{1},       // odd sum
		{1, 2},    // odd sum
		{3, 1, 0}, // degree exceeds n-1
		{-1, 1},   // negative degree
	}
	for _, seq := range badSeqs {
		_, err := libecho.Generate(seq, nil)
		require.Error(t, err, "seq %v must be rejected", seq)
	}

	_, err := libecho.GenerateAll(0, nil)
	require.ErrorIs(t, err, echo.ErrBadVertexCount)

	_, err = libecho.GenerateAll(echo.MaxVtx+1, nil)
	require.ErrorIs(t, err, echo.ErrBadVertexCount)
}

func TestGenerateRegularOddProduct(t *testing.T) {
	// An odd n*d has no realization, and a degree sweep counts those as zero
	for _, nd := range [][2]int{{3, 1}, {5, 3}, {7, 1}} {
		graphs, err := libecho.GenerateRegular(nd[0], nd[1], nil)
		require.NoError(t, err, "n=%d d=%d", nd[0], nd[1])
		require.Empty(t, graphs, "n=%d d=%d", nd[0], nd[1])
	}

	// An out of range degree is still an error
	_, err := libecho.GenerateRegular(4, 4, nil)
	require.ErrorIs(t, err, echo.ErrBadDegreeSequence)
	_, err = libecho.GenerateRegular(4, -1, nil)
	require.ErrorIs(t, err, echo.ErrBadDegreeSequence)
}

func TestGenerateFilterIsApplied(t *testing.T) {
	// Only the 2-regular graphs on 6 vertices: C6 and 2xC3
	graphs, err := libecho.GenerateAll(6, func(X *libecho.Graph) bool {
		for _, d := range X.Degrees() {
			if d != 2 {
				return false
			}
		}
		return true
	})
	require.NoError(t, err)
	require.Equal(t, 2, len(graphs))
	reclaimAll(graphs)
}
