package libecho_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ewy-man/graph-echolocation/libecho"
)

func TestNcvsSmallGraphsHaveNone(t *testing.T) {
	// In small graphs, cospectral vertices are always similar
	for _, graphExpr := range []string{
		"1-2-3-1",
		"1-2-3-4",
		"1-2,1-3,1-4",
		"1-2-3-4-5-6-1",
		"1-2-3-1,4-5-6-4",
	} {
		X := mustGraph(t, graphExpr)
		require.Empty(t, libecho.NcvsPairs(X), "%q has no NCVS pair", graphExpr)
		require.False(t, libecho.HasNcvs(X))
		X.Reclaim()
	}
}

// The smallest graphs with a cospectral-but-not-similar vertex pair have 8
// vertices, and exactly 126 of the 12346 graphs on 8 vertices contain one.
func TestNcvsBoundary(t *testing.T) {
	maxN := 6
	if !testing.Short() {
		maxN = 8
	}
	want := []int{0, 0, 0, 0, 0, 0, 0, 126}

	for n := 1; n <= maxN; n++ {
		graphs, err := libecho.GenerateAll(n, libecho.HasNcvs)
		require.NoError(t, err)
		require.Equal(t, want[n-1], len(graphs), "graphs with an NCVS pair for n=%d", n)
		reclaimAll(graphs)
	}
}

func TestNcvsRegular10(t *testing.T) {
	if testing.Short() {
		t.Skip("regular n=10 sweep skipped in short mode")
	}

	want := []int{0, 0, 0, 3, 22, 22, 3, 0, 0, 0}
	for d := 0; d < 10; d++ {
		graphs, err := libecho.GenerateRegular(10, d, libecho.HasNcvs)
		require.NoError(t, err)
		require.Equal(t, want[d], len(graphs), "10-vertex %d-regular graphs with an NCVS pair", d)
		reclaimAll(graphs)
	}
}

// Among 12-vertex regular graphs that are walk-regular but not
// vertex-transitive, exactly one exists at each of degrees 4..7.
func TestWalkRegularNonTransitive12(t *testing.T) {
	if os.Getenv("ECHOLOC_LONG") == "" {
		t.Skip("set ECHOLOC_LONG to run the n=12 sweep")
	}

	filter := func(X *libecho.Graph) bool {
		return X.IsWalkRegular() && !libecho.IsVertexTransitive(X)
	}

	for d := 0; d < 12; d++ {
		graphs, err := libecho.GenerateRegular(12, d, filter)
		require.NoError(t, err)

		want := 0
		if d >= 4 && d <= 7 {
			want = 1
		}
		require.Equal(t, want, len(graphs), "12-vertex %d-regular walk-regular non-transitive graphs", d)
		reclaimAll(graphs)
	}
}

func TestCospectralRelationIsEquivalence(t *testing.T) {
	graphs, err := libecho.GenerateAll(5, nil)
	require.NoError(t, err)

	for _, X := range graphs {
		L := X.LoopCounts()
		nv := X.VertexCount()

		cospectral := func(i, j int) bool {
			for k := range L[i] {
				if L[i][k] != L[j][k] {
					return false
				}
			}
			return true
		}

		for i := 0; i < nv; i++ {
			require.True(t, cospectral(i, i), "reflexive")
			for j := 0; j < nv; j++ {
				require.Equal(t, cospectral(i, j), cospectral(j, i), "symmetric")
				for k := 0; k < nv; k++ {
					if cospectral(i, j) && cospectral(j, k) {
						require.True(t, cospectral(i, k), "transitive")
					}
				}
			}
		}
	}
	reclaimAll(graphs)
}
