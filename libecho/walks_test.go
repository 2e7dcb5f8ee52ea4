package libecho_test

import (
	"testing"

	"github.com/ewy-man/graph-echolocation/libecho"
)

func mustGraph(t *testing.T, graphExpr string) *libecho.Graph {
	t.Helper()
	X, err := libecho.NewGraphFromExpr(graphExpr)
	if err != nil {
		t.Fatalf("bad graph expr %q: %v", graphExpr, err)
	}
	return X
}

func checkTraces(t *testing.T, graphExpr string, want []int64) {
	t.Helper()
	X := mustGraph(t, graphExpr)
	defer X.Reclaim()

	TX := X.Traces(len(want))
	for k := range want {
		if TX[k] != want[k] {
			t.Fatalf("%q: traces %v, want %v", graphExpr, TX, want)
		}
	}
}

func TestTracesKnownGraphs(t *testing.T) {
	// Triangle: 2 closed walks of length 2 and of length 3 at each vertex
	checkTraces(t, "1-2-3-1", []int64{0, 6, 6})

	// K4 has eigenvalues 3, -1, -1, -1 so tr(A^k) = 3^k + 3(-1)^k
	checkTraces(t, "1-2-3-4-1,1-3,2-4", []int64{0, 12, 24, 84})

	// Paths are bipartite, so all odd traces vanish
	checkTraces(t, "1-2-3", []int64{0, 4, 0})

	// Star K_{1,3}: tr(A^2) = 2|E|, tr(A^4) = 18
	checkTraces(t, "1-2,1-3,1-4", []int64{0, 6, 0, 18})
}

func TestLoopCounts(t *testing.T) {
	// Path 1-2-3: the middle vertex closes twice as many 2-walks
	X := mustGraph(t, "1-2-3")
	defer X.Reclaim()

	L := X.LoopCounts()
	if len(L) != 3 || len(L[0]) != 2 {
		t.Fatalf("LoopCounts dims %dx%d, want 3x2", len(L), len(L[0]))
	}
	want := [][]int64{{0, 1}, {0, 2}, {0, 1}}
	for i := range want {
		for k := range want[i] {
			if L[i][k] != want[i][k] {
				t.Fatalf("LoopCounts[%d] = %v, want %v", i, L[i], want[i])
			}
		}
	}

	// Recomputation is deterministic
	L2 := X.LoopCounts()
	for i := range L {
		for k := range L[i] {
			if L[i][k] != L2[i][k] {
				t.Fatal("LoopCounts not deterministic")
			}
		}
	}
}

func TestLoopCountsStarCenter(t *testing.T) {
	X := mustGraph(t, "1-2,1-3,1-4")
	defer X.Reclaim()

	L := X.LoopCounts()
	if L[0][1] != 3 {
		t.Fatalf("star center closes %d 2-walks, want 3", L[0][1])
	}
	for leaf := 1; leaf < 4; leaf++ {
		if L[leaf][1] != 1 {
			t.Fatalf("star leaf closes %d 2-walks, want 1", L[leaf][1])
		}
	}
}

func TestIsWalkRegular(t *testing.T) {
	C4 := mustGraph(t, "1-2-3-4-1")
	defer C4.Reclaim()
	if !C4.IsWalkRegular() {
		t.Fatal("C4 is walk-regular")
	}

	P3 := mustGraph(t, "1-2-3")
	defer P3.Reclaim()
	if P3.IsWalkRegular() {
		t.Fatal("P3 is not walk-regular")
	}
}
