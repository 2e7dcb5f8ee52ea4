package libecho

import (
	"github.com/ewy-man/graph-echolocation/echo"
)

// Orbits partitions the vertices 1..n of X into the orbits of its
// automorphism group: two vertices land in the same set exactly when some
// automorphism maps one to the other ("similar" vertices).
//
// Pairs already merged transitively are never re-queried, so at most
// n(n-1)/2 oracle calls are made.
func Orbits(X echo.GraphState) [][]int {
	nv := X.VertexCount()
	if nv == 0 {
		return nil
	}

	var uf unionFind
	uf.reset(nv)

	for i := 1; i <= nv; i++ {
		for j := i + 1; j <= nv; j++ {
			if uf.find(i) == uf.find(j) {
				continue
			}
			if HasAutomorphismMapping(X, i, j) {
				uf.union(i, j)
			}
		}
	}

	// Gather members root by root; orbits come out ordered by smallest member
	// and each orbit lists its vertices in increasing order.
	orbitIdx := make(map[int]int, nv)
	orbits := make([][]int, 0, nv)
	for v := 1; v <= nv; v++ {
		root := uf.find(v)
		oi, seen := orbitIdx[root]
		if !seen {
			oi = len(orbits)
			orbitIdx[root] = oi
			orbits = append(orbits, nil)
		}
		orbits[oi] = append(orbits[oi], v)
	}
	return orbits
}

// IsVertexTransitive returns whether the orbit of vertex 1 spans all of X.
func IsVertexTransitive(X echo.GraphState) bool {
	orbits := Orbits(X)
	if len(orbits) == 0 {
		return true
	}
	return len(orbits[0]) == X.VertexCount()
}

// unionFind is a disjoint-set forest over one-based vertex IDs with path
// compression.
type unionFind struct {
	parent [echo.MaxVtx + 1]int
}

func (uf *unionFind) reset(n int) {
	for i := 1; i <= n; i++ {
		uf.parent[i] = i
	}
}

func (uf *unionFind) find(v int) int {
	root := v
	for uf.parent[root] != root {
		root = uf.parent[root]
	}
	for uf.parent[v] != root {
		uf.parent[v], v = root, uf.parent[v]
	}
	return root
}

func (uf *unionFind) union(a, b int) {
	ra, rb := uf.find(a), uf.find(b)
	if ra > rb {
		ra, rb = rb, ra
	}
	uf.parent[rb] = ra
}
