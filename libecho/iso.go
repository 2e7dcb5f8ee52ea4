package libecho

import (
	"sort"

	"github.com/ewy-man/graph-echolocation/echo"
)

// DefaultOracle is the isomorphism oracle used by the generators and the orbit
// computer.  It is a pluggable seam: swap in another echo.Oracle (e.g. a
// refinement-based checker) without touching the search code.
var DefaultOracle echo.Oracle = BacktrackOracle{}

// BacktrackOracle decides isomorphism by depth-first vertex assignment with
// degree pruning.  Correct for any graph size; fast enough for the vertex
// counts this project searches (n <= 12).
type BacktrackOracle struct{}

func (BacktrackOracle) IsIsomorphic(X, Y echo.GraphState, rel echo.VertexRelation) bool {
	return IsIsomorphic(X, Y, rel)
}

// IsIsomorphic returns whether an isomorphism X -> Y exists that honors rel:
// vertex a of X may be sent to vertex b of Y only if rel(a, b) is true.
// A nil rel permits all pairings.
func IsIsomorphic(X, Y echo.GraphState, rel echo.VertexRelation) bool {
	nv := X.VertexCount()
	if Y.VertexCount() != nv {
		return false
	}
	if nv == 0 {
		return true
	}

	m := isoMapper{
		X:    X,
		Y:    Y,
		rel:  rel,
		nv:   nv,
		degX: X.Degrees(),
		degY: Y.Degrees(),
	}

	// Degree multisets must agree before any assignment is worth trying.
	sortedX := append([]int{}, m.degX...)
	sortedY := append([]int{}, m.degY...)
	sort.Ints(sortedX)
	sort.Ints(sortedY)
	for i := range sortedX {
		if sortedX[i] != sortedY[i] {
			return false
		}
	}

	return m.extend(1)
}

// HasAutomorphismMapping returns whether some automorphism of X sends vertex i
// to vertex j -- the self-isomorphism mode of the oracle, with the relation
// pinning exactly that one pairing.
func HasAutomorphismMapping(X echo.GraphState, i, j int) bool {
	return DefaultOracle.IsIsomorphic(X, X, func(a, b int) bool {
		return (a == i) == (b == j)
	})
}

type isoMapper struct {
	X, Y echo.GraphState
	rel  echo.VertexRelation
	nv   int
	degX []int
	degY []int

	vmap [echo.MaxVtx + 1]int // X vtx -> Y vtx (one-based)
	used [echo.MaxVtx + 1]bool
}

func (m *isoMapper) extend(a int) bool {
	if a > m.nv {
		return true
	}

	for b := 1; b <= m.nv; b++ {
		if m.used[b] || m.degX[a-1] != m.degY[b-1] {
			continue
		}
		if m.rel != nil && !m.rel(a, b) {
			continue
		}

		ok := true
		for p := 1; p < a; p++ {
			if m.X.HasEdge(a, p) != m.Y.HasEdge(b, m.vmap[p]) {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}

		m.vmap[a] = b
		m.used[b] = true
		if m.extend(a + 1) {
			return true
		}
		m.used[b] = false
	}

	return false
}
