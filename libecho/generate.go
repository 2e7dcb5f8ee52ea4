package libecho

import (
	"sort"

	"github.com/ewy-man/graph-echolocation/echo"
)

// GraphFilter is a pure predicate over a graph.  A nil filter accepts everything.
type GraphFilter func(X *Graph) bool

// ValidateDegreeSequence returns whether seq could have a realization:
// 1..MaxVtx entries, each in [0, n-1], with an even sum (handshake lemma).
func ValidateDegreeSequence(seq []int) error {
	n := len(seq)
	if n < 1 || n > echo.MaxVtx {
		return echo.ErrBadVertexCount
	}
	sum := 0
	for _, d := range seq {
		if d < 0 || d >= n {
			return echo.ErrBadDegreeSequence
		}
		sum += d
	}
	if sum&1 != 0 {
		return echo.ErrBadDegreeSequence
	}
	return nil
}

// Generate returns every graph realizing the given degree sequence and
// passing filter, exactly one representative per isomorphism class.
//
// The result graphs are frozen; the search mutates only its own working matrix.
func Generate(degSeq []int, filter GraphFilter) ([]*Graph, error) {
	if err := ValidateDegreeSequence(degSeq); err != nil {
		return nil, err
	}

	nv := len(degSeq)
	target := make([]int, nv+1)
	copy(target[1:], degSeq)
	sort.Ints(target[1:])

	g := &generator{
		nv:     nv,
		target: target,
		cur:    make([]int, nv+1),
		filter: filter,
	}
	// Isomorphisms must pair vertices of equal target degree, which prunes
	// most candidate mappings before the oracle recurses.
	g.found = newIsoSet(func(a, b int) bool {
		return target[a] == target[b]
	})

	g.adj = NewGraph(nil)
	g.adj.InitEmpty(nv)
	defer g.adj.Reclaim()

	g.place(nv)
	return g.out, nil
}

// GenerateAll returns one representative of every isomorphism class of graph
// on n vertices that passes filter, by unioning Generate over every valid
// nondecreasing degree sequence of length n.
func GenerateAll(n int, filter GraphFilter) ([]*Graph, error) {
	if n < 1 || n > echo.MaxVtx {
		return nil, echo.ErrBadVertexCount
	}

	var out []*Graph

	// Walk nondecreasing sequences in lexicographic order, all-zero first.
	// Graphs from distinct degree sequences are never isomorphic, so the
	// per-sequence results concatenate without cross-checking.
	seq := make([]int, n)
	for {
		sum := 0
		for _, d := range seq {
			sum += d
		}
		if sum&1 == 0 {
			graphs, err := Generate(seq, filter)
			if err != nil {
				return nil, err
			}
			out = append(out, graphs...)
		}

		// Lexicographically next nondecreasing sequence: bump the highest
		// entry not yet at n-1 and level everything above it.
		k := n - 1
		for k >= 0 && seq[k] == n-1 {
			k--
		}
		if k < 0 {
			break
		}
		seq[k]++
		for j := k + 1; j < n; j++ {
			seq[j] = seq[k]
		}
	}

	return out, nil
}

// GenerateRegular specializes Generate to the constant degree sequence d^n.
//
// An odd degree product n*d has no realization: a sweep over all degrees
// 0..n-1 gets an empty result for those, the same way GenerateAll skips
// odd-sum sequences.  An out of range degree is still an error.
func GenerateRegular(n, d int, filter GraphFilter) ([]*Graph, error) {
	if n < 1 || n > echo.MaxVtx {
		return nil, echo.ErrBadVertexCount
	}
	if d < 0 || d >= n {
		return nil, echo.ErrBadDegreeSequence
	}
	if n*d%2 != 0 {
		return nil, nil
	}
	seq := make([]int, n)
	for i := range seq {
		seq[i] = d
	}
	return Generate(seq, filter)
}

// generator runs the vertex-by-vertex, edge-by-edge backtracking search.
// Vertices are completed from index nv down to 1; for the vertex being
// completed, candidate neighbors run from just below it down to 1.
type generator struct {
	nv     int
	target []int // one-based target degrees, sorted ascending
	cur    []int // one-based realized degrees in the working matrix
	adj    *Graph
	filter GraphFilter
	found  *isoSet
	out    []*Graph
}

// place completes vertex v and recurses downward; v == 0 means every vertex
// has reached its target degree and the working matrix is a candidate.
func (g *generator) place(v int) {
	if v == 0 {
		g.record()
		return
	}
	g.extend(v, v-1, g.target[v]-g.cur[v])
}

// extend decides edge (i, v), then walks i downward.  need is how many more
// edges vertex v still requires; fewer than need remaining candidates prunes
// the whole branch.
func (g *generator) extend(v, i, need int) {
	if need == 0 {
		g.place(v - 1)
		return
	}
	if i < need {
		return
	}

	if g.cur[i] < g.target[i] && !g.mirrorsNext(v, i) {
		g.adj.setEdge(i, v, true)
		g.cur[i]++
		g.cur[v]++

		g.extend(v, i-1, need-1)

		g.cur[i]--
		g.cur[v]--
		g.adj.setEdge(i, v, false)
	}

	g.extend(v, i-1, need)
}

// mirrorsNext reports whether candidate vertex i is interchangeable with
// vertex i+1 in the current partial matrix: equal target degree, no edge
// (i+1, v) chosen, and identical adjacency to every already-decided vertex
// above v.  Connecting v to i would then reproduce a graph isomorphic to one
// from the already-explored i+1 branch, so the present-edge branch is skipped.
func (g *generator) mirrorsNext(v, i int) bool {
	if i+1 >= v {
		return false
	}
	if g.target[i] != g.target[i+1] {
		return false
	}
	if g.adj.HasEdge(i+1, v) {
		return false
	}
	for w := v + 1; w <= g.nv; w++ {
		if g.adj.HasEdge(i, w) != g.adj.HasEdge(i+1, w) {
			return false
		}
	}
	return true
}

// record accepts the completed working matrix if it passes the filter and no
// isomorph of it has been accepted before.
func (g *generator) record() {
	if g.filter != nil && !g.filter(g.adj) {
		return
	}
	if Xc := g.found.tryAdd(g.adj); Xc != nil {
		g.out = append(g.out, Xc)
	}
}
