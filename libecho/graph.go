package libecho

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/ewy-man/graph-echolocation/echo"
)

// Graph is a simple, undirected, loop-free graph over vertices 1..VertexCount(),
// stored as a dense symmetric adjacency matrix with a zero diagonal.
//
// A Graph returned by the generators is frozen: mutation happens only on the
// search's working instance, never on published results.
type Graph struct {
	vtxCount int32
	adj      [echo.MaxVtx][echo.MaxVtx]bool

	dirty  bool
	xstate walkState
}

func NewGraph(Xsrc *Graph) *Graph {
	X := graphPool.Get().(*Graph)
	X.Init(Xsrc)
	return X
}

// NewGraphFromExpr constructs a Graph from an edge-run expression such as "1-2-3,2-4".
func NewGraphFromExpr(graphExpr string) (*Graph, error) {
	X := graphPool.Get().(*Graph)
	if err := X.InitFromString(graphExpr); err != nil {
		X.Reclaim()
		return nil, err
	}
	return X, nil
}

func (X *Graph) Init(Xsrc *Graph) {
	if X == Xsrc {
		return
	}

	X.onGraphChanged()

	if Xsrc == nil {
		X.vtxCount = 0
		X.adj = [echo.MaxVtx][echo.MaxVtx]bool{}
		return
	}
	X.vtxCount = Xsrc.vtxCount
	X.adj = Xsrc.adj
}

// InitEmpty resets X to the edgeless graph on numVerts vertices.
func (X *Graph) InitEmpty(numVerts int) error {
	if numVerts < 0 || numVerts > echo.MaxVtx {
		return echo.ErrBadVertexCount
	}
	X.Init(nil)
	X.vtxCount = int32(numVerts)
	return nil
}

func (X *Graph) VertexCount() int {
	return int(X.vtxCount)
}

func (X *Graph) HasEdge(a, b int) bool {
	if a < 1 || b < 1 || a > int(X.vtxCount) || b > int(X.vtxCount) {
		return false
	}
	return X.adj[a-1][b-1]
}

// setEdge writes or clears the (a,b) edge pair.  Only legal on working graphs
// that have not been published; all derived state is invalidated.
func (X *Graph) setEdge(a, b int, present bool) {
	X.adj[a-1][b-1] = present
	X.adj[b-1][a-1] = present
	X.onGraphChanged()
}

// addEdge validates and adds the edge (a,b).
func (X *Graph) addEdge(a, b int) error {
	if a == b {
		return echo.ErrLoopEdge
	}
	if a < 1 || b < 1 || a > int(X.vtxCount) || b > int(X.vtxCount) {
		return echo.ErrBadVtxID
	}
	X.setEdge(a, b, true)
	return nil
}

func (X *Graph) EdgeCount() int {
	Ne := 0
	nv := int(X.vtxCount)
	for i := 0; i < nv; i++ {
		for j := i + 1; j < nv; j++ {
			if X.adj[i][j] {
				Ne++
			}
		}
	}
	return Ne
}

// Degrees returns the degree of each vertex, indexed by vtxID-1.
func (X *Graph) Degrees() []int {
	nv := int(X.vtxCount)
	deg := make([]int, nv)
	for i := 0; i < nv; i++ {
		for j := 0; j < nv; j++ {
			if X.adj[i][j] {
				deg[i]++
			}
		}
	}
	return deg
}

// DegreeSequence returns X's degree sequence sorted ascending.
func (X *Graph) DegreeSequence() []int {
	deg := X.Degrees()
	sort.Ints(deg)
	return deg
}

// Traces returns the requested number of closed-walk totals (the traces of
// successive adjacency matrix powers).  If numTraces <= 0 the length defaults
// to VertexCount().  The slice is read-only and valid until X next changes.
func (X *Graph) Traces(numTraces int) echo.Traces {
	if X.dirty {
		X.xstate.assignGraph(X)
		X.dirty = false
	}
	return X.xstate.Traces(numTraces)
}

// LoopCounts returns the closed-walk-count matrix L: L[i-1][k-1] is the number
// of closed walks of length k (k = 1..n-1) that start and end at vertex i.
// The returned matrix is a fresh copy owned by the caller.
func (X *Graph) LoopCounts() [][]int64 {
	if X.dirty {
		X.xstate.assignGraph(X)
		X.dirty = false
	}
	return X.xstate.LoopCounts()
}

// IsWalkRegular returns whether every vertex of X has the same
// closed-walk-count vector (all vertices mutually cospectral).
func (X *Graph) IsWalkRegular() bool {
	L := X.LoopCounts()
	for i := 1; i < len(L); i++ {
		if !walksEqual(L[0], L[i]) {
			return false
		}
	}
	return true
}

func walksEqual(a, b []int64) bool {
	for k := range a {
		if a[k] != b[k] {
			return false
		}
	}
	return true
}

func (X *Graph) MakeCopy() echo.GraphState {
	return NewGraph(X)
}

func (X *Graph) Reclaim() {
	if X != nil {
		graphPool.Put(X)
	}
}

var graphPool = sync.Pool{
	New: func() interface{} {
		return new(Graph)
	},
}

func (X *Graph) onGraphChanged() {
	X.dirty = true
}

func (X *Graph) WriteAsString(out io.Writer, opts echo.PrintOpts) {
	fmt.Fprintf(out, "v=%d,e=%d,", X.VertexCount(), X.EdgeCount())

	if opts.Matrix {
		X.writeAsMatrixStr(out)
	}
	if opts.NumTraces != 0 {
		X.writeTracesAsCSV(out, opts.NumTraces)
	}
}

func (X *Graph) writeAsMatrixStr(out io.Writer) {
	nv := int(X.vtxCount)

	out.Write([]byte(`"{`))
	for row := 0; row < nv; row++ {
		if row > 0 {
			out.Write([]byte{','})
		}
		out.Write([]byte{'{'})
		for j := 0; j < nv; j++ {
			c := byte('0')
			if X.adj[row][j] {
				c = '1'
			}
			if j > 0 {
				out.Write([]byte{',', c})
			} else {
				out.Write([]byte{c})
			}
		}
		out.Write([]byte{'}'})
	}
	out.Write([]byte(`}",`))
}

func (X *Graph) writeTracesAsCSV(out io.Writer, numTraces int) {
	TX := X.Traces(numTraces)

	for i, TXi := range TX {
		if i > 0 {
			out.Write([]byte{','})
		}
		fmt.Fprintf(out, "%d", TXi)
	}
}

func (X *Graph) Println(prefix string) {
	b := strings.Builder{}
	b.Grow(192)
	b.WriteString(prefix)
	X.WriteAsString(&b, echo.DefaultPrintOpts)
	fmt.Println(b.String())
}
