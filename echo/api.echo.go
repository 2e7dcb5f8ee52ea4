package echo

import (
	"io"
)

const (
	// MaxVtx is the largest vertex count a Graph can carry.
	// Exhaustive searches beyond 12 vertices already run for days, so a fixed
	// bound keeps graph storage flat and allocation-free.
	MaxVtx = 16

	// MaxTraces is the size of the trace buffer carried per graph.
	MaxTraces = 2 * MaxVtx
)

// GraphState is a read-only view of a simple, undirected, loop-free graph
// over vertices 1..VertexCount().
type GraphState interface {
	TracesProvider

	// HasEdge returns whether the edge (a,b) is present. Vertex IDs are one-based;
	// out of range IDs return false.
	HasEdge(a, b int) bool

	// Degrees returns the degree of each vertex, indexed by vtxID-1.
	Degrees() []int

	WriteAsString(out io.Writer, opts PrintOpts)

	// MarshalCSV appends this graph's adjacency matrix in interchange form:
	// one row per line of comma-separated 0/1 values, no trailing newline.
	MarshalCSV(out []byte) []byte

	// Returns a new independent copy of this instance.
	MakeCopy() GraphState

	// Recycles this instance into a pool for reuse.
	// Caller asserts that no more references to this instance will persist.
	Reclaim()
}

type TracesProvider interface {
	VertexCount() int
	Traces(numTraces int) Traces
}

// VertexRelation constrains which vertex pairings an isomorphism may use:
// vertex a of the first graph may be sent to vertex b of the second only if
// the relation returns true.  A nil VertexRelation permits all pairings.
// Vertex IDs are one-based.
type VertexRelation func(a, b int) bool

// Oracle decides whether two graphs are isomorphic under an optional
// VertexRelation constraint.  Implementations must behave as pure functions.
//
// Self-isomorphism queries (X == Y) with a pinned relation are how callers ask
// whether a particular automorphism exists.
type Oracle interface {
	IsIsomorphic(X, Y GraphState, rel VertexRelation) bool
}

// OnGraphHit is a callback channel used to return graphs meeting a set of
// selection criteria.  Ownership of a graph travels through the channel.
type OnGraphHit chan<- GraphState

type GraphAdder interface {

	// Tries to add the given graph to this set.
	// If true is returned, no isomorph of X was present and X was added.
	TryAddGraph(X GraphState) bool
}

// Catalog wraps a persistent store of graphs, one entry per isomorphism class.
type Catalog interface {
	GraphAdder

	// Returns true if this catalog was opened for read-only access.
	IsReadOnly() bool

	// NumGraphs returns the number of non-isomorphic graphs stored for a given
	// vertex count (one-based).  An out of bounds vertex count returns 0.
	NumGraphs(forVtxCount byte) int64

	// Select pushes every stored graph matching the given criteria into onHit.
	Select(sel GraphSelector, onHit OnGraphHit)

	Close() error
}

// CatalogOpts specifies params for opening a Catalog.
type CatalogOpts struct {
	DbPathName string // omit for an in-memory db
	ReadOnly   bool   // open in read-only mode
}

// GraphSelector is an operator that either selects a given graph or not.
type GraphSelector struct {
	MinVtx int            // lowest vertex count to select (0 = no bound)
	MaxVtx int            // highest vertex count to select (0 = no bound)
	Traces TracesProvider // if set, only graphs with a matching trace spectrum
}

// SelectsGraph returns whether X meets this selector's criteria.
func (sel *GraphSelector) SelectsGraph(X GraphState) bool {
	nv := X.VertexCount()
	if nv < sel.MinVtx {
		return false
	}
	if sel.MaxVtx > 0 && nv > sel.MaxVtx {
		return false
	}
	if sel.Traces != nil {
		if !sel.Traces.Traces(nv).IsEqual(X.Traces(nv)) {
			return false
		}
	}
	return true
}

// PrintOpts specifies what is emitted when printing a graph.
type PrintOpts struct {
	Label     string // Prefix label
	Matrix    bool   // If set, prints the CSV adjacency matrix
	NumTraces int    // Num of traces to print (-1 denotes natural length, 0 denotes no traces)
}

// DefaultPrintOpts prints the adjacency matrix plus a natural-length trace spectrum.
var DefaultPrintOpts = PrintOpts{
	Matrix:    true,
	NumTraces: -1,
}
