package libecho

import (
	"bytes"

	"github.com/emirpasic/gods/trees/redblacktree"

	"github.com/ewy-man/graph-echolocation/echo"
)

// isoSet accumulates one frozen representative per isomorphism class.
//
// Isomorphic graphs are always cospectral, so candidates are bucketed by
// TraceSpec in a red-black tree and the full isomorphism oracle only ever
// runs within a single bucket.  With the degree-pairing relation applied,
// buckets stay tiny in practice.
type isoSet struct {
	buckets *redblacktree.Tree // TraceSpec -> []*Graph
	rel     echo.VertexRelation
	scrap   []byte
}

func newIsoSet(rel echo.VertexRelation) *isoSet {
	return &isoSet{
		buckets: redblacktree.NewWith(func(a, b interface{}) int {
			return bytes.Compare(a.(echo.TraceSpec), b.(echo.TraceSpec))
		}),
		rel: rel,
	}
}

// tryAdd checks X against the representatives already held.  If X is new, a
// frozen copy is stored and returned; if an isomorph is already present, nil.
// X itself is never retained, so the caller may keep mutating it.
func (set *isoSet) tryAdd(X *Graph) *Graph {
	set.scrap = X.Traces(0).AppendTraceSpecTo(set.scrap[:0])
	key := echo.TraceSpec(set.scrap)

	var bucket []*Graph
	if v, found := set.buckets.Get(key); found {
		bucket = v.([]*Graph)
		for _, Xi := range bucket {
			if IsIsomorphic(X, Xi, set.rel) {
				return nil
			}
		}
	}

	Xc := NewGraph(X)

	// Put stores the key it is given, so it can't alias the scrap buffer.
	key = append(echo.TraceSpec{}, key...)
	set.buckets.Put(key, append(bucket, Xc))
	return Xc
}
