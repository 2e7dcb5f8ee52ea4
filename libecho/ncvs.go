package libecho

// VtxPair is an unordered pair of one-based vertex IDs, A < B.
type VtxPair struct {
	A, B int
}

// NcvsPairs returns every vertex pair of X that is cospectral (identical
// closed-walk-count vectors) but not similar (no automorphism relates them).
//
// The orbit computation is deferred until a cospectral pair is actually found:
// most graphs have none, and orbits are by far the more expensive half.
func NcvsPairs(X *Graph) []VtxPair {
	nv := X.VertexCount()
	if nv < 2 {
		return nil
	}

	L := X.LoopCounts()

	var candidates []VtxPair
	for i := 1; i <= nv; i++ {
		for j := i + 1; j <= nv; j++ {
			if walksEqual(L[i-1], L[j-1]) {
				candidates = append(candidates, VtxPair{i, j})
			}
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	orbitOf := make([]int, nv+1)
	for oi, orbit := range Orbits(X) {
		for _, v := range orbit {
			orbitOf[v] = oi
		}
	}

	pairs := candidates[:0]
	for _, pair := range candidates {
		if orbitOf[pair.A] != orbitOf[pair.B] {
			pairs = append(pairs, pair)
		}
	}
	if len(pairs) == 0 {
		return nil
	}
	return pairs
}

// HasNcvs returns whether X has at least one cospectral-but-not-similar
// vertex pair.  This is the filter predicate behind the minimality searches.
func HasNcvs(X *Graph) bool {
	return len(NcvsPairs(X)) > 0
}
