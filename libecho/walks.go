package libecho

import (
	"github.com/ewy-man/graph-echolocation/echo"
)

// walkState owns the derived closed-walk state for one Graph assignment:
// per-vertex closed-walk-count vectors and their graph-wide totals (Traces).
// All arithmetic is exact int64 -- walk counts grow combinatorially but must
// never round.
type walkState struct {
	vtxCount int32
	vtxDimSz int32
	vtx      []*walkVtx
	nbrs     [][]int32 // neighbor lists captured at assign time

	curCi  int32
	traces echo.Traces
}

type walkVtx struct {
	walks []int64 // walks[k-1] = closed walks of length k at this vtx
	Ci0   []int64 // this vtx's row of A^k, by target vertex index
	Ci1   []int64 // this vtx's row of A^(k+1) (scratch)
}

func chopBuf(consume []int64, N int32) (alloc []int64, remain []int64) {
	return consume[0:N], consume[N:]
}

func (ws *walkState) reset(numVerts int32) {
	Nv := numVerts

	ws.vtxCount = Nv
	ws.curCi = 0
	if ws.vtxDimSz >= Nv {
		return
	}

	// Prevent rapid resize allocs
	if Nv < 8 {
		Nv = 8
	}
	ws.vtxDimSz = Nv

	ws.vtx = make([]*walkVtx, Nv)
	ws.nbrs = make([][]int32, Nv)

	// Place walk bufs on each vtx
	buf := make([]int64, echo.MaxTraces+3*Nv*Nv)
	ws.traces, buf = chopBuf(buf, echo.MaxTraces)

	for i := int32(0); i < Nv; i++ {
		v := &walkVtx{}
		ws.vtx[i] = v
		v.Ci0, buf = chopBuf(buf, Nv)
		v.Ci1, buf = chopBuf(buf, Nv)
		v.walks, buf = chopBuf(buf, Nv)
	}
}

// assignGraph captures X's adjacency and restarts the power iteration.
func (ws *walkState) assignGraph(X *Graph) {
	Nv := X.vtxCount
	ws.reset(Nv)

	for i := int32(0); i < Nv; i++ {
		row := ws.nbrs[i][:0]
		for j := int32(0); j < Nv; j++ {
			if X.adj[i][j] {
				row = append(row, j)
			}
		}
		ws.nbrs[i] = row
	}

	// Init each vertex's row of A^0 to its identity row
	for i, vi := range ws.vtx[:Nv] {
		for j := int32(0); j < Nv; j++ {
			vi.Ci0[j] = 0
		}
		vi.Ci0[i] = 1
	}
}

// calcUpTo advances the power iteration so that traces and per-vertex walk
// counts are known through walk length numTraces.
//
// Each step multiplies every vertex's current row of A^k by A, reading the
// next diagonal entry off the refreshed row.
func (ws *walkState) calcUpTo(numTraces int32) {
	Nv := ws.vtxCount

	if numTraces < Nv {
		numTraces = Nv
	}
	if numTraces > echo.MaxTraces {
		numTraces = echo.MaxTraces
	}

	for ; ws.curCi < numTraces; ws.curCi++ {
		ci := ws.curCi
		odd := (ci & 1) != 0
		traces_ci := int64(0)

		for i, vi := range ws.vtx[:Nv] {

			// Alternate which buffer is the prev / next row store
			Ci0, Ci1 := vi.Ci0, vi.Ci1
			if odd {
				Ci0, Ci1 = Ci1, Ci0
			}

			for j := int32(0); j < Nv; j++ {
				dot := int64(0)
				for _, w := range ws.nbrs[j] {
					dot += Ci0[w]
				}
				Ci1[j] = dot
			}

			vi_walks_ci := Ci1[i]
			if ci < Nv {
				vi.walks[ci] = vi_walks_ci
			}
			traces_ci += vi_walks_ci
		}
		ws.traces[ci] = traces_ci
	}
}

func (ws *walkState) Traces(numTraces int) echo.Traces {
	if numTraces <= 0 {
		numTraces = int(ws.vtxCount)
	}
	if numTraces > echo.MaxTraces {
		numTraces = echo.MaxTraces
	}

	ws.calcUpTo(int32(numTraces))
	return ws.traces[:numTraces]
}

// LoopCounts returns a fresh n x (n-1) matrix of per-vertex closed-walk counts
// for walk lengths 1..n-1.
func (ws *walkState) LoopCounts() [][]int64 {
	Nv := ws.vtxCount
	if Nv == 0 {
		return nil
	}
	ws.calcUpTo(Nv)

	numCols := Nv - 1
	flat := make([]int64, Nv*numCols)
	L := make([][]int64, Nv)
	for i := int32(0); i < Nv; i++ {
		row := flat[i*numCols : (i+1)*numCols]
		copy(row, ws.vtx[i].walks[:numCols])
		L[i] = row
	}
	return L
}
