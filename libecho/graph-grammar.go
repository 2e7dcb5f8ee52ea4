package libecho

import (
	"github.com/alecthomas/participle/v2"

	"github.com/ewy-man/graph-echolocation/echo"
)

// GraphExpr is a comma-separated list of edge runs, e.g. "1-2-3-1,2-4".
// A run with no edges ("5") still declares its vertex, so isolated vertices
// are expressible.  The vertex count of the resulting graph is the largest
// vertex ID appearing anywhere in the expression.
type GraphExpr struct {
	EdgeRuns []*EdgeRun `parser:"(@@ (\",\" @@)*)?"`
}

type EdgeRun struct {
	StartVtx int64   `parser:"@Int"`
	EndVtxs  []int64 `parser:"('-' @Int)*"`
}

var parseGraphExpr = participle.MustBuild[GraphExpr]()

type graphBuilder struct {
	maxVtxID int64
	edges    [][2]int64
}

func (Xb *graphBuilder) tallyVtx(vtxID int64) error {
	if vtxID < 1 || vtxID > echo.MaxVtx {
		return echo.ErrBadVtxID
	}
	if Xb.maxVtxID < vtxID {
		Xb.maxVtxID = vtxID
	}
	return nil
}

func (Xb *graphBuilder) applyRun(run *EdgeRun) error {
	onVtx := run.StartVtx
	if err := Xb.tallyVtx(onVtx); err != nil {
		return err
	}

	for _, nextVtx := range run.EndVtxs {
		if err := Xb.tallyVtx(nextVtx); err != nil {
			return err
		}
		Xb.edges = append(Xb.edges, [2]int64{onVtx, nextVtx})
		onVtx = nextVtx
	}

	return nil
}

// InitFromString assigns X from an edge-run expression.
func (X *Graph) InitFromString(graphExpr string) error {
	X.Init(nil)

	Xexpr, err := parseGraphExpr.ParseString("", graphExpr)
	if err != nil {
		return err
	}

	var Xb graphBuilder
	for _, run := range Xexpr.EdgeRuns {
		if err = Xb.applyRun(run); err != nil {
			return err
		}
	}

	if err = X.InitEmpty(int(Xb.maxVtxID)); err != nil {
		return err
	}
	for _, edge := range Xb.edges {
		if err = X.addEdge(int(edge[0]), int(edge[1])); err != nil {
			return err
		}
	}

	return nil
}
