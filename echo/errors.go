package echo

import "errors"

// Errors
var (
	ErrBadDegreeSequence = errors.New("degree sequence has no realization")
	ErrBadVertexCount    = errors.New("bad graph vertex count")
	ErrBadVtxID          = errors.New("bad graph vertex ID")
	ErrLoopEdge          = errors.New("loop edges are not allowed")
	ErrBadEncoding       = errors.New("bad graph encoding")
	ErrUnmarshal         = errors.New("unmarshal failed")
	ErrBadCatalogParam   = errors.New("bad catalog param")
)
