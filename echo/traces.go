package echo

import (
	"bytes"
	"encoding/binary"
	"io"
)

// Traces is a sequence of closed-walk totals: Traces[k-1] is the number of
// closed walks of length k in a graph, i.e. the trace of the k-th power of the
// graph's adjacency matrix.  Values are exact -- walk counts must never round.
type Traces []int64

// TraceSpec is a canonical binary encoding of a Traces (a varint per element).
//
// Isomorphic graphs always produce identical TraceSpecs, so a TraceSpec serves
// as a bucketing key for isomorph rejection and as a db lookup prefix.
type TraceSpec []byte

func mini(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// IsEqual returns whether two traces have the same prefix.
// The number of elements compared is the shorter of the two lengths, so a
// Traces of length 0 is equal to all other Traces.
func (TX Traces) IsEqual(target Traces) bool {
	N := mini(len(TX), len(target))
	for i := 0; i < N; i++ {
		if TX[i] != target[i] {
			return false
		}
	}
	return true
}

// IsZero returns true if all values of this Traces are 0.
func (TX Traces) IsZero() bool {
	for _, TXi := range TX {
		if TXi != 0 {
			return false
		}
	}
	return true
}

func (TX *Traces) SetLen(tracesLen int) {
	if cap(*TX) < tracesLen {
		dimLen := tracesLen
		if dimLen < 16 {
			dimLen = 16 // prevent rapid resizing
		}
		*TX = make([]int64, tracesLen, dimLen)
	} else {
		*TX = (*TX)[:tracesLen]
	}
}

// AppendTraceSpecTo appends a canonical binary encoding of TX to out.
func (TX Traces) AppendTraceSpecTo(out []byte) TraceSpec {
	var scrap [binary.MaxVarintLen64]byte

	for _, Ti := range TX {
		n := binary.PutVarint(scrap[:], Ti)
		out = append(out, scrap[:n]...)
	}

	return out
}

// InitFromTraceSpec assigns this Traces from an encoding made by AppendTraceSpecTo.
// If maxNumTraces > 0, at most that many elements are read.
func (TX *Traces) InitFromTraceSpec(spec TraceSpec, maxNumTraces int) error {
	TX.SetLen(0)
	out := *TX
	rdr := bytes.NewReader(spec)

	for {
		trace, err := binary.ReadVarint(rdr)
		if err != nil {
			if err == io.EOF {
				break
			}
			return ErrUnmarshal
		}
		out = append(out, trace)
		if maxNumTraces > 0 && len(out) >= maxNumTraces {
			break
		}
	}

	*TX = out
	return nil
}
