package echo

import (
	"fmt"
	"io"
	"strings"
)

// GraphStream is a pull-based pipeline of graphs.  Each stage owns the graphs
// it pulls from its inlet and either forwards or reclaims them.
type GraphStream struct {
	Outlet chan GraphState
}

func NewGraphStream() *GraphStream {
	stream := &GraphStream{
		Outlet: make(chan GraphState, 1),
	}
	return stream
}

// StreamGraphs starts a stream that emits a copy of each of the given graphs.
func StreamGraphs(graphs ...GraphState) *GraphStream {
	next := NewGraphStream()

	go func() {
		for _, X := range graphs {
			next.Outlet <- X.MakeCopy()
		}
		next.Close()
	}()

	return next
}

func (stream *GraphStream) Close() {
	if stream.Outlet != nil {
		close(stream.Outlet)
	}
}

func (stream *GraphStream) PushGraph(X GraphState) {
	stream.Outlet <- X.MakeCopy()
}

func (stream *GraphStream) PullGraph() GraphState {
	X := <-stream.Outlet
	return X
}

// PullAll drains this stream, reclaiming every graph, and returns how many
// graphs passed through.
func (stream *GraphStream) PullAll() int {
	count := int(0)
	for X := range stream.Outlet {
		count++
		X.Reclaim()
	}
	return count
}

// Filter forwards only graphs for which keep returns true; the rest are reclaimed.
func (stream *GraphStream) Filter(keep func(X GraphState) bool) *GraphStream {
	next := NewGraphStream()

	go func() {
		for X := range stream.Outlet {
			if keep(X) {
				next.Outlet <- X
			} else {
				X.Reclaim()
			}
		}
		next.Close()
	}()

	return next
}

// AddTo offers every graph to target, forwarding only graphs that were
// actually added (i.e. not already present up to isomorphism).
func (stream *GraphStream) AddTo(target GraphAdder) *GraphStream {
	next := NewGraphStream()

	go func() {
		for X := range stream.Outlet {
			wasAdded := target.TryAddGraph(X)
			if wasAdded {
				next.Outlet <- X
			} else {
				X.Reclaim()
			}
		}
		next.Close()
	}()

	return next
}

// Print writes each passing graph to out, one line per graph, and forwards it.
func (stream *GraphStream) Print(out io.Writer, opts PrintOpts) *GraphStream {
	next := NewGraphStream()

	go func() {
		buf := strings.Builder{}
		buf.Grow(256)

		count := 0
		for X := range stream.Outlet {
			if len(opts.Label) > 0 {
				buf.WriteString(opts.Label)
				buf.WriteByte(',')
			}

			count++
			fmt.Fprintf(&buf, "%06d,", count)
			X.WriteAsString(&buf, opts)
			buf.WriteByte('\n')
			out.Write([]byte(buf.String()))
			buf.Reset()
			next.Outlet <- X
		}
		next.Close()
	}()

	return next
}
