package catalog

import (
	"bytes"
	"encoding/binary"
	"runtime"

	"github.com/dgraph-io/badger/v3"
	"github.com/pkg/errors"

	"github.com/ewy-man/graph-echolocation/echo"
	"github.com/ewy-man/graph-echolocation/libecho"
)

/***

Catalog database format:

	type TraceSpec := [Ti]varint

	gCatalogStateKey => catalogState

	Nv (byte), TraceSpec, NUL, NUL            (bucket header, no value)
		upper-triangle adjacency bits => CSV adjacency matrix
		...
	...

The above structure allows to:
	1) enumerate all graphs (in a predictable order) for a given Nv
	2) check if a given Traces or graph has been added
	3) fetch the cospectral bucket of any graph with one prefix scan

The leading Nv byte makes bucket headers prefix-free even though varint trace
encodings may themselves contain NUL bytes: two headers sharing a prefix would
have to agree on Nv and therefore on the varint count, so the shorter one's
double-NUL terminator would land inside a varint of the longer -- impossible,
since NUL never starts a varint continuation.

***/

var gCatalogStateKey = []byte{0x00, 0x00, 0x01}

const (
	kMajorVers = 2026
	kMinorVers = 1
)

// catalogState is the db-resident header tracking per-vertex-count totals.
type catalogState struct {
	MajorVers uint32
	MinorVers uint32
	NumGraphs []uint64 // indexed by vertex count
}

func (state *catalogState) Marshal() []byte {
	var scrap [binary.MaxVarintLen64]byte

	out := make([]byte, 0, 16+2*len(state.NumGraphs))
	out = binary.AppendUvarint(out, uint64(state.MajorVers))
	out = binary.AppendUvarint(out, uint64(state.MinorVers))
	out = binary.AppendUvarint(out, uint64(len(state.NumGraphs)))
	for _, Ni := range state.NumGraphs {
		n := binary.PutUvarint(scrap[:], Ni)
		out = append(out, scrap[:n]...)
	}
	return out
}

func (state *catalogState) Unmarshal(val []byte) error {
	rdr := bytes.NewReader(val)

	fields := [3]uint64{}
	for i := range fields {
		fi, err := binary.ReadUvarint(rdr)
		if err != nil {
			return errors.Wrap(echo.ErrUnmarshal, "catalog state header")
		}
		fields[i] = fi
	}
	state.MajorVers = uint32(fields[0])
	state.MinorVers = uint32(fields[1])

	state.NumGraphs = make([]uint64, fields[2])
	for i := range state.NumGraphs {
		Ni, err := binary.ReadUvarint(rdr)
		if err != nil {
			return errors.Wrap(echo.ErrUnmarshal, "catalog state counts")
		}
		state.NumGraphs[i] = Ni
	}
	return nil
}

// catalog is a db wrapper storing one entry per graph isomorphism class,
// bucketed by trace spectrum.
type catalog struct {
	readOnly   bool
	stateDirty bool
	state      catalogState
	db         *badger.DB
}

// OpenCatalog opens (or creates) a graph catalog.  An empty DbPathName opens
// an ephemeral in-memory db, which a read-only catalog cannot be.
func OpenCatalog(opts echo.CatalogOpts) (echo.Catalog, error) {
	cat := &catalog{
		readOnly: opts.ReadOnly,
	}

	dbOpts := badger.DefaultOptions(opts.DbPathName)
	dbOpts.ReadOnly = opts.ReadOnly
	dbOpts.DetectConflicts = false // not needed so disable for performance
	dbOpts.Logger = nil
	dbOpts.MetricsEnabled = false

	// Badger for windows currently does not support read-only mode
	if runtime.GOOS == "windows" {
		dbOpts.ReadOnly = false
	}

	if len(opts.DbPathName) == 0 {
		if opts.ReadOnly {
			return nil, errors.Wrap(echo.ErrBadCatalogParam, "DbPathName must be specified for read-only catalog")
		}
		dbOpts.InMemory = true
	}

	var err error
	cat.db, err = badger.Open(dbOpts)
	if err != nil {
		return nil, err
	}

	err = cat.loadState()
	if err == badger.ErrKeyNotFound {
		err = nil
		cat.stateDirty = true
		cat.state.MajorVers = kMajorVers
		cat.state.MinorVers = kMinorVers
		cat.state.NumGraphs = make([]uint64, echo.MaxVtx+1)
	}

	if err == nil && (cat.state.MajorVers != kMajorVers || cat.state.MinorVers != kMinorVers) {
		err = errors.New("catalog version is incompatible")
	}

	if err != nil {
		cat.Close()
		return nil, err
	}

	return cat, nil
}

func (cat *catalog) loadState() error {
	return cat.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(gCatalogStateKey)
		if err == nil {
			err = item.Value(func(val []byte) error {
				return cat.state.Unmarshal(val)
			})
		}
		return err
	})
}

func (cat *catalog) flushState() {
	if !cat.stateDirty || cat.readOnly {
		return
	}
	err := cat.db.Update(func(txn *badger.Txn) error {
		return txn.Set(gCatalogStateKey, cat.state.Marshal())
	})
	if err != nil {
		panic(err)
	}
	cat.stateDirty = false
}

func (cat *catalog) Close() error {
	cat.flushState()
	if cat.db != nil {
		cat.db.Close()
		cat.db = nil
	}
	return nil
}

func (cat *catalog) IsReadOnly() bool {
	return cat.readOnly
}

func (cat *catalog) NumGraphs(forVtxCount byte) int64 {
	if forVtxCount == 0 || int(forVtxCount) >= len(cat.state.NumGraphs) {
		return 0
	}
	return int64(cat.state.NumGraphs[forVtxCount])
}

// formTracesKey appends X's bucket header key: Nv, TraceSpec, double NUL.
func formTracesKey(key []byte, X echo.TracesProvider) []byte {
	Nv := X.VertexCount()
	TX := X.Traces(Nv)

	key = append(key, byte(Nv))
	key = TX.AppendTraceSpecTo(key)
	key = append(key, 0, 0)
	return key
}

// appendAdjacencyBits appends X's upper-triangle adjacency bits, packed msb
// first.  Graphs in the same bucket have equal Nv, so the encoding is a
// canonical per-labeling suffix under the bucket header.
func appendAdjacencyBits(key []byte, X echo.GraphState) []byte {
	nv := X.VertexCount()

	acc := byte(0)
	bits := 0
	for i := 1; i <= nv; i++ {
		for j := i + 1; j <= nv; j++ {
			acc <<= 1
			if X.HasEdge(i, j) {
				acc |= 1
			}
			if bits++; bits == 8 {
				key = append(key, acc)
				acc, bits = 0, 0
			}
		}
	}
	if bits > 0 {
		key = append(key, acc<<(8-bits))
	}
	return key
}

// TryAddGraph adds X unless an isomorph of it is already stored.
//
// If true is returned, no isomorph of X was present and X was added.
func (cat *catalog) TryAddGraph(X echo.GraphState) bool {
	if cat.readOnly {
		return false
	}

	var keyBuf [256]byte
	tracesKey := formTracesKey(keyBuf[:0], X)

	txn := cat.db.NewTransaction(true)
	defer txn.Discard()

	isNewTraces := false
	_, err := txn.Get(tracesKey)
	if err == badger.ErrKeyNotFound {
		isNewTraces = true
	}

	// Equal traces does not imply isomorphic, so a bucket hit still requires
	// an oracle pass over the bucket's stored graphs.
	if !isNewTraces {
		if cat.bucketContains(txn, tracesKey, X) {
			return false
		}
	}

	graphKey := appendAdjacencyBits(tracesKey, X)

	if isNewTraces {
		// Commit bufs must outlive the txn, so they can't live on the stack.
		hdr := append([]byte{}, tracesKey...)
		if err = txn.Set(hdr, nil); err != nil {
			panic(err)
		}
	}
	val := X.MarshalCSV(nil)
	if err = txn.Set(append([]byte{}, graphKey...), val); err != nil {
		panic(err)
	}
	if err = txn.Commit(); err != nil {
		panic(err)
	}

	cat.state.NumGraphs[X.VertexCount()]++
	cat.stateDirty = true
	return true
}

// bucketContains runs the isomorphism oracle over every graph stored under
// the given bucket header.
func (cat *catalog) bucketContains(txn *badger.Txn, tracesKey []byte, X echo.GraphState) bool {
	it := txn.NewIterator(badger.IteratorOptions{
		PrefetchValues: true,
		PrefetchSize:   100,
		Prefix:         tracesKey,
	})
	defer it.Close()

	Xi := libecho.NewGraph(nil)
	defer Xi.Reclaim()

	found := false
	for it.Rewind(); it.Valid() && !found; it.Next() {
		if len(it.Item().Key()) == len(tracesKey) {
			continue // bucket header entry
		}
		err := it.Item().Value(func(val []byte) error {
			return Xi.InitFromCSV(val)
		})
		if err != nil {
			panic(err)
		}
		if libecho.IsIsomorphic(X, Xi, nil) {
			found = true
		}
	}
	return found
}

// Select pushes every stored graph matching sel into onHit.
//
// Ownership of each pushed graph transfers to the receiver.
func (cat *catalog) Select(sel echo.GraphSelector, onHit echo.OnGraphHit) {
	if sel.Traces != nil {
		cat.selectByTraces(&sel, onHit)
	} else {
		cat.selectAll(&sel, onHit)
	}
}

func loadAndPushGraph(item *badger.Item, sel *echo.GraphSelector, onHit echo.OnGraphHit) {
	err := item.Value(func(val []byte) error {
		X := libecho.NewGraph(nil)
		if err := X.InitFromCSV(val); err != nil {
			X.Reclaim()
			return err
		}
		if sel.SelectsGraph(X) {
			onHit <- X
		} else {
			X.Reclaim()
		}
		return nil
	})
	if err != nil {
		panic(err)
	}
}

func (cat *catalog) selectAll(sel *echo.GraphSelector, onHit echo.OnGraphHit) {
	minKey := [1]byte{byte(sel.MinVtx)}

	txn := cat.db.NewTransaction(false)
	defer txn.Discard()

	it := txn.NewIterator(badger.IteratorOptions{
		PrefetchValues: true,
		PrefetchSize:   300,
	})
	defer it.Close()

	var keyBuf [256]byte
	tracesKey := append(keyBuf[:0], 0xFF, 0xFF) // suffix ensures no match

	for it.Seek(minKey[:]); it.Valid(); it.Next() {
		curItem := it.Item()
		curKey := curItem.Key()

		if bytes.Equal(curKey, gCatalogStateKey) {
			continue
		}

		// Stop when the vtx count is over the max
		if sel.MaxVtx > 0 && int(curKey[0]) > sel.MaxVtx {
			break
		}

		if bytes.HasPrefix(curKey, tracesKey) {
			loadAndPushGraph(curItem, sel, onHit)
		} else {
			// A new prefix means a new bucket header
			n := len(curKey)
			if curKey[n-2] != 0 || curKey[n-1] != 0 { // check double NUL suffix
				panic("what is this entry?")
			}
			tracesKey = append(tracesKey[:0], curKey...)
		}
	}
}

func (cat *catalog) selectByTraces(sel *echo.GraphSelector, onHit echo.OnGraphHit) {
	var keyBuf [256]byte
	tracesKey := formTracesKey(keyBuf[:0], sel.Traces)

	txn := cat.db.NewTransaction(false)
	defer txn.Discard()

	it := txn.NewIterator(badger.IteratorOptions{
		PrefetchValues: true,
		PrefetchSize:   100,
		Prefix:         tracesKey,
	})
	defer it.Close()

	// First item should be the bucket header.  If not present, no graph with
	// a matching trace spectrum has been stored.
	it.Rewind()
	if !it.Valid() {
		return
	}

	// Step over the header entry and read each stored graph
	for it.Next(); it.Valid(); it.Next() {
		loadAndPushGraph(it.Item(), sel, onHit)
	}
}
