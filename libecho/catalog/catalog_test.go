package catalog_test

import (
	"os"
	"path"
	"testing"

	"github.com/ewy-man/graph-echolocation/echo"
	"github.com/ewy-man/graph-echolocation/libecho"
	"github.com/ewy-man/graph-echolocation/libecho/catalog"
)

var gT *testing.T

func mustGraph(graphExpr string) *libecho.Graph {
	X, err := libecho.NewGraphFromExpr(graphExpr)
	if err != nil {
		gT.Fatal(err)
	}
	return X
}

func TestBasics(t *testing.T) {
	gT = t
	dir, err := os.MkdirTemp("", "junk*")
	if err != nil {
		gT.Fatal(err)
	}
	defer os.RemoveAll(dir)

	dbPath := path.Join(dir, "TestBasics")
	cat, err := catalog.OpenCatalog(echo.CatalogOpts{
		DbPathName: dbPath,
	})
	if err != nil {
		gT.Fatal(err)
	}

	exprs := []string{
		"1-2",
		"1-2-3",
		"1-2-3-1",
		"1-2-3-4-5-1",
		"1-2-3-1,4-5-6-4",
		"1-2-3-4-5-6-1",
	}

	for _, Xstr := range exprs {
		X := mustGraph(Xstr)
		if added := cat.TryAddGraph(X); !added {
			t.Fatal("nope")
		}
		if added := cat.TryAddGraph(X); added {
			t.Fatal("nope")
		}
		X.Reclaim()
	}

	// A relabeled 5-cycle is an isomorph of one already stored
	{
		X := mustGraph("1-3-5-2-4-1")
		if added := cat.TryAddGraph(X); added {
			t.Fatal("isomorph snuck in")
		}
		X.Reclaim()
	}

	if cat.NumGraphs(6) != 2 || cat.NumGraphs(5) != 1 || cat.NumGraphs(3) != 2 {
		t.Fatal("NumGraphs fail")
	}

	// Select -- we should get all the graphs we've added so far
	{
		total := 0
		onHit := make(chan echo.GraphState)
		go func() {
			cat.Select(echo.GraphSelector{}, onHit)
			close(onHit)
		}()
		for X := range onHit {
			total++
			X.Reclaim()
		}
		if total != len(exprs) {
			t.Fatalf("Select fail: got %d, want %d", total, len(exprs))
		}
	}

	// Select by traces -- C6 and 2xC3 land in distinct buckets (tr A^3 differs)
	{
		C6 := mustGraph("1-2-3-4-5-6-1")
		defer C6.Reclaim()

		sel := echo.GraphSelector{Traces: C6}
		total := 0
		onHit := make(chan echo.GraphState)
		go func() {
			cat.Select(sel, onHit)
			close(onHit)
		}()
		for X := range onHit {
			total++
			if !X.Traces(6).IsEqual(C6.Traces(6)) {
				t.Fatal("traces don't match")
			}
			X.Reclaim()
		}
		if total != 1 {
			t.Fatalf("Select by traces fail: got %d", total)
		}
	}

	if err = cat.Close(); err != nil {
		t.Fatal(err)
	}

	// Counts and contents survive a reopen
	{
		cat, err = catalog.OpenCatalog(echo.CatalogOpts{
			DbPathName: dbPath,
			ReadOnly:   true,
		})
		if err != nil {
			t.Fatal(err)
		}
		defer cat.Close()

		if !cat.IsReadOnly() {
			t.Fatal("expected read-only")
		}
		if cat.NumGraphs(6) != 2 {
			t.Fatal("NumGraphs lost on reopen")
		}

		X := mustGraph("1-2")
		if added := cat.TryAddGraph(X); added {
			t.Fatal("read-only catalog must not add")
		}
		X.Reclaim()
	}
}

func TestInMemoryCatalog(t *testing.T) {
	cat, err := catalog.OpenCatalog(echo.CatalogOpts{})
	if err != nil {
		t.Fatal(err)
	}
	defer cat.Close()

	X := mustGraphT(t, "1-2-3-1")
	defer X.Reclaim()

	if !cat.TryAddGraph(X) {
		t.Fatal("add fail")
	}
	if cat.NumGraphs(3) != 1 {
		t.Fatal("count fail")
	}

	// Read-only requires a db path
	if _, err = catalog.OpenCatalog(echo.CatalogOpts{ReadOnly: true}); err == nil {
		t.Fatal("read-only in-memory catalog must be rejected")
	}
}

func mustGraphT(t *testing.T, graphExpr string) *libecho.Graph {
	t.Helper()
	X, err := libecho.NewGraphFromExpr(graphExpr)
	if err != nil {
		t.Fatal(err)
	}
	return X
}
