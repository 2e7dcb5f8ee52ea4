package libecho

import (
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/ewy-man/graph-echolocation/echo"
)

// MarshalCSV appends X's adjacency matrix as CSV: one row per vertex, cells
// "0" or "1" comma-separated, rows newline-separated with no trailing newline.
func (X *Graph) MarshalCSV(out []byte) []byte {
	nv := int(X.vtxCount)

	for i := 0; i < nv; i++ {
		if i > 0 {
			out = append(out, '\n')
		}
		for j := 0; j < nv; j++ {
			if j > 0 {
				out = append(out, ',')
			}
			c := byte('0')
			if X.adj[i][j] {
				c = '1'
			}
			out = append(out, c)
		}
	}
	return out
}

// InitFromCSV assigns X from an adjacency matrix encoded by MarshalCSV.
// The matrix must be square, symmetric, zero on the diagonal, and contain
// only "0" and "1" cells.
func (X *Graph) InitFromCSV(csv []byte) error {
	X.Init(nil)

	rows := strings.Split(string(csv), "\n")
	nv := len(rows)
	if err := X.InitEmpty(nv); err != nil {
		return err
	}

	for i, row := range rows {
		cells := strings.Split(strings.TrimRight(row, "\r"), ",")
		if len(cells) != nv {
			return errors.Wrapf(echo.ErrBadEncoding, "row %d has %d cells, want %d", i+1, len(cells), nv)
		}
		for j, cell := range cells {
			switch cell {
			case "0":
			case "1":
				if i == j {
					return errors.Wrapf(echo.ErrBadEncoding, "nonzero diagonal at vertex %d", i+1)
				}
				X.adj[i][j] = true
			default:
				return errors.Wrapf(echo.ErrBadEncoding, "bad cell %q at row %d", cell, i+1)
			}
		}
	}

	for i := 0; i < nv; i++ {
		for j := i + 1; j < nv; j++ {
			if X.adj[i][j] != X.adj[j][i] {
				return errors.Wrapf(echo.ErrBadEncoding, "asymmetric at (%d,%d)", i+1, j+1)
			}
		}
	}

	X.onGraphChanged()
	return nil
}

// SaveCSVFile writes X's adjacency matrix CSV to the given path.
func (X *Graph) SaveCSVFile(pathname string) error {
	return os.WriteFile(pathname, X.MarshalCSV(nil), 0644)
}

// LoadCSVFile reads an adjacency matrix CSV written by SaveCSVFile.
func LoadCSVFile(pathname string) (*Graph, error) {
	csv, err := os.ReadFile(pathname)
	if err != nil {
		return nil, err
	}

	X := NewGraph(nil)
	csv = []byte(strings.TrimRight(string(csv), "\n"))
	if err := X.InitFromCSV(csv); err != nil {
		X.Reclaim()
		return nil, err
	}
	return X, nil
}
