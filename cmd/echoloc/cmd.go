package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
	"github.com/spf13/cobra"

	"github.com/ewy-man/graph-echolocation/echo"
	"github.com/ewy-man/graph-echolocation/libecho"
	"github.com/ewy-man/graph-echolocation/libecho/catalog"
)

var rootCmd = &cobra.Command{
	Use:           "echoloc",
	Short:         "exhaustive search for graphs with echo-indistinguishable vertices",
	SilenceUsage:  true,
	SilenceErrors: false,
}

var genSpec = SearchSpec{
	Name:   "gen",
	Degree: -1,
}

var genCmd = &cobra.Command{
	Use:   "gen",
	Short: "enumerate all non-isomorphic graphs on N vertices (or realizing a degree sequence)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSearch(&genSpec, os.Stdout)
	},
}

var regularSpec = SearchSpec{
	Name:   "regular",
	Degree: -1,
}

var regularCmd = &cobra.Command{
	Use:   "regular",
	Short: "enumerate all non-isomorphic D-regular graphs on N vertices",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("degree") {
			return errors.Wrap(echo.ErrBadDegreeSequence, "regular requires --degree")
		}
		return runSearch(&regularSpec, os.Stdout)
	},
}

var runCmd = &cobra.Command{
	Use:   "run <manifest.yml>",
	Short: "run every search listed in a yaml manifest",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runManifest(args[0])
	},
}

func init() {
	addSearchFlags(genCmd, &genSpec)
	genCmd.Flags().IntSliceVar(&genSpec.Sequence, "seq", nil, "degree sequence to realize (overrides full enumeration)")

	addSearchFlags(regularCmd, &regularSpec)
	regularCmd.Flags().IntVarP(&regularSpec.Degree, "degree", "d", -1, "vertex degree of the regular graphs")

	rootCmd.AddCommand(genCmd, regularCmd, runCmd)
}

func addSearchFlags(cmd *cobra.Command, spec *SearchSpec) {
	cmd.Flags().IntVarP(&spec.Vertices, "vertices", "v", 0, "vertex count to search")
	cmd.Flags().StringVar(&spec.Filter, "filter", "", "comma-separated predicates: ncvs, walk-regular, not-vertex-transitive")
	cmd.Flags().IntVar(&spec.Traces, "traces", -1, "number of traces to print per graph (0 for none)")
	cmd.Flags().StringVar(&spec.OutDir, "out-dir", "", "write each graph's adjacency matrix CSV into this dir")
	cmd.Flags().StringVar(&spec.Db, "db", "", "catalog db path; graphs already present are not re-emitted")
}

// buildFilter composes the named predicates into a single GraphFilter.
func buildFilter(names string) (libecho.GraphFilter, error) {
	var preds []libecho.GraphFilter

	for _, name := range strings.Split(names, ",") {
		switch strings.TrimSpace(name) {
		case "":
		case "ncvs":
			preds = append(preds, libecho.HasNcvs)
		case "walk-regular":
			preds = append(preds, func(X *libecho.Graph) bool {
				return X.IsWalkRegular()
			})
		case "not-vertex-transitive":
			preds = append(preds, func(X *libecho.Graph) bool {
				return !libecho.IsVertexTransitive(X)
			})
		default:
			return nil, errors.Errorf("unknown filter %q", name)
		}
	}

	if len(preds) == 0 {
		return nil, nil
	}
	return func(X *libecho.Graph) bool {
		for _, pred := range preds {
			if !pred(X) {
				return false
			}
		}
		return true
	}, nil
}

func generateFor(spec *SearchSpec, filter libecho.GraphFilter) ([]*libecho.Graph, error) {
	switch {
	case len(spec.Sequence) > 0:
		return libecho.Generate(spec.Sequence, filter)
	case spec.Degree >= 0:
		return libecho.GenerateRegular(spec.Vertices, spec.Degree, filter)
	default:
		return libecho.GenerateAll(spec.Vertices, filter)
	}
}

// runSearch enumerates the graphs a SearchSpec asks for, then emits them:
// one line per graph to out, a CSV file per graph if OutDir is set, and only
// graphs not already cataloged if Db is set.
func runSearch(spec *SearchSpec, out *os.File) error {
	filter, err := buildFilter(spec.Filter)
	if err != nil {
		return err
	}

	graphs, err := generateFor(spec, filter)
	if err != nil {
		return err
	}
	klog.Infof("search %q: %d graphs", spec.Name, len(graphs))

	var cat echo.Catalog
	if len(spec.Db) > 0 {
		cat, err = catalog.OpenCatalog(echo.CatalogOpts{
			DbPathName: spec.Db,
		})
		if err != nil {
			return err
		}
		defer cat.Close()
	}

	states := make([]echo.GraphState, len(graphs))
	for i, X := range graphs {
		states[i] = X
	}

	stream := echo.StreamGraphs(states...)
	if cat != nil {
		stream = stream.AddTo(cat)
	}
	stream = stream.Print(out, echo.PrintOpts{
		Label:     spec.Name,
		Matrix:    true,
		NumTraces: spec.Traces,
	})
	numEmitted := stream.PullAll()

	if len(spec.OutDir) > 0 {
		if err = writeCSVDir(spec, graphs); err != nil {
			return err
		}
	}

	klog.Infof("search %q: emitted %d", spec.Name, numEmitted)
	return nil
}

func writeCSVDir(spec *SearchSpec, graphs []*libecho.Graph) error {
	if err := os.MkdirAll(spec.OutDir, 0755); err != nil {
		return err
	}
	for i, X := range graphs {
		pathname := filepath.Join(spec.OutDir, fmt.Sprintf("%s-%06d.csv", spec.Name, i+1))
		if err := X.SaveCSVFile(pathname); err != nil {
			return err
		}
	}
	return nil
}
