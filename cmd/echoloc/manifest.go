package main

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// SearchSpec names one search: which graphs to enumerate and where to emit them.
type SearchSpec struct {
	Name     string `yaml:"name"`
	Vertices int    `yaml:"vertices"`
	Degree   int    `yaml:"degree"`   // -1 means unconstrained
	Sequence []int  `yaml:"sequence"` // overrides Degree when set
	Filter   string `yaml:"filter"`
	Traces   int    `yaml:"traces"`
	OutDir   string `yaml:"out-dir"`
	Db       string `yaml:"db"`
}

func (spec *SearchSpec) UnmarshalYAML(node *yaml.Node) error {
	type rawSpec SearchSpec
	raw := rawSpec{
		Degree: -1,
		Traces: -1,
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}
	*spec = SearchSpec(raw)
	return nil
}

// Manifest is a yaml file listing searches to run as a batch.
type Manifest struct {
	Searches []SearchSpec `yaml:"searches"`
}

// runManifest runs every search in a manifest, fanning out across CPUs.
// Each search emits to <out-dir>/<name>.csv rather than stdout so that
// concurrent searches don't interleave.
func runManifest(pathname string) error {
	buf, err := os.ReadFile(pathname)
	if err != nil {
		return err
	}

	var manifest Manifest
	if err = yaml.Unmarshal(buf, &manifest); err != nil {
		return errors.Wrapf(err, "bad manifest %q", pathname)
	}
	if len(manifest.Searches) == 0 {
		return errors.Errorf("manifest %q lists no searches", pathname)
	}

	var group errgroup.Group
	group.SetLimit(runtime.NumCPU())

	for si := range manifest.Searches {
		spec := &manifest.Searches[si]
		if len(spec.Name) == 0 {
			return errors.Errorf("manifest search %d has no name", si+1)
		}

		group.Go(func() error {
			out := os.Stdout
			if len(spec.OutDir) > 0 {
				if err := os.MkdirAll(spec.OutDir, 0755); err != nil {
					return err
				}
				f, err := os.Create(filepath.Join(spec.OutDir, spec.Name+".csv"))
				if err != nil {
					return err
				}
				defer f.Close()
				out = f
			}

			klog.Infof("manifest search %q starting", spec.Name)
			return runSearch(spec, out)
		})
	}

	return group.Wait()
}
