package dag

import (
	"fmt"
	"path/filepath"

	"github.com/specialistvlad/tsbridge/internal/config"
)

// TargetOrder returns every target of model in build order. A reference of
// target B that points at the configuration file of target A, or at the
// directory holding it, makes A a dependency of B. References to files that
// no target generates are prebuilt inputs and do not affect the order.
// Relative paths are resolved against workDir.
func TargetOrder(model *config.Model, workDir string) ([]*config.Target, error) {
	g := New()
	// Keys are generated tsconfig paths and their directories. Generated
	// artifacts are reconciled per directory, so a directory has one owner.
	byOutput := make(map[string]string, 2*len(model.Targets))
	for _, name := range model.TargetNames() {
		target := model.Targets[name]
		g.AddNode(name)
		out := absPath(workDir, target.TSConfigOutputLocation)
		if other, dup := byOutput[out]; dup {
			return nil, fmt.Errorf("targets %q and %q generate the same tsconfig %s", other, name, out)
		}
		dir := filepath.Dir(out)
		if other, dup := byOutput[dir]; dup {
			return nil, fmt.Errorf("targets %q and %q share the output directory %s", other, name, dir)
		}
		byOutput[out] = name
		byOutput[dir] = name
	}

	for _, name := range model.TargetNames() {
		target := model.Targets[name]
		outDir := filepath.Dir(absPath(workDir, target.TSConfigOutputLocation))
		for _, ref := range target.Deps {
			upstream, ok := byOutput[absPath(outDir, ref)]
			if !ok || upstream == name {
				continue
			}
			if err := g.AddEdge(upstream, name); err != nil {
				return nil, err
			}
		}
	}

	order, err := g.TopologicalOrder()
	if err != nil {
		return nil, fmt.Errorf("invalid target references: %w", err)
	}
	targets := make([]*config.Target, 0, len(order))
	for _, name := range order {
		targets = append(targets, model.Targets[name])
	}
	return targets, nil
}

func absPath(base, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(base, path)
}
