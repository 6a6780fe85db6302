package hcl

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/tsbridge/internal/config"
	"github.com/specialistvlad/tsbridge/internal/ctxlog"
	"github.com/specialistvlad/tsbridge/internal/fsutil"
)

const manifestExtension = ".hcl"

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL manifest loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every manifest under paths and merges their blocks into one
// model. Defining a target twice, or more than one toolchain, is an error.
func (l *Loader) Load(ctx context.Context, root string, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := l.findAllHCLFiles(paths)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	model := config.NewModel()
	parser := hclparse.NewParser()
	evalCtx := newEvalContext(root)

	toolchainFile := ""
	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var fr fileRoot
		if diags := gohcl.DecodeBody(hclFile.Body, evalCtx, &fr); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		for _, tc := range fr.Toolchains {
			if toolchainFile != "" {
				return nil, fmt.Errorf("%s: duplicate toolchain block; first defined in %s", file, toolchainFile)
			}
			toolchainFile = file
			model.Toolchain = l.translateToolchain(tc)
		}

		for _, lib := range fr.Libraries {
			if _, exists := model.Targets[lib.Name]; exists {
				return nil, fmt.Errorf("%s: ts_library %q is defined more than once", file, lib.Name)
			}
			target, err := l.translateLibrary(ctx, lib, evalCtx)
			if err != nil {
				return nil, err
			}
			model.Targets[target.Name] = target
		}
	}

	logger.Debug("HCL loading complete.", "targets", len(model.Targets), "toolchain", model.Toolchain != nil)
	return model, nil
}

// findAllHCLFiles expands paths into a flat, de-duplicated list of manifest
// files. A path that does not exist is an error.
func (l *Loader) findAllHCLFiles(paths []string) ([]string, error) {
	var allFiles []string
	seen := make(map[string]struct{})
	add := func(p string) {
		if _, wasSeen := seen[p]; !wasSeen {
			allFiles = append(allFiles, p)
			seen[p] = struct{}{}
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("error accessing manifest path %s: %w", path, err)
		}

		if !info.IsDir() {
			add(filepath.Clean(path))
			continue
		}
		found, err := fsutil.FindFilesByExtension(path, manifestExtension)
		if err != nil {
			return nil, err
		}
		for _, f := range found {
			add(f)
		}
	}
	return allFiles, nil
}

var _ config.Loader = (*Loader)(nil)
