// This file contains the logic for translating decoded HCL blocks into the
// format-agnostic configuration model defined in the config package.

package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/tsbridge/internal/config"
	"github.com/specialistvlad/tsbridge/internal/ctxlog"
)

// translateToolchain converts a toolchain block into the agnostic model.
func (l *Loader) translateToolchain(t *Toolchain) *config.Toolchain {
	return &config.Toolchain{
		Node:              t.Node,
		TSC:               t.TSC,
		TypeScriptDir:     t.TypeScriptDir,
		BaseTSConfig:      t.BaseTSConfig,
		TypesDirectory:    t.TypesDirectory,
		GlobalDefinitions: t.GlobalDefinitions,
	}
}

// translateLibrary converts a ts_library block into the agnostic model.
func (l *Loader) translateLibrary(ctx context.Context, lib *Library, evalCtx *hcl.EvalContext) (*config.Target, error) {
	logger := ctxlog.FromContext(ctx).With("target", lib.Name)
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("Translating ts_library block.")

	target := &config.Target{
		Name:                   lib.Name,
		Sources:                lib.Sources,
		FrontEndDirectory:      lib.FrontEndDirectory,
		TSConfigOutputLocation: lib.TSConfigOutputLocation,
		Module:                 lib.Module,
		TestOnly:               lib.TestOnly,
		NoEmit:                 lib.NoEmit,
		VerifyLibCheck:         lib.VerifyLibCheck,
		WebWorker:              lib.WebWorker,
	}

	if isExprDefined(ctx, lib.Deps, "deps") {
		deps, err := decodeStringList(lib.Deps, evalCtx)
		if err != nil {
			return nil, fmt.Errorf("ts_library %q: invalid deps: %w", lib.Name, err)
		}
		target.Deps = deps
	}

	if lib.Remote != nil {
		target.Remote = &config.Remote{
			Binary:   lib.Remote.Binary,
			Cfg:      lib.Remote.Cfg,
			ExecRoot: lib.Remote.ExecRoot,
		}
	}
	return target, nil
}
