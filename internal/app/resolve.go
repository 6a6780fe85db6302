package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/specialistvlad/tsbridge/internal/compiler"
	"github.com/specialistvlad/tsbridge/internal/config"
	"github.com/specialistvlad/tsbridge/internal/ctxlog"
	"github.com/specialistvlad/tsbridge/internal/dag"
	"github.com/specialistvlad/tsbridge/internal/tsconfig"
)

// DefaultEnvFile is read from the working directory when no env file is given.
const DefaultEnvFile = ".tsbridge.env"

// Environment variables consulted for the toolchain.
const (
	EnvRoot         = "TSBRIDGE_ROOT"
	EnvNode         = "TSBRIDGE_NODE"
	EnvTSC          = "TSBRIDGE_TSC"
	EnvBaseTSConfig = "TSBRIDGE_BASE_TSCONFIG"
)

// Defaults relative to the repository root.
const (
	defaultNode         = "node"
	defaultTSC          = "node_modules/typescript/bin/tsc"
	defaultBaseTSConfig = "tsconfig.base.json"
	defaultTypes        = "node_modules/@types"
)

// invocation is the fully resolved build of one target.
type invocation struct {
	// name is the manifest target name, empty for command line targets.
	name      string
	params    tsconfig.Params
	toolchain config.Toolchain
	// remoteRequested is set by the flag or by a manifest remote block.
	remoteRequested bool
	remote          config.Remote
}

// useRemote reports whether the compilation is dispatched remotely.
func (inv *invocation) useRemote() bool {
	return compiler.UseRemote(inv.remoteRequested, inv.params.References)
}

// resolve merges command line, environment, env file, manifest and defaults
// into the invocations to run, in build order.
func (a *App) resolve(ctx context.Context) ([]*invocation, error) {
	logger := ctxlog.FromContext(ctx)
	cfg := a.config

	lookup, err := a.environment(ctx)
	if err != nil {
		return nil, err
	}
	root := firstNonEmpty(cfg.Root, lookup(EnvRoot), cfg.WorkDir)
	logger.Debug("Repository root resolved.", "root", root)

	targets := []*config.Target{{}}
	var manifestToolchain *config.Toolchain
	if len(cfg.Manifests) > 0 {
		manifests := make([]string, 0, len(cfg.Manifests))
		for _, m := range cfg.Manifests {
			manifests = append(manifests, a.abs(m))
		}
		model, err := a.loader.Load(ctx, root, manifests...)
		if err != nil {
			return nil, fmt.Errorf("failed to load target files: %w", err)
		}
		manifestToolchain = model.Toolchain

		if cfg.AllTargets {
			targets, err = dag.TargetOrder(model, cfg.WorkDir)
			if err != nil {
				return nil, err
			}
		} else {
			selected, err := selectTarget(model, cfg.TargetName)
			if err != nil {
				return nil, &ConfigError{Err: err}
			}
			targets = []*config.Target{selected}
		}
	}

	toolchain := resolveToolchain(cfg.Toolchain, lookup, manifestToolchain, root)

	invocations := make([]*invocation, 0, len(targets))
	for _, t := range targets {
		inv, err := a.newInvocation(*t, toolchain)
		if err != nil {
			return nil, err
		}
		logger.Debug("Target resolved.", "target", inv.name, "remote", inv.useRemote())
		invocations = append(invocations, inv)
	}
	return invocations, nil
}

// newInvocation applies the command line to target and checks that it can
// be built.
func (a *App) newInvocation(target config.Target, toolchain config.Toolchain) (*invocation, error) {
	cfg := a.config
	cfg.Target.Apply(&target)

	if target.TSConfigOutputLocation == "" {
		return nil, &ConfigError{Err: errors.New("tsconfig_output_location is required")}
	}
	if target.FrontEndDirectory == "" {
		return nil, &ConfigError{Err: errors.New("front_end_directory is required")}
	}

	inv := &invocation{
		name: target.Name,
		params: tsconfig.Params{
			WorkDir:        cfg.WorkDir,
			OutputLocation: target.TSConfigOutputLocation,
			Sources:        target.Sources,
			References:     target.Deps,
			Module:         target.Module,
			RootDir:        target.FrontEndDirectory,
			TypesDirectory: toolchain.TypesDirectory,
			TestOnly:       target.TestOnly,
			VerifyLibCheck: target.VerifyLibCheck,
			NoEmit:         target.NoEmit,
			WebWorker:      target.WebWorker,
		},
		toolchain:       toolchain,
		remoteRequested: cfg.UseRemote || target.Remote != nil,
		remote:          mergeRemote(target.Remote, cfg.Remote),
	}

	if inv.useRemote() {
		r := inv.remote
		if r.Binary == "" || r.Cfg == "" || r.ExecRoot == "" {
			return nil, &ConfigError{Err: fmt.Errorf("target %q: remote execution requires rewrapper-binary, rewrapper-cfg and rewrapper-exec-root", target.Name)}
		}
		// Remote inputs are files under the exec root, so PATH lookup is unavailable.
		if !strings.ContainsRune(filepath.ToSlash(toolchain.Node), '/') {
			return nil, &ConfigError{Err: fmt.Errorf("target %q: remote execution requires the node binary as a path, got %q", target.Name, toolchain.Node)}
		}
	}
	return inv, nil
}

// environment returns a lookup over the process environment backed by the
// env file.
func (a *App) environment(ctx context.Context) (func(string) string, error) {
	path := a.config.EnvFile
	explicit := path != ""
	if !explicit {
		path = DefaultEnvFile
	}
	path = a.abs(path)

	values, err := godotenv.Read(path)
	switch {
	case err == nil:
		ctxlog.FromContext(ctx).Debug("Env file loaded.", "path", path, "keys", len(values))
	case !explicit && errors.Is(err, fs.ErrNotExist):
		values = nil
	default:
		return nil, &ConfigError{Err: fmt.Errorf("failed to read env file %s: %w", path, err)}
	}

	return func(key string) string {
		if v := a.getenv(key); v != "" {
			return v
		}
		return values[key]
	}, nil
}

func selectTarget(model *config.Model, name string) (*config.Target, error) {
	if name != "" {
		return model.Target(name)
	}
	names := model.TargetNames()
	if len(names) != 1 {
		return nil, fmt.Errorf("target files declare %d targets, select one with --target: %v", len(names), names)
	}
	return model.Target(names[0])
}

func resolveToolchain(flags ToolchainFlags, lookup func(string) string, manifest *config.Toolchain, root string) config.Toolchain {
	if manifest == nil {
		manifest = &config.Toolchain{}
	}
	tc := config.Toolchain{
		Node:           firstNonEmpty(flags.Node, lookup(EnvNode), manifest.Node, defaultNode),
		TSC:            firstNonEmpty(flags.TSC, lookup(EnvTSC), manifest.TSC, filepath.Join(root, defaultTSC)),
		BaseTSConfig:   firstNonEmpty(flags.BaseTSConfig, lookup(EnvBaseTSConfig), manifest.BaseTSConfig, filepath.Join(root, defaultBaseTSConfig)),
		TypesDirectory: firstNonEmpty(manifest.TypesDirectory, filepath.Join(root, defaultTypes)),
	}
	// bin/tsc lives inside the package directory.
	tc.TypeScriptDir = firstNonEmpty(manifest.TypeScriptDir, filepath.Dir(filepath.Dir(tc.TSC)))

	if flags.GlobalDefinitions != nil {
		tc.GlobalDefinitions = append([]string(nil), flags.GlobalDefinitions...)
	} else {
		tc.GlobalDefinitions = append([]string(nil), manifest.GlobalDefinitions...)
	}
	return tc
}

func mergeRemote(manifest *config.Remote, flags config.Remote) config.Remote {
	var r config.Remote
	if manifest != nil {
		r = *manifest
	}
	r.Binary = firstNonEmpty(flags.Binary, r.Binary)
	r.Cfg = firstNonEmpty(flags.Cfg, r.Cfg)
	r.ExecRoot = firstNonEmpty(flags.ExecRoot, r.ExecRoot)
	return r
}

// abs resolves path against the working directory.
func (a *App) abs(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(a.config.WorkDir, path)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
