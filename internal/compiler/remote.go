package compiler

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/tsbridge/internal/ctxlog"
	"github.com/specialistvlad/tsbridge/internal/fsutil"
)

// Remote runs the compiler through a remote execution wrapper. Every file the
// compilation reads must be declared as an input relative to ExecRoot, and
// the configuration directory is declared as the output directory.
type Remote struct {
	Node string
	TSC  string
	// TypeScriptDir is the TypeScript package directory holding lib/ and
	// lib/tsc.js.
	TypeScriptDir string
	// TypesDirectory is uploaded for test-only compilations.
	TypesDirectory string

	Binary   string
	Cfg      string
	ExecRoot string

	Runner ProcessRunner
}

// Name implements Compiler.
func (r *Remote) Name() string { return "remote" }

// Compile implements Compiler.
func (r *Remote) Compile(ctx context.Context, req Request) (Result, error) {
	args, err := r.Args(req)
	if err != nil {
		return Result{}, err
	}
	ctxlog.FromContext(ctx).Debug("Dispatching remote compilation.", "binary", r.Binary, "exec_root", r.ExecRoot)

	runner := r.Runner
	if runner == nil {
		runner = NewExecRunner()
	}
	res, err := runner.Run(ctx, req.WorkDir, r.Binary, args...)
	if err != nil {
		return Result{}, fmt.Errorf("running %s: %w", r.Binary, err)
	}
	return Result{ExitCode: res.ExitCode, Output: res.combined()}, nil
}

// Args builds the wrapper command line for req.
func (r *Remote) Args(req Request) ([]string, error) {
	if r.Binary == "" || r.Cfg == "" || r.ExecRoot == "" {
		return nil, fmt.Errorf("remote execution requires a wrapper binary, config and exec root")
	}

	execRoot := abs(req.WorkDir, r.ExecRoot)
	fromRoot := func(path string) (string, error) {
		return rel(execRoot, abs(req.WorkDir, path))
	}
	fromWorkDir := func(path string) (string, error) {
		return rel(req.WorkDir, abs(req.WorkDir, path))
	}

	node, err := fromWorkDir(r.Node)
	if err != nil {
		return nil, err
	}
	tsc, err := fromWorkDir(r.TSC)
	if err != nil {
		return nil, err
	}
	config, err := fromWorkDir(req.ConfigPath)
	if err != nil {
		return nil, err
	}
	tscJS, err := fromRoot(filepath.Join(abs(req.WorkDir, r.TypeScriptDir), "lib", "tsc.js"))
	if err != nil {
		return nil, err
	}

	inputs := []string{node, tsc, tscJS, config}
	for _, in := range req.Inputs {
		p, err := fromRoot(in)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, p)
	}

	libs, err := fsutil.ListFilesByExtension(filepath.Join(abs(req.WorkDir, r.TypeScriptDir), "lib"), ".d.ts")
	if err != nil {
		return nil, fmt.Errorf("listing TypeScript lib declarations: %w", err)
	}
	for _, lib := range libs {
		p, err := fromRoot(lib)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, p)
	}

	if req.TestOnly {
		p, err := fromRoot(r.TypesDirectory)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, p)
	}

	outDir, err := fromRoot(filepath.Dir(abs(req.WorkDir, req.ConfigPath)))
	if err != nil {
		return nil, err
	}

	return []string{
		"-cfg", r.Cfg,
		"-exec_root", r.ExecRoot,
		"-labels=type=tool",
		"-inputs", strings.Join(inputs, ","),
		"-output_directories", outDir,
		"--", node, tsc, "-p", config,
	}, nil
}

var _ Compiler = (*Remote)(nil)

func abs(workDir, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(workDir, path)
}

func rel(base, target string) (string, error) {
	r, err := filepath.Rel(base, target)
	if err != nil {
		return "", fmt.Errorf("relativizing %s to %s: %w", target, base, err)
	}
	return filepath.ToSlash(r), nil
}
