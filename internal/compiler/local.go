package compiler

import (
	"context"
	"fmt"
)

// Local runs `node tsc -p <config>` on this machine.
type Local struct {
	Node   string
	TSC    string
	Runner ProcessRunner
}

// NewLocal returns a Local compiler using runner, or an ExecRunner when
// runner is nil.
func NewLocal(node, tsc string, runner ProcessRunner) *Local {
	if runner == nil {
		runner = NewExecRunner()
	}
	return &Local{Node: node, TSC: tsc, Runner: runner}
}

// Name implements Compiler.
func (l *Local) Name() string { return "local" }

// Compile implements Compiler.
func (l *Local) Compile(ctx context.Context, req Request) (Result, error) {
	res, err := l.Runner.Run(ctx, req.WorkDir, l.Node, l.TSC, "-p", req.ConfigPath)
	if err != nil {
		return Result{}, fmt.Errorf("running %s: %w", l.Node, err)
	}
	return Result{ExitCode: res.ExitCode, Output: res.combined()}, nil
}

var _ Compiler = (*Local)(nil)
