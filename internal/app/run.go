package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/tsbridge/internal/artifact"
	"github.com/specialistvlad/tsbridge/internal/compiler"
	"github.com/specialistvlad/tsbridge/internal/ctxlog"
	"github.com/specialistvlad/tsbridge/internal/dirlock"
	"github.com/specialistvlad/tsbridge/internal/report"
	"github.com/specialistvlad/tsbridge/internal/tsconfig"
)

// lockSuffix is appended to the configuration path to name the lock file.
const lockSuffix = ".lock"

// Run builds the configured target, or every manifest target in reference
// order. A failed compilation prints the failure
// banner and diagnostics to the output writer and returns a
// *report.CompileError.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	invocations, err := a.resolve(ctx)
	if err != nil {
		return err
	}
	for _, inv := range invocations {
		targetCtx := ctx
		if inv.name != "" {
			targetCtx = ctxlog.With(ctx, "target", inv.name)
		}
		// The first failure stops the run; later targets reference its output.
		if err := a.build(targetCtx, inv); err != nil {
			return err
		}
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

func (a *App) build(ctx context.Context, inv *invocation) error {
	logger := ctxlog.FromContext(ctx)
	params := inv.params
	configPath := params.OutputPath()

	base, err := tsconfig.LoadTemplate(a.abs(inv.toolchain.BaseTSConfig))
	if err != nil {
		return err
	}
	synth := tsconfig.NewSynthesizer(inv.toolchain.GlobalDefinitions)
	doc, err := synth.Synthesize(base, params)
	if err != nil {
		return fmt.Errorf("failed to synthesize tsconfig: %w", err)
	}
	written, err := tsconfig.PersistIfChanged(ctx, configPath, doc)
	if err != nil {
		return err
	}
	logger.Debug("Compiler configuration persisted.", "path", configPath, "outcome", written.String())

	if len(params.Sources) == 0 && !params.VerifyLibCheck {
		logger.Info("No sources to compile, skipping compiler invocation.")
		return nil
	}

	if a.config.Lock {
		lock, err := dirlock.Acquire(configPath + lockSuffix)
		if err != nil {
			return fmt.Errorf("failed to lock output directory: %w", err)
		}
		defer func() {
			if err := lock.Release(); err != nil {
				logger.Warn("Failed to release output directory lock.", "path", lock.Path(), "error", err)
			}
		}()
	}

	snap := artifact.Capture(ctx, params.Sources, params.OutputDir())
	logger.Debug("Artifacts captured.", "count", snap.Len(), "skipped", len(snap.Skipped()))

	c := a.compilerFor(inv)
	logger.Info("🚀 Starting compilation...", "compiler", c.Name(), "sources", len(params.Sources))
	res, err := c.Compile(ctx, compiler.Request{
		WorkDir:    params.WorkDir,
		ConfigPath: configPath,
		Inputs:     synth.Inputs(params),
		TestOnly:   params.TestOnly,
	})
	if err != nil {
		logger.Error("Compiler could not be started.", "compiler", c.Name(), "error", err)
		res = compiler.Result{ExitCode: report.ExitFailed, Output: err.Error()}
	}

	rec := artifact.Reconcile(ctx, snap, params.OutputDir())
	logger.Info("Artifacts reconciled.",
		"restored", len(rec.Restored), "changed", len(rec.Changed), "removed", len(rec.Removed), "errors", len(rec.Errors))

	outcome := report.NewOutcome(res.ExitCode, res.Output)
	if !outcome.Success {
		signal := report.Report(outcome, params.OutputLocation)
		fmt.Fprint(a.outW, signal.Message)
		return &report.CompileError{ConfigPath: params.OutputLocation, Outcome: outcome}
	}
	logger.Info("🏁 Compilation finished.")
	return nil
}

// compilerFor returns the compiler the invocation is dispatched to.
func (a *App) compilerFor(inv *invocation) compiler.Compiler {
	local := a.local
	if local == nil {
		local = compiler.NewLocal(inv.toolchain.Node, inv.toolchain.TSC, a.runner)
	}
	remote := a.remote
	if remote == nil && inv.useRemote() {
		remote = &compiler.Remote{
			Node:           inv.toolchain.Node,
			TSC:            inv.toolchain.TSC,
			TypeScriptDir:  inv.toolchain.TypeScriptDir,
			TypesDirectory: inv.toolchain.TypesDirectory,
			Binary:         inv.remote.Binary,
			Cfg:            inv.remote.Cfg,
			ExecRoot:       inv.remote.ExecRoot,
			Runner:         a.runner,
		}
	}
	return compiler.Select(inv.remoteRequested, inv.params.References, local, remote)
}
