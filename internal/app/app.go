package app

import (
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/specialistvlad/tsbridge/internal/compiler"
	"github.com/specialistvlad/tsbridge/internal/config"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
	loader config.Loader

	getenv func(string) string
	runner compiler.ProcessRunner
	// local and remote replace the compilers built from the toolchain.
	local  compiler.Compiler
	remote compiler.Compiler
}

// Option customizes an App.
type Option func(*App)

// WithGetenv replaces os.Getenv for toolchain lookups.
func WithGetenv(getenv func(string) string) Option {
	return func(a *App) { a.getenv = getenv }
}

// WithProcessRunner sets the runner the built-in compilers start processes with.
func WithProcessRunner(runner compiler.ProcessRunner) Option {
	return func(a *App) { a.runner = runner }
}

// WithCompilers replaces the local and remote compilers. A nil remote keeps
// every compilation local.
func WithCompilers(local, remote compiler.Compiler) Option {
	return func(a *App) {
		a.local = local
		a.remote = remote
	}
}

// NewApp is the constructor for the main application. Diagnostics are written
// to outW and logs to logW. Every log record carries the invocation id.
func NewApp(outW, logW io.Writer, cfg *Config, loader config.Loader, opts ...Option) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW, uuid.NewString())
	logger.Debug("Logger configured successfully.")

	a := &App{
		outW:   outW,
		logger: logger,
		config: cfg,
		loader: loader,
		getenv: os.Getenv,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}
