package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/specialistvlad/tsbridge/internal/app"
	"github.com/specialistvlad/tsbridge/internal/cli"
	"github.com/specialistvlad/tsbridge/internal/hcl"
	"github.com/specialistvlad/tsbridge/internal/report"
)

// main is the entrypoint for the tsbridge application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	// The real main function handles errors and exit codes.
	if err := run(context.Background(), os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		// Compile failures were already printed with their diagnostics.
		var compileErr *report.CompileError
		if !errors.As(err, &compileErr) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(app.ExitCode(err))
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(ctx context.Context, outW, logW io.Writer, args []string, opts ...app.Option) error {
	appConfig, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	// Instantiate the concrete HCL loader to pass to the app.
	loader := hcl.NewLoader()
	tsApp := app.NewApp(outW, logW, appConfig, loader, opts...)

	return tsApp.Run(ctx)
}
