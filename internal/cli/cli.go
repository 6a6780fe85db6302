package cli

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/specialistvlad/tsbridge/internal/app"
	"github.com/specialistvlad/tsbridge/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// bareDeps is recorded for a --deps without value and dropped by nonEmpty.
const bareDeps = " "

// options are the raw flag values before they become an app.Config.
type options struct {
	sources           []string
	deps              []string
	frontEndDirectory string
	outputLocation    string
	module            string
	testOnly          bool
	noEmit            bool
	verifyLibCheck    bool
	webWorker         bool

	useRemote         bool
	rewrapperBinary   string
	rewrapperCfg      string
	rewrapperExecRoot string

	targetFiles []string
	target      string
	all         bool
	root        string
	envFile     string

	node              string
	tsc               string
	baseTSConfig      string
	globalDefinitions []string

	lock      bool
	logFormat string
	logLevel  string
}

const longHelp = `tsbridge - generate a TypeScript project configuration for one library
target, run the compiler and keep the timestamps of artifacts whose content
did not change, so that timestamp-based build systems skip needless rebuilds.

The target is described on the command line, in an HCL target file
(--target-file, --target), or both; command line values win.`

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")

	var (
		opts   options
		parsed *app.Config
	)
	cmd := &cobra.Command{
		Use:           "tsbridge [flags] [SOURCES...]",
		Short:         "Build a TypeScript library target with timestamp-stable outputs.",
		Long:          longHelp,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, positional []string) error {
			cfg, err := opts.config(cmd.Flags(), positional)
			if err != nil {
				return err
			}
			parsed = cfg
			return nil
		},
	}
	cmd.SetArgs(args)
	cmd.SetOut(output)
	cmd.SetErr(output)
	bindFlags(cmd.Flags(), &opts)

	if len(args) == 0 {
		slog.Debug("No arguments provided, printing usage and exiting.")
		_ = cmd.Help()
		return nil, true, nil
	}

	if err := cmd.Execute(); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			return nil, false, exitErr
		}
		return nil, false, &ExitError{Code: app.ExitUsage, Message: err.Error()}
	}
	if parsed == nil {
		// Help was requested.
		return nil, true, nil
	}

	slog.Debug("CLI parser finished successfully.", "config", parsed)
	return parsed, false, nil
}

func bindFlags(fs *pflag.FlagSet, o *options) {
	fs.StringArrayVarP(&o.sources, "sources", "s", nil, "Source file to compile, repeatable. Positional arguments are sources too.")
	fs.StringArrayVar(&o.deps, "deps", nil, "Upstream tsconfig to reference, repeatable as --deps=PATH. A bare --deps gives an empty reference list.")
	// A bare --deps must not swallow the next argument.
	fs.Lookup("deps").NoOptDefVal = bareDeps
	fs.StringVarP(&o.frontEndDirectory, "front_end_directory", "d", "", "Common root directory of the sources.")
	fs.StringVarP(&o.outputLocation, "tsconfig_output_location", "b", "", "Path of the tsconfig.json to generate.")
	fs.StringVar(&o.module, "module", "", "Module system of the generated code (default esnext).")
	fs.BoolVar(&o.testOnly, "test-only", false, "Target is test-only and may use @types.")
	fs.BoolVar(&o.noEmit, "no-emit", false, "Emit declarations only.")
	fs.BoolVar(&o.verifyLibCheck, "verify-lib-check", false, "Type-check declaration files, even without sources.")
	fs.BoolVar(&o.webWorker, "is_web_worker", false, "Compile against the web worker libraries instead of the DOM.")

	fs.BoolVar(&o.useRemote, "use-rbe", false, "Run the compiler through the remote execution wrapper.")
	fs.StringVar(&o.rewrapperBinary, "rewrapper-binary", "", "Remote execution wrapper binary.")
	fs.StringVar(&o.rewrapperCfg, "rewrapper-cfg", "", "Remote execution wrapper configuration.")
	fs.StringVar(&o.rewrapperExecRoot, "rewrapper-exec-root", "", "Remote execution root.")

	fs.StringArrayVar(&o.targetFiles, "target-file", nil, "HCL target file or directory, repeatable.")
	fs.StringVar(&o.target, "target", "", "Name of the ts_library to build from the target files.")
	fs.BoolVar(&o.all, "all", false, "Build every ts_library of the target files in reference order.")
	fs.StringVar(&o.root, "root", "", "Repository root (default $"+app.EnvRoot+" or the working directory).")
	fs.StringVar(&o.envFile, "env-file", "", "Env file with "+app.EnvNode+", "+app.EnvTSC+" and similar settings (default "+app.DefaultEnvFile+" if present).")

	fs.StringVar(&o.node, "node", "", "Node binary.")
	fs.StringVar(&o.tsc, "tsc", "", "TypeScript compiler entry point.")
	fs.StringVar(&o.baseTSConfig, "base-tsconfig", "", "Base tsconfig template.")
	fs.StringArrayVar(&o.globalDefinitions, "global-definitions", nil, "Declaration file included in every compilation, repeatable.")

	fs.BoolVar(&o.lock, "lock", false, "Hold a lock on the output directory while compiling.")
	fs.StringVar(&o.logFormat, "log-format", "text", "Log output format. Options: 'text' or 'json'.")
	fs.StringVar(&o.logLevel, "log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
}

// config turns the parsed flags into a validated app.Config. Only flags that
// were given override a target file.
func (o *options) config(fs *pflag.FlagSet, positional []string) (*app.Config, error) {
	workDir, err := os.Getwd()
	if err != nil {
		return nil, &ExitError{Code: 1, Message: "cannot determine working directory: " + err.Error()}
	}

	target := app.TargetFlags{}
	if fs.Changed("sources") || len(positional) > 0 {
		target.Sources = append(append([]string{}, o.sources...), positional...)
	}
	if fs.Changed("deps") {
		target.Deps = nonEmpty(o.deps)
	}
	if fs.Changed("front_end_directory") {
		target.FrontEndDirectory = &o.frontEndDirectory
	}
	if fs.Changed("tsconfig_output_location") {
		target.TSConfigOutputLocation = &o.outputLocation
	}
	if fs.Changed("module") {
		target.Module = &o.module
	}
	if fs.Changed("test-only") {
		target.TestOnly = &o.testOnly
	}
	if fs.Changed("no-emit") {
		target.NoEmit = &o.noEmit
	}
	if fs.Changed("verify-lib-check") {
		target.VerifyLibCheck = &o.verifyLibCheck
	}
	if fs.Changed("is_web_worker") {
		target.WebWorker = &o.webWorker
	}

	toolchain := app.ToolchainFlags{
		Node:         o.node,
		TSC:          o.tsc,
		BaseTSConfig: o.baseTSConfig,
	}
	if fs.Changed("global-definitions") {
		toolchain.GlobalDefinitions = nonEmpty(o.globalDefinitions)
	}

	cfg, err := app.NewConfig(app.Config{
		WorkDir:    workDir,
		Root:       o.root,
		EnvFile:    o.envFile,
		Manifests:  o.targetFiles,
		TargetName: o.target,
		AllTargets: o.all,
		Target:     target,
		Toolchain:  toolchain,
		UseRemote:  o.useRemote,
		Remote: config.Remote{
			Binary:   o.rewrapperBinary,
			Cfg:      o.rewrapperCfg,
			ExecRoot: o.rewrapperExecRoot,
		},
		Lock:      o.lock,
		LogFormat: o.logFormat,
		LogLevel:  o.logLevel,
	})
	if err != nil {
		return nil, &ExitError{Code: app.ExitUsage, Message: err.Error()}
	}
	return cfg, nil
}

// nonEmpty drops blank values and always returns a non-nil slice.
func nonEmpty(values []string) []string {
	out := []string{}
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}
