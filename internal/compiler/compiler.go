package compiler

import "context"

// Request describes one compilation.
type Request struct {
	// WorkDir is the directory the compiler runs in and relative paths are
	// resolved against.
	WorkDir string
	// ConfigPath is the generated configuration file.
	ConfigPath string
	// Inputs are every source and global declaration file of the compilation.
	Inputs []string
	// TestOnly marks compilations that read the @types directory.
	TestOnly bool
}

// Result is what the compiler process reported.
type Result struct {
	ExitCode int
	// Output is stdout followed by stderr.
	Output string
}

// Compiler runs the external compiler. The returned error is non-nil only
// when the process could not be run at all; compile errors are reported
// through Result.
type Compiler interface {
	Compile(ctx context.Context, req Request) (Result, error)
	// Name identifies the implementation in logs.
	Name() string
}

// UseRemote reports whether a compilation should be dispatched remotely.
// Remote execution is only used for targets without project references.
func UseRemote(requested bool, references []string) bool {
	return requested && len(references) == 0
}

// Select returns remote when UseRemote holds and a remote compiler is
// configured, otherwise local.
func Select(requested bool, references []string, local, remote Compiler) Compiler {
	if remote != nil && UseRemote(requested, references) {
		return remote
	}
	return local
}
