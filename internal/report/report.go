// Package report turns a compiler outcome into the run's exit signal and the
// message shown to the user.
package report

import (
	"fmt"
	"strings"
)

// Exit codes of a run.
const (
	ExitOK     = 0
	ExitFailed = 1
)

// Outcome is the terminal result of one compiler invocation.
type Outcome struct {
	Success     bool
	ExitCode    int
	Diagnostics string
}

// NewOutcome classifies a compiler result. Any non-zero exit code or any
// diagnostics output, even whitespace, is a failure.
func NewOutcome(exitCode int, diagnostics string) Outcome {
	return Outcome{
		Success:     exitCode == 0 && diagnostics == "",
		ExitCode:    exitCode,
		Diagnostics: diagnostics,
	}
}

// ExitSignal is what the process reports.
type ExitSignal struct {
	Code    int
	Message string
}

// Report maps an outcome to an exit signal. Failures name the configuration
// file that was used and carry the diagnostics verbatim.
func Report(outcome Outcome, configPath string) ExitSignal {
	if outcome.Success {
		return ExitSignal{Code: ExitOK}
	}
	return ExitSignal{Code: ExitFailed, Message: failureMessage(configPath, outcome.Diagnostics)}
}

func failureMessage(configPath, diagnostics string) string {
	var b strings.Builder
	b.WriteString("\n")
	fmt.Fprintf(&b, "TypeScript compilation failed. Used tsconfig %s\n", configPath)
	b.WriteString("\n")
	b.WriteString(diagnostics)
	b.WriteString("\n")
	return b.String()
}

// CompileError is returned by a run whose compilation failed.
type CompileError struct {
	ConfigPath string
	Outcome    Outcome
}

func (e *CompileError) Error() string {
	return failureMessage(e.ConfigPath, e.Outcome.Diagnostics)
}

// Signal returns the exit signal for the failed compilation.
func (e *CompileError) Signal() ExitSignal {
	return Report(e.Outcome, e.ConfigPath)
}
