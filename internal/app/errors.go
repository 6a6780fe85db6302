package app

import (
	"errors"

	"github.com/specialistvlad/tsbridge/internal/report"
)

// ExitUsage is the exit code for invalid invocations.
const ExitUsage = 2

// ConfigError reports an invocation that cannot be built as configured.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string { return e.Err.Error() }

func (e *ConfigError) Unwrap() error { return e.Err }

// ExitCode maps the error returned by Run to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return report.ExitOK
	}
	var cfgErr *ConfigError
	if errors.As(err, &cfgErr) {
		return ExitUsage
	}
	var compileErr *report.CompileError
	if errors.As(err, &compileErr) {
		return compileErr.Signal().Code
	}
	return report.ExitFailed
}
