package tsconfig

import "fmt"

// TemplateError reports a base template that could not be read or parsed.
type TemplateError struct {
	Path string
	Err  error
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("loading base tsconfig %s: %v", e.Path, e.Err)
}

func (e *TemplateError) Unwrap() error { return e.Err }

// ConfigWriteError reports a filesystem failure while persisting the
// configuration document. It is fatal: the compiler must not be invoked.
type ConfigWriteError struct {
	Path string
	Op   string
	Err  error
}

func (e *ConfigWriteError) Error() string {
	return fmt.Sprintf("encountered error while writing generated tsconfig in location %s (%s): %v", e.Path, e.Op, e.Err)
}

func (e *ConfigWriteError) Unwrap() error { return e.Err }
