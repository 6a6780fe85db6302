package testutil

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/specialistvlad/tsbridge/internal/compiler"
)

// FakeCompiler stands in for the external compiler. Each Compile call writes
// Outputs into the directory of the request's config file, stamps them with
// WriteTime, deletes Removes, records the request and returns Result/Err.
type FakeCompiler struct {
	CompilerName string
	// Outputs maps generated file names to the content the "compiler" writes.
	Outputs map[string]string
	// Removes lists generated file names the "compiler" deletes.
	Removes []string
	// WriteTime is the modification time given to written files. Zero keeps
	// the time assigned by the operating system.
	WriteTime time.Time

	Result compiler.Result
	Err    error

	mu    sync.Mutex
	calls []compiler.Request
}

// Name implements compiler.Compiler.
func (f *FakeCompiler) Name() string {
	if f.CompilerName == "" {
		return "fake"
	}
	return f.CompilerName
}

// Compile implements compiler.Compiler.
func (f *FakeCompiler) Compile(_ context.Context, req compiler.Request) (compiler.Result, error) {
	f.mu.Lock()
	f.calls = append(f.calls, req)
	f.mu.Unlock()

	if f.Err != nil {
		return compiler.Result{}, f.Err
	}

	outDir := filepath.Dir(req.ConfigPath)
	for name, content := range f.Outputs {
		path := filepath.Join(outDir, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return compiler.Result{}, err
		}
		if !f.WriteTime.IsZero() {
			if err := os.Chtimes(path, f.WriteTime, f.WriteTime); err != nil {
				return compiler.Result{}, err
			}
		}
	}
	for _, name := range f.Removes {
		if err := os.Remove(filepath.Join(outDir, name)); err != nil && !os.IsNotExist(err) {
			return compiler.Result{}, err
		}
	}
	return f.Result, nil
}

// Calls returns the recorded requests.
func (f *FakeCompiler) Calls() []compiler.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]compiler.Request(nil), f.calls...)
}

var _ compiler.Compiler = (*FakeCompiler)(nil)
