package tsconfig

import (
	"errors"
	"fmt"
	"path/filepath"
)

// DefaultModule is the module system used when a target does not name one.
const DefaultModule = "esnext"

const buildInfoSuffix = ".tsbuildinfo"

var (
	baselineLib = []string{"esnext"}
	workerLib   = []string{"webworker", "webworker.iterable"}
	domLib      = []string{"dom", "dom.iterable"}
)

// Params are the per-invocation inputs merged into the base template. Every
// relative path is resolved against WorkDir.
type Params struct {
	// WorkDir is the directory relative paths are resolved against.
	WorkDir string
	// OutputLocation is the path of the configuration file to generate. Its
	// directory is the output directory of the compilation.
	OutputLocation string
	// Sources are the input source files in build order.
	Sources []string
	// References are upstream project configurations. A nil slice leaves the
	// template's references alone; a non-nil empty slice clears them.
	References []string
	// Module selects the module system; empty means DefaultModule.
	Module string
	// RootDir is the common root of the sources.
	RootDir string
	// TypesDirectory is the @types root, used only for test-only targets.
	TypesDirectory string

	TestOnly       bool
	VerifyLibCheck bool
	NoEmit         bool
	WebWorker      bool
}

// OutputPath returns the absolute location of the configuration file.
func (p Params) OutputPath() string {
	return resolve(p.WorkDir, p.OutputLocation)
}

// OutputDir returns the directory the configuration file and the generated
// artifacts live in.
func (p Params) OutputDir() string {
	return filepath.Dir(p.OutputPath())
}

// Synthesizer merges per-invocation parameters into a base template. The set
// of global declaration files is fixed at construction and appended to every
// compilation's input list.
type Synthesizer struct {
	globals []string
}

// NewSynthesizer returns a Synthesizer that always includes globals.
func NewSynthesizer(globals []string) *Synthesizer {
	return &Synthesizer{globals: append([]string(nil), globals...)}
}

// Globals returns a copy of the global declaration files.
func (s *Synthesizer) Globals() []string {
	return append([]string(nil), s.globals...)
}

// Inputs returns the sources followed by the global declaration files, as
// given (not yet relative to the output directory).
func (s *Synthesizer) Inputs(p Params) []string {
	all := make([]string, 0, len(p.Sources)+len(s.globals))
	all = append(all, p.Sources...)
	return append(all, s.globals...)
}

// Synthesize builds the configuration document for p. The base template is
// not modified.
func (s *Synthesizer) Synthesize(base *Document, p Params) (*Document, error) {
	if p.OutputLocation == "" {
		return nil, errors.New("tsconfig output location is required")
	}
	if p.RootDir == "" {
		return nil, errors.New("front-end directory is required")
	}
	if p.TestOnly && p.TypesDirectory == "" {
		return nil, errors.New("test-only targets require a types directory")
	}

	outDir := p.OutputDir()
	rel := func(path string) (string, error) {
		r, err := filepath.Rel(outDir, resolve(p.WorkDir, path))
		if err != nil {
			return "", fmt.Errorf("relativizing %s to %s: %w", path, outDir, err)
		}
		return filepath.ToSlash(r), nil
	}

	doc := NewDocument()
	if base != nil {
		doc = base.Clone()
	}

	files := make([]string, 0, len(p.Sources)+len(s.globals))
	for _, f := range s.Inputs(p) {
		r, err := rel(f)
		if err != nil {
			return nil, err
		}
		files = append(files, r)
	}
	doc.Set("files", stringList(files))

	if p.References != nil {
		refs := make([]any, 0, len(p.References))
		for _, ref := range p.References {
			refs = append(refs, map[string]any{"path": ref})
		}
		doc.Set("references", refs)
	}

	opts, err := doc.compilerOptions()
	if err != nil {
		return nil, err
	}

	module := p.Module
	if module == "" {
		module = DefaultModule
	}
	opts["module"] = module

	if !p.VerifyLibCheck {
		opts["skipLibCheck"] = true
	}

	rootDir, err := rel(p.RootDir)
	if err != nil {
		return nil, err
	}
	opts["rootDir"] = rootDir

	typeRoots := []string{}
	if p.TestOnly {
		typesDir, err := rel(p.TypesDirectory)
		if err != nil {
			return nil, err
		}
		typeRoots = append(typeRoots, typesDir)
		opts["moduleResolution"] = "node"
	}
	opts["typeRoots"] = stringList(typeRoots)

	if p.NoEmit {
		opts["emitDeclarationOnly"] = true
	}

	opts["outDir"] = "."
	opts["tsBuildInfoFile"] = filepath.Base(p.OutputLocation) + buildInfoSuffix

	lib := append([]string(nil), baselineLib...)
	if p.WebWorker {
		lib = append(lib, workerLib...)
	} else {
		lib = append(lib, domLib...)
	}
	opts["lib"] = stringList(lib)

	return doc, nil
}

func resolve(workDir, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(workDir, path)
}
