package config

import (
	"fmt"
	"sort"
)

// Model is the unified representation of all loaded manifests.
type Model struct {
	// Toolchain is nil when no manifest declared one.
	Toolchain *Toolchain
	Targets   map[string]*Target
}

// NewModel returns an empty model.
func NewModel() *Model {
	return &Model{Targets: make(map[string]*Target)}
}

// Target returns the named target.
func (m *Model) Target(name string) (*Target, error) {
	t, ok := m.Targets[name]
	if !ok {
		return nil, fmt.Errorf("target %q is not defined (known: %v)", name, m.TargetNames())
	}
	return t, nil
}

// TargetNames returns the defined target names in lexical order.
func (m *Model) TargetNames() []string {
	names := make([]string, 0, len(m.Targets))
	for name := range m.Targets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Toolchain locates the compiler and the files shared by every compilation.
// Empty fields fall back to defaults chosen by the app.
type Toolchain struct {
	Node              string
	TSC               string
	TypeScriptDir     string
	BaseTSConfig      string
	TypesDirectory    string
	GlobalDefinitions []string
}

// Target is one TypeScript library compilation.
type Target struct {
	Name    string
	Sources []string

	// Deps are upstream project configurations. Nil means none were
	// declared; an empty slice was declared empty.
	Deps []string

	FrontEndDirectory      string
	TSConfigOutputLocation string
	Module                 string
	TestOnly               bool
	NoEmit                 bool
	VerifyLibCheck         bool
	WebWorker              bool
	Remote                 *Remote
}

// Remote holds remote execution wrapper settings.
type Remote struct {
	Binary   string
	Cfg      string
	ExecRoot string
}
