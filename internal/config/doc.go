// Package config defines the format-agnostic model of a build tree's
// TypeScript toolchain and library targets, along with the Loader interface
// for reading it from manifest files.
//
// The `config.Model` is the single source of truth the app resolves a run
// from. Concrete implementations of the Loader interface, such as for HCL,
// are provided in separate packages.
package config
